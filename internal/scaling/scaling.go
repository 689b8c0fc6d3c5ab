// Package scaling holds the depth-dependent knobs of item generation: the
// rarity weight table, the per-depth scaling factors and the per-rarity
// value multiplier and affix-count profile.
package scaling

import (
	"github.com/osse101/delvegen/internal/domain"
	"github.com/osse101/delvegen/internal/utils"
)

// DepthScaling converts dungeon depth into stat, value and rarity boosts.
// Depth 0 means no scaling at all.
type DepthScaling struct {
	Stat   float64 `json:"stat" validate:"gte=0"`
	Value  float64 `json:"value" validate:"gte=0"`
	Rarity float64 `json:"rarity" validate:"gte=0"`

	// MaxRarityBonus caps the per-rank rarity weight bonus. Zero is uncapped.
	MaxRarityBonus int `json:"max_rarity_bonus,omitempty" validate:"gte=0"`
}

// DefaultDepthScaling returns +10% stats, +5% value and +1 rarity weight per level.
func DefaultDepthScaling() DepthScaling {
	return DepthScaling{
		Stat:   DefaultStatScaling,
		Value:  DefaultValueScaling,
		Rarity: DefaultRarityScaling,
	}
}

// StatFactor is the multiplier applied to base stats at depth.
func (d DepthScaling) StatFactor(depth int) float64 {
	return 1 + d.Stat*float64(depth)
}

// ValueFactor is the multiplier applied to base value at depth.
func (d DepthScaling) ValueFactor(depth int) float64 {
	return 1 + d.Value*float64(depth)
}

// ScaleStat scales a base stat for depth, rounding half up and clamping at zero.
func (d DepthScaling) ScaleStat(base, depth int) int {
	return utils.ClampMin(utils.RoundHalfUp(float64(base)*d.StatFactor(depth)), 0)
}

// ScaleStats scales every stat in base for depth.
func (d DepthScaling) ScaleStats(base domain.Stats, depth int) domain.Stats {
	out := make(domain.Stats, len(base))
	for name, v := range base {
		out[name] = d.ScaleStat(v, depth)
	}
	return out
}

// ScaleValue returns round(base × multiplier × valueFactor(depth)), never negative.
func (d DepthScaling) ScaleValue(base int, multiplier float64, depth int) int {
	return utils.ClampMin(utils.RoundHalfUp(float64(base)*multiplier*d.ValueFactor(depth)), 0)
}

// RarityBonus is the weight added to every rank above Common at depth.
func (d DepthScaling) RarityBonus(depth int) int {
	bonus := utils.ClampMin(utils.FloorInt(float64(depth)*d.Rarity), 0)
	if d.MaxRarityBonus > 0 && bonus > d.MaxRarityBonus {
		return d.MaxRarityBonus
	}
	return bonus
}
