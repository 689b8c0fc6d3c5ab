package scaling

import (
	"fmt"

	"github.com/osse101/delvegen/internal/domain"
	"github.com/osse101/delvegen/internal/rng"
)

// RarityWeights is the relative chance of each rarity before depth bonuses.
// Missing ranks weigh zero.
type RarityWeights map[domain.Rarity]int

// DefaultRarityWeights returns the stock distribution. Artifacts weigh zero and
// are only reachable through loot-entry overrides.
func DefaultRarityWeights() RarityWeights {
	return RarityWeights{
		domain.RarityTrash:     5,
		domain.RarityCommon:    50,
		domain.RarityUncommon:  25,
		domain.RarityRare:      15,
		domain.RarityEpic:      4,
		domain.RarityLegendary: 1,
		domain.RarityArtifact:  0,
	}
}

// Clone returns an independent copy.
func (w RarityWeights) Clone() RarityWeights {
	out := make(RarityWeights, len(w))
	for r, v := range w {
		out[r] = v
	}
	return out
}

// Total is the sum of all weights.
func (w RarityWeights) Total() int {
	total := 0
	for _, v := range w {
		total += v
	}
	return total
}

// Validate rejects negative weights, unknown ranks and an all-zero table.
func (w RarityWeights) Validate() error {
	for r, v := range w {
		if !r.Valid() {
			return fmt.Errorf("%w: rarity weights: %v", domain.ErrConfig, domain.ErrInvalidRarity)
		}
		if v < 0 {
			return fmt.Errorf("%w: rarity weight for %s is negative (%d)", domain.ErrConfig, r, v)
		}
	}
	if w.Total() <= 0 {
		return fmt.Errorf("%w: rarity weights sum to zero", domain.ErrConfig)
	}
	return nil
}

// Effective returns the weights at depth: every rank above Common with a
// positive base weight gains scaling.RarityBonus(depth). Zero-weight ranks
// stay unreachable.
func (w RarityWeights) Effective(depth int, s DepthScaling) RarityWeights {
	bonus := s.RarityBonus(depth)
	out := w.Clone()
	for r, v := range out {
		if r > domain.RarityCommon && v > 0 {
			out[r] = v + bonus
		}
	}
	return out
}

// Table compiles the effective weights at depth into a weighted table ordered
// from lowest to highest rarity.
func (w RarityWeights) Table(depth int, s DepthScaling) (*rng.Table[domain.Rarity], error) {
	eff := w.Effective(depth, s)
	table, err := rng.NewTable(domain.AllRarities(), func(r domain.Rarity) int { return eff[r] })
	if err != nil {
		return nil, fmt.Errorf("%w: rarity table: %v", domain.ErrConfig, err)
	}
	return table, nil
}
