package scaling

import (
	"fmt"

	"github.com/osse101/delvegen/internal/domain"
)

// Profile is the per-rarity value multiplier and inclusive affix-count range.
type Profile struct {
	Multiplier float64 `json:"multiplier" validate:"gt=0"`
	MinAffixes int     `json:"min_affixes" validate:"gte=0,lte=4"`
	MaxAffixes int     `json:"max_affixes" validate:"gte=0,lte=4,gtefield=MinAffixes"`
}

// RarityProfiles maps every rarity to its profile.
type RarityProfiles map[domain.Rarity]Profile

// DefaultRarityProfiles returns the stock multipliers and affix ranges.
func DefaultRarityProfiles() RarityProfiles {
	return RarityProfiles{
		domain.RarityTrash:     {Multiplier: 0.1, MinAffixes: 0, MaxAffixes: 0},
		domain.RarityCommon:    {Multiplier: 1, MinAffixes: 0, MaxAffixes: 0},
		domain.RarityUncommon:  {Multiplier: 2, MinAffixes: 0, MaxAffixes: 1},
		domain.RarityRare:      {Multiplier: 5, MinAffixes: 1, MaxAffixes: 2},
		domain.RarityEpic:      {Multiplier: 10, MinAffixes: 1, MaxAffixes: 3},
		domain.RarityLegendary: {Multiplier: 25, MinAffixes: 2, MaxAffixes: 3},
		domain.RarityArtifact:  {Multiplier: 100, MinAffixes: 2, MaxAffixes: 4},
	}
}

// Get returns the profile for r, falling back to the stock profile when the
// table does not define one.
func (p RarityProfiles) Get(r domain.Rarity) Profile {
	if prof, ok := p[r]; ok {
		return prof
	}
	return DefaultRarityProfiles()[r]
}

// Multiplier is the value multiplier for r.
func (p RarityProfiles) Multiplier(r domain.Rarity) float64 {
	return p.Get(r).Multiplier
}

// AffixRange is the inclusive affix-count range for r.
func (p RarityProfiles) AffixRange(r domain.Rarity) (int, int) {
	prof := p.Get(r)
	return prof.MinAffixes, prof.MaxAffixes
}

// Validate checks every profile's range and multiplier.
func (p RarityProfiles) Validate() error {
	for r, prof := range p {
		if !r.Valid() {
			return fmt.Errorf("%w: rarity profiles: %v", domain.ErrConfig, domain.ErrInvalidRarity)
		}
		if prof.Multiplier <= 0 {
			return fmt.Errorf("%w: %s multiplier must be positive", domain.ErrConfig, r)
		}
		if prof.MinAffixes < 0 || prof.MaxAffixes > MaxAffixes || prof.MinAffixes > prof.MaxAffixes {
			return fmt.Errorf("%w: %s affix range %d-%d outside 0-%d", domain.ErrConfig, r, prof.MinAffixes, prof.MaxAffixes, MaxAffixes)
		}
	}
	return nil
}
