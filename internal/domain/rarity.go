package domain

import (
	"fmt"
	"strings"
)

// Rarity is the ordered quality tier of a generated item.
// Comparisons use the underlying ordering: RarityRare > RarityCommon.
type Rarity int

const (
	RarityTrash Rarity = iota
	RarityCommon
	RarityUncommon
	RarityRare
	RarityEpic
	RarityLegendary
	RarityArtifact
)

var rarityNames = [...]string{
	RarityTrash:     "trash",
	RarityCommon:    "common",
	RarityUncommon:  "uncommon",
	RarityRare:      "rare",
	RarityEpic:      "epic",
	RarityLegendary: "legendary",
	RarityArtifact:  "artifact",
}

// AllRarities returns every tier from lowest to highest.
func AllRarities() []Rarity {
	return []Rarity{
		RarityTrash,
		RarityCommon,
		RarityUncommon,
		RarityRare,
		RarityEpic,
		RarityLegendary,
		RarityArtifact,
	}
}

// Valid reports whether r is one of the seven defined tiers.
func (r Rarity) Valid() bool {
	return r >= RarityTrash && r <= RarityArtifact
}

func (r Rarity) String() string {
	if !r.Valid() {
		return fmt.Sprintf("rarity(%d)", int(r))
	}
	return rarityNames[r]
}

// ParseRarity parses the lower-case (or any-case) tier name.
func ParseRarity(s string) (Rarity, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for r, n := range rarityNames {
		if n == name {
			return Rarity(r), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidRarity, s)
}

func (r Rarity) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRarity, int(r))
	}
	return []byte(rarityNames[r]), nil
}

func (r *Rarity) UnmarshalText(text []byte) error {
	parsed, err := ParseRarity(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
