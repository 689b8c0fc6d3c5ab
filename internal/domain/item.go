package domain

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/osse101/delvegen/internal/effect"
)

// Category is the broad class of an item type.
type Category string

const (
	CategoryWeapon     Category = "weapon"
	CategoryArmor      Category = "armor"
	CategoryConsumable Category = "consumable"
	CategoryMaterial   Category = "material"
	CategoryTool       Category = "tool"
	CategoryMisc       Category = "misc"
)

// AllCategories returns the six item categories in declaration order.
func AllCategories() []Category {
	return []Category{
		CategoryWeapon,
		CategoryArmor,
		CategoryConsumable,
		CategoryMaterial,
		CategoryTool,
		CategoryMisc,
	}
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	return slices.Contains(AllCategories(), c)
}

// ItemTypeSeparator joins category and kind in the text form "weapon/sword".
const ItemTypeSeparator = "/"

// ItemType identifies a concrete base item: a category plus a lower-case kind
// such as {weapon, sword} or {material, gem}. It is comparable and used as a
// map key throughout the registries.
type ItemType struct {
	Category Category
	Kind     string
}

// NewItemType builds an ItemType, normalising kind to lower case.
func NewItemType(category Category, kind string) ItemType {
	return ItemType{Category: category, Kind: strings.ToLower(strings.TrimSpace(kind))}
}

// Weapon is shorthand for NewItemType(CategoryWeapon, kind).
func Weapon(kind string) ItemType { return NewItemType(CategoryWeapon, kind) }

// Armor is shorthand for NewItemType(CategoryArmor, kind).
func Armor(kind string) ItemType { return NewItemType(CategoryArmor, kind) }

// Consumable is shorthand for NewItemType(CategoryConsumable, kind).
func Consumable(kind string) ItemType { return NewItemType(CategoryConsumable, kind) }

// Material is shorthand for NewItemType(CategoryMaterial, kind).
func Material(kind string) ItemType { return NewItemType(CategoryMaterial, kind) }

// Tool is shorthand for NewItemType(CategoryTool, kind).
func Tool(kind string) ItemType { return NewItemType(CategoryTool, kind) }

// Misc is shorthand for NewItemType(CategoryMisc, kind).
func Misc(kind string) ItemType { return NewItemType(CategoryMisc, kind) }

func (t ItemType) String() string {
	return string(t.Category) + ItemTypeSeparator + t.Kind
}

// IsZero reports whether t is unset.
func (t ItemType) IsZero() bool {
	return t.Category == "" && t.Kind == ""
}

// ParseItemType parses "category/kind".
func ParseItemType(s string) (ItemType, error) {
	category, kind, ok := strings.Cut(strings.TrimSpace(s), ItemTypeSeparator)
	if !ok || kind == "" {
		return ItemType{}, fmt.Errorf("%w: %q (want category/kind)", ErrUnknownItemType, s)
	}
	c := Category(strings.ToLower(category))
	if !c.Valid() {
		return ItemType{}, fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}
	return NewItemType(c, kind), nil
}

func (t ItemType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *ItemType) UnmarshalText(text []byte) error {
	parsed, err := ParseItemType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Stats maps a stat name ("damage", "defense", "Strength") to its value.
type Stats map[string]int

// Clone returns an independent copy; a nil receiver yields an empty map.
func (s Stats) Clone() Stats {
	out := make(Stats, len(s))
	maps.Copy(out, s)
	return out
}

// AffixType is the slot an affix occupies in a name.
type AffixType string

const (
	AffixPrefix AffixType = "prefix"
	AffixSuffix AffixType = "suffix"
)

// Affix is a stat-bearing modifier applied to a generated item.
type Affix struct {
	Name        string    `json:"name" yaml:"name" validate:"required"`
	Type        AffixType `json:"type,omitempty" yaml:"type" validate:"omitempty,oneof=prefix suffix"`
	StatBonuses Stats     `json:"stat_bonuses,omitempty" yaml:"stat_bonuses"`
	ValueBonus  int       `json:"value_bonus" yaml:"value_bonus" validate:"gte=0"`
	Weight      int       `json:"weight" yaml:"weight" validate:"gt=0"`
}

// ItemSpec is a fully generated item that has not yet been placed in the
// world. It is an independent value: the generator keeps no reference to it.
type ItemSpec struct {
	Type      ItemType       `json:"type"`
	Rarity    Rarity         `json:"rarity"`
	Name      string         `json:"name"`
	BaseStats Stats          `json:"base_stats"`
	Stats     Stats          `json:"stats"`
	BaseValue int            `json:"base_value"`
	Value     int            `json:"value"`
	Weight    float64        `json:"weight"`
	Affixes   []Affix        `json:"affixes,omitempty"`
	Magical   bool           `json:"magical"`
	Quantity  int            `json:"quantity"`
	Depth     int            `json:"depth"`
	Effect    *effect.Effect `json:"effect,omitempty"`
}

// HasAffix reports whether an affix with the given name is applied.
func (s ItemSpec) HasAffix(name string) bool {
	return slices.ContainsFunc(s.Affixes, func(a Affix) bool { return a.Name == name })
}

// TotalValue is Value multiplied by the stack quantity.
func (s ItemSpec) TotalValue() int {
	return s.Value * s.Quantity
}
