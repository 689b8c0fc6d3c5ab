package naming

import (
	"slices"

	"github.com/osse101/delvegen/internal/domain"
)

// Applicability restricts a naming affix to a family of item categories.
type Applicability string

const (
	AppliesAll         Applicability = "all"
	AppliesWeapons     Applicability = "weapons"
	AppliesArmor       Applicability = "armor"
	AppliesConsumables Applicability = "consumables"
)

// NameAffix is a cosmetic prefix or suffix. It carries no stats and is
// unrelated to the stat affixes rolled by the generator.
type NameAffix struct {
	Name      string          `json:"name" validate:"required"`
	AppliesTo []Applicability `json:"applies_to,omitempty" validate:"dive,oneof=all weapons armor consumables"`
	Weight    int             `json:"weight,omitempty" validate:"gte=0"`
}

// Applies reports whether the affix may decorate an item of category c.
// An affix with no applicability list applies to everything.
func (a NameAffix) Applies(c domain.Category) bool {
	if len(a.AppliesTo) == 0 {
		return true
	}
	for _, app := range a.AppliesTo {
		switch app {
		case AppliesAll:
			return true
		case AppliesWeapons:
			if c == domain.CategoryWeapon {
				return true
			}
		case AppliesArmor:
			if c == domain.CategoryArmor {
				return true
			}
		case AppliesConsumables:
			if c == domain.CategoryConsumable {
				return true
			}
		}
	}
	return false
}

// weight treats an unset weight as 1.
func (a NameAffix) weight() int {
	if a.Weight <= 0 {
		return 1
	}
	return a.Weight
}

// Pools is the complete naming vocabulary and the on-disk name file shape.
type Pools struct {
	Version           string                       `json:"version" validate:"required"`
	BaseNames         map[domain.ItemType][]string `json:"base_names"`
	BasicQualities    []string                     `json:"basic_qualities,omitempty"`
	FineQualities     []string                     `json:"fine_qualities,omitempty"`
	LegendaryPrefixes []string                     `json:"legendary_prefixes,omitempty"`
	Prefixes          []NameAffix                  `json:"prefixes,omitempty" validate:"dive"`
	Suffixes          []NameAffix                  `json:"suffixes,omitempty" validate:"dive"`
	LegendaryNames    map[domain.Category][]string `json:"legendary_names,omitempty"`
	ArtifactNames     []string                     `json:"artifact_names,omitempty"`
}

func (p Pools) clone() Pools {
	out := p
	out.BaseNames = make(map[domain.ItemType][]string, len(p.BaseNames))
	for t, names := range p.BaseNames {
		out.BaseNames[t] = slices.Clone(names)
	}
	out.LegendaryNames = make(map[domain.Category][]string, len(p.LegendaryNames))
	for c, names := range p.LegendaryNames {
		out.LegendaryNames[c] = slices.Clone(names)
	}
	out.BasicQualities = slices.Clone(p.BasicQualities)
	out.FineQualities = slices.Clone(p.FineQualities)
	out.LegendaryPrefixes = slices.Clone(p.LegendaryPrefixes)
	out.Prefixes = slices.Clone(p.Prefixes)
	out.Suffixes = slices.Clone(p.Suffixes)
	out.ArtifactNames = slices.Clone(p.ArtifactNames)
	return out
}

func weapons(name string, weight int) NameAffix {
	return NameAffix{Name: name, AppliesTo: []Applicability{AppliesWeapons}, Weight: weight}
}

func armor(name string, weight int) NameAffix {
	return NameAffix{Name: name, AppliesTo: []Applicability{AppliesArmor}, Weight: weight}
}

func all(name string, weight int) NameAffix {
	return NameAffix{Name: name, AppliesTo: []Applicability{AppliesAll}, Weight: weight}
}

// DefaultPools returns the stock naming vocabulary.
func DefaultPools() Pools {
	return Pools{
		Version: PoolsVersion,
		BaseNames: map[domain.ItemType][]string{
			domain.Weapon("sword"):  {"Sword", "Blade", "Saber", "Rapier", "Scimitar", "Longsword", "Broadsword", "Claymore"},
			domain.Weapon("axe"):    {"Axe", "Hatchet", "Battleaxe", "War Axe", "Cleaver", "Tomahawk"},
			domain.Weapon("mace"):   {"Mace", "Club", "Hammer", "War Hammer", "Flail", "Morningstar"},
			domain.Weapon("dagger"): {"Dagger", "Knife", "Stiletto", "Dirk", "Shiv", "Blade"},
			domain.Weapon("spear"):  {"Spear", "Lance", "Pike", "Javelin", "Halberd", "Trident"},
			domain.Weapon("bow"):    {"Bow", "Longbow", "Shortbow", "Composite Bow", "Recurve Bow"},
			domain.Weapon("staff"):  {"Staff", "Rod", "Scepter", "Quarterstaff", "Walking Stick"},
			domain.Weapon("wand"):   {"Wand", "Rod", "Stick", "Branch", "Twig"},

			domain.Armor("helmet"): {"Helmet", "Helm", "Cap", "Coif", "Crown", "Circlet"},
			domain.Armor("chest"):  {"Armor", "Chestplate", "Breastplate", "Mail", "Vest", "Tunic", "Robe", "Jacket"},
			domain.Armor("legs"):   {"Leggings", "Greaves", "Pants", "Trousers", "Chaps"},
			domain.Armor("boots"):  {"Boots", "Shoes", "Sandals", "Slippers", "Sabatons"},
			domain.Armor("gloves"): {"Gloves", "Gauntlets", "Mittens", "Bracers", "Vambraces"},
			domain.Armor("shield"): {"Shield", "Buckler", "Targe", "Kite Shield", "Tower Shield"},
			domain.Armor("ring"):   {"Ring", "Band", "Circle", "Loop", "Signet"},
			domain.Armor("amulet"): {"Amulet", "Pendant", "Necklace", "Charm", "Talisman", "Medallion"},

			domain.Consumable("potion"): {"Potion", "Elixir", "Draught", "Brew", "Tonic", "Philter"},
			domain.Consumable("food"):   {"Bread", "Rations", "Jerky", "Cheese", "Apple", "Meat"},
			domain.Consumable("scroll"): {"Scroll", "Parchment", "Tome", "Manuscript", "Document"},

			domain.Material("metal"): {"Iron Ore", "Steel Ingot", "Copper", "Silver", "Gold", "Mithril"},
			domain.Material("gem"):   {"Ruby", "Sapphire", "Emerald", "Diamond", "Amethyst", "Topaz"},
			domain.Material("herb"):  {"Herb", "Flower", "Root", "Leaf", "Mushroom", "Moss"},

			domain.Misc("coin"): {"Gold Coins"},
		},
		BasicQualities:    []string{"Old", "Worn", "Simple", "Basic", "Common"},
		FineQualities:     []string{"Fine", "Well-made", "Sturdy", "Reliable", "Quality", "Masterwork", "Superior", "Excellent", "Refined"},
		LegendaryPrefixes: []string{"Legendary", "Fabled", "Mythical", "Ancient", "Divine", "Celestial", "Infernal", "Eternal", "Sacred", "Cursed"},
		Prefixes: []NameAffix{
			weapons("Flaming", 20),
			weapons("Frozen", 20),
			weapons("Shocking", 20),
			weapons("Venomous", 15),
			all("Blessed", 10),
			all("Cursed", 5),
			all("Enchanted", 15),
			all("Glowing", 12),
			all("Ancient", 8),
			all("Runic", 10),
		},
		Suffixes: []NameAffix{
			weapons("of Power", 20),
			all("of Strength", 18),
			all("of Agility", 18),
			armor("of Protection", 20),
			all("of the Eagle", 12),
			all("of the Bear", 12),
			all("of the Wolf", 12),
			weapons("of Slaying", 15),
			armor("of Warding", 15),
			all("of the Ancients", 8),
		},
		LegendaryNames: map[domain.Category][]string{
			domain.CategoryWeapon: {"Excalibur", "Mjolnir", "Durandal", "Gram", "Balmung", "Tyrfing", "Curtana", "Joyeuse", "Caladbolg", "Galatine"},
		},
		ArtifactNames: []string{
			"The Worldrender", "Eternity's Edge", "Voidcaller", "Starfall", "The Dreambane",
			"Soulreaper", "The Timeless Crown", "Heart of the Mountain", "The Infinite Codex", "Whisper of the Void",
		},
	}
}
