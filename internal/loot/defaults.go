package loot

import "github.com/osse101/delvegen/internal/domain"

func item(t domain.ItemType, weight, min, max int) Entry {
	return Entry{ItemType: &t, Weight: weight, Quantity: &Quantity{Min: min, Max: max}}
}

func rare(e Entry, r domain.Rarity) Entry {
	e.RarityOverride = &r
	return e
}

func ref(table string, weight, min, max int) Entry {
	return Entry{TableRef: table, Weight: weight, Quantity: &Quantity{Min: min, Max: max}}
}

func table(guaranteed, max int, entries ...Entry) Table {
	return Table{Entries: entries, GuaranteedDrops: guaranteed, MaxDrops: max}
}

// coins is a single-stack table; the referencing entry's quantity sets the
// stack size.
func coins() Table {
	return table(1, 1, rare(item(domain.Misc("coin"), 1, 1, 1), domain.RarityCommon))
}

// DefaultTables returns the stock loot tables.
func DefaultTables() map[string]Table {
	const (
		common   = domain.RarityCommon
		uncommon = domain.RarityUncommon
		rareR    = domain.RarityRare
		epic     = domain.RarityEpic
		legend   = domain.RarityLegendary
	)

	return map[string]Table{
		// Monsters
		"goblin": table(1, 2,
			rare(item(domain.Consumable("potion"), 30, 1, 1), common),
			rare(item(domain.Weapon("dagger"), 20, 1, 1), common),
			item(domain.Material("bone"), 25, 1, 2),
			ref("small_gold", 25, 3, 8),
		),
		"skeleton": table(1, 3,
			rare(item(domain.Weapon("sword"), 25, 1, 1), common),
			rare(item(domain.Armor("shield"), 20, 1, 1), common),
			item(domain.Material("bone"), 35, 2, 4),
			rare(item(domain.Consumable("scroll"), 15, 1, 1), uncommon),
			ref("small_gold", 5, 1, 5),
		),
		"orc": table(1, 3,
			rare(item(domain.Weapon("axe"), 30, 1, 1), common),
			rare(item(domain.Armor("chest"), 25, 1, 1), common),
			item(domain.Consumable("food"), 20, 1, 3),
			item(domain.Material("metal"), 15, 1, 2),
			ref("medium_gold", 10, 5, 15),
		),
		"dragon": table(3, 6,
			rare(item(domain.Weapon("sword"), 20, 1, 1), legend),
			rare(item(domain.Armor("chest"), 20, 1, 1), epic),
			rare(item(domain.Material("gem"), 25, 3, 8), rareR),
			rare(item(domain.Consumable("scroll"), 15, 2, 4), epic),
			ref("large_gold", 20, 100, 500),
		),

		// Containers
		"wooden_chest": table(1, 3,
			rare(item(domain.Consumable("potion"), 30, 1, 3), common),
			item(domain.Tool("lockpick"), 20, 1, 1),
			item(domain.Material("wood"), 25, 2, 5),
			ref("small_gold", 25, 10, 30),
		),
		"iron_chest": table(2, 4,
			rare(item(domain.Weapon("sword"), 25, 1, 1), uncommon),
			rare(item(domain.Armor("chest"), 25, 1, 1), uncommon),
			rare(item(domain.Consumable("potion"), 20, 2, 4), uncommon),
			item(domain.Material("metal"), 15, 3, 6),
			ref("medium_gold", 15, 25, 75),
		),
		"golden_chest": table(2, 5,
			rare(item(domain.Weapon("sword"), 20, 1, 1), rareR),
			rare(item(domain.Armor("chest"), 20, 1, 1), rareR),
			rare(item(domain.Material("gem"), 25, 2, 5), rareR),
			rare(item(domain.Consumable("scroll"), 20, 1, 3), rareR),
			ref("large_gold", 15, 50, 200),
		),

		// Depth tiers
		"depth_1_5": table(1, 2,
			rare(item(domain.Weapon("dagger"), 25, 1, 1), common),
			rare(item(domain.Armor("boots"), 20, 1, 1), common),
			item(domain.Consumable("potion"), 30, 1, 2),
			item(domain.Tool("torch"), 15, 1, 3),
			ref("small_gold", 10, 1, 10),
		),
		"depth_6_10": table(1, 3,
			rare(item(domain.Weapon("sword"), 25, 1, 1), uncommon),
			rare(item(domain.Armor("chest"), 25, 1, 1), uncommon),
			rare(item(domain.Consumable("potion"), 20, 2, 3), uncommon),
			item(domain.Material("metal"), 20, 2, 4),
			ref("medium_gold", 10, 10, 25),
		),
		"depth_11_20": table(2, 4,
			rare(item(domain.Weapon("sword"), 20, 1, 1), rareR),
			rare(item(domain.Armor("chest"), 20, 1, 1), rareR),
			rare(item(domain.Consumable("scroll"), 25, 1, 2), rareR),
			rare(item(domain.Material("gem"), 25, 1, 3), uncommon),
			ref("large_gold", 10, 25, 75),
		),

		// Special locations
		"library": table(2, 4,
			rare(item(domain.Consumable("scroll"), 50, 2, 5), uncommon),
			rare(item(domain.Weapon("staff"), 20, 1, 1), rareR),
			item(domain.Material("herb"), 20, 3, 6),
			ref("knowledge", 10, 1, 1),
		),
		"armory": table(2, 5,
			rare(item(domain.Weapon("sword"), 30, 1, 2), uncommon),
			rare(item(domain.Armor("chest"), 30, 1, 2), uncommon),
			rare(item(domain.Weapon("bow"), 20, 1, 1), uncommon),
			item(domain.Consumable("ammunition"), 15, 10, 30),
			item(domain.Material("metal"), 5, 5, 10),
		),
		"treasury": table(3, 6,
			rare(item(domain.Material("gem"), 40, 3, 8), rareR),
			rare(item(domain.Armor("ring"), 25, 1, 2), epic),
			rare(item(domain.Armor("amulet"), 25, 1, 1), epic),
			ref("huge_gold", 10, 200, 1000),
		),

		// Referenced sub-tables
		"small_gold":  coins(),
		"medium_gold": coins(),
		"large_gold":  coins(),
		"huge_gold":   coins(),
		"knowledge": table(1, 1,
			rare(item(domain.Misc("book"), 60, 1, 1), uncommon),
			rare(item(domain.Consumable("scroll"), 40, 1, 1), rareR),
		),
	}
}

// DefaultMonsterTables maps monster names to tables.
func DefaultMonsterTables() map[string]string {
	return map[string]string{
		"goblin":   "goblin",
		"skeleton": "skeleton",
		"orc":      "orc",
		"dragon":   "dragon",
		"rat":      "goblin",
		"spider":   "goblin",
		"zombie":   "skeleton",
		"troll":    "orc",
	}
}

// DefaultDepthTables returns the stock depth buckets. Depths past the last
// bucket use the deepest one.
func DefaultDepthTables() []DepthBucket {
	return []DepthBucket{
		{Min: 0, Max: 5, Table: "depth_1_5"},
		{Min: 6, Max: 10, Table: "depth_6_10"},
		{Min: 11, Max: 20, Table: "depth_11_20"},
	}
}

// DefaultSpecialTables maps special locations to tables.
func DefaultSpecialTables() map[string]string {
	return map[string]string{
		"library":  "library",
		"armory":   "armory",
		"treasury": "treasury",
		"altar":    "library",
		"forge":    "armory",
	}
}

// DefaultContainerTables maps container names and their aliases to tables.
func DefaultContainerTables() map[string]string {
	return map[string]string{
		"chest":          "wooden_chest",
		"wooden_chest":   "wooden_chest",
		"iron_chest":     "iron_chest",
		"metal_chest":    "iron_chest",
		"golden_chest":   "golden_chest",
		"gold_chest":     "golden_chest",
		"treasure_chest": "golden_chest",
	}
}

// DefaultFile returns the stock loot table file.
func DefaultFile() File {
	return File{
		Version:         Version,
		DefaultTable:    DefaultTableName,
		MaxRecursion:    DefaultMaxRecursion,
		Tables:          DefaultTables(),
		MonsterTables:   DefaultMonsterTables(),
		DepthTables:     DefaultDepthTables(),
		SpecialTables:   DefaultSpecialTables(),
		ContainerTables: DefaultContainerTables(),
	}
}
