package catalog

import (
	"github.com/osse101/delvegen/internal/domain"
	"github.com/osse101/delvegen/internal/effect"
)

// Stat names used by the stock catalog and affix tables.
const (
	StatAttack  = "attack"
	StatDamage  = "damage"
	StatDefense = "defense"
)

func weapon(kind string, value int, weight float64, attack, damage int) BaseItem {
	return BaseItem{
		Type:   domain.Weapon(kind),
		Value:  value,
		Weight: weight,
		Stats:  domain.Stats{StatAttack: attack, StatDamage: damage},
	}
}

func armor(kind string, value int, weight float64, defense int) BaseItem {
	return BaseItem{
		Type:   domain.Armor(kind),
		Value:  value,
		Weight: weight,
		Stats:  domain.Stats{StatDefense: defense},
	}
}

func plain(t domain.ItemType, value int, weight float64) BaseItem {
	return BaseItem{Type: t, Value: value, Weight: weight, Stats: domain.Stats{}}
}

func consumable(kind string, value int, weight float64, e *effect.Effect) BaseItem {
	item := plain(domain.Consumable(kind), value, weight)
	item.Effect = e
	return item
}

// DefaultItems returns the stock base item table.
func DefaultItems() []BaseItem {
	return []BaseItem{
		weapon("sword", 50, 3.0, 5, 8),
		weapon("axe", 60, 4.0, 7, 12),
		weapon("mace", 45, 3.5, 6, 10),
		weapon("dagger", 25, 1.0, 3, 4),
		weapon("spear", 40, 2.5, 4, 6),
		weapon("bow", 75, 2.0, 6, 7),
		weapon("staff", 30, 2.0, 2, 3),
		weapon("wand", 80, 0.5, 1, 2),

		armor("helmet", 40, 2.0, 3),
		armor("chest", 80, 15.0, 8),
		armor("legs", 60, 8.0, 5),
		armor("boots", 25, 2.0, 2),
		armor("gloves", 20, 1.0, 1),
		armor("shield", 50, 5.0, 6),
		armor("ring", 100, 0.1, 1),
		armor("amulet", 75, 0.2, 1),

		consumable("potion", 25, 0.5, &effect.Effect{Kind: effect.KindHeal, Magnitude: 25}),
		consumable("food", 5, 0.2, &effect.Effect{Kind: effect.KindHeal, Magnitude: 5}),
		consumable("scroll", 50, 0.1, &effect.Effect{Kind: effect.KindIdentify}),
		consumable("ammunition", 1, 0.1, nil),

		plain(domain.Tool("lockpick"), 30, 0.2),
		plain(domain.Tool("torch"), 5, 1.0),

		plain(domain.Material("metal"), 10, 2.0),
		plain(domain.Material("wood"), 5, 1.0),
		plain(domain.Material("gem"), 100, 0.2),
		plain(domain.Material("herb"), 20, 0.1),
		plain(domain.Material("bone"), 5, 0.8),

		plain(domain.Misc("coin"), 1, 0.01),
		plain(domain.Misc("book"), 15, 1.0),
	}
}

// DefaultContextWeights returns the stock type distribution per context.
// Combat favours arms and healing, Treasure valuables, Merchant trade goods.
func DefaultContextWeights() map[domain.GenerationContext][]TypeWeight {
	return map[domain.GenerationContext][]TypeWeight{
		domain.ContextCombat: {
			{domain.Weapon("sword"), 30},
			{domain.Armor("chest"), 25},
			{domain.Consumable("potion"), 20},
			{domain.Armor("shield"), 15},
			{domain.Weapon("bow"), 10},
		},
		domain.ContextTreasure: {
			{domain.Weapon("sword"), 20},
			{domain.Armor("chest"), 20},
			{domain.Consumable("potion"), 15},
			{domain.Material("gem"), 25},
			{domain.Misc("coin"), 20},
		},
		domain.ContextMerchant: {
			{domain.Weapon("sword"), 20},
			{domain.Armor("chest"), 20},
			{domain.Consumable("potion"), 20},
			{domain.Tool("lockpick"), 15},
			{domain.Material("metal"), 15},
			{domain.Misc("book"), 10},
		},
		// One type per category, evenly weighted.
		domain.ContextRandom: {
			{domain.Weapon("sword"), 10},
			{domain.Armor("chest"), 10},
			{domain.Consumable("potion"), 10},
			{domain.Material("metal"), 10},
			{domain.Tool("torch"), 10},
			{domain.Misc("book"), 10},
		},
	}
}

// Default returns the stock catalog.
func Default() *Catalog {
	c, err := New(DefaultItems(), DefaultContextWeights())
	if err != nil {
		panic(err)
	}
	return c
}
