package affix

import "github.com/osse101/delvegen/internal/domain"

func weaponTable() Table {
	return Table{
		Prefixes: []domain.Affix{
			{Name: "Sharp", StatBonuses: domain.Stats{"damage": 2}, ValueBonus: 25, Weight: 30},
			{Name: "Heavy", StatBonuses: domain.Stats{"damage": 4, "attack": -1}, ValueBonus: 40, Weight: 20},
			{Name: "Swift", StatBonuses: domain.Stats{"attack": 3}, ValueBonus: 30, Weight: 25},
		},
		Suffixes: []domain.Affix{
			{Name: "of Power", StatBonuses: domain.Stats{"Strength": 2}, ValueBonus: 35, Weight: 25},
			{Name: "of Precision", StatBonuses: domain.Stats{"critical_chance": 5}, ValueBonus: 50, Weight: 15},
			{Name: "of Slaying", StatBonuses: domain.Stats{"critical_damage": 10}, ValueBonus: 60, Weight: 10},
		},
	}
}

func armorTable() Table {
	return Table{
		Prefixes: []domain.Affix{
			{Name: "Sturdy", StatBonuses: domain.Stats{"defense": 3}, ValueBonus: 30, Weight: 30},
			{Name: "Light", StatBonuses: domain.Stats{"defense": 1, "Dexterity": 2}, ValueBonus: 25, Weight: 25},
		},
		Suffixes: []domain.Affix{
			{Name: "of Protection", StatBonuses: domain.Stats{"defense": 4}, ValueBonus: 40, Weight: 20},
			{Name: "of Vitality", StatBonuses: domain.Stats{"Constitution": 3}, ValueBonus: 45, Weight: 15},
		},
	}
}

// DefaultTables returns the stock affix tables: swords and chest armour have
// their own pools, and every other weapon or armour piece shares the
// category-wide one.
func DefaultTables() map[domain.ItemType]Table {
	return map[domain.ItemType]Table{
		domain.Weapon("sword"): weaponTable(),
		domain.Weapon(AnyKind): weaponTable(),
		domain.Armor("chest"):  armorTable(),
		domain.Armor(AnyKind):  armorTable(),
	}
}

// Default returns a registry over DefaultTables.
func Default() *Registry {
	r, err := NewRegistry(DefaultTables())
	if err != nil {
		panic(err)
	}
	return r
}
