// Package loot resolves named, weighted loot tables into generated items.
// Tables may reference other tables; references are followed up to a
// recursion limit so that cyclic data terminates.
package loot

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/osse101/delvegen/internal/domain"
)

// Quantity is an inclusive stack-size range.
type Quantity struct {
	Min int `json:"min" validate:"gte=0"`
	Max int `json:"max" validate:"gtefield=Min"`
}

// One is the quantity used when an entry does not name one.
var One = Quantity{Min: 1, Max: 1}

// Entry is one weighted outcome of a table: either a concrete item type or a
// reference to another table, never both.
type Entry struct {
	ItemType       *domain.ItemType `json:"item_type,omitempty"`
	TableRef       string           `json:"table_ref,omitempty"`
	Weight         int              `json:"weight" validate:"gt=0"`
	Quantity       *Quantity        `json:"quantity,omitempty"`
	RarityOverride *domain.Rarity   `json:"rarity_override,omitempty"`
}

// Range returns the entry's quantity range, defaulting to exactly one.
func (e Entry) Range() Quantity {
	if e.Quantity == nil {
		return One
	}
	return *e.Quantity
}

// IsRef reports whether the entry points at another table.
func (e Entry) IsRef() bool {
	return e.TableRef != ""
}

func (e Entry) label() string {
	if e.IsRef() {
		return "ref:" + e.TableRef
	}
	if e.ItemType != nil {
		return e.ItemType.String()
	}
	return "<empty>"
}

// Table is a weighted list of entries. GuaranteedDrops entries are always
// drawn; up to MaxDrops-GuaranteedDrops more are drawn and kept on an
// inclusion roll proportional to their weight.
type Table struct {
	Entries         []Entry `json:"entries" validate:"required,min=1,dive"`
	GuaranteedDrops int     `json:"guaranteed_drops" validate:"gte=0"`
	MaxDrops        int     `json:"max_drops" validate:"gtefield=GuaranteedDrops"`
}

// DepthBucket maps an inclusive dungeon depth range to a table.
type DepthBucket struct {
	Min   int    `json:"min" validate:"gte=0"`
	Max   int    `json:"max" validate:"gtefield=Min"`
	Table string `json:"table" validate:"required"`
}

// Contains reports whether depth falls inside the bucket.
func (b DepthBucket) Contains(depth int) bool {
	return depth >= b.Min && depth <= b.Max
}

// File is the on-disk shape of a loot table file.
type File struct {
	Version         string            `json:"version" validate:"required"`
	DefaultTable    string            `json:"default_table,omitempty"`
	MaxRecursion    int               `json:"max_recursion,omitempty" validate:"gte=0"`
	Tables          map[string]Table  `json:"tables" validate:"required,dive"`
	MonsterTables   map[string]string `json:"monster_tables,omitempty"`
	DepthTables     []DepthBucket     `json:"depth_tables,omitempty" validate:"dive"`
	SpecialTables   map[string]string `json:"special_tables,omitempty"`
	ContainerTables map[string]string `json:"container_tables,omitempty"`
}

// Validate checks the cross-references that struct tags cannot express:
// entry shape, table references, mapping targets and bucket overlap.
// Cycles are allowed; resolution bounds them.
func (f *File) Validate() error {
	for _, name := range slices.Sorted(maps.Keys(f.Tables)) {
		if err := f.validateTable(name, f.Tables[name]); err != nil {
			return err
		}
	}

	for _, m := range []struct {
		kind    string
		targets map[string]string
	}{
		{"monster", f.MonsterTables},
		{"location", f.SpecialTables},
		{"container", f.ContainerTables},
	} {
		for key, table := range m.targets {
			if _, ok := f.Tables[table]; !ok {
				return fmt.Errorf("%w: %s %q maps to %w %q", domain.ErrConfig, m.kind, key, domain.ErrUnknownTable, table)
			}
		}
	}

	buckets := sortedBuckets(f.DepthTables)
	for i, b := range buckets {
		if _, ok := f.Tables[b.Table]; !ok {
			return fmt.Errorf("%w: depth %d-%d maps to %w %q", domain.ErrConfig, b.Min, b.Max, domain.ErrUnknownTable, b.Table)
		}
		if i > 0 && b.Min <= buckets[i-1].Max {
			return fmt.Errorf("%w: depth buckets %d-%d and %d-%d overlap",
				domain.ErrConfig, buckets[i-1].Min, buckets[i-1].Max, b.Min, b.Max)
		}
	}
	return nil
}

func (f *File) validateTable(name string, t Table) error {
	if name == "" {
		return fmt.Errorf("%w: table with empty name", domain.ErrConfig)
	}
	if t.MaxDrops < t.GuaranteedDrops {
		return fmt.Errorf("%w: table %q: max_drops %d below guaranteed_drops %d",
			domain.ErrConfig, name, t.MaxDrops, t.GuaranteedDrops)
	}
	if len(t.Entries) == 0 {
		return fmt.Errorf("%w: table %q has no entries", domain.ErrConfig, name)
	}
	for i, e := range t.Entries {
		hasType := e.ItemType != nil && !e.ItemType.IsZero()
		if hasType == e.IsRef() {
			return fmt.Errorf("%w: table %q entry %d: exactly one of item_type and table_ref is required",
				domain.ErrConfig, name, i)
		}
		if hasType && (!e.ItemType.Category.Valid() || e.ItemType.Kind == "") {
			return fmt.Errorf("%w: table %q entry %d: %w %q", domain.ErrConfig, name, i, domain.ErrUnknownItemType, e.ItemType)
		}
		if e.Weight <= 0 {
			return fmt.Errorf("%w: table %q entry %d: weight must be positive", domain.ErrConfig, name, i)
		}
		q := e.Range()
		if q.Min < 0 || q.Max < q.Min {
			return fmt.Errorf("%w: table %q entry %d: invalid quantity %d-%d", domain.ErrConfig, name, i, q.Min, q.Max)
		}
		if e.RarityOverride != nil && !e.RarityOverride.Valid() {
			return fmt.Errorf("%w: table %q entry %d: %w", domain.ErrConfig, name, i, domain.ErrInvalidRarity)
		}
		if e.IsRef() {
			if _, ok := f.Tables[e.TableRef]; !ok {
				return fmt.Errorf("%w: table %q entry %d references %w %q",
					domain.ErrConfig, name, i, domain.ErrUnknownTable, e.TableRef)
			}
		}
	}
	return nil
}

// Stats summarizes a registry.
type Stats struct {
	Tables            int `json:"tables"`
	Entries           int `json:"entries"`
	MonsterMappings   int `json:"monster_mappings"`
	DepthMappings     int `json:"depth_mappings"`
	SpecialMappings   int `json:"special_mappings"`
	ContainerMappings int `json:"container_mappings"`
}

func sortedBuckets(in []DepthBucket) []DepthBucket {
	out := slices.Clone(in)
	slices.SortFunc(out, func(a, b DepthBucket) int { return cmp.Compare(a.Min, b.Min) })
	return out
}

// lowerKeys returns m with lower-cased keys so lookups ignore case.
func lowerKeys(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[strings.ToLower(k)] = v
	}
	return out
}

func cloneTables(in map[string]Table) map[string]Table {
	out := make(map[string]Table, len(in))
	for name, t := range in {
		entries := make([]Entry, len(t.Entries))
		for i, e := range t.Entries {
			if e.ItemType != nil {
				it := *e.ItemType
				e.ItemType = &it
			}
			if e.Quantity != nil {
				q := *e.Quantity
				e.Quantity = &q
			}
			if e.RarityOverride != nil {
				r := *e.RarityOverride
				e.RarityOverride = &r
			}
			entries[i] = e
		}
		t.Entries = entries
		out[name] = t
	}
	return out
}
