// Package affix holds the per-item-type prefix and suffix pools and draws
// distinct affixes from them.
package affix

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/osse101/delvegen/internal/domain"
	"github.com/osse101/delvegen/internal/rng"
	"github.com/osse101/delvegen/internal/utils"
	"github.com/osse101/delvegen/internal/validation"
)

// AnyKind keys a category-wide fallback table, e.g. "weapon/any".
const AnyKind = "any"

// Version is written by Save.
const Version = "1.0"

// Table is the affix pool for one item type.
type Table struct {
	Prefixes []domain.Affix `json:"prefixes,omitempty" validate:"dive"`
	Suffixes []domain.Affix `json:"suffixes,omitempty" validate:"dive"`
}

// Pool returns prefixes followed by suffixes, with Type set from the slot.
func (t Table) Pool() []domain.Affix {
	out := make([]domain.Affix, 0, len(t.Prefixes)+len(t.Suffixes))
	for _, a := range t.Prefixes {
		a.Type = domain.AffixPrefix
		out = append(out, a)
	}
	for _, a := range t.Suffixes {
		a.Type = domain.AffixSuffix
		out = append(out, a)
	}
	return out
}

// Len is the total number of affixes in the table.
func (t Table) Len() int {
	return len(t.Prefixes) + len(t.Suffixes)
}

// File is the on-disk shape of an affix table file.
type File struct {
	Version string                    `json:"version" validate:"required"`
	Affixes map[domain.ItemType]Table `json:"affixes" validate:"dive"`
}

// Registry maps item types to affix tables. Lookups fall back to the
// category-wide "<category>/any" table when a type has none of its own.
// It is safe for concurrent use; Reload swaps the tables atomically.
type Registry struct {
	mu     sync.RWMutex
	tables map[domain.ItemType]Table
}

// NewRegistry validates tables and returns a registry over them.
func NewRegistry(tables map[domain.ItemType]Table) (*Registry, error) {
	if err := validateTables(tables); err != nil {
		return nil, err
	}
	return &Registry{tables: cloneTables(tables)}, nil
}

// Load reads an affix file (JSON or YAML), validating it against the bundled
// schema and struct tags.
func Load(path string, sv validation.SchemaValidator) (*Registry, error) {
	tables, err := readFile(path, sv)
	if err != nil {
		return nil, err
	}
	return &Registry{tables: tables}, nil
}

// Reload replaces the registry contents from path. On error the current
// tables are kept.
func (r *Registry) Reload(path string, sv validation.SchemaValidator) error {
	tables, err := readFile(path, sv)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.tables = tables
	r.mu.Unlock()
	return nil
}

// Save writes the registry in the file format read by Load.
func (r *Registry) Save(path string) error {
	r.mu.RLock()
	f := File{Version: Version, Affixes: cloneTables(r.tables)}
	r.mu.RUnlock()
	return utils.SaveJSON(path, f)
}

// Table returns the table used for t, following the category fallback.
func (r *Registry) Table(t domain.ItemType) (Table, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lookup(t)
}

func (r *Registry) lookup(t domain.ItemType) (Table, bool) {
	if table, ok := r.tables[t]; ok && table.Len() > 0 {
		return table, true
	}
	table, ok := r.tables[domain.NewItemType(t.Category, AnyKind)]
	if ok && table.Len() > 0 {
		return table, true
	}
	return Table{}, false
}

// Types returns the keys of every registered table, sorted.
func (r *Registry) Types() []domain.ItemType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := slices.Collect(maps.Keys(r.tables))
	slices.SortFunc(keys, func(a, b domain.ItemType) int { return strings.Compare(a.String(), b.String()) })
	return keys
}

// Pick draws n affixes with distinct names for t, weighted and without
// replacement over the union of prefixes and suffixes. Asking for zero
// consumes no randomness. When t has no pool, nothing is drawn and the
// returned error wraps domain.ErrEmptyAffixPool. A pool smaller than n
// yields every distinct affix it holds.
func (r *Registry) Pick(t domain.ItemType, n int, src rng.Source) ([]domain.Affix, error) {
	if n <= 0 {
		return nil, nil
	}

	r.mu.RLock()
	table, ok := r.lookup(t)
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrEmptyAffixPool, t)
	}

	picked := rng.SampleDistinct(src, table.Pool(),
		func(a domain.Affix) int { return a.Weight },
		func(a domain.Affix) string { return a.Name },
		n)
	for i := range picked {
		picked[i].StatBonuses = picked[i].StatBonuses.Clone()
	}
	return picked, nil
}

func readFile(path string, sv validation.SchemaValidator) (map[domain.ItemType]Table, error) {
	data, err := utils.ReadDataFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrConfig, ErrContextFailedToReadAffixes, err)
	}
	return Parse(data, sv)
}

// Parse decodes and validates affix tables from JSON bytes.
func Parse(data []byte, sv validation.SchemaValidator) (map[domain.ItemType]Table, error) {
	if sv != nil {
		if err := sv.ValidateBytes(data, validation.SchemaAffixes); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrConfig, err)
		}
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrConfig, ErrContextFailedToDecodeAffixes, err)
	}
	if err := validation.ValidateStruct(f); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrConfig, err)
	}
	if err := validateTables(f.Affixes); err != nil {
		return nil, err
	}
	if f.Affixes == nil {
		f.Affixes = make(map[domain.ItemType]Table)
	}
	return f.Affixes, nil
}

func validateTables(tables map[domain.ItemType]Table) error {
	for t, table := range tables {
		if !t.Category.Valid() || t.Kind == "" {
			return fmt.Errorf("%w: %w: %q", domain.ErrConfig, domain.ErrUnknownItemType, t)
		}
		seen := make(map[string]domain.AffixType, table.Len())
		for _, a := range table.Pool() {
			if a.Name == "" {
				return fmt.Errorf("%w: %s: affix without a name", domain.ErrConfig, t)
			}
			if a.Weight <= 0 {
				return fmt.Errorf("%w: %s: affix %q weight must be positive", domain.ErrConfig, t, a.Name)
			}
			if a.ValueBonus < 0 {
				return fmt.Errorf("%w: %s: affix %q value bonus is negative", domain.ErrConfig, t, a.Name)
			}
			// Names key the distinct draw, so they are unique across both slots.
			if slot, dup := seen[a.Name]; dup {
				return fmt.Errorf("%w: %s: %s %q duplicates a %s", domain.ErrConfig, t, a.Type, a.Name, slot)
			}
			seen[a.Name] = a.Type
		}
	}
	return nil
}

func cloneTables(in map[domain.ItemType]Table) map[domain.ItemType]Table {
	out := make(map[domain.ItemType]Table, len(in))
	for t, table := range in {
		out[t] = Table{
			Prefixes: slices.Clone(table.Prefixes),
			Suffixes: slices.Clone(table.Suffixes),
		}
	}
	return out
}
