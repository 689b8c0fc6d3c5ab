package loot

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/osse101/delvegen/internal/catalog"
	"github.com/osse101/delvegen/internal/domain"
	"github.com/osse101/delvegen/internal/generator"
	"github.com/osse101/delvegen/internal/logger"
	"github.com/osse101/delvegen/internal/metrics"
	"github.com/osse101/delvegen/internal/rng"
	"github.com/osse101/delvegen/internal/validation"
)

// Options tune a Manager. Zero values fall back to the loaded file, then to
// the package defaults.
type Options struct {
	MaxRecursion int
	DefaultTable string
	CacheSize    int
	// Validator checks files read by Load and Reload. Nil skips schema checks.
	Validator validation.SchemaValidator
}

// Result is the outcome of one resolution. Warnings hold recoverable
// problems (unknown table, truncated recursion, empty affix pool) that did
// not stop it.
type Result struct {
	Table    string            `json:"table"`
	Items    []domain.ItemSpec `json:"items"`
	Warnings []error           `json:"-"`
}

// registry is an immutable snapshot of loaded tables.
type registry struct {
	tables       map[string]Table
	monsters     map[string]string
	depths       []DepthBucket
	special      map[string]string
	containers   map[string]string
	defaultTable string
	maxRecursion int
}

func newRegistry(f File, opts Options) *registry {
	r := &registry{
		tables:       cloneTables(f.Tables),
		monsters:     lowerKeys(f.MonsterTables),
		depths:       sortedBuckets(f.DepthTables),
		special:      lowerKeys(f.SpecialTables),
		containers:   lowerKeys(f.ContainerTables),
		defaultTable: firstNonEmpty(opts.DefaultTable, f.DefaultTable, DefaultTableName),
		maxRecursion: firstPositive(opts.MaxRecursion, f.MaxRecursion, DefaultMaxRecursion),
	}
	return r
}

func (r *registry) file() File {
	return File{
		Version:         Version,
		DefaultTable:    r.defaultTable,
		MaxRecursion:    r.maxRecursion,
		Tables:          cloneTables(r.tables),
		MonsterTables:   maps.Clone(r.monsters),
		DepthTables:     slices.Clone(r.depths),
		SpecialTables:   maps.Clone(r.special),
		ContainerTables: maps.Clone(r.containers),
	}
}

// depthTable returns the bucket table for depth. Depths past every bucket
// use the deepest one; with no buckets the default table is used.
func (r *registry) depthTable(depth int) string {
	for _, b := range r.depths {
		if b.Contains(depth) {
			return b.Table
		}
	}
	if n := len(r.depths); n > 0 && depth > r.depths[n-1].Max {
		return r.depths[n-1].Table
	}
	return r.defaultTable
}

// Manager owns the loot tables and resolves them through an item generator.
// Resolutions hold a read lock for their whole run, so Reload never swaps
// tables under an in-flight resolution.
type Manager struct {
	gen  generator.ItemGenerator
	opts Options

	mu    sync.RWMutex
	reg   *registry
	cache *lru.Cache[string, *rng.Table[Entry]]
}

// NewManager validates f and returns a manager over it.
func NewManager(gen generator.ItemGenerator, f File, opts Options) (*Manager, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = DefaultCacheSize
	}
	cache, err := lru.New[string, *rng.Table[Entry]](opts.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create table cache: %w", err)
	}
	return &Manager{
		gen:   gen,
		opts:  opts,
		reg:   newRegistry(f, opts),
		cache: cache,
	}, nil
}

// Default returns a manager over the stock tables.
func Default(gen generator.ItemGenerator, opts Options) *Manager {
	m, err := NewManager(gen, DefaultFile(), opts)
	if err != nil {
		panic(err)
	}
	return m
}

// Load reads a loot table file and returns a manager over it.
func Load(path string, gen generator.ItemGenerator, opts Options) (*Manager, error) {
	f, err := LoadFile(path, opts.Validator)
	if err != nil {
		return nil, err
	}
	return NewManager(gen, f, opts)
}

// Reload replaces the tables from path. On error the current tables stay.
func (m *Manager) Reload(path string) error {
	f, err := LoadFile(path, m.opts.Validator)
	if err != nil {
		metrics.TableReloads.WithLabelValues(metrics.ResultFailure).Inc()
		logger.Warn(LogMsgReloadFailed, LogFieldPath, path, LogFieldError, err)
		return err
	}
	reg := newRegistry(f, m.opts)

	m.mu.Lock()
	m.reg = reg
	m.cache.Purge()
	m.mu.Unlock()

	metrics.TableReloads.WithLabelValues(metrics.ResultSuccess).Inc()
	logger.Info(LogMsgTablesReloaded, LogFieldPath, path, LogFieldTable, len(reg.tables))
	return nil
}

// Save writes the current tables in the format read by Load.
func (m *Manager) Save(path string) error {
	return SaveFile(path, m.File())
}

// File returns a copy of the current tables in file form.
func (m *Manager) File() File {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.reg.file()
}

// Stats counts tables, entries and mappings.
func (m *Manager) Stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s := Stats{
		Tables:            len(m.reg.tables),
		MonsterMappings:   len(m.reg.monsters),
		DepthMappings:     len(m.reg.depths),
		SpecialMappings:   len(m.reg.special),
		ContainerMappings: len(m.reg.containers),
	}
	for _, t := range m.reg.tables {
		s.Entries += len(t.Entries)
	}
	return s
}

// Has reports whether a table with the given name exists.
func (m *Manager) Has(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.reg.tables[name]
	return ok
}

// TableNames returns every table name, sorted.
func (m *Manager) TableNames() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Sorted(maps.Keys(m.reg.tables))
}

// Check verifies that every concrete entry names a type known to c.
func (m *Manager) Check(c *catalog.Catalog) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, name := range slices.Sorted(maps.Keys(m.reg.tables)) {
		for i, e := range m.reg.tables[name].Entries {
			if e.ItemType != nil && !c.Has(*e.ItemType) {
				return fmt.Errorf("%w: table %q entry %d: %w %q", domain.ErrConfig, name, i, domain.ErrUnknownItemType, e.ItemType)
			}
		}
	}
	return nil
}

// MonsterTable returns the table used for a monster. Unmapped monsters use
// the goblin table.
func (m *Manager) MonsterTable(monster string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.reg.monsters[strings.ToLower(monster)]; ok {
		return t
	}
	return DefaultMonsterTable
}

// DepthTable returns the table used for a dungeon depth.
func (m *Manager) DepthTable(depth int) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.reg.depthTable(depth)
}

// LocationTable returns the table mapped to a special location, or the
// depth table when the location has none.
func (m *Manager) LocationTable(location string, depth int) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.reg.special[strings.ToLower(location)]; ok {
		return t
	}
	return m.reg.depthTable(depth)
}

// ContainerTable returns the table for a container name or alias. Unknown
// containers use the wooden chest.
func (m *Manager) ContainerTable(container string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.reg.containers[strings.ToLower(container)]; ok {
		return t
	}
	return DefaultContainerName
}

// ResolveMonster rolls the loot dropped by a monster.
func (m *Manager) ResolveMonster(ctx context.Context, monster string, depth int, src rng.Source) (*Result, error) {
	return m.Resolve(ctx, m.MonsterTable(monster), depth, domain.ContextCombat, src)
}

// ResolveDepth rolls the random loot for a dungeon depth.
func (m *Manager) ResolveDepth(ctx context.Context, depth int, src rng.Source) (*Result, error) {
	if depth < 0 {
		return nil, fmt.Errorf("%w: got %d", domain.ErrInvalidDepth, depth)
	}
	return m.Resolve(ctx, m.DepthTable(depth), depth, domain.ContextRandom, src)
}

// ResolveLocation rolls the loot of a special location, falling back to the
// depth table.
func (m *Manager) ResolveLocation(ctx context.Context, location string, depth int, src rng.Source) (*Result, error) {
	if depth < 0 {
		return nil, fmt.Errorf("%w: got %d", domain.ErrInvalidDepth, depth)
	}
	return m.Resolve(ctx, m.LocationTable(location, depth), depth, domain.ContextTreasure, src)
}

// ResolveContainer rolls the contents of a container.
func (m *Manager) ResolveContainer(ctx context.Context, container string, depth int, src rng.Source) (*Result, error) {
	return m.Resolve(ctx, m.ContainerTable(container), depth, domain.ContextTreasure, src)
}

// resolution carries the per-call state of one Resolve.
type resolution struct {
	ctx      context.Context
	reg      *registry
	depth    int
	genCtx   domain.GenerationContext
	src      rng.Source
	warnings []error
}

func (r *resolution) warn(err error) {
	r.warnings = append(r.warnings, err)
}

// Resolve rolls the named table. An unknown name falls back to the default
// table with a warning; it is an error only when the default is missing too.
// Table references are followed up to the recursion limit, past which the
// branch is dropped with a warning wrapping domain.ErrTableCycle.
//
// Draw order per table: guaranteed entries, then for each extra slot an
// entry draw followed by an inclusion roll; for each selected entry its
// quantity, then its item or sub-table.
func (m *Manager) Resolve(ctx context.Context, name string, depth int, genCtx domain.GenerationContext, src rng.Source) (*Result, error) {
	if depth < 0 {
		return nil, fmt.Errorf("%w: got %d", domain.ErrInvalidDepth, depth)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ctx = logger.EnsureBatchID(ctx)

	m.mu.RLock()
	defer m.mu.RUnlock()

	r := &resolution{ctx: ctx, reg: m.reg, depth: depth, genCtx: genCtx, src: src}
	table, err := m.lookup(r, name)
	if err != nil {
		return nil, err
	}
	items, err := m.roll(r, table, 0)
	if err != nil {
		return nil, err
	}

	metrics.LootResolutions.WithLabelValues(table).Inc()
	metrics.LootItemsDropped.Observe(float64(len(items)))
	logger.FromContext(ctx).Debug(LogMsgLootResolved,
		LogFieldTable, table,
		LogFieldDepth, depth,
		LogFieldItems, len(items),
		LogFieldWarnings, len(r.warnings))

	return &Result{Table: table, Items: items, Warnings: r.warnings}, nil
}

// lookup returns name when it exists, otherwise the default table.
func (m *Manager) lookup(r *resolution, name string) (string, error) {
	if _, ok := r.reg.tables[name]; ok {
		return name, nil
	}
	fallback := r.reg.defaultTable
	if _, ok := r.reg.tables[fallback]; !ok {
		return "", fmt.Errorf("%w: %q (default %q is missing too)", domain.ErrUnknownTable, name, fallback)
	}
	r.warn(fmt.Errorf("%w: %q, using %q", domain.ErrUnknownTable, name, fallback))
	metrics.TableFallbacks.WithLabelValues(fallback).Inc()
	logger.FromContext(r.ctx).Warn(LogMsgUnknownTable, LogFieldTable, name, LogFieldFallback, fallback)
	return fallback, nil
}

func (m *Manager) compiled(name string, t Table) (*rng.Table[Entry], error) {
	if c, ok := m.cache.Get(name); ok {
		return c, nil
	}
	c, err := rng.NewTable(t.Entries, func(e Entry) int { return e.Weight })
	if err != nil {
		return nil, fmt.Errorf("%w: %s %q: %v", domain.ErrConfig, ErrContextFailedToCompileTable, name, err)
	}
	m.cache.Add(name, c)
	return c, nil
}

func (m *Manager) roll(r *resolution, name string, level int) ([]domain.ItemSpec, error) {
	t := r.reg.tables[name]
	c, err := m.compiled(name, t)
	if err != nil {
		return nil, err
	}

	var items []domain.ItemSpec
	for range t.GuaranteedDrops {
		got, err := m.drop(r, name, c.Pick(r.src), level)
		if err != nil {
			return nil, err
		}
		items = append(items, got...)
	}
	for range t.MaxDrops - t.GuaranteedDrops {
		e := c.Pick(r.src)
		if r.src.IntN(c.Total()) >= e.Weight {
			continue
		}
		got, err := m.drop(r, name, e, level)
		if err != nil {
			return nil, err
		}
		items = append(items, got...)
	}
	return items, nil
}

func (m *Manager) drop(r *resolution, from string, e Entry, level int) ([]domain.ItemSpec, error) {
	q := e.Range()
	n := rng.Between(r.src, q.Min, q.Max)
	if n <= 0 {
		return nil, nil
	}

	if e.IsRef() {
		if level+1 > r.reg.maxRecursion {
			r.warn(fmt.Errorf("%w: %q -> %q at level %d", domain.ErrTableCycle, from, e.TableRef, level+1))
			metrics.RecursionTruncated.WithLabelValues(from).Inc()
			logger.FromContext(r.ctx).Warn(LogMsgRecursionTruncate,
				LogFieldTable, from,
				LogFieldItem, e.label(),
				LogFieldLevel, level+1)
			return nil, nil
		}
		target, err := m.lookup(r, e.TableRef)
		if err != nil {
			return nil, err
		}
		sub, err := m.roll(r, target, level+1)
		if err != nil {
			return nil, err
		}
		for i := range sub {
			sub[i].Quantity *= n
		}
		return sub, nil
	}

	out, err := m.gen.Generate(r.ctx, generator.Request{
		Type:    e.ItemType,
		Depth:   r.depth,
		Context: r.genCtx,
		Rarity:  e.RarityOverride,
	}, r.src)
	if err != nil {
		return nil, fmt.Errorf("table %q entry %s: %w", from, e.label(), err)
	}
	out.Spec.Quantity = n
	r.warnings = append(r.warnings, out.Warnings...)
	return []domain.ItemSpec{out.Spec}, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstPositive(vals ...int) int {
	for _, v := range vals {
		if v > 0 {
			return v
		}
	}
	return 0
}
