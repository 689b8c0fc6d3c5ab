package loot

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/delvegen/internal/catalog"
	"github.com/osse101/delvegen/internal/domain"
	"github.com/osse101/delvegen/internal/generator"
	"github.com/osse101/delvegen/internal/metrics"
	"github.com/osse101/delvegen/internal/rng"
	"github.com/osse101/delvegen/internal/testing/leaktest"
	"github.com/osse101/delvegen/internal/validation"
)

// countingSource records how many values were drawn.
type countingSource struct {
	rng.Source
	draws int
}

func (c *countingSource) IntN(n int) int {
	c.draws++
	return c.Source.IntN(n)
}

func (c *countingSource) Float64() float64 {
	c.draws++
	return c.Source.Float64()
}

func newTestGenerator(t *testing.T) *generator.Generator {
	t.Helper()
	g, err := generator.New(generator.Config{})
	require.NoError(t, err)
	return g
}

func newDefaultManager(t *testing.T) *Manager {
	t.Helper()
	return Default(newTestGenerator(t), Options{})
}

func newManager(t *testing.T, tables map[string]Table, opts Options) *Manager {
	t.Helper()
	m, err := NewManager(newTestGenerator(t), File{Version: Version, Tables: tables}, opts)
	require.NoError(t, err)
	return m
}

func TestDefaultFile_Validates(t *testing.T) {
	f := DefaultFile()
	require.NoError(t, f.Validate())
	require.NoError(t, validation.ValidateStruct(f))

	m := newDefaultManager(t)
	assert.NoError(t, m.Check(catalog.Default()))
}

func TestResolve_EveryDefaultTable(t *testing.T) {
	m := newDefaultManager(t)
	ctx := context.Background()

	for _, name := range m.TableNames() {
		for depth := 0; depth <= 25; depth += 5 {
			res, err := m.Resolve(ctx, name, depth, domain.ContextRandom, rng.New(uint64(depth)))
			require.NoError(t, err, "table %s depth %d", name, depth)
			assert.Equal(t, name, res.Table)
			for _, item := range res.Items {
				assert.Positive(t, item.Quantity)
				assert.NotEmpty(t, item.Name)
				assert.Equal(t, depth, item.Depth)
			}
		}
	}
}

func TestResolve_InvalidDepth(t *testing.T) {
	m := newDefaultManager(t)
	src := &countingSource{Source: rng.New(1)}

	_, err := m.Resolve(context.Background(), "goblin", -1, domain.ContextCombat, src)

	assert.ErrorIs(t, err, domain.ErrInvalidDepth)
	assert.Zero(t, src.draws, "no randomness consumed on invalid depth")
}

func TestResolve_CanceledContext(t *testing.T) {
	m := newDefaultManager(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.Resolve(ctx, "goblin", 1, domain.ContextCombat, rng.New(1))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResolve_CycleTerminates(t *testing.T) {
	tables := map[string]Table{
		"a": table(1, 1, ref("b", 1, 1, 1)),
		"b": table(1, 1, ref("a", 1, 1, 1)),
	}

	tests := []struct {
		name string
		opts Options
	}{
		{"default limit", Options{}},
		{"short limit", Options{MaxRecursion: 3}},
		{"limit of one", Options{MaxRecursion: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newManager(t, tables, tt.opts)
			before := testutil.ToFloat64(metrics.RecursionTruncated.WithLabelValues("a")) +
				testutil.ToFloat64(metrics.RecursionTruncated.WithLabelValues("b"))

			res, err := m.Resolve(context.Background(), "a", 0, domain.ContextRandom, rng.New(7))

			require.NoError(t, err)
			assert.Empty(t, res.Items)
			require.Len(t, res.Warnings, 1)
			assert.ErrorIs(t, res.Warnings[0], domain.ErrTableCycle)

			after := testutil.ToFloat64(metrics.RecursionTruncated.WithLabelValues("a")) +
				testutil.ToFloat64(metrics.RecursionTruncated.WithLabelValues("b"))
			assert.Equal(t, before+1, after)
		})
	}
}

func TestResolve_CycleKeepsItemsAboveTheLimit(t *testing.T) {
	tables := map[string]Table{
		"a": table(2, 2,
			item(domain.Misc("coin"), 1, 1, 1),
			ref("a", 1, 1, 1),
		),
	}
	m := newManager(t, tables, Options{MaxRecursion: 2})

	res, err := m.Resolve(context.Background(), "a", 0, domain.ContextRandom, rng.New(3))
	require.NoError(t, err)

	// Each level draws two entries; anything drawn stays, only the branch past
	// the limit is cut.
	for _, w := range res.Warnings {
		assert.ErrorIs(t, w, domain.ErrTableCycle)
	}
	for _, it := range res.Items {
		assert.Equal(t, domain.Misc("coin"), it.Type)
	}
}

func TestResolve_IronChestDropsTwoToFourStacks(t *testing.T) {
	m := newDefaultManager(t)
	allowed := map[domain.ItemType]bool{
		domain.Weapon("sword"):      true,
		domain.Armor("chest"):       true,
		domain.Consumable("potion"): true,
		domain.Material("metal"):    true,
		domain.Misc("coin"):         true,
	}

	seen := map[int]bool{}
	for seed := uint64(0); seed < 300; seed++ {
		res, err := m.ResolveContainer(context.Background(), "iron_chest", 5, rng.New(seed))
		require.NoError(t, err)
		require.Equal(t, "iron_chest", res.Table)

		n := len(res.Items)
		require.GreaterOrEqual(t, n, 2)
		require.LessOrEqual(t, n, 4)
		seen[n] = true

		for _, it := range res.Items {
			assert.True(t, allowed[it.Type], "unexpected %s", it.Type)
			if it.Type == domain.Weapon("sword") || it.Type == domain.Armor("chest") {
				assert.Equal(t, domain.RarityUncommon, it.Rarity)
			}
		}
	}
	assert.True(t, seen[2], "guaranteed-only outcome never seen")
	assert.True(t, seen[3] || seen[4], "extra drops never included")
}

func TestResolve_UnknownTableFallsBack(t *testing.T) {
	m := newDefaultManager(t)
	before := testutil.ToFloat64(metrics.TableFallbacks.WithLabelValues(DefaultTableName))

	res, err := m.Resolve(context.Background(), "no_such_table", 2, domain.ContextRandom, rng.New(9))

	require.NoError(t, err)
	assert.Equal(t, DefaultTableName, res.Table)
	require.NotEmpty(t, res.Warnings)
	assert.ErrorIs(t, res.Warnings[0], domain.ErrUnknownTable)
	assert.NotEmpty(t, res.Items)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.TableFallbacks.WithLabelValues(DefaultTableName)))

	// Requested names never become label values.
	series := testutil.CollectAndCount(metrics.TableFallbacks)
	_, err = m.Resolve(context.Background(), "another_missing_table", 2, domain.ContextRandom, rng.New(9))
	require.NoError(t, err)
	assert.Equal(t, series, testutil.CollectAndCount(metrics.TableFallbacks))
}

func TestResolve_UnknownTableWithoutDefault(t *testing.T) {
	m := newManager(t, map[string]Table{
		"a": table(1, 1, item(domain.Misc("coin"), 1, 1, 1)),
	}, Options{DefaultTable: "missing"})

	_, err := m.Resolve(context.Background(), "zzz", 0, domain.ContextRandom, rng.New(1))
	assert.ErrorIs(t, err, domain.ErrUnknownTable)
}

func TestResolve_ReferenceMultipliesQuantity(t *testing.T) {
	m := newManager(t, map[string]Table{
		"outer": table(1, 1, ref("inner", 1, 3, 3)),
		"inner": table(1, 1, item(domain.Misc("coin"), 1, 2, 2)),
	}, Options{})

	res, err := m.Resolve(context.Background(), "outer", 0, domain.ContextRandom, rng.New(1))

	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, 6, res.Items[0].Quantity)
	assert.Equal(t, domain.Misc("coin"), res.Items[0].Type)
}

func TestResolve_ZeroQuantityDropsNothing(t *testing.T) {
	m := newManager(t, map[string]Table{
		"empty": table(3, 3,
			item(domain.Weapon("sword"), 1, 0, 0),
			ref("other", 1, 0, 0),
		),
		"other": table(1, 1, item(domain.Misc("coin"), 1, 1, 1)),
	}, Options{})

	res, err := m.Resolve(context.Background(), "empty", 0, domain.ContextRandom, rng.New(1))

	require.NoError(t, err)
	assert.Empty(t, res.Items)
	assert.Empty(t, res.Warnings)
}

func TestResolve_QuantityWithinRange(t *testing.T) {
	m := newManager(t, map[string]Table{
		"bones": table(1, 1, item(domain.Material("bone"), 1, 2, 4)),
	}, Options{})

	seen := map[int]bool{}
	for seed := uint64(0); seed < 200; seed++ {
		res, err := m.Resolve(context.Background(), "bones", 0, domain.ContextRandom, rng.New(seed))
		require.NoError(t, err)
		require.Len(t, res.Items, 1)
		q := res.Items[0].Quantity
		require.GreaterOrEqual(t, q, 2)
		require.LessOrEqual(t, q, 4)
		seen[q] = true
	}
	assert.Len(t, seen, 3)
}

func TestResolve_Deterministic(t *testing.T) {
	m := newDefaultManager(t)
	ctx := context.Background()

	first, err := m.ResolveMonster(ctx, "dragon", 12, rng.New(42))
	require.NoError(t, err)
	second, err := m.ResolveMonster(ctx, "dragon", 12, rng.New(42))
	require.NoError(t, err)

	assert.Equal(t, first.Items, second.Items)
	assert.GreaterOrEqual(t, len(first.Items), 3)
}

func TestResolve_PassesEntryToGenerator(t *testing.T) {
	gen := new(MockItemGenerator)
	epic := domain.RarityEpic
	sword := domain.Weapon("sword")
	gen.On("Generate", mock.Anything, mock.MatchedBy(func(req generator.Request) bool {
		return req.Type != nil && *req.Type == sword &&
			req.Rarity != nil && *req.Rarity == epic &&
			req.Depth == 4 && req.Context == domain.ContextTreasure
	}), mock.Anything).Return(generator.Outcome{
		Spec:     domain.ItemSpec{Type: sword, Rarity: epic, Name: "Blade", Quantity: 1},
		Warnings: []error{domain.ErrEmptyAffixPool},
	}, nil).Once()

	m, err := NewManager(gen, File{Version: Version, Tables: map[string]Table{
		"t": table(1, 1, rare(item(sword, 1, 2, 2), epic)),
	}}, Options{})
	require.NoError(t, err)

	res, err := m.Resolve(context.Background(), "t", 4, domain.ContextTreasure, rng.New(1))

	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, 2, res.Items[0].Quantity)
	assert.Equal(t, "Blade", res.Items[0].Name)
	require.Len(t, res.Warnings, 1)
	assert.ErrorIs(t, res.Warnings[0], domain.ErrEmptyAffixPool)
	gen.AssertExpectations(t)
}

func TestResolve_GeneratorErrorAborts(t *testing.T) {
	gen := new(MockItemGenerator)
	gen.On("Generate", mock.Anything, mock.Anything, mock.Anything).
		Return(generator.Outcome{}, domain.ErrConfig)

	m, err := NewManager(gen, File{Version: Version, Tables: map[string]Table{
		"t": table(1, 1, item(domain.Weapon("sword"), 1, 1, 1)),
	}}, Options{})
	require.NoError(t, err)

	_, err = m.Resolve(context.Background(), "t", 0, domain.ContextRandom, rng.New(1))
	assert.ErrorIs(t, err, domain.ErrConfig)
}

func TestMappings(t *testing.T) {
	m := newDefaultManager(t)

	t.Run("monsters", func(t *testing.T) {
		assert.Equal(t, "goblin", m.MonsterTable("Rat"))
		assert.Equal(t, "skeleton", m.MonsterTable("Zombie"))
		assert.Equal(t, "orc", m.MonsterTable("troll"))
		assert.Equal(t, "dragon", m.MonsterTable("Dragon"))
		assert.Equal(t, DefaultMonsterTable, m.MonsterTable("Beholder"))
	})

	t.Run("depth", func(t *testing.T) {
		tests := []struct {
			depth int
			want  string
		}{
			{0, "depth_1_5"},
			{5, "depth_1_5"},
			{6, "depth_6_10"},
			{10, "depth_6_10"},
			{11, "depth_11_20"},
			{20, "depth_11_20"},
			{99, "depth_11_20"},
		}
		for _, tt := range tests {
			assert.Equal(t, tt.want, m.DepthTable(tt.depth), "depth %d", tt.depth)
		}
	})

	t.Run("locations", func(t *testing.T) {
		assert.Equal(t, "library", m.LocationTable("Altar", 3))
		assert.Equal(t, "armory", m.LocationTable("Forge", 3))
		assert.Equal(t, "treasury", m.LocationTable("treasury", 3))
		assert.Equal(t, "depth_6_10", m.LocationTable("Cellar", 8))
	})

	t.Run("containers", func(t *testing.T) {
		assert.Equal(t, "wooden_chest", m.ContainerTable("Chest"))
		assert.Equal(t, "iron_chest", m.ContainerTable("metal_chest"))
		assert.Equal(t, "golden_chest", m.ContainerTable("TREASURE_CHEST"))
		assert.Equal(t, "golden_chest", m.ContainerTable("gold_chest"))
		assert.Equal(t, DefaultContainerName, m.ContainerTable("barrel"))
	})
}

func TestResolveIndirections(t *testing.T) {
	m := newDefaultManager(t)
	ctx := context.Background()

	res, err := m.ResolveMonster(ctx, "Spider", 2, rng.New(1))
	require.NoError(t, err)
	assert.Equal(t, "goblin", res.Table)

	res, err = m.ResolveDepth(ctx, 15, rng.New(1))
	require.NoError(t, err)
	assert.Equal(t, "depth_11_20", res.Table)

	res, err = m.ResolveLocation(ctx, "Library", 15, rng.New(1))
	require.NoError(t, err)
	assert.Equal(t, "library", res.Table)

	res, err = m.ResolveLocation(ctx, "Corridor", 7, rng.New(1))
	require.NoError(t, err)
	assert.Equal(t, "depth_6_10", res.Table)

	res, err = m.ResolveContainer(ctx, "golden_chest", 7, rng.New(1))
	require.NoError(t, err)
	assert.Equal(t, "golden_chest", res.Table)

	_, err = m.ResolveDepth(ctx, -3, rng.New(1))
	assert.ErrorIs(t, err, domain.ErrInvalidDepth)
	_, err = m.ResolveLocation(ctx, "Library", -3, rng.New(1))
	assert.ErrorIs(t, err, domain.ErrInvalidDepth)
}

func TestDepthTable_NoBucketsUsesDefault(t *testing.T) {
	m := newManager(t, map[string]Table{
		"fallback": table(1, 1, item(domain.Misc("coin"), 1, 1, 1)),
	}, Options{DefaultTable: "fallback"})

	assert.Equal(t, "fallback", m.DepthTable(4))
}

func TestStats(t *testing.T) {
	m := newDefaultManager(t)

	assert.Equal(t, Stats{
		Tables:            18,
		Entries:           67,
		MonsterMappings:   8,
		DepthMappings:     3,
		SpecialMappings:   5,
		ContainerMappings: 7,
	}, m.Stats())
}

func TestCheck_UnknownItemType(t *testing.T) {
	m := newManager(t, map[string]Table{
		"t": table(1, 1, item(domain.Weapon("lightsaber"), 1, 1, 1)),
	}, Options{})

	err := m.Check(catalog.Default())
	assert.ErrorIs(t, err, domain.ErrConfig)
	assert.ErrorIs(t, err, domain.ErrUnknownItemType)
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	gen := newTestGenerator(t)
	m := Default(gen, Options{})
	path := filepath.Join(t.TempDir(), "loot_tables.json")

	require.NoError(t, m.Save(path))
	loaded, err := Load(path, gen, Options{Validator: validation.NewSchemaValidator()})

	require.NoError(t, err)
	assert.Equal(t, m.File(), loaded.File())
	assert.Equal(t, m.Stats(), loaded.Stats())
}

func TestReload(t *testing.T) {
	m := newDefaultManager(t)
	ctx := context.Background()
	dir := t.TempDir()

	// Warm the compiled-table cache with the stock goblin table.
	_, err := m.ResolveMonster(ctx, "goblin", 1, rng.New(1))
	require.NoError(t, err)

	small := File{
		Version: Version,
		Tables: map[string]Table{
			"goblin": table(1, 1, item(domain.Consumable("potion"), 1, 1, 1)),
		},
	}
	good := filepath.Join(dir, "good.json")
	require.NoError(t, SaveFile(good, small))

	require.NoError(t, m.Reload(good))
	assert.False(t, m.Has("dragon"))
	for seed := uint64(0); seed < 20; seed++ {
		res, err := m.ResolveMonster(ctx, "goblin", 1, rng.New(seed))
		require.NoError(t, err)
		require.Len(t, res.Items, 1)
		assert.Equal(t, domain.Consumable("potion"), res.Items[0].Type)
	}

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"version": "1.0", "tables": {"x": {"entries": []}}}`), 0644))

	err = m.Reload(bad)
	assert.ErrorIs(t, err, domain.ErrConfig)
	assert.True(t, m.Has("goblin"), "tables kept after a failed reload")
	assert.Equal(t, 1, m.Stats().Tables)

	err = m.Reload(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, domain.ErrConfig)
}

func TestResolveBatch(t *testing.T) {
	m := newDefaultManager(t)
	reqs := []Request{
		{Table: "goblin", Depth: 1, Context: domain.ContextCombat},
		{Table: "iron_chest", Depth: 4, Context: domain.ContextTreasure},
		{Table: "treasury", Depth: 12, Context: domain.ContextTreasure},
		{Table: "library", Depth: 7, Context: domain.ContextTreasure},
	}

	var results []*Result
	leaktest.CheckNoGoroutineLeak(t, func() {
		var err error
		results, err = m.ResolveBatch(context.Background(), reqs, 99)
		require.NoError(t, err)
	})

	require.Len(t, results, len(reqs))
	for i, req := range reqs {
		want, err := m.Resolve(context.Background(), req.Table, req.Depth, req.Context, rng.New(BatchSeed(99, i)))
		require.NoError(t, err)
		assert.Equal(t, want.Items, results[i].Items, "request %d", i)
	}
}

func TestResolveBatch_FailureReturnsError(t *testing.T) {
	m := newDefaultManager(t)

	_, err := m.ResolveBatch(context.Background(), []Request{
		{Table: "goblin", Depth: 1},
		{Table: "goblin", Depth: -1},
	}, 1)

	assert.ErrorIs(t, err, domain.ErrInvalidDepth)
}

func TestResolve_ConcurrentWithReload(t *testing.T) {
	m := newDefaultManager(t)
	path := filepath.Join(t.TempDir(), "loot.json")
	require.NoError(t, m.Save(path))

	leaktest.RunWorkers(t, 6, func(ctx context.Context, worker int) error {
		src := rng.New(uint64(worker))
		for i := 0; i < 50; i++ {
			if worker == 0 && i%10 == 0 {
				if err := m.Reload(path); err != nil {
					return err
				}
				continue
			}
			if _, err := m.ResolveMonster(ctx, "orc", i%15, src); err != nil {
				return err
			}
		}
		return nil
	})
}

func TestSpawn(t *testing.T) {
	m := newDefaultManager(t)
	ctx := context.Background()
	pos := domain.Position{X: 3, Y: 4}
	items := []domain.ItemSpec{{Name: "Rusty Dagger", Quantity: 1}, {Name: "Gold Coins", Quantity: 12}}

	t.Run("all created", func(t *testing.T) {
		creator := new(MockItemCreator)
		creator.On("CreateItem", ctx, items[0], pos).Return(domain.ItemHandle(10), nil).Once()
		creator.On("CreateItem", ctx, items[1], pos).Return(domain.ItemHandle(11), nil).Once()

		handles, err := m.Spawn(ctx, creator, items, pos)

		require.NoError(t, err)
		assert.Equal(t, []domain.ItemHandle{10, 11}, handles)
		creator.AssertExpectations(t)
	})

	t.Run("stops at first failure", func(t *testing.T) {
		creator := new(MockItemCreator)
		boom := errors.New("world full")
		creator.On("CreateItem", ctx, items[0], pos).Return(domain.ItemHandle(0), boom).Once()

		handles, err := m.Spawn(ctx, creator, items, pos)

		assert.ErrorIs(t, err, boom)
		assert.Empty(t, handles)
		creator.AssertNotCalled(t, "CreateItem", ctx, items[1], pos)
	})
}
