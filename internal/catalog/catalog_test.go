package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/delvegen/internal/domain"
	"github.com/osse101/delvegen/internal/effect"
	"github.com/osse101/delvegen/internal/rng"
)

func TestDefault_Lookup(t *testing.T) {
	c := Default()

	sword, err := c.Lookup(domain.Weapon("sword"))
	require.NoError(t, err)
	assert.Equal(t, 50, sword.Value)
	assert.Equal(t, 8, sword.Stats[StatDamage])

	potion, err := c.Lookup(domain.Consumable("potion"))
	require.NoError(t, err)
	require.NotNil(t, potion.Effect)
	assert.Equal(t, effect.KindHeal, potion.Effect.Kind)

	_, err = c.Lookup(domain.Weapon("lightsaber"))
	assert.ErrorIs(t, err, domain.ErrConfig)
	assert.ErrorIs(t, err, domain.ErrUnknownItemType)
}

func TestDefault_TypesSorted(t *testing.T) {
	types := Default().Types()
	require.NotEmpty(t, types)
	for i := 1; i < len(types); i++ {
		assert.Less(t, types[i-1].String(), types[i].String())
	}
}

func TestPickType_Deterministic(t *testing.T) {
	c := Default()
	a, b := rng.New(7), rng.New(7)
	for i := 0; i < 200; i++ {
		ta, err := c.PickType(domain.ContextTreasure, a)
		require.NoError(t, err)
		tb, err := c.PickType(domain.ContextTreasure, b)
		require.NoError(t, err)
		require.Equal(t, ta, tb)
	}
}

func TestPickType_StaysInDistribution(t *testing.T) {
	c := Default()
	src := rng.New(11)
	for _, genCtx := range domain.AllContexts() {
		allowed := make(map[domain.ItemType]bool)
		for _, tw := range c.ContextWeights(genCtx) {
			allowed[tw.Type] = true
		}
		require.NotEmpty(t, allowed, genCtx.String())
		for i := 0; i < 500; i++ {
			typ, err := c.PickType(genCtx, src)
			require.NoError(t, err)
			assert.True(t, allowed[typ], "%s drew %s", genCtx, typ)
		}
	}
}

func TestPickType_CombatFavoursSwords(t *testing.T) {
	c := Default()
	src := rng.New(99)
	counts := make(map[domain.ItemType]int)
	const draws = 10000
	for i := 0; i < draws; i++ {
		typ, _ := c.PickType(domain.ContextCombat, src)
		counts[typ]++
	}
	assert.InDelta(t, 0.30, float64(counts[domain.Weapon("sword")])/draws, 0.02)
	assert.InDelta(t, 0.10, float64(counts[domain.Weapon("bow")])/draws, 0.02)
}

func TestNew_Rejects(t *testing.T) {
	items := []BaseItem{plain(domain.Weapon("sword"), 1, 1)}
	one := []TypeWeight{{domain.Weapon("sword"), 1}}
	full := map[domain.GenerationContext][]TypeWeight{
		domain.ContextRandom:   one,
		domain.ContextCombat:   one,
		domain.ContextTreasure: one,
		domain.ContextMerchant: one,
	}

	_, err := New(items, full)
	require.NoError(t, err)

	_, err = New(append(items, items[0]), full)
	assert.ErrorIs(t, err, domain.ErrConfig, "duplicate")

	missing := map[domain.GenerationContext][]TypeWeight{
		domain.ContextRandom:   {{domain.Weapon("axe"), 1}},
		domain.ContextCombat:   one,
		domain.ContextTreasure: one,
		domain.ContextMerchant: one,
	}
	_, err = New(items, missing)
	assert.ErrorIs(t, err, domain.ErrUnknownItemType)

	empty := map[domain.GenerationContext][]TypeWeight{domain.ContextRandom: one}
	_, err = New(items, empty)
	assert.ErrorIs(t, err, domain.ErrConfig, "contexts without a distribution")
}

func TestPickType_RandomIsUniformOverCategories(t *testing.T) {
	c := Default()
	src := rng.New(31)
	counts := make(map[domain.Category]int)
	const draws = 12000
	for i := 0; i < draws; i++ {
		typ, err := c.PickType(domain.ContextRandom, src)
		require.NoError(t, err)
		counts[typ.Category]++
	}

	require.Len(t, counts, len(domain.AllCategories()))
	for _, cat := range domain.AllCategories() {
		assert.InDelta(t, 1.0/6.0, float64(counts[cat])/draws, 0.02, "%s", cat)
	}
}
