package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRarity_Ordering(t *testing.T) {
	all := AllRarities()
	require.Len(t, all, 7)
	for i := 1; i < len(all); i++ {
		assert.Greater(t, all[i], all[i-1])
	}
	assert.True(t, RarityRare > RarityCommon)
}

func TestParseRarity(t *testing.T) {
	tests := []struct {
		in      string
		want    Rarity
		wantErr bool
	}{
		{"trash", RarityTrash, false},
		{"Legendary", RarityLegendary, false},
		{" ARTIFACT ", RarityArtifact, false},
		{"mythic", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRarity(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidRarity)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRarity_JSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(map[string]Rarity{"r": RarityEpic})
	require.NoError(t, err)
	assert.JSONEq(t, `{"r":"epic"}`, string(data))

	var back map[string]Rarity
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, RarityEpic, back["r"])

	_, err = json.Marshal(Rarity(42))
	assert.Error(t, err)
}

func TestParseItemType(t *testing.T) {
	got, err := ParseItemType("Weapon/Sword")
	require.NoError(t, err)
	assert.Equal(t, Weapon("sword"), got)
	assert.Equal(t, "weapon/sword", got.String())

	_, err = ParseItemType("sword")
	assert.ErrorIs(t, err, ErrUnknownItemType)

	_, err = ParseItemType("vehicle/cart")
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestItemType_AsJSONMapKey(t *testing.T) {
	in := map[ItemType]int{Armor("chest"): 2, Material("gem"): 5}
	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"armor/chest":2,"material/gem":5}`, string(data))

	var out map[ItemType]int
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestParseGenerationContext(t *testing.T) {
	for _, c := range AllContexts() {
		got, err := ParseGenerationContext(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
	_, err := ParseGenerationContext("shopping")
	assert.ErrorIs(t, err, ErrInvalidContext)
}

func TestStats_Clone(t *testing.T) {
	var nilStats Stats
	assert.NotNil(t, nilStats.Clone())

	orig := Stats{"damage": 4}
	c := orig.Clone()
	c["damage"] = 9
	assert.Equal(t, 4, orig["damage"])
}

func TestItemSpec_Helpers(t *testing.T) {
	spec := ItemSpec{
		Value:    12,
		Quantity: 3,
		Affixes:  []Affix{{Name: "Sharp"}},
	}
	assert.Equal(t, 36, spec.TotalValue())
	assert.True(t, spec.HasAffix("Sharp"))
	assert.False(t, spec.HasAffix("Heavy"))
}
