package loot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/delvegen/internal/domain"
	"github.com/osse101/delvegen/internal/validation"
)

func TestFile_Validate(t *testing.T) {
	sword := domain.Weapon("sword")
	coin := item(domain.Misc("coin"), 1, 1, 1)
	bogus := domain.Rarity(42)

	tests := []struct {
		name    string
		file    File
		wantErr error
	}{
		{
			name: "valid with cycle",
			file: File{Version: Version, Tables: map[string]Table{
				"a": table(1, 1, ref("b", 1, 1, 1)),
				"b": table(1, 1, ref("a", 1, 1, 1)),
			}},
		},
		{
			name: "both item and ref",
			file: File{Version: Version, Tables: map[string]Table{
				"a": table(1, 1, Entry{ItemType: &sword, TableRef: "a", Weight: 1}),
			}},
			wantErr: domain.ErrConfig,
		},
		{
			name: "neither item nor ref",
			file: File{Version: Version, Tables: map[string]Table{
				"a": table(1, 1, Entry{Weight: 1}),
			}},
			wantErr: domain.ErrConfig,
		},
		{
			name: "unknown reference",
			file: File{Version: Version, Tables: map[string]Table{
				"a": table(1, 1, ref("gold", 1, 1, 1)),
			}},
			wantErr: domain.ErrUnknownTable,
		},
		{
			name: "max below guaranteed",
			file: File{Version: Version, Tables: map[string]Table{
				"a": table(3, 1, coin),
			}},
			wantErr: domain.ErrConfig,
		},
		{
			name: "inverted quantity",
			file: File{Version: Version, Tables: map[string]Table{
				"a": table(1, 1, item(sword, 1, 5, 2)),
			}},
			wantErr: domain.ErrConfig,
		},
		{
			name: "zero weight",
			file: File{Version: Version, Tables: map[string]Table{
				"a": table(1, 1, item(sword, 0, 1, 1)),
			}},
			wantErr: domain.ErrConfig,
		},
		{
			name: "invalid rarity override",
			file: File{Version: Version, Tables: map[string]Table{
				"a": table(1, 1, Entry{ItemType: &sword, Weight: 1, RarityOverride: &bogus}),
			}},
			wantErr: domain.ErrInvalidRarity,
		},
		{
			name: "monster maps to unknown table",
			file: File{Version: Version,
				Tables:        map[string]Table{"a": table(1, 1, coin)},
				MonsterTables: map[string]string{"rat": "vermin"},
			},
			wantErr: domain.ErrUnknownTable,
		},
		{
			name: "overlapping depth buckets",
			file: File{Version: Version,
				Tables: map[string]Table{"a": table(1, 1, coin)},
				DepthTables: []DepthBucket{
					{Min: 0, Max: 5, Table: "a"},
					{Min: 5, Max: 9, Table: "a"},
				},
			},
			wantErr: domain.ErrConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.file.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, domain.ErrConfig)
		})
	}
}

func TestEntry_DefaultQuantity(t *testing.T) {
	sword := domain.Weapon("sword")
	assert.Equal(t, One, Entry{ItemType: &sword, Weight: 1}.Range())
}

func TestParseFile(t *testing.T) {
	sv := validation.NewSchemaValidator()

	t.Run("valid", func(t *testing.T) {
		f, err := ParseFile([]byte(`{
			"version": "1.0",
			"default_table": "bones",
			"tables": {
				"bones": {"entries": [{"item_type": "material/bone", "weight": 3, "quantity": {"min": 1, "max": 2}}], "guaranteed_drops": 1, "max_drops": 1}
			},
			"monster_tables": {"Skeleton": "bones"}
		}`), sv)

		require.NoError(t, err)
		require.Contains(t, f.Tables, "bones")
		e := f.Tables["bones"].Entries[0]
		assert.Equal(t, domain.Material("bone"), *e.ItemType)
		assert.Equal(t, Quantity{Min: 1, Max: 2}, e.Range())
		assert.Equal(t, "bones", f.DefaultTable)
	})

	t.Run("schema rejects bad rarity", func(t *testing.T) {
		_, err := ParseFile([]byte(`{"version": "1.0", "tables": {"t": {"entries": [
			{"item_type": "weapon/sword", "weight": 1, "rarity_override": "mythic"}
		]}}}`), sv)
		assert.ErrorIs(t, err, domain.ErrConfig)
	})

	t.Run("struct validation without schema", func(t *testing.T) {
		_, err := ParseFile([]byte(`{"version": "1.0", "tables": {"t": {"entries": [
			{"item_type": "weapon/sword", "weight": 1}
		], "guaranteed_drops": 2, "max_drops": 1}}}`), nil)
		assert.ErrorIs(t, err, domain.ErrConfig)
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := ParseFile([]byte(`{"version":`), nil)
		assert.ErrorIs(t, err, domain.ErrConfig)
	})
}

func TestLoadFile_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loot.yaml")
	doc := `
version: "1.0"
tables:
  crypt:
    guaranteed_drops: 1
    max_drops: 2
    entries:
      - item_type: material/bone
        weight: 5
        quantity: {min: 2, max: 4}
      - table_ref: coins
        weight: 1
        quantity: {min: 10, max: 20}
  coins:
    guaranteed_drops: 1
    max_drops: 1
    entries:
      - item_type: misc/coin
        weight: 1
        rarity_override: common
depth_tables:
  - {min: 0, max: 99, table: crypt}
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	f, err := LoadFile(path, validation.NewSchemaValidator())

	require.NoError(t, err)
	assert.Len(t, f.Tables, 2)
	require.Len(t, f.DepthTables, 1)
	assert.Equal(t, "crypt", f.DepthTables[0].Table)
	coin := f.Tables["coins"].Entries[0]
	require.NotNil(t, coin.RarityOverride)
	assert.Equal(t, domain.RarityCommon, *coin.RarityOverride)
}

func TestBundledConfigMatchesDefaults(t *testing.T) {
	f, err := LoadFile(filepath.Join("..", "..", "configs", "loot_tables.json"), validation.NewSchemaValidator())
	require.NoError(t, err)

	want := DefaultFile()
	assert.Equal(t, want.Tables, f.Tables)
	assert.Equal(t, want.MonsterTables, f.MonsterTables)
	assert.Equal(t, want.DepthTables, f.DepthTables)
	assert.Equal(t, want.SpecialTables, f.SpecialTables)
	assert.Equal(t, want.ContainerTables, f.ContainerTables)
	assert.Equal(t, want.DefaultTable, f.DefaultTable)
}
