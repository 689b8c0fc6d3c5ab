// Package naming synthesizes display names for generated items from data
// driven vocabulary pools. Names depend only on the item type, rarity,
// enchantment flag and the random source: the generator keeps no counters.
package naming

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/osse101/delvegen/internal/domain"
	"github.com/osse101/delvegen/internal/rng"
	"github.com/osse101/delvegen/internal/utils"
	"github.com/osse101/delvegen/internal/validation"
)

// Generator produces item names
type Generator interface {
	// GenerateName builds a name for an item of the given type and rarity.
	GenerateName(itemType domain.ItemType, rarity domain.Rarity, hasEnchantment bool, src rng.Source) string

	// BaseName picks a plain base name for the type.
	BaseName(itemType domain.ItemType, src rng.Source) string

	// Reload reloads the name pools from the configured path
	Reload() error

	// Save writes the current pools to path
	Save(path string) error
}

type generator struct {
	mu sync.RWMutex

	pools    Pools
	prefixes map[domain.Category]*rng.Table[NameAffix]
	suffixes map[domain.Category]*rng.Table[NameAffix]

	path      string
	validator validation.SchemaValidator
}

// NewGenerator creates a name generator seeded with the stock pools. When
// path is non-empty the file's pools replace them; a missing file keeps the
// stock pools.
func NewGenerator(path string, sv validation.SchemaValidator) (Generator, error) {
	g := &generator{
		path:      path,
		validator: sv,
	}
	g.setPools(DefaultPools())

	if err := g.Reload(); err != nil {
		return nil, err
	}
	return g, nil
}

// NewGeneratorWithPools creates a generator over explicit pools.
func NewGeneratorWithPools(p Pools) Generator {
	g := &generator{}
	g.setPools(p.clone())
	return g
}

// Reload reloads the name pools. On error the current pools are kept.
func (g *generator) Reload() error {
	if g.path == "" {
		return nil
	}

	data, err := utils.ReadDataFile(g.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("%w: %s: %v", domain.ErrConfig, ErrContextFailedToLoadNames, err)
	}

	pools, err := ParsePools(data, g.validator)
	if err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.setPools(pools)
	return nil
}

// ParsePools decodes and validates name pools from JSON bytes.
func ParsePools(data []byte, sv validation.SchemaValidator) (Pools, error) {
	if sv != nil {
		if err := sv.ValidateBytes(data, validation.SchemaNames); err != nil {
			return Pools{}, fmt.Errorf("%w: %v", domain.ErrConfig, err)
		}
	}
	var p Pools
	if err := json.Unmarshal(data, &p); err != nil {
		return Pools{}, fmt.Errorf("%w: %s: %v", domain.ErrConfig, ErrContextFailedToDecodeNames, err)
	}
	if err := validation.ValidateStruct(p); err != nil {
		return Pools{}, fmt.Errorf("%w: %v", domain.ErrConfig, err)
	}
	return p, nil
}

// Save writes the current pools as JSON.
func (g *generator) Save(path string) error {
	g.mu.RLock()
	p := g.pools.clone()
	g.mu.RUnlock()
	if p.Version == "" {
		p.Version = PoolsVersion
	}
	return utils.SaveJSON(path, p)
}

// setPools installs pools and precompiles the per-category affix tables
// (caller must hold the write lock or own g exclusively).
func (g *generator) setPools(p Pools) {
	g.pools = p
	g.prefixes = compileAffixes(p.Prefixes)
	g.suffixes = compileAffixes(p.Suffixes)
}

func compileAffixes(affixes []NameAffix) map[domain.Category]*rng.Table[NameAffix] {
	out := make(map[domain.Category]*rng.Table[NameAffix])
	for _, c := range domain.AllCategories() {
		var applicable []NameAffix
		for _, a := range affixes {
			if a.Applies(c) {
				applicable = append(applicable, a)
			}
		}
		if table, err := rng.NewTable(applicable, NameAffix.weight); err == nil {
			out[c] = table
		}
	}
	return out
}

// GenerateName builds a name for an item of the given type and rarity.
func (g *generator) GenerateName(itemType domain.ItemType, rarity domain.Rarity, hasEnchantment bool, src rng.Source) string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	switch {
	case rarity >= domain.RarityArtifact:
		return g.artifactName(src)
	case rarity == domain.RarityLegendary:
		return g.legendaryName(itemType, src)
	case rarity >= domain.RarityRare:
		return g.magicalName(itemType, hasEnchantment, src)
	case rarity == domain.RarityUncommon:
		if hasEnchantment || rng.Chance(src, 1, UncommonMagicOdds) {
			return g.magicalName(itemType, true, src)
		}
		return g.qualityName(itemType, g.pools.FineQualities, src)
	default:
		base := g.baseName(itemType, src)
		if rng.Chance(src, 1, BasicQualityOdds) {
			return withPrefix(g.pools.BasicQualities, base, src)
		}
		return base
	}
}

// BaseName picks a plain base name for the type.
func (g *generator) BaseName(itemType domain.ItemType, src rng.Source) string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.baseName(itemType, src)
}

// baseName picks from the type's pool, or title-cases the kind when the
// type has none (caller must hold lock)
func (g *generator) baseName(itemType domain.ItemType, src rng.Source) string {
	if name, ok := rng.Element(src, g.pools.BaseNames[itemType]); ok {
		return name
	}
	kind := strings.ReplaceAll(itemType.Kind, "_", " ")
	if kind == "" {
		return UnknownItemName
	}
	// Casers carry state, so each call gets its own.
	return cases.Title(language.English).String(kind)
}

func (g *generator) qualityName(itemType domain.ItemType, qualities []string, src rng.Source) string {
	return withPrefix(qualities, g.baseName(itemType, src), src)
}

// magicalName composes "[Prefix] Base [Suffix]", each part with even odds.
// When force is set and neither part landed, one is added.
func (g *generator) magicalName(itemType domain.ItemType, force bool, src rng.Source) string {
	base := g.baseName(itemType, src)
	prefixes := g.prefixes[itemType.Category]
	suffixes := g.suffixes[itemType.Category]

	name := base
	added := false
	if rng.Chance(src, 1, PartOdds) && prefixes != nil {
		name = prefixes.Pick(src).Name + " " + name
		added = true
	}
	if rng.Chance(src, 1, PartOdds) && suffixes != nil {
		name = name + " " + suffixes.Pick(src).Name
		added = true
	}

	if !added && force {
		usePrefix := rng.Chance(src, 1, PartOdds)
		switch {
		case prefixes != nil && (usePrefix || suffixes == nil):
			name = prefixes.Pick(src).Name + " " + name
		case suffixes != nil:
			name = name + " " + suffixes.Pick(src).Name
		}
	}
	return name
}

func (g *generator) legendaryName(itemType domain.ItemType, src rng.Source) string {
	curated := g.pools.LegendaryNames[itemType.Category]
	if len(curated) > 0 && rng.Chance(src, 1, LegendaryCuratedOdds) {
		name, _ := rng.Element(src, curated)
		return name
	}

	base := g.baseName(itemType, src)
	name := withPrefix(g.pools.LegendaryPrefixes, base, src)
	if suffixes := g.suffixes[itemType.Category]; suffixes != nil && rng.Chance(src, 1, PartOdds) {
		name = name + " " + suffixes.Pick(src).Name
	}
	return name
}

func (g *generator) artifactName(src rng.Source) string {
	name, ok := rng.Element(src, g.pools.ArtifactNames)
	if !ok {
		name, _ = rng.Element(src, fallbackArtifactTitles)
	}
	return withArticle(name)
}

// withArticle prefixes "The " unless name already opens with an article.
func withArticle(name string) string {
	first, _, _ := strings.Cut(name, " ")
	for _, article := range articles {
		if strings.EqualFold(first, article) {
			return name
		}
	}
	return ArtifactArticle + " " + name
}

// withPrefix prepends a random word from words, or returns base unchanged
// when words is empty.
func withPrefix(words []string, base string, src rng.Source) string {
	word, ok := rng.Element(src, words)
	if !ok {
		return base
	}
	return word + " " + base
}
