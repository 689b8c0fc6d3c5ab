// Package generator turns an item request (optional type, depth, context,
// optional forced rarity) into a fully specified item: base stats from the
// catalog, a rarity roll, depth scaling, stat affixes and a name.
package generator

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/osse101/delvegen/internal/affix"
	"github.com/osse101/delvegen/internal/catalog"
	"github.com/osse101/delvegen/internal/domain"
	"github.com/osse101/delvegen/internal/logger"
	"github.com/osse101/delvegen/internal/metrics"
	"github.com/osse101/delvegen/internal/naming"
	"github.com/osse101/delvegen/internal/rng"
	"github.com/osse101/delvegen/internal/scaling"
	"github.com/osse101/delvegen/internal/utils"
	"github.com/osse101/delvegen/internal/validation"
)

// Request describes one item to generate. A nil Type lets the generation
// context choose; a nil Rarity rolls one from the depth-scaled weights.
type Request struct {
	Type    *domain.ItemType
	Depth   int
	Context domain.GenerationContext
	Rarity  *domain.Rarity
}

// Outcome is a generated item plus recoverable diagnostics, such as an
// empty affix pool, that did not stop generation.
type Outcome struct {
	Spec     domain.ItemSpec
	Warnings []error
}

// ItemGenerator is the capability consumed by loot resolution.
type ItemGenerator interface {
	GenerateItem(ctx context.Context, req Request, src rng.Source) (domain.ItemSpec, error)
	Generate(ctx context.Context, req Request, src rng.Source) (Outcome, error)
}

// Config wires a Generator. Nil fields get the stock implementations.
type Config struct {
	Catalog  *catalog.Catalog
	Affixes  *affix.Registry
	Names    naming.Generator
	Settings *scaling.Settings
}

// Generator is safe for concurrent use by callers holding independent
// random sources. Settings can be swapped between calls.
type Generator struct {
	catalog *catalog.Catalog
	affixes *affix.Registry
	names   naming.Generator

	mu       sync.RWMutex
	settings scaling.Settings
}

// New creates a generator from cfg.
func New(cfg Config) (*Generator, error) {
	g := &Generator{
		catalog: cfg.Catalog,
		affixes: cfg.Affixes,
		names:   cfg.Names,
	}
	if g.catalog == nil {
		g.catalog = catalog.Default()
	}
	if g.affixes == nil {
		g.affixes = affix.Default()
	}
	if g.names == nil {
		g.names = naming.NewGeneratorWithPools(naming.DefaultPools())
	}

	settings := scaling.DefaultSettings()
	if cfg.Settings != nil {
		settings = *cfg.Settings
	}
	if err := g.SetSettings(settings); err != nil {
		return nil, err
	}
	return g, nil
}

// Settings returns the active generation settings.
func (g *Generator) Settings() scaling.Settings {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.settings
}

// SetSettings validates and installs new generation settings.
func (g *Generator) SetSettings(s scaling.Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	g.mu.Lock()
	g.settings = s
	g.mu.Unlock()
	return nil
}

// LoadSettings reads settings from path and installs them.
func (g *Generator) LoadSettings(path string, sv validation.SchemaValidator) error {
	s, err := scaling.LoadSettings(path, sv)
	if err != nil {
		return err
	}
	if err := g.SetSettings(s); err != nil {
		return err
	}
	logger.Info(LogMsgSettingsLoaded, LogFieldPath, path)
	return nil
}

// Catalog returns the base item catalog.
func (g *Generator) Catalog() *catalog.Catalog {
	return g.catalog
}

// Affixes returns the affix registry.
func (g *Generator) Affixes() *affix.Registry {
	return g.affixes
}

// Names returns the name generator.
func (g *Generator) Names() naming.Generator {
	return g.names
}

// GenerateItem produces one item. See Generate for the draw order.
func (g *Generator) GenerateItem(ctx context.Context, req Request, src rng.Source) (domain.ItemSpec, error) {
	out, err := g.Generate(ctx, req, src)
	if err != nil {
		return domain.ItemSpec{}, err
	}
	return out.Spec, nil
}

// Generate produces one item and its diagnostics. Randomness is consumed in
// a fixed order: item type (only when not requested), rarity (only when not
// forced), affix count (only when the rarity allows more than one count),
// affix selection, then name. Invalid input fails before any draw.
func (g *Generator) Generate(ctx context.Context, req Request, src rng.Source) (Outcome, error) {
	if req.Depth < 0 {
		metrics.GenerationErrors.WithLabelValues(ReasonInvalidDepth).Inc()
		return Outcome{}, fmt.Errorf("%w: got %d", domain.ErrInvalidDepth, req.Depth)
	}
	if req.Rarity != nil && !req.Rarity.Valid() {
		metrics.GenerationErrors.WithLabelValues(ReasonInvalidRarity).Inc()
		return Outcome{}, fmt.Errorf("%w: %d", domain.ErrInvalidRarity, int(*req.Rarity))
	}

	settings := g.Settings()

	var itemType domain.ItemType
	if req.Type != nil {
		itemType = *req.Type
	} else {
		t, err := g.catalog.PickType(req.Context, src)
		if err != nil {
			metrics.GenerationErrors.WithLabelValues(ReasonBadContext).Inc()
			return Outcome{}, err
		}
		itemType = t
	}

	base, err := g.catalog.Lookup(itemType)
	if err != nil {
		metrics.GenerationErrors.WithLabelValues(ReasonUnknownType).Inc()
		return Outcome{}, err
	}

	rarity, err := g.rollRarity(req, settings, src)
	if err != nil {
		return Outcome{}, err
	}

	ds := settings.DepthScaling
	profiles := settings.RarityProfiles

	spec := domain.ItemSpec{
		Type:      itemType,
		Rarity:    rarity,
		BaseStats: base.Stats.Clone(),
		Stats:     ds.ScaleStats(base.Stats, req.Depth),
		BaseValue: base.Value,
		Value:     ds.ScaleValue(base.Value, profiles.Multiplier(rarity), req.Depth),
		Weight:    base.Weight,
		Quantity:  1,
		Depth:     req.Depth,
	}

	var warnings []error
	minAffixes, maxAffixes := profiles.AffixRange(rarity)
	count := rng.Between(src, minAffixes, maxAffixes)
	affixes, err := g.affixes.Pick(itemType, count, src)
	if err == nil && len(affixes) < minAffixes {
		err = fmt.Errorf("%w: %s has %d affixes, %s needs %d", domain.ErrEmptyAffixPool, itemType, len(affixes), rarity, minAffixes)
	}
	if err != nil {
		if !errors.Is(err, domain.ErrEmptyAffixPool) {
			return Outcome{}, err
		}
		warnings = append(warnings, err)
		metrics.EmptyAffixPools.WithLabelValues(string(itemType.Category)).Inc()
		logger.FromContext(ctx).Warn(LogMsgEmptyAffixPool,
			LogFieldType, itemType.String(),
			LogFieldRarity, rarity.String(),
			LogFieldError, err)
	}
	applyAffixes(&spec, affixes)

	spec.Magical = len(spec.Affixes) > 0 || rarity >= domain.RarityRare
	spec.Name = g.names.GenerateName(itemType, rarity, spec.Magical, src)

	if base.Effect != nil {
		e := base.Effect.Scaled(ds.ScaleStat(base.Effect.Magnitude, req.Depth))
		spec.Effect = &e
	}

	metrics.ItemsGenerated.WithLabelValues(rarity.String(), string(itemType.Category)).Inc()
	logger.FromContext(ctx).Debug(LogMsgItemGenerated,
		LogFieldType, itemType.String(),
		LogFieldRarity, rarity.String(),
		LogFieldDepth, req.Depth,
		LogFieldName, spec.Name,
		LogFieldValue, spec.Value,
		LogFieldAffixes, len(spec.Affixes))

	return Outcome{Spec: spec, Warnings: warnings}, nil
}

func (g *Generator) rollRarity(req Request, s scaling.Settings, src rng.Source) (domain.Rarity, error) {
	if req.Rarity != nil {
		return *req.Rarity, nil
	}
	table, err := s.RarityWeights.Table(req.Depth, s.DepthScaling)
	if err != nil {
		return 0, err
	}
	return table.Pick(src), nil
}

// applyAffixes adds affix stat and value bonuses to spec. Stats never drop
// below zero.
func applyAffixes(spec *domain.ItemSpec, affixes []domain.Affix) {
	if len(affixes) == 0 {
		return
	}
	for _, a := range affixes {
		for stat, bonus := range a.StatBonuses {
			spec.Stats[stat] = utils.ClampMin(spec.Stats[stat]+bonus, 0)
		}
		spec.Value += a.ValueBonus
	}
	spec.Affixes = affixes
	metrics.AffixesApplied.Add(float64(len(affixes)))
}
