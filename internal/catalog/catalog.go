// Package catalog is the static table of base items: the unscaled stats,
// value, carry weight and optional consumable effect of every item type the
// generator can produce, plus the per-context type distributions.
package catalog

import (
	"fmt"
	"slices"
	"strings"

	"github.com/osse101/delvegen/internal/domain"
	"github.com/osse101/delvegen/internal/effect"
	"github.com/osse101/delvegen/internal/rng"
)

// BaseItem is the unscaled template for one item type.
type BaseItem struct {
	Type   domain.ItemType
	Value  int
	Weight float64
	Stats  domain.Stats
	Effect *effect.Effect
}

// TypeWeight is one entry of a context's type distribution.
type TypeWeight struct {
	Type   domain.ItemType
	Weight int
}

// Catalog resolves item types to base items. It is immutable after
// construction and safe for concurrent use.
type Catalog struct {
	items    map[domain.ItemType]BaseItem
	contexts map[domain.GenerationContext]*rng.Table[TypeWeight]
}

// New builds a catalog. Every type named by a context distribution must be
// present in items, and every context must have a non-empty distribution.
func New(items []BaseItem, contexts map[domain.GenerationContext][]TypeWeight) (*Catalog, error) {
	c := &Catalog{
		items:    make(map[domain.ItemType]BaseItem, len(items)),
		contexts: make(map[domain.GenerationContext]*rng.Table[TypeWeight], len(contexts)),
	}

	for _, item := range items {
		if !item.Type.Category.Valid() || item.Type.Kind == "" {
			return nil, fmt.Errorf("%w: %w: %q", domain.ErrConfig, domain.ErrUnknownItemType, item.Type)
		}
		if _, dup := c.items[item.Type]; dup {
			return nil, fmt.Errorf("%w: duplicate base item %s", domain.ErrConfig, item.Type)
		}
		if item.Value < 0 || item.Weight < 0 {
			return nil, fmt.Errorf("%w: base item %s has negative value or weight", domain.ErrConfig, item.Type)
		}
		c.items[item.Type] = item
	}

	for _, genCtx := range domain.AllContexts() {
		weights := contexts[genCtx]
		for _, tw := range weights {
			if _, ok := c.items[tw.Type]; !ok {
				return nil, fmt.Errorf("%w: %w: %s in %s distribution", domain.ErrConfig, domain.ErrUnknownItemType, tw.Type, genCtx)
			}
		}
		table, err := rng.NewTable(weights, func(tw TypeWeight) int { return tw.Weight })
		if err != nil {
			return nil, fmt.Errorf("%w: %s type distribution: %v", domain.ErrConfig, genCtx, err)
		}
		c.contexts[genCtx] = table
	}

	return c, nil
}

// Lookup returns the base item for t. An unregistered type is a
// configuration error.
func (c *Catalog) Lookup(t domain.ItemType) (BaseItem, error) {
	item, ok := c.items[t]
	if !ok {
		return BaseItem{}, fmt.Errorf("%w: %w: %s", domain.ErrConfig, domain.ErrUnknownItemType, t)
	}
	return item, nil
}

// Has reports whether t is registered.
func (c *Catalog) Has(t domain.ItemType) bool {
	_, ok := c.items[t]
	return ok
}

// Types returns every registered type, sorted by text form.
func (c *Catalog) Types() []domain.ItemType {
	out := make([]domain.ItemType, 0, len(c.items))
	for t := range c.items {
		out = append(out, t)
	}
	slices.SortFunc(out, func(a, b domain.ItemType) int { return strings.Compare(a.String(), b.String()) })
	return out
}

// PickType draws one item type from the context's distribution with a single
// weighted draw.
func (c *Catalog) PickType(genCtx domain.GenerationContext, src rng.Source) (domain.ItemType, error) {
	table, ok := c.contexts[genCtx]
	if !ok {
		return domain.ItemType{}, fmt.Errorf("%w: %s", domain.ErrInvalidContext, genCtx)
	}
	return table.Pick(src).Type, nil
}

// ContextWeights returns the distribution used for genCtx.
func (c *Catalog) ContextWeights(genCtx domain.GenerationContext) []TypeWeight {
	table, ok := c.contexts[genCtx]
	if !ok {
		return nil
	}
	out := make([]TypeWeight, 0, table.Len())
	for i := 0; i < table.Len(); i++ {
		out = append(out, table.At(i))
	}
	return out
}
