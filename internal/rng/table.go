package rng

import (
	"errors"
	"fmt"
	"sort"
)

// ErrEmptyTable is returned when a table is built from no positive weights.
var ErrEmptyTable = errors.New("weighted table has no selectable entries")

// Table is a read-only weighted distribution over T, selected by a single
// roll in [0, Total) and a binary search over cumulative weights.
type Table[T any] struct {
	items []T
	cumul []int
	total int
}

// NewTable builds a table from items using weight to read each item's weight.
// Items with zero weight are kept out of the distribution. A negative weight
// is rejected: loaders are expected to have validated weights already.
func NewTable[T any](items []T, weight func(T) int) (*Table[T], error) {
	t := &Table[T]{
		items: make([]T, 0, len(items)),
		cumul: make([]int, 0, len(items)),
	}
	for i, it := range items {
		w := weight(it)
		if w < 0 {
			return nil, fmt.Errorf("entry %d has negative weight %d", i, w)
		}
		if w == 0 {
			continue
		}
		t.total += w
		t.items = append(t.items, it)
		t.cumul = append(t.cumul, t.total)
	}
	if t.total == 0 {
		return nil, ErrEmptyTable
	}
	return t, nil
}

// MustTable is NewTable for compiled-in distributions; it panics on error.
func MustTable[T any](items []T, weight func(T) int) *Table[T] {
	t, err := NewTable(items, weight)
	if err != nil {
		panic(err)
	}
	return t
}

// Total returns the sum of all weights.
func (t *Table[T]) Total() int {
	return t.total
}

// Len returns the number of selectable entries.
func (t *Table[T]) Len() int {
	return len(t.items)
}

// Pick draws one entry. Exactly one value is consumed from src.
func (t *Table[T]) Pick(src Source) T {
	return t.items[t.index(src.IntN(t.total))]
}

// PickIndex is Pick returning the entry's position in the table instead.
func (t *Table[T]) PickIndex(src Source) int {
	return t.index(src.IntN(t.total))
}

// At returns the i-th selectable entry.
func (t *Table[T]) At(i int) T {
	return t.items[i]
}

// index returns the first entry whose cumulative weight exceeds roll.
func (t *Table[T]) index(roll int) int {
	return sort.Search(len(t.cumul), func(i int) bool {
		return t.cumul[i] > roll
	})
}

// SampleDistinct draws up to n distinct entries without replacement, each draw
// weighted over the entries still remaining. key identifies duplicates: an
// entry whose key was already taken is removed from the pool without being
// returned. Draws stop early when the pool runs dry.
func SampleDistinct[T any](src Source, items []T, weight func(T) int, key func(T) string, n int) []T {
	pool := make([]T, 0, len(items))
	for _, it := range items {
		if weight(it) > 0 {
			pool = append(pool, it)
		}
	}

	taken := make(map[string]bool, n)
	out := make([]T, 0, n)
	for len(out) < n && len(pool) > 0 {
		t, err := NewTable(pool, weight)
		if err != nil {
			break
		}
		idx := t.PickIndex(src)
		chosen := pool[idx]
		pool = append(pool[:idx], pool[idx+1:]...)

		k := key(chosen)
		if taken[k] {
			continue
		}
		taken[k] = true
		out = append(out, chosen)
	}
	return out
}
