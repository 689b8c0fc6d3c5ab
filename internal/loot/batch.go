package loot

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/osse101/delvegen/internal/domain"
	"github.com/osse101/delvegen/internal/logger"
	"github.com/osse101/delvegen/internal/rng"
)

// Request names one resolution in a batch.
type Request struct {
	Table   string                   `json:"table"`
	Depth   int                      `json:"depth"`
	Context domain.GenerationContext `json:"context"`
}

// BatchSeed derives the seed of the i-th request in a batch.
func BatchSeed(seed uint64, i int) uint64 {
	return seed + uint64(i)*batchSeedStride
}

// ResolveBatch resolves reqs concurrently. Request i draws from its own
// source seeded with BatchSeed(seed, i), so results do not depend on
// scheduling. The first failure cancels the remaining requests.
func (m *Manager) ResolveBatch(ctx context.Context, reqs []Request, seed uint64) ([]*Result, error) {
	ctx = logger.EnsureBatchID(ctx)
	results := make([]*Result, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, req := range reqs {
		g.Go(func() error {
			res, err := m.Resolve(gctx, req.Table, req.Depth, req.Context, rng.New(BatchSeed(seed, i)))
			if err != nil {
				return fmt.Errorf("request %d (%s): %w", i, req.Table, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Spawn hands items to the world at pos. It stops at the first failure and
// returns the handles created so far.
func (m *Manager) Spawn(ctx context.Context, creator domain.ItemCreator, items []domain.ItemSpec, pos domain.Position) ([]domain.ItemHandle, error) {
	log := logger.FromContext(ctx)
	handles := make([]domain.ItemHandle, 0, len(items))
	for _, spec := range items {
		h, err := creator.CreateItem(ctx, spec, pos)
		if err != nil {
			log.Error(LogMsgSpawnFailed, LogFieldItem, spec.Name, LogFieldError, err)
			return handles, fmt.Errorf("%s %q: %w", ErrContextFailedToSpawnItem, spec.Name, err)
		}
		log.Debug(LogMsgItemSpawned, LogFieldItem, spec.Name, LogFieldHandle, uint64(h))
		handles = append(handles, h)
	}
	return handles, nil
}
