// Package leaktest holds test helpers for concurrent generation: a
// goroutine-count checker and a worker fan-out that fails the test on the
// first worker error.
package leaktest

import (
	"context"
	"runtime"
	"testing"
	"time"

	"golang.org/x/sync/errgroup"
)

// GoroutineChecker helps detect goroutine leaks
type GoroutineChecker struct {
	before int
	t      testing.TB
}

// NewGoroutineChecker creates a new checker and records the current goroutine count
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()

	// Allow time for background goroutines to stabilize
	runtime.Gosched()
	time.Sleep(10 * time.Millisecond)

	return &GoroutineChecker{
		before: runtime.NumGoroutine(),
		t:      t,
	}
}

// Check verifies that goroutine count hasn't grown by more than tolerance
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()

	deadline := time.Now().Add(time.Second)
	after := runtime.NumGoroutine()
	for after-g.before > tolerance && time.Now().Before(deadline) {
		runtime.Gosched()
		time.Sleep(10 * time.Millisecond)
		after = runtime.NumGoroutine()
	}

	if leaked := after - g.before; leaked > tolerance {
		g.t.Errorf("Potential goroutine leak: before=%d, after=%d, leaked=%d (tolerance=%d)",
			g.before, after, leaked, tolerance)
	}
}

// CheckNoGoroutineLeak runs fn and fails the test if it left goroutines behind
func CheckNoGoroutineLeak(t testing.TB, fn func()) {
	t.Helper()

	checker := NewGoroutineChecker(t)
	fn()
	checker.Check(0)
}

// RunWorkers runs fn on workers goroutines and waits for all of them. The
// first error cancels the shared context and fails the test. No goroutine
// may outlive the call.
func RunWorkers(t testing.TB, workers int, fn func(ctx context.Context, worker int) error) {
	t.Helper()

	CheckNoGoroutineLeak(t, func() {
		g, ctx := errgroup.WithContext(context.Background())
		for w := 0; w < workers; w++ {
			g.Go(func() error {
				return fn(ctx, w)
			})
		}
		if err := g.Wait(); err != nil {
			t.Errorf("worker failed: %v", err)
		}
	})
}
