package upstream

import (
	"context"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/semaphore"

	"github.com/karbiaO9/BlockMind-sub000/internal/domain"
	"github.com/karbiaO9/BlockMind-sub000/internal/infrastructure/metrics"
	"github.com/karbiaO9/BlockMind-sub000/internal/usecase"
)

// Gate decorates a LedgerSource with a global in-flight request cap. One
// Gate instance is shared by every caller (snapshot polling and
// on-demand wallet views alike), so the upstream sees a bounded number
// of concurrent requests regardless of how many components fan out.
type Gate struct {
	next usecase.LedgerSource
	sem  *semaphore.Weighted
}

// NewGate creates a new Gate allowing at most maxInflight concurrent
// upstream calls.
func NewGate(next usecase.LedgerSource, maxInflight int) *Gate {
	if maxInflight <= 0 {
		maxInflight = 8
	}

	return &Gate{
		next: next,
		sem:  semaphore.NewWeighted(int64(maxInflight)),
	}
}

// GetBalance acquires a slot, then delegates.
func (g *Gate) GetBalance(ctx context.Context, address string) (decimal.Decimal, error) {
	if err := g.sem.Acquire(ctx, 1); err != nil {
		return decimal.Zero, err
	}
	defer g.sem.Release(1)

	metrics.IncUpstreamInflight()
	defer metrics.DecUpstreamInflight()

	return g.next.GetBalance(ctx, address)
}

// GetEntriesPage acquires a slot, then delegates.
func (g *Gate) GetEntriesPage(ctx context.Context, address string, offset, limit int) ([]*domain.LedgerEntry, error) {
	if err := g.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer g.sem.Release(1)

	metrics.IncUpstreamInflight()
	defer metrics.DecUpstreamInflight()

	return g.next.GetEntriesPage(ctx, address, offset, limit)
}
