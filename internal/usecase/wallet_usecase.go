package usecase

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/karbiaO9/BlockMind-sub000/internal/domain"
)

// WalletInfo is the single-address view consumed by the wallet detail UI.
type WalletInfo struct {
	Address string
	Balance decimal.Decimal
	Stats   *domain.WalletStats
	Page    *domain.PageResult
}

// WalletSnapshotService composes balance, lifetime stats, and one filtered
// transaction page into the wallet info view.
type WalletSnapshotService struct {
	source LedgerSource
	stats  *StatsAggregator
	pager  *FilteredPager
	logger zerolog.Logger
}

// NewWalletSnapshotService creates a new WalletSnapshotService.
func NewWalletSnapshotService(source LedgerSource, stats *StatsAggregator, pager *FilteredPager, logger zerolog.Logger) *WalletSnapshotService {
	return &WalletSnapshotService{
		source: source,
		stats:  stats,
		pager:  pager,
		logger: logger,
	}
}

// GetWalletInfo fetches balance, stats, and the requested page
// concurrently. Only a balance failure fails the whole call: stats and
// page degrade to flagged partial results instead of propagating.
func (s *WalletSnapshotService) GetWalletInfo(ctx context.Context, address string, req domain.PageRequest) (*WalletInfo, error) {
	if err := domain.ValidateAddress(address); err != nil {
		return nil, err
	}

	address = domain.NormalizeAddress(address)
	info := &WalletInfo{Address: address}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		balance, err := s.source.GetBalance(gctx, address)
		if err != nil {
			return fmt.Errorf("get balance: %w", err)
		}
		info.Balance = balance

		return nil
	})

	g.Go(func() error {
		stats, err := s.stats.Aggregate(gctx, address)
		if err != nil {
			if gctx.Err() != nil {
				return gctx.Err()
			}

			s.logger.Warn().Err(err).Str("address", address).Msg("stats degraded in wallet info")
			stats = domain.NewWalletStats()
			stats.Partial = true
		}
		info.Stats = stats

		return nil
	})

	g.Go(func() error {
		page, err := s.pager.GetFilteredPage(gctx, address, req)
		if err != nil {
			if gctx.Err() != nil {
				return gctx.Err()
			}

			s.logger.Warn().Err(err).Str("address", address).Msg("page degraded in wallet info")
			page = &domain.PageResult{Degraded: true}
		}
		info.Page = page

		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return info, nil
}
