package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/karbiaO9/BlockMind-sub000/internal/domain"
	"github.com/karbiaO9/BlockMind-sub000/internal/infrastructure/metrics"
)

// StatsAggregatorConfig tunes the aggregation walk.
type StatsAggregatorConfig struct {
	// PageSize is the upstream chunk size used while walking the history.
	PageSize int
	// MaxEntries bounds the walk; 0 means unbounded. A tripped bound
	// yields a partial result, never a silent undercount.
	MaxEntries int
	// CacheTTL controls how long complete results are cached. Zero
	// disables caching even when a cache is wired.
	CacheTTL time.Duration
}

const defaultAggregatePageSize = 500

// StatsAggregator computes lifetime wallet aggregates from the full entry
// history. There is no incremental update path: stats are recomputed from
// upstream on every request, with an optional short-TTL read cache for
// complete results.
type StatsAggregator struct {
	source LedgerSource
	cache  Cache
	cfg    StatsAggregatorConfig
	logger zerolog.Logger
}

// NewStatsAggregator creates a new StatsAggregator. cache may be nil.
func NewStatsAggregator(source LedgerSource, cache Cache, cfg StatsAggregatorConfig, logger zerolog.Logger) *StatsAggregator {
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaultAggregatePageSize
	}

	return &StatsAggregator{
		source: source,
		cache:  cache,
		cfg:    cfg,
		logger: logger,
	}
}

// Aggregate walks the address's full history and returns lifetime stats.
// On an upstream error mid-walk it returns the best-effort aggregate
// computed so far flagged Partial, rather than failing outright.
// ErrInvalidAddress always propagates.
func (a *StatsAggregator) Aggregate(ctx context.Context, address string) (*domain.WalletStats, error) {
	if err := domain.ValidateAddress(address); err != nil {
		return nil, err
	}

	address = domain.NormalizeAddress(address)

	if cached := a.fromCache(ctx, address); cached != nil {
		return cached, nil
	}

	stats := domain.NewWalletStats()
	offset := 0

	for {
		entries, err := a.source.GetEntriesPage(ctx, address, offset, a.cfg.PageSize)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidAddress) {
				return nil, err
			}

			a.logger.Warn().Err(err).Str("address", address).Int("offset", offset).
				Msg("aggregation degraded to partial result")
			metrics.IncPartialAggregation()
			stats.Partial = true

			return stats, nil
		}

		for _, e := range entries {
			stats.Accumulate(address, e)
		}

		if len(entries) < a.cfg.PageSize {
			break
		}

		offset += len(entries)

		if a.cfg.MaxEntries > 0 && offset >= a.cfg.MaxEntries {
			metrics.IncPartialAggregation()
			stats.Partial = true

			return stats, nil
		}
	}

	a.toCache(ctx, address, stats)

	return stats, nil
}

func (a *StatsAggregator) cacheKey(address string) string {
	return "stats:" + address
}

func (a *StatsAggregator) fromCache(ctx context.Context, address string) *domain.WalletStats {
	if a.cache == nil || a.cfg.CacheTTL <= 0 {
		return nil
	}

	raw, err := a.cache.Get(ctx, a.cacheKey(address))
	if err != nil || raw == "" {
		return nil
	}

	var stats domain.WalletStats
	if err := json.Unmarshal([]byte(raw), &stats); err != nil {
		return nil
	}

	return &stats
}

// toCache stores complete results only; partial aggregates must never be
// served as if they were complete.
func (a *StatsAggregator) toCache(ctx context.Context, address string, stats *domain.WalletStats) {
	if a.cache == nil || a.cfg.CacheTTL <= 0 || stats.Partial {
		return
	}

	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}

	if err := a.cache.Set(ctx, a.cacheKey(address), string(raw), a.cfg.CacheTTL); err != nil {
		a.logger.Debug().Err(err).Str("address", address).Msg("stats cache write failed")
	}
}
