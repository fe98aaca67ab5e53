package usecase

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/karbiaO9/BlockMind-sub000/internal/domain"
	"github.com/karbiaO9/BlockMind-sub000/internal/infrastructure/metrics"
)

// FilteredPagerConfig tunes the expand-and-slice scan.
type FilteredPagerConfig struct {
	// MaxScan bounds the total upstream entries examined per call. A
	// filter that matches almost nothing on a deep page would otherwise
	// scan the whole history.
	MaxScan int
}

const defaultMaxScan = 10000

// FilteredPager produces correctly sliced pages of a filtered transaction
// view over an upstream source that cannot filter. The result is
// indistinguishable from fetching the whole history, filtering it, and
// slicing, but the full history is never materialized.
type FilteredPager struct {
	source LedgerSource
	cfg    FilteredPagerConfig
	logger zerolog.Logger
}

// NewFilteredPager creates a new FilteredPager.
func NewFilteredPager(source LedgerSource, cfg FilteredPagerConfig, logger zerolog.Logger) *FilteredPager {
	if cfg.MaxScan <= 0 {
		cfg.MaxScan = defaultMaxScan
	}

	return &FilteredPager{
		source: source,
		cfg:    cfg,
		logger: logger,
	}
}

// GetFilteredPage returns the requested page of the filtered,
// time-descending sequence. Items are exactly the
// [(page-1)*size, page*size) slice of that sequence; ties on timestamp
// keep upstream relative order. HasMore is true only when a further
// passing entry was actually seen; when the scan bound trips first, the
// page comes back Degraded with HasMore false.
func (p *FilteredPager) GetFilteredPage(ctx context.Context, address string, req domain.PageRequest) (*domain.PageResult, error) {
	if err := domain.ValidateAddress(address); err != nil {
		return nil, err
	}

	address = domain.NormalizeAddress(address)
	req = domain.NormalizePageRequest(req)

	targetStart := (req.Page - 1) * req.PageSize
	targetEnd := req.Page * req.PageSize

	// Overfetch relative to the page size to amortize round-trips:
	// filtering can reject most of a chunk.
	chunk := req.PageSize * 2

	result := &domain.PageResult{Items: make([]*domain.LedgerEntry, 0, req.PageSize)}

	upstreamOffset := 0
	filteredSeen := 0
	scanned := 0

scan:
	for {
		entries, err := p.source.GetEntriesPage(ctx, address, upstreamOffset, chunk)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidAddress) || ctx.Err() != nil {
				return nil, err
			}

			p.logger.Warn().Err(err).Str("address", address).Int("offset", upstreamOffset).
				Msg("filtered page degraded by upstream failure")
			result.Degraded = true

			break
		}

		scanned += len(entries)

		for _, e := range entries {
			if !req.Criteria.Matches(address, e) {
				continue
			}

			idx := filteredSeen
			filteredSeen++

			switch {
			case idx < targetStart:
				// Before the requested slice; counted, not kept.
			case idx < targetEnd:
				result.Items = append(result.Items, e)
			default:
				// A passing entry beyond the slice exists, so the next
				// page is non-empty.
				result.HasMore = true

				break scan
			}
		}

		if len(entries) < chunk {
			break
		}

		upstreamOffset += len(entries)

		if scanned >= p.cfg.MaxScan {
			metrics.IncScanLimitHit()
			result.Degraded = true

			break
		}
	}

	metrics.ObserveEntriesScanned(scanned)

	return result, nil
}
