package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/karbiaO9/BlockMind-sub000/internal/domain"
	"github.com/karbiaO9/BlockMind-sub000/internal/infrastructure/metrics"
)

// PollerConfig tunes the tracked-wallet refresh loop.
type PollerConfig struct {
	// Interval is the fixed cycle cadence.
	Interval time.Duration
	// CycleTimeout bounds one cycle's fan-out so a slow upstream call
	// cannot delay the next tick for other addresses.
	CycleTimeout time.Duration
}

const (
	defaultPollInterval     = 30 * time.Second
	defaultPollCycleTimeout = 25 * time.Second
)

// TrackedWalletPoller keeps a live snapshot (balance + most recent entry)
// per tracked address on a fixed cadence. Per-address failures are
// isolated: a failing address keeps its previous snapshot and is retried
// next tick. The global upstream in-flight cap is enforced below the
// poller, at the shared ledger source gate.
type TrackedWalletPoller struct {
	source LedgerSource
	cfg    PollerConfig
	logger zerolog.Logger

	mu        sync.RWMutex
	running   bool
	tracked   map[string]*domain.TrackedWallet
	snapshots map[string]*domain.WalletLiveSnapshot
	inflight  map[string]bool
	runCtx    context.Context
	cancel    context.CancelFunc
	done      chan struct{}
}

// NewTrackedWalletPoller creates a new poller in the Idle state.
func NewTrackedWalletPoller(source LedgerSource, cfg PollerConfig, logger zerolog.Logger) *TrackedWalletPoller {
	if cfg.Interval <= 0 {
		cfg.Interval = defaultPollInterval
	}
	if cfg.CycleTimeout <= 0 || cfg.CycleTimeout > cfg.Interval {
		cfg.CycleTimeout = defaultPollCycleTimeout
		if cfg.CycleTimeout > cfg.Interval {
			cfg.CycleTimeout = cfg.Interval
		}
	}

	return &TrackedWalletPoller{
		source:    source,
		cfg:       cfg,
		logger:    logger,
		tracked:   make(map[string]*domain.TrackedWallet),
		snapshots: make(map[string]*domain.WalletLiveSnapshot),
		inflight:  make(map[string]bool),
	}
}

// Start moves the poller to Running with the given initial set and begins
// the repeating cycle. The first cycle runs immediately.
func (p *TrackedWalletPoller) Start(ctx context.Context, initial []*domain.TrackedWallet) error {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return domain.ErrPollerAlreadyRunning
	}

	p.tracked = make(map[string]*domain.TrackedWallet, len(initial))
	for _, w := range initial {
		p.tracked[domain.NormalizeAddress(w.Address)] = w
	}
	p.snapshots = make(map[string]*domain.WalletLiveSnapshot)
	p.inflight = make(map[string]bool)

	p.runCtx, p.cancel = context.WithCancel(ctx)
	p.done = make(chan struct{})
	p.running = true
	metrics.SetTrackedWallets(len(p.tracked))
	p.mu.Unlock()

	go p.loop()

	p.logger.Info().Int("wallets", len(initial)).Dur("interval", p.cfg.Interval).
		Msg("tracked wallet poller started")

	return nil
}

// Stop cancels the loop, waits for it to exit, and discards all
// snapshots, returning the poller to Idle.
func (p *TrackedWalletPoller) Stop() error {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return domain.ErrPollerNotRunning
	}

	cancel, done := p.cancel, p.done
	p.mu.Unlock()

	cancel()
	<-done

	p.mu.Lock()
	p.running = false
	p.snapshots = make(map[string]*domain.WalletLiveSnapshot)
	p.inflight = make(map[string]bool)
	p.mu.Unlock()

	p.logger.Info().Msg("tracked wallet poller stopped")

	return nil
}

// SetTracked replaces the working set. Newly added addresses are fetched
// immediately rather than waiting for the next tick; removed addresses
// have their snapshots discarded.
func (p *TrackedWalletPoller) SetTracked(wallets []*domain.TrackedWallet) {
	next := make(map[string]*domain.TrackedWallet, len(wallets))
	for _, w := range wallets {
		next[domain.NormalizeAddress(w.Address)] = w
	}

	p.mu.Lock()
	var added []string
	for addr, w := range next {
		if _, ok := p.tracked[addr]; !ok && w.Status == domain.WalletStatusActive {
			added = append(added, addr)
		}
	}
	for addr := range p.tracked {
		if _, ok := next[addr]; !ok {
			delete(p.snapshots, addr)
		}
	}
	p.tracked = next
	running, ctx := p.running, p.runCtx
	metrics.SetTrackedWallets(len(next))
	p.mu.Unlock()

	if running {
		for _, addr := range added {
			p.dispatch(ctx, addr)
		}
	}
}

// Track adds one address to the working set and fetches it immediately.
func (p *TrackedWalletPoller) Track(wallet *domain.TrackedWallet) error {
	addr := domain.NormalizeAddress(wallet.Address)

	p.mu.Lock()
	if _, ok := p.tracked[addr]; ok {
		p.mu.Unlock()
		return domain.ErrWalletAlreadyTracked
	}
	p.tracked[addr] = wallet
	running, ctx := p.running, p.runCtx
	metrics.SetTrackedWallets(len(p.tracked))
	p.mu.Unlock()

	if running && wallet.Status == domain.WalletStatusActive {
		p.dispatch(ctx, addr)
	}

	return nil
}

// Untrack removes an address and discards its snapshot.
func (p *TrackedWalletPoller) Untrack(address string) error {
	addr := domain.NormalizeAddress(address)

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.tracked[addr]; !ok {
		return domain.ErrWalletNotTracked
	}

	delete(p.tracked, addr)
	delete(p.snapshots, addr)
	metrics.SetTrackedWallets(len(p.tracked))

	return nil
}

// SetStatus pauses or resumes polling for one address. A paused address
// keeps its last snapshot but is skipped by cycles.
func (p *TrackedWalletPoller) SetStatus(address string, status domain.WalletStatus) error {
	addr := domain.NormalizeAddress(address)

	p.mu.Lock()
	w, ok := p.tracked[addr]
	if !ok {
		p.mu.Unlock()
		return domain.ErrWalletNotTracked
	}
	resumed := w.Status != domain.WalletStatusActive && status == domain.WalletStatusActive
	w.Status = status
	running, ctx := p.running, p.runCtx
	p.mu.Unlock()

	if running && resumed {
		p.dispatch(ctx, addr)
	}

	return nil
}

// Snapshot returns the latest snapshot for one address, if any.
func (p *TrackedWalletPoller) Snapshot(address string) (*domain.WalletLiveSnapshot, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	snap, ok := p.snapshots[domain.NormalizeAddress(address)]
	return snap, ok
}

// Snapshots returns a copy of the snapshot map keyed by address.
func (p *TrackedWalletPoller) Snapshots() map[string]*domain.WalletLiveSnapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make(map[string]*domain.WalletLiveSnapshot, len(p.snapshots))
	for addr, snap := range p.snapshots {
		out[addr] = snap
	}

	return out
}

// Running reports whether the poller is in the Running state.
func (p *TrackedWalletPoller) Running() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.running
}

func (p *TrackedWalletPoller) loop() {
	p.mu.RLock()
	ctx, done := p.runCtx, p.done
	p.mu.RUnlock()

	defer close(done)

	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	p.runCycle(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.runCycle(ctx)
		}
	}
}

// runCycle fans out one refresh per active address. An address whose
// previous fetch is still in flight is skipped this tick.
func (p *TrackedWalletPoller) runCycle(ctx context.Context) {
	metrics.IncPollCycle()

	p.mu.RLock()
	addrs := make([]string, 0, len(p.tracked))
	for addr, w := range p.tracked {
		if w.Status == domain.WalletStatusActive {
			addrs = append(addrs, addr)
		}
	}
	p.mu.RUnlock()

	for _, addr := range addrs {
		p.dispatch(ctx, addr)
	}
}

// dispatch launches a refresh for one address unless one is already in
// flight for it.
func (p *TrackedWalletPoller) dispatch(ctx context.Context, addr string) {
	p.mu.Lock()
	if p.inflight[addr] {
		p.mu.Unlock()
		return
	}
	p.inflight[addr] = true
	p.mu.Unlock()

	go func() {
		defer func() {
			p.mu.Lock()
			delete(p.inflight, addr)
			p.mu.Unlock()
		}()

		cctx, cancel := context.WithTimeout(ctx, p.cfg.CycleTimeout)
		defer cancel()

		p.refresh(cctx, addr)
	}()
}

// refresh fetches balance and the most recent entry for one address and
// writes the snapshot. On failure the previous snapshot is retained.
func (p *TrackedWalletPoller) refresh(ctx context.Context, addr string) {
	snap := &domain.WalletLiveSnapshot{Address: addr}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		balance, err := p.source.GetBalance(gctx, addr)
		if err != nil {
			return err
		}
		snap.Balance = balance

		return nil
	})

	g.Go(func() error {
		entries, err := p.source.GetEntriesPage(gctx, addr, 0, 1)
		if err != nil {
			return err
		}
		if len(entries) > 0 {
			snap.LastEntry = entries[0]
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		metrics.IncPollFailure()
		p.logger.Warn().Err(err).Str("address", addr).
			Msg("snapshot refresh failed, keeping previous snapshot")

		return
	}

	snap.UpdatedAt = time.Now().UTC()

	p.mu.Lock()
	if _, ok := p.tracked[addr]; ok {
		p.snapshots[addr] = snap
	}
	p.mu.Unlock()
}
