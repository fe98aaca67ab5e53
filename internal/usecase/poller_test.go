package usecase_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/karbiaO9/BlockMind-sub000/internal/domain"
	"github.com/karbiaO9/BlockMind-sub000/internal/usecase"
	"github.com/karbiaO9/BlockMind-sub000/internal/usecase/mocks"
)

const pollAddrA = "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
const pollAddrB = "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"

func trackedWallet(address string) *domain.TrackedWallet {
	now := time.Now().UTC()

	return &domain.TrackedWallet{
		ID:        "w-" + address[2:6],
		Address:   address,
		Status:    domain.WalletStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}

	t.Fatal(msg)
}

func TestTrackedWalletPoller_StartStop(t *testing.T) {
	source := mocks.NewMockLedgerSource()
	source.SetBalance(pollAddrA, decimal.NewFromInt(5))

	poller := usecase.NewTrackedWalletPoller(source, usecase.PollerConfig{Interval: time.Hour, CycleTimeout: time.Second}, zerolog.Nop())

	if err := poller.Stop(); !errors.Is(err, domain.ErrPollerNotRunning) {
		t.Fatalf("expected ErrPollerNotRunning on idle stop, got %v", err)
	}

	if err := poller.Start(context.Background(), []*domain.TrackedWallet{trackedWallet(pollAddrA)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !poller.Running() {
		t.Fatal("expected poller to be running")
	}

	if err := poller.Start(context.Background(), nil); !errors.Is(err, domain.ErrPollerAlreadyRunning) {
		t.Fatalf("expected ErrPollerAlreadyRunning, got %v", err)
	}

	// The first cycle runs on start, not on the first tick.
	waitFor(t, func() bool {
		_, ok := poller.Snapshot(pollAddrA)
		return ok
	}, "expected immediate first-cycle snapshot")

	if err := poller.Stop(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if poller.Running() {
		t.Error("expected poller to be idle after stop")
	}
	if len(poller.Snapshots()) != 0 {
		t.Error("expected snapshots to be discarded on stop")
	}
}

func TestTrackedWalletPoller_SnapshotContents(t *testing.T) {
	source := mocks.NewMockLedgerSource()
	source.SetBalance(pollAddrA, decimal.RequireFromString("3.5"))
	source.SetHistory(pollAddrA, []*domain.LedgerEntry{
		{Hash: "0xlatest", Timestamp: time.Now(), From: peerAddr, To: pollAddrA, Value: decimal.NewFromInt(1), Success: true},
		{Hash: "0xolder", Timestamp: time.Now().Add(-time.Hour), From: peerAddr, To: pollAddrA, Value: decimal.NewFromInt(2), Success: true},
	})

	poller := usecase.NewTrackedWalletPoller(source, usecase.PollerConfig{Interval: time.Hour, CycleTimeout: time.Second}, zerolog.Nop())
	if err := poller.Start(context.Background(), []*domain.TrackedWallet{trackedWallet(pollAddrA)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer poller.Stop()

	waitFor(t, func() bool {
		_, ok := poller.Snapshot(pollAddrA)
		return ok
	}, "expected snapshot after first cycle")

	snap, _ := poller.Snapshot(pollAddrA)
	if !snap.Balance.Equal(decimal.RequireFromString("3.5")) {
		t.Errorf("expected balance 3.5, got %s", snap.Balance)
	}
	if snap.LastEntry == nil || snap.LastEntry.Hash != "0xlatest" {
		t.Errorf("expected most recent entry 0xlatest, got %+v", snap.LastEntry)
	}
	if snap.UpdatedAt.IsZero() {
		t.Error("expected snapshot timestamp to be set")
	}
}

func TestTrackedWalletPoller_FailureIsolationAndStaleRetention(t *testing.T) {
	var failB atomic.Bool

	source := mocks.NewMockLedgerSource()
	balanceA := decimal.NewFromInt(1)
	source.GetBalanceFunc = func(_ context.Context, address string) (decimal.Decimal, error) {
		if address == pollAddrB && failB.Load() {
			return decimal.Zero, domain.ErrUpstreamUnavailable
		}
		if address == pollAddrB {
			return decimal.NewFromInt(100), nil
		}
		return balanceA, nil
	}

	poller := usecase.NewTrackedWalletPoller(source, usecase.PollerConfig{Interval: 50 * time.Millisecond}, zerolog.Nop())
	initial := []*domain.TrackedWallet{trackedWallet(pollAddrA), trackedWallet(pollAddrB)}
	if err := poller.Start(context.Background(), initial); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer poller.Stop()

	waitFor(t, func() bool {
		_, okA := poller.Snapshot(pollAddrA)
		_, okB := poller.Snapshot(pollAddrB)
		return okA && okB
	}, "expected snapshots for both addresses")

	// Break B, let any in-flight refresh drain, then capture B's last
	// good snapshot.
	failB.Store(true)
	markA, _ := poller.Snapshot(pollAddrA)
	waitFor(t, func() bool {
		snapA, ok := poller.Snapshot(pollAddrA)
		return ok && snapA.UpdatedAt.After(markA.UpdatedAt)
	}, "expected address A to keep refreshing while B fails")

	staleB, ok := poller.Snapshot(pollAddrB)
	if !ok {
		t.Fatal("expected failing address to keep a snapshot")
	}

	// Another full A refresh proves at least one more cycle ran; B must
	// still hold the stale snapshot.
	markA, _ = poller.Snapshot(pollAddrA)
	waitFor(t, func() bool {
		snapA, ok := poller.Snapshot(pollAddrA)
		return ok && snapA.UpdatedAt.After(markA.UpdatedAt)
	}, "expected address A to keep refreshing while B fails")

	snapB, ok := poller.Snapshot(pollAddrB)
	if !ok {
		t.Fatal("expected failing address to keep its previous snapshot")
	}
	if snapB != staleB {
		t.Error("expected failing address snapshot to remain the stale one")
	}
}

func TestTrackedWalletPoller_TrackFetchesImmediately(t *testing.T) {
	source := mocks.NewMockLedgerSource()
	source.SetBalance(pollAddrA, decimal.NewFromInt(9))

	// Interval is far longer than the wait, so only the add-time fetch
	// can produce the snapshot.
	poller := usecase.NewTrackedWalletPoller(source, usecase.PollerConfig{Interval: time.Hour, CycleTimeout: time.Second}, zerolog.Nop())
	if err := poller.Start(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer poller.Stop()

	if err := poller.Track(trackedWallet(pollAddrA)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := poller.Track(trackedWallet(pollAddrA)); !errors.Is(err, domain.ErrWalletAlreadyTracked) {
		t.Fatalf("expected ErrWalletAlreadyTracked, got %v", err)
	}

	waitFor(t, func() bool {
		_, ok := poller.Snapshot(pollAddrA)
		return ok
	}, "expected snapshot right after tracking, before the next tick")
}

func TestTrackedWalletPoller_UntrackDiscardsSnapshot(t *testing.T) {
	source := mocks.NewMockLedgerSource()
	source.SetBalance(pollAddrA, decimal.NewFromInt(2))

	poller := usecase.NewTrackedWalletPoller(source, usecase.PollerConfig{Interval: time.Hour, CycleTimeout: time.Second}, zerolog.Nop())
	if err := poller.Start(context.Background(), []*domain.TrackedWallet{trackedWallet(pollAddrA)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer poller.Stop()

	waitFor(t, func() bool {
		_, ok := poller.Snapshot(pollAddrA)
		return ok
	}, "expected snapshot after first cycle")

	if err := poller.Untrack(pollAddrA); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := poller.Snapshot(pollAddrA); ok {
		t.Error("expected snapshot to be discarded on untrack")
	}

	if err := poller.Untrack(pollAddrA); !errors.Is(err, domain.ErrWalletNotTracked) {
		t.Fatalf("expected ErrWalletNotTracked, got %v", err)
	}
}

func TestTrackedWalletPoller_PausedAddressSkipped(t *testing.T) {
	source := mocks.NewMockLedgerSource()
	source.SetBalance(pollAddrA, decimal.NewFromInt(2))

	paused := trackedWallet(pollAddrA)
	paused.Status = domain.WalletStatusPaused

	poller := usecase.NewTrackedWalletPoller(source, usecase.PollerConfig{Interval: 30 * time.Millisecond}, zerolog.Nop())
	if err := poller.Start(context.Background(), []*domain.TrackedWallet{paused}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer poller.Stop()

	time.Sleep(120 * time.Millisecond)
	if _, ok := poller.Snapshot(pollAddrA); ok {
		t.Fatal("expected paused address to be skipped by cycles")
	}

	// Resuming fetches immediately.
	if err := poller.SetStatus(pollAddrA, domain.WalletStatusActive); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	waitFor(t, func() bool {
		_, ok := poller.Snapshot(pollAddrA)
		return ok
	}, "expected snapshot after resume")
}
