package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/karbiaO9/BlockMind-sub000/internal/domain"
)

// TrackedWalletUseCase manages tracked-wallet membership. The store is the
// source of truth; the poller's working set is kept in sync with it.
type TrackedWalletUseCase struct {
	repo   TrackedWalletRepository
	poller *TrackedWalletPoller
	idGen  IDGenerator
	logger zerolog.Logger
}

// NewTrackedWalletUseCase creates a new TrackedWalletUseCase.
func NewTrackedWalletUseCase(repo TrackedWalletRepository, poller *TrackedWalletPoller, idGen IDGenerator, logger zerolog.Logger) *TrackedWalletUseCase {
	return &TrackedWalletUseCase{
		repo:   repo,
		poller: poller,
		idGen:  idGen,
		logger: logger,
	}
}

// TrackWalletInput represents a request to track an address.
type TrackWalletInput struct {
	Address string
	Label   string
}

// LoadAndStart loads the persisted tracked set and starts the poller.
func (uc *TrackedWalletUseCase) LoadAndStart(ctx context.Context) error {
	wallets, err := uc.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("load tracked wallets: %w", err)
	}

	return uc.poller.Start(ctx, wallets)
}

// Stop stops the poller.
func (uc *TrackedWalletUseCase) Stop() error {
	return uc.poller.Stop()
}

// Track persists a new tracked wallet and adds it to the poller, which
// fetches its first snapshot immediately.
func (uc *TrackedWalletUseCase) Track(ctx context.Context, input TrackWalletInput) (*domain.TrackedWallet, error) {
	if err := domain.ValidateAddress(input.Address); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	wallet := &domain.TrackedWallet{
		ID:        uc.idGen.Generate(),
		Address:   domain.NormalizeAddress(input.Address),
		Label:     input.Label,
		Status:    domain.WalletStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.repo.Create(ctx, wallet); err != nil {
		return nil, fmt.Errorf("persist tracked wallet: %w", err)
	}

	if err := uc.poller.Track(wallet); err != nil && !errors.Is(err, domain.ErrWalletAlreadyTracked) {
		return nil, err
	}

	return wallet, nil
}

// Untrack removes a wallet from the store and the poller.
func (uc *TrackedWalletUseCase) Untrack(ctx context.Context, address string) error {
	if err := domain.ValidateAddress(address); err != nil {
		return err
	}

	addr := domain.NormalizeAddress(address)

	if err := uc.repo.Delete(ctx, addr); err != nil {
		return err
	}

	if err := uc.poller.Untrack(addr); err != nil && !errors.Is(err, domain.ErrWalletNotTracked) {
		return err
	}

	return nil
}

// SetStatus pauses or resumes polling for a wallet.
func (uc *TrackedWalletUseCase) SetStatus(ctx context.Context, address string, status domain.WalletStatus) error {
	if err := domain.ValidateAddress(address); err != nil {
		return err
	}

	addr := domain.NormalizeAddress(address)

	if err := uc.repo.UpdateStatus(ctx, addr, status, time.Now().UTC()); err != nil {
		return err
	}

	return uc.poller.SetStatus(addr, status)
}

// List returns the persisted tracked set.
func (uc *TrackedWalletUseCase) List(ctx context.Context) ([]*domain.TrackedWallet, error) {
	return uc.repo.List(ctx)
}

// Snapshots returns the poller's current snapshot map.
func (uc *TrackedWalletUseCase) Snapshots() map[string]*domain.WalletLiveSnapshot {
	return uc.poller.Snapshots()
}
