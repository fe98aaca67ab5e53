package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/karbiaO9/BlockMind-sub000/internal/domain"
)

// LedgerSource is the typed client over the external ledger-indexing API.
// GetEntriesPage is a faithful pass-through of upstream pagination: most
// recent first, no filtering, no reordering. A short page (fewer than
// limit entries) is the only reliable end-of-history signal.
type LedgerSource interface {
	GetBalance(ctx context.Context, address string) (decimal.Decimal, error)
	GetEntriesPage(ctx context.Context, address string, offset, limit int) ([]*domain.LedgerEntry, error)
}

// TrackedWalletRepository persists tracked-wallet membership.
type TrackedWalletRepository interface {
	Create(ctx context.Context, wallet *domain.TrackedWallet) error
	GetByAddress(ctx context.Context, address string) (*domain.TrackedWallet, error)
	List(ctx context.Context) ([]*domain.TrackedWallet, error)
	UpdateStatus(ctx context.Context, address string, status domain.WalletStatus, updatedAt time.Time) error
	Delete(ctx context.Context, address string) error
}

// Cache defines best-effort caching operations.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}
