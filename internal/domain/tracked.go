package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// WalletStatus is the tracking state of a watched address.
type WalletStatus string

const (
	WalletStatusActive  WalletStatus = "active"
	WalletStatusPaused  WalletStatus = "paused"
	WalletStatusDeleted WalletStatus = "deleted"
)

// TrackedWallet is an address a user monitors on the dashboard list.
type TrackedWallet struct {
	ID        string
	Address   string
	Label     string
	Status    WalletStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// WalletLiveSnapshot is the latest known lightweight view of a tracked
// address: balance plus the most recent entry. Ephemeral, overwritten on
// every poll cycle, discarded when the address is untracked.
type WalletLiveSnapshot struct {
	Address   string
	Balance   decimal.Decimal
	LastEntry *LedgerEntry
	UpdatedAt time.Time
}
