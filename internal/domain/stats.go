package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// WalletStats holds lifetime aggregates for one address, derived from the
// full entry history. Partial marks a best-effort result computed from an
// incomplete history (upstream failure or aggregation bound mid-walk);
// a partial result is never presented as complete.
type WalletStats struct {
	TotalReceived   decimal.Decimal
	TotalSent       decimal.Decimal
	FirstActivityAt time.Time
	LastActivityAt  time.Time
	EntryCount      int
	Partial         bool
}

// NewWalletStats returns zero-valued stats ready for accumulation.
func NewWalletStats() *WalletStats {
	return &WalletStats{
		TotalReceived: decimal.Zero,
		TotalSent:     decimal.Zero,
	}
}

// Accumulate folds one entry into the aggregates. Value sums only count
// successful entries; activity timestamps count every entry. Min/max are
// tracked explicitly because upstream ordering is an operational
// convention, not a contract.
func (s *WalletStats) Accumulate(address string, e *LedgerEntry) {
	if e.Success {
		if e.IsIncoming(address) {
			s.TotalReceived = s.TotalReceived.Add(e.Value)
		}
		if e.IsOutgoing(address) {
			s.TotalSent = s.TotalSent.Add(e.Value)
		}
	}

	if s.FirstActivityAt.IsZero() || e.Timestamp.Before(s.FirstActivityAt) {
		s.FirstActivityAt = e.Timestamp
	}
	if e.Timestamp.After(s.LastActivityAt) {
		s.LastActivityAt = e.Timestamp
	}

	s.EntryCount++
}
