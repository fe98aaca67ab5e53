package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry represents a single transaction as reported by the upstream
// ledger source. Entries are immutable once returned: the upstream history
// is append-only and finalized entries never change.
type LedgerEntry struct {
	Hash      string
	Timestamp time.Time
	From      string
	To        string
	Value     decimal.Decimal
	Success   bool
	Operation string
}

// IsIncoming reports whether the entry credits the given address.
func (e *LedgerEntry) IsIncoming(address string) bool {
	return strings.EqualFold(e.To, address)
}

// IsOutgoing reports whether the entry debits the given address.
func (e *LedgerEntry) IsOutgoing(address string) bool {
	return strings.EqualFold(e.From, address)
}
