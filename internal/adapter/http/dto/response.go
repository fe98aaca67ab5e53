package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/karbiaO9/BlockMind-sub000/internal/domain"
	"github.com/karbiaO9/BlockMind-sub000/internal/usecase"
)

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// EntryResponse represents one ledger entry in API responses.
type EntryResponse struct {
	Hash      string          `json:"hash"`
	Timestamp time.Time       `json:"timestamp"`
	From      string          `json:"from"`
	To        string          `json:"to"`
	Value     decimal.Decimal `json:"value"`
	Success   bool            `json:"success"`
	Operation string          `json:"operation"`
}

// EntryFromDomain converts a domain entry to a response.
func EntryFromDomain(e *domain.LedgerEntry) *EntryResponse {
	return &EntryResponse{
		Hash:      e.Hash,
		Timestamp: e.Timestamp,
		From:      e.From,
		To:        e.To,
		Value:     e.Value,
		Success:   e.Success,
		Operation: e.Operation,
	}
}

// PageResponse represents one filtered page in API responses.
type PageResponse struct {
	Items    []*EntryResponse `json:"items"`
	HasMore  bool             `json:"has_more"`
	Degraded bool             `json:"degraded,omitempty"`
}

// PageFromDomain converts a domain page result to a response.
func PageFromDomain(p *domain.PageResult) *PageResponse {
	items := make([]*EntryResponse, len(p.Items))
	for i, e := range p.Items {
		items[i] = EntryFromDomain(e)
	}

	return &PageResponse{
		Items:    items,
		HasMore:  p.HasMore,
		Degraded: p.Degraded,
	}
}

// StatsResponse represents wallet lifetime stats in API responses.
type StatsResponse struct {
	TotalReceived   decimal.Decimal `json:"total_received"`
	TotalSent       decimal.Decimal `json:"total_sent"`
	FirstActivityAt *time.Time      `json:"first_activity_at,omitempty"`
	LastActivityAt  *time.Time      `json:"last_activity_at,omitempty"`
	EntryCount      int             `json:"entry_count"`
	Partial         bool            `json:"partial"`
}

// StatsFromDomain converts domain stats to a response.
func StatsFromDomain(s *domain.WalletStats) *StatsResponse {
	resp := &StatsResponse{
		TotalReceived: s.TotalReceived,
		TotalSent:     s.TotalSent,
		EntryCount:    s.EntryCount,
		Partial:       s.Partial,
	}

	if !s.FirstActivityAt.IsZero() {
		t := s.FirstActivityAt
		resp.FirstActivityAt = &t
	}
	if !s.LastActivityAt.IsZero() {
		t := s.LastActivityAt
		resp.LastActivityAt = &t
	}

	return resp
}

// WalletInfoResponse is the single-address wallet view.
type WalletInfoResponse struct {
	Address string          `json:"address"`
	Balance decimal.Decimal `json:"balance"`
	Stats   *StatsResponse  `json:"stats"`
	Page    *PageResponse   `json:"page"`
}

// WalletInfoFromUseCase converts the use-case view to a response.
func WalletInfoFromUseCase(info *usecase.WalletInfo) *WalletInfoResponse {
	return &WalletInfoResponse{
		Address: info.Address,
		Balance: info.Balance,
		Stats:   StatsFromDomain(info.Stats),
		Page:    PageFromDomain(info.Page),
	}
}

// TrackedWalletResponse represents a tracked wallet in API responses.
type TrackedWalletResponse struct {
	ID        string    `json:"id"`
	Address   string    `json:"address"`
	Label     string    `json:"label"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TrackedWalletFromDomain converts a domain tracked wallet to a response.
func TrackedWalletFromDomain(w *domain.TrackedWallet) *TrackedWalletResponse {
	return &TrackedWalletResponse{
		ID:        w.ID,
		Address:   w.Address,
		Label:     w.Label,
		Status:    string(w.Status),
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

// TrackedWalletsFromDomain converts a slice of tracked wallets.
func TrackedWalletsFromDomain(wallets []*domain.TrackedWallet) []*TrackedWalletResponse {
	result := make([]*TrackedWalletResponse, len(wallets))
	for i, w := range wallets {
		result[i] = TrackedWalletFromDomain(w)
	}

	return result
}

// SnapshotResponse represents one live snapshot in API responses.
type SnapshotResponse struct {
	Address   string          `json:"address"`
	Balance   decimal.Decimal `json:"balance"`
	LastEntry *EntryResponse  `json:"last_entry,omitempty"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// SnapshotFromDomain converts a domain snapshot to a response.
func SnapshotFromDomain(s *domain.WalletLiveSnapshot) *SnapshotResponse {
	resp := &SnapshotResponse{
		Address:   s.Address,
		Balance:   s.Balance,
		UpdatedAt: s.UpdatedAt,
	}

	if s.LastEntry != nil {
		resp.LastEntry = EntryFromDomain(s.LastEntry)
	}

	return resp
}

// SnapshotsFromDomain converts the snapshot map keyed by address.
func SnapshotsFromDomain(snapshots map[string]*domain.WalletLiveSnapshot) map[string]*SnapshotResponse {
	result := make(map[string]*SnapshotResponse, len(snapshots))
	for addr, s := range snapshots {
		result[addr] = SnapshotFromDomain(s)
	}

	return result
}
