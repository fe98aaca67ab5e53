package dto

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/karbiaO9/BlockMind-sub000/internal/domain"
)

func TestStatsFromDomain_NoActivity(t *testing.T) {
	resp := StatsFromDomain(domain.NewWalletStats())

	if resp.FirstActivityAt != nil || resp.LastActivityAt != nil {
		t.Error("expected nil activity timestamps for an empty history")
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(string(raw), "first_activity_at") {
		t.Errorf("expected zero timestamps to be omitted, got %s", raw)
	}
}

func TestStatsFromDomain_WithActivity(t *testing.T) {
	first := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	stats := &domain.WalletStats{
		TotalReceived:   decimal.RequireFromString("6.25"),
		TotalSent:       decimal.NewFromInt(2),
		FirstActivityAt: first,
		LastActivityAt:  first.Add(time.Hour),
		EntryCount:      3,
	}

	resp := StatsFromDomain(stats)

	if resp.FirstActivityAt == nil || !resp.FirstActivityAt.Equal(first) {
		t.Errorf("expected first activity %s, got %v", first, resp.FirstActivityAt)
	}
	if !resp.TotalReceived.Equal(decimal.RequireFromString("6.25")) {
		t.Errorf("expected total received 6.25, got %s", resp.TotalReceived)
	}
}

func TestPageFromDomain_EmptyItems(t *testing.T) {
	resp := PageFromDomain(&domain.PageResult{})

	raw, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(raw), `"items":[]`) {
		t.Errorf("expected empty items array, not null: %s", raw)
	}
	if strings.Contains(string(raw), "degraded") {
		t.Errorf("expected degraded to be omitted when false: %s", raw)
	}
}

func TestPageFromDomain_Degraded(t *testing.T) {
	resp := PageFromDomain(&domain.PageResult{Degraded: true})

	raw, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(raw), `"degraded":true`) {
		t.Errorf("expected degraded flag in response: %s", raw)
	}
}

func TestSnapshotFromDomain(t *testing.T) {
	snap := &domain.WalletLiveSnapshot{
		Address:   "0x742d35cc6634c0532925a3b844bc454e4438f44e",
		Balance:   decimal.NewFromInt(10),
		UpdatedAt: time.Now().UTC(),
	}

	resp := SnapshotFromDomain(snap)
	if resp.LastEntry != nil {
		t.Error("expected nil last entry for an address with no history")
	}

	snap.LastEntry = &domain.LedgerEntry{Hash: "0xlast", Value: decimal.NewFromInt(1)}
	resp = SnapshotFromDomain(snap)
	if resp.LastEntry == nil || resp.LastEntry.Hash != "0xlast" {
		t.Errorf("expected last entry to be converted, got %+v", resp.LastEntry)
	}
}
