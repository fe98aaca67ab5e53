package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/karbiaO9/BlockMind-sub000/internal/domain"
	"github.com/karbiaO9/BlockMind-sub000/internal/usecase"
	"github.com/karbiaO9/BlockMind-sub000/internal/usecase/mocks"
)

// syntheticHistory builds n entries, most recent first, alternating
// incoming and outgoing, with every third entry zero-valued.
func syntheticHistory(n int) []*domain.LedgerEntry {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	entries := make([]*domain.LedgerEntry, n)

	for i := 0; i < n; i++ {
		e := &domain.LedgerEntry{
			Hash:      fmt.Sprintf("0xh%04d", i),
			Timestamp: base.Add(-time.Duration(i) * time.Minute),
			Value:     decimal.NewFromInt(int64(i%3) + 1),
			Success:   true,
		}
		if i%3 == 2 {
			e.Value = decimal.Zero
		}
		if i%2 == 0 {
			e.From, e.To = peerAddr, testAddr
		} else {
			e.From, e.To = testAddr, peerAddr
		}
		entries[i] = e
	}

	return entries
}

func newPager(source usecase.LedgerSource, cfg usecase.FilteredPagerConfig) *usecase.FilteredPager {
	return usecase.NewFilteredPager(source, cfg, zerolog.Nop())
}

// referencePage computes the expected page by filtering the whole history
// and slicing, which is the behavior the pager must reproduce.
func referencePage(history []*domain.LedgerEntry, req domain.PageRequest) []*domain.LedgerEntry {
	req = domain.NormalizePageRequest(req)

	var filtered []*domain.LedgerEntry
	for _, e := range history {
		if req.Criteria.Matches(testAddr, e) {
			filtered = append(filtered, e)
		}
	}

	start := (req.Page - 1) * req.PageSize
	if start >= len(filtered) {
		return nil
	}
	end := start + req.PageSize
	if end > len(filtered) {
		end = len(filtered)
	}

	return filtered[start:end]
}

func TestFilteredPager_MatchesFilterThenSlice(t *testing.T) {
	history := syntheticHistory(97)
	source := mocks.NewMockLedgerSource()
	source.SetHistory(testAddr, history)

	pager := newPager(source, usecase.FilteredPagerConfig{})

	requests := []domain.PageRequest{
		{Page: 1, PageSize: 10},
		{Page: 3, PageSize: 10},
		{Page: 1, PageSize: 10, Criteria: domain.FilterCriteria{Direction: domain.DirectionIncoming}},
		{Page: 2, PageSize: 7, Criteria: domain.FilterCriteria{Direction: domain.DirectionOutgoing}},
		{Page: 1, PageSize: 5, Criteria: domain.FilterCriteria{NonZeroValueOnly: true}},
		{Page: 2, PageSize: 4, Criteria: domain.FilterCriteria{Direction: domain.DirectionIncoming, NonZeroValueOnly: true}},
	}

	for _, req := range requests {
		name := fmt.Sprintf("page=%d size=%d dir=%s nonzero=%v", req.Page, req.PageSize, req.Criteria.Direction, req.Criteria.NonZeroValueOnly)
		t.Run(name, func(t *testing.T) {
			got, err := pager.GetFilteredPage(context.Background(), testAddr, req)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			want := referencePage(history, req)
			if len(got.Items) != len(want) {
				t.Fatalf("expected %d items, got %d", len(want), len(got.Items))
			}
			for i := range want {
				if got.Items[i].Hash != want[i].Hash {
					t.Errorf("item %d: expected %s, got %s", i, want[i].Hash, got.Items[i].Hash)
				}
			}
			if got.Degraded {
				t.Error("expected non-degraded result")
			}
		})
	}
}

func TestFilteredPager_IncomingPages(t *testing.T) {
	// History, most recent first: out 1.5, in 3, out 0.5, in 2, in 1.
	history := mixedHistory()
	source := mocks.NewMockLedgerSource()
	source.SetHistory(testAddr, history)

	pager := newPager(source, usecase.FilteredPagerConfig{})
	criteria := domain.FilterCriteria{Direction: domain.DirectionIncoming}

	page1, err := pager.GetFilteredPage(context.Background(), testAddr, domain.PageRequest{Page: 1, PageSize: 2, Criteria: criteria})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page1.Items) != 2 {
		t.Fatalf("expected 2 items on page 1, got %d", len(page1.Items))
	}
	if !page1.Items[0].Value.Equal(decimal.NewFromInt(3)) || !page1.Items[1].Value.Equal(decimal.NewFromInt(2)) {
		t.Errorf("expected values [3 2], got [%s %s]", page1.Items[0].Value, page1.Items[1].Value)
	}
	if !page1.HasMore {
		t.Error("expected page 1 to report more results")
	}

	page2, err := pager.GetFilteredPage(context.Background(), testAddr, domain.PageRequest{Page: 2, PageSize: 2, Criteria: criteria})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page2.Items) != 1 {
		t.Fatalf("expected 1 item on page 2, got %d", len(page2.Items))
	}
	if !page2.Items[0].Value.Equal(decimal.NewFromInt(1)) {
		t.Errorf("expected value 1, got %s", page2.Items[0].Value)
	}
	if page2.HasMore {
		t.Error("expected page 2 to be the last page")
	}
}

func TestFilteredPager_HasMoreFalseOnExactBoundary(t *testing.T) {
	// Exactly two pages worth of passing entries ending on the boundary.
	history := syntheticHistory(4)
	source := mocks.NewMockLedgerSource()
	source.SetHistory(testAddr, history)

	pager := newPager(source, usecase.FilteredPagerConfig{})

	page2, err := pager.GetFilteredPage(context.Background(), testAddr, domain.PageRequest{Page: 2, PageSize: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(page2.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(page2.Items))
	}
	if page2.HasMore {
		t.Error("expected has-more false when history ends exactly on the page boundary")
	}
}

func TestFilteredPager_PageBeyondEnd(t *testing.T) {
	source := mocks.NewMockLedgerSource()
	source.SetHistory(testAddr, syntheticHistory(5))

	pager := newPager(source, usecase.FilteredPagerConfig{})

	result, err := pager.GetFilteredPage(context.Background(), testAddr, domain.PageRequest{Page: 9, PageSize: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Items) != 0 {
		t.Errorf("expected empty page beyond end, got %d items", len(result.Items))
	}
	if result.HasMore {
		t.Error("expected has-more false beyond end of history")
	}
	if result.Degraded {
		t.Error("expected exhaustion to be a clean result, not degraded")
	}
}

func TestFilteredPager_ScanBound(t *testing.T) {
	// A filter that matches nothing over a long history trips the scan
	// bound instead of walking the whole history.
	history := make([]*domain.LedgerEntry, 100)
	base := time.Now()
	for i := range history {
		history[i] = &domain.LedgerEntry{
			Hash:      fmt.Sprintf("0xout%04d", i),
			Timestamp: base.Add(-time.Duration(i) * time.Minute),
			From:      testAddr,
			To:        peerAddr,
			Value:     decimal.NewFromInt(1),
			Success:   true,
		}
	}
	source := mocks.NewMockLedgerSource()
	source.SetHistory(testAddr, history)

	pager := newPager(source, usecase.FilteredPagerConfig{MaxScan: 10})

	result, err := pager.GetFilteredPage(context.Background(), testAddr, domain.PageRequest{
		Page: 1, PageSize: 2,
		Criteria: domain.FilterCriteria{Direction: domain.DirectionIncoming},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.Degraded {
		t.Error("expected scan-bounded result to be degraded")
	}
	if result.HasMore {
		t.Error("expected has-more false when the scan bound trips")
	}
	if len(result.Items) != 0 {
		t.Errorf("expected no items, got %d", len(result.Items))
	}
	if source.EntriesCalls() >= 20 {
		t.Errorf("expected scan bound to stop the walk early, made %d upstream calls", source.EntriesCalls())
	}
}

func TestFilteredPager_DegradedOnUpstreamFailure(t *testing.T) {
	history := syntheticHistory(8)
	source := mocks.NewMockLedgerSource()
	source.GetEntriesPageFunc = func(_ context.Context, _ string, offset, limit int) ([]*domain.LedgerEntry, error) {
		if offset >= 4 {
			return nil, domain.ErrUpstreamUnavailable
		}
		end := offset + limit
		if end > len(history) {
			end = len(history)
		}
		return history[offset:end], nil
	}

	pager := newPager(source, usecase.FilteredPagerConfig{})

	result, err := pager.GetFilteredPage(context.Background(), testAddr, domain.PageRequest{Page: 2, PageSize: 2})
	if err != nil {
		t.Fatalf("expected degraded result instead of error, got %v", err)
	}

	if !result.Degraded {
		t.Error("expected result to be degraded after mid-scan upstream failure")
	}
	if len(result.Items) != 2 {
		t.Errorf("expected the 2 items gathered before the failure, got %d", len(result.Items))
	}
	if result.HasMore {
		t.Error("expected has-more false on degraded result")
	}
}

func TestFilteredPager_InvalidAddress(t *testing.T) {
	source := mocks.NewMockLedgerSource()
	pager := newPager(source, usecase.FilteredPagerConfig{})

	_, err := pager.GetFilteredPage(context.Background(), "bogus", domain.PageRequest{Page: 1, PageSize: 10})
	if !errors.Is(err, domain.ErrInvalidAddress) {
		t.Fatalf("expected ErrInvalidAddress, got %v", err)
	}
	if source.EntriesCalls() != 0 {
		t.Errorf("expected no upstream calls for invalid address, got %d", source.EntriesCalls())
	}
}

func TestFilteredPager_TimestampTiesKeepUpstreamOrder(t *testing.T) {
	ts := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	history := []*domain.LedgerEntry{
		{Hash: "0xfirst", Timestamp: ts, From: peerAddr, To: testAddr, Value: decimal.NewFromInt(1), Success: true},
		{Hash: "0xsecond", Timestamp: ts, From: peerAddr, To: testAddr, Value: decimal.NewFromInt(2), Success: true},
		{Hash: "0xthird", Timestamp: ts, From: peerAddr, To: testAddr, Value: decimal.NewFromInt(3), Success: true},
	}
	source := mocks.NewMockLedgerSource()
	source.SetHistory(testAddr, history)

	pager := newPager(source, usecase.FilteredPagerConfig{})

	result, err := pager.GetFilteredPage(context.Background(), testAddr, domain.PageRequest{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"0xfirst", "0xsecond", "0xthird"}
	if len(result.Items) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(result.Items))
	}
	for i, hash := range want {
		if result.Items[i].Hash != hash {
			t.Errorf("item %d: expected %s, got %s", i, hash, result.Items[i].Hash)
		}
	}
}
