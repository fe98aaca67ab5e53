package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/karbiaO9/BlockMind-sub000/internal/domain"
)

// MockLedgerSource is an in-memory LedgerSource backed by per-address
// histories in most-recent-first order. Behavior can be overridden per
// method for failure injection.
type MockLedgerSource struct {
	mu        sync.Mutex
	balances  map[string]decimal.Decimal
	histories map[string][]*domain.LedgerEntry

	balanceCalls int
	entriesCalls int

	GetBalanceFunc     func(ctx context.Context, address string) (decimal.Decimal, error)
	GetEntriesPageFunc func(ctx context.Context, address string, offset, limit int) ([]*domain.LedgerEntry, error)
}

func NewMockLedgerSource() *MockLedgerSource {
	return &MockLedgerSource{
		balances:  make(map[string]decimal.Decimal),
		histories: make(map[string][]*domain.LedgerEntry),
	}
}

// SetBalance sets the balance returned for an address.
func (m *MockLedgerSource) SetBalance(address string, balance decimal.Decimal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balances[domain.NormalizeAddress(address)] = balance
}

// SetHistory sets the full most-recent-first history for an address.
func (m *MockLedgerSource) SetHistory(address string, entries []*domain.LedgerEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.histories[domain.NormalizeAddress(address)] = entries
}

func (m *MockLedgerSource) GetBalance(ctx context.Context, address string) (decimal.Decimal, error) {
	m.mu.Lock()
	m.balanceCalls++
	m.mu.Unlock()

	if m.GetBalanceFunc != nil {
		return m.GetBalanceFunc(ctx, address)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	return m.balances[domain.NormalizeAddress(address)], nil
}

func (m *MockLedgerSource) GetEntriesPage(ctx context.Context, address string, offset, limit int) ([]*domain.LedgerEntry, error) {
	m.mu.Lock()
	m.entriesCalls++
	m.mu.Unlock()

	if m.GetEntriesPageFunc != nil {
		return m.GetEntriesPageFunc(ctx, address, offset, limit)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	history := m.histories[domain.NormalizeAddress(address)]
	if offset >= len(history) {
		return nil, nil
	}

	end := offset + limit
	if end > len(history) {
		end = len(history)
	}

	return history[offset:end], nil
}

// BalanceCalls returns how many GetBalance calls were made.
func (m *MockLedgerSource) BalanceCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.balanceCalls
}

// EntriesCalls returns how many GetEntriesPage calls were made.
func (m *MockLedgerSource) EntriesCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.entriesCalls
}

// MockCache is an in-memory Cache.
type MockCache struct {
	mu    sync.Mutex
	items map[string]string

	GetFunc func(ctx context.Context, key string) (string, error)
	SetFunc func(ctx context.Context, key, value string, ttl time.Duration) error
}

func NewMockCache() *MockCache {
	return &MockCache{items: make(map[string]string)}
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	return m.items[key], nil
}

func (m *MockCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value

	return nil
}

func (m *MockCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)

	return nil
}

// Len returns the number of cached items.
func (m *MockCache) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.items)
}

// MockIDGenerator returns sequential IDs.
type MockIDGenerator struct {
	mu   sync.Mutex
	next int
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++

	return fmt.Sprintf("wallet-%04d", m.next)
}
