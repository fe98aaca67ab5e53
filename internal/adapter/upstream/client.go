package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/karbiaO9/BlockMind-sub000/internal/domain"
	"github.com/karbiaO9/BlockMind-sub000/internal/infrastructure/metrics"
)

// ClientConfig holds upstream connection settings.
type ClientConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client is a thin protocol adapter over the ledger-indexing HTTP API.
// It performs no retries and no filtering; retry policy and in-flight
// capping belong to the decorators around it.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a new upstream client.
func NewClient(cfg ClientConfig, logger zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type balanceResponse struct {
	Balance string `json:"balance"`
}

type entriesResponse struct {
	Entries []wireEntry `json:"entries"`
}

type wireEntry struct {
	Hash      string `json:"hash"`
	Timestamp int64  `json:"timestamp"`
	From      string `json:"from"`
	To        string `json:"to"`
	Value     string `json:"value"`
	Success   bool   `json:"success"`
	Operation string `json:"operation"`
}

// GetBalance fetches the current balance for an address.
func (c *Client) GetBalance(ctx context.Context, address string) (decimal.Decimal, error) {
	if err := domain.ValidateAddress(address); err != nil {
		return decimal.Zero, err
	}

	address = domain.NormalizeAddress(address)
	endpoint := fmt.Sprintf("%s/api/v1/address/%s/balance", c.baseURL, address)

	var resp balanceResponse
	if err := c.get(ctx, "balance", endpoint, &resp); err != nil {
		return decimal.Zero, err
	}

	balance, err := decimal.NewFromString(resp.Balance)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: malformed balance %q", domain.ErrUpstreamUnavailable, resp.Balance)
	}

	return balance, nil
}

// GetEntriesPage fetches one unfiltered page of the address history, most
// recent first. A short page is the end-of-history signal.
func (c *Client) GetEntriesPage(ctx context.Context, address string, offset, limit int) ([]*domain.LedgerEntry, error) {
	if err := domain.ValidateAddress(address); err != nil {
		return nil, err
	}

	address = domain.NormalizeAddress(address)

	q := url.Values{}
	q.Set("offset", strconv.Itoa(offset))
	q.Set("limit", strconv.Itoa(limit))
	q.Set("sort", "desc")

	endpoint := fmt.Sprintf("%s/api/v1/address/%s/entries?%s", c.baseURL, address, q.Encode())

	var resp entriesResponse
	if err := c.get(ctx, "entries", endpoint, &resp); err != nil {
		return nil, err
	}

	entries := make([]*domain.LedgerEntry, 0, len(resp.Entries))
	for _, w := range resp.Entries {
		value, err := decimal.NewFromString(w.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: malformed value %q in entry %s", domain.ErrUpstreamUnavailable, w.Value, w.Hash)
		}

		entries = append(entries, &domain.LedgerEntry{
			Hash:      w.Hash,
			Timestamp: time.Unix(w.Timestamp, 0).UTC(),
			From:      w.From,
			To:        w.To,
			Value:     value,
			Success:   w.Success,
			Operation: w.Operation,
		})
	}

	return entries, nil
}

func (c *Client) get(ctx context.Context, name, endpoint string, out any) error {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ObserveUpstreamRequest(name, "network_error", time.Since(start))

		if ctx.Err() != nil {
			return ctx.Err()
		}

		return fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	metrics.ObserveUpstreamRequest(name, strconv.Itoa(resp.StatusCode), time.Since(start))

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to decode
	case resp.StatusCode == http.StatusTooManyRequests:
		return &RateLimitError{RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"))}
	default:
		return fmt.Errorf("%w: unexpected status %d", domain.ErrUpstreamUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", domain.ErrUpstreamUnavailable, err)
	}

	return nil
}

// parseRetryAfter reads a Retry-After header given in seconds.
func parseRetryAfter(v string) time.Duration {
	if v == "" {
		return 0
	}

	secs, err := strconv.Atoi(v)
	if err != nil || secs < 0 {
		return 0
	}

	return time.Duration(secs) * time.Second
}
