package domain

import "errors"

var (
	// Address errors
	ErrInvalidAddress = errors.New("invalid wallet address")

	// Upstream errors
	ErrUpstreamUnavailable = errors.New("upstream ledger source unavailable")
	ErrRateLimited         = errors.New("upstream rate limit exceeded")

	// Tracked wallet errors
	ErrWalletNotTracked     = errors.New("wallet is not tracked")
	ErrWalletAlreadyTracked = errors.New("wallet is already tracked")

	// Poller errors
	ErrPollerAlreadyRunning = errors.New("poller is already running")
	ErrPollerNotRunning     = errors.New("poller is not running")
)
