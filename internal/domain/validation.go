package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// Pagination limits
const (
	DefaultPageSize = 25
	MaxPageSize     = 100
)

// addressRegex matches the chain's canonical hex address shape.
var addressRegex = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// ValidateAddress checks the canonical address shape. It is called before
// any network call is issued.
func ValidateAddress(address string) error {
	address = strings.TrimSpace(address)

	if address == "" {
		return fmt.Errorf("%w: address is empty", ErrInvalidAddress)
	}

	if !addressRegex.MatchString(address) {
		return fmt.Errorf("%w: %q is not a 0x-prefixed 40-hex-digit address", ErrInvalidAddress, address)
	}

	return nil
}

// NormalizeAddress returns the canonical lowercased form used for
// comparisons, cache keys, and snapshot map keys.
func NormalizeAddress(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}

// NormalizePageRequest clamps page number and size into valid bounds.
func NormalizePageRequest(req PageRequest) PageRequest {
	if req.Page < 1 {
		req.Page = 1
	}

	if req.PageSize <= 0 {
		req.PageSize = DefaultPageSize
	}

	if req.PageSize > MaxPageSize {
		req.PageSize = MaxPageSize
	}

	if req.Criteria.Direction == "" {
		req.Criteria.Direction = DirectionAny
	}

	return req
}

// ParseDirection maps a request string onto a Direction, defaulting to any.
func ParseDirection(s string) Direction {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "in", "incoming":
		return DirectionIncoming
	case "out", "outgoing":
		return DirectionOutgoing
	default:
		return DirectionAny
	}
}
