package upstream

import (
	"fmt"
	"time"

	"github.com/karbiaO9/BlockMind-sub000/internal/domain"
)

// RateLimitError is returned on an upstream 429. RetryAfter carries the
// server's retry hint when one was provided, zero otherwise. It matches
// errors.Is(err, domain.ErrRateLimited).
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("upstream rate limit exceeded, retry after %s", e.RetryAfter)
	}

	return "upstream rate limit exceeded"
}

func (e *RateLimitError) Is(target error) bool {
	return target == domain.ErrRateLimited
}
