package domain

import "strings"

// Direction restricts a transaction view to one flow relative to the
// wallet address.
type Direction string

const (
	DirectionAny      Direction = "any"
	DirectionIncoming Direction = "incoming"
	DirectionOutgoing Direction = "outgoing"
)

// FilterCriteria describes which entries a transaction view keeps.
type FilterCriteria struct {
	Direction        Direction
	NonZeroValueOnly bool
	Search           string
}

// Matches reports whether the entry satisfies the criteria for the given
// wallet address. Search is a case-insensitive substring match against
// hash, sender, and recipient.
func (c FilterCriteria) Matches(address string, e *LedgerEntry) bool {
	switch c.Direction {
	case DirectionIncoming:
		if !e.IsIncoming(address) {
			return false
		}
	case DirectionOutgoing:
		if !e.IsOutgoing(address) {
			return false
		}
	}

	if c.NonZeroValueOnly && e.Value.IsZero() {
		return false
	}

	if c.Search != "" {
		needle := strings.ToLower(c.Search)
		if !strings.Contains(strings.ToLower(e.Hash), needle) &&
			!strings.Contains(strings.ToLower(e.From), needle) &&
			!strings.Contains(strings.ToLower(e.To), needle) {
			return false
		}
	}

	return true
}

// IsZero reports whether the criteria filter nothing out.
func (c FilterCriteria) IsZero() bool {
	return (c.Direction == "" || c.Direction == DirectionAny) &&
		!c.NonZeroValueOnly && c.Search == ""
}

// PageRequest asks for one page of the filtered, time-descending
// transaction sequence.
type PageRequest struct {
	Page     int
	PageSize int
	Criteria FilterCriteria
}

// PageResult is one page of the filtered sequence, most recent first.
// Degraded is set when the scan bound tripped or the upstream failed
// mid-scan; the items present are still correct, but the page may be
// short and HasMore is conservative.
type PageResult struct {
	Items    []*LedgerEntry
	HasMore  bool
	Degraded bool
}
