package postgres

import (
	"testing"

	"github.com/oklog/ulid/v2"
)

func TestULIDGenerator(t *testing.T) {
	gen := NewULIDGenerator()

	first := gen.Generate()
	second := gen.Generate()

	if first == second {
		t.Fatalf("expected unique IDs, got %s twice", first)
	}

	if _, err := ulid.Parse(first); err != nil {
		t.Fatalf("expected a valid ULID, got %s: %v", first, err)
	}

	// ULIDs generated in sequence sort by creation time.
	if !(first < second) {
		t.Errorf("expected lexicographic ordering, got %s then %s", first, second)
	}
}
