package id

import (
	"testing"

	"github.com/google/uuid"
)

func TestUUIDGenerator_NewID(t *testing.T) {
	gen := NewUUIDGenerator()
	first, err := gen.NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	second, err := gen.NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct ids, got %s twice", first)
	}
	if _, err := uuid.Parse(first); err != nil {
		t.Fatalf("expected uuid, got %q: %v", first, err)
	}
}

func TestSequence_NewID(t *testing.T) {
	seq := NewSequence("match-")
	for _, want := range []string{"match-1", "match-2", "match-3"} {
		got, _ := seq.NewID()
		if got != want {
			t.Fatalf("unexpected id: got=%s want=%s", got, want)
		}
	}
}
