package domain

import (
	"errors"
	"testing"
)

func TestEnsureReturnsExistingCategory(t *testing.T) {
	reg := NewCategoryRegistry()

	first := reg.Ensure("Science")
	second := reg.Ensure("Science")
	if first != second {
		t.Fatalf("expected the same instance for the same name")
	}
	other := reg.Ensure("History")
	if other.ID == first.ID {
		t.Fatalf("expected distinct ids, both got %d", first.ID)
	}
	if reg.Len() != 2 {
		t.Fatalf("expected 2 categories, got %d", reg.Len())
	}
}

func TestRegisterConflicts(t *testing.T) {
	reg := NewCategoryRegistry()

	if _, err := reg.Register(9, "General Knowledge"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := reg.Register(9, "General Knowledge"); err != nil {
		t.Fatalf("re-register same pair: %v", err)
	}
	if _, err := reg.Register(9, "Sports"); !errors.Is(err, ErrCategoryConflict) {
		t.Fatalf("expected conflict for reused id, got %v", err)
	}
	if _, err := reg.Register(10, "General Knowledge"); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected duplicate kind for reused name, got %v", err)
	}

	// Ensure must skip ids taken by explicit registration.
	reg2 := NewCategoryRegistry()
	_, _ = reg2.Register(1, "Art")
	if c := reg2.Ensure("Music"); c.ID == 1 {
		t.Fatalf("expected Ensure to skip taken id 1")
	}
}

func TestLookups(t *testing.T) {
	reg := NewCategoryRegistry()
	c := reg.Ensure("Film")

	if got, err := reg.ByID(c.ID); err != nil || got != c {
		t.Fatalf("ByID: got %v, %v", got, err)
	}
	if _, err := reg.ByName("Nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
