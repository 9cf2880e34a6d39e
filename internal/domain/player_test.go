package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewPlayerDefaults(t *testing.T) {
	p := NewPlayer("Alice")
	if p.Points != 0 || p.Skips != DefaultSkips || p.Name != "Alice" {
		t.Fatalf("unexpected player %+v", p)
	}
	if _, err := uuid.Parse(p.ID); err != nil {
		t.Fatalf("expected a uuid id, got %q: %v", p.ID, err)
	}
	if NewPlayer("Alice").ID == p.ID {
		t.Fatalf("expected distinct ids for distinct players")
	}

	c := p.Clone()
	c.Points = 5
	if p.Points != 0 {
		t.Fatalf("clone shares state with the player")
	}
}

func TestIdentityUsesClock(t *testing.T) {
	at := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)
	id := newIdentityAt(func() time.Time { return at })
	if !id.CreatedAt.Equal(at) || id.ID == "" {
		t.Fatalf("unexpected identity %+v", id)
	}
}
