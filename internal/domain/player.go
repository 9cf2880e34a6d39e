package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultSkips is the number of skip lifelines each player starts with.
const DefaultSkips = 2

// Identity is the id and creation time shared by every entity the match creates.
type Identity struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewIdentity returns a fresh random id stamped with the current time.
func NewIdentity() Identity {
	return newIdentityAt(time.Now)
}

func newIdentityAt(now func() time.Time) Identity {
	return Identity{ID: uuid.NewString(), CreatedAt: now()}
}

// Player is one of the two participants of a match.
type Player struct {
	Identity
	Name   string `json:"name"`
	Points int    `json:"points"`
	Skips  int    `json:"skips"`
}

// NewPlayer creates a player with zero points and the default skip allowance.
func NewPlayer(name string) *Player {
	return &Player{
		Identity: NewIdentity(),
		Name:     name,
		Skips:    DefaultSkips,
	}
}

// Clone returns an independent copy of the player.
func (p *Player) Clone() *Player {
	c := *p
	return &c
}
