// Package repository holds score sheets in memory for the life of the process.
package repository

import (
	"context"
	"time"

	ttr "github.com/okian/boardscore/internal/domain/tickettoride"
)

// Sheet is one Ticket to Ride score sheet: an ordered list of players.
type Sheet struct {
	ID        string
	Players   []ttr.PlayerInfo
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Clone returns a deep copy of s.
func (s Sheet) Clone() Sheet {
	c := s
	c.Players = make([]ttr.PlayerInfo, len(s.Players))
	for i, p := range s.Players {
		c.Players[i] = p.Clone()
	}
	return c
}

// Store provides read/write access to score sheets. Returned sheets are
// copies; changes go through Update.
type Store interface {
	// Create stores a new sheet with the given players.
	Create(ctx context.Context, players []ttr.PlayerInfo) (Sheet, error)

	// Get returns the sheet with id, or ErrNotFound.
	Get(ctx context.Context, id string) (Sheet, error)

	// Update applies fn to the stored sheet atomically and returns the result.
	// If fn returns an error the sheet is left unchanged.
	Update(ctx context.Context, id string, fn func(*Sheet) error) (Sheet, error)

	// Delete removes the sheet with id, or returns ErrNotFound.
	Delete(ctx context.Context, id string) error

	// Count returns the number of sheets held.
	Count(ctx context.Context) int
}
