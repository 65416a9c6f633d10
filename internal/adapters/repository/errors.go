package repository

import "errors"

// Sentinel kinds for score sheet storage errors.
var (
	ErrNotFound   = errors.New("sheet not found")
	ErrNoPlayers  = errors.New("sheet needs at least one player")
	ErrStoreSetup = errors.New("sheet store setup failed")
)
