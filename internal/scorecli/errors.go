package scorecli

import "errors"

var (
	ErrLoadPlayers   = errors.New("couldn't load players")
	ErrNoPlayers     = errors.New("no players in file")
	ErrUnknownFormat = errors.New("unknown format")
	ErrRemote        = errors.New("remote scoring failed")
	ErrMismatch      = errors.New("remote result differs")
)
