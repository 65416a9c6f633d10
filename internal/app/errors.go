package service

import (
	"errors"

	"github.com/okian/boardscore/internal/adapters/repository"
)

// Sentinel kinds returned by the service.
var (
	ErrNotStarted       = errors.New("service not started")
	ErrSheetNotFound    = repository.ErrNotFound
	ErrInvalidPlayer    = errors.New("invalid player")
	ErrInvalidRoute     = errors.New("invalid route length")
	ErrUnknownParseMode = errors.New("unknown parse mode")
)
