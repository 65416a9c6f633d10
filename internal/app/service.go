// Package service provides the score sheet service used by the HTTP API and
// the website.
package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/okian/boardscore/internal/adapters/repository"
	"github.com/okian/boardscore/internal/domain/changelog"
	"github.com/okian/boardscore/internal/domain/numparse"
	ttr "github.com/okian/boardscore/internal/domain/tickettoride"
	"github.com/okian/boardscore/pkg/logger"
	"github.com/okian/boardscore/pkg/metrics"
)

// Default service configuration.
const (
	defaultMinPlayers     = 2
	defaultMaxPlayers     = 5
	defaultPlayers        = 5
	defaultSheetCapacity  = 10_000
	defaultSheetTTL       = 12 * time.Hour
	warningTooManyTrains  = "too_many_trains"
	warningRouteCount     = "route_count_too_high"
	warningLongestTooLong = "longest_path_too_long"
)

// View is a sheet together with its evaluated scores and winners.
type View struct {
	Sheet  repository.Sheet
	Result ttr.Result
}

// PlayerPatch holds raw field text for one player. Nil fields are left as
// they are. Text is parsed the same way the score sheet inputs are.
type PlayerPatch struct {
	Name                  *string
	CompletedDestinations *string
	FailedDestinations    *string
	RouteCounts           [ttr.NumRouteLengths]*string
	LongestPath           *string
}

// Empty reports whether the patch changes nothing.
func (p PlayerPatch) Empty() bool {
	if p.Name != nil || p.CompletedDestinations != nil || p.FailedDestinations != nil || p.LongestPath != nil {
		return false
	}
	for _, rc := range p.RouteCounts {
		if rc != nil {
			return false
		}
	}
	return true
}

// Service implements the score sheet operations.
type Service struct {
	mu sync.RWMutex

	store     repository.Store
	ownsStore bool

	// Configuration
	capacity       int
	ttl            time.Duration
	minPlayers     int
	maxPlayers     int
	defaultPlayers int

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithStore uses store instead of creating an in-memory one on Start.
// The service does not close a store it did not create.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithSheetCapacity sets how many sheets the in-memory store keeps.
func WithSheetCapacity(capacity int) Option {
	return func(s *Service) {
		if capacity > 0 {
			s.capacity = capacity
		}
	}
}

// WithSheetTTL sets how long an untouched sheet is kept. Zero disables expiry.
func WithSheetTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl >= 0 {
			s.ttl = ttl
		}
	}
}

// WithPlayerBounds sets the allowed number of players per sheet and the
// number used when none is requested. Invalid combinations are ignored.
func WithPlayerBounds(minPlayers, maxPlayers, defaultPlayers int) Option {
	return func(s *Service) {
		if minPlayers < 1 || maxPlayers < minPlayers || defaultPlayers < minPlayers || defaultPlayers > maxPlayers {
			return
		}
		s.minPlayers = minPlayers
		s.maxPlayers = maxPlayers
		s.defaultPlayers = defaultPlayers
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		capacity:       defaultSheetCapacity,
		ttl:            defaultSheetTTL,
		minPlayers:     defaultMinPlayers,
		maxPlayers:     defaultMaxPlayers,
		defaultPlayers: defaultPlayers,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start creates the sheet store if none was given.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Named("sheets")
	}

	if s.store == nil {
		store, err := repository.NewMemoryStore(
			repository.WithCapacity(s.capacity),
			repository.WithTTL(s.ttl),
		)
		if err != nil {
			return fmt.Errorf("create sheet store: %w", err)
		}
		s.store = store
		s.ownsStore = true
	}

	s.started = true
	s.logger.Info(ctx, "score sheet service started",
		logger.Int("capacity", s.capacity),
		logger.String("ttl", s.ttl.String()),
		logger.Int("minPlayers", s.minPlayers),
		logger.Int("maxPlayers", s.maxPlayers),
	)
	return nil
}

// Stop releases the store if the service created it.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	if s.ownsStore {
		if closer, ok := s.store.(interface{ Close() error }); ok {
			_ = closer.Close()
		}
		s.store = nil
		s.ownsStore = false
	}

	s.started = false
	s.logger.Info(context.Background(), "score sheet service stopped")
}

func (s *Service) sheets() (repository.Store, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	return s.store, nil
}

// PlayerCount clamps n to the configured bounds. Zero or less selects the
// default.
func (s *Service) PlayerCount(n int) int {
	if n <= 0 {
		return s.defaultPlayers
	}
	return min(max(n, s.minPlayers), s.maxPlayers)
}

// NewSheet creates an empty score sheet for players players.
func (s *Service) NewSheet(ctx context.Context, players int) (View, error) {
	store, err := s.sheets()
	if err != nil {
		return View{}, err
	}

	infos := make([]ttr.PlayerInfo, s.PlayerCount(players))
	for i := range infos {
		infos[i] = ttr.NewPlayerInfo()
	}

	sheet, err := store.Create(ctx, infos)
	if err != nil {
		s.logger.Error(ctx, "failed to create sheet", logger.Error(err))
		return View{}, err
	}
	s.logger.Debug(ctx, "sheet created",
		logger.String("sheet_id", sheet.ID),
		logger.Int("players", len(infos)),
	)
	return s.view(sheet), nil
}

// Sheet returns the stored sheet with id.
func (s *Service) Sheet(ctx context.Context, id string) (repository.Sheet, error) {
	store, err := s.sheets()
	if err != nil {
		return repository.Sheet{}, err
	}
	return store.Get(ctx, id)
}

// Evaluate returns the sheet with id and its current scores and winners.
func (s *Service) Evaluate(ctx context.Context, id string) (View, error) {
	sheet, err := s.Sheet(ctx, id)
	if err != nil {
		return View{}, err
	}
	return s.view(sheet), nil
}

// Score evaluates players without storing anything.
func (s *Service) Score(_ context.Context, players []ttr.PlayerInfo) ttr.Result {
	res := ttr.Evaluate(players)
	metrics.RecordEvaluation(len(res.Winners))
	return res
}

func (s *Service) view(sheet repository.Sheet) View {
	res := ttr.Evaluate(sheet.Players)
	metrics.RecordEvaluation(len(res.Winners))
	return View{Sheet: sheet, Result: res}
}

// UpdatePlayer commits every non-nil field of patch to one player of a sheet.
// Destination lists are sorted with leading zeros dropped; counts and the
// longest path are read as non-negative integers.
func (s *Service) UpdatePlayer(ctx context.Context, id string, player int, patch PlayerPatch) (View, error) {
	store, err := s.sheets()
	if err != nil {
		return View{}, err
	}

	sheet, err := store.Update(ctx, id, func(sh *repository.Sheet) error {
		if player < 0 || player >= len(sh.Players) {
			return fmt.Errorf("%w: %d", ErrInvalidPlayer, player)
		}
		applyPatch(&sh.Players[player], patch)
		return nil
	})
	if err != nil {
		return View{}, err
	}

	recordPatch(patch)
	recordWarnings(ttr.CheckWarnings(sheet.Players[player]))
	s.logger.Debug(ctx, "player updated",
		logger.String("sheet_id", id),
		logger.Int("player", player),
	)
	return s.view(sheet), nil
}

func applyPatch(p *ttr.PlayerInfo, patch PlayerPatch) {
	if patch.Name != nil {
		p.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.CompletedDestinations != nil {
		p.CompletedDestinations = numparse.DestinationList(*patch.CompletedDestinations)
	}
	if patch.FailedDestinations != nil {
		p.FailedDestinations = numparse.DestinationList(*patch.FailedDestinations)
	}
	for i, text := range patch.RouteCounts {
		if text != nil {
			p.RouteCounts[i] = numparse.ExtractInt(*text, false)
		}
	}
	if patch.LongestPath != nil {
		p.LongestPath = numparse.ExtractInt(*patch.LongestPath, false)
	}
}

func recordPatch(patch PlayerPatch) {
	if patch.Name != nil {
		metrics.RecordSheetUpdate("name")
	}
	if patch.CompletedDestinations != nil {
		metrics.RecordParse(ParseDestinations)
		metrics.RecordSheetUpdate("completed_destinations")
	}
	if patch.FailedDestinations != nil {
		metrics.RecordParse(ParseDestinations)
		metrics.RecordSheetUpdate("failed_destinations")
	}
	for _, text := range patch.RouteCounts {
		if text != nil {
			metrics.RecordParse(ParseInt)
			metrics.RecordSheetUpdate("route_count")
		}
	}
	if patch.LongestPath != nil {
		metrics.RecordParse(ParseInt)
		metrics.RecordSheetUpdate("longest_path")
	}
}

func recordWarnings(w ttr.Warnings) {
	if w.TooManyTrains {
		metrics.RecordWarning(warningTooManyTrains)
	}
	if w.LongestPathTooLong {
		metrics.RecordWarning(warningLongestTooLong)
	}
	for _, high := range w.RouteCountTooHigh {
		if high {
			metrics.RecordWarning(warningRouteCount)
		}
	}
}

// SetName sets a player's display name.
func (s *Service) SetName(ctx context.Context, id string, player int, name string) (View, error) {
	return s.UpdatePlayer(ctx, id, player, PlayerPatch{Name: &name})
}

// SetCompletedDestinations parses text into a player's completed destinations.
func (s *Service) SetCompletedDestinations(ctx context.Context, id string, player int, text string) (View, error) {
	return s.UpdatePlayer(ctx, id, player, PlayerPatch{CompletedDestinations: &text})
}

// SetFailedDestinations parses text into a player's failed destinations.
func (s *Service) SetFailedDestinations(ctx context.Context, id string, player int, text string) (View, error) {
	return s.UpdatePlayer(ctx, id, player, PlayerPatch{FailedDestinations: &text})
}

// SetRouteCount parses text into the number of routes of length (1 to 6)
// a player claimed.
func (s *Service) SetRouteCount(ctx context.Context, id string, player, length int, text string) (View, error) {
	if length < 1 || length > ttr.NumRouteLengths {
		return View{}, fmt.Errorf("%w: %d", ErrInvalidRoute, length)
	}
	var patch PlayerPatch
	patch.RouteCounts[length-1] = &text
	return s.UpdatePlayer(ctx, id, player, patch)
}

// SetLongestPath parses text into a player's longest path length.
func (s *Service) SetLongestPath(ctx context.Context, id string, player int, text string) (View, error) {
	return s.UpdatePlayer(ctx, id, player, PlayerPatch{LongestPath: &text})
}

// DeleteSheet removes a sheet.
func (s *Service) DeleteSheet(ctx context.Context, id string) error {
	store, err := s.sheets()
	if err != nil {
		return err
	}
	return store.Delete(ctx, id)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":     s.started,
		"version":     changelog.Current().String(),
		"capacity":    s.capacity,
		"ttlSeconds":  int(s.ttl.Seconds()),
		"minPlayers":  s.minPlayers,
		"maxPlayers":  s.maxPlayers,
		"defaultSize": s.defaultPlayers,
	}

	if s.started {
		total := s.store.Count(context.Background())
		stats["sheets"] = total
		metrics.UpdateSheetsActive(total)
	}

	return stats
}
