// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	service "github.com/okian/boardscore/internal/app"
	ttr "github.com/okian/boardscore/internal/domain/tickettoride"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	SheetDependencies
	ScoreDependencies
	ParseDependencies
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler *HealthHandler
	statsHandler  *StatsHandler
	sheetsHandler *SheetsHandler
	scoreHandler  *ScoreHandler
	parseHandler  *ParseHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler: NewHealthHandler(),
		statsHandler:  NewStatsHandler(statsProvider),
		sheetsHandler: NewSheetsHandler(deps),
		scoreHandler:  NewScoreHandler(deps),
		parseHandler:  NewParseHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	mux.HandleFunc("POST /api/sheets", MetricsMiddleware(s.sheetsHandler.HandleCreate, "sheets_create"))
	mux.HandleFunc("GET /api/sheets/{id}", MetricsMiddleware(s.sheetsHandler.HandleGet, "sheets_get"))
	mux.HandleFunc("DELETE /api/sheets/{id}", MetricsMiddleware(s.sheetsHandler.HandleDelete, "sheets_delete"))
	mux.HandleFunc("POST /api/sheets/{id}/players/{n}", MetricsMiddleware(s.sheetsHandler.HandleUpdatePlayer, "sheets_player"))

	mux.HandleFunc("POST /api/score", MetricsMiddleware(s.scoreHandler.HandleScore, "score"))
	mux.HandleFunc("POST /api/parse", MetricsMiddleware(s.parseHandler.HandleParse, "parse"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// createSheetRequest mirrors the OpenAPI schema for POST /api/sheets.
type createSheetRequest struct {
	Players int `json:"players"`
}

// playerPatchRequest mirrors the OpenAPI schema for
// POST /api/sheets/{id}/players/{n}. Fields hold raw text as typed into the
// score sheet; absent or null fields are left unchanged.
type playerPatchRequest struct {
	Name                  *string   `json:"name"`
	CompletedDestinations *string   `json:"completed_destinations"`
	FailedDestinations    *string   `json:"failed_destinations"`
	RouteCounts           []*string `json:"route_counts"`
	LongestPath           *string   `json:"longest_path"`
}

func (p playerPatchRequest) patch() (service.PlayerPatch, error) {
	if len(p.RouteCounts) > ttr.NumRouteLengths {
		return service.PlayerPatch{}, fmt.Errorf("route_counts has %d entries, at most %d allowed",
			len(p.RouteCounts), ttr.NumRouteLengths)
	}
	patch := service.PlayerPatch{
		Name:                  p.Name,
		CompletedDestinations: p.CompletedDestinations,
		FailedDestinations:    p.FailedDestinations,
		LongestPath:           p.LongestPath,
	}
	copy(patch.RouteCounts[:], p.RouteCounts)
	if patch.Empty() {
		return service.PlayerPatch{}, errors.New("no fields to update")
	}
	return patch, nil
}

// scoreRequest mirrors the OpenAPI schema for POST /api/score.
type scoreRequest struct {
	Players []ttr.PlayerInfo `json:"players"`
}

func (s scoreRequest) validate() error {
	if len(s.Players) == 0 {
		return errors.New("missing players")
	}
	for i, p := range s.Players {
		if p.LongestPath < 0 {
			return fmt.Errorf("players[%d].longest_path must not be negative", i)
		}
		for j, c := range p.RouteCounts {
			if c < 0 {
				return fmt.Errorf("players[%d].route_counts[%d] must not be negative", i, j)
			}
		}
		for _, d := range append(append([]int{}, p.CompletedDestinations...), p.FailedDestinations...) {
			if d < 0 {
				return fmt.Errorf("players[%d] destinations must not be negative", i)
			}
		}
	}
	return nil
}

// parseRequest mirrors the OpenAPI schema for POST /api/parse.
type parseRequest struct {
	Text          string `json:"text"`
	AllowNegative bool   `json:"allow_negative"`
	Mode          string `json:"mode"`
}

type playerResponse struct {
	ttr.PlayerInfo
	Result ttr.PlayerResult `json:"result"`
}

type sheetResponse struct {
	ID             string           `json:"id"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
	MaxLongestPath int              `json:"max_longest_path"`
	Winners        []int            `json:"winners"`
	Players        []playerResponse `json:"players"`
}

func newSheetResponse(v service.View) sheetResponse {
	resp := sheetResponse{
		ID:             v.Sheet.ID,
		CreatedAt:      v.Sheet.CreatedAt,
		UpdatedAt:      v.Sheet.UpdatedAt,
		MaxLongestPath: v.Result.MaxLongestPath,
		Winners:        v.Result.Winners,
		Players:        make([]playerResponse, len(v.Sheet.Players)),
	}
	for i, p := range v.Sheet.Players {
		resp.Players[i] = playerResponse{PlayerInfo: p, Result: v.Result.Players[i]}
	}
	return resp
}
