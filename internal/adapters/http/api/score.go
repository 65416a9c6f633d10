package api

import (
	"context"
	"net/http"

	ttr "github.com/okian/boardscore/internal/domain/tickettoride"
)

// ScoreDependencies defines the stateless scoring operation.
type ScoreDependencies interface {
	Score(ctx context.Context, players []ttr.PlayerInfo) ttr.Result
}

// ScoreHandler handles stateless score requests.
type ScoreHandler struct {
	deps ScoreDependencies
}

// NewScoreHandler creates a new score handler.
func NewScoreHandler(deps ScoreDependencies) *ScoreHandler {
	return &ScoreHandler{deps: deps}
}

// HandleScore handles POST /api/score.
func (h *ScoreHandler) HandleScore(w http.ResponseWriter, r *http.Request) {
	const op = "api.score"
	var req scoreRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", Wrap(op, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Score(r.Context(), req.Players))
}
