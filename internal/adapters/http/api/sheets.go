package api

import (
	"context"
	"errors"
	"io"
	"net/http"

	service "github.com/okian/boardscore/internal/app"
)

// SheetDependencies defines the score sheet operations used by SheetsHandler.
type SheetDependencies interface {
	NewSheet(ctx context.Context, players int) (service.View, error)
	Evaluate(ctx context.Context, id string) (service.View, error)
	UpdatePlayer(ctx context.Context, id string, player int, patch service.PlayerPatch) (service.View, error)
	DeleteSheet(ctx context.Context, id string) error
}

// SheetsHandler handles score sheet requests.
type SheetsHandler struct {
	deps SheetDependencies
}

// NewSheetsHandler creates a new sheets handler.
func NewSheetsHandler(deps SheetDependencies) *SheetsHandler {
	return &SheetsHandler{deps: deps}
}

// HandleCreate handles POST /api/sheets. An empty body creates a sheet with
// the default number of players.
func (h *SheetsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_sheet"
	var req createSheetRequest
	if err := decodeJSON(w, r, &req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_request", Wrap(op, err))
		return
	}
	view, err := h.deps.NewSheet(r.Context(), req.Players)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	w.Header().Set("Location", "/api/sheets/"+view.Sheet.ID)
	writeJSON(w, http.StatusCreated, newSheetResponse(view))
}

// HandleGet handles GET /api/sheets/{id}.
func (h *SheetsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_sheet"
	view, err := h.deps.Evaluate(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, newSheetResponse(view))
}

// HandleDelete handles DELETE /api/sheets/{id}.
func (h *SheetsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	const op = "api.delete_sheet"
	if err := h.deps.DeleteSheet(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, op, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleUpdatePlayer handles POST /api/sheets/{id}/players/{n}, where n is
// the zero-based player column.
func (h *SheetsHandler) HandleUpdatePlayer(w http.ResponseWriter, r *http.Request) {
	const op = "api.update_player"
	player, err := pathIndex(r, "n")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", Wrap(op, err))
		return
	}
	var req playerPatchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", Wrap(op, err))
		return
	}
	patch, err := req.patch()
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	view, err := h.deps.UpdatePlayer(r.Context(), r.PathValue("id"), player, patch)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, newSheetResponse(view))
}
