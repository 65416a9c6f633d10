package api

import (
	"net/http"

	service "github.com/okian/boardscore/internal/app"
)

// ParseDependencies defines the text parsing operation.
type ParseDependencies interface {
	Parse(mode, text string, allowNegative bool) (service.ParseResult, error)
}

// ParseHandler exposes the score sheet text parsers.
type ParseHandler struct {
	deps ParseDependencies
}

// NewParseHandler creates a new parse handler.
func NewParseHandler(deps ParseDependencies) *ParseHandler {
	return &ParseHandler{deps: deps}
}

// HandleParse handles POST /api/parse. Mode defaults to "list".
func (h *ParseHandler) HandleParse(w http.ResponseWriter, r *http.Request) {
	const op = "api.parse"
	var req parseRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", Wrap(op, err))
		return
	}
	if req.Mode == "" {
		req.Mode = service.ParseList
	}
	res, err := h.deps.Parse(req.Mode, req.Text, req.AllowNegative)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
