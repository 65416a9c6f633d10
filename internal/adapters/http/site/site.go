// Package site serves the server-rendered score sheet website.
package site

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/skip2/go-qrcode"

	"github.com/okian/boardscore/internal/adapters/http/api"
	service "github.com/okian/boardscore/internal/app"
	"github.com/okian/boardscore/internal/domain/changelog"
	ttr "github.com/okian/boardscore/internal/domain/tickettoride"
	"github.com/okian/boardscore/pkg/logger"
)

// Defaults for the site options.
const (
	defaultTitle     = "Board Game Scores"
	defaultSourceURL = "https://github.com/okian/boardscore"
	defaultBaseURL   = "http://localhost:9080"
	qrSize           = 256
)

// Dependencies are the score sheet operations the site renders.
type Dependencies interface {
	NewSheet(ctx context.Context, players int) (service.View, error)
	Evaluate(ctx context.Context, id string) (service.View, error)
	UpdatePlayer(ctx context.Context, id string, player int, patch service.PlayerPatch) (service.View, error)
}

// Site renders the website pages.
type Site struct {
	deps Dependencies

	title     string
	sourceURL string
	baseURL   string
	logger    logger.Logger

	index     *template.Template
	sheet     *template.Template
	changelog *template.Template
	notFound  *template.Template
	versions  []versionView
}

// Option applies a configuration option to the Site.
type Option func(*Site)

// WithTitle sets the site title.
func WithTitle(title string) Option {
	return func(s *Site) {
		if title != "" {
			s.title = title
		}
	}
}

// WithSourceURL sets the source code link shown in the footer.
func WithSourceURL(url string) Option {
	return func(s *Site) {
		if url != "" {
			s.sourceURL = url
		}
	}
}

// WithBaseURL sets the public address used in share links and QR codes.
func WithBaseURL(url string) Option {
	return func(s *Site) {
		if url != "" {
			s.baseURL = strings.TrimRight(url, "/")
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Site) {
		if l != nil {
			s.logger = l
		}
	}
}

// New parses the page templates and renders the changelog.
func New(deps Dependencies, opts ...Option) (*Site, error) {
	s := &Site{
		deps:      deps,
		title:     defaultTitle,
		sourceURL: defaultSourceURL,
		baseURL:   defaultBaseURL,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Named("site")
	}

	var err error
	if s.index, err = parse("index.html"); err != nil {
		return nil, err
	}
	if s.sheet, err = parse("sheet.html"); err != nil {
		return nil, err
	}
	if s.changelog, err = parse("changelog.html"); err != nil {
		return nil, err
	}
	if s.notFound, err = parse("notfound.html"); err != nil {
		return nil, err
	}
	if s.versions, err = newVersionViews(newMarkdown()); err != nil {
		return nil, err
	}
	return s, nil
}

func parse(name string) (*template.Template, error) {
	t, err := template.New("layout.html").Funcs(funcs).
		ParseFS(templateFS, "templates/layout.html", "templates/"+name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRender, name, err)
	}
	return t, nil
}

// Register attaches the website routes to mux.
func (s *Site) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(StaticFS())))
	mux.HandleFunc("GET /{$}", api.MetricsMiddleware(s.handleIndex, "site_index"))
	mux.HandleFunc("GET /changelog", api.MetricsMiddleware(s.handleChangelog, "site_changelog"))
	mux.HandleFunc("GET /ticket-to-ride", api.MetricsMiddleware(s.handleNewSheet, "site_new_sheet"))
	mux.HandleFunc("GET /ticket-to-ride/{id}", api.MetricsMiddleware(s.handleSheet, "site_sheet"))
	mux.HandleFunc("POST /ticket-to-ride/{id}/players/{n}", api.MetricsMiddleware(s.handleUpdatePlayer, "site_update_player"))
	mux.HandleFunc("GET /ticket-to-ride/{id}/qr.png", api.MetricsMiddleware(s.handleQRCode, "site_qr"))
}

func (s *Site) page(r *http.Request, name, lastCrumb string) page {
	return page{
		Title:      pageTitle(s.title, name),
		SiteTitle:  s.title,
		Version:    changelog.Current().String(),
		SourceURL:  s.sourceURL,
		Crumbs:     breadcrumbs(r.URL.Path, lastCrumb),
		ShowFooter: true,
	}
}

// render executes t into a buffer first so a failed template never leaves a
// half-written page.
func (s *Site) render(w http.ResponseWriter, r *http.Request, status int, t *template.Template, data any) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		s.logger.Error(r.Context(), "failed to render page",
			logger.String("path", r.URL.Path),
			logger.Error(err),
		)
		http.Error(w, "Couldn't render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *Site) renderNotFound(w http.ResponseWriter, r *http.Request, msg string) {
	p := s.page(r, "Not Found", "")
	p.Crumbs = nil
	p.ShowFooter = false
	s.render(w, r, http.StatusNotFound, s.notFound, notFoundPage{page: p, Message: msg})
}

// handleError renders a not-found page for unknown sheets and players and a
// plain 500 otherwise.
func (s *Site) handleError(w http.ResponseWriter, r *http.Request, err error) {
	api.NoteError(w, err)
	switch {
	case errors.Is(err, service.ErrSheetNotFound):
		s.renderNotFound(w, r, "This score sheet does not exist or has expired.")
	case errors.Is(err, service.ErrInvalidPlayer):
		s.renderNotFound(w, r, "This player is not on the score sheet.")
	default:
		s.logger.Error(r.Context(), "request failed",
			logger.String("path", r.URL.Path),
			logger.Error(err),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (s *Site) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, s.index, indexPage{
		page:  s.page(r, "", ""),
		Games: []game{{Name: "Ticket to Ride", Path: "/ticket-to-ride"}},
	})
}

func (s *Site) handleChangelog(w http.ResponseWriter, r *http.Request) {
	p := s.page(r, "Changelog", "")
	p.ShowFooter = false
	s.render(w, r, http.StatusOK, s.changelog, changelogPage{page: p, Versions: s.versions})
}

// handleNewSheet creates a sheet and redirects to it. ?players=N picks the
// number of players.
func (s *Site) handleNewSheet(w http.ResponseWriter, r *http.Request) {
	players, _ := strconv.Atoi(r.URL.Query().Get("players"))
	view, err := s.deps.NewSheet(r.Context(), players)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	http.Redirect(w, r, "/ticket-to-ride/"+view.Sheet.ID, http.StatusSeeOther)
}

func (s *Site) sheetURL(id string) string {
	return s.baseURL + "/ticket-to-ride/" + id
}

func (s *Site) handleSheet(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	view, err := s.deps.Evaluate(r.Context(), id)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	p := s.page(r, "Ticket to Ride", "Score Sheet")
	s.render(w, r, http.StatusOK, s.sheet, newSheetPage(p, view, s.sheetURL(id)))
}

// formPatch builds a patch from the submitted fields. Fields missing from the
// form are left unchanged.
func formPatch(r *http.Request) service.PlayerPatch {
	field := func(name string) *string {
		if _, ok := r.PostForm[name]; !ok {
			return nil
		}
		v := r.PostForm.Get(name)
		return &v
	}
	patch := service.PlayerPatch{
		Name:                  field("name"),
		CompletedDestinations: field("completed_destinations"),
		FailedDestinations:    field("failed_destinations"),
		LongestPath:           field("longest_path"),
	}
	for l := range ttr.NumRouteLengths {
		patch.RouteCounts[l] = field(routeField(l + 1))
	}
	return patch
}

// handleUpdatePlayer commits a player's form and redirects back to the sheet.
func (s *Site) handleUpdatePlayer(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	player, err := strconv.Atoi(r.PathValue("n"))
	if err != nil || player < 0 {
		s.renderNotFound(w, r, "This player is not on the score sheet.")
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Couldn't read form", http.StatusBadRequest)
		return
	}
	if patch := formPatch(r); !patch.Empty() {
		if _, err := s.deps.UpdatePlayer(r.Context(), id, player, patch); err != nil {
			s.handleError(w, r, err)
			return
		}
	}
	http.Redirect(w, r, fmt.Sprintf("/ticket-to-ride/%s#player-%d", id, player), http.StatusSeeOther)
}

// handleQRCode serves a PNG QR code linking to the sheet.
func (s *Site) handleQRCode(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	view, err := s.deps.Evaluate(r.Context(), id)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	data, err := qrcode.Encode(s.sheetURL(id), qrcode.Medium, qrSize)
	if err != nil {
		s.logger.Warn(r.Context(), "couldn't encode QR code", logger.Error(fmt.Errorf("%w: %w", ErrQRCode, err)))
		http.Error(w, "Couldn't generate QR code", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	http.ServeContent(w, r, "qr.png", view.Sheet.CreatedAt, bytes.NewReader(data))
}
