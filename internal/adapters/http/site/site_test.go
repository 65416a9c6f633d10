package site

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	service "github.com/okian/boardscore/internal/app"
	"github.com/okian/boardscore/pkg/logger"
	"github.com/okian/boardscore/pkg/metrics"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

// errorCount returns the site_sheet errors recorded with errorType.
func errorCount(errorType string) float64 {
	families, err := metrics.GetRegistry().Gather()
	So(err, ShouldBeNil)
	for _, f := range families {
		if f.GetName() != "boardscore_sheets_errors_by_endpoint_total" {
			continue
		}
		for _, m := range f.GetMetric() {
			labels := map[string]string{}
			for _, l := range m.GetLabel() {
				labels[l.GetName()] = l.GetValue()
			}
			if labels["endpoint"] == "site_sheet" && labels["error_type"] == errorType {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func newTestMux(t *testing.T) *http.ServeMux {
	t.Helper()
	svc := service.New()
	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("failed to start service: %v", err)
	}
	t.Cleanup(svc.Stop)

	s, err := New(svc, WithTitle("Scores"), WithBaseURL("https://scores.example/"))
	if err != nil {
		t.Fatalf("failed to create site: %v", err)
	}
	mux := http.NewServeMux()
	s.Register(context.Background(), mux)
	return mux
}

func get(mux http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func postForm(mux http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

// newSheet creates a sheet through the site and returns its path.
func newSheet(mux http.Handler, players string) string {
	w := get(mux, "/ticket-to-ride?players="+players)
	So(w.Code, ShouldEqual, http.StatusSeeOther)
	loc := w.Header().Get("Location")
	So(loc, ShouldStartWith, "/ticket-to-ride/")
	return loc
}

func TestSitePages(t *testing.T) {
	Convey("Given a registered site", t, func() {
		mux := newTestMux(t)

		Convey("When the home page is requested", func() {
			w := get(mux, "/")

			Convey("Then it lists the games and the current version", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldContainSubstring, "text/html")
				body := w.Body.String()
				So(body, ShouldContainSubstring, "<title>Scores</title>")
				So(body, ShouldContainSubstring, `<a href="/ticket-to-ride">Ticket to Ride</a>`)
				So(body, ShouldContainSubstring, `<a href="/changelog">v0.4</a>`)
				So(body, ShouldContainSubstring, "See the source code at")
			})
		})

		Convey("When the changelog is requested", func() {
			w := get(mux, "/changelog")

			Convey("Then versions are listed newest first with rendered Markdown", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				body := w.Body.String()
				So(body, ShouldContainSubstring, "<title>Scores - Changelog</title>")
				So(strings.Index(body, "v0.4"), ShouldBeLessThan, strings.Index(body, "v0.1"))
				So(body, ShouldContainSubstring, "2025-06-14 11:02")
				So(body, ShouldContainSubstring, "<strong>QR code</strong>")
				So(body, ShouldContainSubstring, "<code>/api-docs</code>")
				So(body, ShouldNotContainSubstring, `class="footer"`)
			})
		})

		Convey("When the stylesheet is requested", func() {
			w := get(mux, "/static/style.css")

			Convey("Then it is served", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, "#score-sheet")
			})
		})

		Convey("When an unknown page is requested", func() {
			w := get(mux, "/nope")

			Convey("Then it is not found", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestSiteScoreSheet(t *testing.T) {
	Convey("Given a three player score sheet", t, func() {
		mux := newTestMux(t)
		path := newSheet(mux, "3")

		Convey("When it is shown", func() {
			w := get(mux, path)

			Convey("Then it has one column per player and no winner", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				body := w.Body.String()
				So(body, ShouldContainSubstring, "<title>Scores - Ticket to Ride</title>")
				So(body, ShouldContainSubstring, `placeholder="Player 3"`)
				So(body, ShouldNotContainSubstring, `placeholder="Player 4"`)
				So(body, ShouldNotContainSubstring, "winner")
				So(body, ShouldContainSubstring, "0 trains used")
				So(body, ShouldContainSubstring, "45 trains remaining")
				So(body, ShouldContainSubstring, `<a href="/ticket-to-ride">Ticket To Ride</a>`)
				So(body, ShouldContainSubstring, "https://scores.example"+path)
			})
		})

		Convey("When a player's form is submitted", func() {
			w := postForm(mux, path+"/players/0", url.Values{
				"name":                   {"Ada"},
				"completed_destinations": {"12 0 5"},
				"route_6":                {"2"},
				"longest_path":           {"12"},
			})

			Convey("Then it redirects back to the player's column", func() {
				So(w.Code, ShouldEqual, http.StatusSeeOther)
				So(w.Header().Get("Location"), ShouldEqual, path+"#player-0")
			})

			Convey("Then the sheet shows the normalized values and the winner", func() {
				body := get(mux, path).Body.String()
				So(body, ShouldContainSubstring, `value="Ada"`)
				So(body, ShouldContainSubstring, `value="5, 12"`)
				So(body, ShouldContainSubstring, `player-col winner score">57<`)
				So(body, ShouldContainSubstring, "12 trains used")
				So(body, ShouldContainSubstring, "33 trains remaining")
				So(body, ShouldContainSubstring, "input-group longest-path")
			})

			Convey("Then fields missing from a later form are kept", func() {
				postForm(mux, path+"/players/0", url.Values{"failed_destinations": {"4"}})
				body := get(mux, path).Body.String()
				So(body, ShouldContainSubstring, `value="5, 12"`)
				So(body, ShouldContainSubstring, `player-col winner score">53<`)
			})
		})

		Convey("When impossible values are entered", func() {
			postForm(mux, path+"/players/1", url.Values{"route_1": {"50"}, "longest_path": {"60"}})
			body := get(mux, path).Body.String()

			Convey("Then they are flagged without changing the score", func() {
				So(body, ShouldContainSubstring, "(should be max 45)")
				So(body, ShouldContainSubstring, "text-danger")
				So(body, ShouldContainSubstring, "form-control is-invalid")
				So(body, ShouldContainSubstring, `player-col winner score">60<`)
			})
		})

		Convey("When the QR code is requested", func() {
			w := get(mux, path+"/qr.png")

			Convey("Then a PNG is served", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldEqual, "image/png")
				So(w.Body.String(), ShouldStartWith, "\x89PNG")
			})
		})

		Convey("When a player that does not exist is updated", func() {
			w := postForm(mux, path+"/players/7", url.Values{"name": {"x"}})

			Convey("Then it is not found", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
				So(w.Body.String(), ShouldContainSubstring, "not on the score sheet")
			})
		})
	})

	Convey("Given a sheet that does not exist", t, func() {
		mux := newTestMux(t)

		Convey("Then its page and QR code are not found", func() {
			w := get(mux, "/ticket-to-ride/missing")
			So(w.Code, ShouldEqual, http.StatusNotFound)
			So(w.Body.String(), ShouldContainSubstring, "does not exist or has expired")
			So(get(mux, "/ticket-to-ride/missing/qr.png").Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("Then the error is counted as a missing sheet", func() {
			before := errorCount("sheet_not_found")
			get(mux, "/ticket-to-ride/missing")
			So(errorCount("sheet_not_found"), ShouldEqual, before+1)
		})
	})

	Convey("Given a request for a sheet with too many players", t, func() {
		mux := newTestMux(t)
		path := newSheet(mux, "9")

		Convey("Then the player count is clamped", func() {
			body := get(mux, path).Body.String()
			So(body, ShouldContainSubstring, `placeholder="Player 5"`)
			So(body, ShouldNotContainSubstring, `placeholder="Player 6"`)
		})
	})
}

func TestSiteWithNilMux(t *testing.T) {
	Convey("Given a site", t, func() {
		s, err := New(service.New())
		So(err, ShouldBeNil)

		Convey("Then registering on a nil mux panics", func() {
			So(func() { s.Register(context.Background(), nil) }, ShouldPanic)
		})
	})
}
