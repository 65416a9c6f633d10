package site

import (
	"fmt"
	"html/template"

	service "github.com/okian/boardscore/internal/app"
	"github.com/okian/boardscore/internal/domain/changelog"
	"github.com/okian/boardscore/internal/domain/numparse"
	ttr "github.com/okian/boardscore/internal/domain/tickettoride"
)

const timestampLayout = "2006-01-02 15:04"

// page holds what the layout needs on every page.
type page struct {
	Title      string
	SiteTitle  string
	Version    string
	SourceURL  string
	Crumbs     []crumb
	ShowFooter bool
}

type game struct {
	Name string
	Path string
}

type indexPage struct {
	page
	Games []game
}

type changelogPage struct {
	page
	Versions []versionView
}

type versionView struct {
	Number    string
	Timestamp string
	Items     []descriptionView
}

type descriptionView struct {
	HTML     template.HTML
	Children []descriptionView
}

type notFoundPage struct {
	page
	Message string
}

// sheetPage is one Ticket to Ride score sheet laid out as a table: one row
// per field, one column per player.
type sheetPage struct {
	page
	ID          string
	QRPath      string
	ShareURL    string
	TotalTrains int
	Players     []playerColumn
	Routes      []routeRow
}

type playerColumn struct {
	Index       int
	FormID      string
	Action      string
	Placeholder string
	Name        string
	Score       int
	Winner      bool

	Completed    string
	CompletedSum int
	Failed       string
	FailedSum    int

	TrainsUsed    string
	TrainsLeft    string
	TooManyTrains bool

	LongestPath    int
	HasLongestPath bool
	LongestBonus   int
	LongestInvalid bool
}

type routeRow struct {
	Length     int
	Label      string
	Multiplier int
	Cells      []routeCell
}

type routeCell struct {
	FormID  string
	Field   string
	Count   int
	Points  int
	Invalid bool
}

// routeField is the form field holding the count of routes of length.
func routeField(length int) string {
	return fmt.Sprintf("route_%d", length)
}

func newSheetPage(base page, v service.View, shareURL string) sheetPage {
	id := v.Sheet.ID
	sp := sheetPage{
		page:        base,
		ID:          id,
		QRPath:      "/ticket-to-ride/" + id + "/qr.png",
		ShareURL:    shareURL,
		TotalTrains: ttr.TotalTrains,
		Players:     make([]playerColumn, len(v.Sheet.Players)),
		Routes:      make([]routeRow, ttr.NumRouteLengths),
	}

	for i, p := range v.Sheet.Players {
		res := v.Result.Players[i]
		col := playerColumn{
			Index:       i,
			FormID:      fmt.Sprintf("player-%d", i),
			Action:      fmt.Sprintf("/ticket-to-ride/%s/players/%d", id, i),
			Placeholder: fmt.Sprintf("Player %d", i+1),
			Name:        p.Name,
			Score:       res.Score,
			Winner:      res.Winner,

			Completed:    numparse.FormatList(p.CompletedDestinations),
			CompletedSum: res.Breakdown.CompletedTotal,
			Failed:       numparse.FormatList(p.FailedDestinations),
			FailedSum:    -res.Breakdown.FailedTotal,

			TrainsUsed:    countLabel(res.TrainsUsed, "train") + " used",
			TooManyTrains: res.Warnings.TooManyTrains,

			LongestPath:    p.LongestPath,
			HasLongestPath: res.Breakdown.HasLongestPath,
			LongestBonus:   res.Breakdown.LongestPathBonus,
			LongestInvalid: res.Warnings.LongestPathTooLong,
		}
		if res.Warnings.TooManyTrains {
			col.TrainsLeft = fmt.Sprintf("(should be max %d)", ttr.TotalTrains)
		} else {
			col.TrainsLeft = countLabel(ttr.TotalTrains-res.TrainsUsed, "train") + " remaining"
		}
		sp.Players[i] = col
	}

	for l := range ttr.NumRouteLengths {
		row := routeRow{
			Length:     l + 1,
			Label:      fmt.Sprintf("# Length %d Routes", l+1),
			Multiplier: ttr.RouteLengthScores[l],
			Cells:      make([]routeCell, len(v.Sheet.Players)),
		}
		for i, p := range v.Sheet.Players {
			res := v.Result.Players[i]
			row.Cells[i] = routeCell{
				FormID:  sp.Players[i].FormID,
				Field:   routeField(l + 1),
				Count:   p.RouteCounts[l],
				Points:  res.Breakdown.RoutePoints[l],
				Invalid: res.Warnings.RouteCountTooHigh[l],
			}
		}
		sp.Routes[l] = row
	}
	return sp
}

// newVersionViews renders the changelog, newest first.
func newVersionViews(md *markdown) ([]versionView, error) {
	entries := changelog.Entries()
	views := make([]versionView, len(entries))
	for i, v := range entries {
		items, err := newDescriptionViews(md, v.Description)
		if err != nil {
			return nil, fmt.Errorf("%w: changelog %s: %w", ErrRender, v.Number, err)
		}
		views[i] = versionView{
			Number:    v.Number.String(),
			Timestamp: v.Timestamp.Format(timestampLayout),
			Items:     items,
		}
	}
	return views, nil
}

func newDescriptionViews(md *markdown, descs []changelog.Description) ([]descriptionView, error) {
	if len(descs) == 0 {
		return nil, nil
	}
	out := make([]descriptionView, len(descs))
	for i, d := range descs {
		html, err := md.Inline(d.Text)
		if err != nil {
			return nil, err
		}
		children, err := newDescriptionViews(md, d.Children)
		if err != nil {
			return nil, err
		}
		out[i] = descriptionView{HTML: html, Children: children}
	}
	return out, nil
}
