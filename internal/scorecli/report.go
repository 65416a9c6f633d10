package scorecli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize/english"

	ttr "github.com/okian/boardscore/internal/domain/tickettoride"
)

// WriteReport prints r in the given format.
func WriteReport(w io.Writer, format string, r Report) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatText, "":
		return writeText(w, r)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func displayName(players []ttr.PlayerInfo, i int) string {
	if name := players[i].Name; name != "" {
		return name
	}
	return fmt.Sprintf("Player %d", i+1)
}

// warningText lists the impossible entries of a player.
func warningText(w ttr.Warnings) string {
	var out []string
	if w.TooManyTrains {
		out = append(out, "more than "+english.Plural(ttr.TotalTrains, "train", ""))
	}
	for i, high := range w.RouteCountTooHigh {
		if high {
			out = append(out, fmt.Sprintf("too many %d-routes", i+1))
		}
	}
	if w.LongestPathTooLong {
		out = append(out, "longest path too long")
	}
	return strings.Join(out, "; ")
}

func writeText(w io.Writer, r Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PLAYER\tDESTINATIONS\tROUTES\tLONGEST PATH\tTRAINS\tSCORE\t")
	for i, p := range r.Result.Players {
		name := displayName(r.Players, i)
		if p.Winner {
			name += " *"
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%d\t%s\n",
			name,
			p.Breakdown.DestinationsTotal,
			p.Breakdown.RoutesTotal,
			p.Breakdown.LongestPathBonus,
			p.TrainsUsed,
			p.Score,
			warningText(p.Warnings),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	names := make([]string, len(r.Result.Winners))
	for i, idx := range r.Result.Winners {
		names[i] = displayName(r.Players, idx)
	}
	if len(names) > 0 {
		_, err := fmt.Fprintf(w, "\n%s: %s\n",
			english.PluralWord(len(names), "Winner", ""),
			english.OxfordWordSeries(names, "and"),
		)
		if err != nil {
			return err
		}
	}
	if r.Verified {
		_, err := fmt.Fprintln(w, "Scores match the server.")
		return err
	}
	return nil
}
