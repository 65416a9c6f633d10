// Package scorecli scores a Ticket to Ride sheet stored in a file.
package scorecli

import (
	"context"
	"fmt"
	"io"

	ttr "github.com/okian/boardscore/internal/domain/tickettoride"
	"github.com/okian/boardscore/pkg/logger"
)

// Run loads the players file, scores it and writes the report to out. When
// config.URL is set the server's result must match the local one.
func Run(ctx context.Context, config *Config, out io.Writer) error {
	log := logger.Named("ttr-score")

	// Reject a bad format before doing any work.
	if config.Format != FormatText && config.Format != FormatJSON && config.Format != "" {
		return fmt.Errorf("%w: %q", ErrUnknownFormat, config.Format)
	}

	players, err := LoadPlayers(config.File)
	if err != nil {
		return err
	}
	log.Debug(ctx, "players loaded",
		logger.String("file", config.File),
		logger.Int("players", len(players)))

	report := Report{
		Players: players,
		Result:  ttr.Evaluate(players),
	}

	if config.URL != "" {
		remote, err := NewHTTPClient(config.URL, config.Timeout).Score(ctx, players)
		if err != nil {
			return err
		}
		if err := verifyResults(report.Result, remote); err != nil {
			return err
		}
		report.Verified = true
		log.Info(ctx, "scores verified", logger.String("url", config.URL))
	}

	return WriteReport(out, config.Format, report)
}
