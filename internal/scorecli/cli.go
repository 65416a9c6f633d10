package scorecli

import (
	"fmt"
	"io"
	"os"

	"github.com/okian/boardscore/pkg/logger"
)

// SetupLogging sends logs to stderr so stdout only carries the report.
func SetupLogging(level string) error {
	if err := logger.Init(logger.WithFormat(logger.FormatConsole), logger.WithOutput(os.Stderr)); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger.SetLevelString(level)
}

// ShowHelp prints usage information for ttr-score.
func ShowHelp(w io.Writer) {
	_, _ = io.WriteString(w, `Ticket to Ride Score Tool
=========================

Scores a Ticket to Ride game from a YAML or JSON file.

Usage:
  ttr-score -file game.yaml [options]

Options:
  -file string
        Players file (.yaml, .yml or .json)
  -format string
        Output format: text or json (default "text")
  -url string
        Check the scores against a running server, e.g. http://localhost:9080
  -timeout duration
        HTTP request timeout (default 10s)
  -log-level string
        Log level: debug, info, warn, error (default "warn")
  -help
        Show this help message

File format:
  players:
    - name: Ada
      completed_destinations: [12, 5]
      failed_destinations: "4"
      route_counts: [0, 0, 2, 0, 0, 1]   # routes of length 1 to 6
      longest_path: 12

Examples:
  ttr-score -file game.yaml
  ttr-score -file game.json -format json
  ttr-score -file game.yaml -url http://localhost:9080
`)
}
