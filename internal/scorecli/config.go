package scorecli

import (
	"time"

	ttr "github.com/okian/boardscore/internal/domain/tickettoride"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// DefaultTimeout bounds each request to a remote server.
const DefaultTimeout = 10 * time.Second

// Config holds the options of one ttr-score run.
type Config struct {
	File    string        // Players file (YAML or JSON)
	Format  string        // Output format: text or json
	URL     string        // Optional server to check the scores against
	Timeout time.Duration // HTTP request timeout
}

// Report is what a run prints.
type Report struct {
	Players []ttr.PlayerInfo `json:"players"`
	Result  ttr.Result       `json:"result"`
	// Verified is set when the scores were checked against a server.
	Verified bool `json:"verified,omitempty"`
}
