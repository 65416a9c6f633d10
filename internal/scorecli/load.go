package scorecli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/okian/boardscore/internal/domain/numparse"
	ttr "github.com/okian/boardscore/internal/domain/tickettoride"
)

// parserFor picks the koanf parser from the file extension.
func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
	}
}

// LoadPlayers reads the players list of a score sheet file.
//
// Every field is read as text and parsed the way the score sheet parses typed
// input, so `completed_destinations: [12, 0, 5]` and
// `completed_destinations: "12, 0, 5"` load the same player.
func LoadPlayers(path string) ([]ttr.PlayerInfo, error) {
	parser, err := parserFor(path)
	if err != nil {
		return nil, err
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoadPlayers, path, err)
	}

	entries := k.Slices("players")
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoPlayers, path)
	}

	players := make([]ttr.PlayerInfo, 0, len(entries))
	for _, e := range entries {
		players = append(players, playerFrom(e))
	}
	return players, nil
}

func playerFrom(k *koanf.Koanf) ttr.PlayerInfo {
	p := ttr.NewPlayerInfo()
	p.Name = strings.TrimSpace(k.String("name"))
	p.CompletedDestinations = numparse.DestinationList(k.String("completed_destinations"))
	p.FailedDestinations = numparse.DestinationList(k.String("failed_destinations"))
	counts := numparse.ExtractIntList(k.String("route_counts"), false)
	for i := 0; i < len(counts) && i < ttr.NumRouteLengths; i++ {
		p.RouteCounts[i] = counts[i]
	}
	p.LongestPath = numparse.ExtractInt(k.String("longest_path"), false)
	return p
}
