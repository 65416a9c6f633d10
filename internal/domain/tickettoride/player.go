// Package tickettoride scores a game of Ticket to Ride (base game, U.S. map)
// and decides its winners.
//
// Rules: https://cdn.1j1ju.com/medias/2c/f9/7f-ticket-to-ride-rulebook.pdf
package tickettoride

// Game constants.
const (
	// TotalTrains is the number of train pieces each player starts with.
	TotalTrains = 45
	// LongestPathPoints is awarded to every player holding the longest path.
	LongestPathPoints = 10
	// NumRouteLengths is the number of distinct route lengths (1 to 6).
	NumRouteLengths = 6
)

// RouteCounts maps a route length to a value, where the length is index + 1.
type RouteCounts [NumRouteLengths]int

// RouteLengthScores are the points for claiming one route of each length.
var RouteLengthScores = RouteCounts{1, 2, 4, 7, 10, 15}

// MaxRouteCounts are the most routes of each length a player could claim
// with TotalTrains pieces.
var MaxRouteCounts = func() RouteCounts {
	var m RouteCounts
	for i := range m {
		m[i] = TotalTrains / (i + 1)
	}
	return m
}()

// PlayerInfo holds everything entered for one player on the score sheet.
type PlayerInfo struct {
	// Name is display-only.
	Name                  string      `json:"name" koanf:"name"`
	CompletedDestinations []int       `json:"completed_destinations" koanf:"completed_destinations"`
	FailedDestinations    []int       `json:"failed_destinations" koanf:"failed_destinations"`
	RouteCounts           RouteCounts `json:"route_counts" koanf:"route_counts"`
	LongestPath           int         `json:"longest_path" koanf:"longest_path"`
}

// NewPlayerInfo returns an empty player.
func NewPlayerInfo() PlayerInfo {
	return PlayerInfo{
		CompletedDestinations: []int{},
		FailedDestinations:    []int{},
	}
}

// Clone returns a deep copy of p.
func (p PlayerInfo) Clone() PlayerInfo {
	c := p
	c.CompletedDestinations = append([]int{}, p.CompletedDestinations...)
	c.FailedDestinations = append([]int{}, p.FailedDestinations...)
	return c
}

// TrainsUsed returns how many train pieces the claimed routes take.
func TrainsUsed(p PlayerInfo) int {
	total := 0
	for i, count := range p.RouteCounts {
		total += count * (i + 1)
	}
	return total
}

// TrainsRemaining returns the pieces left out of TotalTrains. It goes
// negative when more routes were entered than pieces exist.
func TrainsRemaining(p PlayerInfo) int {
	return TotalTrains - TrainsUsed(p)
}

func sum(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}
