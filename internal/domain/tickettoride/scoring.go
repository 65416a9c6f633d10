package tickettoride

// ScoreBreakdown itemises a player's score the way the score sheet shows it.
type ScoreBreakdown struct {
	CompletedTotal    int         `json:"completed_total"`
	FailedTotal       int         `json:"failed_total"`
	DestinationsTotal int         `json:"destinations_total"`
	RoutePoints       RouteCounts `json:"route_points"`
	RoutesTotal       int         `json:"routes_total"`
	HasLongestPath    bool        `json:"has_longest_path"`
	LongestPathBonus  int         `json:"longest_path_bonus"`
	Total             int         `json:"total"`
}

// MaxLongestPath returns the longest path entered for any player.
func MaxLongestPath(players []PlayerInfo) int {
	longest := 0
	for _, p := range players {
		longest = max(longest, p.LongestPath)
	}
	return longest
}

// HasLongestPath reports whether p earns the longest path bonus. Every player
// tied at a positive maximum gets it.
func HasLongestPath(p PlayerInfo, maxLongestPath int) bool {
	return maxLongestPath > 0 && p.LongestPath == maxLongestPath
}

// Breakdown computes every component of p's score.
func Breakdown(p PlayerInfo, maxLongestPath int) ScoreBreakdown {
	var b ScoreBreakdown
	b.CompletedTotal = sum(p.CompletedDestinations)
	b.FailedTotal = sum(p.FailedDestinations)
	b.DestinationsTotal = b.CompletedTotal - b.FailedTotal
	for i, count := range p.RouteCounts {
		b.RoutePoints[i] = count * RouteLengthScores[i]
		b.RoutesTotal += b.RoutePoints[i]
	}
	b.HasLongestPath = HasLongestPath(p, maxLongestPath)
	if b.HasLongestPath {
		b.LongestPathBonus = LongestPathPoints
	}
	b.Total = b.DestinationsTotal + b.RoutesTotal + b.LongestPathBonus
	return b
}

// ComputeScore returns p's total score given the longest path across all
// players.
func ComputeScore(p PlayerInfo, maxLongestPath int) int {
	return Breakdown(p, maxLongestPath).Total
}

// Warnings flags entries that cannot happen in a real game. They are shown to
// the user but never change the score.
type Warnings struct {
	// TooManyTrains is set when the routes need more than TotalTrains pieces.
	TooManyTrains bool `json:"too_many_trains"`
	// RouteCountTooHigh marks route lengths whose count exceeds MaxRouteCounts.
	RouteCountTooHigh [NumRouteLengths]bool `json:"route_count_too_high"`
	// LongestPathTooLong is set when the longest path exceeds the trains used.
	LongestPathTooLong bool `json:"longest_path_too_long"`
}

// Any reports whether any warning is set.
func (w Warnings) Any() bool {
	if w.TooManyTrains || w.LongestPathTooLong {
		return true
	}
	for _, v := range w.RouteCountTooHigh {
		if v {
			return true
		}
	}
	return false
}

// CheckWarnings returns the warnings for p.
func CheckWarnings(p PlayerInfo) Warnings {
	var w Warnings
	used := TrainsUsed(p)
	w.TooManyTrains = used > TotalTrains
	w.LongestPathTooLong = p.LongestPath > used
	for i, count := range p.RouteCounts {
		w.RouteCountTooHigh[i] = count > MaxRouteCounts[i]
	}
	return w
}
