package tickettoride

import "cmp"

// criterion is one tie-break key. A higher value ranks better.
type criterion struct {
	name    string
	extract func(p PlayerInfo, score int) int
}

// tieBreakCriteria are applied in order until one differs.
var tieBreakCriteria = []criterion{
	{name: "score", extract: func(_ PlayerInfo, score int) int { return score }},
	{name: "completed_destinations", extract: func(p PlayerInfo, _ int) int { return len(p.CompletedDestinations) }},
	{name: "longest_path", extract: func(p PlayerInfo, _ int) int { return p.LongestPath }},
}

// compareStanding compares a against b on the tie-break criteria and returns
// +1 if a ranks better, -1 if worse, 0 if tied on every criterion.
func compareStanding(a PlayerInfo, aScore int, b PlayerInfo, bScore int) int {
	for _, c := range tieBreakCriteria {
		if r := cmp.Compare(c.extract(a, aScore), c.extract(b, bScore)); r != 0 {
			return r
		}
	}
	return 0
}

// DetermineWinners returns the indices of the winning players in ascending
// order. scores[i] must be the score of players[i]; extra entries in the
// longer slice are ignored.
//
// Players are visited in order. The first player with a nonzero score starts
// the leading set; later players replace it when they rank better, join it
// when tied on every criterion, and are dropped otherwise. A player with a
// score of 0 never starts the leading set, so the result is empty when every
// score is 0.
func DetermineWinners(players []PlayerInfo, scores []int) []int {
	n := min(len(players), len(scores))
	winners := []int{}
	for i := 0; i < n; i++ {
		if len(winners) == 0 {
			if scores[i] != 0 {
				winners = append(winners, i)
			}
			continue
		}
		lead := winners[0]
		switch compareStanding(players[i], scores[i], players[lead], scores[lead]) {
		case 1:
			winners = append(winners[:0], i)
		case 0:
			winners = append(winners, i)
		}
	}
	return winners
}

// PlayerResult is the evaluated state of one player.
type PlayerResult struct {
	Score      int            `json:"score"`
	Breakdown  ScoreBreakdown `json:"breakdown"`
	TrainsUsed int            `json:"trains_used"`
	Warnings   Warnings       `json:"warnings"`
	Winner     bool           `json:"winner"`
}

// Result is the evaluated state of a whole score sheet.
type Result struct {
	MaxLongestPath int            `json:"max_longest_path"`
	Players        []PlayerResult `json:"players"`
	Winners        []int          `json:"winners"`
}

// Evaluate scores every player and determines the winners.
func Evaluate(players []PlayerInfo) Result {
	longest := MaxLongestPath(players)
	res := Result{
		MaxLongestPath: longest,
		Players:        make([]PlayerResult, len(players)),
	}
	scores := make([]int, len(players))
	for i, p := range players {
		b := Breakdown(p, longest)
		scores[i] = b.Total
		res.Players[i] = PlayerResult{
			Score:      b.Total,
			Breakdown:  b,
			TrainsUsed: TrainsUsed(p),
			Warnings:   CheckWarnings(p),
		}
	}
	res.Winners = DetermineWinners(players, scores)
	for _, w := range res.Winners {
		res.Players[w].Winner = true
	}
	return res
}
