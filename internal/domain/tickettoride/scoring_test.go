package tickettoride_test

import (
	"testing"

	ttr "github.com/okian/boardscore/internal/domain/tickettoride"
	. "github.com/smartystreets/goconvey/convey"
)

func TestConstants(t *testing.T) {
	Convey("Given the route tables", t, func() {
		Convey("Then the maximum route counts should follow from 45 trains", func() {
			So(ttr.MaxRouteCounts, ShouldResemble, ttr.RouteCounts{45, 22, 15, 11, 9, 7})
		})
	})
}

func TestComputeScore(t *testing.T) {
	Convey("Given an empty player", t, func() {
		p := ttr.NewPlayerInfo()

		Convey("Then the score should be 0", func() {
			So(ttr.ComputeScore(p, 0), ShouldEqual, 0)
			So(ttr.ComputeScore(p, 12), ShouldEqual, 0)
		})
	})

	Convey("Given a player with destinations and routes", t, func() {
		p := ttr.PlayerInfo{
			CompletedDestinations: []int{8, 13, 20},
			FailedDestinations:    []int{5, 6},
			RouteCounts:           ttr.RouteCounts{1, 2, 1, 1, 0, 1},
			LongestPath:           9,
		}

		Convey("When another player has a longer path", func() {
			Convey("Then no bonus should be added", func() {
				// 41 - 11 + (1 + 4 + 4 + 7 + 15)
				So(ttr.ComputeScore(p, 12), ShouldEqual, 61)
			})
		})

		Convey("When the player holds the longest path", func() {
			Convey("Then the bonus should be added", func() {
				So(ttr.ComputeScore(p, 9), ShouldEqual, 71)
			})
		})

		Convey("When the destination lists are reordered", func() {
			q := p.Clone()
			q.CompletedDestinations = []int{20, 8, 13}
			q.FailedDestinations = []int{6, 5}

			Convey("Then the score should not change", func() {
				So(ttr.ComputeScore(q, 12), ShouldEqual, ttr.ComputeScore(p, 12))
			})
		})

		Convey("When the breakdown is computed", func() {
			b := ttr.Breakdown(p, 9)

			Convey("Then every component should be itemised", func() {
				So(b.CompletedTotal, ShouldEqual, 41)
				So(b.FailedTotal, ShouldEqual, 11)
				So(b.DestinationsTotal, ShouldEqual, 30)
				So(b.RoutePoints, ShouldResemble, ttr.RouteCounts{1, 4, 4, 7, 0, 15})
				So(b.RoutesTotal, ShouldEqual, 31)
				So(b.HasLongestPath, ShouldBeTrue)
				So(b.LongestPathBonus, ShouldEqual, ttr.LongestPathPoints)
				So(b.Total, ShouldEqual, ttr.ComputeScore(p, 9))
			})
		})
	})

	Convey("Given a player who only failed destinations", t, func() {
		p := ttr.PlayerInfo{FailedDestinations: []int{10, 4}}

		Convey("Then the score should be negative", func() {
			So(ttr.ComputeScore(p, 0), ShouldEqual, -14)
		})
	})
}

func TestLongestPathBonus(t *testing.T) {
	Convey("Given several players", t, func() {
		a := ttr.PlayerInfo{LongestPath: 12}
		b := ttr.PlayerInfo{LongestPath: 9}
		c := ttr.PlayerInfo{LongestPath: 12}

		Convey("When one player has the unique longest path", func() {
			players := []ttr.PlayerInfo{a, b}
			longest := ttr.MaxLongestPath(players)

			Convey("Then only that player should get the bonus", func() {
				So(longest, ShouldEqual, 12)
				So(ttr.ComputeScore(a, longest), ShouldEqual, 10)
				So(ttr.ComputeScore(b, longest), ShouldEqual, 0)
			})
		})

		Convey("When two players tie for the longest path", func() {
			players := []ttr.PlayerInfo{a, b, c}
			longest := ttr.MaxLongestPath(players)

			Convey("Then both should get the full bonus", func() {
				So(ttr.ComputeScore(a, longest), ShouldEqual, 10)
				So(ttr.ComputeScore(c, longest), ShouldEqual, 10)
				So(ttr.ComputeScore(b, longest), ShouldEqual, 0)
			})
		})

		Convey("When nobody has entered a longest path", func() {
			players := []ttr.PlayerInfo{ttr.NewPlayerInfo(), ttr.NewPlayerInfo()}

			Convey("Then nobody should get the bonus", func() {
				So(ttr.MaxLongestPath(players), ShouldEqual, 0)
				So(ttr.HasLongestPath(players[0], 0), ShouldBeFalse)
			})
		})
	})
}

func TestTrainsAndWarnings(t *testing.T) {
	Convey("Given a player within the limits", t, func() {
		p := ttr.PlayerInfo{RouteCounts: ttr.RouteCounts{2, 1, 3, 0, 1, 0}, LongestPath: 10}

		Convey("Then trains should be counted by route length", func() {
			So(ttr.TrainsUsed(p), ShouldEqual, 2+2+9+5)
			So(ttr.TrainsRemaining(p), ShouldEqual, 45-18)
		})

		Convey("And there should be no warnings", func() {
			So(ttr.CheckWarnings(p).Any(), ShouldBeFalse)
		})
	})

	Convey("Given a player over the limits", t, func() {
		p := ttr.PlayerInfo{RouteCounts: ttr.RouteCounts{0, 0, 0, 0, 0, 8}, LongestPath: 50}
		w := ttr.CheckWarnings(p)

		Convey("Then every broken limit should be flagged", func() {
			So(w.TooManyTrains, ShouldBeTrue)
			So(w.RouteCountTooHigh[5], ShouldBeTrue)
			So(w.RouteCountTooHigh[0], ShouldBeFalse)
			So(w.LongestPathTooLong, ShouldBeTrue)
			So(w.Any(), ShouldBeTrue)
		})

		Convey("And the score should still be computed", func() {
			So(ttr.ComputeScore(p, 50), ShouldEqual, 8*15+10)
			So(ttr.TrainsRemaining(p), ShouldEqual, -3)
		})
	})
}
