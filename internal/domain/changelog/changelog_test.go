package changelog_test

import (
	"testing"

	"github.com/okian/boardscore/internal/domain/changelog"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCompare(t *testing.T) {
	Convey("Given two version numbers", t, func() {
		Convey("When a part differs", func() {
			So(changelog.Compare(changelog.VersionNumber{0, 2}, changelog.VersionNumber{0, 3}), ShouldEqual, -1)
			So(changelog.Compare(changelog.VersionNumber{1, 0}, changelog.VersionNumber{0, 9}), ShouldEqual, 1)
			So(changelog.Compare(changelog.VersionNumber{0, 10}, changelog.VersionNumber{0, 9}), ShouldEqual, 1)
		})

		Convey("When one has more parts", func() {
			Convey("Then missing parts should count as 0", func() {
				So(changelog.Compare(changelog.VersionNumber{0, 3}, changelog.VersionNumber{0, 3, 0}), ShouldEqual, 0)
				So(changelog.Compare(changelog.VersionNumber{0, 3}, changelog.VersionNumber{0, 3, 1}), ShouldEqual, -1)
				So(changelog.Compare(nil, changelog.VersionNumber{0, 1}), ShouldEqual, -1)
			})
		})
	})
}

func TestVersionString(t *testing.T) {
	Convey("Given a version number", t, func() {
		So(changelog.VersionNumber{0, 3}.String(), ShouldEqual, "v0.3")
		So(changelog.VersionNumber{1, 2, 10}.String(), ShouldEqual, "v1.2.10")
		So(changelog.VersionNumber{}.String(), ShouldEqual, "")
	})
}

func TestEntries(t *testing.T) {
	Convey("Given the changelog", t, func() {
		entries := changelog.Entries()

		Convey("Then it should be sorted newest first", func() {
			So(entries, ShouldNotBeEmpty)
			for i := 1; i < len(entries); i++ {
				So(changelog.Compare(entries[i-1].Number, entries[i].Number), ShouldBeGreaterThanOrEqualTo, 0)
			}
		})

		Convey("And equal versions should keep their order", func() {
			var v03 []string
			for _, e := range entries {
				if changelog.Compare(e.Number, changelog.VersionNumber{0, 3}) == 0 {
					v03 = append(v03, e.Description[0].Text)
				}
			}
			So(v03, ShouldResemble, []string{"Add itertools", "Add link to rules page"})
		})

		Convey("And the current version should be the first entry", func() {
			So(changelog.Current(), ShouldResemble, entries[0].Number)
		})

		Convey("When a caller changes the returned entries", func() {
			entries[0].Number[1] = 99
			entries[0].Description[0].Text = "changed"
			entries[0].Description[0].Children[0].Text = "changed"
			current := changelog.Current()
			current[0] = 7

			Convey("Then the changelog itself is untouched", func() {
				fresh := changelog.Entries()
				So(fresh[0].Number, ShouldResemble, changelog.VersionNumber{0, 4})
				So(fresh[0].Description[0].Text, ShouldEqual, "Ticket to Ride score sheet")
				So(fresh[0].Description[0].Children[0].Text, ShouldEqual, "Any number of players from 2 to 5")
				So(changelog.Current(), ShouldResemble, changelog.VersionNumber{0, 4})
			})
		})
	})
}
