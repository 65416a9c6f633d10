// Package changelog holds the site's version history.
package changelog

import (
	"slices"
	"strconv"
	"strings"
	"time"
)

// timestampLayout is the layout of the static timestamps below.
const timestampLayout = "2006-01-02 15:04"

// VersionNumber is a version split into its numeric parts.
type VersionNumber []int

// Compare orders two version numbers part by part. Missing parts count as 0,
// so v0.3 and v0.3.0 are equal.
func Compare(a, b VersionNumber) int {
	for i := 0; i < max(len(a), len(b)); i++ {
		var x, y int
		if i < len(a) {
			x = a[i]
		}
		if i < len(b) {
			y = b[i]
		}
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
	}
	return 0
}

// String renders the version as "v1.2.3", or "" for an empty version.
func (v VersionNumber) String() string {
	if len(v) == 0 {
		return ""
	}
	parts := make([]string, len(v))
	for i, p := range v {
		parts[i] = strconv.Itoa(p)
	}
	return "v" + strings.Join(parts, ".")
}

// Description is one change note. Text is Markdown; Children nest under it.
type Description struct {
	Text     string
	Children []Description
}

// Version is one released change set.
type Version struct {
	Number      VersionNumber
	Timestamp   time.Time
	Description []Description
}

// Clone returns a deep copy of v.
func (v Version) Clone() Version {
	v.Number = slices.Clone(v.Number)
	v.Description = cloneDescriptions(v.Description)
	return v
}

func cloneDescriptions(ds []Description) []Description {
	if ds == nil {
		return nil
	}
	out := make([]Description, len(ds))
	for i, d := range ds {
		out[i] = Description{Text: d.Text, Children: cloneDescriptions(d.Children)}
	}
	return out
}

func at(ts string) time.Time {
	t, err := time.ParseInLocation(timestampLayout, ts, time.UTC)
	if err != nil {
		panic("changelog: bad timestamp " + ts)
	}
	return t
}

var history = []Version{
	{
		Number:      VersionNumber{0, 1},
		Timestamp:   at("2025-05-30 22:56"),
		Description: []Description{{Text: "Initial commit"}},
	},
	{
		Number:      VersionNumber{0, 2},
		Timestamp:   at("2025-05-31 14:40"),
		Description: []Description{{Text: "Add Ticket to Ride score sheet"}},
	},
	{
		Number:      VersionNumber{0, 3},
		Timestamp:   at("2025-05-31 20:33"),
		Description: []Description{{Text: "Add itertools"}},
	},
	{
		Number:      VersionNumber{0, 3},
		Timestamp:   at("2025-06-01 00:15"),
		Description: []Description{{Text: "Add link to rules page"}},
	},
	{
		Number:    VersionNumber{0, 4},
		Timestamp: at("2025-06-14 11:02"),
		Description: []Description{
			{
				Text: "Ticket to Ride score sheet",
				Children: []Description{
					{Text: "Any number of players from 2 to 5"},
					{Text: "Share a sheet with a **QR code**"},
				},
			},
			{Text: "Add a JSON API, documented at `/api-docs`"},
		},
	},
}

// Entries returns the changelog sorted by decreasing version. Entries with
// the same version keep their declaration order.
func Entries() []Version {
	out := make([]Version, len(history))
	for i, v := range history {
		out[i] = v.Clone()
	}
	slices.SortStableFunc(out, func(a, b Version) int {
		return -Compare(a.Number, b.Number)
	})
	return out
}

// Current returns the greatest version in the changelog.
func Current() VersionNumber {
	var curr VersionNumber
	for _, v := range history {
		if Compare(v.Number, curr) > 0 {
			curr = v.Number
		}
	}
	return slices.Clone(curr)
}
