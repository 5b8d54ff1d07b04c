package history

import (
	"cmp"
	"slices"
	"time"

	"github.com/tarota5/scores/internal/tarot"
)

// Totals returns the running total of every seat of m. Scores beyond the
// fifth seat are ignored.
func Totals(m tarot.Match) []int {
	totals := make([]int, len(m.Players))
	for _, hand := range m.Hands {
		for i, s := range hand.Scores {
			if i < len(totals) {
				totals[i] += s
			}
		}
	}
	return totals
}

type Year struct {
	Year   int
	Months []Month
}

type Month struct {
	Month time.Month
	Days  []Day
}

type Day struct {
	Day     int
	Matches []tarot.Match
}

// Calendar groups matches by the local date of their creation, newest year,
// month, day and match first.
func Calendar(h tarot.History, loc *time.Location) []Year {
	matches := slices.Clone(h.Matches)
	slices.SortStableFunc(matches, func(a, b tarot.Match) int {
		return cmp.Compare(b.CreatedAt, a.CreatedAt)
	})

	var years []Year
	for _, m := range matches {
		t := time.UnixMilli(m.CreatedAt).In(loc)
		if len(years) == 0 || years[len(years)-1].Year != t.Year() {
			years = append(years, Year{Year: t.Year()})
		}
		y := &years[len(years)-1]
		if len(y.Months) == 0 || y.Months[len(y.Months)-1].Month != t.Month() {
			y.Months = append(y.Months, Month{Month: t.Month()})
		}
		mo := &y.Months[len(y.Months)-1]
		if len(mo.Days) == 0 || mo.Days[len(mo.Days)-1].Day != t.Day() {
			mo.Days = append(mo.Days, Day{Day: t.Day()})
		}
		d := &mo.Days[len(mo.Days)-1]
		d.Matches = append(d.Matches, m)
	}
	return years
}
