// Package stats derives dashboard statistics from a list of mood entries.
//
// Every function is a pure computation over its input. "Today" is the
// calendar day of the reference time in its own location; entry days are the
// date portion of the stored timestamp, compared as written.
package stats

import (
	"encoding/json"
	"time"

	"github.com/unowned-ai/moodflow/pkg/moods"
)

const dayLayout = "2006-01-02"

// WeekdayHeaders labels the columns of a MonthlyGrid, Sunday first.
var WeekdayHeaders = [7]string{"S", "M", "T", "W", "T", "F", "S"}

// Totals holds the entry count and the count per mood.
type Totals struct {
	Count   int                `json:"count"`
	PerMood map[moods.Mood]int `json:"per_mood"`
}

// MoodShare is one row of the mood distribution.
type MoodShare struct {
	Mood    moods.Mood `json:"mood"`
	Name    string     `json:"name"`
	Count   int        `json:"count"`
	Percent float64    `json:"percent"`
}

// DayCell is a single day in the weekly window or monthly grid. Mood is empty
// when no entry was recorded that day and is encoded as a JSON null.
type DayCell struct {
	Date      string     `json:"date"`
	Mood      moods.Mood `json:"mood"`
	Weekday   string     `json:"weekday,omitempty"`
	DayNumber int        `json:"day,omitempty"`
}

func (c DayCell) Recorded() bool {
	return c.Mood != ""
}

func (c DayCell) MarshalJSON() ([]byte, error) {
	var mood *moods.Mood
	if c.Recorded() {
		mood = &c.Mood
	}
	return json.Marshal(struct {
		Date      string      `json:"date"`
		Mood      *moods.Mood `json:"mood"`
		Weekday   string      `json:"weekday,omitempty"`
		DayNumber int         `json:"day,omitempty"`
	}{Date: c.Date, Mood: mood, Weekday: c.Weekday, DayNumber: c.DayNumber})
}

// Summary bundles every derived view the dashboard shows.
type Summary struct {
	Totals          Totals      `json:"totals"`
	HappyPercentage int         `json:"happy_percentage"`
	Streak          int         `json:"streak"`
	Distribution    []MoodShare `json:"distribution"`
	Week            []DayCell   `json:"week"`
	Month           []*DayCell  `json:"month"`
	MonthLabel      string      `json:"month_label"`
}

func ComputeTotals(entries []moods.Entry) Totals {
	t := Totals{Count: len(entries), PerMood: make(map[moods.Mood]int)}
	for _, e := range entries {
		t.PerMood[e.Mood]++
	}
	return t
}

// HappyPercentage is the share of happy entries rounded to the nearest whole
// percent, or 0 for an empty collection.
func HappyPercentage(entries []moods.Entry) int {
	if len(entries) == 0 {
		return 0
	}
	happy := 0
	for _, e := range entries {
		if e.Mood == moods.Happy {
			happy++
		}
	}
	// Integer form of round(100*happy/count), halves rounding up.
	return (200*happy + len(entries)) / (2 * len(entries))
}

// Distribution returns one row per defined mood in display order.
func Distribution(entries []moods.Entry) []MoodShare {
	totals := ComputeTotals(entries)
	shares := make([]MoodShare, 0, len(moods.AllMoods()))
	for _, m := range moods.AllMoods() {
		share := MoodShare{Mood: m, Name: m.Style().Name, Count: totals.PerMood[m]}
		if totals.Count > 0 {
			share.Percent = float64(share.Count) / float64(totals.Count) * 100
		}
		shares = append(shares, share)
	}
	return shares
}

// CurrentStreak counts consecutive calendar days with at least one entry,
// ending today. Several entries on the same day count once. Without an entry
// today the streak is 0.
func CurrentStreak(entries []moods.Entry, now time.Time) int {
	days := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		days[e.Day()] = struct{}{}
	}

	streak := 0
	for day := calendarDay(now); ; day = day.AddDate(0, 0, -1) {
		if _, ok := days[day.Format(dayLayout)]; !ok {
			return streak
		}
		streak++
	}
}

// WeeklyWindow returns the seven days ending today, oldest first.
func WeeklyWindow(entries []moods.Entry, now time.Time) []DayCell {
	index := firstByDay(entries)
	today := calendarDay(now)

	week := make([]DayCell, 0, 7)
	for i := 6; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		date := day.Format(dayLayout)
		week = append(week, DayCell{
			Date:    date,
			Mood:    index[date],
			Weekday: day.Format("Mon"),
		})
	}
	return week
}

// MonthlyGrid returns the current month laid out for a Sunday-first calendar:
// one nil placeholder per weekday before the 1st, then one cell per day.
func MonthlyGrid(entries []moods.Entry, now time.Time) []*DayCell {
	index := firstByDay(entries)
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	daysInMonth := first.AddDate(0, 1, -1).Day()
	leading := int(first.Weekday())

	grid := make([]*DayCell, leading, leading+daysInMonth)
	for d := 1; d <= daysInMonth; d++ {
		date := first.AddDate(0, 0, d-1).Format(dayLayout)
		grid = append(grid, &DayCell{
			Date:      date,
			Mood:      index[date],
			DayNumber: d,
		})
	}
	return grid
}

// MonthLabel names the month of now, e.g. "October 2026".
func MonthLabel(now time.Time) string {
	return now.Format("January 2006")
}

func Summarize(entries []moods.Entry, now time.Time) Summary {
	return Summary{
		Totals:          ComputeTotals(entries),
		HappyPercentage: HappyPercentage(entries),
		Streak:          CurrentStreak(entries, now),
		Distribution:    Distribution(entries),
		Week:            WeeklyWindow(entries, now),
		Month:           MonthlyGrid(entries, now),
		MonthLabel:      MonthLabel(now),
	}
}

// firstByDay maps each calendar day to the mood of the first entry recorded
// on it, in input order.
func firstByDay(entries []moods.Entry) map[string]moods.Mood {
	index := make(map[string]moods.Mood, len(entries))
	for _, e := range entries {
		day := e.Day()
		if _, seen := index[day]; !seen {
			index[day] = e.Mood
		}
	}
	return index
}

func calendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
