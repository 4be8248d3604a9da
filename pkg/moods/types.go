package moods

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidMood = errors.New("invalid mood")
)

// Mood is one of the fixed mood keys an entry can carry.
type Mood string

const (
	Happy   Mood = "happy"
	Neutral Mood = "neutral"
	Sad     Mood = "sad"
)

// isoLayout writes millisecond timestamps with the offset of the given time.
// UTC times end in "Z", matching the timestamps written by the browser client.
const isoLayout = "2006-01-02T15:04:05.000Z07:00"

// Style holds the presentation settings for a mood.
type Style struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Emoji string `json:"emoji"`
}

var styles = map[Mood]Style{
	Happy:   {Name: "Happy", Color: "#4CAF50", Emoji: "😊"},
	Neutral: {Name: "Neutral", Color: "#2196F3", Emoji: "😐"},
	Sad:     {Name: "Sad", Color: "#F44336", Emoji: "😢"},
}

// unknownStyle is used for moods that are not one of the defined keys,
// e.g. entries loaded from an older or hand-edited blob.
var unknownStyle = Style{Name: "Unknown", Color: "#e0e0e0", Emoji: "?"}

// AllMoods returns the defined moods in display order.
func AllMoods() []Mood {
	return []Mood{Happy, Neutral, Sad}
}

// ParseMood normalises s and checks that it names a defined mood.
func ParseMood(s string) (Mood, error) {
	m := Mood(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", ErrInvalidMood
	}
	return m, nil
}

func (m Mood) Valid() bool {
	_, ok := styles[m]
	return ok
}

func (m Mood) Style() Style {
	if s, ok := styles[m]; ok {
		return s
	}
	return unknownStyle
}

func (m Mood) String() string {
	return string(m)
}

// Entry is a single mood record. The JSON shape is the one persisted in the
// moodData blob and must stay stable.
type Entry struct {
	ID         int64    `json:"id"`
	Date       string   `json:"date"`
	Mood       Mood     `json:"mood"`
	Activities []string `json:"activities"`
	Notes      string   `json:"notes"`
}

// NewEntry builds an entry created at now. The id is the creation time in
// Unix milliseconds.
func NewEntry(mood Mood, activities []string, notes string, now time.Time) Entry {
	if activities == nil {
		activities = []string{}
	}
	return Entry{
		ID:         now.UnixMilli(),
		Date:       FormatTimestamp(now),
		Mood:       mood,
		Activities: activities,
		Notes:      notes,
	}
}

// FormatTimestamp renders t the way entry dates are stored. The offset of t
// is kept so the date portion is the calendar day in t's own location.
func FormatTimestamp(t time.Time) string {
	return t.Format(isoLayout)
}

// Day returns the calendar-date portion of the entry's timestamp as written,
// without any timezone conversion.
func (e Entry) Day() string {
	day, _, _ := strings.Cut(e.Date, "T")
	return day
}

// Time parses the stored timestamp. Dates that are not RFC 3339 yield an error.
func (e Entry) Time() (time.Time, error) {
	return time.Parse(time.RFC3339Nano, e.Date)
}

// ParseActivities splits a comma-separated activity list, trimming each item
// and dropping empty ones.
func ParseActivities(csv string) []string {
	activities := []string{}
	for _, a := range strings.Split(csv, ",") {
		a = strings.TrimSpace(a)
		if a != "" {
			activities = append(activities, a)
		}
	}
	return activities
}

// FormatDate renders an entry date as "Mon, Jan 2". Unparseable dates are
// returned unchanged.
func FormatDate(date string) string {
	t, err := time.Parse(time.RFC3339Nano, date)
	if err != nil {
		return date
	}
	return t.Format("Mon, Jan 2")
}
