package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/unowned-ai/moodflow/pkg/moods"
)

// UI styles and layout settings
// Color palette "Blue Moon" from https://gogh-co.github.io/Gogh/
const (
	colorGray   = "#353b52"
	colorWhite  = "#ffffff"
	colorGreen  = "#acfab4"
	colorRed    = "#e61f44"
	colorPurple = "#b9a3eb"
	colorBlue   = "#89ddff"

	// Cell color for days without an entry.
	colorEmptyDay = "#e0e0e0"

	barWidth = 24
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color(colorBlue)).
			Background(lipgloss.Color(colorGray)).
			Padding(0, 2).Align(lipgloss.Center)
	subtitleStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color(colorBlue))
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorGray)).
			Background(lipgloss.Color(colorGreen))
	dangerSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(colorGray)).
				Background(lipgloss.Color(colorRed))
	inactiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorWhite))
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(colorBlue))
	accentStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(colorPurple))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(colorRed))

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colorGray)).
			Padding(0, 2).
			Align(lipgloss.Center)
	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colorBlue)).
			Padding(1, 2)

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorGray))
)

// moodColor is the display color for m, gray for days with no mood.
func moodColor(m moods.Mood) lipgloss.Color {
	if m == "" {
		return lipgloss.Color(colorEmptyDay)
	}
	return lipgloss.Color(m.Style().Color)
}

// moodLabel renders "<emoji> <Name>" in the mood's color.
func moodLabel(m moods.Mood) string {
	s := m.Style()
	return lipgloss.NewStyle().Foreground(moodColor(m)).Render(s.Emoji + " " + s.Name)
}

// moodBlock is a solid block of width cells in the mood's color.
func moodBlock(m moods.Mood, width int) string {
	return lipgloss.NewStyle().Foreground(moodColor(m)).Render(strings.Repeat("█", width))
}

// bar renders a horizontal percentage bar of barWidth cells.
func bar(m moods.Mood, percent float64) string {
	filled := int(percent/100*barWidth + 0.5)
	if filled > barWidth {
		filled = barWidth
	}
	return moodBlock(m, filled) +
		lipgloss.NewStyle().Foreground(lipgloss.Color(colorGray)).Render(strings.Repeat("░", barWidth-filled))
}

// calendarCell renders a day number on the mood's background color.
func calendarCell(day int, m moods.Mood) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorGray)).
		Background(moodColor(m)).
		Render(fmt.Sprintf("%3d", day))
}

// Generates pointer symbol when line in focus
func generateLinePointer(isPoint bool, length int) string {
	if isPoint {
		return ">" + strings.Repeat(" ", length-1)
	}
	return strings.Repeat(" ", length)
}

// truncate shortens text to width cells, marking the cut with "..".
func truncate(text string, width int) string {
	if width <= 3 || lipgloss.Width(text) <= width {
		return text
	}
	runes := []rune(text)
	for len(runes) > 0 && lipgloss.Width(string(runes))+2 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + ".."
}
