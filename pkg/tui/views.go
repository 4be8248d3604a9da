package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/unowned-ai/moodflow/pkg/moods"
	"github.com/unowned-ai/moodflow/pkg/stats"
	"github.com/unowned-ai/moodflow/pkg/view"
)

const bordersAndPaddingWidth = 4

// Assembles the UI string for each frame
func (m model) View() string {
	if m.quitting {
		return "Take care. Your moods are saved.\n"
	}
	if m.err != nil {
		return fmt.Sprintf("Error: %v\n\n(press any key to continue, q to quit)\n", m.err)
	}

	titleText := "MoodFlow - how are you feeling?"
	if m.source != "" {
		titleText += "  [" + m.source + "]"
	}
	titleBar := titleStyle.Width(m.width).Render(titleText)

	var body string
	switch {
	case m.state.MenuOpen:
		body = m.menuView()
	case m.state.Tab == view.TabNewEntry:
		body = m.formView()
	case m.state.Tab == view.TabEntries:
		body = m.entriesView()
	default:
		body = m.dashboardView()
	}

	footerBar := footerStyle.Width(m.width).Render("\n" + m.footerText())

	return lipgloss.JoinVertical(lipgloss.Left, titleBar, m.tabsView(), "", body, footerBar)
}

func (m model) tabsView() string {
	var tabs []string
	for i, t := range view.Tabs() {
		label := fmt.Sprintf(" %d %s ", i+1, t)
		if t == m.state.Tab {
			tabs = append(tabs, selectedStyle.Render(label))
		} else {
			tabs = append(tabs, inactiveStyle.Render(label))
		}
	}
	return strings.Join(tabs, " ")
}

func (m model) footerText() string {
	switch {
	case m.state.MenuOpen:
		return "↑/↓ to navigate • Enter to select • esc to close"
	case m.entryDeleting:
		return "enter to confirm • esc to cancel • up/down to switch"
	case m.state.Tab == view.TabNewEntry:
		return "tab/↑/↓ to move • ←/→ to pick a mood • Enter on notes or ctrl+s to save • esc to cancel"
	case m.state.Selected != nil:
		return "esc to close • d to delete • q to quit"
	case m.state.Tab == view.TabEntries:
		return "↑/↓ to navigate • Enter to open • d to delete • n for new entry • m for menu • q to quit"
	default:
		return "1-3 or tab to switch • n for new entry • r to refresh • m for menu • q to quit"
	}
}

func (m model) menuView() string {
	var b strings.Builder
	b.WriteString(subtitleStyle.Render("Menu") + "\n\n")
	for i, t := range view.Tabs() {
		pointer := generateLinePointer(i == m.menuCursor, 2)
		if i == m.menuCursor {
			b.WriteString(pointer + selectedStyle.Render(t.String()) + "\n")
		} else {
			b.WriteString(pointer + inactiveStyle.Render(t.String()) + "\n")
		}
	}
	return modalStyle.Render(b.String())
}

func (m model) dashboardView() string {
	if !m.loaded {
		return "Loading..."
	}
	s := m.summary

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		statCard("Total Entries", fmt.Sprintf("%d", s.Totals.Count)),
		statCard("Day Streak", fmt.Sprintf("%d", s.Streak)),
		statCard("Happiness", fmt.Sprintf("%d%%", s.HappyPercentage)),
	)

	left := lipgloss.JoinVertical(lipgloss.Left,
		subtitleStyle.Render("This Week"), weekView(s.Week), "",
		subtitleStyle.Render("Mood Distribution"), distributionView(s.Distribution),
	)
	right := lipgloss.JoinVertical(lipgloss.Left,
		subtitleStyle.Render(s.MonthLabel), calendarView(s.Month),
	)

	columns := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().PaddingRight(6).Render(left),
		right,
	)
	return lipgloss.JoinVertical(lipgloss.Left, cards, "", columns)
}

func statCard(label, value string) string {
	content := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorWhite)).Render(value) +
		"\n" + labelStyle.Render(label)
	return cardStyle.Width(18).Render(content)
}

// weekView draws one colored bar per day of the weekly window, oldest first.
func weekView(week []stats.DayCell) string {
	var bars, labels []string
	for _, day := range week {
		bars = append(bars, moodBlock(day.Mood, 3))
		labels = append(labels, fmt.Sprintf("%-3s", day.Weekday))
	}
	return strings.Join(bars, " ") + "\n" + strings.Join(labels, " ")
}

func distributionView(shares []stats.MoodShare) string {
	var b strings.Builder
	for _, share := range shares {
		label := fmt.Sprintf("%-10s", share.Mood.Style().Emoji+" "+share.Name)
		b.WriteString(fmt.Sprintf("%s %s %3.0f%% (%d)\n", label, bar(share.Mood, share.Percent), share.Percent, share.Count))
	}
	return b.String()
}

// calendarView lays the monthly grid out in Sunday-first rows of seven.
func calendarView(month []*stats.DayCell) string {
	var b strings.Builder
	for _, h := range stats.WeekdayHeaders {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%3s", h)) + " ")
	}
	b.WriteString("\n")
	for i, cell := range month {
		if cell == nil {
			b.WriteString("    ")
		} else {
			b.WriteString(calendarCell(cell.DayNumber, cell.Mood) + " ")
		}
		if i%7 == 6 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m model) entriesView() string {
	if m.state.Selected != nil {
		detail := entryDetail(*m.state.Selected)
		if m.entryDeleting {
			detail += "\n\n" + m.deleteConfirmView()
		}
		return modalStyle.Render(detail)
	}

	var b strings.Builder
	b.WriteString(subtitleStyle.Render("All Entries") + "\n\n")
	if len(m.entries) == 0 {
		b.WriteString("No entries yet. Press 'n' to add one.\n")
		return b.String()
	}

	availableWidth := m.width - bordersAndPaddingWidth - 30
	for i, entry := range m.entries {
		selected := i == m.entryCursor
		pointer := generateLinePointer(selected, 2)
		line := fmt.Sprintf("%-12s %s", moods.FormatDate(entry.Date), moodLabel(entry.Mood))
		if len(entry.Activities) > 0 {
			line += "  " + accentStyle.Render(truncate(strings.Join(entry.Activities, ", "), availableWidth))
		}
		if selected {
			line = lipgloss.NewStyle().Bold(true).Render(line)
		}
		b.WriteString(pointer + line + "\n")
	}

	if m.entryDeleting {
		b.WriteString("\n" + m.deleteConfirmView())
	}
	return b.String()
}

func entryDetail(e moods.Entry) string {
	var b strings.Builder
	date := moods.FormatDate(e.Date)
	if t, err := e.Time(); err == nil {
		date += " " + t.Format("15:04")
	}
	b.WriteString(labelStyle.Render("Date: ") + inactiveStyle.Render(date) + "\n\n")
	b.WriteString(labelStyle.Render("Mood: ") + moodLabel(e.Mood) + "\n\n")

	activities := "-"
	if len(e.Activities) > 0 {
		activities = strings.Join(e.Activities, ", ")
	}
	b.WriteString(labelStyle.Render("Activities: ") + accentStyle.Render(activities) + "\n\n")

	notes := e.Notes
	if notes == "" {
		notes = "-"
	}
	b.WriteString(labelStyle.Render("Notes: ") + inactiveStyle.Render(notes))
	return b.String()
}

func (m model) deleteConfirmView() string {
	yesOpt, noOpt := "Yes", "No"
	if m.entryDeleteConfirmIdx == 0 {
		yesOpt = dangerSelectedStyle.Render(" >" + yesOpt)
		noOpt = inactiveStyle.Render("  " + noOpt)
	} else {
		yesOpt = inactiveStyle.Render("  " + yesOpt)
		noOpt = selectedStyle.Render(" >" + noOpt)
	}
	return errorStyle.Render("Delete this entry?") + "\n" + yesOpt + "\n" + noOpt
}

func (m model) formView() string {
	var b strings.Builder
	b.WriteString(subtitleStyle.Render("How are you feeling?") + "\n\n")

	var options []string
	for i, mood := range moods.AllMoods() {
		s := mood.Style()
		label := fmt.Sprintf(" %s %s ", s.Emoji, s.Name)
		if i == m.moodCursor {
			options = append(options, lipgloss.NewStyle().
				Foreground(lipgloss.Color(colorGray)).
				Background(moodColor(mood)).
				Render(label))
		} else {
			options = append(options, inactiveStyle.Render(label))
		}
	}
	b.WriteString(generateLinePointer(m.formFocus == fieldMood, 2) + strings.Join(options, "  ") + "\n\n")

	b.WriteString(generateLinePointer(m.formFocus == fieldActivities, 2) +
		labelStyle.Render("Activities (comma separated): ") + m.activitiesInput.View() + "\n\n")
	b.WriteString(generateLinePointer(m.formFocus == fieldNotes, 2) +
		labelStyle.Render("Notes: ") + m.notesInput.View() + "\n")

	if m.formError != "" {
		b.WriteString("\n" + errorStyle.Render(m.formError) + "\n")
	}
	return b.String()
}
