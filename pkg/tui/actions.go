package tui

import (
	"context"
	"slices"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/unowned-ai/moodflow/pkg/journal"
	"github.com/unowned-ai/moodflow/pkg/moods"
	"github.com/unowned-ai/moodflow/pkg/stats"
)

// dataMsg carries a fresh read of the journal. entries is newest first.
type dataMsg struct {
	entries []moods.Entry
	summary stats.Summary
}

type entrySavedMsg struct {
	entry moods.Entry
}

type entryDeletedMsg struct {
	id int64
}

// Load every entry and the statistics derived from them
func loadData(j *journal.Journal, now time.Time) tea.Cmd {
	return func() tea.Msg {
		entries, err := j.List(context.Background())
		if err != nil {
			return err
		}
		summary := stats.Summarize(entries, now)
		newest := slices.Clone(entries)
		slices.Reverse(newest)
		return dataMsg{entries: newest, summary: summary}
	}
}

// Save a new entry from the form values
func saveEntry(j *journal.Journal, mood moods.Mood, activities, notes string, now time.Time) tea.Cmd {
	return func() tea.Msg {
		entry, err := j.Add(context.Background(), string(mood), activities, notes, now)
		if err != nil {
			return err
		}
		return entrySavedMsg{entry: entry}
	}
}

func deleteEntry(j *journal.Journal, id int64) tea.Cmd {
	return func() tea.Msg {
		if err := j.Delete(context.Background(), id); err != nil {
			return err
		}
		return entryDeletedMsg{id: id}
	}
}
