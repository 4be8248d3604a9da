// Package view holds the dashboard's navigation state as a value that is
// changed only through Reduce.
package view

import "github.com/unowned-ai/moodflow/pkg/moods"

// Tab is the screen the dashboard shows.
type Tab int

const (
	TabDashboard Tab = iota
	TabEntries
	TabNewEntry
)

var tabTitles = map[Tab]string{
	TabDashboard: "Dashboard",
	TabEntries:   "All Entries",
	TabNewEntry:  "New Entry",
}

// Tabs returns every tab in navigation order.
func Tabs() []Tab {
	return []Tab{TabDashboard, TabEntries, TabNewEntry}
}

func (t Tab) String() string {
	if title, ok := tabTitles[t]; ok {
		return title
	}
	return "Unknown"
}

// State is the complete navigation state. Selected is the entry shown in
// the detail view, nil when none is open.
type State struct {
	Tab      Tab
	Selected *moods.Entry
	MenuOpen bool
}

type ActionKind int

const (
	SelectTab ActionKind = iota
	ToggleMenu
	SelectEntry
	CloseEntry
	EntrySaved
	EntryDeleted
)

type Action struct {
	Kind    ActionKind
	Tab     Tab
	Entry   moods.Entry
	EntryID int64
}

// Reduce returns the state that follows s after a.
func Reduce(s State, a Action) State {
	switch a.Kind {
	case SelectTab:
		s.Tab = a.Tab
		s.MenuOpen = false
	case ToggleMenu:
		s.MenuOpen = !s.MenuOpen
	case SelectEntry:
		entry := a.Entry
		s.Selected = &entry
	case CloseEntry:
		s.Selected = nil
	case EntrySaved:
		s.Tab = TabDashboard
	case EntryDeleted:
		if s.Selected != nil && s.Selected.ID == a.EntryID {
			s.Selected = nil
		}
	}
	return s
}
