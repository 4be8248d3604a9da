package view

import (
	"testing"

	"github.com/unowned-ai/moodflow/pkg/moods"
)

func TestReduceSelectTabClosesMenu(t *testing.T) {
	s := State{Tab: TabDashboard, MenuOpen: true}

	next := Reduce(s, Action{Kind: SelectTab, Tab: TabEntries})

	if next.Tab != TabEntries {
		t.Errorf("Expected entries tab, got %v", next.Tab)
	}
	if next.MenuOpen {
		t.Errorf("Expected menu to close on navigation")
	}
	if !s.MenuOpen || s.Tab != TabDashboard {
		t.Errorf("Reduce must not modify its input state")
	}
}

func TestReduceToggleMenu(t *testing.T) {
	s := Reduce(State{}, Action{Kind: ToggleMenu})
	if !s.MenuOpen {
		t.Fatalf("Expected menu open after first toggle")
	}
	if s = Reduce(s, Action{Kind: ToggleMenu}); s.MenuOpen {
		t.Errorf("Expected menu closed after second toggle")
	}
}

func TestReduceEntrySelection(t *testing.T) {
	entry := moods.Entry{ID: 7, Mood: moods.Sad}

	s := Reduce(State{Tab: TabEntries}, Action{Kind: SelectEntry, Entry: entry})
	if s.Selected == nil || s.Selected.ID != 7 {
		t.Fatalf("Expected entry 7 selected, got %+v", s.Selected)
	}

	// Deleting another entry keeps the selection.
	if s = Reduce(s, Action{Kind: EntryDeleted, EntryID: 8}); s.Selected == nil {
		t.Errorf("Expected selection to survive deleting a different entry")
	}
	if s = Reduce(s, Action{Kind: EntryDeleted, EntryID: 7}); s.Selected != nil {
		t.Errorf("Expected selection cleared after deleting it")
	}

	s = Reduce(s, Action{Kind: SelectEntry, Entry: entry})
	if s = Reduce(s, Action{Kind: CloseEntry}); s.Selected != nil {
		t.Errorf("Expected selection cleared on close")
	}
}

func TestReduceEntrySaved(t *testing.T) {
	s := Reduce(State{Tab: TabNewEntry}, Action{Kind: EntrySaved})
	if s.Tab != TabDashboard {
		t.Errorf("Expected dashboard after saving, got %v", s.Tab)
	}
}

func TestTabString(t *testing.T) {
	if TabEntries.String() != "All Entries" {
		t.Errorf("Unexpected title %q", TabEntries.String())
	}
	if Tab(99).String() != "Unknown" {
		t.Errorf("Expected Unknown for out of range tab")
	}
}
