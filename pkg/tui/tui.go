package tui

import (
	"time"

	textinput "github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/unowned-ai/moodflow/pkg/journal"
	"github.com/unowned-ai/moodflow/pkg/moods"
	"github.com/unowned-ai/moodflow/pkg/stats"
	"github.com/unowned-ai/moodflow/pkg/view"
)

const selectMoodMessage = "Please select a mood"

// Form fields of the new entry tab
const (
	fieldMood = iota
	fieldActivities
	fieldNotes
	fieldCount
)

type model struct {
	journal *journal.Journal
	now     func() time.Time
	source  string // Storage description shown in the header

	state view.State

	entries []moods.Entry // Newest first
	summary stats.Summary
	loaded  bool

	width  int // Current terminal width (for layout)
	height int // Current terminal height
	err    error

	quitting bool

	menuCursor int

	entryCursor           int // Index of selected entry
	entryDeleting         bool
	entryDeleteConfirmIdx int // 0 = "Yes" selected, 1 = "No"

	moodCursor      int // Index into moods.AllMoods(), -1 while nothing is chosen
	formFocus       int
	formError       string
	activitiesInput textinput.Model
	notesInput      textinput.Model
}

// Initialize TUI model
func initModel(j *journal.Journal, now func() time.Time, source string) model {
	if now == nil {
		now = time.Now
	}

	activities := textinput.New()
	activities.Placeholder = "exercise, reading, work"
	activities.CharLimit = 256

	notes := textinput.New()
	notes.Placeholder = "How was your day?"
	notes.CharLimit = 1024

	return model{
		journal:         j,
		now:             now,
		source:          source,
		state:           view.State{Tab: view.TabDashboard},
		moodCursor:      -1,
		activitiesInput: activities,
		notesInput:      notes,
	}
}

func (m model) Init() tea.Cmd {
	return loadData(m.journal, m.now())
}

func (m model) dispatch(a view.Action) model {
	m.state = view.Reduce(m.state, a)
	return m
}

// Processes events like window resize, errors, loaded data, and key presses
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case error:
		m.err = msg
		return m, nil

	case dataMsg:
		m.entries = msg.entries
		m.summary = msg.summary
		m.loaded = true
		if m.entryCursor >= len(m.entries) {
			m.entryCursor = max(len(m.entries)-1, 0)
		}
		return m, nil

	case entrySavedMsg:
		m = m.dispatch(view.Action{Kind: view.EntrySaved, Entry: msg.entry})
		m = m.resetForm()
		m.entryCursor = 0
		return m, loadData(m.journal, m.now())

	case entryDeletedMsg:
		m = m.dispatch(view.Action{Kind: view.EntryDeleted, EntryID: msg.id})
		return m, loadData(m.journal, m.now())

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.quit()
		}
		if m.err != nil {
			if msg.String() == "q" {
				return m.quit()
			}
			m.err = nil
			return m, loadData(m.journal, m.now())
		}
		if m.state.MenuOpen {
			return m.updateMenu(msg)
		}
		if m.entryDeleting {
			return m.updateDeleteConfirm(msg)
		}
		if m.state.Tab == view.TabNewEntry {
			return m.updateForm(msg)
		}
		if m.state.Selected != nil {
			return m.updateDetail(msg)
		}
		return m.updateRoot(msg)
	}

	return m, nil
}

func (m model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	// Exit alt screen before quitting so the goodbye message displays
	return m, tea.Sequence(tea.ExitAltScreen, tea.Quit)
}

func (m model) selectTab(t view.Tab) (model, tea.Cmd) {
	m = m.dispatch(view.Action{Kind: view.SelectTab, Tab: t})
	var cmd tea.Cmd
	if t == view.TabNewEntry {
		cmd = m.focusField(fieldMood)
	}
	return m, cmd
}

// Root Navigation Mode
func (m model) updateRoot(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m.quit()

	case "m":
		m.menuCursor = int(m.state.Tab)
		return m.dispatch(view.Action{Kind: view.ToggleMenu}), nil

	case "1", "2", "3":
		return m.selectTab(view.Tabs()[msg.String()[0]-'1'])

	case "tab":
		return m.selectTab(view.Tabs()[(int(m.state.Tab)+1)%len(view.Tabs())])

	case "n":
		return m.selectTab(view.TabNewEntry)

	case "r":
		return m, loadData(m.journal, m.now())
	}

	if m.state.Tab != view.TabEntries {
		return m, nil
	}

	switch msg.String() {
	case "up", "k":
		if m.entryCursor > 0 {
			m.entryCursor--
		}
	case "down", "j":
		if m.entryCursor < len(m.entries)-1 {
			m.entryCursor++
		}
	case "enter":
		if len(m.entries) > 0 {
			return m.dispatch(view.Action{Kind: view.SelectEntry, Entry: m.entries[m.entryCursor]}), nil
		}
	case "d":
		if len(m.entries) > 0 {
			m.entryDeleteConfirmIdx = 1
			m.entryDeleting = true
		}
	}
	return m, nil
}

func (m model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	tabs := view.Tabs()
	switch msg.String() {
	case "up", "k":
		if m.menuCursor > 0 {
			m.menuCursor--
		}
	case "down", "j":
		if m.menuCursor < len(tabs)-1 {
			m.menuCursor++
		}
	case "enter":
		return m.selectTab(tabs[m.menuCursor])
	case "esc", "m":
		return m.dispatch(view.Action{Kind: view.ToggleMenu}), nil
	case "q":
		return m.quit()
	}
	return m, nil
}

// Entry detail modal
func (m model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter", "backspace":
		return m.dispatch(view.Action{Kind: view.CloseEntry}), nil
	case "d":
		m.entryDeleteConfirmIdx = 1
		m.entryDeleting = true
	case "q":
		return m.quit()
	}
	return m, nil
}

// Deleting Entry Mode
func (m model) updateDeleteConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		m.entryDeleteConfirmIdx = 0

	case "down", "j":
		m.entryDeleteConfirmIdx = 1

	case "y":
		m.entryDeleteConfirmIdx = 0
		return m.confirmDelete()

	case "enter":
		if m.entryDeleteConfirmIdx == 0 {
			return m.confirmDelete()
		}
		// Chosen No, cancel deletion
		m.entryDeleting = false

	case "esc", "n":
		m.entryDeleting = false
	}
	return m, nil
}

func (m model) confirmDelete() (tea.Model, tea.Cmd) {
	m.entryDeleting = false
	target := m.deleteTarget()
	if target == nil {
		return m, nil
	}
	return m, deleteEntry(m.journal, target.ID)
}

// deleteTarget is the entry open in the detail modal, or else the one under
// the list cursor.
func (m model) deleteTarget() *moods.Entry {
	if m.state.Selected != nil {
		return m.state.Selected
	}
	if m.entryCursor < len(m.entries) {
		return &m.entries[m.entryCursor]
	}
	return nil
}

// Creating New Entry Mode
func (m model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m = m.resetForm()
		return m.selectTab(view.TabDashboard)

	case "ctrl+s":
		return m.submitForm()

	case "tab", "down":
		cmd := m.focusField((m.formFocus + 1) % fieldCount)
		return m, cmd

	case "shift+tab", "up":
		cmd := m.focusField((m.formFocus + fieldCount - 1) % fieldCount)
		return m, cmd

	case "enter":
		if m.formFocus == fieldNotes {
			return m.submitForm()
		}
		cmd := m.focusField(m.formFocus + 1)
		return m, cmd
	}

	if m.formFocus == fieldMood {
		all := moods.AllMoods()
		switch msg.String() {
		case "left", "h":
			if m.moodCursor > 0 {
				m.moodCursor--
			} else {
				m.moodCursor = 0
			}
		case "right", "l":
			if m.moodCursor < len(all)-1 {
				m.moodCursor++
			}
		case "1", "2", "3":
			m.moodCursor = int(msg.String()[0] - '1')
		}
		m.formError = ""
		return m, nil
	}

	// Route character input to the focused text field
	var cmd tea.Cmd
	if m.formFocus == fieldActivities {
		m.activitiesInput, cmd = m.activitiesInput.Update(msg)
	} else {
		m.notesInput, cmd = m.notesInput.Update(msg)
	}
	return m, cmd
}

func (m *model) focusField(field int) tea.Cmd {
	m.formFocus = field
	m.activitiesInput.Blur()
	m.notesInput.Blur()
	switch field {
	case fieldActivities:
		return m.activitiesInput.Focus()
	case fieldNotes:
		return m.notesInput.Focus()
	}
	return nil
}

func (m model) submitForm() (tea.Model, tea.Cmd) {
	if m.moodCursor < 0 {
		m.formError = selectMoodMessage
		return m, nil
	}
	m.formError = ""
	mood := moods.AllMoods()[m.moodCursor]
	return m, saveEntry(m.journal, mood, m.activitiesInput.Value(), m.notesInput.Value(), m.now())
}

func (m model) resetForm() model {
	m.moodCursor = -1
	m.formError = ""
	m.activitiesInput.Reset()
	m.notesInput.Reset()
	m.focusField(fieldMood)
	return m
}

// Create and start the Bubble Tea TUI. source describes the storage backend
// for the header.
func ShowTUI(j *journal.Journal, now func() time.Time, source string) error {
	p := tea.NewProgram(initModel(j, now, source), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
