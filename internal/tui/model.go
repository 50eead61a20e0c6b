package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/oshokin/alarm-clock/internal/domain/alarm"
)

// Core is the part of the engine the interface drives.
type Core interface {
	Add(ctx context.Context, t alarm.TimeOfDay) (alarm.Entry, error)
	RemoveSelected(ctx context.Context, label string) (bool, error)
	List(ctx context.Context) ([]alarm.Entry, error)
	Stop() bool
	Sounding() bool
}

// mode is what the keyboard currently controls.
type mode int

const (
	// modeList moves the selection and triggers actions.
	modeList mode = iota
	// modeAdd edits the new alarm time.
	modeAdd
)

// tickInterval is the clock display refresh rate.
const tickInterval = time.Second

// tickMsg carries the wall-clock time of a display tick.
type tickMsg time.Time

// refreshedMsg carries a fresh snapshot of the engine.
type refreshedMsg struct {
	entries  []alarm.Entry
	sounding bool
	err      error
}

// resultMsg reports the outcome of a user action.
type resultMsg struct {
	status string
	err    error
}

// Model is the bubbletea model of the alarm clock.
type Model struct {
	// ctx bounds engine calls.
	ctx context.Context //nolint:containedctx // bubbletea models have no per-call context.
	// core is the engine.
	core Core

	keys  KeyMap
	help  help.Model
	input textinput.Model
	mode  mode

	// now is the displayed time.
	now time.Time
	// entries is the last snapshot of pending alarms.
	entries []alarm.Entry
	// cursor indexes the selected entry.
	cursor int
	// sounding reports whether an alarm is ringing.
	sounding bool
	// status is the message line.
	status string
	// statusIsError renders status as an error.
	statusIsError bool
	// quitting is set once the user asked to leave.
	quitting bool
}

// NewModel creates the model over core. clock sets the initial display time.
func NewModel(ctx context.Context, core Core, clock func() time.Time) Model {
	if clock == nil {
		clock = time.Now
	}

	input := textinput.New()
	input.Placeholder = "HH:MM:SS"
	input.CharLimit = len(alarm.LabelLayout)
	input.Prompt = "Alarm time: "

	return Model{
		ctx:   ctx,
		core:  core,
		keys:  DefaultKeyMap(),
		help:  help.New(),
		input: input,
		now:   clock(),
	}
}

// Init starts the display clock and loads the alarm list.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tick(), m.refresh())
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.now = time.Time(msg)

		return m, tea.Batch(tick(), m.refresh())
	case refreshedMsg:
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}

		m.entries = msg.entries
		m.sounding = msg.sounding
		m.clampCursor()

		return m, nil
	case resultMsg:
		if msg.err != nil {
			m.setError(msg.err)
		} else {
			m.setStatus(msg.status)
		}

		return m, m.refresh()
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

		return m, nil
	case tea.KeyMsg:
		if m.mode == modeAdd {
			return m.updateForm(msg)
		}

		return m.updateList(msg)
	}

	return m, nil
}

// updateList handles keys on the alarm list.
func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true

		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Add):
		m.mode = modeAdd
		m.input.Reset()

		return m, m.input.Focus()
	case key.Matches(msg, m.keys.Delete):
		return m, m.remove(m.selectedLabel())
	case key.Matches(msg, m.keys.Stop):
		return m, m.stop()
	}

	return m, nil
}

// updateForm handles keys while the add form is open.
func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		m.quitting = true

		return m, tea.Quit
	case key.Matches(msg, m.keys.Cancel):
		m.closeForm()

		return m, nil
	case key.Matches(msg, m.keys.Submit):
		t, err := alarm.ParseClock(m.input.Value())
		if err != nil {
			// Keep the form open so the user can fix the input.
			m.setError(err)

			return m, nil
		}

		m.closeForm()

		return m, m.add(t)
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

// closeForm returns to the list.
func (m *Model) closeForm() {
	m.mode = modeList
	m.input.Blur()
	m.input.Reset()
}

// selectedLabel returns the label under the cursor, or "" when the list is empty.
func (m Model) selectedLabel() string {
	if m.cursor < 0 || m.cursor >= len(m.entries) {
		return ""
	}

	return m.entries[m.cursor].Label
}

// clampCursor keeps the cursor inside the list.
func (m *Model) clampCursor() {
	if m.cursor >= len(m.entries) {
		m.cursor = len(m.entries) - 1
	}

	if m.cursor < 0 {
		m.cursor = 0
	}
}

// setStatus shows an informational message.
func (m *Model) setStatus(status string) {
	m.status = status
	m.statusIsError = false
}

// setError shows an error message.
func (m *Model) setError(err error) {
	m.statusIsError = true

	switch {
	case errors.Is(err, alarm.ErrSelectionRequired):
		m.status = "Select an alarm to delete first"
	default:
		m.status = err.Error()
	}
}

// tick schedules the next display tick.
func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// refresh reads the engine state.
func (m Model) refresh() tea.Cmd {
	return func() tea.Msg {
		entries, err := m.core.List(m.ctx)

		return refreshedMsg{
			entries:  entries,
			sounding: m.core.Sounding(),
			err:      err,
		}
	}
}

// add schedules t.
func (m Model) add(t alarm.TimeOfDay) tea.Cmd {
	return func() tea.Msg {
		entry, err := m.core.Add(m.ctx, t)
		if err != nil {
			return resultMsg{err: err}
		}

		return resultMsg{status: fmt.Sprintf("Alarm set for %s", entry.Label)}
	}
}

// remove deletes the selected alarm.
func (m Model) remove(label string) tea.Cmd {
	return func() tea.Msg {
		removed, err := m.core.RemoveSelected(m.ctx, label)
		if err != nil {
			return resultMsg{err: err}
		}

		if !removed {
			return resultMsg{status: fmt.Sprintf("Alarm %s is already gone", label)}
		}

		return resultMsg{status: fmt.Sprintf("Alarm %s removed", label)}
	}
}

// stop silences the sounding alarm.
func (m Model) stop() tea.Cmd {
	return func() tea.Msg {
		if !m.core.Stop() {
			return resultMsg{status: "Nothing is sounding"}
		}

		return resultMsg{status: "Alarm stopped"}
	}
}
