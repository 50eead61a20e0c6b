package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/alarm-clock/internal/domain/alarm"
)

// fakeCore is an in-memory Core backed by a real registry.
type fakeCore struct {
	registry *alarm.Registry
	sounding bool
	stops    int
}

// newFakeCore creates a core whose registry lives at now.
func newFakeCore(now time.Time) *fakeCore {
	return &fakeCore{
		registry: alarm.NewRegistry(func() time.Time { return now }),
	}
}

func (f *fakeCore) Add(_ context.Context, t alarm.TimeOfDay) (alarm.Entry, error) {
	return f.registry.Add(t)
}

func (f *fakeCore) RemoveSelected(_ context.Context, label string) (bool, error) {
	return f.registry.RemoveSelected(label)
}

func (f *fakeCore) List(context.Context) ([]alarm.Entry, error) {
	return f.registry.Entries(), nil
}

func (f *fakeCore) Stop() bool {
	f.stops++
	was := f.sounding
	f.sounding = false

	return was
}

func (f *fakeCore) Sounding() bool {
	return f.sounding
}

// testNow is the fixed time of the tests.
var testNow = time.Date(2026, 10, 18, 7, 0, 0, 0, time.UTC) //nolint:gochecknoglobals // Test fixture.

// runes builds a key press for printable characters.
func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press feeds a key to m without running the returned command.
func press(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()

	next, _ := m.Update(msg)

	return next.(Model) //nolint:forcetypeassert // Update always returns Model.
}

// act feeds msg to m, then runs the action it triggers and the refresh
// that follows, feeding their messages back.
func act(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()

	next, cmd := m.Update(msg)
	m = next.(Model) //nolint:forcetypeassert // Update always returns Model.

	for cmd != nil {
		next, cmd = m.Update(cmd())
		m = next.(Model) //nolint:forcetypeassert // Update always returns Model.
	}

	return m
}

// typeText types s into the model key by key.
func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()

	for _, r := range s {
		m = press(t, m, runes(string(r)))
	}

	return m
}

// TestModel_AddAlarm opens the form, types a time and submits it.
func TestModel_AddAlarm(t *testing.T) {
	t.Parallel()

	core := newFakeCore(testNow)
	m := NewModel(context.Background(), core, func() time.Time { return testNow })

	m = press(t, m, runes("a"))
	require.Equal(t, modeAdd, m.mode)

	// Action keys are plain text inside the form.
	m = typeText(t, m, "08:30:15")
	require.Equal(t, "08:30:15", m.input.Value())

	m = act(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, modeList, m.mode)
	require.Equal(t, "Alarm set for 08:30:15", m.status)
	require.False(t, m.statusIsError)
	require.Len(t, m.entries, 1)
	require.Contains(t, m.View(), "08:30:15")
}

// TestModel_AddRejectsInvalidTime keeps the form open on a validation error.
func TestModel_AddRejectsInvalidTime(t *testing.T) {
	t.Parallel()

	core := newFakeCore(testNow)
	m := NewModel(context.Background(), core, func() time.Time { return testNow })

	m = press(t, m, runes("a"))
	m = typeText(t, m, "24:00:00")
	m = act(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	require.Equal(t, modeAdd, m.mode)
	require.True(t, m.statusIsError)
	require.Contains(t, m.status, "hour")
	require.Zero(t, core.registry.Len())

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, modeList, m.mode)
	require.Empty(t, m.input.Value())
}

// TestModel_DeleteSelected removes the entry under the cursor.
func TestModel_DeleteSelected(t *testing.T) {
	t.Parallel()

	core := newFakeCore(testNow)

	for _, tod := range []alarm.TimeOfDay{{Hour: 8}, {Hour: 9}, {Hour: 10}} {
		_, err := core.registry.Add(tod)
		require.NoError(t, err)
	}

	m := NewModel(context.Background(), core, func() time.Time { return testNow })
	m = act(t, m, m.refresh()())

	m = press(t, m, runes("j"))
	m = press(t, m, runes("j"))
	m = press(t, m, runes("j"))
	require.Equal(t, 2, m.cursor)

	m = press(t, m, runes("k"))
	require.Equal(t, "09:00:00", m.selectedLabel())

	m = act(t, m, runes("d"))
	require.Equal(t, "Alarm 09:00:00 removed", m.status)
	require.Equal(t, []string{"08:00:00", "10:00:00"}, core.registry.List())

	// Deleting the last row moves the cursor back inside the list.
	m = press(t, m, runes("j"))
	m = act(t, m, runes("d"))
	require.Equal(t, []string{"08:00:00"}, core.registry.List())
	require.Equal(t, 0, m.cursor)
}

// TestModel_DeleteWithoutSelection reports that a selection is required.
func TestModel_DeleteWithoutSelection(t *testing.T) {
	t.Parallel()

	m := NewModel(context.Background(), newFakeCore(testNow), func() time.Time { return testNow })

	m = act(t, m, runes("d"))
	require.True(t, m.statusIsError)
	require.Equal(t, "Select an alarm to delete first", m.status)
}

// TestModel_StopAndBanner shows the banner while sounding and stops on s.
func TestModel_StopAndBanner(t *testing.T) {
	t.Parallel()

	core := newFakeCore(testNow)
	core.sounding = true

	m := NewModel(context.Background(), core, func() time.Time { return testNow })
	m = act(t, m, m.refresh()())
	require.Contains(t, m.View(), "ALARM!")

	m = act(t, m, runes("s"))
	require.Equal(t, "Alarm stopped", m.status)
	require.NotContains(t, m.View(), "ALARM!")

	m = act(t, m, runes("s"))
	require.Equal(t, "Nothing is sounding", m.status)
	require.Equal(t, 2, core.stops)
}

// TestModel_TickUpdatesClock advances the displayed time.
func TestModel_TickUpdatesClock(t *testing.T) {
	t.Parallel()

	m := NewModel(context.Background(), newFakeCore(testNow), func() time.Time { return testNow })
	require.Contains(t, m.View(), "07:00:00")

	next, cmd := m.Update(tickMsg(testNow.Add(5 * time.Second)))
	m = next.(Model) //nolint:forcetypeassert // Update always returns Model.

	require.NotNil(t, cmd)
	require.Contains(t, m.View(), "07:00:05")
}

// TestModel_Quit quits from the list and from the form.
func TestModel_Quit(t *testing.T) {
	t.Parallel()

	m := NewModel(context.Background(), newFakeCore(testNow), nil)

	next, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
	require.Empty(t, next.View())

	m = press(t, m, runes("a"))

	next, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
	require.True(t, next.(Model).quitting) //nolint:forcetypeassert // Update always returns Model.
}
