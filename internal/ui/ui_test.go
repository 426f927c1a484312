package ui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewShowsModeAndMethod(t *testing.T) {
	m := New("keep.presenting", "org.freedesktop.ScreenSaver", true, 0)

	out := m.View()
	assert.Contains(t, out, "keep.presenting")
	assert.Contains(t, out, "org.freedesktop.ScreenSaver")
	assert.Contains(t, out, "Elapsed:")
}

func TestViewTimedShowsRemaining(t *testing.T) {
	m := New("keep.running", "caffeinate", true, time.Hour)
	assert.Contains(t, m.View(), "Remaining:")
}

func TestViewFakeHold(t *testing.T) {
	m := New("keep.running", "WakepyFakeSuccess", false, 0)
	assert.Contains(t, m.View(), "Fake hold")
}

func TestQuitKeys(t *testing.T) {
	keys := []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("q")},
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlC},
	}
	for _, key := range keys {
		m := New("keep.running", "caffeinate", true, 0)
		_, cmd := m.Update(key)
		require.NotNil(t, cmd, key.String())
		assert.Equal(t, tea.Quit(), cmd(), key.String())
	}
}

func TestTimedHoldQuitsWhenExpired(t *testing.T) {
	m := New("keep.running", "caffeinate", true, time.Millisecond)
	time.Sleep(5 * time.Millisecond)

	_, cmd := m.Update(tickMsg(time.Now()))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "2:03:04", formatDuration(2*time.Hour+3*time.Minute+4*time.Second))
	assert.Equal(t, "3:04", formatDuration(3*time.Minute+4*time.Second))
	assert.Equal(t, "0:59", formatDuration(59*time.Second))
}
