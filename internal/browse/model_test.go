package browse

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lorenzotomasdiez/council/internal/debate"
)

func transcript() *debate.Result {
	return &debate.Result{
		Config:           debate.Config{Key: "toggle_high_temp_devil", Title: "Stress test"},
		Decision:         "Approve with conditions",
		ConsensusReached: true,
		Transcript: []debate.Turn{
			{Round: 1, Stage: debate.StageArgue, Speaker: "Alex Morgan", Role: "Researcher", Content: "opening argument"},
			{Round: 1, Stage: debate.StageDevil, Speaker: "Casey Vega", Role: "Devil's Advocate", Content: "contrarian take"},
			{Round: 1, Stage: debate.StageVerdict, Speaker: "Morgan Kim", Role: "Judge", Content: "final verdict"},
		},
	}
}

func press(t *testing.T, m Model, key string) Model {
	t.Helper()
	var msg tea.KeyMsg
	switch key {
	case "right":
		msg = tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		msg = tea.KeyMsg{Type: tea.KeyLeft}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func TestStartsOnFirstTurn(t *testing.T) {
	m := New(transcript())

	view := m.View()
	assert.Equal(t, 0, m.Index())
	assert.Contains(t, view, "Turn 1/3 · Round 1 · ARGUE · Alex Morgan (Researcher)")
	assert.Contains(t, view, "opening argument")
	assert.Contains(t, view, "Approve with conditions")
}

func TestNavigation(t *testing.T) {
	m := New(transcript())

	m = press(t, m, "n")
	assert.Equal(t, 1, m.Index())
	assert.Contains(t, m.View(), "contrarian take")

	m = press(t, m, "right")
	assert.Equal(t, 2, m.Index())

	m = press(t, m, "n")
	assert.Equal(t, 2, m.Index(), "stays on the last turn")

	m = press(t, m, "g")
	assert.Equal(t, 0, m.Index())

	m = press(t, m, "p")
	assert.Equal(t, 0, m.Index(), "stays on the first turn")

	m = press(t, m, "G")
	assert.Equal(t, 2, m.Index())
	assert.Contains(t, m.View(), "final verdict")

	m = press(t, m, "left")
	assert.Equal(t, 1, m.Index())
}

func TestQuitKeys(t *testing.T) {
	for _, key := range []string{"q", "esc"} {
		m := New(transcript())
		var msg tea.KeyMsg
		if key == "esc" {
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		} else {
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
		}
		_, cmd := m.Update(msg)
		require.NotNil(t, cmd, key)
		assert.IsType(t, tea.QuitMsg{}, cmd(), key)
	}
}

func TestWindowResize(t *testing.T) {
	m := New(transcript())

	next, _ := m.Update(tea.WindowSizeMsg{Width: 60, Height: 12})
	m = next.(Model)

	assert.Equal(t, 60, m.viewport.Width)
	assert.Equal(t, 8, m.viewport.Height)
	assert.True(t, strings.Contains(m.View(), "opening argument"))
}

func TestEmptyTranscript(t *testing.T) {
	m := New(&debate.Result{Config: debate.Config{Key: "empty"}})

	m = press(t, m, "n")
	assert.Equal(t, 0, m.Index())
	assert.Contains(t, m.View(), "(empty transcript)")
}
