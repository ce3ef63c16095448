// Package browse is an interactive viewer for a stored debate transcript.
package browse

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lorenzotomasdiez/council/internal/debate"
)

const (
	defaultWidth  = 100
	defaultHeight = 30
	// header and footer lines around the viewport
	chromeHeight = 4
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	stageStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	devilStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	okStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("114"))
	holdStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
)

// Model pages through one run, a turn at a time.
type Model struct {
	result   *debate.Result
	index    int
	viewport viewport.Model
	width    int
	height   int
}

// New builds a viewer positioned on the first turn.
func New(r *debate.Result) Model {
	m := Model{
		result:   r,
		width:    defaultWidth,
		height:   defaultHeight,
		viewport: viewport.New(defaultWidth, defaultHeight-chromeHeight),
	}
	m.render()
	return m
}

// Index is the turn currently shown.
func (m Model) Index() int { return m.index }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(1, msg.Height-chromeHeight)
		m.render()
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "n", "right", "tab", "l":
			m.move(m.index + 1)
			return m, nil
		case "p", "left", "shift+tab", "h":
			m.move(m.index - 1)
			return m, nil
		case "g", "home":
			m.move(0)
			return m, nil
		case "G", "end":
			m.move(len(m.result.Transcript) - 1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) move(i int) {
	if n := len(m.result.Transcript); i < 0 || i >= n {
		return
	}
	m.index = i
	m.render()
}

func (m *Model) render() {
	if len(m.result.Transcript) == 0 {
		m.viewport.SetContent("(empty transcript)")
		return
	}
	turn := m.result.Transcript[m.index]
	body := lipgloss.NewStyle().Width(max(20, m.width-2)).Render(turn.Content)
	m.viewport.SetContent(body)
	m.viewport.GotoTop()
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s · %s", m.result.Config.Key, m.result.Config.Title)))
	b.WriteString("\n")

	if n := len(m.result.Transcript); n > 0 {
		turn := m.result.Transcript[m.index]
		style := stageStyle
		if turn.Stage == debate.StageDevil {
			style = devilStyle
		}
		b.WriteString(style.Render(fmt.Sprintf("Turn %d/%d · Round %d · %s · %s (%s)",
			m.index+1, n, turn.Round, strings.ToUpper(string(turn.Stage)), turn.Speaker, turn.Role)))
	}
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	verdict := holdStyle.Render(m.result.Decision)
	if m.result.ConsensusReached {
		verdict = okStyle.Render(m.result.Decision)
	}
	b.WriteString(verdict)
	b.WriteString("\n")
	b.WriteString(footerStyle.Render("n/p turn · g/G first/last · ↑/↓ scroll · q quit"))
	return b.String()
}

// Run opens the viewer full screen until the user quits.
func Run(r *debate.Result) error {
	if _, err := tea.NewProgram(New(r), tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("browse: %w", err)
	}
	return nil
}
