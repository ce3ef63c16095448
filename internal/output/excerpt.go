package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lorenzotomasdiez/council/internal/debate"
)

// DefaultExcerptWidth is the wrap width for excerpt snippets.
const DefaultExcerptWidth = 88

const (
	excerptEntries      = 4
	excerptSnippetLines = 4
)

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2)
	cardTitle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	cardHeading = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	cardFooter  = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
)

func excerptTurn(t debate.Turn) bool {
	switch t.Round {
	case 1:
		return t.Stage == debate.StageArgue || t.Stage == debate.StageCritique
	case 2:
		return t.Stage == debate.StageRevise || t.Stage == debate.StageVerdict
	}
	return false
}

// BuildExcerpt picks the opening argument and critique of round one and the
// revision and verdict of round two, up to four turns, each cut to four
// wrapped lines, and closes with the rubric and decision.
func BuildExcerpt(r *debate.Result, label string, width int) []string {
	if width <= 0 {
		width = DefaultExcerptWidth
	}
	lines := []string{label, ""}

	var chosen []debate.Turn
	for _, t := range r.Transcript {
		if excerptTurn(t) {
			chosen = append(chosen, t)
		}
		if len(chosen) >= excerptEntries {
			break
		}
	}

	for _, t := range chosen {
		lines = append(lines, fmt.Sprintf("Round %d · %s · %s", t.Round, strings.ToUpper(string(t.Stage)), t.Speaker))
		snippet := wrap(strings.Split(t.Content, "\n"), width)
		if len(snippet) > excerptSnippetLines {
			snippet = snippet[:excerptSnippetLines]
		}
		for _, s := range snippet {
			lines = append(lines, "  "+s)
		}
		lines = append(lines, "")
	}

	scores := make([]string, 0, len(r.Scores))
	for _, m := range r.Scores.Metrics() {
		scores = append(scores, fmt.Sprintf("%s: %d", m.Metric.Title(), m.Score))
	}
	lines = append(lines, "Scores → "+strings.Join(scores, ", "))
	lines = append(lines, "Decision → "+r.Decision)
	return lines
}

// wrap word-wraps each non-blank line to width.
func wrap(lines []string, width int) []string {
	style := lipgloss.NewStyle().Width(width)
	var out []string
	for _, line := range lines {
		stripped := strings.TrimSpace(line)
		if stripped == "" {
			continue
		}
		for _, l := range strings.Split(style.Render(stripped), "\n") {
			out = append(out, strings.TrimRight(l, " "))
		}
	}
	return out
}

// RenderExcerpt draws excerpt lines as a bordered card. The first line is the
// title, the last two the rubric and decision.
func RenderExcerpt(lines []string) string {
	styled := make([]string, len(lines))
	for i, l := range lines {
		switch {
		case i == 0:
			styled[i] = cardTitle.Render(l)
		case strings.HasPrefix(l, "Round "):
			styled[i] = cardHeading.Render(l)
		case strings.HasPrefix(l, "Scores → "), strings.HasPrefix(l, "Decision → "):
			styled[i] = cardFooter.Render(l)
		default:
			styled[i] = l
		}
	}
	return cardStyle.Render(strings.Join(styled, "\n"))
}
