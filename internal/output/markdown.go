package output

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/lorenzotomasdiez/council/internal/debate"
	"github.com/lorenzotomasdiez/council/internal/roster"
)

// RenderMarkdown lays out the transcript with a header, one block per turn
// and a footer carrying the decision and rubric.
func RenderMarkdown(r *debate.Result) string {
	var header strings.Builder
	fmt.Fprintf(&header, "# Debate transcript — %s\n\n", r.Config.Title)
	fmt.Fprintf(&header, "- Variant: %s\n", r.Config.Key)
	fmt.Fprintf(&header, "- Rounds: %d\n", r.Config.Rounds)
	fmt.Fprintf(&header, "- Temperature: %s\n", FormatTemperature(r.Config.Temperature))
	fmt.Fprintf(&header, "- Agents active: %s", strings.Join(activeRoles(r), ", "))

	blocks := []string{header.String()}
	for _, turn := range r.Transcript {
		blocks = append(blocks, fmt.Sprintf("---\n**Round %d · %s · %s (%s)**\n\n%s",
			turn.Round, strings.ToUpper(string(turn.Stage)), turn.Speaker, turn.Role, strings.TrimSpace(turn.Content)))
	}

	rubricLines := make([]string, 0, len(r.Scores))
	for _, m := range r.Scores.Metrics() {
		rubricLines = append(rubricLines, fmt.Sprintf("- %s: %d", m.Metric.Title(), m.Score))
	}
	blocks = append(blocks, fmt.Sprintf("---\n**Final decision:** %s\n\n**Rubric scores:**\n%s\n\n**Convergence notes:** %s",
		r.Decision, strings.Join(rubricLines, "\n"), strings.Join(r.ConvergenceNotes, " | ")))

	return strings.Join(blocks, "\n\n") + "\n"
}

// activeRoles reads roles from the cast, or from the transcript for bundles
// loaded from disk, which carry no cast.
func activeRoles(r *debate.Result) []string {
	if len(r.Cast) > 0 {
		return roster.Roles(r.Cast)
	}
	seen := map[string]bool{}
	var roles []string
	for _, turn := range r.Transcript {
		if !seen[turn.Role] {
			seen[turn.Role] = true
			roles = append(roles, turn.Role)
		}
	}
	sort.Strings(roles)
	return roles
}

// FormatTemperature prints the shortest decimal form, e.g. 0.35 or 1.
func FormatTemperature(t float64) string {
	return strconv.FormatFloat(t, 'f', -1, 64)
}
