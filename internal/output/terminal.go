package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/lorenzotomasdiez/council/internal/debate"
	"github.com/lorenzotomasdiez/council/internal/debate/rubric"
)

func init() {
	// Colour stays on when piped; NO_COLOR turns it off.
	if os.Getenv("NO_COLOR") == "" {
		color.NoColor = false
	}
}

var (
	bold    = color.New(color.Bold)
	green   = color.New(color.FgGreen, color.Bold)
	red     = color.New(color.FgRed, color.Bold)
	yellow  = color.New(color.FgYellow)
	cyan    = color.New(color.FgCyan, color.Bold)
	magenta = color.New(color.FgMagenta, color.Bold)
	faint   = color.New(color.Faint)
)

func stageColor(s debate.Stage) *color.Color {
	switch s {
	case debate.StageDevil:
		return red
	case debate.StageSynthesize:
		return magenta
	case debate.StageVerdict:
		return green
	}
	return cyan
}

// PrintRunHeader announces a debate before its first stage.
func PrintRunHeader(w io.Writer, cfg debate.Config) {
	cyan.Fprintf(w, "🔁 Running debate: %s", cfg.Key)
	fmt.Fprintf(w, " — %s\n", cfg.Title)
}

// PrintStage prints a stage banner.
func PrintStage(w io.Writer, key string, node debate.Node) {
	c := stageColor(node.Stage())
	c.Fprintf(w, "\n=== %s · %s ===\n", key, strings.ToUpper(string(node.Stage())))
}

// PrintTurn prints a transcript turn in full.
func PrintTurn(w io.Writer, turn debate.Turn) {
	yellow.Fprintf(w, "[Round %d]", turn.Round)
	fmt.Fprint(w, " ")
	bold.Fprint(w, turn.Speaker)
	fmt.Fprintf(w, " (%s): %s\n", turn.Role, turn.Content)
}

// PrintVerdict prints the judge's decision, the rubric and unresolved issues.
func PrintVerdict(w io.Writer, r *debate.Result) {
	fmt.Fprint(w, "Consensus: ")
	if r.ConsensusReached {
		green.Fprintln(w, "Yes")
	} else {
		red.Fprintln(w, "No")
	}
	fmt.Fprintf(w, "Decision: %s\n", r.Decision)
	parts := make([]string, 0, len(rubric.Dimensions))
	for _, m := range r.Scores.Metrics() {
		parts = append(parts, fmt.Sprintf("%s %d", m.Metric.Title(), m.Score))
	}
	fmt.Fprint(w, "Scores: ")
	yellow.Fprintf(w, "%s (avg %.2f)\n", strings.Join(parts, ", "), r.Scores.Mean())
	if open := r.Unresolved(); len(open) > 0 {
		fmt.Fprint(w, "Unresolved: ")
		red.Fprintln(w, strings.Join(open, ", "))
	}
	green.Fprintf(w, "✅ Completed: %s\n\n", r.Config.Key)
}

// PrintSummary prints one line per run of a batch.
func PrintSummary(w io.Writer, rows []SummaryRow) {
	bold.Fprintln(w, "Summary")
	for _, row := range rows {
		mark := red.Sprint("✗")
		if row.Consensus {
			mark = green.Sprint("✓")
		}
		fmt.Fprintf(w, "  %s %-24s avg %.2f  %s\n", mark, row.Config, row.AvgScore, row.Decision)
		if len(row.UnresolvedIssues) > 0 {
			faint.Fprintf(w, "      open: %s\n", strings.Join(row.UnresolvedIssues, ", "))
		}
	}
}

// PrintWarning prints a non-fatal problem such as a failed sink.
func PrintWarning(w io.Writer, format string, a ...any) {
	yellow.Fprintf(w, "⚠️  %s\n", fmt.Sprintf(format, a...))
}
