package generator

import (
	"fmt"
	"strings"

	"github.com/lorenzotomasdiez/council/internal/debate"
	"github.com/lorenzotomasdiez/council/internal/debate/issues"
	"github.com/lorenzotomasdiez/council/internal/debate/rubric"
)

var synthesisHighlights = []string{
	"Revision landed real movement on tenant protections.",
	"Financial engineering is sharper; still need better downside math.",
	"Stakeholder alignment reads solid, but regulatory volatility remains the swing factor.",
}

// agreementMaxOpen is the most open issues the synthesizer tolerates before
// reporting blockers.
const agreementMaxOpen = 1

// Synthesizer summarizes progress and reports whether the council is close.
func (m *Model) Synthesizer(in debate.SynthesizerInput) debate.SynthesizerOutput {
	var open []string
	for _, issue := range issues.Open(in.Issues) {
		open = append(open, issue.Key)
	}
	agreement := len(open) <= agreementMaxOpen

	tone, note := "We still have material blockers.", "open blockers remain"
	if agreement {
		tone, note = "We are close to consensus.", "agreement"
	}
	outstanding := "none"
	if len(open) > 0 {
		outstanding = strings.Join(open, ", ")
	}
	recent := in.ResolvedActions
	if len(recent) > 2 {
		recent = recent[len(recent)-2:]
	}

	content := sections(
		fmt.Sprintf("**Synthesizer (Round %d wrap):** %s", in.Round, tone),
		"**Outstanding issues:** "+outstanding,
		"**Progress markers:**\n"+bullets(recent),
		"**Narrative to brief stakeholders:** "+m.choice(in.Rand, synthesisHighlights),
	)
	return debate.SynthesizerOutput{
		Content:   content,
		Signals:   rubric.Signals{rubric.Clarity: true},
		Agreement: agreement,
		Note:      note,
	}
}

// Judge scores the rubric and renders the verdict.
func (m *Model) Judge(in debate.JudgeInput) debate.JudgeOutput {
	open, resolved := issues.Count(in.Issues)
	scores := rubric.Score(in.Signals, open, resolved)
	consensus := rubric.Consensus(open, scores)
	verdict := rubric.Verdict(consensus)
	view := rubric.ConvergenceView(consensus)

	evidence := "Evidence still thin."
	if in.Signals[rubric.Evidence] {
		evidence = fmt.Sprintf("Evidence score %d — data packs are substantive.", scores[rubric.Evidence])
	}
	unresolved := strings.Join(issues.OpenKeys(in.Issues), ", ")
	if unresolved == "" {
		unresolved = "none"
	}
	rationale := strings.Join([]string{
		evidence,
		fmt.Sprintf("Feasibility score %d — execution path mostly credible.", scores[rubric.Feasibility]),
		fmt.Sprintf("Risks score %d — unresolved items: %s", scores[rubric.Risks], unresolved),
		fmt.Sprintf("Clarity score %d — story is almost board-ready.", scores[rubric.Clarity]),
		"**Convergence read:** " + view,
	}, "\n")

	content := sections(
		"**Judge verdict:**",
		verdict,
		rationale,
		"**Next step I require:** deliver risk register sign-off and regulatory contingency memo.",
	)
	return debate.JudgeOutput{
		Content:     content,
		Scores:      scores,
		Consensus:   consensus,
		Decision:    verdict,
		Convergence: view,
	}
}
