package generator

import (
	"fmt"
	"strings"

	"github.com/lorenzotomasdiez/council/internal/debate"
	"github.com/lorenzotomasdiez/council/internal/debate/issues"
	"github.com/lorenzotomasdiez/council/internal/debate/rubric"
)

var headlines = []string{
	"Bundle solar, storage, and demand response to guarantee 18% utility savings.",
	"Pair MassCEC grant with performance-based EPC contract to land <10 year payback.",
	"Stage microgrid commissioning so that tenant benefits show up in billing by month six.",
}

var revisionEvidence = []string{
	"Uploaded utility interval data (Jan-Dec 2023) to shared drive for transparency.",
	"Secured EPC letter committing to $1.92/W turnkey cap backed by performance guarantees.",
	"Validated storage dispatch model against ISO-NE winter peaks; 90% of outage use case holds.",
}

// Researcher argues the plan and proposes the first two implementation steps.
func (m *Model) Researcher(in debate.ResearcherInput) debate.ResearcherOutput {
	headline := m.choice(in.Rand, headlines)
	evidence := take(shuffle(in.Rand, m.facts.Evidence), 3)
	steps := take(shuffle(in.Rand, m.facts.Implementation), 3)

	var watch []string
	if open := issues.OpenKeys(in.Issues); len(open) > 0 {
		watch = append(watch, "Outstanding review items: "+strings.Join(open, ", "))
	}
	watch = append(watch, take(shuffle(in.Rand, m.facts.BaselineRisks), 2)...)

	parts := []string{
		fmt.Sprintf("**Round %d focus:** %s", in.Round, headline),
		"**Scenario snapshot:** " + m.facts.Snapshot,
		"**Evidence highlights:**\n" + bullets(evidence),
		"**Implementation path:**\n" + numbered(steps),
		"**Risk watchlist:**\n" + bullets(watch),
	}
	if n := len(in.PriorFeedback); n > 0 {
		parts = append(parts, "**Addressing prior critique:** Feedback last round: "+in.PriorFeedback[n-1])
	}

	return debate.ResearcherOutput{
		Content:         sections(parts...),
		Signals:         rubric.Signals{rubric.Evidence: true, rubric.Feasibility: true},
		ProposedActions: take(steps, 2),
	}
}

// Revision resolves up to two open issues and commits a mitigation for each.
func (m *Model) Revision(in debate.RevisionInput) debate.RevisionOutput {
	var keys, adjustments []string
	for _, issue := range issues.Open(in.Issues) {
		if len(keys) == 2 {
			break
		}
		keys = append(keys, issue.Key)
		if fix, ok := m.facts.Mitigations[issue.Key]; ok {
			adjustments = append(adjustments, fix)
		} else {
			adjustments = append(adjustments, fmt.Sprintf("Documented mitigation plan for %s with owner + due date.", issue.Key))
		}
	}

	listed := adjustments
	if len(listed) == 0 {
		listed = []string{"Maintaining prior plan; no unresolved items flagged this round."}
	}

	content := sections(
		fmt.Sprintf("**Researcher revision (Round %d):** Integrating critiques into the plan.", in.Round),
		"**Adjustments committed:**\n"+bullets(listed),
		"**Fresh evidence:** "+m.choice(in.Rand, revisionEvidence),
		"**Next actions:** Kick off tenant co-design workshop and lock interconnection study date.",
	)

	return debate.RevisionOutput{
		Content:      content,
		Signals:      rubric.Signals{rubric.Feasibility: true, rubric.Evidence: true},
		ResolvedKeys: keys,
		Actions:      listed,
	}
}
