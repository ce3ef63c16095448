package generator

import (
	"fmt"

	"github.com/lorenzotomasdiez/council/internal/debate"
	"github.com/lorenzotomasdiez/council/internal/debate/issues"
	"github.com/lorenzotomasdiez/council/internal/debate/rubric"
)

var riskRatings = []string{
	"Residual risk currently sits at medium-high because monetized resilience value is still assumptive.",
	"Residual risk sits at medium thanks to solid grant backing but tenant protections need proof.",
	"Residual risk is high; storage sizing assumptions have not been validated under winter load.",
}

// Critic raises up to two issues from the bank that nobody has raised yet.
func (m *Model) Critic(in debate.CriticInput) debate.CriticOutput {
	raised := issues.Raise(m.facts.IssueBank, issues.Keys(in.Issues), debate.CriticIssueLimit, debate.NodeCritic.Label(), in.Round)

	concerns := make([]string, 0, len(in.Issues)+len(raised))
	for _, issue := range append(issues.Open(in.Issues), raised...) {
		concerns = append(concerns, fmt.Sprintf("%s: %s", issue.Key, issue.Description))
	}
	if len(concerns) == 0 {
		concerns = append(concerns, "No new blockers beyond the resolved register.")
	}

	content := sections(
		fmt.Sprintf("**Round %d critique:** Focusing on stubborn weaknesses.", in.Round),
		"**Major concerns:**\n"+bullets(concerns),
		"**Clarifying asks:**\n"+bullets(take(shuffle(in.Rand, m.facts.ClarifyingQuestions), 2)),
		"**Risk posture:** "+m.choice(in.Rand, riskRatings),
	)

	candidates := make([]issues.Candidate, len(raised))
	for i, issue := range raised {
		candidates[i] = issues.Candidate{Key: issue.Key, Description: issue.Description}
	}
	return debate.CriticOutput{
		Content: content,
		Signals: rubric.Signals{rubric.Risks: true},
		Raised:  candidates,
	}
}
