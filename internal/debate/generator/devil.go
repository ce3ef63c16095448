package generator

import (
	"fmt"

	"github.com/lorenzotomasdiez/council/internal/debate"
	"github.com/lorenzotomasdiez/council/internal/debate/issues"
	"github.com/lorenzotomasdiez/council/internal/debate/rubric"
)

var contrarianPoints = []string{
	"If ISO-NE enforces new dual participation rules, the revenue stack could collapse.",
	"A stalled interconnection queue could delay energization by 18 months, nullifying cost savings.",
	"Tenant trust can fray if bills lag behind savings; once lost, political capital is gone.",
}

// Devil argues against the emerging consensus and always proposes the
// contrarian issue. The engine drops it once it is already on the register.
func (m *Model) Devil(in debate.DevilInput) debate.DevilOutput {
	content := sections(
		fmt.Sprintf("**Devil's Advocate (Round %d):** Stress-testing optimism.", in.Round),
		"**Contrarian evidence:**\n"+bullets(take(shuffle(in.Rand, contrarianPoints), 2)),
		"**Worst-case storyline:** In a downside market, the co-op could face a $220k funding hole.",
		"Let's force the team to show contingency math before we pretend consensus exists.",
	)
	return debate.DevilOutput{
		Content: content,
		Signals: rubric.Signals{rubric.Risks: true},
		Raised:  []issues.Candidate{m.facts.ContrarianIssue},
	}
}
