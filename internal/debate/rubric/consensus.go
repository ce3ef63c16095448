package rubric

// ConsensusThreshold is the minimum mean score for convergence.
const ConsensusThreshold = 3.5

const (
	approveVerdict     = "✅ Recommend go/no-go: APPROVE pilot with defined guardrails."
	conditionalVerdict = "⚠️ Verdict: CONDITIONAL — hold launch until risk gaps close."

	convergedView = "Convergence achieved; no open blockers remain."
	partialView   = "Convergence partial; remaining blockers must be addressed."
)

// Consensus is true iff nothing is open and the mean score clears the threshold.
func Consensus(open int, scores Scores) bool {
	return open == 0 && scores.Mean() >= ConsensusThreshold
}

// Verdict returns the decision text for a consensus outcome.
func Verdict(consensus bool) string {
	if consensus {
		return approveVerdict
	}
	return conditionalVerdict
}

// ConvergenceView returns the judge's convergence note.
func ConvergenceView(consensus bool) string {
	if consensus {
		return convergedView
	}
	return partialView
}

// IsApproval reports whether decision is the approval verdict.
func IsApproval(decision string) bool {
	return decision == approveVerdict
}
