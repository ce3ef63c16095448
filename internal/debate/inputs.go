package debate

import (
	"math/rand/v2"

	"github.com/lorenzotomasdiez/council/internal/debate/issues"
	"github.com/lorenzotomasdiez/council/internal/debate/rubric"
)

// Each builder hands a generator only the slices its role may read. Issues
// are cloned so a generator can never reach back into the registry.

func priorFeedback(transcript []Turn) []string {
	var feedback []string
	for _, turn := range transcript {
		if turn.Stage == StageCritique || turn.Stage == StageDevil {
			feedback = append(feedback, turn.Content)
		}
	}
	return feedback
}

func researcherInput(s *State, r *rand.Rand) ResearcherInput {
	return ResearcherInput{
		Round:         s.RoundIndex + 1,
		Issues:        issues.Clone(s.Issues),
		PriorFeedback: priorFeedback(s.Transcript),
		Rand:          r,
	}
}

func criticInput(s *State, r *rand.Rand) CriticInput {
	return CriticInput{Round: s.RoundIndex + 1, Issues: issues.Clone(s.Issues), Rand: r}
}

func devilInput(s *State, r *rand.Rand) DevilInput {
	return DevilInput{Round: s.RoundIndex + 1, Issues: issues.Clone(s.Issues), Rand: r}
}

func revisionInput(s *State, r *rand.Rand) RevisionInput {
	return RevisionInput{Round: s.RoundIndex + 1, Issues: issues.Clone(s.Issues), Rand: r}
}

func synthesizerInput(s *State, r *rand.Rand) SynthesizerInput {
	return SynthesizerInput{
		Round:           s.RoundIndex,
		Issues:          issues.Clone(s.Issues),
		ResolvedActions: append([]string(nil), s.ResolvedActions...),
		Rand:            r,
	}
}

func judgeInput(s *State, r *rand.Rand) JudgeInput {
	return JudgeInput{
		Round:            s.RoundIndex,
		Issues:           issues.Clone(s.Issues),
		Signals:          rubric.Merge(s.Signals, nil),
		ConvergenceNotes: append([]string(nil), s.ConvergenceNotes...),
		Rand:             r,
	}
}
