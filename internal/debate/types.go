package debate

import (
	"math/rand/v2"

	"github.com/lorenzotomasdiez/council/internal/debate/issues"
	"github.com/lorenzotomasdiez/council/internal/debate/rubric"
)

// Node is a stage of the orchestration graph.
type Node string

const (
	NodeResearcher  Node = "researcher"
	NodeCritic      Node = "critic"
	NodeDevil       Node = "devil"
	NodeRevision    Node = "revision"
	NodeSynthesizer Node = "synthesizer"
	NodeJudge       Node = "judge"
)

// Stage is the tag written on each transcript turn.
type Stage string

const (
	StageArgue      Stage = "argue"
	StageCritique   Stage = "critique"
	StageDevil      Stage = "devil"
	StageRevise     Stage = "revise"
	StageSynthesize Stage = "synthesize"
	StageVerdict    Stage = "verdict"
)

// Stage returns the transcript tag for the node.
func (n Node) Stage() Stage {
	switch n {
	case NodeResearcher:
		return StageArgue
	case NodeCritic:
		return StageCritique
	case NodeDevil:
		return StageDevil
	case NodeRevision:
		return StageRevise
	case NodeSynthesizer:
		return StageSynthesize
	case NodeJudge:
		return StageVerdict
	}
	return ""
}

// Label is the canonical role name stamped on issues the node raises.
func (n Node) Label() string {
	switch n {
	case NodeResearcher, NodeRevision:
		return "Researcher"
	case NodeCritic:
		return "Critic"
	case NodeDevil:
		return "Devil's Advocate"
	case NodeSynthesizer:
		return "Synthesizer"
	case NodeJudge:
		return "Judge"
	}
	return string(n)
}

// Agent is a debate participant.
type Agent struct {
	Name      string `json:"name"`
	Role      string `json:"role"`
	Objective string `json:"objective"`
	Style     string `json:"style"`
}

// Cast maps each graph node to the agent who speaks for it. Revision is
// voiced by the researcher.
type Cast map[Node]Agent

// Speaker returns the agent voicing node.
func (c Cast) Speaker(n Node) (Agent, bool) {
	if n == NodeRevision {
		n = NodeResearcher
	}
	a, ok := c[n]
	return a, ok
}

// Turn is one transcript entry.
type Turn struct {
	Round   int    `json:"round"`
	Stage   Stage  `json:"stage"`
	Speaker string `json:"speaker"`
	Role    string `json:"role"`
	Content string `json:"content"`
}

// State is the single mutable aggregate of a run. Only the Engine touches it.
type State struct {
	Transcript       []Turn
	RoundIndex       int
	TotalRounds      int
	Issues           []issues.Issue
	Signals          rubric.Signals
	ResolvedActions  []string
	ConvergenceNotes []string
	ConsensusReached bool
	Scores           rubric.Scores
	FinalDecision    string
	JudgeSummary     string
	Config           Config
}

func newState(cfg Config) *State {
	scores := make(rubric.Scores, len(rubric.Dimensions))
	for _, d := range rubric.Dimensions {
		scores[d] = 0
	}
	return &State{
		TotalRounds: cfg.Rounds,
		Signals:     rubric.NewSignals(),
		Scores:      scores,
		Config:      cfg,
	}
}

// Result is the bundle handed to the caller when the judge completes.
type Result struct {
	RunID            string         `json:"run_id"`
	Config           Config         `json:"config"`
	Scores           rubric.Scores  `json:"scores"`
	Decision         string         `json:"decision"`
	ConsensusReached bool           `json:"consensus_reached"`
	ConvergenceNotes []string       `json:"convergence_notes"`
	Issues           []issues.Issue `json:"open_issues"`
	ResolvedActions  []string       `json:"resolved_actions"`
	Transcript       []Turn         `json:"transcript"`
	JudgeSummary     string         `json:"judge_summary"`
	Cast             Cast           `json:"-"`
}

// Unresolved returns the sorted keys still open at the verdict.
func (r *Result) Unresolved() []string {
	return issues.OpenKeys(r.Issues)
}

// TurnGenerator produces one contribution per role. Implementations must be
// deterministic given the same inputs and random source state.
type TurnGenerator interface {
	Researcher(in ResearcherInput) ResearcherOutput
	Critic(in CriticInput) CriticOutput
	Devil(in DevilInput) DevilOutput
	Revision(in RevisionInput) RevisionOutput
	Synthesizer(in SynthesizerInput) SynthesizerOutput
	Judge(in JudgeInput) JudgeOutput
}

type ResearcherInput struct {
	Round         int
	Issues        []issues.Issue
	PriorFeedback []string
	Rand          *rand.Rand
}

type ResearcherOutput struct {
	Content         string
	Signals         rubric.Signals
	ProposedActions []string
}

type CriticInput struct {
	Round  int
	Issues []issues.Issue
	Rand   *rand.Rand
}

type CriticOutput struct {
	Content string
	Signals rubric.Signals
	Raised  []issues.Candidate
}

type DevilInput struct {
	Round  int
	Issues []issues.Issue
	Rand   *rand.Rand
}

type DevilOutput struct {
	Content string
	Signals rubric.Signals
	Raised  []issues.Candidate
}

type RevisionInput struct {
	Round  int
	Issues []issues.Issue
	Rand   *rand.Rand
}

type RevisionOutput struct {
	Content      string
	Signals      rubric.Signals
	ResolvedKeys []string
	Actions      []string
}

type SynthesizerInput struct {
	Round           int
	Issues          []issues.Issue
	ResolvedActions []string
	Rand            *rand.Rand
}

type SynthesizerOutput struct {
	Content   string
	Signals   rubric.Signals
	Agreement bool
	Note      string
}

type JudgeInput struct {
	Round            int
	Issues           []issues.Issue
	Signals          rubric.Signals
	ConvergenceNotes []string
	Rand             *rand.Rand
}

type JudgeOutput struct {
	Content     string
	Scores      rubric.Scores
	Consensus   bool
	Decision    string
	Convergence string
}
