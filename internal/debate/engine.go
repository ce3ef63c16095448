package debate

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/lorenzotomasdiez/council/internal/debate/issues"
	"github.com/lorenzotomasdiez/council/internal/debate/rubric"
	"github.com/lorenzotomasdiez/council/internal/logging"
)

// Per-round caps on newly raised issues.
const (
	CriticIssueLimit = 2
	DevilIssueLimit  = 1
)

// Engine orchestrates a single debate run.
type Engine struct {
	cfg    Config
	cast   Cast
	graph  *Graph
	gen    TurnGenerator
	logger *logging.Logger

	OnStage func(Node)
	OnTurn  func(Turn)
}

// NewEngine builds the graph for cfg up front so configuration errors
// surface before any stage runs.
func NewEngine(cfg Config, cast Cast, gen TurnGenerator, logger *logging.Logger) (*Engine, error) {
	if gen == nil {
		return nil, &ConfigError{Field: "generator", Reason: "is required"}
	}
	graph, err := BuildGraph(cfg, cast)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Engine{cfg: cfg, cast: cast, graph: graph, gen: gen, logger: logger}, nil
}

// Graph exposes the topology the engine runs.
func (e *Engine) Graph() *Graph { return e.graph }

// Run executes every stage from the researcher to the judge. Each call starts
// from a fresh state and a fresh random source seeded from the config, so
// repeated runs produce identical transcripts. The context is checked between
// stages only.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	runID := uuid.NewString()
	log := e.logger.WithRun(e.cfg.Key, runID)
	seed := uint64(e.cfg.Seed)
	rng := rand.New(rand.NewPCG(seed, seed))
	state := newState(e.cfg)

	log.Info("debate started", "rounds", e.cfg.Rounds, "mode", e.cfg.Mode,
		"synthesizer", e.cfg.IncludeSynthesizer, "devil", e.cfg.IncludeDevil)

	steps := 0
	for node := e.graph.Entry(); node != ""; node = e.graph.Next(node, state) {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("debate: %w", err)
		}
		if steps++; steps > e.graph.MaxSteps() {
			return nil, fmt.Errorf("debate: %s: exceeded %d stages without a verdict", e.cfg.Key, e.graph.MaxSteps())
		}
		if e.OnStage != nil {
			e.OnStage(node)
		}

		turn, err := e.step(node, state, rng)
		if err != nil {
			log.WithStage(string(node)).Error("stage failed", "error", err)
			return nil, err
		}
		log.WithStage(string(node)).Debug("stage complete", "round", turn.Round,
			"open_issues", len(issues.OpenKeys(state.Issues)))
		if e.OnTurn != nil {
			e.OnTurn(turn)
		}
	}

	log.Info("debate finished", "decision", state.FinalDecision, "consensus", state.ConsensusReached)
	return &Result{
		RunID:            runID,
		Config:           e.cfg,
		Scores:           state.Scores,
		Decision:         state.FinalDecision,
		ConsensusReached: state.ConsensusReached,
		ConvergenceNotes: state.ConvergenceNotes,
		Issues:           state.Issues,
		ResolvedActions:  state.ResolvedActions,
		Transcript:       state.Transcript,
		JudgeSummary:     state.JudgeSummary,
		Cast:             e.cast,
	}, nil
}

func (e *Engine) step(node Node, s *State, rng *rand.Rand) (Turn, error) {
	switch node {
	case NodeResearcher:
		return e.researcher(s, rng)
	case NodeCritic:
		return e.critic(s, rng)
	case NodeDevil:
		return e.devil(s, rng)
	case NodeRevision:
		return e.revision(s, rng)
	case NodeSynthesizer:
		return e.synthesizer(s, rng)
	case NodeJudge:
		return e.judge(s, rng)
	}
	return Turn{}, fmt.Errorf("debate: unknown stage %q", node)
}

// Reducers validate generator output before touching state, so a violation
// leaves the state exactly as the previous stage left it.

func (e *Engine) researcher(s *State, rng *rand.Rand) (Turn, error) {
	in := researcherInput(s, rng)
	out := e.gen.Researcher(in)
	if err := checkSignals(NodeResearcher, in.Round, out.Signals); err != nil {
		return Turn{}, err
	}
	s.Signals = rubric.Merge(s.Signals, out.Signals)
	s.ResolvedActions = append(s.ResolvedActions, out.ProposedActions...)
	return e.record(s, NodeResearcher, in.Round, out.Content), nil
}

func (e *Engine) critic(s *State, rng *rand.Rand) (Turn, error) {
	in := criticInput(s, rng)
	out := e.gen.Critic(in)
	if err := checkSignals(NodeCritic, in.Round, out.Signals); err != nil {
		return Turn{}, err
	}
	if err := checkCandidates(NodeCritic, in.Round, out.Raised); err != nil {
		return Turn{}, err
	}
	raised := issues.Raise(out.Raised, issues.Keys(s.Issues), CriticIssueLimit, NodeCritic.Label(), in.Round)
	s.Issues = append(s.Issues, raised...)
	s.Signals = rubric.Merge(s.Signals, out.Signals)
	return e.record(s, NodeCritic, in.Round, out.Content), nil
}

func (e *Engine) devil(s *State, rng *rand.Rand) (Turn, error) {
	in := devilInput(s, rng)
	out := e.gen.Devil(in)
	if err := checkSignals(NodeDevil, in.Round, out.Signals); err != nil {
		return Turn{}, err
	}
	if err := checkCandidates(NodeDevil, in.Round, out.Raised); err != nil {
		return Turn{}, err
	}
	raised := issues.Raise(out.Raised, issues.Keys(s.Issues), DevilIssueLimit, NodeDevil.Label(), in.Round)
	s.Issues = append(s.Issues, raised...)
	s.Signals = rubric.Merge(s.Signals, out.Signals)
	return e.record(s, NodeDevil, in.Round, out.Content), nil
}

func (e *Engine) revision(s *State, rng *rand.Rand) (Turn, error) {
	in := revisionInput(s, rng)
	out := e.gen.Revision(in)
	if err := checkSignals(NodeRevision, in.Round, out.Signals); err != nil {
		return Turn{}, err
	}
	seen := make(map[string]bool, len(out.ResolvedKeys))
	for _, key := range out.ResolvedKeys {
		issue, ok := issues.Find(s.Issues, key)
		switch {
		case !ok:
			return Turn{}, &ContractViolation{Node: NodeRevision, Round: in.Round, Record: key, Reason: "resolves an unknown issue"}
		case seen[key]:
			return Turn{}, &ContractViolation{Node: NodeRevision, Round: in.Round, Record: issue, Reason: "resolves the same issue twice"}
		case !issue.IsOpen():
			return Turn{}, &ContractViolation{Node: NodeRevision, Round: in.Round, Record: issue, Reason: "resolves an issue that is already resolved"}
		}
		seen[key] = true
	}

	s.Issues = issues.Resolve(s.Issues, out.ResolvedKeys, in.Round)
	s.Signals = rubric.Merge(s.Signals, out.Signals)
	s.ResolvedActions = append(s.ResolvedActions, out.Actions...)
	turn := e.record(s, NodeRevision, in.Round, out.Content)
	s.RoundIndex++
	return turn, nil
}

func (e *Engine) synthesizer(s *State, rng *rand.Rand) (Turn, error) {
	in := synthesizerInput(s, rng)
	out := e.gen.Synthesizer(in)
	if err := checkSignals(NodeSynthesizer, in.Round, out.Signals); err != nil {
		return Turn{}, err
	}
	s.Signals = rubric.Merge(s.Signals, out.Signals)
	s.ConvergenceNotes = append(s.ConvergenceNotes, out.Note)
	s.ConsensusReached = out.Agreement
	return e.record(s, NodeSynthesizer, in.Round, out.Content), nil
}

func (e *Engine) judge(s *State, rng *rand.Rand) (Turn, error) {
	in := judgeInput(s, rng)
	out := e.gen.Judge(in)
	if err := out.Scores.Validate(); err != nil {
		return Turn{}, &ContractViolation{Node: NodeJudge, Round: in.Round, Record: out.Scores, Reason: err.Error()}
	}
	open, _ := issues.Count(s.Issues)
	if want := rubric.Consensus(open, out.Scores); out.Consensus != want {
		return Turn{}, &ContractViolation{Node: NodeJudge, Round: in.Round, Record: out.Scores,
			Reason: fmt.Sprintf("consensus %t disagrees with rubric (%d open, mean %.2f)", out.Consensus, open, out.Scores.Mean())}
	}
	if out.Decision == "" {
		return Turn{}, &ContractViolation{Node: NodeJudge, Round: in.Round, Record: out, Reason: "empty decision"}
	}

	s.Scores = out.Scores
	s.FinalDecision = out.Decision
	s.ConsensusReached = out.Consensus
	s.ConvergenceNotes = append(s.ConvergenceNotes, out.Convergence)
	s.JudgeSummary = out.Content
	return e.record(s, NodeJudge, in.Round, out.Content), nil
}

func (e *Engine) record(s *State, node Node, round int, content string) Turn {
	speaker, _ := e.cast.Speaker(node)
	turn := Turn{
		Round:   round,
		Stage:   node.Stage(),
		Speaker: speaker.Name,
		Role:    speaker.Role,
		Content: content,
	}
	s.Transcript = append(s.Transcript, turn)
	return turn
}

func checkSignals(node Node, round int, signals rubric.Signals) error {
	if err := signals.Validate(); err != nil {
		return &ContractViolation{Node: node, Round: round, Record: signals, Reason: err.Error()}
	}
	return nil
}

func checkCandidates(node Node, round int, raised []issues.Candidate) error {
	for _, c := range raised {
		if c.Key == "" {
			return &ContractViolation{Node: node, Round: round, Record: c, Reason: "raises an issue without a key"}
		}
	}
	return nil
}
