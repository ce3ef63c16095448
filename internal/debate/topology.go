package debate

import (
	"fmt"
	"math"
)

type route func(s *State) Node

// Graph is the immutable topology built once from a Config. Next is the
// transition function; nodes absent from the graph never run.
type Graph struct {
	entry    Node
	routes   map[Node]route
	maxSteps int
}

// BuildGraph validates cfg and wires the stage transitions it implies.
// A graph whose judge is unreachable, or whose nodes lack a speaker, is
// rejected before any stage executes.
func BuildGraph(cfg Config, cast Cast) (*Graph, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	nextRound := func(s *State) Node {
		if s.RoundIndex < s.TotalRounds {
			return NodeResearcher
		}
		return NodeJudge
	}

	routes := map[Node]route{
		NodeResearcher: func(*State) Node { return NodeCritic },
		NodeCritic:     func(*State) Node { return NodeRevision },
		NodeJudge:      func(*State) Node { return "" },
	}
	if cfg.IncludeDevil {
		routes[NodeCritic] = func(*State) Node { return NodeDevil }
		routes[NodeDevil] = func(*State) Node { return NodeRevision }
	}
	if cfg.IncludeSynthesizer {
		routes[NodeRevision] = func(*State) Node { return NodeSynthesizer }
		routes[NodeSynthesizer] = nextRound
	} else {
		routes[NodeRevision] = nextRound
	}

	g := &Graph{
		entry:    NodeResearcher,
		routes:   routes,
		maxSteps: maxSteps(cfg.Rounds),
	}

	for n := range routes {
		if _, ok := cast.Speaker(n); !ok {
			return nil, &ConfigError{Field: "agents", Reason: fmt.Sprintf("%s: no agent speaks for %s", cfg.Key, n)}
		}
	}
	// Routes do not depend on the round count past the second round.
	plan := g.plan(min(cfg.Rounds, 2))
	if len(plan) == 0 || plan[len(plan)-1] != NodeJudge {
		return nil, &ConfigError{Field: "rounds", Reason: fmt.Sprintf("%s: judge is unreachable", cfg.Key)}
	}
	return g, nil
}

// maxSteps allows one pass per round through at most five stages, plus the
// verdict, saturating at math.MaxInt.
func maxSteps(rounds int) int {
	if rounds > (math.MaxInt-1)/5 {
		return math.MaxInt
	}
	return rounds*5 + 1
}

// Entry is the first stage of every run.
func (g *Graph) Entry() Node { return g.entry }

// Has reports whether node is part of the graph.
func (g *Graph) Has(n Node) bool {
	_, ok := g.routes[n]
	return ok
}

// Next returns the stage after from given the state produced by from, or ""
// once the judge has spoken.
func (g *Graph) Next(from Node, s *State) Node {
	r, ok := g.routes[from]
	if !ok {
		return ""
	}
	return r(s)
}

// MaxSteps bounds the number of stages a run may execute.
func (g *Graph) MaxSteps() int { return g.maxSteps }

// Plan returns the full stage sequence a run of totalRounds will follow.
func (g *Graph) Plan(totalRounds int) []Node {
	return g.plan(totalRounds)
}

func (g *Graph) plan(totalRounds int) []Node {
	s := &State{TotalRounds: totalRounds}
	var seq []Node
	for n := g.entry; n != "" && len(seq) <= g.maxSteps; n = g.Next(n, s) {
		seq = append(seq, n)
		if n == NodeRevision {
			s.RoundIndex++
		}
	}
	return seq
}
