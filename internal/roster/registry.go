package roster

import (
	"sort"

	"github.com/lorenzotomasdiez/council/internal/debate"
)

const reducedCriticRole = "Critic & Judge"

// Registry holds the agent specs available to a debate, keyed by the node
// they speak for.
type Registry struct {
	agents map[debate.Node]debate.Agent
}

// NewRegistry creates a registry over agents. Revision has no entry of its
// own; it is voiced by the researcher.
func NewRegistry(agents map[debate.Node]debate.Agent) *Registry {
	copied := make(map[debate.Node]debate.Agent, len(agents))
	for n, a := range agents {
		copied[n] = a
	}
	return &Registry{agents: copied}
}

// Agents returns a copy of every registered agent.
func (r *Registry) Agents() map[debate.Node]debate.Agent {
	out := make(map[debate.Node]debate.Agent, len(r.agents))
	for n, a := range r.agents {
		out[n] = a
	}
	return out
}

// Cast selects the agents a configuration needs. Researcher, critic and judge
// are always cast; the synthesizer and devil's advocate follow their toggles.
// In reduced mode the critic doubles as judge.
func (r *Registry) Cast(cfg debate.Config) debate.Cast {
	cast := debate.Cast{}
	for _, n := range []debate.Node{debate.NodeResearcher, debate.NodeCritic, debate.NodeJudge} {
		if a, ok := r.agents[n]; ok {
			cast[n] = a
		}
	}
	if cfg.IncludeSynthesizer {
		if a, ok := r.agents[debate.NodeSynthesizer]; ok {
			cast[debate.NodeSynthesizer] = a
		}
	}
	if cfg.IncludeDevil {
		if a, ok := r.agents[debate.NodeDevil]; ok {
			cast[debate.NodeDevil] = a
		}
	}

	if cfg.Mode == debate.ModeReduced {
		if critic, ok := cast[debate.NodeCritic]; ok {
			critic.Role = reducedCriticRole
			cast[debate.NodeCritic] = critic
			if judge, ok := cast[debate.NodeJudge]; ok {
				judge.Name = critic.Name
				cast[debate.NodeJudge] = judge
			}
		}
	}
	return cast
}

// Roles returns the sorted distinct role labels of a cast.
func Roles(cast debate.Cast) []string {
	seen := map[string]bool{}
	var roles []string
	for _, a := range cast {
		if !seen[a.Role] {
			seen[a.Role] = true
			roles = append(roles, a.Role)
		}
	}
	sort.Strings(roles)
	return roles
}

// DefaultAgents returns the standing council.
func DefaultAgents() map[debate.Node]debate.Agent {
	return map[debate.Node]debate.Agent{
		debate.NodeResearcher: {
			Name:      "Alex Morgan",
			Role:      "Researcher",
			Objective: "Assemble actionable plan that satisfies council acceptance criteria.",
			Style:     "Structured, cites numbers, frames action items.",
		},
		debate.NodeCritic: {
			Name:      "Jordan Lee",
			Role:      "Critic",
			Objective: "Pressure-test the proposal, surface hard blockers, and demand proof.",
			Style:     "Direct, risk-oriented, asks targeted questions.",
		},
		debate.NodeSynthesizer: {
			Name:      "Priya Singh",
			Role:      "Synthesizer",
			Objective: "Track convergence, integrate revisions, and prep stakeholder narrative.",
			Style:     "Facilitator tone; highlights progress and stuck points.",
		},
		debate.NodeJudge: {
			Name:      "Morgan Kim",
			Role:      "Judge",
			Objective: "Score plan against rubric and issue final verdict.",
			Style:     "Decisive, rubric-driven, references convergence status.",
		},
		debate.NodeDevil: {
			Name:      "Casey Vega",
			Role:      "Devil's Advocate",
			Objective: "Introduce skeptical signals and stress-test assumptions.",
			Style:     "Skeptical, contrarian, concise.",
		},
	}
}
