package debate

import (
	"fmt"
	"strings"
)

// Mode selects the agent topology.
type Mode string

const (
	// ModeFull runs distinct critic and judge agents.
	ModeFull Mode = "full"
	// ModeReduced collapses the debate to two agents: the critic also judges.
	ModeReduced Mode = "reduced"
)

// ParseMode accepts "full", "reduced" and the legacy "two_agent" spelling.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "full", "":
		return ModeFull, nil
	case "reduced", "two_agent", "two-agent":
		return ModeReduced, nil
	}
	return "", &ConfigError{Field: "agent_mode", Reason: fmt.Sprintf("unknown mode %q", s)}
}

// Config is fixed for the lifetime of a run and fully determines its graph.
type Config struct {
	Key                string   `json:"key" yaml:"key"`
	Title              string   `json:"title" yaml:"title"`
	Scenario           string   `json:"scenario" yaml:"scenario"`
	AcceptanceCriteria []string `json:"acceptance_criteria" yaml:"acceptance_criteria"`
	Rounds             int      `json:"rounds" yaml:"rounds"`
	Temperature        float64  `json:"temperature" yaml:"temperature"`
	Mode               Mode     `json:"agent_mode" yaml:"agent_mode"`
	IncludeSynthesizer bool     `json:"include_synthesizer" yaml:"include_synthesizer"`
	IncludeDevil       bool     `json:"include_devil" yaml:"include_devil"`
	Seed               int64    `json:"seed" yaml:"seed"`
	Notes              string   `json:"notes" yaml:"notes"`
}

// Validate checks the configuration before a graph is built from it.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Key) == "" {
		return &ConfigError{Field: "key", Reason: "is required"}
	}
	if c.Rounds < 1 {
		return &ConfigError{Field: "rounds", Reason: fmt.Sprintf("%s: must be >= 1, got %d", c.Key, c.Rounds)}
	}
	if c.Temperature < 0 {
		return &ConfigError{Field: "temperature", Reason: fmt.Sprintf("%s: must be >= 0, got %g", c.Key, c.Temperature)}
	}
	switch c.Mode {
	case ModeFull, ModeReduced:
	default:
		return &ConfigError{Field: "agent_mode", Reason: fmt.Sprintf("%s: unknown mode %q", c.Key, c.Mode)}
	}
	return nil
}
