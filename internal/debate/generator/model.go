// Package generator produces deterministic, human-readable debate turns from
// a facts bank. Randomness comes only from the source passed in each input.
package generator

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/lorenzotomasdiez/council/internal/debate"
)

// greedyBelow is the temperature under which every choice takes the first option.
const greedyBelow = 0.5

// Model implements debate.TurnGenerator.
type Model struct {
	temperature float64
	facts       Facts
}

var _ debate.TurnGenerator = (*Model)(nil)

// New returns a Model over the default facts bank.
func New(temperature float64) *Model {
	return NewWithFacts(temperature, DefaultFacts())
}

// NewWithFacts returns a Model over a custom facts bank.
func NewWithFacts(temperature float64, facts Facts) *Model {
	return &Model{temperature: temperature, facts: facts}
}

func (m *Model) choice(r *rand.Rand, options []string) string {
	if len(options) == 0 {
		return ""
	}
	if m.temperature < greedyBelow {
		return options[0]
	}
	return options[int(r.Float64()*float64(len(options)))]
}

func shuffle(r *rand.Rand, items []string) []string {
	out := append([]string(nil), items...)
	r.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

func take(items []string, n int) []string {
	if len(items) < n {
		return items
	}
	return items[:n]
}

func bullets(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "- " + item
	}
	return strings.Join(lines, "\n")
}

func numbered(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = fmt.Sprintf("%d. %s", i+1, item)
	}
	return strings.Join(lines, "\n")
}

func sections(parts ...string) string {
	return strings.Join(parts, "\n\n")
}
