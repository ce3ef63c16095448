package generator

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/lorenzotomasdiez/council/internal/debate/issues"
)

//go:embed facts.yaml
var defaultFactsYAML []byte

// Facts is the scenario knowledge the generators draw their flavor text from.
type Facts struct {
	Snapshot            string             `yaml:"snapshot"`
	Evidence            []string           `yaml:"evidence"`
	Implementation      []string           `yaml:"implementation"`
	BaselineRisks       []string           `yaml:"baseline_risks"`
	IssueBank           []issues.Candidate `yaml:"issue_bank"`
	ContrarianIssue     issues.Candidate   `yaml:"contrarian_issue"`
	ClarifyingQuestions []string           `yaml:"clarifying_questions"`
	Mitigations         map[string]string  `yaml:"mitigations"`
}

// ParseFacts decodes a facts bank and checks it can feed every role.
func ParseFacts(data []byte) (Facts, error) {
	var f Facts
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Facts{}, fmt.Errorf("generator: parse facts: %w", err)
	}
	switch {
	case f.Snapshot == "":
		return Facts{}, fmt.Errorf("generator: facts: snapshot is required")
	case len(f.Implementation) < 2:
		return Facts{}, fmt.Errorf("generator: facts: need at least 2 implementation steps, got %d", len(f.Implementation))
	case f.ContrarianIssue.Key == "":
		return Facts{}, fmt.Errorf("generator: facts: contrarian_issue.key is required")
	}
	for i, c := range f.IssueBank {
		if c.Key == "" {
			return Facts{}, fmt.Errorf("generator: facts: issue_bank[%d]: key is required", i)
		}
	}
	return f, nil
}

// DefaultFacts returns the embedded Riverside Homes facts bank.
func DefaultFacts() Facts {
	f, err := ParseFacts(defaultFactsYAML)
	if err != nil {
		panic(err)
	}
	return f
}
