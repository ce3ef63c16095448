// Package rubric accumulates the boolean signals reported by debate stages and
// turns them into per-dimension scores and a consensus decision.
package rubric

import (
	"fmt"
	"sort"
	"strings"
)

// Dimension is one of the fixed evaluation axes.
type Dimension string

const (
	Evidence    Dimension = "evidence"
	Feasibility Dimension = "feasibility"
	Risks       Dimension = "risks"
	Clarity     Dimension = "clarity"
)

// Dimensions lists every rubric axis in reporting order.
var Dimensions = []Dimension{Evidence, Feasibility, Risks, Clarity}

// Title returns the capitalized dimension name used in reports.
func (d Dimension) Title() string {
	if d == "" {
		return ""
	}
	return strings.ToUpper(string(d[:1])) + string(d[1:])
}

func known(d Dimension) bool {
	for _, k := range Dimensions {
		if k == d {
			return true
		}
	}
	return false
}

// Signals maps a dimension to whether some stage has addressed it.
type Signals map[Dimension]bool

// NewSignals returns a set with every dimension false.
func NewSignals() Signals {
	s := make(Signals, len(Dimensions))
	for _, d := range Dimensions {
		s[d] = false
	}
	return s
}

// Merge returns existing with every true flag from update switched on.
// Flags are never cleared.
func Merge(existing, update Signals) Signals {
	out := make(Signals, len(existing))
	for d, v := range existing {
		out[d] = v
	}
	for d, v := range update {
		if v {
			out[d] = true
		}
	}
	return out
}

// Validate rejects dimensions outside the rubric.
func (s Signals) Validate() error {
	for d := range s {
		if !known(d) {
			return fmt.Errorf("rubric: unknown signal dimension %q", d)
		}
	}
	return nil
}

// Set returns the dimensions currently true, in rubric order.
func (s Signals) Set() []Dimension {
	var out []Dimension
	for _, d := range Dimensions {
		if s[d] {
			out = append(out, d)
		}
	}
	return out
}

// Scores holds the numeric rubric, 1 to 5 per dimension.
type Scores map[Dimension]int

// Metric is a single scores.json row.
type Metric struct {
	Metric Dimension `json:"metric"`
	Score  int       `json:"score"`
}

// Mean is the arithmetic mean across the four dimensions.
func (s Scores) Mean() float64 {
	total := 0
	for _, d := range Dimensions {
		total += s[d]
	}
	return float64(total) / float64(len(Dimensions))
}

// Metrics returns the scores in rubric order.
func (s Scores) Metrics() []Metric {
	out := make([]Metric, 0, len(Dimensions))
	for _, d := range Dimensions {
		out = append(out, Metric{Metric: d, Score: s[d]})
	}
	return out
}

// Validate requires exactly the rubric dimensions with values in 1..5.
func (s Scores) Validate() error {
	for d := range s {
		if !known(d) {
			return fmt.Errorf("rubric: unknown score dimension %q", d)
		}
	}
	var missing []string
	for _, d := range Dimensions {
		v, ok := s[d]
		if !ok {
			missing = append(missing, string(d))
			continue
		}
		if v < 1 || v > 5 {
			return fmt.Errorf("rubric: %s score %d outside 1..5", d, v)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("rubric: missing scores for %s", strings.Join(missing, ", "))
	}
	return nil
}

const (
	baseScore  = 3
	maxScore   = 5
	floorScore = 2
)

// Score computes the rubric. Each dimension starts at 3 with +1 for a set
// signal (cap 5); any open issue then costs risks and clarity 1 each (floor 2);
// two or more resolved issues then add 1 to feasibility (cap 5).
func Score(signals Signals, open, resolved int) Scores {
	scores := make(Scores, len(Dimensions))
	for _, d := range Dimensions {
		v := baseScore
		if signals[d] {
			v++
		}
		scores[d] = min(v, maxScore)
	}
	if open > 0 {
		scores[Risks] = max(floorScore, scores[Risks]-1)
		scores[Clarity] = max(floorScore, scores[Clarity]-1)
	}
	if resolved >= 2 {
		scores[Feasibility] = min(maxScore, scores[Feasibility]+1)
	}
	return scores
}
