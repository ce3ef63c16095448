// Package issues tracks proposal weaknesses raised during a debate and their
// resolution. Every function is pure: callers own the slice and receive a new
// one back.
package issues

import "sort"

// Status is the lifecycle state of an issue.
type Status string

const (
	StatusOpen     Status = "open"
	StatusResolved Status = "resolved"
)

// Issue is a single registry record.
type Issue struct {
	Key           string `json:"key"`
	Description   string `json:"description"`
	RaisedBy      string `json:"raised_by"`
	RaisedRound   int    `json:"raised_round"`
	ResolvedRound *int   `json:"resolved_round"`
	Status        Status `json:"status"`
}

// IsOpen reports whether the issue still blocks convergence.
func (i Issue) IsOpen() bool { return i.Status == StatusOpen }

// Candidate is an issue proposed by a generator before it is stamped.
type Candidate struct {
	Key         string `yaml:"key" json:"key"`
	Description string `yaml:"description" json:"description"`
}

// Raise returns at most limit new open issues built from candidates, skipping
// keys already present in existing and repeated keys within candidates.
func Raise(candidates []Candidate, existing map[string]bool, limit int, raisedBy string, round int) []Issue {
	if limit <= 0 {
		return nil
	}
	seen := make(map[string]bool, len(existing)+len(candidates))
	for k := range existing {
		seen[k] = true
	}

	var raised []Issue
	for _, c := range candidates {
		if len(raised) >= limit {
			break
		}
		if seen[c.Key] {
			continue
		}
		seen[c.Key] = true
		raised = append(raised, Issue{
			Key:         c.Key,
			Description: c.Description,
			RaisedBy:    raisedBy,
			RaisedRound: round,
			Status:      StatusOpen,
		})
	}
	return raised
}

// Resolve returns a copy of list where open issues whose key is in keys are
// marked resolved at round. Resolved and unmatched issues pass through.
func Resolve(list []Issue, keys []string, round int) []Issue {
	want := make(map[string]bool, len(keys))
	for _, k := range keys {
		want[k] = true
	}
	out := Clone(list)
	for i := range out {
		if !want[out[i].Key] || !out[i].IsOpen() {
			continue
		}
		r := round
		out[i].Status = StatusResolved
		out[i].ResolvedRound = &r
	}
	return out
}

// OpenKeys returns the sorted keys of open issues.
func OpenKeys(list []Issue) []string {
	var keys []string
	for _, issue := range list {
		if issue.IsOpen() {
			keys = append(keys, issue.Key)
		}
	}
	sort.Strings(keys)
	return keys
}

// Keys returns the set of every key in list regardless of status.
func Keys(list []Issue) map[string]bool {
	keys := make(map[string]bool, len(list))
	for _, issue := range list {
		keys[issue.Key] = true
	}
	return keys
}

// Find looks up an issue by key.
func Find(list []Issue, key string) (Issue, bool) {
	for _, issue := range list {
		if issue.Key == key {
			return issue, true
		}
	}
	return Issue{}, false
}

// Open returns the open issues in insertion order.
func Open(list []Issue) []Issue {
	var open []Issue
	for _, issue := range list {
		if issue.IsOpen() {
			open = append(open, issue)
		}
	}
	return open
}

// Count returns the number of open and resolved issues.
func Count(list []Issue) (open, resolved int) {
	for _, issue := range list {
		if issue.IsOpen() {
			open++
		} else {
			resolved++
		}
	}
	return open, resolved
}

// Clone deep-copies list so callers can never alias registry records.
func Clone(list []Issue) []Issue {
	if list == nil {
		return nil
	}
	out := make([]Issue, len(list))
	for i, issue := range list {
		if issue.ResolvedRound != nil {
			r := *issue.ResolvedRound
			issue.ResolvedRound = &r
		}
		out[i] = issue
	}
	return out
}
