package rubric

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge_NeverClears(t *testing.T) {
	existing := Signals{Evidence: true, Feasibility: false, Risks: false, Clarity: false}

	merged := Merge(existing, Signals{Evidence: false, Risks: true})

	assert.True(t, merged[Evidence])
	assert.True(t, merged[Risks])
	assert.False(t, merged[Feasibility])
	assert.False(t, merged[Clarity])
	// input untouched
	assert.False(t, existing[Risks])
}

func TestSignalsValidate(t *testing.T) {
	assert.NoError(t, Signals{Evidence: true}.Validate())
	assert.Error(t, Signals{"vibes": true}.Validate())
}

func TestScore(t *testing.T) {
	tests := []struct {
		name     string
		signals  Signals
		open     int
		resolved int
		want     Scores
	}{
		{
			name:    "no signals no issues",
			signals: NewSignals(),
			want:    Scores{Evidence: 3, Feasibility: 3, Risks: 3, Clarity: 3},
		},
		{
			name:    "all signals",
			signals: Signals{Evidence: true, Feasibility: true, Risks: true, Clarity: true},
			want:    Scores{Evidence: 4, Feasibility: 4, Risks: 4, Clarity: 4},
		},
		{
			name:    "open issue penalty floors at two",
			signals: NewSignals(),
			open:    3,
			want:    Scores{Evidence: 3, Feasibility: 3, Risks: 2, Clarity: 2},
		},
		{
			name:     "resolved bonus",
			signals:  Signals{Evidence: true, Feasibility: true, Risks: true, Clarity: true},
			resolved: 2,
			want:     Scores{Evidence: 4, Feasibility: 5, Risks: 4, Clarity: 4},
		},
		{
			name:     "penalty and bonus together",
			signals:  Signals{Evidence: true, Feasibility: true, Risks: true},
			open:     1,
			resolved: 4,
			want:     Scores{Evidence: 4, Feasibility: 5, Risks: 3, Clarity: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.signals, tt.open, tt.resolved)
			assert.Equal(t, tt.want, got)
			require.NoError(t, got.Validate())
		})
	}
}

func TestConsensus(t *testing.T) {
	high := Scores{Evidence: 4, Feasibility: 4, Risks: 3, Clarity: 3}
	low := Scores{Evidence: 4, Feasibility: 3, Risks: 3, Clarity: 3}

	assert.True(t, Consensus(0, high))
	assert.False(t, Consensus(1, high), "open issues block consensus")
	assert.False(t, Consensus(0, low), "mean 3.25 is below threshold")
}

func TestScoresValidate(t *testing.T) {
	assert.Error(t, Scores{Evidence: 3}.Validate())
	assert.Error(t, Scores{Evidence: 6, Feasibility: 3, Risks: 3, Clarity: 3}.Validate())
	assert.Error(t, Scores{Evidence: 3, Feasibility: 3, Risks: 3, Clarity: 3, "x": 1}.Validate())
}

func TestMetricsOrder(t *testing.T) {
	metrics := Scores{Evidence: 4, Feasibility: 5, Risks: 2, Clarity: 3}.Metrics()

	require.Len(t, metrics, 4)
	assert.Equal(t, Metric{Metric: Evidence, Score: 4}, metrics[0])
	assert.Equal(t, Metric{Metric: Clarity, Score: 3}, metrics[3])
}

func TestVerdictStrings(t *testing.T) {
	assert.True(t, IsApproval(Verdict(true)))
	assert.False(t, IsApproval(Verdict(false)))
	assert.Contains(t, Verdict(false), "CONDITIONAL")
	assert.Equal(t, "Convergence achieved; no open blockers remain.", ConvergenceView(true))
	assert.Equal(t, "Feasibility", Feasibility.Title())
}
