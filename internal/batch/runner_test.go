package batch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lorenzotomasdiez/council/internal/debate"
	"github.com/lorenzotomasdiez/council/internal/output"
	"github.com/lorenzotomasdiez/council/internal/preset"
)

type memorySink struct {
	mu      sync.Mutex
	batches map[string]int
	keys    []string
	err     error
}

func (m *memorySink) Persist(_ context.Context, batchID string, r *debate.Result) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return &debate.SinkError{Sink: "memory", Err: m.err}
	}
	if m.batches == nil {
		m.batches = map[string]int{}
	}
	m.batches[batchID]++
	m.keys = append(m.keys, r.Config.Key)
	return nil
}

func allPresets(t *testing.T) []debate.Config {
	t.Helper()
	cfgs, err := preset.Default().Select(nil)
	require.NoError(t, err)
	return cfgs
}

func TestRunWritesBundlesAndSummary(t *testing.T) {
	dir := t.TempDir()
	sink := &memorySink{}
	var turns int
	r := &Runner{OutputDir: dir, Sinks: []Sink{sink}, OnTurn: func(debate.Config, debate.Turn) { turns++ }}

	report, err := r.Run(context.Background(), allPresets(t))
	require.NoError(t, err)

	require.Len(t, report.Results, 3)
	assert.Equal(t, "baseline_full_lowtemp", report.Results[0].Config.Key)
	assert.Equal(t, "toggle_high_temp_devil", report.Results[2].Config.Key)
	require.Len(t, report.Summary, 3)
	assert.Equal(t, 3, sink.batches[report.BatchID])

	total := 0
	for _, res := range report.Results {
		total += len(res.Transcript)
		for _, name := range []string{output.TranscriptMarkdown, output.TranscriptJSON, output.ScoresJSON, output.RunLog} {
			assert.FileExists(t, filepath.Join(dir, res.Config.Key, name))
		}
	}
	assert.Equal(t, total, turns)
	assert.FileExists(t, filepath.Join(dir, output.SummaryJSON))
	assert.FileExists(t, filepath.Join(dir, output.SummaryCSV))
}

func TestParallelMatchesSequential(t *testing.T) {
	seq, err := (&Runner{Parallel: 1}).Run(context.Background(), allPresets(t))
	require.NoError(t, err)
	par, err := (&Runner{Parallel: 3}).Run(context.Background(), allPresets(t))
	require.NoError(t, err)

	require.Len(t, par.Results, len(seq.Results))
	for i := range seq.Results {
		assert.Equal(t, seq.Results[i].Config.Key, par.Results[i].Config.Key)
		assert.Equal(t, seq.Results[i].Transcript, par.Results[i].Transcript)
		assert.Equal(t, seq.Results[i].Scores, par.Results[i].Scores)
	}
	assert.NotEqual(t, seq.BatchID, par.BatchID)
}

func TestInvalidConfigFailsBeforeAnyStage(t *testing.T) {
	cfgs := allPresets(t)
	bad := cfgs[0]
	bad.Key = "broken"
	bad.Rounds = 0
	cfgs = append(cfgs, bad)

	stages := 0
	r := &Runner{OutputDir: t.TempDir(), OnStage: func(debate.Config, debate.Node) { stages++ }}

	_, err := r.Run(context.Background(), cfgs)

	require.Error(t, err)
	assert.True(t, errors.Is(err, debate.ErrConfiguration))
	assert.Zero(t, stages)
	entries, _ := os.ReadDir(r.OutputDir)
	assert.Empty(t, entries, "nothing is written for a rejected batch")
}

func TestDuplicateKeysRejected(t *testing.T) {
	cfgs := allPresets(t)

	_, err := (&Runner{}).Run(context.Background(), []debate.Config{cfgs[0], cfgs[0]})

	assert.True(t, errors.Is(err, debate.ErrConfiguration))
}

func TestEmptyBatchRejected(t *testing.T) {
	_, err := (&Runner{}).Run(context.Background(), nil)

	assert.True(t, errors.Is(err, debate.ErrConfiguration))
}

func TestSinkFailureKeepsResults(t *testing.T) {
	sink := &memorySink{err: errors.New("disk full")}
	var seen []string
	r := &Runner{Sinks: []Sink{sink}, OnResult: func(res *debate.Result) { seen = append(seen, res.Config.Key) }}

	report, err := r.Run(context.Background(), allPresets(t)[:2])

	require.Error(t, err)
	assert.True(t, errors.Is(err, debate.ErrOutputSink))
	require.NotNil(t, report)
	assert.Len(t, report.Results, 2)
	assert.Len(t, seen, 2)
	assert.NotEmpty(t, report.Results[0].Decision)
}

func TestCancelledContextAbortsBatch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := (&Runner{}).Run(ctx, allPresets(t))

	assert.Nil(t, report)
	assert.True(t, errors.Is(err, context.Canceled))
}
