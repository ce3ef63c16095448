// Package output persists debate runs: the per-run bundle, the cross-run
// summary, the excerpt card and the coloured terminal stream.
package output

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/lorenzotomasdiez/council/internal/debate"
)

// Bundle file names inside a run directory.
const (
	TranscriptMarkdown = "transcript.md"
	TranscriptJSON     = "transcript.json"
	ScoresJSON         = "scores.json"
	RunLog             = "debate.log"
)

// Writer writes one run's bundle into its directory.
type Writer struct {
	dir    string
	mu     sync.Mutex
	logErr error
}

// NewWriter returns a writer rooted at dir. The directory is created on the
// first write.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Dir is the run directory.
func (w *Writer) Dir() string { return w.dir }

// Log appends a timestamped line to debate.log immediately, so a crashed run
// still leaves its trail. The first failure is kept and reported by WriteRun.
func (w *Writer) Log(format string, args ...any) {
	w.mu.Lock()
	defer w.mu.Unlock()

	line := fmt.Sprintf("%s %s\n", time.Now().Format(time.RFC3339), fmt.Sprintf(format, args...))
	if err := w.appendLog(line); err != nil && w.logErr == nil {
		w.logErr = err
	}
}

func (w *Writer) appendLog(line string) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(filepath.Join(w.dir, RunLog), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(line); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// LogTurn records a completed stage in debate.log.
func (w *Writer) LogTurn(turn debate.Turn) {
	w.Log("round %d %s by %s (%s): %d chars", turn.Round, turn.Stage, turn.Speaker, turn.Role, len(turn.Content))
}

// WriteRun writes transcript.md, transcript.json and scores.json.
func (w *Writer) WriteRun(r *debate.Result) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return &debate.SinkError{Sink: "files", Path: w.dir, Err: err}
	}
	if err := w.WriteMarkdown(r); err != nil {
		return err
	}
	if err := w.WriteJSON(r); err != nil {
		return err
	}
	if err := w.WriteScores(r); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.logErr != nil {
		return &debate.SinkError{Sink: "files", Path: filepath.Join(w.dir, RunLog), Err: w.logErr}
	}
	return nil
}

// Persist lets a Writer act as a batch sink.
func (w *Writer) Persist(_ context.Context, _ string, r *debate.Result) error {
	return w.WriteRun(r)
}

// WriteMarkdown writes the human-readable transcript.
func (w *Writer) WriteMarkdown(r *debate.Result) error {
	return w.writeFile(TranscriptMarkdown, []byte(RenderMarkdown(r)))
}

// WriteJSON writes the full result bundle.
func (w *Writer) WriteJSON(r *debate.Result) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return &debate.SinkError{Sink: "files", Path: filepath.Join(w.dir, TranscriptJSON), Err: err}
	}
	return w.writeFile(TranscriptJSON, data)
}

// WriteScores writes the rubric as metric/score rows.
func (w *Writer) WriteScores(r *debate.Result) error {
	data, err := json.MarshalIndent(r.Scores.Metrics(), "", "  ")
	if err != nil {
		return &debate.SinkError{Sink: "files", Path: filepath.Join(w.dir, ScoresJSON), Err: err}
	}
	return w.writeFile(ScoresJSON, data)
}

func (w *Writer) writeFile(name string, data []byte) error {
	path := filepath.Join(w.dir, name)
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return &debate.SinkError{Sink: "files", Path: w.dir, Err: err}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &debate.SinkError{Sink: "files", Path: path, Err: err}
	}
	return nil
}

// ReadBundle loads a transcript.json written by WriteJSON.
func ReadBundle(path string) (*debate.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("output: read bundle: %w", err)
	}
	var r debate.Result
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("output: parse bundle %s: %w", path, err)
	}
	return &r, nil
}

// BundlePath is where a run's transcript.json lives under base.
func BundlePath(base, key string) string {
	return filepath.Join(base, key, TranscriptJSON)
}
