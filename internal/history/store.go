// Package history keeps a SQLite record of completed debate runs so results
// can be compared across invocations.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/lorenzotomasdiez/council/internal/debate"
)

// ErrNotFound is returned by Get for an unknown run id.
var ErrNotFound = errors.New("history: run not found")

// Record is one stored run. Result is only populated by Get.
type Record struct {
	RunID       string
	BatchID     string
	ConfigKey   string
	Title       string
	Mode        debate.Mode
	Rounds      int
	Temperature float64
	Decision    string
	Consensus   bool
	AvgScore    float64
	Unresolved  []string
	CreatedAt   time.Time
	Result      *debate.Result
}

// Store is a SQLite-backed run history.
type Store struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("history: create directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("history: open %s: %w", path, err)
	}
	// parallel batch runs share one writer
	db.SetMaxOpenConns(1)

	s := &Store{db: db, path: path, now: time.Now}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		run_id TEXT PRIMARY KEY,
		batch_id TEXT NOT NULL,
		config_key TEXT NOT NULL,
		title TEXT NOT NULL,
		mode TEXT NOT NULL,
		rounds INTEGER NOT NULL,
		temperature REAL NOT NULL,
		decision TEXT NOT NULL,
		consensus INTEGER NOT NULL,
		avg_score REAL NOT NULL,
		unresolved TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		bundle TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
	CREATE INDEX IF NOT EXISTS idx_runs_config ON runs(config_key);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("history: migrate: %w", err)
	}
	return nil
}

// Persist stores a completed run. It satisfies the batch sink contract.
func (s *Store) Persist(ctx context.Context, batchID string, r *debate.Result) error {
	bundle, err := json.Marshal(r)
	if err != nil {
		return &debate.SinkError{Sink: "history", Path: s.path, Err: err}
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO runs (run_id, batch_id, config_key, title, mode, rounds, temperature, decision,
		 consensus, avg_score, unresolved, created_at, bundle)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, batchID, r.Config.Key, r.Config.Title, string(r.Config.Mode), r.Config.Rounds,
		r.Config.Temperature, r.Decision, r.ConsensusReached, math.Round(r.Scores.Mean()*100)/100,
		strings.Join(r.Unresolved(), ";"), s.now().UTC().Format(time.RFC3339Nano), string(bundle),
	)
	if err != nil {
		return &debate.SinkError{Sink: "history", Path: s.path, Err: err}
	}
	return nil
}

const recordColumns = `run_id, batch_id, config_key, title, mode, rounds, temperature, decision,
	consensus, avg_score, unresolved, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner, extra ...any) (*Record, error) {
	var (
		rec        Record
		mode       string
		unresolved string
		createdAt  string
	)
	dest := append([]any{
		&rec.RunID, &rec.BatchID, &rec.ConfigKey, &rec.Title, &mode, &rec.Rounds, &rec.Temperature,
		&rec.Decision, &rec.Consensus, &rec.AvgScore, &unresolved, &createdAt,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	rec.Mode = debate.Mode(mode)
	if unresolved != "" {
		rec.Unresolved = strings.Split(unresolved, ";")
	}
	t, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("history: run %s: bad timestamp %q: %w", rec.RunID, createdAt, err)
	}
	rec.CreatedAt = t
	return &rec, nil
}

// List returns the most recent runs first. A non-positive limit returns all.
func (s *Store) List(ctx context.Context, limit int) ([]*Record, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+recordColumns+` FROM runs ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("history: list runs: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("history: list runs: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history: list runs: %w", err)
	}
	return records, nil
}

// Get loads one run including its full result bundle.
func (s *Store) Get(ctx context.Context, runID string) (*Record, error) {
	var bundle string
	row := s.db.QueryRowContext(ctx, `SELECT `+recordColumns+`, bundle FROM runs WHERE run_id = ?`, runID)
	rec, err := scanRecord(row, &bundle)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, runID)
	}
	if err != nil {
		return nil, fmt.Errorf("history: get %s: %w", runID, err)
	}

	var result debate.Result
	if err := json.Unmarshal([]byte(bundle), &result); err != nil {
		return nil, fmt.Errorf("history: decode %s: %w", runID, err)
	}
	rec.Result = &result
	return rec, nil
}
