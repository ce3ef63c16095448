package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/lorenzotomasdiez/council/internal/debate"
	"github.com/lorenzotomasdiez/council/internal/debate/rubric"
)

// Summary file names in the output root.
const (
	SummaryJSON = "summary.json"
	SummaryCSV  = "summary.csv"
)

// SummaryRow is one run in the cross-run comparison.
type SummaryRow struct {
	Config           string   `json:"config"`
	Rounds           int      `json:"rounds"`
	Agents           string   `json:"agents"`
	Temperature      float64  `json:"temperature"`
	Decision         string   `json:"decision"`
	Consensus        bool     `json:"consensus"`
	AvgScore         float64  `json:"avg_score"`
	ScoreEvidence    int      `json:"score_evidence"`
	ScoreFeasibility int      `json:"score_feasibility"`
	ScoreRisks       int      `json:"score_risks"`
	ScoreClarity     int      `json:"score_clarity"`
	UnresolvedIssues []string `json:"unresolved_issues"`
}

var csvHeader = []string{
	"config", "rounds", "agents", "temperature", "decision", "consensus", "avg_score",
	"score_evidence", "score_feasibility", "score_risks", "score_clarity", "unresolved_issues",
}

// Summarize builds one row per result, in input order.
func Summarize(results []*debate.Result) []SummaryRow {
	rows := make([]SummaryRow, 0, len(results))
	for _, r := range results {
		unresolved := r.Unresolved()
		if unresolved == nil {
			unresolved = []string{}
		}
		rows = append(rows, SummaryRow{
			Config:           r.Config.Key,
			Rounds:           r.Config.Rounds,
			Agents:           string(r.Config.Mode),
			Temperature:      r.Config.Temperature,
			Decision:         r.Decision,
			Consensus:        r.ConsensusReached,
			AvgScore:         math.Round(r.Scores.Mean()*100) / 100,
			ScoreEvidence:    r.Scores[rubric.Evidence],
			ScoreFeasibility: r.Scores[rubric.Feasibility],
			ScoreRisks:       r.Scores[rubric.Risks],
			ScoreClarity:     r.Scores[rubric.Clarity],
			UnresolvedIssues: unresolved,
		})
	}
	return rows
}

// WriteSummary writes summary.json and summary.csv into dir.
func WriteSummary(dir string, rows []SummaryRow) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &debate.SinkError{Sink: "summary", Path: dir, Err: err}
	}

	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return &debate.SinkError{Sink: "summary", Path: filepath.Join(dir, SummaryJSON), Err: err}
	}
	if err := os.WriteFile(filepath.Join(dir, SummaryJSON), data, 0o644); err != nil {
		return &debate.SinkError{Sink: "summary", Path: filepath.Join(dir, SummaryJSON), Err: err}
	}

	csvData, err := SummaryCSVBytes(rows)
	if err != nil {
		return &debate.SinkError{Sink: "summary", Path: filepath.Join(dir, SummaryCSV), Err: err}
	}
	if err := os.WriteFile(filepath.Join(dir, SummaryCSV), csvData, 0o644); err != nil {
		return &debate.SinkError{Sink: "summary", Path: filepath.Join(dir, SummaryCSV), Err: err}
	}
	return nil
}

// SummaryCSVBytes renders rows as CSV. Commas in the decision become ';'
// and unresolved keys are ';'-joined.
func SummaryCSVBytes(rows []SummaryRow) ([]byte, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	if err := cw.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, row := range rows {
		record := []string{
			row.Config,
			strconv.Itoa(row.Rounds),
			row.Agents,
			FormatTemperature(row.Temperature),
			strings.ReplaceAll(row.Decision, ",", ";"),
			strconv.FormatBool(row.Consensus),
			strconv.FormatFloat(row.AvgScore, 'f', -1, 64),
			strconv.Itoa(row.ScoreEvidence),
			strconv.Itoa(row.ScoreFeasibility),
			strconv.Itoa(row.ScoreRisks),
			strconv.Itoa(row.ScoreClarity),
			strings.Join(row.UnresolvedIssues, ";"),
		}
		if err := cw.Write(record); err != nil {
			return nil, err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
