// Package batch runs a set of debate configurations, persists each result
// through the configured sinks and writes the cross-run summary.
package batch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/pool"

	"github.com/lorenzotomasdiez/council/internal/debate"
	"github.com/lorenzotomasdiez/council/internal/debate/generator"
	"github.com/lorenzotomasdiez/council/internal/logging"
	"github.com/lorenzotomasdiez/council/internal/output"
	"github.com/lorenzotomasdiez/council/internal/roster"
)

// Sink persists a completed run. A failing sink never invalidates the result.
type Sink interface {
	Persist(ctx context.Context, batchID string, r *debate.Result) error
}

// GeneratorFactory returns a fresh turn generator for one run.
type GeneratorFactory func(cfg debate.Config) debate.TurnGenerator

// Report is the outcome of a batch.
type Report struct {
	BatchID string
	Results []*debate.Result
	Summary []output.SummaryRow
}

// Runner executes configurations with bounded parallelism. Every run gets
// its own engine, state and random source; only callbacks are shared and
// they are serialized.
type Runner struct {
	Registry     *roster.Registry
	NewGenerator GeneratorFactory
	Sinks        []Sink
	// OutputDir, when set, receives each run bundle, its debate.log and the
	// summary files.
	OutputDir string
	Parallel  int
	Logger    *logging.Logger

	OnStart  func(cfg debate.Config)
	OnStage  func(cfg debate.Config, node debate.Node)
	OnTurn   func(cfg debate.Config, turn debate.Turn)
	OnResult func(r *debate.Result)

	mu sync.Mutex
}

type job struct {
	cfg    debate.Config
	engine *debate.Engine
	writer *output.Writer
}

// Run validates every configuration and builds its engine before any stage
// executes, then runs them. A debate failure cancels the batch and returns no
// report. Sink failures are joined into the returned error alongside a
// complete report.
func (r *Runner) Run(ctx context.Context, cfgs []debate.Config) (*Report, error) {
	if len(cfgs) == 0 {
		return nil, &debate.ConfigError{Field: "configs", Reason: "nothing to run"}
	}
	batchID := uuid.NewString()
	log := r.logger().WithBatch(batchID)

	jobs, err := r.prepare(cfgs)
	if err != nil {
		return nil, err
	}

	results := make([]*debate.Result, len(jobs))
	var (
		sinkMu   sync.Mutex
		sinkErrs []error
	)

	p := pool.New().WithContext(ctx).WithCancelOnError().WithMaxGoroutines(r.parallel())
	for i, j := range jobs {
		p.Go(func(ctx context.Context) error {
			r.emit(func() {
				if r.OnStart != nil {
					r.OnStart(j.cfg)
				}
			})
			log.Info("run started", "config", j.cfg.Key)

			res, err := j.engine.Run(ctx)
			if err != nil {
				if j.writer != nil {
					j.writer.Log("run failed: %v", err)
				}
				log.Error("run failed", "config", j.cfg.Key, "error", err)
				return fmt.Errorf("batch: %s: %w", j.cfg.Key, err)
			}
			results[i] = res
			log.Info("run finished", "config", j.cfg.Key, "run_id", res.RunID, "consensus", res.ConsensusReached)

			for _, sink := range r.sinks(j) {
				if err := sink.Persist(ctx, batchID, res); err != nil {
					log.Warn("sink failed", "config", j.cfg.Key, "error", err)
					sinkMu.Lock()
					sinkErrs = append(sinkErrs, err)
					sinkMu.Unlock()
				}
			}
			r.emit(func() {
				if r.OnResult != nil {
					r.OnResult(res)
				}
			})
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}

	report := &Report{BatchID: batchID, Results: results, Summary: output.Summarize(results)}
	if r.OutputDir != "" {
		if err := output.WriteSummary(r.OutputDir, report.Summary); err != nil {
			log.Warn("summary failed", "error", err)
			sinkErrs = append(sinkErrs, err)
		}
	}
	log.Info("batch finished", "runs", len(results), "sink_errors", len(sinkErrs))
	return report, errors.Join(sinkErrs...)
}

func (r *Runner) prepare(cfgs []debate.Config) ([]job, error) {
	registry := r.Registry
	if registry == nil {
		registry = roster.NewRegistry(roster.DefaultAgents())
	}
	newGen := r.NewGenerator
	if newGen == nil {
		newGen = func(cfg debate.Config) debate.TurnGenerator { return generator.New(cfg.Temperature) }
	}

	seen := make(map[string]bool, len(cfgs))
	jobs := make([]job, 0, len(cfgs))
	for _, cfg := range cfgs {
		if seen[cfg.Key] {
			return nil, &debate.ConfigError{Field: "configs", Reason: fmt.Sprintf("%s selected twice", cfg.Key)}
		}
		seen[cfg.Key] = true

		engine, err := debate.NewEngine(cfg, registry.Cast(cfg), newGen(cfg), r.logger())
		if err != nil {
			return nil, err
		}
		j := job{cfg: cfg, engine: engine}
		if r.OutputDir != "" {
			j.writer = output.NewWriter(filepath.Join(r.OutputDir, cfg.Key))
		}
		r.hook(j)
		jobs = append(jobs, j)
	}
	return jobs, nil
}

func (r *Runner) hook(j job) {
	j.engine.OnStage = func(n debate.Node) {
		if j.writer != nil {
			j.writer.Log("stage %s started", n)
		}
		r.emit(func() {
			if r.OnStage != nil {
				r.OnStage(j.cfg, n)
			}
		})
	}
	j.engine.OnTurn = func(t debate.Turn) {
		if j.writer != nil {
			j.writer.LogTurn(t)
		}
		r.emit(func() {
			if r.OnTurn != nil {
				r.OnTurn(j.cfg, t)
			}
		})
	}
}

func (r *Runner) sinks(j job) []Sink {
	if j.writer == nil {
		return r.Sinks
	}
	return append([]Sink{j.writer}, r.Sinks...)
}

func (r *Runner) emit(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn()
}

func (r *Runner) parallel() int {
	if r.Parallel < 1 {
		return 1
	}
	return r.Parallel
}

func (r *Runner) logger() *logging.Logger {
	if r.Logger == nil {
		return logging.NopLogger()
	}
	return r.Logger
}
