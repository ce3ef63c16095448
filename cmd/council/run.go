package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/lorenzotomasdiez/council/internal/batch"
	"github.com/lorenzotomasdiez/council/internal/debate"
	"github.com/lorenzotomasdiez/council/internal/history"
	"github.com/lorenzotomasdiez/council/internal/output"
)

func newRunCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [keys...]",
		Short: "Run debate presets (all of them when no key is given)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDebates(cmd, args)
		},
	}
	cmd.Flags().StringSlice("configs", nil, "Preset keys to run, comma separated")
	cmd.Flags().BoolP("quiet", "q", false, "Only print the summary")
	return cmd
}

func (a *app) runDebates(cmd *cobra.Command, args []string) error {
	configs, _ := cmd.Flags().GetStringSlice("configs")
	quiet, _ := cmd.Flags().GetBool("quiet")

	cfgs, err := a.catalog.Select(append(args, configs...))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	out := cmd.OutOrStdout()
	runner := &batch.Runner{
		OutputDir: a.cfg.OutputDir,
		Parallel:  a.cfg.Parallel,
		Logger:    a.logger,
	}
	if a.cfg.HistoryDB != "" {
		store, err := history.Open(a.cfg.HistoryDB)
		if err != nil {
			return err
		}
		defer store.Close()
		runner.Sinks = append(runner.Sinks, store)
	}
	if !quiet {
		runner.OnStart = func(cfg debate.Config) { output.PrintRunHeader(out, cfg) }
		runner.OnStage = func(cfg debate.Config, n debate.Node) { output.PrintStage(out, cfg.Key, n) }
		runner.OnTurn = func(_ debate.Config, t debate.Turn) { output.PrintTurn(out, t) }
		runner.OnResult = func(r *debate.Result) { output.PrintVerdict(out, r) }
	}

	report, err := runner.Run(ctx, cfgs)
	if report == nil {
		return err
	}

	output.PrintSummary(out, report.Summary)
	fmt.Fprintf(out, "\nResults written to %s (batch %s)\n", a.cfg.OutputDir, report.BatchID)
	if err != nil {
		for _, e := range unjoin(err) {
			output.PrintWarning(cmd.ErrOrStderr(), "%v", e)
		}
		return fmt.Errorf("run: %d output sink(s) failed", len(unjoin(err)))
	}
	return nil
}

func unjoin(err error) []error {
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		return j.Unwrap()
	}
	return []error{err}
}
