package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lorenzotomasdiez/council/internal/config"
	"github.com/lorenzotomasdiez/council/internal/logging"
	"github.com/lorenzotomasdiez/council/internal/preset"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app carries what every subcommand needs once flags are parsed.
type app struct {
	cfg     *config.Config
	logger  *logging.Logger
	catalog *preset.Catalog
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "council",
		Short: "Scripted multi-role debate engine",
		Long: "Runs deterministic council debates: a researcher argues, a critic raises issues, " +
			"an optional devil's advocate pushes back, the researcher revises, an optional synthesizer " +
			"tracks convergence and a judge scores the rubric and renders a verdict.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.close()
		},
	}

	pf := root.PersistentFlags()
	pf.String("output", "results", "Directory for run bundles and the summary")
	pf.String("log-level", "info", "Log level: debug, info, warn or error")
	pf.String("log-dir", "", "Write JSON logs to <dir>/council.log instead of stderr")
	pf.String("history-db", "", "SQLite database recording every completed run")
	pf.Int("parallel", 1, "Number of debates to run at once")
	pf.String("presets-file", "", "YAML preset catalog to use instead of the built-in one")

	root.AddCommand(newRunCmd(a))
	root.AddCommand(newPresetsCmd(a))
	root.AddCommand(newExcerptCmd(a))
	root.AddCommand(newBrowseCmd(a))
	root.AddCommand(newHistoryCmd(a))
	return root
}

func (a *app) load(cmd *cobra.Command) error {
	if err := config.LoadDotEnv(".env"); err != nil {
		return err
	}
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}
	a.cfg = cfg

	if cfg.LogDir == "" {
		a.logger = logging.New(cmd.ErrOrStderr(), cfg.LogLevel)
	} else {
		a.logger, err = logging.NewLogger(cfg.LogDir, cfg.LogLevel)
		if err != nil {
			return err
		}
	}

	if cfg.PresetsFile == "" {
		a.catalog = preset.Default()
		return nil
	}
	a.catalog, err = preset.LoadFile(cfg.PresetsFile)
	return err
}

func (a *app) close() error {
	if a.logger == nil {
		return nil
	}
	return a.logger.Close()
}
