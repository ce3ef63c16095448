package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lorenzotomasdiez/council/internal/debate"
	"github.com/lorenzotomasdiez/council/internal/output"
)

func newExcerptCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "excerpt <key>",
		Short: "Render a short excerpt card from a finished run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			label, _ := cmd.Flags().GetString("label")
			width, _ := cmd.Flags().GetInt("width")
			outPath, _ := cmd.Flags().GetString("out")

			r, err := output.ReadBundle(output.BundlePath(a.cfg.OutputDir, args[0]))
			if err != nil {
				return err
			}
			if label == "" {
				label = defaultLabel(r.Config)
			}
			lines := output.BuildExcerpt(r, label, width)

			if outPath == "" {
				fmt.Fprintln(cmd.OutOrStdout(), output.RenderExcerpt(lines))
				return nil
			}
			if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
				return fmt.Errorf("excerpt: %w", err)
			}
			if err := os.WriteFile(outPath, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
				return fmt.Errorf("excerpt: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Generated %s\n", outPath)
			return nil
		},
	}
	cmd.Flags().String("label", "", "Card title (default derived from the run config)")
	cmd.Flags().Int("width", output.DefaultExcerptWidth, "Wrap width for snippets")
	cmd.Flags().String("out", "", "Write plain text to this file instead of printing the card")
	return cmd
}

func defaultLabel(cfg debate.Config) string {
	n := 3
	if cfg.Mode == debate.ModeReduced {
		n = 2
	}
	if cfg.IncludeSynthesizer {
		n++
	}
	if cfg.IncludeDevil {
		n++
	}
	agents := fmt.Sprintf("%d agents", n)
	if n == 2 {
		agents += " (Researcher vs Critic-Judge)"
	}
	return fmt.Sprintf("%s · %s (temp=%s)", cfg.Key, agents, output.FormatTemperature(cfg.Temperature))
}
