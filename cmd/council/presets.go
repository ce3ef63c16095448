package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lorenzotomasdiez/council/internal/output"
)

func newPresetsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the available debate presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "KEY\tROUNDS\tTEMP\tMODE\tSYNTH\tDEVIL\tSEED\tTITLE")
			for _, key := range a.catalog.Keys() {
				cfg, _ := a.catalog.Get(key)
				fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\t%d\t%s\n",
					cfg.Key, cfg.Rounds, output.FormatTemperature(cfg.Temperature), cfg.Mode,
					onOff(cfg.IncludeSynthesizer), onOff(cfg.IncludeDevil), cfg.Seed, cfg.Title)
			}
			return tw.Flush()
		},
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
