package main

import (
	"github.com/spf13/cobra"

	"github.com/lorenzotomasdiez/council/internal/browse"
	"github.com/lorenzotomasdiez/council/internal/output"
)

func newBrowseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "browse <key>",
		Short: "Page through a finished run's transcript",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			r, err := output.ReadBundle(output.BundlePath(a.cfg.OutputDir, args[0]))
			if err != nil {
				return err
			}
			return browse.Run(r)
		},
	}
}
