package main

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/lorenzotomasdiez/council/internal/history"
	"github.com/lorenzotomasdiez/council/internal/output"
)

func newHistoryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List runs recorded in the history database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			runID, _ := cmd.Flags().GetString("run")

			if a.cfg.HistoryDB == "" {
				return errors.New("history: no database configured (set --history-db or COUNCIL_HISTORY_DB)")
			}
			store, err := history.Open(a.cfg.HistoryDB)
			if err != nil {
				return err
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			if runID != "" {
				rec, err := store.Get(cmd.Context(), runID)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Run %s · batch %s · %s\n\n", rec.RunID, rec.BatchID, rec.CreatedAt.Local().Format(time.DateTime))
				for _, turn := range rec.Result.Transcript {
					output.PrintTurn(out, turn)
				}
				fmt.Fprintln(out)
				output.PrintVerdict(out, rec.Result)
				return nil
			}

			records, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(out, "No runs recorded yet.")
				return nil
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "WHEN\tRUN\tCONFIG\tMODE\tCONSENSUS\tAVG\tOPEN\tDECISION")
			for _, rec := range records {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%t\t%.2f\t%s\t%s\n",
					rec.CreatedAt.Local().Format(time.DateTime), rec.RunID, rec.ConfigKey, rec.Mode,
					rec.Consensus, rec.AvgScore, strings.Join(rec.Unresolved, "; "), rec.Decision)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().Int("limit", 20, "Maximum runs to list (0 for all)")
	cmd.Flags().String("run", "", "Show the full transcript of one run id")
	return cmd
}
