package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/joeydtaylor/tensilerig/pkg/builder"
)

func newSessionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List stored sessions",
		Args:  cobra.NoArgs,
		RunE:  runSessionsCmd,
	}
	cmd.Flags().BoolVar(&sessionsJSON, "json", false, "print as a JSON array")
	return cmd
}

func runSessionsCmd(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	store, err := openStore(cmd.Context(), s)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			logErrf("failed to close store: %v\n", cerr)
		}
	}()

	list, err := store.ListSessions(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}

	out := cmd.OutOrStdout()
	if sessionsJSON {
		if list == nil {
			list = []builder.SessionSummary{}
		}
		return builder.EncodeJSON(out, list, true)
	}
	if len(list) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "no sessions stored")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tID\tSTARTED\tDURATION\tMATERIAL\tPOINTS\tANALYSIS")
	for _, sum := range list {
		status := string(sum.Status)
		if status == "" {
			status = "-"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%d\t%s\n",
			sum.Number,
			sum.ID,
			sum.StartedAt.Local().Format(time.DateTime),
			sum.EndedAt.Sub(sum.StartedAt).Round(time.Millisecond),
			sum.Material,
			sum.Points,
			status,
		)
	}
	return tw.Flush()
}
