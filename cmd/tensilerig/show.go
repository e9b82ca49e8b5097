package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/joeydtaylor/tensilerig/pkg/builder"
)

// sessionView is a stored session without its points.
type sessionView struct {
	ID        string                  `json:"id"`
	Number    int                     `json:"number"`
	StartedAt time.Time               `json:"started_at"`
	EndedAt   time.Time               `json:"ended_at"`
	Metadata  map[string]string       `json:"metadata"`
	Points    int                     `json:"points"`
	Overruns  uint64                  `json:"overruns"`
	Analysis  *builder.AnalysisResult `json:"analysis,omitempty"`
	Spans     *spanCounts             `json:"spans,omitempty"`
}

// spanCounts is how many points fall in each region span.
type spanCounts struct {
	Elastic int `json:"elastic"`
	Plastic int `json:"plastic"`
	Necking int `json:"necking"`
}

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a stored session and its analysis as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runShowCmd,
	}
	cmd.Flags().BoolVar(&showPoints, "points", false, "include every processed point")
	return cmd
}

func runShowCmd(cmd *cobra.Command, args []string) error {
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

	sess, err := store.LoadSession(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	out := cmd.OutOrStdout()
	if showPoints {
		return builder.EncodeJSON(out, sess, true)
	}
	view := sessionView{
		ID:        sess.ID,
		Number:    sess.Number,
		StartedAt: sess.StartedAt,
		EndedAt:   sess.EndedAt,
		Metadata:  sess.Metadata,
		Points:    len(sess.Points),
		Overruns:  sess.Overruns,
		Analysis:  sess.Analysis,
	}
	if sess.Analysis != nil {
		m := builder.RegionMasks(len(sess.Points), *sess.Analysis)
		view.Spans = &spanCounts{
			Elastic: builder.CountMask(m.Elastic),
			Plastic: builder.CountMask(m.Plastic),
			Necking: builder.CountMask(m.Necking),
		}
	}
	return builder.EncodeJSON(out, view, true)
}
