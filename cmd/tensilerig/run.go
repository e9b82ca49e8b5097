package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/joeydtaylor/tensilerig/pkg/builder"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one session, stream its events as JSON lines, analyze and store it",
		Args:  cobra.NoArgs,
		RunE:  runRunCmd,
	}
	cmd.Flags().DurationVar(&runDuration, "duration", builder.EnvDurationOr("TENSILERIG_RUN_DURATION", defaultRunDuration), "acquisition time before stopping")
	cmd.Flags().StringVar(&runOperator, "operator", builder.EnvOr("TENSILERIG_OPERATOR", ""), "operator recorded in the session metadata")
	cmd.Flags().StringVar(&runSpecimenID, "specimen-id", "", "specimen identifier recorded in the session metadata")
	cmd.Flags().IntVar(&runPointStride, "point-stride", builder.EnvIntOr("TENSILERIG_POINT_STRIDE", defaultPointStride), "emit every nth point event")
	cmd.Flags().BoolVar(&runNoPersist, "no-persist", false, "analyze but do not store the session")
	cmd.Flags().BoolVar(&runQuiet, "quiet", false, "do not stream events to stdout")
	cmd.Flags().DurationVar(&runMonitor, "monitor", 0, "sample host CPU and RAM into the meter at this interval")
	cmd.Flags().IntVar(&runSessions, "sessions", 1, "number of sessions to run back to back")
	cmd.Flags().BoolVar(&runWatch, "watch", false, "reload the config file on change; edits apply from the next session")
	return cmd
}

func runRunCmd(cmd *cobra.Command, _ []string) error {
	if runDuration <= 0 {
		return fmt.Errorf("--duration must be > 0")
	}
	if runSessions < 1 {
		return fmt.Errorf("--sessions must be >= 1")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var configs *builder.ConfigManager
	var s *builder.Settings
	var err error
	if runWatch {
		configs = builder.NewConfigManager(builder.ConfigWithPath(configPath), builder.ConfigWithWatchEnabled(true))
		s, err = configs.Load()
		if err == nil && logLevel != "" {
			s.Log.Level = logLevel
			err = s.Validate()
		}
	} else {
		s, err = loadSettings()
	}
	if err != nil {
		return err
	}

	logger, err := builder.NewLoggerFromSettings(s.Log, builder.LoggerWithoutCaller())
	if err != nil {
		return err
	}
	opts := []builder.RigOption{builder.RigWithLogger(logger)}
	if runNoPersist {
		opts = append(opts, builder.RigWithoutStore())
	}
	if configs != nil {
		configs.ConnectLogger(logger)
		opts = append(opts, builder.RigWithConfigManager(configs))
	}
	rig, err := builder.NewRig(ctx, s, opts...)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := rig.Close(); cerr != nil {
			logErrf("failed to close rig: %v\n", cerr)
		}
	}()

	var enc *builder.EventEncoder
	if !runQuiet {
		enc = builder.NewEventEncoder(cmd.OutOrStdout(), builder.EventWithPointStride(runPointStride))
		enc.Attach(rig.Sensor)
	}
	if runMonitor > 0 {
		go rig.Meter.Monitor(ctx, runMonitor)
	}

	meta := map[string]string{}
	if runOperator != "" {
		meta[builder.MetaOperator] = runOperator
	}
	if runSpecimenID != "" {
		meta[builder.MetaSpecimenID] = runSpecimenID
	}

	for i := 0; i < runSessions && ctx.Err() == nil; i++ {
		if err := runSession(ctx, cmd.ErrOrStderr(), rig, meta); err != nil {
			return err
		}
	}
	if enc != nil {
		return enc.Err()
	}
	return nil
}

// runSession drives one Start, Stop, Analyze and Persist cycle.
func runSession(ctx context.Context, w io.Writer, rig *builder.Rig, meta map[string]string) error {
	if err := rig.Start(ctx, meta); err != nil {
		return err
	}
	timer := time.NewTimer(runDuration)
	select {
	case <-timer.C:
	case <-ctx.Done():
		timer.Stop()
	}

	if err := rig.Stop(); err != nil {
		return err
	}
	result, err := rig.Analyze()
	if err != nil {
		return err
	}
	sess := rig.Session()

	if rig.Store != nil {
		// An interrupt ends acquisition early but the session is still kept.
		if err := rig.Persist(context.WithoutCancel(ctx)); err != nil {
			return fmt.Errorf("failed to persist session: %w", err)
		}
	} else {
		rig.Discard()
	}

	printSummary(w, sess, result, rig.Store != nil)
	return nil
}

func printSummary(w io.Writer, sess *builder.Session, result builder.AnalysisResult, stored bool) {
	if sess == nil {
		return
	}
	verb := "analyzed"
	if stored {
		verb = "stored"
	}
	fmt.Fprintf(w, "session %s (#%d) %s: %d points, %d overruns, analysis %s\n",
		sess.ID, sess.Number, verb, len(sess.Points), sess.Overruns, result.Status)
	writeRegions(w, result)
}

func writeRegions(w io.Writer, r builder.AnalysisResult) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "REGION\tOUTCOME\tDETAIL")
	for _, region := range builder.Regions {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", region, r.Outcome(region), regionDetail(r, region))
	}
	if d := r.Diagnostics; d != nil {
		fmt.Fprintf(tw, "noise\t\tch0 %.1f dB @ %.1f Hz, ch1 %.1f dB @ %.1f Hz\n",
			d.Ch0SNRdB, d.Ch0DominantHz, d.Ch1SNRdB, d.Ch1DominantHz)
	}
}

func regionDetail(r builder.AnalysisResult, region builder.Region) string {
	switch region {
	case builder.RegionElastic:
		if e := r.Elastic; e != nil {
			return fmt.Sprintf("E=%.1f GPa  R2=%.4f  points %d..%d", e.ModulusGPa, e.RSquared, e.StartIdx, e.EndIdx)
		}
	case builder.RegionYield:
		if y := r.Yield; y != nil {
			return fmt.Sprintf("%.1f MPa at strain %.5f", y.StressMPa, y.Strain)
		}
	case builder.RegionUltimate:
		if u := r.Ultimate; u != nil {
			return fmt.Sprintf("%.1f MPa at strain %.5f", u.StressMPa, u.Strain)
		}
	case builder.RegionFracture:
		if f := r.Fracture; f != nil {
			return fmt.Sprintf("%.1f MPa at strain %.5f", f.StressMPa, f.Strain)
		}
	case builder.RegionPlastic:
		if p := r.Plastic; p != nil {
			return fmt.Sprintf("strain range %.5f, points %d..%d", p.StrainRange, p.StartIdx, p.EndIdx)
		}
	}
	return ""
}
