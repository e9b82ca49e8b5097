// Package main provides the CLI entrypoint for tensilerig: run simulated tensile
// test sessions, stream their events and browse stored results.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/joeydtaylor/tensilerig/pkg/builder"
)

const (
	defaultRunDuration = 10 * time.Second
	defaultPointStride = 1
)

var (
	configPath string
	logLevel   string

	runDuration    time.Duration
	runOperator    string
	runSpecimenID  string
	runPointStride int
	runNoPersist   bool
	runQuiet       bool
	runMonitor     time.Duration
	runSessions    int
	runWatch       bool

	sessionsJSON bool

	showPoints bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tensilerig",
		Short:         "Tensile test acquisition and analysis",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", builder.EnvOr("TENSILERIG_CONFIG", ""), "config file (yaml, toml or json)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log.level")

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newSessionsCmd())
	rootCmd.AddCommand(newShowCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func loadSettings() (*builder.Settings, error) {
	s, err := builder.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if logLevel != "" {
		s.Log.Level = logLevel
		if err := s.Validate(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func openStore(ctx context.Context, s *builder.Settings) (builder.SessionStore, error) {
	logger, err := builder.NewLoggerFromSettings(s.Log, builder.LoggerWithoutCaller())
	if err != nil {
		return nil, err
	}
	store, err := builder.OpenStore(ctx, s.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	if store == nil {
		return nil, fmt.Errorf("storage.driver is %q; nothing is stored", s.Storage.Driver)
	}
	return store, nil
}

func logErrf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(os.Stderr, format, args...)
}
