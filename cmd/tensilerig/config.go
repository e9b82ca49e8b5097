package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joeydtaylor/tensilerig/pkg/builder"
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective settings as JSON",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(cmd *cobra.Command, _ []string) error {
	m := builder.NewConfigManager(builder.ConfigWithPath(configPath))
	s, err := m.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if logLevel != "" {
		s.Log.Level = logLevel
	}

	if used := m.ConfigFileUsed(); used != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "# config file: %s\n", used)
	} else {
		fmt.Fprintln(cmd.ErrOrStderr(), "# no config file found; built-in defaults and TENSILERIG_* environment")
	}
	return builder.EncodeJSON(cmd.OutOrStdout(), *s, true)
}
