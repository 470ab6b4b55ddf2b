// Package cli wires configuration, storage and services into cobra commands.
package cli

import (
	"os"

	"alcyxob/fitness-bot/internal/config"

	"github.com/spf13/cobra"
)

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// globals holds values resolved before any subcommand runs.
type globals struct {
	configPath string
	cfg        config.Config
}

func newRootCmd() *cobra.Command {
	g := &globals{}

	cmd := &cobra.Command{
		Use:          "fitness-bot",
		Short:        "Fitness chat bot menu backend",
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig(g.configPath)
			if err != nil {
				return err
			}
			g.cfg = cfg
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&g.configPath, "config", ".", "directory holding config.yaml")

	cmd.AddCommand(newServeCmd(g))
	cmd.AddCommand(newSeedCmd(g))
	cmd.AddCommand(newPositionsCmd(g))
	return cmd
}
