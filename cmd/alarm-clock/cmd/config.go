package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oshokin/alarm-clock/internal/config"
)

// errConfigExists is returned when config init would overwrite a file.
var errConfigExists = errors.New("configuration file already exists")

var (
	// forceConfig allows overwriting an existing file.
	forceConfig bool

	// configCmd groups configuration helpers.
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file.",
	}

	// configInitCmd writes a default configuration.
	configInitCmd = &cobra.Command{
		Use:   "init [path]",
		Short: "Write a configuration file with default settings.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configPath
			if len(args) > 0 {
				path = args[0]
			}

			if _, err := os.Stat(path); err == nil && !forceConfig {
				return fmt.Errorf("%w: %s (use --force to overwrite)", errConfigExists, path)
			}

			if err := config.Save(path, config.Default()); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Configuration written to %s\n", path)

			return err
		},
	}
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	configInitCmd.Flags().BoolVarP(&forceConfig, "force", "f", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
