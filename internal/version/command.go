package version

import (
	"fmt"

	"github.com/spf13/cobra"
)

// AttachCobraVersionCommand adds a `version` subcommand and a --version flag to root.
func AttachCobraVersionCommand(root *cobra.Command) {
	var short bool

	root.Version = Short()

	command := &cobra.Command{
		Use:   "version",
		Short: "Print version information.",
		Long: "Print the version, commit and build time of this binary, plus the Go toolchain and platform. " +
			"Release builds inject the values from Git; local builds use the toolchain's VCS stamp.",
		Args: cobra.NoArgs,
		// Version output never depends on configuration.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			if short {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), Short())
				return
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), Full())
		},
	}

	command.Flags().BoolVarP(&short, "short", "s", false, "print only the version number")

	root.AddCommand(command)
}
