package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/alarm-clock/internal/service/server"
)

// serveCmd runs the daemon.
//
//nolint:gochecknoglobals // Cobra commands are package-level by convention.
var serveCmd = &cobra.Command{
	Use:   "serve [listen-address]",
	Short: "Run the alarm clock daemon.",
	Long: `Starts the alarm clock daemon: the clock, the alarm sound and the gRPC
control surface used by the other commands.

The daemon listens on listen_addr from the configuration file. A listen address
argument overrides it; a bare port (e.g. 9090 or :9090) keeps the configured host.
The daemon records itself in pid_file and refuses to start while another live
daemon owns that file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		// Setup graceful shutdown handling.
		ctx, stop := signalContext()
		defer stop()

		// Use listen address argument if provided, otherwise rely on config.
		var listenAddress string
		if len(args) > 0 {
			listenAddress = args[0]
		}

		return server.Run(ctx, &server.Options{
			ConfigPath:    configPath,
			ListenAddress: listenAddress,
		})
	},
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.AddCommand(serveCmd)
}
