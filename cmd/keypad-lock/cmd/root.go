package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/keypad-lock/internal/config"
	"github.com/oshokin/keypad-lock/internal/service/admin"
	"github.com/oshokin/keypad-lock/internal/service/controller"
	"github.com/oshokin/keypad-lock/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// headless disables the front panel and reads keys from standard input.
	headless bool

	// rootCmd represents the base command.
	rootCmd = &cobra.Command{
		Use:   "keypad-lock",
		Short: "Keypad door lock controller.",
		Long: `Controls a door latch from a 4x4 keypad.

The lock waits for a 4-character code. The stored code opens the latch for
3 seconds; any other code shows a denial with a blinking red indicator for
2 seconds. The code is persisted in a JSON file or SQLite database and
defaults to 1234 on first start.`,
		SilenceUsage: true,
	}

	// runCmd starts the poll loop.
	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run the lock with the simulated front panel.",
		Long: `Starts the poll loop driving the latch, indicators and display.

By default the front panel is drawn in the terminal and typed characters are
keypad presses. With --headless, keys are read from standard input and the
display is written to the log.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &controller.Options{
				ConfigPath: configPath,
				Headless:   headless,
			}

			return controller.Run(ctx, options)
		},
	}

	// passwdCmd replaces the stored code.
	passwdCmd = &cobra.Command{
		Use:   "passwd <new-code>",
		Short: "Change the stored code.",
		Long: `Validates and persists a new code through the configured storage.

The code must be exactly 4 characters from 0-9, A-D, * and #. A running lock
picks the change up when watch_credential is enabled, otherwise on restart.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			options := &admin.Options{
				ConfigPath: configPath,
				Code:       args[0],
			}

			return admin.Run(cmd.Context(), options)
		},
	}
)

// Execute runs the keypad-lock CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.PersistentFlags().
		StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	runCmd.Flags().BoolVar(&headless, "headless", false, "read keys from stdin instead of drawing the front panel")

	rootCmd.AddCommand(runCmd, passwdCmd)
}
