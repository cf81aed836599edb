package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ollama/typedmap/envconfig"
	"github.com/ollama/typedmap/logutil"
)

func NewCLI() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "typedmap",
		Short: "Load JSON objects into type-checked ordered maps",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Disable usage printing on errors
			cmd.SilenceUsage = true
			slog.SetDefault(logutil.NewLogger(os.Stderr, envconfig.LogLevel()))
			if envconfig.Debug() {
				slog.Debug("settings", "env", envconfig.Values())
			}
		},
	}

	cobra.EnableCommandSorting = false

	rootCmd.AddCommand(
		NewShowCmd(),
		NewEnvCmd(),
	)

	return rootCmd
}
