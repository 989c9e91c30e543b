package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/sawpanic/propscore/internal/config"
	applog "github.com/sawpanic/propscore/internal/log"
)

const (
	appName = "propscore"
	version = "v0.4.0"
)

func main() {
	cfg := config.Load()

	rootCmd := newRootCmd(cfg)
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     appName,
		Short:   "Value-for-money scoring for real-estate listings",
		Version: version,
		Long: `propscore rates one listing on price, location, property and external
factors, each clamped to [0, 100], and combines them with a weight table
(price 0.4, location 0.3, property 0.2, external 0.1, appreciation 0.0).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level, _ := cmd.Flags().GetString("log-level")
			applog.Setup(cmd.ErrOrStderr(), level, isTerminal(cmd.ErrOrStderr()))
		},
	}

	rootCmd.PersistentFlags().String("log-level", cfg.LogLevel, "Log level (trace|debug|info|warn|error)")

	rootCmd.AddCommand(newScoreCmd(cfg))   // Score one listing
	rootCmd.AddCommand(newDemoCmd())       // Reference listing
	rootCmd.AddCommand(newWeightsCmd(cfg)) // Effective weight table
	rootCmd.AddCommand(newServeCmd(cfg))   // HTTP surface

	return rootCmd
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && applog.IsTerminal(f)
}

func printf(cmd *cobra.Command, format string, args ...interface{}) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
