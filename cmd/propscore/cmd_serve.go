package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/sawpanic/propscore/internal/config"
	httpserver "github.com/sawpanic/propscore/internal/interfaces/http"
	"github.com/sawpanic/propscore/internal/metrics"
	"github.com/sawpanic/propscore/internal/scoring"
)

func newServeCmd(cfg *config.Config) *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the scoring HTTP server",
		Long:  "Starts an HTTP server with POST /score, GET /weights, /health and /metrics endpoints",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cmd, cfg)
		},
	}

	serveCmd.Flags().String("host", cfg.HTTPHost, "HTTP server host")
	serveCmd.Flags().Int("port", cfg.HTTPPort, "HTTP server port")
	serveCmd.Flags().Float64("rate-limit-rps", cfg.RateLimitRPS, "Per-client requests per second (0 disables)")
	serveCmd.Flags().Int("rate-limit-burst", cfg.RateLimitBurst, "Per-client burst size")
	addWeightFlags(serveCmd, cfg)

	return serveCmd
}

func runServe(ctx context.Context, cmd *cobra.Command, cfg *config.Config) error {
	weights, err := resolveWeights(cmd)
	if err != nil {
		return err
	}
	scorer, err := scoring.NewScorer(weights)
	if err != nil {
		return err
	}

	serverCfg := httpserver.DefaultServerConfig()
	serverCfg.Version = version
	serverCfg.Host, _ = cmd.Flags().GetString("host")
	serverCfg.Port, _ = cmd.Flags().GetInt("port")
	serverCfg.RateLimitRPS, _ = cmd.Flags().GetFloat64("rate-limit-rps")
	serverCfg.RateLimitBurst, _ = cmd.Flags().GetInt("rate-limit-burst")

	server, err := httpserver.NewServer(serverCfg, scorer, metrics.NewRegistry())
	if err != nil {
		return err
	}

	log.Info().
		Str("host", serverCfg.Host).
		Int("port", serverCfg.Port).
		Float64("rate_limit_rps", serverCfg.RateLimitRPS).
		Interface("weights", weights).
		Msg("propscore server configured")

	return server.Start(ctx)
}
