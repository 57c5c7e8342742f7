package main

import (
	"context"
	"fmt"

	"github.com/jonathan/recruit-stats/internal/config"
	"github.com/jonathan/recruit-stats/internal/server"
	"github.com/jonathan/recruit-stats/internal/server/ratelimit"
	"github.com/spf13/cobra"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the administrator and recruiter dashboard endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	env, err := setup(ctx)
	if err != nil {
		return err
	}
	defer env.Close()

	jwtCfg, err := config.NewJWTConfig()
	if err != nil {
		return fmt.Errorf("failed to load JWT config: %w", err)
	}

	limiter, err := newRateLimiter(ctx, env)
	if err != nil {
		return err
	}

	port := env.cfg.Port
	if servePort != "" {
		port = servePort
	}

	srv := server.New(server.Config{
		Port:    port,
		Options: env.statsOptions(),
	}, env.db, server.NewJWTService(jwtCfg), limiter, env.log)

	return srv.Start()
}

// newRateLimiter shares limits through Redis when REDIS_URL is set and keeps
// them in process otherwise.
func newRateLimiter(ctx context.Context, env *environment) (ratelimit.Checker, error) {
	rlCfg := ratelimit.LoadConfig()
	if env.cfg.RedisURL == "" || !rlCfg.Enabled {
		return ratelimit.NewLimiter(rlCfg), nil
	}

	client, err := ratelimit.Connect(ctx, env.cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	env.log.WithField("prefix", rlCfg.KeyPrefix).Info("rate limits shared through redis")
	return ratelimit.NewRedisLimiter(client, rlCfg, env.log), nil
}
