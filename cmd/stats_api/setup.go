package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/recruit-stats/internal/config"
	"github.com/jonathan/recruit-stats/internal/db"
	"github.com/jonathan/recruit-stats/internal/observability"
	"github.com/jonathan/recruit-stats/internal/stats"
	"github.com/sirupsen/logrus"
)

// environment is what every database-backed subcommand starts from.
type environment struct {
	cfg *config.Config
	log *logrus.Logger
	db  *db.DB
	loc *time.Location
}

func setup(ctx context.Context) (*environment, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	log, err := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}

	// One zone name drives both SQL day truncation and Go-side labelling
	loc := cfg.Location()
	database, err := db.Connect(ctx, cfg.DatabaseURL, db.Options{
		MaxConns:     cfg.MaxConns,
		QueryTimeout: cfg.QueryTimeout,
		TimeZone:     loc.String(),
	})
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"timezone":  cfg.TimeZone,
		"max_conns": cfg.MaxConns,
	}).Debug("database connected")

	return &environment{cfg: cfg, log: log, db: database, loc: loc}, nil
}

func (e *environment) statsOptions() stats.Options {
	return stats.Options{
		Location:    e.loc,
		Concurrency: e.cfg.QueryConcurrency,
	}
}

func (e *environment) Close() {
	e.db.Close()
}
