package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/lalith-99/flocknest/internal/api"
	"github.com/lalith-99/flocknest/internal/config"
	"github.com/lalith-99/flocknest/internal/observ"
	"github.com/lalith-99/flocknest/internal/repository/memory"
	"github.com/lalith-99/flocknest/internal/stream"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := observ.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync()

	// One store owns all mutable state; every repository contract the
	// handlers consume is the same value behind different interfaces.
	// The compiler checks each assignment in api.Repos.
	store := memory.NewStore(logger)
	hub := stream.NewHub(logger)

	router := api.NewRouter(cfg.JWTSecret, cfg.SessionTTL, api.Repos{
		Identity: store,
		Sessions: store,
		Channels: store,
		Messages: store,
		Store:    store,
	}, hub, logger)

	logger.Info("starting flocknest",
		zap.String("port", cfg.Port),
		zap.String("env", cfg.Env),
	)

	if err := router.Run(":" + cfg.Port); err != nil {
		return fmt.Errorf("run server: %w", err)
	}
	return nil
}
