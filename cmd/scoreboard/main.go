package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/tensorplex-labs/rankbench/internal/config"
	"github.com/tensorplex-labs/rankbench/internal/scoreboard"
	"github.com/tensorplex-labs/rankbench/internal/utils/logger"
)

func main() {
	logger.Init()
	log.Info().Msg("Starting scoreboard...")

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg(".env not loaded; continuing with existing environment")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load environment configuration")
	}

	server := scoreboard.NewServer(&scoreboard.ServerConfig{
		Host:      cfg.ScoreboardHost,
		Port:      cfg.ScoreboardPort,
		BodyLimit: cfg.ScoreboardBodyLimit,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// setup signal handling for graceful shutdown before starting the server
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info().Msg("shutdown signal received, stopping scoreboard")
		cancel()
	}()

	if err := server.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("scoreboard server exited with error")
	}
	log.Info().Msg("scoreboard stopped")
}
