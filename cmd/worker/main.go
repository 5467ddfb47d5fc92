package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"hotel/config"
	"hotel/di"
	"hotel/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)
	logger.UseJSON(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := di.InitializeWorker().Run(ctx); err != nil {
		log.Error().Err(err).Msg("Worker stopped")

		stop()
		os.Exit(1)
	}

	log.Info().Msg("Worker shut down.")
}
