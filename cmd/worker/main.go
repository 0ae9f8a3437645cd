package main

import (
	"hotel/config"
	"hotel/di"
	"hotel/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	worker := di.InitializeWorker()
	if err := worker.Run(); err != nil {
		log.Fatal().Err(err).Msg("Worker stopped before shutdown")
	}
}
