package main

import (
	"hotel/config"
	"hotel/helper"
	"hotel/shared/logger"
	"os"
	"strconv"

	"github.com/rs/zerolog/log"
)

const usage = "usage: migrate up|down|step-up|drop|version|force <version>"

func main() {
	if len(os.Args) < 2 {
		log.Fatal().Msg(usage)
	}

	cfg := config.Get()

	logger.InitLogger()
	logger.SetLogLevel(cfg)

	action := os.Args[1]

	if action == "force" {
		if len(os.Args) < 3 {
			log.Fatal().Msg(usage)
		}

		version, err := strconv.Atoi(os.Args[2])
		if err != nil {
			log.Fatal().Err(err).Str("version", os.Args[2]).Msg("Migration version must be a number")
		}

		if err := helper.Force(cfg, version); err != nil {
			log.Fatal().Err(err).Msg("Failed to force migration version")
		}

		return
	}

	if err := helper.Runner(cfg, action); err != nil {
		log.Fatal().Err(err).Str("action", action).Msg("Failed to run database migrations")
	}
}
