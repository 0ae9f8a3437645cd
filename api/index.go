package handler

import (
	"hotel/config"
	"hotel/di"
	"hotel/helper"
	"hotel/shared/logger"
	transport "hotel/transport/http"
	"net/http"
	"sync"

	"github.com/rs/zerolog/log"
)

var (
	service *transport.HTTP
	once    sync.Once
)

// Handler is the serverless entry point. The service graph is built once per cold start
// and reused by later invocations of the same instance.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()
		logger.SetLogLevel(cfg)

		if cfg.DB.Postgres.AutoMigrate {
			if err := helper.Up(cfg); err != nil {
				log.Error().Err(err).Msg("Failed to run database migrations")
			}
		}

		service = di.InitializeService()
	})

	service.ServeHTTP(w, r)
}
