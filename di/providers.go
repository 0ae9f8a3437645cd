package di

import (
	"hotel/config"
	"hotel/infras/kafka"
	"hotel/infras/rabbitmq"
	"hotel/shared/constant"
	"hotel/shared/event"

	"github.com/rs/zerolog/log"
)

// provideEventBus picks the broker booking events are published to.
func provideEventBus(cfg *config.Config) event.Bus {
	switch cfg.Event.Driver {
	case constant.EventDriverKafka:
		return kafka.New(cfg)
	case constant.EventDriverRabbitMQ:
		bus, err := rabbitmq.New(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to RabbitMQ")
		}

		return bus
	default:
		return event.NewNoop()
	}
}
