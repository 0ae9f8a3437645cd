package worker

import (
	"context"
	"hotel/config"
	"hotel/infras/otel"
	folioService "hotel/internal/domains/folio/service"
	"hotel/shared/constant"
	"hotel/shared/event"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
)

// Worker consumes booking lifecycle events and archives the folios of finished stays.
type Worker struct {
	Config *config.Config
	Bus    event.Bus
	Folio  folioService.Folio
	otel   otel.Otel
}

func New(cfg *config.Config, bus event.Bus, folio folioService.Folio, otel otel.Otel) *Worker {
	return &Worker{
		Config: cfg,
		Bus:    bus,
		Folio:  folio,
		otel:   otel,
	}
}

// Run blocks until SIGINT or SIGTERM, then closes the bus. It returns the subscription
// error when consumption stopped on a message that could not be settled.
func (w *Worker) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	topic := event.Topic(w.Config.Event.Topic)

	log.Info().Str("topic", topic).Str("driver", w.Config.Event.Driver).Msg("Starting up worker.")

	err := w.Bus.Subscribe(ctx, topic, w.handle)
	if err != nil {
		log.Error().Err(err).Msg("Worker subscription stopped")
	}

	if closeErr := w.Bus.Close(); closeErr != nil {
		log.Error().Err(closeErr).Msg("Failed to close event bus")
	}

	log.Info().Msg("Worker shut down.")

	return err //nolint:wrapcheck
}

func (w *Worker) handle(ctx context.Context, message event.Message) (err error) {
	ctx, scope := w.otel.NewScope(ctx, constant.OtelWorkerScopeName, constant.OtelWorkerScopeName+".Folio.Handle")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = w.Folio.Handle(ctx, message); err != nil {
		log.Error().Err(err).Str("key", string(message.Key)).Msg("failed to handle booking event")
	}

	return err
}
