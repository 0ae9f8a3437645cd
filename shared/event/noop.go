package event

import (
	"context"

	"github.com/rs/zerolog/log"
)

type noopBus struct{}

// NewNoop returns a bus that drops published events and never delivers any.
func NewNoop() Bus {
	log.Warn().Msg("Event bus disabled, booking events will not be published")

	return &noopBus{}
}

func (n *noopBus) Publish(_ context.Context, topic, key string, _ any) error {
	log.Debug().Str("topic", topic).Str("key", key).Msg("dropping event on noop bus")

	return nil
}

// Subscribe blocks until ctx is done.
func (n *noopBus) Subscribe(ctx context.Context, _ string, _ Handler) error {
	<-ctx.Done()

	return nil
}

func (n *noopBus) Close() error {
	return nil
}
