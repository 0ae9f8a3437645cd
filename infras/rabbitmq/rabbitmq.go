package rabbitmq

import (
	"context"
	"fmt"
	"hotel/config"
	"hotel/shared/constant"
	"hotel/shared/event"
	"sync"

	"github.com/cenkalti/backoff/v5"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

const (
	defaultExchange = "hotel.events"
	exchangeKind    = "topic"
)

type rabbitImpl struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	queue    string
	mu       sync.Mutex
}

// New dials RabbitMQ and declares the durable topic exchange events are published to.
func New(config *config.Config) (event.Bus, error) {
	exchange := config.RabbitMQ.Exchange
	if exchange == "" {
		exchange = defaultExchange
	}

	conn, err := amqp.Dial(config.RabbitMQ.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()

		return nil, fmt.Errorf("failed to open rabbitmq channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, exchangeKind, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()

		return nil, fmt.Errorf("failed to declare rabbitmq exchange: %w", err)
	}

	log.Info().Str("exchange", exchange).Msg("RabbitMQ client initialized")

	return &rabbitImpl{
		conn:     conn,
		channel:  ch,
		exchange: exchange,
		queue:    config.RabbitMQ.Queue,
	}, nil
}

// Publish routes payload with the topic as routing key.
func (r *rabbitImpl) Publish(ctx context.Context, topic, key string, payload any) error {
	body, err := event.Encode(payload)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	err = r.channel.PublishWithContext(ctx, r.exchange, topic, false, false, amqp.Publishing{
		ContentType:  constant.ContentTypeJSON,
		DeliveryMode: amqp.Persistent,
		MessageId:    key,
		Body:         body,
	})
	if err != nil {
		log.Error().Err(err).Str("exchange", r.exchange).Str("topic", topic).Msg("Failed to publish message to RabbitMQ.")

		return fmt.Errorf("failed to publish message to rabbitmq: %w", err)
	}

	log.Debug().Str("exchange", r.exchange).Str("topic", topic).Str("key", key).Msg("Published message to RabbitMQ.")

	return nil
}

// Subscribe binds a durable queue to topic and consumes it with manual acks.
func (r *rabbitImpl) Subscribe(ctx context.Context, topic string, handler event.Handler) error {
	queueName := r.queue
	if queueName == "" {
		queueName = topic + ".worker"
	}

	ch, err := r.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open rabbitmq channel: %w", err)
	}
	defer ch.Close()

	queue, err := ch.QueueDeclare(queueName, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to declare rabbitmq queue: %w", err)
	}

	if err := ch.QueueBind(queue.Name, topic, r.exchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind rabbitmq queue: %w", err)
	}

	deliveries, err := ch.ConsumeWithContext(ctx, queue.Name, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to consume rabbitmq queue: %w", err)
	}

	log.Info().Str("queue", queue.Name).Str("topic", topic).Msg("Consuming from RabbitMQ.")

	return deliver(ctx, deliveries, queue.Name, handler, event.DefaultRetry()...)
}

// deliver acks a delivery once it is settled: handled, or failed in a way redelivery
// cannot fix. A delivery still failing after the retry window is requeued and stops
// the consumer.
func deliver(ctx context.Context, deliveries <-chan amqp.Delivery, queue string, handler event.Handler, retry ...backoff.RetryOption) error {
	for {
		select {
		case <-ctx.Done():
			log.Info().Str("queue", queue).Msg("Consumer context done.")

			return nil
		case delivery, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("rabbitmq delivery channel closed for queue %s", queue)
			}

			err := event.Settle(ctx, handler, event.Message{Key: []byte(delivery.MessageId), Value: delivery.Body}, retry...)

			switch {
			case ctx.Err() != nil:
				_ = delivery.Nack(false, true)

				log.Info().Str("queue", queue).Str("key", delivery.MessageId).Msg("Consumer context done before message was settled.")

				return nil
			case event.Retryable(err):
				_ = delivery.Nack(false, true)

				return fmt.Errorf("failed to handle RabbitMQ message %s: %w", delivery.MessageId, err)
			case err != nil:
				log.Error().Err(err).Str("queue", queue).Str("key", delivery.MessageId).Msg("Dropping RabbitMQ message that cannot be handled.")

				if err := delivery.Nack(false, false); err != nil {
					log.Error().Err(err).Str("queue", queue).Msg("Failed to nack RabbitMQ message.")
				}

				continue
			}

			if err := delivery.Ack(false); err != nil {
				log.Error().Err(err).Str("queue", queue).Msg("Failed to ack RabbitMQ message.")
			}
		}
	}
}

func (r *rabbitImpl) Close() error {
	if r.channel != nil {
		_ = r.channel.Close()
	}

	if r.conn != nil {
		if err := r.conn.Close(); err != nil {
			return fmt.Errorf("failed to close rabbitmq connection: %w", err)
		}
	}

	return nil
}
