package kafka

import (
	"context"
	"errors"
	"fmt"
	"hotel/config"
	"hotel/shared/event"
	"net"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
)

const writeTimeout = 10 * time.Second

func toKafkaMessage(topic, key string, payload any) (kafkaGo.Message, error) {
	value, err := event.Encode(payload)
	if err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("Failed to marshal message value to JSON")

		return kafkaGo.Message{}, fmt.Errorf("failed to convert message to Kafka message: %w", err)
	}

	return kafkaGo.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: value,
	}, nil
}

type kafkaClientImpl struct {
	config *config.Config
	dialer *kafkaGo.Dialer
	writer *kafkaGo.Writer
}

// New builds a Kafka backed event.Bus. Writes are synchronous so the caller sees
// broker failures.
func New(config *config.Config) event.Bus {
	dialer := &kafkaGo.Dialer{
		Timeout:   writeTimeout,
		DualStack: true,
	}

	transport := &kafkaGo.Transport{}

	if config.Kafka.SASL.Username != "" {
		mechanism := plain.Mechanism{
			Username: config.Kafka.SASL.Username,
			Password: config.Kafka.SASL.Password,
		}

		dialer.SASLMechanism = mechanism
		transport.SASL = mechanism
	}

	writer := &kafkaGo.Writer{
		Addr:                   kafkaGo.TCP(config.Kafka.Brokers...),
		Transport:              transport,
		Balancer:               &kafkaGo.Hash{},
		AllowAutoTopicCreation: true,
		RequiredAcks:           kafkaGo.RequireOne,
		WriteTimeout:           writeTimeout,
	}

	log.Info().Strs("brokers", config.Kafka.Brokers).Msg("Kafka client initialized")

	return &kafkaClientImpl{
		config: config,
		dialer: dialer,
		writer: writer,
	}
}

func (k *kafkaClientImpl) reader(topic string) *kafkaGo.Reader {
	return kafkaGo.NewReader(kafkaGo.ReaderConfig{
		Brokers:     k.config.Kafka.Brokers,
		Topic:       topic,
		GroupID:     k.config.Kafka.ConsumerGroup,
		Dialer:      k.dialer,
		StartOffset: kafkaGo.FirstOffset,
	})
}

func (k *kafkaClientImpl) Publish(ctx context.Context, topic, key string, payload any) error {
	msg, err := toKafkaMessage(topic, key, payload)
	if err != nil {
		return err
	}

	err = k.writer.WriteMessages(ctx, msg)
	if err != nil {
		log.Error().Err(err).Str("topic", topic).Str("key", key).Msg("Failed to send message to Kafka.")

		return fmt.Errorf("failed to send message to Kafka: %w", err)
	}

	log.Debug().Str("topic", topic).Str("key", key).Msg("Sent message successfully.")

	return nil
}

// Subscribe reads topic with the configured consumer group until ctx is done.
// Messages are handled one at a time so per-key order is kept.
func (k *kafkaClientImpl) Subscribe(ctx context.Context, topic string, handler event.Handler) error {
	if topic == "" {
		return errors.New("topic name cannot be empty when creating Kafka reader")
	}

	reader := k.reader(topic)
	defer func() {
		if err := reader.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close Kafka reader.")
		}
	}()

	return consume(ctx, reader, topic, handler, event.DefaultRetry()...)
}

type messageReader interface {
	FetchMessage(ctx context.Context) (kafkaGo.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkaGo.Message) error
}

// consume commits a message only once it is settled: handled, or failed in a way
// redelivery cannot fix. A message still failing after the retry window is left
// uncommitted and stops the consumer, so the group resumes from it.
func consume(ctx context.Context, reader messageReader, topic string, handler event.Handler, retry ...backoff.RetryOption) error {
	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info().Str("topic", topic).Msg("Consumer context done.")

				return nil
			}

			var netErr net.Error
			if errors.As(err, &netErr) && !netErr.Timeout() {
				return fmt.Errorf("failed to read message from Kafka: %w", err)
			}

			log.Error().Err(err).Str("topic", topic).Msg("Failed to read message from Kafka.")

			continue
		}

		key := string(msg.Key)

		log.Info().Str("topic", topic).Str("key", key).Int64("offset", msg.Offset).Msg("Received message from Kafka.")

		err = event.Settle(ctx, handler, event.Message{Key: msg.Key, Value: msg.Value}, retry...)

		switch {
		case ctx.Err() != nil:
			log.Info().Str("topic", topic).Str("key", key).Msg("Consumer context done before message was settled.")

			return nil
		case event.Retryable(err):
			return fmt.Errorf("failed to handle Kafka message %s at offset %d: %w", key, msg.Offset, err)
		case err != nil:
			log.Error().Err(err).Str("topic", topic).Str("key", key).Msg("Dropping Kafka message that cannot be handled.")
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}

			return fmt.Errorf("failed to commit Kafka offset: %w", err)
		}
	}
}

func (k *kafkaClientImpl) Close() error {
	if err := k.writer.Close(); err != nil {
		return fmt.Errorf("failed to close Kafka writer: %w", err)
	}

	return nil
}
