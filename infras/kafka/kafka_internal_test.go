package kafka

import (
	"context"
	"errors"
	"fmt"
	"hotel/shared/event"
	"hotel/shared/failure"
	"testing"

	"github.com/cenkalti/backoff/v5"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToKafkaMessage(t *testing.T) {
	msg, err := toKafkaMessage("booking.lifecycle", "b-1", map[string]string{"action": "created"})
	require.NoError(t, err)

	assert.Equal(t, "booking.lifecycle", msg.Topic)
	assert.Equal(t, []byte("b-1"), msg.Key)
	assert.JSONEq(t, `{"action":"created"}`, string(msg.Value))

	_, err = toKafkaMessage("booking.lifecycle", "b-1", func() {})
	assert.Error(t, err)
}

type fakeReader struct {
	messages  []kafkaGo.Message
	committed []int64
	cancel    context.CancelFunc
}

func (f *fakeReader) FetchMessage(ctx context.Context) (kafkaGo.Message, error) {
	if len(f.messages) == 0 {
		f.cancel()

		return kafkaGo.Message{}, ctx.Err()
	}

	msg := f.messages[0]
	f.messages = f.messages[1:]

	return msg, nil
}

func (f *fakeReader) CommitMessages(_ context.Context, msgs ...kafkaGo.Message) error {
	for _, msg := range msgs {
		f.committed = append(f.committed, msg.Offset)
	}

	return nil
}

func newFakeReader(offsets ...int64) (*fakeReader, context.Context) {
	ctx, cancel := context.WithCancel(context.Background())

	reader := &fakeReader{cancel: cancel}
	for _, offset := range offsets {
		reader.messages = append(reader.messages, kafkaGo.Message{Offset: offset, Key: []byte("b-1"), Value: []byte(`{}`)})
	}

	return reader, ctx
}

func fastRetry(tries uint) []backoff.RetryOption {
	return []backoff.RetryOption{backoff.WithBackOff(&backoff.ZeroBackOff{}), backoff.WithMaxTries(tries)}
}

func TestConsume_CommitsAfterHandlerSucceeds(t *testing.T) {
	reader, ctx := newFakeReader(7)

	attempts := 0
	handler := func(context.Context, event.Message) error {
		attempts++
		if attempts < 3 {
			assert.Empty(t, reader.committed, "offset must stay uncommitted while the handler fails")

			return errors.New("s3 unavailable")
		}

		return nil
	}

	require.NoError(t, consume(ctx, reader, "booking.lifecycle", handler, fastRetry(5)...))
	assert.Equal(t, 3, attempts)
	assert.Equal(t, []int64{7}, reader.committed)
}

func TestConsume_LeavesOffsetWhenRetriesRunOut(t *testing.T) {
	reader, ctx := newFakeReader(7, 8)

	handler := func(context.Context, event.Message) error {
		return errors.New("s3 unavailable")
	}

	err := consume(ctx, reader, "booking.lifecycle", handler, fastRetry(3)...)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "offset 7")
	assert.Empty(t, reader.committed)
	assert.Len(t, reader.messages, 1, "the consumer stops at the failing message")
}

func TestConsume_DropsMessagesThatCannotBeHandled(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "malformed payload", err: fmt.Errorf("decode: %w", event.ErrMalformed)},
		{name: "booking missing", err: failure.NotFound("booking not found")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader, ctx := newFakeReader(3, 4)

			attempts := 0
			handler := func(context.Context, event.Message) error {
				attempts++
				if attempts == 1 {
					return tt.err
				}

				return nil
			}

			require.NoError(t, consume(ctx, reader, "booking.lifecycle", handler, fastRetry(5)...))
			assert.Equal(t, 2, attempts, "final failures are not retried")
			assert.Equal(t, []int64{3, 4}, reader.committed)
		})
	}
}

func TestConsume_ShutdownLeavesMessageUncommitted(t *testing.T) {
	reader, ctx := newFakeReader(9)

	handler := func(context.Context, event.Message) error {
		reader.cancel()

		return errors.New("s3 unavailable")
	}

	require.NoError(t, consume(ctx, reader, "booking.lifecycle", handler, fastRetry(5)...))
	assert.Empty(t, reader.committed)
}
