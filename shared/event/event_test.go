package event_test

import (
	"context"
	"errors"
	"fmt"
	"hotel/shared/event"
	"hotel/shared/failure"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookingEvent struct {
	BookingID string `json:"booking_id"`
	Action    string `json:"action"`
}

func TestEncodeDecode(t *testing.T) {
	body, err := event.Encode(bookingEvent{BookingID: "b-1", Action: "checked_out"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"booking_id":"b-1","action":"checked_out"}`, string(body))

	got, err := event.Decode[bookingEvent](event.Message{Key: []byte("b-1"), Value: body})
	require.NoError(t, err)
	assert.Equal(t, bookingEvent{BookingID: "b-1", Action: "checked_out"}, got)
}

func TestDecode_InvalidPayload(t *testing.T) {
	_, err := event.Decode[bookingEvent](event.Message{Value: []byte("{")})
	assert.ErrorIs(t, err, event.ErrMalformed)
	assert.False(t, event.Retryable(err))
}

func TestRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "no error", err: nil, want: false},
		{name: "storage down", err: errors.New("connection refused"), want: true},
		{name: "wrapped storage error", err: fmt.Errorf("failed to upload folio: %w", errors.New("timeout")), want: true},
		{name: "booking missing", err: failure.NotFound("booking not found"), want: false},
		{name: "malformed", err: fmt.Errorf("handle: %w", event.ErrMalformed), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, event.Retryable(tt.err))
		})
	}
}

func TestEncode_Unsupported(t *testing.T) {
	_, err := event.Encode(make(chan int))
	assert.Error(t, err)
}

func TestNoopBus(t *testing.T) {
	bus := event.NewNoop()

	require.NoError(t, bus.Publish(context.Background(), "booking.lifecycle", "b-1", bookingEvent{}))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	called := false
	err := bus.Subscribe(ctx, "booking.lifecycle", func(context.Context, event.Message) error {
		called = true

		return nil
	})

	assert.NoError(t, err)
	assert.False(t, called)
	assert.NoError(t, bus.Close())
}
