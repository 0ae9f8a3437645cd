// Package event defines the broker-agnostic bus booking lifecycle events travel on.
package event

//go:generate go run go.uber.org/mock/mockgen -source=./event.go -destination=./mocks/event_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"net/http"
)

// ErrMalformed marks a payload no handler will ever accept.
var ErrMalformed = errors.New("malformed event payload")

type Message struct {
	Key   []byte
	Value []byte
}

// Handler processes one delivered message. Drivers redeliver the message while the
// returned error is Retryable and drop it otherwise.
type Handler func(ctx context.Context, message Message) error

type Bus interface {
	Publish(ctx context.Context, topic, key string, payload any) error
	Subscribe(ctx context.Context, topic string, handler Handler) error
	Close() error
}

// Encode marshals payload as the JSON body every driver ships.
func Encode(payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event payload: %w", err)
	}

	return body, nil
}

func Decode[T any](message Message) (T, error) {
	var value T

	if err := json.Unmarshal(message.Value, &value); err != nil {
		return value, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	return value, nil
}

// Topic falls back to the default booking topic when none is configured.
func Topic(configured string) string {
	if configured == "" {
		return constant.DefaultEventTopic
	}

	return configured
}

// Retryable reports whether handling the message again could succeed. Malformed payloads
// and business rejections such as a missing booking are final.
func Retryable(err error) bool {
	if err == nil || errors.Is(err, ErrMalformed) {
		return false
	}

	return failure.GetCode(err) >= http.StatusInternalServerError
}
