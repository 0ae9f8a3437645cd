package response

import (
	"encoding/json"
	"errors"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/shared/logger"
	"net/http"
)

type Data[T any] struct {
	Data *T `json:"data,omitempty"`
}

// Error carries the message and the failure kind clients branch on.
type Error struct {
	Error *string      `json:"error,omitempty"`
	Kind  failure.Kind `json:"kind,omitempty"`
}

type Message struct {
	Message *string `json:"message,omitempty"`
}

func WithMessage(writer http.ResponseWriter, code int, message string) {
	write(writer, code, Message{Message: &message})
}

// WithJSON wraps payload in a data envelope.
func WithJSON(writer http.ResponseWriter, code int, payload any) {
	write(writer, code, Data[any]{Data: &payload})
}

// WithError answers with the status and kind err carries. A Failure wrapped with extra
// context is reported by its own message; untyped errors become an opaque 500.
func WithError(writer http.ResponseWriter, err error) {
	code := failure.GetCode(err)

	message := http.StatusText(http.StatusInternalServerError)

	var fail *failure.Failure
	if code < http.StatusInternalServerError && errors.As(err, &fail) {
		message = fail.Message
	}

	write(writer, code, Error{Error: &message, Kind: failure.GetKind(err)})
}

func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

func WithPreparingShutdown(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

func write(writer http.ResponseWriter, code int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)
		writer.WriteHeader(http.StatusInternalServerError)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)

	if _, err := writer.Write(body); err != nil {
		logger.ErrorWithStack(err)
	}
}
