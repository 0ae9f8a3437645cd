package logger_test

import (
	"bytes"
	"context"
	"errors"
	"hotel/config"
	"hotel/shared/constant"
	"hotel/shared/logger"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func restore(t *testing.T) {
	t.Helper()

	originalLogger := log.Logger
	originalLevel := zerolog.GlobalLevel()
	originalTimeFormat := zerolog.TimeFieldFormat

	t.Cleanup(func() {
		log.Logger = originalLogger
		zerolog.SetGlobalLevel(originalLevel)
		zerolog.TimeFieldFormat = originalTimeFormat
	})
}

func TestInitLogger(t *testing.T) {
	restore(t)

	logger.InitLogger()

	assert.Equal(t, zerolog.TimeFormatUnix, zerolog.TimeFieldFormat)
	assert.Equal(t, zerolog.TraceLevel, zerolog.GlobalLevel())
}

func TestErrorWithStack(t *testing.T) {
	restore(t)

	var buf bytes.Buffer
	log.Logger = log.Output(&buf)

	logger.ErrorWithStack(errors.New("failed to lock rooms"))

	assert.Contains(t, buf.String(), "failed to lock rooms")
}

func TestSetLogLevel(t *testing.T) {
	tests := []struct {
		name          string
		logLevel      string
		expectedLevel zerolog.Level
	}{
		{name: "debug level", logLevel: "debug", expectedLevel: zerolog.DebugLevel},
		{name: "info level", logLevel: "info", expectedLevel: zerolog.InfoLevel},
		{name: "error level", logLevel: "error", expectedLevel: zerolog.ErrorLevel},
		{name: "disabled level", logLevel: "disabled", expectedLevel: zerolog.Disabled},
		{name: "invalid level defaults to trace", logLevel: "invalid_level", expectedLevel: zerolog.TraceLevel},
		{name: "empty level uses NoLevel", logLevel: "", expectedLevel: zerolog.NoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			restore(t)

			var buf bytes.Buffer
			log.Logger = log.Output(&buf)

			cfg := &config.Config{}
			cfg.Server.LogLevel = tt.logLevel

			logger.SetLogLevel(cfg)

			assert.Equal(t, tt.expectedLevel, zerolog.GlobalLevel())
		})
	}
}

func TestFromContext(t *testing.T) {
	restore(t)

	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "staff-1")
	logger.FromContext(ctx).Info().Msg("booking created")

	assert.Contains(t, buf.String(), `"actor":"staff-1"`)
	assert.Contains(t, buf.String(), "booking created")

	buf.Reset()
	logger.FromContext(context.Background()).Info().Msg("anonymous")

	assert.NotContains(t, buf.String(), "actor")
}
