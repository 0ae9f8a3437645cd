package logger

import (
	"context"
	"hotel/config"
	"hotel/shared/constant"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func InitLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}

	log.Logger = log.Output(output)
	log.Trace().Msg("Zerolog initialized.")
}

func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}

func SetLogLevel(config *config.Config) {
	level, err := zerolog.ParseLevel(config.Server.LogLevel)
	if err != nil {
		level = zerolog.TraceLevel
		log.Trace().Str("loglevel", level.String()).Msg("Environment has no log level set up, using default.")
	} else {
		log.Trace().Str("loglevel", level.String()).Msg("Desired log level detected.")
	}

	zerolog.SetGlobalLevel(level)
}

// FromContext returns the global logger annotated with the acting staff member, if any.
func FromContext(ctx context.Context) *zerolog.Logger {
	logCtx := log.Logger.With()

	if userID, ok := ctx.Value(constant.ContextKeyUserID).(string); ok && userID != "" {
		logCtx = logCtx.Str("actor", userID)
	}

	if tokenID, ok := ctx.Value(constant.ContextKeyTokenID).(string); ok && tokenID != "" {
		logCtx = logCtx.Str("token_id", tokenID)
	}

	logger := logCtx.Logger()

	return &logger
}
