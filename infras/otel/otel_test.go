package otel_test

import (
	"context"
	"errors"
	"hotel/config"
	"hotel/infras/otel"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WithoutEndpoint(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.Name = "hotel-test"

	tracer := otel.New(cfg)

	ctx, scope := tracer.NewScope(context.Background(), "service", "service.Create")
	require.NotNil(t, scope)

	scope.SetAttributes(map[string]any{
		"room":   "101",
		"nights": 2,
		"late":   false,
		"codes":  []string{"RES1"},
		"total":  100.5,
	})
	scope.AddEvent("allocated")
	scope.TraceIfError(nil)
	scope.TraceIfError(errors.New("boom"))
	scope.End()

	assert.NotNil(t, ctx)
	assert.NoError(t, tracer.Shutdown(context.Background()))
}
