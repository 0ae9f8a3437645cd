package response_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"hotel/shared/failure"
	"hotel/transport/http/response"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	body := map[string]any{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func TestWithJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	response.WithJSON(rec, http.StatusCreated, map[string]string{"confirmation_code": "RES-2024-000001"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, map[string]any{"data": map[string]any{"confirmation_code": "RES-2024-000001"}}, decode(t, rec))
}

func TestWithError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody map[string]any
	}{
		{
			name:     "failure",
			err:      failure.NoRoomAvailable("no deluxe room is free for the stay"),
			wantCode: http.StatusConflict,
			wantBody: map[string]any{"error": "no deluxe room is free for the stay", "kind": string(failure.KindNoRoomAvailable)},
		},
		{
			name:     "wrapped failure keeps its message",
			err:      fmt.Errorf("create booking: %w", failure.NotFound("guest")),
			wantCode: http.StatusNotFound,
			wantBody: map[string]any{"error": failure.NotFound("guest").Error(), "kind": string(failure.KindNotFound)},
		},
		{
			name:     "untyped error is opaque",
			err:      errors.New("pq: connection refused"),
			wantCode: http.StatusInternalServerError,
			wantBody: map[string]any{"error": "Internal Server Error", "kind": string(failure.KindInternal)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			response.WithError(rec, tt.err)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantBody, decode(t, rec))
		})
	}
}

func TestWithRequestLimitExceeded(t *testing.T) {
	rec := httptest.NewRecorder()
	response.WithRequestLimitExceeded(rec)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, decode(t, rec), "message")
}
