package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hotel/config"
	"hotel/infras/otel/mocks"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/constant"
	"hotel/transport/http/middleware"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func limited(t *testing.T) (*cacheMocks.MockRedisCache, http.Handler) {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.RateLimiter.Enable = true
	cfg.App.RateLimiter.MaxRequests = 2
	cfg.App.RateLimiter.WindowSeconds = 60

	redisCache := cacheMocks.NewMockRedisCache(gomock.NewController(t))
	app := middleware.NewAppMiddleware(mocks.NewOtel(), cfg, redisCache)

	handler := app.RateLimit()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	return redisCache, handler
}

func TestRateLimit_UnderLimit(t *testing.T) {
	redisCache, handler := limited(t)

	redisCache.EXPECT().
		Increment(gomock.Any(), gomock.Any(), 60).
		DoAndReturn(func(_ any, key string, _ int) (int64, error) {
			assert.True(t, strings.HasPrefix(key, "limiter:token:"))
			assert.NotContains(t, key, "secret-token")

			return 1, nil
		})

	req := httptest.NewRequest(http.MethodGet, "/v1/rooms", nil)
	req.Header.Set(constant.RequestHeaderAuthorization, "Bearer secret-token")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1", rec.Header().Get(constant.RequestHeaderRateLimitRemaining))
}

func TestRateLimit_OverLimit(t *testing.T) {
	redisCache, handler := limited(t)

	redisCache.EXPECT().
		Increment(gomock.Any(), "limiter:client:10.0.0.7:kiosk", 60).
		Return(int64(3), nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/availability", nil)
	req.Header.Set(constant.RequestHeaderForwardedFor, "10.0.0.7, 172.16.0.1")
	req.Header.Set(constant.RequestHeaderUserAgent, "kiosk")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get(constant.RequestHeaderRetryAfter))
	assert.Equal(t, "0", rec.Header().Get(constant.RequestHeaderRateLimitRemaining))
}

func TestRateLimit_CacheDown(t *testing.T) {
	redisCache, handler := limited(t)

	redisCache.EXPECT().
		Increment(gomock.Any(), gomock.Any(), 60).
		Return(int64(0), errors.New("redis down"))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/rooms", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}
