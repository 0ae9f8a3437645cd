package middleware

import (
	"fmt"
	"hotel/config"
	"hotel/infras/otel"
	"hotel/shared/cache"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

const (
	otelHTTPScopeName = "http"
)

type AppMiddleware interface {
	Tracing(next http.Handler) http.Handler
	RateLimit() func(http.Handler) http.Handler
}

type appMiddleware struct {
	otel   otel.Otel
	config *config.Config
	cache  cache.RedisCache
}

func NewAppMiddleware(otel otel.Otel, config *config.Config, cache cache.RedisCache) AppMiddleware {
	return &appMiddleware{
		otel:   otel,
		config: config,
		cache:  cache,
	}
}

// Tracing opens the request span every handler scope nests under.
func (a *appMiddleware) Tracing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx, scope := a.otel.NewScope(request.Context(), otelHTTPScopeName, fmt.Sprintf("%s %s", request.Method, request.URL.Path))
		defer scope.End()

		wrapped := chiMiddleware.NewWrapResponseWriter(writer, request.ProtoMajor)

		scope.SetAttributes(map[string]any{
			"app.name":        a.config.App.Name,
			"http.path":       request.URL.Path,
			"http.method":     request.Method,
			"http.user_agent": a.getUA(request),
			"http.host":       request.Host,
			"http.source":     a.getClientIP(request),
		})

		next.ServeHTTP(wrapped, request.WithContext(ctx))

		attributes := map[string]any{
			"http.status_code": wrapped.Status(),
		}

		if rctx := chi.RouteContext(ctx); rctx != nil {
			attributes["http.route"] = rctx.RoutePattern()
		}

		scope.SetAttributes(attributes)

		if wrapped.Status() >= http.StatusInternalServerError {
			scope.TraceError(fmt.Errorf("%s %s returned %d", request.Method, request.URL.Path, wrapped.Status()))
		}
	})
}
