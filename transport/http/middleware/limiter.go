package middleware

import (
	"hotel/shared"
	"hotel/shared/constant"
	"hotel/transport/http/response"
	"net/http"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/rs/zerolog/log"
)

const (
	cacheKeyRateLimit = "limiter"
)

// RateLimit counts requests in fixed windows: per bearer token when one is sent,
// otherwise per client address and user agent.
func (a *appMiddleware) RateLimit() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			limiter := a.config.App.RateLimiter
			if !limiter.Enable {
				next.ServeHTTP(w, r)

				return
			}

			count, err := a.cache.Increment(r.Context(), a.rateLimitKey(r), limiter.WindowSeconds)
			if err != nil {
				log.Warn().Err(err).Msg("rate limiter unavailable, letting request through")
				next.ServeHTTP(w, r)

				return
			}

			remaining := max(0, int64(limiter.MaxRequests)-count)

			w.Header().Set(constant.RequestHeaderRateLimit, strconv.Itoa(limiter.MaxRequests))
			w.Header().Set(constant.RequestHeaderRateLimitRemaining, strconv.FormatInt(remaining, 10))
			w.Header().Set(constant.RequestHeaderRateLimitWindow, strconv.Itoa(limiter.WindowSeconds))

			if count > int64(limiter.MaxRequests) {
				w.Header().Set(constant.RequestHeaderRetryAfter, strconv.Itoa(limiter.WindowSeconds))
				response.WithRequestLimitExceeded(w)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (a *appMiddleware) rateLimitKey(r *http.Request) string {
	if token, ok := strings.CutPrefix(r.Header.Get(constant.RequestHeaderAuthorization), "Bearer "); ok && token != "" {
		return shared.BuildCacheKey(cacheKeyRateLimit, "token", strconv.FormatUint(xxhash.Sum64String(token), 16))
	}

	return shared.BuildCacheKey(cacheKeyRateLimit, "client", a.getClientIP(r), a.getUA(r))
}

func (a *appMiddleware) getUA(r *http.Request) string {
	ua := r.Header.Get(constant.RequestHeaderUserAgent)
	if ua == "" {
		ua = "unknown"
	}

	return ua
}

// getClientIP prefers the first X-Forwarded-For hop, then X-Real-IP, then the socket address.
func (a *appMiddleware) getClientIP(r *http.Request) string {
	if xff := r.Header.Get(constant.RequestHeaderForwardedFor); xff != "" {
		first, _, _ := strings.Cut(xff, ",")

		return strings.TrimSpace(first)
	}

	if xri := r.Header.Get(constant.RequestHeaderRealIP); xri != "" {
		return strings.TrimSpace(xri)
	}

	return r.RemoteAddr
}
