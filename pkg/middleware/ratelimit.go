package middleware

import (
	"net/http"

	"studio-booking/pkg/ratelimit"
	"studio-booking/pkg/utils"

	"go.uber.org/zap"
)

// RateLimit throttles requests per client IP via the injected limiter.
func RateLimit(limiter ratelimit.Limiter, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := utils.ClientIP(r.RemoteAddr, r.Header.Get("X-Forwarded-For"))

			if !limiter.Allow(key) {
				logger.Warn("Request rate limited",
					zap.String("ip", key),
					zap.String("path", r.URL.Path),
				)
				utils.ResponseTooManyRequests(w, "Too many requests, try again later")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
