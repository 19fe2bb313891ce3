package middleware

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/fitcoach/backend/internal/telemetry/metrics"
	"github.com/fitcoach/backend/pkg"

	"github.com/go-redis/redis_rate/v9"
	log "github.com/sirupsen/logrus"
)

type RequestRateLimiter interface {
	Allow(ctx context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error)
}

// RateLimitRule is one named limiter. Requests are counted per client IP.
type RateLimitRule struct {
	Name      string
	Limit     redis_rate.Limit
	ErrorCode string
}

const (
	RateLimitWindow = 15 * time.Minute

	ErrCodeTooManyRequests = "too_many_requests"
	ErrCodeTooManyAttempts = "too_many_attempts"
)

// NewRateLimitRule allows max requests per client IP in every RateLimitWindow.
func NewRateLimitRule(name string, max int, errorCode string) RateLimitRule {
	return RateLimitRule{
		Name: name,
		Limit: redis_rate.Limit{
			Rate:   max,
			Burst:  max,
			Period: RateLimitWindow,
		},
		ErrorCode: errorCode,
	}
}

// RateLimit rejects requests over the rule with 429. Limiter failures let
// the request through.
func RateLimit(rateLimiter RequestRateLimiter, rule RateLimitRule, metricsManager *metrics.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, err := pkg.ReadUserIP(r)
			if err != nil {
				ip = r.RemoteAddr
			}

			res, err := rateLimiter.Allow(r.Context(), fmt.Sprintf("%s||%s", rule.Name, ip), rule.Limit)
			if err != nil {
				log.Errorf("rate limiter %s: %s", rule.Name, err)
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("RateLimit-Limit", strconv.Itoa(rule.Limit.Rate))
			w.Header().Set("RateLimit-Remaining", strconv.Itoa(res.Remaining))

			if res.Allowed > 0 {
				next.ServeHTTP(w, r)
				return
			}

			if metricsManager != nil {
				metricsManager.CounterRateLimitedRequests.WithLabelValues(rule.Name).Inc()
			}
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(res.RetryAfter.Seconds()))))
			pkg.WriteError(w, http.StatusTooManyRequests, rule.ErrorCode)
		})
	}
}
