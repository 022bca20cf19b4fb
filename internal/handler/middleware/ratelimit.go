package middleware

import (
	"context"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"restaurant-reservation/internal/handler/httperr"
	"restaurant-reservation/internal/infra/ratelimit"
	"restaurant-reservation/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

var ErrRateLimited = errs.New("rate limit exceeded")

type RateLimiter interface {
	Allow(ctx context.Context, key string) (ratelimit.Decision, error)
	Capacity() int
}

type RateLimitMiddleware struct {
	limiter RateLimiter
}

// NewRateLimitMiddleware accepts a nil limiter, in which case every request passes.
func NewRateLimitMiddleware(limiter RateLimiter) *RateLimitMiddleware {
	return &RateLimitMiddleware{limiter: limiter}
}

// Limit throttles per caller and route. Redis trouble lets the request through.
func (m *RateLimitMiddleware) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil || m.limiter == nil {
			return
		}

		decision, err := m.limiter.Allow(c.Request.Context(), rateLimitKey(c))
		if err != nil {
			slog.Warn("rate limiter unavailable, allowing request", "error", err.Error(), "path", c.FullPath())
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(m.limiter.Capacity()))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(decision.Remaining, 10))

		if !decision.Allowed {
			retryAfter := int(math.Ceil(decision.RetryAfter.Seconds()))
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			httperr.AbortWithError(c, http.StatusTooManyRequests, ErrRateLimited, "Too many requests", nil)
			return
		}
	}
}

func rateLimitKey(c *gin.Context) string {
	subject := "ip:" + c.ClientIP()
	if userID, ok := GetUserID(c); ok {
		subject = "user:" + userID
	}
	return subject + ":" + c.Request.Method + " " + c.FullPath()
}
