// Package middleware provides HTTP middleware for Tasknest.
// ratelimit.go implements a per-IP rate limiter using a fixed window
// counter stored in Redis. Designed for the signin/signup endpoints, which
// are the brute-force and credential-stuffing targets.
package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/tasknest/tasknest/internal/envelope"
)

// rateLimitKeyPrefix namespaces rate limit counters in Redis.
const rateLimitKeyPrefix = "ratelimit:"

// rateLimitScript increments the window counter and guarantees it carries a
// TTL, in one atomic round trip. A separate INCR + EXPIRE pair can leave the
// key TTL-less if the process dies between the two, throttling that IP
// forever; the TTL check here also heals any such stale key.
var rateLimitScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 or redis.call("TTL", KEYS[1]) < 0 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return count
`)

// RateLimit returns middleware that limits requests per IP to maxRequests
// within the given window duration. Returns 429 when exceeded.
//
// The counter lives in Redis, so the limit holds across restarts and
// replicas. If Redis is unreachable the limiter fails open -- an outage of
// the rate limiter must not take down login.
func RateLimit(rdb *redis.Client, scope string, maxRequests int, window time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			key := fmt.Sprintf("%s%s:%s", rateLimitKeyPrefix, scope, c.RealIP())

			count, err := rateLimitScript.Run(ctx, rdb, []string{key}, window.Milliseconds()).Int64()
			if err != nil {
				slog.Warn("rate limiter unavailable, failing open",
					slog.String("scope", scope),
					slog.Any("error", err),
				)
				return next(c)
			}

			if count > int64(maxRequests) {
				return envelope.JSON(c, http.StatusTooManyRequests,
					nil, "Too many requests. Please try again later.")
			}

			return next(c)
		}
	}
}
