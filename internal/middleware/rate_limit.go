package middleware

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"petify/internal/platform/httpx"
	"petify/internal/platform/logger"
)

// Counter cuenta hits en una ventana fija. Devuelve el contador actual y el
// TTL restante de la ventana.
type Counter interface {
	Hit(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

// INCR atómico + PEXPIRE sólo en el primer hit de la ventana.
var incrExpireScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return {current, redis.call("PTTL", KEYS[1])}
`)

type RedisCounter struct {
	rdb *redis.Client
}

func NewRedisCounter(rdb *redis.Client) *RedisCounter {
	return &RedisCounter{rdb: rdb}
}

func (c *RedisCounter) Hit(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	res, err := incrExpireScript.Run(ctx, c.rdb, []string{key}, window.Milliseconds()).Int64Slice()
	if err != nil {
		return 0, 0, err
	}
	if len(res) != 2 {
		return 0, 0, redis.Nil
	}
	return res[0], time.Duration(res[1]) * time.Millisecond, nil
}

type KeyFunc func(r *http.Request) string

// KeyByIPAndPath limita por IP de cliente + path. Usar después de chimw.RealIP.
func KeyByIPAndPath(prefix string) KeyFunc {
	return func(r *http.Request) string {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil || ip == "" {
			ip = r.RemoteAddr
		}
		if ip == "" {
			ip = "unknown"
		}
		return prefix + ":" + r.URL.Path + ":ip:" + ip
	}
}

// RateLimit con ventana fija. Counter nil o límites inválidos => passthrough.
// Si el counter falla, el request pasa (fail-open).
func RateLimit(counter Counter, max int, window time.Duration, keyFn KeyFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if counter == nil || max <= 0 || window <= 0 || keyFn == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			count, ttl, err := counter.Hit(r.Context(), keyFn(r), window)
			if err != nil {
				logger.FromContext(r.Context()).Warn("rate limit unavailable", map[string]any{"error": err})
				next.ServeHTTP(w, r)
				return
			}

			remaining := int64(max) - count
			if remaining < 0 {
				remaining = 0
			}
			resetSec := int(ttl.Seconds())
			if resetSec < 0 {
				resetSec = 0
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(max))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
			w.Header().Set("X-RateLimit-Reset", strconv.Itoa(resetSec))

			if count > int64(max) {
				if resetSec > 0 {
					w.Header().Set("Retry-After", strconv.Itoa(resetSec))
				}
				httpx.WriteDetail(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
