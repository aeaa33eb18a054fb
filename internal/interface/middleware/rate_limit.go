package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/patientpal/patientpal-server/pkg/response"
)

// incrWithTTL increments a counter and sets its expiry only on the
// first hit of the window, so the window does not slide on every
// request.
var incrWithTTL = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// KeyFunc derives the rate-limit bucket key for a request.
type KeyFunc func(c *gin.Context) string

// KeyByIP buckets by client IP.
func KeyByIP(prefix string) KeyFunc {
	return func(c *gin.Context) string {
		return fmt.Sprintf("rl:%s:ip:%s", prefix, clientIP(c))
	}
}

// KeyByIPAndPath buckets by client IP and request path.
func KeyByIPAndPath(prefix string) KeyFunc {
	return func(c *gin.Context) string {
		return fmt.Sprintf("rl:%s:ip:%s:path:%s", prefix, clientIP(c), c.FullPath())
	}
}

// KeyByMemberID buckets by the authenticated member, falling back to
// the client IP when the request is anonymous.
func KeyByMemberID(prefix string) KeyFunc {
	return func(c *gin.Context) string {
		if id := c.GetString(CtxMemberIDKey); id != "" {
			return fmt.Sprintf("rl:%s:member:%s", prefix, id)
		}
		return fmt.Sprintf("rl:%s:ip:%s", prefix, clientIP(c))
	}
}

func clientIP(c *gin.Context) string {
	if ip := c.GetString("real_ip"); ip != "" {
		return ip
	}
	return c.ClientIP()
}

// RateLimitOptions configures a fixed-window limiter.
type RateLimitOptions struct {
	Limit  int
	Window time.Duration
	Key    KeyFunc
	// Skip short-circuits the limiter for a request when it returns true.
	Skip func(c *gin.Context) bool
}

// RateLimit enforces a fixed-window counter in Redis. It fails open:
// if Redis is unreachable the request is allowed through.
func RateLimit(rdb *redis.Client, logger *logrus.Logger, opts RateLimitOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil || (opts.Skip != nil && opts.Skip(c)) {
			c.Next()
			return
		}

		key := opts.Key(c)
		count, err := incrWithTTL.Run(c.Request.Context(), rdb, []string{key}, opts.Window.Milliseconds()).Int64()
		if err != nil {
			if logger != nil {
				logger.WithError(err).Warn("rate limit check failed, allowing request")
			}
			c.Next()
			return
		}

		remaining := int64(opts.Limit) - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(opts.Limit))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if count > int64(opts.Limit) {
			ttl, terr := rdb.PTTL(c.Request.Context(), key).Result()
			if terr == nil && ttl > 0 {
				c.Header("Retry-After", strconv.FormatInt(int64(ttl.Seconds())+1, 10))
			}
			response.AbortError(c, http.StatusTooManyRequests, "too many requests", gin.H{"code": "RATE_LIMITED"})
			return
		}

		c.Next()
	}
}

// AllowPrivateIP is a Skip func that bypasses the limiter for loopback
// and RFC1918 clients, so local tooling and health probes are not
// throttled.
func AllowPrivateIP(c *gin.Context) bool {
	ip := net.ParseIP(clientIP(c))
	if ip == nil {
		return false
	}
	return ip.IsLoopback() || ip.IsPrivate()
}
