// internal/middleware/rate_limit.go
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type RateLimiter struct {
	visitors map[string]*visitor
	mtx      sync.Mutex
	rate     rate.Limit
	burst    int
}

func NewRateLimiter(r rate.Limit, b int) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		rate:     r,
		burst:    b,
	}

	// Clean up old visitors every minute
	go rl.cleanupVisitors()

	return rl
}

func (rl *RateLimiter) cleanupVisitors() {
	for {
		time.Sleep(time.Minute)
		rl.mtx.Lock()
		for ip, v := range rl.visitors {
			if time.Since(v.lastSeen) > 3*time.Minute {
				delete(rl.visitors, ip)
			}
		}
		rl.mtx.Unlock()
	}
}

func (rl *RateLimiter) getVisitor(ip string) *rate.Limiter {
	rl.mtx.Lock()
	defer rl.mtx.Unlock()

	v, exists := rl.visitors[ip]
	if !exists {
		limiter := rate.NewLimiter(rl.rate, rl.burst)
		rl.visitors[ip] = &visitor{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		limiter := rl.getVisitor(ip)

		if !limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Please try again later.",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

var (
	generalLimiter *RateLimiter
	authLimiter    *RateLimiter
	uploadLimiter  *RateLimiter
	limiterOnce    sync.Once
)

func initLimiters() {
	limiterOnce.Do(func() {
		generalLimiter = NewRateLimiter(rate.Every(time.Second/10), 20) // 10 req/s
		authLimiter = NewRateLimiter(rate.Every(time.Second), 5)        // 1 req/s
		uploadLimiter = NewRateLimiter(rate.Every(time.Second), 3)
	})
}

func GeneralRateLimit() gin.HandlerFunc {
	initLimiters()
	return generalLimiter.Middleware()
}

func AuthRateLimit() gin.HandlerFunc {
	initLimiters()
	return authLimiter.Middleware()
}

func UploadRateLimit() gin.HandlerFunc {
	initLimiters()
	return uploadLimiter.Middleware()
}
