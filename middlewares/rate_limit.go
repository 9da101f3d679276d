package middlewares

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// visitor holds the limiter and the last time we saw this IP.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type visitorTable struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	newLimit func() *rate.Limiter
}

func newVisitorTable(newLimit func() *rate.Limiter) *visitorTable {
	return &visitorTable{
		visitors: make(map[string]*visitor),
		newLimit: newLimit,
	}
}

func (t *visitorTable) get(ip string) *rate.Limiter {
	t.mu.Lock()
	defer t.mu.Unlock()

	v, exists := t.visitors[ip]
	if !exists {
		v = &visitor{limiter: t.newLimit()}
		t.visitors[ip] = v
	}
	v.lastSeen = time.Now()
	return v.limiter
}

var (
	// General API traffic: 1 request/second average with generous burst.
	apiVisitors = newVisitorTable(func() *rate.Limiter {
		return rate.NewLimiter(rate.Every(time.Second), 100)
	})
	// Auth-sensitive routes get a much stricter budget.
	authVisitors = newVisitorTable(func() *rate.Limiter {
		return rate.NewLimiter(rate.Every(10*time.Second), 20)
	})
)

// RateLimitMiddleware applies the per-IP limit for all routes.
func RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !apiVisitors.get(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests. Please slow down.",
			})
			return
		}
		c.Next()
	}
}

// LoginRateLimitMiddleware applies the stricter per-IP limit for auth routes.
func LoginRateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authVisitors.get(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many authentication attempts. Please wait and try again.",
			})
			return
		}
		c.Next()
	}
}
