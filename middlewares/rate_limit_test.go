package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestVisitorTableReusesLimiterPerIP(t *testing.T) {
	table := newVisitorTable(func() *rate.Limiter {
		return rate.NewLimiter(rate.Every(time.Second), 1)
	})

	first := table.get("10.0.0.1")
	assert.Same(t, first, table.get("10.0.0.1"))
	assert.NotSame(t, first, table.get("10.0.0.2"))
}

func TestLoginRateLimitBlocksAfterBudget(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// Tiny budget so the test exercises the rejection path without waiting.
	table := newVisitorTable(func() *rate.Limiter {
		return rate.NewLimiter(rate.Every(time.Minute), 2)
	})
	limit := func(c *gin.Context) {
		if !table.get(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many authentication attempts. Please wait and try again.",
			})
			return
		}
		c.Next()
	}

	r := gin.New()
	r.POST("/login", limit, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": http.StatusOK})
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req, _ := http.NewRequest(http.MethodPost, "/login", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}
