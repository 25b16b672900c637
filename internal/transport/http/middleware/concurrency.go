package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/semaphore"

	resp "users-api/internal/transport/http/response"
)

// ConcurrencyLimit caps requests in flight so the store pool is not flooded.
// Waiters give up when their request context ends.
func ConcurrencyLimit(max int64) gin.HandlerFunc {
	if max <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	sem := semaphore.NewWeighted(max)
	return func(c *gin.Context) {
		if err := sem.Acquire(c.Request.Context(), 1); err != nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, resp.Error("server busy"))
			return
		}
		defer sem.Release(1)
		c.Next()
	}
}
