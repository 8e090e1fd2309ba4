package api

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/spotlog/spotlog/internal/visibility"
)

const callerKey = "caller"

// CallerMiddleware materializes the acting user from gateway-supplied
// headers. Token verification happens upstream; this service only
// consumes the resulting identity, threaded explicitly from here on.
func CallerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var caller visibility.Caller

		if raw := c.GetHeader("X-User-Id"); raw != "" {
			if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
				caller.ID = id
				caller.Role = c.GetHeader("X-User-Role")
			}
		}

		c.Set(callerKey, caller)
		c.Next()
	}
}

// callerOf returns the caller attached by CallerMiddleware
func callerOf(c *gin.Context) visibility.Caller {
	if v, ok := c.Get(callerKey); ok {
		if caller, ok := v.(visibility.Caller); ok {
			return caller
		}
	}
	return visibility.Caller{}
}
