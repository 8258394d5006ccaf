package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

type clientIPKey struct{}

// ClientIPMiddleware resolves the client IP once and stores it in the request context.
func ClientIPMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), clientIPKey{}, ip))
		c.Next()
	}
}

// GetClientIPFromContext returns "" when the middleware did not run.
func GetClientIPFromContext(ctx context.Context) string {
	ip, _ := ctx.Value(clientIPKey{}).(string)
	return ip
}

func clientIP(c *gin.Context) string {
	if ip := GetClientIPFromContext(c.Request.Context()); ip != "" {
		return ip
	}
	return c.ClientIP()
}
