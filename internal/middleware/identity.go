package middleware

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"
)

// DefaultActingUser is recorded on audit fields when the caller does not
// identify itself.
const DefaultActingUser = "system"

// IdentityMiddleware resolves the acting user for audit attribution from the
// X-User-ID header. Authentication is an upstream concern; this only tags who
// the gateway says is acting.
func IdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			userID = DefaultActingUser
		}

		c.Set(string(userIDKey), userID)
		ctx := context.WithValue(c.Request.Context(), userIDKey, userID)

		// Enrich the request logger so every line carries the actor.
		logger := GetLoggerFromCtx(ctx).With(slog.String("user_id", userID))
		ctx = context.WithValue(ctx, loggerCtxKey, logger)

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
