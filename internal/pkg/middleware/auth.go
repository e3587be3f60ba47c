package middleware

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/matias-dev/api-rest/internal/pkg/auth"
)

// sessionKey is the gin context key the filter stores the session under.
const sessionKey = "session"

// SessionFilter runs once per request, before any endpoint logic. It tries to
// extract a bearer token from the Authorization header and, when the token
// verifies, attaches the derived session to the request context. A missing
// header, wrong scheme or failed verification is not an error here: the
// request proceeds unauthenticated and every endpoint that needs an identity
// rejects it explicitly. The filter never writes a response.
func SessionFilter(tokens *auth.TokenService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.Next()
			return
		}

		sess, ok := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
		if !ok {
			logger.Debug("Request carried an unverifiable token, proceeding unauthenticated",
				slog.String("path", c.Request.URL.Path))
			c.Next()
			return
		}

		c.Set(sessionKey, sess)
		c.Next()
	}
}

// GetSession returns the session attached by SessionFilter, if any.
func GetSession(c *gin.Context) (auth.Session, bool) {
	v, exists := c.Get(sessionKey)
	if !exists {
		return auth.Session{}, false
	}
	sess, ok := v.(auth.Session)
	return sess, ok
}
