package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
	usernameKey     = "username"
)

// RequestID attaches an identifier to every request, reusing the
// caller's when present.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}

// RequestLogger emits one structured log line per request.
func RequestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		event := logger.Info()
		if c.Writer.Status() >= http.StatusInternalServerError {
			event = logger.Error()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Str(requestIDKey, c.GetString(requestIDKey)).
			Msg("request handled")
	}
}

// tokenVerifier is the slice of the auth service the guard needs.
type tokenVerifier interface {
	Verify(token string) (string, error)
}

// AuthRequired rejects requests lacking a valid bearer token and
// stores the authenticated username on the context.
func AuthRequired(verifier tokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			writeError(c, http.StatusUnauthorized, msgInvalidToken)
			return
		}

		username, err := verifier.Verify(token)
		if err != nil {
			writeError(c, http.StatusUnauthorized, msgInvalidToken)
			return
		}

		c.Set(usernameKey, username)
		c.Next()
	}
}
