package httpapi

import "github.com/gin-gonic/gin"

// Message codes projected into error responses. The wire carries the
// code, never the underlying cause.
const (
	msgFindPricesError    = "find.prices.error"
	msgInvalidData        = "invalid.data"
	msgInvalidCredentials = "invalid.credentials"
	msgInvalidToken       = "invalid.token"
)

type errorResponse struct {
	Error   string   `json:"error"`
	Code    int      `json:"code"`
	Details []string `json:"details,omitempty"`
}

func writeError(c *gin.Context, status int, message string, details ...string) {
	c.AbortWithStatusJSON(status, errorResponse{
		Error:   message,
		Code:    status,
		Details: details,
	})
}
