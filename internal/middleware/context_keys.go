package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/convertly/currency_converter_web/internal/core/domain"
)

// sessionKey is the key used to store the authenticated session in the Gin
// context. Set by the route guard.
const sessionKey = contextKey("session")

// SessionFromContext retrieves the authenticated session placed in the Gin
// context by the route guard. It returns the session and a boolean
// indicating if it was found.
func SessionFromContext(c *gin.Context) (*domain.Session, bool) {
	sessVal, exists := c.Get(string(sessionKey))
	if !exists {
		return nil, false
	}

	sess, ok := sessVal.(*domain.Session)
	if !ok || sess == nil {
		return nil, false
	}
	return sess, true
}
