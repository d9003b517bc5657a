package services

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/convertly/currency_converter_web/internal/core/domain"
)

// SessionSvcFacade is the single source of truth for "is logged in". All
// session mutation goes through Establish and Destroy; no other component
// writes the session cookies.
type SessionSvcFacade interface {
	// Current reads the session from the request cookies, nil when absent.
	Current(c *gin.Context) *domain.Session

	// Establish persists a freshly exchanged session (login).
	Establish(c *gin.Context, sess *domain.Session) error

	// Destroy clears all session cookies together (logout or 401).
	Destroy(c *gin.Context)

	// TokenExpiry reports the bearer token's expiry when it parses as a
	// JWT. ok is false for opaque tokens, which are treated as unexpired.
	TokenExpiry(token string) (expiry time.Time, ok bool)
}
