package services

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/convertly/currency_converter_web/internal/core/domain"
	portssvc "github.com/convertly/currency_converter_web/internal/core/ports/services"
	"github.com/convertly/currency_converter_web/internal/platform/config"
)

// Cookie names match what the backend ecosystem expects: the user profile,
// the opaque bearer token and the raw provider identity blob. They live and
// die together.
const (
	cookieUser     = "user"
	cookieToken    = "token"
	cookieProvider = "firebaseUser"
)

// sessionManager persists the session in cookies. It is the only component
// that writes them: Establish on login, Destroy on logout or 401.
type sessionManager struct {
	expiry time.Duration
	domain string
	secure bool
	logger *slog.Logger
}

// NewSessionManager creates the cookie-backed session manager.
func NewSessionManager(cfg *config.Config, logger *slog.Logger) portssvc.SessionSvcFacade {
	return &sessionManager{
		expiry: cfg.SessionExpiryDuration,
		domain: cfg.SessionCookieDomain,
		secure: cfg.SessionCookieSecure,
		logger: logger,
	}
}

// Current reads the session from the request cookies. The token cookie is
// authoritative: without it there is no session, whatever else remains.
func (m *sessionManager) Current(c *gin.Context) *domain.Session {
	token, err := c.Cookie(cookieToken)
	if err != nil || token == "" {
		return nil
	}

	sess := &domain.Session{Token: token}
	if userJSON, err := c.Cookie(cookieUser); err == nil && userJSON != "" {
		if err := json.Unmarshal([]byte(userJSON), &sess.User); err != nil {
			m.logger.Warn("Failed to decode user cookie", slog.String("error", err.Error()))
		}
	}
	if providerJSON, err := c.Cookie(cookieProvider); err == nil && providerJSON != "" {
		sess.ProviderIdentity = json.RawMessage(providerJSON)
	}
	return sess
}

// Establish persists a freshly exchanged session. Last write wins; a single
// browser tab is assumed, so there are no concurrent-writer conflicts.
func (m *sessionManager) Establish(c *gin.Context, sess *domain.Session) error {
	userJSON, err := json.Marshal(sess.User)
	if err != nil {
		return err
	}

	maxAge := int(m.expiry.Seconds())
	c.SetCookie(cookieUser, string(userJSON), maxAge, "/", m.domain, m.secure, true)
	c.SetCookie(cookieToken, sess.Token, maxAge, "/", m.domain, m.secure, true)
	c.SetCookie(cookieProvider, string(sess.ProviderIdentity), maxAge, "/", m.domain, m.secure, true)
	return nil
}

// Destroy clears all session cookies together.
func (m *sessionManager) Destroy(c *gin.Context) {
	c.SetCookie(cookieUser, "", -1, "/", m.domain, m.secure, true)
	c.SetCookie(cookieToken, "", -1, "/", m.domain, m.secure, true)
	c.SetCookie(cookieProvider, "", -1, "/", m.domain, m.secure, true)
}

// TokenExpiry inspects the bearer token without verifying it. The backend
// issues JWTs, so a parseable exp claim lets the route guard skip a doomed
// backend round-trip; opaque tokens report ok=false and are trusted as-is.
func (m *sessionManager) TokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
