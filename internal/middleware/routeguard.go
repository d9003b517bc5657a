package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/convertly/currency_converter_web/internal/core/ports/services"
)

const loginPath = "/login"

// RouteGuard protects authenticated views. Without a session token the guard
// clears any stale user cookies and redirects to the login entry point. The
// check runs once per request; a 401 arising mid-flight is the HTTP client
// interceptor's concern and does not itself navigate.
//
// onExpire receives the session key of a definitively expired session so
// per-session in-memory state can be dropped alongside the cookies.
func RouteGuard(sessions portssvc.SessionSvcFacade, onExpire func(sessionKey string)) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		sess := sessions.Current(c)
		if !sess.Authenticated() {
			// Clear whatever stale record remains and send to login.
			sessions.Destroy(c)
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}

		// A bearer that parses as a JWT with a past exp is dead weight: the
		// next backend call would 401 anyway, so treat it as absent now.
		if expiry, ok := sessions.TokenExpiry(sess.Token); ok && time.Now().After(expiry) {
			logger.Info("Session token expired, clearing session",
				slog.Time("expired_at", expiry))
			if onExpire != nil {
				onExpire(sess.Key())
			}
			sessions.Destroy(c)
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}

		c.Set(string(sessionKey), sess)
		c.Next()
	}
}

// RedirectIfAuthenticated is the login page's inverse guard: a present
// session token goes straight to the authenticated area.
func RedirectIfAuthenticated(sessions portssvc.SessionSvcFacade, target string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sess := sessions.Current(c); sess.Authenticated() {
			c.Redirect(http.StatusFound, target)
			c.Abort()
			return
		}
		c.Next()
	}
}
