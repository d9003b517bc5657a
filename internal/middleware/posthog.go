package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/convertly/currency_converter_web/internal/utils"
)

// pathsToSkip contains paths that should not be tracked.
var pathsToSkip = map[string]bool{
	"/health": true,
}

// PosthogMiddleware tracks successful authenticated page views and actions.
// The device identifier is attached as an event property; per the device-ID
// contract it is an analytics signal only and never load-bearing.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper, deviceModel string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if posthogClient == nil || !posthogClient.IsInitialized() || pathsToSkip[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		sess, ok := SessionFromContext(c)
		if !ok {
			// Unauthenticated traffic (login page, OAuth dance) is not tracked.
			return
		}

		// Event name from the route path, e.g. "/currencies/convert" ->
		// "currencies_convert".
		eventName := strings.TrimPrefix(c.FullPath(), "/")
		eventName = strings.ReplaceAll(eventName, "/", "_")
		if eventName == "" {
			return
		}

		posthogClient.Enqueue(sess.User.UserID, eventName, map[string]any{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status_code": c.Writer.Status(),
			"device_id":   utils.DeriveDeviceID(deviceModel, c.Request.UserAgent()),
		})
	}
}
