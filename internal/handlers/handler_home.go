package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// home redirects the bare root to the login entry point, mirroring the
// application's default route.
func home(c *gin.Context) {
	c.Redirect(http.StatusFound, "/login")
}
