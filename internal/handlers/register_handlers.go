package handlers

import (
	"github.com/gin-gonic/gin"

	portssvc "github.com/convertly/currency_converter_web/internal/core/ports/services"
	"github.com/convertly/currency_converter_web/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// through the service container interfaces.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	r.GET("/", home)

	// Public authentication routes (login page, consent flow, logout)
	registerAuthRoutes(r, services)

	// Protected conversion routes behind the route guard
	registerCurrencyRoutes(r, services)
}
