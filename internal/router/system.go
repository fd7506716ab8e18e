package router

import (
	"github.com/deppfellow/storefront/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers routes outside the versioned API.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)
}
