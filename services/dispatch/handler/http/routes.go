package http

import (
	"github.com/labstack/echo/v4"

	"github.com/qcar/dispatch/internal/pkg/middleware"
	"github.com/qcar/dispatch/internal/pkg/models"
)

// RegisterRoutes mounts the driver-facing dispatch endpoints plus the
// order claim endpoint
func RegisterRoutes(e *echo.Echo, jwtCfg models.JWTConfig, h *DispatchHandler) {
	auth := middleware.JWTAuthMiddleware(jwtCfg)

	g := e.Group("/drivers", auth)
	g.POST("/availability", h.SetAvailability)
	g.GET("/nearby", h.FindNearbyDrivers)
	g.GET("/orders/pending", h.ListPendingOrders)

	e.POST("/orders/:id/accept", h.ClaimOrder, auth)
}
