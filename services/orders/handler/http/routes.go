package http

import (
	"github.com/labstack/echo/v4"

	"github.com/qcar/dispatch/internal/pkg/middleware"
	"github.com/qcar/dispatch/internal/pkg/models"
	ws "github.com/qcar/dispatch/services/orders/handler/websocket"
)

// RegisterRoutes mounts the order lifecycle endpoints. The accept and
// track endpoints are registered by the dispatch and location services
// on the same group.
func RegisterRoutes(e *echo.Echo, jwtCfg models.JWTConfig, h *OrdersHandler, stream *ws.StreamHandler) {
	auth := middleware.JWTAuthMiddleware(jwtCfg)

	g := e.Group("/orders", auth)
	g.POST("", h.CreateOrder)
	g.GET("", h.ListOrders)
	g.GET("/:id", h.GetOrder)
	g.POST("/:id/arrive", h.MarkArrived)
	g.POST("/:id/start", h.StartTrip)
	g.POST("/:id/complete", h.CompleteOrder)
	g.POST("/:id/cancel", h.CancelOrder)

	e.GET("/ws/orders/:id", stream.StreamOrder, auth)
}
