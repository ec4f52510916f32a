package http

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/qcar/dispatch/internal/pkg/middleware"
	"github.com/qcar/dispatch/internal/pkg/models"
	"github.com/qcar/dispatch/internal/utils"
	"github.com/qcar/dispatch/services/orders"
)

// OrdersHandler exposes the order lifecycle over HTTP
type OrdersHandler struct {
	orderUC orders.OrderUC
}

// NewOrdersHandler creates the orders HTTP handler
func NewOrdersHandler(orderUC orders.OrderUC) *OrdersHandler {
	return &OrdersHandler{orderUC: orderUC}
}

// CreateOrder handles POST /orders
func (h *OrdersHandler) CreateOrder(c echo.Context) error {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "missing authentication")
	}

	var req models.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "invalid request payload")
	}
	// The passenger is whoever is authenticated, not whatever the body
	// claims.
	req.PassengerID = callerID

	order, err := h.orderUC.CreateOrder(c.Request().Context(), req)
	if err != nil {
		return utils.MapErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusCreated, "order created", order)
}

// GetOrder handles GET /orders/:id
func (h *OrdersHandler) GetOrder(c echo.Context) error {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "invalid order id")
	}

	order, err := h.orderUC.GetOrder(c.Request().Context(), orderID)
	if err != nil {
		return utils.MapErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "order retrieved", order)
}

// ListOrders handles GET /orders?status=
func (h *OrdersHandler) ListOrders(c echo.Context) error {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "missing authentication")
	}

	var status *models.OrderStatus
	if s := c.QueryParam("status"); s != "" {
		st := models.OrderStatus(s)
		status = &st
	}

	list, err := h.orderUC.ListOrders(c.Request().Context(), callerID, middleware.CallerRole(c), status)
	if err != nil {
		return utils.MapErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "orders retrieved", list)
}

// MarkArrived handles POST /orders/:id/arrive
func (h *OrdersHandler) MarkArrived(c echo.Context) error {
	return h.driverTransition(c, h.orderUC.MarkArrived, "driver arrived")
}

// StartTrip handles POST /orders/:id/start
func (h *OrdersHandler) StartTrip(c echo.Context) error {
	return h.driverTransition(c, h.orderUC.StartTrip, "trip started")
}

// CompleteOrder handles POST /orders/:id/complete
func (h *OrdersHandler) CompleteOrder(c echo.Context) error {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "missing authentication")
	}
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "invalid order id")
	}

	var req models.CompleteOrderRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "invalid request payload")
	}

	order, err := h.orderUC.CompleteOrder(c.Request().Context(), orderID, callerID, req)
	if err != nil {
		return utils.MapErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "order completed", order)
}

// CancelOrder handles POST /orders/:id/cancel
func (h *OrdersHandler) CancelOrder(c echo.Context) error {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "missing authentication")
	}
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "invalid order id")
	}

	var req models.CancelOrderRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "invalid request payload")
	}

	order, err := h.orderUC.CancelOrder(c.Request().Context(), orderID, callerID, req.Reason)
	if err != nil {
		return utils.MapErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "order cancelled", order)
}

func (h *OrdersHandler) driverTransition(
	c echo.Context,
	fn func(ctx context.Context, orderID, driverID uuid.UUID) (*models.Order, error),
	message string,
) error {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "missing authentication")
	}
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "invalid order id")
	}

	order, err := fn(c.Request().Context(), orderID, callerID)
	if err != nil {
		return utils.MapErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, message, order)
}
