package http

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/qcar/dispatch/internal/pkg/middleware"
	"github.com/qcar/dispatch/internal/pkg/models"
	"github.com/qcar/dispatch/internal/utils"
	"github.com/qcar/dispatch/services/dispatch"
)

// DispatchHandler exposes driver availability and order claiming over HTTP
type DispatchHandler struct {
	dispatchUC dispatch.DispatchUC
}

// NewDispatchHandler creates the dispatch HTTP handler
func NewDispatchHandler(dispatchUC dispatch.DispatchUC) *DispatchHandler {
	return &DispatchHandler{dispatchUC: dispatchUC}
}

// SetAvailability handles POST /drivers/availability
func (h *DispatchHandler) SetAvailability(c echo.Context) error {
	driverID, ok := middleware.CallerID(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "missing authentication")
	}

	var req models.AvailabilityRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "invalid request payload")
	}

	if err := h.dispatchUC.SetAvailability(c.Request().Context(), driverID, req); err != nil {
		return utils.MapErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "availability updated", map[string]bool{"online": req.Online})
}

// FindNearbyDrivers handles GET /drivers/nearby?lat=&lng=
func (h *DispatchHandler) FindNearbyDrivers(c echo.Context) error {
	lat, err := strconv.ParseFloat(c.QueryParam("lat"), 64)
	if err != nil {
		return utils.BadRequestResponse(c, "invalid lat")
	}
	lng, err := strconv.ParseFloat(c.QueryParam("lng"), 64)
	if err != nil {
		return utils.BadRequestResponse(c, "invalid lng")
	}

	drivers, err := h.dispatchUC.FindNearbyDrivers(c.Request().Context(), lat, lng)
	if err != nil {
		return utils.MapErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "nearby drivers retrieved", drivers)
}

// ListPendingOrders handles GET /drivers/orders/pending
func (h *DispatchHandler) ListPendingOrders(c echo.Context) error {
	driverID, ok := middleware.CallerID(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "missing authentication")
	}

	pending, err := h.dispatchUC.ListPendingOrdersNearby(c.Request().Context(), driverID)
	if err != nil {
		return utils.MapErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "pending orders retrieved", pending)
}

// ClaimOrder handles POST /orders/:id/accept. The body carries the offer
// round; round 0 (or an empty body) means a direct grab from the pending
// list.
func (h *DispatchHandler) ClaimOrder(c echo.Context) error {
	driverID, ok := middleware.CallerID(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "missing authentication")
	}
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "invalid order id")
	}

	var req models.ClaimRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "invalid request payload")
	}

	order, err := h.dispatchUC.AttemptClaim(c.Request().Context(), orderID, driverID, req.Round)
	if err != nil {
		return utils.MapErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "order accepted", order)
}
