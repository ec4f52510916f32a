package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/qcar/dispatch/internal/pkg/middleware"
	"github.com/qcar/dispatch/internal/pkg/models"
	"github.com/qcar/dispatch/internal/utils"
	"github.com/qcar/dispatch/services/location"
)

// LocationHandler exposes fix ingestion and track retrieval over HTTP
type LocationHandler struct {
	locationUC location.LocationUC
}

// NewLocationHandler creates the location HTTP handler
func NewLocationHandler(locationUC location.LocationUC) *LocationHandler {
	return &LocationHandler{locationUC: locationUC}
}

// IngestFix handles POST /drivers/location
func (h *LocationHandler) IngestFix(c echo.Context) error {
	driverID, ok := middleware.CallerID(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "missing authentication")
	}

	var fix models.Fix
	if err := c.Bind(&fix); err != nil {
		return utils.BadRequestResponse(c, "invalid request payload")
	}
	// Fixes always belong to the authenticated driver.
	fix.DriverID = driverID
	if fix.Timestamp.IsZero() {
		fix.Timestamp = models.Now()
	}

	if err := h.locationUC.ProcessFix(c.Request().Context(), fix); err != nil {
		return utils.MapErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusAccepted, "fix processed", nil)
}

// GetOrderTrack handles GET /orders/:id/track
func (h *LocationHandler) GetOrderTrack(c echo.Context) error {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "invalid order id")
	}

	track, err := h.locationUC.GetOrderTrack(c.Request().Context(), orderID)
	if err != nil {
		return utils.MapErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "order track retrieved", track)
}

// RegisterRoutes mounts the location endpoints
func RegisterRoutes(e *echo.Echo, jwtCfg models.JWTConfig, h *LocationHandler) {
	auth := middleware.JWTAuthMiddleware(jwtCfg)

	e.POST("/drivers/location", h.IngestFix, auth)
	e.GET("/orders/:id/track", h.GetOrderTrack, auth)
}
