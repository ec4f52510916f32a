package utils

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/qcar/dispatch/internal/pkg/apperrors"
)

// Response represents a standard API response
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    int    `json:"code,omitempty"`
}

// SuccessResponse sends a success response with data
func SuccessResponse(c echo.Context, statusCode int, message string, data interface{}) error {
	return c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponseHandler sends an error response
func ErrorResponseHandler(c echo.Context, statusCode int, errorMessage string) error {
	return c.JSON(statusCode, ErrorResponse{
		Success: false,
		Error:   errorMessage,
		Code:    statusCode,
	})
}

// BadRequestResponse sends a 400 Bad Request response
func BadRequestResponse(c echo.Context, errorMessage string) error {
	return ErrorResponseHandler(c, http.StatusBadRequest, errorMessage)
}

// UnauthorizedResponse sends a 401 Unauthorized response
func UnauthorizedResponse(c echo.Context, errorMessage string) error {
	if errorMessage == "" {
		errorMessage = "Unauthorized"
	}
	return ErrorResponseHandler(c, http.StatusUnauthorized, errorMessage)
}

// MapErrorResponse maps a typed service error to the matching HTTP
// response. The only failure surfaced verbatim is a lost accept race;
// dependency failures present as a generic transient message.
func MapErrorResponse(c echo.Context, err error) error {
	switch {
	case errors.Is(err, apperrors.ErrInvalidInput):
		return ErrorResponseHandler(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperrors.ErrUnauthorized):
		return ErrorResponseHandler(c, http.StatusForbidden, err.Error())
	case errors.Is(err, apperrors.ErrNotFound):
		return ErrorResponseHandler(c, http.StatusNotFound, err.Error())
	case apperrors.IsPreconditionFailed(err):
		return ErrorResponseHandler(c, http.StatusConflict, err.Error())
	case errors.Is(err, apperrors.ErrDependencyUnavailable):
		return ErrorResponseHandler(c, http.StatusServiceUnavailable, "temporarily unavailable, please retry")
	default:
		return ErrorResponseHandler(c, http.StatusInternalServerError, "internal server error")
	}
}
