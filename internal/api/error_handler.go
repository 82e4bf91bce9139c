package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/workforcehq/employee-api/internal/core/domain"
)

// errorResponse is the canonical error envelope. Message is always present;
// Error carries the underlying detail and is only attached on 500s.
type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors and attaches their message for diagnostics.
//   - Renders a consistent JSON envelope: {"message": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		resp, code := resolveError(err, log, c)
		_ = c.JSON(code, resp)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (errorResponse, int) {
	// Echo's own errors (bind failures, 404 from router, handler-built 400s).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return errorResponse{Message: fmt.Sprintf("%v", he.Message)}, he.Code
	}

	// Known domain errors map to deterministic status codes. Duplicate
	// identity deliberately yields 400, not 409.
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return errorResponse{Message: err.Error()}, http.StatusBadRequest
	case errors.Is(err, domain.ErrUserExists):
		return errorResponse{Message: "User with this email or username already exists"}, http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidCredentials):
		return errorResponse{Message: "Invalid credentials"}, http.StatusUnauthorized
	case errors.Is(err, domain.ErrTooManyAttempts):
		return errorResponse{Message: "Too many failed login attempts, try again later"}, http.StatusTooManyRequests
	case errors.Is(err, domain.ErrTokenInvalid):
		return errorResponse{Message: "Invalid or expired token"}, http.StatusForbidden
	case errors.Is(err, domain.ErrEmployeeNotFound):
		return errorResponse{Message: "Employee not found"}, http.StatusNotFound
	}

	// Unexpected error: log the real cause and attach it as detail.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return errorResponse{Message: "Internal server error", Error: err.Error()}, http.StatusInternalServerError
}
