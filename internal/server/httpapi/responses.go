package httpapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sentivox/sentivox/internal/common"
)

// Response is the envelope shared by every endpoint.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Token   string `json:"token,omitempty"`
	Error   string `json:"error,omitempty"`
	Stack   string `json:"stack,omitempty"`
}

func respondData(c echo.Context, status int, data any) error {
	return c.JSON(status, Response{Success: true, Data: data})
}

func respondList(c echo.Context, data any, count int) error {
	return c.JSON(http.StatusOK, Response{Success: true, Data: data, Count: &count})
}

func respondError(c echo.Context, status int, message string) error {
	return c.JSON(status, Response{Success: false, Error: message})
}

// translateError maps service and repository sentinels to the HTTP taxonomy.
// Unexpected failures become a generic 500; the concrete error is only ever
// logged, never returned to the client in production.
func (h *Handler) translateError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrValidation):
		return respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrDuplicateEmail):
		return respondError(c, http.StatusBadRequest, common.ErrDuplicateEmail.Error())
	case errors.Is(err, common.ErrorUnauthorized):
		return respondError(c, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, common.ErrorForbidden):
		return respondError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, common.ErrorNotFound):
		return respondError(c, http.StatusNotFound, "Resource not found")
	default:
		h.logger.Error(c.Request().Context(), "request failed", "method", c.Request().Method, "path", c.Path(), "error", err.Error())
		resp := Response{Success: false, Error: "Server Error"}
		if !h.config.IsProduction() {
			resp.Stack = err.Error()
		}
		return c.JSON(http.StatusInternalServerError, resp)
	}
}
