package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sentivox/sentivox/internal/server/models"
)

// ListMemories returns all memories owned by the requester, newest first.
func (h *Handler) ListMemories(c echo.Context) error {
	user := currentUser(c)

	items, err := h.memories.List(c.Request().Context(), user.ID)
	if err != nil {
		return h.translateError(c, err)
	}
	return respondList(c, items, len(items))
}

// GetMemory returns a single owned memory and bumps its access counters.
func (h *Handler) GetMemory(c echo.Context) error {
	user := currentUser(c)

	item, err := h.memories.Get(c.Request().Context(), c.Param("id"), user.ID)
	if err != nil {
		return h.translateError(c, err)
	}
	return respondData(c, http.StatusOK, item)
}

// CreateMemory stores a new memory for the requester.
func (h *Handler) CreateMemory(c echo.Context) error {
	user := currentUser(c)

	var payload models.Memory
	if err := c.Bind(&payload); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}

	item, err := h.memories.Create(c.Request().Context(), user.ID, &payload)
	if err != nil {
		return h.translateError(c, err)
	}
	return respondData(c, http.StatusCreated, item)
}

// UpdateMemory replaces an owned memory's content.
func (h *Handler) UpdateMemory(c echo.Context) error {
	user := currentUser(c)

	var payload models.Memory
	if err := c.Bind(&payload); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}

	item, err := h.memories.Update(c.Request().Context(), c.Param("id"), user.ID, &payload)
	if err != nil {
		return h.translateError(c, err)
	}
	return respondData(c, http.StatusOK, item)
}

// DeleteMemory removes an owned memory.
func (h *Handler) DeleteMemory(c echo.Context) error {
	user := currentUser(c)

	if err := h.memories.Delete(c.Request().Context(), c.Param("id"), user.ID); err != nil {
		return h.translateError(c, err)
	}
	return respondData(c, http.StatusOK, map[string]any{})
}
