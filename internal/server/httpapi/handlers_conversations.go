package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sentivox/sentivox/internal/server/models"
)

// ListConversations returns all conversations owned by the requester,
// newest first.
func (h *Handler) ListConversations(c echo.Context) error {
	user := currentUser(c)

	items, err := h.conversations.List(c.Request().Context(), user.ID)
	if err != nil {
		return h.translateError(c, err)
	}
	return respondList(c, items, len(items))
}

// GetConversation returns a single owned conversation. Records owned by
// other users are indistinguishable from missing ones.
func (h *Handler) GetConversation(c echo.Context) error {
	user := currentUser(c)

	item, err := h.conversations.Get(c.Request().Context(), c.Param("id"), user.ID)
	if err != nil {
		return h.translateError(c, err)
	}
	return respondData(c, http.StatusOK, item)
}

// CreateConversation stores a new conversation for the requester.
func (h *Handler) CreateConversation(c echo.Context) error {
	user := currentUser(c)

	var payload models.Conversation
	if err := c.Bind(&payload); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}

	item, err := h.conversations.Create(c.Request().Context(), user.ID, &payload)
	if err != nil {
		return h.translateError(c, err)
	}
	return respondData(c, http.StatusCreated, item)
}

// UpdateConversation replaces an owned conversation's content.
func (h *Handler) UpdateConversation(c echo.Context) error {
	user := currentUser(c)

	var payload models.Conversation
	if err := c.Bind(&payload); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}

	item, err := h.conversations.Update(c.Request().Context(), c.Param("id"), user.ID, &payload)
	if err != nil {
		return h.translateError(c, err)
	}
	return respondData(c, http.StatusOK, item)
}

// DeleteConversation removes an owned conversation.
func (h *Handler) DeleteConversation(c echo.Context) error {
	user := currentUser(c)

	if err := h.conversations.Delete(c.Request().Context(), c.Param("id"), user.ID); err != nil {
		return h.translateError(c, err)
	}
	return respondData(c, http.StatusOK, map[string]any{})
}
