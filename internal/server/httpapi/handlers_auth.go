package httpapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a user account and signs the client in.
func (h *Handler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}

	result, err := h.users.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return h.translateError(c, err)
	}

	h.setTokenCookie(c, result.Token)
	return c.JSON(http.StatusCreated, Response{Success: true, Token: result.Token, Data: result.User})
}

// Login verifies credentials and issues a fresh token.
func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return respondError(c, http.StatusBadRequest, "Please provide an email and password")
	}

	token, err := h.users.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return h.translateError(c, err)
	}

	h.setTokenCookie(c, token)
	return c.JSON(http.StatusOK, Response{Success: true, Token: token})
}

// Me returns the authenticated user's profile.
func (h *Handler) Me(c echo.Context) error {
	return respondData(c, http.StatusOK, currentUser(c))
}

// Logout clears the token cookie. The token itself stays valid until it
// expires; clients are expected to discard it.
func (h *Handler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     tokenCookieName,
		Value:    "none",
		Path:     "/",
		Expires:  time.Now().Add(10 * time.Second),
		HttpOnly: true,
		Secure:   h.config.IsProduction(),
	})
	return respondData(c, http.StatusOK, map[string]any{})
}

func (h *Handler) setTokenCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     tokenCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.config.TokenValidityDuration),
		HttpOnly: true,
		Secure:   h.config.IsProduction(),
	})
}
