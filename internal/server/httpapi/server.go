// Package httpapi wires the Sentivox services to their public REST surface.
// Routing, middleware, and the response envelope live here; business rules
// stay in the services package.
package httpapi

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/sentivox/sentivox/internal/logging"
	"github.com/sentivox/sentivox/internal/server/config"
	"github.com/sentivox/sentivox/internal/server/models"
	"github.com/sentivox/sentivox/internal/server/services"
)

const (
	tokenCookieName = "token"
	bodyLimit       = "10K"
)

// Handler holds the dependencies of every HTTP endpoint.
type Handler struct {
	config        *config.Config
	logger        logging.Logger
	users         *services.UserService
	conversations *services.ConversationService
	memories      *services.MemoryService
	db            *sql.DB
	startedAt     time.Time
}

// NewHandler builds the endpoint set. The db handle is only used by the
// health endpoint to report connectivity.
func NewHandler(cfg *config.Config, logger logging.Logger,
	users *services.UserService, conversations *services.ConversationService,
	memories *services.MemoryService, db *sql.DB) *Handler {
	return &Handler{
		config:        cfg,
		logger:        logger,
		users:         users,
		conversations: conversations,
		memories:      memories,
		db:            db,
		startedAt:     time.Now(),
	}
}

// NewEcho configures an echo instance with the full middleware chain and
// registers all routes on it.
func (h *Handler) NewEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			h.logger.Info(c.Request().Context(), "request",
				"method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency.String())
			return nil
		},
	}))
	e.Use(middleware.Secure())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{h.config.FrontendURL},
		AllowCredentials: true,
	}))
	e.Use(middleware.BodyLimit(bodyLimit))
	e.Use(middleware.RateLimiterWithConfig(h.rateLimiterConfig()))

	h.RegisterRoutes(e)
	return e
}

// rateLimiterConfig spreads the per-window request budget over the window
// as a token bucket keyed by client IP.
func (h *Handler) rateLimiterConfig() middleware.RateLimiterConfig {
	perSecond := float64(h.config.RateLimitMax) / h.config.RateLimitWindow.Seconds()
	return middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(perSecond),
			Burst:     h.config.RateLimitMax,
			ExpiresIn: h.config.RateLimitWindow,
		}),
		ErrorHandler: func(c echo.Context, err error) error {
			return respondError(c, http.StatusForbidden, "Too many requests")
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return respondError(c, http.StatusTooManyRequests, "Too many requests, please try again later")
		},
	}
}

// RegisterRoutes attaches every endpoint under /api/v1.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Welcome)

	api := e.Group("/api/v1")
	api.GET("/health", h.Health)
	api.GET("/ping", h.Ping)

	authGroup := api.Group("/auth")
	authGroup.POST("/register", h.Register)
	authGroup.POST("/login", h.Login)
	authGroup.GET("/me", h.Me, h.Protect)
	authGroup.GET("/logout", h.Logout, h.Protect)

	conv := api.Group("/conversations", h.Protect, h.RequireRoles(models.RoleUser, models.RoleAdmin))
	conv.GET("", h.ListConversations)
	conv.POST("", h.CreateConversation)
	conv.GET("/:id", h.GetConversation)
	conv.PUT("/:id", h.UpdateConversation)
	conv.DELETE("/:id", h.DeleteConversation)

	mem := api.Group("/memories", h.Protect, h.RequireRoles(models.RoleUser, models.RoleAdmin))
	mem.GET("", h.ListMemories)
	mem.POST("", h.CreateMemory)
	mem.GET("/:id", h.GetMemory)
	mem.PUT("/:id", h.UpdateMemory)
	mem.DELETE("/:id", h.DeleteMemory)

	e.RouteNotFound("/*", func(c echo.Context) error {
		return respondError(c, http.StatusNotFound, "Route not found")
	})
}
