package httpapi

import (
	"net/http"
	"runtime"
	"time"

	"github.com/labstack/echo/v4"
)

// Welcome greets clients hitting the API root.
func (h *Handler) Welcome(c echo.Context) error {
	return respondData(c, http.StatusOK, map[string]any{
		"message": "Welcome to Sentivox API",
		"version": "1.0.0",
	})
}

// Ping is a bare liveness probe with no dependencies.
func (h *Handler) Ping(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "pong",
	})
}

// Health reports process uptime, runtime stats, and database connectivity.
// It answers 200 even when the database is down so that probes can tell a
// degraded server from a dead one.
func (h *Handler) Health(c echo.Context) error {
	dbStatus := "disconnected"
	if h.db != nil {
		if err := h.db.PingContext(c.Request().Context()); err == nil {
			dbStatus = "connected"
		}
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	return respondData(c, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    time.Since(h.startedAt).Round(time.Second).String(),
		"database":  dbStatus,
		"runtime": map[string]any{
			"goroutines":   runtime.NumGoroutine(),
			"allocBytes":   mem.Alloc,
			"sysBytes":     mem.Sys,
			"numGC":        mem.NumGC,
			"goVersion":    runtime.Version(),
			"numCPU":       runtime.NumCPU(),
			"architecture": runtime.GOARCH,
		},
	})
}
