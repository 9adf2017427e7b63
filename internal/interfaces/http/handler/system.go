package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthMessage is the plain-text body of GET /
const HealthMessage = "Catalog service is up and running"

// healthCheckTimeout bounds the store ping of GET /health
const healthCheckTimeout = 2 * time.Second

// Pinger reports whether the backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// SystemHandler handles liveness and health endpoints
type SystemHandler struct {
	BaseHandler
	store     Pinger
	version   string
	startTime time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(store Pinger, version string) *SystemHandler {
	return &SystemHandler{
		store:     store,
		version:   version,
		startTime: time.Now(),
	}
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Version   string `json:"version"`
	GoVersion string `json:"goVersion"`
	Uptime    string `json:"uptime"`
	Timestamp string `json:"timestamp"`
}

// Root handles GET /
// @Summary      Liveness
// @Description  Plain-text liveness message
// @Tags         system
// @Produce      plain
// @Success      200 {string} string
// @Router       / [get]
func (h *SystemHandler) Root(c *gin.Context) {
	c.String(http.StatusOK, HealthMessage)
}

// Health handles GET /health
// @Summary      Health check
// @Description  Reports store reachability and build information
// @Tags         system
// @Produce      json
// @Success      200 {object} HealthResponse
// @Failure      503 {object} HealthResponse
// @Router       /health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	resp := HealthResponse{
		Status:    "healthy",
		Database:  "up",
		Version:   h.version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	status := http.StatusOK
	if h.store != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
		defer cancel()
		if err := h.store.Ping(ctx); err != nil {
			resp.Status = "unhealthy"
			resp.Database = "down"
			status = http.StatusServiceUnavailable
		}
	}

	c.JSON(status, resp)
}
