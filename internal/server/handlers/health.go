package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Pinger reports whether the backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health check requests
type HealthHandler struct {
	store  Pinger
	logger logrus.FieldLogger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(store Pinger, logger logrus.FieldLogger) *HealthHandler {
	return &HealthHandler{
		store:  store,
		logger: logger,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status string                 `json:"status"`
	Checks map[string]CheckResult `json:"checks"`
}

// CheckResult represents a single health check result
type CheckResult struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// GetHealth handles GET /api/v1/health
func (h *HealthHandler) GetHealth(c *gin.Context) {
	response := HealthResponse{
		Status: "healthy",
		Checks: make(map[string]CheckResult),
	}

	// Check database connectivity
	if err := h.store.Ping(c.Request.Context()); err != nil {
		response.Checks["database"] = CheckResult{
			Status:  "unhealthy",
			Message: err.Error(),
		}
		response.Status = "unhealthy"

		h.logger.WithError(err).Error("Health check failed: database unhealthy")
		c.JSON(http.StatusServiceUnavailable, response)
		return
	}

	response.Checks["database"] = CheckResult{Status: "healthy"}
	c.JSON(http.StatusOK, response)
}
