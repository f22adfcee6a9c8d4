package handlers

import (
	"net/http"
	"sync/atomic"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// MetricsHandler handles metrics requests
type MetricsHandler struct {
	logger logrus.FieldLogger

	// Atomic counters for thread-safe increments
	totalRequests     atomic.Uint64
	posAuthAttempts   atomic.Uint64
	posAuthSuccesses  atomic.Uint64
	posAuthFailures   atomic.Uint64
	configReads       atomic.Uint64
	currencyUpdates   atomic.Uint64
	conversions       atomic.Uint64
	receiptShares     atomic.Uint64
	provisionRuns     atomic.Uint64
	authFailures      atomic.Uint64
	rateLimitExceeded atomic.Uint64
	validationErrors  atomic.Uint64
}

// NewMetricsHandler creates a new metrics handler
func NewMetricsHandler(logger logrus.FieldLogger) *MetricsHandler {
	return &MetricsHandler{
		logger: logger,
	}
}

// MetricsResponse represents the metrics response
type MetricsResponse struct {
	Total    uint64            `json:"total_requests"`
	ByType   map[string]uint64 `json:"by_type"`
	ByStatus map[string]uint64 `json:"by_status"`
}

// GetMetrics handles GET /api/v1/metrics
func (h *MetricsHandler) GetMetrics(c *gin.Context) {
	response := MetricsResponse{
		Total: h.totalRequests.Load(),
		ByType: map[string]uint64{
			"pos_auth_attempts": h.posAuthAttempts.Load(),
			"config_reads":      h.configReads.Load(),
			"currency_updates":  h.currencyUpdates.Load(),
			"conversions":       h.conversions.Load(),
			"receipt_shares":    h.receiptShares.Load(),
			"provision_runs":    h.provisionRuns.Load(),
		},
		ByStatus: map[string]uint64{
			"pos_auth_successes":  h.posAuthSuccesses.Load(),
			"pos_auth_failures":   h.posAuthFailures.Load(),
			"auth_failures":       h.authFailures.Load(),
			"rate_limit_exceeded": h.rateLimitExceeded.Load(),
			"validation_errors":   h.validationErrors.Load(),
		},
	}

	c.JSON(http.StatusOK, response)
}

// Request counter methods

func (h *MetricsHandler) IncrementTotalRequests() {
	h.totalRequests.Add(1)
}

// RecordPosAuth counts a cashier login attempt and its outcome
func (h *MetricsHandler) RecordPosAuth(success bool) {
	h.posAuthAttempts.Add(1)
	if success {
		h.posAuthSuccesses.Add(1)
	} else {
		h.posAuthFailures.Add(1)
	}
}

func (h *MetricsHandler) IncrementConfigReads() {
	h.configReads.Add(1)
}

func (h *MetricsHandler) IncrementCurrencyUpdates() {
	h.currencyUpdates.Add(1)
}

func (h *MetricsHandler) IncrementConversions() {
	h.conversions.Add(1)
}

func (h *MetricsHandler) IncrementReceiptShares() {
	h.receiptShares.Add(1)
}

func (h *MetricsHandler) IncrementProvisionRuns() {
	h.provisionRuns.Add(1)
}

func (h *MetricsHandler) IncrementAuthFailures() {
	h.authFailures.Add(1)
}

func (h *MetricsHandler) IncrementRateLimitExceeded() {
	h.rateLimitExceeded.Add(1)
}

func (h *MetricsHandler) IncrementValidationErrors() {
	h.validationErrors.Add(1)
}
