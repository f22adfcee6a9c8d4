package handlers

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/codetroops/pos-lebanon/internal/apierrors"
	"github.com/codetroops/pos-lebanon/internal/currency"
	"github.com/codetroops/pos-lebanon/internal/models"
	"github.com/codetroops/pos-lebanon/internal/posdata"
	"github.com/codetroops/pos-lebanon/internal/storage"
)

// ConfigHandler handles POS configuration requests
type ConfigHandler struct {
	store   storage.ConfigStore
	fields  posdata.FieldSource
	logger  logrus.FieldLogger
	metrics *MetricsHandler
}

// NewConfigHandler creates a new POS configuration handler
func NewConfigHandler(store storage.ConfigStore, fields posdata.FieldSource, logger logrus.FieldLogger, metrics *MetricsHandler) *ConfigHandler {
	return &ConfigHandler{
		store:   store,
		fields:  fields,
		logger:  logger,
		metrics: metrics,
	}
}

// ConfigResponse is the JSON representation of a POS configuration
type ConfigResponse struct {
	ID               uint    `json:"id"`
	Name             string  `json:"name"`
	LBPUSDRate       float64 `json:"lbp_usd_rate"`
	DisplayLBPTotal  bool    `json:"display_lbp_total"`
	PaymentMethodIDs []uint  `json:"payment_method_ids"`
}

// CurrencyRequest is the body of PUT /api/v1/pos/configs/:id/currency
type CurrencyRequest struct {
	LBPUSDRate      *float64 `json:"lbp_usd_rate"`
	DisplayLBPTotal *bool    `json:"display_lbp_total"`
}

func toConfigResponse(c *models.PosConfig) ConfigResponse {
	return ConfigResponse{
		ID:               c.ID,
		Name:             c.Name,
		LBPUSDRate:       c.LBPUSDRate,
		DisplayLBPTotal:  c.DisplayLBPTotal,
		PaymentMethodIDs: c.PaymentMethodIDs(),
	}
}

// parseConfigID reads the :id path parameter, writing a 400 response when it is invalid
func (h *ConfigHandler) parseConfigID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		h.metrics.IncrementValidationErrors()
		apierrors.WriteError(c, apierrors.ErrCodeValidationError, "config id must be a positive integer",
			http.StatusBadRequest, map[string]string{"field": "id"})
		return 0, false
	}
	return uint(id), true
}

// loadConfig fetches the config named by :id, writing the error response on failure
func (h *ConfigHandler) loadConfig(c *gin.Context) (*models.PosConfig, bool) {
	id, ok := h.parseConfigID(c)
	if !ok {
		return nil, false
	}

	cfg, err := h.store.GetPosConfig(c.Request.Context(), id)
	if err != nil {
		h.logger.WithError(err).WithField("config_id", id).Debug("Failed to get POS config")
		apierrors.WriteStorageError(c, err, "config")
		return nil, false
	}
	h.metrics.IncrementConfigReads()
	return cfg, true
}

// ListConfigs handles GET /api/v1/pos/configs
func (h *ConfigHandler) ListConfigs(c *gin.Context) {
	configs, err := h.store.ListPosConfigs(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to list POS configs")
		apierrors.WriteStorageError(c, err, "config")
		return
	}
	h.metrics.IncrementConfigReads()

	response := make([]ConfigResponse, 0, len(configs))
	for _, cfg := range configs {
		response = append(response, toConfigResponse(cfg))
	}
	c.JSON(http.StatusOK, response)
}

// GetConfig handles GET /api/v1/pos/configs/:id
func (h *ConfigHandler) GetConfig(c *gin.Context) {
	cfg, ok := h.loadConfig(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, toConfigResponse(cfg))
}

// GetPosData handles GET /api/v1/pos/configs/:id/data
func (h *ConfigHandler) GetPosData(c *gin.Context) {
	cfg, ok := h.loadConfig(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, posdata.Load(h.fields, cfg))
}

// UpdateCurrency handles PUT /api/v1/pos/configs/:id/currency
func (h *ConfigHandler) UpdateCurrency(c *gin.Context) {
	id, ok := h.parseConfigID(c)
	if !ok {
		return
	}

	// Parse request body
	var req CurrencyRequest
	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		h.metrics.IncrementValidationErrors()
		apierrors.WriteError(c, apierrors.ErrCodeInvalidJSON, "Invalid JSON in request body", http.StatusBadRequest, nil)
		return
	}

	// Start from the current values so either field may be omitted
	current, err := h.store.GetPosConfig(c.Request.Context(), id)
	if err != nil {
		apierrors.WriteStorageError(c, err, "config")
		return
	}
	settings := models.CurrencySettings{
		LBPUSDRate:      current.LBPUSDRate,
		DisplayLBPTotal: current.DisplayLBPTotal,
	}
	if req.LBPUSDRate != nil {
		settings.LBPUSDRate = *req.LBPUSDRate
	}
	if req.DisplayLBPTotal != nil {
		settings.DisplayLBPTotal = *req.DisplayLBPTotal
	}

	// Validate
	if err := models.ValidateCurrencySettings(&settings); err != nil {
		h.metrics.IncrementValidationErrors()
		apierrors.WriteValidationError(c, err)
		return
	}

	updated, err := h.store.UpdateCurrencySettings(c.Request.Context(), id, settings)
	if err != nil {
		h.logger.WithError(err).WithField("config_id", id).Error("Failed to update currency settings")
		apierrors.WriteStorageError(c, err, "config")
		return
	}
	h.metrics.IncrementCurrencyUpdates()

	c.JSON(http.StatusOK, toConfigResponse(updated))
}

// Convert handles GET /api/v1/pos/configs/:id/convert?amount=<usd>
func (h *ConfigHandler) Convert(c *gin.Context) {
	amount, err := strconv.ParseFloat(c.Query("amount"), 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		h.metrics.IncrementValidationErrors()
		apierrors.WriteError(c, apierrors.ErrCodeValidationError, "amount must be a finite number",
			http.StatusBadRequest, map[string]string{"field": "amount"})
		return
	}

	cfg, ok := h.loadConfig(c)
	if !ok {
		return
	}

	conv, err := currency.Convert(amount, models.CurrencySettings{
		LBPUSDRate:      cfg.LBPUSDRate,
		DisplayLBPTotal: cfg.DisplayLBPTotal,
	})
	if err != nil {
		h.metrics.IncrementValidationErrors()
		apierrors.WriteError(c, apierrors.ErrCodeValidationError, "amount is out of range for this rate",
			http.StatusBadRequest, map[string]string{"field": "amount"})
		return
	}
	h.metrics.IncrementConversions()

	c.JSON(http.StatusOK, conv)
}
