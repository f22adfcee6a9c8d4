package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/codetroops/pos-lebanon/internal/apierrors"
	"github.com/codetroops/pos-lebanon/internal/currency"
	"github.com/codetroops/pos-lebanon/internal/receipt"
)

// ReceiptHandler builds WhatsApp share links for receipts
type ReceiptHandler struct {
	configs *ConfigHandler
	logger  logrus.FieldLogger
	metrics *MetricsHandler
}

// NewReceiptHandler creates a new receipt handler that looks configs up through configs
func NewReceiptHandler(configs *ConfigHandler, logger logrus.FieldLogger, metrics *MetricsHandler) *ReceiptHandler {
	return &ReceiptHandler{
		configs: configs,
		logger:  logger,
		metrics: metrics,
	}
}

// ShareRequest is the body of POST /api/v1/pos/configs/:id/receipt/whatsapp
type ShareRequest struct {
	Phone   string          `json:"phone"`
	Receipt receipt.Receipt `json:"receipt"`
}

// ShareResponse carries the link to open on the terminal
type ShareResponse struct {
	URL     string `json:"url"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// ShareWhatsApp handles POST /api/v1/pos/configs/:id/receipt/whatsapp
func (h *ReceiptHandler) ShareWhatsApp(c *gin.Context) {
	// Parse request body
	var req ShareRequest
	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		h.metrics.IncrementValidationErrors()
		apierrors.WriteError(c, apierrors.ErrCodeInvalidJSON, "Invalid JSON in request body", http.StatusBadRequest, nil)
		return
	}

	cfg, ok := h.configs.loadConfig(c)
	if !ok {
		return
	}
	if req.Receipt.ShopName == "" {
		req.Receipt.ShopName = cfg.Name
	}

	message, err := receipt.BuildMessage(req.Receipt, cfg.LBPUSDRate)
	if errors.Is(err, currency.ErrAmountOutOfRange) {
		h.metrics.IncrementValidationErrors()
		apierrors.WriteError(c, apierrors.ErrCodeValidationError, "receipt total is out of range",
			http.StatusBadRequest, map[string]string{"field": "receipt.total_usd"})
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to build receipt message")
		apierrors.WriteError(c, apierrors.ErrCodeInternal, "Failed to build receipt message", http.StatusInternalServerError, nil)
		return
	}

	url, err := receipt.ShareURL(req.Phone, message)
	if errors.Is(err, receipt.ErrInvalidPhone) {
		h.metrics.IncrementValidationErrors()
		apierrors.WriteError(c, apierrors.ErrCodeValidationError, "invalid WhatsApp phone number",
			http.StatusBadRequest, map[string]string{"field": "phone"})
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to build WhatsApp link")
		apierrors.WriteError(c, apierrors.ErrCodeInternal, "Failed to build WhatsApp link", http.StatusInternalServerError, nil)
		return
	}
	h.metrics.IncrementReceiptShares()

	c.JSON(http.StatusOK, ShareResponse{
		URL:     url,
		Phone:   receipt.NormalizePhone(req.Phone),
		Message: message,
	})
}
