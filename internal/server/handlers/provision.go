package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/codetroops/pos-lebanon/internal/apierrors"
	"github.com/codetroops/pos-lebanon/internal/provision"
)

// Provisioner links the LBP payment method to every POS configuration
type Provisioner interface {
	Run(ctx context.Context) (provision.Report, error)
}

// ProvisionHandler triggers the payment method hook on demand
type ProvisionHandler struct {
	provisioner Provisioner
	logger      logrus.FieldLogger
	metrics     *MetricsHandler
}

// NewProvisionHandler creates a new provisioning handler
func NewProvisionHandler(provisioner Provisioner, logger logrus.FieldLogger, metrics *MetricsHandler) *ProvisionHandler {
	return &ProvisionHandler{
		provisioner: provisioner,
		logger:      logger,
		metrics:     metrics,
	}
}

// RunProvision handles POST /api/v1/admin/provision
func (h *ProvisionHandler) RunProvision(c *gin.Context) {
	report, err := h.provisioner.Run(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("Provisioning failed")
		apierrors.WriteStorageError(c, err, "payment_method")
		return
	}
	h.metrics.IncrementProvisionRuns()

	c.JSON(http.StatusOK, report)
}
