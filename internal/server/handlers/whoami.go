package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/codetroops/pos-lebanon/internal/apierrors"
	"github.com/codetroops/pos-lebanon/internal/auth"
)

// WhoamiHandler handles whoami requests
type WhoamiHandler struct {
	authenticator auth.Authenticator
	logger        logrus.FieldLogger
}

// NewWhoamiHandler creates a new whoami handler
func NewWhoamiHandler(authenticator auth.Authenticator, logger logrus.FieldLogger) *WhoamiHandler {
	return &WhoamiHandler{
		authenticator: authenticator,
		logger:        logger,
	}
}

// WhoamiResponse represents the whoami response
type WhoamiResponse struct {
	Username string `json:"username"`
	UserID   uint   `json:"user_id,omitempty"`
}

// GetWhoami handles GET /api/v1/whoami
// This endpoint requires authentication and returns the authenticated caller
func (h *WhoamiHandler) GetWhoami(c *gin.Context) {
	// Authenticate the request
	user, err := h.authenticator.Authenticate(c.Request)
	if err != nil {
		h.logger.WithError(err).Debug("Authentication failed for whoami")
		if challenge := h.authenticator.Challenge(); challenge != "" {
			c.Header("WWW-Authenticate", challenge)
		}
		apierrors.WriteError(c, apierrors.ErrCodeUnauthorized, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	c.JSON(http.StatusOK, WhoamiResponse{
		Username: user.Username,
		UserID:   user.UserID,
	})
}
