package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/codetroops/pos-lebanon/internal/apierrors"
	"github.com/codetroops/pos-lebanon/internal/auth"
)

// JSON-RPC 2.0 error codes
const (
	RPCParseError     = -32700
	RPCInvalidRequest = -32600
	RPCInvalidParams  = -32602
)

// CashierAuthenticator verifies a cashier's POS credentials
type CashierAuthenticator interface {
	Authenticate(ctx context.Context, username, password string) auth.AuthResult
}

// PosAuthHandler serves the POS login routes
type PosAuthHandler struct {
	adapter CashierAuthenticator
	logger  logrus.FieldLogger
	metrics *MetricsHandler
}

// NewPosAuthHandler creates a new POS login handler
func NewPosAuthHandler(adapter CashierAuthenticator, logger logrus.FieldLogger, metrics *MetricsHandler) *PosAuthHandler {
	return &PosAuthHandler{
		adapter: adapter,
		logger:  logger,
		metrics: metrics,
	}
}

// RPCRequest is a JSON-RPC 2.0 call envelope
type RPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
	ID      json.RawMessage `json:"id"`
}

// AuthUserParams are the parameters of the authenticate_user call
type AuthUserParams struct {
	ConfigID json.RawMessage `json:"config_id"`
	Username string          `json:"username"`
	Password string          `json:"password"`
}

// RPCResponse is a JSON-RPC 2.0 response envelope
type RPCResponse struct {
	JSONRPC string           `json:"jsonrpc"`
	ID      json.RawMessage  `json:"id"`
	Result  *auth.AuthResult `json:"result,omitempty"`
	Error   *RPCError        `json:"error,omitempty"`
}

// RPCError is a JSON-RPC 2.0 error object
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CredentialsRequest is the body of the REST login route
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthenticateUserRPC handles POST /pos/authenticate_user
func (h *PosAuthHandler) AuthenticateUserRPC(c *gin.Context) {
	// Parse request body
	var req RPCRequest
	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		// Valid JSON that is not a request object is an invalid request, not a parse error
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			h.writeRPCError(c, nil, RPCInvalidRequest, "Invalid Request")
			return
		}
		h.logger.WithError(err).Warn("POS auth: unparseable JSON-RPC body")
		h.writeRPCError(c, nil, RPCParseError, "Parse error")
		return
	}

	if req.JSONRPC != "" && req.JSONRPC != "2.0" {
		h.writeRPCError(c, req.ID, RPCInvalidRequest, "Invalid Request")
		return
	}

	// Missing or null params authenticate an empty username
	var params AuthUserParams
	if len(req.Params) > 0 && string(req.Params) != "null" {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			h.metrics.IncrementValidationErrors()
			h.writeRPCError(c, req.ID, RPCInvalidParams, "Invalid params")
			return
		}
	}

	result := h.authenticate(c, string(params.ConfigID), params.Username, params.Password)
	c.JSON(http.StatusOK, RPCResponse{
		JSONRPC: "2.0",
		ID:      rpcID(req.ID),
		Result:  &result,
	})
}

func rpcID(id json.RawMessage) json.RawMessage {
	if len(id) == 0 {
		return json.RawMessage("null")
	}
	return id
}

// writeRPCError answers with HTTP 200 and a JSON-RPC error object
func (h *PosAuthHandler) writeRPCError(c *gin.Context, id json.RawMessage, code int, message string) {
	c.JSON(http.StatusOK, RPCResponse{
		JSONRPC: "2.0",
		ID:      rpcID(id),
		Error:   &RPCError{Code: code, Message: message},
	})
}

// AuthenticateUser handles POST /api/v1/pos/configs/:id/authenticate
func (h *PosAuthHandler) AuthenticateUser(c *gin.Context) {
	// Parse request body
	var req CredentialsRequest
	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		h.metrics.IncrementValidationErrors()
		apierrors.WriteError(c, apierrors.ErrCodeInvalidJSON, "Invalid JSON in request body", http.StatusBadRequest, nil)
		return
	}

	result := h.authenticate(c, c.Param("id"), req.Username, req.Password)
	c.JSON(http.StatusOK, result)
}

func (h *PosAuthHandler) authenticate(c *gin.Context, configID, username, password string) auth.AuthResult {
	h.logger.WithFields(logrus.Fields{
		"username":  username,
		"config_id": configID,
	}).Info("POS auth request")

	result := h.adapter.Authenticate(c.Request.Context(), username, password)
	h.metrics.RecordPosAuth(result.Success)
	return result
}
