package auth

import (
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
)

// BasicAuth implements HTTP Basic Authentication against the identity store
type BasicAuth struct {
	adapter *Adapter
	logger  logrus.FieldLogger
}

// NewBasicAuth creates a new BasicAuth authenticator backed by the POS adapter
func NewBasicAuth(adapter *Adapter, logger logrus.FieldLogger) *BasicAuth {
	logger.Info("Basic auth initialized (identity store)")
	return &BasicAuth{
		adapter: adapter,
		logger:  logger,
	}
}

// Authenticate validates HTTP Basic Auth credentials
func (a *BasicAuth) Authenticate(r *http.Request) (*User, error) {
	username, password, ok := r.BasicAuth()
	if !ok {
		return nil, ErrMissingCredentials
	}

	result := a.adapter.Authenticate(r.Context(), username, password)
	if !result.Success {
		a.logger.WithFields(logrus.Fields{
			"username":  username,
			"reason":    result.Reason.String(),
			"source_ip": r.RemoteAddr,
		}).Warn("Authentication failed")
		return nil, fmt.Errorf("%w: %s", ErrInvalidCredentials, result.Reason)
	}

	a.logger.WithFields(logrus.Fields{
		"username":  username,
		"source_ip": r.RemoteAddr,
	}).Debug("Authentication successful")

	return &User{Username: username, UserID: result.UserID}, nil
}

// Challenge returns the Basic challenge
func (a *BasicAuth) Challenge() string {
	return fmt.Sprintf(`Basic realm=%q`, Realm)
}
