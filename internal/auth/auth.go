package auth

import (
	"errors"
	"net/http"
)

var (
	// ErrMissingCredentials is returned when a request carries no credentials
	ErrMissingCredentials = errors.New("missing credentials")

	// ErrInvalidCredentials is returned when request credentials are rejected
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// User represents an authenticated API caller
type User struct {
	Username string
	UserID   uint
}

// Authenticator defines how API callers (back-office users, POS sessions)
// are authenticated by the HTTP request layer
type Authenticator interface {
	// Authenticate validates request credentials and returns user info
	Authenticate(r *http.Request) (*User, error)

	// Challenge returns the WWW-Authenticate header value sent on 401
	Challenge() string
}

// Realm is the HTTP authentication realm of the service
const Realm = "POS Lebanon"
