package auth

import "net/http"

// AnonymousUsername is reported for every caller when authentication is off
const AnonymousUsername = "anonymous"

// NoAuth lets every API caller through as the anonymous user
type NoAuth struct {
	user User
}

// NewNoAuth creates an authenticator for auth.type=none
func NewNoAuth() *NoAuth {
	return &NoAuth{user: User{Username: AnonymousUsername}}
}

func (a *NoAuth) Authenticate(r *http.Request) (*User, error) {
	u := a.user
	return &u, nil
}

// Challenge is empty: NoAuth never rejects
func (a *NoAuth) Challenge() string {
	return ""
}
