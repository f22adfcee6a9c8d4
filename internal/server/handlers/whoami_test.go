package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codetroops/pos-lebanon/internal/auth"
)

func TestWhoamiHandler_GetWhoami(t *testing.T) {
	tests := []struct {
		name           string
		authType       string
		username       string
		password       string
		expectStatus   int
		expectUsername string
	}{
		{
			name:           "successful authentication",
			authType:       "basic",
			username:       "testuser",
			password:       "testpass",
			expectStatus:   http.StatusOK,
			expectUsername: "testuser",
		},
		{
			name:         "no authentication",
			authType:     "basic",
			expectStatus: http.StatusUnauthorized,
		},
		{
			name:         "invalid credentials",
			authType:     "basic",
			username:     "wronguser",
			password:     "wrongpass",
			expectStatus: http.StatusUnauthorized,
		},
		{
			name:           "no auth mode - anyone can authenticate",
			authType:       "none",
			expectStatus:   http.StatusOK,
			expectUsername: "anonymous",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Create authenticator based on test case
			var authenticator auth.Authenticator
			if tt.authType == "none" {
				authenticator = auth.NewNoAuth()
			} else {
				authenticator = &mockAuthenticator{
					validUsername: "testuser",
					validPassword: "testpass",
				}
			}

			router := gin.New()
			router.GET("/api/v1/whoami", NewWhoamiHandler(authenticator, newTestLogger()).GetWhoami)

			// Create request
			req := httptest.NewRequest(http.MethodGet, "/api/v1/whoami", nil)
			if tt.username != "" && tt.password != "" {
				req.SetBasicAuth(tt.username, tt.password)
			}

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectStatus, rr.Code)

			if tt.expectStatus == http.StatusOK {
				var response WhoamiResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&response))
				assert.Equal(t, tt.expectUsername, response.Username)
			}

			if tt.expectStatus == http.StatusUnauthorized {
				assert.Equal(t, `Basic realm="POS Lebanon"`, rr.Header().Get("WWW-Authenticate"))
			}
		})
	}
}

// mockAuthenticator is a simple mock for testing
type mockAuthenticator struct {
	validUsername string
	validPassword string
}

func (m *mockAuthenticator) Authenticate(r *http.Request) (*auth.User, error) {
	username, password, ok := r.BasicAuth()
	if !ok || username != m.validUsername || password != m.validPassword {
		return nil, fmt.Errorf("invalid credentials")
	}
	return &auth.User{Username: username}, nil
}

func (m *mockAuthenticator) Challenge() string {
	return `Basic realm="POS Lebanon"`
}
