package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codetroops/pos-lebanon/internal/apierrors"
	"github.com/codetroops/pos-lebanon/internal/auth"
)

// UserKey is the gin context key holding the authenticated *auth.User
const UserKey = "auth_user"

// RequireAuth returns middleware that requires authentication for write operations
// Read operations (GET) are allowed without authentication
func RequireAuth(authenticator auth.Authenticator, onFailure func()) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
			authenticate(c, authenticator, onFailure)
		default:
			c.Next()
		}
	}
}

// RequireAuthAlways returns middleware that requires authentication for every method
func RequireAuthAlways(authenticator auth.Authenticator, onFailure func()) gin.HandlerFunc {
	return func(c *gin.Context) {
		authenticate(c, authenticator, onFailure)
	}
}

func authenticate(c *gin.Context, authenticator auth.Authenticator, onFailure func()) {
	user, err := authenticator.Authenticate(c.Request)
	if err != nil {
		if onFailure != nil {
			onFailure()
		}
		if challenge := authenticator.Challenge(); challenge != "" {
			c.Header("WWW-Authenticate", challenge)
		}
		apierrors.WriteError(c, apierrors.ErrCodeUnauthorized, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}
	c.Set(UserKey, user)
	c.Next()
}

// UserFromContext returns the user stored by RequireAuth, if any
func UserFromContext(c *gin.Context) (*auth.User, bool) {
	v, ok := c.Get(UserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*auth.User)
	return user, ok
}
