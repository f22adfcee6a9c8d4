package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

// TokenIssuer is the "iss" claim of session tokens minted by this service
const TokenIssuer = "pos-lebanon"

// MinJWTSecretLength is the minimum HS256 secret size in bytes
const MinJWTSecretLength = 32

// Claims are the claims carried by a POS session token
type Claims struct {
	jwt.RegisteredClaims
	UserID uint `json:"uid"`
}

// JWTAuth authenticates callers presenting an HS256 bearer token
type JWTAuth struct {
	secret []byte
	ttl    time.Duration
	logger logrus.FieldLogger
	now    func() time.Time
}

// NewJWTAuth creates a bearer token authenticator
func NewJWTAuth(secret string, ttl time.Duration, logger logrus.FieldLogger) (*JWTAuth, error) {
	if len(secret) < MinJWTSecretLength {
		return nil, fmt.Errorf("jwt secret must be at least %d bytes", MinJWTSecretLength)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("jwt ttl must be positive")
	}
	return &JWTAuth{
		secret: []byte(secret),
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}, nil
}

// IssueToken mints a signed session token for a user
func (a *JWTAuth) IssueToken(login string, userID uint) (string, time.Time, error) {
	now := a.now()
	expiresAt := now.Add(a.ttl)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   login,
			Issuer:    TokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID: userID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// ParseToken validates a signed token and returns its claims
func (a *JWTAuth) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (interface{}, error) {
			return a.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(TokenIssuer),
		jwt.WithTimeFunc(a.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: token has no subject", ErrInvalidCredentials)
	}
	return claims, nil
}

// Authenticate validates an "Authorization: Bearer <token>" header
func (a *JWTAuth) Authenticate(r *http.Request) (*User, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil, ErrMissingCredentials
	}

	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return nil, ErrMissingCredentials
	}

	claims, err := a.ParseToken(strings.TrimSpace(token))
	if err != nil {
		log := a.logger.WithFields(logrus.Fields{"source_ip": r.RemoteAddr, "error": err})
		if errors.Is(err, jwt.ErrTokenExpired) {
			log.Info("Authentication failed: token expired")
		} else {
			log.Warn("Authentication failed: invalid token")
		}
		return nil, err
	}

	return &User{Username: claims.Subject, UserID: claims.UserID}, nil
}

// Challenge returns the Bearer challenge
func (a *JWTAuth) Challenge() string {
	return fmt.Sprintf(`Bearer realm=%q`, Realm)
}
