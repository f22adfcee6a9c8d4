// Package config resolves where posctl talks to and with which credentials.
//
// Every setting comes from the first non-empty source, in order: the command
// line flag, the POSCTL_* environment variable, then the credentials file
// written by 'posctl login'.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/codetroops/pos-lebanon/internal/client/auth"
)

const (
	// URLEnvVar is the environment variable for server URL
	URLEnvVar = "POSCTL_URL"
	// TokenEnvVar is the environment variable for the 'login:password' or bearer token
	TokenEnvVar = "POSCTL_TOKEN"
)

// Source tells where a resolved setting came from
type Source string

const (
	SourceFlag   Source = "flag"
	SourceEnv    Source = "env"
	SourceStored Source = "stored"
	SourceNone   Source = "none"
)

// resolve picks the first non-empty value among flag, env var and the stored credentials
func resolve(flagValue, envVar string, stored func() (string, error)) (string, Source, error) {
	if flagValue != "" {
		return flagValue, SourceFlag, nil
	}
	if envValue := os.Getenv(envVar); envValue != "" {
		return envValue, SourceEnv, nil
	}

	value, err := stored()
	switch {
	case errors.Is(err, auth.ErrNotFound):
		return "", SourceNone, nil
	case err != nil:
		return "", SourceNone, err
	}
	return value, SourceStored, nil
}

// ResolveURL returns the server URL without trailing slashes.
// It fails when no source provides one.
func ResolveURL(flagURL string) (string, error) {
	url, source, err := resolve(flagURL, URLEnvVar, auth.LoadStoredURL)
	if err != nil {
		return "", fmt.Errorf("failed to load stored URL: %w", err)
	}
	if source == SourceNone {
		return "", fmt.Errorf("no server URL configured. Use --url flag, %s env var, or run 'login' command", URLEnvVar)
	}
	return NormalizeURL(url), nil
}

// ResolveToken returns the token to authenticate with, or "" when none is configured
func ResolveToken(flagToken string) (string, Source, error) {
	token, source, err := resolve(flagToken, TokenEnvVar, auth.LoadStoredToken)
	if err != nil {
		return "", SourceNone, fmt.Errorf("failed to load stored token: %w", err)
	}
	return token, source, nil
}

// NormalizeURL removes trailing slashes from URLs
func NormalizeURL(url string) string {
	return strings.TrimRight(url, "/")
}
