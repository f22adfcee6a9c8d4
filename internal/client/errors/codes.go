// Package errors turns posctl failures into messages on stderr and process exit codes.
package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/codetroops/pos-lebanon/internal/client"
)

// Process exit codes
const (
	ExitSuccess          = 0 // Success
	ExitGeneralError     = 1 // Network failure, server 5xx, anything unclassified
	ExitInvalidArguments = 2 // Bad flags or input, or a 4xx not listed below
	ExitNotFound         = 3 // 404
	ExitConflict         = 4 // 409
	ExitAuthError        = 5 // 401, also a rejected cashier login
	ExitPermissionDenied = 6 // 403
)

var statusExitCodes = map[int]int{
	http.StatusBadRequest:   ExitInvalidArguments,
	http.StatusUnauthorized: ExitAuthError,
	http.StatusForbidden:    ExitPermissionDenied,
	http.StatusNotFound:     ExitNotFound,
	http.StatusConflict:     ExitConflict,
}

// statusHints are appended to the server message
var statusHints = map[int]string{
	http.StatusUnauthorized:    "Try running 'posctl login' to authenticate",
	http.StatusTooManyRequests: "Too many requests, wait a minute and retry",
}

// Replaced in tests
var (
	stderr io.Writer = os.Stderr
	exit             = os.Exit
)

// MapHTTPStatusToExitCode picks the exit code for an API response status
func MapHTTPStatusToExitCode(statusCode int) int {
	if code, ok := statusExitCodes[statusCode]; ok {
		return code
	}
	if statusCode >= 400 && statusCode < 500 {
		return ExitInvalidArguments
	}
	return ExitGeneralError
}

// ExitCodeFor returns the exit code for an error returned by the API client
func ExitCodeFor(err error) int {
	var apiErr *client.APIError
	if stderrors.As(err, &apiErr) {
		return MapHTTPStatusToExitCode(apiErr.StatusCode)
	}
	return ExitGeneralError
}

// ExitWithCode prints message, when not empty, and exits with code
func ExitWithCode(code int, message string) {
	if message != "" {
		fmt.Fprintf(stderr, "Error: %s\n", message)
	}
	exit(code)
}

// ExitWithError prints err with an optional context prefix and exits with ExitGeneralError
func ExitWithError(err error, context string) {
	message := err.Error()
	if context != "" {
		message = context + ": " + message
	}
	ExitWithCode(ExitGeneralError, message)
}

// HandleHTTPError exits for an error status, adding a hint where one helps
func HandleHTTPError(statusCode int, message string) {
	if hint, ok := statusHints[statusCode]; ok {
		message += ". " + hint
	}
	ExitWithCode(MapHTTPStatusToExitCode(statusCode), message)
}

// HandleClientError exits with the code matching an API client error
func HandleClientError(err error) {
	var apiErr *client.APIError
	if stderrors.As(err, &apiErr) {
		HandleHTTPError(apiErr.StatusCode, apiErr.Error())
		return
	}
	ExitWithError(err, "")
}
