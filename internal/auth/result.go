package auth

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Failure messages shown verbatim by the POS login screen
const (
	MsgUserNotFound    = "User not found."
	MsgNoPasswordSet   = "No password set for this user."
	MsgInvalidPassword = "Invalid password."
	MsgSystemError     = "Authentication service error. Please try again."
)

// Reason classifies the outcome of an authentication attempt
type Reason int

const (
	ReasonNone Reason = iota
	ReasonUserNotFound
	ReasonNoPasswordSet
	ReasonInvalidPassword
	ReasonSystemError
)

// Message returns the user-facing message for a failure reason
func (r Reason) Message() string {
	switch r {
	case ReasonUserNotFound:
		return MsgUserNotFound
	case ReasonNoPasswordSet:
		return MsgNoPasswordSet
	case ReasonInvalidPassword:
		return MsgInvalidPassword
	case ReasonSystemError:
		return MsgSystemError
	default:
		return ""
	}
}

// String returns a stable identifier used in logs and metrics
func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "success"
	case ReasonUserNotFound:
		return "user_not_found"
	case ReasonNoPasswordSet:
		return "no_password_set"
	case ReasonInvalidPassword:
		return "invalid_password"
	case ReasonSystemError:
		return "system_error"
	default:
		return fmt.Sprintf("reason(%d)", int(r))
	}
}

func reasonFromMessage(msg string) Reason {
	for _, r := range []Reason{ReasonUserNotFound, ReasonNoPasswordSet, ReasonInvalidPassword, ReasonSystemError} {
		if r.Message() == msg {
			return r
		}
	}
	return ReasonSystemError
}

// OptionalID is an identifier that may be absent; absence is encoded as JSON false
type OptionalID struct {
	ID    uint
	Valid bool
}

// SomeID returns a present identifier
func SomeID(id uint) OptionalID {
	return OptionalID{ID: id, Valid: true}
}

// NoID is the absent identifier
var NoID = OptionalID{}

// MarshalJSON encodes the id as a number, or false when absent
func (o OptionalID) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("false"), nil
	}
	return []byte(strconv.FormatUint(uint64(o.ID), 10)), nil
}

// UnmarshalJSON accepts a number, false or null
func (o *OptionalID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("false")) || bytes.Equal(data, []byte("null")) {
		*o = NoID
		return nil
	}
	id, err := strconv.ParseUint(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid optional id %s: %w", data, err)
	}
	*o = SomeID(uint(id))
	return nil
}

// AuthResult is the structured outcome of a POS login attempt
type AuthResult struct {
	Success    bool
	UserID     uint
	EmployeeID OptionalID
	UserName   string
	Message    string
	Reason     Reason
}

type successWire struct {
	Success    bool       `json:"success"`
	UserID     uint       `json:"user_id"`
	EmployeeID OptionalID `json:"employee_id"`
	UserName   string     `json:"user_name"`
}

type failureWire struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// MarshalJSON emits {success, user_id, employee_id, user_name} or {success: false, message}
func (r AuthResult) MarshalJSON() ([]byte, error) {
	if r.Success {
		return json.Marshal(successWire{
			Success:    true,
			UserID:     r.UserID,
			EmployeeID: r.EmployeeID,
			UserName:   r.UserName,
		})
	}
	return json.Marshal(failureWire{Success: false, Message: r.Message})
}

// UnmarshalJSON decodes either result shape
func (r *AuthResult) UnmarshalJSON(data []byte) error {
	var wire struct {
		Success    bool       `json:"success"`
		UserID     uint       `json:"user_id"`
		EmployeeID OptionalID `json:"employee_id"`
		UserName   string     `json:"user_name"`
		Message    string     `json:"message"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	*r = AuthResult{
		Success:    wire.Success,
		UserID:     wire.UserID,
		EmployeeID: wire.EmployeeID,
		UserName:   wire.UserName,
		Message:    wire.Message,
	}
	if !wire.Success {
		r.Reason = reasonFromMessage(wire.Message)
	}
	return nil
}

func failure(reason Reason) AuthResult {
	return AuthResult{
		Success: false,
		Message: reason.Message(),
		Reason:  reason,
	}
}
