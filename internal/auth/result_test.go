package auth

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthResult_MarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		result   AuthResult
		expected string
	}{
		{
			name:     "success with employee",
			result:   AuthResult{Success: true, UserID: 7, EmployeeID: SomeID(42), UserName: "Alice"},
			expected: `{"success":true,"user_id":7,"employee_id":42,"user_name":"Alice"}`,
		},
		{
			name:     "success without employee",
			result:   AuthResult{Success: true, UserID: 7, EmployeeID: NoID, UserName: "alice"},
			expected: `{"success":true,"user_id":7,"employee_id":false,"user_name":"alice"}`,
		},
		{
			name:     "failure",
			result:   failure(ReasonInvalidPassword),
			expected: `{"success":false,"message":"Invalid password."}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.result)
			require.NoError(t, err)
			assert.JSONEq(t, tt.expected, string(data))
		})
	}
}

func TestAuthResult_UnmarshalJSON(t *testing.T) {
	var ok AuthResult
	require.NoError(t, json.Unmarshal([]byte(`{"success":true,"user_id":7,"employee_id":false,"user_name":"alice"}`), &ok))
	assert.True(t, ok.Success)
	assert.Equal(t, uint(7), ok.UserID)
	assert.Equal(t, NoID, ok.EmployeeID)

	var failed AuthResult
	require.NoError(t, json.Unmarshal([]byte(`{"success":false,"message":"No password set for this user."}`), &failed))
	assert.False(t, failed.Success)
	assert.Equal(t, ReasonNoPasswordSet, failed.Reason)
}

func TestOptionalID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		input     string
		expected  OptionalID
		wantError bool
	}{
		{input: `42`, expected: SomeID(42)},
		{input: `false`, expected: NoID},
		{input: `null`, expected: NoID},
		{input: `"42"`, wantError: true},
		{input: `-1`, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var id OptionalID
			err := json.Unmarshal([]byte(tt.input), &id)
			if tt.wantError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, id)
		})
	}
}

func TestReason_Message(t *testing.T) {
	assert.Equal(t, "User not found.", ReasonUserNotFound.Message())
	assert.Equal(t, "No password set for this user.", ReasonNoPasswordSet.Message())
	assert.Equal(t, "Invalid password.", ReasonInvalidPassword.Message())
	assert.Equal(t, "Authentication service error. Please try again.", ReasonSystemError.Message())
	assert.Empty(t, ReasonNone.Message())
	assert.Equal(t, "invalid_password", ReasonInvalidPassword.String())
}
