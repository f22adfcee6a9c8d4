package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDatabaseURI(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "path without scheme",
			input:    "./data/pos.db",
			expected: "sqlite://./data/pos.db",
		},
		{
			name:     "absolute path without scheme",
			input:    "/var/lib/pos/pos.db",
			expected: "sqlite:///var/lib/pos/pos.db",
		},
		{
			name:     "already has sqlite scheme",
			input:    "sqlite://./data/pos.db",
			expected: "sqlite://./data/pos.db",
		},
		{
			name:     "postgres scheme unchanged",
			input:    "postgres://pos:pw@db:5432/pos",
			expected: "postgres://pos:pw@db:5432/pos",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeDatabaseURI(tt.input))
		})
	}
}

func TestParseDatabaseURI_ValidURIs(t *testing.T) {
	tests := []struct {
		name           string
		input          string
		expectedScheme string
		expectedPath   string
		expectedDSN    string
	}{
		{
			name:           "sqlite relative path",
			input:          "sqlite://./data/pos.db",
			expectedScheme: "sqlite",
			expectedPath:   "./data/pos.db",
			expectedDSN:    "./data/pos.db",
		},
		{
			name:           "sqlite absolute path",
			input:          "sqlite:///var/lib/pos/pos.db",
			expectedScheme: "sqlite",
			expectedPath:   "/var/lib/pos/pos.db",
			expectedDSN:    "/var/lib/pos/pos.db",
		},
		{
			name:           "bare path (auto-prefixed)",
			input:          "./data/pos.db",
			expectedScheme: "sqlite",
			expectedPath:   "./data/pos.db",
			expectedDSN:    "./data/pos.db",
		},
		{
			name:           "sqlite in-memory",
			input:          "sqlite://:memory:",
			expectedScheme: "sqlite",
			expectedPath:   ":memory:",
			expectedDSN:    ":memory:",
		},
		{
			name:           "sqlite shared memory DSN",
			input:          "sqlite://file:test?mode=memory&cache=shared",
			expectedScheme: "sqlite",
			expectedPath:   "file:test?mode=memory&cache=shared",
			expectedDSN:    "file:test?mode=memory&cache=shared",
		},
		{
			name:           "postgres URI",
			input:          "postgres://pos:pw@db:5432/pos?sslmode=disable",
			expectedScheme: "postgres",
			expectedPath:   "pos",
			expectedDSN:    "postgres://pos:pw@db:5432/pos?sslmode=disable",
		},
		{
			name:           "postgresql alias",
			input:          "postgresql://db/pos",
			expectedScheme: "postgres",
			expectedPath:   "pos",
			expectedDSN:    "postgresql://db/pos",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uri, err := ParseDatabaseURI(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedScheme, uri.Scheme)
			assert.Equal(t, tt.expectedPath, uri.Path)
			assert.Equal(t, tt.expectedDSN, uri.DSN())
			assert.Equal(t, tt.expectedScheme, uri.Driver())
			assert.Equal(t, tt.input, uri.String())
		})
	}
}

func TestParseDatabaseURI_InvalidURIs(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		errMsg string
	}{
		{name: "empty URI", input: "", errMsg: "cannot be empty"},
		{name: "unsupported scheme", input: "mysql://db/pos", errMsg: "unsupported database scheme"},
		{name: "sqlite without path", input: "sqlite://", errMsg: "must have a path"},
		{name: "postgres without host", input: "postgres:///pos", errMsg: "must include host"},
		{name: "postgres without database", input: "postgres://db:5432", errMsg: "must include database name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDatabaseURI(tt.input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestDatabaseURI_Redacted(t *testing.T) {
	uri, err := ParseDatabaseURI("postgres://pos:hunter2@db:5432/pos")
	require.NoError(t, err)
	assert.NotContains(t, uri.Redacted(), "hunter2")
	assert.Contains(t, uri.Redacted(), "db:5432")

	uri, err = ParseDatabaseURI("sqlite://./data/pos.db")
	require.NoError(t, err)
	assert.Equal(t, "sqlite://./data/pos.db", uri.Redacted())
}
