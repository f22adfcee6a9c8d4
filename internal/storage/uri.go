package storage

import (
	"fmt"
	"net/url"
	"strings"
)

// SupportedSchemes lists all currently supported database URI schemes
var SupportedSchemes = []string{"sqlite", "postgres", "postgresql"}

// DatabaseURI represents a parsed database backend URI
type DatabaseURI struct {
	Scheme string // Normalized backend type ("sqlite" or "postgres")
	Host   string // Host for network backends (empty for sqlite)
	Path   string // File path or in-memory DSN for sqlite, database name for postgres
	Raw    string // Original URI string
}

// NormalizeDatabaseURI ensures the URI has a scheme, prepending "sqlite://" if missing
func NormalizeDatabaseURI(uri string) string {
	if uri == "" {
		return uri
	}
	if !strings.Contains(uri, "://") {
		return "sqlite://" + uri
	}
	return uri
}

// ParseDatabaseURI parses a database URI string into its components
func ParseDatabaseURI(uri string) (*DatabaseURI, error) {
	if uri == "" {
		return nil, fmt.Errorf("database URI cannot be empty")
	}

	normalized := NormalizeDatabaseURI(uri)

	idx := strings.Index(normalized, "://")
	scheme := strings.ToLower(normalized[:idx])
	if err := validateScheme(scheme); err != nil {
		return nil, err
	}

	// sqlite DSNs (":memory:", "file:x?mode=memory") are not valid URL hosts, so take the remainder verbatim
	if scheme == "sqlite" {
		path := normalized[idx+len("://"):]
		if path == "" {
			return nil, fmt.Errorf("sqlite URI must have a path: sqlite://<path>")
		}
		return &DatabaseURI{
			Scheme: "sqlite",
			Path:   path,
			Raw:    uri,
		}, nil
	}

	parsed, err := url.Parse(normalized)
	if err != nil {
		return nil, fmt.Errorf("invalid URI format: %w", err)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("postgres URI must include host: postgres://<user>:<password>@<host>/<database>")
	}
	database := strings.TrimPrefix(parsed.Path, "/")
	if database == "" {
		return nil, fmt.Errorf("postgres URI must include database name: postgres://<host>/<database>")
	}

	return &DatabaseURI{
		Scheme: "postgres",
		Host:   parsed.Host,
		Path:   database,
		Raw:    uri,
	}, nil
}

// validateScheme checks if the scheme is supported
func validateScheme(scheme string) error {
	for _, s := range SupportedSchemes {
		if scheme == s {
			return nil
		}
	}
	return fmt.Errorf("unsupported database scheme %q; supported schemes: %s",
		scheme, strings.Join(SupportedSchemes, ", "))
}

// Driver returns the gorm driver name for this URI
func (u *DatabaseURI) Driver() string {
	return u.Scheme
}

// DSN returns the connection string handed to the gorm dialector
func (u *DatabaseURI) DSN() string {
	if u.Scheme == "sqlite" {
		return u.Path
	}
	return NormalizeDatabaseURI(u.Raw)
}

// IsSQLite returns true if this is a sqlite:// URI
func (u *DatabaseURI) IsSQLite() bool {
	return u.Scheme == "sqlite"
}

// Redacted returns the URI with any password masked, for logging
func (u *DatabaseURI) Redacted() string {
	if u.Scheme == "sqlite" {
		return u.Raw
	}
	parsed, err := url.Parse(NormalizeDatabaseURI(u.Raw))
	if err != nil {
		return "***"
	}
	return parsed.Redacted()
}

// String returns the original URI string
func (u *DatabaseURI) String() string {
	return u.Raw
}
