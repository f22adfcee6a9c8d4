// Package auth keeps the posctl server URL and token between runs.
package auth

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

var ErrNotFound = errors.New("credentials not found")

const (
	// ConfigDirEnvVar overrides the directory holding the credentials file
	ConfigDirEnvVar = "POSCTL_CONFIG_DIR"

	defaultConfigDir = ".config/posctl"
	credentialsFile  = "credentials.yaml"
)

// Credentials is what 'posctl login' remembers.
// Token is either "login:password" or a bearer token.
type Credentials struct {
	URL     string    `yaml:"url"`
	Token   string    `yaml:"token"`
	SavedAt time.Time `yaml:"saved_at,omitempty"`
}

// FileStore reads and writes Credentials as YAML readable by the owner only
type FileStore struct {
	Path string
}

// DefaultStore uses $POSCTL_CONFIG_DIR or ~/.config/posctl
func DefaultStore() (*FileStore, error) {
	dir := os.Getenv(ConfigDirEnvVar)
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(home, defaultConfigDir)
	}
	return &FileStore{Path: filepath.Join(dir, credentialsFile)}, nil
}

// Load returns ErrNotFound when nothing was saved yet
func (s *FileStore) Load() (*Credentials, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	var creds Credentials
	if err := yaml.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("failed to parse credentials file %s: %w", s.Path, err)
	}
	return &creds, nil
}

// Save replaces any stored credentials
func (s *FileStore) Save(creds Credentials) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(&creds)
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}
	if err := os.WriteFile(s.Path, data, 0600); err != nil {
		return fmt.Errorf("failed to write credentials file: %w", err)
	}
	// WriteFile keeps the mode of an existing file
	return os.Chmod(s.Path, 0600)
}

// Delete is a no-op when nothing is stored
func (s *FileStore) Delete() error {
	if err := os.Remove(s.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete credentials file: %w", err)
	}
	return nil
}

func loadField(field func(*Credentials) string) (string, error) {
	store, err := DefaultStore()
	if err != nil {
		return "", err
	}
	creds, err := store.Load()
	if err != nil {
		return "", err
	}
	if v := field(creds); v != "" {
		return v, nil
	}
	return "", ErrNotFound
}

// SaveCredentials stores url and token in the default location
func SaveCredentials(url, token string) error {
	store, err := DefaultStore()
	if err != nil {
		return err
	}
	return store.Save(Credentials{URL: url, Token: token, SavedAt: time.Now().UTC()})
}

// LoadCredentials reads the default location
func LoadCredentials() (*Credentials, error) {
	store, err := DefaultStore()
	if err != nil {
		return nil, err
	}
	return store.Load()
}

// DeleteCredentials removes the default credentials file
func DeleteCredentials() error {
	store, err := DefaultStore()
	if err != nil {
		return err
	}
	return store.Delete()
}

// LoadStoredToken returns the stored token or ErrNotFound
func LoadStoredToken() (string, error) {
	return loadField(func(c *Credentials) string { return c.Token })
}

// LoadStoredURL returns the stored server URL or ErrNotFound
func LoadStoredURL() (string, error) {
	return loadField(func(c *Credentials) string { return c.URL })
}
