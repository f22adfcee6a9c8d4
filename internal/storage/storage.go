package storage

import (
	"context"
	"errors"

	"github.com/codetroops/pos-lebanon/internal/models"
)

var (
	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrAlreadyExists is returned when attempting to create a resource that already exists
	ErrAlreadyExists = errors.New("resource already exists")

	// ErrStorageUnavailable is returned when storage operations fail
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// IdentityStore is the read side of the user-account data source
type IdentityStore interface {
	// FindUserByLogin returns the single active user whose login matches exactly
	FindUserByLogin(ctx context.Context, login string) (*models.User, error)

	// GetPasswordHash reads the raw stored hash; an unset password yields ""
	GetPasswordHash(ctx context.Context, userID uint) (string, error)
}

// HRStore is the read side of the employee-record data source
type HRStore interface {
	// FindEmployeeByUserID returns at most one active employee linked to the user
	FindEmployeeByUserID(ctx context.Context, userID uint) (*models.Employee, error)
}

// ConfigStore manages POS configurations
type ConfigStore interface {
	CreatePosConfig(ctx context.Context, c *models.PosConfig) error
	GetPosConfig(ctx context.Context, id uint) (*models.PosConfig, error)
	ListPosConfigs(ctx context.Context) ([]*models.PosConfig, error)
	UpdateCurrencySettings(ctx context.Context, id uint, s models.CurrencySettings) (*models.PosConfig, error)
}

// PaymentMethodStore manages POS payment methods and their links to configurations
type PaymentMethodStore interface {
	// FindPaymentMethodByName matches case-insensitively on a substring of the name
	FindPaymentMethodByName(ctx context.Context, name string) (*models.PaymentMethod, error)
	CreatePaymentMethod(ctx context.Context, m *models.PaymentMethod) error
	LinkedPaymentMethodIDs(ctx context.Context, configID uint) ([]uint, error)
	LinkPaymentMethod(ctx context.Context, configID, methodID uint) error
}

// Store defines the interface for storage operations
type Store interface {
	IdentityStore
	HRStore
	ConfigStore
	PaymentMethodStore

	// Seeding operations
	CreateUser(ctx context.Context, u *models.User) error
	CreateEmployee(ctx context.Context, e *models.Employee) error

	// Ping checks connectivity
	Ping(ctx context.Context) error

	// Close closes the storage
	Close() error
}
