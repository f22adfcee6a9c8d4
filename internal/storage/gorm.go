package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/codetroops/pos-lebanon/internal/models"
)

// paymentMethodLink is a row of the POS configuration <-> payment method join table
type paymentMethodLink struct {
	PosConfigID        uint `gorm:"primaryKey"`
	PosPaymentMethodID uint `gorm:"primaryKey"`
}

func (paymentMethodLink) TableName() string {
	return "pos_config_pos_payment_method_rel"
}

// GormStore implements Store on top of gorm (SQLite or PostgreSQL)
type GormStore struct {
	db     *gorm.DB
	logger logrus.FieldLogger
}

// NewGormStore opens the database described by uri and migrates the schema
func NewGormStore(uri *DatabaseURI, log logrus.FieldLogger) (*GormStore, error) {
	dialector, err := GetDialector(uri.Driver(), uri.DSN())
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A plain ":memory:" database exists per connection, so pin the pool to one
	if uri.IsSQLite() && uri.Path == ":memory:" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Employee{},
		&models.PaymentMethod{},
		&models.PosConfig{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	log.WithFields(logrus.Fields{
		"driver":   uri.Driver(),
		"database": uri.Redacted(),
	}).Info("Database opened")

	return &GormStore{
		db:     db,
		logger: log,
	}, nil
}

// wrapErr maps driver errors onto the storage sentinel errors
func wrapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound), errors.Is(err, sql.ErrNoRows):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrAlreadyExists
	default:
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
}

// FindUserByLogin returns the single active user whose login matches exactly
func (s *GormStore) FindUserByLogin(ctx context.Context, login string) (*models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).
		Select("id", "login", "name", "active").
		Where("login = ? AND active = ?", login, true).
		Limit(1).
		Find(&users).Error
	if err != nil {
		return nil, wrapErr(err)
	}
	if len(users) == 0 {
		return nil, ErrNotFound
	}
	return &users[0], nil
}

// GetPasswordHash reads the raw password column of a user
func (s *GormStore) GetPasswordHash(ctx context.Context, userID uint) (string, error) {
	var hash string
	row := s.db.WithContext(ctx).
		Raw("SELECT COALESCE(password, '') FROM res_users WHERE id = ?", userID).
		Row()
	if err := row.Scan(&hash); err != nil {
		return "", wrapErr(err)
	}
	return hash, nil
}

// FindEmployeeByUserID returns the first active employee linked to the user
func (s *GormStore) FindEmployeeByUserID(ctx context.Context, userID uint) (*models.Employee, error) {
	var employees []models.Employee
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND active = ?", userID, true).
		Order("id").
		Limit(1).
		Find(&employees).Error
	if err != nil {
		return nil, wrapErr(err)
	}
	if len(employees) == 0 {
		return nil, ErrNotFound
	}
	return &employees[0], nil
}

// CreateUser inserts a user
func (s *GormStore) CreateUser(ctx context.Context, u *models.User) error {
	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		return wrapErr(err)
	}
	s.logger.WithFields(logrus.Fields{"user_id": u.ID, "login": u.Login}).Info("User created")
	return nil
}

// CreateEmployee inserts an employee
func (s *GormStore) CreateEmployee(ctx context.Context, e *models.Employee) error {
	if err := s.db.WithContext(ctx).Create(e).Error; err != nil {
		return wrapErr(err)
	}
	s.logger.WithFields(logrus.Fields{"employee_id": e.ID, "name": e.Name}).Info("Employee created")
	return nil
}

// CreatePosConfig inserts a POS configuration
func (s *GormStore) CreatePosConfig(ctx context.Context, c *models.PosConfig) error {
	if err := s.db.WithContext(ctx).Omit("PaymentMethods").Create(c).Error; err != nil {
		return wrapErr(err)
	}
	s.logger.WithFields(logrus.Fields{"config_id": c.ID, "name": c.Name}).Info("POS config created")
	return nil
}

// GetPosConfig retrieves a POS configuration with its payment methods
func (s *GormStore) GetPosConfig(ctx context.Context, id uint) (*models.PosConfig, error) {
	var c models.PosConfig
	if err := s.db.WithContext(ctx).Preload("PaymentMethods").First(&c, id).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &c, nil
}

// ListPosConfigs returns all POS configurations ordered by id
func (s *GormStore) ListPosConfigs(ctx context.Context) ([]*models.PosConfig, error) {
	var configs []*models.PosConfig
	if err := s.db.WithContext(ctx).Preload("PaymentMethods").Order("id").Find(&configs).Error; err != nil {
		return nil, wrapErr(err)
	}
	return configs, nil
}

// UpdateCurrencySettings writes the exchange rate and display toggle of a POS configuration
func (s *GormStore) UpdateCurrencySettings(ctx context.Context, id uint, settings models.CurrencySettings) (*models.PosConfig, error) {
	if _, err := s.GetPosConfig(ctx, id); err != nil {
		return nil, err
	}

	// A map is used so that display_lbp_total=false is written too
	err := s.db.WithContext(ctx).
		Model(&models.PosConfig{ID: id}).
		Updates(map[string]any{
			"lbp_usd_rate":      settings.LBPUSDRate,
			"display_lbp_total": settings.DisplayLBPTotal,
		}).Error
	if err != nil {
		return nil, wrapErr(err)
	}

	s.logger.WithFields(logrus.Fields{
		"config_id":         id,
		"lbp_usd_rate":      settings.LBPUSDRate,
		"display_lbp_total": settings.DisplayLBPTotal,
	}).Info("POS currency settings updated")

	return s.GetPosConfig(ctx, id)
}

// escapeLike escapes LIKE wildcards so the name is matched literally
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// FindPaymentMethodByName returns the first payment method whose name contains name, ignoring case
func (s *GormStore) FindPaymentMethodByName(ctx context.Context, name string) (*models.PaymentMethod, error) {
	var methods []models.PaymentMethod
	pattern := "%" + strings.ToLower(escapeLike(name)) + "%"
	err := s.db.WithContext(ctx).
		Where(`LOWER(name) LIKE ? ESCAPE '\'`, pattern).
		Order("id").
		Limit(1).
		Find(&methods).Error
	if err != nil {
		return nil, wrapErr(err)
	}
	if len(methods) == 0 {
		return nil, ErrNotFound
	}
	return &methods[0], nil
}

// CreatePaymentMethod inserts a payment method
func (s *GormStore) CreatePaymentMethod(ctx context.Context, m *models.PaymentMethod) error {
	if err := s.db.WithContext(ctx).Create(m).Error; err != nil {
		return wrapErr(err)
	}
	s.logger.WithFields(logrus.Fields{"payment_method_id": m.ID, "name": m.Name}).Info("Payment method created")
	return nil
}

// LinkedPaymentMethodIDs returns the payment method ids linked to a POS configuration
func (s *GormStore) LinkedPaymentMethodIDs(ctx context.Context, configID uint) ([]uint, error) {
	var ids []uint
	err := s.db.WithContext(ctx).
		Model(&paymentMethodLink{}).
		Where("pos_config_id = ?", configID).
		Order("pos_payment_method_id").
		Pluck("pos_payment_method_id", &ids).Error
	if err != nil {
		return nil, wrapErr(err)
	}
	return ids, nil
}

// LinkPaymentMethod links a payment method to a POS configuration; linking twice is a no-op
func (s *GormStore) LinkPaymentMethod(ctx context.Context, configID, methodID uint) error {
	db := s.db.WithContext(ctx)

	if err := db.Select("id").First(&models.PosConfig{}, configID).Error; err != nil {
		return wrapErr(err)
	}
	if err := db.Select("id").First(&models.PaymentMethod{}, methodID).Error; err != nil {
		return wrapErr(err)
	}

	link := paymentMethodLink{PosConfigID: configID, PosPaymentMethodID: methodID}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error; err != nil {
		return wrapErr(err)
	}
	return nil
}

// Ping checks database connectivity
func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return wrapErr(err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return wrapErr(err)
	}
	return nil
}

// Close closes the underlying connection pool
func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
