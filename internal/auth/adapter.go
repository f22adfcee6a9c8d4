package auth

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/codetroops/pos-lebanon/internal/storage"
)

// Adapter authenticates POS cashiers against the identity store and
// enriches successful results with the linked employee.
//
// Authenticate never returns an error or panics: every failure is folded
// into an AuthResult with Success=false and a fixed message.
type Adapter struct {
	users     storage.IdentityStore
	employees storage.HRStore
	crypt     *CryptContext
	logger    logrus.FieldLogger
}

// NewAdapter creates a new authentication adapter
func NewAdapter(users storage.IdentityStore, employees storage.HRStore, crypt *CryptContext, logger logrus.FieldLogger) *Adapter {
	return &Adapter{
		users:     users,
		employees: employees,
		crypt:     crypt,
		logger:    logger,
	}
}

// Authenticate verifies username/password and returns the structured result
func (a *Adapter) Authenticate(ctx context.Context, username, password string) (result AuthResult) {
	log := a.logger.WithFields(logrus.Fields{
		"username":        username,
		"password_length": len(password),
	})

	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", r).Error("POS auth: recovered from panic")
			result = failure(ReasonSystemError)
		}
	}()

	// 1. Find the user by login
	user, err := a.users.FindUserByLogin(ctx, username)
	if errors.Is(err, storage.ErrNotFound) {
		log.Info("POS auth: user not found")
		return failure(ReasonUserNotFound)
	}
	if err != nil {
		log.WithError(err).Error("POS auth: user lookup failed")
		return failure(ReasonSystemError)
	}
	log = log.WithField("user_id", user.ID)

	// 2. Read the stored hash
	hash, err := a.users.GetPasswordHash(ctx, user.ID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		log.WithError(err).Error("POS auth: password hash read failed")
		return failure(ReasonSystemError)
	}
	if hash == "" {
		log.Warn("POS auth: no password set")
		return failure(ReasonNoPasswordSet)
	}

	// 3. Verify; internal verification errors are reported as an invalid password
	valid, err := a.crypt.Verify(password, hash)
	if err != nil {
		log.WithError(err).Error("POS auth: password verification error")
		return failure(ReasonInvalidPassword)
	}
	if !valid {
		log.Info("POS auth: invalid password")
		return failure(ReasonInvalidPassword)
	}
	if a.crypt.NeedsUpdate(hash) {
		log.Warn("POS auth: stored hash uses a deprecated scheme or too few rounds")
	}

	// 4. Optional employee link
	employeeID := NoID
	employee, err := a.employees.FindEmployeeByUserID(ctx, user.ID)
	switch {
	case err == nil:
		employeeID = SomeID(employee.ID)
	case errors.Is(err, storage.ErrNotFound):
	default:
		log.WithError(err).Warn("POS auth: employee lookup failed, continuing without employee")
	}

	result = AuthResult{
		Success:    true,
		UserID:     user.ID,
		EmployeeID: employeeID,
		UserName:   user.Name,
		Reason:     ReasonNone,
	}

	log.WithFields(logrus.Fields{
		"employee_id":  employeeID.ID,
		"has_employee": employeeID.Valid,
	}).Info("POS auth: success")

	return result
}
