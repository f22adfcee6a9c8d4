package models

import (
	"fmt"
	"math"
	"strings"
)

// maxLBPUSDRate is the largest rate a decimal(16,2) column can hold
const maxLBPUSDRate = 1e14

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// ValidateName validates a POS configuration, user or payment method name
func ValidateName(name string) error {
	if len(strings.TrimSpace(name)) == 0 {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	if len(name) > 128 {
		return &ValidationError{Field: "name", Message: "name must be at most 128 characters"}
	}
	return nil
}

// ValidateLogin validates a user login
func ValidateLogin(login string) error {
	if len(login) == 0 {
		return &ValidationError{Field: "login", Message: "login is required"}
	}
	if len(login) > 128 {
		return &ValidationError{Field: "login", Message: "login must be at most 128 characters"}
	}
	return nil
}

// ValidateLBPUSDRate validates an exchange rate
func ValidateLBPUSDRate(rate float64) error {
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return &ValidationError{Field: "lbp_usd_rate", Message: "rate must be a finite number"}
	}
	if rate <= 0 {
		return &ValidationError{Field: "lbp_usd_rate", Message: "rate must be greater than zero"}
	}
	if rate >= maxLBPUSDRate {
		return &ValidationError{Field: "lbp_usd_rate", Message: "rate exceeds 16 digits"}
	}
	return nil
}

// ValidateCurrencySettings validates the dual-currency settings and rounds the rate to two decimals
func ValidateCurrencySettings(s *CurrencySettings) error {
	if err := ValidateLBPUSDRate(s.LBPUSDRate); err != nil {
		return err
	}
	s.LBPUSDRate = math.Round(s.LBPUSDRate*100) / 100
	return nil
}

// ValidatePosConfig validates a POS configuration before it is persisted
func ValidatePosConfig(c *PosConfig) error {
	if err := ValidateName(c.Name); err != nil {
		return err
	}
	settings := CurrencySettings{LBPUSDRate: c.LBPUSDRate, DisplayLBPTotal: c.DisplayLBPTotal}
	if err := ValidateCurrencySettings(&settings); err != nil {
		return err
	}
	c.LBPUSDRate = settings.LBPUSDRate
	return nil
}
