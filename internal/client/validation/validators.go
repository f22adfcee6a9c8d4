package validation

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseConfigID parses a POS config id argument (positive integer)
func ParseConfigID(raw string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid config id. Expected a positive integer, got: '%s'", raw)
	}
	return uint(id), nil
}

// ValidateRate validates an LBP per USD exchange rate (positive, finite)
func ValidateRate(rate float64) error {
	if math.IsNaN(rate) || math.IsInf(rate, 0) || rate <= 0 {
		return fmt.Errorf("invalid rate. Must be a positive number of LBP per USD, got: %v", rate)
	}
	return nil
}

// ParseAmount parses a USD amount (finite, not negative)
func ParseAmount(raw string) (float64, error) {
	amount, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return 0, fmt.Errorf("invalid amount. Expected a non-negative USD amount, got: '%s'", raw)
	}
	return amount, nil
}
