package models

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateLBPUSDRate(t *testing.T) {
	tests := []struct {
		name    string
		rate    float64
		wantErr bool
	}{
		{name: "default rate", rate: 89500},
		{name: "fractional", rate: 0.01},
		{name: "zero", rate: 0, wantErr: true},
		{name: "negative", rate: -1, wantErr: true},
		{name: "NaN", rate: math.NaN(), wantErr: true},
		{name: "infinite", rate: math.Inf(1), wantErr: true},
		{name: "too many digits", rate: 1e14, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLBPUSDRate(tt.rate)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, "lbp_usd_rate", vErr.Field)
		})
	}
}

func TestValidatePosConfig_RoundsRate(t *testing.T) {
	c := &PosConfig{Name: "Main Shop", LBPUSDRate: 89500.456, DisplayLBPTotal: true}
	require.NoError(t, ValidatePosConfig(c))
	assert.Equal(t, 89500.46, c.LBPUSDRate)
	assert.True(t, c.DisplayLBPTotal)
}

func TestValidatePosConfig_Name(t *testing.T) {
	err := ValidatePosConfig(&PosConfig{Name: "  ", LBPUSDRate: 89500})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "name", vErr.Field)

	assert.Error(t, ValidateName(strings.Repeat("x", 129)))
}

func TestValidateLogin(t *testing.T) {
	assert.NoError(t, ValidateLogin("alice"))
	assert.Error(t, ValidateLogin(""))
	assert.Error(t, ValidateLogin(strings.Repeat("a", 129)))
}
