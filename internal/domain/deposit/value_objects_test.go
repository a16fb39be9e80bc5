//go:build unit

package deposit_test

import (
	"testing"

	"bundlemart-api/internal/domain/deposit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAmount(t *testing.T) {
	tests := []struct {
		name    string
		ghs     float64
		minGHS  float64
		pesewas int64
		errIs   error
	}{
		{name: "whole cedis", ghs: 50, minGHS: 10, pesewas: 5000},
		{name: "fractional cedis", ghs: 25.55, minGHS: 10, pesewas: 2555},
		{name: "exactly the minimum", ghs: 10, minGHS: 10, pesewas: 1000},
		{name: "below the minimum", ghs: 9.99, minGHS: 10, errIs: deposit.ErrAmountBelowMinimum},
		{name: "zero", ghs: 0, minGHS: 10, errIs: deposit.ErrAmountNotPositive},
		{name: "negative", ghs: -5, minGHS: 10, errIs: deposit.ErrAmountNotPositive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, err := deposit.NewAmount(tt.ghs, tt.minGHS)
			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.pesewas, amount.Pesewas())
		})
	}
}

func TestAmountString(t *testing.T) {
	amount, err := deposit.NewAmount(49.5, 10)
	require.NoError(t, err)
	assert.Equal(t, "GHS 49.50", amount.String())
	assert.InDelta(t, 49.5, amount.GHS(), 0.0001)
}

func TestNewPhoneNumber(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		normalized string
		wantErr    bool
	}{
		{name: "local form", raw: "0244123456", normalized: "0244123456"},
		{name: "international plus form", raw: "+233244123456", normalized: "0244123456"},
		{name: "international bare form", raw: "233244123456", normalized: "0244123456"},
		{name: "spaces and dashes", raw: "024-412 3456", normalized: "0244123456"},
		{name: "too short", raw: "024412345", wantErr: true},
		{name: "letters", raw: "02441234ab", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := deposit.NewPhoneNumber(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, deposit.ErrInvalidPhoneNumber)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.normalized, p.String())
		})
	}
}

func TestNewOtpCode(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{name: "six digits", raw: "123456"},
		{name: "leading zeros", raw: "000042"},
		{name: "five digits", raw: "12345", wantErr: true},
		{name: "seven digits", raw: "1234567", wantErr: true},
		{name: "letters", raw: "12a456", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, err := deposit.NewOtpCode(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, deposit.ErrInvalidOtpCode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.raw, code.String())
		})
	}
}
