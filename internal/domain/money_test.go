package domain_test

import (
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/smart-inventory/internal/domain"
)

func TestValidatePrice(t *testing.T) {
	cases := []struct {
		price string
		ok    bool
	}{
		{"0.01", true},
		{"19.99", true},
		{"19.990", true},
		{"999999999999.99", true},
		{"0", false},
		{"-5", false},
		{"19.995", false},
		{"0.004", false},
		{"1000000000000", false},
	}
	for _, tc := range cases {
		t.Run(tc.price, func(t *testing.T) {
			err := domain.ValidatePrice("price", decimal.RequireFromString(tc.price))
			if tc.ok {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, domain.ErrInvalidInput), "err = %v", err)
		})
	}
}

func TestAddQuantity(t *testing.T) {
	n, err := domain.AddQuantity(3, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)

	n, err = domain.AddQuantity(math.MaxInt64-1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), n)

	_, err = domain.AddQuantity(math.MaxInt64, 3)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = domain.AddQuantity(3, math.MaxInt64)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
