package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToBaseUnits(t *testing.T) {
	tests := []struct {
		whole    uint64
		decimals uint8
		want     uint64
	}{
		{1, 9, 1_000_000_000},
		{1_000_000_000, 9, 1_000_000_000_000_000_000},
		{18_446_744_073, 9, 18_446_744_073_000_000_000},
		{42, 0, 42},
		{7, 2, 700},
	}

	for _, tt := range tests {
		got, err := ToBaseUnits(tt.whole, tt.decimals)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "ToBaseUnits(%d, %d)", tt.whole, tt.decimals)
	}
}

func TestToBaseUnits_Overflow(t *testing.T) {
	_, err := ToBaseUnits(18_446_744_074, 9)
	assert.ErrorIs(t, err, ErrAmountOverflow)

	_, err = ToBaseUnits(math.MaxUint64, 1)
	assert.ErrorIs(t, err, ErrAmountOverflow)

	_, err = ToBaseUnits(1, 12)
	assert.ErrorIs(t, err, ErrInvalidDecimals)
}

func TestParseUnits(t *testing.T) {
	got, err := ParseUnits("1.5", 9)
	require.NoError(t, err)
	assert.Equal(t, uint64(1_500_000_000), got)

	got, err = ParseUnits("1000", 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), got)

	_, err = ParseUnits("0.001", 2)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = ParseUnits("0", 9)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = ParseUnits("abc", 9)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = ParseUnits("20000000000", 9)
	assert.ErrorIs(t, err, ErrAmountOverflow)
}

func TestFormatUnits(t *testing.T) {
	assert.Equal(t, "1.000000000", FormatUnits(1_000_000_000, 9))
	assert.Equal(t, "0.05", FormatUnits(5, 2))
	assert.Equal(t, "1000", FormatUnits(1000, 0))
}
