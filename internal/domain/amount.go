package domain

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// ToBaseUnits converts whole tokens to base units (whole * 10^decimals)
// using exact decimal arithmetic.
func ToBaseUnits(whole uint64, decimals uint8) (uint64, error) {
	if decimals > MaxDecimals {
		return 0, fmt.Errorf("%w: %d > %d", ErrInvalidDecimals, decimals, MaxDecimals)
	}
	base := fromUint64(whole).Shift(int32(decimals)).BigInt()
	if !base.IsUint64() {
		return 0, fmt.Errorf("%w: %d * 10^%d", ErrAmountOverflow, whole, decimals)
	}
	return base.Uint64(), nil
}

// ParseUnits converts a decimal string in whole tokens (e.g. "1.5") to base
// units. Fractions finer than the mint precision are rejected.
func ParseUnits(s string, decimals uint8) (uint64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidAmount, s, err)
	}
	if d.Sign() <= 0 {
		return 0, fmt.Errorf("%w: %q must be positive", ErrInvalidAmount, s)
	}
	shifted := d.Shift(int32(decimals))
	if !shifted.Equal(shifted.Truncate(0)) {
		return 0, fmt.Errorf("%w: %q has more than %d decimals", ErrInvalidAmount, s, decimals)
	}
	base := shifted.BigInt()
	if !base.IsUint64() {
		return 0, fmt.Errorf("%w: %q", ErrAmountOverflow, s)
	}
	return base.Uint64(), nil
}

// FormatUnits renders base units as a whole-token decimal string.
func FormatUnits(base uint64, decimals uint8) string {
	return fromUint64(base).Shift(-int32(decimals)).StringFixed(int32(decimals))
}

func fromUint64(v uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(v), 0)
}
