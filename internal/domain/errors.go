package domain

import "errors"

// Validation errors. All are returned before any network interaction.
var (
	// ErrInvalidMetadata is returned when name, symbol or uri are missing or too long.
	ErrInvalidMetadata = errors.New("invalid metadata")

	// ErrInvalidSupply is returned when the initial supply is zero.
	ErrInvalidSupply = errors.New("invalid supply")

	// ErrInvalidDecimals is returned when decimals exceed MaxDecimals.
	ErrInvalidDecimals = errors.New("invalid decimals")

	// ErrInvalidAmount is returned for zero token amounts.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrAmountOverflow is returned when an amount does not fit in u64 base units.
	ErrAmountOverflow = errors.New("amount overflows u64 base units")
)
