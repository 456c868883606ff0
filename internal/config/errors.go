package config

import (
	"errors"
	"fmt"
)

// Configuration errors. Every error returned by Load wraps ErrConfig and
// one of the specific errors below.
var (
	// ErrConfig is the root of all configuration errors.
	ErrConfig = errors.New("config error")

	// ErrMissingPrivateKey is returned when PRIVATE_KEY is unset or empty.
	ErrMissingPrivateKey = errors.New("PRIVATE_KEY is not set")

	// ErrInvalidPrivateKey is returned for a malformed or inconsistent keypair.
	ErrInvalidPrivateKey = errors.New("invalid PRIVATE_KEY")

	// ErrMissingMainnetURL is returned when PRODUCTION=true without MAINNET_RPC_URL.
	ErrMissingMainnetURL = errors.New("MAINNET_RPC_URL is required when PRODUCTION=true")

	// ErrInvalidCommitment is returned for an unknown COMMITMENT value.
	ErrInvalidCommitment = errors.New("invalid COMMITMENT")

	// ErrInvalidTimeout is returned for a non-positive or unparsable CONFIRM_TIMEOUT.
	ErrInvalidTimeout = errors.New("invalid CONFIRM_TIMEOUT")
)

func configErr(kind error, detail string) error {
	if detail == "" {
		return fmt.Errorf("%w: %w", ErrConfig, kind)
	}
	return fmt.Errorf("%w: %w: %s", ErrConfig, kind, detail)
}
