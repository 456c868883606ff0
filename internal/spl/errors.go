package spl

import "errors"

var (
	// ErrAccountNotFound is returned when a queried account does not exist.
	ErrAccountNotFound = errors.New("account not found")

	// ErrUnexpectedOwner is returned when an account is not owned by the expected program.
	ErrUnexpectedOwner = errors.New("account has unexpected owner program")

	// ErrOwnerOffCurve is returned when an associated token account would be
	// derived for an owner that is not an ed25519 wallet address.
	ErrOwnerOffCurve = errors.New("token owner is off curve")

	// ErrInvalidAuthorityKind is returned for an unknown authority kind.
	ErrInvalidAuthorityKind = errors.New("invalid authority kind")
)
