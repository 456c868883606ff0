package config

import (
	"bytes"
	"crypto/ed25519"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/blocto/solana-go-sdk/types"
)

// ParseKeypair decodes a solana-keygen style JSON array of 64 bytes
// (32-byte seed followed by the public key) into an account.
func ParseKeypair(raw string) (types.Account, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return types.Account{}, configErr(ErrMissingPrivateKey, "")
	}

	keyBytes, err := decodeKeypairJSON([]byte(raw))
	if err != nil {
		return types.Account{}, configErr(ErrInvalidPrivateKey, err.Error())
	}

	// A keypair whose public half does not match its seed signs with one
	// key while claiming another.
	derived := ed25519.NewKeyFromSeed(keyBytes[:ed25519.SeedSize])
	if !bytes.Equal(derived.Public().(ed25519.PublicKey), keyBytes[ed25519.SeedSize:]) {
		return types.Account{}, configErr(ErrInvalidPrivateKey, "public key does not match seed")
	}

	acc, err := types.AccountFromBytes(keyBytes)
	if err != nil {
		return types.Account{}, configErr(ErrInvalidPrivateKey, err.Error())
	}
	return acc, nil
}

// decodeKeypairJSON accepts only a JSON array of 64 integers in 0..255.
// Decoding into []int keeps base64 strings from passing as []byte.
func decodeKeypairJSON(data []byte) ([]byte, error) {
	var ints []int
	if err := json.Unmarshal(data, &ints); err != nil {
		return nil, fmt.Errorf("unmarshal keypair json: %w", err)
	}
	if len(ints) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("unexpected secret key length: got %d, want %d", len(ints), ed25519.PrivateKeySize)
	}

	keyBytes := make([]byte, len(ints))
	for i, v := range ints {
		if v < 0 || v > 255 {
			return nil, fmt.Errorf("secret key byte %d out of range: %d", i, v)
		}
		keyBytes[i] = byte(v)
	}
	return keyBytes, nil
}
