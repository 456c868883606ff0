package solana

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"filippo.io/edwards25519"
	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/types"
	"github.com/mr-tron/base58"
)

// ErrInvalidAddress is returned when a string is not a base58 32-byte public key.
var ErrInvalidAddress = errors.New("invalid address")

// ParsePublicKey decodes a base58 address.
// Unlike common.PublicKeyFromString it rejects malformed input instead of
// yielding the zero key.
func ParsePublicKey(s string) (common.PublicKey, error) {
	s = strings.TrimSpace(s)
	decoded, err := base58.Decode(s)
	if err != nil {
		return common.PublicKey{}, fmt.Errorf("%w: %q: %v", ErrInvalidAddress, s, err)
	}
	if len(decoded) != common.PublicKeyLength {
		return common.PublicKey{}, fmt.Errorf("%w: %q decodes to %d bytes", ErrInvalidAddress, s, len(decoded))
	}
	return common.PublicKeyFromBytes(decoded), nil
}

// IsOnCurve reports whether the key is a valid ed25519 point, i.e. a wallet
// address rather than a program derived address.
func IsOnCurve(pub common.PublicKey) bool {
	_, err := new(edwards25519.Point).SetBytes(pub.Bytes())
	return err == nil
}

// SecretKeyJSON renders a secret key as a solana-keygen style JSON byte array.
func SecretKeyJSON(secret []byte) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range secret {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(int(v)))
	}
	b.WriteByte(']')
	return b.String()
}

// TransactionSignature returns the base58 fee-payer signature of a signed transaction.
func TransactionSignature(tx types.Transaction) (string, error) {
	if len(tx.Signatures) == 0 || len(tx.Signatures[0]) == 0 {
		return "", fmt.Errorf("transaction is not signed")
	}
	return base58.Encode(tx.Signatures[0]), nil
}
