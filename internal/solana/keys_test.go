package solana

import (
	"crypto/sha256"
	"testing"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePublicKey(t *testing.T) {
	pub, err := ParsePublicKey("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA")
	require.NoError(t, err)
	assert.Equal(t, common.TokenProgramID, pub)

	_, err = ParsePublicKey("not-base58-0OIl")
	assert.ErrorIs(t, err, ErrInvalidAddress)

	_, err = ParsePublicKey("3yZe7d")
	assert.ErrorIs(t, err, ErrInvalidAddress)
}

func TestIsOnCurve(t *testing.T) {
	acc := types.NewAccount()
	assert.True(t, IsOnCurve(acc.PublicKey))

	ata, _, err := common.FindAssociatedTokenAddress(acc.PublicKey, common.TokenProgramID)
	require.NoError(t, err)
	assert.False(t, IsOnCurve(ata), "program derived addresses are off curve")
}

func TestSecretKeyJSON(t *testing.T) {
	secret := []byte{1, 2, 255}
	assert.Equal(t, "[1,2,255]", SecretKeyJSON(secret))
	assert.Equal(t, "[]", SecretKeyJSON(nil))
}

func TestTransactionSignature(t *testing.T) {
	_, err := TransactionSignature(types.Transaction{})
	assert.Error(t, err)

	sig := sha256.Sum256([]byte("sig"))
	full := append(sig[:], sig[:]...)
	got, err := TransactionSignature(types.Transaction{Signatures: []types.Signature{full}})
	require.NoError(t, err)
	assert.NotEmpty(t, got)
}
