package spl

import (
	"context"
	"testing"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solana-spl-deployer/internal/domain"
	"solana-spl-deployer/internal/solana/stub"
)

// setupMint stores a 9-decimal mint controlled by the client signer and the
// signer's associated account holding balance.
func setupMint(t *testing.T, client *Client, chain *stub.Chain, balance uint64) common.PublicKey {
	t.Helper()
	mint := types.NewAccount().PublicKey
	signer := client.Signer()
	chain.SetAccount(mint.ToBase58(), common.TokenProgramID.ToBase58(), mintData(&signer, &signer, balance, 9))
	chain.SetAccount(ataOf(t, signer, mint).ToBase58(), common.TokenProgramID.ToBase58(), tokenAccountData(mint, signer, balance, false))
	return mint
}

func TestTransfer_CreatesRecipientAccount(t *testing.T) {
	client, chain := newTestClient(t)
	mint := setupMint(t, client, chain, 5_000_000_000)
	recipient := types.NewAccount().PublicKey

	sig, err := client.Transfer(context.Background(), mint, recipient, 1_000_000_000)
	require.NoError(t, err)
	assert.NotEmpty(t, sig)

	tx, ok := chain.LastSent()
	require.True(t, ok)
	require.Len(t, tx.Message.Instructions, 2)
	assert.Equal(t, common.SPLAssociatedTokenAccountProgramID, programAt(t, tx, 0))
	assert.Equal(t, common.TokenProgramID, programAt(t, tx, 1))

	want := append([]byte{12}, le64(1_000_000_000)...)
	want = append(want, 9)
	assert.Equal(t, want, tx.Message.Instructions[1].Data)
	assert.Contains(t, tx.Message.Accounts, ataOf(t, recipient, mint))
}

func TestTransfer_ExistingRecipientAccount(t *testing.T) {
	client, chain := newTestClient(t)
	mint := setupMint(t, client, chain, 5_000_000_000)
	recipient := types.NewAccount().PublicKey
	chain.SetAccount(ataOf(t, recipient, mint).ToBase58(), common.TokenProgramID.ToBase58(), tokenAccountData(mint, recipient, 0, false))

	_, err := client.Transfer(context.Background(), mint, recipient, 1)
	require.NoError(t, err)

	tx, _ := chain.LastSent()
	require.Len(t, tx.Message.Instructions, 1)
	assert.Equal(t, byte(12), tx.Message.Instructions[0].Data[0])
}

func TestTransfer_ZeroAmount(t *testing.T) {
	client, chain := newTestClient(t)

	_, err := client.Transfer(context.Background(), types.NewAccount().PublicKey, types.NewAccount().PublicKey, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	assert.Equal(t, 0, chain.TotalCalls())
}

func TestTransfer_OffCurveRecipient(t *testing.T) {
	client, chain := newTestClient(t)
	mint := setupMint(t, client, chain, 10)

	// An associated token account is a program derived address.
	pda := ataOf(t, types.NewAccount().PublicKey, mint)

	_, err := client.Transfer(context.Background(), mint, pda, 1)
	assert.ErrorIs(t, err, ErrOwnerOffCurve)
	assert.Equal(t, 0, chain.Calls("sendTransaction"))
}

func TestTransfer_UnknownMint(t *testing.T) {
	client, chain := newTestClient(t)

	_, err := client.Transfer(context.Background(), types.NewAccount().PublicKey, types.NewAccount().PublicKey, 1)
	assert.ErrorIs(t, err, ErrAccountNotFound)
	assert.Equal(t, 0, chain.Calls("sendTransaction"))
}

func TestMintTo(t *testing.T) {
	client, chain := newTestClient(t)
	mint := setupMint(t, client, chain, 0)

	_, err := client.MintTo(context.Background(), mint, client.Signer(), 250)
	require.NoError(t, err)

	tx, _ := chain.LastSent()
	require.Len(t, tx.Message.Instructions, 1)
	want := append([]byte{14}, le64(250)...)
	want = append(want, 9)
	assert.Equal(t, want, tx.Message.Instructions[0].Data)
}

func TestMintTo_ZeroAmount(t *testing.T) {
	client, chain := newTestClient(t)

	_, err := client.MintTo(context.Background(), types.NewAccount().PublicKey, client.Signer(), 0)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	assert.Equal(t, 0, chain.TotalCalls())
}

func TestBurn(t *testing.T) {
	client, chain := newTestClient(t)
	mint := setupMint(t, client, chain, 1000)

	_, err := client.Burn(context.Background(), mint, 400)
	require.NoError(t, err)

	tx, _ := chain.LastSent()
	require.Len(t, tx.Message.Instructions, 1)
	want := append([]byte{15}, le64(400)...)
	want = append(want, 9)
	assert.Equal(t, want, tx.Message.Instructions[0].Data)
	assert.Contains(t, tx.Message.Accounts, ataOf(t, client.Signer(), mint))
}

func TestFreezeAndThaw(t *testing.T) {
	client, chain := newTestClient(t)
	mint := setupMint(t, client, chain, 1)

	_, err := client.Freeze(context.Background(), mint, client.Signer())
	require.NoError(t, err)
	tx, _ := chain.LastSent()
	assert.Equal(t, []byte{10}, tx.Message.Instructions[0].Data)

	_, err = client.Thaw(context.Background(), mint, client.Signer())
	require.NoError(t, err)
	tx, _ = chain.LastSent()
	assert.Equal(t, []byte{11}, tx.Message.Instructions[0].Data)
}

func TestRevokeAuthority(t *testing.T) {
	tests := []struct {
		kind     AuthorityKind
		wantType byte
	}{
		{AuthorityMint, 0},
		{AuthorityFreeze, 1},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			client, chain := newTestClient(t)
			mint := setupMint(t, client, chain, 1)

			_, err := client.RevokeAuthority(context.Background(), mint, tt.kind)
			require.NoError(t, err)

			tx, _ := chain.LastSent()
			data := tx.Message.Instructions[0].Data
			require.GreaterOrEqual(t, len(data), 3)
			assert.Equal(t, byte(6), data[0])
			assert.Equal(t, tt.wantType, data[1])
			assert.Equal(t, byte(0), data[2], "new authority must be none")
		})
	}
}

func TestParseAuthorityKind(t *testing.T) {
	k, err := ParseAuthorityKind(" Mint ")
	require.NoError(t, err)
	assert.Equal(t, AuthorityMint, k)

	k, err = ParseAuthorityKind("freeze")
	require.NoError(t, err)
	assert.Equal(t, AuthorityFreeze, k)

	_, err = ParseAuthorityKind("close")
	assert.ErrorIs(t, err, ErrInvalidAuthorityKind)
}

func TestGetOrCreateAssociatedAccount(t *testing.T) {
	client, chain := newTestClient(t)
	mint := setupMint(t, client, chain, 77)

	// Existing account is decoded without a transaction.
	existing, err := client.GetOrCreateAssociatedAccount(context.Background(), mint, client.Signer())
	require.NoError(t, err)
	assert.Equal(t, uint64(77), existing.Amount)
	assert.Equal(t, 0, chain.Calls("sendTransaction"))

	// Missing account is created.
	owner := types.NewAccount().PublicKey
	created, err := client.GetOrCreateAssociatedAccount(context.Background(), mint, owner)
	require.NoError(t, err)
	assert.Equal(t, ataOf(t, owner, mint).ToBase58(), created.Address)
	assert.Equal(t, owner.ToBase58(), created.Owner)
	assert.Equal(t, uint64(0), created.Amount)
	assert.False(t, created.Frozen)
	assert.Equal(t, 1, chain.Calls("sendTransaction"))

	tx, _ := chain.LastSent()
	assert.Equal(t, common.SPLAssociatedTokenAccountProgramID, programAt(t, tx, 0))
}

func TestGetOrCreateAssociatedAccount_OffCurve(t *testing.T) {
	client, chain := newTestClient(t)
	mint := types.NewAccount().PublicKey
	pda := ataOf(t, client.Signer(), mint)

	_, err := client.GetOrCreateAssociatedAccount(context.Background(), mint, pda)
	assert.ErrorIs(t, err, ErrOwnerOffCurve)
	assert.Equal(t, 0, chain.TotalCalls())
}
