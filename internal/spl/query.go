package spl

import (
	"context"
	"fmt"
	"strings"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/program/metaplex/token_metadata"
	"github.com/blocto/solana-go-sdk/program/token"

	"solana-spl-deployer/internal/domain"
)

// fetch loads account data and checks its owner program.
func (c *Client) fetch(ctx context.Context, address, owner common.PublicKey) ([]byte, error) {
	info, err := c.rpc.GetAccountInfo(ctx, address.ToBase58())
	if err != nil {
		return nil, fmt.Errorf("get account info %s: %w", address.ToBase58(), err)
	}
	if info == nil {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, address.ToBase58())
	}
	if info.Owner != owner.ToBase58() {
		return nil, fmt.Errorf("%w: %s owned by %s, want %s", ErrUnexpectedOwner, address.ToBase58(), info.Owner, owner.ToBase58())
	}
	return info.Data, nil
}

// Mint returns the decoded state of a mint account.
func (c *Client) Mint(ctx context.Context, mint common.PublicKey) (*domain.MintState, error) {
	data, err := c.fetch(ctx, mint, common.TokenProgramID)
	if err != nil {
		return nil, err
	}

	acc, err := token.MintAccountFromData(data)
	if err != nil {
		return nil, fmt.Errorf("decode mint %s: %w", mint.ToBase58(), err)
	}

	return &domain.MintState{
		Address:         mint.ToBase58(),
		MintAuthority:   optionalKey(acc.MintAuthority),
		FreezeAuthority: optionalKey(acc.FreezeAuthority),
		Supply:          acc.Supply,
		Decimals:        acc.Decimals,
		IsInitialized:   acc.IsInitialized,
	}, nil
}

// TokenAccount returns the decoded state of a token account.
func (c *Client) TokenAccount(ctx context.Context, address common.PublicKey) (*domain.TokenAccountState, error) {
	data, err := c.fetch(ctx, address, common.TokenProgramID)
	if err != nil {
		return nil, err
	}

	acc, err := token.TokenAccountFromData(data)
	if err != nil {
		return nil, fmt.Errorf("decode token account %s: %w", address.ToBase58(), err)
	}

	return &domain.TokenAccountState{
		Address: address.ToBase58(),
		Mint:    acc.Mint.ToBase58(),
		Owner:   acc.Owner.ToBase58(),
		Amount:  acc.Amount,
		Frozen:  acc.State == token.TokenAccountFrozen,
	}, nil
}

// AssociatedAccount returns the decoded associated token account of owner for mint.
func (c *Client) AssociatedAccount(ctx context.Context, mint, owner common.PublicKey) (*domain.TokenAccountState, error) {
	ata, err := associatedAccount(owner, mint)
	if err != nil {
		return nil, err
	}
	return c.TokenAccount(ctx, ata)
}

// Metadata returns the Metaplex metadata attached to mint.
func (c *Client) Metadata(ctx context.Context, mint common.PublicKey) (*domain.TokenMetadata, error) {
	pda, err := token_metadata.GetTokenMetaPubkey(mint)
	if err != nil {
		return nil, fmt.Errorf("derive metadata address: %w", err)
	}

	data, err := c.fetch(ctx, pda, common.MetaplexTokenMetaProgramID)
	if err != nil {
		return nil, err
	}

	meta, err := token_metadata.MetadataDeserialize(data)
	if err != nil {
		return nil, fmt.Errorf("decode metadata %s: %w", pda.ToBase58(), err)
	}

	return &domain.TokenMetadata{
		Mint:                 meta.Mint.ToBase58(),
		UpdateAuthority:      meta.UpdateAuthority.ToBase58(),
		Name:                 trimPadding(meta.Data.Name),
		Symbol:               trimPadding(meta.Data.Symbol),
		URI:                  trimPadding(meta.Data.Uri),
		SellerFeeBasisPoints: meta.Data.SellerFeeBasisPoints,
		IsMutable:            meta.IsMutable,
	}, nil
}

// Balance returns the lamport balance of the signer.
func (c *Client) Balance(ctx context.Context) (uint64, error) {
	lamports, err := c.rpc.GetBalance(ctx, c.signer.PublicKey.ToBase58())
	if err != nil {
		return 0, fmt.Errorf("get balance: %w", err)
	}
	return lamports, nil
}

func optionalKey(k *common.PublicKey) *string {
	if k == nil {
		return nil
	}
	s := k.ToBase58()
	return &s
}

// trimPadding strips the NUL bytes the metadata program pads strings with.
func trimPadding(s string) string {
	return strings.TrimRight(s, "\x00")
}
