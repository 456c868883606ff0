package spl

import (
	"context"
	"fmt"
	"strings"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/program/token"
	"github.com/blocto/solana-go-sdk/types"

	"solana-spl-deployer/internal/domain"
)

// AuthorityKind selects which mint authority SetAuthority changes.
type AuthorityKind string

const (
	AuthorityMint   AuthorityKind = "mint"
	AuthorityFreeze AuthorityKind = "freeze"
)

// ParseAuthorityKind parses "mint" or "freeze".
func ParseAuthorityKind(s string) (AuthorityKind, error) {
	switch k := AuthorityKind(strings.ToLower(strings.TrimSpace(s))); k {
	case AuthorityMint, AuthorityFreeze:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidAuthorityKind, s)
	}
}

func (k AuthorityKind) authorityType() (token.AuthorityType, error) {
	switch k {
	case AuthorityMint:
		return token.AuthorityTypeMintTokens, nil
	case AuthorityFreeze:
		return token.AuthorityTypeFreezeAccount, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidAuthorityKind, string(k))
	}
}

func checkAmount(amount uint64) error {
	if amount == 0 {
		return fmt.Errorf("%w: amount must be positive", domain.ErrInvalidAmount)
	}
	return nil
}

// Transfer moves amount base units from the signer's associated account to
// the recipient's, creating the recipient account in the same transaction
// when needed.
func (c *Client) Transfer(ctx context.Context, mint, recipient common.PublicKey, amount uint64) (string, error) {
	if err := checkAmount(amount); err != nil {
		return "", err
	}

	state, err := c.Mint(ctx, mint)
	if err != nil {
		return "", err
	}

	source, err := associatedAccount(c.signer.PublicKey, mint)
	if err != nil {
		return "", err
	}
	dest, instructions, err := c.ensureAssociatedAccount(ctx, recipient, mint)
	if err != nil {
		return "", err
	}

	instructions = append(instructions, token.TransferChecked(token.TransferCheckedParam{
		From:     source,
		To:       dest,
		Mint:     mint,
		Auth:     c.signer.PublicKey,
		Amount:   amount,
		Decimals: state.Decimals,
	}))

	return c.submit(ctx, "transfer", instructions)
}

// MintTo mints amount base units to owner's associated account. It fails
// on chain once the mint authority has been revoked.
func (c *Client) MintTo(ctx context.Context, mint, owner common.PublicKey, amount uint64) (string, error) {
	if err := checkAmount(amount); err != nil {
		return "", err
	}

	state, err := c.Mint(ctx, mint)
	if err != nil {
		return "", err
	}

	dest, instructions, err := c.ensureAssociatedAccount(ctx, owner, mint)
	if err != nil {
		return "", err
	}

	instructions = append(instructions, token.MintToChecked(token.MintToCheckedParam{
		Mint:     mint,
		Auth:     c.signer.PublicKey,
		To:       dest,
		Amount:   amount,
		Decimals: state.Decimals,
	}))

	return c.submit(ctx, "mint", instructions)
}

// Burn destroys amount base units held in the signer's associated account.
func (c *Client) Burn(ctx context.Context, mint common.PublicKey, amount uint64) (string, error) {
	if err := checkAmount(amount); err != nil {
		return "", err
	}

	state, err := c.Mint(ctx, mint)
	if err != nil {
		return "", err
	}

	source, err := associatedAccount(c.signer.PublicKey, mint)
	if err != nil {
		return "", err
	}

	return c.submit(ctx, "burn", []types.Instruction{
		token.BurnChecked(token.BurnCheckedParam{
			Account:  source,
			Mint:     mint,
			Auth:     c.signer.PublicKey,
			Amount:   amount,
			Decimals: state.Decimals,
		}),
	})
}

// Freeze freezes owner's associated account for mint.
func (c *Client) Freeze(ctx context.Context, mint, owner common.PublicKey) (string, error) {
	account, err := associatedAccount(owner, mint)
	if err != nil {
		return "", err
	}

	return c.submit(ctx, "freeze", []types.Instruction{
		token.FreezeAccount(token.FreezeAccountParam{
			Account: account,
			Mint:    mint,
			Auth:    c.signer.PublicKey,
		}),
	})
}

// Thaw thaws owner's associated account for mint.
func (c *Client) Thaw(ctx context.Context, mint, owner common.PublicKey) (string, error) {
	account, err := associatedAccount(owner, mint)
	if err != nil {
		return "", err
	}

	return c.submit(ctx, "thaw", []types.Instruction{
		token.ThawAccount(token.ThawAccountParam{
			Account: account,
			Mint:    mint,
			Auth:    c.signer.PublicKey,
		}),
	})
}

// RevokeAuthority permanently sets the given mint authority to none.
func (c *Client) RevokeAuthority(ctx context.Context, mint common.PublicKey, kind AuthorityKind) (string, error) {
	authType, err := kind.authorityType()
	if err != nil {
		return "", err
	}

	return c.submit(ctx, "revoke_"+string(kind), []types.Instruction{
		token.SetAuthority(token.SetAuthorityParam{
			Account:  mint,
			NewAuth:  nil,
			AuthType: authType,
			Auth:     c.signer.PublicKey,
		}),
	})
}
