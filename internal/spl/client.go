// Package spl builds, signs and submits SPL token and Metaplex metadata
// transactions, and decodes the resulting on-chain accounts.
package spl

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/program/associated_token_account"
	"github.com/blocto/solana-go-sdk/types"

	"solana-spl-deployer/internal/domain"
	"solana-spl-deployer/internal/observability"
	"solana-spl-deployer/internal/solana"
)

// Client submits token transactions signed by a single keypair, which pays
// fees and acts as mint, freeze and update authority.
type Client struct {
	rpc       solana.RPCClient
	confirmer solana.Confirmer
	signer    types.Account
	logger    *log.Logger
}

// NewClient creates a token client. A nil logger discards log output.
func NewClient(rpc solana.RPCClient, confirmer solana.Confirmer, signer types.Account, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Client{
		rpc:       rpc,
		confirmer: confirmer,
		signer:    signer,
		logger:    logger,
	}
}

// Signer returns the public key of the signing keypair.
func (c *Client) Signer() common.PublicKey {
	return c.signer.PublicKey
}

// submit builds a transaction from instructions, signs it with the client
// signer plus extra, sends it and waits for confirmation. Submission is
// never retried.
func (c *Client) submit(ctx context.Context, operation string, instructions []types.Instruction, extra ...types.Account) (string, error) {
	blockhash, err := c.rpc.GetLatestBlockhash(ctx)
	if err != nil {
		return "", fmt.Errorf("get latest blockhash: %w", err)
	}

	signers := append([]types.Account{c.signer}, extra...)
	tx, err := types.NewTransaction(types.NewTransactionParam{
		Signers: signers,
		Message: types.NewMessage(types.NewMessageParam{
			FeePayer:        c.signer.PublicKey,
			RecentBlockhash: blockhash.Blockhash,
			Instructions:    instructions,
		}),
	})
	if err != nil {
		return "", fmt.Errorf("build transaction: %w", err)
	}

	raw, err := tx.Serialize()
	if err != nil {
		return "", fmt.Errorf("serialize transaction: %w", err)
	}

	sig, err := c.rpc.SendTransaction(ctx, raw)
	if err != nil {
		observability.RecordTransaction(operation, 0, err)
		return "", fmt.Errorf("send transaction: %w", err)
	}
	c.logger.Printf("%s: submitted %s", operation, sig)

	start := time.Now()
	err = c.confirmer.Confirm(ctx, sig)
	observability.RecordTransaction(operation, time.Since(start).Seconds(), err)
	if err != nil {
		return sig, fmt.Errorf("confirm transaction %s: %w", sig, err)
	}

	c.logger.Printf("%s: confirmed %s", operation, sig)
	return sig, nil
}

// associatedAccount derives owner's associated token account for mint.
func associatedAccount(owner, mint common.PublicKey) (common.PublicKey, error) {
	if !solana.IsOnCurve(owner) {
		return common.PublicKey{}, fmt.Errorf("%w: %s", ErrOwnerOffCurve, owner.ToBase58())
	}
	ata, _, err := common.FindAssociatedTokenAddress(owner, mint)
	if err != nil {
		return common.PublicKey{}, fmt.Errorf("find associated token address: %w", err)
	}
	return ata, nil
}

// ensureAssociatedAccount returns owner's ATA and, when it does not exist
// yet, the instruction creating it funded by the signer.
func (c *Client) ensureAssociatedAccount(ctx context.Context, owner, mint common.PublicKey) (common.PublicKey, []types.Instruction, error) {
	ata, err := associatedAccount(owner, mint)
	if err != nil {
		return common.PublicKey{}, nil, err
	}

	info, err := c.rpc.GetAccountInfo(ctx, ata.ToBase58())
	if err != nil {
		return common.PublicKey{}, nil, fmt.Errorf("get account info %s: %w", ata.ToBase58(), err)
	}
	if info != nil {
		return ata, nil, nil
	}

	create := associated_token_account.CreateAssociatedTokenAccount(
		associated_token_account.CreateAssociatedTokenAccountParam{
			Funder:                 c.signer.PublicKey,
			Owner:                  owner,
			Mint:                   mint,
			AssociatedTokenAccount: ata,
		},
	)
	return ata, []types.Instruction{create}, nil
}

// GetOrCreateAssociatedAccount returns owner's associated token account for
// mint, creating it first when absent. The owner must be on the ed25519 curve.
func (c *Client) GetOrCreateAssociatedAccount(ctx context.Context, mint, owner common.PublicKey) (*domain.TokenAccountState, error) {
	ata, create, err := c.ensureAssociatedAccount(ctx, owner, mint)
	if err != nil {
		return nil, err
	}
	if len(create) == 0 {
		return c.TokenAccount(ctx, ata)
	}

	if _, err := c.submit(ctx, "create_account", create); err != nil {
		return nil, err
	}

	// A freshly created associated account is empty and initialized.
	return &domain.TokenAccountState{
		Address: ata.ToBase58(),
		Mint:    mint.ToBase58(),
		Owner:   owner.ToBase58(),
	}, nil
}
