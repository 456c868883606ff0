package spl

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/program/associated_token_account"
	"github.com/blocto/solana-go-sdk/program/metaplex/token_metadata"
	"github.com/blocto/solana-go-sdk/program/system"
	"github.com/blocto/solana-go-sdk/program/token"
	"github.com/blocto/solana-go-sdk/types"

	"solana-spl-deployer/internal/domain"
	"solana-spl-deployer/internal/observability"
	"solana-spl-deployer/internal/solana"
)

// Deployer creates a fungible token with metadata and mints its initial
// supply to the signer in a single transaction.
type Deployer struct {
	client *Client
	out    io.Writer
}

// NewDeployer creates a Deployer that prints status lines to out.
func NewDeployer(client *Client, out io.Writer) *Deployer {
	if out == nil {
		out = io.Discard
	}
	return &Deployer{client: client, out: out}
}

// Deploy validates desc, then creates the mint, its metadata account and the
// signer's associated account, and mints TotalSupply * 10^Decimals base
// units. Validation errors are returned before any RPC call.
func (d *Deployer) Deploy(ctx context.Context, desc domain.TokenDescriptor) (*domain.DeploymentResult, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	amount, err := desc.BaseSupply()
	if err != nil {
		return nil, err
	}

	mint := types.NewAccount()
	payer := d.client.signer.PublicKey

	rent, err := d.client.rpc.GetMinimumBalanceForRentExemption(ctx, token.MintAccountSize)
	if err != nil {
		return nil, fmt.Errorf("get rent exemption: %w", err)
	}

	instructions, ata, err := deployInstructions(payer, mint.PublicKey, rent, desc, amount)
	if err != nil {
		return nil, err
	}

	sig, err := d.client.submit(ctx, "deploy", instructions, mint)
	if err != nil {
		return nil, err
	}
	observability.RecordDeployment(float64(time.Now().Unix()))

	result := &domain.DeploymentResult{
		Mint:          mint.PublicKey.ToBase58(),
		MintSecretKey: []byte(mint.PrivateKey),
		Signature:     sig,
		TokenAccount:  ata.ToBase58(),
		MintedAmount:  amount,
	}

	fmt.Fprintln(d.out, "Token deployed successfully")
	fmt.Fprintf(d.out, "Token address: %s\n", result.Mint)
	fmt.Fprintf(d.out, "Token secret key: %s\n", solana.SecretKeyJSON(result.MintSecretKey))

	return result, nil
}

// deployInstructions returns the five deploy instructions in order:
// create mint account, initialize mint, create metadata, create the
// payer's associated account, mint the supply.
func deployInstructions(payer, mint common.PublicKey, rent uint64, desc domain.TokenDescriptor, amount uint64) ([]types.Instruction, common.PublicKey, error) {
	metadataPDA, err := token_metadata.GetTokenMetaPubkey(mint)
	if err != nil {
		return nil, common.PublicKey{}, fmt.Errorf("derive metadata address: %w", err)
	}
	ata, err := associatedAccount(payer, mint)
	if err != nil {
		return nil, common.PublicKey{}, err
	}

	freezeAuth := payer
	instructions := []types.Instruction{
		system.CreateAccount(system.CreateAccountParam{
			From:     payer,
			New:      mint,
			Owner:    common.TokenProgramID,
			Lamports: rent,
			Space:    token.MintAccountSize,
		}),
		token.InitializeMint(token.InitializeMintParam{
			Decimals:   desc.Decimals,
			Mint:       mint,
			MintAuth:   payer,
			FreezeAuth: &freezeAuth,
		}),
		token_metadata.CreateMetadataAccountV3(token_metadata.CreateMetadataAccountV3Param{
			Metadata:                metadataPDA,
			Mint:                    mint,
			MintAuthority:           payer,
			Payer:                   payer,
			UpdateAuthority:         payer,
			UpdateAuthorityIsSigner: true,
			IsMutable:               true,
			Data: token_metadata.DataV2{
				Name:                 desc.Name,
				Symbol:               desc.Symbol,
				Uri:                  desc.URI,
				SellerFeeBasisPoints: 0,
				Creators: &[]token_metadata.Creator{
					{Address: payer, Verified: true, Share: 100},
				},
			},
		}),
		associated_token_account.CreateAssociatedTokenAccount(associated_token_account.CreateAssociatedTokenAccountParam{
			Funder:                 payer,
			Owner:                  payer,
			Mint:                   mint,
			AssociatedTokenAccount: ata,
		}),
		token.MintTo(token.MintToParam{
			Mint:   mint,
			To:     ata,
			Auth:   payer,
			Amount: amount,
		}),
	}

	return instructions, ata, nil
}
