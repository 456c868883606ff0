package main

import (
	"context"

	"github.com/spf13/cobra"

	"solana-spl-deployer/internal/domain"
	"solana-spl-deployer/internal/spl"
)

func (a *app) deployCmd() *cobra.Command {
	var desc domain.TokenDescriptor

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy a token with metadata and mint the initial supply to the signer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d := a.cfg.Descriptor
			flags := cmd.Flags()
			if flags.Changed("name") {
				d.Name = desc.Name
			}
			if flags.Changed("symbol") {
				d.Symbol = desc.Symbol
			}
			if flags.Changed("uri") {
				d.URI = desc.URI
			}
			if flags.Changed("supply") {
				d.TotalSupply = desc.TotalSupply
			}
			if flags.Changed("decimals") {
				d.Decimals = desc.Decimals
			}

			// Fail on a bad descriptor before touching the network.
			if err := d.Validate(); err != nil {
				return err
			}

			return a.withClient(cmd, func(ctx context.Context, c *spl.Client) error {
				if lamports, err := c.Balance(ctx); err == nil {
					a.logger.Printf("signer balance: %s SOL", domain.FormatUnits(lamports, 9))
				}

				result, err := spl.NewDeployer(c, a.stdout).Deploy(ctx, d)
				if err != nil {
					return err
				}

				a.logger.Printf("deployed %s (%s %s base units) in %s",
					result.Mint, domain.FormatUnits(result.MintedAmount, d.Decimals), d.Symbol, result.Signature)
				return nil
			})
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&desc.Name, "name", "", "token name (max 32 bytes)")
	fs.StringVar(&desc.Symbol, "symbol", "", "token symbol (max 10 bytes)")
	fs.StringVar(&desc.URI, "uri", "", "metadata URI (max 200 bytes, required)")
	fs.Uint64Var(&desc.TotalSupply, "supply", 0, "initial supply in whole tokens")
	fs.Uint8Var(&desc.Decimals, "decimals", 0, "decimal places (0-9)")
	return cmd
}
