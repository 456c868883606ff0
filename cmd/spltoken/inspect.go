package main

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"solana-spl-deployer/internal/domain"
	"solana-spl-deployer/internal/solana"
	"solana-spl-deployer/internal/spl"
)

func (a *app) inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <mint>",
		Short: "Show mint state, metadata and the signer's token balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mint, err := solana.ParsePublicKey(args[0])
			if err != nil {
				return err
			}

			return a.withClient(cmd, func(ctx context.Context, c *spl.Client) error {
				state, err := c.Mint(ctx, mint)
				if err != nil {
					return err
				}

				w := tabwriter.NewWriter(a.stdout, 0, 0, 2, ' ', 0)
				fmt.Fprintf(w, "Mint:\t%s\n", state.Address)
				fmt.Fprintf(w, "Supply:\t%s\n", domain.FormatUnits(state.Supply, state.Decimals))
				fmt.Fprintf(w, "Decimals:\t%d\n", state.Decimals)
				fmt.Fprintf(w, "Mint authority:\t%s\n", authorityString(state.MintAuthority))
				fmt.Fprintf(w, "Freeze authority:\t%s\n", authorityString(state.FreezeAuthority))

				meta, err := c.Metadata(ctx, mint)
				switch {
				case err == nil:
					fmt.Fprintf(w, "Name:\t%s\n", meta.Name)
					fmt.Fprintf(w, "Symbol:\t%s\n", meta.Symbol)
					fmt.Fprintf(w, "URI:\t%s\n", meta.URI)
					fmt.Fprintf(w, "Update authority:\t%s\n", meta.UpdateAuthority)
					fmt.Fprintf(w, "Mutable:\t%t\n", meta.IsMutable)
				case errors.Is(err, spl.ErrAccountNotFound):
					fmt.Fprintf(w, "Metadata:\tnone\n")
				default:
					return err
				}

				acc, err := c.AssociatedAccount(ctx, mint, c.Signer())
				switch {
				case err == nil:
					fmt.Fprintf(w, "Signer account:\t%s\n", acc.Address)
					fmt.Fprintf(w, "Signer balance:\t%s\n", domain.FormatUnits(acc.Amount, state.Decimals))
					fmt.Fprintf(w, "Frozen:\t%t\n", acc.Frozen)
				case errors.Is(err, spl.ErrAccountNotFound):
					fmt.Fprintf(w, "Signer account:\tnone\n")
				default:
					return err
				}

				return w.Flush()
			})
		},
	}
}

func authorityString(auth *string) string {
	if auth == nil {
		return "none (revoked)"
	}
	return *auth
}
