package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/spf13/cobra"

	"solana-spl-deployer/internal/domain"
	"solana-spl-deployer/internal/solana"
	"solana-spl-deployer/internal/spl"
)

// parseAmount reads a base-unit integer, or whole tokens when ui is set.
func parseAmount(ctx context.Context, c *spl.Client, mint common.PublicKey, raw string, ui bool) (uint64, error) {
	if !ui {
		amount, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q: %v", domain.ErrInvalidAmount, raw, err)
		}
		return amount, nil
	}

	state, err := c.Mint(ctx, mint)
	if err != nil {
		return 0, err
	}
	return domain.ParseUnits(raw, state.Decimals)
}

func (a *app) printSignature(op, sig string) {
	fmt.Fprintf(a.stdout, "%s: %s\n", op, sig)
}

func (a *app) transferCmd() *cobra.Command {
	var ui bool
	cmd := &cobra.Command{
		Use:   "transfer <mint> <recipient> <amount>",
		Short: "Transfer tokens from the signer to a wallet",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			mint, err := solana.ParsePublicKey(args[0])
			if err != nil {
				return err
			}
			recipient, err := solana.ParsePublicKey(args[1])
			if err != nil {
				return err
			}

			return a.withClient(cmd, func(ctx context.Context, c *spl.Client) error {
				amount, err := parseAmount(ctx, c, mint, args[2], ui)
				if err != nil {
					return err
				}
				sig, err := c.Transfer(ctx, mint, recipient, amount)
				if err != nil {
					return err
				}
				a.printSignature("transfer", sig)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&ui, "ui", false, "amount is in whole tokens")
	return cmd
}

func (a *app) mintCmd() *cobra.Command {
	var (
		ui bool
		to string
	)
	cmd := &cobra.Command{
		Use:   "mint <mint> <amount>",
		Short: "Mint tokens to a wallet (the signer by default)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mint, err := solana.ParsePublicKey(args[0])
			if err != nil {
				return err
			}
			owner := a.cfg.Signer.PublicKey
			if to != "" {
				if owner, err = solana.ParsePublicKey(to); err != nil {
					return err
				}
			}

			return a.withClient(cmd, func(ctx context.Context, c *spl.Client) error {
				amount, err := parseAmount(ctx, c, mint, args[1], ui)
				if err != nil {
					return err
				}
				sig, err := c.MintTo(ctx, mint, owner, amount)
				if err != nil {
					return err
				}
				a.printSignature("mint", sig)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&ui, "ui", false, "amount is in whole tokens")
	cmd.Flags().StringVar(&to, "to", "", "recipient wallet (default signer)")
	return cmd
}

func (a *app) burnCmd() *cobra.Command {
	var ui bool
	cmd := &cobra.Command{
		Use:   "burn <mint> <amount>",
		Short: "Burn tokens held by the signer",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mint, err := solana.ParsePublicKey(args[0])
			if err != nil {
				return err
			}

			return a.withClient(cmd, func(ctx context.Context, c *spl.Client) error {
				amount, err := parseAmount(ctx, c, mint, args[1], ui)
				if err != nil {
					return err
				}
				sig, err := c.Burn(ctx, mint, amount)
				if err != nil {
					return err
				}
				a.printSignature("burn", sig)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&ui, "ui", false, "amount is in whole tokens")
	return cmd
}

// freezeThawCmd builds freeze and thaw, which differ only in the client call.
func (a *app) freezeThawCmd(use, short string, op func(*spl.Client, context.Context, common.PublicKey, common.PublicKey) (string, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <mint> [owner]",
		Short: short,
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mint, err := solana.ParsePublicKey(args[0])
			if err != nil {
				return err
			}
			owner := a.cfg.Signer.PublicKey
			if len(args) == 2 {
				if owner, err = solana.ParsePublicKey(args[1]); err != nil {
					return err
				}
			}

			return a.withClient(cmd, func(ctx context.Context, c *spl.Client) error {
				sig, err := op(c, ctx, mint, owner)
				if err != nil {
					return err
				}
				a.printSignature(use, sig)
				return nil
			})
		},
	}
}

func (a *app) freezeCmd() *cobra.Command {
	return a.freezeThawCmd("freeze", "Freeze a wallet's token account (the signer's by default)",
		(*spl.Client).Freeze)
}

func (a *app) thawCmd() *cobra.Command {
	return a.freezeThawCmd("thaw", "Thaw a wallet's token account (the signer's by default)",
		(*spl.Client).Thaw)
}

func (a *app) revokeCmd() *cobra.Command {
	var authority string
	cmd := &cobra.Command{
		Use:   "revoke <mint>",
		Short: "Permanently remove the mint or freeze authority",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mint, err := solana.ParsePublicKey(args[0])
			if err != nil {
				return err
			}
			kind, err := spl.ParseAuthorityKind(authority)
			if err != nil {
				return err
			}

			return a.withClient(cmd, func(ctx context.Context, c *spl.Client) error {
				sig, err := c.RevokeAuthority(ctx, mint, kind)
				if err != nil {
					return err
				}
				a.printSignature("revoke "+string(kind), sig)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&authority, "authority", "", "authority to revoke: mint or freeze")
	_ = cmd.MarkFlagRequired("authority")
	return cmd
}
