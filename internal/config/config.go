// Package config resolves the network, RPC endpoints, signing keypair and
// token descriptor from the environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/blocto/solana-go-sdk/types"
	"github.com/spf13/viper"

	"solana-spl-deployer/internal/domain"
	"solana-spl-deployer/internal/solana"
)

// Network is a Solana cluster.
type Network string

// Supported clusters.
const (
	NetworkDevnet  Network = "devnet"
	NetworkMainnet Network = "mainnet-beta"
)

// Environment keys, lower-cased as viper stores them.
const (
	KeyProduction     = "production"
	KeyMainnetRPCURL  = "mainnet_rpc_url"
	KeyPrivateKey     = "private_key"
	KeyRPCURL         = "rpc_url"
	KeyWSURL          = "ws_url"
	KeyCommitment     = "commitment"
	KeyConfirmTimeout = "confirm_timeout"
)

// Config is the resolved runtime configuration. It is built once at startup
// and passed down explicitly.
type Config struct {
	Network        Network
	RPCURL         string
	WSURL          string
	Commitment     solana.Commitment
	ConfirmTimeout time.Duration
	Signer         types.Account
	Descriptor     domain.TokenDescriptor
}

// DefaultDescriptor returns the token deployed when no overrides are given.
func DefaultDescriptor() domain.TokenDescriptor {
	return domain.TokenDescriptor{
		Name:        "Cows Gone Mad Token",
		Symbol:      "CGMT",
		URI:         "SET THIS LATER",
		TotalSupply: 1_000_000_000,
		Decimals:    9,
	}
}

// BindEnv binds every configuration key to its upper-case environment variable.
func BindEnv(v *viper.Viper) {
	for _, key := range []string{
		KeyProduction, KeyMainnetRPCURL, KeyPrivateKey,
		KeyRPCURL, KeyWSURL, KeyCommitment, KeyConfirmTimeout,
	} {
		_ = v.BindEnv(key, strings.ToUpper(key))
	}
}

// Load resolves Config from v. Only PRODUCTION=true selects mainnet.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Network:    NetworkDevnet,
		RPCURL:     solana.DevnetRPCEndpoint,
		Descriptor: DefaultDescriptor(),
	}

	if strings.TrimSpace(v.GetString(KeyProduction)) == "true" {
		cfg.Network = NetworkMainnet
		cfg.RPCURL = strings.TrimSpace(v.GetString(KeyMainnetRPCURL))
		if cfg.RPCURL == "" {
			return nil, configErr(ErrMissingMainnetURL, "")
		}
	} else if override := strings.TrimSpace(v.GetString(KeyRPCURL)); override != "" {
		cfg.RPCURL = override
	}

	cfg.WSURL = strings.TrimSpace(v.GetString(KeyWSURL))
	if cfg.WSURL == "" {
		cfg.WSURL = solana.WSEndpointFor(cfg.RPCURL)
	}

	commitment, err := solana.ParseCommitment(v.GetString(KeyCommitment))
	if err != nil {
		return nil, configErr(ErrInvalidCommitment, err.Error())
	}
	cfg.Commitment = commitment

	cfg.ConfirmTimeout = solana.DefaultConfirmTimeout
	if raw := strings.TrimSpace(v.GetString(KeyConfirmTimeout)); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, configErr(ErrInvalidTimeout, err.Error())
		}
		if d <= 0 {
			return nil, configErr(ErrInvalidTimeout, fmt.Sprintf("must be positive, got %s", d))
		}
		cfg.ConfirmTimeout = d
	}

	signer, err := ParseKeypair(v.GetString(KeyPrivateKey))
	if err != nil {
		return nil, err
	}
	cfg.Signer = signer

	return cfg, nil
}

// SignerAddress returns the base58 address of the signer.
func (c *Config) SignerAddress() string {
	return c.Signer.PublicKey.ToBase58()
}
