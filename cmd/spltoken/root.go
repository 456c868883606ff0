package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"solana-spl-deployer/internal/config"
	"solana-spl-deployer/internal/observability"
	"solana-spl-deployer/internal/solana"
	"solana-spl-deployer/internal/spl"
)

// Version is set at build time.
var Version = "dev"

const defaultEnvFile = ".env"

// app holds the state shared by all commands of one invocation.
type app struct {
	v      *viper.Viper
	stdout io.Writer
	logger *log.Logger

	envFile     string
	metricsFile string

	cfg *config.Config
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		v:      viper.New(),
		stdout: stdout,
		logger: log.New(stderr, "[spltoken] ", log.LstdFlags),
	}
}

// execute runs the command line and writes the metrics textfile, if
// requested, whether or not the command succeeded.
func (a *app) execute(ctx context.Context, args []string) error {
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(a.stdout)

	err := root.ExecuteContext(ctx)
	if err != nil {
		a.logger.Printf("error: %v", err)
	}

	if a.metricsFile != "" {
		if werr := observability.WriteTextfile(a.metricsFile); werr != nil {
			a.logger.Printf("write metrics to %s: %v", a.metricsFile, werr)
		}
	}
	return err
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "spltoken",
		Short: "Deploy and manage SPL tokens with Metaplex metadata",
		Long: `spltoken deploys a fungible SPL token with Metaplex metadata, mints the
initial supply to the signer, and runs token lifecycle operations.

Configuration (in order of priority):
  1. Command-line flags (--commitment, --timeout)
  2. Environment variables (PRODUCTION, MAINNET_RPC_URL, PRIVATE_KEY,
     RPC_URL, WS_URL, COMMITMENT, CONFIRM_TIMEOUT)
  3. .env file in the working directory (or --env-file)`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.loadConfig,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.envFile, "env-file", "", "dotenv file to read (default .env if present)")
	flags.String("commitment", "", "commitment level: processed, confirmed, finalized (or COMMITMENT)")
	flags.String("timeout", "", "confirmation timeout, e.g. 90s (or CONFIRM_TIMEOUT)")
	flags.StringVar(&a.metricsFile, "metrics-file", "", "write Prometheus metrics to this file on exit")

	_ = a.v.BindPFlag(config.KeyCommitment, flags.Lookup("commitment"))
	_ = a.v.BindPFlag(config.KeyConfirmTimeout, flags.Lookup("timeout"))

	root.AddCommand(
		a.deployCmd(),
		a.transferCmd(),
		a.mintCmd(),
		a.burnCmd(),
		a.freezeCmd(),
		a.thawCmd(),
		a.revokeCmd(),
		a.inspectCmd(),
		versionCmd(),
	)
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		// Needs no configuration.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "spltoken version %s\n", Version)
		},
	}
}

// loadConfig reads the dotenv file and environment into a Config.
func (a *app) loadConfig(cmd *cobra.Command, _ []string) error {
	config.BindEnv(a.v)

	envFile := a.envFile
	if envFile == "" {
		if _, err := os.Stat(defaultEnvFile); err == nil {
			envFile = defaultEnvFile
		}
	}
	if envFile != "" {
		a.v.SetConfigFile(envFile)
		a.v.SetConfigType("env")
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("read %s: %w", envFile, err)
		}
	}

	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	a.logger.Printf("network=%s rpc=%s signer=%s commitment=%s",
		cfg.Network, cfg.RPCURL, cfg.SignerAddress(), cfg.Commitment)
	return nil
}

// client wires the RPC client, confirmer and signer. The returned function
// releases the WebSocket connection.
func (a *app) client(ctx context.Context) (*spl.Client, func(), error) {
	if a.cfg == nil {
		return nil, nil, errors.New("configuration not loaded")
	}

	rpc := solana.NewHTTPClient(a.cfg.RPCURL, solana.WithCommitment(a.cfg.Commitment))

	closeFn := func() {}
	var confirmer solana.Confirmer
	ws, err := solana.NewWSClient(ctx, a.cfg.WSURL, nil)
	if err != nil {
		a.logger.Printf("websocket %s unavailable, confirming by polling: %v", a.cfg.WSURL, err)
		confirmer = &solana.PollingConfirmer{
			RPC:        rpc,
			Commitment: a.cfg.Commitment,
			Interval:   solana.DefaultPollInterval,
			Timeout:    a.cfg.ConfirmTimeout,
		}
	} else {
		confirmer = &solana.WSConfirmer{
			WS:         ws,
			RPC:        rpc,
			Commitment: a.cfg.Commitment,
			Timeout:    a.cfg.ConfirmTimeout,
			Logger:     a.logger,
		}
		closeFn = func() { ws.Close() }
	}

	return spl.NewClient(rpc, confirmer, a.cfg.Signer, a.logger), closeFn, nil
}

// withClient runs fn with a wired client and releases it afterwards.
func (a *app) withClient(cmd *cobra.Command, fn func(ctx context.Context, c *spl.Client) error) error {
	ctx := cmd.Context()

	dialCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	c, closeFn, err := a.client(dialCtx)
	cancel()
	if err != nil {
		return err
	}
	defer closeFn()

	return fn(ctx, c)
}
