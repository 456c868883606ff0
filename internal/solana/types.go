package solana

import (
	"errors"
	"fmt"
	"strings"
)

// Commitment is a Solana commitment level.
type Commitment string

// Commitment levels in increasing order of finality.
const (
	CommitmentProcessed Commitment = "processed"
	CommitmentConfirmed Commitment = "confirmed"
	CommitmentFinalized Commitment = "finalized"
)

// ErrInvalidCommitment is returned for unknown commitment names.
var ErrInvalidCommitment = errors.New("invalid commitment")

// ParseCommitment parses a commitment name. Empty input yields CommitmentConfirmed.
func ParseCommitment(s string) (Commitment, error) {
	switch c := Commitment(strings.ToLower(strings.TrimSpace(s))); c {
	case "":
		return CommitmentConfirmed, nil
	case CommitmentProcessed, CommitmentConfirmed, CommitmentFinalized:
		return c, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidCommitment, s)
	}
}

func (c Commitment) rank() int {
	switch c {
	case CommitmentProcessed:
		return 1
	case CommitmentConfirmed:
		return 2
	case CommitmentFinalized:
		return 3
	default:
		return 0
	}
}

// Satisfies reports whether status c is at least as final as target.
func (c Commitment) Satisfies(target Commitment) bool {
	return c.rank() > 0 && c.rank() >= target.rank()
}

// Network endpoints.
const (
	DevnetRPCEndpoint  = "https://api.devnet.solana.com"
	MainnetRPCEndpoint = "https://api.mainnet-beta.solana.com"
)

// WSEndpointFor derives the PubSub endpoint from an HTTP RPC endpoint.
func WSEndpointFor(rpcEndpoint string) string {
	switch {
	case strings.HasPrefix(rpcEndpoint, "https://"):
		return "wss://" + strings.TrimPrefix(rpcEndpoint, "https://")
	case strings.HasPrefix(rpcEndpoint, "http://"):
		return "ws://" + strings.TrimPrefix(rpcEndpoint, "http://")
	default:
		return rpcEndpoint
	}
}
