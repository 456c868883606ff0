package stub

import (
	"context"
	"fmt"
	"sync"

	"github.com/blocto/solana-go-sdk/types"

	"solana-spl-deployer/internal/solana"
)

// Chain implements solana.RPCClient in memory for testing. Submitted
// transactions are decoded and recorded; their signatures are reported as
// finalized unless SendErr or TxErr is set.
type Chain struct {
	mu sync.Mutex

	Blockhash string
	Rent      uint64
	Accounts  map[string]*solana.AccountInfo
	Balances  map[string]uint64
	Statuses  map[string]*solana.SignatureStatus

	// Sent holds every decoded transaction in submission order.
	Sent []types.Transaction

	// SendErr, if set, is returned by SendTransaction.
	SendErr error
	// TxErr, if set, is reported as the on-chain error of submitted transactions.
	TxErr interface{}

	calls map[string]int
}

// NewChain creates a new stub chain.
func NewChain() *Chain {
	return &Chain{
		Blockhash: "EkSnNWid2cvwEVnVx9aBqawnmiCNiDgp3gUdkDPTKN1N",
		Rent:      1_461_600,
		Accounts:  make(map[string]*solana.AccountInfo),
		Balances:  make(map[string]uint64),
		Statuses:  make(map[string]*solana.SignatureStatus),
		calls:     make(map[string]int),
	}
}

func (c *Chain) record(method string) {
	c.calls[method]++
}

// Calls returns how many times method was invoked.
func (c *Chain) Calls(method string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[method]
}

// TotalCalls returns the number of RPC invocations of any method.
func (c *Chain) TotalCalls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0
	for _, n := range c.calls {
		total += n
	}
	return total
}

// GetLatestBlockhash returns the configured blockhash.
func (c *Chain) GetLatestBlockhash(_ context.Context) (*solana.Blockhash, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record("getLatestBlockhash")
	return &solana.Blockhash{Blockhash: c.Blockhash, LastValidBlockHeight: 1000}, nil
}

// SendTransaction decodes and records the transaction.
func (c *Chain) SendTransaction(_ context.Context, rawTx []byte) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record("sendTransaction")

	if c.SendErr != nil {
		return "", c.SendErr
	}

	tx, err := types.TransactionDeserialize(rawTx)
	if err != nil {
		return "", fmt.Errorf("stub: decode transaction: %w", err)
	}
	sig, err := solana.TransactionSignature(tx)
	if err != nil {
		return "", err
	}

	c.Sent = append(c.Sent, tx)
	c.Statuses[sig] = &solana.SignatureStatus{
		Slot:               int64(100 + len(c.Sent)),
		ConfirmationStatus: solana.CommitmentFinalized,
		Err:                c.TxErr,
	}
	return sig, nil
}

// GetAccountInfo returns the stored account or nil.
func (c *Chain) GetAccountInfo(_ context.Context, pubkey string) (*solana.AccountInfo, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record("getAccountInfo")

	acc, ok := c.Accounts[pubkey]
	if !ok {
		return nil, nil
	}
	accCopy := *acc
	return &accCopy, nil
}

// GetMinimumBalanceForRentExemption returns the configured rent.
func (c *Chain) GetMinimumBalanceForRentExemption(_ context.Context, _ uint64) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record("getMinimumBalanceForRentExemption")
	return c.Rent, nil
}

// GetSignatureStatuses returns stored statuses; unknown signatures yield nil.
func (c *Chain) GetSignatureStatuses(_ context.Context, signatures []string) ([]*solana.SignatureStatus, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record("getSignatureStatuses")

	out := make([]*solana.SignatureStatus, len(signatures))
	for i, sig := range signatures {
		if st, ok := c.Statuses[sig]; ok {
			stCopy := *st
			out[i] = &stCopy
		}
	}
	return out, nil
}

// GetBalance returns the stored lamport balance.
func (c *Chain) GetBalance(_ context.Context, pubkey string) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record("getBalance")
	return c.Balances[pubkey], nil
}

// SetAccount stores account data owned by owner.
func (c *Chain) SetAccount(pubkey, owner string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Accounts[pubkey] = &solana.AccountInfo{Lamports: c.Rent, Owner: owner, Data: data}
}

// LastSent returns the most recently submitted transaction.
func (c *Chain) LastSent() (types.Transaction, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.Sent) == 0 {
		return types.Transaction{}, false
	}
	return c.Sent[len(c.Sent)-1], true
}

var _ solana.RPCClient = (*Chain)(nil)
