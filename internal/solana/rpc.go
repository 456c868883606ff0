package solana

import "context"

// RPCClient defines the Solana JSON-RPC surface used to submit and inspect
// token transactions.
type RPCClient interface {
	// GetLatestBlockhash returns a recent blockhash for transaction construction.
	GetLatestBlockhash(ctx context.Context) (*Blockhash, error)

	// SendTransaction submits a signed, serialized transaction and returns its signature.
	SendTransaction(ctx context.Context, rawTx []byte) (string, error)

	// GetAccountInfo retrieves account info by public key.
	// Returns nil if the account does not exist.
	GetAccountInfo(ctx context.Context, pubkey string) (*AccountInfo, error)

	// GetMinimumBalanceForRentExemption returns lamports required for a rent-exempt account of dataLen bytes.
	GetMinimumBalanceForRentExemption(ctx context.Context, dataLen uint64) (uint64, error)

	// GetSignatureStatuses returns statuses in request order; unknown signatures yield nil entries.
	GetSignatureStatuses(ctx context.Context, signatures []string) ([]*SignatureStatus, error)

	// GetBalance returns the lamport balance of an account.
	GetBalance(ctx context.Context, pubkey string) (uint64, error)
}

// Blockhash is a recent blockhash and the last block height at which it is valid.
type Blockhash struct {
	Blockhash            string
	LastValidBlockHeight uint64
}

// AccountInfo represents Solana account information.
type AccountInfo struct {
	Lamports   uint64
	Owner      string
	Data       []byte // decoded account data
	Executable bool
	RentEpoch  uint64
}

// SignatureStatus is the processing status of a submitted transaction.
type SignatureStatus struct {
	Slot               int64
	Confirmations      *uint64 // nil once rooted
	ConfirmationStatus Commitment
	Err                interface{} // non-nil if the transaction failed
}
