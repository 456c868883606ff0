package domain

// MintState is the decoded on-chain state of an SPL mint.
type MintState struct {
	Address         string
	MintAuthority   *string // nil once revoked
	FreezeAuthority *string // nil once revoked
	Supply          uint64  // base units
	Decimals        uint8
	IsInitialized   bool
}

// TokenAccountState is the decoded on-chain state of an SPL token account.
type TokenAccountState struct {
	Address string
	Mint    string
	Owner   string
	Amount  uint64 // base units
	Frozen  bool
}
