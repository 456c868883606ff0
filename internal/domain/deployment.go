package domain

// DeploymentResult is the outcome of a successful token deployment.
// It is never returned partially populated.
type DeploymentResult struct {
	Mint          string // mint address (base58)
	MintSecretKey []byte // 64-byte ed25519 secret key of the mint account
	Signature     string // confirmed transaction signature
	TokenAccount  string // payer's associated token account holding the supply
	MintedAmount  uint64 // initial supply in base units
}
