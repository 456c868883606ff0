package domain

import "fmt"

// Metaplex token-metadata field limits (bytes).
const (
	MaxNameLength   = 32
	MaxSymbolLength = 10
	MaxURILength    = 200

	// MaxDecimals is the highest precision accepted for a fungible mint.
	MaxDecimals = 9
)

// TokenDescriptor describes a fungible token to deploy.
type TokenDescriptor struct {
	Name        string // display name
	Symbol      string // ticker
	URI         string // off-chain metadata pointer, required
	TotalSupply uint64 // initial supply in whole tokens
	Decimals    uint8  // decimal precision, 0..9
}

// Validate checks the descriptor. The URI is mandatory: an empty URI fails
// with ErrInvalidMetadata.
func (d TokenDescriptor) Validate() error {
	if d.URI == "" {
		return fmt.Errorf("%w: uri cannot be empty", ErrInvalidMetadata)
	}
	if len(d.URI) > MaxURILength {
		return fmt.Errorf("%w: uri is %d bytes, max %d", ErrInvalidMetadata, len(d.URI), MaxURILength)
	}
	if d.Name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidMetadata)
	}
	if len(d.Name) > MaxNameLength {
		return fmt.Errorf("%w: name is %d bytes, max %d", ErrInvalidMetadata, len(d.Name), MaxNameLength)
	}
	if d.Symbol == "" {
		return fmt.Errorf("%w: symbol cannot be empty", ErrInvalidMetadata)
	}
	if len(d.Symbol) > MaxSymbolLength {
		return fmt.Errorf("%w: symbol is %d bytes, max %d", ErrInvalidMetadata, len(d.Symbol), MaxSymbolLength)
	}
	if d.TotalSupply == 0 {
		return fmt.Errorf("%w: total supply must be positive", ErrInvalidSupply)
	}
	if d.Decimals > MaxDecimals {
		return fmt.Errorf("%w: %d > %d", ErrInvalidDecimals, d.Decimals, MaxDecimals)
	}
	if _, err := ToBaseUnits(d.TotalSupply, d.Decimals); err != nil {
		return err
	}
	return nil
}

// BaseSupply returns the initial supply in base units.
func (d TokenDescriptor) BaseSupply() (uint64, error) {
	return ToBaseUnits(d.TotalSupply, d.Decimals)
}
