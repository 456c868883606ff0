package domain

// TokenMetadata represents the Metaplex metadata attached to a mint.
// String fields have on-chain NUL padding removed.
type TokenMetadata struct {
	Mint                 string
	UpdateAuthority      string
	Name                 string
	Symbol               string
	URI                  string
	SellerFeeBasisPoints uint16
	IsMutable            bool
}

// Matches reports whether name, symbol and uri equal the descriptor's.
func (m TokenMetadata) Matches(d TokenDescriptor) bool {
	return m.Name == d.Name && m.Symbol == d.Symbol && m.URI == d.URI
}
