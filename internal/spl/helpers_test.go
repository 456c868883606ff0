package spl

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/types"
	"github.com/stretchr/testify/require"

	"solana-spl-deployer/internal/solana"
	"solana-spl-deployer/internal/solana/stub"
)

const metadataAccountSize = 679

func newTestClient(t *testing.T) (*Client, *stub.Chain) {
	t.Helper()
	chain := stub.NewChain()
	confirmer := &solana.PollingConfirmer{
		RPC:        chain,
		Commitment: solana.CommitmentConfirmed,
		Interval:   10 * time.Millisecond,
		Timeout:    time.Second,
	}
	return NewClient(chain, confirmer, types.NewAccount(), nil), chain
}

// mintData packs an SPL mint account.
func mintData(mintAuth, freezeAuth *common.PublicKey, supply uint64, decimals uint8) []byte {
	data := make([]byte, 82)
	if mintAuth != nil {
		binary.LittleEndian.PutUint32(data[0:4], 1)
		copy(data[4:36], mintAuth.Bytes())
	}
	binary.LittleEndian.PutUint64(data[36:44], supply)
	data[44] = decimals
	data[45] = 1
	if freezeAuth != nil {
		binary.LittleEndian.PutUint32(data[46:50], 1)
		copy(data[50:82], freezeAuth.Bytes())
	}
	return data
}

// tokenAccountData packs an SPL token account.
func tokenAccountData(mint, owner common.PublicKey, amount uint64, frozen bool) []byte {
	data := make([]byte, 165)
	copy(data[0:32], mint.Bytes())
	copy(data[32:64], owner.Bytes())
	binary.LittleEndian.PutUint64(data[64:72], amount)
	data[108] = 1
	if frozen {
		data[108] = 2
	}
	return data
}

// metadataData packs a Metaplex metadata account, zero padded like on chain.
func metadataData(updateAuth, mint common.PublicKey, name, symbol, uri string, fee uint16, mutable bool) []byte {
	data := []byte{4}
	data = append(data, updateAuth.Bytes()...)
	data = append(data, mint.Bytes()...)
	for _, s := range []string{name, symbol, uri} {
		data = binary.LittleEndian.AppendUint32(data, uint32(len(s)))
		data = append(data, s...)
	}
	data = binary.LittleEndian.AppendUint16(data, fee)
	data = append(data, 0) // no creators
	data = append(data, 0) // primary sale not happened
	if mutable {
		data = append(data, 1)
	} else {
		data = append(data, 0)
	}
	padded := make([]byte, metadataAccountSize)
	copy(padded, data)
	return padded
}

func padNUL(s string, n int) string {
	b := make([]byte, n)
	copy(b, s)
	return string(b)
}

// programAt returns the program id of the i-th instruction of tx.
func programAt(t *testing.T, tx types.Transaction, i int) common.PublicKey {
	t.Helper()
	require.Less(t, i, len(tx.Message.Instructions))
	return tx.Message.Accounts[tx.Message.Instructions[i].ProgramIDIndex]
}

func le64(v uint64) []byte {
	return binary.LittleEndian.AppendUint64(nil, v)
}

// ataOf derives an associated token account for tests.
func ataOf(t *testing.T, owner, mint common.PublicKey) common.PublicKey {
	t.Helper()
	ata, _, err := common.FindAssociatedTokenAddress(owner, mint)
	require.NoError(t, err)
	return ata
}
