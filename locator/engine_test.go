package locator

import (
	"testing"
	"time"

	"github.com/jax-ravennet/rvnspv/chainhash"
	"github.com/jax-ravennet/rvnspv/chainparams"
	"github.com/jax-ravennet/rvnspv/wire"
	"github.com/stretchr/testify/require"
)

type fakeHasher struct{}

func (fakeHasher) X16R(core []byte) chainhash.Hash   { return chainhash.HashH(append([]byte("x16r:"), core...)) }
func (fakeHasher) X16Rv2(core []byte) chainhash.Hash { return chainhash.HashH(append([]byte("x16rv2:"), core...)) }
func (fakeHasher) KawpowHash(coreHash, mixHash chainhash.Hash, nonce uint64) (chainhash.Hash, error) {
	buf := append(coreHash[:], mixHash[:]...)
	return chainhash.HashH(buf), nil
}

func legacyHdr(ts time.Time) *wire.BlockHeader {
	return &wire.BlockHeader{Encoding: wire.LegacyEncoding, Timestamp: ts, Bits: 0x1d00ffff}
}

func kawpowHdr(ts time.Time, nonce uint64) *wire.BlockHeader {
	return &wire.BlockHeader{Encoding: wire.KAWPOWEncoding, Timestamp: ts, Bits: 0x1b00ffff, NonceU64: nonce}
}

func TestProcessHeadersMixedEncoding(t *testing.T) {
	// Scenario 5: a message with a legacy prefix and a KAWPOW suffix
	// must yield exactly one getblocks/getheaders whose locators equal
	// the KAWPOW hash of the tail header and the X16R/X16Rv2 hash of the
	// head header.
	activation := time.Unix(1_588_788_000, 0)

	var relayed []*wire.MsgMerkleBlock
	e := New(Config{
		Params: chainparams.Params{X16Rv2ActivationTime: activation.Add(-1000 * time.Hour)},
		Hasher: fakeHasher{},
		Validate: func(block *wire.MsgMerkleBlock, now time.Time) bool { return true },
		RelayBlock: func(block *wire.MsgMerkleBlock) {
			relayed = append(relayed, block)
		},
	})
	e.SetEarliestKeyTime(time.Now())

	msg := wire.NewMsgHeaders()
	for i := 0; i < 500; i++ {
		msg.AddBlockHeader(legacyHdr(activation.Add(-time.Duration(500-i) * time.Minute)))
	}
	for i := 0; i < 1500; i++ {
		msg.AddBlockHeader(kawpowHdr(activation.Add(time.Duration(i)*time.Minute), uint64(i)))
	}

	result, err := e.ProcessHeaders(msg)
	require.NoError(t, err)
	require.Len(t, relayed, 2000)

	head := msg.Headers[0]
	tail := msg.Headers[len(msg.Headers)-1]

	wantHead := fakeHasher{}.X16Rv2(head.SerializeCore())
	coreHash := chainhash.HashH(tail.SerializeCore())
	wantTail, _ := fakeHasher{}.KawpowHash(coreHash, tail.MixHash, tail.NonceU64)

	require.Len(t, result.Locators, 2)
	require.Equal(t, wantTail, *result.Locators[0])
	require.Equal(t, wantHead, *result.Locators[1])
	require.True(t, result.UseGetBlocks, "2000-header batch must continue catch-up")
}

func TestProcessHeadersInvalidIsFatal(t *testing.T) {
	e := New(Config{
		Hasher:   fakeHasher{},
		Validate: func(block *wire.MsgMerkleBlock, now time.Time) bool { return false },
	})

	msg := wire.NewMsgHeaders()
	msg.AddBlockHeader(legacyHdr(time.Now()))

	_, err := e.ProcessHeaders(msg)
	require.Error(t, err)
}

func TestCatchUpEndsNearTip(t *testing.T) {
	e := New(Config{
		Hasher:   fakeHasher{},
		Validate: func(block *wire.MsgMerkleBlock, now time.Time) bool { return true },
	})
	e.SetEarliestKeyTime(time.Now())

	msg := wire.NewMsgHeaders()
	msg.AddBlockHeader(legacyHdr(time.Now()))

	result, err := e.ProcessHeaders(msg)
	require.NoError(t, err)
	require.False(t, result.UseGetBlocks)
}
