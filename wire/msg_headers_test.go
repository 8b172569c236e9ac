package wire

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func legacyHeader(ts time.Time) *BlockHeader {
	return &BlockHeader{
		Encoding:      LegacyEncoding,
		Version:       1,
		Timestamp:     ts,
		Bits:          0x1d00ffff,
		NonceOrHeight: 12345,
	}
}

func kawpowHeader(ts time.Time, height uint32) *BlockHeader {
	return &BlockHeader{
		Encoding:      KAWPOWEncoding,
		Version:       0x20000000,
		Timestamp:     ts,
		Bits:          0x1b00ffff,
		NonceOrHeight: height,
		NonceU64:      0xfeedfacecafebeef,
	}
}

func TestMixedHeadersRoundTrip(t *testing.T) {
	// Scenario 5: a headers message whose first headers are legacy and
	// whose later headers are KAWPOW, detected purely from each header's
	// own timestamp against the network's activation time.
	activation := time.Unix(1_588_788_000, 0)
	SetKAWPOWActivation(activation)
	defer SetKAWPOWActivation(time.Time{})

	msg := NewMsgHeaders()
	for i := 0; i < 3; i++ {
		msg.AddBlockHeader(legacyHeader(activation.Add(-time.Duration(3-i) * time.Hour)))
	}
	for i := 0; i < 3; i++ {
		msg.AddBlockHeader(kawpowHeader(activation.Add(time.Duration(i)*time.Hour), uint32(100+i)))
	}

	var buf bytes.Buffer
	require.NoError(t, msg.BtcEncode(&buf, ProtocolVersion))

	var got MsgHeaders
	require.NoError(t, got.BtcDecode(&buf, ProtocolVersion))
	require.Len(t, got.Headers, 6)

	for i := 0; i < 3; i++ {
		require.Equal(t, LegacyEncoding, got.Headers[i].Encoding)
	}
	for i := 3; i < 6; i++ {
		require.Equal(t, KAWPOWEncoding, got.Headers[i].Encoding)
		require.Equal(t, uint32(100+i-3), got.Headers[i].NonceOrHeight)
	}
}

func TestHeadersMessageTooLarge(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteVarInt(&buf, MaxHeadersPerMsg+1))

	var msg MsgHeaders
	require.Error(t, msg.BtcDecode(&buf, ProtocolVersion))
}

func TestBlockHeaderSerializeSize(t *testing.T) {
	legacy := legacyHeader(time.Unix(0, 0))
	require.Equal(t, LegacyHeaderLen+1, legacy.SerializeSize())

	kawpow := kawpowHeader(time.Unix(0, 0), 1)
	require.Equal(t, KAWPOWHeaderLen+1, kawpow.SerializeSize())
}
