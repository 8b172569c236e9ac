package wire

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/jax-ravennet/rvnspv/chainparams"
	"github.com/stretchr/testify/require"
)

func TestWriteReadMessageRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		msg  Message
	}{
		{"verack", NewMsgVerAck()},
		{"getaddr", NewMsgGetAddr()},
		{"ping", NewMsgPing(0xdeadbeefcafef00d)},
		{"pong", NewMsgPong(0x1122334455667788)},
		{"feefilter", NewMsgFeeFilter(1000)},
		{"getassetdata", NewMsgGetAssetData("RAVENCOIN")},
		{"assetdata-notfound", NewMsgAssetDataNotFound()},
		{"asstnotfound", NewMsgAssetNotFound([]string{"A", "BB", "CCC"})},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WriteMessage(&buf, tc.msg, ProtocolVersion, chainparams.MainNet))

			_, gotMsg, _, err := ReadMessage(&buf, ProtocolVersion, chainparams.MainNet)
			require.NoError(t, err)
			require.Equal(t, tc.msg.Command(), gotMsg.Command())
		})
	}
}

func TestReadMessageFramingResync(t *testing.T) {
	// Scenario 6: prepend 17 random non-magic bytes to a valid ping frame;
	// expect it to decode as if the junk weren't there.
	var valid bytes.Buffer
	require.NoError(t, WriteMessage(&valid, NewMsgPing(42), ProtocolVersion, chainparams.MainNet))

	junk := make([]byte, 17)
	rand.New(rand.NewSource(1)).Read(junk)
	// Ensure none of the junk bytes accidentally spell out the magic.
	for i := 0; i+4 <= len(junk); i++ {
		if littleEndian.Uint32(junk[i:i+4]) == uint32(chainparams.MainNet) {
			junk[i] = junk[i] + 1
		}
	}

	stream := append(junk, valid.Bytes()...)

	n, msg, _, err := ReadMessage(bytes.NewReader(stream), ProtocolVersion, chainparams.MainNet)
	require.NoError(t, err)
	require.Equal(t, CmdPing, msg.Command())
	require.Equal(t, len(stream), n)

	ping, ok := msg.(*MsgPing)
	require.True(t, ok)
	require.Equal(t, uint64(42), ping.Nonce)
}

func TestReadMessageBadChecksum(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMessage(&buf, NewMsgPing(1), ProtocolVersion, chainparams.MainNet))

	corrupted := buf.Bytes()
	corrupted[len(corrupted)-1] ^= 0xff

	_, _, _, err := ReadMessage(bytes.NewReader(corrupted), ProtocolVersion, chainparams.MainNet)
	require.Error(t, err)
}

func TestEmptyChecksum(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMessage(&buf, NewMsgVerAck(), ProtocolVersion, chainparams.MainNet))

	hdrBytes := buf.Bytes()[:MessageHeaderSize]
	var checksum [4]byte
	copy(checksum[:], hdrBytes[20:24])
	require.Equal(t, EmptyChecksum(), checksum)
}

func TestReadMessageOversizedAddrIsPolicyDrop(t *testing.T) {
	// A peer announcing more than MaxAddrPerMsg addresses is a policy
	// drop, not a framing violation: ReadMessage must hand back an empty
	// MsgAddr rather than disconnecting the peer for an oversized payload.
	var payload bytes.Buffer
	require.NoError(t, WriteVarInt(&payload, MaxAddrPerMsg+1))

	hdr := messageHeader{
		magic:    chainparams.MainNet,
		command:  CmdAddr,
		length:   uint32(payload.Len()),
		checksum: checksum4(payload.Bytes()),
	}

	var buf bytes.Buffer
	require.NoError(t, writeMessageHeader(&buf, &hdr))
	buf.Write(payload.Bytes())

	_, msg, _, err := ReadMessage(&buf, ProtocolVersion, chainparams.MainNet)
	require.NoError(t, err)

	addr, ok := msg.(*MsgAddr)
	require.True(t, ok)
	require.Empty(t, addr.AddrList)
}

func TestVarIntEncodeDecode(t *testing.T) {
	values := []uint64{0, 1, 0xfc, 0xfd, 0xffff, 0x10000, 0xffffffff, 0x100000000, ^uint64(0)}
	for _, v := range values {
		var buf bytes.Buffer
		require.NoError(t, WriteVarInt(&buf, v))
		require.Equal(t, VarIntSerializeSize(v), buf.Len())

		got, err := ReadVarInt(&buf)
		require.NoError(t, err)
		require.Equal(t, v, got)
	}
}
