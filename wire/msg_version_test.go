package wire

import (
	"bytes"
	"net"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMsgVersionRoundTrip(t *testing.T) {
	me := NewNetAddressIPPort(net.ParseIP("127.0.0.1"), 8767, EnabledServices)
	you := NewNetAddressIPPort(net.ParseIP("203.0.113.5"), 8767, SFNodeNetwork)

	nonce, err := RandomUint64()
	require.NoError(t, err)

	msg := NewMsgVersion(me, you, nonce, 123456)

	var buf bytes.Buffer
	require.NoError(t, msg.BtcEncode(&buf, ProtocolVersion))
	require.GreaterOrEqual(t, buf.Len(), MinVersionPayload)

	var got MsgVersion
	require.NoError(t, got.BtcDecode(&buf, ProtocolVersion))

	require.Equal(t, msg.ProtocolVersion, got.ProtocolVersion)
	require.Equal(t, msg.Nonce, got.Nonce)
	require.Equal(t, msg.UserAgent, got.UserAgent)
	require.Equal(t, msg.LastBlock, got.LastBlock)
	require.True(t, got.AddrFrom.IP.Equal(me.IP))
	require.True(t, got.AddrRecv.IP.Equal(you.IP))
	require.Equal(t, you.Port, got.AddrRecv.Port)
	require.False(t, got.DisableRelayTx)
}

func TestMsgAddrDropsOverLimit(t *testing.T) {
	msg := NewMsgAddr()
	for i := 0; i < MaxAddrPerMsg; i++ {
		require.NoError(t, msg.AddAddress(NewNetAddressIPPort(net.ParseIP("127.0.0.1"), 8767, 0)))
	}
	require.Error(t, msg.AddAddress(NewNetAddressIPPort(net.ParseIP("127.0.0.1"), 8767, 0)))
}
