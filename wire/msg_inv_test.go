package wire

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jax-ravennet/rvnspv/chainhash"
	"github.com/stretchr/testify/require"
)

func TestMsgInvRoundTrip(t *testing.T) {
	msg := NewMsgInv()
	for i := 0; i < 10; i++ {
		h := chainhash.HashH([]byte{byte(i)})
		msg.AddInvVect(NewInvVect(InvTypeTx, &h))
	}

	var buf bytes.Buffer
	require.NoError(t, msg.BtcEncode(&buf, ProtocolVersion))

	var got MsgInv
	require.NoError(t, got.BtcDecode(&buf, ProtocolVersion))
	require.Len(t, got.InvList, 10)
	if diff := cmp.Diff(msg.InvList, got.InvList); diff != "" {
		t.Fatalf("inventory list mismatch after round-trip (-want +got):\n%s", diff)
	}
}

func TestMsgInvOversized(t *testing.T) {
	// Scenario 2: an inv with 50,001 items must be rejected as a
	// protocol violation, not silently truncated.
	var buf bytes.Buffer
	require.NoError(t, WriteVarInt(&buf, MaxGetdataHashes+1))

	var msg MsgInv
	err := msg.BtcDecode(&buf, ProtocolVersion)
	require.Error(t, err)
}

func TestMsgGetDataAndNotFoundShareLayout(t *testing.T) {
	h := chainhash.HashH([]byte("x"))
	iv := NewInvVect(InvTypeBlock, &h)

	gd := NewMsgGetData()
	gd.AddInvVect(iv)
	var buf bytes.Buffer
	require.NoError(t, gd.BtcEncode(&buf, ProtocolVersion))

	var nf MsgNotFound
	require.NoError(t, nf.BtcDecode(&buf, ProtocolVersion))
	require.Len(t, nf.InvList, 1)
	require.Equal(t, iv.Hash, nf.InvList[0].Hash)
}
