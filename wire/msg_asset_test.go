package wire

import (
	"bytes"
	"testing"

	"github.com/btcsuite/btcutil/base58"
	"github.com/stretchr/testify/require"
)

func TestMsgAssetDataNotFound(t *testing.T) {
	// Scenario 4: an assetdata reply whose name is the "_NF" sentinel
	// must be decoded as NotFound, not as an asset named "_NF".
	var buf bytes.Buffer
	require.NoError(t, NewMsgAssetDataNotFound().BtcEncode(&buf, ProtocolVersion))

	var got MsgAssetData
	require.NoError(t, got.BtcDecode(&buf, ProtocolVersion))
	require.True(t, got.NotFound)
}

func TestMsgAssetDataWithIPFS(t *testing.T) {
	ipfsRaw := bytes.Repeat([]byte{0xab}, 34) // typical CIDv0 multihash length
	msg := &MsgAssetData{
		Name:        "RAVENCOIN",
		Amount:      100000000,
		Unit:        8,
		Reissuable:  true,
		HasIPFS:     true,
		IPFSHashB58: base58.Encode(ipfsRaw),
	}

	var buf bytes.Buffer
	require.NoError(t, msg.BtcEncode(&buf, ProtocolVersion))

	var got MsgAssetData
	require.NoError(t, got.BtcDecode(&buf, ProtocolVersion))
	require.Equal(t, msg.Name, got.Name)
	require.Equal(t, msg.Amount, got.Amount)
	require.True(t, got.Reissuable)
	require.True(t, got.HasIPFS)
	require.Equal(t, msg.IPFSHashB58, got.IPFSHashB58)
}

func TestMsgAssetNotFoundBatch(t *testing.T) {
	names := []string{"FOO", "BAR", "BAZ"}
	msg := NewMsgAssetNotFound(names)

	var buf bytes.Buffer
	require.NoError(t, msg.BtcEncode(&buf, ProtocolVersion))
	require.Equal(t, CmdAssetNotFound, msg.Command())

	var got MsgAssetNotFound
	require.NoError(t, got.BtcDecode(&buf, ProtocolVersion))
	require.Equal(t, names, got.Names)
}

func TestMsgGetAssetDataRejectsBatch(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteVarInt(&buf, 2))
	require.NoError(t, WriteVarString(&buf, "A"))
	require.NoError(t, WriteVarString(&buf, "B"))

	var msg MsgGetAssetData
	require.Error(t, msg.BtcDecode(&buf, ProtocolVersion))
}
