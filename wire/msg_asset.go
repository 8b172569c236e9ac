// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"io"

	"github.com/btcsuite/btcutil/base58"
	"github.com/pkg/errors"
)

// MaxAssetNameLen bounds an asset name's on-wire length.
const MaxAssetNameLen = 32

// MaxAssetDataPayload is the hard ceiling on an assetdata payload. A larger
// payload fails ReadMessage's per-command length check like any other
// oversized message; it is not dropped separately.
const MaxAssetDataPayload = 16898

// notFoundAssetName is the sentinel name an assetdata reply carries in
// place of real asset fields when the queried asset doesn't exist.
const notFoundAssetName = "_NF"

// ipfsMultihashLen is the length of a base58-encoded IPFS (CIDv0, SHA-256)
// multihash as carried in an asset's IPFS-hash field.
const ipfsMultihashLen = 47

// MsgGetAssetData implements the Message interface and requests the
// Ravencoin extension asset metadata for a single named asset. The
// reference protocol's count field is always 1: this core never batches
// asset lookups.
type MsgGetAssetData struct {
	Name string
}

// BtcDecode decodes r using the wire protocol encoding into the receiver.
func (msg *MsgGetAssetData) BtcDecode(r io.Reader, pver uint32) error {
	count, err := ReadVarInt(r)
	if err != nil {
		return err
	}
	if count != 1 {
		return errors.Errorf("getassetdata must request exactly one asset, got %d", count)
	}

	name, err := ReadVarString(r, MaxAssetNameLen)
	if err != nil {
		return err
	}
	msg.Name = name
	return nil
}

// BtcEncode encodes the receiver to w using the wire protocol encoding.
func (msg *MsgGetAssetData) BtcEncode(w io.Writer, pver uint32) error {
	if err := WriteVarInt(w, 1); err != nil {
		return err
	}
	return WriteVarString(w, msg.Name)
}

// Command returns the protocol command string for the message.
func (msg *MsgGetAssetData) Command() string { return CmdGetAssetData }

// MaxPayloadLength returns the maximum length the payload can be for the
// receiver.
func (msg *MsgGetAssetData) MaxPayloadLength(pver uint32) uint64 {
	return MaxVarIntPayload + MaxVarIntPayload + MaxAssetNameLen
}

// NewMsgGetAssetData returns a new getassetdata message for the named
// asset.
func NewMsgGetAssetData(name string) *MsgGetAssetData { return &MsgGetAssetData{Name: name} }

// MsgAssetData implements the Message interface and carries the metadata of
// a single Ravencoin asset, or the not-found sentinel in NotFound/Name.
type MsgAssetData struct {
	Name        string
	NotFound    bool
	Amount      uint64
	Unit        uint8
	Reissuable  bool
	HasIPFS     bool
	IPFSHashB58 string
	// BlockHeight trails the payload on the wire but is not consumed by
	// this core; it is kept only so BtcEncode can round-trip an asset
	// that was decoded rather than constructed fresh.
	BlockHeight uint32
}

// BtcDecode decodes r using the wire protocol encoding into the receiver.
func (msg *MsgAssetData) BtcDecode(r io.Reader, pver uint32) error {
	name, err := ReadVarString(r, MaxAssetNameLen)
	if err != nil {
		return err
	}
	msg.Name = name

	if name == notFoundAssetName {
		msg.NotFound = true
		return nil
	}

	if err := readElement(r, &msg.Amount); err != nil {
		return err
	}

	var unit, reissuable, hasIPFS uint8
	if err := readElements(r, &unit, &reissuable, &hasIPFS); err != nil {
		return err
	}
	msg.Unit = unit
	msg.Reissuable = reissuable != 0
	msg.HasIPFS = hasIPFS != 0

	if msg.HasIPFS {
		ipfsBytes, err := ReadVarBytes(r, MaxAssetDataPayload, "asset IPFS hash")
		if err != nil {
			return err
		}
		msg.IPFSHashB58 = base58.Encode(ipfsBytes)
	}

	var height uint32
	if err := readElement(r, &height); err != nil && err != io.EOF {
		return err
	}
	msg.BlockHeight = height

	return nil
}

// BtcEncode encodes the receiver to w using the wire protocol encoding.
func (msg *MsgAssetData) BtcEncode(w io.Writer, pver uint32) error {
	if msg.NotFound {
		return WriteVarString(w, notFoundAssetName)
	}

	if err := WriteVarString(w, msg.Name); err != nil {
		return err
	}
	if err := writeElement(w, msg.Amount); err != nil {
		return err
	}

	reissuable, hasIPFS := uint8(0), uint8(0)
	if msg.Reissuable {
		reissuable = 1
	}
	if msg.HasIPFS {
		hasIPFS = 1
	}
	if err := writeElements(w, msg.Unit, reissuable, hasIPFS); err != nil {
		return err
	}

	if msg.HasIPFS {
		if err := WriteVarBytes(w, base58.Decode(msg.IPFSHashB58)); err != nil {
			return err
		}
	}

	return writeElement(w, msg.BlockHeight)
}

// Command returns the protocol command string for the message.
func (msg *MsgAssetData) Command() string { return CmdAssetData }

// MaxPayloadLength returns the maximum length the payload can be for the
// receiver.
func (msg *MsgAssetData) MaxPayloadLength(pver uint32) uint64 {
	return MaxAssetDataPayload
}

// NewMsgAssetData returns a new assetdata message describing name.
func NewMsgAssetData(name string) *MsgAssetData { return &MsgAssetData{Name: name} }

// NewMsgAssetDataNotFound returns the not-found sentinel assetdata message.
func NewMsgAssetDataNotFound() *MsgAssetData { return &MsgAssetData{NotFound: true} }

// MsgAssetNotFound implements the Message interface and represents the
// Ravencoin extension's reply for a batch of assets none of which exist.
// The command name preserves the reference implementation's
// "asstnotfound" misspelling, observed on the wire.
type MsgAssetNotFound struct {
	Names []string
}

// BtcDecode decodes r using the wire protocol encoding into the receiver.
func (msg *MsgAssetNotFound) BtcDecode(r io.Reader, pver uint32) error {
	count, err := ReadVarInt(r)
	if err != nil {
		return err
	}
	if count > MaxGetdataHashes {
		return errors.Errorf("too many entries in asstnotfound [count %d, max %d]",
			count, MaxGetdataHashes)
	}

	names := make([]string, 0, count)
	for i := uint64(0); i < count; i++ {
		name, err := ReadVarString(r, MaxAssetNameLen)
		if err != nil {
			return err
		}
		names = append(names, name)
	}
	msg.Names = names
	return nil
}

// BtcEncode encodes the receiver to w using the wire protocol encoding.
func (msg *MsgAssetNotFound) BtcEncode(w io.Writer, pver uint32) error {
	if err := WriteVarInt(w, uint64(len(msg.Names))); err != nil {
		return err
	}
	for _, name := range msg.Names {
		if err := WriteVarString(w, name); err != nil {
			return err
		}
	}
	return nil
}

// Command returns the protocol command string for the message.
func (msg *MsgAssetNotFound) Command() string { return CmdAssetNotFound }

// MaxPayloadLength returns the maximum length the payload can be for the
// receiver.
func (msg *MsgAssetNotFound) MaxPayloadLength(pver uint32) uint64 {
	return MaxVarIntPayload + uint64(MaxGetdataHashes)*(MaxVarIntPayload+MaxAssetNameLen)
}

// NewMsgAssetNotFound returns a new asstnotfound message for the given
// asset names.
func NewMsgAssetNotFound(names []string) *MsgAssetNotFound {
	return &MsgAssetNotFound{Names: names}
}
