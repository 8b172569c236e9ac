// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"io"

	"github.com/jax-ravennet/rvnspv/chainhash"
	"github.com/pkg/errors"
)

// MaxBlockLocatorsPerMsg bounds the locator hashes in a getheaders/getblocks
// message. The peer's own catch-up requests carry two (tail, head), and
// decoding accepts the protocol's historical ceiling.
const MaxBlockLocatorsPerMsg = 500

func readLocator(r io.Reader) ([]*chainhash.Hash, error) {
	count, err := ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	if count > MaxBlockLocatorsPerMsg {
		return nil, errors.Errorf("too many block locator hashes [count %d, max %d]",
			count, MaxBlockLocatorsPerMsg)
	}

	locator := make([]*chainhash.Hash, 0, count)
	for i := uint64(0); i < count; i++ {
		var h chainhash.Hash
		if err := readElement(r, h[:]); err != nil {
			return nil, err
		}
		locator = append(locator, &h)
	}
	return locator, nil
}

func writeLocator(w io.Writer, locator []*chainhash.Hash) error {
	count := len(locator)
	if count > MaxBlockLocatorsPerMsg {
		return errors.Errorf("too many block locator hashes [count %d, max %d]",
			count, MaxBlockLocatorsPerMsg)
	}

	if err := WriteVarInt(w, uint64(count)); err != nil {
		return err
	}
	for _, hash := range locator {
		if err := writeElement(w, hash[:]); err != nil {
			return err
		}
	}
	return nil
}

// MsgGetHeaders implements the Message interface and represents a request
// for headers starting after the best locator block known to the sender,
// stopping at HashStop (or the remote tip if HashStop is zero).
type MsgGetHeaders struct {
	ProtocolVersion    uint32
	BlockLocatorHashes []*chainhash.Hash
	HashStop           chainhash.Hash
}

// AddBlockLocatorHash adds a new block locator hash to the message.
func (msg *MsgGetHeaders) AddBlockLocatorHash(hash *chainhash.Hash) error {
	if len(msg.BlockLocatorHashes)+1 > MaxBlockLocatorsPerMsg {
		return errors.Errorf("too many block locator hashes for message [max %d]",
			MaxBlockLocatorsPerMsg)
	}
	msg.BlockLocatorHashes = append(msg.BlockLocatorHashes, hash)
	return nil
}

// BtcDecode decodes r using the wire protocol encoding into the receiver.
func (msg *MsgGetHeaders) BtcDecode(r io.Reader, pver uint32) error {
	if err := readElement(r, &msg.ProtocolVersion); err != nil {
		return err
	}

	locator, err := readLocator(r)
	if err != nil {
		return err
	}
	msg.BlockLocatorHashes = locator

	return readElement(r, msg.HashStop[:])
}

// BtcEncode encodes the receiver to w using the wire protocol encoding.
func (msg *MsgGetHeaders) BtcEncode(w io.Writer, pver uint32) error {
	if err := writeElement(w, msg.ProtocolVersion); err != nil {
		return err
	}
	if err := writeLocator(w, msg.BlockLocatorHashes); err != nil {
		return err
	}
	return writeElement(w, msg.HashStop[:])
}

// Command returns the protocol command string for the message.
func (msg *MsgGetHeaders) Command() string { return CmdGetHeaders }

// MaxPayloadLength returns the maximum length the payload can be for the
// receiver.
func (msg *MsgGetHeaders) MaxPayloadLength(pver uint32) uint64 {
	return 4 + MaxVarIntPayload + uint64(MaxBlockLocatorsPerMsg)*32 + 32
}

// NewMsgGetHeaders returns a new empty getheaders message.
func NewMsgGetHeaders() *MsgGetHeaders {
	return &MsgGetHeaders{
		ProtocolVersion:    ProtocolVersion,
		BlockLocatorHashes: make([]*chainhash.Hash, 0, MaxBlockLocatorsPerMsg),
	}
}

// MsgGetBlocks implements the Message interface and represents a request
// for an inv of block hashes starting after the best locator block known to
// the sender.
type MsgGetBlocks struct {
	ProtocolVersion    uint32
	BlockLocatorHashes []*chainhash.Hash
	HashStop           chainhash.Hash
}

// AddBlockLocatorHash adds a new block locator hash to the message.
func (msg *MsgGetBlocks) AddBlockLocatorHash(hash *chainhash.Hash) error {
	if len(msg.BlockLocatorHashes)+1 > MaxBlockLocatorsPerMsg {
		return errors.Errorf("too many block locator hashes for message [max %d]",
			MaxBlockLocatorsPerMsg)
	}
	msg.BlockLocatorHashes = append(msg.BlockLocatorHashes, hash)
	return nil
}

// BtcDecode decodes r using the wire protocol encoding into the receiver.
func (msg *MsgGetBlocks) BtcDecode(r io.Reader, pver uint32) error {
	if err := readElement(r, &msg.ProtocolVersion); err != nil {
		return err
	}

	locator, err := readLocator(r)
	if err != nil {
		return err
	}
	msg.BlockLocatorHashes = locator

	return readElement(r, msg.HashStop[:])
}

// BtcEncode encodes the receiver to w using the wire protocol encoding.
func (msg *MsgGetBlocks) BtcEncode(w io.Writer, pver uint32) error {
	if err := writeElement(w, msg.ProtocolVersion); err != nil {
		return err
	}
	if err := writeLocator(w, msg.BlockLocatorHashes); err != nil {
		return err
	}
	return writeElement(w, msg.HashStop[:])
}

// Command returns the protocol command string for the message.
func (msg *MsgGetBlocks) Command() string { return CmdGetBlocks }

// MaxPayloadLength returns the maximum length the payload can be for the
// receiver.
func (msg *MsgGetBlocks) MaxPayloadLength(pver uint32) uint64 {
	return 4 + MaxVarIntPayload + uint64(MaxBlockLocatorsPerMsg)*32 + 32
}

// NewMsgGetBlocks returns a new empty getblocks message.
func NewMsgGetBlocks() *MsgGetBlocks {
	return &MsgGetBlocks{
		ProtocolVersion:    ProtocolVersion,
		BlockLocatorHashes: make([]*chainhash.Hash, 0, MaxBlockLocatorsPerMsg),
	}
}
