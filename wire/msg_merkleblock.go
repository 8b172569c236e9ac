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

// maxFlagsPerMerkleBlock bounds the flag-byte array of a merkleblock
// message; it can never exceed the hash count it accompanies in any
// legitimate partial merkle tree, so a generous fixed ceiling is enough to
// stop a malicious oversized allocation.
const maxFlagsPerMerkleBlock = MaxGetdataHashes

// MsgMerkleBlock implements the Message interface and represents a block
// header together with a partial merkle tree proving the inclusion of a
// subset of the block's transactions. Verifying the proof
// (BRMerkleBlockIsValid in spec terms) is an external collaborator's job;
// this codec only frames the fields.
type MsgMerkleBlock struct {
	Header       *BlockHeader
	Transactions uint32
	Hashes       []*chainhash.Hash
	Flags        []byte
}

// BtcDecode decodes r using the wire protocol encoding into the receiver.
func (msg *MsgMerkleBlock) BtcDecode(r io.Reader, pver uint32) error {
	hdr, err := readBlockHeader(r, kawpowActivation)
	if err != nil {
		return err
	}
	msg.Header = hdr

	if err := readElement(r, &msg.Transactions); err != nil {
		return err
	}

	hashCount, err := ReadVarInt(r)
	if err != nil {
		return err
	}
	if hashCount > MaxGetdataHashes {
		return errors.Errorf("too many hashes in merkleblock [count %d, max %d]",
			hashCount, MaxGetdataHashes)
	}
	hashes := make([]*chainhash.Hash, 0, hashCount)
	for i := uint64(0); i < hashCount; i++ {
		var h chainhash.Hash
		if err := readElement(r, h[:]); err != nil {
			return err
		}
		hashes = append(hashes, &h)
	}
	msg.Hashes = hashes

	flags, err := ReadVarBytes(r, maxFlagsPerMerkleBlock, "merkleblock flags")
	if err != nil {
		return err
	}
	msg.Flags = flags

	return nil
}

// BtcEncode encodes the receiver to w using the wire protocol encoding.
func (msg *MsgMerkleBlock) BtcEncode(w io.Writer, pver uint32) error {
	if err := writeBlockHeader(w, msg.Header); err != nil {
		return err
	}
	if err := writeElement(w, msg.Transactions); err != nil {
		return err
	}

	if err := WriteVarInt(w, uint64(len(msg.Hashes))); err != nil {
		return err
	}
	for _, h := range msg.Hashes {
		if err := writeElement(w, h[:]); err != nil {
			return err
		}
	}

	return WriteVarBytes(w, msg.Flags)
}

// Command returns the protocol command string for the message.
func (msg *MsgMerkleBlock) Command() string { return CmdMerkleBlock }

// MaxPayloadLength returns the maximum length the payload can be for the
// receiver.
func (msg *MsgMerkleBlock) MaxPayloadLength(pver uint32) uint64 {
	return uint64(KAWPOWHeaderLen+1) + 4 + MaxVarIntPayload +
		uint64(MaxGetdataHashes)*32 + MaxVarIntPayload + uint64(maxFlagsPerMerkleBlock)
}

// NewMsgMerkleBlock returns a new merkleblock message for the given header.
func NewMsgMerkleBlock(hdr *BlockHeader) *MsgMerkleBlock {
	return &MsgMerkleBlock{Header: hdr}
}
