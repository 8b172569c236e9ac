// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"io"

	"github.com/jax-ravennet/rvnspv/chainhash"
)

// RejectCode represents the reject code, one byte, defined in BIP61.
type RejectCode uint8

// Reject codes as defined in BIP61. Only the ones this core cares about are
// named; any other value round-trips fine as an opaque byte.
const (
	RejectMalformed       RejectCode = 0x01
	RejectInvalid         RejectCode = 0x10
	RejectObsolete        RejectCode = 0x11
	RejectDuplicate       RejectCode = 0x12
	RejectNonstandard     RejectCode = 0x40
	RejectDust            RejectCode = 0x41
	RejectInsufficientFee RejectCode = 0x42
	RejectCheckpoint      RejectCode = 0x43
)

const maxRejectMessageLen = 128

// MsgReject implements the Message interface and represents the BIP61
// rejection notice: which command was rejected, why, and (for a rejected
// tx) its hash.
type MsgReject struct {
	Cmd    string
	Code   RejectCode
	Reason string
	Hash   chainhash.Hash
}

// BtcDecode decodes r using the wire protocol encoding into the receiver.
func (msg *MsgReject) BtcDecode(r io.Reader, pver uint32) error {
	cmd, err := ReadVarString(r, CommandSize*4)
	if err != nil {
		return err
	}
	msg.Cmd = cmd

	var code uint8
	if err := readElement(r, &code); err != nil {
		return err
	}
	msg.Code = RejectCode(code)

	reason, err := ReadVarString(r, maxRejectMessageLen)
	if err != nil {
		return err
	}
	msg.Reason = reason

	if msg.Cmd == CmdTx {
		if err := readElement(r, msg.Hash[:]); err != nil {
			return err
		}
	}

	return nil
}

// BtcEncode encodes the receiver to w using the wire protocol encoding.
func (msg *MsgReject) BtcEncode(w io.Writer, pver uint32) error {
	if err := WriteVarString(w, msg.Cmd); err != nil {
		return err
	}
	if err := writeElement(w, uint8(msg.Code)); err != nil {
		return err
	}
	if err := WriteVarString(w, msg.Reason); err != nil {
		return err
	}
	if msg.Cmd == CmdTx {
		return writeElement(w, msg.Hash[:])
	}
	return nil
}

// Command returns the protocol command string for the message.
func (msg *MsgReject) Command() string { return CmdReject }

// MaxPayloadLength returns the maximum length the payload can be for the
// receiver.
func (msg *MsgReject) MaxPayloadLength(pver uint32) uint64 {
	return uint64(CommandSize*4) + 1 + maxRejectMessageLen + chainhash.HashSize
}

// NewMsgReject returns a new reject message.
func NewMsgReject(cmd string, code RejectCode, reason string) *MsgReject {
	return &MsgReject{Cmd: cmd, Code: code, Reason: reason}
}

// MsgFeeFilter implements the Message interface and represents the BIP133
// minimum relay fee filter announcement.
type MsgFeeFilter struct {
	MinFee int64
}

// BtcDecode decodes r using the wire protocol encoding into the receiver.
func (msg *MsgFeeFilter) BtcDecode(r io.Reader, pver uint32) error {
	return readElement(r, &msg.MinFee)
}

// BtcEncode encodes the receiver to w using the wire protocol encoding.
func (msg *MsgFeeFilter) BtcEncode(w io.Writer, pver uint32) error {
	return writeElement(w, msg.MinFee)
}

// Command returns the protocol command string for the message.
func (msg *MsgFeeFilter) Command() string { return CmdFeeFilter }

// MaxPayloadLength returns the maximum length the payload can be: 8 bytes.
func (msg *MsgFeeFilter) MaxPayloadLength(pver uint32) uint64 { return 8 }

// NewMsgFeeFilter returns a new feefilter message for the given minimum fee
// rate, expressed in satoshis per kilobyte.
func NewMsgFeeFilter(minFee int64) *MsgFeeFilter { return &MsgFeeFilter{MinFee: minFee} }
