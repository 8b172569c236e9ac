// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"io"
	"io/ioutil"
)

// MaxTxPayload is the maximum size a serialized transaction can be before
// this codec refuses to buffer it.
const MaxTxPayload = MaxMessagePayload

// MsgTx implements the Message interface and carries a transaction's raw,
// undecoded payload. Transaction parsing, signature checking, and any
// notion of a Transaction's fields are owned by an external collaborator;
// this codec's only job is to frame the bytes correctly and hand them off.
type MsgTx struct {
	RawTx []byte
}

// BtcDecode decodes r using the wire protocol encoding into the receiver.
// It does not parse the transaction; it only captures the payload bytes for
// the caller's Transaction parser.
func (msg *MsgTx) BtcDecode(r io.Reader, pver uint32) error {
	raw, err := ioutil.ReadAll(io.LimitReader(r, MaxTxPayload))
	if err != nil {
		return err
	}
	msg.RawTx = raw
	return nil
}

// BtcEncode encodes the receiver to w using the wire protocol encoding.
func (msg *MsgTx) BtcEncode(w io.Writer, pver uint32) error {
	_, err := w.Write(msg.RawTx)
	return err
}

// Command returns the protocol command string for the message.
func (msg *MsgTx) Command() string { return CmdTx }

// MaxPayloadLength returns the maximum length the payload can be for the
// receiver.
func (msg *MsgTx) MaxPayloadLength(pver uint32) uint64 { return MaxTxPayload }

// NewMsgTx returns a new tx message wrapping the given raw, already
// serialized transaction bytes.
func NewMsgTx(raw []byte) *MsgTx { return &MsgTx{RawTx: raw} }
