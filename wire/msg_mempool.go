// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import "io"

// CmdMempool requests an inv of the remote's mempool contents.
const CmdMempool = "mempool"

// MsgMempool implements the Message interface; it carries no payload.
type MsgMempool struct{}

// BtcDecode decodes r using the wire protocol encoding into the receiver.
func (msg *MsgMempool) BtcDecode(r io.Reader, pver uint32) error { return nil }

// BtcEncode encodes the receiver to w using the wire protocol encoding.
func (msg *MsgMempool) BtcEncode(w io.Writer, pver uint32) error { return nil }

// Command returns the protocol command string for the message.
func (msg *MsgMempool) Command() string { return CmdMempool }

// MaxPayloadLength returns the maximum length the payload can be for the
// receiver.
func (msg *MsgMempool) MaxPayloadLength(pver uint32) uint64 { return 0 }

// NewMsgMempool returns a new mempool message.
func NewMsgMempool() *MsgMempool { return &MsgMempool{} }
