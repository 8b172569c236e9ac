// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import "io"

// MsgVerAck implements the Message interface and represents the empty
// acknowledgement sent in response to a version message.
type MsgVerAck struct{}

// BtcDecode decodes r using the wire protocol encoding into the receiver.
// verack carries no payload.
func (msg *MsgVerAck) BtcDecode(r io.Reader, pver uint32) error { return nil }

// BtcEncode encodes the receiver to w using the wire protocol encoding.
func (msg *MsgVerAck) BtcEncode(w io.Writer, pver uint32) error { return nil }

// Command returns the protocol command string for the message.
func (msg *MsgVerAck) Command() string { return CmdVerAck }

// MaxPayloadLength returns the maximum length the payload can be: zero.
func (msg *MsgVerAck) MaxPayloadLength(pver uint32) uint64 { return 0 }

// NewMsgVerAck returns a new verack message.
func NewMsgVerAck() *MsgVerAck { return &MsgVerAck{} }

// MsgGetAddr implements the Message interface and represents a request for
// known active peers.
type MsgGetAddr struct{}

// BtcDecode decodes r using the wire protocol encoding into the receiver.
func (msg *MsgGetAddr) BtcDecode(r io.Reader, pver uint32) error { return nil }

// BtcEncode encodes the receiver to w using the wire protocol encoding.
func (msg *MsgGetAddr) BtcEncode(w io.Writer, pver uint32) error { return nil }

// Command returns the protocol command string for the message.
func (msg *MsgGetAddr) Command() string { return CmdGetAddr }

// MaxPayloadLength returns the maximum length the payload can be: zero.
func (msg *MsgGetAddr) MaxPayloadLength(pver uint32) uint64 { return 0 }

// NewMsgGetAddr returns a new getaddr message.
func NewMsgGetAddr() *MsgGetAddr { return &MsgGetAddr{} }
