// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import "io"

// MsgInv implements the Message interface and represents an unsolicited
// announcement of objects (transactions or blocks) the sender has
// available. A count above MaxGetdataHashes is a protocol violation, not a
// policy drop, because it would otherwise let a peer force an unbounded
// allocation.
type MsgInv struct {
	InvList []*InvVect
}

// AddInvVect adds an inventory vector to the message.
func (msg *MsgInv) AddInvVect(iv *InvVect) {
	msg.InvList = append(msg.InvList, iv)
}

// BtcDecode decodes r using the wire protocol encoding into the receiver.
func (msg *MsgInv) BtcDecode(r io.Reader, pver uint32) error {
	list, err := readInvList(r, maxInvPerMsg)
	if err != nil {
		return err
	}
	msg.InvList = list
	return nil
}

// BtcEncode encodes the receiver to w using the wire protocol encoding.
func (msg *MsgInv) BtcEncode(w io.Writer, pver uint32) error {
	return writeInvList(w, msg.InvList)
}

// Command returns the protocol command string for the message.
func (msg *MsgInv) Command() string { return CmdInv }

// MaxPayloadLength returns the maximum length the payload can be for the
// receiver.
func (msg *MsgInv) MaxPayloadLength(pver uint32) uint64 {
	return MaxVarIntPayload + uint64(maxInvPerMsg)*(4+32)
}

// NewMsgInv returns a new empty inv message.
func NewMsgInv() *MsgInv { return &MsgInv{InvList: make([]*InvVect, 0)} }

// MsgGetData implements the Message interface and represents a request for
// the full payloads (tx/merkleblock) of previously announced inventory.
type MsgGetData struct {
	InvList []*InvVect
}

// AddInvVect adds an inventory vector to the message.
func (msg *MsgGetData) AddInvVect(iv *InvVect) {
	msg.InvList = append(msg.InvList, iv)
}

// BtcDecode decodes r using the wire protocol encoding into the receiver.
func (msg *MsgGetData) BtcDecode(r io.Reader, pver uint32) error {
	list, err := readInvList(r, maxInvPerMsg)
	if err != nil {
		return err
	}
	msg.InvList = list
	return nil
}

// BtcEncode encodes the receiver to w using the wire protocol encoding.
func (msg *MsgGetData) BtcEncode(w io.Writer, pver uint32) error {
	return writeInvList(w, msg.InvList)
}

// Command returns the protocol command string for the message.
func (msg *MsgGetData) Command() string { return CmdGetData }

// MaxPayloadLength returns the maximum length the payload can be for the
// receiver.
func (msg *MsgGetData) MaxPayloadLength(pver uint32) uint64 {
	return MaxVarIntPayload + uint64(maxInvPerMsg)*(4+32)
}

// NewMsgGetData returns a new empty getdata message.
func NewMsgGetData() *MsgGetData { return &MsgGetData{InvList: make([]*InvVect, 0)} }

// MsgNotFound implements the Message interface and represents a reply to a
// getdata entry the sender could not satisfy.
type MsgNotFound struct {
	InvList []*InvVect
}

// AddInvVect adds an inventory vector to the message.
func (msg *MsgNotFound) AddInvVect(iv *InvVect) {
	msg.InvList = append(msg.InvList, iv)
}

// BtcDecode decodes r using the wire protocol encoding into the receiver.
func (msg *MsgNotFound) BtcDecode(r io.Reader, pver uint32) error {
	list, err := readInvList(r, maxInvPerMsg)
	if err != nil {
		return err
	}
	msg.InvList = list
	return nil
}

// BtcEncode encodes the receiver to w using the wire protocol encoding.
func (msg *MsgNotFound) BtcEncode(w io.Writer, pver uint32) error {
	return writeInvList(w, msg.InvList)
}

// Command returns the protocol command string for the message.
func (msg *MsgNotFound) Command() string { return CmdNotFound }

// MaxPayloadLength returns the maximum length the payload can be for the
// receiver.
func (msg *MsgNotFound) MaxPayloadLength(pver uint32) uint64 {
	return MaxVarIntPayload + uint64(maxInvPerMsg)*(4+32)
}

// NewMsgNotFound returns a new empty notfound message.
func NewMsgNotFound() *MsgNotFound { return &MsgNotFound{InvList: make([]*InvVect, 0)} }
