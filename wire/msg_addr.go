// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"io"

	"github.com/pkg/errors"
)

// MaxAddrPerMsg is the maximum number of addresses accepted in a single addr
// message; more than this is a non-fatal policy drop, not a protocol
// violation.
const MaxAddrPerMsg = 1000

// MsgAddr implements the Message interface and represents a list of known
// active peers.
type MsgAddr struct {
	AddrList []*NetAddress
}

// AddAddress adds a known active peer to the message.
func (msg *MsgAddr) AddAddress(na *NetAddress) error {
	if len(msg.AddrList)+1 > MaxAddrPerMsg {
		return errors.Errorf("too many addresses in message [max %d]", MaxAddrPerMsg)
	}
	msg.AddrList = append(msg.AddrList, na)
	return nil
}

// BtcDecode decodes r using the wire protocol encoding into the receiver.
// A count above MaxAddrPerMsg is a policy drop, not a decode error: no
// entries are parsed and AddrList comes back empty, leaving it to the
// caller to ignore the message rather than tear down the connection.
func (msg *MsgAddr) BtcDecode(r io.Reader, pver uint32) error {
	count, err := ReadVarInt(r)
	if err != nil {
		return err
	}
	if count > MaxAddrPerMsg {
		msg.AddrList = nil
		return nil
	}

	addrList := make([]*NetAddress, 0, count)
	for i := uint64(0); i < count; i++ {
		na := &NetAddress{}
		if err := readNetAddress(r, na, true); err != nil {
			return err
		}
		addrList = append(addrList, na)
	}
	msg.AddrList = addrList
	return nil
}

// BtcEncode encodes the receiver to w using the wire protocol encoding.
func (msg *MsgAddr) BtcEncode(w io.Writer, pver uint32) error {
	count := len(msg.AddrList)
	if count > MaxAddrPerMsg {
		return errors.Errorf("too many addresses for message [max %d]", MaxAddrPerMsg)
	}

	if err := WriteVarInt(w, uint64(count)); err != nil {
		return err
	}
	for _, na := range msg.AddrList {
		if err := writeNetAddress(w, na, true); err != nil {
			return err
		}
	}
	return nil
}

// Command returns the protocol command string for the message.
func (msg *MsgAddr) Command() string { return CmdAddr }

// MaxPayloadLength defers to the generic per-message ceiling rather than
// MaxAddrPerMsg: a peer announcing more addresses than the policy limit is
// a drop handled in BtcDecode, not a framing-layer protocol violation, so
// the envelope check in ReadMessage must not reject it before decoding.
func (msg *MsgAddr) MaxPayloadLength(pver uint32) uint64 {
	return MaxMessagePayload
}

// NewMsgAddr returns a new empty addr message.
func NewMsgAddr() *MsgAddr { return &MsgAddr{AddrList: make([]*NetAddress, 0)} }
