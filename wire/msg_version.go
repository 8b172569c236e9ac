// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"io"

	"github.com/pkg/errors"
)

// MaxUserAgentLen is the maximum allowed length for the user agent field in
// a version message.
const MaxUserAgentLen = 256

// MinVersionPayload is the minimum size a valid version payload can be: the
// 80 bytes of fixed fields preceding the user agent, a one-byte empty user
// agent, and the 4-byte start height.
const MinVersionPayload = 85

// MsgVersion implements the Message interface and represents the Ravencoin
// version message. It is the first message exchanged over a newly opened
// connection, and negotiates protocol version, services, and height.
type MsgVersion struct {
	ProtocolVersion uint32
	Services        ServiceFlag
	Timestamp       int64
	AddrRecv        NetAddress
	AddrFrom        NetAddress
	Nonce           uint64
	UserAgent       string
	LastBlock       int32
	// DisableRelayTx, when true, signals the remote peer should not
	// relay unconfirmed transactions to this node (BIP37 relay flag).
	DisableRelayTx bool
}

// HasService returns whether the peer advertised the specified service.
func (msg *MsgVersion) HasService(service ServiceFlag) bool {
	return msg.Services&service == service
}

// AddService adds service as a supported service advertised by this
// message.
func (msg *MsgVersion) AddService(service ServiceFlag) {
	msg.Services |= service
}

// BtcDecode decodes r using the wire protocol encoding into the receiver.
func (msg *MsgVersion) BtcDecode(r io.Reader, pver uint32) error {
	var pv uint32
	var svc uint64
	var ts int64
	if err := readElements(r, &pv, &svc, &ts); err != nil {
		return err
	}
	msg.ProtocolVersion = pv
	msg.Services = ServiceFlag(svc)
	msg.Timestamp = ts

	if err := readNetAddress(r, &msg.AddrRecv, false); err != nil {
		return err
	}
	if err := readNetAddress(r, &msg.AddrFrom, false); err != nil {
		return err
	}
	if err := readElement(r, &msg.Nonce); err != nil {
		return err
	}

	userAgent, err := ReadVarString(r, MaxUserAgentLen)
	if err != nil {
		return err
	}
	if len(userAgent) > MaxUserAgentLen {
		return errors.Errorf("user agent too long [len %d, max %d]",
			len(userAgent), MaxUserAgentLen)
	}
	msg.UserAgent = userAgent

	if err := readElement(r, &msg.LastBlock); err != nil {
		return err
	}

	// The relay flag is optional in some historical encodings; treat EOF
	// as "true" (the default assumed by senders that omit it).
	var relay bool
	if err := readElement(r, &relay); err != nil {
		if err == io.EOF {
			msg.DisableRelayTx = false
			return nil
		}
		return err
	}
	msg.DisableRelayTx = !relay

	return nil
}

// BtcEncode encodes the receiver to w using the wire protocol encoding.
func (msg *MsgVersion) BtcEncode(w io.Writer, pver uint32) error {
	if err := writeElements(w, msg.ProtocolVersion, uint64(msg.Services), msg.Timestamp); err != nil {
		return err
	}
	if err := writeNetAddress(w, &msg.AddrRecv, false); err != nil {
		return err
	}
	if err := writeNetAddress(w, &msg.AddrFrom, false); err != nil {
		return err
	}
	if err := writeElement(w, msg.Nonce); err != nil {
		return err
	}
	if err := WriteVarString(w, msg.UserAgent); err != nil {
		return err
	}
	if err := writeElement(w, msg.LastBlock); err != nil {
		return err
	}
	return writeElement(w, !msg.DisableRelayTx)
}

// Command returns the protocol command string for the message.
func (msg *MsgVersion) Command() string { return CmdVersion }

// MaxPayloadLength returns the maximum length the payload can be for the
// receiver. This is not a constant due to the malleable user agent field.
func (msg *MsgVersion) MaxPayloadLength(pver uint32) uint64 {
	return uint64(MinVersionPayload) + MaxVarIntPayload + MaxUserAgentLen
}

// NewMsgVersion returns a new version message populated for an outbound
// handshake. Nonce should be generated with RandomUint64 for self-connection
// detection.
func NewMsgVersion(me, you *NetAddress, nonce uint64, lastBlock int32) *MsgVersion {
	return &MsgVersion{
		ProtocolVersion: ProtocolVersion,
		Services:        EnabledServices,
		Timestamp:       timeNowUnix(),
		AddrRecv:        *you,
		AddrFrom:        *me,
		Nonce:           nonce,
		UserAgent:       DefaultUserAgent,
		LastBlock:       lastBlock,
		DisableRelayTx:  false,
	}
}
