// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"io"
	"time"

	"github.com/pkg/errors"
)

// MaxHeadersPerMsg bounds the number of headers this codec will decode from
// a single headers message, matching the reference client's catch-up batch
// size.
const MaxHeadersPerMsg = 2000

// kawpowActivation is the process-wide KAWPOW activation time used to
// distinguish legacy (80-byte) from KAWPOW (120-byte) headers while
// decoding a headers message. It must be set once at startup, before any
// headers message is read, via SetKAWPOWActivation; it defaults to the zero
// time, under which every header decodes as KAWPOW.
var kawpowActivation time.Time

// SetKAWPOWActivation configures the network's KAWPOW activation time. The
// peer runtime calls this once, from the chainparams.Params selected for
// the network it is connecting to, before starting its read loop.
func SetKAWPOWActivation(t time.Time) {
	kawpowActivation = t
}

// MsgHeaders implements the Message interface and represents a batch of
// block headers, possibly a legacy-encoded prefix followed by a
// KAWPOW-encoded suffix within the same message.
type MsgHeaders struct {
	Headers []*BlockHeader
}

// AddBlockHeader adds a block header to the message.
func (msg *MsgHeaders) AddBlockHeader(hdr *BlockHeader) {
	msg.Headers = append(msg.Headers, hdr)
}

// BtcDecode decodes r using the wire protocol encoding into the receiver.
// Each header self-describes its own encoding via its timestamp, so a
// single message may freely mix legacy and KAWPOW headers; the boundary is
// discovered as a side effect of decoding each header in sequence rather
// than located up front.
func (msg *MsgHeaders) BtcDecode(r io.Reader, pver uint32) error {
	count, err := ReadVarInt(r)
	if err != nil {
		return err
	}
	if count > MaxHeadersPerMsg {
		return errors.Errorf("too many headers in message [count %d, max %d]",
			count, MaxHeadersPerMsg)
	}

	headers := make([]*BlockHeader, 0, count)
	for i := uint64(0); i < count; i++ {
		hdr, err := readBlockHeader(r, kawpowActivation)
		if err != nil {
			return err
		}
		headers = append(headers, hdr)
	}
	msg.Headers = headers
	return nil
}

// BtcEncode encodes the receiver to w using the wire protocol encoding.
func (msg *MsgHeaders) BtcEncode(w io.Writer, pver uint32) error {
	count := len(msg.Headers)
	if count > MaxHeadersPerMsg {
		return errors.Errorf("too many headers for message [count %d, max %d]",
			count, MaxHeadersPerMsg)
	}

	if err := WriteVarInt(w, uint64(count)); err != nil {
		return err
	}
	for _, hdr := range msg.Headers {
		if err := writeBlockHeader(w, hdr); err != nil {
			return err
		}
	}
	return nil
}

// Command returns the protocol command string for the message.
func (msg *MsgHeaders) Command() string { return CmdHeaders }

// MaxPayloadLength returns the maximum length the payload can be for the
// receiver, assuming every header takes the larger KAWPOW encoding.
func (msg *MsgHeaders) MaxPayloadLength(pver uint32) uint64 {
	return MaxVarIntPayload + uint64(MaxHeadersPerMsg)*uint64(KAWPOWHeaderLen+1)
}

// NewMsgHeaders returns a new empty headers message.
func NewMsgHeaders() *MsgHeaders { return &MsgHeaders{Headers: make([]*BlockHeader, 0, MaxHeadersPerMsg)} }
