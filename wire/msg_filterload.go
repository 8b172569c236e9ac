// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"io"
	"io/ioutil"
)

// CmdFilterLoad is the bloom-filter-load command. Filter construction lives
// entirely outside this core; MsgFilterLoad only carries the already-built
// filter bytes across the wire, the same opaque-payload treatment MsgTx
// gives transactions.
const CmdFilterLoad = "filterload"

// MaxFilterLoadPayload bounds a filterload payload: BIP37's own limit is
// 36000 bytes of filter data plus a handful of fixed fields.
const MaxFilterLoadPayload = 36012

// MsgFilterLoad carries an opaque, already-serialized bloom filter.
type MsgFilterLoad struct {
	RawFilter []byte
}

// BtcDecode decodes r using the wire protocol encoding into the receiver.
func (msg *MsgFilterLoad) BtcDecode(r io.Reader, pver uint32) error {
	raw, err := ioutil.ReadAll(io.LimitReader(r, MaxFilterLoadPayload))
	if err != nil {
		return err
	}
	msg.RawFilter = raw
	return nil
}

// BtcEncode encodes the receiver to w using the wire protocol encoding.
func (msg *MsgFilterLoad) BtcEncode(w io.Writer, pver uint32) error {
	_, err := w.Write(msg.RawFilter)
	return err
}

// Command returns the protocol command string for the message.
func (msg *MsgFilterLoad) Command() string { return CmdFilterLoad }

// MaxPayloadLength returns the maximum length the payload can be for the
// receiver.
func (msg *MsgFilterLoad) MaxPayloadLength(pver uint32) uint64 {
	return MaxFilterLoadPayload
}

// NewMsgFilterLoad returns a new filterload message wrapping the given
// already-serialized filter bytes.
func NewMsgFilterLoad(raw []byte) *MsgFilterLoad { return &MsgFilterLoad{RawFilter: raw} }
