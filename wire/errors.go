// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import "github.com/pkg/errors"

// Sentinel errors for the framing/protocol taxonomy. Framing errors and
// protocol violations are fatal to a connection; policy drops are swallowed
// by the caller instead of being returned as errors at all.
var (
	// ErrMalformedHeader is returned when the 24-byte envelope header
	// fails basic validation: a non-NUL byte 15, or a command that isn't
	// known to this codec.
	ErrMalformedHeader = errors.New("malformed message header")

	// ErrOversizedPayload is returned when a message's declared payload
	// length exceeds MaxMessagePayload.
	ErrOversizedPayload = errors.New("payload exceeds max message length")

	// ErrBadChecksum is returned when the computed checksum of a payload
	// doesn't match the checksum carried in the envelope.
	ErrBadChecksum = errors.New("payload checksum mismatch")

	// ErrUnexpectedPong is returned when a pong arrives with no
	// outstanding ping to match it against.
	ErrUnexpectedPong = errors.New("unexpected pong, no outstanding ping")

	// ErrWrongNetwork names a magic that doesn't match the configured
	// network. ReadMessage does not return it: it skips input a byte at a
	// time until the configured network's magic appears.
	ErrWrongNetwork = errors.New("message from wrong network")

	// ErrInvalidMsgLen names a fixed-size field whose length doesn't match
	// its type. No decoder in this package returns it.
	ErrInvalidMsgLen = errors.New("invalid message length for type")

	// ErrTooManyInvItems is returned when an inv/getdata/notfound
	// message declares more entries than this codec will decode.
	ErrTooManyInvItems = errors.New("too many inventory items in message")
)

func errOversizedInvList(count, max uint64) error {
	return errors.Wrapf(ErrTooManyInvItems, "count %d, max %d", count, max)
}
