// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"io"

	"github.com/jax-ravennet/rvnspv/chainparams"
	"github.com/minio/sha256-simd"
	"github.com/pkg/errors"
)

// Command name constants. Every value here is exactly what's written into
// the zero-padded 12-byte command field of the envelope.
const (
	CmdVersion      = "version"
	CmdVerAck       = "verack"
	CmdAddr         = "addr"
	CmdInv          = "inv"
	CmdTx           = "tx"
	CmdHeaders      = "headers"
	CmdGetAddr      = "getaddr"
	CmdGetData      = "getdata"
	CmdNotFound     = "notfound"
	CmdPing         = "ping"
	CmdPong         = "pong"
	CmdMerkleBlock  = "merkleblock"
	CmdReject       = "reject"
	CmdFeeFilter    = "feefilter"
	CmdGetHeaders   = "getheaders"
	CmdGetBlocks    = "getblocks"
	CmdGetAssetData = "getassetdata"
	CmdAssetData    = "assetdata"
	// CmdAssetNotFound preserves the Ravencoin reference implementation's
	// misspelling of "assetnotfound" on the wire.
	CmdAssetNotFound = "asstnotfound"
)

// Message is implemented by every concrete wire message type. BtcDecode and
// BtcEncode are pure functions over a byte buffer; neither performs I/O
// beyond the reader/writer passed to them.
type Message interface {
	BtcDecode(r io.Reader, pver uint32) error
	BtcEncode(w io.Writer, pver uint32) error
	Command() string
	MaxPayloadLength(pver uint32) uint64
}

// makeEmptyMessage returns a fresh, zero-valued Message for the given
// command name, or an error if the command isn't known to this codec. This
// is the type-tagged dispatch table: decoding the envelope resolves the
// concrete type exactly once, at the framing boundary.
func makeEmptyMessage(command string) (Message, error) {
	switch command {
	case CmdVersion:
		return &MsgVersion{}, nil
	case CmdVerAck:
		return &MsgVerAck{}, nil
	case CmdAddr:
		return &MsgAddr{}, nil
	case CmdInv:
		return &MsgInv{}, nil
	case CmdGetData:
		return &MsgGetData{}, nil
	case CmdNotFound:
		return &MsgNotFound{}, nil
	case CmdTx:
		return &MsgTx{}, nil
	case CmdHeaders:
		return &MsgHeaders{}, nil
	case CmdGetAddr:
		return &MsgGetAddr{}, nil
	case CmdPing:
		return &MsgPing{}, nil
	case CmdPong:
		return &MsgPong{}, nil
	case CmdMerkleBlock:
		return &MsgMerkleBlock{}, nil
	case CmdReject:
		return &MsgReject{}, nil
	case CmdFeeFilter:
		return &MsgFeeFilter{}, nil
	case CmdGetHeaders:
		return &MsgGetHeaders{}, nil
	case CmdGetBlocks:
		return &MsgGetBlocks{}, nil
	case CmdGetAssetData:
		return &MsgGetAssetData{}, nil
	case CmdAssetData:
		return &MsgAssetData{}, nil
	case CmdAssetNotFound:
		return &MsgAssetNotFound{}, nil
	case CmdFilterLoad:
		return &MsgFilterLoad{}, nil
	case CmdMempool:
		return &MsgMempool{}, nil
	default:
		return nil, errors.Wrapf(ErrMalformedHeader, "unhandled command [%s]", command)
	}
}

// messageHeader is the 24-byte envelope preceding every payload.
type messageHeader struct {
	magic    chainparams.Net
	command  string
	length   uint32
	checksum [4]byte
}

func doubleSHA256(b []byte) [32]byte {
	first := sha256.Sum256(b)
	return sha256.Sum256(first[:])
}

// checksum4 returns the first four bytes of SHA256(SHA256(payload)).
func checksum4(payload []byte) [4]byte {
	sum := doubleSHA256(payload)
	var out [4]byte
	copy(out[:], sum[:4])
	return out
}

// writeMessageHeader serializes mh to w.
func writeMessageHeader(w io.Writer, mh *messageHeader) error {
	var buf [MessageHeaderSize]byte
	littleEndian.PutUint32(buf[0:4], uint32(mh.magic))

	copy(buf[4:16], []byte(mh.command))
	// Remaining command bytes are already zero from allocation.

	littleEndian.PutUint32(buf[16:20], mh.length)
	copy(buf[20:24], mh.checksum[:])

	_, err := w.Write(buf[:])
	return err
}

// WriteMessage writes a complete bitcoin-style message: the 24-byte
// envelope header followed by the encoded payload. net identifies which
// network's magic to stamp on the envelope.
func WriteMessage(w io.Writer, msg Message, pver uint32, net chainparams.Net) error {
	command := msg.Command()
	if len(command) > CommandSize {
		return errors.Errorf("command [%s] is too long", command)
	}

	var bw bytes.Buffer
	if err := msg.BtcEncode(&bw, pver); err != nil {
		return err
	}
	payload := bw.Bytes()
	lenp := len(payload)

	if uint64(lenp) > uint64(MaxMessagePayload) {
		return errors.Errorf("message payload is too large - encoded "+
			"%d bytes, but maximum message payload is %d bytes",
			lenp, MaxMessagePayload)
	}
	if mpl := msg.MaxPayloadLength(pver); uint64(lenp) > mpl {
		return errors.Errorf("message payload is too large - encoded "+
			"%d bytes, but maximum payload size for messages of "+
			"type [%s] is %d", lenp, command, mpl)
	}

	var commandBytes [CommandSize]byte
	copy(commandBytes[:], []byte(command))

	hdr := messageHeader{
		magic:    net,
		command:  string(commandBytes[:]),
		length:   uint32(lenp),
		checksum: checksum4(payload),
	}

	if err := writeMessageHeader(w, &hdr); err != nil {
		return err
	}

	_, err := w.Write(payload)
	return err
}

// readMessageHeader reads the 24-byte envelope header from r, performing
// framing resynchronization: any bytes preceding the next valid magic are
// discarded one at a time. It returns the number of bytes consumed
// (including resync discards) and the parsed header.
func readMessageHeader(r io.Reader, net chainparams.Net) (int, *messageHeader, error) {
	want := make([]byte, 4)
	littleEndian.PutUint32(want, uint32(net))

	var window [4]byte
	n := 0

	// Fill the initial 4-byte window.
	if _, err := io.ReadFull(r, window[:]); err != nil {
		return n, nil, err
	}
	n += 4

	for !bytes.Equal(window[:], want) {
		var next [1]byte
		if _, err := io.ReadFull(r, next[:]); err != nil {
			return n, nil, err
		}
		n++
		copy(window[:], window[1:])
		window[3] = next[0]
	}

	rest := make([]byte, MessageHeaderSize-4)
	if _, err := io.ReadFull(r, rest); err != nil {
		return n, nil, err
	}
	n += len(rest)

	command := rest[0:12]
	if command[11] != 0x00 {
		return n, nil, errors.Wrap(ErrMalformedHeader, "command field not NUL-terminated")
	}
	// Trim the trailing zero padding.
	end := bytes.IndexByte(command, 0x00)
	if end == -1 {
		end = len(command)
	}

	length := littleEndian.Uint32(rest[12:16])
	if length > MaxMessagePayload {
		return n, nil, errors.Wrapf(ErrOversizedPayload, "declared length %d", length)
	}

	var checksum [4]byte
	copy(checksum[:], rest[16:20])

	return n, &messageHeader{
		magic:    net,
		command:  string(command[:end]),
		length:   length,
		checksum: checksum,
	}, nil
}

// ReadMessage reads a complete bitcoin-style message from r: the envelope
// header (with resynchronization) followed by the payload, and decodes it
// into the appropriate concrete Message type. It returns the number of raw
// bytes read off the wire (including any resync discards, for metrics), the
// decoded message, and the raw payload bytes.
func ReadMessage(r io.Reader, pver uint32, net chainparams.Net) (int, Message, []byte, error) {
	totalBytes, hdr, err := readMessageHeader(r, net)
	if err != nil {
		return totalBytes, nil, nil, err
	}

	payload := make([]byte, hdr.length)
	if hdr.length > 0 {
		if _, err := io.ReadFull(r, payload); err != nil {
			return totalBytes, nil, nil, err
		}
	}
	totalBytes += int(hdr.length)

	checksum := checksum4(payload)
	if checksum != hdr.checksum {
		return totalBytes, nil, nil, errors.Wrapf(ErrBadChecksum,
			"command [%s]: got %x, want %x", hdr.command, checksum, hdr.checksum)
	}

	msg, err := makeEmptyMessage(hdr.command)
	if err != nil {
		return totalBytes, nil, payload, err
	}

	if mpl := msg.MaxPayloadLength(pver); uint64(hdr.length) > mpl {
		return totalBytes, nil, nil, errors.Errorf("payload exceeds max length "+
			"for command [%s]: %d > %d", hdr.command, hdr.length, mpl)
	}

	if err := msg.BtcDecode(bytes.NewReader(payload), pver); err != nil {
		return totalBytes, nil, payload, err
	}

	return totalBytes, msg, payload, nil
}

// EmptyChecksum returns the 4-byte checksum of the empty payload, the value
// every zero-length command (verack, getaddr, mempool) carries.
func EmptyChecksum() [4]byte {
	return checksum4(nil)
}
