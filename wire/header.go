// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"io"
	"time"

	"github.com/jax-ravennet/rvnspv/chainhash"
	"github.com/pkg/errors"
)

// HeaderEncoding tags which of the two on-wire block header layouts a
// BlockHeader was decoded from. The header-chain locator engine needs this
// to pick the matching proof-of-work algorithm.
type HeaderEncoding int

const (
	// LegacyEncoding is the original 80-byte header, hashed with X16R or
	// X16Rv2 depending on timestamp.
	LegacyEncoding HeaderEncoding = iota
	// KAWPOWEncoding is the 120-byte header introduced with KAWPOW:
	// the same 80-byte prefix (whose nonce field is repurposed to carry
	// the block height) plus an 8-byte nonce and a 32-byte mix hash.
	KAWPOWEncoding
)

// LegacyHeaderLen is the size in bytes of an 80-byte legacy header.
const LegacyHeaderLen = 80

// KAWPOWHeaderLen is the size in bytes of a 120-byte KAWPOW header.
const KAWPOWHeaderLen = 120

// timestampOffset is where the 4-byte header timestamp begins within the
// common 80-byte prefix shared by both encodings. Nothing reads it by this
// name; readBlockHeader decodes the timestamp while reading the prefix in
// order and uses it to pick the encoding of the rest of the header.
const timestampOffset = 68

// BlockHeader represents a Ravencoin block header in either its legacy or
// KAWPOW form. The common 80-byte prefix is always populated; NonceU64 and
// MixHash are only meaningful when Encoding == KAWPOWEncoding.
type BlockHeader struct {
	Encoding   HeaderEncoding
	Version    int32
	PrevBlock  chainhash.Hash
	MerkleRoot chainhash.Hash
	Timestamp  time.Time
	Bits       uint32

	// NonceOrHeight is the 32-bit field at the traditional nonce offset:
	// the proof-of-work nonce for a legacy header, the block height for
	// a KAWPOW header (KAWPOW moved the nonce to a dedicated 64-bit
	// field below).
	NonceOrHeight uint32

	// NonceU64 and MixHash are populated only for KAWPOWEncoding.
	NonceU64 uint64
	MixHash  chainhash.Hash
}

// readBlockHeader decodes a single header from r. kawpowActivation is the
// network's KAWPOW activation time (chainparams.Params.KAWPOWActivationTime);
// a header timestamp at or after it is decoded as a 120-byte KAWPOW header,
// otherwise as an 80-byte legacy header. A 1-byte trailing placeholder
// (the headers message's per-entry transaction count, always zero on the
// wire) is consumed and validated.
func readBlockHeader(r io.Reader, kawpowActivation time.Time) (*BlockHeader, error) {
	hdr := &BlockHeader{}

	var version int32
	var ts uint32
	if err := readElements(r, &version,
		hdr.PrevBlock[:], hdr.MerkleRoot[:]); err != nil {
		return nil, err
	}
	hdr.Version = version

	if err := readElement(r, &ts); err != nil {
		return nil, err
	}
	hdr.Timestamp = time.Unix(int64(ts), 0)

	if err := readElements(r, &hdr.Bits, &hdr.NonceOrHeight); err != nil {
		return nil, err
	}

	if !hdr.Timestamp.Before(kawpowActivation) {
		hdr.Encoding = KAWPOWEncoding
		if err := readElement(r, &hdr.NonceU64); err != nil {
			return nil, err
		}
		if err := readElement(r, hdr.MixHash[:]); err != nil {
			return nil, err
		}
	} else {
		hdr.Encoding = LegacyEncoding
	}

	var txCount uint8
	if err := readElement(r, &txCount); err != nil {
		return nil, err
	}
	if txCount != 0 {
		return nil, errors.Errorf("non-zero tx count placeholder in headers entry: %d", txCount)
	}

	return hdr, nil
}

// writeBlockHeader encodes hdr to w using its Encoding tag, followed by the
// zero tx-count placeholder.
func writeBlockHeader(w io.Writer, hdr *BlockHeader) error {
	ts := uint32(hdr.Timestamp.Unix())
	if err := writeElements(w, hdr.Version, hdr.PrevBlock[:], hdr.MerkleRoot[:],
		ts, hdr.Bits, hdr.NonceOrHeight); err != nil {
		return err
	}

	if hdr.Encoding == KAWPOWEncoding {
		if err := writeElement(w, hdr.NonceU64); err != nil {
			return err
		}
		if err := writeElement(w, hdr.MixHash[:]); err != nil {
			return err
		}
	}

	return writeElement(w, uint8(0))
}

// SerializeSize returns the on-wire byte length of hdr, including the
// trailing tx-count placeholder.
func (hdr *BlockHeader) SerializeSize() int {
	if hdr.Encoding == KAWPOWEncoding {
		return KAWPOWHeaderLen + 1
	}
	return LegacyHeaderLen + 1
}

// SerializeCore returns the canonical 80-byte header encoding shared by both
// the legacy and KAWPOW layouts. This is the hashing input for every
// proof-of-work algorithm: X16R/X16Rv2 hash it directly, KAWPOW hashes it
// with SHA256d before combining the result with the mix hash and nonce.
func (hdr *BlockHeader) SerializeCore() []byte {
	var buf bytes.Buffer
	ts := uint32(hdr.Timestamp.Unix())
	// Errors are impossible: writeElements only fails on the underlying
	// io.Writer, and bytes.Buffer.Write never returns one.
	_ = writeElements(&buf, hdr.Version, hdr.PrevBlock[:], hdr.MerkleRoot[:],
		ts, hdr.Bits, hdr.NonceOrHeight)
	return buf.Bytes()
}

// BlockHash returns the hash identifying hdr within the chain: for a legacy
// header this is the double-SHA256 of the core encoding (the same value
// X16R/X16Rv2 consume as PoW input in today's implementation, ahead of the
// eventual PoW-hash/block-hash split); for a KAWPOW header it is likewise
// SHA256d(core) — KAWPOW's own proof-of-work hash is a distinct value
// produced by the injected PoWHasher, never used as the block identifier.
func (hdr *BlockHeader) BlockHash() chainhash.Hash {
	return chainhash.HashH(hdr.SerializeCore())
}
