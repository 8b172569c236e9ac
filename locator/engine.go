// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package locator

import (
	"time"

	"github.com/jax-ravennet/rvnspv/chainhash"
	"github.com/jax-ravennet/rvnspv/chainparams"
	"github.com/jax-ravennet/rvnspv/wire"
	"github.com/pkg/errors"
)

// blockMaxTimeDrift bounds how far into the future a header's timestamp may
// sit relative to the catch-up window before the engine decides the chain
// tip has been reached. Two hours matches the reference client's
// future-block-time tolerance.
const blockMaxTimeDrift = 2 * time.Hour

// catchUpTimestampSpan is the width of the "recent enough to stop catching
// up" window measured backward from the caller's earliest key time.
const catchUpTimestampSpan = 7 * 24 * time.Hour

// catchUpHeaderCountThreshold is the header count at or above which a
// headers message is assumed to be a full batch from a peer still catching
// the client up, regardless of the timestamps it carries.
const catchUpHeaderCountThreshold = 2000

// Validator constructs and validates a placeholder MerkleBlock (a block
// header carrying no transaction hashes) for a single header, returning
// false if the header fails proof-of-work or chain-context validation
// (BRMerkleBlockIsValid in spec terms). Block construction and validation
// are both external collaborators' responsibility.
type Validator func(block *wire.MsgMerkleBlock, now time.Time) bool

// Config wires the engine's external collaborators.
type Config struct {
	Params    chainparams.Params
	Hasher    PoWHasher
	Validate  Validator
	RelayBlock func(block *wire.MsgMerkleBlock)
}

// Engine is the header-chain locator engine described by the core's
// component design: it consumes decoded mixed-encoding header streams, recomputes
// proof-of-work-derived hashes, and selects the next request's locators.
type Engine struct {
	cfg             Config
	earliestKeyTime time.Time
}

// New returns a header-chain locator engine using cfg's collaborators.
func New(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// SetEarliestKeyTime sets the wallet's earliest relevant key creation time,
// the boundary the catch-up decision is measured against.
func (e *Engine) SetEarliestKeyTime(t time.Time) {
	e.earliestKeyTime = t
}

// NextRequest describes the getblocks/getheaders request the peer runtime
// should issue after processing a headers message.
type NextRequest struct {
	// UseGetBlocks is true while the engine still considers itself
	// behind the earliest-key-time catch-up window; the caller should
	// send getblocks instead of getheaders in that case.
	UseGetBlocks bool

	// Locators holds exactly two hashes ordered [tail, head]: tail is
	// the most recently received header in the window, head is the
	// oldest.
	Locators []*chainhash.Hash
}

// ProcessHeaders implements spec.md §4.4: it recomputes the PoW-derived
// hash of the window's boundary headers, decides whether catch-up
// continues, builds and relays a placeholder MerkleBlock for every header,
// and returns the next request to issue. An invalid header is a fatal
// protocol error.
func (e *Engine) ProcessHeaders(msg *wire.MsgHeaders) (*NextRequest, error) {
	if len(msg.Headers) == 0 {
		return &NextRequest{}, nil
	}

	now := time.Now()
	for _, hdr := range msg.Headers {
		block := &wire.MsgMerkleBlock{Header: hdr, Transactions: 0}
		if e.cfg.Validate != nil && !e.cfg.Validate(block, now) {
			return nil, errors.Errorf("invalid header at height-ish position (bits=%#x, time=%s)",
				hdr.Bits, hdr.Timestamp)
		}
		if e.cfg.RelayBlock != nil {
			e.cfg.RelayBlock(block)
		}
	}

	head := msg.Headers[0]
	tail := msg.Headers[len(msg.Headers)-1]

	headHash, err := e.powHash(head)
	if err != nil {
		return nil, errors.Wrap(err, "head header")
	}
	tailHash, err := e.powHash(tail)
	if err != nil {
		return nil, errors.Wrap(err, "tail header")
	}

	continuing := e.continuesCatchUp(len(msg.Headers), tail.Timestamp)

	return &NextRequest{
		UseGetBlocks: continuing,
		Locators:     []*chainhash.Hash{&tailHash, &headHash},
	}, nil
}

// continuesCatchUp implements the catch-up termination condition: continue
// while the batch is full-sized, or while the tail header is still older
// than the earliest-key-time window (widened by the future-time drift
// tolerance).
func (e *Engine) continuesCatchUp(count int, lastTimestamp time.Time) bool {
	if count >= catchUpHeaderCountThreshold {
		return true
	}
	if e.earliestKeyTime.IsZero() {
		return false
	}
	return lastTimestamp.Add(catchUpTimestampSpan).Add(blockMaxTimeDrift).Before(e.earliestKeyTime)
}

// powHash computes the proof-of-work-derived locator hash for a single
// header, dispatching on its encoding and (for legacy headers) on the
// network's X16Rv2 activation time.
func (e *Engine) powHash(hdr *wire.BlockHeader) (chainhash.Hash, error) {
	switch hdr.Encoding {
	case wire.KAWPOWEncoding:
		coreHash := chainhash.HashH(hdr.SerializeCore())
		return e.cfg.Hasher.KawpowHash(coreHash, hdr.MixHash, hdr.NonceU64)

	default:
		core := hdr.SerializeCore()
		if hdr.Timestamp.Before(e.cfg.Params.X16Rv2ActivationTime) {
			return e.cfg.Hasher.X16R(core), nil
		}
		return e.cfg.Hasher.X16Rv2(core), nil
	}
}
