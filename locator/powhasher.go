// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package locator implements the header-chain locator engine: it consumes
// a decoded headers message, recomputes the proof-of-work-derived hash of
// its boundary headers, and picks the locator pair the peer runtime sends
// in its next getblocks or getheaders request.
package locator

import "github.com/jax-ravennet/rvnspv/chainhash"

// PoWHasher computes the proof-of-work-derived hash of a block header under
// each of Ravencoin's three mining algorithms. All three primitives
// themselves are out of scope for this module — callers inject a concrete
// implementation (X16R, X16Rv2, KAWPOW light-verify) backed by whatever
// hashing library they choose.
type PoWHasher interface {
	// X16R hashes the 80-byte core header encoding under the original
	// X16R algorithm.
	X16R(core []byte) chainhash.Hash

	// X16Rv2 hashes the 80-byte core header encoding under the X16Rv2
	// algorithm that superseded X16R.
	X16Rv2(core []byte) chainhash.Hash

	// KawpowHash derives the proof-of-work hash of a KAWPOW header from
	// its SHA256d core hash, 32-byte mix hash, and 64-bit nonce. It
	// returns an error if the light-client verification fails (e.g. the
	// mix hash doesn't correspond to the nonce).
	KawpowHash(coreHash chainhash.Hash, mixHash chainhash.Hash, nonce uint64) (chainhash.Hash, error)
}
