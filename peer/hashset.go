// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package peer

import "github.com/jax-ravennet/rvnspv/chainhash"

// orderedHashSet is an insertion-ordered collection of hashes with O(1)
// membership testing, used for knownTxHashes and knownBlockHashes. A
// non-zero cap discards the oldest third of the set once exceeded, matching
// spec.md's "when exceeded the oldest one-third is discarded" rule for
// knownBlockHashes (I2); a zero cap means unbounded, used for
// knownTxHashes.
type orderedHashSet struct {
	order []chainhash.Hash
	seen  map[chainhash.Hash]struct{}
	cap   int
}

func newOrderedHashSet(cap int) *orderedHashSet {
	return &orderedHashSet{
		seen: make(map[chainhash.Hash]struct{}),
		cap:  cap,
	}
}

// Has reports whether hash is already known.
func (s *orderedHashSet) Has(hash chainhash.Hash) bool {
	_, ok := s.seen[hash]
	return ok
}

// Add records hash if it isn't already known, trimming the oldest third of
// the set if adding it would exceed cap.
func (s *orderedHashSet) Add(hash chainhash.Hash) {
	if s.Has(hash) {
		return
	}
	if s.cap > 0 && len(s.order) >= s.cap {
		s.trimOldestThird()
	}
	s.order = append(s.order, hash)
	s.seen[hash] = struct{}{}
}

func (s *orderedHashSet) trimOldestThird() {
	drop := len(s.order) / 3
	if drop == 0 {
		drop = 1
	}
	for _, h := range s.order[:drop] {
		delete(s.seen, h)
	}
	s.order = append([]chainhash.Hash(nil), s.order[drop:]...)
}

// Len returns the number of known hashes.
func (s *orderedHashSet) Len() int { return len(s.order) }

// TrimToStart discards every hash before the first occurrence of from,
// implementing RerequestBlocks' "trim to start at fromBlock" rule. If from
// is not present, the set is left unchanged.
func (s *orderedHashSet) TrimToStart(from chainhash.Hash) []chainhash.Hash {
	idx := -1
	for i, h := range s.order {
		if h == from {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	kept := append([]chainhash.Hash(nil), s.order[idx:]...)
	s.order = kept
	s.seen = make(map[chainhash.Hash]struct{}, len(kept))
	for _, h := range kept {
		s.seen[h] = struct{}{}
	}
	return kept
}
