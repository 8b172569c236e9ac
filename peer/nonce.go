// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package peer

import "sync"

// mruNonceSet is a bounded most-recently-used set of nonces this process has
// sent in outbound version messages. A remote echoing one of these nonces
// back in its own version message indicates a self-connection loop, per
// spec.md §4.5.
type mruNonceSet struct {
	mtx   sync.Mutex
	order []uint64
	seen  map[uint64]struct{}
	cap   int
}

func newMruNonceSet(cap int) *mruNonceSet {
	return &mruNonceSet{
		seen: make(map[uint64]struct{}, cap),
		cap:  cap,
	}
}

// Add records nonce as sent, evicting the oldest entry if at capacity.
func (s *mruNonceSet) Add(nonce uint64) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.seen[nonce]; ok {
		return
	}
	if len(s.order) >= s.cap {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.seen, oldest)
	}
	s.order = append(s.order, nonce)
	s.seen[nonce] = struct{}{}
}

// Contains reports whether nonce was recently sent by this process.
func (s *mruNonceSet) Contains(nonce uint64) bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	_, ok := s.seen[nonce]
	return ok
}

// sentNonces tracks every nonce this process has sent in an outbound version
// message, across all peers, so a self-connection loop can be detected
// regardless of which Peer handles the echoed version message back.
var sentNonces = newMruNonceSet(50)
