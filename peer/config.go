// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package peer implements the per-connection Ravencoin SPV state machine:
// the version handshake, the framed read loop, the header-chain catch-up
// dance, and the concurrency model serializing outbound sends against a
// single blocking reader. It owns a socket and nothing else — the wallet,
// the bloom filter, transaction relay policy, and persistent peer storage
// all live one layer up, reached only through the callbacks in Config.
package peer

import (
	"time"

	"github.com/jax-ravennet/rvnspv/chainhash"
	"github.com/jax-ravennet/rvnspv/chainparams"
	"github.com/jax-ravennet/rvnspv/locator"
	"github.com/jax-ravennet/rvnspv/wire"
	"github.com/rs/zerolog"
)

// Bit-exact constants from the external interfaces section of the core
// design.
const (
	// ConnectTimeout bounds how long the initial TCP dial may take.
	ConnectTimeout = 3 * time.Second

	// MessageTimeout is the deadline set on the socket before each message
	// read and each write. It is not extended as bytes arrive; when a read
	// deadline expires, the read loop re-checks its session deadlines and
	// starts a new read rather than disconnecting.
	MessageTimeout = 10 * time.Second

	// socketTimeout is a per-syscall timeout value. Nothing in this package
	// applies it; reads and writes use MessageTimeout deadlines only.
	socketTimeout = 1 * time.Second

	// negotiateTimeout bounds the version/verack handshake.
	negotiateTimeout = 30 * time.Second

	// stallResponseTimeout is how long an outstanding request may go
	// unanswered before the peer is judged stalled and disconnected.
	stallResponseTimeout = 30 * time.Second

	// stallTickInterval is how often the stall handler re-checks
	// deadlines.
	stallTickInterval = 15 * time.Second

	// pingInterval is how often the connection is proactively pinged,
	// busy or idle, to detect half-open sockets and measure RTT.
	pingInterval = 2 * time.Minute

	// trickleInterval is the default batching interval for outbound
	// non-block inventory.
	trickleInterval = 10 * time.Second

	// outputBufferSize bounds the outbound message queue.
	outputBufferSize = 50

	// LocalHost is the v4-mapped-v6 loopback address advertised in the
	// "from" fields of an outbound version message.
	LocalHost = "::ffff:127.0.0.1"
)

// MempoolCallback is invoked exactly once when an outstanding mempool
// request completes. Both the first inv carrying transactions and the
// mempool deadline resolve it through a chained ping (see spec.md §4.2's
// inv rule), so it reports that ping's outcome; it fails directly if the
// peer disconnects first.
type MempoolCallback func(success bool)

// PongCallback is invoked exactly once per SendPing call: with success when
// the matching pong arrives, or with failure if Disconnect intervenes
// first.
type PongCallback func(success bool, rtt time.Duration)

// AssetCallback receives the reply to a SendGetAsset call: the decoded asset
// or the not-found sentinel. Only one callback is held at a time, so one
// replaced by a later SendGetAsset call, or still waiting when the peer
// disconnects, is never invoked.
type AssetCallback func(asset *wire.MsgAssetData)

// Config holds the collaborators and tunables a Peer needs. Everything
// named here but not implemented by this package — the wallet, the bloom
// filter, transaction/merkleblock parsing, address storage, DNS seeding —
// is an external responsibility reached only through these callbacks.
type Config struct {
	// ChainParams selects the network magic, default port, and
	// KAWPOW/X16Rv2 activation times this peer negotiates under.
	ChainParams chainparams.Params

	// Hasher supplies the three PoW-hash algorithms the header-chain
	// locator engine needs; see locator.PoWHasher.
	Hasher locator.PoWHasher

	// Validate and RelayBlock are forwarded to the locator engine; see
	// locator.Config.
	Validate   locator.Validator
	RelayBlock func(block *wire.MsgMerkleBlock)

	// UserAgent is advertised in the outbound version message.
	UserAgent string

	// Services are the service bits this node advertises about itself.
	Services wire.ServiceFlag

	// ProtocolVersion overrides wire.ProtocolVersion if non-zero
	// (primarily for tests that want to exercise negotiation with an
	// older remote).
	ProtocolVersion uint32

	// Proxy, when non-empty, is a SOCKS4/5 proxy address to dial through
	// instead of connecting directly.
	Proxy string

	// TrickleInterval overrides the default outbound inventory batching
	// interval if non-zero.
	TrickleInterval time.Duration

	// NewestBlock supplies the locally known chain tip height advertised
	// in the outbound version message's start-height field.
	NewestBlock func() (hash *chainhash.Hash, height int32, err error)

	// Listeners are the one-way callbacks from this core to the Peer
	// Manager, matching spec.md §6 exactly.
	Listeners MessageListeners

	// Logger receives structured events from every goroutine this peer
	// spawns.
	Logger zerolog.Logger
}

// MessageListeners groups the Peer Manager callback set the core drives.
type MessageListeners struct {
	OnConnected      func(p *Peer)
	OnDisconnected   func(p *Peer, err error)
	OnRelayedPeers   func(p *Peer, addrs []*wire.NetAddress)
	OnRelayedTx      func(p *Peer, raw []byte)
	OnHasTx          func(p *Peer, hash *chainhash.Hash)
	OnRejectedTx     func(p *Peer, hash *chainhash.Hash, code wire.RejectCode)
	OnRelayedBlock   func(p *Peer, block *wire.MsgMerkleBlock)
	OnNotFound       func(p *Peer, txHashes, blockHashes []*chainhash.Hash)
	OnSetFeePerKb    func(p *Peer, feePerKb int64)
	OnRequestedTx    func(p *Peer, hash *chainhash.Hash) []byte
	NetworkIsReachable func() bool
	OnThreadCleanup  func(p *Peer)
}
