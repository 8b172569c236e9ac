// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package peer

import (
	"container/list"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jax-ravennet/rvnspv/chainhash"
	"github.com/jax-ravennet/rvnspv/locator"
	"github.com/jax-ravennet/rvnspv/wire"
	"github.com/pkg/errors"
)

// Status is the connection lifecycle state named in spec.md §3.
type Status int32

// Status values. Connected iff both handshake verack flags are set (I1).
const (
	StatusDisconnected Status = iota
	StatusConnecting
	StatusConnected
	// statusWaitingForNetwork is an internal substate entered when
	// Connect is called but NetworkIsReachable reports false. Status
	// returns it as is, and a further Connect call accepts it exactly as
	// it accepts StatusDisconnected.
	statusWaitingForNetwork
)

// pendingPong is one outstanding ping's FIFO entry (I4): every outbound
// ping gets exactly one entry, every inbound pong pops the head and
// invokes its callback exactly once.
type pendingPong struct {
	nonce     uint64
	startTime time.Time
	cb        PongCallback
}

// pendingMerkleBlock models the "partially assembled merkleblock"
// substate from spec.md §9 as a nullable pointer rather than a separate
// enum: nil means Idle, non-nil means AwaitingTx{block, pendingHashes}.
type pendingMerkleBlock struct {
	block         *wire.MsgMerkleBlock
	pendingHashes map[chainhash.Hash]struct{}
}

// Peer is the per-connection Ravencoin SPV state machine: one TCP socket,
// one handshake, one read loop, and the bookkeeping spec.md §3 describes.
type Peer struct {
	cfg    Config
	engine *locator.Engine

	conn net.Conn
	addr string

	status   int32 // atomic Status
	inbound  bool

	// Negotiation fields, set once during the handshake and read-only
	// afterward.
	na              *wire.NetAddress
	nonce           uint64
	protocolVersion uint32
	services        wire.ServiceFlag
	userAgent       string
	lastBlock       int32
	startingHeight  int32
	feePerKb        int64

	flagsMtx    sync.Mutex
	sentVersion bool
	sentVerack  bool
	gotVerack   bool

	sentFilter    bool
	sentGetaddr   bool
	sentGetdata   bool
	sentMempool   bool
	sentGetblocks bool

	needsFilterUpdate int32 // atomic bool

	startTime time.Time

	// pingTimeNanos is an EMA (factor 0.5) of ping RTT, atomic int64
	// nanoseconds.
	pingTimeNanos int64

	// disconnectTime and mempoolTime are absolute unix-nano deadlines;
	// zero means disabled (treated as +Inf). Touched across goroutines,
	// hence atomic as spec.md §5 requires.
	disconnectTime int64
	mempoolTime    int64

	currentBlockHeight int32 // atomic

	statsMtx         sync.Mutex
	knownTxHashes    *orderedHashSet
	knownBlockHashes *orderedHashSet
	currentBlock     *pendingMerkleBlock
	lastBlockHash    *chainhash.Hash

	pongMtx  sync.Mutex
	pongFIFO *list.List

	mempoolMtx sync.Mutex
	mempoolCb  MempoolCallback

	assetMtx sync.Mutex
	assetCb  AssetCallback

	outputQueue   chan outMsg
	sendQueue     chan outMsg
	sendDoneQueue chan struct{}
	outputInvChan chan *wire.InvVect
	stallControl  chan stallControlMsg

	inQuit    chan struct{}
	queueQuit chan struct{}
	outQuit   chan struct{}
	quit      chan struct{}
	quitOnce  sync.Once
}

// outMsg is a single entry on the outbound queue.
type outMsg struct {
	msg      wire.Message
	doneChan chan struct{}
}

// New allocates a Peer in StatusDisconnected with all capped containers
// empty and every deadline disabled, per spec.md §4.3.
func New(addr string, cfg Config) (*Peer, error) {
	if cfg.ProtocolVersion == 0 {
		cfg.ProtocolVersion = wire.ProtocolVersion
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = wire.DefaultUserAgent
	}
	if cfg.TrickleInterval <= 0 {
		cfg.TrickleInterval = trickleInterval
	}

	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, errors.Wrap(err, "invalid peer address")
	}
	port, err := parsePort(portStr)
	if err != nil {
		return nil, err
	}

	p := &Peer{
		cfg:              cfg,
		addr:             addr,
		na:               wire.NewNetAddressIPPort(net.ParseIP(host), port, 0),
		protocolVersion:  cfg.ProtocolVersion,
		knownTxHashes:    newOrderedHashSet(0),
		knownBlockHashes: newOrderedHashSet(wire.MaxGetdataHashes),
		pongFIFO:         list.New(),
		outputQueue:      make(chan outMsg, outputBufferSize),
		sendQueue:        make(chan outMsg, 1),
		sendDoneQueue:    make(chan struct{}, 1),
		outputInvChan:    make(chan *wire.InvVect, outputBufferSize),
		stallControl:     make(chan stallControlMsg, 1),
		inQuit:           make(chan struct{}),
		queueQuit:        make(chan struct{}),
		outQuit:          make(chan struct{}),
		quit:             make(chan struct{}),
	}
	atomic.StoreInt32(&p.status, int32(StatusDisconnected))
	p.setDeadline(&p.disconnectTime, time.Time{})
	p.setDeadline(&p.mempoolTime, time.Time{})

	wire.SetKAWPOWActivation(cfg.ChainParams.KAWPOWActivationTime)
	p.engine = locator.New(locator.Config{
		Params:     cfg.ChainParams,
		Hasher:     cfg.Hasher,
		Validate:   cfg.Validate,
		RelayBlock: p.relayBlock,
	})

	return p, nil
}

func parsePort(s string) (uint16, error) {
	var port uint16
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, errors.Errorf("invalid port %q", s)
		}
		port = port*10 + uint16(c-'0')
	}
	return port, nil
}

// Status returns the peer's current connection status.
func (p *Peer) Status() Status {
	return Status(atomic.LoadInt32(&p.status))
}

func (p *Peer) setStatus(s Status) {
	atomic.StoreInt32(&p.status, int32(s))
}

// Host returns the remote address this peer connects (or is connected) to.
func (p *Peer) Host() string { return p.addr }

// Version returns the remote peer's negotiated protocol version. Valid only
// after the handshake completes.
func (p *Peer) Version() uint32 { return p.protocolVersion }

// UserAgent returns the remote peer's advertised user agent string.
func (p *Peer) UserAgent() string { return p.userAgent }

// LastBlock returns the remote peer's advertised best height at handshake
// time.
func (p *Peer) LastBlock() int32 { return p.lastBlock }

// PingTime returns the current ping RTT estimate.
func (p *Peer) PingTime() time.Duration {
	return time.Duration(atomic.LoadInt64(&p.pingTimeNanos))
}

// FeePerKb returns the last minimum relay fee rate the peer announced via
// feefilter.
func (p *Peer) FeePerKb() int64 {
	p.statsMtx.Lock()
	defer p.statsMtx.Unlock()
	return p.feePerKb
}

// handshakeComplete reports I1: status==Connected iff sentVerack && gotVerack.
func (p *Peer) handshakeComplete() bool {
	p.flagsMtx.Lock()
	defer p.flagsMtx.Unlock()
	return p.sentVerack && p.gotVerack
}

func (p *Peer) setDeadline(field *int64, t time.Time) {
	if t.IsZero() {
		atomic.StoreInt64(field, 0)
		return
	}
	atomic.StoreInt64(field, t.UnixNano())
}

func (p *Peer) deadlinePassed(field *int64) bool {
	v := atomic.LoadInt64(field)
	if v == 0 {
		return false
	}
	return time.Now().UnixNano() >= v
}

// SetCallbacks replaces the Peer Manager callback set.
func (p *Peer) SetCallbacks(l MessageListeners) {
	p.statsMtx.Lock()
	defer p.statsMtx.Unlock()
	p.cfg.Listeners = l
}

// SetEarliestKeyTime records the wallet's earliest relevant key time, used
// by the header-chain locator engine's catch-up decision.
func (p *Peer) SetEarliestKeyTime(t time.Time) {
	p.engine.SetEarliestKeyTime(t)
}

// SetCurrentBlockHeight records the locally known chain tip height, which
// the inv handler checks announcements against. The outbound version
// message's start height comes from Config.NewestBlock, not from here.
func (p *Peer) SetCurrentBlockHeight(height int32) {
	atomic.StoreInt32(&p.currentBlockHeight, height)
}

// SetNeedsFilterUpdate marks whether a bloom filter update is pending; when
// true, the inv handler suppresses block fetch for the current cycle (see
// spec.md §4.2's inv rule).
func (p *Peer) SetNeedsFilterUpdate(needed bool) {
	v := int32(0)
	if needed {
		v = 1
	}
	atomic.StoreInt32(&p.needsFilterUpdate, v)
}

func (p *Peer) needsFilter() bool {
	return atomic.LoadInt32(&p.needsFilterUpdate) != 0
}

// ScheduleDisconnect sets disconnectTime to now+seconds, or disables it if
// seconds is negative.
func (p *Peer) ScheduleDisconnect(seconds float64) {
	if seconds < 0 {
		p.setDeadline(&p.disconnectTime, time.Time{})
		return
	}
	p.setDeadline(&p.disconnectTime, time.Now().Add(time.Duration(seconds*float64(time.Second))))
}

// RerequestBlocks trims knownBlockHashes to start at fromBlock and resends
// the remainder as a getdata of filtered_block entries.
func (p *Peer) RerequestBlocks(fromBlock chainhash.Hash) {
	p.statsMtx.Lock()
	kept := p.knownBlockHashes.TrimToStart(fromBlock)
	p.statsMtx.Unlock()

	if len(kept) == 0 {
		return
	}

	gd := wire.NewMsgGetData()
	for _, h := range kept {
		hh := h
		gd.AddInvVect(wire.NewInvVect(wire.InvTypeFilteredBlock, &hh))
	}
	p.QueueMessage(gd, nil)
}

// StatsSnapshot is a point-in-time, read-only view of the peer's stats,
// for a CLI status command or metrics exporter.
type StatsSnapshot struct {
	Addr           string
	Status         Status
	Version        uint32
	UserAgent      string
	LastBlock      int32
	PingTime       time.Duration
	FeePerKb       int64
	BytesSent      uint64
	BytesReceived  uint64
	TimeConnected  time.Time
	KnownTxCount   int
	KnownBlockCount int
}

// bytesSent and bytesReceived back StatsSnapshot's byte counters. They are
// per-process, not per-peer, and nothing in this package increments them,
// so both always read zero.
var bytesSent, bytesReceived uint64

// StatsSnapshot returns a copy of the peer's current statistics.
func (p *Peer) StatsSnapshot() StatsSnapshot {
	p.statsMtx.Lock()
	defer p.statsMtx.Unlock()
	return StatsSnapshot{
		Addr:            p.addr,
		Status:          p.Status(),
		Version:         p.protocolVersion,
		UserAgent:       p.userAgent,
		LastBlock:       p.lastBlock,
		PingTime:        p.PingTime(),
		FeePerKb:        p.feePerKb,
		BytesSent:       atomic.LoadUint64(&bytesSent),
		BytesReceived:   atomic.LoadUint64(&bytesReceived),
		TimeConnected:   p.startTime,
		KnownTxCount:    p.knownTxHashes.Len(),
		KnownBlockCount: p.knownBlockHashes.Len(),
	}
}
