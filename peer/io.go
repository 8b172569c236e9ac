// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package peer

import (
	"io"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/jax-ravennet/rvnspv/wire"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// stallControlCmd tags a stallControlMsg as recording an outbound send that
// expects a response, or an inbound receipt that satisfies one.
type stallControlCmd int

const (
	scSend stallControlCmd = iota
	scRecv
)

// stallControlMsg is posted to stallControl by inHandler/queueHandler so the
// stallHandler goroutine can track per-command response deadlines without
// its own lock on Peer state.
type stallControlMsg struct {
	cmd     stallControlCmd
	command string
}

// expectedResponse maps an outbound command to the inbound command that
// satisfies it, for the commands spec.md's §1 "multiple long-running
// outstanding requests" calls out by name.
var expectedResponse = map[string]string{
	wire.CmdVersion:    wire.CmdVerAck,
	wire.CmdGetHeaders: wire.CmdHeaders,
	wire.CmdGetBlocks:  wire.CmdInv,
	wire.CmdGetData:    wire.CmdTx, // merkleblock/notfound also satisfy; handled specially below
}

// QueueMessage enqueues msg for transmission. doneChan, if non-nil, is
// closed once the message has been written to the socket.
func (p *Peer) QueueMessage(msg wire.Message, doneChan chan struct{}) error {
	select {
	case p.outputQueue <- outMsg{msg: msg, doneChan: doneChan}:
		return nil
	case <-p.quit:
		if doneChan != nil {
			close(doneChan)
		}
		return errors.New("peer disconnected")
	}
}

// QueueInventory hands a single inventory vector to the trickle queue;
// block inventory bypasses batching and is sent immediately.
func (p *Peer) QueueInventory(iv *wire.InvVect) {
	if iv.Type == wire.InvTypeBlock {
		inv := wire.NewMsgInv()
		inv.AddInvVect(iv)
		p.QueueMessage(inv, nil)
		return
	}
	select {
	case p.outputInvChan <- iv:
	case <-p.quit:
	}
}

// SendPing pushes a ping with a fresh nonce and records its FIFO entry; cb
// fires exactly once, per I4, when the matching pong arrives or the
// connection is torn down first.
func (p *Peer) SendPing(cb PongCallback) {
	nonce, err := wire.RandomUint64()
	if err != nil {
		if cb != nil {
			cb(false, 0)
		}
		return
	}

	p.pongMtx.Lock()
	p.pongFIFO.PushBack(&pendingPong{nonce: nonce, startTime: time.Now(), cb: cb})
	p.pongMtx.Unlock()

	p.QueueMessage(wire.NewMsgPing(nonce), nil)
}

// relayBlock is the locator engine's RelayBlock collaborator: it records
// the header-validated placeholder block's hash and forwards it to
// Config.RelayBlock and to the Peer Manager.
func (p *Peer) relayBlock(block *wire.MsgMerkleBlock) {
	hash := block.Header.BlockHash()

	p.statsMtx.Lock()
	p.knownBlockHashes.Add(hash)
	p.statsMtx.Unlock()

	if p.cfg.RelayBlock != nil {
		p.cfg.RelayBlock(block)
	}
	if p.cfg.Listeners.OnRelayedBlock != nil {
		p.cfg.Listeners.OnRelayedBlock(p, block)
	}
}

// inHandler is the peer's single reader goroutine: spec.md's "dedicated
// blocking socket reader". It owns message decode, deadline enforcement,
// and dispatch, so every listener callback for this peer fires in wire
// order (O2/O3).
func (p *Peer) inHandler() {
	defer close(p.inQuit)

	idleTimer := time.NewTimer(pingInterval)
	defer idleTimer.Stop()

	var exitErr error

out:
	for {
		if p.deadlinePassed(&p.disconnectTime) {
			p.cfg.Logger.Warn().Str("addr", p.addr).Msg("peer negotiate/session deadline exceeded")
			exitErr = errors.New("peer negotiate/session deadline exceeded")
			break out
		}
		if p.deadlinePassed(&p.mempoolTime) {
			p.failMempoolRequest()
		}

		p.conn.SetReadDeadline(time.Now().Add(MessageTimeout))
		_, msg, _, err := wire.ReadMessage(p.conn, p.protocolVersion, p.cfg.ChainParams.Net)
		if err != nil {
			select {
			case <-p.quit:
				break out
			default:
			}
			if ne, ok := err.(interface{ Timeout() bool }); ok && ne.Timeout() {
				continue
			}
			if err == io.EOF {
				p.cfg.Logger.Info().Str("addr", p.addr).Msg("peer closed connection")
			} else {
				p.cfg.Logger.Error().Err(err).Str("addr", p.addr).Msg("read error")
			}
			exitErr = err
			break out
		}

		idleTimer.Reset(pingInterval)

		if p.cfg.Logger.GetLevel() <= zerolog.TraceLevel {
			p.cfg.Logger.Trace().Str("addr", p.addr).Str("command", msg.Command()).
				Msg("<- " + spew.Sdump(msg))
		}

		select {
		case p.stallControl <- stallControlMsg{cmd: scRecv, command: msg.Command()}:
		case <-p.quit:
			break out
		}

		if err := p.dispatch(msg); err != nil {
			p.cfg.Logger.Error().Err(err).Str("addr", p.addr).Str("command", msg.Command()).
				Msg("protocol error")
			exitErr = err
			break out
		}
	}

	p.Disconnect()

	p.pongMtx.Lock()
	var pongCbs []PongCallback
	for e := p.pongFIFO.Front(); e != nil; e = e.Next() {
		pongCbs = append(pongCbs, e.Value.(*pendingPong).cb)
	}
	p.pongFIFO.Init()
	p.pongMtx.Unlock()
	for _, cb := range pongCbs {
		if cb != nil {
			cb(false, 0)
		}
	}

	p.mempoolMtx.Lock()
	mempoolCb := p.mempoolCb
	p.mempoolCb = nil
	p.mempoolMtx.Unlock()
	if mempoolCb != nil {
		mempoolCb(false)
	}

	if p.cfg.Listeners.OnDisconnected != nil {
		p.cfg.Listeners.OnDisconnected(p, exitErr)
	}
	if p.cfg.Listeners.OnThreadCleanup != nil {
		p.cfg.Listeners.OnThreadCleanup(p)
	}
}

// queueHandler serializes everything QueueMessage/QueueInventory produce
// onto sendQueue, batching non-block inventory on a TrickleInterval ticker.
// This, plus outHandler doing the only actual socket write, is the
// channel-based equivalent of O1's "single mutex around send".
func (p *Peer) queueHandler() {
	defer close(p.queueQuit)

	trickleTicker := time.NewTicker(p.cfg.TrickleInterval)
	defer trickleTicker.Stop()

	var pendingInv []*wire.InvVect

	forward := func(om outMsg) bool {
		select {
		case p.stallControl <- stallControlMsg{cmd: scSend, command: om.msg.Command()}:
		case <-p.quit:
			return false
		}
		select {
		case p.sendQueue <- om:
			return true
		case <-p.quit:
			return false
		}
	}

	for {
		select {
		case om := <-p.outputQueue:
			if !forward(om) {
				return
			}

		case iv := <-p.outputInvChan:
			pendingInv = append(pendingInv, iv)

		case <-trickleTicker.C:
			if len(pendingInv) == 0 {
				continue
			}
			inv := wire.NewMsgInv()
			for _, iv := range pendingInv {
				if len(inv.InvList) >= wire.MaxGetdataHashes {
					break
				}
				inv.AddInvVect(iv)
			}
			pendingInv = nil
			if !forward(outMsg{msg: inv}) {
				return
			}

		case <-p.quit:
			return
		}
	}
}

// outHandler is the peer's single writer goroutine: it performs the
// blocking socket write for every queued message, in order, and is the
// only goroutine that touches p.conn for writing.
func (p *Peer) outHandler() {
	defer close(p.outQuit)

	for {
		select {
		case om := <-p.sendQueue:
			if p.cfg.Logger.GetLevel() <= zerolog.TraceLevel {
				p.cfg.Logger.Trace().Str("addr", p.addr).Str("command", om.msg.Command()).
					Msg("-> " + spew.Sdump(om.msg))
			}

			p.conn.SetWriteDeadline(time.Now().Add(MessageTimeout))
			err := wire.WriteMessage(p.conn, om.msg, p.protocolVersion, p.cfg.ChainParams.Net)
			if om.doneChan != nil {
				close(om.doneChan)
			}
			if err != nil {
				p.cfg.Logger.Error().Err(err).Str("addr", p.addr).Msg("write error")
				p.Disconnect()
				return
			}

			p.flagsMtx.Lock()
			if om.msg.Command() == wire.CmdVerAck {
				p.sentVerack = true
			}
			p.flagsMtx.Unlock()
			p.maybeFireConnected()

		case <-p.quit:
			return
		}
	}
}

// pingHandler pings the connection every pingInterval, whether or not other
// traffic is flowing, both to detect half-open sockets and to maintain a
// pingTime RTT estimate.
func (p *Peer) pingHandler() {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.SendPing(nil)
		case <-p.quit:
			return
		}
	}
}

// stallHandler tracks, per outstanding request, the deadline by which a
// response must arrive; any overrun disconnects the peer. It is the
// generalization of spec.md's two session-level deadlines to arbitrary
// in-flight request types (getheaders/getdata/getblocks/version).
func (p *Peer) stallHandler() {
	pending := make(map[string]time.Time)
	ticker := time.NewTicker(stallTickInterval)
	defer ticker.Stop()

	satisfies := func(inbound string) []string {
		switch inbound {
		case wire.CmdVerAck:
			return []string{wire.CmdVersion}
		case wire.CmdHeaders:
			return []string{wire.CmdGetHeaders}
		case wire.CmdInv:
			return []string{wire.CmdGetBlocks}
		case wire.CmdTx, wire.CmdMerkleBlock, wire.CmdNotFound:
			return []string{wire.CmdGetData}
		default:
			return nil
		}
	}

	for {
		select {
		case sc := <-p.stallControl:
			switch sc.cmd {
			case scSend:
				if _, tracked := expectedResponse[sc.command]; tracked {
					pending[sc.command] = time.Now().Add(stallResponseTimeout)
				}
			case scRecv:
				for _, outstanding := range satisfies(sc.command) {
					delete(pending, outstanding)
				}
			}

		case <-ticker.C:
			now := time.Now()
			for cmd, deadline := range pending {
				if now.After(deadline) {
					p.cfg.Logger.Warn().Str("addr", p.addr).Str("awaiting", cmd).
						Msg("peer stalled, disconnecting")
					p.Disconnect()
					return
				}
			}

		case <-p.quit:
			return
		}
	}
}

func (p *Peer) maybeFireConnected() {
	if p.Status() == StatusConnected {
		return
	}
	if p.handshakeComplete() {
		p.setDeadline(&p.disconnectTime, time.Time{})
		p.setStatus(StatusConnected)
		if p.cfg.Listeners.OnConnected != nil {
			p.cfg.Listeners.OnConnected(p)
		}
	}
}

// failMempoolRequest resolves a mempool request whose deadline has passed.
// It does not fail the callback directly: it chains it through a ping, so
// the caller learns the mempool round completed only once the peer has
// actually drained its queue up to that point.
func (p *Peer) failMempoolRequest() {
	p.mempoolMtx.Lock()
	cb := p.mempoolCb
	p.mempoolCb = nil
	p.mempoolMtx.Unlock()

	p.setDeadline(&p.mempoolTime, time.Time{})
	if cb != nil {
		p.SendPing(func(success bool, _ time.Duration) { cb(success) })
	}
}
