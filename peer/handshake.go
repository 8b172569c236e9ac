// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package peer

import (
	"net"
	"time"

	"github.com/jax-ravennet/rvnspv/wire"
	"github.com/pkg/errors"
)

// sendLocalVersion builds and writes this process's outbound version
// message directly on the raw connection, bypassing the send queue since
// the outHandler goroutine has not started yet. See spec.md §4.5: the
// client always sends version first.
func (p *Peer) sendLocalVersion() error {
	nonce, err := wire.RandomUint64()
	if err != nil {
		return errors.Wrap(err, "generating version nonce")
	}
	sentNonces.Add(nonce)

	var lastBlock int32
	if p.cfg.NewestBlock != nil {
		if _, height, err := p.cfg.NewestBlock(); err == nil {
			lastBlock = height
		}
	}

	theirNA := p.na
	ourPort, err := parsePort(p.cfg.ChainParams.DefaultPort)
	if err != nil {
		return errors.Wrap(err, "chain params default port")
	}
	ourNA := wire.NewNetAddressIPPort(net.ParseIP(LocalHost), ourPort, p.cfg.Services)

	msg := wire.NewMsgVersion(ourNA, theirNA, nonce, lastBlock)
	msg.UserAgent = p.cfg.UserAgent
	msg.ProtocolVersion = p.protocolVersion
	msg.Services = p.cfg.Services

	// A proxied connection must never leak the real "from" address; the
	// loopback address above already covers that, matching the teacher's
	// redaction rule for tor proxies.

	p.flagsMtx.Lock()
	p.sentVersion = true
	p.nonce = nonce
	p.flagsMtx.Unlock()

	select {
	case p.stallControl <- stallControlMsg{cmd: scSend, command: wire.CmdVersion}:
	default:
	}

	p.conn.SetWriteDeadline(time.Now().Add(MessageTimeout))
	return wire.WriteMessage(p.conn, msg, p.protocolVersion, p.cfg.ChainParams.Net)
}

// handleRemoteVersion processes an inbound version message: it rejects
// self-connections and stale protocol versions, records the remote's
// advertised identity, and replies with verack.
func (p *Peer) handleRemoteVersion(msg *wire.MsgVersion) error {
	if msg.ProtocolVersion < wire.MinAcceptableProtocolVersion {
		return errors.Errorf("protocol version must be %d or greater: %d",
			wire.MinAcceptableProtocolVersion, msg.ProtocolVersion)
	}
	if sentNonces.Contains(msg.Nonce) {
		return errors.New("disconnecting peer connected to self")
	}

	p.flagsMtx.Lock()
	p.protocolVersion = minUint32(p.protocolVersion, msg.ProtocolVersion)
	p.flagsMtx.Unlock()

	p.services = msg.Services
	p.userAgent = msg.UserAgent
	p.lastBlock = msg.LastBlock

	return p.QueueMessage(wire.NewMsgVerAck(), nil)
}

func minUint32(a, b uint32) uint32 {
	if a < b {
		return a
	}
	return b
}
