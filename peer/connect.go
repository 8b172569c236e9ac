// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package peer

import (
	"net"
	"sync/atomic"
	"time"

	"github.com/btcsuite/go-socks/socks"
	"github.com/pkg/errors"
)

// ErrNetworkUnreachable is returned by Connect when the caller's
// NetworkIsReachable callback reports false.
var ErrNetworkUnreachable = errors.New("network is not reachable")

// Connect dials the remote address, sends the local version message, and
// starts the peer's goroutines. It returns as soon as the version message
// is written; the handshake itself completes asynchronously once verack is
// exchanged, bounded by negotiateTimeout.
func (p *Peer) Connect() error {
	if !p.setStatusConnecting() {
		return errors.Errorf("peer %s: Connect called while status=%v", p.addr, p.Status())
	}

	if p.cfg.Listeners.NetworkIsReachable != nil && !p.cfg.Listeners.NetworkIsReachable() {
		p.setStatus(statusWaitingForNetwork)
		return ErrNetworkUnreachable
	}

	conn, err := p.dial()
	if err != nil {
		p.setStatus(StatusDisconnected)
		return errors.Wrap(err, "dial")
	}

	p.conn = conn
	p.startTime = time.Now()

	if err := p.sendLocalVersion(); err != nil {
		conn.Close()
		p.setStatus(StatusDisconnected)
		return errors.Wrap(err, "sending version")
	}

	// The handshake completes asynchronously: inHandler's version/verack
	// dispatch sets sentVerack/gotVerack and fires OnConnected itself
	// once both are set. negotiateTimeout bounds how long that may take
	// before inHandler disconnects the peer.
	p.setDeadline(&p.disconnectTime, time.Now().Add(negotiateTimeout))

	go p.stallHandler()
	go p.inHandler()
	go p.queueHandler()
	go p.outHandler()
	go p.pingHandler()

	return nil
}

func (p *Peer) setStatusConnecting() bool {
	return atomic.CompareAndSwapInt32(&p.status, int32(StatusDisconnected), int32(StatusConnecting)) ||
		atomic.CompareAndSwapInt32(&p.status, int32(statusWaitingForNetwork), int32(StatusConnecting))
}

// dial opens the TCP connection to p.addr, directly or through a SOCKS
// proxy, bounded by ConnectTimeout. It makes a single attempt at the
// address as given, with no IPv6-then-IPv4 fallback, and sets no per-read
// or per-write timeout; the reader and writer goroutines set their own
// MessageTimeout deadlines.
func (p *Peer) dial() (net.Conn, error) {
	var conn net.Conn
	var err error

	if p.cfg.Proxy != "" {
		proxy := &socks.Proxy{
			Addr: p.cfg.Proxy,
		}
		conn, err = proxy.DialTimeout("tcp", p.addr, ConnectTimeout)
	} else {
		d := net.Dialer{Timeout: ConnectTimeout}
		conn, err = d.Dial("tcp", p.addr)
	}
	if err != nil {
		return nil, err
	}

	if tc, ok := conn.(*net.TCPConn); ok {
		tc.SetKeepAlive(true)
		tc.SetKeepAlivePeriod(time.Minute)
	}
	return conn, nil
}

// Disconnect closes the connection and signals every goroutine to exit. It
// is safe to call more than once and from any goroutine.
func (p *Peer) Disconnect() {
	p.quitOnce.Do(func() {
		close(p.quit)
		if p.conn != nil {
			p.conn.Close()
		}
		p.setStatus(StatusDisconnected)
	})
}
