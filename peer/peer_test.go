// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package peer

import (
	"net"
	"testing"
	"time"

	"github.com/jax-ravennet/rvnspv/chainparams"
	"github.com/jax-ravennet/rvnspv/wire"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// newTestPeer builds a Peer wired to one end of a net.Pipe, with its
// runtime goroutines started but without going through Connect/dial (the
// pipe stands in for the TCP socket).
func newTestPeer(t *testing.T, listeners MessageListeners) (*Peer, net.Conn) {
	t.Helper()

	clientConn, remoteConn := net.Pipe()

	p, err := New("127.0.0.1:18444", Config{
		ChainParams: chainparams.RegTestParams,
		Logger:      zerolog.Nop(),
		Listeners:   listeners,
	})
	require.NoError(t, err)

	p.conn = clientConn
	p.startTime = time.Now()
	p.setDeadline(&p.disconnectTime, time.Now().Add(negotiateTimeout))

	go p.stallHandler()
	go p.inHandler()
	go p.queueHandler()
	go p.outHandler()

	t.Cleanup(p.Disconnect)

	return p, remoteConn
}

// remoteVersion builds the version message a simulated remote node sends
// back, using a nonce distinct from whatever the client sends so the
// self-connection check never trips.
func remoteVersion(t *testing.T, remoteConn net.Conn) *wire.MsgVersion {
	t.Helper()
	them := wire.NewNetAddressIPPort(net.ParseIP("127.0.0.1"), 18444, 0)
	us := wire.NewNetAddressIPPort(net.ParseIP("127.0.0.1"), 0, 0)
	msg := wire.NewMsgVersion(them, us, 0xdeadbeef, 100)
	msg.UserAgent = "/test:0.0.1/"
	return msg
}

func TestHandshakeCompletesOnMutualVerAck(t *testing.T) {
	connected := make(chan struct{}, 1)
	p, remoteConn := newTestPeer(t, MessageListeners{
		OnConnected: func(*Peer) { connected <- struct{}{} },
	})

	// net.Pipe writes block until the other end reads, so the version is
	// sent from its own goroutine while this one reads it.
	sendErr := make(chan error, 1)
	go func() { sendErr <- p.sendLocalVersion() }()

	// Drain and validate the client's outbound version message.
	_, msg, _, err := wire.ReadMessage(remoteConn, wire.ProtocolVersion, chainparams.RegTestParams.Net)
	require.NoError(t, err)
	require.NoError(t, <-sendErr)
	gotVersion, ok := msg.(*wire.MsgVersion)
	require.True(t, ok, "expected version message, got %T", msg)
	require.Equal(t, wire.ProtocolVersion, gotVersion.ProtocolVersion)

	// Reply with our own version, then read the client's verack, then
	// send our verack.
	require.NoError(t, wire.WriteMessage(remoteConn, remoteVersion(t, remoteConn),
		wire.ProtocolVersion, chainparams.RegTestParams.Net))

	_, msg, _, err = wire.ReadMessage(remoteConn, wire.ProtocolVersion, chainparams.RegTestParams.Net)
	require.NoError(t, err)
	_, ok = msg.(*wire.MsgVerAck)
	require.True(t, ok, "expected verack, got %T", msg)

	require.NoError(t, wire.WriteMessage(remoteConn, wire.NewMsgVerAck(),
		wire.ProtocolVersion, chainparams.RegTestParams.Net))

	select {
	case <-connected:
	case <-time.After(2 * time.Second):
		t.Fatal("OnConnected never fired")
	}

	require.Equal(t, StatusConnected, p.Status())
	require.True(t, p.handshakeComplete())
}

func TestSelfConnectDisconnects(t *testing.T) {
	disconnected := make(chan struct{}, 1)
	p, remoteConn := newTestPeer(t, MessageListeners{
		OnDisconnected: func(*Peer, error) { disconnected <- struct{}{} },
	})

	sendErr := make(chan error, 1)
	go func() { sendErr <- p.sendLocalVersion() }()

	_, msg, _, err := wire.ReadMessage(remoteConn, wire.ProtocolVersion, chainparams.RegTestParams.Net)
	require.NoError(t, err)
	require.NoError(t, <-sendErr)
	sentVersion := msg.(*wire.MsgVersion)

	// Echo the exact same nonce back: this is what a self-connection
	// looks like on the wire.
	loopback := remoteVersion(t, remoteConn)
	loopback.Nonce = sentVersion.Nonce
	require.NoError(t, wire.WriteMessage(remoteConn, loopback,
		wire.ProtocolVersion, chainparams.RegTestParams.Net))

	select {
	case <-disconnected:
	case <-time.After(2 * time.Second):
		t.Fatal("self-connecting peer was never disconnected")
	}
	require.Equal(t, StatusDisconnected, p.Status())
}

func TestPingPongUpdatesRTT(t *testing.T) {
	p, remoteConn := newTestPeer(t, MessageListeners{})

	type result struct {
		success bool
		rtt     time.Duration
	}
	results := make(chan result, 1)

	go func() {
		_, msg, _, err := wire.ReadMessage(remoteConn, wire.ProtocolVersion, chainparams.RegTestParams.Net)
		if err != nil {
			return
		}
		ping, ok := msg.(*wire.MsgPing)
		if !ok {
			return
		}
		time.Sleep(5 * time.Millisecond)
		_ = wire.WriteMessage(remoteConn, wire.NewMsgPong(ping.Nonce),
			wire.ProtocolVersion, chainparams.RegTestParams.Net)
	}()

	p.SendPing(func(success bool, rtt time.Duration) {
		results <- result{success, rtt}
	})

	select {
	case r := <-results:
		require.True(t, r.success)
		require.Greater(t, r.rtt, time.Duration(0))
	case <-time.After(2 * time.Second):
		t.Fatal("pong callback never fired")
	}

	require.Greater(t, p.PingTime(), time.Duration(0))
}
