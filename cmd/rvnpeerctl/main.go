// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Command rvnpeerctl dials a single Ravencoin node and logs its handshake,
// announced inventory, and header-chain progress. It exists to exercise the
// peer core end-to-end; it does not relay transactions, build a wallet, or
// persist anything.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/jax-ravennet/rvnspv/chainhash"
	"github.com/jax-ravennet/rvnspv/config"
	"github.com/jax-ravennet/rvnspv/peer"
	"github.com/jax-ravennet/rvnspv/wire"
)

func main() {
	opts, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := opts.NewLogger()
	params, err := opts.ChainParams()
	if err != nil {
		logger.Fatal().Err(err).Msg("resolving chain params")
	}

	p, err := peer.New(opts.Connect, peer.Config{
		ChainParams:     params,
		Hasher:          stubHasher{},
		Validate:        acceptAllHeaders,
		UserAgent:       wire.DefaultUserAgent,
		Services:        0,
		Proxy:           opts.Proxy,
		TrickleInterval: 10 * time.Second,
		Logger:          logger,
		Listeners: peer.MessageListeners{
			OnConnected: func(p *peer.Peer) {
				logger.Info().Str("addr", p.Host()).Str("ua", p.UserAgent()).
					Int32("last_block", p.LastBlock()).Msg("handshake complete")
				if err := p.SendGetheaders(nil, chainhash.Hash{}); err != nil {
					logger.Error().Err(err).Msg("getheaders")
				}
			},
			OnDisconnected: func(p *peer.Peer, err error) {
				logger.Warn().Str("addr", p.Host()).Err(err).Msg("disconnected")
				os.Exit(0)
			},
			OnRelayedBlock: func(p *peer.Peer, block *wire.MsgMerkleBlock) {
				logger.Info().Str("hash", block.Header.BlockHash().String()).
					Time("time", block.Header.Timestamp).Msg("header accepted")
			},
			OnRelayedPeers: func(p *peer.Peer, addrs []*wire.NetAddress) {
				logger.Info().Int("count", len(addrs)).Msg("addr received")
			},
			OnSetFeePerKb: func(p *peer.Peer, feePerKb int64) {
				logger.Info().Int64("fee_per_kb", feePerKb).Msg("feefilter received")
			},
		},
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("constructing peer")
	}

	if err := p.Connect(); err != nil {
		logger.Fatal().Err(err).Msg("connecting")
	}

	select {}
}

// acceptAllHeaders is a placeholder Validator: real proof-of-work and
// chain-context validation are out of scope for this core and belong to
// whatever wallet or chain-state layer embeds it.
func acceptAllHeaders(*wire.MsgMerkleBlock, time.Time) bool { return true }

// stubHasher is a placeholder PoWHasher: the X16R/X16Rv2/KAWPOW mining
// algorithms themselves are out of scope for this core (see spec
// non-goals). It hashes deterministically so the locator engine's
// ordering logic still runs end-to-end against a real node, without
// claiming to verify proof-of-work.
type stubHasher struct{}

func (stubHasher) X16R(core []byte) chainhash.Hash { return chainhash.HashH(core) }

func (stubHasher) X16Rv2(core []byte) chainhash.Hash { return chainhash.HashH(core) }

func (stubHasher) KawpowHash(coreHash, mixHash chainhash.Hash, nonce uint64) (chainhash.Hash, error) {
	return chainhash.HashH(append(append([]byte{}, coreHash[:]...), mixHash[:]...)), nil
}
