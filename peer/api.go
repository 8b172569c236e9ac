// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package peer

import (
	"time"

	"github.com/jax-ravennet/rvnspv/chainhash"
	"github.com/jax-ravennet/rvnspv/wire"
)

// SendFilterload sends an already-serialized bloom filter to the remote,
// unblocking inv-before-filter and merkleblock-before-filter checks.
func (p *Peer) SendFilterload(filter []byte) error {
	if err := p.QueueMessage(wire.NewMsgFilterLoad(filter), nil); err != nil {
		return err
	}
	p.flagsMtx.Lock()
	p.sentFilter = true
	p.flagsMtx.Unlock()
	return nil
}

// SendMempool requests the remote's mempool contents. cb fires exactly
// once (I5): when the first inv carrying transactions arrives, or when the
// mempool deadline passes, cb is chained through a ping and reports that
// ping's outcome; if the peer disconnects first, cb fires with failure.
func (p *Peer) SendMempool(cb MempoolCallback) error {
	p.mempoolMtx.Lock()
	p.mempoolCb = cb
	p.mempoolMtx.Unlock()
	p.setDeadline(&p.mempoolTime, time.Now().Add(stallResponseTimeout))

	if err := p.QueueMessage(wire.NewMsgMempool(), nil); err != nil {
		return err
	}
	p.flagsMtx.Lock()
	p.sentMempool = true
	p.flagsMtx.Unlock()
	return nil
}

// SendGetheaders requests headers starting after locators, stopping at
// hashStop (the zero hash means "as many as the remote has").
func (p *Peer) SendGetheaders(locators []*chainhash.Hash, hashStop chainhash.Hash) error {
	req := wire.NewMsgGetHeaders()
	for _, h := range locators {
		if err := req.AddBlockLocatorHash(h); err != nil {
			return err
		}
	}
	req.HashStop = hashStop
	return p.QueueMessage(req, nil)
}

// SendGetblocks requests an inv of block hashes starting after locators.
func (p *Peer) SendGetblocks(locators []*chainhash.Hash, hashStop chainhash.Hash) error {
	req := wire.NewMsgGetBlocks()
	for _, h := range locators {
		if err := req.AddBlockLocatorHash(h); err != nil {
			return err
		}
	}
	req.HashStop = hashStop
	if err := p.QueueMessage(req, nil); err != nil {
		return err
	}
	p.flagsMtx.Lock()
	p.sentGetblocks = true
	p.flagsMtx.Unlock()
	return nil
}

// SendInv announces the given tx hashes to the remote.
func (p *Peer) SendInv(txHashes []*chainhash.Hash) error {
	inv := wire.NewMsgInv()
	for _, h := range txHashes {
		inv.AddInvVect(wire.NewInvVect(wire.InvTypeTx, h))
	}
	return p.QueueMessage(inv, nil)
}

// SendGetdata requests the full payloads of the given tx and block hashes.
func (p *Peer) SendGetdata(txHashes, blockHashes []*chainhash.Hash) error {
	gd := wire.NewMsgGetData()
	for _, h := range txHashes {
		gd.AddInvVect(wire.NewInvVect(wire.InvTypeTx, h))
	}
	for _, h := range blockHashes {
		gd.AddInvVect(wire.NewInvVect(wire.InvTypeFilteredBlock, h))
	}
	if err := p.QueueMessage(gd, nil); err != nil {
		return err
	}
	p.flagsMtx.Lock()
	p.sentGetdata = true
	p.flagsMtx.Unlock()
	return nil
}

// SendGetAsset requests Ravencoin asset metadata for name. cb fires at most
// once, with the decoded asset or the not-found sentinel; a second call
// before the first resolves overwrites the pending callback, which then
// never fires, matching this
// core's single-slot asset callback (spec.md §3's "an optional single
// receiveAssetData callback").
func (p *Peer) SendGetAsset(name string, cb AssetCallback) error {
	p.assetMtx.Lock()
	p.assetCb = cb
	p.assetMtx.Unlock()
	return p.QueueMessage(wire.NewMsgGetAssetData(name), nil)
}

// SendGetaddr requests the remote's known peer addresses.
func (p *Peer) SendGetaddr() error {
	if err := p.QueueMessage(wire.NewMsgGetAddr(), nil); err != nil {
		return err
	}
	p.flagsMtx.Lock()
	p.sentGetaddr = true
	p.flagsMtx.Unlock()
	return nil
}

// Free releases the peer's resources. It is only safe to call after
// status==Disconnected; calling it while the reader is still running is a
// caller error.
func (p *Peer) Free() {
	p.statsMtx.Lock()
	p.knownTxHashes = newOrderedHashSet(0)
	p.knownBlockHashes = newOrderedHashSet(wire.MaxGetdataHashes)
	p.currentBlock = nil
	p.statsMtx.Unlock()

	p.pongMtx.Lock()
	p.pongFIFO.Init()
	p.pongMtx.Unlock()
}
