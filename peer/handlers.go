// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package peer

import (
	"sync/atomic"
	"time"

	"github.com/jax-ravennet/rvnspv/chainhash"
	"github.com/jax-ravennet/rvnspv/wire"
	"github.com/pkg/errors"
)

const maxTxPerInv = 10000

// dispatch routes a decoded message to its handler. A returned error is a
// protocol violation and terminates the connection (inHandler's caller
// treats it as fatal).
func (p *Peer) dispatch(msg wire.Message) error {
	// Dispatch precondition (spec.md §4.2): a pending merkleblock is
	// abandoned by any non-tx message, and that abandonment is itself a
	// protocol error, even though the new message is still processed.
	var abandoned bool
	if msg.Command() != wire.CmdTx {
		p.statsMtx.Lock()
		abandoned = p.currentBlock != nil
		p.currentBlock = nil
		p.statsMtx.Unlock()
	}

	var err error
	switch m := msg.(type) {
	case *wire.MsgVersion:
		err = p.handleRemoteVersion(m)
	case *wire.MsgVerAck:
		err = p.handleVerAck()
	case *wire.MsgAddr:
		err = p.handleAddr(m)
	case *wire.MsgInv:
		err = p.handleInv(m)
	case *wire.MsgTx:
		err = p.handleTx(m)
	case *wire.MsgHeaders:
		err = p.handleHeaders(m)
	case *wire.MsgGetAddr:
		err = p.QueueMessage(wire.NewMsgAddr(), nil)
	case *wire.MsgGetData:
		err = p.handleGetData(m)
	case *wire.MsgNotFound:
		err = p.handleNotFound(m)
	case *wire.MsgPing:
		err = p.handlePing(m)
	case *wire.MsgPong:
		err = p.handlePong(m)
	case *wire.MsgMerkleBlock:
		err = p.handleMerkleBlock(m)
	case *wire.MsgReject:
		err = p.handleReject(m)
	case *wire.MsgFeeFilter:
		err = p.handleFeeFilter(m)
	case *wire.MsgAssetData:
		err = p.handleAssetData(m)
	case *wire.MsgAssetNotFound:
		err = p.handleAssetNotFound(m)
	default:
		// getheaders/getblocks/getassetdata/filterload/mempool are
		// outbound-only from this core's perspective; receiving one is
		// simply ignored.
	}
	if err != nil {
		return err
	}
	if abandoned {
		return errors.New("merkleblock abandoned by non-tx message")
	}
	return nil
}

func (p *Peer) handleVerAck() error {
	p.flagsMtx.Lock()
	p.gotVerack = true
	p.flagsMtx.Unlock()
	p.maybeFireConnected()
	return nil
}

func (p *Peer) handleAddr(m *wire.MsgAddr) error {
	p.flagsMtx.Lock()
	requested := p.sentGetaddr
	p.flagsMtx.Unlock()
	if !requested {
		return nil // unsolicited addr: ignored, not fatal
	}
	if len(m.AddrList) > wire.MaxAddrPerMsg {
		// Decode already drops an over-limit addr to an empty AddrList;
		// this guards callers that hand the handler a MsgAddr directly.
		return nil
	}

	now := time.Now()
	var out []*wire.NetAddress
	for _, na := range m.AddrList {
		if !na.HasService(wire.SFNodeNetwork) {
			continue
		}
		if len(na.IP) != 0 && na.IP.To4() == nil {
			continue
		}
		ts := na.Timestamp
		if ts.After(now.Add(10*time.Minute)) || ts.IsZero() {
			ts = now.Add(-5 * 24 * time.Hour)
		}
		ts = ts.Add(-2 * time.Hour)
		out = append(out, &wire.NetAddress{Timestamp: ts, Services: na.Services, IP: na.IP, Port: na.Port})
	}

	if p.cfg.Listeners.OnRelayedPeers != nil {
		p.cfg.Listeners.OnRelayedPeers(p, out)
	}
	return nil
}

func (p *Peer) handleInv(m *wire.MsgInv) error {
	if len(m.InvList) > wire.MaxGetdataHashes {
		return errors.New("inv exceeds MAX_GETDATA_HASHES")
	}

	p.flagsMtx.Lock()
	filterOrMempoolOrBlocksSent := p.sentFilter || p.sentMempool || p.sentGetblocks
	p.flagsMtx.Unlock()

	var txCount, blockCount int
	for _, iv := range m.InvList {
		switch iv.Type {
		case wire.InvTypeTx:
			txCount++
		case wire.InvTypeBlock, wire.InvTypeFilteredBlock:
			blockCount++
		}
	}

	if txCount > 0 && !filterOrMempoolOrBlocksSent {
		return errors.New("got inv before filter")
	}
	if txCount > maxTxPerInv {
		return errors.New("inv tx count exceeds limit")
	}

	height := atomic.LoadInt32(&p.currentBlockHeight)
	if height > 0 && blockCount > 2 && blockCount < 500 {
		if height+int32(blockCount) < p.lastBlock {
			return errors.New("non-standard inv batch")
		}
	}

	p.statsMtx.Lock()
	var onlyBlock *chainhash.Hash
	blockSeen := 0
	for _, iv := range m.InvList {
		if iv.Type == wire.InvTypeBlock || iv.Type == wire.InvTypeFilteredBlock {
			blockSeen++
			h := iv.Hash
			onlyBlock = &h
		}
	}
	if blockSeen == 1 && p.lastBlockHash != nil && *onlyBlock == *p.lastBlockHash {
		blockCount = 0
	} else if blockSeen == 1 {
		p.lastBlockHash = onlyBlock
	}
	p.statsMtx.Unlock()

	needsFilter := p.needsFilter()

	var getdata *wire.MsgGetData
	var firstBlockHash, lastBlockSeen *chainhash.Hash
	for _, iv := range m.InvList {
		switch iv.Type {
		case wire.InvTypeBlock, wire.InvTypeFilteredBlock:
			h := iv.Hash
			if firstBlockHash == nil {
				firstBlockHash = &h
			}
			lastBlockSeen = &h

			p.statsMtx.Lock()
			p.knownBlockHashes.Add(iv.Hash)
			p.statsMtx.Unlock()

			if needsFilter || blockCount == 0 {
				continue
			}
			if getdata == nil {
				getdata = wire.NewMsgGetData()
			}
			getdata.AddInvVect(wire.NewInvVect(wire.InvTypeFilteredBlock, &h))

		case wire.InvTypeTx:
			p.statsMtx.Lock()
			known := p.knownTxHashes.Has(iv.Hash)
			p.statsMtx.Unlock()

			if known {
				if p.cfg.Listeners.OnHasTx != nil {
					h := iv.Hash
					p.cfg.Listeners.OnHasTx(p, &h)
				}
				continue
			}
			if getdata == nil {
				getdata = wire.NewMsgGetData()
			}
			ivCopy := *iv
			getdata.AddInvVect(&ivCopy)
		}
	}
	if getdata != nil {
		if err := p.QueueMessage(getdata, nil); err != nil {
			return err
		}
		p.flagsMtx.Lock()
		p.sentGetdata = true
		p.flagsMtx.Unlock()
	}

	if blockCount >= 500 && lastBlockSeen != nil && firstBlockHash != nil {
		req := wire.NewMsgGetBlocks()
		req.AddBlockLocatorHash(lastBlockSeen)
		req.AddBlockLocatorHash(firstBlockHash)
		p.QueueMessage(req, nil)
	}

	if txCount > 0 {
		p.mempoolMtx.Lock()
		cb := p.mempoolCb
		p.mempoolCb = nil
		p.mempoolMtx.Unlock()
		if cb != nil {
			p.setDeadline(&p.mempoolTime, time.Time{})
			p.SendPing(func(success bool, _ time.Duration) { cb(success) })
		}
	}

	return nil
}

func (p *Peer) handleTx(m *wire.MsgTx) error {
	p.flagsMtx.Lock()
	ready := p.sentFilter || p.sentGetdata
	p.flagsMtx.Unlock()
	if !ready {
		return errors.New("got tx before filter/getdata")
	}

	if p.cfg.Listeners.OnRelayedTx != nil {
		p.cfg.Listeners.OnRelayedTx(p, m.RawTx)
	}

	p.statsMtx.Lock()
	cur := p.currentBlock
	if cur != nil {
		hash := chainhash.HashH(m.RawTx)
		if _, ok := cur.pendingHashes[hash]; ok {
			delete(cur.pendingHashes, hash)
		}
		if len(cur.pendingHashes) == 0 {
			p.currentBlock = nil
		}
	}
	p.statsMtx.Unlock()

	if cur != nil && len(cur.pendingHashes) == 0 {
		if p.cfg.Listeners.OnRelayedBlock != nil {
			p.cfg.Listeners.OnRelayedBlock(p, cur.block)
		}
	}
	return nil
}

func (p *Peer) handleHeaders(m *wire.MsgHeaders) error {
	result, err := p.engine.ProcessHeaders(m)
	if err != nil {
		return err
	}
	if len(result.Locators) != 2 {
		return nil
	}

	if result.UseGetBlocks {
		req := wire.NewMsgGetBlocks()
		req.AddBlockLocatorHash(result.Locators[0])
		req.AddBlockLocatorHash(result.Locators[1])
		p.flagsMtx.Lock()
		p.sentGetblocks = true
		p.flagsMtx.Unlock()
		return p.QueueMessage(req, nil)
	}

	req := wire.NewMsgGetHeaders()
	req.AddBlockLocatorHash(result.Locators[0])
	req.AddBlockLocatorHash(result.Locators[1])
	return p.QueueMessage(req, nil)
}

func (p *Peer) handleGetData(m *wire.MsgGetData) error {
	nf := wire.NewMsgNotFound()
	for _, iv := range m.InvList {
		if iv.Type == wire.InvTypeTx && p.cfg.Listeners.OnRequestedTx != nil {
			h := iv.Hash
			if raw := p.cfg.Listeners.OnRequestedTx(p, &h); raw != nil && len(raw) < wire.MaxTxPayload {
				if err := p.QueueMessage(wire.NewMsgTx(raw), nil); err != nil {
					return err
				}
				continue
			}
		}
		ivCopy := *iv
		nf.AddInvVect(&ivCopy)
	}
	if len(nf.InvList) > 0 {
		return p.QueueMessage(nf, nil)
	}
	return nil
}

func (p *Peer) handleNotFound(m *wire.MsgNotFound) error {
	var txHashes, blockHashes []*chainhash.Hash
	for _, iv := range m.InvList {
		h := iv.Hash
		switch iv.Type {
		case wire.InvTypeTx:
			txHashes = append(txHashes, &h)
		case wire.InvTypeBlock, wire.InvTypeFilteredBlock:
			blockHashes = append(blockHashes, &h)
		}
	}
	if p.cfg.Listeners.OnNotFound != nil {
		p.cfg.Listeners.OnNotFound(p, txHashes, blockHashes)
	}
	return nil
}

func (p *Peer) handlePing(m *wire.MsgPing) error {
	return p.QueueMessage(wire.NewMsgPong(m.Nonce), nil)
}

func (p *Peer) handlePong(m *wire.MsgPong) error {
	p.pongMtx.Lock()
	front := p.pongFIFO.Front()
	if front == nil {
		p.pongMtx.Unlock()
		return wire.ErrUnexpectedPong
	}
	entry := front.Value.(*pendingPong)
	p.pongFIFO.Remove(front)
	p.pongMtx.Unlock()

	if m.Nonce != entry.nonce {
		return errors.Errorf("pong nonce mismatch: got %d, expected %d", m.Nonce, entry.nonce)
	}

	rtt := time.Since(entry.startTime)
	old := time.Duration(atomic.LoadInt64(&p.pingTimeNanos))
	next := time.Duration(0.5*float64(old) + 0.5*float64(rtt))
	atomic.StoreInt64(&p.pingTimeNanos, int64(next))

	if entry.cb != nil {
		entry.cb(true, rtt)
	}
	return nil
}

func (p *Peer) handleMerkleBlock(m *wire.MsgMerkleBlock) error {
	p.flagsMtx.Lock()
	ready := p.sentFilter && p.sentGetdata
	p.flagsMtx.Unlock()
	if !ready {
		return errors.New("got merkleblock before filter/getdata")
	}

	now := time.Now()
	if p.cfg.Validate != nil && !p.cfg.Validate(m, now) {
		return errors.New("invalid merkleblock")
	}

	pending := make(map[chainhash.Hash]struct{}, len(m.Hashes))
	p.statsMtx.Lock()
	for i := len(m.Hashes) - 1; i >= 0; i-- {
		h := *m.Hashes[i]
		if !p.knownTxHashes.Has(h) {
			pending[h] = struct{}{}
		}
	}
	p.statsMtx.Unlock()

	if len(pending) == 0 {
		if p.cfg.Listeners.OnRelayedBlock != nil {
			p.cfg.Listeners.OnRelayedBlock(p, m)
		}
		return nil
	}

	p.statsMtx.Lock()
	p.currentBlock = &pendingMerkleBlock{block: m, pendingHashes: pending}
	p.statsMtx.Unlock()
	return nil
}

func (p *Peer) handleReject(m *wire.MsgReject) error {
	if m.Cmd == wire.CmdTx && p.cfg.Listeners.OnRejectedTx != nil {
		h := m.Hash
		p.cfg.Listeners.OnRejectedTx(p, &h, m.Code)
	}
	return nil
}

func (p *Peer) handleFeeFilter(m *wire.MsgFeeFilter) error {
	p.statsMtx.Lock()
	p.feePerKb = m.MinFee
	p.statsMtx.Unlock()
	if p.cfg.Listeners.OnSetFeePerKb != nil {
		p.cfg.Listeners.OnSetFeePerKb(p, m.MinFee)
	}
	return nil
}

func (p *Peer) handleAssetData(m *wire.MsgAssetData) error {
	p.assetMtx.Lock()
	cb := p.assetCb
	p.assetCb = nil
	p.assetMtx.Unlock()
	if cb != nil {
		cb(m)
	}
	return nil
}

func (p *Peer) handleAssetNotFound(m *wire.MsgAssetNotFound) error {
	p.assetMtx.Lock()
	cb := p.assetCb
	p.assetCb = nil
	p.assetMtx.Unlock()
	if cb != nil {
		cb(wire.NewMsgAssetDataNotFound())
	}
	return nil
}
