// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"strconv"
	"strings"
)

// Bit-exact protocol constants.
const (
	// ProtocolVersion is the version advertised in the outbound version
	// message.
	ProtocolVersion uint32 = 70027

	// MinAcceptableProtocolVersion is the lowest remote protocol version
	// this codec will negotiate with.
	MinAcceptableProtocolVersion uint32 = 70026

	// EnabledServices are the services this node advertises in its own
	// version message: none, since this core is an SPV leaf, not a
	// relaying full node.
	EnabledServices ServiceFlag = 0

	// MaxMessagePayload is the maximum bytes a message payload may be,
	// enforced on both read and write.
	MaxMessagePayload = 0x0200_0000 // 32 MiB

	// MaxGetdataHashes bounds the known-block-hash set and any single
	// inv/getdata/notfound collection.
	MaxGetdataHashes = 50_000

	// CommandSize is the fixed width of the command field in a message
	// header.
	CommandSize = 12

	// MessageHeaderSize is the number of bytes in a message header:
	// 4 byte magic + 12 byte command + 4 byte payload length + 4 byte
	// checksum.
	MessageHeaderSize = 24
)

// ServiceFlag identifies services supported by a peer.
type ServiceFlag uint64

const (
	// SFNodeNetwork indicates a peer is a full node serving the complete
	// block chain.
	SFNodeNetwork ServiceFlag = 1 << iota

	// SFNodeGetUTXO indicates a peer supports the getutxos/utxos
	// commands (BIP0064).
	SFNodeGetUTXO

	// SFNodeBloom indicates a peer supports bloom filtering.
	SFNodeBloom

	// SFNodeWitness indicates a peer supports blocks and transactions
	// including witness data (BIP0144).
	SFNodeWitness

	// SFNodeXthin indicates a peer supports xthin blocks.
	SFNodeXthin

	// SFNodeCF indicates a peer supports committed filters.
	SFNodeCF
)

var sfStrings = map[ServiceFlag]string{
	SFNodeNetwork: "SFNodeNetwork",
	SFNodeGetUTXO: "SFNodeGetUTXO",
	SFNodeBloom:   "SFNodeBloom",
	SFNodeWitness: "SFNodeWitness",
	SFNodeXthin:   "SFNodeXthin",
	SFNodeCF:      "SFNodeCF",
}

var orderedSFStrings = []ServiceFlag{
	SFNodeNetwork,
	SFNodeGetUTXO,
	SFNodeBloom,
	SFNodeWitness,
	SFNodeXthin,
	SFNodeCF,
}

// String returns the ServiceFlag in human-readable form.
func (f ServiceFlag) String() string {
	if f == 0 {
		return "0x0"
	}

	s := ""
	for _, flag := range orderedSFStrings {
		if f&flag == flag {
			s += sfStrings[flag] + "|"
			f -= flag
		}
	}

	s = strings.TrimRight(s, "|")
	if f != 0 {
		s += "|0x" + strconv.FormatUint(uint64(f), 16)
	}
	return strings.TrimLeft(s, "|")
}

// InvType represents the type of inventory item announced in an inv,
// getdata, or notfound message.
type InvType uint32

// Inventory type identifiers matching the wire constants.
const (
	InvTypeTx            InvType = 1
	InvTypeBlock         InvType = 2
	InvTypeFilteredBlock InvType = 3
)

var ivStrings = map[InvType]string{
	InvTypeTx:            "MSG_TX",
	InvTypeBlock:         "MSG_BLOCK",
	InvTypeFilteredBlock: "MSG_FILTERED_BLOCK",
}

// String returns the InvType in human-readable form.
func (t InvType) String() string {
	if s, ok := ivStrings[t]; ok {
		return s
	}
	return "Unknown InvType (" + strconv.FormatUint(uint64(t), 10) + ")"
}
