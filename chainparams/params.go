// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chainparams carries the network-identifying constants a peer needs
// before it can speak to a remote node: the magic number stamped on every
// message envelope, the default TCP port, and the KAWPOW/X16Rv2 activation
// times the header-chain locator engine uses to pick a hashing algorithm.
package chainparams

import "time"

// Net represents which Ravencoin network a message belongs to.
type Net uint32

// Constants used to indicate the message network. They can also be used to
// seek to the next message when a stream's state is unknown, but this
// package does not provide that functionality since it's generally a better
// idea to simply disconnect clients that are misbehaving over TCP.
const (
	// MainNet represents the main Ravencoin network.
	MainNet Net = 0x4e564152

	// TestNet represents the Ravencoin test network.
	TestNet Net = 0x544e5652

	// RegTest represents the Ravencoin regression test network.
	RegTest Net = 0x574f5243
)

var netStrings = map[Net]string{
	MainNet: "MainNet",
	TestNet: "TestNet",
	RegTest: "RegTest",
}

// String returns the Net in human-readable form.
func (n Net) String() string {
	if s, ok := netStrings[n]; ok {
		return s
	}
	return "Unknown Net"
}

// Params groups everything a peer needs to know about the network it is
// about to dial before any bytes have crossed the wire.
type Params struct {
	Net  Net
	Name string

	// DefaultPort is the default peer port for this network.
	DefaultPort string

	// X16Rv2ActivationTime is the first block timestamp, in wire
	// seconds-since-epoch form, mined under the X16Rv2 algorithm rather
	// than the original X16R. Only relevant to legacy (80-byte) headers.
	X16Rv2ActivationTime time.Time

	// KAWPOWActivationTime is the first block timestamp mined under
	// KAWPOW; headers at or after this time use the 120-byte encoding.
	KAWPOWActivationTime time.Time
}

// MainNetParams defines the network parameters for the Ravencoin mainnet.
var MainNetParams = Params{
	Net:                   MainNet,
	Name:                  "mainnet",
	DefaultPort:           "8767",
	X16Rv2ActivationTime:  time.Unix(1569945600, 0), // 2019-10-01T16:00:00Z
	KAWPOWActivationTime:  time.Unix(1588788000, 0), // 2020-05-06T18:00:00Z
}

// TestNetParams defines the network parameters for the Ravencoin testnet.
var TestNetParams = Params{
	Net:                   TestNet,
	Name:                  "testnet",
	DefaultPort:           "18770",
	X16Rv2ActivationTime:  time.Unix(1567533600, 0),
	KAWPOWActivationTime:  time.Unix(1587567600, 0),
}

// RegTestParams defines the network parameters used for local regression
// testing; both activation times are zero so every header is treated as
// KAWPOW, which is how regtest chains are typically mined in development.
var RegTestParams = Params{
	Net:         RegTest,
	Name:        "regtest",
	DefaultPort: "18444",
}
