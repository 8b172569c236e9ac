// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"io"
	"net"
	"time"
)

// NetAddress defines information about a peer on the network: the time it
// was last seen, the services it supports, its IP address, and its port.
// On the wire the IP is always rendered as a 16-byte value (IPv4 addresses
// are v4-mapped-v6) and the port is big-endian, unlike every other integer
// field in the protocol.
type NetAddress struct {
	Timestamp time.Time
	Services  ServiceFlag
	IP        net.IP
	Port      uint16
}

// HasService returns whether the specified service is supported by the
// address.
func (na *NetAddress) HasService(service ServiceFlag) bool {
	return na.Services&service == service
}

// AddService adds service as a supported service of the address.
func (na *NetAddress) AddService(service ServiceFlag) {
	na.Services |= service
}

// NewNetAddressIPPort returns a new NetAddress using the provided IP, port,
// and supported services with defaults for the remaining fields.
func NewNetAddressIPPort(ip net.IP, port uint16, services ServiceFlag) *NetAddress {
	return &NetAddress{
		Timestamp: time.Unix(time.Now().Unix(), 0),
		Services:  services,
		IP:        ip,
		Port:      port,
	}
}

// readNetAddress reads a NetAddress from r. hasTimestamp controls whether a
// leading 4-byte timestamp is present: the version message's embedded
// addresses omit it, while addr-message entries and this codec's other uses
// carry it.
func readNetAddress(r io.Reader, na *NetAddress, hasTimestamp bool) error {
	var ts uint32
	if hasTimestamp {
		if err := readElement(r, &ts); err != nil {
			return err
		}
	}

	var services uint64
	if err := readElement(r, &services); err != nil {
		return err
	}

	var ip [16]byte
	if err := readElement(r, ip[:]); err != nil {
		return err
	}

	var port uint16
	if err := binaryReadUint16BE(r, &port); err != nil {
		return err
	}

	*na = NetAddress{
		Services: ServiceFlag(services),
		IP:       net.IP(ip[:]),
		Port:     port,
	}
	if hasTimestamp {
		na.Timestamp = time.Unix(int64(ts), 0)
	}
	return nil
}

// writeNetAddress writes a NetAddress to w, matching readNetAddress's layout.
func writeNetAddress(w io.Writer, na *NetAddress, hasTimestamp bool) error {
	if hasTimestamp {
		if err := writeElement(w, uint32(na.Timestamp.Unix())); err != nil {
			return err
		}
	}

	if err := writeElement(w, uint64(na.Services)); err != nil {
		return err
	}

	var ip [16]byte
	if na.IP != nil {
		copy(ip[:], na.IP.To16())
	}
	if err := writeElement(w, ip[:]); err != nil {
		return err
	}

	return binaryWriteUint16BE(w, na.Port)
}

func binaryReadUint16BE(r io.Reader, v *uint16) error {
	var buf [2]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return err
	}
	*v = uint16(buf[0])<<8 | uint16(buf[1])
	return nil
}

func binaryWriteUint16BE(w io.Writer, v uint16) error {
	buf := [2]byte{byte(v >> 8), byte(v)}
	_, err := w.Write(buf[:])
	return err
}
