// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"io"

	"github.com/jax-ravennet/rvnspv/chainhash"
)

// maxInvPerMsg bounds the inventory count decoded from a single inv,
// getdata, or notfound message. All three share this MaxGetdataHashes
// ceiling, and a count above it is a decode error.
const maxInvPerMsg = MaxGetdataHashes

// InvVect represents a single entry of an inv, getdata, or notfound
// message: the type of the referenced object and its hash.
type InvVect struct {
	Type InvType
	Hash chainhash.Hash
}

// NewInvVect returns a new InvVect using the provided type and hash.
func NewInvVect(typ InvType, hash *chainhash.Hash) *InvVect {
	return &InvVect{Type: typ, Hash: *hash}
}

func readInvVect(r io.Reader, iv *InvVect) error {
	var t uint32
	if err := readElement(r, &t); err != nil {
		return err
	}
	iv.Type = InvType(t)
	return readElement(r, iv.Hash[:])
}

func writeInvVect(w io.Writer, iv *InvVect) error {
	if err := writeElement(w, uint32(iv.Type)); err != nil {
		return err
	}
	return writeElement(w, iv.Hash[:])
}

func readInvList(r io.Reader, maxAllowed uint64) ([]*InvVect, error) {
	count, err := ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	if count > maxAllowed {
		return nil, errOversizedInvList(count, maxAllowed)
	}

	list := make([]*InvVect, 0, count)
	for i := uint64(0); i < count; i++ {
		iv := &InvVect{}
		if err := readInvVect(r, iv); err != nil {
			return nil, err
		}
		list = append(list, iv)
	}
	return list, nil
}

func writeInvList(w io.Writer, list []*InvVect) error {
	if err := WriteVarInt(w, uint64(len(list))); err != nil {
		return err
	}
	for _, iv := range list {
		if err := writeInvVect(w, iv); err != nil {
			return err
		}
	}
	return nil
}
