// Copyright 2022-2026 The N42 Authors
// This file is part of the N42 library.
//
// The N42 library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The N42 library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the N42 library. If not, see <http://www.gnu.org/licenses/>.

// Package hash provides the keccak256 primitives used throughout the codec
// and transaction layers: raw digests, RLP-prefixed struct hashing, and
// function/event selector derivation all funnel through here.
package hash

import (
	stdhash "hash"
	"sync"

	"github.com/n42blockchain/abicore/common/rlp"
	"github.com/n42blockchain/abicore/common/types"
	"golang.org/x/crypto/sha3"
)

var hasherPool = sync.Pool{
	New: func() interface{} {
		return sha3.NewLegacyKeccak256()
	},
}

// Keccak256Bytes returns the Keccak256 digest of the concatenation of data.
func Keccak256Bytes(data ...[]byte) []byte {
	d := hasherPool.Get().(stdhash.Hash)
	defer hasherPool.Put(d)
	d.Reset()
	for _, b := range data {
		d.Write(b)
	}
	return d.Sum(nil)
}

// Hash returns the Keccak256 digest of data as a types.Hash.
func Hash(data []byte) types.Hash {
	return types.BytesToHash(Keccak256Bytes(data))
}

// RlpHash RLP-encodes val and returns its Keccak256 digest.
func RlpHash(val interface{}) types.Hash {
	b, err := rlp.EncodeToBytes(val)
	if err != nil {
		panic(err)
	}
	return Hash(b)
}

// PrefixedRlpHash RLP-encodes elems as a list, prepends the single type-byte
// prefix to the encoding (the EIP-2718 typed-transaction convention), and
// returns the Keccak256 digest of the result. Passing prefix as a value
// outside [0,255] is a programmer error; typed-transaction prefixes always
// fit in a byte.
func PrefixedRlpHash(prefix byte, elems []interface{}) types.Hash {
	b, err := rlp.EncodeToBytes(elems)
	if err != nil {
		panic(err)
	}
	buf := make([]byte, 0, len(b)+1)
	buf = append(buf, prefix)
	buf = append(buf, b...)
	return Hash(buf)
}
