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

package abi

import (
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/n42blockchain/abicore/common/hash"
	"github.com/n42blockchain/abicore/common/types"
)

// CanonicalSignature renders name(type1,type2,...) — the string Keccak256
// is hashed over to derive a selector or event topic.
func CanonicalSignature(name string, types []ParamType) string {
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('(')
	for i, t := range types {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(t.TypeString())
	}
	b.WriteByte(')')
	return b.String()
}

var (
	selectorCache     *lru.Cache[string, [4]byte]
	selectorCacheOnce sync.Once
	selectorGroup     singleflight.Group
)

func getSelectorCache() *lru.Cache[string, [4]byte] {
	selectorCacheOnce.Do(func() {
		selectorCache, _ = lru.New[string, [4]byte](2048)
	})
	return selectorCache
}

// Selector returns the 4-byte function/error selector for the canonical
// signature name(type1,type2,...): the first 4 bytes of its Keccak256
// digest. Concurrent callers requesting the same signature collapse onto
// a single hash computation via singleflight.
func Selector(name string, paramTypes []ParamType) [4]byte {
	sig := CanonicalSignature(name, paramTypes)
	return SelectorFromSignature(sig)
}

// SelectorFromSignature derives a selector directly from an already-built
// canonical signature string, for callers that already have one (e.g.
// parsed from a human-readable ABI entry).
func SelectorFromSignature(sig string) [4]byte {
	cache := getSelectorCache()
	if sel, ok := cache.Get(sig); ok {
		return sel
	}
	v, _, _ := selectorGroup.Do(sig, func() (interface{}, error) {
		digest := hash.Keccak256Bytes([]byte(sig))
		var sel [4]byte
		copy(sel[:], digest[:4])
		cache.Add(sig, sel)
		return sel, nil
	})
	return v.([4]byte)
}

// EventTopic returns the full 32-byte Keccak256 digest of the canonical
// signature name(type1,type2,...), used as an event's indexed topic0.
func EventTopic(name string, paramTypes []ParamType) types.Hash {
	sig := CanonicalSignature(name, paramTypes)
	return hash.Hash([]byte(sig))
}
