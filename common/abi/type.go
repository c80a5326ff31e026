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

// Package abi implements Solidity ABI parameter encoding and decoding: the
// ParamType sum type, the standard head/tail encoder and its inverse
// decoder, the non-standard packed encoder, and selector derivation. The
// eip712 subpackage builds typed-data hashing on top of it.
package abi

import (
	"strconv"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	n42errors "github.com/n42blockchain/abicore/pkg/errors"
)

// Kind discriminates the ParamType sum type's variants.
type Kind int

const (
	KindAddress Kind = iota
	KindBool
	KindString
	KindBytes      // dynamic-length byte string
	KindFixedBytes // fixed-length byte string, 1..32 bytes
	KindInt        // signed integer, Size bits
	KindUint       // unsigned integer, Size bits
	KindDynamicArray
	KindFixedArray
	KindTuple
)

// ParamType is the immutable, tree-shaped description of an ABI
// parameter's type. It owns its children: Elem and Components are never
// shared between two ParamType values constructed independently.
type ParamType struct {
	Kind Kind

	// Size holds bit-width for Int/Uint, byte-width for FixedBytes, and
	// array length for FixedArray. Unused for the other kinds.
	Size int

	// Elem is the element type for DynamicArray and FixedArray.
	Elem *ParamType

	// Components is the field list for Tuple. Required (non-nil)
	// whenever Kind is Tuple; rejected at construction otherwise.
	Components []AbiParameter
}

// AbiParameter is one entry of a parameter list: a type paired with a
// name and, for human-readable ABI JSON round-tripping, an optional
// Solidity-side internal type string. Components mirrors ParamType's own
// Components for tuple types, kept alongside so JSON-shaped ABI items
// decode directly into this struct.
type AbiParameter struct {
	Type         ParamType
	Name         string
	InternalType string
	Components   []AbiParameter
}

// NewAddressType returns the address ParamType.
func NewAddressType() ParamType { return ParamType{Kind: KindAddress} }

// NewBoolType returns the bool ParamType.
func NewBoolType() ParamType { return ParamType{Kind: KindBool} }

// NewStringType returns the string ParamType.
func NewStringType() ParamType { return ParamType{Kind: KindString} }

// NewBytesType returns the dynamic bytes ParamType.
func NewBytesType() ParamType { return ParamType{Kind: KindBytes} }

// NewFixedBytesType returns the bytesN ParamType for 1 <= n <= 32. It
// fails construction with ErrInvalidLength outside that range.
func NewFixedBytesType(n int) (ParamType, error) {
	if n < 1 || n > 32 {
		return ParamType{}, n42errors.ErrInvalidLength
	}
	return ParamType{Kind: KindFixedBytes, Size: n}, nil
}

// NewIntType returns the intN ParamType for N a multiple of 8 in
// [8, 256]. It fails construction with ErrInvalidParamType otherwise.
func NewIntType(bits int) (ParamType, error) {
	if !validBitWidth(bits) {
		return ParamType{}, n42errors.ErrInvalidParamType
	}
	return ParamType{Kind: KindInt, Size: bits}, nil
}

// NewUintType returns the uintN ParamType for N a multiple of 8 in
// [8, 256]. It fails construction with ErrInvalidParamType otherwise.
func NewUintType(bits int) (ParamType, error) {
	if !validBitWidth(bits) {
		return ParamType{}, n42errors.ErrInvalidParamType
	}
	return ParamType{Kind: KindUint, Size: bits}, nil
}

func validBitWidth(bits int) bool {
	return bits >= 8 && bits <= 256 && bits%8 == 0
}

// NewDynamicArrayType returns the T[] ParamType over elem.
func NewDynamicArrayType(elem ParamType) ParamType {
	e := elem
	return ParamType{Kind: KindDynamicArray, Elem: &e}
}

// NewFixedArrayType returns the T[size] ParamType over elem. size must be
// positive.
func NewFixedArrayType(elem ParamType, size int) (ParamType, error) {
	if size <= 0 {
		return ParamType{}, n42errors.ErrInvalidLength
	}
	e := elem
	return ParamType{Kind: KindFixedArray, Elem: &e, Size: size}, nil
}

// NewTupleType returns a tuple ParamType over components. A tuple with no
// components is rejected: Solidity never emits an empty tuple, and
// accepting one here would let a zero-field components slice and a
// nil-components construction error silently collide.
func NewTupleType(components []AbiParameter) (ParamType, error) {
	if len(components) == 0 {
		return ParamType{}, n42errors.ErrInvalidParamType
	}
	cs := make([]AbiParameter, len(components))
	copy(cs, components)
	return ParamType{Kind: KindTuple, Components: cs}, nil
}

// IsDynamic reports whether t's ABI encoding requires head/tail layout:
// true for string, bytes and dynamic arrays; for a tuple with any dynamic
// component; and for a fixed array whose element type is dynamic.
func (t ParamType) IsDynamic() bool {
	switch t.Kind {
	case KindString, KindBytes, KindDynamicArray:
		return true
	case KindTuple:
		for _, c := range t.Components {
			if c.Type.IsDynamic() {
				return true
			}
		}
		return false
	case KindFixedArray:
		return t.Elem.IsDynamic()
	default:
		return false
	}
}

// Equal reports whether t and other describe the same type structurally.
func (t ParamType) Equal(other ParamType) bool {
	if t.Kind != other.Kind || t.Size != other.Size {
		return false
	}
	switch t.Kind {
	case KindDynamicArray, KindFixedArray:
		return t.Elem.Equal(*other.Elem)
	case KindTuple:
		if len(t.Components) != len(other.Components) {
			return false
		}
		for i := range t.Components {
			if !t.Components[i].Type.Equal(other.Components[i].Type) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// typeStringCache memoizes TypeString by a stable identity key so repeat
// encodes of the same ABI item (the common case: one function signature
// hashed on every call) skip re-walking the type tree.
var typeStringCache *lru.Cache[string, string]
var typeStringCacheOnce sync.Once

func getTypeStringCache() *lru.Cache[string, string] {
	typeStringCacheOnce.Do(func() {
		typeStringCache, _ = lru.New[string, string](1024)
	})
	return typeStringCache
}

// TypeString renders t as its canonical Solidity ABI type string, e.g.
// "uint256", "bool[]", "(bool,string)[3]".
func (t ParamType) TypeString() string {
	key := t.cacheKey()
	cache := getTypeStringCache()
	if s, ok := cache.Get(key); ok {
		return s
	}
	s := t.buildTypeString()
	cache.Add(key, s)
	return s
}

// cacheKey produces a structurally-unique string for t, cheap enough to
// build on every call (it's the same tree walk buildTypeString does,
// recursing directly instead of through the cache) so the cache's own key derivation
// never itself becomes the bottleneck it's meant to avoid elsewhere.
func (t ParamType) cacheKey() string {
	var b strings.Builder
	t.writeCacheKey(&b)
	return b.String()
}

func (t ParamType) writeCacheKey(b *strings.Builder) {
	switch t.Kind {
	case KindDynamicArray:
		t.Elem.writeCacheKey(b)
		b.WriteString("[]")
	case KindFixedArray:
		t.Elem.writeCacheKey(b)
		b.WriteByte('[')
		b.WriteString(strconv.Itoa(t.Size))
		b.WriteByte(']')
	case KindTuple:
		b.WriteByte('(')
		for i, c := range t.Components {
			if i > 0 {
				b.WriteByte(',')
			}
			c.Type.writeCacheKey(b)
		}
		b.WriteByte(')')
	default:
		b.WriteString(t.buildTypeString())
	}
}

func (t ParamType) buildTypeString() string {
	switch t.Kind {
	case KindAddress:
		return "address"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	case KindFixedBytes:
		return "bytes" + strconv.Itoa(t.Size)
	case KindInt:
		return "int" + strconv.Itoa(t.Size)
	case KindUint:
		return "uint" + strconv.Itoa(t.Size)
	case KindDynamicArray:
		return t.Elem.TypeString() + "[]"
	case KindFixedArray:
		return t.Elem.TypeString() + "[" + strconv.Itoa(t.Size) + "]"
	case KindTuple:
		var b strings.Builder
		b.WriteByte('(')
		for i, c := range t.Components {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(c.Type.TypeString())
		}
		b.WriteByte(')')
		return b.String()
	default:
		return ""
	}
}

// String implements fmt.Stringer as an alias of TypeString.
func (t ParamType) String() string {
	return t.TypeString()
}

// validateComponents rejects a tuple whose components are known neither
// from t itself nor from components, whether t is a tuple or has a tuple
// nested arbitrarily deep inside array/fixed-array layers: a human-readable ABI JSON item keeps "components" at the
// top-level parameter even when the tuple it describes sits under one or
// more "[]"/"[N]" suffixes, so the check must unwrap those layers before
// deciding whether a tuple is actually present.
func validateComponents(t ParamType, components []AbiParameter) error {
	base := t
	for base.Kind == KindDynamicArray || base.Kind == KindFixedArray {
		base = *base.Elem
	}
	if base.Kind == KindTuple && len(base.Components) == 0 && len(components) == 0 {
		return n42errors.ErrInvalidParamType
	}
	return nil
}

// NewAbiParameter builds an AbiParameter, applying the tuple/components
// consistency check construction requires.
func NewAbiParameter(name string, t ParamType, internalType string, components []AbiParameter) (AbiParameter, error) {
	if err := validateComponents(t, components); err != nil {
		return AbiParameter{}, err
	}
	return AbiParameter{Type: t, Name: name, InternalType: internalType, Components: components}, nil
}
