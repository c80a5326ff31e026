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
	"math/big"

	"github.com/holiman/uint256"

	"github.com/n42blockchain/abicore/common/types"
	n42errors "github.com/n42blockchain/abicore/pkg/errors"
)

const wordSize = 32

// EncodeParameters encodes values against params using the standard ABI
// head/tail layout: one 32-byte head slot per parameter, with dynamic
// parameters' bodies appended to a tail region and referenced by a
// head-slot offset. Output length is always a multiple of 32 bytes.
func EncodeParameters(params []AbiParameter, values []interface{}) ([]byte, error) {
	if len(params) != len(values) {
		return nil, n42errors.ErrInvalidParamType
	}
	types := make([]ParamType, len(params))
	for i, p := range params {
		types[i] = p.Type
	}
	return encodeParamList(types, values)
}

// EncodeFunctionCall prepends name's 4-byte selector to the standard
// encoding of params/values, producing a ready-to-send calldata payload.
func EncodeFunctionCall(name string, params []AbiParameter, values []interface{}) ([]byte, error) {
	types := make([]ParamType, len(params))
	for i, p := range params {
		types[i] = p.Type
	}
	body, err := EncodeParameters(params, values)
	if err != nil {
		return nil, err
	}
	sel := Selector(name, types)
	out := make([]byte, 0, 4+len(body))
	out = append(out, sel[:]...)
	return append(out, body...), nil
}

// encodeParamList is the core head/tail encoder, shared by top-level
// parameter lists, tuple components, and the N repeated element types a
// fixed- or dynamic-array expands to. Offsets it writes are always
// relative to this call's own head start, which is what makes nested
// dynamic layouts compose correctly.
func encodeParamList(types []ParamType, values []interface{}) ([]byte, error) {
	if len(types) != len(values) {
		return nil, n42errors.ErrInvalidParamType
	}
	heads := make([][]byte, len(types))
	bodies := make([][]byte, len(types))

	headSize := 0
	for i, t := range types {
		if t.IsDynamic() {
			headSize += wordSize
			continue
		}
		enc, err := encodeElement(t, values[i])
		if err != nil {
			return nil, err
		}
		heads[i] = enc
		headSize += len(enc)
	}

	offset := headSize
	for i, t := range types {
		if !t.IsDynamic() {
			continue
		}
		enc, err := encodeElement(t, values[i])
		if err != nil {
			return nil, err
		}
		bodies[i] = enc
		heads[i] = encodeLength(uint64(offset))
		offset += len(enc)
	}

	out := make([]byte, 0, offset)
	for _, h := range heads {
		out = append(out, h...)
	}
	for _, b := range bodies {
		out = append(out, b...)
	}
	return out, nil
}

// encodeElement encodes a single value of type t to its complete
// inline form: for a static type this is what appears directly in a
// head slot (one word, or several for a static tuple/fixed-array); for a
// dynamic type this is the body that a head-slot offset points to.
func encodeElement(t ParamType, v interface{}) ([]byte, error) {
	switch t.Kind {
	case KindBool:
		b, ok := v.(bool)
		if !ok {
			return nil, n42errors.ErrInvalidParamType
		}
		word := make([]byte, wordSize)
		if b {
			word[wordSize-1] = 1
		}
		return word, nil

	case KindAddress:
		addr, ok := v.(types.Address)
		if !ok {
			return nil, n42errors.ErrInvalidParamType
		}
		word := make([]byte, wordSize)
		copy(word[wordSize-types.AddressLength:], addr[:])
		return word, nil

	case KindUint:
		return encodeUintWord(v, t.Size)

	case KindInt:
		return encodeIntWord(v, t.Size)

	case KindFixedBytes:
		b, ok := v.([]byte)
		if !ok {
			return nil, n42errors.ErrInvalidParamType
		}
		if len(b) != t.Size {
			return nil, n42errors.ErrInvalidLength
		}
		word := make([]byte, wordSize)
		copy(word, b)
		return word, nil

	case KindString:
		s, ok := v.(string)
		if !ok {
			return nil, n42errors.ErrInvalidParamType
		}
		return encodeBytesLike([]byte(s)), nil

	case KindBytes:
		b, ok := v.([]byte)
		if !ok {
			return nil, n42errors.ErrInvalidParamType
		}
		return encodeBytesLike(b), nil

	case KindDynamicArray:
		vs, ok := v.([]interface{})
		if !ok {
			return nil, n42errors.ErrInvalidParamType
		}
		body, err := encodeParamList(repeatType(*t.Elem, len(vs)), vs)
		if err != nil {
			return nil, err
		}
		out := make([]byte, 0, wordSize+len(body))
		out = append(out, encodeLength(uint64(len(vs)))...)
		return append(out, body...), nil

	case KindFixedArray:
		vs, ok := v.([]interface{})
		if !ok {
			return nil, n42errors.ErrInvalidParamType
		}
		if len(vs) != t.Size {
			return nil, n42errors.ErrInvalidLength
		}
		return encodeParamList(repeatType(*t.Elem, len(vs)), vs)

	case KindTuple:
		tv, ok := v.(TupleValue)
		if !ok {
			return nil, n42errors.ErrInvalidParamType
		}
		vals := make([]interface{}, len(t.Components))
		for i, c := range t.Components {
			val, ok := tv[componentKey(c, i)]
			if !ok {
				return nil, n42errors.ErrInvalidParamType
			}
			vals[i] = val
		}
		return encodeParamList(componentTypes(t.Components), vals)

	default:
		return nil, n42errors.ErrInvalidParamType
	}
}

// encodeLength renders n as a 32-byte big-endian word: the encoding
// length-prefixes and offsets both use.
func encodeLength(n uint64) []byte {
	word := make([]byte, wordSize)
	new(uint256.Int).SetUint64(n).WriteToSlice(word)
	return word
}

// encodeUintWord renders v, a non-negative *big.Int fitting in bits, as a
// 32-byte big-endian left-padded word.
func encodeUintWord(v interface{}, bits int) ([]byte, error) {
	bi, ok := v.(*big.Int)
	if !ok || bi.Sign() < 0 {
		return nil, n42errors.ErrInvalidParamType
	}
	if bi.BitLen() > bits {
		return nil, n42errors.ErrValueOutOfRange
	}
	u, overflow := uint256.FromBig(bi)
	if overflow {
		return nil, n42errors.ErrValueOutOfRange
	}
	word := make([]byte, wordSize)
	u.WriteToSlice(word)
	return word, nil
}

// encodeIntWord renders v, a *big.Int fitting the signed range of bits,
// as a 32-byte big-endian two's-complement sign-extended word.
func encodeIntWord(v interface{}, bits int) ([]byte, error) {
	bi, ok := v.(*big.Int)
	if !ok {
		return nil, n42errors.ErrInvalidParamType
	}
	half := new(big.Int).Lsh(big.NewInt(1), uint(bits-1))
	min := new(big.Int).Neg(half)
	max := new(big.Int).Sub(half, big.NewInt(1))
	if bi.Cmp(min) < 0 || bi.Cmp(max) > 0 {
		return nil, n42errors.ErrValueOutOfRange
	}
	repr := bi
	if bi.Sign() < 0 {
		mod := new(big.Int).Lsh(big.NewInt(1), 256)
		repr = new(big.Int).Add(mod, bi)
	}
	u, overflow := uint256.FromBig(repr)
	if overflow {
		return nil, n42errors.ErrValueOutOfRange
	}
	word := make([]byte, wordSize)
	u.WriteToSlice(word)
	return word, nil
}

// encodeBytesLike renders b as a 32-byte length word followed by b
// right-padded with zeros to the next 32-byte multiple.
func encodeBytesLike(b []byte) []byte {
	lenWord := encodeLength(uint64(len(b)))
	out := make([]byte, 0, wordSize+padded32Len(len(b)))
	out = append(out, lenWord...)
	padded := make([]byte, padded32Len(len(b)))
	copy(padded, b)
	return append(out, padded...)
}

// padded32Len rounds n up to the nearest multiple of 32.
func padded32Len(n int) int {
	if n%wordSize == 0 {
		return n
	}
	return n + (wordSize - n%wordSize)
}
