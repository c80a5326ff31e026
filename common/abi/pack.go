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

	"github.com/n42blockchain/abicore/common/types"
	n42errors "github.com/n42blockchain/abicore/pkg/errors"
)

// EncodePacked implements Solidity's abi.encodePacked: each value is
// concatenated using its minimal non-standard representation rather than
// the standard encoder's fixed 32-byte words. bytes/string are emitted
// raw (no length prefix); fixed-width scalars use their declared byte
// width; arrays, however, pad each element to a full 32-byte word even
// though a bare top-level scalar of the same type would not. Solidity's
// own quirk: a packed int24[2] renders each element left-padded to 32
// bytes.
func EncodePacked(params []AbiParameter, values []interface{}) ([]byte, error) {
	if len(params) != len(values) {
		return nil, n42errors.ErrInvalidParamType
	}
	var out []byte
	for i, p := range params {
		enc, err := packElement(p.Type, values[i], false)
		if err != nil {
			return nil, err
		}
		out = append(out, enc...)
	}
	return out, nil
}

// packElement renders a single value of type t in packed form. inArray
// is true when t is an array's element type, which forces the
// full-32-byte-word padding Solidity applies to array elements.
func packElement(t ParamType, v interface{}, inArray bool) ([]byte, error) {
	switch t.Kind {
	case KindBool:
		b, ok := v.(bool)
		if !ok {
			return nil, n42errors.ErrInvalidParamType
		}
		if inArray {
			word := make([]byte, wordSize)
			if b {
				word[wordSize-1] = 1
			}
			return word, nil
		}
		if b {
			return []byte{1}, nil
		}
		return []byte{0}, nil

	case KindAddress:
		addr, ok := v.(types.Address)
		if !ok {
			return nil, n42errors.ErrInvalidParamType
		}
		if inArray {
			word := make([]byte, wordSize)
			copy(word[wordSize-types.AddressLength:], addr[:])
			return word, nil
		}
		out := make([]byte, types.AddressLength)
		copy(out, addr[:])
		return out, nil

	case KindUint:
		return packUint(v, t.Size, inArray)

	case KindInt:
		return packInt(v, t.Size, inArray)

	case KindFixedBytes:
		b, ok := v.([]byte)
		if !ok {
			return nil, n42errors.ErrInvalidParamType
		}
		if len(b) != t.Size {
			return nil, n42errors.ErrInvalidLength
		}
		if inArray {
			word := make([]byte, wordSize)
			copy(word, b)
			return word, nil
		}
		out := make([]byte, t.Size)
		copy(out, b)
		return out, nil

	case KindString:
		s, ok := v.(string)
		if !ok {
			return nil, n42errors.ErrInvalidParamType
		}
		return []byte(s), nil

	case KindBytes:
		b, ok := v.([]byte)
		if !ok {
			return nil, n42errors.ErrInvalidParamType
		}
		return b, nil

	case KindDynamicArray, KindFixedArray:
		vs, ok := v.([]interface{})
		if !ok {
			return nil, n42errors.ErrInvalidParamType
		}
		if t.Kind == KindFixedArray && len(vs) != t.Size {
			return nil, n42errors.ErrInvalidLength
		}
		var out []byte
		for _, elem := range vs {
			enc, err := packElement(*t.Elem, elem, true)
			if err != nil {
				return nil, err
			}
			out = append(out, enc...)
		}
		return out, nil

	case KindTuple:
		tv, ok := v.(TupleValue)
		if !ok {
			return nil, n42errors.ErrInvalidParamType
		}
		var out []byte
		for i, c := range t.Components {
			val, ok := tv[componentKey(c, i)]
			if !ok {
				return nil, n42errors.ErrInvalidParamType
			}
			enc, err := packElement(c.Type, val, false)
			if err != nil {
				return nil, err
			}
			out = append(out, enc...)
		}
		return out, nil

	default:
		return nil, n42errors.ErrInvalidParamType
	}
}

// packUint renders a non-negative *big.Int fitting bits bits as its
// minimal big-endian byte representation (bits/8 bytes), or as a full
// left-padded 32-byte word when inArray.
func packUint(v interface{}, bits int, inArray bool) ([]byte, error) {
	bi, ok := v.(*big.Int)
	if !ok || bi.Sign() < 0 {
		return nil, n42errors.ErrInvalidParamType
	}
	if bi.BitLen() > bits {
		return nil, n42errors.ErrValueOutOfRange
	}
	width := bits / 8
	if inArray {
		width = wordSize
	}
	out := make([]byte, width)
	bi.FillBytes(out)
	return out, nil
}

// packInt renders a *big.Int fitting the signed range of bits bits as
// its minimal big-endian two's-complement representation (bits/8
// bytes), or as a full sign-extended 32-byte word when inArray.
func packInt(v interface{}, bits int, inArray bool) ([]byte, error) {
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
	width := bits / 8
	if inArray {
		width = wordSize
	}
	repr := bi
	if bi.Sign() < 0 {
		mod := new(big.Int).Lsh(big.NewInt(1), uint(width*8))
		repr = new(big.Int).Add(mod, bi)
	}
	out := make([]byte, width)
	repr.FillBytes(out)
	return out, nil
}
