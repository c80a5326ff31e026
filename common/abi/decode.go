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

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/n42blockchain/abicore/common/encoding"
	"github.com/n42blockchain/abicore/common/types"
	n42errors "github.com/n42blockchain/abicore/pkg/errors"
)

// DecodeOptions configures a decode call's DoS-resistance and
// trailing-data policy. Build one with DefaultDecodeOptions and the
// With* functional options below.
type DecodeOptions struct {
	// MaxBytes caps the total bytes the decoder may read while walking
	// offsets and lengths (the "quadratic offset" attack guard).
	MaxBytes uint64
	// AllowJunkData, when true, ignores bytes left over after the
	// declared parameter list has been fully consumed. When false
	// (the default) leftover bytes fail with ErrJunkData.
	AllowJunkData bool
}

// DefaultMaxBytes is the decoder's default bytes_read budget.
const DefaultMaxBytes = 1024

// DefaultDecodeOptions returns a 1024-byte budget with junk data
// rejected.
func DefaultDecodeOptions() DecodeOptions {
	return DecodeOptions{MaxBytes: DefaultMaxBytes, AllowJunkData: false}
}

// DecodeOption mutates a DecodeOptions in place.
type DecodeOption func(*DecodeOptions)

// WithMaxBytes overrides the default bytes_read budget.
func WithMaxBytes(n uint64) DecodeOption {
	return func(o *DecodeOptions) { o.MaxBytes = n }
}

// WithAllowJunkData overrides the default junk-data rejection.
func WithAllowJunkData(allow bool) DecodeOption {
	return func(o *DecodeOptions) { o.AllowJunkData = allow }
}

// decodeBudget tracks cumulative bytes consumed across a single decode
// call's recursive descent, independent of the input slice's own length,
// so a small input that claims enormous nested lengths still fails fast
// rather than looping over attacker-controlled offsets.
type decodeBudget struct {
	max  uint64
	read uint64
}

func newDecodeBudget(max uint64) *decodeBudget {
	return &decodeBudget{max: max}
}

func (b *decodeBudget) charge(n uint64) error {
	b.read += n
	if b.read > b.max {
		bufferOverrunTotal.Inc()
		return n42errors.ErrBufferOverrun
	}
	return nil
}

// chargeElements charges the budget for n elements of perElem bytes each
// before the caller allocates anything sized by n, so a declared array
// length is bounds-checked against max_bytes even when the input backing
// it is far too small to actually hold n elements (the quadratic-offset
// and oversized-length-word attack class).
// The multiplication is guarded against uint64 overflow: an n this large
// is rejected as an overrun regardless of the true product.
func (b *decodeBudget) chargeElements(n uint64, perElem uint64) error {
	if perElem != 0 && n > (^uint64(0))/perElem {
		bufferOverrunTotal.Inc()
		return n42errors.ErrBufferOverrun
	}
	return b.charge(n * perElem)
}

// DecodeParameters decodes data (no selector prefix) against params,
// using opts (DefaultDecodeOptions if none given). The returned arena
// owns every []byte leaf in the result tree (bytes/fixedBytes values);
// callers must call arena.Release() once they are done reading it.
func DecodeParameters(params []AbiParameter, data []byte, opts ...DecodeOption) ([]interface{}, *encoding.Arena, error) {
	o := DefaultDecodeOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if len(data)%32 != 0 {
		return nil, nil, n42errors.ErrInvalidDecodeDataSize
	}
	types := make([]ParamType, len(params))
	headSize := 0
	for i, p := range params {
		types[i] = p.Type
		if p.Type.IsDynamic() {
			headSize += wordSize
		} else {
			headSize += staticSize(p.Type)
		}
	}
	if len(data) < headSize {
		return nil, nil, n42errors.ErrInvalidDecodeDataSize
	}

	arena := encoding.NewArena()
	budget := newDecodeBudget(o.MaxBytes)
	vals, consumed, err := decodeParamList(types, data, arena, budget)
	if err != nil {
		arena.Release()
		return nil, nil, err
	}
	if !o.AllowJunkData && consumed < uint64(len(data)) {
		arena.Release()
		junkDataTotal.Inc()
		return nil, nil, n42errors.ErrJunkData
	}
	return vals, arena, nil
}

// DecodeFunctionCall verifies data's leading 4-byte selector against
// name/params before decoding the remainder, failing with
// ErrInvalidAbiSignature on mismatch.
func DecodeFunctionCall(name string, params []AbiParameter, data []byte, opts ...DecodeOption) ([]interface{}, *encoding.Arena, error) {
	return decodeSelectorPrefixed(name, params, data, opts...)
}

// DecodeError decodes a revert payload. Error selectors are derived from
// the canonical signature exactly like function selectors, so the check
// is shared with DecodeFunctionCall.
func DecodeError(name string, params []AbiParameter, data []byte, opts ...DecodeOption) ([]interface{}, *encoding.Arena, error) {
	return decodeSelectorPrefixed(name, params, data, opts...)
}

// DecodeConstructor decodes constructor arguments. Constructor payloads
// carry no selector (they are appended raw after the creation bytecode),
// so this is DecodeParameters under a name that states the intent.
func DecodeConstructor(params []AbiParameter, data []byte, opts ...DecodeOption) ([]interface{}, *encoding.Arena, error) {
	return DecodeParameters(params, data, opts...)
}

func decodeSelectorPrefixed(name string, params []AbiParameter, data []byte, opts ...DecodeOption) ([]interface{}, *encoding.Arena, error) {
	if len(data) < 4 {
		return nil, nil, n42errors.ErrInvalidDecodeDataSize
	}
	types := make([]ParamType, len(params))
	for i, p := range params {
		types[i] = p.Type
	}
	want := Selector(name, types)
	var got [4]byte
	copy(got[:], data[:4])
	if got != want {
		return nil, nil, n42errors.ErrInvalidAbiSignature
	}
	return DecodeParameters(params, data[4:], opts...)
}

// staticSize returns the inline byte width of a static (non-dynamic)
// type's encoding. Callers must not invoke this on a dynamic type.
func staticSize(t ParamType) int {
	switch t.Kind {
	case KindFixedArray:
		return t.Size * staticSize(*t.Elem)
	case KindTuple:
		sz := 0
		for _, c := range t.Components {
			sz += staticSize(c.Type)
		}
		return sz
	default:
		return wordSize
	}
}

// decodeParamList decodes types from listData, which holds this list's
// own head region immediately followed by its tail region (mirroring
// encodeParamList's output layout); dynamic offsets read from the head
// are relative to listData[0]. It returns the decoded values plus the
// highest byte offset actually consumed, the caller's signal for
// junk-data detection at the top level.
func decodeParamList(types []ParamType, listData []byte, arena *encoding.Arena, budget *decodeBudget) ([]interface{}, uint64, error) {
	results := make([]interface{}, len(types))
	pos := 0
	maxConsumed := uint64(0)

	// seenOffsets catches sibling head slots within this same list
	// resolving to the identical tail offset: never produced by a
	// standard encoder, and otherwise a cheap way to force the decoder
	// to walk the same region once per slot against a tiny input (the
	// "quadratic offset" attack class).
	seenOffsets := mapset.NewThreadUnsafeSet[uint64]()

	for i, t := range types {
		if t.IsDynamic() {
			if pos+wordSize > len(listData) {
				return nil, 0, n42errors.ErrInvalidDecodeDataSize
			}
			if err := budget.charge(wordSize); err != nil {
				return nil, 0, err
			}
			offset, err := wordToUint64(listData[pos : pos+wordSize])
			if err != nil {
				return nil, 0, err
			}
			if offset > uint64(len(listData)) {
				return nil, 0, n42errors.ErrInvalidDecodeDataSize
			}
			if !seenOffsets.Add(offset) {
				bufferOverrunTotal.Inc()
				return nil, 0, n42errors.Wrapf(n42errors.ErrBufferOverrun, "offset %d referenced more than once", offset)
			}
			val, consumed, err := decodeDynamic(t, listData, offset, arena, budget)
			if err != nil {
				return nil, 0, err
			}
			results[i] = val
			if consumed > maxConsumed {
				maxConsumed = consumed
			}
			pos += wordSize
		} else {
			sz := staticSize(t)
			if pos+sz > len(listData) {
				return nil, 0, n42errors.ErrInvalidDecodeDataSize
			}
			if err := budget.charge(uint64(sz)); err != nil {
				return nil, 0, err
			}
			val, err := decodeStatic(t, listData[pos:pos+sz], arena, budget)
			if err != nil {
				return nil, 0, err
			}
			results[i] = val
			if uint64(pos+sz) > maxConsumed {
				maxConsumed = uint64(pos + sz)
			}
			pos += sz
		}
	}
	return results, maxConsumed, nil
}

// decodeDynamic decodes the dynamic tail content of type t found at
// listData[offset:], returning the value and the absolute byte offset
// (within listData) just past its last consumed byte.
func decodeDynamic(t ParamType, listData []byte, offset uint64, arena *encoding.Arena, budget *decodeBudget) (interface{}, uint64, error) {
	region := listData[offset:]

	switch t.Kind {
	case KindString, KindBytes:
		if len(region) < wordSize {
			return nil, 0, n42errors.ErrInvalidDecodeDataSize
		}
		if err := budget.charge(wordSize); err != nil {
			return nil, 0, err
		}
		n, err := wordToUint64(region[:wordSize])
		if err != nil {
			return nil, 0, err
		}
		padded := padded32Len(int(n))
		if err := budget.charge(uint64(padded)); err != nil {
			return nil, 0, err
		}
		if len(region) < wordSize+padded {
			return nil, 0, n42errors.ErrInvalidDecodeDataSize
		}
		if err := verifyTrailingZeros(region[wordSize+int(n) : wordSize+padded]); err != nil {
			return nil, 0, err
		}
		buf, err := arena.Alloc(int(n))
		if err != nil {
			return nil, 0, err
		}
		copy(buf, region[wordSize:wordSize+int(n)])
		consumed := offset + uint64(wordSize+padded)
		if t.Kind == KindString {
			return string(buf), consumed, nil
		}
		return buf, consumed, nil

	case KindDynamicArray:
		if len(region) < wordSize {
			return nil, 0, n42errors.ErrInvalidDecodeDataSize
		}
		if err := budget.charge(wordSize); err != nil {
			return nil, 0, err
		}
		n, err := wordToUint64(region[:wordSize])
		if err != nil {
			return nil, 0, err
		}
		elemMinSize := uint64(wordSize)
		if !t.Elem.IsDynamic() {
			elemMinSize = uint64(staticSize(*t.Elem))
		}
		if err := budget.chargeElements(n, elemMinSize); err != nil {
			return nil, 0, err
		}
		vals, consumed, err := decodeParamList(repeatType(*t.Elem, int(n)), region[wordSize:], arena, budget)
		if err != nil {
			return nil, 0, err
		}
		return vals, offset + uint64(wordSize) + consumed, nil

	case KindFixedArray:
		vals, consumed, err := decodeParamList(repeatType(*t.Elem, t.Size), region, arena, budget)
		if err != nil {
			return nil, 0, err
		}
		return vals, offset + consumed, nil

	case KindTuple:
		vals, consumed, err := decodeParamList(componentTypes(t.Components), region, arena, budget)
		if err != nil {
			return nil, 0, err
		}
		return assembleTuple(t.Components, vals), offset + consumed, nil

	default:
		return nil, 0, n42errors.ErrInvalidParamType
	}
}

// decodeStatic decodes a static type's inline encoding from exactly
// staticSize(t) bytes.
func decodeStatic(t ParamType, word []byte, arena *encoding.Arena, budget *decodeBudget) (interface{}, error) {
	switch t.Kind {
	case KindBool:
		return word[wordSize-1] != 0, nil

	case KindAddress:
		var addr types.Address
		copy(addr[:], word[wordSize-types.AddressLength:])
		return addr, nil

	case KindUint:
		bi := new(big.Int).SetBytes(word)
		if bi.BitLen() > t.Size {
			return nil, n42errors.ErrValueOutOfRange
		}
		return bi, nil

	case KindInt:
		return decodeSignedWord(word, t.Size)

	case KindFixedBytes:
		buf, err := arena.Alloc(t.Size)
		if err != nil {
			return nil, err
		}
		copy(buf, word[:t.Size])
		return buf, nil

	case KindFixedArray:
		vals, _, err := decodeParamList(repeatType(*t.Elem, t.Size), word, arena, budget)
		if err != nil {
			return nil, err
		}
		return vals, nil

	case KindTuple:
		vals, _, err := decodeParamList(componentTypes(t.Components), word, arena, budget)
		if err != nil {
			return nil, err
		}
		return assembleTuple(t.Components, vals), nil

	default:
		return nil, n42errors.ErrInvalidParamType
	}
}

// decodeSignedWord interprets a 32-byte word as a two's-complement
// signed integer of the given bit width.
func decodeSignedWord(word []byte, bits int) (*big.Int, error) {
	bi := new(big.Int).SetBytes(word)
	if word[0]&0x80 != 0 {
		mod := new(big.Int).Lsh(big.NewInt(1), 256)
		bi.Sub(bi, mod)
	}
	half := new(big.Int).Lsh(big.NewInt(1), uint(bits-1))
	min := new(big.Int).Neg(half)
	max := new(big.Int).Sub(half, big.NewInt(1))
	if bi.Cmp(min) < 0 || bi.Cmp(max) > 0 {
		return nil, n42errors.ErrValueOutOfRange
	}
	return bi, nil
}

// wordToUint64 interprets a 32-byte word as an offset or length,
// rejecting values too large to address as a Go slice index.
func wordToUint64(word []byte) (uint64, error) {
	for _, b := range word[:wordSize-8] {
		if b != 0 {
			return 0, n42errors.ErrValueOutOfRange
		}
	}
	var n uint64
	for _, b := range word[wordSize-8:] {
		n = n<<8 | uint64(b)
	}
	return n, nil
}

// verifyTrailingZeros rejects non-zero padding bytes.
func verifyTrailingZeros(padding []byte) error {
	for _, b := range padding {
		if b != 0 {
			return n42errors.ErrInvalidLength
		}
	}
	return nil
}

// assembleTuple zips decoded component values back into a TupleValue
// keyed the same way encodeElement's KindTuple case reads them.
func assembleTuple(components []AbiParameter, vals []interface{}) TupleValue {
	tv := make(TupleValue, len(components))
	for i, c := range components {
		tv[componentKey(c, i)] = vals[i]
	}
	return tv
}
