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

package rlp

import (
	"fmt"
	"io"
	"math/big"
	"reflect"

	"github.com/holiman/uint256"
)

// Encoder is implemented by types that know how to encode themselves to
// RLP. EncodeRLP must write exactly one RLP value (a string or a list) to w.
type Encoder interface {
	EncodeRLP(w io.Writer) error
}

// Encode writes the RLP encoding of val to w.
func Encode(w io.Writer, val interface{}) error {
	b, err := EncodeToBytes(val)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// EncodeToBytes returns the RLP encoding of val.
func EncodeToBytes(val interface{}) ([]byte, error) {
	var buf []byte
	var err error
	buf, err = appendValue(buf, reflect.ValueOf(val))
	return buf, err
}

func appendValue(buf []byte, v reflect.Value) ([]byte, error) {
	if !v.IsValid() {
		return appendString(buf, nil), nil
	}

	if v.CanInterface() {
		if enc, ok := v.Interface().(Encoder); ok {
			return appendEncoder(buf, enc)
		}
		// uint256.Int is a [4]uint64 array and big.Int is a struct; both
		// must be intercepted here before the Kind-based dispatch below,
		// which would otherwise encode them as generic arrays/structs
		// instead of as a single canonical big-endian integer.
		switch x := v.Interface().(type) {
		case big.Int:
			return appendBigInt(buf, &x), nil
		case uint256.Int:
			return appendUint256(buf, &x), nil
		}
	}

	switch v.Kind() {
	case reflect.Ptr:
		if v.IsNil() {
			return appendNilPointer(buf, v.Type().Elem())
		}
		return appendValue(buf, v.Elem())

	case reflect.Interface:
		if v.IsNil() {
			return appendString(buf, nil), nil
		}
		return appendValue(buf, v.Elem())

	case reflect.Bool:
		if v.Bool() {
			return append(buf, 0x01), nil
		}
		return append(buf, 0x80), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return appendUint(buf, v.Uint()), nil

	case reflect.String:
		return appendString(buf, []byte(v.String())), nil

	case reflect.Slice, reflect.Array:
		return appendSliceOrArray(buf, v)

	case reflect.Struct:
		return appendStruct(buf, v)

	default:
		return nil, fmt.Errorf("rlp: unsupported type %s", v.Type())
	}
}

func appendEncoder(buf []byte, enc Encoder) ([]byte, error) {
	var tmp []byte
	bw := &sliceWriter{&tmp}
	if err := enc.EncodeRLP(bw); err != nil {
		return nil, err
	}
	return append(buf, tmp...), nil
}

type sliceWriter struct {
	buf *[]byte
}

func (w *sliceWriter) Write(p []byte) (int, error) {
	*w.buf = append(*w.buf, p...)
	return len(p), nil
}

func appendNilPointer(buf []byte, elemType reflect.Type) ([]byte, error) {
	if elemType == reflect.TypeOf(big.Int{}) || elemType == reflect.TypeOf(uint256.Int{}) {
		return appendString(buf, nil), nil
	}
	switch elemType.Kind() {
	case reflect.Array:
		if elemType.Elem().Kind() == reflect.Uint8 {
			return appendString(buf, nil), nil
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return appendUint(buf, 0), nil
	case reflect.Struct:
		return appendList(buf, nil)
	case reflect.Slice:
		if elemType.Elem().Kind() == reflect.Uint8 {
			return appendString(buf, nil), nil
		}
		return appendList(buf, nil)
	}
	return appendString(buf, nil), nil
}

func appendSliceOrArray(buf []byte, v reflect.Value) ([]byte, error) {
	elemKind := v.Type().Elem().Kind()
	if elemKind == reflect.Uint8 {
		return appendString(buf, toBytes(v)), nil
	}
	items := make([][]byte, v.Len())
	for i := 0; i < v.Len(); i++ {
		enc, err := appendValue(nil, v.Index(i))
		if err != nil {
			return nil, fmt.Errorf("rlp: element %d: %w", i, err)
		}
		items[i] = enc
	}
	return appendList(buf, items)
}

func appendStruct(buf []byte, v reflect.Value) ([]byte, error) {
	t := v.Type()
	items := make([][]byte, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" && !f.Anonymous {
			continue // unexported
		}
		if tag := f.Tag.Get("rlp"); tag == "-" {
			continue
		}
		enc, err := appendValue(nil, v.Field(i))
		if err != nil {
			return nil, fmt.Errorf("rlp: field %s: %w", f.Name, err)
		}
		items = append(items, enc)
	}
	return appendList(buf, items)
}

func toBytes(v reflect.Value) []byte {
	if v.Kind() == reflect.Slice {
		return v.Bytes()
	}
	b := make([]byte, v.Len())
	for i := 0; i < v.Len(); i++ {
		b[i] = byte(v.Index(i).Uint())
	}
	return b
}

func appendUint(buf []byte, n uint64) []byte {
	if n == 0 {
		return append(buf, 0x80)
	}
	if n < 0x80 {
		return append(buf, byte(n))
	}
	var b [8]byte
	i := 8
	for n > 0 {
		i--
		b[i] = byte(n)
		n >>= 8
	}
	return appendString(buf, b[i:])
}

func appendBigInt(buf []byte, n *big.Int) []byte {
	if n == nil || n.Sign() == 0 {
		return append(buf, 0x80)
	}
	return appendString(buf, n.Bytes())
}

func appendUint256(buf []byte, n *uint256.Int) []byte {
	if n == nil || n.IsZero() {
		return append(buf, 0x80)
	}
	b := n.Bytes()
	return appendString(buf, b)
}

func appendString(buf []byte, s []byte) []byte {
	if len(s) == 1 && s[0] < 0x80 {
		return append(buf, s[0])
	}
	buf = appendHeader(buf, 0x80, 0xb7, len(s))
	return append(buf, s...)
}

func appendList(buf []byte, items [][]byte) ([]byte, error) {
	total := 0
	for _, it := range items {
		total += len(it)
	}
	buf = appendHeader(buf, 0xc0, 0xf7, total)
	for _, it := range items {
		buf = append(buf, it...)
	}
	return buf, nil
}

func appendHeader(buf []byte, shortOffset, longOffset byte, size int) []byte {
	if size < 56 {
		return append(buf, shortOffset+byte(size))
	}
	lenBytes := uintToMinimalBytes(uint64(size))
	buf = append(buf, longOffset+byte(len(lenBytes)))
	return append(buf, lenBytes...)
}

func uintToMinimalBytes(n uint64) []byte {
	var b [8]byte
	i := 8
	for n > 0 {
		i--
		b[i] = byte(n)
		n >>= 8
	}
	if i == 8 {
		return []byte{0}
	}
	return b[i:]
}
