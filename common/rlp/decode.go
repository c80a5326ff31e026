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
	"errors"
	"fmt"
	"io"
	"math/big"
	"reflect"

	"github.com/holiman/uint256"
)

var (
	// ErrUnexpectedEOF is returned when a header promises more payload
	// than the input actually contains.
	ErrUnexpectedEOF = errors.New("rlp: unexpected end of input")
	// ErrNonCanonicalSize is returned when a length prefix is used where
	// the canonical encoding requires the implicit single-byte or
	// short form.
	ErrNonCanonicalSize = errors.New("rlp: non-canonical size")
	// ErrNonCanonicalInt is returned when an integer is encoded with
	// leading zero bytes.
	ErrNonCanonicalInt = errors.New("rlp: non-canonical integer (leading zero bytes)")
	// ErrElemTooLarge is not returned by this package's decoder: a
	// declared length that exceeds the remaining input, including an
	// element overrunning its containing list, yields ErrUnexpectedEOF.
	ErrElemTooLarge = errors.New("rlp: element is larger than containing list")
	// ErrExpectedList is returned when a list was expected but a string
	// was found.
	ErrExpectedList = errors.New("rlp: expected input list")
	// ErrExpectedString is returned when a string was expected but a
	// list was found.
	ErrExpectedString = errors.New("rlp: expected input string or byte")
)

// Kind identifies the type of the next RLP value in a stream.
type Kind int

const (
	Byte Kind = iota
	String
	List
)

// Decode parses RLP-encoded data from r into val, which must be a
// non-nil pointer.
func Decode(r io.Reader, val interface{}) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return DecodeBytes(b, val)
}

// DecodeBytes parses RLP-encoded data from b into val, which must be a
// non-nil pointer. The entire input must be consumed by exactly one value.
func DecodeBytes(b []byte, val interface{}) error {
	rv := reflect.ValueOf(val)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return errors.New("rlp: decode target must be a non-nil pointer")
	}
	rest, err := decodeValue(b, rv.Elem())
	if err != nil {
		return err
	}
	if len(rest) != 0 {
		return errors.New("rlp: trailing data after value")
	}
	return nil
}

// readHeader parses a single RLP header from the front of b and returns
// the kind, the payload and the remainder of the input after the value.
func readHeader(b []byte) (kind Kind, payload []byte, rest []byte, err error) {
	if len(b) == 0 {
		return 0, nil, nil, io.ErrUnexpectedEOF
	}
	first := b[0]
	switch {
	case first < 0x80:
		return Byte, b[:1], b[1:], nil

	case first < 0xb8:
		size := int(first - 0x80)
		if len(b) < 1+size {
			return 0, nil, nil, ErrUnexpectedEOF
		}
		if size == 1 && b[1] < 0x80 {
			return 0, nil, nil, ErrNonCanonicalSize
		}
		return String, b[1 : 1+size], b[1+size:], nil

	case first < 0xc0:
		lenOfLen := int(first - 0xb7)
		if len(b) < 1+lenOfLen {
			return 0, nil, nil, ErrUnexpectedEOF
		}
		lenBytes := b[1 : 1+lenOfLen]
		if lenBytes[0] == 0 {
			return 0, nil, nil, ErrNonCanonicalSize
		}
		size, err := decodeLength(lenBytes)
		if err != nil {
			return 0, nil, nil, err
		}
		if size < 56 {
			return 0, nil, nil, ErrNonCanonicalSize
		}
		start := 1 + lenOfLen
		if uint64(len(b)-start) < size {
			return 0, nil, nil, ErrUnexpectedEOF
		}
		return String, b[start : uint64(start)+size], b[uint64(start)+size:], nil

	case first < 0xf8:
		size := int(first - 0xc0)
		if len(b) < 1+size {
			return 0, nil, nil, ErrUnexpectedEOF
		}
		return List, b[1 : 1+size], b[1+size:], nil

	default:
		lenOfLen := int(first - 0xf7)
		if len(b) < 1+lenOfLen {
			return 0, nil, nil, ErrUnexpectedEOF
		}
		lenBytes := b[1 : 1+lenOfLen]
		if lenBytes[0] == 0 {
			return 0, nil, nil, ErrNonCanonicalSize
		}
		size, err := decodeLength(lenBytes)
		if err != nil {
			return 0, nil, nil, err
		}
		if size < 56 {
			return 0, nil, nil, ErrNonCanonicalSize
		}
		start := 1 + lenOfLen
		if uint64(len(b)-start) < size {
			return 0, nil, nil, ErrUnexpectedEOF
		}
		return List, b[start : uint64(start)+size], b[uint64(start)+size:], nil
	}
}

func decodeLength(b []byte) (uint64, error) {
	if len(b) > 8 {
		return 0, errors.New("rlp: length prefix too large")
	}
	var n uint64
	for _, c := range b {
		n = n<<8 | uint64(c)
	}
	return n, nil
}

// decodeValue decodes one RLP value from the front of b into rv, returning
// the remaining unconsumed bytes.
func decodeValue(b []byte, rv reflect.Value) ([]byte, error) {
	if rv.Kind() == reflect.Ptr {
		elem := rv.Type().Elem()
		// A nil pointer to a byte array (an address or hash field) encodes
		// as the empty string; decoding must map the empty string back to
		// nil, not to a zero-filled array, or a contract-creation
		// transaction would re-encode with a phantom zero address.
		if elem.Kind() == reflect.Array && elem.Elem().Kind() == reflect.Uint8 {
			kind, payload, rest, err := readHeader(b)
			if err != nil {
				return nil, err
			}
			if kind != List && len(payload) == 0 {
				rv.Set(reflect.Zero(rv.Type()))
				return rest, nil
			}
		}
		if rv.IsNil() {
			rv.Set(reflect.New(elem))
		}
		return decodeValue(b, rv.Elem())
	}

	kind, payload, rest, err := readHeader(b)
	if err != nil {
		return nil, err
	}

	// uint256.Int is a [4]uint64 array and big.Int is a struct; both must
	// be intercepted here before the Kind-based dispatch below, which
	// would otherwise decode them as a generic array/struct instead of a
	// single canonical big-endian integer.
	if rv.CanInterface() {
		switch rv.Interface().(type) {
		case big.Int:
			if kind == List {
				return nil, ErrExpectedString
			}
			if len(payload) > 0 && payload[0] == 0 {
				return nil, ErrNonCanonicalInt
			}
			n := new(big.Int).SetBytes(payload)
			rv.Set(reflect.ValueOf(*n))
			return rest, nil
		case uint256.Int:
			if kind == List {
				return nil, ErrExpectedString
			}
			if len(payload) > 32 {
				return nil, errors.New("rlp: uint256 overflow")
			}
			if len(payload) > 0 && payload[0] == 0 {
				return nil, ErrNonCanonicalInt
			}
			n := new(uint256.Int).SetBytes(payload)
			rv.Set(reflect.ValueOf(*n))
			return rest, nil
		}
	}

	switch rv.Kind() {
	case reflect.Bool:
		if kind == List {
			return nil, ErrExpectedString
		}
		rv.SetBool(len(payload) == 1 && payload[0] == 0x01)
		return rest, nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if kind == List {
			return nil, ErrExpectedString
		}
		n, err := bytesToUint64(payload)
		if err != nil {
			return nil, err
		}
		rv.SetUint(n)
		return rest, nil

	case reflect.String:
		if kind == List {
			return nil, ErrExpectedString
		}
		rv.SetString(string(payload))
		return rest, nil

	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			if kind == List {
				return nil, ErrExpectedString
			}
			cp := make([]byte, len(payload))
			copy(cp, payload)
			rv.SetBytes(cp)
			return rest, nil
		}
		if kind != List {
			return nil, ErrExpectedList
		}
		return rest, decodeListInto(payload, rv)

	case reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			if kind == List {
				return nil, ErrExpectedString
			}
			if len(payload) > rv.Len() {
				return nil, fmt.Errorf("rlp: %d bytes does not fit array of size %d", len(payload), rv.Len())
			}
			reflect.Copy(rv.Slice(0, rv.Len()), reflect.ValueOf(payload))
			return rest, nil
		}
		if kind != List {
			return nil, ErrExpectedList
		}
		return rest, decodeListInto(payload, rv)

	case reflect.Struct:
		if kind != List {
			return nil, ErrExpectedList
		}
		return rest, decodeStructInto(payload, rv)

	case reflect.Interface:
		if rv.NumMethod() != 0 {
			return nil, fmt.Errorf("rlp: cannot decode into non-empty interface")
		}
		val, err := decodeRaw(kind, payload)
		if err != nil {
			return nil, err
		}
		rv.Set(reflect.ValueOf(val))
		return rest, nil

	default:
		return nil, fmt.Errorf("rlp: unsupported decode type %s", rv.Type())
	}
}

func bytesToUint64(b []byte) (uint64, error) {
	if len(b) > 8 {
		return 0, errors.New("rlp: uint64 overflow")
	}
	if len(b) > 0 && b[0] == 0 {
		return 0, ErrNonCanonicalInt
	}
	var n uint64
	for _, c := range b {
		n = n<<8 | uint64(c)
	}
	return n, nil
}

func decodeListInto(payload []byte, rv reflect.Value) error {
	var elems []reflect.Value
	rest := payload
	for len(rest) > 0 {
		elemKind, elemPayload, next, err := readHeader(rest)
		if err != nil {
			return err
		}
		raw := rest[:len(rest)-len(next)]
		_ = elemKind
		_ = elemPayload
		elems = append(elems, reflect.ValueOf(raw))
		rest = next
	}

	switch rv.Kind() {
	case reflect.Slice:
		out := reflect.MakeSlice(rv.Type(), len(elems), len(elems))
		for i, raw := range elems {
			if _, err := decodeValue(raw.Interface().([]byte), out.Index(i)); err != nil {
				return fmt.Errorf("rlp: element %d: %w", i, err)
			}
		}
		rv.Set(out)
		return nil
	case reflect.Array:
		if len(elems) != rv.Len() {
			return fmt.Errorf("rlp: array length mismatch: got %d, want %d", len(elems), rv.Len())
		}
		for i, raw := range elems {
			if _, err := decodeValue(raw.Interface().([]byte), rv.Index(i)); err != nil {
				return fmt.Errorf("rlp: element %d: %w", i, err)
			}
		}
		return nil
	}
	return fmt.Errorf("rlp: cannot decode list into %s", rv.Type())
}

func decodeStructInto(payload []byte, rv reflect.Value) error {
	t := rv.Type()
	rest := payload
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" && !f.Anonymous {
			continue
		}
		if tag := f.Tag.Get("rlp"); tag == "-" {
			continue
		}
		if len(rest) == 0 {
			// Trailing pointer fields are optional: an unsigned envelope
			// omits its signature triple entirely, so a short list leaves
			// the remaining pointers nil instead of failing.
			if rv.Field(i).Kind() == reflect.Ptr {
				continue
			}
			return fmt.Errorf("rlp: too few elements for struct %s", t.Name())
		}
		var err error
		rest, err = decodeValue(rest, rv.Field(i))
		if err != nil {
			return fmt.Errorf("rlp: field %s: %w", f.Name, err)
		}
	}
	if len(rest) != 0 {
		return fmt.Errorf("rlp: too many elements for struct %s", t.Name())
	}
	return nil
}

// decodeRaw materializes an untyped RLP value as []byte (strings) or
// []interface{} (lists), for decoding into interface{} targets.
func decodeRaw(kind Kind, payload []byte) (interface{}, error) {
	if kind != List {
		cp := make([]byte, len(payload))
		copy(cp, payload)
		return cp, nil
	}
	var out []interface{}
	rest := payload
	for len(rest) > 0 {
		k, p, next, err := readHeader(rest)
		if err != nil {
			return nil, err
		}
		v, err := decodeRaw(k, p)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
		rest = next
	}
	return out, nil
}

// Split returns the kind, payload and remaining bytes of the first RLP
// value in b without allocating a decode target. It is the low-level
// primitive transaction-envelope dispatch uses to peek at a list's first
// field before committing to a concrete type.
func Split(b []byte) (Kind, []byte, []byte, error) {
	return readHeader(b)
}

// ListLength returns the number of bytes a list payload occupies, counting
// only the items (not the header), given the header already read via Split.
func ListLength(payload []byte) int {
	return len(payload)
}
