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
	"encoding/binary"
	"math/big"
	"reflect"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/n42blockchain/abicore/common/types"
	n42errors "github.com/n42blockchain/abicore/pkg/errors"
)

// assertValueTreeEqual compares two decoded/encoded value trees structurally,
// dumping both sides via spew on mismatch: a plain %v diff is unreadable
// once a tree nests tuples inside a dynamic array inside a tuple, since
// *big.Int and TupleValue don't print their fields by default.
func assertValueTreeEqual(t *testing.T, want, got interface{}) {
	t.Helper()
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("value tree mismatch:\nwant:\n%s\ngot:\n%s", spew.Sdump(want), spew.Sdump(got))
	}
}

func TestDecodeParametersRoundTripsStaticValues(t *testing.T) {
	params := []AbiParameter{uintParam(256), {Type: NewBoolType()}}
	values := []interface{}{big.NewInt(69), true}

	enc, err := EncodeParameters(params, values)
	require.NoError(t, err)

	got, arena, err := DecodeParameters(params, enc)
	require.NoError(t, err)
	defer arena.Release()

	require.Len(t, got, 2)
	assert.Equal(t, 0, big.NewInt(69).Cmp(got[0].(*big.Int)))
	assert.Equal(t, true, got[1])
}

func TestDecodeParametersRoundTripsString(t *testing.T) {
	params := []AbiParameter{{Type: NewStringType()}}
	enc, err := EncodeParameters(params, []interface{}{"foo"})
	require.NoError(t, err)

	got, arena, err := DecodeParameters(params, enc)
	require.NoError(t, err)
	defer arena.Release()

	assert.Equal(t, "foo", got[0])
}

func TestDecodeParametersRoundTripsDynamicArrayOfInt256(t *testing.T) {
	elem, err := NewIntType(256)
	require.NoError(t, err)
	params := []AbiParameter{{Type: NewDynamicArrayType(elem)}}
	values := []interface{}{[]interface{}{big.NewInt(-1), big.NewInt(2)}}

	enc, err := EncodeParameters(params, values)
	require.NoError(t, err)

	got, arena, err := DecodeParameters(params, enc)
	require.NoError(t, err)
	defer arena.Release()

	arr := got[0].([]interface{})
	require.Len(t, arr, 2)
	assert.Equal(t, 0, big.NewInt(-1).Cmp(arr[0].(*big.Int)))
	assert.Equal(t, 0, big.NewInt(2).Cmp(arr[1].(*big.Int)))
}

func TestDecodeParametersRoundTripsTuple(t *testing.T) {
	tupleType, err := NewTupleType([]AbiParameter{
		{Name: "id", Type: mustUint(t, 256)},
		{Name: "label", Type: NewStringType()},
	})
	require.NoError(t, err)
	params := []AbiParameter{{Type: tupleType}}
	values := []interface{}{TupleValue{"id": big.NewInt(7), "label": "hi"}}

	enc, err := EncodeParameters(params, values)
	require.NoError(t, err)

	got, arena, err := DecodeParameters(params, enc)
	require.NoError(t, err)
	defer arena.Release()

	tv := got[0].(TupleValue)
	assert.Equal(t, 0, big.NewInt(7).Cmp(tv["id"].(*big.Int)))
	assert.Equal(t, "hi", tv["label"])
}

// TestDecodeParametersRoundTripsNestedTupleArray exercises a tuple whose
// dynamic-array field holds further tuples, and checks the whole value
// tree survives the round trip rather than just its top-level shape.
func TestDecodeParametersRoundTripsNestedTupleArray(t *testing.T) {
	itemType, err := NewTupleType([]AbiParameter{
		{Name: "id", Type: mustUint(t, 256)},
		{Name: "label", Type: NewStringType()},
	})
	require.NoError(t, err)
	outerType, err := NewTupleType([]AbiParameter{
		{Name: "owner", Type: NewAddressType()},
		{Name: "items", Type: NewDynamicArrayType(itemType)},
	})
	require.NoError(t, err)
	params := []AbiParameter{{Type: outerType}}

	owner := types.HexToAddress("0x00112233445566778899aabbccddeeff0011223")
	want := TupleValue{
		"owner": owner,
		"items": []interface{}{
			TupleValue{"id": big.NewInt(1), "label": "a"},
			TupleValue{"id": big.NewInt(2), "label": "bb"},
		},
	}

	enc, err := EncodeParameters(params, []interface{}{want})
	require.NoError(t, err)

	got, arena, err := DecodeParameters(params, enc)
	require.NoError(t, err)
	defer arena.Release()

	assertValueTreeEqual(t, want, got[0])
}

func TestDecodeFunctionCallVerifiesSelector(t *testing.T) {
	params := []AbiParameter{uintParam(256)}
	enc, err := EncodeFunctionCall("transfer", params, []interface{}{big.NewInt(1)})
	require.NoError(t, err)

	got, arena, err := DecodeFunctionCall("transfer", params, enc)
	require.NoError(t, err)
	defer arena.Release()
	assert.Equal(t, 0, big.NewInt(1).Cmp(got[0].(*big.Int)))

	_, _, err = DecodeFunctionCall("approve", params, enc)
	assert.ErrorIs(t, err, n42errors.ErrInvalidAbiSignature)
}

func TestDecodeErrorVerifiesSelector(t *testing.T) {
	params := []AbiParameter{uintParam(256)}
	enc, err := EncodeFunctionCall("InsufficientBalance", params, []interface{}{big.NewInt(7)})
	require.NoError(t, err)

	got, arena, err := DecodeError("InsufficientBalance", params, enc)
	require.NoError(t, err)
	defer arena.Release()
	assert.Equal(t, 0, big.NewInt(7).Cmp(got[0].(*big.Int)))

	_, _, err = DecodeError("WrongName", params, enc)
	assert.ErrorIs(t, err, n42errors.ErrInvalidAbiSignature)
}

func TestDecodeConstructorTakesUnprefixedArguments(t *testing.T) {
	params := []AbiParameter{uintParam(256), {Name: "greeting", Type: NewStringType()}}
	enc, err := EncodeParameters(params, []interface{}{big.NewInt(42), "hello"})
	require.NoError(t, err)

	got, arena, err := DecodeConstructor(params, enc)
	require.NoError(t, err)
	defer arena.Release()
	assert.Equal(t, 0, big.NewInt(42).Cmp(got[0].(*big.Int)))
	assert.Equal(t, "hello", got[1].(string))
}

func TestDecodeParametersRejectsNonMultipleOf32(t *testing.T) {
	_, _, err := DecodeParameters([]AbiParameter{uintParam(256)}, make([]byte, 33))
	assert.ErrorIs(t, err, n42errors.ErrInvalidDecodeDataSize)
}

func TestDecodeParametersRejectsJunkDataByDefault(t *testing.T) {
	params := []AbiParameter{uintParam(256)}
	enc, err := EncodeParameters(params, []interface{}{big.NewInt(1)})
	require.NoError(t, err)
	enc = append(enc, make([]byte, 32)...)

	_, _, err = DecodeParameters(params, enc)
	assert.ErrorIs(t, err, n42errors.ErrJunkData)

	got, arena, err := DecodeParameters(params, enc, WithAllowJunkData(true))
	require.NoError(t, err)
	defer arena.Release()
	assert.Equal(t, 0, big.NewInt(1).Cmp(got[0].(*big.Int)))
}

func TestDecodeParametersRejectsOversizedInputViaMaxBytes(t *testing.T) {
	elem, err := NewIntType(256)
	require.NoError(t, err)
	params := []AbiParameter{{Type: NewDynamicArrayType(elem)}}
	values := []interface{}{make([]interface{}, 8)}
	for i := range values[0].([]interface{}) {
		values[0].([]interface{})[i] = big.NewInt(int64(i))
	}

	enc, err := EncodeParameters(params, values)
	require.NoError(t, err)

	_, _, err = DecodeParameters(params, enc, WithMaxBytes(32))
	assert.ErrorIs(t, err, n42errors.ErrBufferOverrun)
}

// TestDecodeParametersRejectsForgedDeclaredArrayLength constructs a tiny
// buffer whose dynamic-array length word declares far more elements than
// the buffer could ever hold (the attack wordToUint64 alone lets through,
// since only the word's top 24 bytes need be zero). It must be rejected by
// the budget before decodeParamList ever allocates a slice sized by the
// declared count, not merely once that allocation has already happened.
func TestDecodeParametersRejectsForgedDeclaredArrayLength(t *testing.T) {
	elem, err := NewIntType(256)
	require.NoError(t, err)
	params := []AbiParameter{{Type: NewDynamicArrayType(elem)}}

	enc := make([]byte, 64)
	enc[31] = 0x20 // head offset -> tail starts at byte 32
	binary.BigEndian.PutUint64(enc[56:64], 0xFFFFFFFF)

	_, _, err = DecodeParameters(params, enc)
	assert.ErrorIs(t, err, n42errors.ErrBufferOverrun)
}

// TestDecodeParametersRejectsDuplicateOffsets constructs two dynamic head
// slots that both point at the same tail offset: never produced by a
// standard encoder, and rejected as the "quadratic offset" attack pattern.
func TestDecodeParametersRejectsDuplicateOffsets(t *testing.T) {
	params := []AbiParameter{{Type: NewStringType()}, {Type: NewStringType()}}
	enc, err := EncodeParameters(params, []interface{}{"foo", "bar"})
	require.NoError(t, err)

	// Overwrite the second head slot's offset (bytes 32:64) to repeat the
	// first's, so both point at the same tail region.
	copy(enc[32:64], enc[0:32])

	_, _, err = DecodeParameters(params, enc)
	assert.ErrorIs(t, err, n42errors.ErrBufferOverrun)
}

func TestDecodeParametersRejectsNonZeroTrailingPadding(t *testing.T) {
	params := []AbiParameter{{Type: NewBytesType()}}
	enc, err := EncodeParameters(params, []interface{}{[]byte{0x01, 0x02, 0x03}})
	require.NoError(t, err)

	// Corrupt one of the zero-padding bytes following the 3-byte payload.
	enc[len(enc)-1] = 0xff

	_, _, err = DecodeParameters(params, enc)
	assert.Error(t, err)
}

func TestDecodeParametersRejectsShortInput(t *testing.T) {
	_, _, err := DecodeParameters([]AbiParameter{uintParam(256), {Type: NewBoolType()}}, make([]byte, 32))
	assert.ErrorIs(t, err, n42errors.ErrInvalidDecodeDataSize)
}
