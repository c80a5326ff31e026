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

package hash

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/n42blockchain/abicore/common/rlp"
)

// TestKeccak256BytesKnownAnswer pins the empty-input digest, the one
// Keccak256 vector reproduced in virtually every Ethereum client test
// suite. This is the legacy (pre-NIST-standardization) Keccak256, not
// SHA3-256: the two differ in padding and must not be confused.
func TestKeccak256BytesKnownAnswer(t *testing.T) {
	got := hex.EncodeToString(Keccak256Bytes(nil))
	assert.Equal(t, "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470", got)
}

func TestKeccak256BytesVariadicConcatenates(t *testing.T) {
	a := Keccak256Bytes([]byte("ab"), []byte("c"))
	b := Keccak256Bytes([]byte("abc"))
	assert.Equal(t, a, b)
}

func TestHashReturnsTypesHash(t *testing.T) {
	h := Hash(nil)
	assert.Equal(t, "0xc5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470", h.Hex())
}

func TestRlpHashDeterministic(t *testing.T) {
	h1 := RlpHash(uint64(42))
	h2 := RlpHash(uint64(42))
	assert.Equal(t, h1, h2)

	h3 := RlpHash(uint64(43))
	assert.NotEqual(t, h1, h3)
}

func TestPrefixedRlpHashDiffersByPrefix(t *testing.T) {
	elems := []interface{}{uint64(1), uint64(2)}
	h1 := PrefixedRlpHash(0x01, elems)
	h2 := PrefixedRlpHash(0x02, elems)
	assert.NotEqual(t, h1, h2, "different type prefixes must produce different signing hashes")
}

func TestPrefixedRlpHashMatchesManualPrefixing(t *testing.T) {
	elems := []interface{}{uint64(7)}
	h := PrefixedRlpHash(0x03, elems)

	encoded, err := rlp.EncodeToBytes(elems)
	require.NoError(t, err)
	want := Hash(append([]byte{0x03}, encoded...))
	assert.Equal(t, want, h)
}
