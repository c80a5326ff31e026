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

// Package vm implements the byte-addressable expandable memory, the gas
// accounting it requires, and the memory-family opcodes (MLOAD, MSTORE,
// MSTORE8, MSIZE, MCOPY) that are representative of the interpreter's
// memory/gas invariants.
//
// Reference: go-ethereum/core/vm.
package vm

import (
	"github.com/holiman/uint256"
)

// initialMemoryCapacity is the backing array size a fresh Memory
// preallocates, sized to cover a typical call frame's scratch space
// without a resize.
const initialMemoryCapacity = 4 * 1024

// Memory is the interpreter's byte-addressable expandable memory. Its
// logical length is always a multiple of 32 bytes once touched by a
// word-granular operation; growth is monotone, memory never shrinks.
type Memory struct {
	store       []byte
	lastGasCost uint64
}

// NewMemory returns an empty Memory backed by a pooled buffer.
func NewMemory() *Memory {
	return &Memory{store: GetMemory(initialMemoryCapacity)[:0]}
}

// Release returns the backing buffer to the memory pool. The Memory must
// not be used afterwards.
func (m *Memory) Release() {
	PutMemory(m.store)
	m.store = nil
	m.lastGasCost = 0
}

// Len returns the current byte length of memory.
func (m *Memory) Len() int {
	return len(m.store)
}

// Resize grows memory to at least size bytes. It never shrinks. Callers
// are expected to pass a 32-byte-aligned size (the gas-costing helpers in
// this package always do).
func (m *Memory) Resize(size uint64) {
	if uint64(len(m.store)) >= size {
		return
	}
	m.store = append(m.store, make([]byte, size-uint64(len(m.store)))...)
}

// Set copies value into memory starting at offset. A zero size is a no-op
// even when value is shorter than size would otherwise require.
func (m *Memory) Set(offset, size uint64, value []byte) {
	if size == 0 {
		return
	}
	copy(m.store[offset:offset+size], value)
}

// Set32 writes val as a 32-byte big-endian word starting at offset.
func (m *Memory) Set32(offset uint64, val *uint256.Int) {
	val.WriteToSlice(m.store[offset : offset+32])
}

// GetCopy returns an independent copy of the size bytes starting at
// offset, or nil when size is zero or offset is beyond the end of memory.
func (m *Memory) GetCopy(offset, size int64) []byte {
	if size == 0 {
		return nil
	}
	if int64(len(m.store)) <= offset {
		return nil
	}
	cpy := GetByteSlice(int(size))
	copy(cpy, m.store[offset:offset+size])
	return cpy
}

// GetPtr returns a slice referencing memory's backing storage directly;
// writes through it mutate memory. Returns nil when size is zero or
// offset is beyond the end of memory.
func (m *Memory) GetPtr(offset, size int64) []byte {
	if size == 0 {
		return nil
	}
	if int64(len(m.store)) <= offset {
		return nil
	}
	return m.store[offset : offset+size]
}

// Data returns memory's backing storage directly.
func (m *Memory) Data() []byte {
	return m.store
}

// Copy copies length bytes from src to dst within memory. Go's copy
// builtin is memmove-based, so this is correct regardless of whether the
// source and destination regions overlap and in which direction — the
// invariant EIP-5656's MCOPY requires.
func (m *Memory) Copy(dst, src, length uint64) {
	if length == 0 {
		return
	}
	copy(m.store[dst:dst+length], m.store[src:src+length])
}

// Reset empties memory and clears its accumulated gas-cost watermark, for
// reuse across interpreter invocations.
func (m *Memory) Reset() {
	m.store = m.store[:0]
	m.lastGasCost = 0
}
