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

// Package stack implements the 256-bit-word operand stack the
// interpreter's memory opcodes push and pop against, and a subroutine
// return-address stack.
package stack

import (
	"sync"

	"github.com/holiman/uint256"
)

// initialCapacity is the number of words a freshly pooled Stack reserves.
// Most EVM-style call frames never exceed this before returning, so it
// keeps the common case allocation-free.
const initialCapacity = 16

// Stack is a stack of uint256.Int values. It is not safe for concurrent
// use; callers serialize access the same way a single interpreter frame
// is never shared across goroutines.
type Stack struct {
	data []uint256.Int
}

var stackPool = sync.Pool{
	New: func() interface{} {
		return &Stack{data: make([]uint256.Int, 0, initialCapacity)}
	},
}

// New returns an empty Stack, reused from a pool when possible.
func New() *Stack {
	return stackPool.Get().(*Stack)
}

// ReturnNormalStack resets st and returns it to the pool for reuse.
func ReturnNormalStack(st *Stack) {
	st.Reset()
	stackPool.Put(st)
}

// Len returns the number of items on the stack.
func (st *Stack) Len() int {
	return len(st.data)
}

// Cap returns the stack's current backing capacity.
func (st *Stack) Cap() int {
	return cap(st.data)
}

// Reset empties the stack without releasing its backing array.
func (st *Stack) Reset() {
	st.data = st.data[:0]
}

// Push appends d to the top of the stack.
func (st *Stack) Push(d *uint256.Int) {
	st.data = append(st.data, *d)
}

// PushN appends ds to the stack in order, so the last element of ds ends
// up on top.
func (st *Stack) PushN(ds ...uint256.Int) {
	st.data = append(st.data, ds...)
}

// Pop removes and returns the top of the stack. It panics on an empty
// stack; callers must check Len() against an operation's pop count first
// and surface pkg/errors.ErrStackUnderflow rather than call Pop blind.
func (st *Stack) Pop() *uint256.Int {
	n := len(st.data) - 1
	v := &st.data[n]
	st.data = st.data[:n]
	return v
}

// Peek returns a pointer to the top of the stack without removing it.
func (st *Stack) Peek() *uint256.Int {
	return &st.data[len(st.data)-1]
}

// Back returns a pointer to the n-th item from the top, 0-indexed
// (Back(0) is the same element Peek returns).
func (st *Stack) Back(n int) *uint256.Int {
	return &st.data[len(st.data)-1-n]
}

// Swap exchanges the top of the stack with the n-th item from the top,
// 1-indexed (Swap(1) swaps the top element with itself; Swap(2) is the
// SWAP1 opcode's "swap top two" behavior).
func (st *Stack) Swap(n int) {
	top := len(st.data) - 1
	st.data[top], st.data[top-n+1] = st.data[top-n+1], st.data[top]
}

// Dup pushes a copy of the n-th item from the top, 1-indexed (Dup(1)
// duplicates the current top).
func (st *Stack) Dup(n int) {
	st.data = append(st.data, st.data[len(st.data)-n])
}

// ReturnStack holds the 32-bit program-counter return addresses used by
// subroutine-style call/return opcodes built atop the memory primitives
// (e.g. a future RJUMPSUB). It is pooled the same way Stack is.
type ReturnStack struct {
	data []uint32
}

var returnStackPool = sync.Pool{
	New: func() interface{} {
		return &ReturnStack{data: make([]uint32, 0, initialCapacity)}
	},
}

// NewReturnStack returns an empty ReturnStack, reused from a pool when
// possible.
func NewReturnStack() *ReturnStack {
	return returnStackPool.Get().(*ReturnStack)
}

// ReturnRStack resets rs and returns it to the pool for reuse.
func ReturnRStack(rs *ReturnStack) {
	rs.data = rs.data[:0]
	returnStackPool.Put(rs)
}

// Push appends pc to the top of the return stack.
func (rs *ReturnStack) Push(pc uint32) {
	rs.data = append(rs.data, pc)
}

// Pop removes and returns the top of the return stack. It panics on an
// empty stack.
func (rs *ReturnStack) Pop() uint32 {
	n := len(rs.data) - 1
	pc := rs.data[n]
	rs.data = rs.data[:n]
	return pc
}

// Data returns the return stack's contents, bottom to top.
func (rs *ReturnStack) Data() []uint32 {
	return rs.data
}
