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

package vm

import (
	"github.com/holiman/uint256"

	"github.com/n42blockchain/abicore/internal/vm/stack"
	n42errors "github.com/n42blockchain/abicore/pkg/errors"
)

// OpCode is an EVM instruction byte. Only the memory-family opcodes this
// package implements have named constants; the rest of the 256-entry
// space belongs to a full interpreter this core does not provide.
type OpCode byte

const (
	MLOAD   OpCode = 0x51
	MSTORE  OpCode = 0x52
	MSTORE8 OpCode = 0x53
	MSIZE   OpCode = 0x59
	MCOPY   OpCode = 0x5e
)

func (op OpCode) String() string {
	switch op {
	case MLOAD:
		return "MLOAD"
	case MSTORE:
		return "MSTORE"
	case MSTORE8:
		return "MSTORE8"
	case MSIZE:
		return "MSIZE"
	case MCOPY:
		return "MCOPY"
	default:
		return "UNKNOWN"
	}
}

// ScopeContext bundles the per-call-frame state a memory opcode touches.
// A real interpreter's ScopeContext also carries the running Contract and
// call stack; this one holds only what MLOAD/MSTORE/MSTORE8/MSIZE/MCOPY
// need.
type ScopeContext struct {
	Stack  *stack.Stack
	Memory *Memory
}

// executionFunc performs an opcode's stack/memory effects after gas has
// already been charged.
type executionFunc func(scope *ScopeContext) error

// memorySizeFunc computes the number of bytes memory must be expanded to
// before the opcode reads or writes it, from the stack operands the
// opcode is about to pop. The second return value reports overflow.
type memorySizeFunc func(stk *stack.Stack) (uint64, bool)

// dynamicGasFunc computes the gas an opcode costs beyond its constant
// step cost, given the memory size it is about to expand to and the
// stack it will pop its operands from. When set, it subsumes the plain
// memory-expansion charge: Interpreter.Execute does not separately add
// memoryGasCost for an operation that defines one.
type dynamicGasFunc func(mem *Memory, memorySize uint64, stk *stack.Stack) (uint64, error)

// operation describes one jump-table entry: its constant/dynamic gas
// cost, stack arity, and the memory expansion it requires.
type operation struct {
	execute     executionFunc
	constantGas uint64
	dynamicGas  dynamicGasFunc
	minStack    int
	maxStack    int
	memorySize  memorySizeFunc
	cancunOnly  bool
}

// JumpTable maps an opcode byte to its operation. Entries outside the
// memory-family set are left nil.
type JumpTable [256]*operation

// newMemoryJumpTable builds the jump table for MLOAD, MSTORE, MSTORE8,
// MSIZE and MCOPY. MCOPY's entry is marked cancunOnly; Interpreter.Execute
// rejects it with ErrInstructionNotEnabled unless the Cancun flag is set.
func newMemoryJumpTable() *JumpTable {
	var jt JumpTable

	jt[MLOAD] = &operation{
		execute:     opMload,
		constantGas: GasFastestStep,
		minStack:    1,
		maxStack:    1,
		memorySize:  memoryMload,
	}
	jt[MSTORE] = &operation{
		execute:     opMstore,
		constantGas: GasFastestStep,
		minStack:    2,
		maxStack:    0,
		memorySize:  memoryMstore,
	}
	jt[MSTORE8] = &operation{
		execute:     opMstore8,
		constantGas: GasFastestStep,
		minStack:    2,
		maxStack:    0,
		memorySize:  memoryMstore8,
	}
	jt[MSIZE] = &operation{
		execute:     opMsize,
		constantGas: GasQuickStep,
		minStack:    0,
		maxStack:    1,
	}
	jt[MCOPY] = &operation{
		execute:     opMcopy,
		constantGas: GasFastestStep,
		dynamicGas:  gasMcopy,
		minStack:    3,
		maxStack:    0,
		memorySize:  memoryMcopy,
		cancunOnly:  true,
	}

	return &jt
}

func memoryMload(stk *stack.Stack) (uint64, bool) {
	off, ok := SafeUint256ToUint64(stk.Back(0))
	if !ok {
		return 0, true
	}
	return calcMemSize64WithUint(off, 32)
}

func memoryMstore(stk *stack.Stack) (uint64, bool) {
	off, ok := SafeUint256ToUint64(stk.Back(0))
	if !ok {
		return 0, true
	}
	return calcMemSize64WithUint(off, 32)
}

func memoryMstore8(stk *stack.Stack) (uint64, bool) {
	off, ok := SafeUint256ToUint64(stk.Back(0))
	if !ok {
		return 0, true
	}
	return calcMemSize64WithUint(off, 1)
}

func memoryMcopy(stk *stack.Stack) (uint64, bool) {
	dst := stk.Back(0)
	src := stk.Back(1)
	length := stk.Back(2)

	dstEnd := GetUint256().Add(dst, length)
	srcEnd := GetUint256().Add(src, length)
	defer PutUint256(dstEnd)
	defer PutUint256(srcEnd)
	if dstEnd.Cmp(srcEnd) > 0 {
		return calcMemSize64(dst, length)
	}
	return calcMemSize64(src, length)
}

// gasMcopy computes MCOPY's total dynamic cost: memory expansion plus a
// per-word charge for the copy itself, mirroring the *COPY opcode
// family.
func gasMcopy(mem *Memory, memorySize uint64, stk *stack.Stack) (uint64, error) {
	gas, err := memoryGasCost(mem, memorySize)
	if err != nil {
		return 0, err
	}
	words, overflow := safeMul(toWordSize(stk.Back(2).Uint64()), copyGasPerWord)
	if overflow {
		return 0, n42errors.ErrGasUintOverflow
	}
	total, overflow := safeAdd(gas, words)
	if overflow {
		return 0, n42errors.ErrGasUintOverflow
	}
	return total, nil
}

// opMload implements MLOAD: pop offset, push the 32-byte word at offset.
func opMload(scope *ScopeContext) error {
	offset := scope.Stack.Peek()
	word := scope.Memory.GetPtr(int64(offset.Uint64()), 32)
	offset.SetBytes(word)
	return nil
}

// opMstore implements MSTORE: pop offset and val, write val big-endian at
// offset.
func opMstore(scope *ScopeContext) error {
	offset := scope.Stack.Pop()
	val := scope.Stack.Pop()
	scope.Memory.Set32(offset.Uint64(), val)
	return nil
}

// opMstore8 implements MSTORE8: pop offset and val, write val&0xFF as a
// single byte at offset.
func opMstore8(scope *ScopeContext) error {
	offset := scope.Stack.Pop()
	val := scope.Stack.Pop()
	scope.Memory.store[offset.Uint64()] = byte(val.Uint64())
	return nil
}

// opMsize implements MSIZE: push the current memory size in bytes.
func opMsize(scope *ScopeContext) error {
	scope.Stack.Push(new(uint256.Int).SetUint64(uint64(scope.Memory.Len())))
	return nil
}

// opMcopy implements MCOPY: pop dst, src, length, copy length bytes
// within memory with overlap-safe semantics.
func opMcopy(scope *ScopeContext) error {
	dst := scope.Stack.Pop()
	src := scope.Stack.Pop()
	length := scope.Stack.Pop()
	scope.Memory.Copy(dst.Uint64(), src.Uint64(), length.Uint64())
	return nil
}
