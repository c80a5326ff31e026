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
	"github.com/n42blockchain/abicore/internal/vm/stack"
	n42errors "github.com/n42blockchain/abicore/pkg/errors"
)

// maxStackDepth is the conventional EVM operand stack limit; a push that
// would cross it fails with ErrStackOverflow rather than growing forever.
const maxStackDepth = 1024

// Interpreter owns a Stack, Memory and GasTracker for the lifetime of a
// single execution and steps the memory-family opcodes against them. It
// has no notion of a program counter or bytecode: callers drive it one
// opcode at a time via Execute, supplying operands on the Stack
// themselves before each call.
type Interpreter struct {
	Stack  *stack.Stack
	Memory *Memory
	Gas    *GasTracker

	jt            *JumpTable
	cancunEnabled bool
}

// NewInterpreter returns an Interpreter with a fresh Stack and Memory and
// the given gas limit. cancunEnabled gates MCOPY.
func NewInterpreter(gasLimit uint64, cancunEnabled bool) *Interpreter {
	return &Interpreter{
		Stack:         stack.New(),
		Memory:        NewMemory(),
		Gas:           NewGasTracker(gasLimit),
		jt:            newMemoryJumpTable(),
		cancunEnabled: cancunEnabled,
	}
}

// Release returns the Interpreter's Stack and Memory backing buffer to
// their pools. The Interpreter must not be used afterwards.
func (in *Interpreter) Release() {
	stack.ReturnNormalStack(in.Stack)
	in.Memory.Release()
}

// Execute performs one step of op against the Interpreter's Stack and
// Memory, charging gas (constant step cost, memory expansion, and any
// opcode-specific dynamic cost) before mutating any state. A failure at
// any stage — unknown/disabled opcode, stack underflow/overflow, operand
// overflow, or insufficient gas — leaves Stack, Memory and Gas exactly as
// they were before the call.
func (in *Interpreter) Execute(op OpCode) error {
	entry := in.jt[op]
	if entry == nil {
		return n42errors.ErrInstructionNotEnabled
	}
	if entry.cancunOnly && !in.cancunEnabled {
		return n42errors.ErrInstructionNotEnabled
	}
	if in.Stack.Len() < entry.minStack {
		return n42errors.ErrStackUnderflow
	}
	if delta := entry.maxStack - entry.minStack; delta > 0 && in.Stack.Len()+delta > maxStackDepth {
		return n42errors.ErrStackOverflow
	}

	var memSize uint64
	if entry.memorySize != nil {
		size, overflow := entry.memorySize(in.Stack)
		if overflow {
			return n42errors.ErrOverflow
		}
		words := toWordSize(size)
		aligned, overflow := safeMul(words, 32)
		if overflow {
			return n42errors.ErrOverflow
		}
		memSize = aligned
	}

	// memoryGasCost advances the memory's expansion-fee watermark as it
	// computes the delta; restore it on any failure after that point so a
	// rejected step leaves no trace.
	watermark := in.Memory.lastGasCost

	cost := entry.constantGas
	var ok bool
	switch {
	case entry.dynamicGas != nil:
		dyn, err := entry.dynamicGas(in.Memory, memSize, in.Stack)
		if err != nil {
			in.Memory.lastGasCost = watermark
			return err
		}
		if cost, ok = safeAdd(cost, dyn); !ok {
			in.Memory.lastGasCost = watermark
			return n42errors.ErrGasUintOverflow
		}
	case memSize > 0:
		memCost, err := memoryGasCost(in.Memory, memSize)
		if err != nil {
			in.Memory.lastGasCost = watermark
			return err
		}
		if cost, ok = safeAdd(cost, memCost); !ok {
			in.Memory.lastGasCost = watermark
			return n42errors.ErrGasUintOverflow
		}
	}

	if err := in.Gas.Charge(cost); err != nil {
		in.Memory.lastGasCost = watermark
		return err
	}
	if memSize > uint64(in.Memory.Len()) {
		in.Memory.Resize(memSize)
	}

	scope := &ScopeContext{Stack: in.Stack, Memory: in.Memory}
	return entry.execute(scope)
}
