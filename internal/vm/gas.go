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
	"math"

	"github.com/holiman/uint256"

	n42errors "github.com/n42blockchain/abicore/pkg/errors"
)

// Fixed per-step gas costs for the opcode classes this package
// implements, named the way go-ethereum's core/vm/gas.go names them.
const (
	GasQuickStep   uint64 = 2
	GasFastestStep uint64 = 3

	// memoryGasPerWord and quadCoeffDiv are the linear and quadratic
	// coefficients of the memory-expansion formula 3w + floor(w^2/512).
	memoryGasPerWord uint64 = 3
	quadCoeffDiv     uint64 = 512

	// copyGasPerWord is the additional per-word charge MCOPY levies on
	// top of memory expansion, mirroring the *COPY opcode family.
	copyGasPerWord uint64 = 3

	// maxMemorySize bounds the byte size memory expansion will ever be
	// asked to charge for; beyond it the cost computation itself would
	// overflow uint64 arithmetic before the OutOfGas check ever ran.
	maxMemorySize uint64 = 0x1FFFFFFFE0
)

// toWordSize rounds size up to the nearest multiple of 32, expressed in
// words rather than bytes.
func toWordSize(size uint64) uint64 {
	if size > math.MaxUint64-31 {
		return math.MaxUint64/32 + 1
	}
	return (size + 31) / 32
}

// safeAdd adds a and b, reporting overflow instead of wrapping.
func safeAdd(a, b uint64) (uint64, bool) {
	sum := a + b
	return sum, sum < a
}

// safeMul multiplies a and b, reporting overflow instead of wrapping.
func safeMul(a, b uint64) (uint64, bool) {
	if a == 0 || b == 0 {
		return 0, false
	}
	product := a * b
	return product, product/a != b
}

// calcMemSize64 computes off+length as a uint64, reporting overflow. It is
// the shape every memory-touching opcode uses to turn its (offset,
// length) stack operands into the byte size Resize/GasTracker need.
func calcMemSize64(off, length *uint256.Int) (uint64, bool) {
	if length.IsZero() {
		return 0, false
	}
	if !off.IsUint64() || !length.IsUint64() {
		return 0, true
	}
	return calcMemSize64WithUint(off.Uint64(), length.Uint64())
}

func calcMemSize64WithUint(off, length uint64) (uint64, bool) {
	sum, overflow := safeAdd(off, length)
	if overflow || sum > maxMemorySize {
		return 0, true
	}
	return sum, false
}

// GasTracker accounts gas spent against a fixed limit: every memory
// expansion charges the quadratic-plus-linear growth formula, and a
// charge that would exceed the limit fails with OutOfGas rather than
// wrapping or partially applying.
type GasTracker struct {
	limit uint64
	used  uint64
}

// NewGasTracker returns a tracker with the given gas limit.
func NewGasTracker(limit uint64) *GasTracker {
	return &GasTracker{limit: limit}
}

// Used returns the gas consumed so far.
func (g *GasTracker) Used() uint64 { return g.used }

// Remaining returns the gas left before the limit is reached.
func (g *GasTracker) Remaining() uint64 { return g.limit - g.used }

// Charge deducts amount from the remaining gas, failing with
// pkg/errors.ErrOutOfGas without mutating the tracker if amount would
// overrun the limit.
func (g *GasTracker) Charge(amount uint64) error {
	if amount > g.limit-g.used {
		outOfGasTotal.Inc()
		return n42errors.ErrOutOfGas
	}
	g.used += amount
	return nil
}

// Reset zeroes gas used, for reuse across interpreter invocations.
func (g *GasTracker) Reset(limit uint64) {
	g.limit = limit
	g.used = 0
}

// memoryGasCost returns the incremental gas cost of growing mem to
// newMemSize bytes, per the formula 3w + floor(w^2/512) where w is
// newMemSize rounded up to a word count. It charges only the delta above
// whatever watermark mem.lastGasCost already recorded, and updates that
// watermark. A newMemSize at or below mem.Len() costs nothing.
func memoryGasCost(mem *Memory, newMemSize uint64) (uint64, error) {
	if newMemSize == 0 {
		return 0, nil
	}
	if newMemSize > maxMemorySize {
		return 0, n42errors.ErrGasUintOverflow
	}
	newMemSizeWords := toWordSize(newMemSize)
	newMemSize = newMemSizeWords * 32

	if newMemSize > uint64(mem.Len()) {
		square := newMemSizeWords * newMemSizeWords
		linCoef := newMemSizeWords * memoryGasPerWord
		quadCoef := square / quadCoeffDiv
		newTotalFee := linCoef + quadCoef

		fee := newTotalFee - mem.lastGasCost
		mem.lastGasCost = newTotalFee
		return fee, nil
	}
	return 0, nil
}
