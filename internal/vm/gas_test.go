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

// Tests adapted from go-ethereum and erigon VM test suites.

package vm

import (
	"testing"

	n42errors "github.com/n42blockchain/abicore/pkg/errors"
)

// =============================================================================
// GasTracker Tests (Reference: go-ethereum/core/vm/gas.go)
// =============================================================================

func TestGasTrackerChargeWithinLimit(t *testing.T) {
	g := NewGasTracker(100)
	if err := g.Charge(40); err != nil {
		t.Fatalf("unexpected error charging within limit: %v", err)
	}
	if g.Used() != 40 {
		t.Errorf("expected used=40, got %d", g.Used())
	}
	if g.Remaining() != 60 {
		t.Errorf("expected remaining=60, got %d", g.Remaining())
	}
	t.Logf("✓ Charge within limit updates used/remaining correctly")
}

func TestGasTrackerChargeExceedsLimitFails(t *testing.T) {
	g := NewGasTracker(10)
	err := g.Charge(11)
	if !n42errors.Is(err, n42errors.ErrOutOfGas) {
		t.Fatalf("expected ErrOutOfGas, got %v", err)
	}
	if g.Used() != 0 {
		t.Errorf("a failed charge must not mutate used, got %d", g.Used())
	}
	t.Logf("✓ Charge exceeding limit fails with ErrOutOfGas and leaves used unmodified")
}

func TestGasTrackerChargeExactRemainingSucceeds(t *testing.T) {
	g := NewGasTracker(10)
	if err := g.Charge(10); err != nil {
		t.Fatalf("charging exactly the remaining gas should succeed: %v", err)
	}
	if g.Remaining() != 0 {
		t.Errorf("expected remaining=0, got %d", g.Remaining())
	}
	t.Logf("✓ Charging exactly the remaining gas succeeds and exhausts the tracker")
}

func TestGasTrackerReset(t *testing.T) {
	g := NewGasTracker(10)
	if err := g.Charge(10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	g.Reset(50)
	if g.Used() != 0 {
		t.Errorf("expected used=0 after Reset, got %d", g.Used())
	}
	if g.Remaining() != 50 {
		t.Errorf("expected remaining=50 after Reset, got %d", g.Remaining())
	}
	t.Logf("✓ Reset zeroes used and installs the new limit")
}

func TestToWordSizeRoundsUpTo32(t *testing.T) {
	tests := []struct {
		size     uint64
		expected uint64
	}{
		{0, 0},
		{1, 1},
		{32, 1},
		{33, 2},
		{64, 2},
	}
	for _, tt := range tests {
		if got := toWordSize(tt.size); got != tt.expected {
			t.Errorf("toWordSize(%d) = %d, want %d", tt.size, got, tt.expected)
		}
	}
	t.Logf("✓ toWordSize rounds byte sizes up to the nearest 32-byte word count")
}

func TestMemoryGasCostChargesOnlyTheDelta(t *testing.T) {
	mem := NewMemory()
	_, err := memoryGasCost(mem, 32)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := memoryGasCost(mem, 32)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second != 0 {
		t.Errorf("re-requesting the same size already paid for should cost 0, got %d", second)
	}
	t.Logf("✓ memoryGasCost only charges growth beyond the prior watermark")
}

func TestMemoryGasCostGrowsQuadratically(t *testing.T) {
	mem := NewMemory()
	small, err := memoryGasCost(mem, 32)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	large, err := memoryGasCost(mem, 32*1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if large <= small*1000 {
		t.Errorf("expected superlinear growth: small=%d large=%d", small, large)
	}
	t.Logf("✓ memory expansion cost grows superlinearly with size")
}
