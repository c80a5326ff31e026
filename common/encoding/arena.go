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

package encoding

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	n42errors "github.com/n42blockchain/abicore/pkg/errors"
)

// Arena backs a single decode call's allocations: every []byte a decoder
// carves out of its input (the bytes-like leaves; tuple and array values
// are not arena-backed) is checked out from Arena's pooled ByteSlicePool
// rather than allocated directly, and all of it is returned to the pool
// in one Release call instead of piecemeal by the garbage collector.
// Arena is release-once: a second Release, or any Alloc after Release,
// fails with ErrArenaReleased rather than silently reusing freed memory.
type Arena struct {
	id       uuid.UUID
	released int32

	mu     sync.Mutex
	slices [][]byte
}

// NewArena returns a fresh Arena identified by a random id, useful for
// correlating an arena with the decode call that owns it in logs.
func NewArena() *Arena {
	return &Arena{id: uuid.New()}
}

// ID returns the arena's identity.
func (a *Arena) ID() uuid.UUID {
	return a.id
}

// Alloc returns a pooled []byte of exactly size bytes, tracked for
// release alongside every other allocation this arena has made.
func (a *Arena) Alloc(size int) ([]byte, error) {
	if atomic.LoadInt32(&a.released) != 0 {
		return nil, n42errors.ErrArenaReleased
	}
	b := GetByteSlice(size)
	a.mu.Lock()
	a.slices = append(a.slices, b)
	a.mu.Unlock()
	return b, nil
}

// Release returns every slice this arena allocated to ByteSlicePool. It
// is safe to call at most once; subsequent calls report ErrArenaReleased
// and do nothing.
func (a *Arena) Release() error {
	if !atomic.CompareAndSwapInt32(&a.released, 0, 1) {
		return n42errors.ErrArenaReleased
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, b := range a.slices {
		PutByteSlice(b)
	}
	a.slices = nil
	return nil
}
