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

// Package valuegen generates deterministic abi.Value trees from a seed,
// for mock RPC replies and the codec round-trip property test in this
// package's generator_test.go.
package valuegen

import (
	"math/big"
	"math/rand"
	"strconv"

	"github.com/n42blockchain/abicore/common/abi"
	"github.com/n42blockchain/abicore/common/types"
	n42errors "github.com/n42blockchain/abicore/pkg/errors"
)

// Limits bound how large a generated dynamic value can be, so a property
// test run stays fast and its failures stay small enough to read.
const (
	maxStringLen = 32
	maxBytesLen  = 64
	maxArrayLen  = 4
)

// Generator produces values for a ParamType tree from a seeded PRNG.
// Two Generators constructed from the same seed produce the identical
// sequence of values, making failures reproducible by seed alone.
type Generator struct {
	rng *rand.Rand
}

// New returns a Generator seeded deterministically from seed.
func New(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Value generates a value conforming to t, using the Value conventions
// documented on abi.Value.
func (g *Generator) Value(t abi.ParamType) (abi.Value, error) {
	switch t.Kind {
	case abi.KindBool:
		return g.rng.Intn(2) == 1, nil

	case abi.KindAddress:
		var addr types.Address
		g.rng.Read(addr[:])
		return addr, nil

	case abi.KindString:
		return g.randString(), nil

	case abi.KindBytes:
		return g.randBytes(g.rng.Intn(maxBytesLen + 1)), nil

	case abi.KindFixedBytes:
		return g.randBytes(t.Size), nil

	case abi.KindUint:
		return g.randUint(t.Size), nil

	case abi.KindInt:
		return g.randInt(t.Size), nil

	case abi.KindDynamicArray:
		n := g.rng.Intn(maxArrayLen + 1)
		return g.valueSlice(*t.Elem, n)

	case abi.KindFixedArray:
		return g.valueSlice(*t.Elem, t.Size)

	case abi.KindTuple:
		tv := make(abi.TupleValue, len(t.Components))
		for i, c := range t.Components {
			v, err := g.Value(c.Type)
			if err != nil {
				return nil, err
			}
			key := c.Name
			if key == "" {
				key = strconv.Itoa(i)
			}
			tv[key] = v
		}
		return tv, nil

	default:
		return nil, n42errors.ErrInvalidParamType
	}
}

func (g *Generator) valueSlice(elem abi.ParamType, n int) ([]interface{}, error) {
	vs := make([]interface{}, n)
	for i := range vs {
		v, err := g.Value(elem)
		if err != nil {
			return nil, err
		}
		vs[i] = v
	}
	return vs, nil
}

func (g *Generator) randString() string {
	n := g.rng.Intn(maxStringLen + 1)
	const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[g.rng.Intn(len(alphabet))]
	}
	return string(b)
}

func (g *Generator) randBytes(n int) []byte {
	b := make([]byte, n)
	g.rng.Read(b)
	return b
}

// randUint returns a uniformly random non-negative integer fitting bits
// bits.
func (g *Generator) randUint(bits int) *big.Int {
	nBytes := (bits + 7) / 8
	b := make([]byte, nBytes)
	g.rng.Read(b)
	bi := new(big.Int).SetBytes(b)
	max := new(big.Int).Lsh(big.NewInt(1), uint(bits))
	max.Sub(max, big.NewInt(1))
	return bi.And(bi, max)
}

// randInt returns a uniformly random integer fitting the signed range of
// bits bits.
func (g *Generator) randInt(bits int) *big.Int {
	u := g.randUint(bits)
	half := new(big.Int).Lsh(big.NewInt(1), uint(bits-1))
	if u.Cmp(half) >= 0 {
		mod := new(big.Int).Lsh(big.NewInt(1), uint(bits))
		u = new(big.Int).Sub(u, mod)
	}
	return u
}
