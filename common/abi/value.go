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

import "strconv"

// Value is the Go representation of a value conforming to a ParamType.
// There is no generated per-ABI typed shim; callers build and read a
// dynamic value tree directly using these conventions:
//
//	address             types.Address
//	bool                bool
//	string               string
//	bytes / fixedBytes(n) []byte
//	int(bits) / uint(bits) *big.Int
//	dynamicArray / fixedArray []interface{}
//	tuple               TupleValue
type Value = interface{}

// TupleValue is a tuple's field-keyed value record, keyed by component
// name. A component with an empty Name is addressed by its positional
// index rendered as a string ("0", "1", ...), so tuples built from
// unnamed components (common in raw ABI fragments) still round-trip.
type TupleValue map[string]interface{}

// componentKey returns the key a TupleValue uses for the i-th component.
func componentKey(c AbiParameter, i int) string {
	if c.Name != "" {
		return c.Name
	}
	return strconv.Itoa(i)
}

// componentTypes extracts the ParamType list from a tuple's components,
// in declaration order.
func componentTypes(components []AbiParameter) []ParamType {
	ts := make([]ParamType, len(components))
	for i, c := range components {
		ts[i] = c.Type
	}
	return ts
}

// repeatType returns a slice of n copies of t, the parameter-list shape
// encodeParamList/decodeParamList expect for a fixed- or dynamic-array's
// elements.
func repeatType(t ParamType, n int) []ParamType {
	ts := make([]ParamType, n)
	for i := range ts {
		ts[i] = t
	}
	return ts
}
