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

// Package rlp implements the Ethereum Recursive Length Prefix encoding.
//
// RLP has three encoding rules:
//
//   - A single byte below 0x80 encodes as itself.
//   - A byte string (0 to 55 bytes) is encoded as a single byte with value
//     0x80+len(string), followed by the string. Longer strings are prefixed
//     by 0xb7+len(length-of-length), then the length, then the string.
//   - A list follows the same prefix scheme shifted by 0xc0/0xf7 instead of
//     0x80/0xb7, with the payload being the concatenation of the RLP
//     encoding of each item.
//
// Decoding enforces the canonical (minimal) form: a length prefix must be
// absent whenever the payload fits in a single byte below 0x80, and the
// long-form length-of-length must never carry leading zero bytes. Any
// deviation is rejected rather than silently accepted, since a non-minimal
// encoding is either a malformed peer or an attempt to smuggle ambiguous
// bytes past a hash check.
package rlp
