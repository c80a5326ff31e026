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

// Package eip712 implements EIP-712 typed structured data hashing on top
// of the common/abi atomic-value encoding conventions.
package eip712

import (
	"math/big"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/holiman/uint256"

	"github.com/n42blockchain/abicore/common/hash"
	"github.com/n42blockchain/abicore/common/types"
	n42errors "github.com/n42blockchain/abicore/pkg/errors"
)

// Field is one member of a struct type definition: {name, type} as they
// appear in an EIP-712 "types" section.
type Field struct {
	Name string
	Type string
}

// Domain is the conventional EIP712Domain separator struct. Fields left
// at their zero value are omitted from both the domain's type string and
// its encoding, per EIP-712's "absent fields" rule.
type Domain struct {
	Name              string
	Version           string
	ChainID           *big.Int
	VerifyingContract *types.Address
	Salt              []byte // must be exactly 32 bytes when present
}

// fields returns the domain's present fields in the fixed canonical
// order EIP-712 prescribes.
func (d Domain) fields() []Field {
	var fs []Field
	if d.Name != "" {
		fs = append(fs, Field{"name", "string"})
	}
	if d.Version != "" {
		fs = append(fs, Field{"version", "string"})
	}
	if d.ChainID != nil {
		fs = append(fs, Field{"chainId", "uint256"})
	}
	if d.VerifyingContract != nil {
		fs = append(fs, Field{"verifyingContract", "address"})
	}
	if len(d.Salt) > 0 {
		fs = append(fs, Field{"salt", "bytes32"})
	}
	return fs
}

func (d Domain) values() map[string]interface{} {
	v := make(map[string]interface{})
	if d.Name != "" {
		v["name"] = d.Name
	}
	if d.Version != "" {
		v["version"] = d.Version
	}
	if d.ChainID != nil {
		v["chainId"] = d.ChainID
	}
	if d.VerifyingContract != nil {
		v["verifyingContract"] = *d.VerifyingContract
	}
	if len(d.Salt) > 0 {
		v["salt"] = d.Salt
	}
	return v
}

// TypedData is a full EIP-712 message: the struct type definitions
// referenced by the primary type and its nested fields, the primary
// type's name, the verifying domain, and the message value tree (field
// name to Go value, using the same conventions as common/abi.Value).
type TypedData struct {
	Types       map[string][]Field
	PrimaryType string
	Domain      Domain
	Message     map[string]interface{}
}

// HashTypedData computes keccak(0x19 || 0x01 || domainSeparator ||
// hashStruct(PrimaryType, Message)), the final EIP-712 digest a Signer
// signs.
func HashTypedData(td TypedData) (types.Hash, error) {
	domainHash, err := hashStruct(domainTypes(td.Domain), "EIP712Domain", td.Domain.values())
	if err != nil {
		return types.Hash{}, err
	}
	msgHash, err := hashStruct(td.Types, td.PrimaryType, td.Message)
	if err != nil {
		return types.Hash{}, err
	}
	buf := make([]byte, 0, 2+32+32)
	buf = append(buf, 0x19, 0x01)
	buf = append(buf, domainHash[:]...)
	buf = append(buf, msgHash[:]...)
	return hash.Hash(buf), nil
}

func domainTypes(d Domain) map[string][]Field {
	return map[string][]Field{"EIP712Domain": d.fields()}
}

// hashStruct computes keccak(typeHash(primaryType) || encodeData(...)).
func hashStruct(typeDefs map[string][]Field, primaryType string, data map[string]interface{}) (types.Hash, error) {
	enc, err := encodeData(typeDefs, primaryType, data)
	if err != nil {
		return types.Hash{}, err
	}
	th, err := typeHash(typeDefs, primaryType)
	if err != nil {
		return types.Hash{}, err
	}
	buf := make([]byte, 0, 64)
	buf = append(buf, th[:]...)
	buf = append(buf, enc...)
	return hash.Hash(buf), nil
}

// typeHash returns keccak(encodeType(primaryType)).
func typeHash(typeDefs map[string][]Field, primaryType string) (types.Hash, error) {
	s, err := encodeType(typeDefs, primaryType)
	if err != nil {
		return types.Hash{}, err
	}
	return hash.Hash([]byte(s)), nil
}

// encodeType renders primaryType's definition followed by every struct
// type it references (directly or transitively), each referenced type
// sorted alphabetically, as "Name(type1 name1,type2 name2,...)"
// concatenated with no separator.
func encodeType(typeDefs map[string][]Field, primaryType string) (string, error) {
	referenced := make(map[string]bool)
	if err := collectReferencedTypes(typeDefs, primaryType, referenced); err != nil {
		return "", err
	}
	delete(referenced, primaryType)

	names := make([]string, 0, len(referenced))
	for n := range referenced {
		names = append(names, n)
	}
	sort.Strings(names)

	var b strings.Builder
	writeStructDef(&b, primaryType, typeDefs[primaryType])
	for _, n := range names {
		writeStructDef(&b, n, typeDefs[n])
	}
	return b.String(), nil
}

func writeStructDef(b *strings.Builder, name string, fields []Field) {
	b.WriteString(name)
	b.WriteByte('(')
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(f.Type)
		b.WriteByte(' ')
		b.WriteString(f.Name)
	}
	b.WriteByte(')')
}

func collectReferencedTypes(typeDefs map[string][]Field, name string, seen map[string]bool) error {
	if seen[name] {
		return nil
	}
	fields, ok := typeDefs[name]
	if !ok {
		return n42errors.ErrInvalidParamType
	}
	seen[name] = true
	for _, f := range fields {
		base, _, isArray := parseTypeString(f.Type)
		if !isArray {
			base = f.Type
		}
		if _, ok := typeDefs[base]; ok {
			if err := collectReferencedTypes(typeDefs, base, seen); err != nil {
				return err
			}
		}
	}
	return nil
}

// encodeData concatenates each of primaryType's fields' 32-byte encoded
// slots, in declaration order.
func encodeData(typeDefs map[string][]Field, primaryType string, data map[string]interface{}) ([]byte, error) {
	fields, ok := typeDefs[primaryType]
	if !ok {
		return nil, n42errors.ErrInvalidParamType
	}
	out := make([]byte, 0, len(fields)*32)
	for _, f := range fields {
		v, ok := data[f.Name]
		if !ok {
			return nil, n42errors.ErrInvalidParamType
		}
		enc, err := encodeField(typeDefs, f.Type, v)
		if err != nil {
			return nil, err
		}
		out = append(out, enc...)
	}
	return out, nil
}

// encodeField returns the 32-byte slot value for a single field of type
// typ and value v: a hashStruct digest for nested struct types, a
// keccak digest for string/bytes, a keccak-of-concatenated-elements
// digest for arrays, and the standard 32-byte padded word for every
// other atomic ABI type.
func encodeField(typeDefs map[string][]Field, typ string, v interface{}) ([]byte, error) {
	base, _, isArray := parseTypeString(typ)
	if isArray {
		vs, ok := v.([]interface{})
		if !ok {
			return nil, n42errors.ErrInvalidParamType
		}
		var concat []byte
		for _, elem := range vs {
			enc, err := encodeField(typeDefs, base, elem)
			if err != nil {
				return nil, err
			}
			concat = append(concat, enc...)
		}
		digest := hash.Hash(concat)
		return digest[:], nil
	}

	if _, ok := typeDefs[typ]; ok {
		m, ok := v.(map[string]interface{})
		if !ok {
			return nil, n42errors.ErrInvalidParamType
		}
		h, err := hashStruct(typeDefs, typ, m)
		if err != nil {
			return nil, err
		}
		return h[:], nil
	}

	return encodeAtomic(typ, v)
}

var (
	arraySuffixRe = regexp.MustCompile(`^(.*)\[(\d*)\]$`)
	bytesNRe      = regexp.MustCompile(`^bytes(\d+)$`)
	uintNRe       = regexp.MustCompile(`^uint(\d+)$`)
	intNRe        = regexp.MustCompile(`^int(\d+)$`)
)

// parseTypeString splits a trailing array suffix off typ, returning the
// element type, its fixed length (-1 if dynamic or not an array), and
// whether typ was an array at all.
func parseTypeString(typ string) (base string, length int, isArray bool) {
	m := arraySuffixRe.FindStringSubmatch(typ)
	if m == nil {
		return typ, 0, false
	}
	if m[2] == "" {
		return m[1], -1, true
	}
	n, _ := strconv.Atoi(m[2])
	return m[1], n, true
}

// encodeAtomic renders a non-array, non-struct field value as its
// 32-byte EIP-712 encoded slot.
func encodeAtomic(typ string, v interface{}) ([]byte, error) {
	switch {
	case typ == "bool":
		b, ok := v.(bool)
		if !ok {
			return nil, n42errors.ErrInvalidParamType
		}
		word := make([]byte, 32)
		if b {
			word[31] = 1
		}
		return word, nil

	case typ == "address":
		addr, ok := v.(types.Address)
		if !ok {
			return nil, n42errors.ErrInvalidParamType
		}
		word := make([]byte, 32)
		copy(word[32-types.AddressLength:], addr[:])
		return word, nil

	case typ == "string":
		s, ok := v.(string)
		if !ok {
			return nil, n42errors.ErrInvalidParamType
		}
		digest := hash.Hash([]byte(s))
		return digest[:], nil

	case typ == "bytes":
		b, ok := v.([]byte)
		if !ok {
			return nil, n42errors.ErrInvalidParamType
		}
		digest := hash.Hash(b)
		return digest[:], nil

	case bytesNRe.MatchString(typ):
		m := bytesNRe.FindStringSubmatch(typ)
		n, _ := strconv.Atoi(m[1])
		b, ok := v.([]byte)
		if !ok || len(b) != n {
			return nil, n42errors.ErrInvalidLength
		}
		word := make([]byte, 32)
		copy(word, b)
		return word, nil

	case uintNRe.MatchString(typ):
		m := uintNRe.FindStringSubmatch(typ)
		bits, _ := strconv.Atoi(m[1])
		bi, ok := v.(*big.Int)
		if !ok || bi.Sign() < 0 || bi.BitLen() > bits {
			return nil, n42errors.ErrValueOutOfRange
		}
		u, overflow := uint256.FromBig(bi)
		if overflow {
			return nil, n42errors.ErrValueOutOfRange
		}
		word := make([]byte, 32)
		u.WriteToSlice(word)
		return word, nil

	case intNRe.MatchString(typ):
		m := intNRe.FindStringSubmatch(typ)
		bits, _ := strconv.Atoi(m[1])
		bi, ok := v.(*big.Int)
		if !ok {
			return nil, n42errors.ErrInvalidParamType
		}
		half := new(big.Int).Lsh(big.NewInt(1), uint(bits-1))
		min := new(big.Int).Neg(half)
		max := new(big.Int).Sub(half, big.NewInt(1))
		if bi.Cmp(min) < 0 || bi.Cmp(max) > 0 {
			return nil, n42errors.ErrValueOutOfRange
		}
		repr := bi
		if bi.Sign() < 0 {
			mod := new(big.Int).Lsh(big.NewInt(1), 256)
			repr = new(big.Int).Add(mod, bi)
		}
		u, overflow := uint256.FromBig(repr)
		if overflow {
			return nil, n42errors.ErrValueOutOfRange
		}
		word := make([]byte, 32)
		u.WriteToSlice(word)
		return word, nil

	default:
		return nil, n42errors.ErrInvalidParamType
	}
}
