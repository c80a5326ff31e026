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

// Pre-EIP-2718 legacy transaction: no type byte, no access list.

package transaction

import (
	"github.com/holiman/uint256"
	"github.com/n42blockchain/abicore/common/hash"
	"github.com/n42blockchain/abicore/common/types"
)

// LegacyTxType is the implicit type of a pre-EIP-2718 transaction. It is
// never prepended to the wire encoding the way the typed transactions'
// prefixes are; it exists only so dispatch code can treat all transactions
// uniformly through TxData.txType.
const LegacyTxType = 0x00

// LegacyTx is the original Ethereum transaction format. Its chain-id
// binding (EIP-155) lives entirely in the signature's V value rather than
// in an explicit field.
type LegacyTx struct {
	Nonce    uint64
	GasPrice *uint256.Int
	Gas      uint64
	To       *types.Address
	Value    *uint256.Int
	Data     []byte
	V, R, S  *uint256.Int
}

func (tx *LegacyTx) txType() byte            { return LegacyTxType }
func (tx *LegacyTx) chainID() *uint256.Int   { return deriveChainID(tx.V) }
func (tx *LegacyTx) accessList() AccessList  { return nil }
func (tx *LegacyTx) data() []byte            { return tx.Data }
func (tx *LegacyTx) gas() uint64             { return tx.Gas }
func (tx *LegacyTx) gasPrice() *uint256.Int  { return tx.GasPrice }
func (tx *LegacyTx) gasTipCap() *uint256.Int { return tx.GasPrice }
func (tx *LegacyTx) gasFeeCap() *uint256.Int { return tx.GasPrice }
func (tx *LegacyTx) value() *uint256.Int     { return tx.Value }
func (tx *LegacyTx) nonce() uint64           { return tx.Nonce }
func (tx *LegacyTx) to() *types.Address      { return tx.To }
func (tx *LegacyTx) from() *types.Address    { return nil }

func (tx *LegacyTx) copy() TxData {
	cpy := &LegacyTx{
		Nonce:    tx.Nonce,
		To:       copyAddressPtr(tx.To),
		Data:     append([]byte(nil), tx.Data...),
		Gas:      tx.Gas,
		GasPrice: new(uint256.Int),
		Value:    new(uint256.Int),
	}
	if tx.GasPrice != nil {
		cpy.GasPrice.Set(tx.GasPrice)
	}
	if tx.Value != nil {
		cpy.Value.Set(tx.Value)
	}
	if tx.V != nil {
		cpy.V = new(uint256.Int).Set(tx.V)
	}
	if tx.R != nil {
		cpy.R = new(uint256.Int).Set(tx.R)
	}
	if tx.S != nil {
		cpy.S = new(uint256.Int).Set(tx.S)
	}
	return cpy
}

// hash RLP-hashes the six legacy fields plus the raw signature. Unlike the
// typed transactions there is no type-byte prefix: a legacy transaction's
// wire form and its hash preimage are the unprefixed RLP list itself.
func (tx *LegacyTx) hash() types.Hash {
	return hash.RlpHash([]interface{}{
		tx.Nonce,
		tx.GasPrice,
		tx.Gas,
		tx.To,
		tx.Value,
		tx.Data,
		tx.V, tx.R, tx.S,
	})
}

func (tx *LegacyTx) rawSignatureValues() (v, r, s *uint256.Int) {
	return tx.V, tx.R, tx.S
}

func (tx *LegacyTx) setSignatureValues(chainID, v, r, s *uint256.Int) {
	tx.V, tx.R, tx.S = v, r, s
}

// deriveChainID recovers the EIP-155 chain id encoded into a legacy
// signature's V value. Pre-EIP-155 signatures (V == 27 or 28) carry no
// chain id and yield zero.
func deriveChainID(v *uint256.Int) *uint256.Int {
	if v == nil {
		return new(uint256.Int)
	}
	if v.Cmp(uint256.NewInt(35)) < 0 {
		return new(uint256.Int)
	}
	// chainID = (v - 35) / 2
	chainID := new(uint256.Int).Sub(v, uint256.NewInt(35))
	chainID.Rsh(chainID, 1)
	return chainID
}
