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

// EIP-2930: Optional access lists
// https://eips.ethereum.org/EIPS/eip-2930

package transaction

import (
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/holiman/uint256"

	"github.com/n42blockchain/abicore/common/hash"
	"github.com/n42blockchain/abicore/common/types"
)

// AccessListTxType is the transaction type for EIP-2930 access-list transactions.
const AccessListTxType = 0x01

// AccessTuple is a tuple of an address and the storage keys within it that
// a transaction commits to accessing ahead of execution.
type AccessTuple struct {
	Address     types.Address `json:"address"`
	StorageKeys []types.Hash  `json:"storageKeys"`
}

// AccessList is an EIP-2930 access list.
type AccessList []AccessTuple

// StorageKeys returns the total number of storage keys across every tuple
// in the list, the quantity EIP-2930 gas accounting charges per key.
func (al AccessList) StorageKeys() int {
	n := 0
	for _, tuple := range al {
		n += len(tuple.StorageKeys)
	}
	return n
}

// DistinctAddresses returns the number of unique addresses in the list.
// EIP-2930 charges per tuple, so a list repeating an address pays for the
// same account more than once; wallets use this to spot mergeable tuples
// before signing.
func (al AccessList) DistinctAddresses() int {
	set := mapset.NewThreadUnsafeSet[types.Address]()
	for _, tuple := range al {
		set.Add(tuple.Address)
	}
	return set.Cardinality()
}

func copyAccessListTuples(al AccessList) AccessList {
	if al == nil {
		return nil
	}
	cpy := make(AccessList, len(al))
	for i, tuple := range al {
		keys := make([]types.Hash, len(tuple.StorageKeys))
		copy(keys, tuple.StorageKeys)
		cpy[i] = AccessTuple{Address: tuple.Address, StorageKeys: keys}
	}
	return cpy
}

// AccessListTx is an EIP-2930 transaction: a legacy-priced transaction
// annotated with an access list.
type AccessListTx struct {
	ChainID    *uint256.Int
	Nonce      uint64
	GasPrice   *uint256.Int
	Gas        uint64
	To         *types.Address
	From       *types.Address `rlp:"-"`
	Value      *uint256.Int
	Data       []byte
	AccessList AccessList
	V, R, S    *uint256.Int
}

func (tx *AccessListTx) txType() byte            { return AccessListTxType }
func (tx *AccessListTx) chainID() *uint256.Int   { return tx.ChainID }
func (tx *AccessListTx) accessList() AccessList  { return tx.AccessList }
func (tx *AccessListTx) data() []byte            { return tx.Data }
func (tx *AccessListTx) gas() uint64             { return tx.Gas }
func (tx *AccessListTx) gasPrice() *uint256.Int  { return tx.GasPrice }
func (tx *AccessListTx) gasTipCap() *uint256.Int { return tx.GasPrice }
func (tx *AccessListTx) gasFeeCap() *uint256.Int { return tx.GasPrice }
func (tx *AccessListTx) value() *uint256.Int     { return tx.Value }
func (tx *AccessListTx) nonce() uint64           { return tx.Nonce }
func (tx *AccessListTx) to() *types.Address      { return tx.To }
func (tx *AccessListTx) from() *types.Address    { return tx.From }

func (tx *AccessListTx) copy() TxData {
	cpy := &AccessListTx{
		Nonce:      tx.Nonce,
		To:         copyAddressPtr(tx.To),
		From:       copyAddressPtr(tx.From),
		Data:       append([]byte(nil), tx.Data...),
		Gas:        tx.Gas,
		AccessList: copyAccessListTuples(tx.AccessList),
		ChainID:    new(uint256.Int),
		GasPrice:   new(uint256.Int),
		Value:      new(uint256.Int),
		V:          new(uint256.Int),
		R:          new(uint256.Int),
		S:          new(uint256.Int),
	}
	if tx.ChainID != nil {
		cpy.ChainID.Set(tx.ChainID)
	}
	if tx.GasPrice != nil {
		cpy.GasPrice.Set(tx.GasPrice)
	}
	if tx.Value != nil {
		cpy.Value.Set(tx.Value)
	}
	if tx.V != nil {
		cpy.V.Set(tx.V)
	}
	if tx.R != nil {
		cpy.R.Set(tx.R)
	}
	if tx.S != nil {
		cpy.S.Set(tx.S)
	}
	return cpy
}

func (tx *AccessListTx) hash() types.Hash {
	return hash.PrefixedRlpHash(AccessListTxType, []interface{}{
		tx.ChainID,
		tx.Nonce,
		tx.GasPrice,
		tx.Gas,
		tx.To,
		tx.Value,
		tx.Data,
		tx.AccessList,
		tx.V, tx.R, tx.S,
	})
}

func (tx *AccessListTx) rawSignatureValues() (v, r, s *uint256.Int) {
	return tx.V, tx.R, tx.S
}

func (tx *AccessListTx) setSignatureValues(chainID, v, r, s *uint256.Int) {
	tx.ChainID = chainID
	tx.V = v
	tx.R = r
	tx.S = s
}
