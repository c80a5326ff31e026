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

package transaction

import (
	"sync"

	"github.com/holiman/uint256"
)

// TxDataPool provides pooled LegacyTx envelopes: Deserialize checks one
// out for every legacy payload it parses, and Transaction.Release checks
// it back in once the caller is done with the decoded transaction.
var TxDataPool = &sync.Pool{
	New: func() interface{} {
		return &LegacyTx{
			GasPrice: new(uint256.Int),
			Value:    new(uint256.Int),
		}
	},
}

// GetPooledLegacyTx gets a LegacyTx from the pool.
func GetPooledLegacyTx() *LegacyTx {
	return TxDataPool.Get().(*LegacyTx)
}

// PutPooledLegacyTx returns a LegacyTx to the pool after clearing it.
func PutPooledLegacyTx(tx *LegacyTx) {
	if tx == nil {
		return
	}
	tx.Nonce = 0
	if tx.GasPrice == nil {
		tx.GasPrice = new(uint256.Int)
	}
	tx.GasPrice.Clear()
	tx.Gas = 0
	tx.To = nil
	if tx.Value == nil {
		tx.Value = new(uint256.Int)
	}
	tx.Value.Clear()
	tx.Data = nil
	tx.V = nil
	tx.R = nil
	tx.S = nil
	TxDataPool.Put(tx)
}

// DynamicFeeTxPool provides pooled DynamicFeeTx envelopes, checked out
// and back in the same way as TxDataPool.
var DynamicFeeTxPool = &sync.Pool{
	New: func() interface{} {
		return &DynamicFeeTx{
			GasTipCap: new(uint256.Int),
			GasFeeCap: new(uint256.Int),
			Value:     new(uint256.Int),
		}
	},
}

// GetPooledDynamicFeeTx gets a DynamicFeeTx from the pool.
func GetPooledDynamicFeeTx() *DynamicFeeTx {
	return DynamicFeeTxPool.Get().(*DynamicFeeTx)
}

// PutPooledDynamicFeeTx returns a DynamicFeeTx to the pool after clearing it.
func PutPooledDynamicFeeTx(tx *DynamicFeeTx) {
	if tx == nil {
		return
	}
	tx.ChainID = nil
	tx.Nonce = 0
	if tx.GasTipCap == nil {
		tx.GasTipCap = new(uint256.Int)
	}
	tx.GasTipCap.Clear()
	if tx.GasFeeCap == nil {
		tx.GasFeeCap = new(uint256.Int)
	}
	tx.GasFeeCap.Clear()
	tx.Gas = 0
	tx.To = nil
	if tx.Value == nil {
		tx.Value = new(uint256.Int)
	}
	tx.Value.Clear()
	tx.Data = nil
	tx.AccessList = nil
	tx.V = nil
	tx.R = nil
	tx.S = nil
	DynamicFeeTxPool.Put(tx)
}
