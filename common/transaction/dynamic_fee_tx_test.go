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
	"testing"

	"github.com/holiman/uint256"

	"github.com/n42blockchain/abicore/common/types"
)

func TestDynamicFeeTxFieldAccessors(t *testing.T) {
	to := types.HexToAddress("0x01")
	tx := &DynamicFeeTx{
		ChainID:   uint256.NewInt(1),
		Nonce:     3,
		GasTipCap: uint256.NewInt(2_000_000_000),
		GasFeeCap: uint256.NewInt(30_000_000_000),
		Gas:       21000,
		To:        &to,
		Value:     uint256.NewInt(0),
	}

	if tx.txType() != DynamicFeeTxType {
		t.Errorf("txType() = %d, want %d", tx.txType(), DynamicFeeTxType)
	}
	if tx.gasPrice().Cmp(tx.GasFeeCap) != 0 {
		t.Errorf("gasPrice() must report the fee cap for a 1559 transaction")
	}
	if tx.gasTipCap().Cmp(tx.GasTipCap) != 0 {
		t.Errorf("gasTipCap() mismatch")
	}

	t.Logf("✓ DynamicFeeTx field accessors work correctly")
}

func TestDynamicFeeTxCopyIsDeep(t *testing.T) {
	to := types.HexToAddress("0x01")
	tx := &DynamicFeeTx{
		ChainID:   uint256.NewInt(1),
		Nonce:     1,
		GasTipCap: uint256.NewInt(1),
		GasFeeCap: uint256.NewInt(2),
		Gas:       21000,
		To:        &to,
		Value:     uint256.NewInt(0),
		AccessList: AccessList{
			{Address: types.Address{0x01}, StorageKeys: []types.Hash{{0x01}}},
		},
	}

	cpy := tx.copy().(*DynamicFeeTx)
	cpy.AccessList[0].StorageKeys[0][0] = 0xff
	cpy.GasFeeCap.SetUint64(999)

	if tx.AccessList[0].StorageKeys[0][0] == 0xff {
		t.Errorf("mutating copy's AccessList mutated the original")
	}
	if tx.GasFeeCap.Uint64() == 999 {
		t.Errorf("mutating copy's GasFeeCap mutated the original")
	}

	t.Logf("✓ DynamicFeeTx.copy() produces an independent deep copy")
}

func TestDynamicFeeTxHashChangesWithFields(t *testing.T) {
	base := func() *DynamicFeeTx {
		to := types.HexToAddress("0x01")
		return &DynamicFeeTx{
			ChainID:   uint256.NewInt(1),
			Nonce:     1,
			GasTipCap: uint256.NewInt(1),
			GasFeeCap: uint256.NewInt(2),
			Gas:       21000,
			To:        &to,
			Value:     uint256.NewInt(0),
			V:         uint256.NewInt(0),
			R:         uint256.NewInt(0),
			S:         uint256.NewInt(0),
		}
	}

	tx1 := base()
	tx2 := base()
	if tx1.hash() != tx2.hash() {
		t.Errorf("identical DynamicFeeTx values hashed differently")
	}

	tx2.Nonce = 2
	if tx1.hash() == tx2.hash() {
		t.Errorf("changing the nonce did not change the hash")
	}

	t.Logf("✓ DynamicFeeTx.hash() reflects its fields")
}
