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

func TestLegacyTxFieldAccessors(t *testing.T) {
	to := types.HexToAddress("0x0000000000000000000000000000000000000001")
	tx := &LegacyTx{
		Nonce:    7,
		GasPrice: uint256.NewInt(1_000_000_000),
		Gas:      21000,
		To:       &to,
		Value:    uint256.NewInt(42),
		Data:     []byte{0xde, 0xad},
	}

	if tx.txType() != LegacyTxType {
		t.Errorf("txType() = %d, want %d", tx.txType(), LegacyTxType)
	}
	if tx.nonce() != 7 {
		t.Errorf("nonce() = %d, want 7", tx.nonce())
	}
	if tx.gas() != 21000 {
		t.Errorf("gas() = %d, want 21000", tx.gas())
	}
	if tx.gasPrice().Cmp(tx.gasTipCap()) != 0 || tx.gasPrice().Cmp(tx.gasFeeCap()) != 0 {
		t.Errorf("legacy tx must report gasPrice as both tip and fee cap")
	}
	if tx.accessList() != nil {
		t.Errorf("accessList() = %v, want nil", tx.accessList())
	}
	if tx.from() != nil {
		t.Errorf("from() = %v, want nil (legacy tx carries no cached sender)", tx.from())
	}

	t.Logf("✓ LegacyTx field accessors work correctly")
}

func TestLegacyTxDeriveChainID(t *testing.T) {
	cases := []struct {
		name string
		v    *uint256.Int
		want uint64
	}{
		{"pre-EIP-155 v=27", uint256.NewInt(27), 0},
		{"pre-EIP-155 v=28", uint256.NewInt(28), 0},
		{"nil v", nil, 0},
		{"mainnet chain id 1, v=37", uint256.NewInt(37), 1},
		{"mainnet chain id 1, v=38", uint256.NewInt(38), 1},
	}
	for _, c := range cases {
		got := deriveChainID(c.v)
		if got.Uint64() != c.want {
			t.Errorf("%s: deriveChainID = %d, want %d", c.name, got.Uint64(), c.want)
		}
	}

	t.Logf("✓ deriveChainID recovers EIP-155 chain ids correctly")
}

func TestLegacyTxCopyIsDeep(t *testing.T) {
	to := types.HexToAddress("0x01")
	tx := &LegacyTx{
		Nonce:    1,
		GasPrice: uint256.NewInt(1),
		Gas:      21000,
		To:       &to,
		Value:    uint256.NewInt(2),
		Data:     []byte{1, 2, 3},
		V:        uint256.NewInt(27),
		R:        uint256.NewInt(3),
		S:        uint256.NewInt(4),
	}

	cpy := tx.copy().(*LegacyTx)
	cpy.Data[0] = 0xff
	cpy.GasPrice.SetUint64(999)
	*cpy.To = types.HexToAddress("0x02")

	if tx.Data[0] == 0xff {
		t.Errorf("mutating copy's Data mutated the original")
	}
	if tx.GasPrice.Uint64() == 999 {
		t.Errorf("mutating copy's GasPrice mutated the original")
	}
	if *tx.To == *cpy.To {
		t.Errorf("mutating copy's To mutated the original (pointer aliased)")
	}

	t.Logf("✓ LegacyTx.copy() produces an independent deep copy")
}

func TestLegacyTxHashIsDeterministic(t *testing.T) {
	to := types.HexToAddress("0x01")
	tx := &LegacyTx{
		Nonce:    0,
		GasPrice: uint256.NewInt(1),
		Gas:      21000,
		To:       &to,
		Value:    uint256.NewInt(0),
		V:        uint256.NewInt(27),
		R:        uint256.NewInt(1),
		S:        uint256.NewInt(1),
	}

	h1 := tx.hash()
	h2 := tx.hash()
	if h1 != h2 {
		t.Errorf("LegacyTx.hash() is not deterministic")
	}

	t.Logf("✓ LegacyTx.hash() is deterministic")
}
