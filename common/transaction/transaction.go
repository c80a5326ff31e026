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

// Package transaction implements the EIP-2718 typed transaction envelopes
// (legacy, EIP-2930, EIP-1559, EIP-4844, EIP-7702) and the serialization,
// hashing and pre-sign assertion rules shared across all of them.
package transaction

import (
	"io"

	"github.com/holiman/uint256"
	pkgerrors "github.com/pkg/errors"

	"github.com/n42blockchain/abicore/common/rlp"
	"github.com/n42blockchain/abicore/common/types"
	n42errors "github.com/n42blockchain/abicore/pkg/errors"
)

// TxData is the interface each concrete envelope (LegacyTx, AccessListTx,
// DynamicFeeTx, BlobTx, SetCodeTx) implements. Transaction dispatches every
// operation through it rather than switching on concrete type.
type TxData interface {
	txType() byte
	chainID() *uint256.Int
	nonce() uint64
	gas() uint64
	gasPrice() *uint256.Int
	gasTipCap() *uint256.Int
	gasFeeCap() *uint256.Int
	value() *uint256.Int
	data() []byte
	to() *types.Address
	from() *types.Address
	accessList() AccessList
	copy() TxData
	hash() types.Hash
	rawSignatureValues() (v, r, s *uint256.Int)
	setSignatureValues(chainID, v, r, s *uint256.Int)
}

// Transaction is the type-erased envelope wrapper callers hold. It caches
// nothing beyond what the inner TxData itself caches, so equal envelopes
// compare equal and are safe to share across goroutines read-only.
type Transaction struct {
	inner TxData
}

// NewTransaction wraps a concrete envelope.
func NewTransaction(inner TxData) *Transaction {
	return &Transaction{inner: inner}
}

func (tx *Transaction) Type() byte            { return tx.inner.txType() }
func (tx *Transaction) ChainID() *uint256.Int  { return tx.inner.chainID() }
func (tx *Transaction) Nonce() uint64          { return tx.inner.nonce() }
func (tx *Transaction) Gas() uint64            { return tx.inner.gas() }
func (tx *Transaction) GasPrice() *uint256.Int { return tx.inner.gasPrice() }
func (tx *Transaction) GasTipCap() *uint256.Int { return tx.inner.gasTipCap() }
func (tx *Transaction) GasFeeCap() *uint256.Int { return tx.inner.gasFeeCap() }
func (tx *Transaction) Value() *uint256.Int    { return tx.inner.value() }
func (tx *Transaction) Data() []byte           { return tx.inner.data() }
func (tx *Transaction) To() *types.Address     { return tx.inner.to() }
func (tx *Transaction) From() *types.Address   { return tx.inner.from() }
func (tx *Transaction) AccessList() AccessList { return tx.inner.accessList() }
func (tx *Transaction) Hash() types.Hash       { return tx.inner.hash() }
func (tx *Transaction) Copy() *Transaction     { return &Transaction{inner: tx.inner.copy()} }

// Release returns the inner envelope to its object pool for the types
// Deserialize allocates from one. The Transaction must not be used
// afterwards.
func (tx *Transaction) Release() {
	switch t := tx.inner.(type) {
	case *LegacyTx:
		PutPooledLegacyTx(t)
	case *DynamicFeeTx:
		PutPooledDynamicFeeTx(t)
	}
	tx.inner = nil
}

// RawSignatureValues returns the transaction's (v, r, s) signature triple.
func (tx *Transaction) RawSignatureValues() (v, r, s *uint256.Int) {
	return tx.inner.rawSignatureValues()
}

// WithSignature returns a copy of tx with (chainID, v, r, s) applied.
func (tx *Transaction) WithSignature(chainID, v, r, s *uint256.Int) *Transaction {
	cpy := tx.inner.copy()
	cpy.setSignatureValues(chainID, v, r, s)
	return &Transaction{inner: cpy}
}

// Serialize encodes tx per EIP-2718: legacy transactions are the bare RLP
// list; every typed transaction is `type_byte ‖ rlp(fields)`. An envelope
// whose signature triple is entirely unset serializes without it, the
// unsigned wire form Deserialize also accepts.
func Serialize(tx *Transaction) ([]byte, error) {
	switch t := tx.inner.(type) {
	case *LegacyTx:
		return rlp.EncodeToBytes(withSignatureFields([]interface{}{
			t.Nonce, t.GasPrice, t.Gas, t.To, t.Value, t.Data,
		}, t.V, t.R, t.S))

	case *AccessListTx:
		body, err := rlp.EncodeToBytes(withSignatureFields([]interface{}{
			t.ChainID, t.Nonce, t.GasPrice, t.Gas, t.To, t.Value, t.Data,
			t.AccessList,
		}, t.V, t.R, t.S))
		if err != nil {
			return nil, err
		}
		return prependType(AccessListTxType, body), nil

	case *DynamicFeeTx:
		body, err := rlp.EncodeToBytes(withSignatureFields([]interface{}{
			t.ChainID, t.Nonce, t.GasTipCap, t.GasFeeCap, t.Gas, t.To, t.Value,
			t.Data, t.AccessList,
		}, t.V, t.R, t.S))
		if err != nil {
			return nil, err
		}
		return prependType(DynamicFeeTxType, body), nil

	case *BlobTx:
		body, err := rlp.EncodeToBytes(withSignatureFields([]interface{}{
			t.ChainID, t.Nonce, t.GasTipCap, t.GasFeeCap, t.Gas, t.To, t.Value,
			t.Data, t.AccessList, t.BlobFeeCap, t.BlobHashes,
		}, t.V, t.R, t.S))
		if err != nil {
			return nil, err
		}
		if t.Sidecar != nil {
			return serializeBlobTxWithSidecar(body, t.Sidecar)
		}
		return prependType(BlobTxType, body), nil

	case *SetCodeTx:
		body, err := rlp.EncodeToBytes(withSignatureFields([]interface{}{
			t.ChainID, t.Nonce, t.GasTipCap, t.GasFeeCap, t.Gas, t.To, t.Value,
			t.Data, t.AccessList, t.AuthList,
		}, t.V, t.R, t.S))
		if err != nil {
			return nil, err
		}
		return prependType(SetCodeTxType, body), nil

	default:
		return nil, n42errors.ErrUnsupportedTransactionType
	}
}

// withSignatureFields appends (v, r, s) to fields unless all three are
// unset, in which case the unsigned form is emitted as-is.
func withSignatureFields(fields []interface{}, v, r, s *uint256.Int) []interface{} {
	if v == nil && r == nil && s == nil {
		return fields
	}
	return append(fields, v, r, s)
}

// serializeBlobTxWithSidecar wraps the already-encoded payload body together
// with the blob/commitment/proof lists, per the network wrapper form
// `0x03 ‖ rlp([tx_payload_body, blobs, commitments, proofs])`.
func serializeBlobTxWithSidecar(payloadBody []byte, sidecar *BlobTxSidecar) ([]byte, error) {
	body, err := rlp.EncodeToBytes([]interface{}{
		rlpRaw(payloadBody), sidecar.Blobs, sidecar.Commitments, sidecar.Proofs,
	})
	if err != nil {
		return nil, err
	}
	return prependType(BlobTxType, body), nil
}

// rlpRaw marks a byte slice as already-RLP-encoded so the list-building
// encoder for the sidecar wrapper splices it in unmodified instead of
// re-wrapping it as a byte string.
type rlpRaw []byte

// EncodeRLP implements rlp.Encoder by emitting the bytes verbatim.
func (r rlpRaw) EncodeRLP(w io.Writer) error {
	_, err := w.Write(r)
	return err
}

func prependType(typ byte, body []byte) []byte {
	out := make([]byte, 0, len(body)+1)
	out = append(out, typ)
	return append(out, body...)
}

// Deserialize parses the EIP-2718 wire form back into a Transaction: a
// leading byte below 0x80 (never a valid RLP list header's first byte at
// the top level of a signed legacy transaction) marks a typed envelope,
// and a leading byte at or above 0xc0 is a legacy transaction's raw list.
func Deserialize(data []byte) (*Transaction, error) {
	if len(data) == 0 {
		return nil, n42errors.ErrUnexpectedEnd
	}
	if data[0] >= 0xc0 {
		t := GetPooledLegacyTx()
		if err := rlp.DecodeBytes(data, t); err != nil {
			PutPooledLegacyTx(t)
			return nil, pkgerrors.Wrap(err, "transaction: decode legacy")
		}
		return &Transaction{inner: t}, nil
	}

	typ, body := data[0], data[1:]
	switch typ {
	case AccessListTxType:
		var t AccessListTx
		if err := rlp.DecodeBytes(body, &t); err != nil {
			return nil, pkgerrors.Wrap(err, "transaction: decode access-list")
		}
		return &Transaction{inner: &t}, nil

	case DynamicFeeTxType:
		t := GetPooledDynamicFeeTx()
		if err := rlp.DecodeBytes(body, t); err != nil {
			PutPooledDynamicFeeTx(t)
			return nil, pkgerrors.Wrap(err, "transaction: decode dynamic-fee")
		}
		return &Transaction{inner: t}, nil

	case BlobTxType:
		return deserializeBlobTx(body)

	case SetCodeTxType:
		var t SetCodeTx
		if err := rlp.DecodeBytes(body, &t); err != nil {
			return nil, pkgerrors.Wrap(err, "transaction: decode set-code")
		}
		return &Transaction{inner: &t}, nil

	default:
		return nil, n42errors.ErrUnsupportedTransactionType
	}
}

func deserializeBlobTx(body []byte) (*Transaction, error) {
	kind, payload, _, err := rlp.Split(body)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "transaction: decode blob")
	}
	if kind != rlp.List {
		return nil, n42errors.ErrUnexpectedEnd
	}
	firstKind, _, rest, err := rlp.Split(payload)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "transaction: decode blob")
	}

	// A bare payload body's first field is the chain id (an integer, so a
	// String-kind RLP item); a sidecar wrapper's first field is the nested
	// payload-body list (a List-kind item). That distinguishes the two
	// wire forms without guessing from length.
	if firstKind == rlp.List {
		var t BlobTx
		if err := rlp.DecodeBytes(payload[:len(payload)-len(rest)], &t); err != nil {
			return nil, pkgerrors.Wrap(err, "transaction: decode blob payload body")
		}
		sidecar := &BlobTxSidecar{}
		if err := decodeBlobSidecarTail(rest, sidecar); err != nil {
			return nil, err
		}
		t.Sidecar = sidecar
		return &Transaction{inner: &t}, nil
	}

	var t BlobTx
	if err := rlp.DecodeBytes(body, &t); err != nil {
		return nil, pkgerrors.Wrap(err, "transaction: decode blob")
	}
	return &Transaction{inner: &t}, nil
}

func decodeBlobSidecarTail(rest []byte, sidecar *BlobTxSidecar) error {
	var raws [][]byte
	for len(rest) > 0 {
		_, _, next, err := rlp.Split(rest)
		if err != nil {
			return pkgerrors.Wrap(err, "transaction: decode blob sidecar")
		}
		raws = append(raws, rest[:len(rest)-len(next)])
		rest = next
	}
	if len(raws) != 3 {
		return n42errors.ErrUnexpectedEnd
	}
	if err := rlp.DecodeBytes(raws[0], &sidecar.Blobs); err != nil {
		return pkgerrors.Wrap(err, "transaction: decode blobs")
	}
	if err := rlp.DecodeBytes(raws[1], &sidecar.Commitments); err != nil {
		return pkgerrors.Wrap(err, "transaction: decode commitments")
	}
	if err := rlp.DecodeBytes(raws[2], &sidecar.Proofs); err != nil {
		return pkgerrors.Wrap(err, "transaction: decode proofs")
	}
	return nil
}

// AssertSignable runs the pre-sign checks common to every envelope
// (chain-id match and tip-vs-fee-cap ordering) plus the blob-specific
// checks when tx wraps a BlobTx. It must be called, and must pass, before
// a Signer ever sees the transaction's signing hash.
func AssertSignable(tx *Transaction, expectedChainID *uint256.Int) error {
	cid := tx.ChainID()
	if _, legacy := tx.inner.(*LegacyTx); legacy && cid != nil && cid.IsZero() {
		// A legacy envelope's chain id comes from its V value; an unsigned
		// or pre-EIP-155 one has none and is bound to a chain when signed.
		cid = nil
	}
	if cid != nil && expectedChainID != nil && cid.Cmp(expectedChainID) != 0 {
		return pkgerrors.WithStack(n42errors.ErrInvalidChainId)
	}
	if tip, feeCap := tx.GasTipCap(), tx.GasFeeCap(); tip != nil && feeCap != nil && tip.Cmp(feeCap) > 0 {
		return pkgerrors.WithStack(n42errors.ErrTransactionTipTooHigh)
	}
	if bt, ok := tx.inner.(*BlobTx); ok {
		if err := assertBlobSignable(bt); err != nil {
			return err
		}
	}
	return nil
}

func assertBlobSignable(bt *BlobTx) error {
	if len(bt.BlobHashes) == 0 {
		return pkgerrors.WithStack(n42errors.ErrEmptyBlobs)
	}
	if len(bt.BlobHashes) > MaxBlobsPerBlock {
		return pkgerrors.WithStack(n42errors.ErrTooManyBlobs)
	}
	for _, h := range bt.BlobHashes {
		if !IsValidVersionedHash(h) {
			return pkgerrors.WithStack(n42errors.ErrBlobVersionNotSupported)
		}
	}
	if bt.To.IsZero() {
		return pkgerrors.WithStack(n42errors.ErrCreateBlobTransaction)
	}
	return nil
}

// copyAddressPtr returns a new pointer to a copy of addr, or nil for a nil
// input. Every envelope's copy() uses this so a deep copy never shares an
// address pointer with its source.
func copyAddressPtr(addr *types.Address) *types.Address {
	if addr == nil {
		return nil
	}
	cpy := *addr
	return &cpy
}
