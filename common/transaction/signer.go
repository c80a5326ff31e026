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
	"container/list"
	"sync"

	"github.com/holiman/uint256"

	"github.com/n42blockchain/abicore/common/hash"
	"github.com/n42blockchain/abicore/common/types"
	"github.com/n42blockchain/abicore/log"
)

// Signature is the triple a Signer produces over a 32-byte signing hash.
// V is the raw recovery id (0 or 1); the wire V an envelope carries is
// derived from it per transaction type when the signature is applied.
type Signature struct {
	R *uint256.Int
	S *uint256.Int
	V byte
}

// Signer is the external capability the core asks to turn a signing hash
// into a signature, and to recover the address behind an existing one. The
// core never computes a private-key signature itself; every envelope is
// signed by handing its Keccak-256 signing hash to a caller-supplied Signer.
type Signer interface {
	Sign(hash32 types.Hash) (Signature, error)
	RecoverAddress(sig Signature, hash32 types.Hash) (types.Address, error)
}

// SigningHash returns the Keccak-256 digest a Signer must sign for tx.
// Existing signature values never enter the preimage. For a legacy
// transaction a non-zero chainID selects the EIP-155 preimage list
// `[nonce, gasPrice, gas, to, value, data, chainId, 0, 0]`; every typed
// transaction hashes its type byte followed by the unsigned field list.
func SigningHash(tx *Transaction, chainID *uint256.Int) types.Hash {
	if chainID == nil {
		chainID = new(uint256.Int)
	}
	switch t := tx.inner.(type) {
	case *LegacyTx:
		if chainID != nil && !chainID.IsZero() {
			return hash.RlpHash([]interface{}{
				t.Nonce, t.GasPrice, t.Gas, t.To, t.Value, t.Data,
				chainID, uint64(0), uint64(0),
			})
		}
		return hash.RlpHash([]interface{}{
			t.Nonce, t.GasPrice, t.Gas, t.To, t.Value, t.Data,
		})

	case *AccessListTx:
		return hash.PrefixedRlpHash(AccessListTxType, []interface{}{
			chainID, t.Nonce, t.GasPrice, t.Gas, t.To, t.Value, t.Data,
			t.AccessList,
		})

	case *DynamicFeeTx:
		return hash.PrefixedRlpHash(DynamicFeeTxType, []interface{}{
			chainID, t.Nonce, t.GasTipCap, t.GasFeeCap, t.Gas, t.To, t.Value,
			t.Data, t.AccessList,
		})

	case *BlobTx:
		return hash.PrefixedRlpHash(BlobTxType, []interface{}{
			chainID, t.Nonce, t.GasTipCap, t.GasFeeCap, t.Gas, t.To, t.Value,
			t.Data, t.AccessList, t.BlobFeeCap, t.BlobHashes,
		})

	case *SetCodeTx:
		return t.signingHash(chainID.ToBig())

	default:
		return types.Hash{}
	}
}

// SignTransaction hashes tx's unsigned form, asks signer for a signature,
// and returns the signed transaction. expectedChainID gates AssertSignable;
// pass nil to skip the chain-id check (single-network callers).
func SignTransaction(tx *Transaction, signer Signer, expectedChainID *uint256.Int) (*Transaction, error) {
	if err := AssertSignable(tx, expectedChainID); err != nil {
		return nil, err
	}
	chainID := expectedChainID
	if chainID == nil {
		chainID = tx.ChainID()
	}
	sig, err := signer.Sign(SigningHash(tx, chainID))
	if err != nil {
		return nil, err
	}
	log.Debug("transaction signed", "type", tx.Type(), "nonce", tx.Nonce(), "chainId", chainID)
	return tx.WithSignature(chainID, wireV(tx.Type(), chainID, sig.V), sig.R, sig.S), nil
}

// wireV maps a recovery id onto the V value the envelope carries: typed
// transactions store the raw y-parity, legacy transactions fold the chain
// id in per EIP-155 (27/28 when unbound to a chain).
func wireV(txType byte, chainID *uint256.Int, recoveryID byte) *uint256.Int {
	if txType != LegacyTxType {
		return uint256.NewInt(uint64(recoveryID))
	}
	if chainID == nil || chainID.IsZero() {
		return uint256.NewInt(27 + uint64(recoveryID))
	}
	v := new(uint256.Int).Lsh(chainID, 1)
	return v.Add(v, uint256.NewInt(35+uint64(recoveryID)))
}

// queuedEnvelope is the doubly-linked-list payload for TransactionEnvelopePool.
type queuedEnvelope struct {
	typ   byte
	nonce uint64
	tx    *Transaction
}

// TransactionEnvelopePool is the wallet-side collaborator that queues
// signed (or unsigned) envelopes awaiting broadcast. It is a doubly-linked
// queue guarded by a single mutex: enqueue/popFirst/popLast/findByTypeAndNonce
// are each atomic, and no iterator is ever handed out while the pool is
// unlocked.
type TransactionEnvelopePool struct {
	mu    sync.Mutex
	order *list.List
}

// NewTransactionEnvelopePool creates an empty pool.
func NewTransactionEnvelopePool() *TransactionEnvelopePool {
	return &TransactionEnvelopePool{order: list.New()}
}

// Enqueue appends tx to the back of the queue.
func (p *TransactionEnvelopePool) Enqueue(tx *Transaction) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.order.PushBack(&queuedEnvelope{typ: tx.Type(), nonce: tx.Nonce(), tx: tx})
	log.Trace("transaction enqueued", "type", tx.Type(), "nonce", tx.Nonce(), "queued", p.order.Len())
}

// PopFirst removes and returns the front (oldest) envelope, or nil if empty.
func (p *TransactionEnvelopePool) PopFirst() *Transaction {
	p.mu.Lock()
	defer p.mu.Unlock()
	front := p.order.Front()
	if front == nil {
		return nil
	}
	p.order.Remove(front)
	return front.Value.(*queuedEnvelope).tx
}

// PopLast removes and returns the back (newest) envelope, or nil if empty.
func (p *TransactionEnvelopePool) PopLast() *Transaction {
	p.mu.Lock()
	defer p.mu.Unlock()
	back := p.order.Back()
	if back == nil {
		return nil
	}
	p.order.Remove(back)
	return back.Value.(*queuedEnvelope).tx
}

// FindByTypeAndNonce returns the first queued envelope matching (typ, nonce)
// without removing it, or nil if none matches.
func (p *TransactionEnvelopePool) FindByTypeAndNonce(typ byte, nonce uint64) *Transaction {
	p.mu.Lock()
	defer p.mu.Unlock()
	for e := p.order.Front(); e != nil; e = e.Next() {
		q := e.Value.(*queuedEnvelope)
		if q.typ == typ && q.nonce == nonce {
			return q.tx
		}
	}
	return nil
}

// Len returns the number of queued envelopes.
func (p *TransactionEnvelopePool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.order.Len()
}
