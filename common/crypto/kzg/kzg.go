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

// Package kzg declares the KZG capability interface EIP-4844 blob
// transactions are built against, plus the versioned-hash helpers that
// convert a commitment into the first-byte-tagged hash a blob transaction
// carries.
//
// Reference: https://eips.ethereum.org/EIPS/eip-4844
package kzg

import (
	"errors"

	"github.com/n42blockchain/abicore/common/transaction"
	"github.com/n42blockchain/abicore/common/types"
)

type (
	Blob       = transaction.Blob
	Commitment = transaction.Commitment
	Proof      = transaction.Proof
)

// BlobCommitmentVersionKZG is the version byte a versioned hash derived
// from a KZG commitment must carry.
const BlobCommitmentVersionKZG = transaction.VersionedHashVersionKZG

// KZG is the external capability the core asks to turn blob data into KZG
// commitments and proofs. The core never runs trusted-setup polynomial math
// itself: a sidecar is built by handing each blob to a caller-supplied KZG,
// the same external-collaborator shape as Signer
// (common/transaction/signer.go) — a real pairing-based implementation
// (loaded from a trusted setup) lives outside this module.
type KZG interface {
	BlobToCommitment(blob *Blob) (Commitment, error)
	ComputeBlobProof(blob *Blob, commitment Commitment) (Proof, error)
	Loaded() bool
}

// ErrKZGNotLoaded is returned by BuildBlobSidecar when the supplied KZG
// capability reports it has not finished loading its trusted setup.
var ErrKZGNotLoaded = errors.New("kzg: capability not loaded")

// BuildBlobSidecar computes a commitment and proof for every blob via kz
// and assembles them into a sidecar plus the versioned hashes a BlobTx's
// BlobHashes field carries. This is the one real caller of the KZG
// capability in the core: everywhere else blob handling only ever inspects
// already-built commitments/hashes.
func BuildBlobSidecar(kz KZG, blobs []Blob) (*transaction.BlobTxSidecar, []types.Hash, error) {
	if !kz.Loaded() {
		return nil, nil, ErrKZGNotLoaded
	}

	sidecar := &transaction.BlobTxSidecar{
		Blobs:       append([]Blob(nil), blobs...),
		Commitments: make([]Commitment, len(blobs)),
		Proofs:      make([]Proof, len(blobs)),
	}
	hashes := make([]types.Hash, len(blobs))

	for i := range blobs {
		commitment, err := kz.BlobToCommitment(&blobs[i])
		if err != nil {
			return nil, nil, err
		}
		proof, err := kz.ComputeBlobProof(&blobs[i], commitment)
		if err != nil {
			return nil, nil, err
		}
		sidecar.Commitments[i] = commitment
		sidecar.Proofs[i] = proof
		hashes[i] = CommitmentToVersionedHash(commitment)
	}

	return sidecar, hashes, nil
}

// CommitmentToVersionedHash converts a KZG commitment to its versioned hash.
func CommitmentToVersionedHash(commitment Commitment) types.Hash {
	return transaction.KZGToVersionedHash(commitment)
}

// IsValidVersionedHash reports whether h carries the KZG version byte.
func IsValidVersionedHash(h types.Hash) bool {
	return transaction.IsValidVersionedHash(h)
}
