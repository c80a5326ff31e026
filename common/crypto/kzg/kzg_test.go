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

package kzg

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeKZG is a test double for the KZG capability: it derives a
// deterministic commitment/proof from a SHA-256 digest rather than running
// real trusted-setup polynomial math, which is exactly the kind of
// collaborator the core expects callers to supply.
type fakeKZG struct {
	loaded bool
}

func (f *fakeKZG) Loaded() bool { return f.loaded }

func (f *fakeKZG) BlobToCommitment(blob *Blob) (Commitment, error) {
	h := sha256.Sum256(blob[:])
	var c Commitment
	copy(c[:], h[:])
	return c, nil
}

func (f *fakeKZG) ComputeBlobProof(blob *Blob, commitment Commitment) (Proof, error) {
	h := sha256.Sum256(append(blob[:], commitment[:]...))
	var p Proof
	copy(p[:], h[:])
	return p, nil
}

func TestBlobCommitmentVersionKZG(t *testing.T) {
	assert.Equal(t, byte(0x01), byte(BlobCommitmentVersionKZG))
}

func TestCommitmentToVersionedHash(t *testing.T) {
	var commitment Commitment
	for i := range commitment {
		commitment[i] = byte(i)
	}

	hash := CommitmentToVersionedHash(commitment)
	assert.Equal(t, byte(BlobCommitmentVersionKZG), hash[0])
	assert.True(t, IsValidVersionedHash(hash))

	hash2 := CommitmentToVersionedHash(commitment)
	assert.Equal(t, hash, hash2)

	var other Commitment
	other[0] = 0xFF
	assert.NotEqual(t, hash, CommitmentToVersionedHash(other))
}

func TestIsValidVersionedHash(t *testing.T) {
	var valid, invalid [32]byte
	valid[0] = BlobCommitmentVersionKZG
	invalid[0] = 0x02
	assert.True(t, IsValidVersionedHash(valid))
	assert.False(t, IsValidVersionedHash(invalid))
}

func TestBuildBlobSidecarRejectsUnloadedKZG(t *testing.T) {
	kz := &fakeKZG{loaded: false}
	_, _, err := BuildBlobSidecar(kz, make([]Blob, 1))
	assert.ErrorIs(t, err, ErrKZGNotLoaded)
}

func TestBuildBlobSidecarComputesCommitmentsProofsAndHashes(t *testing.T) {
	kz := &fakeKZG{loaded: true}
	blobs := make([]Blob, 3)
	for i := range blobs {
		blobs[i][0] = byte(i + 1)
	}

	sidecar, hashes, err := BuildBlobSidecar(kz, blobs)
	require.NoError(t, err)
	require.Len(t, sidecar.Commitments, 3)
	require.Len(t, sidecar.Proofs, 3)
	require.Len(t, hashes, 3)

	for i := range blobs {
		wantCommitment, err := kz.BlobToCommitment(&blobs[i])
		require.NoError(t, err)
		assert.Equal(t, wantCommitment, sidecar.Commitments[i])
		assert.Equal(t, CommitmentToVersionedHash(wantCommitment), hashes[i])
		assert.True(t, IsValidVersionedHash(hashes[i]))
	}
}
