// Copyright (C) 2019-2025 Algorand, Inc.
// This file is part of go-algorand
//
// go-algorand is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// go-algorand is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with go-algorand.  If not, see <https://www.gnu.org/licenses/>.

package crypto

// OneTimeSignatureVerifier identifies the voting key of a participation key set.
type OneTimeSignatureVerifier [32]byte

// IsEmpty returns true if the verifier is all zeros.
func (v OneTimeSignatureVerifier) IsEmpty() bool {
	return v == OneTimeSignatureVerifier{}
}

// VRFVerifier is the public key used to check a VRF selection proof.
type VRFVerifier [32]byte

// IsEmpty returns true if the verifier is all zeros.
func (v VRFVerifier) IsEmpty() bool {
	return v == VRFVerifier{}
}

// FalconVerifier holds a falcon public key.
type FalconVerifier struct {
	_struct struct{} `codec:",omitempty,omitemptyarray"`

	PublicKey []byte `codec:"k"`
}

// FalconSignature is an encoded falcon signature.
type FalconSignature []byte

// MerkleSignatureCommitment is the root of the merkle tree over a participant's
// state proof keys.
type MerkleSignatureCommitment [64]byte

// IsEmpty returns true if the commitment is all zeros.
func (c MerkleSignatureCommitment) IsEmpty() bool {
	return c == MerkleSignatureCommitment{}
}

// MerkleSignatureVerifier is used to verify a merkle signature.
type MerkleSignatureVerifier struct {
	_struct struct{} `codec:",omitempty,omitemptyarray"`

	Commitment  MerkleSignatureCommitment `codec:"cmt"`
	KeyLifetime uint64                    `codec:"lf"`
}

// MerkleArrayProof is a merkle path from a leaf to the root.
type MerkleArrayProof struct {
	_struct struct{} `codec:",omitempty,omitemptyarray"`

	// Path is bounded by MaxNumLeavesOnEncodedTree since there could be multiple reveals, and
	// given the distribution of the elt positions and the depth of the tree,
	// the path length can increase up to 2^MaxEncodedTreeDepth / 2
	Path        []GenericDigest `codec:"pth"`
	HashFactory HashFactory     `codec:"hsh"`
	// TreeDepth represents the depth of the tree that is being proven.
	// It is the number of edges from the root to a leaf.
	TreeDepth uint8 `codec:"td"`
}

// FalconSignatureStruct is a falcon signature together with the proof that the
// signing key belongs to the signer's key tree.
type FalconSignatureStruct struct {
	_struct struct{} `codec:",omitempty,omitemptyarray"`

	Signature             FalconSignature  `codec:"sig"`
	VectorCommitmentIndex uint64           `codec:"idx"`
	Proof                 MerkleArrayProof `codec:"prf"`
	VerifyingKey          FalconVerifier   `codec:"vkey"`
}

// HeartbeatProof is a signature by an account's participation key over the
// block seed of the heartbeat's first valid round.
type HeartbeatProof struct {
	_struct struct{} `codec:",omitempty,omitemptyarray"`

	Sig    Signature `codec:"s"`
	PK     PublicKey `codec:"p"`
	PK2    PublicKey `codec:"p2"`
	PK1Sig Signature `codec:"p1s"`
	PK2Sig Signature `codec:"p2s"`
}

// IsEmpty returns true if no part of the proof is set.
func (p HeartbeatProof) IsEmpty() bool {
	return p.Sig == Signature{} && p.PK == PublicKey{} && p.PK2 == PublicKey{} &&
		p.PK1Sig == Signature{} && p.PK2Sig == Signature{}
}
