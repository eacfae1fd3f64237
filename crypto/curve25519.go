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

import (
	"bytes"
	"crypto/rand"

	"github.com/hdevalence/ed25519consensus"
	"golang.org/x/crypto/ed25519"
)

// Seed holds the entropy needed to generate cryptographic keys.
type Seed [32]byte

// Signature is a cryptographic signature. It proves that a message was
// produced by a holder of a cryptographic secret.
type Signature [64]byte

// BlankSignature is an empty signature structure, containing nothing but zeroes
var BlankSignature = Signature{}

// Blank tests to see if the given signature contains only zeros
func (s *Signature) Blank() bool {
	return (*s) == BlankSignature
}

// PublicKey is an exported ed25519 public key
type PublicKey [32]byte

// A SignatureVerifier is used to identify the holder of SignatureSecrets
// and verify the authenticity of Signatures.
type SignatureVerifier = PublicKey

// SignatureSecrets are used by an entity to produce unforgeable signatures over
// a message.
type SignatureSecrets struct {
	SignatureVerifier
	SK ed25519.PrivateKey
}

// SecretKey is casted from SignatureSecrets
type SecretKey = SignatureSecrets

// GenerateSignatureSecrets creates SignatureSecrets from a source of entropy.
func GenerateSignatureSecrets(seed Seed) *SignatureSecrets {
	sk := ed25519.NewKeyFromSeed(seed[:])
	var pk PublicKey
	copy(pk[:], sk.Public().(ed25519.PublicKey))
	return &SignatureSecrets{SignatureVerifier: pk, SK: sk}
}

// SecretKeyFromBytes accepts either a 32-byte seed or a 64-byte ed25519
// private key (seed followed by public key).
func SecretKeyFromBytes(b []byte) (*SignatureSecrets, error) {
	var seed Seed
	switch len(b) {
	case ed25519.SeedSize, ed25519.PrivateKeySize:
		copy(seed[:], b[:ed25519.SeedSize])
	default:
		return nil, errInvalidSeedLength
	}
	return GenerateSignatureSecrets(seed), nil
}

// RandomSeed fills a Seed from crypto/rand.
func RandomSeed() (s Seed) {
	if _, err := rand.Read(s[:]); err != nil {
		panic(err)
	}
	return
}

// Sign produces a cryptographic Signature of a Hashable message, given
// cryptographic secrets.
func (s *SignatureSecrets) Sign(message Hashable) Signature {
	return s.SignBytes(HashRep(message))
}

// SignBytes signs a message directly, without first hashing.
// Caller is responsible for domain separation.
func (s *SignatureSecrets) SignBytes(message []byte) (sig Signature) {
	copy(sig[:], ed25519.Sign(s.SK, message))
	return
}

// Verify verifies that some holder of a cryptographic secret authentically
// signed a Hashable message.
func (v SignatureVerifier) Verify(message Hashable, sig Signature) bool {
	return v.VerifyBytes(HashRep(message), sig)
}

// VerifyBytes verifies a signature, where the message is not hashed first.
// Non-canonical encodings and small-order public keys are rejected, following
// the consensus verification rules.
func (v SignatureVerifier) VerifyBytes(message []byte, sig Signature) bool {
	var r [32]byte
	copy(r[:], sig[:32])
	if !isCanonicalPoint(v) || !isCanonicalPoint(r) || hasSmallOrder(v) {
		return false
	}
	return ed25519consensus.Verify(v[:], message, sig[:])
}

// Check that Y is canonical, using the succeed-fast algorithm from
// the "Taming the many EdDSAs" paper.
func isCanonicalY(p [32]byte) bool {
	if p[0] < 237 {
		return true
	}
	for i := 1; i < 31; i++ {
		if p[i] != 255 {
			return true
		}
	}
	return (p[31] | 128) != 255
}

// isCanonicalPoint is a variable-time check that returns true if the
// 32-byte ed25519 point encoding is canonical.
func isCanonicalPoint(p [32]byte) bool {
	if !isCanonicalY(p) {
		return false
	}
	// points 9 and 10 from Table 1 of the "Taming the many EdDSAs" paper
	negZeroOne := [32]byte{0: 0x01, 31: 0x80}
	negZeroP := [32]byte{0: 0xec}
	for i := 1; i < 32; i++ {
		negZeroP[i] = 0xff
	}
	return p != negZeroOne && p != negZeroP
}

// from libsodium ge25519_has_small_order
var smallOrderPoints = [][32]byte{
	{},
	{0: 0x01},
	{0x26, 0xe8, 0x95, 0x8f, 0xc2, 0xb2, 0x27, 0xb0, 0x45, 0xc3, 0xf4,
		0x89, 0xf2, 0xef, 0x98, 0xf0, 0xd5, 0xdf, 0xac, 0x05, 0xd3, 0xc6,
		0x33, 0x39, 0xb1, 0x38, 0x02, 0x88, 0x6d, 0x53, 0xfc, 0x05},
	{0xc7, 0x17, 0x6a, 0x70, 0x3d, 0x4d, 0xd8, 0x4f, 0xba, 0x3c, 0x0b,
		0x76, 0x0d, 0x10, 0x67, 0x0f, 0x2a, 0x20, 0x53, 0xfa, 0x2c, 0x39,
		0xcc, 0xc6, 0x4e, 0xc7, 0xfd, 0x77, 0x92, 0xac, 0x03, 0x7a},
	fieldPoint(0xec),
	fieldPoint(0xed),
	fieldPoint(0xee),
}

// fieldPoint builds the encodings of p-1, p and p+1: a low byte followed by
// 0xff bytes and a final 0x7f.
func fieldPoint(low byte) (p [32]byte) {
	p[0] = low
	for i := 1; i < 31; i++ {
		p[i] = 0xff
	}
	p[31] = 0x7f
	return
}

// hasSmallOrder checks if a point is in the small-order blacklist, ignoring
// the sign bit.
func hasSmallOrder(p [32]byte) bool {
	for _, point := range smallOrderPoints {
		if bytes.Equal(p[:31], point[:31]) && (p[31]&0x7f) == point[31] {
			return true
		}
	}
	return false
}
