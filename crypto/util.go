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

// Package crypto holds the hashing and signature primitives of the SDK:
// the 32-byte SHA-512/256 digest family, ed25519 keys and multisignatures.
package crypto

import (
	"crypto/sha512"
	"encoding/base32"
	"fmt"

	"github.com/algorand/go-algokit/protocol"
)

// DigestSize is the number of bytes in the preferred hash Digest used here.
const DigestSize = sha512.Size256

// Digest represents a 32-byte value holding the 256-bit Hash digest.
type Digest [DigestSize]byte

var base32Encoder = base32.StdEncoding.WithPadding(base32.NoPadding)

// String returns the digest in a human-readable Base32 string
func (d Digest) String() string {
	return base32Encoder.EncodeToString(d[:])
}

// TrimUint64 returns the top 64 bits of the digest and converts to uint64
func (d Digest) TrimUint64() uint64 {
	var res uint64
	for i := 0; i < 8; i++ {
		res = res<<8 | uint64(d[i])
	}
	return res
}

// IsZero return true if the digest contains only zeros, false otherwise
func (d Digest) IsZero() bool {
	return d == Digest{}
}

// ToSlice converts Digest to slice
func (d Digest) ToSlice() []byte {
	return d[:]
}

// DigestFromString converts a string to a Digest
func DigestFromString(str string) (d Digest, err error) {
	decoded, err := base32Encoder.DecodeString(str)
	if err != nil {
		return d, err
	}
	if len(decoded) != len(d) {
		return d, fmt.Errorf(`attempted to decode a string which was not a Digest: "%v"`, str)
	}
	copy(d[:], decoded)
	return d, err
}

// Hash computes the SHASum512_256 hash of an array of bytes
func Hash(data []byte) Digest {
	return sha512.Sum512_256(data)
}

// Hashable is an interface implemented by an object that can be represented
// with a sequence of bytes to be hashed or signed, together with a type ID
// to distinguish different types of objects.
type Hashable interface {
	ToBeHashed() (protocol.HashID, []byte)
}

// HashRep appends the correct hashid before the message to be hashed.
func HashRep(h Hashable) []byte {
	hashid, data := h.ToBeHashed()
	return append([]byte(hashid), data...)
}

// HashObj computes a hash of a Hashable object and its type
func HashObj(h Hashable) Digest {
	return Hash(HashRep(h))
}

// HashBytes wraps raw bytes so they can be hashed or signed under a given domain.
type HashBytes struct {
	ID   protocol.HashID
	Data []byte
}

// ToBeHashed implements the Hashable interface.
func (b HashBytes) ToBeHashed() (protocol.HashID, []byte) {
	return b.ID, b.Data
}
