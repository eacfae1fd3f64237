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

package basics

import (
	"bytes"
	"encoding/base32"

	"github.com/algorand/go-algokit/crypto"
	"github.com/algorand/go-algokit/serr"
)

type (
	// Address is a unique identifier corresponding to ownership of money
	Address crypto.Digest
)

const (
	checksumLength = 4

	// AddressLength is the length of the textual form of an address.
	AddressLength = 58
)

// ZeroAddress is the all-zero address. It is never written to the wire.
var ZeroAddress = Address{}

var addrEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// GetChecksum returns the checksum as []byte
// Checksum in Algorand are the last 4 bytes of the shortAddress Hash. H(Address)[28:]
func (addr Address) GetChecksum() []byte {
	shortAddressHash := crypto.Hash(addr[:])
	return shortAddressHash[len(shortAddressHash)-checksumLength:]
}

// UnmarshalChecksumAddress tries to unmarshal the checksummed address string.
func UnmarshalChecksumAddress(address string) (Address, error) {
	if len(address) != AddressLength {
		return Address{}, serr.Validation("address must be 58 characters", "address", address, "length", len(address))
	}
	decoded, err := addrEncoding.DecodeString(address)
	if err != nil {
		return Address{}, serr.Validationf("failed to decode address %s to base 32", address)
	}

	var short Address
	copy(short[:], decoded[:len(short)])
	if !bytes.Equal(decoded[len(short):], short.GetChecksum()) {
		return Address{}, serr.Validationf("address %s is malformed, checksum verification failed", address)
	}

	// Validate that we had a canonical string representation
	if short.String() != address {
		return Address{}, serr.Validationf("address %s is non-canonical", address)
	}
	return short, nil
}

// String returns a string representation of Address
func (addr Address) String() string {
	addrWithChecksum := make([]byte, 0, len(addr)+checksumLength)
	addrWithChecksum = append(addrWithChecksum, addr[:]...)
	addrWithChecksum = append(addrWithChecksum, addr.GetChecksum()...)
	return addrEncoding.EncodeToString(addrWithChecksum)
}

// IsZero checks if an address is the zero value.
func (addr Address) IsZero() bool {
	return addr == ZeroAddress
}

// MarshalText returns the address string as an array of bytes
func (addr Address) MarshalText() ([]byte, error) {
	return []byte(addr.String()), nil
}

// UnmarshalText initializes the Address from an array of bytes.
func (addr *Address) UnmarshalText(text []byte) error {
	address, err := UnmarshalChecksumAddress(string(text))
	if err != nil {
		return err
	}
	*addr = address
	return nil
}

// MultisigAddress derives the address of a multisig account.
func MultisigAddress(version, threshold uint8, addrs []Address) (Address, error) {
	pks := make([]crypto.PublicKey, len(addrs))
	for i, a := range addrs {
		pks[i] = crypto.PublicKey(a)
	}
	d, err := crypto.MultisigAddrGen(version, threshold, pks)
	if err != nil {
		return Address{}, serr.Wrap(serr.ErrValidation, err, "multisig")
	}
	return Address(d), nil
}
