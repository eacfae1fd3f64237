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

package client

import (
	"encoding/base64"

	"github.com/algorand/go-algokit/data/basics"
	"github.com/algorand/go-algokit/serr"
)

// BytesBase64 is a binary field the node writes as base64 in JSON bodies.
type BytesBase64 []byte

// UnmarshalText decodes standard base64.
func (b *BytesBase64) UnmarshalText(text []byte) error {
	raw, err := base64.StdEncoding.DecodeString(string(text))
	if err != nil {
		return serr.Wrap(serr.ErrDecoding, err, "base64 field")
	}
	*b = raw
	return nil
}

// MarshalText encodes as standard base64.
func (b BytesBase64) MarshalText() ([]byte, error) {
	return []byte(base64.StdEncoding.EncodeToString(b)), nil
}

// ChecksumAddress is a 32 byte value the node writes in address form, such as
// the program hash returned by the compile endpoint.
type ChecksumAddress basics.Address

// UnmarshalText parses a checksummed address.
func (a *ChecksumAddress) UnmarshalText(text []byte) error {
	addr, err := basics.UnmarshalChecksumAddress(string(text))
	if err != nil {
		return err
	}
	*a = ChecksumAddress(addr)
	return nil
}

// MarshalText writes the checksummed address form.
func (a ChecksumAddress) MarshalText() ([]byte, error) {
	return []byte(basics.Address(a).String()), nil
}
