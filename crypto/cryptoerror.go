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

import "errors"

var (
	errUnknownVersion           = errors.New("unknown version")
	errInvalidVersion           = errors.New("invalid version")
	errInvalidAddress           = errors.New("invalid address")
	errInvalidThreshold         = errors.New("invalid threshold")
	errInvalidNumberOfSignature = errors.New("invalid number of signatures")
	errKeyNotExist              = errors.New("key does not exist")
	errSubsigVerification       = errors.New("verification failure: subsignature")
	errKeysNotMatch             = errors.New("public key lists do not match")
	errInvalidDuplicates        = errors.New("invalid duplicates")
	errInvalidSeedLength        = errors.New("invalid seed length")
)
