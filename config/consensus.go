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

package config

import (
	"github.com/algorand/go-algokit/protocol"
)

// ConsensusParams specifies the protocol limits a client has to respect
// when it assembles transactions. A node rejects a transaction that
// violates any of them, so the transaction model checks them up front.
type ConsensusParams struct {
	// MinTxnFee specifies the minimum fee allowed on a transaction.
	// A fee pooling group may cover a smaller fee on individual members.
	MinTxnFee uint64

	// MaxTxnLife is how long a transaction can be live for:
	// the maximum difference between LastValid and FirstValid.
	MaxTxnLife uint64

	// MaxTxnNoteBytes is the maximum size of a transaction's Note field.
	MaxTxnNoteBytes int

	// max group size
	MaxTxGroupSize int

	// max length of asset name
	MaxAssetNameBytes int

	// max length of asset unit name
	MaxAssetUnitNameBytes int

	// max length of asset url
	MaxAssetURLBytes int

	// max decimal precision for assets
	MaxAssetDecimals uint32

	// max number of ApplicationArgs for an ApplicationCall transaction
	MaxAppArgs int

	// max sum([len(arg) for arg in txn.ApplicationArgs])
	MaxAppTotalArgLen int

	// maximum byte len of application approval program or clear state
	// When MaxExtraAppProgramPages > 0, this is the size of those pages.
	// So two "extra pages" would mean 3*MaxAppProgramLen bytes are available.
	MaxAppProgramLen int

	// maximum total length of an application's programs (approval + clear state)
	MaxAppTotalProgramLen int

	// extra length for application program in pages. A page is MaxAppProgramLen bytes
	MaxExtraAppProgramPages int

	// maximum number of accounts in the ApplicationCall Accounts field.
	MaxAppTxnAccounts int

	// maximum number of app ids in the ApplicationCall ForeignApps field.
	MaxAppTxnForeignApps int

	// maximum number of asset ids in the ApplicationCall ForeignAssets field.
	MaxAppTxnForeignAssets int

	// maximum number of "foreign references" (accounts, asa, app, boxes) that
	// can be attached to a single app call.
	MaxAppTotalTxnReferences int

	// Number of box references allowed
	MaxAppBoxReferences int

	// maximum length of a key used in an application's global or local
	// key/value store
	MaxAppKeyLen int

	// maximum length of a bytes value used in an application's global or
	// local key/value store
	MaxAppBytesValueLen int

	// Maximum length of a box (Does not include name/key length. That is capped by MaxAppKeyLen)
	MaxBoxSize uint64

	// Amount added to a txgroup's box I/O budget per box ref supplied.
	BytesPerBoxReference uint64

	// maximum number of total key/value pairs allowed by a given
	// LocalStateSchema (and therefore allowed in LocalState)
	MaxLocalSchemaEntries uint64

	// maximum number of total key/value pairs allowed by a given
	// GlobalStateSchema (and therefore allowed in GlobalState)
	MaxGlobalSchemaEntries uint64

	// maximum number of inner transactions that can be created by an app call.
	// The limit is multiplied by MaxTxGroupSize and enforced over the whole group.
	MaxInnerTransactions int

	// MaxKeyregValidPeriod defines the longest period (in rounds) allowed for a keyreg transaction.
	MaxKeyregValidPeriod uint64

	// StateProofInterval defines the frequency with which state proofs are generated.
	StateProofInterval uint64
}

// Consensus tracks the protocol-level settings for the versions a client knows about.
var Consensus = map[protocol.ConsensusVersion]ConsensusParams{
	protocol.ConsensusV41: {
		MinTxnFee:                1000,
		MaxTxnLife:               1000,
		MaxTxnNoteBytes:          1024,
		MaxTxGroupSize:           16,
		MaxAssetNameBytes:        32,
		MaxAssetUnitNameBytes:    8,
		MaxAssetURLBytes:         96,
		MaxAssetDecimals:         19,
		MaxAppArgs:               16,
		MaxAppTotalArgLen:        2048,
		MaxAppProgramLen:         2048,
		MaxAppTotalProgramLen:    2048,
		MaxExtraAppProgramPages:  3,
		MaxAppTxnAccounts:        4,
		MaxAppTxnForeignApps:     8,
		MaxAppTxnForeignAssets:   8,
		MaxAppTotalTxnReferences: 8,
		MaxAppBoxReferences:      8,
		MaxAppKeyLen:             64,
		MaxAppBytesValueLen:      128,
		MaxBoxSize:               32768,
		BytesPerBoxReference:     1024,
		MaxLocalSchemaEntries:    16,
		MaxGlobalSchemaEntries:   64,
		MaxInnerTransactions:     16,
		MaxKeyregValidPeriod:     256*(1<<16) - 1,
		StateProofInterval:       256,
	},
}

// Current returns the parameters of the current consensus version.
func Current() ConsensusParams {
	return Consensus[protocol.ConsensusCurrentVersion]
}

// ForVersion returns the parameters for the given version, falling back to
// the current version when the node reports one the client does not know.
func ForVersion(v protocol.ConsensusVersion) ConsensusParams {
	if params, ok := Consensus[v]; ok {
		return params
	}
	return Current()
}
