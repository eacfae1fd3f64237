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

package transactions

import (
	"github.com/algorand/go-algokit/crypto"
	"github.com/algorand/go-algokit/serr"
)

// MaxTxGroupSize is the largest number of transactions a group may hold.
const MaxTxGroupSize = 16

// ComputeGroupID returns the group id for txns. Each transaction is hashed
// with its Group field cleared, so the result does not depend on whether
// the transactions were already grouped.
func ComputeGroupID(txns []Transaction) (crypto.Digest, error) {
	if len(txns) == 0 {
		return crypto.Digest{}, serr.Validationf("Transaction group size cannot be 0")
	}
	if len(txns) > MaxTxGroupSize {
		return crypto.Digest{}, serr.Validationf("Transaction group size exceeds the max limit of %d", MaxTxGroupSize)
	}

	var group TxGroup
	group.TxGroupHashes = make([]crypto.Digest, len(txns))
	for i, tx := range txns {
		tx.Group = crypto.Digest{}
		group.TxGroupHashes[i] = crypto.Digest(tx.ID())
	}
	return crypto.HashObj(group), nil
}

// AssignGroupID computes the group id of txns and returns copies of them with
// the Group field set. Transactions that are already grouped are rejected.
func AssignGroupID(txns []Transaction) ([]Transaction, error) {
	for _, tx := range txns {
		if !tx.Group.IsZero() {
			return nil, serr.Validationf("Transactions must not already be grouped")
		}
	}
	gid, err := ComputeGroupID(txns)
	if err != nil {
		return nil, err
	}

	out := make([]Transaction, len(txns))
	for i, tx := range txns {
		tx.Group = gid
		out[i] = tx
	}
	return out, nil
}
