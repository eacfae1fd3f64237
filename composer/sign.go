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

package composer

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/algorand/go-algokit/data/transactions"
	"github.com/algorand/go-algokit/serr"
)

// GatherSignatures asks every signer of the built group for its signatures.
// Each signer is called once with all the indices it signs for; distinct
// signers run concurrently.
func (c *Composer) GatherSignatures(ctx context.Context) ([]transactions.SignedTxn, error) {
	if c.signed != nil {
		return c.signed, nil
	}
	if c.built == nil {
		return nil, serr.Validationf("Cannot gather signatures before building the transaction group")
	}

	txns := c.Transactions()
	var order []TransactionSigner
	batches := make(map[TransactionSigner][]int)
	for i, t := range c.built {
		if _, ok := batches[t.Signer]; !ok {
			order = append(order, t.Signer)
		}
		batches[t.Signer] = append(batches[t.Signer], i)
	}

	signed := make([]transactions.SignedTxn, len(txns))
	g, gctx := errgroup.WithContext(ctx)
	for _, s := range order {
		indices := batches[s]
		g.Go(func() error {
			stxns, err := s.SignTransactions(gctx, txns, indices)
			if err != nil {
				return err
			}
			if len(stxns) != len(indices) {
				return serr.Validationf("Signer returned %d transactions for %d indices", len(stxns), len(indices))
			}
			// Each goroutine writes a disjoint set of indices.
			for j, idx := range indices {
				signed[idx] = stxns[j]
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for i := range signed {
		if signed[i].Txn.ID() != txns[i].ID() {
			return nil, serr.Validationf("Transaction at index %d was not signed", i)
		}
	}

	c.signed = signed
	c.log.Debugf("composer: gathered %d signatures from %d signers", len(signed), len(order))
	return c.signed, nil
}
