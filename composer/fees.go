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
	"sort"
	"strconv"
	"strings"

	"github.com/algorand/go-algokit/daemon/algod/api/model"
	"github.com/algorand/go-algokit/data/transactions"
	"github.com/algorand/go-algokit/protocol"
	"github.com/algorand/go-algokit/serr"
)

// Priority multipliers for fee deficits. Deficits that can only be paid by
// another transaction are resolved first.
const (
	highPriorityMultiplier   = 1000
	normalPriorityMultiplier = 1
	noPriority               = -1
)

type txnExecutionInfo struct {
	// requiredFeeDelta is what the transaction still has to pay; negative
	// values are a surplus other transactions can use.
	requiredFeeDelta int64
	unnamed          *model.SimulateUnnamedResourcesAccessed
}

type groupExecutionInfo struct {
	unnamed *model.SimulateUnnamedResourcesAccessed
	txns    []txnExecutionInfo
}

// groupExecutionInfo simulates the group without signatures to learn the
// resources it touches and, when cover is set, the fees its inner
// transactions need. With cover set, app calls are simulated paying their
// max fee so that fee shortages do not fail the simulation.
func (c *Composer) groupExecutionInfo(ctx context.Context, sp model.TransactionParams, built []transactions.Transaction, cover bool) (groupExecutionInfo, error) {
	txns := make([]transactions.Transaction, len(built))
	copy(txns, built)

	var missingMaxFee []string
	if cover {
		for i, e := range c.entries {
			if !e.isAppCall() {
				continue
			}
			maxFee, ok := e.logicalMaxFee()
			if !ok {
				missingMaxFee = append(missingMaxFee, strconv.Itoa(i))
				continue
			}
			txns[i].Fee.Raw = maxFee
		}
	}
	if len(missingMaxFee) > 0 {
		return groupExecutionInfo{}, serr.Validationf(
			"Please provide a maxFee for each app call transaction when coverAppCallInnerTransactionFees is enabled. Required for transaction %s",
			strings.Join(missingMaxFee, ", "))
	}
	if len(txns) > 1 {
		gid, err := transactions.ComputeGroupID(txns)
		if err != nil {
			return groupExecutionInfo{}, err
		}
		for i := range txns {
			txns[i].Group = gid
		}
	}

	stxns := make([]transactions.SignedTxn, len(txns))
	for i := range txns {
		stxns[i] = transactions.SignedTxn{Txn: txns[i]}
	}
	req := model.SimulateRequest{
		TxnGroups:             []model.SimulateRequestTransactionGroup{{Txns: stxns}},
		AllowEmptySignatures:  true,
		AllowUnnamedResources: true,
		FixSigners:            true,
	}
	c.log.Debugf("composer: simulating %d transactions for execution info", len(stxns))
	resp, err := c.node.Simulate(ctx, req)
	if err != nil {
		return groupExecutionInfo{}, serr.Wrap(serr.ErrNode, c.exposeLogicError(err), "simulate")
	}
	if len(resp.TxnGroups) == 0 {
		return groupExecutionInfo{}, serr.Nodef("Simulate returned no transaction group")
	}

	group := resp.TxnGroups[0]
	if group.FailureMessage != "" {
		if cover && strings.Contains(group.FailureMessage, "fee too small") {
			return groupExecutionInfo{}, serr.Validationf(
				"Fees were too small to resolve execution info via simulate. You may need to increase an app call transaction max fee.")
		}
		failedAt := "unknown"
		if len(group.FailedAt) > 0 {
			idx := make([]string, len(group.FailedAt))
			for i, f := range group.FailedAt {
				idx[i] = strconv.FormatUint(f, 10)
			}
			failedAt = strings.Join(idx, ", ")
		}
		e := serr.Nodef("Error resolving execution info via simulate in transaction %s: %s", failedAt, group.FailureMessage)
		if le, ok := c.exposeLogicError(serr.New(group.FailureMessage)).(*LogicError); ok {
			e.Wrapped = le
		}
		return groupExecutionInfo{}, e
	}
	if len(group.TxnResults) != len(txns) {
		return groupExecutionInfo{}, serr.Nodef("Simulate returned %d results for %d transactions", len(group.TxnResults), len(txns))
	}

	info := groupExecutionInfo{
		unnamed: group.UnnamedResourcesAccessed,
		txns:    make([]txnExecutionInfo, len(txns)),
	}
	for i, result := range group.TxnResults {
		info.txns[i].unnamed = result.UnnamedResourcesAccessed
		if !cover {
			continue
		}
		parentMinFee := built[i].CalculateFee(transactions.FeeParams{FeePerByte: sp.Fee, MinFee: sp.MinFee})
		delta := int64(parentMinFee) - int64(built[i].Fee.Raw)
		if c.entries[i].isAppCall() {
			delta += innerFeeDelta(result.TxnResult.InnerTxns, sp.MinFee, 0)
		}
		info.txns[i].requiredFeeDelta = delta
	}
	return info, nil
}

// innerFeeDelta is the fee the inner transactions still need from their
// parent. Inner transactions pay no per byte fee. A surplus can only pay for
// siblings sent after it and never flows up to the parent, hence the reverse
// walk and the floor at zero.
func innerFeeDelta(inner []model.PendingTransactionResponse, minFee uint64, acc int64) int64 {
	for i := len(inner) - 1; i >= 0; i-- {
		current := innerFeeDelta(inner[i].InnerTxns, minFee, acc) + int64(minFee) - int64(inner[i].Txn.Txn.Fee.Raw)
		if current < 0 {
			current = 0
		}
		acc = current
	}
	return acc
}

// coverFees pays the fee deficits of txns out of the surplus of the group,
// raising app call fees for what is left.
func (c *Composer) coverFees(txns []transactions.Transaction, info groupExecutionInfo) error {
	var surplus uint64
	for _, t := range info.txns {
		if t.requiredFeeDelta < 0 {
			surplus += uint64(-t.requiredFeeDelta)
		}
	}

	type prioritized struct {
		index    int
		deficit  uint64
		priority int64
	}
	order := make([]prioritized, len(info.txns))
	for i, t := range info.txns {
		p := prioritized{index: i, priority: noPriority}
		if t.requiredFeeDelta > 0 {
			p.deficit = uint64(t.requiredFeeDelta)
			multiplier := int64(normalPriorityMultiplier)
			maxFee, ok := c.entries[i].logicalMaxFee()
			immutable := ok && maxFee == txns[i].Fee.Raw
			if immutable || txns[i].Type != protocol.ApplicationCallTx {
				multiplier = highPriorityMultiplier
			}
			p.priority = t.requiredFeeDelta * multiplier
		}
		order[i] = p
	}
	sort.SliceStable(order, func(a, b int) bool { return order[a].priority > order[b].priority })

	for _, p := range order {
		if p.deficit == 0 {
			continue
		}
		if surplus >= p.deficit {
			surplus -= p.deficit
			continue
		}
		deficit := p.deficit - surplus
		surplus = 0

		if txns[p.index].Type != protocol.ApplicationCallTx {
			return serr.Validationf("An additional fee of %d µALGO is required for non application call transaction %d", deficit, p.index)
		}
		fee := txns[p.index].Fee.Raw + deficit
		maxFee, ok := c.entries[p.index].logicalMaxFee()
		if !ok || fee > maxFee {
			return serr.Validationf("Calculated transaction fee %d µALGO is greater than max of %d for transaction %d", fee, maxFee, p.index)
		}
		txns[p.index].Fee.Raw = fee
		c.log.Debugf("composer: raised fee of transaction %d to %d to cover inner transactions", p.index, fee)
	}
	return nil
}

// repriceFees assigns the fees of txns again once resource population has
// grown them. sized holds the transactions as they were when simulated; the
// fee deltas of info move by the change in minimum fee less the change in
// fee, so coverage sees the final sizes.
func (c *Composer) repriceFees(txns, sized []transactions.Transaction, sp model.TransactionParams, info groupExecutionInfo) error {
	base := transactions.FeeParams{FeePerByte: sp.Fee, MinFee: sp.MinFee}
	for i := range txns {
		minBefore := sized[i].CalculateFee(base)
		minAfter := txns[i].CalculateFee(base)
		if minAfter == minBefore {
			continue
		}
		e := c.entries[i]
		if !e.prebuilt {
			p := e.params.commonParams()
			if p.StaticFee == nil {
				repriced, err := txns[i].AssignFee(transactions.FeeParams{
					FeePerByte: sp.Fee,
					MinFee:     sp.MinFee,
					ExtraFee:   p.ExtraFee,
					MaxFee:     p.MaxFee,
				})
				if err != nil {
					return serr.Extend(err, "index", i)
				}
				txns[i] = repriced
			}
		}
		info.txns[i].requiredFeeDelta += int64(minAfter) - int64(minBefore) - (int64(txns[i].Fee.Raw) - int64(sized[i].Fee.Raw))
		c.log.Debugf("composer: transaction %d fee %d after resource population", i, txns[i].Fee.Raw)
	}
	return nil
}
