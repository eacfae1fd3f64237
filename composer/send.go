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

	"github.com/algorand/go-algokit/crypto"
	"github.com/algorand/go-algokit/daemon/algod/api/client"
	"github.com/algorand/go-algokit/daemon/algod/api/model"
	"github.com/algorand/go-algokit/data/abi"
	"github.com/algorand/go-algokit/data/basics"
	"github.com/algorand/go-algokit/data/transactions"
	"github.com/algorand/go-algokit/serr"
)

// ABIReturn is the outcome of one method call of the group. DecodeError is
// set when the return value could not be read from the call's logs.
type ABIReturn struct {
	abi.MethodReturn
	TxID        string
	DecodeError error
}

// SendParams controls Send.
type SendParams struct {
	// MaxRoundsToWaitForConfirmation bounds the wait for each transaction.
	// Zero waits for the validity window of the group.
	MaxRoundsToWaitForConfirmation uint64
}

// SendResults is what Send learned about the committed group.
type SendResults struct {
	GroupID         crypto.Digest
	TxIDs           []string
	Transactions    []transactions.Transaction
	Confirmations   []model.PendingTransactionResponse
	ConfirmedRounds []basics.Round
	// AppIDs and AssetIDs are the created ids per transaction, 0 when none.
	AppIDs   []basics.AppIndex
	AssetIDs []basics.AssetIndex
	// ABIReturns has one entry per method call, in group order.
	ABIReturns []ABIReturn
}

// Send builds, signs and submits the group, then waits for every transaction
// to be committed. A Composer whose submission was rejected cannot be sent
// again.
func (c *Composer) Send(ctx context.Context, params SendParams) (SendResults, error) {
	if c.sendFailed {
		return SendResults{}, serr.Validationf("Cannot send a transaction group that already failed to send")
	}
	if c.submitted {
		return SendResults{}, serr.Validationf("Transaction group was already sent")
	}
	if _, err := c.Build(ctx); err != nil {
		return SendResults{}, err
	}
	stxns, err := c.GatherSignatures(ctx)
	if err != nil {
		return SendResults{}, err
	}

	txns := c.Transactions()
	waitRounds := params.MaxRoundsToWaitForConfirmation
	if waitRounds == 0 {
		waitRounds = validitySpan(txns)
	}

	if _, err := c.node.SendRawTransactionGroup(ctx, stxns); err != nil {
		c.sendFailed = true
		return SendResults{}, serr.Wrap(serr.ErrNode, c.exposeLogicError(err), "send transaction group")
	}
	c.submitted = true

	res := SendResults{
		GroupID:         txns[0].Group,
		TxIDs:           make([]string, len(txns)),
		Transactions:    txns,
		Confirmations:   make([]model.PendingTransactionResponse, len(txns)),
		ConfirmedRounds: make([]basics.Round, len(txns)),
		AppIDs:          make([]basics.AppIndex, len(txns)),
		AssetIDs:        make([]basics.AssetIndex, len(txns)),
	}
	for i, t := range txns {
		res.TxIDs[i] = t.ID().String()
	}
	c.log.With("group", res.GroupID.String()).Infof("composer: sent %d transactions", len(txns))

	for i, txid := range res.TxIDs {
		conf, err := c.waitForConfirmation(ctx, txid, waitRounds)
		if err != nil {
			return SendResults{}, err
		}
		res.Confirmations[i] = conf
		res.ConfirmedRounds[i] = conf.ConfirmedRound
		res.AppIDs[i] = conf.ApplicationIndex
		res.AssetIDs[i] = conf.AssetIndex
	}
	res.ABIReturns = c.abiReturns(res.TxIDs, res.Confirmations)
	return res, nil
}

// validitySpan is the number of rounds between the earliest first valid and
// the latest last valid round of txns.
func validitySpan(txns []transactions.Transaction) uint64 {
	first, last := txns[0].FirstValid, txns[0].LastValid
	for _, t := range txns[1:] {
		first = min(first, t.FirstValid)
		last = max(last, t.LastValid)
	}
	if last <= first {
		return 1
	}
	return uint64(last - first)
}

// waitForConfirmation polls the pending pool for txid until it is committed,
// rejected, or maxRounds rounds went by.
func (c *Composer) waitForConfirmation(ctx context.Context, txid string, maxRounds uint64) (model.PendingTransactionResponse, error) {
	status, err := c.node.Status(ctx)
	if err != nil {
		return model.PendingTransactionResponse{}, serr.Wrap(serr.ErrNode, err, "status")
	}
	start := status.LastRound + 1
	current := start
	for current < start+basics.Round(maxRounds) {
		pending, err := c.node.PendingTransactionInformation(ctx, txid)
		switch {
		case err == nil:
			if pending.PoolError != "" {
				return model.PendingTransactionResponse{}, serr.Nodef("Transaction %s was rejected; pool error: %s", txid, pending.PoolError)
			}
			if pending.Confirmed() {
				c.log.Debugf("composer: transaction %s confirmed in round %d", txid, pending.ConfirmedRound)
				return pending, nil
			}
		case client.IsNotFound(err):
			// The node may not have seen the transaction yet.
			current++
			continue
		default:
			return model.PendingTransactionResponse{}, err
		}

		if _, err := c.node.StatusAfterBlock(ctx, current); err != nil {
			return model.PendingTransactionResponse{}, serr.Wrap(serr.ErrNode, err, "status after block")
		}
		current++
	}
	return model.PendingTransactionResponse{}, serr.Nodef("Transaction %s not confirmed after %d rounds", txid, maxRounds)
}

// abiReturns decodes the return value of every method call of the group
// from the logs in results.
func (c *Composer) abiReturns(txids []string, results []model.PendingTransactionResponse) []ABIReturn {
	var out []ABIReturn
	for i, e := range c.entries {
		if e.method == nil {
			continue
		}
		ret, err := abi.ParseMethodReturn(*e.method, results[i].Logs)
		if err != nil {
			ret = abi.MethodReturn{Method: *e.method}
		}
		out = append(out, ABIReturn{MethodReturn: ret, TxID: txids[i], DecodeError: err})
	}
	return out
}

// SimulateOptions controls Simulate.
type SimulateOptions struct {
	// SkipSignatures simulates without calling any signer.
	SkipSignatures        bool
	AllowMoreLogging      bool
	AllowUnnamedResources bool
	ExtraOpcodeBudget     uint64
	ExecTraceConfig       model.SimulateTraceConfig
	// Round simulates against the state of a past round. Zero is the latest.
	Round basics.Round
}

// SimulateResults is the simulation of the group.
type SimulateResults struct {
	TxIDs        []string
	Transactions []transactions.Transaction
	Results      []model.PendingTransactionResponse
	ABIReturns   []ABIReturn
	Response     model.SimulateResponse
}

// Simulate builds the group and asks the node to evaluate it without
// committing it. A group the node rejects yields an error, a LogicError when
// a program failed.
func (c *Composer) Simulate(ctx context.Context, opts SimulateOptions) (SimulateResults, error) {
	if _, err := c.Build(ctx); err != nil {
		return SimulateResults{}, err
	}
	txns := c.Transactions()

	var stxns []transactions.SignedTxn
	if opts.SkipSignatures {
		stxns = make([]transactions.SignedTxn, len(txns))
		for i := range txns {
			stxns[i] = transactions.SignedTxn{Txn: txns[i]}
		}
	} else {
		var err error
		stxns, err = c.GatherSignatures(ctx)
		if err != nil {
			return SimulateResults{}, err
		}
	}

	req := model.SimulateRequest{
		TxnGroups:             []model.SimulateRequestTransactionGroup{{Txns: stxns}},
		Round:                 opts.Round,
		AllowEmptySignatures:  opts.SkipSignatures,
		AllowMoreLogging:      opts.AllowMoreLogging,
		AllowUnnamedResources: opts.AllowUnnamedResources,
		ExtraOpcodeBudget:     opts.ExtraOpcodeBudget,
		ExecTraceConfig:       opts.ExecTraceConfig,
		FixSigners:            opts.SkipSignatures,
	}
	resp, err := c.node.Simulate(ctx, req)
	if err != nil {
		return SimulateResults{}, serr.Wrap(serr.ErrNode, c.exposeLogicError(err), "simulate")
	}
	if len(resp.TxnGroups) == 0 {
		return SimulateResults{}, serr.Nodef("Simulate returned no transaction group")
	}
	group := resp.TxnGroups[0]
	if group.FailureMessage != "" {
		e := serr.Nodef("Transaction group failed in simulate: %s", group.FailureMessage)
		if le, ok := c.exposeLogicError(serr.New(group.FailureMessage)).(*LogicError); ok {
			e.Wrapped = le
		}
		return SimulateResults{}, e
	}
	if len(group.TxnResults) != len(txns) {
		return SimulateResults{}, serr.Nodef("Simulate returned %d results for %d transactions", len(group.TxnResults), len(txns))
	}

	res := SimulateResults{
		TxIDs:        make([]string, len(txns)),
		Transactions: txns,
		Results:      make([]model.PendingTransactionResponse, len(txns)),
		Response:     resp,
	}
	for i, t := range txns {
		res.TxIDs[i] = t.ID().String()
		res.Results[i] = group.TxnResults[i].TxnResult
	}
	res.ABIReturns = c.abiReturns(res.TxIDs, res.Results)
	return res, nil
}
