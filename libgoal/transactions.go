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

package libgoal

import (
	"context"

	"github.com/algorand/go-algokit/composer"
	"github.com/algorand/go-algokit/daemon/algod/api/model"
	"github.com/algorand/go-algokit/data/basics"
	"github.com/algorand/go-algokit/data/transactions"
	"github.com/algorand/go-algokit/serr"
)

// BroadcastTransaction submits a signed transaction and returns its id.
func (c *Client) BroadcastTransaction(ctx context.Context, stx transactions.SignedTxn) (txid string, err error) {
	resp, err := c.algod.SendRawTransactionGroup(ctx, []transactions.SignedTxn{stx})
	if err != nil {
		return
	}
	return resp.TxID, nil
}

// SignAndBroadcastTransaction signs utx with the signer registered for its
// sender, and broadcasts it
func (c *Client) SignAndBroadcastTransaction(ctx context.Context, utx transactions.Transaction) (txid string, err error) {
	signer, ok := c.Signer(utx.Sender)
	if !ok {
		return "", serr.Validation("No signer found for address", "address", utx.Sender.String())
	}
	stxns, err := signer.SignTransactions(ctx, []transactions.Transaction{utx}, []int{0})
	if err != nil {
		return
	}
	if len(stxns) != 1 {
		return "", serr.Validationf("Signer returned %d transactions for 1 index", len(stxns))
	}
	return c.BroadcastTransaction(ctx, stxns[0])
}

// ComputeValidityRounds takes first, last and rounds provided by a user and computes the actual firstValid and lastValid rounds.
// Valid inputs are:
//
// validRounds | lastValid | result (lastValid)
// -------------------------------------------------
// 0           |     0     | firstValid + maxTxnLife
// 0           |     N     | lastValid
// M           |     0     | first + validRounds - 1
// M           |     M     | error
func (c *Client) ComputeValidityRounds(ctx context.Context, firstValid, lastValid, validRounds basics.Round) (first, last, latest basics.Round, err error) {
	params, err := c.cachedSuggestedParams(ctx)
	if err != nil {
		return 0, 0, 0, err
	}
	first, last, err = computeValidityRounds(firstValid, lastValid, validRounds, params.LastRound, c.consensus.MaxTxnLife)
	return first, last, params.LastRound, err
}

func computeValidityRounds(firstValid, lastValid, validRounds, lastRound basics.Round, maxTxnLife uint64) (basics.Round, basics.Round, error) {
	lifeAsRounds := basics.Round(maxTxnLife)
	if validRounds != 0 && lastValid != 0 {
		return 0, 0, serr.Validationf("cannot construct transaction: ambiguous input: lastValid = %d, validRounds = %d", lastValid, validRounds)
	}

	if firstValid == 0 {
		// The node may be a round ahead of its peers, whose pools only accept
		// transactions valid from their own last round.
		if lastRound > 0 {
			firstValid = lastRound
		} else {
			firstValid = 1
		}
	}

	if validRounds != 0 {
		if validRounds > lifeAsRounds+1 {
			return 0, 0, serr.Validationf("cannot construct transaction: txn validity period %d is greater than protocol max txn lifetime %d", validRounds-1, maxTxnLife)
		}
		lastValid = firstValid + validRounds - 1
	} else if lastValid == 0 {
		lastValid = firstValid + lifeAsRounds
	}

	if firstValid > lastValid {
		return 0, 0, serr.Validationf("cannot construct transaction: txn would first be valid on round %d which is after last valid round %d", firstValid, lastValid)
	} else if lastValid-firstValid > lifeAsRounds {
		return 0, 0, serr.Validationf("cannot construct transaction: txn validity period ( %d to %d ) is greater than protocol max txn lifetime %d", firstValid, lastValid, maxTxnLife)
	}

	return firstValid, lastValid, nil
}

func (c *Client) header(sender basics.Address, params model.TransactionParams, firstValid, lastValid basics.Round) transactions.Header {
	h := transactions.Header{
		Sender:     sender,
		FirstValid: firstValid,
		LastValid:  lastValid,
		GenesisID:  params.GenesisID,
	}
	copy(h.GenesisHash[:], params.GenesisHash)
	return h
}

// assignFee uses fee when nonzero, otherwise the suggested fee per byte
// floored at the network minimum.
func assignFee(tx transactions.Transaction, params model.TransactionParams, fee uint64) (transactions.Transaction, error) {
	if fee != 0 {
		tx.Fee = basics.MicroAlgos{Raw: fee}
		return tx, nil
	}
	return tx.AssignFee(transactions.FeeParams{FeePerByte: params.Fee, MinFee: params.MinFee})
}

// ConstructPayment builds a payment transaction to be signed.
// If the fee is 0, the function will use the suggested one form the network.
// If the lastValid is 0, firstValid + maxTxnLifetime will be used.
// If the firstValid is 0, the last round of the node will be used.
func (c *Client) ConstructPayment(ctx context.Context, from, to string, fee, amount uint64, note []byte, closeTo string, lease [32]byte, firstValid, lastValid basics.Round) (transactions.Transaction, error) {
	fromAddr, err := basics.UnmarshalChecksumAddress(from)
	if err != nil {
		return transactions.Transaction{}, err
	}
	toAddr, err := basics.UnmarshalChecksumAddress(to)
	if err != nil {
		return transactions.Transaction{}, err
	}
	var closeToAddr basics.Address
	if closeTo != "" {
		closeToAddr, err = basics.UnmarshalChecksumAddress(closeTo)
		if err != nil {
			return transactions.Transaction{}, err
		}
	}

	params, err := c.cachedSuggestedParams(ctx)
	if err != nil {
		return transactions.Transaction{}, err
	}
	firstValid, lastValid, err = computeValidityRounds(firstValid, lastValid, 0, params.LastRound, c.consensus.MaxTxnLife)
	if err != nil {
		return transactions.Transaction{}, err
	}

	h := c.header(fromAddr, params, firstValid, lastValid)
	h.Note = note
	h.Lease = lease
	tx, err := transactions.NewPayment(h, transactions.PaymentTxnFields{
		Receiver:         toAddr,
		Amount:           basics.MicroAlgos{Raw: amount},
		CloseRemainderTo: closeToAddr,
	})
	if err != nil {
		return transactions.Transaction{}, err
	}
	return assignFee(tx, params, fee)
}

// MakeUnsignedGoOnlineTx creates a transaction that will bring an address
// online with the given participation keys.
func (c *Client) MakeUnsignedGoOnlineTx(ctx context.Context, address string, keys transactions.KeyregTxnFields, firstValid, lastValid basics.Round, fee uint64) (transactions.Transaction, error) {
	parsedAddr, err := basics.UnmarshalChecksumAddress(address)
	if err != nil {
		return transactions.Transaction{}, err
	}
	params, err := c.cachedSuggestedParams(ctx)
	if err != nil {
		return transactions.Transaction{}, err
	}
	firstValid, lastValid, err = computeValidityRounds(firstValid, lastValid, 0, params.LastRound, c.consensus.MaxTxnLife)
	if err != nil {
		return transactions.Transaction{}, err
	}

	if !keys.IsOnline() {
		return transactions.Transaction{}, serr.Validation("Online key registration requires participation keys", "address", address)
	}
	tx, err := transactions.NewKeyreg(c.header(parsedAddr, params, firstValid, lastValid), keys)
	if err != nil {
		return transactions.Transaction{}, err
	}
	return assignFee(tx, params, fee)
}

// MakeUnsignedGoOfflineTx creates a transaction that will bring an address offline
func (c *Client) MakeUnsignedGoOfflineTx(ctx context.Context, address string, firstValid, lastValid basics.Round, fee uint64) (transactions.Transaction, error) {
	parsedAddr, err := basics.UnmarshalChecksumAddress(address)
	if err != nil {
		return transactions.Transaction{}, err
	}
	params, err := c.cachedSuggestedParams(ctx)
	if err != nil {
		return transactions.Transaction{}, err
	}
	firstValid, lastValid, err = computeValidityRounds(firstValid, lastValid, 0, params.LastRound, c.consensus.MaxTxnLife)
	if err != nil {
		return transactions.Transaction{}, err
	}

	tx, err := transactions.NewKeyreg(c.header(parsedAddr, params, firstValid, lastValid), transactions.KeyregTxnFields{})
	if err != nil {
		return transactions.Transaction{}, err
	}
	return assignFee(tx, params, fee)
}

// SendPayment composes, signs and sends a payment through a composer, so
// the configured validity window and confirmation wait apply.
func (c *Client) SendPayment(ctx context.Context, from, to basics.Address, amount uint64, note []byte) (composer.SendResults, error) {
	comp := c.NewComposer()
	err := comp.AddPayment(composer.PaymentParams{
		CommonParams: composer.CommonParams{Sender: from, Note: note},
		Receiver:     to,
		Amount:       amount,
	})
	if err != nil {
		return composer.SendResults{}, err
	}
	return c.SendGroup(ctx, comp)
}
