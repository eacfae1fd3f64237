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
	"github.com/algorand/go-algokit/data/basics"
	"github.com/algorand/go-algokit/protocol"
)

// PaymentTxnFields captures the fields used by payment transactions.
type PaymentTxnFields struct {
	_struct struct{} `codec:",omitempty,omitemptyarray"`

	Receiver basics.Address    `codec:"rcv"`
	Amount   basics.MicroAlgos `codec:"amt"`

	// When CloseRemainderTo is set, it indicates that the
	// transaction is requesting that the account should be
	// closed, and all remaining funds be transferred to this
	// address.
	CloseRemainderTo basics.Address `codec:"close"`
}

func (payment PaymentTxnFields) wellFormed(header Header) error {
	errs := newFieldErrors("Payment")
	if !payment.CloseRemainderTo.IsZero() && header.Sender == payment.CloseRemainderTo {
		errs.addf("transaction cannot close account to its sender %v", header.Sender)
	}
	return errs.err()
}

// NewPayment builds a payment transaction and checks it is well formed.
func NewPayment(header Header, fields PaymentTxnFields) (Transaction, error) {
	tx := Transaction{
		Type:             protocol.PaymentTx,
		Header:           header,
		PaymentTxnFields: fields,
	}
	if err := fields.wellFormed(header); err != nil {
		return Transaction{}, err
	}
	return tx, nil
}
