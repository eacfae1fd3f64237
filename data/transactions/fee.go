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
	"fmt"

	"github.com/algorand/go-algokit/data/basics"
	"github.com/algorand/go-algokit/serr"
)

// FeeParams controls how AssignFee prices a transaction.
type FeeParams struct {
	// FeePerByte is multiplied by the estimated signed size.
	FeePerByte uint64
	// MinFee is the floor of the per-byte fee.
	MinFee uint64
	// ExtraFee is added after the floor, typically to cover inner transactions.
	ExtraFee uint64
	// MaxFee, when nonzero, is the highest fee the caller accepts.
	MaxFee uint64
}

// CalculateFee returns the fee tx would pay under params, before the MaxFee check.
func (tx Transaction) CalculateFee(params FeeParams) uint64 {
	var fee uint64
	if params.FeePerByte > 0 {
		fee = basics.MulSaturate(params.FeePerByte, uint64(tx.EstimateSize()))
	}
	if fee < params.MinFee {
		fee = params.MinFee
	}
	return basics.AddSaturate(fee, params.ExtraFee)
}

// CheckMaxFee returns an error if fee exceeds a nonzero maxFee.
func CheckMaxFee(fee, maxFee uint64) error {
	if maxFee > 0 && fee > maxFee {
		return serr.Validation(
			fmt.Sprintf("Transaction fee %d µALGO is greater than max fee %d µALGO", fee, maxFee),
			"fee", fee, "max_fee", maxFee,
		)
	}
	return nil
}

// AssignFee returns a copy of tx with its fee computed from params.
func (tx Transaction) AssignFee(params FeeParams) (Transaction, error) {
	fee := tx.CalculateFee(params)
	if err := CheckMaxFee(fee, params.MaxFee); err != nil {
		return Transaction{}, err
	}
	tx.Fee = basics.MicroAlgos{Raw: fee}
	return tx, nil
}
