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
	"github.com/algorand/go-algokit/config"
	"github.com/algorand/go-algokit/crypto"
	"github.com/algorand/go-algokit/data/basics"
	"github.com/algorand/go-algokit/protocol"
)

// KeyregTxnFields captures the fields used for key registration transactions.
type KeyregTxnFields struct {
	_struct struct{} `codec:",omitempty,omitemptyarray"`

	VotePK           crypto.OneTimeSignatureVerifier  `codec:"votekey"`
	SelectionPK      crypto.VRFVerifier               `codec:"selkey"`
	StateProofPK     crypto.MerkleSignatureCommitment `codec:"sprfkey"`
	VoteFirst        basics.Round                     `codec:"votefst"`
	VoteLast         basics.Round                     `codec:"votelst"`
	VoteKeyDilution  uint64                           `codec:"votekd"`
	Nonparticipation bool                             `codec:"nonpart"`
}

// Empty reports whether no key registration field is set.
func (keyreg KeyregTxnFields) Empty() bool {
	return keyreg == KeyregTxnFields{}
}

// IsOnline reports whether the registration carries participation keys.
// A registration without any of them takes the account offline.
func (keyreg KeyregTxnFields) IsOnline() bool {
	return !keyreg.VotePK.IsEmpty() ||
		!keyreg.SelectionPK.IsEmpty() ||
		!keyreg.StateProofPK.IsEmpty() ||
		keyreg.VoteFirst != 0 ||
		keyreg.VoteLast != 0 ||
		keyreg.VoteKeyDilution != 0
}

func (keyreg KeyregTxnFields) wellFormed(proto config.ConsensusParams) error {
	if !keyreg.IsOnline() {
		return nil
	}

	errs := newFieldErrors("Key registration")
	if keyreg.VotePK.IsEmpty() {
		errs.required("Vote key")
	}
	if keyreg.SelectionPK.IsEmpty() {
		errs.required("Selection key")
	}
	if keyreg.VoteFirst == 0 {
		errs.required("Vote first")
	}
	if keyreg.VoteLast == 0 {
		errs.required("Vote last")
	}
	if keyreg.VoteFirst != 0 && keyreg.VoteLast != 0 {
		if keyreg.VoteFirst >= keyreg.VoteLast {
			errs.addf("Vote first must be less than vote last")
		} else if uint64(keyreg.VoteLast-keyreg.VoteFirst) > proto.MaxKeyregValidPeriod {
			errs.addf("Vote period cannot exceed %d rounds", proto.MaxKeyregValidPeriod)
		}
	}
	if keyreg.VoteKeyDilution == 0 {
		errs.required("Vote key dilution")
	}
	if keyreg.Nonparticipation {
		errs.addf("Online key registration cannot have non participation flag set")
	}
	return errs.err()
}

// NewKeyreg builds a key registration transaction.
func NewKeyreg(header Header, fields KeyregTxnFields) (Transaction, error) {
	if err := fields.wellFormed(config.Current()); err != nil {
		return Transaction{}, err
	}
	return Transaction{Type: protocol.KeyRegistrationTx, Header: header, KeyregTxnFields: fields}, nil
}
