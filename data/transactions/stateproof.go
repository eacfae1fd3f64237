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
	"github.com/algorand/go-algokit/data/basics"
	"github.com/algorand/go-algokit/protocol"
)

// Participant corresponds to an account whose AccountData.Status is Online,
// and for which the expected sigRound satisfies AccountData.VoteFirstValid <=
// sigRound <= AccountData.VoteLastValid.
type Participant struct {
	_struct struct{} `codec:",omitempty,omitemptyarray"`

	PK     crypto.MerkleSignatureVerifier `codec:"p"`
	Weight uint64                         `codec:"w"`
}

// SigslotCommit is a single slot in the sigs array that forms the state proof.
type SigslotCommit struct {
	_struct struct{} `codec:",omitempty,omitemptyarray"`

	// Sig is a signature by the participant on the expected message.
	Sig crypto.FalconSignatureStruct `codec:"s"`

	// L is the total weight of signatures in lower-numbered slots.
	L uint64 `codec:"l"`
}

// Reveal is a single array position revealed as part of a state
// proof.  It reveals an element of the signature array and
// the corresponding element of the participants array.
type Reveal struct {
	_struct struct{} `codec:",omitempty,omitemptyarray"`

	SigSlot SigslotCommit `codec:"s"`
	Part    Participant   `codec:"p"`
}

// StateProof represents a proof on Algorand's state.
type StateProof struct {
	_struct struct{} `codec:",omitempty,omitemptyarray"`

	SigCommit                  crypto.GenericDigest    `codec:"c"`
	SignedWeight               uint64                  `codec:"w"`
	SigProofs                  crypto.MerkleArrayProof `codec:"S"`
	PartProofs                 crypto.MerkleArrayProof `codec:"P"`
	MerkleSignatureSaltVersion byte                    `codec:"v"`
	// Reveals is a sparse map from the position being revealed
	// to the corresponding elements from the sigs and participants
	// arrays.
	Reveals           map[uint64]Reveal `codec:"r"`
	PositionsToReveal []uint64          `codec:"pr"`
}

// StateProofMessage represents the message that the state proofs are attesting to.
type StateProofMessage struct {
	_struct struct{} `codec:",omitempty,omitemptyarray"`

	// BlockHeadersCommitment contains a commitment on all light block headers within a state proof interval.
	BlockHeadersCommitment []byte `codec:"b"`
	VotersCommitment       []byte `codec:"v"`
	LnProvenWeight         uint64 `codec:"P"`
	FirstAttestedRound     uint64 `codec:"f"`
	LastAttestedRound      uint64 `codec:"l"`
}

// Empty reports whether no field of the message is set.
func (m StateProofMessage) Empty() bool {
	return len(m.BlockHeadersCommitment) == 0 && len(m.VotersCommitment) == 0 &&
		m.LnProvenWeight == 0 && m.FirstAttestedRound == 0 && m.LastAttestedRound == 0
}

// StateProofTxnFields captures the fields used for stateproof transactions.
type StateProofTxnFields struct {
	_struct struct{} `codec:",omitempty,omitemptyarray"`

	StateProofIntervalLatestRound basics.Round            `codec:"sprnd"`
	StateProofType                protocol.StateProofType `codec:"sptype"`
	StateProof                    StateProof              `codec:"sp"`
	StateProofMessage             StateProofMessage       `codec:"spmsg"`
}

// Empty returns whether the StateProofTxnFields are all zero,
// in the sense of being omitted in a msgpack encoding.
func (sp StateProofTxnFields) Empty() bool {
	if sp.StateProofIntervalLatestRound != 0 || sp.StateProofType != 0 {
		return false
	}
	if !sp.StateProof.SigCommit.IsEmpty() || sp.StateProof.SignedWeight != 0 {
		return false
	}
	if len(sp.StateProof.SigProofs.Path) != 0 || len(sp.StateProof.PartProofs.Path) != 0 {
		return false
	}
	if len(sp.StateProof.Reveals) != 0 || len(sp.StateProof.PositionsToReveal) != 0 {
		return false
	}
	return sp.StateProofMessage.Empty()
}

func (sp StateProofTxnFields) wellFormed() error {
	errs := newFieldErrors("State proof")
	if sp.StateProofType != protocol.StateProofBasic {
		errs.addf("State proof type %d is not supported", sp.StateProofType)
	}
	if err := sp.StateProof.SigProofs.HashFactory.Validate(); err != nil {
		errs.addf("signature proofs: %v", err)
	}
	if err := sp.StateProof.PartProofs.HashFactory.Validate(); err != nil {
		errs.addf("participant proofs: %v", err)
	}
	for pos := range sp.StateProof.Reveals {
		if err := sp.StateProof.Reveals[pos].SigSlot.Sig.Proof.HashFactory.Validate(); err != nil {
			errs.addf("reveal %d: %v", pos, err)
		}
	}
	if sp.StateProofMessage.FirstAttestedRound > sp.StateProofMessage.LastAttestedRound {
		errs.addf("first attested round %d is after last attested round %d",
			sp.StateProofMessage.FirstAttestedRound, sp.StateProofMessage.LastAttestedRound)
	}
	return errs.err()
}

// specialAddr is used to form a unique address that will send out state proofs.
type specialAddr string

// ToBeHashed implements the crypto.Hashable interface
func (a specialAddr) ToBeHashed() (protocol.HashID, []byte) {
	return protocol.SpecialAddr, []byte(a)
}

// StateProofSender is the computed address for sending out state proofs.
var StateProofSender basics.Address

func init() {
	StateProofSender = basics.Address(crypto.HashObj(specialAddr("StateProofSender")))
}

// NewStateProof builds a state proof transaction. A zero sender is replaced
// with StateProofSender.
func NewStateProof(header Header, fields StateProofTxnFields) (Transaction, error) {
	if err := fields.wellFormed(); err != nil {
		return Transaction{}, err
	}
	if header.Sender.IsZero() {
		header.Sender = StateProofSender
	}
	return Transaction{Type: protocol.StateProofTx, Header: header, StateProofTxnFields: fields}, nil
}
