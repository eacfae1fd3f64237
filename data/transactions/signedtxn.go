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
	"bytes"
	"errors"
	"io"

	"github.com/algorand/go-algokit/crypto"
	"github.com/algorand/go-algokit/data/basics"
	"github.com/algorand/go-algokit/protocol"
	"github.com/algorand/go-algokit/serr"
)

// SignedTxn wraps a transaction and a signature or multisignature.
// Both may be blank for transactions that are only simulated.
type SignedTxn struct {
	_struct struct{} `codec:",omitempty,omitemptyarray"`

	Sig      crypto.Signature   `codec:"sig"`
	Msig     crypto.MultisigSig `codec:"msig"`
	Txn      Transaction        `codec:"txn"`
	AuthAddr basics.Address     `codec:"sgnr"`
}

// ID returns the Txid (i.e., hash) of the underlying transaction.
func (s SignedTxn) ID() Txid {
	return s.Txn.ID()
}

// Authorizer returns the address against which the signature/msig was
// checked: AuthAddr if set, otherwise the transaction's sender.
func (s SignedTxn) Authorizer() basics.Address {
	if (s.AuthAddr == basics.Address{}) {
		return s.Txn.Sender
	}
	return s.AuthAddr
}

// Encode returns the canonical encoding of the signed transaction.
func (s SignedTxn) Encode() []byte {
	return protocol.Encode(&s)
}

// GetEncodedLength returns the length in bytes of the encoded SignedTxn
func (s SignedTxn) GetEncodedLength() int {
	return len(s.Encode())
}

// Verify checks the ed25519 signature or the multisignature against the
// authorizer of the transaction. Unsigned transactions fail.
func (s SignedTxn) Verify() error {
	hasSig := !s.Sig.Blank()
	hasMsig := !s.Msig.Blank()
	switch {
	case hasSig && hasMsig:
		return serr.Validationf("signed transaction %v has both a signature and a multisignature", s.ID())
	case hasSig:
		if !crypto.SignatureVerifier(s.Authorizer()).Verify(s.Txn, s.Sig) {
			return serr.Validationf("signature of transaction %v does not verify", s.ID())
		}
		return nil
	case hasMsig:
		if err := crypto.MultisigVerify(s.Txn, crypto.Digest(s.Authorizer()), s.Msig); err != nil {
			return serr.Wrap(serr.ErrValidation, err, "multisignature of transaction "+s.ID().String())
		}
		return nil
	default:
		return serr.Validationf("transaction %v is not signed", s.ID())
	}
}

// DecodeSignedTxn decodes one canonically encoded signed transaction.
func DecodeSignedTxn(b []byte) (SignedTxn, error) {
	var stx SignedTxn
	if err := protocol.Decode(b, &stx); err != nil {
		return SignedTxn{}, serr.Wrap(serr.ErrDecoding, err, "signed transaction")
	}
	if err := stx.Txn.checkUTF8(); err != nil {
		return SignedTxn{}, err
	}
	return stx, nil
}

// EncodeSignedTxns concatenates the encodings of a group of signed
// transactions, the form a node accepts for group submission.
func EncodeSignedTxns(stxns []SignedTxn) []byte {
	var buf bytes.Buffer
	for i := range stxns {
		buf.Write(protocol.Encode(&stxns[i]))
	}
	return buf.Bytes()
}

// DecodeSignedTxns is the inverse of EncodeSignedTxns.
func DecodeSignedTxns(b []byte) ([]SignedTxn, error) {
	if len(b) == 0 {
		return nil, nil
	}
	dec := protocol.NewDecoderBytes(b)
	var out []SignedTxn
	for {
		var stx SignedTxn
		err := dec.Decode(&stx)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, serr.Wrap(serr.ErrDecoding, err, "signed transaction group")
		}
		out = append(out, stx)
	}
}
