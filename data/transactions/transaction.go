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
	"fmt"
	"unicode/utf8"

	"github.com/algorand/go-algokit/config"
	"github.com/algorand/go-algokit/crypto"
	"github.com/algorand/go-algokit/data/basics"
	"github.com/algorand/go-algokit/protocol"
	"github.com/algorand/go-algokit/serr"
)

// SignatureEncodingOverhead is the number of bytes a single ed25519 signature
// and the signed transaction wrapper add to an encoded transaction.
const SignatureEncodingOverhead = 75

// Txid is a hash used to uniquely identify individual transactions
type Txid crypto.Digest

// String converts txid to a pretty-printable string
func (txid Txid) String() string {
	return fmt.Sprintf("%v", crypto.Digest(txid))
}

// FromString initializes the Txid from a string
func (txid *Txid) FromString(text string) error {
	d, err := crypto.DigestFromString(text)
	*txid = Txid(d)
	return err
}

// Header captures the fields common to every transaction type.
type Header struct {
	_struct struct{} `codec:",omitempty,omitemptyarray"`

	Sender      basics.Address    `codec:"snd"`
	Fee         basics.MicroAlgos `codec:"fee"`
	FirstValid  basics.Round      `codec:"fv"`
	LastValid   basics.Round      `codec:"lv"`
	Note        []byte            `codec:"note"` // Uniqueness or app-level data about txn
	GenesisID   string            `codec:"gen"`
	GenesisHash crypto.Digest     `codec:"gh"`

	// Group specifies that this transaction is part of a
	// transaction group (and, if so, specifies the hash
	// of a TxGroup).
	Group crypto.Digest `codec:"grp"`

	// Lease enforces mutual exclusion of transactions.  If this field is
	// nonzero, then once the transaction is confirmed, it acquires the
	// lease identified by the (Sender, Lease) pair of the transaction until
	// the LastValid round passes.
	Lease [32]byte `codec:"lx"`

	// RekeyTo, if nonzero, sets the sender's AuthAddr to the given address
	// If the RekeyTo address is the sender's actual address, the AuthAddr is set to zero
	RekeyTo basics.Address `codec:"rekey"`
}

// Transaction describes a transaction that can be submitted to a node.
type Transaction struct {
	_struct struct{} `codec:",omitempty,omitemptyarray"`

	// Type of transaction
	Type protocol.TxType `codec:"type"`

	// Common fields for all types of transactions
	Header

	// Fields for different types of transactions
	KeyregTxnFields
	PaymentTxnFields
	AssetConfigTxnFields
	AssetTransferTxnFields
	AssetFreezeTxnFields
	ApplicationCallTxnFields
	StateProofTxnFields

	// Unlike other txn types, the heartbeat fields are
	// embedded under a named field in the transaction encoding.
	*HeartbeatTxnFields `codec:"hb"`
}

// TxGroup describes a group of transactions that must appear
// together in a specific order in a block.
type TxGroup struct {
	_struct struct{} `codec:",omitempty,omitemptyarray"`

	// TxGroupHashes specifies a list of hashes of transactions that must appear
	// together, sequentially, in a block in order for the group to be
	// valid.  Each hash in the list is a hash of a transaction with
	// the `Group` field omitted.
	TxGroupHashes []crypto.Digest `codec:"txlist"`
}

// ToBeHashed implements the crypto.Hashable interface.
func (tg TxGroup) ToBeHashed() (protocol.HashID, []byte) {
	return protocol.TxGroup, protocol.Encode(&tg)
}

// ToBeHashed implements the crypto.Hashable interface.
func (tx Transaction) ToBeHashed() (protocol.HashID, []byte) {
	return protocol.Transaction, protocol.Encode(&tx)
}

// ID returns the Txid (i.e., hash) of the transaction.
func (tx Transaction) ID() Txid {
	return Txid(crypto.HashObj(tx))
}

// EncodeRaw returns the canonical encoding of the transaction without the
// domain separation prefix.
func (tx Transaction) EncodeRaw() []byte {
	return protocol.Encode(&tx)
}

// Encode returns the canonical encoding of the transaction prefixed with "TX".
// These are the bytes that are hashed for the id and signed.
func (tx Transaction) Encode() []byte {
	return crypto.HashRep(tx)
}

// DecodeTransaction decodes a canonically encoded transaction, with or without
// its "TX" prefix.
func DecodeTransaction(b []byte) (Transaction, error) {
	b = bytes.TrimPrefix(b, []byte(protocol.Transaction))
	var tx Transaction
	if err := protocol.Decode(b, &tx); err != nil {
		return Transaction{}, serr.Wrap(serr.ErrDecoding, err, "transaction")
	}
	if err := tx.checkUTF8(); err != nil {
		return Transaction{}, err
	}
	return tx, nil
}

func (tx Transaction) checkUTF8() error {
	fields := map[string]string{
		"gen": tx.GenesisID,
		"un":  tx.AssetParams.UnitName,
		"an":  tx.AssetParams.AssetName,
		"au":  tx.AssetParams.URL,
	}
	for key, value := range fields {
		if !utf8.ValidString(value) {
			return serr.Decodingf("transaction field %s is not valid utf-8", key)
		}
	}
	return nil
}

// EstimateSize returns the encoded size of the transaction once wrapped with a
// single signature. Fees are computed from this value.
func (tx Transaction) EstimateSize() int {
	return len(tx.EncodeRaw()) + SignatureEncodingOverhead
}

// Sign signs a transaction using a given Account's secrets.
func (tx Transaction) Sign(secrets *crypto.SignatureSecrets) SignedTxn {
	sig := secrets.Sign(tx)

	s := SignedTxn{
		Txn: tx,
		Sig: sig,
	}
	// Set the AuthAddr if the signing key doesn't match the transaction sender
	if basics.Address(secrets.SignatureVerifier) != tx.Sender {
		s.AuthAddr = basics.Address(secrets.SignatureVerifier)
	}
	return s
}

// WellFormed checks that the transaction looks reasonable on its own (but not
// necessarily valid against the actual ledger). It does not check signatures.
func (tx Transaction) WellFormed(proto config.ConsensusParams) error {
	var err error
	switch tx.Type {
	case protocol.PaymentTx:
		err = tx.PaymentTxnFields.wellFormed(tx.Header)
	case protocol.KeyRegistrationTx:
		err = tx.KeyregTxnFields.wellFormed(proto)
	case protocol.AssetConfigTx:
		err = tx.AssetConfigTxnFields.wellFormed(proto)
	case protocol.AssetTransferTx:
		err = tx.AssetTransferTxnFields.wellFormed()
	case protocol.AssetFreezeTx:
		err = tx.AssetFreezeTxnFields.wellFormed()
	case protocol.ApplicationCallTx:
		err = tx.ApplicationCallTxnFields.wellFormed(proto)
	case protocol.StateProofTx:
		err = tx.StateProofTxnFields.wellFormed()
	case protocol.HeartbeatTx:
		if tx.HeartbeatTxnFields == nil {
			return serr.Validationf("Heartbeat validation failed: heartbeat fields are required")
		}
		err = tx.HeartbeatTxnFields.wellFormed(tx.Header, proto)
	default:
		return serr.Validationf("unknown tx type %v", tx.Type)
	}
	if err != nil {
		return err
	}

	nonZeroFields := make(map[protocol.TxType]bool)
	if tx.PaymentTxnFields != (PaymentTxnFields{}) {
		nonZeroFields[protocol.PaymentTx] = true
	}

	if !tx.KeyregTxnFields.Empty() {
		nonZeroFields[protocol.KeyRegistrationTx] = true
	}

	if tx.AssetConfigTxnFields != (AssetConfigTxnFields{}) {
		nonZeroFields[protocol.AssetConfigTx] = true
	}

	if tx.AssetTransferTxnFields != (AssetTransferTxnFields{}) {
		nonZeroFields[protocol.AssetTransferTx] = true
	}

	if tx.AssetFreezeTxnFields != (AssetFreezeTxnFields{}) {
		nonZeroFields[protocol.AssetFreezeTx] = true
	}

	if !tx.ApplicationCallTxnFields.Empty() {
		nonZeroFields[protocol.ApplicationCallTx] = true
	}

	if !tx.StateProofTxnFields.Empty() {
		nonZeroFields[protocol.StateProofTx] = true
	}

	if tx.HeartbeatTxnFields != nil {
		nonZeroFields[protocol.HeartbeatTx] = true
	}

	for t, nonZero := range nonZeroFields {
		if nonZero && t != tx.Type {
			return serr.Validationf("transaction of type %v has non-zero fields for type %v", tx.Type, t)
		}
	}

	if tx.LastValid < tx.FirstValid {
		return serr.Validationf("transaction invalid range (%v--%v)", tx.FirstValid, tx.LastValid)
	}
	if tx.LastValid-tx.FirstValid > basics.Round(proto.MaxTxnLife) {
		return serr.Validationf("transaction window size excessive (%v--%v)", tx.FirstValid, tx.LastValid)
	}
	if len(tx.Note) > proto.MaxTxnNoteBytes {
		return serr.Validationf("transaction note too big: %d > %d", len(tx.Note), proto.MaxTxnNoteBytes)
	}
	return nil
}
