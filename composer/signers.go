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
	"github.com/algorand/go-algokit/data/basics"
	"github.com/algorand/go-algokit/data/transactions"
	"github.com/algorand/go-algokit/serr"
)

// TransactionSigner signs the transactions of txns at indices. The result has
// one entry per index, in the same order. The whole group is passed so that a
// signer can inspect the siblings of what it signs.
//
// Signers are grouped by equality when a Composer gathers signatures, so an
// implementation must be a comparable type (a pointer or a plain struct).
type TransactionSigner interface {
	SignTransactions(ctx context.Context, txns []transactions.Transaction, indices []int) ([]transactions.SignedTxn, error)
}

// SignerGetter finds the signer for an address.
type SignerGetter interface {
	Signer(addr basics.Address) (TransactionSigner, bool)
}

// SignerMap is a SignerGetter over a fixed set of accounts.
type SignerMap map[basics.Address]TransactionSigner

// Signer implements SignerGetter.
func (m SignerMap) Signer(addr basics.Address) (TransactionSigner, bool) {
	s, ok := m[addr]
	return s, ok
}

// BasicAccountSigner signs with a single ed25519 key.
type BasicAccountSigner struct {
	secrets *crypto.SignatureSecrets
}

// NewBasicAccountSigner returns a signer for the account of secrets.
func NewBasicAccountSigner(secrets *crypto.SignatureSecrets) *BasicAccountSigner {
	return &BasicAccountSigner{secrets: secrets}
}

// Address is the account the signer signs for.
func (s *BasicAccountSigner) Address() basics.Address {
	return basics.Address(s.secrets.SignatureVerifier)
}

// SignTransactions implements TransactionSigner. A transaction whose sender is
// not the signer's account gets the signer as its AuthAddr.
func (s *BasicAccountSigner) SignTransactions(ctx context.Context, txns []transactions.Transaction, indices []int) ([]transactions.SignedTxn, error) {
	out := make([]transactions.SignedTxn, len(indices))
	for i, idx := range indices {
		if idx < 0 || idx >= len(txns) {
			return nil, serr.Validationf("Transaction index %d out of range", idx)
		}
		out[i] = txns[idx].Sign(s.secrets)
	}
	return out, nil
}

// MultisigAccountSigner signs for a multisig account with the keys it holds.
// Keys of the account that are not held leave their subsignature blank.
type MultisigAccountSigner struct {
	version   uint8
	threshold uint8
	pks       []crypto.PublicKey
	keys      []*crypto.SignatureSecrets
	addr      basics.Address
}

// NewMultisigAccountSigner returns a signer for the multisig account
// (version, threshold, pks) holding the given secret keys. Every key must be
// one of pks.
func NewMultisigAccountSigner(version, threshold uint8, pks []crypto.PublicKey, keys []*crypto.SignatureSecrets) (*MultisigAccountSigner, error) {
	addr, err := crypto.MultisigAddrGen(version, threshold, pks)
	if err != nil {
		return nil, serr.Wrap(serr.ErrValidation, err, "multisig account")
	}
	for _, k := range keys {
		found := false
		for _, pk := range pks {
			if pk == k.SignatureVerifier {
				found = true
				break
			}
		}
		if !found {
			return nil, serr.Validationf("Key %s is not part of the multisig account", basics.Address(k.SignatureVerifier))
		}
	}
	return &MultisigAccountSigner{
		version:   version,
		threshold: threshold,
		pks:       append([]crypto.PublicKey(nil), pks...),
		keys:      append([]*crypto.SignatureSecrets(nil), keys...),
		addr:      basics.Address(addr),
	}, nil
}

// Address is the multisig account address.
func (s *MultisigAccountSigner) Address() basics.Address {
	return s.addr
}

// SignTransactions implements TransactionSigner.
func (s *MultisigAccountSigner) SignTransactions(ctx context.Context, txns []transactions.Transaction, indices []int) ([]transactions.SignedTxn, error) {
	out := make([]transactions.SignedTxn, len(indices))
	for i, idx := range indices {
		if idx < 0 || idx >= len(txns) {
			return nil, serr.Validationf("Transaction index %d out of range", idx)
		}
		txn := txns[idx]

		sigs := make([]crypto.MultisigSig, 0, len(s.keys))
		for _, k := range s.keys {
			sig, err := crypto.MultisigSign(txn, crypto.Digest(s.addr), s.version, s.threshold, s.pks, *k)
			if err != nil {
				return nil, serr.Wrap(serr.ErrValidation, err, "multisig sign")
			}
			sigs = append(sigs, sig)
		}
		msig := crypto.MultisigPreimageFromPKs(s.version, s.threshold, s.pks)
		if len(sigs) > 0 {
			var err error
			msig, err = crypto.MultisigAssemble(sigs)
			if err != nil {
				return nil, serr.Wrap(serr.ErrValidation, err, "multisig assemble")
			}
		}

		stxn := transactions.SignedTxn{Txn: txn, Msig: msig}
		if txn.Sender != s.addr {
			stxn.AuthAddr = s.addr
		}
		out[i] = stxn
	}
	return out, nil
}

// EmptySigner produces unsigned transactions, for simulation with
// AllowEmptySignatures.
type EmptySigner struct{}

// SignTransactions implements TransactionSigner.
func (EmptySigner) SignTransactions(ctx context.Context, txns []transactions.Transaction, indices []int) ([]transactions.SignedTxn, error) {
	out := make([]transactions.SignedTxn, len(indices))
	for i, idx := range indices {
		if idx < 0 || idx >= len(txns) {
			return nil, serr.Validationf("Transaction index %d out of range", idx)
		}
		out[i] = transactions.SignedTxn{Txn: txns[idx]}
	}
	return out, nil
}
