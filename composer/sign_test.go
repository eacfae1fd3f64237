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
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/algorand/go-algokit/crypto"
	"github.com/algorand/go-algokit/data/basics"
	"github.com/algorand/go-algokit/data/transactions"
	"github.com/algorand/go-algokit/test/partitiontest"
)

// recordingSigner records the indices it is asked to sign.
type recordingSigner struct {
	inner TransactionSigner
	mu    sync.Mutex
	calls [][]int
}

func (s *recordingSigner) SignTransactions(ctx context.Context, txns []transactions.Transaction, indices []int) ([]transactions.SignedTxn, error) {
	s.mu.Lock()
	s.calls = append(s.calls, append([]int(nil), indices...))
	s.mu.Unlock()
	return s.inner.SignTransactions(ctx, txns, indices)
}

type failingSigner struct{}

func (failingSigner) SignTransactions(context.Context, []transactions.Transaction, []int) ([]transactions.SignedTxn, error) {
	return nil, errors.New("hardware wallet unplugged")
}

// shortSigner returns the wrong transactions.
type shortSigner struct{}

func (shortSigner) SignTransactions(ctx context.Context, txns []transactions.Transaction, indices []int) ([]transactions.SignedTxn, error) {
	return make([]transactions.SignedTxn, len(indices)), nil
}

func TestBasicAccountSigner(t *testing.T) {
	partitiontest.PartitionTest(t)

	txn, err := transactions.NewPayment(transactions.Header{Sender: bob.addr, FirstValid: 1, LastValid: 2},
		transactions.PaymentTxnFields{Receiver: alice.addr})
	require.NoError(t, err)

	stxns, err := alice.signer.SignTransactions(context.Background(), []transactions.Transaction{txn}, []int{0})
	require.NoError(t, err)
	require.Len(t, stxns, 1)
	require.True(t, alice.secrets.SignatureVerifier.Verify(txn, stxns[0].Sig))
	require.Equal(t, alice.addr, stxns[0].AuthAddr)

	_, err = alice.signer.SignTransactions(context.Background(), []transactions.Transaction{txn}, []int{1})
	require.ErrorContains(t, err, "Transaction index 1 out of range")
}

func TestMultisigAccountSigner(t *testing.T) {
	partitiontest.PartitionTest(t)

	pks := []crypto.PublicKey{alice.secrets.SignatureVerifier, bob.secrets.SignatureVerifier, carol.secrets.SignatureVerifier}
	signer, err := NewMultisigAccountSigner(1, 2, pks, []*crypto.SignatureSecrets{alice.secrets, carol.secrets})
	require.NoError(t, err)
	addr, err := crypto.MultisigAddrGen(1, 2, pks)
	require.NoError(t, err)
	require.Equal(t, basics.Address(addr), signer.Address())

	txn, err := transactions.NewPayment(transactions.Header{Sender: signer.Address(), FirstValid: 1, LastValid: 2},
		transactions.PaymentTxnFields{Receiver: alice.addr})
	require.NoError(t, err)
	stxns, err := signer.SignTransactions(context.Background(), []transactions.Transaction{txn}, []int{0})
	require.NoError(t, err)
	require.Equal(t, 2, stxns[0].Msig.Signatures())
	require.True(t, stxns[0].AuthAddr.IsZero())
	require.NoError(t, crypto.MultisigVerify(txn, addr, stxns[0].Msig))

	other := newTestAccount(9)
	_, err = NewMultisigAccountSigner(1, 2, pks, []*crypto.SignatureSecrets{other.secrets})
	require.ErrorContains(t, err, "is not part of the multisig account")
}

func TestGatherSignatures(t *testing.T) {
	partitiontest.PartitionTest(t)

	aliceRec := &recordingSigner{inner: alice.signer}
	bobRec := &recordingSigner{inner: bob.signer}

	c, _ := newTestComposer(t)
	_, err := c.GatherSignatures(context.Background())
	require.ErrorContains(t, err, "Cannot gather signatures before building the transaction group")

	for i, s := range []*recordingSigner{aliceRec, bobRec, aliceRec} {
		p := payment(alice, bob, uint64(i))
		p.Signer = s
		require.NoError(t, c.AddPayment(p))
	}
	built, err := c.Build(context.Background())
	require.NoError(t, err)

	signed, err := c.GatherSignatures(context.Background())
	require.NoError(t, err)
	require.Len(t, signed, 3)
	require.Equal(t, [][]int{{0, 2}}, aliceRec.calls)
	require.Equal(t, [][]int{{1}}, bobRec.calls)

	for i, stxn := range signed {
		require.Equal(t, built[i].Txn.ID(), stxn.Txn.ID())
		require.False(t, stxn.Sig.Blank())
	}
	require.True(t, signed[0].AuthAddr.IsZero())
	require.Equal(t, bob.addr, signed[1].AuthAddr)

	again, err := c.GatherSignatures(context.Background())
	require.NoError(t, err)
	require.Equal(t, signed, again)
	require.Len(t, aliceRec.calls, 1)
}

func TestGatherSignaturesErrors(t *testing.T) {
	partitiontest.PartitionTest(t)

	c, _ := newTestComposer(t)
	p := payment(alice, bob, 1)
	p.Signer = failingSigner{}
	require.NoError(t, c.AddPayment(p))
	_, err := c.Build(context.Background())
	require.NoError(t, err)
	_, err = c.GatherSignatures(context.Background())
	require.ErrorContains(t, err, "hardware wallet unplugged")

	c, _ = newTestComposer(t)
	require.NoError(t, c.AddPayment(payment(alice, bob, 1)))
	p = payment(bob, alice, 1)
	p.Signer = shortSigner{}
	require.NoError(t, c.AddPayment(p))
	_, err = c.Build(context.Background())
	require.NoError(t, err)
	_, err = c.GatherSignatures(context.Background())
	require.ErrorContains(t, err, "Transaction at index 1 was not signed")
}

func TestEmptySigner(t *testing.T) {
	partitiontest.PartitionTest(t)

	c, _ := newTestComposer(t)
	p := payment(carol, bob, 1)
	p.Signer = EmptySigner{}
	require.NoError(t, c.AddPayment(p))
	_, err := c.Build(context.Background())
	require.NoError(t, err)

	signed, err := c.GatherSignatures(context.Background())
	require.NoError(t, err)
	require.True(t, signed[0].Sig.Blank())
	require.True(t, signed[0].Msig.Blank())
}
