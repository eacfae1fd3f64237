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

package crypto

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/algorand/go-algokit/protocol"
	"github.com/algorand/go-algokit/test/partitiontest"
)

func multisigFixture(n int) ([]*SecretKey, []PublicKey) {
	sks := make([]*SecretKey, n)
	pks := make([]PublicKey, n)
	for i := range sks {
		var seed Seed
		seed[0] = byte(i + 1)
		sks[i] = GenerateSignatureSecrets(seed)
		pks[i] = sks[i].SignatureVerifier
	}
	return sks, pks
}

func TestMultisigAddrGen(t *testing.T) {
	partitiontest.PartitionTest(t)

	_, pks := multisigFixture(3)

	addr, err := MultisigAddrGen(1, 2, pks)
	require.NoError(t, err)

	buf := append([]byte("MultisigAddr"), 1, 2)
	for _, pk := range pks {
		buf = append(buf, pk[:]...)
	}
	require.Equal(t, Hash(buf), addr)

	_, err = MultisigAddrGen(2, 2, pks)
	require.ErrorIs(t, err, errUnknownVersion)
	_, err = MultisigAddrGen(1, 0, pks)
	require.ErrorIs(t, err, errInvalidThreshold)
	_, err = MultisigAddrGen(1, 4, pks)
	require.ErrorIs(t, err, errInvalidThreshold)

	// order of keys matters
	swapped := []PublicKey{pks[1], pks[0], pks[2]}
	other, err := MultisigAddrGen(1, 2, swapped)
	require.NoError(t, err)
	require.NotEqual(t, addr, other)
}

func TestMultisigSignMergeVerify(t *testing.T) {
	partitiontest.PartitionTest(t)

	sks, pks := multisigFixture(3)
	addr, err := MultisigAddrGen(1, 2, pks)
	require.NoError(t, err)
	msg := HashBytes{ID: protocol.Transaction, Data: []byte("txn")}

	sig0, err := MultisigSign(msg, addr, 1, 2, pks, *sks[0])
	require.NoError(t, err)
	require.Equal(t, 1, sig0.Signatures())
	require.Error(t, MultisigVerify(msg, addr, sig0))

	sig2, err := MultisigSign(msg, addr, 1, 2, pks, *sks[2])
	require.NoError(t, err)

	merged, err := MultisigAssemble([]MultisigSig{sig0, sig2})
	require.NoError(t, err)
	require.Equal(t, 2, merged.Signatures())
	require.NoError(t, MultisigVerify(msg, addr, merged))

	gotAddr, err := merged.Address()
	require.NoError(t, err)
	require.Equal(t, addr, gotAddr)

	// merging a signature with itself is fine, conflicting signatures are not
	again, err := MultisigMerge(merged, sig0)
	require.NoError(t, err)
	require.True(t, again.Equal(merged))

	conflicting := sig0
	conflicting.Subsigs = append([]MultisigSubsig(nil), sig0.Subsigs...)
	conflicting.Subsigs[0].Sig[0] ^= 1
	_, err = MultisigMerge(sig0, conflicting)
	require.ErrorIs(t, err, errInvalidDuplicates)

	// tampered subsignature fails verification
	bad := merged
	bad.Subsigs = append([]MultisigSubsig(nil), merged.Subsigs...)
	bad.Subsigs[2].Sig[5] ^= 1
	require.ErrorIs(t, MultisigVerify(msg, addr, bad), errSubsigVerification)
}

func TestMultisigSignErrors(t *testing.T) {
	partitiontest.PartitionTest(t)

	sks, pks := multisigFixture(3)
	addr, err := MultisigAddrGen(1, 2, pks)
	require.NoError(t, err)
	msg := HashBytes{ID: protocol.Transaction, Data: []byte("txn")}

	_, err = MultisigSign(msg, Digest{}, 1, 2, pks, *sks[0])
	require.ErrorIs(t, err, errInvalidAddress)

	outsider := GenerateSignatureSecrets(Seed{99})
	_, err = MultisigSign(msg, addr, 1, 2, pks, *outsider)
	require.ErrorIs(t, err, errKeyNotExist)

	_, err = MultisigMerge(MultisigPreimageFromPKs(1, 2, pks), MultisigPreimageFromPKs(1, 2, pks[:2]))
	require.Error(t, err)

	require.True(t, MultisigSig{}.Blank())
	require.False(t, MultisigPreimageFromPKs(1, 2, pks).Blank())
}
