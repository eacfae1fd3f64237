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

package model

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/algorand/go-algokit/data/basics"
	"github.com/algorand/go-algokit/protocol"
	"github.com/algorand/go-algokit/test/partitiontest"
)

func TestPendingTransactionInnerTxns(t *testing.T) {
	partitiontest.PartitionTest(t)

	resp := PendingTransactionResponse{
		ConfirmedRound: 10,
		InnerTxns: []PendingTransactionResponse{
			{Logs: [][]byte{[]byte("inner")}},
			{AssetIndex: 77, InnerTxns: []PendingTransactionResponse{{ApplicationIndex: 5}}},
		},
	}
	var decoded PendingTransactionResponse
	require.NoError(t, protocol.DecodeLenient(protocol.Encode(&resp), &decoded))
	require.True(t, decoded.Confirmed())
	require.False(t, decoded.InnerTxns[0].Confirmed())
	require.Equal(t, basics.AssetIndex(77), decoded.InnerTxns[1].AssetIndex)
	require.Equal(t, basics.AppIndex(5), decoded.InnerTxns[1].InnerTxns[0].ApplicationIndex)
}

func TestUnnamedResourcesEmpty(t *testing.T) {
	partitiontest.PartitionTest(t)

	var nilResources *SimulateUnnamedResourcesAccessed
	require.True(t, nilResources.Empty())
	require.True(t, (&SimulateUnnamedResourcesAccessed{}).Empty())
	require.False(t, (&SimulateUnnamedResourcesAccessed{ExtraBoxRefs: 1}).Empty())
	require.False(t, (&SimulateUnnamedResourcesAccessed{Accounts: []string{"A"}}).Empty())
}

func TestSimulateRequestDecode(t *testing.T) {
	partitiontest.PartitionTest(t)

	req := SimulateRequest{AllowEmptySignatures: true}
	var decoded SimulateRequest
	require.NoError(t, protocol.Decode(protocol.Encode(&req), &decoded))
	require.Equal(t, req, decoded)
}
