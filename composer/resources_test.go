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
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/algorand/go-algokit/daemon/algod/api/model"
	"github.com/algorand/go-algokit/data/basics"
	"github.com/algorand/go-algokit/data/transactions"
	"github.com/algorand/go-algokit/logging"
	"github.com/algorand/go-algokit/serr"
	"github.com/algorand/go-algokit/test/partitiontest"
)

func appCall(app basics.AppIndex) AppCallParams {
	return AppCallParams{CommonParams: CommonParams{Sender: alice.addr}, AppID: app}
}

// simulateReturns makes node answer the execution info simulation with one
// result per entry of txnUnnamed and group as the group level resources.
func simulateReturns(t *testing.T, node *MockNode, group *model.SimulateUnnamedResourcesAccessed, txnUnnamed ...*model.SimulateUnnamedResourcesAccessed) {
	node.EXPECT().Simulate(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req model.SimulateRequest) (model.SimulateResponse, error) {
			require.True(t, req.AllowEmptySignatures)
			require.True(t, req.AllowUnnamedResources)
			require.True(t, req.FixSigners)
			require.Len(t, req.TxnGroups[0].Txns, len(txnUnnamed))

			results := make([]model.SimulateTransactionResult, len(txnUnnamed))
			for i, u := range txnUnnamed {
				results[i].UnnamedResourcesAccessed = u
			}
			return model.SimulateResponse{TxnGroups: []model.SimulateTransactionGroupResult{{
				TxnResults:               results,
				UnnamedResourcesAccessed: group,
			}}}, nil
		})
}

func TestPopulateTransactionResources(t *testing.T) {
	partitiontest.PartitionTest(t)

	c, node := newTestComposer(t)
	require.NoError(t, c.AddPayment(payment(alice, bob, 1)))
	require.NoError(t, c.AddAppCall(appCall(1001)))
	simulateReturns(t, node,
		&model.SimulateUnnamedResourcesAccessed{Boxes: []model.BoxReference{{App: 1001, Name: []byte("box")}}},
		&model.SimulateUnnamedResourcesAccessed{Accounts: []string{carol.addr.String()}},
		&model.SimulateUnnamedResourcesAccessed{
			Accounts: []string{carol.addr.String()},
			Apps:     []basics.AppIndex{55},
			Assets:   []basics.AssetIndex{9},
		},
	)

	built, err := c.Build(context.Background())
	require.NoError(t, err)

	require.Empty(t, built[0].Txn.Accounts)
	call := built[1].Txn
	require.Equal(t, []basics.Address{carol.addr}, call.Accounts)
	require.Equal(t, []basics.AppIndex{55}, call.ForeignApps)
	require.Equal(t, []basics.AssetIndex{9}, call.ForeignAssets)
	require.Equal(t, []transactions.BoxRef{{Index: 0, Name: []byte("box")}}, call.Boxes)

	// the group id covers the populated references
	txns := c.Transactions()
	for i := range txns {
		txns[i].Group = [32]byte{}
	}
	gid, err := transactions.ComputeGroupID(txns)
	require.NoError(t, err)
	require.Equal(t, gid, built[0].Txn.Group)
}

func TestPopulateUnexpectedTransactionResources(t *testing.T) {
	partitiontest.PartitionTest(t)

	cases := []struct {
		unnamed model.SimulateUnnamedResourcesAccessed
		msg     string
	}{
		{model.SimulateUnnamedResourcesAccessed{Boxes: []model.BoxReference{{App: 1}}}, "Unexpected boxes at the transaction level"},
		{model.SimulateUnnamedResourcesAccessed{ExtraBoxRefs: 2}, "Unexpected boxes at the transaction level"},
		{model.SimulateUnnamedResourcesAccessed{AppLocals: []model.ApplicationLocalReference{{Account: carol.addr.String(), App: 1}}}, "Unexpected app local at the transaction level"},
		{model.SimulateUnnamedResourcesAccessed{AssetHoldings: []model.AssetHoldingReference{{Account: carol.addr.String(), Asset: 1}}}, "Unexpected asset holding at the transaction level"},
	}
	for _, tc := range cases {
		c, node := newTestComposer(t)
		require.NoError(t, c.AddAppCall(appCall(1001)))
		simulateReturns(t, node, nil, &tc.unnamed)
		_, err := c.Build(context.Background())
		require.ErrorIs(t, err, serr.ErrValidation)
		require.ErrorContains(t, err, tc.msg)
	}
}

func TestPopulateAccountLimit(t *testing.T) {
	partitiontest.PartitionTest(t)

	var accounts []string
	for seed := byte(10); seed < 15; seed++ {
		accounts = append(accounts, newTestAccount(seed).addr.String())
	}

	c, node := newTestComposer(t)
	require.NoError(t, c.AddAppCall(appCall(1001)))
	simulateReturns(t, node, nil, &model.SimulateUnnamedResourcesAccessed{Accounts: accounts})
	_, err := c.Build(context.Background())
	require.ErrorContains(t, err, "Account reference limit of 4 exceeded in transaction 0")

	// with access lists the overflow moves to another app call of the group
	c, node = newTestComposer(t, WithAccessList(true))
	require.NoError(t, c.AddAppCall(appCall(1001)))
	require.NoError(t, c.AddAppCall(appCall(1002)))
	simulateReturns(t, node, nil, &model.SimulateUnnamedResourcesAccessed{Accounts: accounts}, nil)
	built, err := c.Build(context.Background())
	require.NoError(t, err)
	require.Len(t, built[0].Txn.Accounts, 4)
	require.Len(t, built[1].Txn.Accounts, 1)
	require.Equal(t, accounts[4], built[1].Txn.Accounts[0].String())
}

func TestPopulateGroupPairs(t *testing.T) {
	partitiontest.PartitionTest(t)

	c, node := newTestComposer(t)
	require.NoError(t, c.AddAppCall(appCall(1001)))
	second := appCall(1002)
	second.AssetReferences = []basics.AssetIndex{9}
	require.NoError(t, c.AddAppCall(second))
	simulateReturns(t, node,
		&model.SimulateUnnamedResourcesAccessed{
			AssetHoldings: []model.AssetHoldingReference{{Account: carol.addr.String(), Asset: 9}},
			AppLocals:     []model.ApplicationLocalReference{{Account: bob.addr.String(), App: 1001}},
		},
		nil, nil,
	)

	built, err := c.Build(context.Background())
	require.NoError(t, err)
	// the holding joins the call that already has the asset, the local the
	// call of its app
	require.Equal(t, []basics.Address{bob.addr}, built[0].Txn.Accounts)
	require.Empty(t, built[0].Txn.ForeignApps)
	require.Equal(t, []basics.Address{carol.addr}, built[1].Txn.Accounts)
	require.Equal(t, []basics.AssetIndex{9}, built[1].Txn.ForeignAssets)
}

func TestPopulateGroupPairAlreadyReferenced(t *testing.T) {
	partitiontest.PartitionTest(t)

	c, node := newTestComposer(t)
	call := appCall(1001)
	call.AccountReferences = []basics.Address{carol.addr}
	call.AssetReferences = []basics.AssetIndex{9}
	require.NoError(t, c.AddAppCall(call))
	simulateReturns(t, node,
		&model.SimulateUnnamedResourcesAccessed{
			AssetHoldings: []model.AssetHoldingReference{{Account: carol.addr.String(), Asset: 9}},
			AppLocals:     []model.ApplicationLocalReference{{Account: carol.addr.String(), App: 1001}},
		},
		nil,
	)

	built, err := c.Build(context.Background())
	require.NoError(t, err)
	require.Equal(t, []basics.Address{carol.addr}, built[0].Txn.Accounts)
	require.Equal(t, []basics.AssetIndex{9}, built[0].Txn.ForeignAssets)
	require.Empty(t, built[0].Txn.ForeignApps)
}

func TestPopulateGroupFallback(t *testing.T) {
	partitiontest.PartitionTest(t)

	c, node := newTestComposer(t)
	require.NoError(t, c.AddPayment(payment(alice, bob, 1)))
	require.NoError(t, c.AddAppCall(appCall(1001)))
	simulateReturns(t, node,
		&model.SimulateUnnamedResourcesAccessed{
			AssetHoldings: []model.AssetHoldingReference{{Account: carol.addr.String(), Asset: 9}},
			Boxes:         []model.BoxReference{{App: 77, Name: []byte("k")}, {App: 77, Name: []byte("k")}},
			Apps:          []basics.AppIndex{88},
			ExtraBoxRefs:  1,
		},
		nil, nil,
	)

	built, err := c.Build(context.Background())
	require.NoError(t, err)
	call := built[1].Txn
	require.Equal(t, []basics.Address{carol.addr}, call.Accounts)
	require.Equal(t, []basics.AssetIndex{9}, call.ForeignAssets)
	require.Equal(t, []basics.AppIndex{77, 88}, call.ForeignApps)
	require.Equal(t, []transactions.BoxRef{
		{Index: 1, Name: []byte("k")},
		{Index: 0, Name: []byte{}},
	}, call.Boxes)
}

func TestPopulateNoRoom(t *testing.T) {
	partitiontest.PartitionTest(t)

	full := appCall(1001)
	for seed := byte(20); seed < 24; seed++ {
		full.AccountReferences = append(full.AccountReferences, newTestAccount(seed).addr)
	}
	full.AppReferences = []basics.AppIndex{1, 2, 3, 4}

	c, node := newTestComposer(t)
	require.NoError(t, c.AddAppCall(full))
	simulateReturns(t, node, &model.SimulateUnnamedResourcesAccessed{Assets: []basics.AssetIndex{9}}, nil)
	_, err := c.Build(context.Background())
	require.ErrorContains(t, err, "No more transactions below reference limit. Add another app call to the group.")
}

func TestPopulateDisabled(t *testing.T) {
	partitiontest.PartitionTest(t)

	// no Simulate expectation: the mock fails the test if it is called
	c, _ := newTestComposer(t, WithPopulateResources(false))
	require.NoError(t, c.AddAppCall(appCall(1001)))
	_, err := c.Build(context.Background())
	require.NoError(t, err)
}

func TestPopulateResourcesRepricesFee(t *testing.T) {
	partitiontest.PartitionTest(t)

	sp := testSuggestedParams()
	sp.Fee = 20
	ctrl := gomock.NewController(t)
	node := NewMockNode(ctrl)
	node.EXPECT().SuggestedParams(gomock.Any()).Return(sp, nil).AnyTimes()
	c := New(node, SignerMap{alice.addr: alice.signer}, WithLogger(logging.TestingLog(t)))

	require.NoError(t, c.AddAppCall(appCall(1001)))
	simulateReturns(t, node, nil, &model.SimulateUnnamedResourcesAccessed{
		Accounts: []string{bob.addr.String(), carol.addr.String()},
	})

	built, err := c.Build(context.Background())
	require.NoError(t, err)
	txn := built[0].Txn
	require.Len(t, txn.Accounts, 2)
	require.Equal(t, 20*uint64(txn.EstimateSize()), txn.Fee.Raw)
}
