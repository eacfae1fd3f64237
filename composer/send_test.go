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
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/algorand/go-algokit/daemon/algod/api/client"
	"github.com/algorand/go-algokit/daemon/algod/api/model"
	"github.com/algorand/go-algokit/data/abi"
	"github.com/algorand/go-algokit/data/basics"
	"github.com/algorand/go-algokit/data/transactions"
	"github.com/algorand/go-algokit/serr"
	"github.com/algorand/go-algokit/test/partitiontest"
)

var notFound = client.HTTPError{StatusCode: http.StatusNotFound, Status: "404 Not Found", ErrorString: "txn not found"}

func returnLog(v uint64) [][]byte {
	return [][]byte{[]byte("hello"), append(append([]byte(nil), abi.ReturnPrefix...), uint64Bytes(v)...)}
}

func TestSendWaitsForConfirmation(t *testing.T) {
	partitiontest.PartitionTest(t)

	c, node := newTestComposer(t)
	require.NoError(t, c.AddPayment(payment(alice, bob, 1)))
	require.NoError(t, c.AddAssetCreate(AssetCreateParams{CommonParams: CommonParams{Sender: bob.addr}, Total: 10}))

	built, err := c.Build(context.Background())
	require.NoError(t, err)
	id0 := built[0].Txn.ID().String()
	id1 := built[1].Txn.ID().String()

	node.EXPECT().SendRawTransactionGroup(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, stxns []transactions.SignedTxn) (model.PostTransactionsResponse, error) {
			require.Len(t, stxns, 2)
			require.False(t, stxns[0].Sig.Blank())
			return model.PostTransactionsResponse{TxID: id0}, nil
		})
	node.EXPECT().Status(gomock.Any()).Return(model.NodeStatus{LastRound: 1000}, nil).Times(2)
	gomock.InOrder(
		node.EXPECT().PendingTransactionInformation(gomock.Any(), id0).Return(model.PendingTransactionResponse{}, notFound),
		node.EXPECT().PendingTransactionInformation(gomock.Any(), id0).Return(model.PendingTransactionResponse{}, nil),
		node.EXPECT().StatusAfterBlock(gomock.Any(), basics.Round(1002)).Return(model.NodeStatus{LastRound: 1002}, nil),
		node.EXPECT().PendingTransactionInformation(gomock.Any(), id0).Return(model.PendingTransactionResponse{ConfirmedRound: 1003}, nil),
		node.EXPECT().PendingTransactionInformation(gomock.Any(), id1).Return(model.PendingTransactionResponse{ConfirmedRound: 1003, AssetIndex: 42}, nil),
	)

	res, err := c.Send(context.Background(), SendParams{})
	require.NoError(t, err)
	require.Equal(t, built[0].Txn.Group, res.GroupID)
	require.Equal(t, []string{id0, id1}, res.TxIDs)
	require.Equal(t, []basics.Round{1003, 1003}, res.ConfirmedRounds)
	require.Equal(t, []basics.AssetIndex{0, 42}, res.AssetIDs)
	require.Empty(t, res.ABIReturns)

	_, err = c.Send(context.Background(), SendParams{})
	require.ErrorContains(t, err, "already sent")
}

func TestSendTimeout(t *testing.T) {
	partitiontest.PartitionTest(t)

	c, node := newTestComposer(t)
	require.NoError(t, c.AddPayment(payment(alice, bob, 1)))

	node.EXPECT().SendRawTransactionGroup(gomock.Any(), gomock.Any()).Return(model.PostTransactionsResponse{}, nil)
	node.EXPECT().Status(gomock.Any()).Return(model.NodeStatus{LastRound: 1000}, nil)
	node.EXPECT().PendingTransactionInformation(gomock.Any(), gomock.Any()).Return(model.PendingTransactionResponse{}, nil).Times(2)
	node.EXPECT().StatusAfterBlock(gomock.Any(), gomock.Any()).Return(model.NodeStatus{}, nil).Times(2)

	_, err := c.Send(context.Background(), SendParams{MaxRoundsToWaitForConfirmation: 2})
	require.ErrorIs(t, err, serr.ErrNode)
	require.ErrorContains(t, err, "not confirmed after 2 rounds")
}

func TestSendPoolError(t *testing.T) {
	partitiontest.PartitionTest(t)

	c, node := newTestComposer(t)
	require.NoError(t, c.AddPayment(payment(alice, bob, 1)))

	node.EXPECT().SendRawTransactionGroup(gomock.Any(), gomock.Any()).Return(model.PostTransactionsResponse{}, nil)
	node.EXPECT().Status(gomock.Any()).Return(model.NodeStatus{LastRound: 1000}, nil)
	node.EXPECT().PendingTransactionInformation(gomock.Any(), gomock.Any()).Return(model.PendingTransactionResponse{PoolError: "overspend"}, nil)

	_, err := c.Send(context.Background(), SendParams{})
	require.ErrorContains(t, err, "pool error: overspend")
}

func TestSendLogicError(t *testing.T) {
	partitiontest.PartitionTest(t)

	c, node := newTestComposer(t, WithPopulateResources(false))
	require.NoError(t, c.AddAppCall(AppCallParams{CommonParams: CommonParams{Sender: alice.addr}, AppID: 1001}))
	built, err := c.Build(context.Background())
	require.NoError(t, err)
	txid := built[0].Txn.ID().String()

	msg := "TransactionPool.Remember: transaction " + txid + ": logic eval error: assert failed pc=12. Details: pc=12, opcodes=int 0; assert"
	node.EXPECT().SendRawTransactionGroup(gomock.Any(), gomock.Any()).Return(model.PostTransactionsResponse{},
		client.HTTPError{StatusCode: http.StatusBadRequest, Status: "400 Bad Request", ErrorString: msg})

	_, err = c.Send(context.Background(), SendParams{})
	require.ErrorIs(t, err, serr.ErrNode)
	require.ErrorIs(t, err, serr.ErrLogic)
	var le *LogicError
	require.True(t, errors.As(err, &le))
	require.Equal(t, txid, le.TxID)
	require.Equal(t, basics.AppIndex(1001), le.AppID)
	require.Equal(t, 12, le.PC)

	_, err = c.Send(context.Background(), SendParams{})
	require.ErrorContains(t, err, "already failed to send")
}

func TestSendABIReturns(t *testing.T) {
	partitiontest.PartitionTest(t)

	c, node := newTestComposer(t, WithPopulateResources(false))
	require.NoError(t, c.AddPayment(payment(alice, bob, 1)))
	require.NoError(t, c.AddMethodCall(methodCall(t, "add(uint64,uint64)uint64", uint64(40), uint64(2))))
	require.NoError(t, c.AddMethodCall(methodCall(t, "broken()uint64")))

	node.EXPECT().SendRawTransactionGroup(gomock.Any(), gomock.Any()).Return(model.PostTransactionsResponse{}, nil)
	node.EXPECT().Status(gomock.Any()).Return(model.NodeStatus{LastRound: 1000}, nil).AnyTimes()
	gomock.InOrder(
		node.EXPECT().PendingTransactionInformation(gomock.Any(), gomock.Any()).Return(model.PendingTransactionResponse{ConfirmedRound: 1001}, nil),
		node.EXPECT().PendingTransactionInformation(gomock.Any(), gomock.Any()).Return(model.PendingTransactionResponse{ConfirmedRound: 1001, Logs: returnLog(42)}, nil),
		node.EXPECT().PendingTransactionInformation(gomock.Any(), gomock.Any()).Return(model.PendingTransactionResponse{ConfirmedRound: 1001}, nil),
	)

	res, err := c.Send(context.Background(), SendParams{})
	require.NoError(t, err)
	require.Len(t, res.ABIReturns, 2)

	require.NoError(t, res.ABIReturns[0].DecodeError)
	require.Equal(t, "add", res.ABIReturns[0].Method.Name)
	require.EqualValues(t, 42, res.ABIReturns[0].ReturnValue)
	require.Equal(t, uint64Bytes(42), res.ABIReturns[0].RawReturnValue)
	require.Equal(t, res.TxIDs[1], res.ABIReturns[0].TxID)

	require.ErrorIs(t, res.ABIReturns[1].DecodeError, serr.ErrDecoding)
	require.Equal(t, "broken", res.ABIReturns[1].Method.Name)
}

func TestSimulate(t *testing.T) {
	partitiontest.PartitionTest(t)

	c, node := newTestComposer(t, WithPopulateResources(false))
	require.NoError(t, c.AddMethodCall(methodCall(t, "add(uint64,uint64)uint64", uint64(1), uint64(2))))

	node.EXPECT().Simulate(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req model.SimulateRequest) (model.SimulateResponse, error) {
			require.True(t, req.AllowEmptySignatures)
			require.True(t, req.AllowMoreLogging)
			require.Len(t, req.TxnGroups, 1)
			require.True(t, req.TxnGroups[0].Txns[0].Sig.Blank())
			return model.SimulateResponse{TxnGroups: []model.SimulateTransactionGroupResult{{
				TxnResults: []model.SimulateTransactionResult{{TxnResult: model.PendingTransactionResponse{Logs: returnLog(3)}}},
			}}}, nil
		})

	res, err := c.Simulate(context.Background(), SimulateOptions{SkipSignatures: true, AllowMoreLogging: true})
	require.NoError(t, err)
	require.Len(t, res.ABIReturns, 1)
	require.EqualValues(t, 3, res.ABIReturns[0].ReturnValue)
	require.Len(t, res.Results, 1)
}

func TestSimulateFailure(t *testing.T) {
	partitiontest.PartitionTest(t)

	c, node := newTestComposer(t, WithPopulateResources(false))
	require.NoError(t, c.AddAppCall(AppCallParams{CommonParams: CommonParams{Sender: alice.addr}, AppID: 7}))
	built, err := c.Build(context.Background())
	require.NoError(t, err)
	txid := built[0].Txn.ID().String()

	node.EXPECT().Simulate(gomock.Any(), gomock.Any()).Return(model.SimulateResponse{TxnGroups: []model.SimulateTransactionGroupResult{{
		FailureMessage: "transaction " + txid + ": logic eval error: err opcode executed. Details: app=7, pc=3",
		FailedAt:       []uint64{0},
	}}}, nil)

	_, err = c.Simulate(context.Background(), SimulateOptions{})
	require.ErrorIs(t, err, serr.ErrNode)
	require.ErrorIs(t, err, serr.ErrLogic)
	var le *LogicError
	require.True(t, errors.As(err, &le))
	require.Equal(t, basics.AppIndex(7), le.AppID)
	require.Equal(t, 3, le.PC)
}
