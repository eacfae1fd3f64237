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

	"github.com/algorand/go-algokit/daemon/algod/api/client"
	"github.com/algorand/go-algokit/daemon/algod/api/model"
	"github.com/algorand/go-algokit/data/basics"
	"github.com/algorand/go-algokit/data/transactions"
)

//go:generate mockgen -source=node.go -destination=mock_node_test.go -package=composer

// Node is the part of the algod API a Composer talks to.
type Node interface {
	SuggestedParams(ctx context.Context) (model.TransactionParams, error)
	Status(ctx context.Context) (model.NodeStatus, error)
	StatusAfterBlock(ctx context.Context, round basics.Round) (model.NodeStatus, error)
	SendRawTransactionGroup(ctx context.Context, txgroup []transactions.SignedTxn) (model.PostTransactionsResponse, error)
	PendingTransactionInformation(ctx context.Context, transactionID string) (model.PendingTransactionResponse, error)
	Simulate(ctx context.Context, request model.SimulateRequest) (model.SimulateResponse, error)
}

var _ Node = client.RestClient{}
