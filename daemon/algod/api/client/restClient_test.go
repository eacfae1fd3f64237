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

package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/algorand/go-algokit/crypto"
	"github.com/algorand/go-algokit/daemon/algod/api/model"
	"github.com/algorand/go-algokit/data/basics"
	"github.com/algorand/go-algokit/data/transactions"
	"github.com/algorand/go-algokit/protocol"
	"github.com/algorand/go-algokit/serr"
	"github.com/algorand/go-algokit/test/partitiontest"
)

const testToken = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"

type fakeAlgod struct {
	submitted [][]transactions.SignedTxn
	simulated []model.SimulateRequest
}

func (f *fakeAlgod) requireToken(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if c.Path() != healthCheckEndpoint && c.Request().Header.Get(authHeader) != testToken {
			return c.JSONBlob(http.StatusUnauthorized, []byte(`{"message":"Invalid API Token"}`))
		}
		return next(c)
	}
}

func (f *fakeAlgod) routes(e *echo.Echo, params model.TransactionParams) {
	e.Use(f.requireToken)
	e.GET(healthCheckEndpoint, func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	e.GET("/v2/status", func(c echo.Context) error {
		return c.JSONBlob(http.StatusOK, []byte(`{"last-round": 42, "last-version": "future", "catchpoint": "unknown to the model"}`))
	})
	e.GET("/v2/status/wait-for-block-after/:round", func(c echo.Context) error {
		return c.JSONBlob(http.StatusOK, []byte(`{"last-round": `+c.Param("round")+`}`))
	})
	e.GET("/v2/transactions/params", func(c echo.Context) error {
		return c.JSONBlob(http.StatusOK, protocol.EncodeJSON(&params))
	})
	e.POST("/v2/transactions", func(c echo.Context) error {
		body, err := io.ReadAll(c.Request().Body)
		if err != nil {
			return err
		}
		group, err := transactions.DecodeSignedTxns(body)
		if err != nil {
			return c.JSONBlob(http.StatusBadRequest, []byte(`{"message":"bad body"}`))
		}
		f.submitted = append(f.submitted, group)
		return c.JSONBlob(http.StatusOK, []byte(`{"txId":"`+group[0].ID().String()+`"}`))
	})
	e.GET("/v2/transactions/pending/:txid", func(c echo.Context) error {
		if c.QueryParam("format") != "msgpack" {
			return c.JSONBlob(http.StatusBadRequest, []byte(`{"message":"expected msgpack"}`))
		}
		if c.Param("txid") == "MISSING" {
			return c.JSONBlob(http.StatusNotFound, []byte(`{"message":"txn does not exist"}`))
		}
		resp := model.PendingTransactionResponse{
			ConfirmedRound:   7,
			ApplicationIndex: 1234,
			Logs:             [][]byte{[]byte("log")},
		}
		return c.Blob(http.StatusOK, msgpackContentType, protocol.Encode(&resp))
	})
	e.POST("/v2/transactions/simulate", func(c echo.Context) error {
		body, err := io.ReadAll(c.Request().Body)
		if err != nil {
			return err
		}
		var req model.SimulateRequest
		if err := protocol.Decode(body, &req); err != nil {
			return c.JSONBlob(http.StatusBadRequest, []byte(`{"message":"bad simulate request"}`))
		}
		f.simulated = append(f.simulated, req)
		resp := model.SimulateResponse{
			Version:   2,
			LastRound: 42,
			TxnGroups: []model.SimulateTransactionGroupResult{{
				TxnResults: make([]model.SimulateTransactionResult, len(req.TxnGroups[0].Txns)),
				UnnamedResourcesAccessed: &model.SimulateUnnamedResourcesAccessed{
					Apps:   []basics.AppIndex{9},
					Boxes:  []model.BoxReference{{App: 9, Name: []byte("b")}},
					Assets: []basics.AssetIndex{3},
				},
			}},
		}
		return c.Blob(http.StatusOK, msgpackContentType, protocol.Encode(&resp))
	})
	e.POST("/v2/teal/compile", func(c echo.Context) error {
		body, err := io.ReadAll(c.Request().Body)
		if err != nil {
			return err
		}
		hash := basics.Address(crypto.Hash(body))
		resp := `{"hash":"` + hash.String() + `","result":"CIEB"`
		if c.QueryParam("sourcemap") == "true" {
			resp += `,"sourcemap":{"version":3,"sources":["x.teal"],"names":[],"mappings":";AAAA;AACA"}`
		}
		resp += "}"
		return c.JSONBlob(http.StatusOK, []byte(resp))
	})
	e.GET("/v2/broken", func(c echo.Context) error {
		return c.String(http.StatusInternalServerError, "boom\n\x01\x7fdone")
	})
}

func makeTestClient(t *testing.T, token string) (RestClient, *fakeAlgod) {
	params := model.TransactionParams{
		ConsensusVersion: "future",
		Fee:              0,
		GenesisHash:      make([]byte, 32),
		GenesisID:        "testnet-v1.0",
		LastRound:        42,
		MinFee:           1000,
	}
	f := &fakeAlgod{}
	e := echo.New()
	f.routes(e, params)
	ts := httptest.NewServer(e)
	t.Cleanup(ts.Close)

	u, err := url.Parse(ts.URL)
	require.NoError(t, err)
	return MakeRestClient(*u, token), f
}

func testSignedTxn() transactions.SignedTxn {
	var sender basics.Address
	sender[0] = 1
	tx := transactions.Transaction{
		Type: protocol.PaymentTx,
		Header: transactions.Header{
			Sender:     sender,
			Fee:        basics.MicroAlgos{Raw: 1000},
			FirstValid: 1,
			LastValid:  11,
			GenesisID:  "testnet-v1.0",
		},
		PaymentTxnFields: transactions.PaymentTxnFields{
			Receiver: sender,
			Amount:   basics.MicroAlgos{Raw: 5},
		},
	}
	return transactions.SignedTxn{Txn: tx}
}

func TestSuggestedParamsAndStatus(t *testing.T) {
	partitiontest.PartitionTest(t)

	client, _ := makeTestClient(t, testToken)
	ctx := context.Background()

	params, err := client.SuggestedParams(ctx)
	require.NoError(t, err)
	require.Equal(t, "testnet-v1.0", params.GenesisID)
	require.Equal(t, uint64(1000), params.MinFee)
	require.Equal(t, basics.Round(42), params.LastRound)
	require.Len(t, params.GenesisHash, 32)

	status, err := client.Status(ctx)
	require.NoError(t, err)
	require.Equal(t, basics.Round(42), status.LastRound)
	require.Equal(t, "future", status.LastVersion)

	status, err = client.StatusAfterBlock(ctx, 50)
	require.NoError(t, err)
	require.Equal(t, basics.Round(50), status.LastRound)

	require.NoError(t, client.HealthCheck(ctx))
}

func TestUnauthorized(t *testing.T) {
	partitiontest.PartitionTest(t)

	client, _ := makeTestClient(t, "wrong")
	_, err := client.Status(context.Background())
	require.Error(t, err)
	var unauthorized unauthorizedRequestError
	require.True(t, errors.As(err, &unauthorized))
	require.Equal(t, "wrong", unauthorized.apiToken)
	require.Contains(t, err.Error(), "Invalid API Token")
	require.True(t, errors.Is(err, serr.ErrNode))

	// the health endpoint does not need a token
	require.NoError(t, client.HealthCheck(context.Background()))
}

func TestHTTPErrorFiltering(t *testing.T) {
	partitiontest.PartitionTest(t)

	client, _ := makeTestClient(t, testToken)
	err := client.get(context.Background(), &model.NodeStatus{}, "/v2/broken", nil)
	var httpErr HTTPError
	require.True(t, errors.As(err, &httpErr))
	require.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)
	require.Equal(t, "boomdone", httpErr.ErrorString)
	require.True(t, errors.Is(err, serr.ErrNode))
	require.False(t, IsNotFound(err))
}

func TestSendRawTransactionGroup(t *testing.T) {
	partitiontest.PartitionTest(t)

	client, f := makeTestClient(t, testToken)
	ctx := context.Background()

	stxn := testSignedTxn()
	other := testSignedTxn()
	other.Txn.Note = []byte("second")

	resp, err := client.SendRawTransactionGroup(ctx, []transactions.SignedTxn{stxn, other})
	require.NoError(t, err)
	require.Equal(t, stxn.ID().String(), resp.TxID)
	require.Len(t, f.submitted, 1)
	require.Equal(t, []transactions.SignedTxn{stxn, other}, f.submitted[0])

	resp, err = client.SendRawTransaction(ctx, other)
	require.NoError(t, err)
	require.Equal(t, other.ID().String(), resp.TxID)

	_, err = client.SendRawTransactionGroup(ctx, nil)
	require.True(t, errors.Is(err, serr.ErrValidation))
}

func TestPendingTransactionInformation(t *testing.T) {
	partitiontest.PartitionTest(t)

	client, _ := makeTestClient(t, testToken)
	ctx := context.Background()

	resp, err := client.PendingTransactionInformation(ctx, "SOMETXID")
	require.NoError(t, err)
	require.True(t, resp.Confirmed())
	require.Equal(t, basics.AppIndex(1234), resp.ApplicationIndex)
	require.Equal(t, [][]byte{[]byte("log")}, resp.Logs)

	_, err = client.PendingTransactionInformation(ctx, "MISSING")
	require.True(t, IsNotFound(err))
	require.Contains(t, err.Error(), "txn does not exist")
}

func TestSimulate(t *testing.T) {
	partitiontest.PartitionTest(t)

	client, f := makeTestClient(t, testToken)
	req := model.SimulateRequest{
		TxnGroups:             []model.SimulateRequestTransactionGroup{{Txns: []transactions.SignedTxn{testSignedTxn()}}},
		AllowEmptySignatures:  true,
		AllowUnnamedResources: true,
	}
	resp, err := client.Simulate(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, uint64(2), resp.Version)
	require.Len(t, resp.TxnGroups, 1)
	require.Len(t, resp.TxnGroups[0].TxnResults, 1)
	require.Equal(t, []basics.AppIndex{9}, resp.TxnGroups[0].UnnamedResourcesAccessed.Apps)
	require.Equal(t, []byte("b"), resp.TxnGroups[0].UnnamedResourcesAccessed.Boxes[0].Name)

	require.Len(t, f.simulated, 1)
	require.True(t, f.simulated[0].AllowEmptySignatures)
	require.Equal(t, req.TxnGroups[0].Txns[0].ID(), f.simulated[0].TxnGroups[0].Txns[0].ID())
}

func TestCompile(t *testing.T) {
	partitiontest.PartitionTest(t)

	client, _ := makeTestClient(t, testToken)
	source := []byte("#pragma version 8\nint 1\n")

	program, hash, sourceMap, err := client.Compile(context.Background(), source, true)
	require.NoError(t, err)
	require.Equal(t, []byte{0x08, 0x81, 0x01}, program)
	require.Equal(t, crypto.Hash(source), hash)
	require.NotNil(t, sourceMap)
	require.Equal(t, []string{"x.teal"}, sourceMap.Sources)

	_, _, sourceMap, err = client.Compile(context.Background(), source, false)
	require.NoError(t, err)
	require.Nil(t, sourceMap)
}

func TestContextCancellation(t *testing.T) {
	partitiontest.PartitionTest(t)

	client, _ := makeTestClient(t, testToken)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := client.Status(ctx)
	require.Error(t, err)
	require.True(t, errors.Is(err, serr.ErrNode))
	require.True(t, errors.Is(err, context.Canceled))
}

func TestFilterASCII(t *testing.T) {
	partitiontest.PartitionTest(t)

	require.Equal(t, "abc 123~", filterASCII("abc\t 123~\x7f\n"))
	require.Equal(t, "", filterASCII("\x00\x01"))
}
