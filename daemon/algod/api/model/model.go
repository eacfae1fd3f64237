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
	"github.com/algorand/go-algokit/data/basics"
	"github.com/algorand/go-algokit/data/transactions"
)

// TransactionParams contains the parameters that help a client construct
// a new transaction.
type TransactionParams struct {
	// ConsensusVersion indicates the consensus protocol version
	// as of LastRound.
	ConsensusVersion string `codec:"consensus-version"`

	// Fee is the suggested transaction fee
	// Fee is in units of micro-Algos per byte.
	// Fee may fall to zero but transactions must still have a fee of
	// at least MinTxnFee for the current network protocol.
	Fee uint64 `codec:"fee"`

	// GenesisHash is the hash of the genesis block.
	GenesisHash []byte `codec:"genesis-hash"`

	// GenesisID is an ID listed in the genesis block.
	GenesisID string `codec:"genesis-id"`

	// LastRound indicates the last round seen
	LastRound basics.Round `codec:"last-round"`

	// MinFee is the minimum transaction fee (not per byte) required for the
	// txn to validate for the current network protocol.
	MinFee uint64 `codec:"min-fee"`
}

// NodeStatus contains the information about a node status
type NodeStatus struct {
	// CatchupTime in nanoseconds
	CatchupTime uint64 `codec:"catchup-time"`

	// LastRound indicates the last round seen
	LastRound basics.Round `codec:"last-round"`

	// LastVersion indicates the last consensus version supported
	LastVersion string `codec:"last-version"`

	// NextVersion of consensus protocol to use
	NextVersion string `codec:"next-version"`

	// NextVersionRound is the round at which the next consensus version will apply
	NextVersionRound basics.Round `codec:"next-version-round"`

	// NextVersionSupported indicates whether the next consensus version is supported by this node
	NextVersionSupported bool `codec:"next-version-supported"`

	// StoppedAtUnsupportedRound indicates that the node does not support the new rounds and has stopped making progress
	StoppedAtUnsupportedRound bool `codec:"stopped-at-unsupported-round"`

	// TimeSinceLastRound in nanoseconds
	TimeSinceLastRound uint64 `codec:"time-since-last-round"`
}

// PendingTransactionResponse is the node's view of a transaction that was
// submitted to it, either still in the pool or already committed.
type PendingTransactionResponse struct {
	_struct struct{} `codec:",omitempty,omitemptyarray"`

	// Txn is the raw signed transaction.
	Txn transactions.SignedTxn `codec:"txn"`

	// ConfirmedRound is the round where this transaction was confirmed, if present.
	ConfirmedRound basics.Round `codec:"confirmed-round"`

	// PoolError indicates that the transaction was kicked out of this node's
	// transaction pool (and specifies why that happened). An empty string
	// indicates the transaction wasn't kicked out of this node's txpool due to an error.
	PoolError string `codec:"pool-error"`

	// AssetIndex is the ID of the asset created by this transaction.
	AssetIndex basics.AssetIndex `codec:"asset-index"`

	// ApplicationIndex is the ID of the application created by this transaction.
	ApplicationIndex basics.AppIndex `codec:"application-index"`

	// CloseRewards and the fields below are reported for committed transactions.
	CloseRewards       uint64 `codec:"close-rewards"`
	ClosingAmount      uint64 `codec:"closing-amount"`
	AssetClosingAmount uint64 `codec:"asset-closing-amount"`
	ReceiverRewards    uint64 `codec:"receiver-rewards"`
	SenderRewards      uint64 `codec:"sender-rewards"`

	// Logs emitted by the application, in order.
	Logs [][]byte `codec:"logs"`

	// InnerTxns are the inner transactions produced by application execution.
	InnerTxns []PendingTransactionResponse `codec:"inner-txns"`
}

// Confirmed reports whether the transaction was committed to a block.
func (p PendingTransactionResponse) Confirmed() bool {
	return p.ConfirmedRound != 0
}

// PostTransactionsResponse is returned by the transaction submission endpoint.
type PostTransactionsResponse struct {
	// TxID is the encoding of the transaction hash.
	TxID string `codec:"txId"`
}

// CompileResponse contains the result of a teal compilation.
type CompileResponse struct {
	// Hash is the base32 SHA512_256 of the program bytes (Address style)
	Hash string `codec:"hash"`

	// Result is the base64 encoded program bytes
	Result string `codec:"result"`

	// Sourcemap is the JSON source map, present when requested.
	Sourcemap *map[string]interface{} `codec:"sourcemap,omitempty"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Data    *map[string]interface{} `codec:"data,omitempty"`
	Message string                  `codec:"message"`
}

// SimulateTraceConfig controls which execution trace the simulation reports.
type SimulateTraceConfig struct {
	_struct struct{} `codec:",omitempty"`

	Enable        bool `codec:"enable"`
	ScratchChange bool `codec:"scratch-change"`
	StackChange   bool `codec:"stack-change"`
	StateChange   bool `codec:"state-change"`
}

// SimulateRequestTransactionGroup is a transaction group to simulate.
type SimulateRequestTransactionGroup struct {
	_struct struct{} `codec:",omitempty,omitemptyarray"`

	Txns []transactions.SignedTxn `codec:"txns"`
}

// SimulateRequest is the request body of the simulate endpoint.
type SimulateRequest struct {
	_struct struct{} `codec:",omitempty,omitemptyarray"`

	TxnGroups             []SimulateRequestTransactionGroup `codec:"txn-groups"`
	Round                 basics.Round                      `codec:"round"`
	AllowEmptySignatures  bool                              `codec:"allow-empty-signatures"`
	AllowMoreLogging      bool                              `codec:"allow-more-logging"`
	AllowUnnamedResources bool                              `codec:"allow-unnamed-resources"`
	ExtraOpcodeBudget     uint64                            `codec:"extra-opcode-budget"`
	ExecTraceConfig       SimulateTraceConfig               `codec:"exec-trace-config"`
	FixSigners            bool                              `codec:"fix-signers"`
}

// BoxReference names a box of an application.
type BoxReference struct {
	App  basics.AppIndex `codec:"app"`
	Name []byte          `codec:"name"`
}

// ApplicationLocalReference names the local state of an account in an application.
type ApplicationLocalReference struct {
	Account string          `codec:"account"`
	App     basics.AppIndex `codec:"app"`
}

// AssetHoldingReference names the holding of an account in an asset.
type AssetHoldingReference struct {
	Account string            `codec:"account"`
	Asset   basics.AssetIndex `codec:"asset"`
}

// SimulateUnnamedResourcesAccessed lists the resources a transaction or
// group touched without declaring them.
type SimulateUnnamedResourcesAccessed struct {
	_struct struct{} `codec:",omitempty,omitemptyarray"`

	// Accounts are addresses in their checksummed text form.
	Accounts      []string                    `codec:"accounts"`
	AppLocals     []ApplicationLocalReference `codec:"app-locals"`
	Apps          []basics.AppIndex           `codec:"apps"`
	AssetHoldings []AssetHoldingReference     `codec:"asset-holdings"`
	Assets        []basics.AssetIndex         `codec:"assets"`
	Boxes         []BoxReference              `codec:"boxes"`

	// ExtraBoxRefs is the number of extra box references needed to
	// raise the group's box I/O budget.
	ExtraBoxRefs uint64 `codec:"extra-box-refs"`
}

// Empty reports whether nothing was accessed.
func (r *SimulateUnnamedResourcesAccessed) Empty() bool {
	return r == nil || (len(r.Accounts) == 0 && len(r.AppLocals) == 0 && len(r.Apps) == 0 &&
		len(r.AssetHoldings) == 0 && len(r.Assets) == 0 && len(r.Boxes) == 0 && r.ExtraBoxRefs == 0)
}

// SimulateTransactionResult is the simulation result of a single transaction.
type SimulateTransactionResult struct {
	_struct struct{} `codec:",omitempty,omitemptyarray"`

	TxnResult                PendingTransactionResponse        `codec:"txn-result"`
	AppBudgetConsumed        uint64                            `codec:"app-budget-consumed"`
	LogicSigBudgetConsumed   uint64                            `codec:"logic-sig-budget-consumed"`
	UnnamedResourcesAccessed *SimulateUnnamedResourcesAccessed `codec:"unnamed-resources-accessed"`
	FixedSigner              string                            `codec:"fixed-signer"`
}

// SimulateTransactionGroupResult is the simulation result of one group.
type SimulateTransactionGroupResult struct {
	_struct struct{} `codec:",omitempty,omitemptyarray"`

	TxnResults               []SimulateTransactionResult       `codec:"txn-results"`
	FailureMessage           string                            `codec:"failure-message"`
	FailedAt                 []uint64                          `codec:"failed-at"`
	AppBudgetAdded           uint64                            `codec:"app-budget-added"`
	AppBudgetConsumed        uint64                            `codec:"app-budget-consumed"`
	UnnamedResourcesAccessed *SimulateUnnamedResourcesAccessed `codec:"unnamed-resources-accessed"`
}

// SimulationEvalOverrides lists the evaluation rules the simulation relaxed.
type SimulationEvalOverrides struct {
	_struct struct{} `codec:",omitempty"`

	AllowEmptySignatures  bool   `codec:"allow-empty-signatures"`
	AllowUnnamedResources bool   `codec:"allow-unnamed-resources"`
	ExtraOpcodeBudget     uint64 `codec:"extra-opcode-budget"`
	FixSigners            bool   `codec:"fix-signers"`
	MaxLogCalls           uint64 `codec:"max-log-calls"`
	MaxLogSize            uint64 `codec:"max-log-size"`
}

// SimulateResponse is the result of the simulate endpoint.
type SimulateResponse struct {
	_struct struct{} `codec:",omitempty,omitemptyarray"`

	Version         uint64                           `codec:"version"`
	LastRound       basics.Round                     `codec:"last-round"`
	TxnGroups       []SimulateTransactionGroupResult `codec:"txn-groups"`
	EvalOverrides   *SimulationEvalOverrides         `codec:"eval-overrides"`
	ExecTraceConfig SimulateTraceConfig              `codec:"exec-trace-config"`
}
