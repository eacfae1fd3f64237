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
	"github.com/algorand/go-algokit/crypto"
	"github.com/algorand/go-algokit/data/abi"
	"github.com/algorand/go-algokit/data/basics"
	"github.com/algorand/go-algokit/data/transactions"
	"github.com/algorand/go-algokit/protocol"
)

// CommonParams are the fields every transaction params type carries. Zero
// values mean "let the composer decide".
type CommonParams struct {
	Sender basics.Address
	// Signer overrides the SignerGetter of the Composer for this transaction.
	Signer  TransactionSigner
	RekeyTo basics.Address
	Note    []byte
	Lease   [32]byte

	// StaticFee, when set, is used as the fee instead of computing one.
	StaticFee *uint64
	// ExtraFee is added to the computed fee.
	ExtraFee uint64
	// MaxFee, when nonzero, caps the computed fee.
	MaxFee uint64

	ValidityWindow  uint64
	FirstValidRound basics.Round
	LastValidRound  basics.Round
}

// Fee returns a pointer to fee, for CommonParams.StaticFee.
func Fee(fee uint64) *uint64 {
	return &fee
}

func (p CommonParams) commonParams() CommonParams {
	return p
}

// logicalMaxFee is the highest fee the caller allows: the larger of the
// static fee and the max fee.
func (p CommonParams) logicalMaxFee() (uint64, bool) {
	var maxFee uint64
	ok := false
	if p.StaticFee != nil {
		maxFee, ok = *p.StaticFee, true
	}
	if p.MaxFee > maxFee {
		maxFee, ok = p.MaxFee, true
	}
	return maxFee, ok
}

// txnParams is implemented by every params type the composer accepts.
type txnParams interface {
	commonParams() CommonParams
	txType() protocol.TxType
	buildTxn(header transactions.Header) (transactions.Transaction, error)
}

// PaymentParams sends Algos.
type PaymentParams struct {
	CommonParams
	Receiver basics.Address
	Amount   uint64
}

func (PaymentParams) txType() protocol.TxType { return protocol.PaymentTx }

func (p PaymentParams) buildTxn(h transactions.Header) (transactions.Transaction, error) {
	return transactions.NewPayment(h, transactions.PaymentTxnFields{
		Receiver: p.Receiver,
		Amount:   basics.MicroAlgos{Raw: p.Amount},
	})
}

// AccountCloseParams closes the sender's account, sending its whole balance
// to CloseRemainderTo.
type AccountCloseParams struct {
	CommonParams
	CloseRemainderTo basics.Address
}

func (AccountCloseParams) txType() protocol.TxType { return protocol.PaymentTx }

func (p AccountCloseParams) buildTxn(h transactions.Header) (transactions.Transaction, error) {
	return transactions.NewPayment(h, transactions.PaymentTxnFields{
		Receiver:         h.Sender,
		CloseRemainderTo: p.CloseRemainderTo,
	})
}

// AssetTransferParams sends units of an asset.
type AssetTransferParams struct {
	CommonParams
	AssetID  basics.AssetIndex
	Amount   uint64
	Receiver basics.Address
}

func (AssetTransferParams) txType() protocol.TxType { return protocol.AssetTransferTx }

func (p AssetTransferParams) buildTxn(h transactions.Header) (transactions.Transaction, error) {
	return transactions.NewAssetTransfer(h, transactions.AssetTransferTxnFields{
		XferAsset:     p.AssetID,
		AssetAmount:   p.Amount,
		AssetReceiver: p.Receiver,
	})
}

// AssetOptInParams lets the sender hold an asset.
type AssetOptInParams struct {
	CommonParams
	AssetID basics.AssetIndex
}

func (AssetOptInParams) txType() protocol.TxType { return protocol.AssetTransferTx }

func (p AssetOptInParams) buildTxn(h transactions.Header) (transactions.Transaction, error) {
	return transactions.NewAssetTransfer(h, transactions.AssetTransferTxnFields{
		XferAsset:     p.AssetID,
		AssetReceiver: h.Sender,
	})
}

// AssetOptOutParams removes an asset holding, sending what is left to CloseTo
// (usually the creator).
type AssetOptOutParams struct {
	CommonParams
	AssetID basics.AssetIndex
	CloseTo basics.Address
}

func (AssetOptOutParams) txType() protocol.TxType { return protocol.AssetTransferTx }

func (p AssetOptOutParams) buildTxn(h transactions.Header) (transactions.Transaction, error) {
	return transactions.NewAssetTransfer(h, transactions.AssetTransferTxnFields{
		XferAsset:     p.AssetID,
		AssetReceiver: h.Sender,
		AssetCloseTo:  p.CloseTo,
	})
}

// AssetClawbackParams moves units out of ClawbackTarget. The sender must be
// the clawback account of the asset.
type AssetClawbackParams struct {
	CommonParams
	AssetID        basics.AssetIndex
	Amount         uint64
	Receiver       basics.Address
	ClawbackTarget basics.Address
}

func (AssetClawbackParams) txType() protocol.TxType { return protocol.AssetTransferTx }

func (p AssetClawbackParams) buildTxn(h transactions.Header) (transactions.Transaction, error) {
	return transactions.NewAssetTransfer(h, transactions.AssetTransferTxnFields{
		XferAsset:     p.AssetID,
		AssetAmount:   p.Amount,
		AssetSender:   p.ClawbackTarget,
		AssetReceiver: p.Receiver,
	})
}

// AssetCreateParams creates an asset.
type AssetCreateParams struct {
	CommonParams
	Total         uint64
	Decimals      uint32
	DefaultFrozen bool
	AssetName     string
	UnitName      string
	URL           string
	MetadataHash  [32]byte
	Manager       basics.Address
	Reserve       basics.Address
	Freeze        basics.Address
	Clawback      basics.Address
}

func (AssetCreateParams) txType() protocol.TxType { return protocol.AssetConfigTx }

func (p AssetCreateParams) buildTxn(h transactions.Header) (transactions.Transaction, error) {
	return transactions.NewAssetConfig(h, transactions.AssetConfigTxnFields{
		AssetParams: basics.AssetParams{
			Total:         p.Total,
			Decimals:      p.Decimals,
			DefaultFrozen: p.DefaultFrozen,
			UnitName:      p.UnitName,
			AssetName:     p.AssetName,
			URL:           p.URL,
			MetadataHash:  p.MetadataHash,
			Manager:       p.Manager,
			Reserve:       p.Reserve,
			Freeze:        p.Freeze,
			Clawback:      p.Clawback,
		},
	})
}

// AssetReconfigureParams changes the role accounts of an asset. Roles left
// zero are cleared for good.
type AssetReconfigureParams struct {
	CommonParams
	AssetID  basics.AssetIndex
	Manager  basics.Address
	Reserve  basics.Address
	Freeze   basics.Address
	Clawback basics.Address
}

func (AssetReconfigureParams) txType() protocol.TxType { return protocol.AssetConfigTx }

func (p AssetReconfigureParams) buildTxn(h transactions.Header) (transactions.Transaction, error) {
	return transactions.NewAssetConfig(h, transactions.AssetConfigTxnFields{
		ConfigAsset: p.AssetID,
		AssetParams: basics.AssetParams{
			Manager:  p.Manager,
			Reserve:  p.Reserve,
			Freeze:   p.Freeze,
			Clawback: p.Clawback,
		},
	})
}

// AssetDestroyParams destroys an asset. All units must be back with the creator.
type AssetDestroyParams struct {
	CommonParams
	AssetID basics.AssetIndex
}

func (AssetDestroyParams) txType() protocol.TxType { return protocol.AssetConfigTx }

func (p AssetDestroyParams) buildTxn(h transactions.Header) (transactions.Transaction, error) {
	return transactions.NewAssetConfig(h, transactions.AssetConfigTxnFields{ConfigAsset: p.AssetID})
}

// AssetFreezeParams freezes the holding of Account.
type AssetFreezeParams struct {
	CommonParams
	AssetID basics.AssetIndex
	Account basics.Address
}

func (AssetFreezeParams) txType() protocol.TxType { return protocol.AssetFreezeTx }

func (p AssetFreezeParams) buildTxn(h transactions.Header) (transactions.Transaction, error) {
	return transactions.NewAssetFreeze(h, transactions.AssetFreezeTxnFields{
		FreezeAccount: p.Account,
		FreezeAsset:   p.AssetID,
		AssetFrozen:   true,
	})
}

// AssetUnfreezeParams unfreezes the holding of Account.
type AssetUnfreezeParams struct {
	CommonParams
	AssetID basics.AssetIndex
	Account basics.Address
}

func (AssetUnfreezeParams) txType() protocol.TxType { return protocol.AssetFreezeTx }

func (p AssetUnfreezeParams) buildTxn(h transactions.Header) (transactions.Transaction, error) {
	return transactions.NewAssetFreeze(h, transactions.AssetFreezeTxnFields{
		FreezeAccount: p.Account,
		FreezeAsset:   p.AssetID,
	})
}

// OnlineKeyRegistrationParams registers participation keys.
type OnlineKeyRegistrationParams struct {
	CommonParams
	VoteKey         crypto.OneTimeSignatureVerifier
	SelectionKey    crypto.VRFVerifier
	StateProofKey   crypto.MerkleSignatureCommitment
	VoteFirst       basics.Round
	VoteLast        basics.Round
	VoteKeyDilution uint64
}

func (OnlineKeyRegistrationParams) txType() protocol.TxType { return protocol.KeyRegistrationTx }

func (p OnlineKeyRegistrationParams) buildTxn(h transactions.Header) (transactions.Transaction, error) {
	return transactions.NewKeyreg(h, transactions.KeyregTxnFields{
		VotePK:          p.VoteKey,
		SelectionPK:     p.SelectionKey,
		StateProofPK:    p.StateProofKey,
		VoteFirst:       p.VoteFirst,
		VoteLast:        p.VoteLast,
		VoteKeyDilution: p.VoteKeyDilution,
	})
}

// OfflineKeyRegistrationParams takes the sender offline.
type OfflineKeyRegistrationParams struct {
	CommonParams
}

func (OfflineKeyRegistrationParams) txType() protocol.TxType { return protocol.KeyRegistrationTx }

func (p OfflineKeyRegistrationParams) buildTxn(h transactions.Header) (transactions.Transaction, error) {
	return transactions.NewKeyreg(h, transactions.KeyregTxnFields{})
}

// NonParticipationKeyRegistrationParams marks the sender as never
// participating again. This cannot be undone.
type NonParticipationKeyRegistrationParams struct {
	CommonParams
}

func (NonParticipationKeyRegistrationParams) txType() protocol.TxType {
	return protocol.KeyRegistrationTx
}

func (p NonParticipationKeyRegistrationParams) buildTxn(h transactions.Header) (transactions.Transaction, error) {
	return transactions.NewKeyreg(h, transactions.KeyregTxnFields{Nonparticipation: true})
}

// BoxReference names a box. An AppID of 0 means the called app.
type BoxReference struct {
	AppID basics.AppIndex
	Name  []byte
}

// References are the foreign references an application call declares.
type References struct {
	AccountReferences []basics.Address
	AppReferences     []basics.AppIndex
	AssetReferences   []basics.AssetIndex
	BoxReferences     []BoxReference
}

func (r References) clone() References {
	return References{
		AccountReferences: append([]basics.Address(nil), r.AccountReferences...),
		AppReferences:     append([]basics.AppIndex(nil), r.AppReferences...),
		AssetReferences:   append([]basics.AssetIndex(nil), r.AssetReferences...),
		BoxReferences:     append([]BoxReference(nil), r.BoxReferences...),
	}
}

// appCallFields lays out the reference arrays of an application call. Boxes
// of an app that is not referenced yet add the app to ForeignApps.
func (r References) appCallFields(appID basics.AppIndex, oc transactions.OnCompletion, args [][]byte) transactions.ApplicationCallTxnFields {
	r = r.clone()
	fields := transactions.ApplicationCallTxnFields{
		ApplicationID:   appID,
		OnCompletion:    oc,
		ApplicationArgs: args,
		Accounts:        r.AccountReferences,
		ForeignApps:     r.AppReferences,
		ForeignAssets:   r.AssetReferences,
	}
	for _, box := range r.BoxReferences {
		idx, err := fields.BoxIndex(box.AppID)
		if err != nil {
			fields.ForeignApps = append(fields.ForeignApps, box.AppID)
			idx = uint64(len(fields.ForeignApps))
		}
		fields.Boxes = append(fields.Boxes, transactions.BoxRef{Index: idx, Name: box.Name})
	}
	return fields
}

// AppCallParams calls an existing application.
type AppCallParams struct {
	CommonParams
	References
	AppID      basics.AppIndex
	OnComplete transactions.OnCompletion
	Args       [][]byte
}

func (AppCallParams) txType() protocol.TxType { return protocol.ApplicationCallTx }

func (p AppCallParams) buildTxn(h transactions.Header) (transactions.Transaction, error) {
	return transactions.NewApplicationCall(h, p.appCallFields(p.AppID, p.OnComplete, p.Args))
}

// AppCreateParams creates an application.
type AppCreateParams struct {
	CommonParams
	References
	OnComplete        transactions.OnCompletion
	ApprovalProgram   []byte
	ClearStateProgram []byte
	GlobalStateSchema basics.StateSchema
	LocalStateSchema  basics.StateSchema
	ExtraProgramPages uint32
	Args              [][]byte
}

func (AppCreateParams) txType() protocol.TxType { return protocol.ApplicationCallTx }

func (p AppCreateParams) buildTxn(h transactions.Header) (transactions.Transaction, error) {
	fields := p.appCallFields(0, p.OnComplete, p.Args)
	fields.ApprovalProgram = p.ApprovalProgram
	fields.ClearStateProgram = p.ClearStateProgram
	fields.GlobalStateSchema = p.GlobalStateSchema
	fields.LocalStateSchema = p.LocalStateSchema
	fields.ExtraProgramPages = p.ExtraProgramPages
	return transactions.NewApplicationCall(h, fields)
}

// AppUpdateParams replaces the programs of an application.
type AppUpdateParams struct {
	CommonParams
	References
	AppID             basics.AppIndex
	ApprovalProgram   []byte
	ClearStateProgram []byte
	Args              [][]byte
}

func (AppUpdateParams) txType() protocol.TxType { return protocol.ApplicationCallTx }

func (p AppUpdateParams) buildTxn(h transactions.Header) (transactions.Transaction, error) {
	fields := p.appCallFields(p.AppID, transactions.UpdateApplicationOC, p.Args)
	fields.ApprovalProgram = p.ApprovalProgram
	fields.ClearStateProgram = p.ClearStateProgram
	return transactions.NewApplicationCall(h, fields)
}

// AppDeleteParams deletes an application.
type AppDeleteParams struct {
	CommonParams
	References
	AppID basics.AppIndex
	Args  [][]byte
}

func (AppDeleteParams) txType() protocol.TxType { return protocol.ApplicationCallTx }

func (p AppDeleteParams) buildTxn(h transactions.Header) (transactions.Transaction, error) {
	return transactions.NewApplicationCall(h, p.appCallFields(p.AppID, transactions.DeleteApplicationOC, p.Args))
}

// AppMethodCallParams calls an ARC-4 method. With AppID 0 the call creates the
// application; with OnComplete UpdateApplicationOC it updates it. Args holds
// one value per method argument: an ABI value, an account (basics.Address or
// its string form), an app or asset id, DefaultArg, or for transaction
// arguments a TransactionWithSigner, another params value or a nested
// AppMethodCallParams.
type AppMethodCallParams struct {
	CommonParams
	References
	AppID      basics.AppIndex
	Method     abi.Method
	Args       []interface{}
	OnComplete transactions.OnCompletion

	ApprovalProgram   []byte
	ClearStateProgram []byte
	GlobalStateSchema basics.StateSchema
	LocalStateSchema  basics.StateSchema
	ExtraProgramPages uint32
}

// TransactionWithSigner is a built transaction passed as a method argument or
// added to a group as is.
type TransactionWithSigner struct {
	Txn    transactions.Transaction
	Signer TransactionSigner
}
