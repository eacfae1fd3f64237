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

package transactions

import (
	"github.com/algorand/go-algokit/config"
	"github.com/algorand/go-algokit/data/basics"
	"github.com/algorand/go-algokit/protocol"
)

// AssetConfigTxnFields captures the fields used for asset
// allocation, re-configuration, and destruction.
type AssetConfigTxnFields struct {
	_struct struct{} `codec:",omitempty,omitemptyarray"`

	// ConfigAsset is the asset being configured or destroyed.
	// A zero value means allocation
	ConfigAsset basics.AssetIndex `codec:"caid"`

	// AssetParams are the parameters for the asset being
	// created or re-configured.  A zero value means destruction.
	AssetParams basics.AssetParams `codec:"apar"`
}

// AssetTransferTxnFields captures the fields used for asset transfers.
type AssetTransferTxnFields struct {
	_struct struct{} `codec:",omitempty,omitemptyarray"`

	XferAsset basics.AssetIndex `codec:"xaid"`

	// AssetAmount is the amount of asset to transfer.
	// A zero amount transferred to self allocates that asset
	// in the account's Assets map.
	AssetAmount uint64 `codec:"aamt"`

	// AssetSender is the sender of the transfer.  If this is not
	// a zero value, the real transaction sender must be the Clawback
	// address from the AssetParams.  If this is the zero value,
	// the asset is sent from the transaction's Sender.
	AssetSender basics.Address `codec:"asnd"`

	// AssetReceiver is the recipient of the transfer.
	AssetReceiver basics.Address `codec:"arcv"`

	// AssetCloseTo indicates that the asset should be removed
	// from the account's Assets map, and specifies where the remaining
	// asset holdings should be transferred.  It's always valid to transfer
	// remaining asset holdings to the creator account.
	AssetCloseTo basics.Address `codec:"aclose"`
}

// AssetFreezeTxnFields captures the fields used for freezing asset slots.
type AssetFreezeTxnFields struct {
	_struct struct{} `codec:",omitempty,omitemptyarray"`

	// FreezeAccount is the address of the account whose asset
	// slot is being frozen or un-frozen.
	FreezeAccount basics.Address `codec:"fadd"`

	// FreezeAsset is the asset ID being frozen or un-frozen.
	FreezeAsset basics.AssetIndex `codec:"faid"`

	// AssetFrozen is the new frozen value.
	AssetFrozen bool `codec:"afrz"`
}

// IsCreate reports whether the transaction allocates a new asset.
func (cc AssetConfigTxnFields) IsCreate() bool {
	return cc.ConfigAsset == 0
}

// IsDestroy reports whether the transaction destroys an existing asset.
func (cc AssetConfigTxnFields) IsDestroy() bool {
	return cc.ConfigAsset != 0 && cc.AssetParams.Empty()
}

func (cc AssetConfigTxnFields) wellFormed(proto config.ConsensusParams) error {
	errs := newFieldErrors("Asset config")
	params := cc.AssetParams

	switch {
	case cc.IsCreate():
		if params.Total == 0 {
			errs.required("Total")
		}
		if params.Decimals > proto.MaxAssetDecimals {
			errs.tooLong("Decimals", int(params.Decimals), int(proto.MaxAssetDecimals), "decimal places")
		}
		if len(params.UnitName) > proto.MaxAssetUnitNameBytes {
			errs.tooLong("Unit name", len(params.UnitName), proto.MaxAssetUnitNameBytes, "bytes")
		}
		if len(params.AssetName) > proto.MaxAssetNameBytes {
			errs.tooLong("Asset name", len(params.AssetName), proto.MaxAssetNameBytes, "bytes")
		}
		if len(params.URL) > proto.MaxAssetURLBytes {
			errs.tooLong("URL", len(params.URL), proto.MaxAssetURLBytes, "bytes")
		}
	case cc.IsDestroy():
	default:
		if params.Total != 0 {
			errs.immutable("total")
		}
		if params.Decimals != 0 {
			errs.immutable("decimals")
		}
		if params.DefaultFrozen {
			errs.immutable("default_frozen")
		}
		if params.AssetName != "" {
			errs.immutable("asset_name")
		}
		if params.UnitName != "" {
			errs.immutable("unit_name")
		}
		if params.URL != "" {
			errs.immutable("url")
		}
		if params.MetadataHash != [32]byte{} {
			errs.immutable("metadata_hash")
		}
	}
	return errs.err()
}

func (ct AssetTransferTxnFields) wellFormed() error {
	errs := newFieldErrors("Asset transfer")
	if ct.XferAsset == 0 {
		errs.addf("Asset ID must not be 0")
	}
	return errs.err()
}

func (cf AssetFreezeTxnFields) wellFormed() error {
	errs := newFieldErrors("Asset freeze")
	if cf.FreezeAsset == 0 {
		errs.addf("Asset ID must not be 0")
	}
	if cf.FreezeAccount.IsZero() {
		errs.required("Freeze account")
	}
	return errs.err()
}

// NewAssetConfig builds an asset create, reconfigure or destroy transaction.
func NewAssetConfig(header Header, fields AssetConfigTxnFields) (Transaction, error) {
	if err := fields.wellFormed(config.Current()); err != nil {
		return Transaction{}, err
	}
	return Transaction{Type: protocol.AssetConfigTx, Header: header, AssetConfigTxnFields: fields}, nil
}

// NewAssetTransfer builds an asset transfer transaction.
func NewAssetTransfer(header Header, fields AssetTransferTxnFields) (Transaction, error) {
	if err := fields.wellFormed(); err != nil {
		return Transaction{}, err
	}
	return Transaction{Type: protocol.AssetTransferTx, Header: header, AssetTransferTxnFields: fields}, nil
}

// NewAssetFreeze builds an asset freeze transaction.
func NewAssetFreeze(header Header, fields AssetFreezeTxnFields) (Transaction, error) {
	if err := fields.wellFormed(); err != nil {
		return Transaction{}, err
	}
	return Transaction{Type: protocol.AssetFreezeTx, Header: header, AssetFreezeTxnFields: fields}, nil
}
