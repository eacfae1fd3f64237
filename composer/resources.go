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
	"slices"

	"github.com/algorand/avm-abi/apps"

	"github.com/algorand/go-algokit/daemon/algod/api/model"
	"github.com/algorand/go-algokit/data/basics"
	"github.com/algorand/go-algokit/data/transactions"
	"github.com/algorand/go-algokit/protocol"
	"github.com/algorand/go-algokit/serr"
)

type resourceKind int

const (
	accountResource resourceKind = iota
	appResource
	assetResource
	boxResource
	holdingResource
	localResource
)

func (k resourceKind) String() string {
	switch k {
	case accountResource:
		return "account"
	case appResource:
		return "app"
	case assetResource:
		return "asset"
	case boxResource:
		return "box"
	case holdingResource:
		return "asset holding"
	case localResource:
		return "app local"
	}
	return "unknown"
}

// resource is one reference reported by simulate. Only the fields of its
// kind are set.
type resource struct {
	kind    resourceKind
	account basics.Address
	app     basics.AppIndex
	asset   basics.AssetIndex
	box     basics.BoxRef
}

// populateResources adds the references simulate reported as used but
// undeclared. References of a single transaction go to that transaction;
// references of the group go to whichever app call has room.
func (c *Composer) populateResources(txns []transactions.Transaction, info groupExecutionInfo) error {
	var overflow model.SimulateUnnamedResourcesAccessed

	for i := range txns {
		unnamed := info.txns[i].unnamed
		if unnamed.Empty() || txns[i].Type != protocol.ApplicationCallTx {
			continue
		}
		if len(unnamed.Boxes) > 0 || unnamed.ExtraBoxRefs > 0 {
			return serr.Validationf("Unexpected boxes at the transaction level")
		}
		if len(unnamed.AppLocals) > 0 {
			return serr.Validationf("Unexpected app local at the transaction level")
		}
		if len(unnamed.AssetHoldings) > 0 {
			return serr.Validationf("Unexpected asset holding at the transaction level")
		}

		ac := &txns[i].ApplicationCallTxnFields
		for _, a := range unnamed.Accounts {
			addr, err := basics.UnmarshalChecksumAddress(a)
			if err != nil {
				return serr.Wrap(serr.ErrDecoding, err, "simulate account "+a)
			}
			if slices.Contains(ac.Accounts, addr) {
				continue
			}
			if c.accessList && !c.hasRoom(ac, accountResource) {
				overflow.Accounts = append(overflow.Accounts, a)
				continue
			}
			ac.Accounts = append(ac.Accounts, addr)
		}
		for _, app := range unnamed.Apps {
			if slices.Contains(ac.ForeignApps, app) {
				continue
			}
			if c.accessList && !c.hasRoom(ac, appResource) {
				overflow.Apps = append(overflow.Apps, app)
				continue
			}
			ac.ForeignApps = append(ac.ForeignApps, app)
		}
		for _, asset := range unnamed.Assets {
			if slices.Contains(ac.ForeignAssets, asset) {
				continue
			}
			if c.accessList && !c.hasRoom(ac, assetResource) {
				overflow.Assets = append(overflow.Assets, asset)
				continue
			}
			ac.ForeignAssets = append(ac.ForeignAssets, asset)
		}

		txid := txns[i].ID().String()
		if len(ac.Accounts) > c.proto.MaxAppTxnAccounts {
			return serr.Validationf("%s: Account reference limit of %d exceeded in transaction %d",
				txid, c.proto.MaxAppTxnAccounts, i)
		}
		if ac.TotalReferences() > c.proto.MaxAppTotalTxnReferences {
			return serr.Validationf("%s: Resource reference limit of %d exceeded in transaction %d",
				txid, c.proto.MaxAppTotalTxnReferences, i)
		}
	}

	group := collectGroupResources(info.unnamed, &overflow)
	for _, r := range group {
		if err := c.placeGroupResource(txns, r); err != nil {
			return err
		}
	}
	return nil
}

// collectGroupResources lists the group level references in the order they
// are placed: the pairs first since they need two slots on one transaction,
// then accounts whose own limit is lowest, then the rest.
func collectGroupResources(unnamed *model.SimulateUnnamedResourcesAccessed, overflow *model.SimulateUnnamedResourcesAccessed) []resource {
	var merged model.SimulateUnnamedResourcesAccessed
	for _, u := range []*model.SimulateUnnamedResourcesAccessed{unnamed, overflow} {
		if u.Empty() {
			continue
		}
		merged.Accounts = append(merged.Accounts, u.Accounts...)
		merged.Apps = append(merged.Apps, u.Apps...)
		merged.Assets = append(merged.Assets, u.Assets...)
		merged.Boxes = append(merged.Boxes, u.Boxes...)
		merged.AppLocals = append(merged.AppLocals, u.AppLocals...)
		merged.AssetHoldings = append(merged.AssetHoldings, u.AssetHoldings...)
		merged.ExtraBoxRefs += u.ExtraBoxRefs
	}

	var out []resource
	for _, l := range merged.AppLocals {
		addr, err := basics.UnmarshalChecksumAddress(l.Account)
		if err != nil {
			continue
		}
		out = append(out, resource{kind: localResource, account: addr, app: l.App})
	}
	for _, h := range merged.AssetHoldings {
		addr, err := basics.UnmarshalChecksumAddress(h.Account)
		if err != nil {
			continue
		}
		out = append(out, resource{kind: holdingResource, account: addr, asset: h.Asset})
	}
	for _, a := range merged.Accounts {
		addr, err := basics.UnmarshalChecksumAddress(a)
		if err != nil {
			continue
		}
		out = append(out, resource{kind: accountResource, account: addr})
	}
	seenBoxes := make(map[string]bool)
	for _, b := range merged.Boxes {
		key := apps.MakeBoxKey(uint64(b.App), string(b.Name))
		if seenBoxes[key] {
			continue
		}
		seenBoxes[key] = true
		out = append(out, resource{kind: boxResource, box: basics.BoxRef{App: b.App, Name: string(b.Name)}})
	}
	for _, asset := range merged.Assets {
		out = append(out, resource{kind: assetResource, asset: asset})
	}
	for _, app := range merged.Apps {
		out = append(out, resource{kind: appResource, app: app})
	}
	for i := uint64(0); i < merged.ExtraBoxRefs; i++ {
		out = append(out, resource{kind: boxResource})
	}
	return out
}

// hasRoom reports whether ac can take one more reference of kind. Pairs, and
// boxes of another app, may need two slots.
func (c *Composer) hasRoom(ac *transactions.ApplicationCallTxnFields, kind resourceKind) bool {
	accounts := len(ac.Accounts)
	total := ac.TotalReferences()
	switch kind {
	case accountResource:
		return accounts < c.proto.MaxAppTxnAccounts && total < c.proto.MaxAppTotalTxnReferences
	case holdingResource, localResource:
		return accounts < c.proto.MaxAppTxnAccounts && total < c.proto.MaxAppTotalTxnReferences-1
	}
	return total < c.proto.MaxAppTotalTxnReferences
}

func (c *Composer) boxHasRoom(ac *transactions.ApplicationCallTxnFields, box basics.BoxRef) bool {
	total := ac.TotalReferences()
	if box.App != 0 && box.App != ac.ApplicationID && !slices.Contains(ac.ForeignApps, box.App) {
		return total < c.proto.MaxAppTotalTxnReferences-1
	}
	return total < c.proto.MaxAppTotalTxnReferences
}

// availableIn reports whether account is already usable by ac: named in its
// accounts or the address of an app it references.
func availableIn(ac *transactions.ApplicationCallTxnFields, account basics.Address) bool {
	if slices.Contains(ac.Accounts, account) || ac.ApplicationID.Address() == account {
		return true
	}
	for _, app := range ac.ForeignApps {
		if app.Address() == account {
			return true
		}
	}
	return false
}

func (c *Composer) placeGroupResource(txns []transactions.Transaction, r resource) error {
	appCall := func(i int) *transactions.ApplicationCallTxnFields {
		if txns[i].Type != protocol.ApplicationCallTx {
			return nil
		}
		return &txns[i].ApplicationCallTxnFields
	}
	find := func(ok func(ac *transactions.ApplicationCallTxnFields) bool) *transactions.ApplicationCallTxnFields {
		for i := range txns {
			if ac := appCall(i); ac != nil && ok(ac) {
				return ac
			}
		}
		return nil
	}

	switch r.kind {
	case holdingResource, localResource:
		hasTarget := func(ac *transactions.ApplicationCallTxnFields) bool {
			if r.kind == holdingResource {
				return slices.Contains(ac.ForeignAssets, r.asset)
			}
			return ac.ApplicationID == r.app || slices.Contains(ac.ForeignApps, r.app)
		}
		if find(func(ac *transactions.ApplicationCallTxnFields) bool {
			return availableIn(ac, r.account) && hasTarget(ac)
		}) != nil {
			return nil
		}
		// A transaction that already has one half of the pair only needs the other.
		if ac := find(func(ac *transactions.ApplicationCallTxnFields) bool {
			return c.hasRoom(ac, r.kind) && availableIn(ac, r.account)
		}); ac != nil {
			if r.kind == holdingResource {
				ac.ForeignAssets = append(ac.ForeignAssets, r.asset)
			} else {
				ac.ForeignApps = append(ac.ForeignApps, r.app)
			}
			return nil
		}
		if ac := find(func(ac *transactions.ApplicationCallTxnFields) bool {
			return c.hasRoom(ac, r.kind) && hasTarget(ac)
		}); ac != nil {
			ac.Accounts = append(ac.Accounts, r.account)
			return nil
		}

	case boxResource:
		if ac := find(func(ac *transactions.ApplicationCallTxnFields) bool {
			return c.hasRoom(ac, boxResource) &&
				(r.box.App == 0 || ac.ApplicationID == r.box.App || slices.Contains(ac.ForeignApps, r.box.App))
		}); ac != nil {
			addBox(ac, r.box)
			return nil
		}
	}

	ac := find(func(ac *transactions.ApplicationCallTxnFields) bool {
		if r.kind == boxResource {
			return c.boxHasRoom(ac, r.box)
		}
		return c.hasRoom(ac, r.kind)
	})
	if ac == nil {
		return serr.Validation("No more transactions below reference limit. Add another app call to the group.",
			"resource", r.kind.String())
	}

	switch r.kind {
	case accountResource:
		ac.Accounts = append(ac.Accounts, r.account)
	case appResource:
		ac.ForeignApps = append(ac.ForeignApps, r.app)
	case assetResource:
		ac.ForeignAssets = append(ac.ForeignAssets, r.asset)
	case boxResource:
		addBox(ac, r.box)
	case holdingResource:
		ac.ForeignAssets = append(ac.ForeignAssets, r.asset)
		ac.Accounts = append(ac.Accounts, r.account)
	case localResource:
		ac.ForeignApps = append(ac.ForeignApps, r.app)
		ac.Accounts = append(ac.Accounts, r.account)
	}
	return nil
}

// addBox references box from ac, adding its app to ForeignApps if needed.
func addBox(ac *transactions.ApplicationCallTxnFields, box basics.BoxRef) {
	idx, err := ac.BoxIndex(box.App)
	if err != nil {
		ac.ForeignApps = append(ac.ForeignApps, box.App)
		idx = uint64(len(ac.ForeignApps))
	}
	ac.Boxes = append(ac.Boxes, transactions.BoxRef{Index: idx, Name: []byte(box.Name)})
}
