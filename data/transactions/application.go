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
	"encoding/binary"
	"errors"
	"fmt"
	"slices"

	"github.com/algorand/go-algokit/config"
	"github.com/algorand/go-algokit/data/basics"
	"github.com/algorand/go-algokit/protocol"
)

// OnCompletion is an enum representing some layer 1 side effect that an
// ApplicationCall transaction will have if it is included in a block.
type OnCompletion uint64

const (
	// NoOpOC indicates that an application transaction will simply call its
	// ApprovalProgram
	NoOpOC OnCompletion = 0

	// OptInOC indicates that an application transaction will allocate some
	// LocalState for the application in the sender's account
	OptInOC OnCompletion = 1

	// CloseOutOC indicates that an application transaction will deallocate
	// some LocalState for the application from the user's account
	CloseOutOC OnCompletion = 2

	// ClearStateOC is similar to CloseOutOC, but may never fail. This
	// allows users to reclaim their minimum balance from an application
	// they no longer wish to opt in to. When an ApplicationCall
	// transaction's OnCompletion is ClearStateOC, the ClearStateProgram
	// executes instead of the ApprovalProgram
	ClearStateOC OnCompletion = 3

	// UpdateApplicationOC indicates that an application transaction will
	// update the ApprovalProgram and ClearStateProgram for the application
	UpdateApplicationOC OnCompletion = 4

	// DeleteApplicationOC indicates that an application transaction will
	// delete the AppParams for the application from the creator's balance
	// record
	DeleteApplicationOC OnCompletion = 5
)

var onCompletionNames = []string{"NoOp", "OptIn", "CloseOut", "ClearState", "UpdateApplication", "DeleteApplication"}

func (oc OnCompletion) String() string {
	if int(oc) < len(onCompletionNames) {
		return onCompletionNames[oc]
	}
	return fmt.Sprintf("OnCompletion(%d)", uint64(oc))
}

// ParseOnCompletion accepts the names used in ARC-4 method descriptions
// ("NoOp", "OptIn", ...) and returns the matching OnCompletion.
func ParseOnCompletion(name string) (OnCompletion, error) {
	if idx := slices.Index(onCompletionNames, name); idx != -1 {
		return OnCompletion(idx), nil
	}
	return NoOpOC, fmt.Errorf("unknown OnCompletion %q", name)
}

// ApplicationCallTxnFields captures the transaction fields used for all
// interactions with applications
type ApplicationCallTxnFields struct {
	_struct struct{} `codec:",omitempty,omitemptyarray"`

	// ApplicationID is 0 when creating an application, and nonzero when
	// calling an existing application.
	ApplicationID basics.AppIndex `codec:"apid"`

	// OnCompletion specifies an optional side-effect that this transaction
	// will have on the balance record of the sender or the application's
	// creator.
	OnCompletion OnCompletion `codec:"apan"`

	// ApplicationArgs are arguments accessible to the executing
	// ApprovalProgram or ClearStateProgram.
	ApplicationArgs [][]byte `codec:"apaa"`

	// Accounts are accounts whose balance records are accessible
	// by the executing ApprovalProgram or ClearStateProgram.
	Accounts []basics.Address `codec:"apat"`

	// ForeignApps are application IDs for applications besides
	// this one whose GlobalState (or Local, since v4) may be read
	// by the executing ApprovalProgram or ClearStateProgram.
	ForeignApps []basics.AppIndex `codec:"apfa"`

	// Boxes are the boxes that can be accessed by this transaction (and others
	// in the same group). The Index in the BoxRef is the slot of ForeignApps
	// that the name is associated with (shifted by 1, so 0 indicates "current
	// app")
	Boxes []BoxRef `codec:"apbx"`

	// ForeignAssets are asset IDs for assets whose AssetParams
	// (and since v4, Holdings) may be read by the executing
	// ApprovalProgram or ClearStateProgram.
	ForeignAssets []basics.AssetIndex `codec:"apas"`

	// LocalStateSchema specifies the maximum number of each type that may
	// appear in the local key/value store of users who opt in to this
	// application. This field is only used during application creation.
	LocalStateSchema basics.StateSchema `codec:"apls"`

	// GlobalStateSchema specifies the maximum number of each type that may
	// appear in the global key/value store associated with this
	// application. This field is only used during application creation.
	GlobalStateSchema basics.StateSchema `codec:"apgs"`

	// ApprovalProgram is the stateful TEAL bytecode that executes on all
	// ApplicationCall transactions associated with this application,
	// except for those where OnCompletion is equal to ClearStateOC.
	ApprovalProgram []byte `codec:"apap"`

	// ClearStateProgram is the stateful TEAL bytecode that executes on
	// ApplicationCall transactions associated with this application when
	// OnCompletion is equal to ClearStateOC.
	ClearStateProgram []byte `codec:"apsu"`

	// ExtraProgramPages specifies the additional app program len requested in pages.
	// A page is MaxAppProgramLen bytes.
	ExtraProgramPages uint32 `codec:"apep,omitempty"`

	// If you add any fields here, remember you MUST modify the Empty
	// method below!
}

// BoxRef names a box by the slot
type BoxRef struct {
	_struct struct{} `codec:",omitempty,omitemptyarray"`

	Index uint64 `codec:"i"`
	Name  []byte `codec:"n"`
}

// Empty indicates whether or not all the fields in the
// ApplicationCallTxnFields are zeroed out
func (ac *ApplicationCallTxnFields) Empty() bool {
	if ac.ApplicationID != 0 {
		return false
	}
	if ac.OnCompletion != 0 {
		return false
	}
	if ac.ApplicationArgs != nil {
		return false
	}
	if ac.Accounts != nil {
		return false
	}
	if ac.ForeignApps != nil {
		return false
	}
	if ac.ForeignAssets != nil {
		return false
	}
	if ac.Boxes != nil {
		return false
	}
	if ac.LocalStateSchema != (basics.StateSchema{}) {
		return false
	}
	if ac.GlobalStateSchema != (basics.StateSchema{}) {
		return false
	}
	if ac.ApprovalProgram != nil {
		return false
	}
	if ac.ClearStateProgram != nil {
		return false
	}
	if ac.ExtraProgramPages != 0 {
		return false
	}
	return true
}

// TotalReferences counts the foreign references that draw on the shared
// per-transaction reference budget.
func (ac *ApplicationCallTxnFields) TotalReferences() int {
	return len(ac.Accounts) + len(ac.ForeignApps) + len(ac.ForeignAssets) + len(ac.Boxes)
}

// wellFormed performs some stateless checks on the ApplicationCall transaction
func (ac ApplicationCallTxnFields) wellFormed(proto config.ConsensusParams) error {
	errs := newFieldErrors("App call")

	// Ensure requested action is valid
	switch ac.OnCompletion {
	case NoOpOC, OptInOC, CloseOutOC, ClearStateOC, UpdateApplicationOC, DeleteApplicationOC:
		/* ok */
	default:
		errs.addf("invalid application OnCompletion %d", uint64(ac.OnCompletion))
	}

	creating := ac.ApplicationID == 0
	updating := ac.OnCompletion == UpdateApplicationOC

	if creating || updating {
		if len(ac.ApprovalProgram) == 0 {
			errs.required("Approval program")
		}
		if len(ac.ClearStateProgram) == 0 {
			errs.required("Clear state program")
		}
		if len(ac.ApprovalProgram) != 0 && len(ac.ClearStateProgram) != 0 {
			if err := CheckContractVersions(ac.ApprovalProgram, ac.ClearStateProgram); err != nil {
				errs.addf("%v", err)
			}
		}
	} else if len(ac.ApprovalProgram) != 0 || len(ac.ClearStateProgram) != 0 {
		errs.addf("programs may only be specified during application creation or update")
	}

	effectiveEPP := ac.ExtraProgramPages
	// Schemas and ExtraProgramPages may only be set during application creation
	if !creating {
		if ac.LocalStateSchema != (basics.StateSchema{}) ||
			ac.GlobalStateSchema != (basics.StateSchema{}) {
			errs.addf("local and global state schemas are immutable")
		}
		if ac.ExtraProgramPages != 0 {
			errs.addf("tx.ExtraProgramPages is immutable")
		}
		effectiveEPP = uint32(proto.MaxExtraAppProgramPages)
	}

	// Limit total number of arguments
	if len(ac.ApplicationArgs) > proto.MaxAppArgs {
		errs.addf("too many application args, max %d", proto.MaxAppArgs)
	}

	// Sum up argument lengths
	var argSum uint64
	for _, arg := range ac.ApplicationArgs {
		argSum = basics.AddSaturate(argSum, uint64(len(arg)))
	}

	// Limit total length of all arguments
	if argSum > uint64(proto.MaxAppTotalArgLen) {
		errs.addf("application args total length too long, max len %d bytes", proto.MaxAppTotalArgLen)
	}

	// Limit number of accounts referred to in a single ApplicationCall
	if len(ac.Accounts) > proto.MaxAppTxnAccounts {
		errs.addf("tx.Accounts too long, max number of accounts is %d", proto.MaxAppTxnAccounts)
	}

	// Limit number of other app global states referred to
	if len(ac.ForeignApps) > proto.MaxAppTxnForeignApps {
		errs.addf("tx.ForeignApps too long, max number of foreign apps is %d", proto.MaxAppTxnForeignApps)
	}

	if len(ac.ForeignAssets) > proto.MaxAppTxnForeignAssets {
		errs.addf("tx.ForeignAssets too long, max number of foreign assets is %d", proto.MaxAppTxnForeignAssets)
	}

	if len(ac.Boxes) > proto.MaxAppBoxReferences {
		errs.addf("tx.Boxes too long, max number of box references is %d", proto.MaxAppBoxReferences)
	}

	// Limit the sum of all types of references that bring in account records
	if ac.TotalReferences() > proto.MaxAppTotalTxnReferences {
		errs.addf("tx references exceed MaxAppTotalTxnReferences = %d", proto.MaxAppTotalTxnReferences)
	}

	if ac.ExtraProgramPages > uint32(proto.MaxExtraAppProgramPages) {
		errs.addf("tx.ExtraProgramPages exceeds MaxExtraAppProgramPages = %d", proto.MaxExtraAppProgramPages)
	}

	lap := len(ac.ApprovalProgram)
	lcs := len(ac.ClearStateProgram)
	pages := int(1 + effectiveEPP)
	if lap > pages*proto.MaxAppProgramLen {
		errs.addf("approval program too long. max len %d bytes", pages*proto.MaxAppProgramLen)
	}
	if lcs > pages*proto.MaxAppProgramLen {
		errs.addf("clear state program too long. max len %d bytes", pages*proto.MaxAppProgramLen)
	}
	if lap+lcs > pages*proto.MaxAppTotalProgramLen {
		errs.addf("app programs too long. max total len %d bytes", pages*proto.MaxAppTotalProgramLen)
	}

	for i, br := range ac.Boxes {
		// recall 0 is the current app so indexes are shifted, thus test is for greater than, not gte.
		if br.Index > uint64(len(ac.ForeignApps)) {
			errs.addf("tx.Boxes[%d].Index is %d. Exceeds len(tx.ForeignApps)", i, br.Index)
		}
		if len(br.Name) > proto.MaxAppKeyLen {
			errs.addf("tx.Boxes[%d].Name too long, max len %d bytes", i, proto.MaxAppKeyLen)
		}
	}

	if ac.LocalStateSchema.NumEntries() > proto.MaxLocalSchemaEntries {
		errs.addf("tx.LocalStateSchema too large, max number of keys is %d", proto.MaxLocalSchemaEntries)
	}

	if ac.GlobalStateSchema.NumEntries() > proto.MaxGlobalSchemaEntries {
		errs.addf("tx.GlobalStateSchema too large, max number of keys is %d", proto.MaxGlobalSchemaEntries)
	}

	return errs.err()
}

// IndexByAddress converts an address into an integer offset into [txn.Sender,
// txn.Accounts[0], ...], returning the index at the first match. It returns
// an error if there is no such match.
func (ac *ApplicationCallTxnFields) IndexByAddress(target basics.Address, sender basics.Address) (uint64, error) {
	// Index 0 always corresponds to the sender
	if target == sender {
		return 0, nil
	}

	// Otherwise we index into ac.Accounts
	if idx := slices.Index(ac.Accounts, target); idx != -1 {
		return uint64(idx) + 1, nil
	}

	return 0, fmt.Errorf("invalid Account reference %s", target)
}

// BoxIndex returns the wire index a box of app should use: 0 for the called
// app, otherwise one more than the app's position in ForeignApps.
func (ac *ApplicationCallTxnFields) BoxIndex(app basics.AppIndex) (uint64, error) {
	if app == 0 || app == ac.ApplicationID {
		return 0, nil
	}
	if idx := slices.Index(ac.ForeignApps, app); idx != -1 {
		return uint64(idx) + 1, nil
	}
	return 0, fmt.Errorf("box reference with app id %d not found in app references", app)
}

// BoxApp is the inverse of BoxIndex.
func (ac *ApplicationCallTxnFields) BoxApp(index uint64) (basics.AppIndex, error) {
	if index == 0 {
		return ac.ApplicationID, nil
	}
	if index > uint64(len(ac.ForeignApps)) {
		return 0, fmt.Errorf("cannot find app reference index %d", index)
	}
	return ac.ForeignApps[index-1], nil
}

// ProgramVersion extracts the version of an AVM program from its bytecode
func ProgramVersion(bytecode []byte) (version uint64, length int, err error) {
	if len(bytecode) == 0 {
		return 0, 0, errors.New("invalid program (empty)")
	}
	version, vlen := binary.Uvarint(bytecode)
	if vlen <= 0 {
		return 0, 0, errors.New("invalid version")
	}
	return version, vlen, nil
}

// syncProgramsVersion is version of AVM programs that are required to have
// matching versions between approval and clearstate.
const syncProgramsVersion = 6

// CheckContractVersions ensures that for syncProgramsVersion and higher, two programs are version
// matched.
func CheckContractVersions(approval []byte, clear []byte) error {
	av, _, err := ProgramVersion(approval)
	if err != nil {
		return fmt.Errorf("bad ApprovalProgram: %v", err)
	}
	cv, _, err := ProgramVersion(clear)
	if err != nil {
		return fmt.Errorf("bad ClearStateProgram: %v", err)
	}
	if av >= syncProgramsVersion || cv >= syncProgramsVersion {
		if av != cv {
			return fmt.Errorf("program version mismatch: %d != %d", av, cv)
		}
	}
	return nil
}

// NewApplicationCall builds an application call transaction.
func NewApplicationCall(header Header, fields ApplicationCallTxnFields) (Transaction, error) {
	if err := fields.wellFormed(config.Current()); err != nil {
		return Transaction{}, err
	}
	return Transaction{Type: protocol.ApplicationCallTx, Header: header, ApplicationCallTxnFields: fields}, nil
}
