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

// Package composer assembles transaction groups: it fills in headers and fees
// from the node's suggested parameters, packs ABI method calls, groups,
// signs, simulates and submits.
//
// A Composer is used by a single goroutine. It moves from building (Add*
// calls) to built (Build) to signed (GatherSignatures) to sent (Send); once
// built it accepts no more transactions.
package composer

import (
	"context"
	"slices"

	"github.com/algorand/go-algokit/config"
	"github.com/algorand/go-algokit/crypto"
	"github.com/algorand/go-algokit/daemon/algod/api/model"
	"github.com/algorand/go-algokit/data/abi"
	"github.com/algorand/go-algokit/data/basics"
	"github.com/algorand/go-algokit/data/transactions"
	"github.com/algorand/go-algokit/logging"
	"github.com/algorand/go-algokit/protocol"
	"github.com/algorand/go-algokit/serr"
)

// entry is one transaction of the group before it is built: either params to
// build from, or a transaction added as is.
type entry struct {
	params   txnParams
	txn      transactions.Transaction
	prebuilt bool
	signer   TransactionSigner
	// method is set for ABI method calls, to decode their return value.
	method *abi.Method
}

func (e entry) common() CommonParams {
	if e.params == nil {
		return CommonParams{}
	}
	return e.params.commonParams()
}

func (e entry) logicalMaxFee() (uint64, bool) {
	if e.params == nil {
		return 0, false
	}
	return e.params.commonParams().logicalMaxFee()
}

func (e entry) isAppCall() bool {
	return e.params != nil && e.params.txType() == protocol.ApplicationCallTx
}

// Composer builds, signs and sends one transaction group.
type Composer struct {
	node    Node
	signers SignerGetter
	log     logging.Logger
	proto   config.ConsensusParams
	cfg     config.Local

	validityWindow uint64
	accessList     bool
	debugInfo      map[basics.AppIndex]AppDebugInfo

	entries []entry
	built   []TransactionWithSigner
	signed  []transactions.SignedTxn
	// submitted is set once Send has handed the group to the node.
	submitted  bool
	sendFailed bool
}

// Option configures a Composer.
type Option func(*Composer)

// WithValidityWindow sets the validity window used when a transaction sets
// neither a window nor a last valid round. It overrides the network default.
func WithValidityWindow(rounds uint64) Option {
	return func(c *Composer) { c.validityWindow = rounds }
}

// WithLogger sets the logger. The default is logging.Base().
func WithLogger(log logging.Logger) Option {
	return func(c *Composer) { c.log = log }
}

// WithConsensus sets the protocol limits used for reference caps.
func WithConsensus(proto config.ConsensusParams) Option {
	return func(c *Composer) { c.proto = proto }
}

// WithConfig takes the validity windows, confirmation wait and app call
// behavior from cfg.
func WithConfig(cfg config.Local) Option {
	return func(c *Composer) { c.cfg = cfg }
}

// WithPopulateResources turns simulate based population of app call
// references on or off.
func WithPopulateResources(enabled bool) Option {
	return func(c *Composer) { c.cfg.PopulateAppCallResources = enabled }
}

// WithAccessList lets resource population place references that do not fit
// an app call on other app calls of the group instead of failing.
func WithAccessList(enabled bool) Option {
	return func(c *Composer) { c.accessList = enabled }
}

// WithCoverInnerFees makes app calls pay for the inner transactions they
// issue, up to their max fee.
func WithCoverInnerFees(enabled bool) Option {
	return func(c *Composer) { c.cfg.CoverAppCallInnerTransactionFees = enabled }
}

// WithSourceMap registers debug information for appID, used to annotate its
// logic errors.
func WithSourceMap(appID basics.AppIndex, info AppDebugInfo) Option {
	return func(c *Composer) { c.debugInfo[appID] = info }
}

// New returns an empty Composer talking to node and finding signers with
// signers, which may be nil when every transaction names its signer.
func New(node Node, signers SignerGetter, opts ...Option) *Composer {
	c := &Composer{
		node:      node,
		signers:   signers,
		log:       logging.Base(),
		proto:     config.Current(),
		cfg:       config.GetDefaultLocal(),
		debugInfo: make(map[basics.AppIndex]AppDebugInfo),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Count returns the number of transactions added so far.
func (c *Composer) Count() int {
	return len(c.entries)
}

func (c *Composer) push(entries ...entry) error {
	if c.built != nil {
		return serr.Validationf("Cannot add transactions to a group that is already built")
	}
	if len(c.entries)+len(entries) > transactions.MaxTxGroupSize {
		return serr.Validationf("Transaction group size exceeds the max limit of %d", transactions.MaxTxGroupSize)
	}
	c.entries = append(c.entries, entries...)
	return nil
}

func (c *Composer) add(p txnParams) error {
	return c.push(entry{params: p})
}

// AddTransaction adds a built transaction. Its header and fee are kept as
// they are. signer may be nil to look the signer up by sender.
func (c *Composer) AddTransaction(txn transactions.Transaction, signer TransactionSigner) error {
	return c.push(entry{txn: txn, prebuilt: true, signer: signer})
}

// AddPayment adds a payment.
func (c *Composer) AddPayment(p PaymentParams) error { return c.add(p) }

// AddAccountClose adds a payment closing the sender's account.
func (c *Composer) AddAccountClose(p AccountCloseParams) error { return c.add(p) }

// AddAssetTransfer adds an asset transfer.
func (c *Composer) AddAssetTransfer(p AssetTransferParams) error { return c.add(p) }

// AddAssetOptIn adds an asset opt in.
func (c *Composer) AddAssetOptIn(p AssetOptInParams) error { return c.add(p) }

// AddAssetOptOut adds an asset opt out.
func (c *Composer) AddAssetOptOut(p AssetOptOutParams) error { return c.add(p) }

// AddAssetClawback adds an asset clawback.
func (c *Composer) AddAssetClawback(p AssetClawbackParams) error { return c.add(p) }

// AddAssetCreate adds an asset creation.
func (c *Composer) AddAssetCreate(p AssetCreateParams) error { return c.add(p) }

// AddAssetReconfigure adds an asset reconfiguration.
func (c *Composer) AddAssetReconfigure(p AssetReconfigureParams) error { return c.add(p) }

// AddAssetDestroy adds an asset destruction.
func (c *Composer) AddAssetDestroy(p AssetDestroyParams) error { return c.add(p) }

// AddAssetFreeze adds an asset freeze.
func (c *Composer) AddAssetFreeze(p AssetFreezeParams) error { return c.add(p) }

// AddAssetUnfreeze adds an asset unfreeze.
func (c *Composer) AddAssetUnfreeze(p AssetUnfreezeParams) error { return c.add(p) }

// AddOnlineKeyRegistration adds an online key registration.
func (c *Composer) AddOnlineKeyRegistration(p OnlineKeyRegistrationParams) error { return c.add(p) }

// AddOfflineKeyRegistration adds an offline key registration.
func (c *Composer) AddOfflineKeyRegistration(p OfflineKeyRegistrationParams) error {
	return c.add(p)
}

// AddNonParticipationKeyRegistration adds a non participation key registration.
func (c *Composer) AddNonParticipationKeyRegistration(p NonParticipationKeyRegistrationParams) error {
	return c.add(p)
}

// AddAppCall adds an application call.
func (c *Composer) AddAppCall(p AppCallParams) error { return c.add(p) }

// AddAppCreate adds an application creation.
func (c *Composer) AddAppCreate(p AppCreateParams) error { return c.add(p) }

// AddAppUpdate adds an application update.
func (c *Composer) AddAppUpdate(p AppUpdateParams) error { return c.add(p) }

// AddAppDelete adds an application deletion.
func (c *Composer) AddAppDelete(p AppDeleteParams) error { return c.add(p) }

// AddMethodCall adds an ABI method call, preceded by the transactions passed
// as its transaction arguments. Arguments are encoded and references pooled
// here, so bad arguments fail at this call.
func (c *Composer) AddMethodCall(p AppMethodCallParams) error {
	entries, err := expandMethodCall(p)
	if err != nil {
		return err
	}
	return c.push(entries...)
}

// header fills in the header of a transaction from its params and the
// suggested params of the network.
func (c *Composer) header(p CommonParams, sp model.TransactionParams) (transactions.Header, error) {
	if len(sp.GenesisHash) != crypto.DigestSize {
		return transactions.Header{}, serr.Decodingf("Invalid genesis hash")
	}
	first := p.FirstValidRound
	if first == 0 {
		first = sp.LastRound
	}
	last := p.LastValidRound
	if last == 0 {
		window := p.ValidityWindow
		if window == 0 {
			window = c.defaultValidityWindow(sp.GenesisID)
		}
		last = first + basics.Round(window)
	}

	h := transactions.Header{
		Sender:     p.Sender,
		FirstValid: first,
		LastValid:  last,
		Note:       p.Note,
		GenesisID:  sp.GenesisID,
		Lease:      p.Lease,
		RekeyTo:    p.RekeyTo,
	}
	copy(h.GenesisHash[:], sp.GenesisHash)
	return h, nil
}

func (c *Composer) defaultValidityWindow(genesisID string) uint64 {
	if c.validityWindow != 0 {
		return c.validityWindow
	}
	return c.cfg.ValidityWindow(genesisID)
}

// buildEntry builds one transaction with its fee assigned.
func (c *Composer) buildEntry(e entry, sp model.TransactionParams) (transactions.Transaction, error) {
	if e.prebuilt {
		return e.txn, nil
	}
	p := e.params.commonParams()
	h, err := c.header(p, sp)
	if err != nil {
		return transactions.Transaction{}, err
	}
	txn, err := e.params.buildTxn(h)
	if err != nil {
		return transactions.Transaction{}, err
	}
	if p.StaticFee != nil {
		if err := transactions.CheckMaxFee(*p.StaticFee, p.MaxFee); err != nil {
			return transactions.Transaction{}, err
		}
		txn.Fee = basics.MicroAlgos{Raw: *p.StaticFee}
		return txn, nil
	}
	return txn.AssignFee(transactions.FeeParams{
		FeePerByte: sp.Fee,
		MinFee:     sp.MinFee,
		ExtraFee:   p.ExtraFee,
		MaxFee:     p.MaxFee,
	})
}

func (c *Composer) buildTransactions(sp model.TransactionParams) ([]transactions.Transaction, error) {
	txns := make([]transactions.Transaction, len(c.entries))
	for i, e := range c.entries {
		txn, err := c.buildEntry(e, sp)
		if err != nil {
			return nil, serr.Extend(err, "index", i)
		}
		txns[i] = txn
		c.log.Debugf("composer: transaction %d (%s) fee %d", i, txn.Type, txn.Fee.Raw)
	}
	return txns, nil
}

func (c *Composer) signerFor(e entry, txn transactions.Transaction) (TransactionSigner, error) {
	if e.signer != nil {
		return e.signer, nil
	}
	if s := e.common().Signer; s != nil {
		return s, nil
	}
	if c.signers != nil {
		if s, ok := c.signers.Signer(txn.Sender); ok {
			return s, nil
		}
	}
	return nil, serr.Validationf("No signer found for address: %s", txn.Sender)
}

// assignGroup writes the group id into txns when there is more than one. A
// transaction added already grouped must carry the same id.
func (c *Composer) assignGroup(txns []transactions.Transaction) (crypto.Digest, error) {
	var gid crypto.Digest
	if len(txns) > 1 {
		var err error
		gid, err = transactions.ComputeGroupID(txns)
		if err != nil {
			return crypto.Digest{}, err
		}
	}
	for i := range txns {
		if c.entries[i].prebuilt && !c.entries[i].txn.Group.IsZero() && c.entries[i].txn.Group != gid {
			return crypto.Digest{}, serr.Validationf("Transaction %d is already grouped with a different group id", i)
		}
		txns[i].Group = gid
	}
	return gid, nil
}

func (c *Composer) hasAppCall() bool {
	for _, e := range c.entries {
		if e.isAppCall() || (e.prebuilt && e.txn.Type == protocol.ApplicationCallTx) {
			return true
		}
	}
	return false
}

// Build fills in every transaction of the group and assigns the group id. It
// calls the node for suggested params and, when resource population or inner
// fee coverage is on and the group has app calls, simulates the group. Build
// is idempotent once it succeeded.
func (c *Composer) Build(ctx context.Context) ([]TransactionWithSigner, error) {
	if c.built != nil {
		return c.built, nil
	}
	if len(c.entries) == 0 {
		return nil, serr.Validationf("Cannot build an empty transaction group")
	}

	sp, err := c.node.SuggestedParams(ctx)
	if err != nil {
		return nil, serr.Wrap(serr.ErrNode, err, "suggested params")
	}
	c.log.Debugf("composer: building %d transactions at round %d", len(c.entries), sp.LastRound)

	txns, err := c.buildTransactions(sp)
	if err != nil {
		return nil, err
	}
	signers := make([]TransactionSigner, len(txns))
	for i, e := range c.entries {
		signers[i], err = c.signerFor(e, txns[i])
		if err != nil {
			return nil, err
		}
	}
	if _, err := c.assignGroup(txns); err != nil {
		return nil, err
	}

	populate := c.cfg.PopulateAppCallResources
	cover := c.cfg.CoverAppCallInnerTransactionFees
	if c.hasAppCall() && (populate || cover) {
		info, err := c.groupExecutionInfo(ctx, sp, txns, cover)
		if err != nil {
			return nil, err
		}
		if populate {
			sized := slices.Clone(txns)
			if err := c.populateResources(txns, info); err != nil {
				return nil, err
			}
			if err := c.repriceFees(txns, sized, sp, info); err != nil {
				return nil, err
			}
		}
		if cover {
			if err := c.coverFees(txns, info); err != nil {
				return nil, err
			}
		}
	}

	gid, err := c.assignGroup(txns)
	if err != nil {
		return nil, err
	}

	built := make([]TransactionWithSigner, len(txns))
	for i := range txns {
		built[i] = TransactionWithSigner{Txn: txns[i], Signer: signers[i]}
	}
	c.built = built
	c.log.With("group", gid.String()).Debugf("composer: built %d transactions", len(built))
	return c.built, nil
}

// Transactions returns the built transactions, or nil before Build.
func (c *Composer) Transactions() []transactions.Transaction {
	if c.built == nil {
		return nil
	}
	out := make([]transactions.Transaction, len(c.built))
	for i, t := range c.built {
		out[i] = t.Txn
	}
	return out
}
