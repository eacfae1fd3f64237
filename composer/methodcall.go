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
	"fmt"
	"slices"

	"github.com/algorand/go-algokit/data/abi"
	"github.com/algorand/go-algokit/data/basics"
	"github.com/algorand/go-algokit/data/transactions"
	"github.com/algorand/go-algokit/protocol"
	"github.com/algorand/go-algokit/serr"
)

// maxPositionalArgs is the number of ABI encoded arguments that fit after the
// selector. Longer argument lists pack their tail into a tuple at the last
// position.
const maxPositionalArgs = 15

type defaultArg struct{}

// DefaultArg stands for an argument the caller wants filled from the default
// value the method declares. Only literal defaults can be resolved.
var DefaultArg = defaultArg{}

var referenceIndexType = func() abi.Type {
	t, err := abi.MakeUintType(8)
	if err != nil {
		panic(err)
	}
	return t
}()

// appMethodCall is an AppMethodCallParams with its arguments already encoded
// and its reference arrays laid out.
type appMethodCall struct {
	AppMethodCallParams
	appArgs [][]byte
}

func (appMethodCall) txType() protocol.TxType { return protocol.ApplicationCallTx }

func (m appMethodCall) buildTxn(h transactions.Header) (transactions.Transaction, error) {
	fields := m.appCallFields(m.AppID, m.OnComplete, m.appArgs)
	if m.AppID == 0 || m.OnComplete == transactions.UpdateApplicationOC {
		fields.ApprovalProgram = m.ApprovalProgram
		fields.ClearStateProgram = m.ClearStateProgram
	}
	if m.AppID == 0 {
		fields.GlobalStateSchema = m.GlobalStateSchema
		fields.LocalStateSchema = m.LocalStateSchema
		fields.ExtraProgramPages = m.ExtraProgramPages
	}
	return transactions.NewApplicationCall(h, fields)
}

// expandMethodCall turns a method call into the entries it adds to a group:
// one per transaction argument, in argument order, followed by the call.
func expandMethodCall(p AppMethodCallParams) ([]entry, error) {
	method := p.Method
	if len(p.Args) != len(method.Args) {
		return nil, serr.Validationf("Method %s expects %d arguments, got %d",
			method.GetSignature(), len(method.Args), len(p.Args))
	}

	var entries []entry
	refs := p.References.clone()
	values := make([]interface{}, len(p.Args))

	// Transaction arguments and the reference pools are settled first so that
	// every reference index is final when the values are encoded.
	for i, arg := range method.Args {
		value := p.Args[i]
		switch arg.Kind() {
		case abi.TransactionArg:
			txnEntries, err := transactionArg(arg, value)
			if err != nil {
				return nil, serr.Extend(err, "method", method.Name, "arg", i)
			}
			entries = append(entries, txnEntries...)

		case abi.ReferenceArg:
			ref, err := poolReference(arg.Type, value, p.Sender, p.AppID, &refs)
			if err != nil {
				return nil, serr.Extend(err, "method", method.Name, "arg", i)
			}
			values[i] = ref

		default:
			if _, ok := value.(defaultArg); ok {
				if arg.DefaultValue == nil {
					return nil, serr.Validationf("Argument %d of method %s has no default value", i, method.Name)
				}
				resolved, err := abi.ResolveLiteralDefault(*arg.DefaultValue, arg.Type)
				if err != nil {
					return nil, err
				}
				value = resolved
			}
			values[i] = value
		}
	}

	var types []abi.Type
	var encodable []interface{}
	for i, arg := range method.Args {
		switch arg.Kind() {
		case abi.TransactionArg:
			continue
		case abi.ReferenceArg:
			idx, err := referenceIndex(arg.Type, values[i], p.Sender, p.AppID, refs)
			if err != nil {
				return nil, err
			}
			types = append(types, referenceIndexType)
			encodable = append(encodable, idx)
		default:
			t, err := arg.GetTypeObject()
			if err != nil {
				return nil, err
			}
			types = append(types, t)
			encodable = append(encodable, values[i])
		}
	}

	appArgs, err := encodeMethodArgs(types, encodable)
	if err != nil {
		return nil, serr.Extend(err, "method", method.Name)
	}
	appArgs = append([][]byte{method.GetSelector()}, appArgs...)

	p.References = refs
	call := appMethodCall{AppMethodCallParams: p, appArgs: appArgs}
	entries = append(entries, entry{params: call, method: &method})
	return entries, nil
}

// encodeMethodArgs encodes each value against its type. With more than
// maxPositionalArgs values the ones from position maxPositionalArgs-1 on are
// encoded together as a single tuple.
func encodeMethodArgs(types []abi.Type, values []interface{}) ([][]byte, error) {
	if len(types) > maxPositionalArgs {
		head := maxPositionalArgs - 1
		tupleType, err := abi.MakeTupleType(types[head:])
		if err != nil {
			return nil, err
		}
		encoded, err := encodeMethodArgs(types[:head], values[:head])
		if err != nil {
			return nil, err
		}
		packed, err := tupleType.Encode(values[head:])
		if err != nil {
			return nil, serr.Wrap(serr.ErrEncoding, err, "Failed to encode ABI value")
		}
		return append(encoded, packed), nil
	}

	out := make([][]byte, len(types))
	for i, t := range types {
		encoded, err := t.Encode(values[i])
		if err != nil {
			return nil, serr.Wrap(serr.ErrEncoding, err, "Failed to encode ABI value")
		}
		out[i] = encoded
	}
	return out, nil
}

// transactionArg returns the entries that satisfy a transaction argument.
func transactionArg(arg abi.Arg, value interface{}) ([]entry, error) {
	want := protocol.TxType(arg.Type)
	check := func(got protocol.TxType) error {
		if arg.Type != abi.AnyTransactionType && got != want {
			return serr.Validationf("Expected a %s transaction argument, got %s", arg.Type, got)
		}
		return nil
	}

	switch v := value.(type) {
	case TransactionWithSigner:
		if err := check(v.Txn.Type); err != nil {
			return nil, err
		}
		return []entry{{txn: v.Txn, prebuilt: true, signer: v.Signer}}, nil
	case AppMethodCallParams:
		if err := check(protocol.ApplicationCallTx); err != nil {
			return nil, err
		}
		return expandMethodCall(v)
	case txnParams:
		if err := check(v.txType()); err != nil {
			return nil, err
		}
		return []entry{{params: v}}, nil
	case nil:
		return nil, serr.Validationf("Missing %s transaction argument", arg.Type)
	}
	return nil, serr.Validationf("Unsupported value %T for %s transaction argument", value, arg.Type)
}

// poolReference normalizes a reference argument and adds it to the pools of
// refs unless it is implicitly available (the sender or the called app).
func poolReference(argType string, value interface{}, sender basics.Address, appID basics.AppIndex, refs *References) (interface{}, error) {
	switch argType {
	case abi.AccountReferenceType:
		addr, err := accountValue(value)
		if err != nil {
			return nil, err
		}
		if addr != sender && !slices.Contains(refs.AccountReferences, addr) {
			refs.AccountReferences = append(refs.AccountReferences, addr)
		}
		return addr, nil

	case abi.ApplicationReferenceType:
		id, err := idValue(value)
		if err != nil {
			return nil, err
		}
		app := basics.AppIndex(id)
		if app != appID && !slices.Contains(refs.AppReferences, app) {
			refs.AppReferences = append(refs.AppReferences, app)
		}
		return app, nil

	case abi.AssetReferenceType:
		id, err := idValue(value)
		if err != nil {
			return nil, err
		}
		asset := basics.AssetIndex(id)
		if !slices.Contains(refs.AssetReferences, asset) {
			refs.AssetReferences = append(refs.AssetReferences, asset)
		}
		return asset, nil
	}
	return nil, serr.Validationf("Unknown reference type %s", argType)
}

// referenceIndex is the uint8 a reference argument is encoded as. Accounts
// count from 1 with 0 for the sender, apps from 1 with 0 for the called app,
// assets from 0.
func referenceIndex(argType string, value interface{}, sender basics.Address, appID basics.AppIndex, refs References) (uint8, error) {
	var idx int
	switch argType {
	case abi.AccountReferenceType:
		ac := transactions.ApplicationCallTxnFields{Accounts: refs.AccountReferences}
		i, err := ac.IndexByAddress(value.(basics.Address), sender)
		if err != nil {
			return 0, serr.Wrap(serr.ErrEncoding, err, argType)
		}
		idx = int(i)
	case abi.ApplicationReferenceType:
		app := value.(basics.AppIndex)
		if app == appID {
			return 0, nil
		}
		idx = slices.Index(refs.AppReferences, app)
		if idx >= 0 {
			idx++
		}
	case abi.AssetReferenceType:
		idx = slices.Index(refs.AssetReferences, value.(basics.AssetIndex))
	}
	if idx < 0 || idx > 255 {
		return 0, serr.Encodingf("%s %v not found in reference array", argType, value)
	}
	return uint8(idx), nil
}

func accountValue(value interface{}) (basics.Address, error) {
	switch v := value.(type) {
	case basics.Address:
		return v, nil
	case string:
		addr, err := basics.UnmarshalChecksumAddress(v)
		if err != nil {
			return basics.Address{}, serr.Validationf("Invalid address %s", v)
		}
		return addr, nil
	}
	return basics.Address{}, serr.Validationf("Unsupported value %T for an account reference", value)
}

func idValue(value interface{}) (uint64, error) {
	switch v := value.(type) {
	case basics.AppIndex:
		return uint64(v), nil
	case basics.AssetIndex:
		return uint64(v), nil
	case uint64:
		return v, nil
	case uint:
		return uint64(v), nil
	case uint32:
		return uint64(v), nil
	case int:
		if v < 0 {
			return 0, serr.Validationf("Reference id %d is negative", v)
		}
		return uint64(v), nil
	case int64:
		if v < 0 {
			return 0, serr.Validationf("Reference id %d is negative", v)
		}
		return uint64(v), nil
	}
	return 0, serr.Validation(fmt.Sprintf("Unsupported value %T for an app or asset reference", value))
}
