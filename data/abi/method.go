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

package abi

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"

	"github.com/algorand/go-algokit/crypto"
)

// Transaction argument types.
const (
	AnyTransactionType             = "txn"
	PaymentTransactionType         = "pay"
	KeyRegistrationTransactionType = "keyreg"
	AssetConfigTransactionType     = "acfg"
	AssetTransferTransactionType   = "axfer"
	AssetFreezeTransactionType     = "afrz"
	ApplicationCallTransactionType = "appl"
)

// Reference argument types.
const (
	AccountReferenceType     = "account"
	ApplicationReferenceType = "application"
	AssetReferenceType       = "asset"
)

// VoidReturnType is the return type of a method that returns nothing.
const VoidReturnType = "void"

// ReturnPrefix precedes the encoded return value in the last log of an app call.
var ReturnPrefix = []byte{0x15, 0x1f, 0x7c, 0x75}

// IsTransactionType checks if a type string represents a transaction type argument.
func IsTransactionType(s string) bool {
	switch s {
	case AnyTransactionType, PaymentTransactionType, KeyRegistrationTransactionType,
		AssetConfigTransactionType, AssetTransferTransactionType, AssetFreezeTransactionType,
		ApplicationCallTransactionType:
		return true
	default:
		return false
	}
}

// IsReferenceType checks if a type string represents a reference type argument.
func IsReferenceType(s string) bool {
	switch s {
	case AccountReferenceType, ApplicationReferenceType, AssetReferenceType:
		return true
	default:
		return false
	}
}

// ArgKind says how a method argument travels in the application call.
type ArgKind int

const (
	// ValueArg is ABI encoded into the application args.
	ValueArg ArgKind = iota
	// TransactionArg is a transaction placed before the application call in the group.
	TransactionArg
	// ReferenceArg is encoded as a uint8 index into a reference array.
	ReferenceArg
)

// Arg represents an ABI Method argument
type Arg struct {
	// Optional, user-friendly name for the argument
	Name string `json:"name,omitempty"`
	// The type of the argument as a string. See the method GetTypeObject to
	// obtain the ABI type object
	Type string `json:"type"`
	// Optional, user-friendly description for the argument
	Desc string `json:"desc,omitempty"`
	// Name of the struct in the contract this argument is an instance of
	Struct string `json:"struct,omitempty"`
	// Default value a client uses when the caller does not supply one
	DefaultValue *DefaultValue `json:"defaultValue,omitempty"`

	typeObject *Type
}

// Kind returns whether the argument is a value, a transaction or a reference.
func (a Arg) Kind() ArgKind {
	switch {
	case IsTransactionType(a.Type):
		return TransactionArg
	case IsReferenceType(a.Type):
		return ReferenceArg
	default:
		return ValueArg
	}
}

// GetTypeObject parses and returns the ABI type object for the argument's
// type. An error will be returned if this argument's type is a transaction or
// reference type
func (a Arg) GetTypeObject() (Type, error) {
	if a.Kind() != ValueArg {
		return Type{}, validationErrorf("%s is not a value type", a.Type)
	}
	if a.typeObject != nil {
		return *a.typeObject, nil
	}
	return TypeOf(a.Type)
}

// Return represents an ABI method return value
type Return struct {
	// The type of the return value as a string. See the method GetTypeObject to
	// obtain the ABI type object
	Type string `json:"type"`
	// Optional, user-friendly description for the return value
	Desc string `json:"desc,omitempty"`
	// Name of the struct in the contract the return value is an instance of
	Struct string `json:"struct,omitempty"`

	typeObject *Type
}

// IsVoid returns true if the return type is void.
func (r Return) IsVoid() bool {
	return r.Type == VoidReturnType || r.Type == ""
}

// GetTypeObject parses and returns the ABI type object for the return type.
// An error will be returned if this is a void return type.
func (r Return) GetTypeObject() (Type, error) {
	if r.IsVoid() {
		return Type{}, validationErrorf("void has no type object")
	}
	if r.typeObject != nil {
		return *r.typeObject, nil
	}
	return TypeOf(r.Type)
}

// MethodActions lists the OnCompletion actions a method allows.
type MethodActions struct {
	Create []string `json:"create"`
	Call   []string `json:"call"`
}

// Method represents an ABI method description.
type Method struct {
	// The name of the method
	Name string `json:"name"`
	// Optional, user-friendly description for the method
	Desc string `json:"desc,omitempty"`
	// The arguments of the method, in order
	Args []Arg `json:"args"`
	// Information about the method's return value
	Returns Return `json:"returns"`
	// Allowed create and call actions
	Actions *MethodActions `json:"actions,omitempty"`
	// The method does not write any state
	ReadOnly bool `json:"readonly,omitempty"`
}

// MethodFromSignature decodes a method signature string into a Method object.
func MethodFromSignature(methodStr string) (Method, error) {
	if strings.IndexFunc(methodStr, unicode.IsSpace) >= 0 {
		return Method{}, validationErrorf("Method signature cannot contain whitespace")
	}

	openIdx := strings.IndexRune(methodStr, '(')
	if openIdx == -1 {
		return Method{}, validationErrorf("Method signature must contain opening parenthesis")
	}
	if openIdx == 0 {
		return Method{}, validationErrorf("Method name cannot be empty")
	}

	closeIdx := -1
	depth := 0
	for index := openIdx; index < len(methodStr); index++ {
		switch methodStr[index] {
		case '(':
			depth++
		case ')':
			depth--
		}
		if depth == 0 {
			closeIdx = index
			break
		}
	}
	if closeIdx == -1 {
		return Method{}, validationErrorf("Mismatched parentheses in method signature")
	}

	argTypes, err := parseTupleContent(methodStr[openIdx+1 : closeIdx])
	if err != nil {
		return Method{}, err
	}

	method := Method{
		Name: methodStr[:openIdx],
		Args: make([]Arg, len(argTypes)),
	}
	for i, argType := range argTypes {
		if argType == "" {
			return Method{}, validationErrorf("Empty argument in method signature")
		}
		arg := Arg{Name: fmt.Sprintf("arg%d", i), Type: argType}
		if arg.Kind() == ValueArg {
			t, err := TypeOf(argType)
			if err != nil {
				return Method{}, err
			}
			arg.typeObject = &t
		}
		method.Args[i] = arg
	}

	method.Returns.Type = VoidReturnType
	if closeIdx+1 < len(methodStr) {
		method.Returns.Type = methodStr[closeIdx+1:]
	}
	if !method.Returns.IsVoid() {
		t, err := TypeOf(method.Returns.Type)
		if err != nil {
			return Method{}, err
		}
		method.Returns.typeObject = &t
	}

	return method, nil
}

// GetSignature calculates and returns the signature of the method
func (method *Method) GetSignature() string {
	var methodSignature strings.Builder
	methodSignature.WriteString(method.Name + "(")
	for i, arg := range method.Args {
		if i > 0 {
			methodSignature.WriteByte(',')
		}
		methodSignature.WriteString(arg.Type)
	}
	methodSignature.WriteByte(')')
	if method.Returns.IsVoid() {
		methodSignature.WriteString(VoidReturnType)
	} else {
		methodSignature.WriteString(method.Returns.Type)
	}
	return methodSignature.String()
}

// GetSelector calculates and returns the 4 byte selector of the method
func (method *Method) GetSelector() []byte {
	sig := method.GetSignature()
	selectorHash := crypto.Hash([]byte(sig))
	return selectorHash[:4]
}

// GetTxCount returns the number of transactions required to invoke the method
func (method *Method) GetTxCount() int {
	return 1 + method.TransactionArgCount()
}

// TransactionArgCount returns the number of transaction arguments.
func (method *Method) TransactionArgCount() int {
	return method.countArgs(TransactionArg)
}

// ReferenceArgCount returns the number of reference arguments.
func (method *Method) ReferenceArgCount() int {
	return method.countArgs(ReferenceArg)
}

// ValueArgCount returns the number of ABI encoded arguments.
func (method *Method) ValueArgCount() int {
	return method.countArgs(ValueArg)
}

func (method *Method) countArgs(kind ArgKind) int {
	n := 0
	for _, arg := range method.Args {
		if arg.Kind() == kind {
			n++
		}
	}
	return n
}

// MethodByName returns the method with the given name. A name shared by
// several methods is ambiguous and reported with their signatures.
func MethodByName(methods []Method, name string) (Method, error) {
	var filteredMethods []Method
	for _, method := range methods {
		if method.Name == name {
			filteredMethods = append(filteredMethods, method)
		}
	}
	if len(filteredMethods) > 1 {
		sigs := make([]string, len(filteredMethods))
		for i, method := range filteredMethods {
			sigs[i] = method.GetSignature()
		}
		return Method{}, validationErrorf("Received a call to method %s which has multiple definitions; please pass in an ABI signature instead: %s",
			name, strings.Join(sigs, ", "))
	}
	if len(filteredMethods) == 0 {
		return Method{}, validationErrorf("Unable to find method %s", name)
	}
	return filteredMethods[0], nil
}

// MethodReturn is the decoded return value of an ABI method call.
type MethodReturn struct {
	Method         Method
	RawReturnValue []byte
	ReturnValue    interface{}
}

// ParseMethodReturn extracts the return value of method from the logs of its
// application call. A void method yields a zero MethodReturn.
func ParseMethodReturn(method Method, logs [][]byte) (MethodReturn, error) {
	if method.Returns.IsVoid() {
		return MethodReturn{Method: method}, nil
	}
	if len(logs) == 0 {
		return MethodReturn{}, decodingErrorf("App call transaction did not log a return value")
	}
	lastLog := logs[len(logs)-1]
	if !bytes.HasPrefix(lastLog, ReturnPrefix) {
		return MethodReturn{}, decodingErrorf("App call transaction did not log a ABI return value")
	}
	returnType, err := method.Returns.GetTypeObject()
	if err != nil {
		return MethodReturn{}, err
	}
	raw := lastLog[len(ReturnPrefix):]
	value, err := returnType.Decode(raw)
	if err != nil {
		return MethodReturn{}, err
	}
	return MethodReturn{Method: method, RawReturnValue: raw, ReturnValue: value}, nil
}
