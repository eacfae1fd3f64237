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
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/algorand/go-algokit/data/transactions/logic"
)

// DefaultValueSource says where a client reads a default argument value from.
type DefaultValueSource string

// Default value sources.
const (
	DefaultFromBox     DefaultValueSource = "box"
	DefaultFromGlobal  DefaultValueSource = "global"
	DefaultFromLocal   DefaultValueSource = "local"
	DefaultFromLiteral DefaultValueSource = "literal"
	DefaultFromMethod  DefaultValueSource = "method"
)

// DefaultValue describes the value to use for an argument the caller omits.
type DefaultValue struct {
	// Base64 encoded bytes, base64 ARC4 encoded uint64, or UTF-8 method selector
	Data string `json:"data"`
	// Where the default value is coming from
	Source DefaultValueSource `json:"source"`
	// How the data is encoded. Defaults to the argument type; AVM aliases are allowed.
	Type string `json:"type,omitempty"`
}

// ResolveLiteralDefault decodes a literal default value against its own type,
// or argType when the default does not declare one.
func ResolveLiteralDefault(dv DefaultValue, argType string) (interface{}, error) {
	if dv.Source != DefaultFromLiteral {
		return nil, validationErrorf("Default value source %s cannot be resolved without a node", dv.Source)
	}
	typeStr := dv.Type
	if typeStr == "" {
		typeStr = argType
	}
	t, err := StorageTypeOf(typeStr)
	if err != nil {
		return nil, err
	}
	raw, err := base64.StdEncoding.DecodeString(dv.Data)
	if err != nil {
		return nil, validationErrorf("Failed to decode base64 literal: %v", err)
	}
	return t.Decode(raw)
}

// StructField is one field of an ARC-56 struct. Its type is either an ABI
// type string, the name of another struct, or an anonymous list of fields.
type StructField struct {
	Name string
	// Type is set unless the field is an anonymous nested struct.
	Type string
	// Fields holds the members of an anonymous nested struct.
	Fields []StructField
}

type structFieldJSON struct {
	Name string          `json:"name"`
	Type json.RawMessage `json:"type"`
}

// MarshalJSON writes the type as a string or as a nested field list.
func (f StructField) MarshalJSON() ([]byte, error) {
	var typ []byte
	var err error
	if f.Fields != nil {
		typ, err = json.Marshal(f.Fields)
	} else {
		typ, err = json.Marshal(f.Type)
	}
	if err != nil {
		return nil, err
	}
	return json.Marshal(structFieldJSON{Name: f.Name, Type: typ})
}

// UnmarshalJSON reads the type as a string or as a nested field list.
func (f *StructField) UnmarshalJSON(data []byte) error {
	var raw structFieldJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	f.Name = raw.Name
	f.Type = ""
	f.Fields = nil
	if len(raw.Type) > 0 && raw.Type[0] == '[' {
		return json.Unmarshal(raw.Type, &f.Fields)
	}
	return json.Unmarshal(raw.Type, &f.Type)
}

// StorageKey describes a single key in app storage.
type StorageKey struct {
	Desc      string `json:"desc,omitempty"`
	KeyType   string `json:"keyType"`
	ValueType string `json:"valueType"`
	// Base64 encoded key
	Key string `json:"key"`
}

// StorageMap describes a mapping of key-value pairs in app storage.
type StorageMap struct {
	Desc      string `json:"desc,omitempty"`
	KeyType   string `json:"keyType"`
	ValueType string `json:"valueType"`
	// Base64 encoded prefix of the keys
	Prefix string `json:"prefix,omitempty"`
}

// StorageSchema counts the state slots of one storage kind.
type StorageSchema struct {
	Ints  uint64 `json:"ints"`
	Bytes uint64 `json:"bytes"`
}

// ContractState describes the storage of the application.
type ContractState struct {
	Schema struct {
		Global StorageSchema `json:"global"`
		Local  StorageSchema `json:"local"`
	} `json:"schema"`
	Keys struct {
		Global map[string]StorageKey `json:"global"`
		Local  map[string]StorageKey `json:"local"`
		Box    map[string]StorageKey `json:"box"`
	} `json:"keys"`
	Maps struct {
		Global map[string]StorageMap `json:"global"`
		Local  map[string]StorageMap `json:"local"`
		Box    map[string]StorageMap `json:"box"`
	} `json:"maps"`
}

// ContractSource holds a pair of base64 encoded programs.
type ContractSource struct {
	Approval string `json:"approval"`
	Clear    string `json:"clear"`
}

// DecodedApproval returns the approval program text.
func (s ContractSource) DecodedApproval() (string, error) {
	b, err := base64.StdEncoding.DecodeString(s.Approval)
	return string(b), err
}

// DecodedClear returns the clear state program text.
func (s ContractSource) DecodedClear() (string, error) {
	b, err := base64.StdEncoding.DecodeString(s.Clear)
	return string(b), err
}

// ContractSourceInfo maps program counters to source lines for both programs.
type ContractSourceInfo struct {
	Approval logic.ProgramSourceInfo `json:"approval"`
	Clear    logic.ProgramSourceInfo `json:"clear"`
}

// ContractNetwork records the application deployed on a network.
type ContractNetwork struct {
	AppID uint64 `json:"appID"`
}

// Contract is the subset of an ARC-56 application specification the composer
// and the command line tool consume.
type Contract struct {
	Arcs        []uint64                   `json:"arcs"`
	Name        string                     `json:"name"`
	Desc        string                     `json:"desc,omitempty"`
	Networks    map[string]ContractNetwork `json:"networks,omitempty"`
	Structs     map[string][]StructField   `json:"structs"`
	Methods     []Method                   `json:"methods"`
	State       *ContractState             `json:"state,omitempty"`
	BareActions *MethodActions             `json:"bareActions,omitempty"`
	Source      *ContractSource            `json:"source,omitempty"`
	SourceInfo  *ContractSourceInfo        `json:"sourceInfo,omitempty"`
	ByteCode    *ContractSource            `json:"byteCode,omitempty"`
}

// ContractFromJSON parses an ARC-56 document.
func ContractFromJSON(data []byte) (Contract, error) {
	var c Contract
	if err := json.Unmarshal(data, &c); err != nil {
		return Contract{}, validationErrorf("invalid ARC-56 document: %v", err)
	}
	return c, nil
}

// GetMethod finds a method by name, or by exact signature when the argument
// contains a parenthesis.
func (c *Contract) GetMethod(nameOrSignature string) (Method, error) {
	if strings.Contains(nameOrSignature, "(") {
		for _, m := range c.Methods {
			if m.GetSignature() == nameOrSignature {
				return m, nil
			}
		}
		return Method{}, validationErrorf("Unable to find method %s in %s app", nameOrSignature, c.Name)
	}

	var found []Method
	for _, m := range c.Methods {
		if m.Name == nameOrSignature {
			found = append(found, m)
		}
	}
	switch len(found) {
	case 0:
		return Method{}, validationErrorf("Unable to find method %s in %s app", nameOrSignature, c.Name)
	case 1:
		return found[0], nil
	default:
		sigs := make([]string, len(found))
		for i, m := range found {
			sigs[i] = m.GetSignature()
		}
		return Method{}, validationErrorf("Received a call to method %s in contract %s, which resolved to multiple methods; please pass in an ABI signature instead: %s",
			nameOrSignature, c.Name, strings.Join(sigs, ", "))
	}
}

// StructType returns the tuple type a named struct is encoded as.
func (c *Contract) StructType(name string) (Type, error) {
	fields, ok := c.Structs[name]
	if !ok {
		return Type{}, validationErrorf("Struct '%s' not found in ARC-56 definition", name)
	}
	return c.fieldsTupleType(fields)
}

func (c *Contract) fieldsTupleType(fields []StructField) (Type, error) {
	childTypes := make([]Type, len(fields))
	for i, f := range fields {
		t, err := c.fieldType(f)
		if err != nil {
			return Type{}, err
		}
		childTypes[i] = t
	}
	return MakeTupleType(childTypes)
}

func (c *Contract) fieldType(f StructField) (Type, error) {
	if f.Fields != nil {
		return c.fieldsTupleType(f.Fields)
	}
	if _, ok := c.Structs[f.Type]; ok {
		return c.StructType(f.Type)
	}
	return TypeOf(f.Type)
}

// DecodeStruct decodes bytes into a named Struct, naming nested struct fields as well.
func (c *Contract) DecodeStruct(name string, encoded []byte) (Struct, error) {
	t, err := c.StructType(name)
	if err != nil {
		return Struct{}, err
	}
	decoded, err := t.Decode(encoded)
	if err != nil {
		return Struct{}, err
	}
	return c.nameFields(name, c.Structs[name], decoded.([]interface{})), nil
}

func (c *Contract) nameFields(name string, fields []StructField, values []interface{}) Struct {
	s := Struct{Name: name, Fields: make([]StructFieldValue, len(fields))}
	for i, f := range fields {
		v := values[i]
		switch {
		case f.Fields != nil:
			v = c.nameFields("", f.Fields, v.([]interface{}))
		case c.Structs[f.Type] != nil:
			v = c.nameFields(f.Type, c.Structs[f.Type], v.([]interface{}))
		}
		s.Fields[i] = StructFieldValue{Name: f.Name, Value: v}
	}
	return s
}

// StorageKeyType resolves a storage key or value type: a struct name, an ABI type or an AVM alias.
func (c *Contract) StorageKeyType(typeStr string) (Type, error) {
	if _, ok := c.Structs[typeStr]; ok {
		return c.StructType(typeStr)
	}
	t, err := StorageTypeOf(typeStr)
	if err != nil {
		return Type{}, validationErrorf("Failed to parse storage type '%s': %v", typeStr, err)
	}
	return t, nil
}
