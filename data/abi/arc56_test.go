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
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/algorand/go-algokit/data/transactions/logic"
	"github.com/algorand/go-algokit/serr"
	"github.com/algorand/go-algokit/test/partitiontest"
)

const testContractJSON = `{
  "arcs": [4, 56],
  "name": "Calculator",
  "structs": {
    "Point": [{"name": "x", "type": "uint64"}, {"name": "y", "type": "uint64"}],
    "Shape": [
      {"name": "origin", "type": "Point"},
      {"name": "meta", "type": [{"name": "label", "type": "string"}, {"name": "visible", "type": "bool"}]}
    ]
  },
  "methods": [
    {
      "name": "add",
      "args": [
        {"type": "uint64", "name": "a"},
        {"type": "uint64", "name": "b", "defaultValue": {"data": "AAAAAAAAAAU=", "source": "literal"}}
      ],
      "returns": {"type": "uint64"},
      "actions": {"create": [], "call": ["NoOp"]},
      "readonly": true
    },
    {
      "name": "add",
      "args": [{"type": "uint32", "name": "a"}, {"type": "uint32", "name": "b"}],
      "returns": {"type": "uint32"},
      "actions": {"create": [], "call": ["NoOp"]}
    },
    {
      "name": "move",
      "args": [{"type": "(uint64,uint64)", "name": "p", "struct": "Point"}],
      "returns": {"type": "void"},
      "actions": {"create": ["NoOp"], "call": []}
    }
  ],
  "state": {
    "schema": {"global": {"ints": 1, "bytes": 1}, "local": {"ints": 0, "bytes": 0}},
    "keys": {
      "global": {"counter": {"keyType": "AVMString", "valueType": "AVMUint64", "key": "Y291bnRlcg=="}},
      "local": {},
      "box": {}
    },
    "maps": {"global": {}, "local": {}, "box": {"points": {"keyType": "address", "valueType": "Point", "prefix": "cA=="}}}
  },
  "bareActions": {"create": ["NoOp"], "call": []},
  "sourceInfo": {
    "approval": {"sourceInfo": [{"pc": [10, 11], "errorMessage": "overflow"}], "pcOffsetMethod": "cblocks"},
    "clear": {"sourceInfo": [], "pcOffsetMethod": "none"}
  }
}`

func loadTestContract(t *testing.T) Contract {
	c, err := ContractFromJSON([]byte(testContractJSON))
	require.NoError(t, err)
	return c
}

func TestContractFromJSON(t *testing.T) {
	partitiontest.PartitionTest(t)

	c := loadTestContract(t)
	require.Equal(t, "Calculator", c.Name)
	require.Equal(t, []uint64{4, 56}, c.Arcs)
	require.Len(t, c.Methods, 3)
	require.True(t, c.Methods[0].ReadOnly)
	require.Equal(t, []string{"NoOp"}, c.Methods[0].Actions.Call)
	require.Equal(t, "Point", c.Methods[2].Args[0].Struct)

	require.Len(t, c.Structs["Shape"], 2)
	require.Equal(t, "Point", c.Structs["Shape"][0].Type)
	require.Len(t, c.Structs["Shape"][1].Fields, 2)
	require.Equal(t, "label", c.Structs["Shape"][1].Fields[0].Name)

	require.NotNil(t, c.State)
	require.Equal(t, uint64(1), c.State.Schema.Global.Ints)
	require.Equal(t, "Y291bnRlcg==", c.State.Keys.Global["counter"].Key)
	require.Equal(t, "Point", c.State.Maps.Box["points"].ValueType)

	require.NotNil(t, c.SourceInfo)
	require.Equal(t, logic.PCOffsetCblocks, c.SourceInfo.Approval.PCOffsetMethod)
	require.Equal(t, []int{10, 11}, c.SourceInfo.Approval.SourceInfo[0].PC)

	_, err := ContractFromJSON([]byte(`{"name": 5}`))
	require.Error(t, err)
}

func TestStructFieldJSONRoundTrip(t *testing.T) {
	partitiontest.PartitionTest(t)

	c := loadTestContract(t)
	encoded, err := json.Marshal(c.Structs["Shape"])
	require.NoError(t, err)
	require.JSONEq(t,
		`[{"name":"origin","type":"Point"},{"name":"meta","type":[{"name":"label","type":"string"},{"name":"visible","type":"bool"}]}]`,
		string(encoded))

	var fields []StructField
	require.NoError(t, json.Unmarshal(encoded, &fields))
	require.Equal(t, c.Structs["Shape"], fields)
}

func TestContractGetMethod(t *testing.T) {
	partitiontest.PartitionTest(t)

	c := loadTestContract(t)

	m, err := c.GetMethod("move")
	require.NoError(t, err)
	require.Equal(t, "move((uint64,uint64))void", m.GetSignature())

	m, err = c.GetMethod("add(uint32,uint32)uint32")
	require.NoError(t, err)
	require.Equal(t, "b", m.Args[1].Name)

	_, err = c.GetMethod("add")
	require.EqualError(t, err, "ABI validation failed: Received a call to method add in contract Calculator, which resolved to multiple methods; please pass in an ABI signature instead: add(uint64,uint64)uint64, add(uint32,uint32)uint32")
	require.True(t, errors.Is(err, serr.ErrValidation))

	_, err = c.GetMethod("mul")
	require.EqualError(t, err, "ABI validation failed: Unable to find method mul in Calculator app")
	_, err = c.GetMethod("add(uint8,uint8)uint8")
	require.EqualError(t, err, "ABI validation failed: Unable to find method add(uint8,uint8)uint8 in Calculator app")
}

func TestResolveLiteralDefault(t *testing.T) {
	partitiontest.PartitionTest(t)

	c := loadTestContract(t)
	m, err := c.GetMethod("add(uint64,uint64)uint64")
	require.NoError(t, err)
	dv := m.Args[1].DefaultValue
	require.NotNil(t, dv)

	value, err := ResolveLiteralDefault(*dv, m.Args[1].Type)
	require.NoError(t, err)
	require.Equal(t, uint64(5), value)

	// the default's own type wins over the argument type
	value, err = ResolveLiteralDefault(DefaultValue{
		Data:   base64.StdEncoding.EncodeToString([]byte("hi")),
		Source: DefaultFromLiteral,
		Type:   "AVMString",
	}, "string")
	require.NoError(t, err)
	require.Equal(t, "hi", value)

	_, err = ResolveLiteralDefault(DefaultValue{Data: "Y291bnRlcg==", Source: DefaultFromGlobal}, "uint64")
	require.True(t, errors.Is(err, serr.ErrValidation))

	_, err = ResolveLiteralDefault(DefaultValue{Data: "!!!", Source: DefaultFromLiteral}, "uint64")
	require.ErrorContains(t, err, "Failed to decode base64 literal")
}

func TestContractStructs(t *testing.T) {
	partitiontest.PartitionTest(t)

	c := loadTestContract(t)

	pointType, err := c.StructType("Point")
	require.NoError(t, err)
	require.Equal(t, "(uint64,uint64)", pointType.String())

	shapeType, err := c.StructType("Shape")
	require.NoError(t, err)
	require.Equal(t, "((uint64,uint64),(string,bool))", shapeType.String())

	_, err = c.StructType("Circle")
	require.EqualError(t, err, "ABI validation failed: Struct 'Circle' not found in ARC-56 definition")

	shape := Struct{Name: "Shape", Fields: []StructFieldValue{
		{Name: "origin", Value: Struct{Name: "Point", Fields: []StructFieldValue{
			{Name: "x", Value: uint64(1)},
			{Name: "y", Value: uint64(2)},
		}}},
		{Name: "meta", Value: Struct{Fields: []StructFieldValue{
			{Name: "label", Value: "a"},
			{Name: "visible", Value: true},
		}}},
	}}
	encoded, err := shapeType.Encode(shape)
	require.NoError(t, err)

	decoded, err := c.DecodeStruct("Shape", encoded)
	require.NoError(t, err)
	require.Equal(t, shape, decoded)
}

func TestContractStorageKeyType(t *testing.T) {
	partitiontest.PartitionTest(t)

	c := loadTestContract(t)
	key := c.State.Keys.Global["counter"]

	keyType, err := c.StorageKeyType(key.KeyType)
	require.NoError(t, err)
	require.Equal(t, AVMString, keyType.TypeID())

	valueType, err := c.StorageKeyType(key.ValueType)
	require.NoError(t, err)
	require.Equal(t, AVMUint64, valueType.TypeID())

	mapValue, err := c.StorageKeyType(c.State.Maps.Box["points"].ValueType)
	require.NoError(t, err)
	require.Equal(t, "(uint64,uint64)", mapValue.String())

	_, err = c.StorageKeyType("AVMFloat")
	require.ErrorContains(t, err, "Failed to parse storage type 'AVMFloat'")
}
