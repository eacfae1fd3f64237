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
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/algorand/go-algokit/serr"
	"github.com/algorand/go-algokit/test/partitiontest"
)

func TestMakeTypeValid(t *testing.T) {
	partitiontest.PartitionTest(t)

	// uint
	for i := 8; i <= 512; i += 8 {
		uintType, err := MakeUintType(uint16(i))
		require.NoError(t, err, "make uint type fail")
		expected := "uint" + fmt.Sprint(i)
		require.Equal(t, expected, uintType.String())
	}
	// ufixed
	for i := 8; i <= 512; i += 8 {
		for j := 1; j <= 160; j++ {
			ufixedType, err := MakeUfixedType(uint16(i), uint16(j))
			require.NoError(t, err, "make ufixed type fail")
			expected := "ufixed" + fmt.Sprint(i) + "x" + fmt.Sprint(j)
			require.Equal(t, expected, ufixedType.String())
		}
	}

	uint8Type, err := MakeUintType(8)
	require.NoError(t, err)
	addressType := MakeAddressType()
	boolType := MakeBoolType()
	stringType := MakeStringType()

	testcases := []struct {
		input    Type
		expected string
	}{
		{input: MakeDynamicArrayType(uint8Type), expected: "uint8[]"},
		{input: MakeDynamicArrayType(MakeByteType()), expected: "byte[]"},
		{input: MakeStaticArrayType(boolType, 128), expected: "bool[128]"},
		{input: MakeStaticArrayType(addressType, 0), expected: "address[0]"},
		{input: MakeDynamicArrayType(MakeDynamicArrayType(stringType)), expected: "string[][]"},
		{
			input: Type{
				abiTypeID: Tuple,
				childTypes: []Type{
					uint8Type,
					MakeDynamicArrayType(boolType),
					MakeStaticArrayType(stringType, 4),
				},
				staticLength: 3,
			},
			expected: "(uint8,bool[],string[4])",
		},
		{input: Type{abiTypeID: Tuple}, expected: "()"},
	}
	for _, testcase := range testcases {
		t.Run(fmt.Sprintf("MakeType test %s", testcase.expected), func(t *testing.T) {
			require.Equal(t, testcase.expected, testcase.input.String())
		})
	}
}

func TestMakeTypeInvalid(t *testing.T) {
	partitiontest.PartitionTest(t)

	for _, size := range []uint16{0, 7, 9, 513, 1000} {
		_, err := MakeUintType(size)
		require.EqualError(t, err, fmt.Sprintf("ABI validation failed: Bit size must be between 8 and 512 and divisible by 8, got %d", size))
		require.True(t, errors.Is(err, serr.ErrValidation))
	}
	for _, precision := range []uint16{0, 161, 1000} {
		_, err := MakeUfixedType(64, precision)
		require.ErrorContains(t, err, "Precision must be between 1 and 160")
	}
	_, err := MakeUfixedType(7, 10)
	require.ErrorContains(t, err, "Bit size must be between 8 and 512")
}

func TestTypeFromStringValid(t *testing.T) {
	partitiontest.PartitionTest(t)

	uint64Type, err := MakeUintType(64)
	require.NoError(t, err)
	ufixedType, err := MakeUfixedType(128, 10)
	require.NoError(t, err)
	nestedTuple, err := MakeTupleType([]Type{MakeBoolType(), MakeStringType()})
	require.NoError(t, err)
	outerTuple, err := MakeTupleType([]Type{
		uint64Type,
		MakeStaticArrayType(nestedTuple, 2),
		MakeDynamicArrayType(MakeAddressType()),
	})
	require.NoError(t, err)
	emptyTuple, err := MakeTupleType([]Type{})
	require.NoError(t, err)

	testcases := []struct {
		input    string
		expected Type
	}{
		{input: "uint64", expected: uint64Type},
		{input: "ufixed128x10", expected: ufixedType},
		{input: "byte", expected: MakeByteType()},
		{input: "bool", expected: MakeBoolType()},
		{input: "address", expected: MakeAddressType()},
		{input: "string", expected: MakeStringType()},
		{input: "uint64[]", expected: MakeDynamicArrayType(uint64Type)},
		{input: "uint64[0]", expected: MakeStaticArrayType(uint64Type, 0)},
		{input: "byte[32]", expected: MakeStaticArrayType(MakeByteType(), 32)},
		{input: "bool[3][]", expected: MakeDynamicArrayType(MakeStaticArrayType(MakeBoolType(), 3))},
		{input: "()", expected: emptyTuple},
		{input: "(uint64,(bool,string)[2],address[])", expected: outerTuple},
	}
	for _, testcase := range testcases {
		t.Run(fmt.Sprintf("TypeOf test %s", testcase.input), func(t *testing.T) {
			actual, err := TypeOf(testcase.input)
			require.NoError(t, err)
			require.True(t, testcase.expected.Equal(actual), "%s != %s", testcase.expected, actual)
			require.Equal(t, testcase.input, actual.String())
		})
	}
}

func TestTypeFromStringInvalid(t *testing.T) {
	partitiontest.PartitionTest(t)

	testcases := []struct {
		input string
		err   string
	}{
		{input: "uint", err: "ABI validation failed: Malformed uint string: uint"},
		{input: "uint7", err: "ABI validation failed: Bit size must be between 8 and 512 and divisible by 8, got 7"},
		{input: "uint520", err: "ABI validation failed: Bit size must be between 8 and 512 and divisible by 8, got 520"},
		{input: "uint8x", err: "ABI validation failed: Malformed uint string: uint8x"},
		{input: "ufixed8x0", err: "ABI validation failed: Malformed ufixed type: ufixed8x0"},
		{input: "ufixed8", err: "ABI validation failed: Malformed ufixed type: ufixed8"},
		{input: "ufixed64x161", err: "ABI validation failed: Precision must be between 1 and 160, got 161"},
		{input: "uint64[01]", err: "ABI validation failed: Malformed static array string: uint64[01]"},
		{input: "uint64[-1]", err: "ABI validation failed: Malformed static array string: uint64[-1]"},
		{input: "uint64[70000]", err: "ABI validation failed: Malformed static array string: uint64[70000]"},
		{input: "int", err: "ABI validation failed: Cannot convert string 'int' to an ABI type"},
		{input: "(,uint8)", err: "ABI validation failed: Tuple name should not start with comma"},
		{input: "(uint8,)", err: "ABI validation failed: Tuple name should not start with comma"},
		{input: "(uint8,,bool)", err: "ABI validation failed: tuple string should not have consecutive commas"},
		{input: "((uint8)", err: "ABI validation failed: Tuple string has mismatched parentheses: (uint8"},
		{input: "(uint8))", err: "ABI validation failed: Tuple string has mismatched parentheses: uint8)"},
		{input: "(uint8,bool", err: "ABI validation failed: Cannot convert string '(uint8,bool' to an ABI type"},
	}
	for _, testcase := range testcases {
		t.Run(fmt.Sprintf("TypeOf error %s", testcase.input), func(t *testing.T) {
			_, err := TypeOf(testcase.input)
			require.EqualError(t, err, testcase.err)
			require.True(t, errors.Is(err, serr.ErrValidation))
		})
	}
}

func TestParseTupleContent(t *testing.T) {
	partitiontest.PartitionTest(t)

	segs, err := parseTupleContent("uint8,(bool,(string,byte))[2],address")
	require.NoError(t, err)
	require.Equal(t, []string{"uint8", "(bool,(string,byte))[2]", "address"}, segs)

	segs, err = parseTupleContent("")
	require.NoError(t, err)
	require.Empty(t, segs)

	segs, err = parseTupleContent("(uint8)[],(bool)")
	require.NoError(t, err)
	require.Equal(t, []string{"(uint8)[]", "(bool)"}, segs)
}

func TestTypeOfCache(t *testing.T) {
	partitiontest.PartitionTest(t)

	const typeStr = "(uint32,string,bool[4])[]"
	var wg sync.WaitGroup
	results := make([]Type, 16)
	errs := make([]error, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = TypeOf(typeStr)
		}(i)
	}
	wg.Wait()
	for i, r := range results {
		require.NoError(t, errs[i])
		require.True(t, results[0].Equal(r))
		require.Equal(t, typeStr, r.String())
	}

	typeCache.RLock()
	_, cached := typeCache.types[typeStr]
	typeCache.RUnlock()
	require.True(t, cached)
}

func TestTypeIsDynamic(t *testing.T) {
	partitiontest.PartitionTest(t)

	dynamic := []string{"string", "uint8[]", "(uint8,string)", "(bool,(byte[],uint8))", "string[2]"}
	static := []string{"uint64", "byte", "bool", "address", "ufixed64x2", "bool[3]", "(uint8,(bool,address))", "()"}
	for _, s := range dynamic {
		typ, err := TypeOf(s)
		require.NoError(t, err)
		require.True(t, typ.IsDynamic(), s)
	}
	for _, s := range static {
		typ, err := TypeOf(s)
		require.NoError(t, err)
		require.False(t, typ.IsDynamic(), s)
	}
}

func TestTypeByteLen(t *testing.T) {
	partitiontest.PartitionTest(t)

	testcases := []struct {
		input    string
		expected int
	}{
		{"address", 32},
		{"byte", 1},
		{"bool", 1},
		{"uint256", 32},
		{"ufixed64x2", 8},
		{"bool[8]", 1},
		{"bool[9]", 2},
		{"uint16[3]", 6},
		{"(bool,bool,uint8,bool[9])", 4},
		{"(bool,uint8,bool)", 3},
		{"(bool,bool,bool,bool,bool,bool,bool,bool,bool)", 2},
		{"()", 0},
	}
	for _, testcase := range testcases {
		typ, err := TypeOf(testcase.input)
		require.NoError(t, err)
		size, err := typ.ByteLen()
		require.NoError(t, err)
		require.Equal(t, testcase.expected, size, testcase.input)
	}

	dynamic, err := TypeOf("uint8[]")
	require.NoError(t, err)
	_, err = dynamic.ByteLen()
	require.Error(t, err)
}

func TestStorageTypeOf(t *testing.T) {
	partitiontest.PartitionTest(t)

	for _, s := range []string{"AVMBytes", "AVMString", "AVMUint64"} {
		typ, err := StorageTypeOf(s)
		require.NoError(t, err)
		require.Equal(t, s, typ.String())
	}
	typ, err := StorageTypeOf("uint64")
	require.NoError(t, err)
	require.Equal(t, Uint, typ.TypeID())

	// the aliases are not part of the ABI grammar
	_, err = TypeOf("AVMBytes")
	require.Error(t, err)
}
