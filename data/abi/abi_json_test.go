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
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/algorand/go-algokit/test/partitiontest"
)

func TestJSONRoundTrip(t *testing.T) {
	partitiontest.PartitionTest(t)

	addr := testAddress(t)
	testcases := []struct {
		typeStr string
		value   interface{}
		json    string
	}{
		{"uint64", uint64(42), `42`},
		{"ufixed64x2", uint64(12345), `123.45`},
		{"bool", true, `true`},
		{"byte", byte(7), `7`},
		{"address", addr, `"` + testAddressString + `"`},
		{"string", "hello", `"hello"`},
		{"uint16[]", []interface{}{uint16(1), uint16(2)}, `[1,2]`},
		{"(uint8,string,bool[2])", []interface{}{uint8(1), "x", []interface{}{true, false}}, `[1,"x",[true,false]]`},
		{"byte[2]", []interface{}{byte(1), byte(2)}, `"AQI="`},
	}
	for _, testcase := range testcases {
		t.Run(testcase.typeStr, func(t *testing.T) {
			typ, err := TypeOf(testcase.typeStr)
			require.NoError(t, err)

			encoded, err := typ.MarshalToJSON(testcase.value)
			require.NoError(t, err)
			require.Equal(t, testcase.json, string(encoded))

			decoded, err := typ.UnmarshalFromJSON(encoded)
			require.NoError(t, err)
			require.Equal(t, testcase.value, decoded)
		})
	}
}

func TestUnmarshalFromJSONErrors(t *testing.T) {
	partitiontest.PartitionTest(t)

	ufixed, err := TypeOf("ufixed64x2")
	require.NoError(t, err)
	_, err = ufixed.UnmarshalFromJSON([]byte(`1.234`))
	require.ErrorContains(t, err, "precision out of range")

	uint8Type, err := TypeOf("uint8")
	require.NoError(t, err)
	_, err = uint8Type.UnmarshalFromJSON([]byte(`256`))
	require.Error(t, err)

	uint256, err := TypeOf("uint256")
	require.NoError(t, err)
	decoded, err := uint256.UnmarshalFromJSON([]byte(`115792089237316195423570985008687907853269984665640564039457584007913129639935`))
	require.NoError(t, err)
	require.Equal(t, 256, decoded.(*big.Int).BitLen())

	staticArray, err := TypeOf("bool[2]")
	require.NoError(t, err)
	_, err = staticArray.UnmarshalFromJSON([]byte(`[true]`))
	require.Error(t, err)

	address := MakeAddressType()
	_, err = address.UnmarshalFromJSON([]byte(`"MO2H6ZU47Q36GJ6GVHUKGEBEQINN7ZWVACMWZQGIYUOE3RBSRVYHV4ACJA"`))
	require.Error(t, err)
}
