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

package logic

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/algorand/go-algokit/test/partitiontest"
)

func TestMakeSourceMapLine(t *testing.T) {
	partitiontest.PartitionTest(t)

	require.Equal(t, "AAAA", MakeSourceMapLine(0, 0, 0, 0))
	require.Equal(t, "AACA", MakeSourceMapLine(0, 0, 1, 0))
	require.Equal(t, "AAHA", MakeSourceMapLine(0, 0, -3, 0))
	require.Equal(t, "AAgBA", MakeSourceMapLine(0, 0, 16, 0))
}

func TestVLQRoundTrip(t *testing.T) {
	partitiontest.PartitionTest(t)

	for _, v := range []int{0, 1, -1, 15, 16, -16, 1000, -123456} {
		fields, err := vlqToInts(MakeSourceMapLine(0, 0, v, 0))
		require.NoError(t, err)
		require.Equal(t, []int{0, 0, v, 0}, fields)
	}

	_, err := vlqToInts("A!")
	require.Error(t, err)
	_, err = vlqToInts("g")
	require.Error(t, err)
}

func TestGetSourceMapPCToLine(t *testing.T) {
	partitiontest.PartitionTest(t)

	offsetToLine := map[int]int{0: 0, 1: 1, 4: 2, 7: 5, 9: 3}
	sm := GetSourceMap([]string{"approval.teal"}, offsetToLine)
	require.Equal(t, 3, sm.Version)
	require.Equal(t, []string{"approval.teal"}, sm.Sources)
	require.Equal(t, "AAAA;AACA;;;AACA;;;AAGA;;AAFA", sm.Mappings)

	decoded, err := sm.PCToLine()
	require.NoError(t, err)
	require.Equal(t, offsetToLine, decoded)
}

func TestProgramSourceMap(t *testing.T) {
	partitiontest.PartitionTest(t)

	sm := GetSourceMap([]string{"x.teal"}, map[int]int{1: 1, 4: 2, 7: 5})
	psm, err := NewProgramSourceMap(sm)
	require.NoError(t, err)

	line, ok := psm.LineForPC(4)
	require.True(t, ok)
	require.Equal(t, 3, line)

	// inside the immediates of the opcode at pc 4
	line, ok = psm.LineForPC(5)
	require.True(t, ok)
	require.Equal(t, 3, line)

	_, ok = psm.LineForPC(0)
	require.False(t, ok)

	require.Equal(t, []int{7}, psm.PCsForLine(6))
	require.Empty(t, psm.PCsForLine(4))
}

func TestDeprecatedMappingField(t *testing.T) {
	partitiontest.PartitionTest(t)

	sm := SourceMap{Version: 3, Mapping: "AAAA;AACA"}
	decoded, err := sm.PCToLine()
	require.NoError(t, err)
	require.Equal(t, map[int]int{0: 0, 1: 1}, decoded)

	sm = SourceMap{Version: 3, Mappings: "AA"}
	_, err = sm.PCToLine()
	require.Error(t, err)
}
