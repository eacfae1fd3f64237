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

package partitiontest

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPartitionSkipsOtherPartitions(t *testing.T) {
	t.Setenv("PARTITION_TOTAL", "1")
	t.Setenv("PARTITION_ID", "0")
	PartitionTest(t)

	// every name lands in partition 0 when there is a single partition
	require.Equal(t, uint64(0), stringToUint64("x")%1)
	require.NotEqual(t, stringToUint64("a"), stringToUint64("b"))
}
