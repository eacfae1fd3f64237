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

package serr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/algorand/go-algokit/test/partitiontest"
)

func TestKinds(t *testing.T) {
	partitiontest.PartitionTest(t)

	err := Validationf("fee %d too high", 5)
	require.ErrorIs(t, err, ErrValidation)
	require.NotErrorIs(t, err, ErrDecoding)
	require.Equal(t, "fee 5 too high", err.Error())
	require.Equal(t, ErrValidation, KindOf(err))

	wrapped := fmt.Errorf("building: %w", err)
	require.ErrorIs(t, wrapped, ErrValidation)

	require.Nil(t, KindOf(errors.New("plain")))
}

func TestWrap(t *testing.T) {
	partitiontest.PartitionTest(t)

	inner := errors.New("unexpected EOF")
	err := Wrap(ErrDecoding, inner, "transaction")
	require.ErrorIs(t, err, ErrDecoding)
	require.ErrorIs(t, err, inner)
	require.Equal(t, "transaction: unexpected EOF", err.Error())

	require.Nil(t, Wrap(ErrDecoding, nil, "x"))
}

func TestExtend(t *testing.T) {
	partitiontest.PartitionTest(t)

	err := Extend(nil, "round", 7)
	require.Equal(t, "round=7", err.Error())

	base := Validation("bad group", "size", 17)
	ext := Extend(base, "index", 3)
	var se *Error
	require.ErrorAs(t, ext, &se)
	require.Equal(t, 17, se.Attrs["size"])
	require.Equal(t, 3, se.Attrs["index"])

	plain := errors.New("boom")
	ext = Extend(plain, "k", "v")
	require.ErrorIs(t, ext, plain)
	require.Equal(t, "boom", ext.Error())
}
