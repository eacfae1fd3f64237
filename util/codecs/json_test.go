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

package codecs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/algorand/go-algokit/test/partitiontest"
)

type testValue struct {
	Bool   bool
	Int    int
	String string
	hidden int
}

func TestIsDefaultValue(t *testing.T) {
	partitiontest.PartitionTest(t)

	a := require.New(t)

	v := testValue{Bool: true, String: "default"}
	def := testValue{Bool: true, String: "default"}

	objectValues, err := createValueMap(v)
	a.NoError(err)
	defaultValues, err := createValueMap(def)
	a.NoError(err)

	a.True(isDefaultValue("Bool", objectValues, defaultValues))
	a.True(isDefaultValue("Int", objectValues, defaultValues))
	a.True(isDefaultValue("String", objectValues, defaultValues))
	a.False(isDefaultValue("Missing", objectValues, defaultValues))
	a.False(isDefaultValue("Bool", objectValues, map[string]interface{}{}))
	a.NotContains(objectValues, "hidden")

	v.Int = 7
	objectValues, err = createValueMap(&v)
	a.NoError(err)
	a.False(isDefaultValue("Int", objectValues, defaultValues))
}

func TestSaveNonDefaultValues(t *testing.T) {
	partitiontest.PartitionTest(t)

	dir := t.TempDir()
	name := filepath.Join(dir, "obj.json")

	v := testValue{Bool: true, Int: 3, String: "default"}
	def := testValue{Bool: true, String: "default"}
	require.NoError(t, SaveNonDefaultValuesToFile(name, v, def, []string{"String"}, true))

	raw, err := os.ReadFile(name)
	require.NoError(t, err)
	require.Contains(t, string(raw), `"Int": 3`)
	require.Contains(t, string(raw), `"String": "default"`)
	require.NotContains(t, string(raw), `"Bool"`)

	var loaded testValue
	require.NoError(t, LoadObjectFromFile(name, &loaded))
	require.Equal(t, 3, loaded.Int)
	require.Equal(t, "default", loaded.String)

	_, err = NonDefaultValues(5, def, nil)
	require.Error(t, err)
}
