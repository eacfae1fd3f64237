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

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/algorand/go-algokit/protocol"
	"github.com/algorand/go-algokit/test/partitiontest"
)

func TestLoadMissingConfig(t *testing.T) {
	partitiontest.PartitionTest(t)

	t.Setenv(AlgodServerEnv, "")
	t.Setenv(AlgodTokenEnv, "")
	dir := t.TempDir()
	c, err := LoadConfigFromDisk(dir)
	require.NoError(t, err)
	require.Equal(t, GetDefaultLocal(), c)
}

func TestSaveLoadConfig(t *testing.T) {
	partitiontest.PartitionTest(t)

	t.Setenv(AlgodServerEnv, "")
	t.Setenv(AlgodTokenEnv, "")
	dir := t.TempDir()
	c := GetDefaultLocal()
	c.AlgodAddress = "http://example.com:8080"
	c.HTTPTimeout = 5 * time.Second
	require.NoError(t, c.SaveToDisk(dir))

	raw, err := os.ReadFile(filepath.Join(dir, ConfigFilename))
	require.NoError(t, err)
	require.Contains(t, string(raw), "Version")
	require.Contains(t, string(raw), "AlgodAddress")
	require.NotContains(t, string(raw), "DefaultValidityWindow")

	loaded, err := LoadConfigFromDisk(dir)
	require.NoError(t, err)
	require.Equal(t, c, loaded)
}

func TestBadConfigFile(t *testing.T) {
	partitiontest.PartitionTest(t)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFilename), []byte("{not json"), 0600))
	c, err := LoadConfigFromDisk(dir)
	require.Error(t, err)
	require.Equal(t, GetDefaultLocal().DefaultValidityWindow, c.DefaultValidityWindow)
}

func TestEnvironmentOverride(t *testing.T) {
	partitiontest.PartitionTest(t)

	t.Setenv(AlgodServerEnv, "http://node:4001")
	t.Setenv(AlgodTokenEnv, "secret")
	c, err := LoadConfigFromDisk(t.TempDir())
	require.NoError(t, err)
	require.Equal(t, "http://node:4001", c.AlgodAddress)
	require.Equal(t, "secret", c.AlgodToken)
}

func TestValidityWindow(t *testing.T) {
	partitiontest.PartitionTest(t)

	c := GetDefaultLocal()
	require.Equal(t, uint64(10), c.ValidityWindow("testnet-v1.0"))
	require.Equal(t, uint64(1000), c.ValidityWindow("dockernet-v1"))
	require.True(t, IsLocalnet("sandnet-v1"))
	require.False(t, IsLocalnet("mainnet-v1.0"))
}

func TestConsensusLimits(t *testing.T) {
	partitiontest.PartitionTest(t)

	p := Current()
	require.Equal(t, 16, p.MaxTxGroupSize)
	require.Equal(t, 8, p.MaxAppTotalTxnReferences)
	require.Equal(t, 4, p.MaxAppTxnAccounts)
	require.Equal(t, uint64(64), p.MaxGlobalSchemaEntries)
	require.Equal(t, p, ForVersion(protocol.ConsensusVersion("unknown")))
}
