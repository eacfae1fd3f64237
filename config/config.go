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
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/algorand/go-algokit/util/codecs"
)

// ConfigFilename is the name of the config.json file holding client settings
const ConfigFilename = "config.json"

// Environment variables that override the algod endpoint from the config file.
const (
	AlgodServerEnv = "ALGOD_SERVER"
	AlgodTokenEnv  = "ALGOD_TOKEN"
)

// Local holds the per-client settings: where the node lives and how the
// composer fills in what callers leave unset.
type Local struct {
	// Version tracks the current version of the defaults so we can migrate old -> new
	Version uint32

	// AlgodAddress is the base url of the algod REST API.
	AlgodAddress string
	// AlgodToken is sent as the X-Algo-API-Token header.
	AlgodToken string

	// DefaultValidityWindow is the number of rounds a transaction stays valid
	// when the caller does not specify one.
	DefaultValidityWindow uint64
	// LocalnetValidityWindow replaces DefaultValidityWindow on local networks.
	LocalnetValidityWindow uint64

	// MaxRoundsToWaitForConfirmation bounds how long Send waits for a transaction to be committed.
	MaxRoundsToWaitForConfirmation uint64

	// PopulateAppCallResources simulates app calls before signing to fill in foreign references.
	PopulateAppCallResources bool
	// CoverAppCallInnerTransactionFees raises app call fees to pay for inner transactions.
	CoverAppCallInnerTransactionFees bool

	// LogLevel is one of panic, fatal, error, warning, info, debug.
	LogLevel string

	// HTTPTimeout bounds a single REST request.
	HTTPTimeout time.Duration
}

var defaultLocal = Local{
	Version:                          1,
	AlgodAddress:                     "http://localhost:4001",
	AlgodToken:                       "",
	DefaultValidityWindow:            10,
	LocalnetValidityWindow:           1000,
	MaxRoundsToWaitForConfirmation:   5,
	PopulateAppCallResources:         true,
	CoverAppCallInnerTransactionFees: false,
	LogLevel:                         "warning",
	HTTPTimeout:                      30 * time.Second,
}

// GetDefaultLocal returns a copy of the current defaultLocal config
func GetDefaultLocal() Local {
	return defaultLocal
}

// LoadConfigFromDisk returns a Local config structure based on merging the defaults
// with settings loaded from the config file from the custom dir.  If the custom file
// cannot be loaded, the default config is returned (with the error from loading the
// custom file). A missing file is not an error.
func LoadConfigFromDisk(custom string) (c Local, err error) {
	c, err = loadConfigFromFile(filepath.Join(custom, ConfigFilename))
	if errors.Is(err, fs.ErrNotExist) {
		err = nil
	}
	c = c.withEnvironment()
	return
}

func loadConfigFromFile(configFile string) (Local, error) {
	c := defaultLocal
	err := codecs.LoadObjectFromFile(configFile, &c)
	if err != nil {
		return defaultLocal, err
	}
	return c, nil
}

func (cfg Local) withEnvironment() Local {
	if server, ok := os.LookupEnv(AlgodServerEnv); ok && server != "" {
		cfg.AlgodAddress = server
	}
	if token, ok := os.LookupEnv(AlgodTokenEnv); ok {
		cfg.AlgodToken = token
	}
	return cfg
}

// SaveToDisk writes the Local settings into a root/ConfigFilename file
func (cfg Local) SaveToDisk(root string) error {
	configpath := filepath.Join(root, ConfigFilename)
	filename := os.ExpandEnv(configpath)
	return cfg.SaveToFile(filename)
}

// SaveToFile saves the config to a specific filename, allowing overriding the default name
func (cfg Local) SaveToFile(filename string) error {
	var alwaysInclude []string
	alwaysInclude = append(alwaysInclude, "Version")
	return codecs.SaveNonDefaultValuesToFile(filename, cfg, defaultLocal, alwaysInclude, true)
}

// localnetGenesisIDs are the genesis ids of the development networks.
var localnetGenesisIDs = map[string]bool{
	"devnet-v1":    true,
	"sandnet-v1":   true,
	"dockernet-v1": true,
}

// IsLocalnet reports whether genesisID names a local development network.
func IsLocalnet(genesisID string) bool {
	return localnetGenesisIDs[genesisID]
}

// ValidityWindow returns the default validity window for the network with the given genesis id.
func (cfg Local) ValidityWindow(genesisID string) uint64 {
	if IsLocalnet(genesisID) {
		return cfg.LocalnetValidityWindow
	}
	return cfg.DefaultValidityWindow
}
