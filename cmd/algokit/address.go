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

package main

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/algorand/go-algokit/data/basics"
)

var (
	msigVersion   uint8
	msigThreshold uint8
)

func init() {
	addressCmd.AddCommand(addressEncodeCmd)
	addressCmd.AddCommand(addressDecodeCmd)
	addressCmd.AddCommand(addressAppCmd)
	addressCmd.AddCommand(addressMultisigCmd)

	addressMultisigCmd.Flags().Uint8VarP(&msigVersion, "version", "v", 1, "Multisig version")
	addressMultisigCmd.Flags().Uint8VarP(&msigThreshold, "threshold", "t", 1, "Number of signatures required")
}

var addressCmd = &cobra.Command{
	Use:   "address",
	Short: "Encode, decode and derive addresses",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.HelpFunc()(cmd, args)
	},
}

var addressEncodeCmd = &cobra.Command{
	Use:   "encode <hex public key>",
	Short: "Print the address of a 32 byte public key",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		pk, err := hex.DecodeString(args[0])
		if err != nil {
			fail("Cannot decode public key: %v", err)
		}
		if len(pk) != len(basics.Address{}) {
			fail("Public key must be %d bytes, got %d", len(basics.Address{}), len(pk))
		}
		var addr basics.Address
		copy(addr[:], pk)
		fmt.Println(addr.String())
	},
}

var addressDecodeCmd = &cobra.Command{
	Use:   "decode <address>",
	Short: "Print the public key of an address in hex",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		addr, err := basics.UnmarshalChecksumAddress(args[0])
		if err != nil {
			fail("Cannot decode address: %v", err)
		}
		fmt.Println(hex.EncodeToString(addr[:]))
	},
}

var addressAppCmd = &cobra.Command{
	Use:   "app <app id>",
	Short: "Print the escrow address of an application",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			fail("Cannot parse app id: %v", err)
		}
		fmt.Println(basics.AppIndex(id).Address().String())
	},
}

var addressMultisigCmd = &cobra.Command{
	Use:   "multisig <address>...",
	Short: "Print the address of a multisig account",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		addrs := make([]basics.Address, len(args))
		for i, arg := range args {
			addr, err := basics.UnmarshalChecksumAddress(arg)
			if err != nil {
				fail("Cannot decode address %s: %v", arg, err)
			}
			addrs[i] = addr
		}
		addr, err := basics.MultisigAddress(msigVersion, msigThreshold, addrs)
		if err != nil {
			fail("Cannot derive multisig address: %v", err)
		}
		fmt.Println(addr.String())
	},
}
