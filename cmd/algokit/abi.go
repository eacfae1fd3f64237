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

	"github.com/spf13/cobra"

	"github.com/algorand/go-algokit/data/abi"
)

func init() {
	abiCmd.AddCommand(abiEncodeCmd)
	abiCmd.AddCommand(abiDecodeCmd)
	abiCmd.AddCommand(abiSelectorCmd)
}

var abiCmd = &cobra.Command{
	Use:   "abi",
	Short: "Encode and decode ABI values",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.HelpFunc()(cmd, args)
	},
}

var abiEncodeCmd = &cobra.Command{
	Use:   "encode <type> <json value>",
	Short: "Print the hex encoding of a JSON value",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		t := parseType(args[0])
		value, err := t.UnmarshalFromJSON([]byte(args[1]))
		if err != nil {
			fail("Cannot read %s value: %v", t, err)
		}
		encoded, err := t.Encode(value)
		if err != nil {
			fail("Cannot encode %s value: %v", t, err)
		}
		fmt.Println(hex.EncodeToString(encoded))
	},
}

var abiDecodeCmd = &cobra.Command{
	Use:   "decode <type> <hex>",
	Short: "Print an encoded value as JSON",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		t := parseType(args[0])
		encoded, err := hex.DecodeString(args[1])
		if err != nil {
			fail("Cannot decode hex: %v", err)
		}
		value, err := t.Decode(encoded)
		if err != nil {
			fail("Cannot decode %s value: %v", t, err)
		}
		out, err := t.MarshalToJSON(value)
		if err != nil {
			fail("Cannot write %s value: %v", t, err)
		}
		fmt.Println(string(out))
	},
}

var abiSelectorCmd = &cobra.Command{
	Use:   "selector <method signature>",
	Short: "Print the 4 byte selector of a method",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		method, err := abi.MethodFromSignature(args[0])
		if err != nil {
			fail("Cannot parse method signature: %v", err)
		}
		fmt.Println(hex.EncodeToString(method.GetSelector()))
	},
}

func parseType(s string) abi.Type {
	t, err := abi.TypeOf(s)
	if err != nil {
		fail("Cannot parse ABI type %s: %v", s, err)
	}
	return t
}
