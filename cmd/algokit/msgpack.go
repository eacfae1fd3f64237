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
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/algorand/go-algokit/protocol/msgpjson"
)

var base64Output bool

func init() {
	msgpackCmd.AddCommand(msgpackEncodeCmd)
	msgpackCmd.AddCommand(msgpackDecodeCmd)
	msgpackCmd.AddCommand(msgpackModelsCmd)

	msgpackEncodeCmd.Flags().BoolVarP(&base64Output, "base64", "b", false, "Print base64 instead of hex")
}

var msgpackCmd = &cobra.Command{
	Use:   "msgpack",
	Short: "Convert node models between JSON and msgpack",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.HelpFunc()(cmd, args)
	},
}

var msgpackEncodeCmd = &cobra.Command{
	Use:   "encode <model> <json file>",
	Short: "Encode a JSON model as msgpack (use - for stdin)",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		model := parseModel(args[0])
		data, err := readFile(args[1])
		if err != nil {
			fail("Cannot read %s: %v", args[1], err)
		}
		if base64Output {
			out, err := msgpjson.EncodeJSONToBase64Msgpack(model, string(data))
			if err != nil {
				fail("Cannot encode %s: %v", model, err)
			}
			fmt.Println(out)
			return
		}
		out, err := msgpjson.EncodeJSONToMsgpack(model, string(data))
		if err != nil {
			fail("Cannot encode %s: %v", model, err)
		}
		fmt.Printf("%x\n", out)
	},
}

var msgpackDecodeCmd = &cobra.Command{
	Use:   "decode <model> <msgpack file>",
	Short: "Decode a msgpack model as JSON (use - for stdin)",
	Long:  "Decode a msgpack model as JSON. Input that is valid base64 text is decoded first.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		model := parseModel(args[0])
		data, err := readFile(args[1])
		if err != nil {
			fail("Cannot read %s: %v", args[1], err)
		}
		if raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(string(data))); err == nil {
			data = raw
		}
		out, err := msgpjson.DecodeMsgpackToJSON(model, data)
		if err != nil {
			fail("Cannot decode %s: %v", model, err)
		}
		fmt.Println(out)
	},
}

var msgpackModelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the supported models",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, m := range msgpjson.SupportedModels() {
			fmt.Println(m)
		}
	},
}

func parseModel(s string) msgpjson.ModelType {
	m, ok := msgpjson.ParseModelType(s)
	if !ok {
		fail("Unknown model type: %s", s)
	}
	return m
}
