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
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/algorand/go-algokit/data/transactions"
	"github.com/algorand/go-algokit/protocol"
)

func init() {
	txnCmd.AddCommand(txnIDCmd)
	txnCmd.AddCommand(txnDecodeCmd)
}

var txnCmd = &cobra.Command{
	Use:   "txn",
	Short: "Inspect msgpack encoded transactions",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.HelpFunc()(cmd, args)
	},
}

var txnIDCmd = &cobra.Command{
	Use:   "id <file>",
	Short: "Print the id of a transaction (use - for stdin)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		tx := loadTransaction(args[0])
		fmt.Println(tx.ID().String())
	},
}

var txnDecodeCmd = &cobra.Command{
	Use:   "decode <file>",
	Short: "Print a transaction as JSON (use - for stdin)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		tx := loadTransaction(args[0])
		os.Stdout.Write(protocol.EncodeJSON(&tx))
		fmt.Println()
	},
}

// loadTransaction accepts a transaction with or without the TX prefix.
func loadTransaction(filename string) transactions.Transaction {
	data, err := readFile(filename)
	if err != nil {
		fail("Cannot read %s: %v", filename, err)
	}
	tx, err := transactions.DecodeTransaction(data)
	if err != nil {
		fail("Cannot decode transaction: %v", err)
	}
	return tx
}
