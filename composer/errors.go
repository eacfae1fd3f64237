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

package composer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/algorand/go-algokit/data/basics"
	"github.com/algorand/go-algokit/data/transactions/logic"
	"github.com/algorand/go-algokit/serr"
)

var (
	logicErrorRegexp      = regexp.MustCompile(`.*transaction (?P<transaction_id>[A-Z2-7]{52}): logic eval error: (?P<message>.*)\. Details: .*pc=(?P<pc>[0-9]+).*`)
	innerLogicErrorRegexp = regexp.MustCompile(`inner tx (\d+) failed:.*?pc=([0-9]+)`)
	appIDRegexp           = regexp.MustCompile(`app=(\d+)`)
)

// snippetContext is the number of lines shown around a failing line.
const snippetContext = 3

// LogicError is an application program rejection reported by the node.
type LogicError struct {
	TxID  string
	AppID basics.AppIndex
	// PC is the program counter of the failure. For a failing inner
	// transaction it is the pc inside the inner program.
	PC int
	// Message is the reason the node gave.
	Message string
	// ErrorMessage is the message the contract declares for PC, if known.
	ErrorMessage string
	// Name names the application in the error text.
	Name string
	// Line is the one-based TEAL line of PC, 0 when unknown.
	Line int
	// Lines is the annotated source around Line.
	Lines []string
	// Raw is the full node message.
	Raw string
}

func (e *LogicError) Error() string {
	name := e.Name
	if name == "" {
		name = "application"
	}
	msg := e.Message
	if e.ErrorMessage != "" {
		msg = e.ErrorMessage
	}
	out := fmt.Sprintf("Runtime error when executing %s (appId: %d) in transaction %s: %s", name, e.AppID, e.TxID, msg)
	if len(e.Lines) > 0 {
		out += "\n" + strings.Join(e.Lines, "\n")
	}
	return out
}

// Is makes the error match serr.ErrLogic.
func (e *LogicError) Is(target error) bool {
	return target == serr.ErrLogic
}

// ParseLogicError extracts a LogicError from a node message. The app id is
// only set when the message names it.
func ParseLogicError(msg string) (*LogicError, bool) {
	m := logicErrorRegexp.FindStringSubmatch(msg)
	if m == nil {
		return nil, false
	}
	pcText := m[logicErrorRegexp.SubexpIndex("pc")]
	if inner := innerLogicErrorRegexp.FindStringSubmatch(msg); inner != nil {
		pcText = inner[2]
	}
	pc, err := strconv.Atoi(pcText)
	if err != nil {
		return nil, false
	}

	le := &LogicError{
		TxID:    m[logicErrorRegexp.SubexpIndex("transaction_id")],
		Message: m[logicErrorRegexp.SubexpIndex("message")],
		PC:      pc,
		Raw:     msg,
	}
	if app := appIDRegexp.FindStringSubmatch(msg); app != nil {
		id, err := strconv.ParseUint(app[1], 10, 64)
		if err == nil {
			le.AppID = basics.AppIndex(id)
		}
	}
	return le, true
}

// AppDebugInfo is what a Composer uses to point a LogicError at source.
type AppDebugInfo struct {
	// Name is the contract name used in error messages.
	Name string
	// Program is the approval bytecode running on chain. It is needed when
	// SourceInfo counts pcs without the constant blocks.
	Program []byte
	// Source is the TEAL source of the approval program.
	Source string
	// SourceMap maps pcs of Program to lines of Source.
	SourceMap *logic.ProgramSourceMap
	// SourceInfo is the ARC-56 pc information of the approval program.
	SourceInfo *logic.ProgramSourceInfo
}

func (info AppDebugInfo) annotate(le *LogicError) {
	if info.Name != "" {
		le.Name = info.Name
	}
	if info.SourceMap != nil {
		if line, ok := info.SourceMap.LineForPC(le.PC); ok {
			le.Line = line
		}
	}
	if info.SourceInfo != nil {
		if psi, ok := info.SourceInfo.Lookup(le.PC, info.Program); ok {
			le.ErrorMessage = psi.ErrorMessage
			if le.Line == 0 && psi.Teal > 0 {
				le.Line = psi.Teal
			}
		}
	}
	if le.Line > 0 && info.Source != "" {
		le.Lines = logic.Snippet(info.Source, le.Line, snippetContext)
	}
}

// exposeLogicError turns a node error that reports a program rejection into a
// LogicError annotated with whatever debug information the Composer holds.
// Other errors are returned unchanged.
func (c *Composer) exposeLogicError(err error) error {
	if err == nil {
		return nil
	}
	le, ok := ParseLogicError(err.Error())
	if !ok {
		return err
	}
	if le.AppID == 0 {
		for _, t := range c.built {
			if t.Txn.ID().String() == le.TxID {
				le.AppID = t.Txn.ApplicationID
				break
			}
		}
	}
	if info, ok := c.debugInfo[le.AppID]; ok {
		info.annotate(le)
	}
	return le
}
