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

package logic

import (
	"fmt"
	"strings"
)

// ErrorMarker is appended to the failing line of a snippet.
const ErrorMarker = "\t<-- Error"

// Snippet returns the lines of source within context lines of the one-based
// line, each prefixed with its number, and marks line itself.
func Snippet(source string, line int, context int) []string {
	lines := strings.Split(strings.TrimRight(source, "\n"), "\n")
	if source == "" || line < 1 || line > len(lines) {
		return nil
	}
	start := max(line-1-context, 0)
	end := min(line+context, len(lines))

	out := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		entry := fmt.Sprintf("%4d | %s", i+1, lines[i])
		if i+1 == line {
			entry += ErrorMarker
		}
		out = append(out, entry)
	}
	return out
}

// PCSourceInfo maps a set of program counters to a TEAL line and, when the
// compiler knows it, the error message the program raises there.
type PCSourceInfo struct {
	PC           []int  `json:"pc"`
	ErrorMessage string `json:"errorMessage,omitempty"`
	Teal         int    `json:"teal,omitempty"`
	Source       string `json:"source,omitempty"`
}

// PCOffsetMethod tells how the program counters in a ProgramSourceInfo relate
// to the program that is running on chain.
type PCOffsetMethod string

const (
	// PCOffsetNone means the pcs are those of the running program.
	PCOffsetNone PCOffsetMethod = "none"
	// PCOffsetCblocks means the pcs were computed without the leading
	// constant blocks, which template substitution may resize.
	PCOffsetCblocks PCOffsetMethod = "cblocks"
)

// ProgramSourceInfo is the debugging information a contract description ships
// for one of its programs.
type ProgramSourceInfo struct {
	SourceInfo     []PCSourceInfo `json:"sourceInfo"`
	PCOffsetMethod PCOffsetMethod `json:"pcOffsetMethod"`
}

// Lookup finds the entry for pc. program is the running bytecode and is only
// needed for the cblocks offset method.
func (psi ProgramSourceInfo) Lookup(pc int, program []byte) (PCSourceInfo, bool) {
	if psi.PCOffsetMethod == PCOffsetCblocks && len(program) > 0 {
		pc -= ConstantBlockOffset(program)
	}
	if pc <= 0 {
		return PCSourceInfo{}, false
	}
	for _, info := range psi.SourceInfo {
		for _, p := range info.PC {
			if p == pc {
				return info, true
			}
		}
	}
	return PCSourceInfo{}, false
}

const (
	intcblockOp  = 0x20
	bytecblockOp = 0x26
)

// ConstantBlockOffset returns the pc just past the intcblock/bytecblock
// prologue of program, or 0 if it has none.
func ConstantBlockOffset(program []byte) int {
	if len(program) == 0 {
		return 0
	}
	i := 1 // skip version byte
	n := len(program)
	bytecOff, intcOff := -1, -1

	for i < n {
		op := program[i]
		i++
		if op != bytecblockOp && op != intcblockOp {
			break
		}
		if i >= n {
			break
		}
		count := int(program[i])
		i++
		for j := 0; j < count; j++ {
			if op == bytecblockOp {
				if i >= n {
					break
				}
				elemLen := int(program[i])
				i += 1 + min(elemLen, n-i)
			} else {
				for i < n {
					b := program[i]
					i++
					if b&0x80 == 0 {
						break
					}
				}
			}
		}
		if op == bytecblockOp {
			bytecOff = i
		} else {
			intcOff = i
		}
		if i >= n {
			break
		}
		if next := program[i]; next != bytecblockOp && next != intcblockOp {
			break
		}
	}
	return max(bytecOff, intcOff, 0)
}
