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
	"bytes"
	"fmt"
	"sort"
	"strings"
)

// sourceMapVersion is currently 3.
// Refer to the full specs of sourcemap here: https://sourcemaps.info/spec.html
const sourceMapVersion = 3
const b64table string = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

// SourceMap contains details from the source to assembly process.
// Currently contains the map between TEAL source line to
// the assembled bytecode position and details about
// the template variables contained in the source file.
type SourceMap struct {
	Version    int      `json:"version"`
	File       string   `json:"file,omitempty"`
	SourceRoot string   `json:"sourceRoot,omitempty"`
	Sources    []string `json:"sources"`
	Names      []string `json:"names"`
	// Mapping field is deprecated. Use `Mappings` field instead.
	Mapping  string `json:"mapping,omitempty"`
	Mappings string `json:"mappings"`
}

// GetSourceMap returns a struct containing details about
// the assembled file and encoded mappings to the source file.
func GetSourceMap(sourceNames []string, offsetToLine map[int]int) SourceMap {
	maxPC := 0
	for pc := range offsetToLine {
		if pc > maxPC {
			maxPC = pc
		}
	}

	// Array where index is the PC and value is the line for `mappings` field.
	prevSourceLine := 0
	pcToLine := make([]string, maxPC+1)
	for pc := range pcToLine {
		if line, ok := offsetToLine[pc]; ok {
			pcToLine[pc] = MakeSourceMapLine(0, 0, line-prevSourceLine, 0)
			prevSourceLine = line
		} else {
			pcToLine[pc] = ""
		}
	}

	return SourceMap{
		Version:  sourceMapVersion,
		Sources:  sourceNames,
		Names:    []string{}, // TEAL code does not generate any names.
		Mappings: strings.Join(pcToLine, ";"),
	}
}

// intToVLQ writes out value to bytes.Buffer
func intToVLQ(v int, buf *bytes.Buffer) {
	v <<= 1
	if v < 0 {
		v = -v
		v |= 1
	}
	for v >= 32 {
		buf.WriteByte(b64table[32|(v&31)])
		v >>= 5
	}
	buf.WriteByte(b64table[v])
}

// vlqToInts decodes one mapping segment into its fields.
func vlqToInts(segment string) ([]int, error) {
	var out []int
	value, shift := 0, 0
	for i := 0; i < len(segment); i++ {
		digit := strings.IndexByte(b64table, segment[i])
		if digit < 0 {
			return nil, fmt.Errorf("invalid base64 character %q in source map segment %q", segment[i], segment)
		}
		value += (digit & 31) << shift
		if digit&32 != 0 {
			shift += 5
			continue
		}
		if value&1 != 0 {
			out = append(out, -(value >> 1))
		} else {
			out = append(out, value>>1)
		}
		value, shift = 0, 0
	}
	if shift != 0 {
		return nil, fmt.Errorf("truncated source map segment %q", segment)
	}
	return out, nil
}

// MakeSourceMapLine creates source map mapping's line entry
func MakeSourceMapLine(tcol, sindex, sline, scol int) string {
	buf := bytes.NewBuffer(nil)
	intToVLQ(tcol, buf)
	intToVLQ(sindex, buf)
	intToVLQ(sline, buf)
	intToVLQ(scol, buf)
	return buf.String()
}

// PCToLine decodes the mappings into a table from program counter to the
// zero-based source line that produced it.
func (sm SourceMap) PCToLine() (map[int]int, error) {
	mappings := sm.Mappings
	if mappings == "" {
		mappings = sm.Mapping
	}
	out := make(map[int]int)
	line := 0
	for pc, segment := range strings.Split(mappings, ";") {
		if segment == "" {
			continue
		}
		// a generated line may hold several comma separated segments; the
		// first one locates the opcode
		first, _, _ := strings.Cut(segment, ",")
		fields, err := vlqToInts(first)
		if err != nil {
			return nil, err
		}
		if len(fields) < 3 {
			return nil, fmt.Errorf("source map segment %q at pc %d has %d fields", first, pc, len(fields))
		}
		line += fields[2]
		out[pc] = line
	}
	return out, nil
}

// ProgramSourceMap answers pc to line queries for one compiled program.
type ProgramSourceMap struct {
	pcToLine map[int]int
	pcs      []int
}

// NewProgramSourceMap decodes sm.
func NewProgramSourceMap(sm SourceMap) (*ProgramSourceMap, error) {
	pcToLine, err := sm.PCToLine()
	if err != nil {
		return nil, err
	}
	pcs := make([]int, 0, len(pcToLine))
	for pc := range pcToLine {
		pcs = append(pcs, pc)
	}
	sort.Ints(pcs)
	return &ProgramSourceMap{pcToLine: pcToLine, pcs: pcs}, nil
}

// LineForPC returns the one-based source line for pc. When pc is not the start
// of an opcode, the closest preceding mapped pc is used.
func (p *ProgramSourceMap) LineForPC(pc int) (int, bool) {
	if line, ok := p.pcToLine[pc]; ok {
		return line + 1, true
	}
	i := sort.SearchInts(p.pcs, pc)
	if i == 0 {
		return 0, false
	}
	return p.pcToLine[p.pcs[i-1]] + 1, true
}

// PCsForLine returns the program counters generated from the one-based line.
func (p *ProgramSourceMap) PCsForLine(line int) []int {
	var out []int
	for _, pc := range p.pcs {
		if p.pcToLine[pc]+1 == line {
			out = append(out, pc)
		}
	}
	return out
}
