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

package msgpjson

import (
	"sort"
	"strconv"
	"strings"

	"github.com/algorand/msgp/msgp"
	"github.com/tidwall/gjson"

	"github.com/algorand/go-algokit/serr"
)

// SortAndFilterJSON rewrites a JSON document with object keys sorted and
// zero-valued members (null, false, 0, "", [] and {}) removed at every
// depth. Array elements are kept even when zero.
func SortAndFilterJSON(jsonStr string) (string, error) {
	if !gjson.Valid(jsonStr) {
		return "", serr.Decodingf("invalid JSON document")
	}
	var sb strings.Builder
	writeSorted(&sb, gjson.Parse(jsonStr))
	return sb.String(), nil
}

type member struct {
	key   gjson.Result
	value string
}

// writeSorted reports whether the written value is a zero value.
func writeSorted(sb *strings.Builder, v gjson.Result) bool {
	switch {
	case v.IsObject():
		var members []member
		v.ForEach(func(key, value gjson.Result) bool {
			var child strings.Builder
			if !writeSorted(&child, value) {
				members = append(members, member{key: key, value: child.String()})
			}
			return true
		})
		sort.SliceStable(members, func(i, j int) bool { return members[i].key.Str < members[j].key.Str })
		sb.WriteByte('{')
		for i, m := range members {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(m.key.Raw)
			sb.WriteByte(':')
			sb.WriteString(m.value)
		}
		sb.WriteByte('}')
		return len(members) == 0

	case v.IsArray():
		items := v.Array()
		sb.WriteByte('[')
		for i, item := range items {
			if i > 0 {
				sb.WriteByte(',')
			}
			writeSorted(sb, item)
		}
		sb.WriteByte(']')
		return len(items) == 0
	}

	sb.WriteString(v.Raw)
	switch v.Type {
	case gjson.Null, gjson.False:
		return true
	case gjson.String:
		return v.Str == ""
	case gjson.Number:
		f, err := strconv.ParseFloat(v.Raw, 64)
		return err == nil && f == 0
	}
	return false
}

// EncodeJSONValue appends the msgpack form of v to buf. Object members are
// written in document order. Arrays whose elements are all integers in
// [0, 255] are written as bin.
func EncodeJSONValue(buf []byte, v gjson.Result) ([]byte, error) {
	switch v.Type {
	case gjson.Null:
		return msgp.AppendNil(buf), nil
	case gjson.False:
		return msgp.AppendBool(buf, false), nil
	case gjson.True:
		return msgp.AppendBool(buf, true), nil
	case gjson.String:
		return msgp.AppendString(buf, v.Str), nil
	case gjson.Number:
		return appendNumber(buf, v.Raw)
	}

	switch {
	case v.IsArray():
		items := v.Array()
		if bin, ok := smallUints(items); ok {
			return msgp.AppendBytes(buf, bin), nil
		}
		buf = msgp.AppendArrayHeader(buf, uint32(len(items)))
		for _, item := range items {
			var err error
			buf, err = EncodeJSONValue(buf, item)
			if err != nil {
				return nil, err
			}
		}
		return buf, nil

	case v.IsObject():
		var count uint32
		v.ForEach(func(_, _ gjson.Result) bool {
			count++
			return true
		})
		buf = msgp.AppendMapHeader(buf, count)
		var err error
		v.ForEach(func(key, value gjson.Result) bool {
			buf = msgp.AppendString(buf, key.Str)
			buf, err = EncodeJSONValue(buf, value)
			return err == nil
		})
		if err != nil {
			return nil, err
		}
		return buf, nil
	}
	return nil, &MsgpackWriteError{Msg: "unsupported JSON value " + v.Raw}
}

func appendNumber(buf []byte, raw string) ([]byte, error) {
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		if i < 0 {
			return msgp.AppendInt64(buf, i), nil
		}
		return msgp.AppendUint64(buf, uint64(i)), nil
	}
	if u, err := strconv.ParseUint(raw, 10, 64); err == nil {
		return msgp.AppendUint64(buf, u), nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, &MsgpackWriteError{Msg: "unsupported number " + raw}
	}
	return msgp.AppendFloat64(buf, f), nil
}

func smallUints(items []gjson.Result) ([]byte, bool) {
	out := make([]byte, 0, len(items))
	for _, item := range items {
		if item.Type != gjson.Number {
			return nil, false
		}
		u, err := strconv.ParseUint(item.Raw, 10, 8)
		if err != nil {
			return nil, false
		}
		out = append(out, byte(u))
	}
	return out, true
}

// encodeCanonical is the generic JSON to msgpack path: sort, filter, encode.
func encodeCanonical(jsonStr string) ([]byte, error) {
	sorted, err := SortAndFilterJSON(jsonStr)
	if err != nil {
		return nil, err
	}
	return EncodeJSONValue(nil, gjson.Parse(sorted))
}
