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
	"encoding/base64"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/algorand/go-codec/codec"
	"github.com/algorand/msgp/msgp"
	"github.com/tidwall/gjson"

	"github.com/algorand/go-algokit/serr"
)

// nakedHandle decodes msgpack without a target type. Strings stay strings
// and bin stays []byte.
var nakedHandle *codec.MsgpackHandle

func init() {
	nakedHandle = new(codec.MsgpackHandle)
	nakedHandle.WriteExt = true
	nakedHandle.RawToString = true
}

// simulateRequestHandler writes a simulate request. The signed transactions
// of each group arrive as base64 msgpack and are spliced in unchanged.
type simulateRequestHandler struct{}

func (simulateRequestHandler) EncodeJSON(jsonStr string) ([]byte, error) {
	if !gjson.Valid(jsonStr) {
		return nil, serr.Decodingf("invalid JSON document")
	}
	root := gjson.Parse(jsonStr)
	if !root.IsObject() {
		return nil, &MsgpackWriteError{Msg: "Expected JSON object"}
	}

	var members []member
	values := make(map[string]gjson.Result)
	root.ForEach(func(key, value gjson.Result) bool {
		if _, dup := values[key.Str]; !dup {
			members = append(members, member{key: key})
		}
		values[key.Str] = value
		return true
	})
	sort.Slice(members, func(i, j int) bool { return members[i].key.Str < members[j].key.Str })

	buf := msgp.AppendMapHeader(nil, uint32(len(members)))
	for _, m := range members {
		var err error
		buf = msgp.AppendString(buf, m.key.Str)
		if m.key.Str == "txn-groups" {
			buf, err = encodeTxnGroups(buf, values[m.key.Str])
		} else {
			buf, err = EncodeJSONValue(buf, values[m.key.Str])
		}
		if err != nil {
			return nil, err
		}
	}
	return buf, nil
}

func (simulateRequestHandler) DecodeMsgpack([]byte) (string, error) {
	return "", &MsgpackWriteError{Msg: "Simulate request decoding is not supported"}
}

func encodeTxnGroups(buf []byte, groups gjson.Result) ([]byte, error) {
	if !groups.IsArray() {
		return EncodeJSONValue(buf, groups)
	}
	items := groups.Array()
	buf = msgp.AppendArrayHeader(buf, uint32(len(items)))
	for _, group := range items {
		if !group.IsObject() {
			var err error
			buf, err = EncodeJSONValue(buf, group)
			if err != nil {
				return nil, err
			}
			continue
		}

		var count uint32
		group.ForEach(func(_, _ gjson.Result) bool {
			count++
			return true
		})
		buf = msgp.AppendMapHeader(buf, count)
		var err error
		group.ForEach(func(key, value gjson.Result) bool {
			buf = msgp.AppendString(buf, key.Str)
			if key.Str == "txns" && value.IsArray() {
				buf, err = appendRawTxns(buf, value.Array())
			} else {
				buf, err = EncodeJSONValue(buf, value)
			}
			return err == nil
		})
		if err != nil {
			return nil, err
		}
	}
	return buf, nil
}

func appendRawTxns(buf []byte, txns []gjson.Result) ([]byte, error) {
	buf = msgp.AppendArrayHeader(buf, uint32(len(txns)))
	for i, txn := range txns {
		if txn.Type != gjson.String {
			var err error
			buf, err = EncodeJSONValue(buf, txn)
			if err != nil {
				return nil, err
			}
			continue
		}
		raw, err := base64.StdEncoding.DecodeString(txn.Str)
		if err != nil {
			return nil, serr.Wrap(serr.ErrDecoding, err, fmt.Sprintf("txns[%d] is not base64", i))
		}
		buf = append(buf, raw...)
	}
	return buf, nil
}

// simulateResponseHandler reads a simulate response without a schema, so
// fields the node adds in later versions survive the conversion.
type simulateResponseHandler struct{}

func (simulateResponseHandler) EncodeJSON(jsonStr string) ([]byte, error) {
	return encodeCanonical(jsonStr)
}

func (simulateResponseHandler) DecodeMsgpack(data []byte) (string, error) {
	var root interface{}
	err := codec.NewDecoderBytes(data, nakedHandle).Decode(&root)
	if err != nil {
		return "", serr.Wrap(serr.ErrDecoding, err, "invalid simulate response")
	}
	out, err := json.Marshal(nakedToJSON(root))
	if err != nil {
		return "", serr.Wrap(serr.ErrEncoding, err, "")
	}
	return string(out), nil
}

// nakedToJSON turns a naked decode result into values encoding/json can
// write: maps get string keys, binary payloads become base64.
func nakedToJSON(v interface{}) interface{} {
	switch x := v.(type) {
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(x))
		for k, val := range x {
			out[jsonKey(k)] = nakedToJSON(val)
		}
		return out
	case map[string]interface{}:
		out := make(map[string]interface{}, len(x))
		for k, val := range x {
			out[k] = nakedToJSON(val)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(x))
		for i, val := range x {
			out[i] = nakedToJSON(val)
		}
		return out
	case []byte:
		return base64.StdEncoding.EncodeToString(x)
	case codec.RawExt:
		return base64.StdEncoding.EncodeToString(x.Data)
	case *codec.RawExt:
		return base64.StdEncoding.EncodeToString(x.Data)
	case float32:
		return float64(x)
	}
	return v
}

func jsonKey(k interface{}) string {
	switch x := k.(type) {
	case string:
		return x
	case []byte:
		return string(x)
	}
	return fmt.Sprint(k)
}
