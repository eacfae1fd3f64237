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

package abi

import (
	"encoding/binary"
	"math/big"
	"reflect"
	"unicode/utf8"

	"github.com/algorand/go-algokit/data/basics"
)

// Struct is a tuple value whose elements carry field names. Encoding uses the
// field values in order; decoding through a Contract rebuilds the names.
type Struct struct {
	Name   string
	Fields []StructFieldValue
}

// StructFieldValue is a named element of a Struct.
type StructFieldValue struct {
	Name  string
	Value interface{}
}

// Values returns the field values in declaration order.
func (s Struct) Values() []interface{} {
	values := make([]interface{}, len(s.Fields))
	for i, f := range s.Fields {
		values[i] = f.Value
	}
	return values
}

// Encode is an ABI type method to encode go values into bytes following ABI encoding rules
func (t Type) Encode(value interface{}) ([]byte, error) {
	switch t.abiTypeID {
	case Uint, Ufixed:
		return encodeInt(value, t.bitSize)
	case Bool:
		boolValue, ok := value.(bool)
		if !ok {
			return nil, encodingErrorf("ABI value mismatch, expected boolean")
		}
		if boolValue {
			return []byte{0x80}, nil
		}
		return []byte{0x00}, nil
	case Byte:
		bytesValue, err := encodeInt(value, 8)
		if err != nil {
			return nil, err
		}
		return bytesValue, nil
	case Address:
		addr, err := inferToAddress(value)
		if err != nil {
			return nil, err
		}
		return addr[:], nil
	case String:
		var str string
		switch v := value.(type) {
		case string:
			str = v
		case []byte:
			str = string(v)
		default:
			return nil, encodingErrorf("ABI value mismatch, expected string")
		}
		if len(str) >= abiEncodingLengthLimit {
			return nil, encodingErrorf("string length %d exceeds the encoding limit", len(str))
		}
		encoded := make([]byte, lengthEncodeByteSize, lengthEncodeByteSize+len(str))
		binary.BigEndian.PutUint16(encoded, uint16(len(str)))
		return append(encoded, str...), nil
	case ArrayStatic, ArrayDynamic:
		values, err := inferToSlice(value)
		if err != nil {
			return nil, err
		}
		if t.abiTypeID == ArrayStatic && int(t.staticLength) != len(values) {
			return nil, encodingErrorf("Invalid array length, expected %d values, got %d", t.staticLength, len(values))
		}
		if len(values) >= abiEncodingLengthLimit {
			return nil, encodingErrorf("array length %d exceeds the encoding limit", len(values))
		}
		converted := t.childTypesAsTuple(len(values))
		encoded, err := encodeTuple(converted, values)
		if err != nil {
			return nil, err
		}
		if t.abiTypeID == ArrayStatic {
			return encoded, nil
		}
		lengthEncode := make([]byte, lengthEncodeByteSize, lengthEncodeByteSize+len(encoded))
		binary.BigEndian.PutUint16(lengthEncode, uint16(len(values)))
		return append(lengthEncode, encoded...), nil
	case Tuple:
		var values []interface{}
		if s, ok := value.(Struct); ok {
			values = s.Values()
		} else {
			var err error
			values, err = inferToSlice(value)
			if err != nil {
				return nil, err
			}
		}
		return encodeTuple(t.childTypes, values)
	case AVMBytes:
		switch v := value.(type) {
		case []byte:
			return append([]byte(nil), v...), nil
		case string:
			return []byte(v), nil
		default:
			return nil, encodingErrorf("ABI value mismatch, expected bytes for AVMBytes")
		}
	case AVMString:
		str, ok := value.(string)
		if !ok {
			return nil, encodingErrorf("ABI value mismatch, expected string for AVMString")
		}
		if !utf8.ValidString(str) {
			return nil, encodingErrorf("Invalid UTF-8 string for AVMString")
		}
		return []byte(str), nil
	case AVMUint64:
		return encodeInt(value, 64)
	default:
		return nil, encodingErrorf("cannot infer type for encoding %s", t.String())
	}
}

// childTypesAsTuple expands an array type into the tuple of n element types it is encoded as.
func (t Type) childTypesAsTuple(n int) []Type {
	childT := make([]Type, n)
	for i := 0; i < n; i++ {
		childT[i] = t.childTypes[0]
	}
	return childT
}

// encodeInt encodes int-alike golang values to bytes, following ABI encoding rules
func encodeInt(intValue interface{}, bitSize uint16) ([]byte, error) {
	var bigInt *big.Int

	switch intValue := intValue.(type) {
	case int8:
		bigInt = big.NewInt(int64(intValue))
	case uint8:
		bigInt = new(big.Int).SetUint64(uint64(intValue))
	case int16:
		bigInt = big.NewInt(int64(intValue))
	case uint16:
		bigInt = new(big.Int).SetUint64(uint64(intValue))
	case int32:
		bigInt = big.NewInt(int64(intValue))
	case uint32:
		bigInt = new(big.Int).SetUint64(uint64(intValue))
	case int64:
		bigInt = big.NewInt(intValue)
	case uint64:
		bigInt = new(big.Int).SetUint64(intValue)
	case uint:
		bigInt = new(big.Int).SetUint64(uint64(intValue))
	case int:
		bigInt = big.NewInt(int64(intValue))
	case basics.MicroAlgos:
		bigInt = new(big.Int).SetUint64(intValue.Raw)
	case basics.AppIndex:
		bigInt = new(big.Int).SetUint64(uint64(intValue))
	case basics.AssetIndex:
		bigInt = new(big.Int).SetUint64(uint64(intValue))
	case *big.Int:
		if intValue == nil {
			return nil, encodingErrorf("ABI value mismatch, expected uint")
		}
		bigInt = intValue
	case big.Int:
		bigInt = &intValue
	default:
		return nil, encodingErrorf("ABI value mismatch, expected uint")
	}

	if bigInt.Sign() < 0 {
		return nil, encodingErrorf("%s is negative and cannot be encoded as uint%d", bigInt.String(), bitSize)
	}
	if bigInt.BitLen() > int(bitSize) {
		return nil, encodingErrorf("%s is too big to fit in uint%d", bigInt.String(), bitSize)
	}

	return bigInt.FillBytes(make([]byte, bitSize/8)), nil
}

// inferToAddress accepts the Go representations of an address: basics.Address,
// a 32-byte array or slice, or the 58-character checksummed string.
func inferToAddress(value interface{}) (basics.Address, error) {
	switch v := value.(type) {
	case basics.Address:
		return v, nil
	case [addressByteSize]byte:
		return basics.Address(v), nil
	case []byte:
		if len(v) != addressByteSize {
			return basics.Address{}, encodingErrorf("Address byte string must be 32 bytes long")
		}
		var addr basics.Address
		copy(addr[:], v)
		return addr, nil
	case string:
		if len(v) != 58 {
			return basics.Address{}, validationErrorf("Algorand address must be exactly 58 characters")
		}
		addr, err := basics.UnmarshalChecksumAddress(v)
		if err != nil {
			return basics.Address{}, validationErrorf("Invalid Algorand address %s: %v", v, err)
		}
		return addr, nil
	default:
		return basics.Address{}, encodingErrorf("ABI value mismatch, expected address")
	}
}

// inferToSlice infers an interface element to a slice of interface{}, returns error if it cannot infer successfully
func inferToSlice(value interface{}) ([]interface{}, error) {
	switch v := value.(type) {
	case []interface{}:
		return v, nil
	case Struct:
		return v.Values(), nil
	}
	reflectVal := reflect.ValueOf(value)
	if reflectVal.Kind() != reflect.Slice && reflectVal.Kind() != reflect.Array {
		return nil, encodingErrorf("ABI value mismatch, expected an array of values")
	}
	// * if input is a slice, with nil, then reflectVal.Len() == 0
	// * if input is an array, it is not possible to be nil
	values := make([]interface{}, reflectVal.Len())
	for i := 0; i < reflectVal.Len(); i++ {
		values[i] = reflectVal.Index(i).Interface()
	}
	return values, nil
}

// encodeTuple encodes a list of values against a list of types as an ABI tuple.
func encodeTuple(childTypes []Type, values []interface{}) ([]byte, error) {
	if len(childTypes) >= abiEncodingLengthLimit {
		return nil, encodingErrorf("value abi type exceed 2^16")
	}
	if len(values) != len(childTypes) {
		return nil, encodingErrorf("Mismatch lengths between the values and types")
	}

	heads := make([][]byte, len(childTypes))
	tails := make([][]byte, len(childTypes))
	isDynamicIndex := make(map[int]bool)

	for i := 0; i < len(childTypes); i++ {
		if childTypes[i].IsDynamic() {
			heads[i] = []byte{0x00, 0x00}
			isDynamicIndex[i] = true
			tailEncoding, err := childTypes[i].Encode(values[i])
			if err != nil {
				return nil, err
			}
			tails[i] = tailEncoding
			continue
		}
		if childTypes[i].abiTypeID == Bool {
			// search after bool
			after := findBoolLR(childTypes, i, 1)
			if after > 7 {
				after = 7
			}
			compressed, err := compressBools(values[i : i+after+1])
			if err != nil {
				return nil, err
			}
			heads[i] = []byte{compressed}
			i += after
			continue
		}
		encodeTi, err := childTypes[i].Encode(values[i])
		if err != nil {
			return nil, err
		}
		heads[i] = encodeTi
	}

	// adjust heads for dynamic type
	headLength := 0
	for _, headTi := range heads {
		headLength += len(headTi)
	}

	tailCurrLength := 0
	for i := 0; i < len(heads); i++ {
		if isDynamicIndex[i] {
			headValue := headLength + tailCurrLength
			if headValue >= abiEncodingLengthLimit {
				return nil, encodingErrorf("byte length exceed 2^16")
			}
			binary.BigEndian.PutUint16(heads[i], uint16(headValue))
		}
		tailCurrLength += len(tails[i])
	}

	encoded := make([]byte, 0, headLength+tailCurrLength)
	for i := 0; i < len(heads); i++ {
		encoded = append(encoded, heads[i]...)
	}
	for i := 0; i < len(tails); i++ {
		encoded = append(encoded, tails[i]...)
	}
	return encoded, nil
}

// compressBools packs up to 8 consecutive bool values into one byte, first value in the high bit.
func compressBools(valueList []interface{}) (uint8, error) {
	var res uint8 = 0
	if len(valueList) > 8 {
		return 0, encodingErrorf("Expected no more than 8 bool values")
	}
	for i := 0; i < len(valueList); i++ {
		boolVal, ok := valueList[i].(bool)
		if !ok {
			return 0, encodingErrorf("ABI value mismatch, expected boolean")
		}
		if boolVal {
			res |= 1 << uint(7-i)
		}
	}
	return res, nil
}

// Decode is an ABI type method to decode bytes to go values from ABI encoding rules
func (t Type) Decode(encoded []byte) (interface{}, error) {
	switch t.abiTypeID {
	case Uint, Ufixed:
		if len(encoded) != int(t.bitSize)/8 {
			return nil, decodingErrorf("Invalid byte array length, expected %d bytes, got %d", t.bitSize/8, len(encoded))
		}
		return castBigIntToNearestPrimitive(new(big.Int).SetBytes(encoded), t.bitSize)
	case Bool:
		if len(encoded) != 1 {
			return nil, decodingErrorf("Bool string must be 1 byte long")
		}
		switch encoded[0] {
		case 0x80:
			return true, nil
		case 0x00:
			return false, nil
		default:
			return nil, decodingErrorf("Boolean could not be decoded from the byte string")
		}
	case Byte:
		if len(encoded) != 1 {
			return nil, decodingErrorf("Invalid byte array length, expected 1 bytes, got %d", len(encoded))
		}
		return encoded[0], nil
	case Address:
		if len(encoded) != addressByteSize {
			return nil, decodingErrorf("Address byte string must be 32 bytes long")
		}
		var addr basics.Address
		copy(addr[:], encoded)
		return addr, nil
	case String:
		if len(encoded) < lengthEncodeByteSize {
			return nil, decodingErrorf("Byte array is too short for string")
		}
		byteLen := binary.BigEndian.Uint16(encoded[:lengthEncodeByteSize])
		if len(encoded[lengthEncodeByteSize:]) != int(byteLen) {
			return nil, decodingErrorf("Invalid byte array length for string, expected %d value, got %d",
				byteLen, len(encoded[lengthEncodeByteSize:]))
		}
		if !utf8.Valid(encoded[lengthEncodeByteSize:]) {
			return nil, decodingErrorf("Invalid UTF-8 encoding")
		}
		return string(encoded[lengthEncodeByteSize:]), nil
	case ArrayStatic:
		return decodeTuple(encoded, t.childTypesAsTuple(int(t.staticLength)))
	case ArrayDynamic:
		if len(encoded) < lengthEncodeByteSize {
			return nil, decodingErrorf("Byte array is too short to be decoded as dynamic array")
		}
		dynamicLen := binary.BigEndian.Uint16(encoded[:lengthEncodeByteSize])
		return decodeTuple(encoded[lengthEncodeByteSize:], t.childTypesAsTuple(int(dynamicLen)))
	case Tuple:
		return decodeTuple(encoded, t.childTypes)
	case AVMBytes:
		return append([]byte(nil), encoded...), nil
	case AVMString:
		if !utf8.Valid(encoded) {
			return nil, decodingErrorf("Invalid UTF-8 string for AVMString")
		}
		return string(encoded), nil
	case AVMUint64:
		if len(encoded) != 8 {
			return nil, decodingErrorf("Invalid byte array length, expected 8 bytes, got %d", len(encoded))
		}
		return binary.BigEndian.Uint64(encoded), nil
	default:
		return nil, decodingErrorf("cannot infer type for decoding %s", t.String())
	}
}

// castBigIntToNearestPrimitive returns the smallest Go unsigned integer type holding bitSize bits,
// or the *big.Int itself above 64 bits.
func castBigIntToNearestPrimitive(num *big.Int, bitSize uint16) (interface{}, error) {
	if num.BitLen() > int(bitSize) {
		return nil, decodingErrorf("%s is too big to fit in uint%d", num.String(), bitSize)
	} else if num.Sign() < 0 {
		return nil, decodingErrorf("%s is negative and cannot be a uint%d", num.String(), bitSize)
	}

	switch bitSize / 8 {
	case 1:
		return uint8(num.Uint64()), nil
	case 2:
		return uint16(num.Uint64()), nil
	case 3, 4:
		return uint32(num.Uint64()), nil
	case 5, 6, 7, 8:
		return num.Uint64(), nil
	default:
		return num, nil
	}
}

type dynamicSegment struct{ left, right int }

// decodeTuple splits the encoded tuple into per-element byte strings, then decodes each one.
func decodeTuple(encoded []byte, childTypes []Type) ([]interface{}, error) {
	dynamicSegments := make([]dynamicSegment, 0)
	valuePartition := make([][]byte, 0, len(childTypes))
	iterIndex := 0

	for i := 0; i < len(childTypes); i++ {
		if childTypes[i].IsDynamic() {
			if len(encoded[iterIndex:]) < lengthEncodeByteSize {
				return nil, decodingErrorf("Input bytes not enough to decode")
			}
			dynamicIndex := binary.BigEndian.Uint16(encoded[iterIndex : iterIndex+lengthEncodeByteSize])
			if len(dynamicSegments) > 0 {
				dynamicSegments[len(dynamicSegments)-1].right = int(dynamicIndex)
			}
			dynamicSegments = append(dynamicSegments, dynamicSegment{
				left:  int(dynamicIndex),
				right: -1,
			})
			valuePartition = append(valuePartition, nil)
			iterIndex += lengthEncodeByteSize
			continue
		}
		if childTypes[i].abiTypeID == Bool {
			after := findBoolLR(childTypes, i, 1)
			if after > 7 {
				after = 7
			}
			if iterIndex >= len(encoded) {
				return nil, decodingErrorf("Input bytes not enough to decode")
			}
			// parse bool in a byte to multiple byte strings
			for boolIndex := uint(0); boolIndex <= uint(after); boolIndex++ {
				boolMask := 0x80 >> boolIndex
				if encoded[iterIndex]&byte(boolMask) > 0 {
					valuePartition = append(valuePartition, []byte{0x80})
				} else {
					valuePartition = append(valuePartition, []byte{0x00})
				}
			}
			i += after
			iterIndex++
			continue
		}
		currLen, err := childTypes[i].ByteLen()
		if err != nil {
			return nil, err
		}
		if iterIndex+currLen > len(encoded) {
			return nil, decodingErrorf("Input bytes not enough to decode")
		}
		valuePartition = append(valuePartition, encoded[iterIndex:iterIndex+currLen])
		iterIndex += currLen
	}
	if len(dynamicSegments) > 0 {
		dynamicSegments[len(dynamicSegments)-1].right = len(encoded)
		if dynamicSegments[0].left != iterIndex {
			return nil, decodingErrorf("Input bytes not fully consumed")
		}
		iterIndex = len(encoded)
	}
	if iterIndex < len(encoded) {
		return nil, decodingErrorf("Input bytes not fully consumed")
	}

	// check segment indices are valid
	for _, seg := range dynamicSegments {
		if seg.left > seg.right || seg.right > len(encoded) {
			return nil, decodingErrorf("Dynamic segment should display a [l, r] space with l <= r")
		}
	}

	segIndex := 0
	for i := 0; i < len(childTypes); i++ {
		if childTypes[i].IsDynamic() {
			valuePartition[i] = encoded[dynamicSegments[segIndex].left:dynamicSegments[segIndex].right]
			segIndex++
		}
	}

	values := make([]interface{}, len(childTypes))
	for i := 0; i < len(childTypes); i++ {
		valueTi, err := childTypes[i].Decode(valuePartition[i])
		if err != nil {
			return nil, err
		}
		values[i] = valueTi
	}
	return values, nil
}
