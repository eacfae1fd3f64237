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
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/algorand/go-deadlock"

	"github.com/algorand/go-algokit/serr"
)

/*
   ABI-Types: uint<N>: An N-bit unsigned integer (8 <= N <= 512 and N % 8 = 0).
            | byte (alias for uint8)
            | ufixed <N> x <M> (8 <= N <= 512, N % 8 = 0, and 0 < M <= 160)
            | bool
            | address (alias for byte[32])
            | <type> [<N>]
            | <type> []
            | string
            | (T1, ..., Tn)

   Storage schemas additionally use the AVM aliases AVMBytes, AVMString and AVMUint64.
*/

// BaseType is an type-alias for uint32. A BaseType value indicates the type of an ABI value.
type BaseType uint32

const (
	// Uint is the index (0) for `Uint` type in ABI encoding.
	Uint BaseType = iota
	// Byte is the index (1) for `Byte` type in ABI encoding.
	Byte
	// Ufixed is the index (2) for `UFixed` type in ABI encoding.
	Ufixed
	// Bool is the index (3) for `Bool` type in ABI encoding.
	Bool
	// ArrayStatic is the index (4) for static length array (<type>[length]) type in ABI encoding.
	ArrayStatic
	// Address is the index (5) for `Address` type in ABI encoding (an type alias of Byte[32]).
	Address
	// ArrayDynamic is the index (6) for dynamic length array (<type>[]) type in ABI encoding.
	ArrayDynamic
	// String is the index (7) for `String` type in ABI encoding (an type alias of Byte[]).
	String
	// Tuple is the index (8) for tuple `(<type 0>, ..., <type k>)` in ABI encoding.
	Tuple
	// AVMBytes is a raw AVM byte slice, stored without a length prefix.
	AVMBytes
	// AVMString is a raw UTF-8 AVM byte slice.
	AVMString
	// AVMUint64 is an AVM uint64, stored as 8 big-endian bytes.
	AVMUint64
)

const (
	addressByteSize        = 32
	singleByteSize         = 1
	singleBoolSize         = 1
	lengthEncodeByteSize   = 2
	abiEncodingLengthLimit = 1 << 16

	maxBitSize   = 512
	maxPrecision = 160
)

// Type is the struct that stores information about an ABI value's type.
type Type struct {
	abiTypeID  BaseType
	childTypes []Type

	// only can be applied to `uint` bitSize <N> or `ufixed` bitSize <N>
	bitSize uint16
	// only can be applied to `ufixed` precision <M>
	precision uint16

	// length for static array / tuple
	/*
		by ABI spec, len over binary array returns number of bytes
		the type is uint16, which allows for only length in [0, 2^16 - 1]
		representation of static length can only be constrained in uint16 type
	*/
	staticLength uint16
}

// TypeID returns the base type of t.
func (t Type) TypeID() BaseType {
	return t.abiTypeID
}

// ChildTypes returns the element type of an array, or the element types of a tuple.
func (t Type) ChildTypes() []Type {
	return t.childTypes
}

// BitSize returns the N in uint<N> and ufixed<N>x<M>.
func (t Type) BitSize() uint16 {
	return t.bitSize
}

// Precision returns the M in ufixed<N>x<M>.
func (t Type) Precision() uint16 {
	return t.precision
}

// StaticLength returns the length of a static array, or the element count of a tuple.
func (t Type) StaticLength() uint16 {
	return t.staticLength
}

// String serialize an ABI Type to a string in ABI encoding.
func (t Type) String() string {
	switch t.abiTypeID {
	case Uint:
		return fmt.Sprintf("uint%d", t.bitSize)
	case Byte:
		return "byte"
	case Ufixed:
		return fmt.Sprintf("ufixed%dx%d", t.bitSize, t.precision)
	case Bool:
		return "bool"
	case ArrayStatic:
		return fmt.Sprintf("%s[%d]", t.childTypes[0].String(), t.staticLength)
	case Address:
		return "address"
	case ArrayDynamic:
		return t.childTypes[0].String() + "[]"
	case String:
		return "string"
	case Tuple:
		typeStrings := make([]string, len(t.childTypes))
		for i := 0; i < len(t.childTypes); i++ {
			typeStrings[i] = t.childTypes[i].String()
		}
		return "(" + strings.Join(typeStrings, ",") + ")"
	case AVMBytes:
		return "AVMBytes"
	case AVMString:
		return "AVMString"
	case AVMUint64:
		return "AVMUint64"
	default:
		panic("Type Serialization Error, fail to infer from abiTypeID (bruh you shouldn't be here)")
	}
}

var staticArrayRegexp *regexp.Regexp
var ufixedRegexp *regexp.Regexp

func init() {
	// match the string itself, array element type, then array length
	staticArrayRegexp = regexp.MustCompile(`^([a-z\d\[\](),]+)\[(0|[1-9][\d]*)]$`)
	// match string itself, then type-bitSize, and type-precision
	ufixedRegexp = regexp.MustCompile(`^ufixed([1-9][\d]*)x([1-9][\d]*)$`)
}

var typeCache = struct {
	deadlock.RWMutex
	types map[string]Type
}{types: make(map[string]Type)}

// TypeOf parses an ABI type string into an ABI Type. Parsed types are cached
// process-wide; the returned Type must be treated as immutable.
func TypeOf(str string) (Type, error) {
	typeCache.RLock()
	t, ok := typeCache.types[str]
	typeCache.RUnlock()
	if ok {
		return t, nil
	}

	t, err := parseType(str)
	if err != nil {
		return Type{}, err
	}

	typeCache.Lock()
	typeCache.types[str] = t
	typeCache.Unlock()
	return t, nil
}

// StorageTypeOf parses a storage schema type: an ABI type or one of the AVM aliases.
func StorageTypeOf(str string) (Type, error) {
	switch str {
	case "AVMBytes":
		return Type{abiTypeID: AVMBytes}, nil
	case "AVMString":
		return Type{abiTypeID: AVMString}, nil
	case "AVMUint64":
		return Type{abiTypeID: AVMUint64}, nil
	}
	return TypeOf(str)
}

func parseType(str string) (Type, error) {
	switch {
	case strings.HasSuffix(str, "[]"):
		arrayArgType, err := parseType(str[:len(str)-2])
		if err != nil {
			return Type{}, err
		}
		return MakeDynamicArrayType(arrayArgType), nil
	case strings.HasSuffix(str, "]"):
		stringMatches := staticArrayRegexp.FindStringSubmatch(str)
		if len(stringMatches) != 3 {
			return Type{}, validationErrorf("Malformed static array string: %s", str)
		}
		// allowing only decimal static array length, with limit size to 2^16 - 1
		arrayLength, err := strconv.ParseUint(stringMatches[2], 10, 16)
		if err != nil {
			return Type{}, validationErrorf("Malformed static array string: %s", str)
		}
		arrayType, err := parseType(stringMatches[1])
		if err != nil {
			return Type{}, err
		}
		return MakeStaticArrayType(arrayType, uint16(arrayLength)), nil
	case strings.HasPrefix(str, "uint"):
		typeSize, err := strconv.ParseUint(str[4:], 10, 16)
		if err != nil {
			return Type{}, validationErrorf("Malformed uint string: %s", str)
		}
		return MakeUintType(uint16(typeSize))
	case str == "byte":
		return MakeByteType(), nil
	case strings.HasPrefix(str, "ufixed"):
		stringMatches := ufixedRegexp.FindStringSubmatch(str)
		if len(stringMatches) != 3 {
			return Type{}, validationErrorf("Malformed ufixed type: %s", str)
		}
		ufixedSize, err := strconv.ParseUint(stringMatches[1], 10, 16)
		if err != nil {
			return Type{}, validationErrorf("Malformed ufixed type: %s", str)
		}
		ufixedPrecision, err := strconv.ParseUint(stringMatches[2], 10, 16)
		if err != nil {
			return Type{}, validationErrorf("Malformed ufixed type: %s", str)
		}
		return MakeUfixedType(uint16(ufixedSize), uint16(ufixedPrecision))
	case str == "bool":
		return MakeBoolType(), nil
	case str == "address":
		return MakeAddressType(), nil
	case str == "string":
		return MakeStringType(), nil
	case len(str) >= 2 && str[0] == '(' && str[len(str)-1] == ')':
		tupleContent, err := parseTupleContent(str[1 : len(str)-1])
		if err != nil {
			return Type{}, err
		}
		tupleTypes := make([]Type, len(tupleContent))
		for i := 0; i < len(tupleContent); i++ {
			ti, err := parseType(tupleContent[i])
			if err != nil {
				return Type{}, err
			}
			tupleTypes[i] = ti
		}
		return MakeTupleType(tupleTypes)
	default:
		return Type{}, validationErrorf("Cannot convert string '%s' to an ABI type", str)
	}
}

// parseTupleContent splits an ABI encoded string for tuple type into multiple sub-strings.
// Each sub-string represents a content type of the tuple type.
// The argument str is the content between parentheses of tuple, i.e.
// (...... str ......)
//
//	^               ^
func parseTupleContent(str string) ([]string, error) {
	// if the tuple type content is empty (which is also allowed)
	// just return the empty string list
	if len(str) == 0 {
		return []string{}, nil
	}

	if strings.HasSuffix(str, ",") || strings.HasPrefix(str, ",") {
		return nil, validationErrorf("Tuple name should not start with comma")
	}
	if strings.Contains(str, ",,") {
		return nil, validationErrorf("tuple string should not have consecutive commas")
	}

	// split on the commas that are not inside a parenthesis group
	// illustration: "*****,(**,**)[2],*****" => ["*****", "(**,**)[2]", "*****"]
	var tupleStrSegs []string
	depth, start := 0, 0
	for index, chr := range str {
		switch chr {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return nil, validationErrorf("Tuple string has mismatched parentheses: %s", str)
			}
		case ',':
			if depth == 0 {
				tupleStrSegs = append(tupleStrSegs, str[start:index])
				start = index + 1
			}
		}
	}
	if depth != 0 {
		return nil, validationErrorf("Tuple string has mismatched parentheses: %s", str)
	}
	tupleStrSegs = append(tupleStrSegs, str[start:])

	return tupleStrSegs, nil
}

// MakeUintType makes `Uint` ABI type by taking a type bitSize argument.
// The range of type bitSize is [8, 512] and type bitSize % 8 == 0.
func MakeUintType(typeSize uint16) (Type, error) {
	if typeSize%8 != 0 || typeSize < 8 || typeSize > maxBitSize {
		return Type{}, validationErrorf("Bit size must be between 8 and 512 and divisible by 8, got %d", typeSize)
	}
	return Type{
		abiTypeID: Uint,
		bitSize:   typeSize,
	}, nil
}

// MakeByteType makes `Byte` ABI type.
func MakeByteType() Type {
	return Type{
		abiTypeID: Byte,
	}
}

// MakeUfixedType makes `UFixed` ABI type by taking type bitSize and type precision as arguments.
// The range of type bitSize is [8, 512] and type bitSize % 8 == 0.
// The range of type precision is [1, 160].
func MakeUfixedType(typeSize uint16, typePrecision uint16) (Type, error) {
	if typeSize%8 != 0 || typeSize < 8 || typeSize > maxBitSize {
		return Type{}, validationErrorf("Bit size must be between 8 and 512 and divisible by 8, got %d", typeSize)
	}
	if typePrecision > maxPrecision || typePrecision < 1 {
		return Type{}, validationErrorf("Precision must be between 1 and 160, got %d", typePrecision)
	}
	return Type{
		abiTypeID: Ufixed,
		bitSize:   typeSize,
		precision: typePrecision,
	}, nil
}

// MakeBoolType makes `Bool` ABI type.
func MakeBoolType() Type {
	return Type{
		abiTypeID: Bool,
	}
}

// MakeStaticArrayType makes static length array ABI type by taking
// array element type and array length as arguments.
func MakeStaticArrayType(argumentType Type, arrayLength uint16) Type {
	return Type{
		abiTypeID:    ArrayStatic,
		childTypes:   []Type{argumentType},
		staticLength: arrayLength,
	}
}

// MakeAddressType makes `Address` ABI type.
func MakeAddressType() Type {
	return Type{
		abiTypeID: Address,
	}
}

// MakeDynamicArrayType makes dynamic length array by taking array element type as argument.
func MakeDynamicArrayType(argumentType Type) Type {
	return Type{
		abiTypeID:  ArrayDynamic,
		childTypes: []Type{argumentType},
	}
}

// MakeStringType makes `String` ABI type.
func MakeStringType() Type {
	return Type{
		abiTypeID: String,
	}
}

// MakeTupleType makes tuple ABI type by taking an array of tuple element types as argument.
func MakeTupleType(argumentTypes []Type) (Type, error) {
	if len(argumentTypes) >= math.MaxUint16 {
		return Type{}, validationErrorf("tuple type child type number larger than maximum uint16 error")
	}
	return Type{
		abiTypeID:    Tuple,
		childTypes:   argumentTypes,
		staticLength: uint16(len(argumentTypes)),
	}, nil
}

// Equal method decides the equality of two types: t == t0.
func (t Type) Equal(t0 Type) bool {
	if t.abiTypeID != t0.abiTypeID {
		return false
	}
	if t.precision != t0.precision || t.bitSize != t0.bitSize {
		return false
	}
	if t.staticLength != t0.staticLength {
		return false
	}
	if len(t.childTypes) != len(t0.childTypes) {
		return false
	}
	for i := 0; i < len(t.childTypes); i++ {
		if !t.childTypes[i].Equal(t0.childTypes[i]) {
			return false
		}
	}

	return true
}

// IsDynamic method decides if an ABI type is dynamic or static.
func (t Type) IsDynamic() bool {
	switch t.abiTypeID {
	case ArrayDynamic, String, AVMBytes, AVMString:
		return true
	default:
		for _, childT := range t.childTypes {
			if childT.IsDynamic() {
				return true
			}
		}
		return false
	}
}

// findBoolLR assumes that the current index on the list of type is an ABI bool type.
// It returns the difference between the current index and the index of the furthest consecutive Bool type.
func findBoolLR(typeList []Type, index int, delta int) int {
	until := 0
	for {
		curr := index + delta*until
		if typeList[curr].abiTypeID == Bool {
			if curr != len(typeList)-1 && delta > 0 {
				until++
			} else if curr > 0 && delta < 0 {
				until++
			} else {
				break
			}
		} else {
			until--
			break
		}
	}
	return until
}

// ByteLen method calculates the byte length of a static ABI type.
func (t Type) ByteLen() (int, error) {
	switch t.abiTypeID {
	case Address:
		return addressByteSize, nil
	case Byte:
		return singleByteSize, nil
	case Uint, Ufixed:
		return int(t.bitSize / 8), nil
	case Bool:
		return singleBoolSize, nil
	case AVMUint64:
		return 8, nil
	case ArrayStatic:
		if t.childTypes[0].abiTypeID == Bool {
			byteLen := int(t.staticLength) / 8
			if t.staticLength%8 != 0 {
				byteLen++
			}
			return byteLen, nil
		}
		elemByteLen, err := t.childTypes[0].ByteLen()
		if err != nil {
			return -1, err
		}
		return int(t.staticLength) * elemByteLen, nil
	case Tuple:
		size := 0
		for i := 0; i < len(t.childTypes); i++ {
			if t.childTypes[i].abiTypeID == Bool {
				// search after bool
				after := findBoolLR(t.childTypes, i, 1)
				// shift the index
				i += after
				// get number of bool
				boolNum := after + 1
				size += boolNum / 8
				if boolNum%8 != 0 {
					size++
				}
			} else {
				childByteSize, err := t.childTypes[i].ByteLen()
				if err != nil {
					return -1, err
				}
				size += childByteSize
			}
		}
		return size, nil
	default:
		return -1, decodingErrorf("Failed to get size, %s is a dynamic type", t.String())
	}
}

func validationErrorf(format string, args ...any) *serr.Error {
	return serr.Validationf("ABI validation failed: "+format, args...)
}

func encodingErrorf(format string, args ...any) *serr.Error {
	return serr.Encodingf("ABI encoding failed: "+format, args...)
}

func decodingErrorf(format string, args ...any) *serr.Error {
	return serr.Decodingf("ABI decoding failed: "+format, args...)
}
