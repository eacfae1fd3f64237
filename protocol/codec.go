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

package protocol

import (
	"io"
	"sync"

	"github.com/algorand/go-codec/codec"
)

// CodecHandle is used to instantiate msgpack encoders and decoders
// with our settings (canonical, paranoid about decoding errors)
var CodecHandle *codec.MsgpackHandle

// LenientCodecHandle decodes msgpack like CodecHandle but ignores keys the
// target struct does not declare. Node responses grow fields over time, so
// they are decoded with it; transactions never are.
var LenientCodecHandle *codec.MsgpackHandle

// JSONHandle is used to instantiate JSON encoders and decoders
// with our settings (canonical, paranoid about decoding errors)
var JSONHandle *codec.JsonHandle

// JSONLenientHandle decodes JSON like JSONHandle but ignores keys the
// target struct does not know about.
var JSONLenientHandle *codec.JsonHandle

// Decoder is our interface for a thing that can decode objects.
type Decoder interface {
	Decode(objptr interface{}) error
}

func init() {
	CodecHandle = new(codec.MsgpackHandle)
	CodecHandle.ErrorIfNoField = true
	CodecHandle.ErrorIfNoArrayExpand = true
	CodecHandle.Canonical = true
	CodecHandle.RecursiveEmptyCheck = true
	CodecHandle.WriteExt = true
	CodecHandle.PositiveIntUnsigned = true
	CodecHandle.Raw = true

	LenientCodecHandle = new(codec.MsgpackHandle)
	LenientCodecHandle.ErrorIfNoField = false
	LenientCodecHandle.ErrorIfNoArrayExpand = true
	LenientCodecHandle.Canonical = true
	LenientCodecHandle.RecursiveEmptyCheck = true
	LenientCodecHandle.WriteExt = true
	LenientCodecHandle.PositiveIntUnsigned = true
	LenientCodecHandle.Raw = true

	JSONHandle = new(codec.JsonHandle)
	JSONHandle.ErrorIfNoField = true
	JSONHandle.ErrorIfNoArrayExpand = true
	JSONHandle.Canonical = true
	JSONHandle.RecursiveEmptyCheck = true
	JSONHandle.Indent = 2
	JSONHandle.HTMLCharsAsIs = true

	JSONLenientHandle = new(codec.JsonHandle)
	JSONLenientHandle.ErrorIfNoField = false
	JSONLenientHandle.ErrorIfNoArrayExpand = JSONHandle.ErrorIfNoArrayExpand
	JSONLenientHandle.Canonical = JSONHandle.Canonical
	JSONLenientHandle.RecursiveEmptyCheck = JSONHandle.RecursiveEmptyCheck
	JSONLenientHandle.Indent = JSONHandle.Indent
	JSONLenientHandle.HTMLCharsAsIs = JSONHandle.HTMLCharsAsIs
}

type codecBytes struct {
	enc *codec.Encoder

	// Reuse this slice variable so that we don't have to allocate a fresh
	// slice object (runtime.newobject), separate from allocating the slice
	// payload (runtime.makeslice).
	buf []byte
}

var codecBytesPool = sync.Pool{
	New: func() interface{} {
		return &codecBytes{
			enc: codec.NewEncoderBytes(nil, CodecHandle),
		}
	},
}

const initEncodeBufSize = 256

// Encode returns the canonical msgpack encoding of obj: map keys sorted,
// zero values omitted, integers in their smallest unsigned form.
func Encode(obj interface{}) []byte {
	cb := codecBytesPool.Get().(*codecBytes)
	cb.buf = make([]byte, 0, initEncodeBufSize)
	cb.enc.ResetBytes(&cb.buf)
	cb.enc.MustEncode(obj)
	res := cb.buf
	// If MustEncode panics, we let the GC deal with the codecBytes object.
	codecBytesPool.Put(cb)
	return res
}

// EncodeChecked is like Encode but reports encoder failures (unsupported
// kinds, failing marshalers) as an error instead of panicking.
func EncodeChecked(obj interface{}) (b []byte, err error) {
	err = codec.NewEncoderBytes(&b, CodecHandle).Encode(obj)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// EncodeJSON returns a JSON-encoded byte buffer for a given object
func EncodeJSON(obj interface{}) []byte {
	var b []byte
	enc := codec.NewEncoderBytes(&b, JSONHandle)
	enc.MustEncode(obj)
	return b
}

// Decode attempts to decode a msgpack-encoded byte buffer into an object
// instance pointed to by objptr. Keys that objptr does not declare are an error.
func Decode(b []byte, objptr interface{}) error {
	dec := codec.NewDecoderBytes(b, CodecHandle)
	return dec.Decode(objptr)
}

// DecodeLenient is Decode with unknown keys skipped.
func DecodeLenient(b []byte, objptr interface{}) error {
	dec := codec.NewDecoderBytes(b, LenientCodecHandle)
	return dec.Decode(objptr)
}

// DecodeJSON attempts to decode a JSON-encoded byte buffer into an
// object instance pointed to by objptr
func DecodeJSON(b []byte, objptr interface{}) error {
	dec := codec.NewDecoderBytes(b, JSONHandle)
	return dec.Decode(objptr)
}

// NewJSONDecoderLenient returns a json decoder that skips unknown keys.
func NewJSONDecoderLenient(r io.Reader) Decoder {
	return codec.NewDecoder(r, JSONLenientHandle)
}

// NewDecoderBytes returns a decoder object reading bytes from [b].
// Successive calls to Decode consume consecutive objects, which is how a
// concatenation of signed transactions is read back.
func NewDecoderBytes(b []byte) Decoder {
	return codec.NewDecoderBytes(b, CodecHandle)
}
