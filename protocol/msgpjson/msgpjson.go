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

// Package msgpjson converts node request and response models between their
// JSON form and the msgpack form the node speaks.
package msgpjson

import (
	"encoding/base64"
	"fmt"
	"sort"

	"github.com/algorand/go-deadlock"

	"github.com/algorand/go-algokit/protocol"
	"github.com/algorand/go-algokit/serr"
)

// ModelType names a model the registry knows how to convert.
type ModelType string

// Built-in models.
const (
	SimulateRequest                ModelType = "SimulateRequest"
	SimulateTransaction200Response ModelType = "SimulateTransaction200Response"
)

func (m ModelType) String() string {
	return string(m)
}

// ParseModelType returns the built-in model with the given name.
func ParseModelType(s string) (ModelType, bool) {
	switch ModelType(s) {
	case SimulateRequest, SimulateTransaction200Response:
		return ModelType(s), true
	}
	return "", false
}

// UnknownModelError is returned for a model with no registered handler.
type UnknownModelError struct {
	Model ModelType
}

func (e *UnknownModelError) Error() string {
	return fmt.Sprintf("Unknown model type: %s", e.Model)
}

// Is makes the error match serr.ErrEncoding.
func (e *UnknownModelError) Is(target error) bool {
	return target == serr.ErrEncoding
}

// As lets an unknown model be handled as a *MsgpackWriteError, the error of
// every other failed conversion.
func (e *UnknownModelError) As(target any) bool {
	if w, ok := target.(**MsgpackWriteError); ok {
		*w = &MsgpackWriteError{Msg: e.Error()}
		return true
	}
	return false
}

// MsgpackWriteError is returned when a model cannot be written in the
// requested direction.
type MsgpackWriteError struct {
	Msg string
}

func (e *MsgpackWriteError) Error() string {
	return "Error occurred during msgpack writing: " + e.Msg
}

// Is makes the error match serr.ErrEncoding.
func (e *MsgpackWriteError) Is(target error) bool {
	return target == serr.ErrEncoding
}

// Handler converts one model.
type Handler interface {
	EncodeJSON(jsonStr string) ([]byte, error)
	DecodeMsgpack(data []byte) (string, error)
}

// TypedHandler converts a model through its Go type: JSON is decoded into a T
// and canonically encoded, msgpack is decoded into a T and rendered as JSON.
type TypedHandler[T any] struct{}

// EncodeJSON implements Handler.
func (TypedHandler[T]) EncodeJSON(jsonStr string) ([]byte, error) {
	var v T
	err := protocol.DecodeJSON([]byte(jsonStr), &v)
	if err != nil {
		return nil, serr.Wrap(serr.ErrDecoding, err, "invalid model JSON")
	}
	data, err := protocol.EncodeChecked(&v)
	if err != nil {
		return nil, serr.Wrap(serr.ErrEncoding, err, "")
	}
	return data, nil
}

// DecodeMsgpack implements Handler.
func (TypedHandler[T]) DecodeMsgpack(data []byte) (string, error) {
	var v T
	err := protocol.Decode(data, &v)
	if err != nil {
		return "", serr.Wrap(serr.ErrDecoding, err, "invalid model msgpack")
	}
	return string(protocol.EncodeJSON(&v)), nil
}

// Registry maps model types to their handlers.
type Registry struct {
	mu       deadlock.RWMutex
	handlers map[ModelType]Handler
}

// NewRegistry returns a registry with the built-in models registered.
func NewRegistry() *Registry {
	r := &Registry{handlers: make(map[ModelType]Handler)}
	r.Register(SimulateRequest, simulateRequestHandler{})
	r.Register(SimulateTransaction200Response, simulateResponseHandler{})
	return r
}

// Register installs h for m, replacing any previous handler.
func (r *Registry) Register(m ModelType, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[m] = h
}

func (r *Registry) handler(m ModelType) (Handler, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[m]
	if !ok {
		return nil, &UnknownModelError{Model: m}
	}
	return h, nil
}

// EncodeJSONToMsgpack converts the JSON form of model m to msgpack.
func (r *Registry) EncodeJSONToMsgpack(m ModelType, jsonStr string) ([]byte, error) {
	h, err := r.handler(m)
	if err != nil {
		return nil, err
	}
	return h.EncodeJSON(jsonStr)
}

// DecodeMsgpackToJSON converts the msgpack form of model m to JSON.
func (r *Registry) DecodeMsgpackToJSON(m ModelType, data []byte) (string, error) {
	h, err := r.handler(m)
	if err != nil {
		return "", err
	}
	return h.DecodeMsgpack(data)
}

// EncodeJSONToBase64Msgpack is EncodeJSONToMsgpack with base64 output.
func (r *Registry) EncodeJSONToBase64Msgpack(m ModelType, jsonStr string) (string, error) {
	data, err := r.EncodeJSONToMsgpack(m, jsonStr)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// DecodeBase64MsgpackToJSON is DecodeMsgpackToJSON with base64 input.
func (r *Registry) DecodeBase64MsgpackToJSON(m ModelType, b64 string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return "", serr.Wrap(serr.ErrDecoding, err, "invalid base64")
	}
	return r.DecodeMsgpackToJSON(m, data)
}

// SupportedModels lists the registered models in name order.
func (r *Registry) SupportedModels() []ModelType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]ModelType, 0, len(r.handlers))
	for m := range r.handlers {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

var defaultRegistry = NewRegistry()

// EncodeJSONToMsgpack converts with the default registry.
func EncodeJSONToMsgpack(m ModelType, jsonStr string) ([]byte, error) {
	return defaultRegistry.EncodeJSONToMsgpack(m, jsonStr)
}

// DecodeMsgpackToJSON converts with the default registry.
func DecodeMsgpackToJSON(m ModelType, data []byte) (string, error) {
	return defaultRegistry.DecodeMsgpackToJSON(m, data)
}

// EncodeJSONToBase64Msgpack converts with the default registry.
func EncodeJSONToBase64Msgpack(m ModelType, jsonStr string) (string, error) {
	return defaultRegistry.EncodeJSONToBase64Msgpack(m, jsonStr)
}

// DecodeBase64MsgpackToJSON converts with the default registry.
func DecodeBase64MsgpackToJSON(m ModelType, b64 string) (string, error) {
	return defaultRegistry.DecodeBase64MsgpackToJSON(m, b64)
}

// SupportedModels lists the models of the default registry.
func SupportedModels() []ModelType {
	return defaultRegistry.SupportedModels()
}
