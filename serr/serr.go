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

// Package serr provides structured errors: a message, a set of attributes and
// an error kind from the closed set every package in this module reports.
package serr

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/exp/slog"
)

// Error kinds. Test for them with errors.Is.
var (
	// ErrValidation reports bad caller input.
	ErrValidation = errors.New("validation error")
	// ErrEncoding reports a value that cannot be put in canonical form.
	ErrEncoding = errors.New("encoding error")
	// ErrDecoding reports malformed bytes.
	ErrDecoding = errors.New("decoding error")
	// ErrNode reports a transport or protocol level failure of the node.
	ErrNode = errors.New("node error")
	// ErrLogic reports an on-chain program rejection.
	ErrLogic = errors.New("logic error")
)

var kinds = []error{ErrValidation, ErrEncoding, ErrDecoding, ErrNode, ErrLogic}

// Error is a structured error.
type Error struct {
	Kind    error
	Msg     string
	Attrs   map[string]any
	Wrapped error
}

// New creates a new structured error object using the supplied message and attributes.
func New(msg string, pairs ...any) *Error {
	attrs := make(map[string]any, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		attrs[pairs[i].(string)] = pairs[i+1]
	}
	return &Error{Msg: msg, Attrs: attrs}
}

func newKind(kind error, msg string, pairs ...any) *Error {
	e := New(msg, pairs...)
	e.Kind = kind
	return e
}

// Validation returns an ErrValidation error.
func Validation(msg string, pairs ...any) *Error { return newKind(ErrValidation, msg, pairs...) }

// Validationf returns an ErrValidation error with a formatted message.
func Validationf(format string, args ...any) *Error {
	return newKind(ErrValidation, fmt.Sprintf(format, args...))
}

// Encodingf returns an ErrEncoding error with a formatted message.
func Encodingf(format string, args ...any) *Error {
	return newKind(ErrEncoding, fmt.Sprintf(format, args...))
}

// Decodingf returns an ErrDecoding error with a formatted message.
func Decodingf(format string, args ...any) *Error {
	return newKind(ErrDecoding, fmt.Sprintf(format, args...))
}

// Nodef returns an ErrNode error with a formatted message.
func Nodef(format string, args ...any) *Error {
	return newKind(ErrNode, fmt.Sprintf(format, args...))
}

// Wrap classifies err under kind. The message of the result is msg followed by
// the message of err; an empty msg keeps the message of err.
func Wrap(kind error, err error, msg string) *Error {
	if err == nil {
		return nil
	}
	full := err.Error()
	if msg != "" {
		full = msg + ": " + full
	}
	e := newKind(kind, full)
	e.Wrapped = err
	return e
}

// Error returns error message. It is either the exact supplied message, or the
// serialized attributes if the supplied message was blank.
func (e *Error) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	keys := make([]string, 0, len(e.Attrs))
	for key := range e.Attrs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	args := make([]any, 0, 2*len(keys))
	for _, key := range keys {
		args = append(args, key, e.Attrs[key])
	}
	var buf strings.Builder
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && (a.Key == slog.TimeKey || a.Key == slog.LevelKey || a.Key == slog.MessageKey) {
				return slog.Attr{}
			}
			return a
		},
	}))
	l.Info("", args...)
	return strings.TrimSpace(buf.String())
}

// Unwrap returns the error kind and the inner error, when they exist.
func (e *Error) Unwrap() []error {
	var errs []error
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Wrapped != nil {
		errs = append(errs, e.Wrapped)
	}
	return errs
}

// Extend adds additional attributes to an existing error. If the supplied error
// is nil, a new structured error is created with the given attributes and no
// message. If the error is not a structured error, it is wrapped in one using
// its existing message and the new attributes.
func Extend(err error, pairs ...any) error {
	if err == nil {
		return New("", pairs...)
	}
	var serr *Error
	if errors.As(err, &serr) {
		for i := 0; i+1 < len(pairs); i += 2 {
			serr.Attrs[pairs[i].(string)] = pairs[i+1]
		}
		return err
	}
	return wrap(err, pairs...)
}

// wrap is not exported because it always creates a new structured error. Extend
// is more appropriate from outside the package.
func wrap(err error, pairs ...any) error {
	serr := New(err.Error(), pairs...)
	serr.Wrapped = err
	return serr
}

// KindOf returns the kind err belongs to, or nil if it is unclassified.
func KindOf(err error) error {
	for _, k := range kinds {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}
