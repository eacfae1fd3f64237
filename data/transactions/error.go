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

package transactions

import (
	"fmt"
	"strings"

	"github.com/algorand/go-algokit/serr"
)

// fieldErrors accumulates the problems found while checking the fields of one
// transaction type, so a caller sees all of them at once.
type fieldErrors struct {
	kind string
	msgs []string
}

func newFieldErrors(kind string) *fieldErrors {
	return &fieldErrors{kind: kind}
}

func (fe *fieldErrors) addf(format string, args ...interface{}) {
	fe.msgs = append(fe.msgs, fmt.Sprintf(format, args...))
}

func (fe *fieldErrors) required(field string) {
	fe.addf("%s is required", field)
}

func (fe *fieldErrors) tooLong(field string, actual, limit int, unit string) {
	fe.addf("%s cannot exceed %d %s, got %d", field, limit, unit, actual)
}

func (fe *fieldErrors) immutable(field string) {
	fe.addf("%s is immutable and cannot be changed", field)
}

// err returns nil when nothing was recorded, otherwise a validation error of the
// form "<Kind> validation failed: ..." listing every problem on its own line.
func (fe *fieldErrors) err() error {
	if len(fe.msgs) == 0 {
		return nil
	}
	return serr.Validation(
		fmt.Sprintf("%s validation failed: %s", fe.kind, strings.Join(fe.msgs, "\n")),
		"type", fe.kind, "problems", len(fe.msgs),
	)
}
