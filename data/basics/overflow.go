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

package basics

import (
	"golang.org/x/exp/constraints"
)

// Overflow checked arithmetic on unsigned values. The O forms report whether
// the result wrapped; the Saturate forms clamp to the range of T.

func maxOf[T constraints.Unsigned]() T {
	var zero T
	return ^zero
}

// OAdd returns a+b and whether it overflowed.
func OAdd[T constraints.Unsigned](a, b T) (T, bool) {
	sum := a + b
	return sum, sum < a
}

// OSub returns a-b and whether it underflowed.
func OSub[T constraints.Unsigned](a, b T) (T, bool) {
	return a - b, b > a
}

// OMul returns a*b and whether it overflowed.
func OMul[T constraints.Unsigned](a, b T) (T, bool) {
	if a == 0 || b == 0 {
		return 0, false
	}
	product := a * b
	return product, product/b != a
}

// AddSaturate returns a+b, or the largest T when that overflows.
func AddSaturate[T constraints.Unsigned](a, b T) T {
	if sum, overflowed := OAdd(a, b); !overflowed {
		return sum
	}
	return maxOf[T]()
}

// SubSaturate returns a-b, or zero when b is larger.
func SubSaturate[T constraints.Unsigned](a, b T) T {
	if diff, underflowed := OSub(a, b); !underflowed {
		return diff
	}
	return 0
}

// MulSaturate returns a*b, or the largest T when that overflows.
func MulSaturate[T constraints.Unsigned](a, b T) T {
	if product, overflowed := OMul(a, b); !overflowed {
		return product
	}
	return maxOf[T]()
}
