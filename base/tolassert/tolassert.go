// Copyright (c) 2026, The gcanvas Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tolassert provides functions for asserting the equality
// of numbers with tolerance (below which the numbers are considered equal).
package tolassert

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Number is the set of number types supported by tolassert.
type Number interface {
	~float32 | ~float64 | ~int
}

// Equal asserts that the given two numbers are within a standard
// tolerance (1e-4) of each other.
func Equal[T Number](t testing.TB, expected, actual T, msgAndArgs ...any) bool {
	return EqualTol(t, expected, actual, 1.0e-4, msgAndArgs...)
}

// EqualTol asserts that the given two numbers are within the given
// tolerance of each other.
func EqualTol[T Number](t testing.TB, expected, actual T, tol float64, msgAndArgs ...any) bool {
	t.Helper()
	return assert.InDelta(t, float64(expected), float64(actual), tol, msgAndArgs...)
}

// EqualTolSlice asserts that the given two slices of numbers are
// elementwise within the given tolerance of each other.
func EqualTolSlice[T Number](t testing.TB, expected, actual []T, tol float64, msgAndArgs ...any) bool {
	t.Helper()
	if !assert.Equal(t, len(expected), len(actual), msgAndArgs...) {
		return false
	}
	res := true
	for i := range expected {
		if !assert.InDelta(t, float64(expected[i]), float64(actual[i]), tol, msgAndArgs...) {
			res = false
		}
	}
	return res
}
