// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package dsl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crfsuitetagger/crfsuitetagger/internal/errs"
)

func TestParseRange_SingleInt(t *testing.T) {
	got, err := ParseRange("3")
	require.NoError(t, err)
	assert.Equal(t, []int{3}, got)
}

func TestParseRange_NegativeInt(t *testing.T) {
	got, err := ParseRange("-2")
	require.NoError(t, err)
	assert.Equal(t, []int{-2}, got)
}

func TestParseRange_ClosedRange(t *testing.T) {
	got, err := ParseRange("-3:1")
	require.NoError(t, err)
	assert.Equal(t, []int{-3, -2, -1, 0, 1}, got)
}

func TestParseRange_MixedAtoms(t *testing.T) {
	got, err := ParseRange("-3:1,4")
	require.NoError(t, err)
	assert.Equal(t, []int{-3, -2, -1, 0, 1, 4}, got)
}

func TestParseRange_WhitespaceInvariant(t *testing.T) {
	a, err := ParseRange("-3:1, 4")
	require.NoError(t, err)
	b, err := ParseRange(" -3 : 1 ,4 ")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestParseRange_SingletonRange(t *testing.T) {
	got, err := ParseRange("2:2")
	require.NoError(t, err)
	assert.Equal(t, []int{2}, got)
}

func TestParseRange_Idempotent(t *testing.T) {
	// Re-parsing the same string twice must yield identical results.
	a, err := ParseRange("-3:1,4,7:9")
	require.NoError(t, err)
	b, err := ParseRange("-3:1,4,7:9")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestParseRange_InvertedRangeErrors(t *testing.T) {
	_, err := ParseRange("3:1")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.MalformedRange)
}

func TestParseRange_EmptyErrors(t *testing.T) {
	_, err := ParseRange("")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.MalformedRange)
}

func TestParseRange_EmptyAtomErrors(t *testing.T) {
	_, err := ParseRange("1,,2")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.MalformedRange)
}

func TestParseRange_NonIntegerErrors(t *testing.T) {
	_, err := ParseRange("abc")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.MalformedRange)
}
