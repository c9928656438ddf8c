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

type call struct {
	win    bool
	name   string
	window []int
	params []interface{}
}

type recordingSink struct {
	calls []call
}

func (r *recordingSink) AddFeature(name string, params []interface{}) error {
	r.calls = append(r.calls, call{name: name, params: params})
	return nil
}

func (r *recordingSink) AddWinFeature(name string, window []int, params []interface{}) error {
	r.calls = append(r.calls, call{win: true, name: name, window: window, params: params})
	return nil
}

func TestCompileTemplate_WordAndPosWindows(t *testing.T) {
	sink := &recordingSink{}
	err := CompileTemplate("word:[-2:0];pos:[0]", nil, sink)
	require.NoError(t, err)

	require.Len(t, sink.calls, 2)
	assert.Equal(t, "word", sink.calls[0].name)
	assert.Equal(t, []int{-2, -1, 0}, sink.calls[0].window)
	assert.Equal(t, "pos", sink.calls[1].name)
	assert.Equal(t, []int{0}, sink.calls[1].window)
}

func TestCompileTemplate_BareFeature(t *testing.T) {
	sink := &recordingSink{}
	err := CompileTemplate("isnum", nil, sink)
	require.NoError(t, err)
	require.Len(t, sink.calls, 1)
	assert.False(t, sink.calls[0].win)
	assert.Equal(t, "isnum", sink.calls[0].name)
}

func TestCompileTemplate_ResourceInjection(t *testing.T) {
	brownMap := struct{}{}
	sink := &recordingSink{}
	err := CompileTemplate("brown:[-1:1],3", map[string]interface{}{"brown": &brownMap}, sink)
	require.NoError(t, err)
	require.Len(t, sink.calls, 1)
	assert.Equal(t, []int{-1, 0, 1}, sink.calls[0].window)
	require.Len(t, sink.calls[0].params, 2)
	assert.Same(t, &brownMap, sink.calls[0].params[0])
	assert.Equal(t, "3", sink.calls[0].params[1])
}

func TestCompileTemplate_ParamlistWithoutWindowDefaultsToZero(t *testing.T) {
	sink := &recordingSink{}
	err := CompileTemplate("short:3", nil, sink)
	require.NoError(t, err)
	require.Len(t, sink.calls, 1)
	assert.True(t, sink.calls[0].win)
	assert.Equal(t, []int{0}, sink.calls[0].window)
	assert.Equal(t, []interface{}{"3"}, sink.calls[0].params)
}

func TestCompileTemplate_SkipsEmptySegments(t *testing.T) {
	sink := &recordingSink{}
	err := CompileTemplate(";word:[0];;pos:[0];", nil, sink)
	require.NoError(t, err)
	assert.Len(t, sink.calls, 2)
}

func TestCompileTemplate_WhitespaceInvariant(t *testing.T) {
	a := &recordingSink{}
	b := &recordingSink{}
	require.NoError(t, CompileTemplate("word:[-2:0];pos:[0]", nil, a))
	require.NoError(t, CompileTemplate(" word : [ -2 : 0 ] ; pos : [ 0 ] ", nil, b))
	assert.Equal(t, a.calls, b.calls)
}

func TestCompileTemplate_UnterminatedWindowErrors(t *testing.T) {
	sink := &recordingSink{}
	err := CompileTemplate("word:[-2:0", nil, sink)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.MalformedTemplate)
}

func TestCompileTemplate_EmptyNameErrors(t *testing.T) {
	sink := &recordingSink{}
	err := CompileTemplate(":[0]", nil, sink)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.MalformedTemplate)
}
