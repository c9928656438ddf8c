// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package feattmpl

import (
	"github.com/crfsuitetagger/crfsuitetagger/internal/dsl"
	"github.com/crfsuitetagger/crfsuitetagger/internal/errs"
	"github.com/crfsuitetagger/crfsuitetagger/internal/seqstore"
)

// Template holds the compiled feature vector and the registries it was
// compiled against. The zero value is not usable; construct with New.
type Template struct {
	Vec []Entry

	cols       Cols
	winFnx     map[string]WinGenerator
	fnRegistry map[string]FeatureFunc
	resources  map[string]interface{}
}

// New constructs an empty template with the default column map,
// window-generator registry, and built-in feature function registry.
func New() *Template {
	return &Template{
		cols:       DefaultCols(),
		winFnx:     defaultWinFnx(),
		fnRegistry: defaultFnRegistry(),
	}
}

// SetCols overrides the logical-to-physical column map.
func (t *Template) SetCols(cols Cols) { t.cols = cols }

// RegisterFeature adds or overrides a feature function by name. User
// extensions go through the same registry as the built-ins; there is
// no reflection-based dispatch.
func (t *Template) RegisterFeature(name string, fn FeatureFunc) { t.fnRegistry[name] = fn }

// RegisterWindowGenerator adds or overrides a window generator by
// feature name.
func (t *Template) RegisterWindowGenerator(name string, fn WinGenerator) { t.winFnx[name] = fn }

// Compile parses template string s against resources and appends the
// entries it implies to Vec.
func (t *Template) Compile(s string, resources map[string]interface{}) error {
	t.resources = resources
	return dsl.CompileTemplate(s, resources, t)
}

// AddFeature implements dsl.Sink: a parameterless feature appends
// exactly one entry at offset 0.
func (t *Template) AddFeature(name string, params []interface{}) error {
	if _, ok := t.fnRegistry[name]; !ok {
		return errs.Wrap(errs.UnknownFeature, "unknown feature %q", name)
	}
	if key, ok := classifierResourceAlias[name]; ok {
		if res, ok := t.resources[key]; ok {
			params = append([]interface{}{res}, params...)
		}
	}
	res, extra := splitParams(params)
	t.Vec = append(t.Vec, Entry{Name: name, Resource: res, Extra: extra})
	return nil
}

// AddWinFeature implements dsl.Sink: fans name out across window via
// its registered window generator, or the generic one.
func (t *Template) AddWinFeature(name string, window []int, params []interface{}) error {
	if _, ok := t.fnRegistry[name]; !ok {
		return errs.Wrap(errs.UnknownFeature, "unknown feature %q", name)
	}

	if key, ok := classifierResourceAlias[name]; ok {
		if res, ok := t.resources[key]; ok {
			params = append([]interface{}{res}, params...)
		}
	}

	gen, ok := t.winFnx[name]
	if !ok {
		gen = genericWin
	}
	t.Vec = append(t.Vec, gen(name, window, params)...)
	return nil
}

// MakeFts materializes the feature row for token i: the form at i
// followed by one atom per entry in Vec, in order. The result has
// length 1+|Vec| for every token of every sequence.
func (t *Template) MakeFts(seq *seqstore.Store, i int) []string {
	formCol := t.cols.Resolve("form")
	form := noneAtom
	if i >= 0 && i < seq.Len() {
		if _, ok := seq.ColumnIndex(formCol); ok {
			form = seq.Value(i, formCol)
		}
	}

	out := make([]string, 0, 1+len(t.Vec))
	out = append(out, form)
	for _, e := range t.Vec {
		fn := t.fnRegistry[e.Name]
		out = append(out, fn(seq, i, t.cols, e))
	}
	return out
}
