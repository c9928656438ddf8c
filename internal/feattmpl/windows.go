// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package feattmpl

import (
	"strconv"

	"github.com/crfsuitetagger/crfsuitetagger/internal/dsl"
	"github.com/crfsuitetagger/crfsuitetagger/internal/resource"
)

// splitParams separates an injected resource handle (always params[0]
// when present, per dsl's injection rule) from the remaining string
// tokens, returning at most one "extra" parameter - every built-in
// feature function that takes an extra parameter (threshold, affix
// cap, dimension range-spec) takes exactly one.
func splitParams(params []interface{}) (res interface{}, extra *string) {
	toks := params
	if len(toks) > 0 {
		if _, isStr := toks[0].(string); !isStr {
			res = toks[0]
			toks = toks[1:]
		}
	}
	if len(toks) > 0 {
		if s, ok := toks[0].(string); ok {
			extra = &s
		}
	}
	return res, extra
}

// genericWin is the default window generator: one entry per index in
// window.
func genericWin(name string, window []int, params []interface{}) []Entry {
	res, extra := splitParams(params)
	entries := make([]Entry, 0, len(window))
	for _, i := range window {
		entries = append(entries, Entry{Name: name, Offset: i, Resource: res, Extra: extra})
	}
	return entries
}

// embWin fans embeddings out across both the window and the selected
// embedding dimensions. params[0] must be the embedding map;
// params[1], if present, is a bracketed range-spec string selecting a
// subset of dimensions.
func embWin(name string, window []int, params []interface{}) []Entry {
	if len(params) == 0 {
		return nil
	}
	em, _ := params[0].(*resource.EmbeddingMap)

	dims := dimsFromEmb(em)
	if len(params) > 1 {
		if spec, ok := params[1].(string); ok && len(spec) >= 2 && spec[0] == '[' {
			if parsed, err := dsl.ParseRange(spec[1 : len(spec)-1]); err == nil {
				dims = parsed
			}
		}
	}

	var entries []Entry
	for _, i := range window {
		for _, j := range dims {
			jj := j
			entries = append(entries, Entry{Name: name, Offset: i, Resource: em, EmbDim: &jj})
		}
	}
	return entries
}

func dimsFromEmb(em *resource.EmbeddingMap) []int {
	if em == nil || em.Dim == 0 {
		return nil
	}
	dims := make([]int, em.Dim)
	for i := range dims {
		dims[i] = i
	}
	return dims
}

// ngramWinFor builds the window generator for nword/npos/nchunk: the
// first params element is the n-gram size (default 2); the flat window
// is reduced to the starts of full n-grams within its maximal
// consecutive runs.
func ngramWinFor(name string) WinGenerator {
	return func(_ string, window []int, params []interface{}) []Entry {
		n := 2
		if len(params) > 0 {
			if s, ok := params[0].(string); ok {
				if v, err := strconv.Atoi(s); err == nil {
					n = v
				}
			}
		}
		starts := dsl.ParseNgramRange(window, n)
		entries := make([]Entry, 0, len(starts))
		nn := n
		for _, s := range starts {
			entries = append(entries, Entry{Name: name, Offset: s, NgramN: &nn})
		}
		return entries
	}
}

// defaultWinFnx returns the default window-generator registry: emb
// plus the three n-gram variants; every other name falls back to
// genericWin at call time.
func defaultWinFnx() map[string]WinGenerator {
	return map[string]WinGenerator{
		"emb":    embWin,
		"nword":  ngramWinFor("nword"),
		"npos":   ngramWinFor("npos"),
		"nchunk": ngramWinFor("nchunk"),
	}
}
