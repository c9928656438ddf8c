// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package feattmpl implements the compiled feature template: the
// ordered vector of feature-entry descriptors, the built-in feature
// function and window-generator registries, and per-token feature
// materialization. It implements dsl.Sink so the grammar can drive it
// without feattmpl leaking back into dsl.
package feattmpl

import "github.com/crfsuitetagger/crfsuitetagger/internal/seqstore"

// Entry is a single compiled template entry: a compact record rather
// than a generic variant list. Optional fields are nil/zero when
// unused by Name's feature function. Entries are immutable once
// appended; their order in the vector is the feature emission order
// and must match between training and tagging.
type Entry struct {
	Name     string      // key into the fn_registry
	Offset   int         // relative offset ("rel")
	Resource interface{} // optional resource handle (cluster map, embedding map, affix set)
	EmbDim   *int        // optional embedding-dimension index (emb only)
	NgramN   *int        // optional n-gram length (nword/npos/nchunk only)
	Extra    *string     // optional extra text parameter (threshold, affix cap, ...)
}

// FeatureFunc computes one text atom for entry e at token index i of
// seq. cols resolves logical column names to physical ones.
type FeatureFunc func(seq *seqstore.Store, i int, cols Cols, e Entry) string

// WinGenerator fans a parsed feature name/window/params triple out
// into the Entry values it implies.
type WinGenerator func(name string, window []int, params []interface{}) []Entry
