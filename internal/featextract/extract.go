// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package featextract drives a compiled feattmpl.Template across every
// sequence of a seqstore.Store, producing a parallel feature matrix,
// and exposes a per-sequence view that feeds the external CRF
// trainer/tagger (internal/crfsuite).
package featextract

import (
	"github.com/crfsuitetagger/crfsuitetagger/internal/errs"
	"github.com/crfsuitetagger/crfsuitetagger/internal/feattmpl"
	"github.com/crfsuitetagger/crfsuitetagger/internal/seqstore"
)

// Matrix is the feature matrix, row-aligned with the store it was
// extracted from: row i holds the form as element 0 and the K
// compiled-template feature strings as elements 1..K.
type Matrix struct {
	Rows [][]string
	eos  []int32
}

// Extract computes the feature matrix for every record of store using
// tmpl, preserving store's sequence boundaries.
func Extract(store *seqstore.Store, tmpl *feattmpl.Template) *Matrix {
	m := &Matrix{
		Rows: make([][]string, store.Len()),
		eos:  append([]int32{}, store.Eos...),
	}

	offset := 0
	for _, seq := range store.Sequences() {
		for i := 0; i < seq.Len(); i++ {
			m.Rows[offset+i] = tmpl.MakeFts(seq, i)
		}
		offset += seq.Len()
	}
	return m
}

// Sequences yields, per sequence, the contiguous slice of feature
// rows.
func (m *Matrix) Sequences() [][][]string {
	var out [][][]string
	start := 0
	for start >= 0 && start < len(m.Rows) {
		end := int(m.eos[start])
		if end <= start || end > len(m.Rows) {
			end = len(m.Rows)
		}
		out = append(out, m.Rows[start:end])
		start = end
	}
	return out
}

// ZipLabels pairs each feature sequence with its corresponding label
// sequence (store's labelCol column). A length mismatch between a
// feature sequence and its label sequence is a fatal contract
// violation.
func ZipLabels(store *seqstore.Store, m *Matrix, labelCol string) ([][][]string, [][]string, error) {
	feats := m.Sequences()
	seqs := store.Sequences()
	if len(feats) != len(seqs) {
		return nil, nil, errs.Wrap(errs.PreconditionViolated, "featextract: %d feature sequences vs %d label sequences", len(feats), len(seqs))
	}

	labels := make([][]string, len(seqs))
	for i, seq := range seqs {
		col := seq.Project([]string{labelCol})
		lbls := make([]string, len(col))
		for r, row := range col {
			lbls[r] = row[0]
		}
		labels[i] = lbls

		if len(feats[i]) != len(lbls) {
			return nil, nil, errs.Wrap(errs.PreconditionViolated,
				"featextract: sequence %d has %d feature rows but %d labels", i, len(feats[i]), len(lbls))
		}
	}

	return feats, labels, nil
}
