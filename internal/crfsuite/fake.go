// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package crfsuite

import (
	"strings"
)

// Fake is an in-memory Trainer/Tagger double. The actual CRF optimizer
// lives in an external native library, so the orchestrator's own
// tests drive this instead: it "trains" by
// memorizing, for every distinct joined-feature-row string seen during
// Append, the most frequent label that followed it, and "tags" by
// looking that memo up, falling back to the most frequent label seen
// overall. This is enough to exercise the train/tag/test wiring
// end-to-end without linking a real CRF implementation.
type Fake struct {
	params   map[string]string
	opened   bool
	counts   map[string]map[string]int
	overall  map[string]int
	majority string
}

// NewFake returns a ready-to-use trainer/tagger double.
func NewFake() *Fake {
	return &Fake{
		counts:  map[string]map[string]int{},
		overall: map[string]int{},
	}
}

func (f *Fake) key(row []string) string {
	return strings.Join(row, "\x1f")
}

func (f *Fake) SetParams(params map[string]string) error {
	f.params = params
	return nil
}

func (f *Fake) Append(featureRows [][]string, labelRows []string) error {
	for i, row := range featureRows {
		k := f.key(row)
		bucket, ok := f.counts[k]
		if !ok {
			bucket = map[string]int{}
			f.counts[k] = bucket
		}
		label := labelRows[i]
		bucket[label]++
		f.overall[label]++
	}
	return nil
}

func (f *Fake) Train(modelPath string) error {
	best, bestN := "", -1
	for label, n := range f.overall {
		if n > bestN {
			best, bestN = label, n
		}
	}
	f.majority = best
	return nil
}

func (f *Fake) Open(modelPath string) error {
	f.opened = true
	return nil
}

func (f *Fake) Tag(featureRows [][]string) ([]string, error) {
	labels := make([]string, len(featureRows))
	for i, row := range featureRows {
		labels[i] = f.predict(row)
	}
	return labels, nil
}

func (f *Fake) predict(row []string) string {
	bucket, ok := f.counts[f.key(row)]
	if !ok {
		return f.majority
	}
	best, bestN := f.majority, -1
	for label, n := range bucket {
		if n > bestN {
			best, bestN = label, n
		}
	}
	return best
}
