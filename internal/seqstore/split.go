// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package seqstore

import (
	"github.com/crfsuitetagger/crfsuitetagger/internal/errs"
)

// WeightedSplit partitions s into two new stores by sequence (never
// splitting a sequence across the boundary): the first store gets the
// smallest prefix of sequences, taken in load order, whose cumulative
// record count is >= p*N; the rest go to the second store. p must be
// in [0,1].
func WeightedSplit(s *Store, p float64) (*Store, *Store, error) {
	if p < 0 || p > 1 {
		return nil, nil, errs.Wrap(errs.PreconditionViolated, "weighted_split: p=%v out of [0,1]", p)
	}

	threshold := p * float64(s.Len())

	a := New(trimGuess(s.Columns))
	b := New(trimGuess(s.Columns))

	accumulated := 0
	for _, seq := range s.Sequences() {
		dst := a
		if float64(accumulated) >= threshold {
			dst = b
		}
		start := dst.Len()
		for r := 0; r < seq.Len(); r++ {
			row := append([]string{}, seq.Rows[r]...)
			dst.appendRow(row, eosNone)
		}
		if dst.Len() > start {
			dst.Eos[start] = int32(dst.Len())
		}
		accumulated += seq.Len()
	}

	return a, b, nil
}

func trimGuess(cols []string) []string {
	out := make([]string, 0, len(cols))
	for _, c := range cols {
		if c != GuessColumn {
			out = append(out, c)
		}
	}
	return out
}
