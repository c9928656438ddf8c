// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package seqstore implements the columnar sequence store: a dense
// array of fixed-schema token records that preserves sequence
// boundaries through an embedded end-of-sequence index. The first
// record of a sequence holds the absolute index one past its last
// record; every other record holds -1.
package seqstore

import (
	"github.com/crfsuitetagger/crfsuitetagger/internal/errs"
)

// GuessColumn and eosNone are fixed names/sentinels used throughout.
const (
	GuessColumn = "guesstag"
	eosNone     = int32(-1)
)

// Store is a dense, columnar array of token records. A Store returned
// by Sequences is a *view*: its Rows and Eos slices are re-slices of
// the parent's backing arrays, never copies.
type Store struct {
	Columns  []string
	colIndex map[string]int
	Rows     [][]string
	Eos      []int32
}

// New allocates an empty store with the given column schema. guesstag
// is appended automatically unless already present in columns.
func New(columns []string) *Store {
	cols := append([]string{}, columns...)
	hasGuess := false
	for _, c := range cols {
		if c == GuessColumn {
			hasGuess = true
			break
		}
	}
	if !hasGuess {
		cols = append(cols, GuessColumn)
	}
	return &Store{Columns: cols, colIndex: indexOf(cols)}
}

func indexOf(cols []string) map[string]int {
	m := make(map[string]int, len(cols))
	for i, c := range cols {
		m[c] = i
	}
	return m
}

// ColumnPreset resolves a named column-set preset.
func ColumnPreset(name string) ([]string, bool) {
	switch name {
	case "pos":
		return []string{"form", "postag"}, true
	case "chunk":
		return []string{"form", "postag", "chunktag"}, true
	case "ne":
		return []string{"form", "postag", "chunktag", "netag", "guesstag"}, true
	default:
		return nil, false
	}
}

// Len returns the number of records in the store.
func (s *Store) Len() int { return len(s.Rows) }

// ColumnIndex returns the physical index of a logical column name.
func (s *Store) ColumnIndex(name string) (int, bool) {
	i, ok := s.colIndex[name]
	return i, ok
}

// Value returns the value of column name at row i, or "" if the column
// is not part of this store's schema.
func (s *Store) Value(row int, name string) string {
	i, ok := s.colIndex[name]
	if !ok || row < 0 || row >= len(s.Rows) {
		return ""
	}
	return s.Rows[row][i]
}

// SetValue writes the value of column name at row i. It is a no-op if
// the column does not exist in the schema.
func (s *Store) SetValue(row int, name, value string) {
	i, ok := s.colIndex[name]
	if !ok || row < 0 || row >= len(s.Rows) {
		return
	}
	s.Rows[row][i] = value
}

// appendRow appends a fully-formed row and its eos marker.
func (s *Store) appendRow(row []string, eos int32) {
	s.Rows = append(s.Rows, row)
	s.Eos = append(s.Eos, eos)
}

// Sequences returns the contiguous, non-overlapping sequence views
// that partition the store. Views borrow the parent's backing arrays.
func (s *Store) Sequences() []*Store {
	var out []*Store
	start := 0
	for start >= 0 && start < len(s.Rows) {
		end := int(s.Eos[start])
		if end <= start || end > len(s.Rows) {
			// Defensive: a malformed eos marker would otherwise loop
			// forever; treat the remainder as a single final sequence.
			end = len(s.Rows)
		}
		out = append(out, &Store{
			Columns:  s.Columns,
			colIndex: s.colIndex,
			Rows:     s.Rows[start:end],
			Eos:      s.Eos[start:end],
		})
		start = end
	}
	return out
}

// Project extracts the given columns (or all columns if cols is nil)
// from every row, in column order, without mutating the store.
func (s *Store) Project(cols []string) [][]string {
	if cols == nil {
		cols = s.Columns
	}
	idx := make([]int, len(cols))
	for i, c := range cols {
		j, ok := s.colIndex[c]
		if !ok {
			idx[i] = -1
			continue
		}
		idx[i] = j
	}
	out := make([][]string, len(s.Rows))
	for r, row := range s.Rows {
		proj := make([]string, len(cols))
		for i, j := range idx {
			if j >= 0 {
				proj[i] = row[j]
			}
		}
		out[r] = proj
	}
	return out
}

// SetSequenceStartIdx rebases every non-(-1) eos marker by adding k,
// used to splice parts back together. k must be non-negative.
func SetSequenceStartIdx(s *Store, k int) error {
	if k < 0 {
		return errs.Wrap(errs.PreconditionViolated, "set_sequence_start_idx: k=%d must be >= 0", k)
	}
	for i, e := range s.Eos {
		if e != eosNone {
			s.Eos[i] = e + int32(k)
		}
	}
	return nil
}
