// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package seqstore

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/crfsuitetagger/crfsuitetagger/internal/errs"
)

// ParseTSV builds a Store from source, which is either the path to a
// delimited text file or, when no such file exists, the raw text
// content itself. Each non-blank line is one record whose fields are
// separated by sep; a blank line marks the end of a sequence. columns may be a preset
// name ("pos", "chunk", "ne") or an explicit column list.
func ParseTSV(source string, columns []string, sep string) (*Store, error) {
	var r io.Reader
	if f, err := os.Open(source); err == nil {
		defer f.Close()
		r = f
	} else {
		r = strings.NewReader(source)
	}
	return parseTSVReader(r, columns, sep)
}

func parseTSVReader(r io.Reader, columns []string, sep string) (*Store, error) {
	if len(columns) == 1 {
		if preset, ok := ColumnPreset(columns[0]); ok {
			columns = preset
		}
	}

	store := New(columns)
	// guesstag is always synthesized as "", never read off the line,
	// whether it was already present in columns (e.g. the "ne" preset)
	// or appended by New.
	nData := len(store.Columns)
	if hasColumn(store.Columns, GuessColumn) {
		nData--
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	// seqStart tracks the index of the current sequence's first record
	// so its eos marker can be fixed up once the blank line (or EOF) is
	// reached; heads default to -1 until closed.
	seqStart := -1

	closeSeq := func() {
		if seqStart >= 0 && seqStart < store.Len() {
			store.Eos[seqStart] = int32(store.Len())
			seqStart = -1
		}
	}

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			closeSeq()
			continue
		}

		fields := strings.Split(line, sep)
		if len(fields) < nData {
			return nil, errs.Wrap(errs.SchemaMismatch, "line %q has %d fields, want >= %d", line, len(fields), nData)
		}

		// data fields fill the non-guesstag columns in schema order;
		// guesstag stays "" until tagged.
		row := make([]string, len(store.Columns))
		fi := 0
		for ci, c := range store.Columns {
			if c == GuessColumn {
				continue
			}
			row[ci] = fields[fi]
			fi++
		}

		if seqStart < 0 {
			seqStart = store.Len()
		}
		store.appendRow(row, eosNone)
	}
	closeSeq()

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return store, nil
}

func hasColumn(cols []string, name string) bool {
	for _, c := range cols {
		if c == name {
			return true
		}
	}
	return false
}
