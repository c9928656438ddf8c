// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package seqstore

import (
	"io"
	"strings"
)

// Export writes the store to w, one record per line, fields joined by
// sep, with a blank line between (not after) consecutive sequences and
// no trailing newline after the final line. cols
// selects and orders which columns are written; nil means every
// column in schema order. eos is never exported.
func Export(s *Store, w io.Writer, cols []string, sep string) error {
	rows := s.Project(cols)
	seqs := s.Sequences()

	var lines []string
	row := 0
	for si, seq := range seqs {
		if si > 0 {
			lines = append(lines, "")
		}
		for i := 0; i < seq.Len(); i++ {
			lines = append(lines, strings.Join(rows[row], sep))
			row++
		}
	}

	_, err := io.WriteString(w, strings.Join(lines, "\n"))
	return err
}
