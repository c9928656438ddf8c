// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package dsl implements the range/window and feature-template
// grammars. It knows nothing about feature functions or resources; it
// only turns DSL strings into the typed shapes the feature template
// (package feattmpl) compiles against.
package dsl

import (
	"strconv"
	"strings"

	"github.com/crfsuitetagger/crfsuitetagger/internal/errs"
)

// ParseRange parses a comma-separated list of atoms, each either a
// signed integer "n" or a closed inclusive range "a:b" (a<=b), into the
// flat list of integers obtained by expanding ranges inclusively.
// Whitespace is ignored: "-3:1,4" parses to [-3,-2,-1,0,1,4].
func ParseRange(s string) ([]int, error) {
	s = stripSpaces(s)
	if s == "" {
		return nil, errs.Wrap(errs.MalformedRange, "empty range %q", s)
	}

	var out []int
	for _, atom := range strings.Split(s, ",") {
		if atom == "" {
			return nil, errs.Wrap(errs.MalformedRange, "empty atom in %q", s)
		}

		if i := strings.IndexByte(atom, ':'); i >= 0 {
			lo, err := strconv.Atoi(atom[:i])
			if err != nil {
				return nil, errs.Wrap(errs.MalformedRange, "bad range start %q", atom)
			}
			hi, err := strconv.Atoi(atom[i+1:])
			if err != nil {
				return nil, errs.Wrap(errs.MalformedRange, "bad range end %q", atom)
			}
			if lo > hi {
				return nil, errs.Wrap(errs.MalformedRange, "inverted range %q", atom)
			}
			for v := lo; v <= hi; v++ {
				out = append(out, v)
			}
			continue
		}

		n, err := strconv.Atoi(atom)
		if err != nil {
			return nil, errs.Wrap(errs.MalformedRange, "not an integer %q", atom)
		}
		out = append(out, n)
	}
	return out, nil
}

func stripSpaces(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == ' ' || r == '\t' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
