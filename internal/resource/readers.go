// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package resource

import (
	"strconv"
	"strings"

	"github.com/crfsuitetagger/crfsuitetagger/internal/errs"
)

// ReadBrown loads a Brown-clustering output file: lines of
// "<bitstring>\t<word>\t<count>", tab separated, one token type per
// line (the count column is ignored). The cluster identifier stored
// per form is the bitstring.
func ReadBrown(path string, s3cfg S3Config) (ClusterMap, error) {
	r, err := open(path, s3cfg)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	cm := ClusterMap{}
	err = scanLines(r, func(line string) error {
		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			return errs.Wrap(errs.SchemaMismatch, "brown cluster line %q: want >=2 tab-separated fields", line)
		}
		cm[fields[1]] = fields[0]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cm, nil
}

// ReadCls loads a flat-cluster file: lines of "<word>\t<clusterid>".
func ReadCls(path string, s3cfg S3Config) (ClusterMap, error) {
	r, err := open(path, s3cfg)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	cm := ClusterMap{}
	err = scanLines(r, func(line string) error {
		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			return errs.Wrap(errs.SchemaMismatch, "flat cluster line %q: want >=2 tab-separated fields", line)
		}
		cm[fields[0]] = fields[1]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cm, nil
}

// ReadEmb loads a word-embedding file in the word2vec/GloVe text
// format: whitespace-separated "<word> <d1> <d2> ... <dD>" lines. An
// optional leading "<count> <dim>" header line (word2vec convention,
// two integer fields only) is detected and skipped.
func ReadEmb(path string, s3cfg S3Config) (*EmbeddingMap, error) {
	r, err := open(path, s3cfg)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	em := &EmbeddingMap{Vectors: map[string][]float64{}}
	first := true
	err = scanLines(r, func(line string) error {
		fields := strings.Fields(line)
		if first {
			first = false
			if len(fields) == 2 {
				if _, e1 := strconv.Atoi(fields[0]); e1 == nil {
					if _, e2 := strconv.Atoi(fields[1]); e2 == nil {
						return nil // word2vec header, skip
					}
				}
			}
		}
		if len(fields) < 2 {
			return errs.Wrap(errs.SchemaMismatch, "embedding line %q: want word plus at least one dimension", line)
		}
		vec := make([]float64, 0, len(fields)-1)
		for _, tok := range fields[1:] {
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return errs.Wrap(errs.SchemaMismatch, "embedding line %q: bad float %q", line, tok)
			}
			vec = append(vec, v)
		}
		if em.Dim == 0 {
			em.Dim = len(vec)
		} else if len(vec) != em.Dim {
			return errs.Wrap(errs.SchemaMismatch, "embedding line %q: vector length %d, want %d", line, len(vec), em.Dim)
		}
		em.Vectors[fields[0]] = vec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return em, nil
}

// ReadSuff and ReadPref load an affix set: one affix string per
// non-blank line, leading/trailing whitespace trimmed.
func ReadSuff(path string, s3cfg S3Config) (AffixSet, error) { return readAffixSet(path, s3cfg) }
func ReadPref(path string, s3cfg S3Config) (AffixSet, error) { return readAffixSet(path, s3cfg) }

func readAffixSet(path string, s3cfg S3Config) (AffixSet, error) {
	r, err := open(path, s3cfg)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	set := AffixSet{}
	err = scanLines(r, func(line string) error {
		set[strings.TrimSpace(line)] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return set, nil
}
