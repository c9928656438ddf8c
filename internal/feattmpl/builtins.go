// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package feattmpl

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/crfsuitetagger/crfsuitetagger/internal/resource"
	"github.com/crfsuitetagger/crfsuitetagger/internal/seqstore"
)

const noneAtom = "None"

var isnumRe = regexp.MustCompile(`^[0-9/]+`)

// colAt resolves logical at idx=i+rel through cols, reporting whether
// the index is in bounds and the column exists. Out-of-bounds reads
// are not errors: callers render noneAtom, so the model sees an
// explicit absent-context feature.
func colAt(seq *seqstore.Store, idx int, cols Cols, logical string) (string, bool) {
	if idx < 0 || idx >= seq.Len() {
		return "", false
	}
	phys := cols.Resolve(logical)
	if _, ok := seq.ColumnIndex(phys); !ok {
		return "", false
	}
	return seq.Value(idx, phys), true
}

func pyBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

func extraInt(e Entry, def int) int {
	if e.Extra == nil {
		return def
	}
	v, err := strconv.Atoi(*e.Extra)
	if err != nil {
		return def
	}
	return v
}

func word(seq *seqstore.Store, i int, cols Cols, e Entry) string {
	v, ok := colAt(seq, i+e.Offset, cols, "form")
	if !ok {
		v = noneAtom
	}
	return fmt.Sprintf("w[%d]=%s", e.Offset, v)
}

func pos(seq *seqstore.Store, i int, cols Cols, e Entry) string {
	v, ok := colAt(seq, i+e.Offset, cols, "postag")
	if !ok {
		v = noneAtom
	}
	return fmt.Sprintf("p[%d]=%s", e.Offset, v)
}

func chunk(seq *seqstore.Store, i int, cols Cols, e Entry) string {
	v, ok := colAt(seq, i+e.Offset, cols, "chunktag")
	if !ok {
		v = noneAtom
	}
	return fmt.Sprintf("ch[%d]=%s", e.Offset, v)
}

func canonicalize(form string) string {
	var b strings.Builder
	for _, r := range form {
		switch {
		case r >= '0' && r <= '9':
			b.WriteByte('#')
		case r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			b.WriteByte('x')
		default:
			b.WriteByte('*')
		}
	}
	return b.String()
}

func can(seq *seqstore.Store, i int, cols Cols, e Entry) string {
	v, ok := colAt(seq, i+e.Offset, cols, "form")
	if !ok {
		v = noneAtom
	} else {
		v = canonicalize(v)
	}
	return fmt.Sprintf("can[%d]=%s", e.Offset, v)
}

func isnum(seq *seqstore.Store, i int, cols Cols, e Entry) string {
	v, ok := colAt(seq, i+e.Offset, cols, "form")
	val := noneAtom
	if ok {
		val = pyBool(isnumRe.MatchString(v))
	}
	return fmt.Sprintf("isnum[%d]=%s", e.Offset, val)
}

func ln(seq *seqstore.Store, i int, cols Cols, e Entry) string {
	v, ok := colAt(seq, i+e.Offset, cols, "form")
	val := noneAtom
	if ok {
		val = strconv.Itoa(len(v))
	}
	return fmt.Sprintf("ln[%d]=%s", e.Offset, val)
}

func short(seq *seqstore.Store, i int, cols Cols, e Entry) string {
	v, ok := colAt(seq, i+e.Offset, cols, "form")
	val := noneAtom
	if ok {
		val = pyBool(len(v) < extraInt(e, 2))
	}
	return fmt.Sprintf("short[%d]=%s", e.Offset, val)
}

func long(seq *seqstore.Store, i int, cols Cols, e Entry) string {
	v, ok := colAt(seq, i+e.Offset, cols, "form")
	val := noneAtom
	if ok {
		val = pyBool(len(v) > extraInt(e, 12))
	}
	return fmt.Sprintf("long[%d]=%s", e.Offset, val)
}

func brown(seq *seqstore.Store, i int, cols Cols, e Entry) string {
	pref := "full"
	val := noneAtom
	if form, ok := colAt(seq, i+e.Offset, cols, "form"); ok {
		if cm, ok := e.Resource.(resource.ClusterMap); ok {
			if cid, found := cm[form]; found {
				val = cid
				if e.Extra != nil {
					if p := extraInt(e, 0); p > 0 {
						if p < len(val) {
							val = val[:p]
						}
						pref = *e.Extra
					}
				}
			}
		}
	}
	return fmt.Sprintf("cn[%d]:%s=%s", e.Offset, pref, val)
}

func cls(seq *seqstore.Store, i int, cols Cols, e Entry) string {
	val := noneAtom
	if form, ok := colAt(seq, i+e.Offset, cols, "form"); ok {
		if cm, ok := e.Resource.(resource.ClusterMap); ok {
			if cid, found := cm[form]; found {
				val = cid
			}
		}
	}
	return fmt.Sprintf("cnum[%d]=%s", e.Offset, val)
}

func emb(seq *seqstore.Store, i int, cols Cols, e Entry) string {
	j := 0
	if e.EmbDim != nil {
		j = *e.EmbDim
	}
	val := noneAtom
	if form, ok := colAt(seq, i+e.Offset, cols, "form"); ok {
		if em, ok := e.Resource.(*resource.EmbeddingMap); ok && em != nil {
			if vec, found := em.Vectors[form]; found && j >= 0 && j < len(vec) {
				val = strconv.FormatFloat(vec[j], 'g', -1, 64)
			}
		}
	}
	return fmt.Sprintf("emb[%d][%d]=%s", e.Offset, j, val)
}

func ngramFeature(label, logical string) FeatureFunc {
	return func(seq *seqstore.Store, i int, cols Cols, e Entry) string {
		n := 2
		if e.NgramN != nil {
			n = *e.NgramN
		}
		val := noneAtom
		start := i + e.Offset
		if start >= 0 && start+n <= seq.Len() {
			parts := make([]string, 0, n)
			ok := true
			for k := 0; k < n; k++ {
				v, found := colAt(seq, start+k, cols, logical)
				if !found {
					ok = false
					break
				}
				parts = append(parts, v)
			}
			if ok {
				val = strings.Join(parts, "")
			}
		}
		return fmt.Sprintf("%d%s[%d]=%s", n, label, e.Offset, val)
	}
}

func affixFeature(tag string, usePrefix bool) FeatureFunc {
	return func(seq *seqstore.Store, i int, cols Cols, e Entry) string {
		val := noneAtom
		if form, ok := colAt(seq, i+e.Offset, cols, "form"); ok {
			set, _ := e.Resource.(resource.AffixSet)
			maxLen := extraInt(e, defaultAffixCap)
			if a := longestAffix(form, set, maxLen, usePrefix); a != "" {
				val = a
			}
		}
		return fmt.Sprintf("%ssfx[%d]=%s", tag, e.Offset, val)
	}
}

// defaultFnRegistry returns the built-in feature function registry.
func defaultFnRegistry() map[string]FeatureFunc {
	return map[string]FeatureFunc{
		"word":      word,
		"pos":       pos,
		"chunk":     chunk,
		"can":       can,
		"isnum":     isnum,
		"ln":        ln,
		"short":     short,
		"long":      long,
		"brown":     brown,
		"cls":       cls,
		"emb":       emb,
		"nword":     ngramFeature("w", "form"),
		"npos":      ngramFeature("p", "postag"),
		"nchunk":    ngramFeature("ch", "chunktag"),
		"suff":      affixFeature("", false),
		"pref":      affixFeature("", true),
		"medpref":   affixFeature("med", true),
		"medsuff":   affixFeature("med", false),
		"nounsuff":  affixFeature("noun", false),
		"verbsuff":  affixFeature("verb", false),
		"adjsuff":   affixFeature("adj", false),
		"advsuff":   affixFeature("adv", false),
		"inflsuff":  affixFeature("infl", false),
	}
}

// classifierResourceAlias maps the classifier-tagged affix feature
// names to the resource bundle key they draw their AffixSet from -
// these names never equal a resource key themselves (unlike suff and
// pref, which are the resource names too), so the compiler injects
// the resource by alias instead of by literal name match.
var classifierResourceAlias = map[string]string{
	"medpref":  "pref",
	"medsuff":  "suff",
	"nounsuff": "suff",
	"verbsuff": "suff",
	"adjsuff":  "suff",
	"advsuff":  "suff",
	"inflsuff": "suff",
}
