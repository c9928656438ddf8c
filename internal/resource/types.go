// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package resource

// ClusterMap maps a word form to its cluster identifier. Used by both
// the brown and cls readers.
type ClusterMap map[string]string

// EmbeddingMap maps a word form to a fixed-length numeric vector. Dim
// is the shared vector length; it is zero only for an empty map.
type EmbeddingMap struct {
	Vectors map[string][]float64
	Dim     int
}

// AffixSet is a set of known prefix or suffix strings.
type AffixSet map[string]struct{}

// Contains reports whether s is a member of the set.
func (a AffixSet) Contains(s string) bool {
	_, ok := a[s]
	return ok
}
