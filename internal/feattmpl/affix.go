// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package feattmpl

import "github.com/crfsuitetagger/crfsuitetagger/internal/resource"

// defaultAffixCap bounds how many characters of a form are considered
// when searching for the longest known affix. 10 bytes covers English
// derivational and inflectional suffixes/prefixes without scanning the
// whole word.
const defaultAffixCap = 10

// longestAffix returns the longest prefix (or, if !prefix, suffix) of
// form of length <= maxLen that is a member of set, or "" if none match.
func longestAffix(form string, set resource.AffixSet, maxLen int, prefix bool) string {
	if set == nil {
		return ""
	}
	max := maxLen
	if max > len(form) {
		max = len(form)
	}
	for l := max; l >= 1; l-- {
		var atom string
		if prefix {
			atom = form[:l]
		} else {
			atom = form[len(form)-l:]
		}
		if set.Contains(atom) {
			return atom
		}
	}
	return ""
}
