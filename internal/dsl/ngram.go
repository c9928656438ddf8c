// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package dsl

// ParseNgramRange consumes a flat window list W and an n-gram size n
// and returns the starting indices of full n-grams contained in
// maximal consecutive runs of W. A run "a, a+1, ..., a+k" contributes
// the starts "a, a+1, ..., a+k-n+1" (nothing if the run is shorter
// than n).
func ParseNgramRange(window []int, n int) []int {
	if n <= 0 {
		n = 2
	}

	var out []int
	i := 0
	for i < len(window) {
		j := i
		for j+1 < len(window) && window[j+1] == window[j]+1 {
			j++
		}
		// run is window[i:j+1], length j-i+1
		runLen := j - i + 1
		for k := 0; k <= runLen-n; k++ {
			out = append(out, window[i+k])
		}
		i = j + 1
	}
	return out
}
