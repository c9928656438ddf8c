// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package feattmpl

// Cols maps logical to physical column names, defaulting to the
// identity over {form, postag, chunktag, netag}, so a template can be
// reused against data whose physical schema renames one of those
// columns.
type Cols map[string]string

// DefaultCols returns the identity mapping over the four logical
// column names built-in feature functions reference.
func DefaultCols() Cols {
	return Cols{
		"form":     "form",
		"postag":   "postag",
		"chunktag": "chunktag",
		"netag":    "netag",
	}
}

// Resolve returns the physical column name for a logical name, falling
// back to the logical name itself if cols has no override.
func (c Cols) Resolve(logical string) string {
	if c == nil {
		return logical
	}
	if phys, ok := c[logical]; ok {
		return phys
	}
	return logical
}
