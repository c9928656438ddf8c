// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
)

// ExpandPaths tilde-expands every string field of cfg, at any depth
// (structs, and the values of map[string]string fields such as
// Resources.Paths): a leading "~/" is replaced with the current user's
// home directory.
func ExpandPaths(cfg *ProgramConfig) {
	expandValue(reflect.ValueOf(cfg).Elem())
}

func expandValue(v reflect.Value) {
	switch v.Kind() {
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			expandValue(v.Field(i))
		}
	case reflect.Map:
		if v.IsNil() || v.Type().Elem().Kind() != reflect.String {
			return
		}
		for _, k := range v.MapKeys() {
			s := v.MapIndex(k).String()
			if expanded, changed := expandTilde(s); changed {
				v.SetMapIndex(k, reflect.ValueOf(expanded))
			}
		}
	case reflect.Slice:
		if v.Type().Elem().Kind() != reflect.String {
			return
		}
		for i := 0; i < v.Len(); i++ {
			if expanded, changed := expandTilde(v.Index(i).String()); changed {
				v.Index(i).SetString(expanded)
			}
		}
	case reflect.String:
		if v.CanSet() {
			if expanded, changed := expandTilde(v.String()); changed {
				v.SetString(expanded)
			}
		}
	}
}

func expandTilde(s string) (string, bool) {
	if !strings.HasPrefix(s, "~/") {
		return s, false
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return s, false
	}
	return filepath.Join(home, s[2:]), true
}
