// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package resource

import (
	"github.com/crfsuitetagger/crfsuitetagger/internal/errs"
)

// Bundle maps a resource name to its loaded handle. It is loaded once
// at orchestrator construction and shared by reference thereafter
// (never copied, never mutated after Load returns).
type Bundle map[string]interface{}

// Load resolves each entry of paths (resource name to filesystem/S3
// path) against the closed set of recognized readers and returns the
// resulting Bundle. An unrecognized name fails the whole load - the
// set of resource readers is closed at build time.
func Load(paths map[string]string, s3cfg S3Config) (Bundle, error) {
	b := Bundle{}
	for name, path := range paths {
		switch name {
		case "brown":
			cm, err := ReadBrown(path, s3cfg)
			if err != nil {
				return nil, err
			}
			b[name] = cm
		case "cls":
			cm, err := ReadCls(path, s3cfg)
			if err != nil {
				return nil, err
			}
			b[name] = cm
		case "emb":
			em, err := ReadEmb(path, s3cfg)
			if err != nil {
				return nil, err
			}
			b[name] = em
		case "suff":
			as, err := ReadSuff(path, s3cfg)
			if err != nil {
				return nil, err
			}
			b[name] = as
		case "pref":
			as, err := ReadPref(path, s3cfg)
			if err != nil {
				return nil, err
			}
			b[name] = as
		default:
			return nil, errs.Wrap(errs.UnknownResource, "unknown resource name %q", name)
		}
	}
	return b, nil
}
