// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package dsl

import (
	"strings"

	"github.com/crfsuitetagger/crfsuitetagger/internal/errs"
)

// Sink receives the entries a compiled template string implies. It is
// implemented by *feattmpl.Template; keeping the interface here
// (rather than importing feattmpl) lets this package stay ignorant of
// feature functions, window generators, and resource shapes.
type Sink interface {
	// AddFeature appends a single parameterless entry for name.
	AddFeature(name string, params []interface{}) error
	// AddWinFeature fans name out across window via the template's
	// registered (or generic) window generator.
	AddWinFeature(name string, window []int, params []interface{}) error
}

// CompileTemplate parses a feature-template string - semicolon
// separated features, each a bare name or "name:[window],params" - and
// drives sink accordingly. resources maps resource names to their
// loaded handles; when a feature name matches a key in resources, that
// resource is inserted as the first positional parameter ahead of any
// parsed tokens.
func CompileTemplate(s string, resources map[string]interface{}, sink Sink) error {
	s = stripSpaces(s)

	for _, feature := range strings.Split(s, ";") {
		if feature == "" {
			// adjacent ';;', leading ';', trailing ';' are silently skipped.
			continue
		}

		name, rest, hasColon := strings.Cut(feature, ":")
		if name == "" {
			return errs.Wrap(errs.MalformedTemplate, "empty feature name in %q", feature)
		}

		var params []interface{}
		if res, ok := resources[name]; ok {
			params = append(params, res)
		}

		if !hasColon || rest == "" {
			// bare name, or "name:" with nothing after the colon.
			if err := sink.AddFeature(name, params); err != nil {
				return err
			}
			continue
		}

		window := []int{0}
		tail := rest
		if strings.HasPrefix(rest, "[") {
			end := strings.IndexByte(rest, ']')
			if end < 0 {
				return errs.Wrap(errs.MalformedTemplate, "unterminated window in %q", feature)
			}
			w, err := ParseRange(rest[1:end])
			if err != nil {
				return errs.Wrap(errs.MalformedTemplate, "bad window in %q: %v", feature, err)
			}
			window = w
			tail = strings.TrimPrefix(rest[end+1:], ",")
		}

		if tail != "" {
			for _, tok := range strings.Split(tail, ",") {
				params = append(params, tok)
			}
		}

		if err := sink.AddWinFeature(name, window, params); err != nil {
			return err
		}
	}

	return nil
}
