// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package errs defines the error kinds used across the tagger pipeline
// as sentinel values that compose with errors.Is/errors.As, following
// the wrapped-error style used throughout this codebase
// (fmt.Errorf("...: %w", err)) rather than a custom exception hierarchy.
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies a pipeline failure by where it originated.
type Kind error

var (
	MalformedRange       Kind = errors.New("malformed range")
	MalformedTemplate    Kind = errors.New("malformed feature template")
	SchemaMismatch       Kind = errors.New("schema mismatch")
	UnknownResource      Kind = errors.New("unknown resource")
	UnknownFeature       Kind = errors.New("unknown feature")
	MissingColumn        Kind = errors.New("missing column")
	ExternalToolFailure  Kind = errors.New("external tool failure")
	PreconditionViolated Kind = errors.New("precondition violated")
)

// Wrap annotates kind with context, preserving errors.Is(err, kind).
func Wrap(kind Kind, format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), kind)
}
