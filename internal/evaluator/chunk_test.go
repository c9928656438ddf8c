// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package evaluator

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crfsuitetagger/crfsuitetagger/internal/seqstore"
)

type fakeEvaluator struct {
	report string
	err    error
	called bool
	path   string
}

func (f *fakeEvaluator) Evaluate(ctx context.Context, path string) (string, error) {
	f.called = true
	f.path = path
	return f.report, f.err
}

const conllReport = `
  NP    & 92.00\% & 91.00\% & 91.49 \\
  VP    & 88.00\% & 85.00\% & 86.47 \\
  Overall & 90.00\% & 89.00\% & 89.49 \\
`

func TestChunk_ParsesReportAndRenamesOverall(t *testing.T) {
	store, err := seqstore.ParseTSV("The\tD\tNP\n", []string{"form", "postag", "chunktag"}, "\t")
	require.NoError(t, err)

	fake := &fakeEvaluator{report: conllReport}
	result := Chunk(context.Background(), store, fake, filepath.Join(t.TempDir(), "tmp"))

	require.True(t, fake.called)
	require.Contains(t, result, TotalKey)
	assert.InDelta(t, 90.0, *result[TotalKey].Precision, 1e-9)
	assert.InDelta(t, 91.49, *result["NP"].FScore, 1e-9)
	assert.NotContains(t, result, "Overall")
}

func TestChunk_EvaluatorFailureYieldsEmptyResult(t *testing.T) {
	store, err := seqstore.ParseTSV("The\tD\tNP\n", []string{"form", "postag", "chunktag"}, "\t")
	require.NoError(t, err)

	fake := &fakeEvaluator{err: errors.New("boom")}
	result := Chunk(context.Background(), store, fake, filepath.Join(t.TempDir(), "tmp"))
	assert.Empty(t, result)
}

func TestChunk_ExportsCleanupsTempFile(t *testing.T) {
	store, err := seqstore.ParseTSV("The\tD\tNP\n", []string{"form", "postag", "chunktag"}, "\t")
	require.NoError(t, err)

	var capturedPath string
	fake := &fakeEvaluator{report: conllReport}
	Chunk(context.Background(), store, fake, filepath.Join(t.TempDir(), "tmp"))
	capturedPath = fake.path
	assert.NotEmpty(t, capturedPath)
	assert.NoFileExists(t, capturedPath)
}
