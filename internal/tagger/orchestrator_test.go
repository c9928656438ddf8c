// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package tagger

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crfsuitetagger/crfsuitetagger/internal/config"
	"github.com/crfsuitetagger/crfsuitetagger/internal/crfsuite"
	"github.com/crfsuitetagger/crfsuitetagger/internal/rundb"
)

const corpus = "The\tD\nquick\tA\nfox\tN\n\nA\tD\nslow\tA\nturtle\tN\n"

func newTestOrchestrator(t *testing.T, modelPath string) *Orchestrator {
	t.Helper()
	cfg := config.ProgramConfig{
		Tagger: config.TaggerConfig{
			ColumnPreset: "pos",
			Separator:    "\t",
			LabelCol:     "postag",
			GuessCol:     "guesstag",
			Template:     "word:[-1:1];pos:[-1]",
			ModelPath:    modelPath,
			Verbose:      true,
		},
	}
	o, err := New(cfg)
	require.NoError(t, err)
	return o
}

func TestTrainTagRoundTrip(t *testing.T) {
	modelPath := filepath.Join(t.TempDir(), "model.crfsuite")
	o := newTestOrchestrator(t, modelPath)

	train, err := o.LoadData(corpus)
	require.NoError(t, err)

	fake := crfsuite.NewFake()
	require.NoError(t, o.Train(context.Background(), train, fake))

	tagData, err := o.LoadData(corpus)
	require.NoError(t, err)

	require.NoError(t, o.Tag(context.Background(), tagData, fake))

	for i := 0; i < tagData.Len(); i++ {
		assert.Equal(t, tagData.Value(i, "postag"), tagData.Value(i, "guesstag"),
			"fake trainer memorized every row, so tagging the training data should reproduce it exactly")
	}
}

func TestTestWritesSavedConfigAndEvaluates(t *testing.T) {
	dir := t.TempDir()
	modelPath := filepath.Join(dir, "model.crfsuite")
	o := newTestOrchestrator(t, modelPath)
	o.Config.Tagger.ConfigSavePath = filepath.Join(dir, "config.json")

	train, err := o.LoadData(corpus)
	require.NoError(t, err)

	fake := crfsuite.NewFake()
	require.NoError(t, o.Train(context.Background(), train, fake))

	_, err = os.Stat(o.Config.Tagger.ConfigSavePath)
	require.NoError(t, err, "Train must persist the sanitized config beside the model")

	testData, err := o.LoadData(corpus)
	require.NoError(t, err)

	result, out, err := o.Test(context.Background(), testData, fake)
	require.NoError(t, err)
	require.NotNil(t, out)
	require.Contains(t, result, "Total")
	assert.Equal(t, 1.0, *result["Total"].Accuracy)
}

func TestTestRequiresTaggerOrFactory(t *testing.T) {
	o := newTestOrchestrator(t, filepath.Join(t.TempDir(), "model.crfsuite"))
	data, err := o.LoadData(corpus)
	require.NoError(t, err)

	_, _, err = o.Test(context.Background(), data, nil)
	assert.Error(t, err)
}

func TestTestOpensModelViaFactoryWhenNoTaggerSupplied(t *testing.T) {
	modelPath := filepath.Join(t.TempDir(), "model.crfsuite")
	o := newTestOrchestrator(t, modelPath)

	train, err := o.LoadData(corpus)
	require.NoError(t, err)

	fake := crfsuite.NewFake()
	require.NoError(t, o.Train(context.Background(), train, fake))

	o.NewTagger = func() crfsuite.Tagger { return fake }

	testData, err := o.LoadData(corpus)
	require.NoError(t, err)

	result, _, err := o.Test(context.Background(), testData, nil)
	require.NoError(t, err)
	assert.Equal(t, 1.0, *result["Total"].Accuracy)
}

func TestTrainAndTestRecordRunsWhenRegistryConfigured(t *testing.T) {
	dir := t.TempDir()
	modelPath := filepath.Join(dir, "model.crfsuite")
	o := newTestOrchestrator(t, modelPath)

	db, err := rundb.Connect("sqlite3", filepath.Join(dir, "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	o.Runs = rundb.NewRegistry(db)

	train, err := o.LoadData(corpus)
	require.NoError(t, err)
	fake := crfsuite.NewFake()
	require.NoError(t, o.Train(context.Background(), train, fake))

	testData, err := o.LoadData(corpus)
	require.NoError(t, err)
	_, _, err = o.Test(context.Background(), testData, fake)
	require.NoError(t, err)

	runs, err := o.Runs.Recent(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.True(t, runs[0].FinishedAt.Valid)
	assert.True(t, runs[1].FinishedAt.Valid)
}

func TestTagRecordsItsOwnRunKind(t *testing.T) {
	dir := t.TempDir()
	o := newTestOrchestrator(t, filepath.Join(dir, "model.crfsuite"))

	db, err := rundb.Connect("sqlite3", filepath.Join(dir, "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	o.Runs = rundb.NewRegistry(db)

	train, err := o.LoadData(corpus)
	require.NoError(t, err)
	fake := crfsuite.NewFake()
	require.NoError(t, o.Train(context.Background(), train, fake))

	tagData, err := o.LoadData(corpus)
	require.NoError(t, err)
	require.NoError(t, o.Tag(context.Background(), tagData, fake))

	runs, err := o.Runs.Recent(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, string(rundb.KindTag), runs[0].Kind)
	assert.Equal(t, string(rundb.KindTrain), runs[1].Kind)
}
