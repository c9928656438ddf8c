// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package rundb

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crfsuitetagger/crfsuitetagger/internal/evaluator"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "runs.db")
	db, err := Connect("sqlite3", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestStartAndFinish(t *testing.T) {
	reg := NewRegistry(openTestDB(t))

	id, err := reg.Start(KindTrain, "digest123", 100, 5, "model.crfsuite")
	require.NoError(t, err)
	assert.NotZero(t, id)

	acc := 0.9
	result := evaluator.Result{"Total": {Accuracy: &acc}}
	require.NoError(t, reg.Finish(id, result, nil))

	runs, err := reg.Recent(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, string(KindTrain), runs[0].Kind)
	assert.Equal(t, "digest123", runs[0].ConfigDigest)
	assert.True(t, runs[0].FinishedAt.Valid)
	assert.Contains(t, runs[0].AccuracyJSON.String, "0.9")
}

func TestFinishRecordsError(t *testing.T) {
	reg := NewRegistry(openTestDB(t))

	id, err := reg.Start(KindTag, "digest", 10, 1, "")
	require.NoError(t, err)

	require.NoError(t, reg.Finish(id, nil, errors.New("boom")))

	runs, err := reg.Recent(1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "boom", runs[0].Error.String)
}

func TestRecentOrdersNewestFirst(t *testing.T) {
	reg := NewRegistry(openTestDB(t))

	id1, err := reg.Start(KindTrain, "a", 1, 1, "")
	require.NoError(t, err)
	id2, err := reg.Start(KindTag, "b", 1, 1, "")
	require.NoError(t, err)

	runs, err := reg.Recent(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, id2, runs[0].ID)
	assert.Equal(t, id1, runs[1].ID)
}
