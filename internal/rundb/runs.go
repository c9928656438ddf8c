// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package rundb

import (
	"database/sql"
	"encoding/json"
	"sync"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/crfsuitetagger/crfsuitetagger/internal/evaluator"
)

// Kind distinguishes the three orchestrator operations that get an
// audit row.
type Kind string

const (
	KindTrain Kind = "train"
	KindTag   Kind = "tag"
	KindTest  Kind = "test"
)

// Run is one row of the audit trail: a single train/tag/test
// invocation and its outcome.
type Run struct {
	ID            int64          `db:"id"`
	Kind          string         `db:"kind"`
	StartedAt     int64          `db:"started_at"`
	FinishedAt    sql.NullInt64  `db:"finished_at"`
	ConfigDigest  string         `db:"config_digest"`
	RecordCount   int            `db:"record_count"`
	SequenceCount int            `db:"sequence_count"`
	ModelPath     string         `db:"model_path"`
	AccuracyJSON  sql.NullString `db:"accuracy_json"`
	Error         sql.NullString `db:"error"`
}

const namedRunInsert = `INSERT INTO runs (
	kind, started_at, config_digest, record_count, sequence_count, model_path
) VALUES (
	:kind, :started_at, :config_digest, :record_count, :sequence_count, :model_path
);`

// Registry serializes access to the one sqlite connection (sqlite
// does not multithread; see connection.go's SetMaxOpenConns(1)).
type Registry struct {
	db    *DB
	mutex sync.Mutex
}

// NewRegistry wraps an already-connected DB.
func NewRegistry(db *DB) *Registry { return &Registry{db: db} }

// Start inserts a new in-progress run row and returns its id.
func (r *Registry) Start(kind Kind, configDigest string, recordCount, sequenceCount int, modelPath string) (int64, error) {
	row := Run{
		Kind:          string(kind),
		StartedAt:     time.Now().Unix(),
		ConfigDigest:  configDigest,
		RecordCount:   recordCount,
		SequenceCount: sequenceCount,
		ModelPath:     modelPath,
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()
	res, err := r.db.SQLX.NamedExec(namedRunInsert, row)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Finish marks run id complete, recording its evaluation result (if
// any) and any error encountered.
func (r *Registry) Finish(id int64, result evaluator.Result, runErr error) error {
	q := sq.Update("runs").
		Set("finished_at", time.Now().Unix()).
		Where(sq.Eq{"id": id})

	if result != nil {
		encoded, err := json.Marshal(result)
		if err != nil {
			return err
		}
		q = q.Set("accuracy_json", string(encoded))
	}
	if runErr != nil {
		q = q.Set("error", runErr.Error())
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()
	_, err := q.RunWith(r.db.SQLX.DB).Exec()
	return err
}

// Recent returns the n most recent runs, newest first.
func (r *Registry) Recent(n int) ([]Run, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	query, args, err := sq.Select(
		"id", "kind", "started_at", "finished_at", "config_digest",
		"record_count", "sequence_count", "model_path", "accuracy_json", "error",
	).From("runs").OrderBy("id DESC").Limit(uint64(n)).ToSql()
	if err != nil {
		return nil, err
	}

	var runs []Run
	if err := r.db.SQLX.Select(&runs, query, args...); err != nil {
		return nil, err
	}
	return runs, nil
}
