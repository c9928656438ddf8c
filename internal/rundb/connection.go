// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package rundb is the orchestrator's audit trail: a sqlite-backed
// registry recording every train/tag/test invocation of
// internal/tagger - timestamp, config digest, record/sequence counts,
// and accuracy summary. Connect returns a fresh handle per call rather
// than a package-global singleton: an orchestrator owns its run
// registry for its own lifetime, and more than one orchestrator - or
// more than one test - may point at different DSNs within the same
// process.
package rundb

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
	"github.com/qustavo/sqlhooks/v2"

	"github.com/crfsuitetagger/crfsuitetagger/pkg/log"
)

var rundbLog = log.Component("rundb")

// DB wraps the connection the run registry reads and writes through.
type DB struct {
	SQLX *sqlx.DB
}

var driverReg sync.Once

// Connect opens a sqlite3 connection at dsn, wrapped with
// query-timing hooks via sqlhooks.Wrap, and migrates it to the latest
// schema before returning.
func Connect(driver, dsn string) (*DB, error) {
	if driver != "sqlite3" {
		return nil, fmt.Errorf("rundb: unsupported driver %q", driver)
	}

	driverReg.Do(func() {
		sql.Register("sqlite3WithHooks", sqlhooks.Wrap(&sqlite3.SQLiteDriver{}, &hooks{}))
	})

	handle, err := sqlx.Open("sqlite3WithHooks", fmt.Sprintf("%s?_foreign_keys=on", dsn))
	if err != nil {
		return nil, fmt.Errorf("rundb: open %q: %w", dsn, err)
	}
	// sqlite does not multithread; one connection avoids waiting on
	// locks.
	handle.SetMaxOpenConns(1)

	if err := runMigrations(dsn); err != nil {
		handle.Close()
		return nil, fmt.Errorf("rundb: migrate %q: %w", dsn, err)
	}

	rundbLog.Infof("connected to run registry %q", dsn)
	return &DB{SQLX: handle}, nil
}

// Close releases the underlying connection.
func (d *DB) Close() error { return d.SQLX.Close() }
