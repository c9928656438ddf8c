// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfig = `{
	"tagger": {
		"columnPreset": "pos",
		"labelCol": "postag",
		"template": "word:[-1:1];pos:[0]",
		"modelPath": "model.crfsuite"
	},
	"crfsuite": {
		"algorithm": "lbfgs",
		"params": {"c1": "0.1"}
	},
	"resources": {
		"paths": {"brown": "~/data/brown.txt"}
	}
}`

func TestInitValid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(validConfig), 0o644))

	require.NoError(t, Init(path))
	assert.Equal(t, "pos", Keys.Tagger.ColumnPreset)
	assert.Equal(t, "lbfgs", Keys.CRFSuite.Algorithm)
	assert.True(t, Keys.Tagger.Verbose)
}

func TestInitExpandsTilde(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(validConfig), 0o644))

	require.NoError(t, Init(path))

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "data/brown.txt"), Keys.Resources.Paths["brown"])
}

func TestInitRejectsMissingRequired(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"tagger": {}}`), 0o644))

	err := Init(path)
	assert.Error(t, err)
}

func TestSanitizedElidesPaths(t *testing.T) {
	cfg := ProgramConfig{
		Tagger: TaggerConfig{
			ModelPath:      "/secret/model.crfsuite",
			ConfigSavePath: "/secret/config.json",
			Template:       "word:[-1:1]",
		},
		Resources: ResourcesConfig{
			Paths: map[string]string{"brown": "/secret/brown.txt"},
			S3:    S3Config{AccessKey: "AKIA...", SecretKey: "shh"},
		},
		RunDB: RunDBConfig{DSN: "/secret/runs.db"},
	}

	s := Sanitized(cfg)
	assert.Empty(t, s.Tagger.ModelPath)
	assert.Empty(t, s.Tagger.ConfigSavePath)
	assert.Nil(t, s.Resources.Paths)
	assert.Empty(t, s.Resources.S3.AccessKey)
	assert.Empty(t, s.RunDB.DSN)
	assert.Equal(t, "word:[-1:1]", s.Tagger.Template, "non-path fields survive sanitization")
}
