// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package config holds the orchestrator's configuration: the tagger,
// crfsuite, and resources sections, plus the rundb section for the
// audit trail of internal/rundb. Follows the package-global Keys +
// Init(path) pattern, with an embedded-FS jsonschema loader for
// validation.
package config

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/crfsuitetagger/crfsuitetagger/internal/errs"
	"github.com/crfsuitetagger/crfsuitetagger/pkg/log"
)

//go:embed schemas/*
var schemaFiles embed.FS

func init() {
	jsonschema.Loaders["embedfs"] = func(s string) (io.ReadCloser, error) {
		u, err := url.Parse(s)
		if err != nil {
			return nil, err
		}
		return schemaFiles.Open(u.Host + u.Path)
	}
}

// TaggerConfig is the "tagger" section: how to load data, what
// template to compile, and where to persist the model.
type TaggerConfig struct {
	Columns        []string `json:"columns,omitempty"`
	ColumnPreset   string   `json:"columnPreset"`
	Separator      string   `json:"separator"`
	LabelCol       string   `json:"labelCol"`
	GuessCol       string   `json:"guessCol"`
	Template       string   `json:"template"`
	ModelPath      string   `json:"modelPath"`
	ConfigSavePath string   `json:"configSavePath"`
	// Verbose is passed through to the CRF trainer; default true.
	Verbose     bool   `json:"verbose"`
	EvalMode    string `json:"evalMode"`
	ConllScript string `json:"conllScript"`
	ConllTmpDir string `json:"conllTmpDir"`
}

// CRFSuiteConfig is the "crfsuite" section: hyperparameters handed to
// the external trainer verbatim.
type CRFSuiteConfig struct {
	Algorithm string            `json:"algorithm"`
	Params    map[string]string `json:"params,omitempty"`
}

// S3Config mirrors internal/resource.S3Config for JSON decoding.
type S3Config struct {
	Endpoint     string `json:"endpoint,omitempty"`
	AccessKey    string `json:"accessKey,omitempty"`
	SecretKey    string `json:"secretKey,omitempty"`
	Region       string `json:"region,omitempty"`
	UsePathStyle bool   `json:"usePathStyle,omitempty"`
}

// ResourcesConfig is the "resources" section: resource name to path
// (local or s3://), plus the S3 client options used for s3:// paths.
type ResourcesConfig struct {
	Paths map[string]string `json:"paths,omitempty"`
	S3    S3Config          `json:"s3,omitempty"`
}

// RunDBConfig is the "rundb" section: the sqlite run-registry audit
// trail for train/tag/test invocations.
type RunDBConfig struct {
	Driver string `json:"driver,omitempty"`
	DSN    string `json:"dsn,omitempty"`
}

// ProgramConfig is the full decoded configuration.
type ProgramConfig struct {
	Tagger    TaggerConfig    `json:"tagger"`
	CRFSuite  CRFSuiteConfig  `json:"crfsuite"`
	Resources ResourcesConfig `json:"resources"`
	RunDB     RunDBConfig     `json:"rundb"`
}

// Keys holds the process-wide decoded configuration, populated by
// Init.
var Keys = ProgramConfig{
	Tagger: TaggerConfig{
		Separator:   "\t",
		LabelCol:    "postag",
		GuessCol:    "guesstag",
		Verbose:     true,
		EvalMode:    "pos",
		ConllTmpDir: "tmp",
	},
	RunDB: RunDBConfig{
		Driver: "sqlite3",
		DSN:    "./var/runs.db",
	},
}

var cfgLog = log.Component("config")

// Init reads, validates, and decodes the configuration file at path
// into Keys, then tilde-expands every path-shaped field.
func Init(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %q: %w", path, err)
	}

	if err := validate(raw); err != nil {
		return errs.Wrap(errs.SchemaMismatch, "config: validate %q: %v", path, err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	cfg := Keys
	if err := dec.Decode(&cfg); err != nil {
		return fmt.Errorf("config: decode %q: %w", path, err)
	}

	ExpandPaths(&cfg)
	Keys = cfg
	cfgLog.Infof("loaded configuration from %q", path)
	return nil
}

func validate(raw []byte) error {
	s, err := jsonschema.Compile("embedFS://schemas/config.schema.json")
	if err != nil {
		return err
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return err
	}
	return s.Validate(v)
}

// Sanitized returns a copy of cfg with every path-shaped field elided,
// suitable for persisting beside a trained model: the template string
// and hyperparameters are reproducible from the copy, but
// filesystem/S3 locations - which vary by deployment - are not leaked
// into the artifact.
func Sanitized(cfg ProgramConfig) ProgramConfig {
	out := cfg
	out.Tagger.ModelPath = ""
	out.Tagger.ConfigSavePath = ""
	out.Tagger.ConllScript = ""
	out.Tagger.ConllTmpDir = ""
	out.Resources.Paths = nil
	out.Resources.S3 = S3Config{}
	out.RunDB.DSN = ""
	return out
}
