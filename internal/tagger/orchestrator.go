// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package tagger wires the whole pipeline together: it loads resources
// and data, compiles the feature template, wraps the external CRF
// library collaborator (internal/crfsuite) for train/tag, and chains
// extract->train and extract->tag->evaluate. Dependencies are injected
// - the crfsuite.Trainer/Tagger interfaces per call, the optional
// *rundb.Registry as a field - so tests can drive the orchestrator
// without a native CRF library or a shared database.
package tagger

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/crfsuitetagger/crfsuitetagger/internal/config"
	"github.com/crfsuitetagger/crfsuitetagger/internal/crfsuite"
	"github.com/crfsuitetagger/crfsuitetagger/internal/errs"
	"github.com/crfsuitetagger/crfsuitetagger/internal/evaluator"
	"github.com/crfsuitetagger/crfsuitetagger/internal/featextract"
	"github.com/crfsuitetagger/crfsuitetagger/internal/feattmpl"
	"github.com/crfsuitetagger/crfsuitetagger/internal/resource"
	"github.com/crfsuitetagger/crfsuitetagger/internal/rundb"
	"github.com/crfsuitetagger/crfsuitetagger/internal/seqstore"
	"github.com/crfsuitetagger/crfsuitetagger/pkg/log"
)

var taggerLog = log.Component("tagger")

// Orchestrator wires resources, sequence store, feature template,
// feature extractor, and evaluator together with the external CRF
// library collaborator into the train/tag/test operations.
type Orchestrator struct {
	Config    config.ProgramConfig
	Resources resource.Bundle
	Template  *feattmpl.Template

	// Runs is the optional audit trail; nil disables it. New leaves it
	// nil; callers attach a registry explicitly.
	Runs *rundb.Registry

	// NewTagger constructs a fresh, unopened crfsuite.Tagger. Test
	// uses it to open the saved model when the caller does not supply
	// a tagger of its own.
	NewTagger func() crfsuite.Tagger

	// ChunkEvaluator backs Test when Config.Tagger.EvalMode is
	// "chunk". Unused in "pos" mode.
	ChunkEvaluator evaluator.ChunkEvaluator
}

// New loads the resource bundle and compiles the feature template
// named by cfg.Tagger.Template against it. Resources are loaded once
// here and owned by the orchestrator for its lifetime; template
// entries reference them, never copy them.
func New(cfg config.ProgramConfig) (*Orchestrator, error) {
	bundle, err := resource.Load(cfg.Resources.Paths, resource.S3Config(cfg.Resources.S3))
	if err != nil {
		return nil, err
	}

	tmpl := feattmpl.New()
	if err := tmpl.Compile(cfg.Tagger.Template, bundle); err != nil {
		return nil, err
	}

	return &Orchestrator{Config: cfg, Resources: bundle, Template: tmpl}, nil
}

// LoadData reads a sequence store from source per the tagger config's
// column preset/explicit columns and separator.
func (o *Orchestrator) LoadData(source string) (*seqstore.Store, error) {
	cols := o.Config.Tagger.Columns
	if len(cols) == 0 {
		preset, ok := seqstore.ColumnPreset(o.Config.Tagger.ColumnPreset)
		if !ok {
			return nil, errs.Wrap(errs.MissingColumn, "unknown column preset %q", o.Config.Tagger.ColumnPreset)
		}
		cols = preset
	}
	sep := o.Config.Tagger.Separator
	if sep == "" {
		sep = "\t"
	}
	return seqstore.ParseTSV(source, cols, sep)
}

// ConfigDigest fingerprints the sanitized configuration plus the
// compiled template's entry count, so two runs can be compared for
// "same template, same hyperparameters" without storing secrets in
// the audit trail. Tagging must use a template whose entry ordering
// matches the one used at training time; a digest mismatch between a
// train row and a test row flags exactly that.
func (o *Orchestrator) ConfigDigest() string {
	sanitized := config.Sanitized(o.Config)
	encoded, _ := json.Marshal(sanitized)
	sum := sha256.Sum256(append(encoded, []byte(fmt.Sprintf(":%d", len(o.Template.Vec)))...))
	return hex.EncodeToString(sum[:])
}

// Train extracts features and labels from data's labelCol column,
// feeds every (feature-sequence, label-sequence) pair to trainer,
// writes the model file, and persists the sanitized configuration
// beside it so tagging can be reproduced from the model alone.
func (o *Orchestrator) Train(ctx context.Context, data *seqstore.Store, trainer crfsuite.Trainer) (err error) {
	labelCol := o.Config.Tagger.LabelCol
	matrix := featextract.Extract(data, o.Template)
	feats, labels, err := featextract.ZipLabels(data, matrix, labelCol)
	if err != nil {
		return err
	}

	var runID int64
	if o.Runs != nil {
		runID, err = o.Runs.Start(rundb.KindTrain, o.ConfigDigest(), data.Len(), len(feats), o.Config.Tagger.ModelPath)
		if err != nil {
			taggerLog.Errorf("rundb: start train run: %v", err)
		}
		defer func() {
			if runID != 0 {
				if ferr := o.Runs.Finish(runID, nil, err); ferr != nil {
					taggerLog.Errorf("rundb: finish train run: %v", ferr)
				}
			}
		}()
	}

	params := crfsuite.TrainParams{
		Algorithm: o.Config.CRFSuite.Algorithm,
		Params:    o.Config.CRFSuite.Params,
		Verbose:   o.Config.Tagger.Verbose,
	}
	if err = trainer.SetParams(params.ToMap()); err != nil {
		return fmt.Errorf("tagger: set crf params: %w", err)
	}

	for i := range feats {
		if err = trainer.Append(feats[i], labels[i]); err != nil {
			return fmt.Errorf("tagger: append training sequence %d: %w", i, err)
		}
	}

	if err = trainer.Train(o.Config.Tagger.ModelPath); err != nil {
		return fmt.Errorf("tagger: train: %w", err)
	}

	if path := o.Config.Tagger.ConfigSavePath; path != "" {
		if werr := o.writeConfig(path); werr != nil {
			taggerLog.Errorf("persist sanitized config to %q: %v", path, werr)
		}
	}

	taggerLog.Infof("trained model %q on %d sequences (%d records)", o.Config.Tagger.ModelPath, len(feats), data.Len())
	return nil
}

// Tag extracts features, asks tagger for the Viterbi label sequence of
// every sequence, and writes the guess column back in place. Order of
// records in data is unchanged - the sequence views Extract walks are
// borrowed slices of data's own backing arrays
// (seqstore.Store.Sequences).
func (o *Orchestrator) Tag(ctx context.Context, data *seqstore.Store, tagger crfsuite.Tagger) (err error) {
	var runID int64
	if o.Runs != nil {
		runID, err = o.Runs.Start(rundb.KindTag, o.ConfigDigest(), data.Len(), len(data.Sequences()), o.Config.Tagger.ModelPath)
		if err != nil {
			taggerLog.Errorf("rundb: start tag run: %v", err)
		}
		defer func() {
			if runID != 0 {
				if ferr := o.Runs.Finish(runID, nil, err); ferr != nil {
					taggerLog.Errorf("rundb: finish tag run: %v", ferr)
				}
			}
		}()
	}
	return o.tag(data, tagger)
}

// tag is Tag without the audit row; Test uses it so a test run is
// recorded once, as KindTest, not as a tag run nested inside it.
func (o *Orchestrator) tag(data *seqstore.Store, tagger crfsuite.Tagger) error {
	guessCol := o.Config.Tagger.GuessCol
	matrix := featextract.Extract(data, o.Template)

	featSeqs := matrix.Sequences()
	storeSeqs := data.Sequences()
	if len(featSeqs) != len(storeSeqs) {
		return errs.Wrap(errs.PreconditionViolated, "tagger: %d feature sequences vs %d store sequences", len(featSeqs), len(storeSeqs))
	}

	for i, seq := range storeSeqs {
		labels, err := tagger.Tag(featSeqs[i])
		if err != nil {
			return fmt.Errorf("tagger: tag sequence %d: %w", i, err)
		}
		if len(labels) != seq.Len() {
			return errs.Wrap(errs.PreconditionViolated, "tagger: sequence %d produced %d labels for %d tokens", i, len(labels), seq.Len())
		}
		for j, label := range labels {
			seq.SetValue(j, guessCol, label)
		}
	}
	return nil
}

// Test opens the saved model if no tagger is supplied, tags data, then
// runs the configured evaluator.
func (o *Orchestrator) Test(ctx context.Context, data *seqstore.Store, tagger crfsuite.Tagger) (result evaluator.Result, _ *seqstore.Store, err error) {
	if tagger == nil {
		if o.NewTagger == nil {
			return nil, nil, errs.Wrap(errs.PreconditionViolated, "tagger: no tagger supplied and no NewTagger factory configured")
		}
		tagger = o.NewTagger()
		if err = tagger.Open(o.Config.Tagger.ModelPath); err != nil {
			return nil, nil, fmt.Errorf("tagger: open model %q: %w", o.Config.Tagger.ModelPath, err)
		}
	}

	var runID int64
	if o.Runs != nil {
		runID, err = o.Runs.Start(rundb.KindTest, o.ConfigDigest(), data.Len(), len(data.Sequences()), o.Config.Tagger.ModelPath)
		if err != nil {
			taggerLog.Errorf("rundb: start test run: %v", err)
		}
	}

	if err = o.tag(data, tagger); err != nil {
		if runID != 0 {
			_ = o.Runs.Finish(runID, nil, err)
		}
		return nil, nil, err
	}

	switch o.Config.Tagger.EvalMode {
	case "chunk":
		result = evaluator.Chunk(ctx, data, o.ChunkEvaluator, o.Config.Tagger.ConllTmpDir)
	default:
		result = evaluator.POS(data)
	}

	if runID != 0 {
		if ferr := o.Runs.Finish(runID, result, nil); ferr != nil {
			taggerLog.Errorf("rundb: finish test run: %v", ferr)
		}
	}

	return result, data, nil
}

func (o *Orchestrator) writeConfig(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	encoded, err := json.MarshalIndent(config.Sanitized(o.Config), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, encoded, 0o644)
}
