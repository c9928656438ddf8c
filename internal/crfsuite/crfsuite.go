// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package crfsuite defines the external CRF library contract. The
// rest of the pipeline never depends on any internal representation of
// the CRF: it only drives a Trainer/Tagger pair through these two
// interfaces, so any native linear-chain CRF binding can slot in.
package crfsuite

// TrainParams carries the crfsuite configuration section plus the
// verbose/quiet trainer flag (default true).
type TrainParams struct {
	Algorithm string
	Params    map[string]string
	Verbose   bool
}

// ToMap flattens TrainParams into the plain map Trainer.SetParams
// expects: every entry of Params, plus "algorithm" and "verbose".
func (p TrainParams) ToMap() map[string]string {
	out := make(map[string]string, len(p.Params)+2)
	for k, v := range p.Params {
		out[k] = v
	}
	if p.Algorithm != "" {
		out["algorithm"] = p.Algorithm
	}
	if p.Verbose {
		out["verbose"] = "true"
	} else {
		out["verbose"] = "false"
	}
	return out
}

// Trainer is the external CRF trainer collaborator: configure it,
// append every (feature-sequence, label-sequence) pair of the training
// corpus, then ask it to emit a model file.
type Trainer interface {
	// SetParams configures the trainer's hyperparameters before any
	// sequence is appended.
	SetParams(params map[string]string) error
	// Append adds one training sequence. featureRows[i] holds the
	// feature atoms for the token labelRows[i] names.
	Append(featureRows [][]string, labelRows []string) error
	// Train runs the optimizer and writes the resulting model to
	// modelPath.
	Train(modelPath string) error
}

// Tagger is the external CRF tagger collaborator: open a model file
// once, then ask it for the Viterbi label sequence of any number of
// feature sequences.
type Tagger interface {
	// Open loads a model previously produced by Trainer.Train.
	Open(modelPath string) error
	// Tag returns the most likely label for every row of featureRows.
	Tag(featureRows [][]string) ([]string, error)
}
