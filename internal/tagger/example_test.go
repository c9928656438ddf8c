// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package tagger_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/crfsuitetagger/crfsuitetagger/internal/config"
	"github.com/crfsuitetagger/crfsuitetagger/internal/crfsuite"
	"github.com/crfsuitetagger/crfsuitetagger/internal/tagger"
)

// Example trains a model on a toy corpus, tests it, and reports the
// resulting accuracy - the end-to-end smoke path through the
// orchestrator, runnable as documentation.
func Example() {
	dir, err := os.MkdirTemp("", "crfsuitetagger-demo")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer os.RemoveAll(dir)

	cfg := config.ProgramConfig{
		Tagger: config.TaggerConfig{
			ColumnPreset: "pos",
			Separator:    "\t",
			LabelCol:     "postag",
			GuessCol:     "guesstag",
			Template:     "word:[-1:1];pos:[-1]",
			ModelPath:    filepath.Join(dir, "model.crfsuite"),
			Verbose:      true,
		},
	}

	orch, err := tagger.New(cfg)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	trainCorpus := "The\tD\nquick\tA\nfox\tN\n\nA\tD\nslow\tA\nturtle\tN\n"
	trainData, err := orch.LoadData(trainCorpus)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	crf := crfsuite.NewFake()
	ctx := context.Background()
	if err := orch.Train(ctx, trainData, crf); err != nil {
		fmt.Println("error:", err)
		return
	}

	result, _, err := orch.Test(ctx, trainData, crf)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("accuracy=%.1f\n", *result["Total"].Accuracy)

	// Output:
	// accuracy=1.0
}
