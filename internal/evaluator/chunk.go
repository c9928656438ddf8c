// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package evaluator

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/crfsuitetagger/crfsuitetagger/internal/seqstore"
	"github.com/crfsuitetagger/crfsuitetagger/pkg/log"
)

// ChunkEvaluator is the external CoNLL scoring collaborator: one
// method, so a future native reimplementation can swap in without
// touching Chunk's caller.
type ChunkEvaluator interface {
	Evaluate(ctx context.Context, path string) (string, error)
}

// PerlConllEvaluator shells out to the classic conll_eval.pl script.
type PerlConllEvaluator struct {
	ScriptPath string
	WorkDir    string
}

func (p *PerlConllEvaluator) Evaluate(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	cmd := exec.CommandContext(ctx, "perl", p.ScriptPath, "-l")
	cmd.Dir = p.WorkDir
	cmd.Stdin = f

	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return "", err
	}
	return out.String(), nil
}

var chunkLog = log.Component("evaluator")

// Chunk exports (form, postag, chunktag, guesstag) to a randomly-named
// temp file under tmpDir, invokes eval on it, and parses the
// ampersand-delimited tabular report. Failures are caught, logged, and
// yield an empty result - the external script never takes down the
// orchestrator.
func Chunk(ctx context.Context, store *seqstore.Store, eval ChunkEvaluator, tmpDir string) Result {
	if err := os.MkdirAll(tmpDir, 0o750); err != nil {
		chunkLog.Errorf("create tmp dir %q: %v", tmpDir, err)
		return Result{}
	}

	path := filepath.Join(tmpDir, "chdata."+uuid.NewString()+".tmp")
	f, err := os.Create(path)
	if err != nil {
		chunkLog.Errorf("create temp export file: %v", err)
		return Result{}
	}
	defer os.Remove(path)

	err = seqstore.Export(store, f, []string{"form", "postag", "chunktag", "guesstag"}, " ")
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		chunkLog.Errorf("export chunk eval data: %v", err)
		return Result{}
	}

	report, err := eval.Evaluate(ctx, path)
	if err != nil {
		chunkLog.Errorf("conll evaluator failed: %v", err)
		return Result{}
	}

	return parseConllTable(report)
}

// parseConllTable parses rows of the shape
// "category & precision & recall & f-score" (with trailing LaTeX
// artefacts such as "\\" stripped), renaming the "Overall" row to
// Total.
func parseConllTable(report string) Result {
	result := Result{}
	scanner := bufio.NewScanner(strings.NewReader(report))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.Contains(line, "&") {
			continue
		}

		fields := strings.Split(line, "&")
		for i, f := range fields {
			fields[i] = strings.TrimSpace(strings.Trim(strings.TrimSpace(f), `\%`))
		}
		if len(fields) < 4 {
			continue
		}

		cat := fields[0]
		if cat == "" {
			continue
		}
		if cat == "Overall" {
			cat = TotalKey
		}

		p, errP := strconv.ParseFloat(fields[1], 64)
		r, errR := strconv.ParseFloat(fields[2], 64)
		fs, errF := strconv.ParseFloat(fields[3], 64)
		if errP != nil || errR != nil || errF != nil {
			continue
		}

		result[cat] = Category{Precision: &p, Recall: &r, FScore: &fs}
	}
	return result
}
