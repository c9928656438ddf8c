// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package evaluator scores tagged data: per-category POS accuracy,
// computed in-process, and CoNLL chunk precision/recall/f-score via an
// external scoring script. The subprocess is abstracted behind an
// interface so it can later be swapped for a native reimplementation
// without touching callers.
package evaluator

import "github.com/crfsuitetagger/crfsuitetagger/internal/seqstore"

// Category holds the scores for one label or chunk type. Only the
// fields relevant to the evaluation mode are populated.
type Category struct {
	Precision *float64
	Recall    *float64
	FScore    *float64
	Accuracy  *float64
}

// Result maps category (label, chunk type, or the distinguished Total
// key) to its record.
type Result map[string]Category

const TotalKey = "Total"

// POS buckets every record by postag, counting total and correct
// (guesstag == postag) occurrences, then emits an accuracy per bucket
// plus an overall Total.
func POS(store *seqstore.Store) Result {
	type counts struct{ correct, total int }
	buckets := map[string]*counts{}
	var grand counts

	for i := 0; i < store.Len(); i++ {
		pos := store.Value(i, "postag")
		guess := store.Value(i, "guesstag")

		c, ok := buckets[pos]
		if !ok {
			c = &counts{}
			buckets[pos] = c
		}
		c.total++
		grand.total++
		if guess == pos {
			c.correct++
			grand.correct++
		}
	}

	result := Result{}
	for cat, c := range buckets {
		result[cat] = accuracyCategory(c.correct, c.total)
	}
	result[TotalKey] = accuracyCategory(grand.correct, grand.total)
	return result
}

func accuracyCategory(correct, total int) Category {
	var acc float64
	if total > 0 {
		acc = float64(correct) / float64(total)
	}
	return Category{Accuracy: &acc}
}
