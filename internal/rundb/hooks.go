// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package rundb

import (
	"context"
	"time"

	"github.com/crfsuitetagger/crfsuitetagger/pkg/log"
)

type ctxKey int

const beginKey ctxKey = iota

// hooks satisfies sqlhooks.Hooks: log every query and how long it
// took.
type hooks struct{}

func (h *hooks) Before(ctx context.Context, query string, args ...interface{}) (context.Context, error) {
	log.Debugf("rundb: query %s %q", query, args)
	return context.WithValue(ctx, beginKey, time.Now()), nil
}

func (h *hooks) After(ctx context.Context, query string, args ...interface{}) (context.Context, error) {
	if begin, ok := ctx.Value(beginKey).(time.Time); ok {
		log.Debugf("rundb: took %s", time.Since(begin))
	}
	return ctx, nil
}
