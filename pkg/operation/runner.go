// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package operation

import (
	"context"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// asyncLimit bounds concurrent operations in async runs
const asyncLimit = 4

// 🏃 Runner executes operations
type Runner struct {
	logger *zerolog.Logger
	async  bool
}

// 🏗️ NewRunner creates a new runner
func NewRunner(logger *zerolog.Logger, async bool) *Runner {
	return &Runner{
		logger: logger,
		async:  async,
	}
}

// 🏃 Run executes the operations, sequentially by default or fanned out over
// a bounded errgroup when async
func (r *Runner) Run(ctx context.Context, ops ...Operation) error {
	if !r.async || len(ops) <= 1 {
		return r.runSync(ctx, ops)
	}
	return r.runAsync(ctx, ops)
}

// 🔄 runSync runs the operations one at a time
func (r *Runner) runSync(ctx context.Context, ops []Operation) error {
	for _, op := range ops {
		if err := op.Execute(ctx); err != nil {
			return errors.Errorf("executing operation: %w", err)
		}
	}
	return nil
}

// ⚡ runAsync fans the operations out over a bounded errgroup
func (r *Runner) runAsync(ctx context.Context, ops []Operation) error {
	r.logger.Debug().Int("operations", len(ops)).Int("limit", asyncLimit).Msg("running async")

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(asyncLimit)
	for _, op := range ops {
		op := op
		g.Go(func() error {
			if err := op.Execute(gctx); err != nil {
				return errors.Errorf("executing operation: %w", err)
			}
			return nil
		})
	}
	return g.Wait()
}
