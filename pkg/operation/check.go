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
	"strings"

	"github.com/walteh/patchrc/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 📦 NewCheckOperation creates a new check operation
func NewCheckOperation(opts Options) (Operation, error) {
	if err := opts.validate(); err != nil {
		return nil, errors.Errorf("validating options: %w", err)
	}
	return &checkOperation{
		BaseOperation: NewBaseOperation(opts),
	}, nil
}

// 📦 checkOperation reports per-target patch state without writing anything
type checkOperation struct {
	BaseOperation
}

// 🏃 Execute runs the check operation
func (op *checkOperation) Execute(ctx context.Context) error {
	targets, err := op.resolveTargets(ctx)
	if err != nil {
		return errors.Errorf("resolving targets for patch %s: %w", op.Patch.Name, err)
	}

	for _, target := range targets {
		if op.shouldIgnore(ctx, target) {
			op.track(ctx, target, status.StatusSkipped, nil)
			continue
		}
		op.checkTarget(ctx, target)
	}

	return nil
}

// 🔍 checkTarget classifies one target.
// An unreadable target is recorded rather than fatal: the status command is
// informational and should survey the whole patch set.
func (op *checkOperation) checkTarget(ctx context.Context, target string) {
	content, err := op.StatusMgr.ReadFile(ctx, target)
	if err != nil {
		op.track(ctx, target, status.StatusError, err)
		return
	}

	src := string(content)
	switch {
	case strings.Contains(src, op.Patch.Pattern):
		op.track(ctx, target, status.StatusPending, nil)
	case op.Patch.Replacement != "" && strings.Contains(src, op.Patch.Replacement):
		op.track(ctx, target, status.StatusApplied, nil)
	default:
		op.track(ctx, target, status.StatusNotFound, nil)
	}
}

func (op *checkOperation) track(ctx context.Context, target string, st status.PatchStatus, err error) {
	op.StatusMgr.Track(ctx, status.TargetInfo{
		Path:   target,
		Patch:  op.Patch.Name,
		Status: st,
		Error:  err,
	})
	op.UserLogger.Block(op.Formatter.FormatStatusLine(target, st))
}
