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
	"bytes"
	"context"

	"github.com/walteh/patchrc/pkg/log"
	"github.com/walteh/patchrc/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 📦 NewApplyOperation creates a new apply operation
func NewApplyOperation(opts Options) (Operation, error) {
	if err := opts.validate(); err != nil {
		return nil, errors.Errorf("validating options: %w", err)
	}
	return &applyOperation{
		BaseOperation: NewBaseOperation(opts),
	}, nil
}

// 📦 applyOperation implements the apply operation
type applyOperation struct {
	BaseOperation
}

// 🏃 Execute runs the apply operation
func (op *applyOperation) Execute(ctx context.Context) error {
	targets, err := op.resolveTargets(ctx)
	if err != nil {
		return errors.Errorf("resolving targets for patch %s: %w", op.Patch.Name, err)
	}

	for _, target := range targets {
		if op.shouldIgnore(ctx, target) {
			op.StatusMgr.Track(ctx, status.TargetInfo{
				Path:   target,
				Patch:  op.Patch.Name,
				Status: status.StatusSkipped,
			})
			op.UserLogger.LogPatchEvent(log.PatchEvent{
				Type:        log.PatchSkipped,
				Target:      target,
				Patch:       op.Patch.Name,
				Description: "ignored by pattern",
			})
			continue
		}

		if err := op.patchTarget(ctx, target); err != nil {
			return errors.Errorf("patching %s: %w", target, err)
		}
	}

	return nil
}

// 🩹 patchTarget applies the patch to a single target file.
// A missing pattern is reported, not an error; an unreadable or unwritable
// target is fatal.
func (op *applyOperation) patchTarget(ctx context.Context, target string) error {
	content, err := op.StatusMgr.ReadFile(ctx, target)
	if err != nil {
		return errors.Errorf("reading target: %w", err)
	}

	result, err := op.Patcher.Apply(ctx, bytes.NewReader(content), op.Patch)
	if err != nil {
		return errors.Errorf("applying patch: %w", err)
	}

	if !result.WasApplied {
		// No write happens. The file stays byte-for-byte untouched.
		op.StatusMgr.Track(ctx, status.TargetInfo{
			Path:     target,
			Patch:    op.Patch.Name,
			Status:   status.StatusNotFound,
			Checksum: status.Checksum(content),
		})
		op.UserLogger.Block(op.Formatter.FormatNotFound())
		return nil
	}

	if op.DryRun {
		op.StatusMgr.Track(ctx, status.TargetInfo{
			Path:        target,
			Patch:       op.Patch.Name,
			Status:      status.StatusPending,
			Occurrences: result.Occurrences,
			Checksum:    status.Checksum(content),
		})
		op.UserLogger.Block(op.Formatter.FormatStatusLine(target, status.StatusPending))
		return nil
	}

	if err := op.StatusMgr.WriteFileAtomic(ctx, target, result.PatchedContent); err != nil {
		return errors.Errorf("writing target: %w", err)
	}

	op.StatusMgr.Track(ctx, status.TargetInfo{
		Path:        target,
		Patch:       op.Patch.Name,
		Status:      status.StatusPatched,
		Occurrences: result.Occurrences,
		Checksum:    status.Checksum(result.PatchedContent),
	})
	op.UserLogger.Block(op.Formatter.FormatPatched(op.Patch.Headline(), op.Patch.Notes))
	return nil
}
