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
	"io"

	"github.com/rs/zerolog"
	"github.com/walteh/patchrc/pkg/log"
	"github.com/walteh/patchrc/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 📦 NewFetchOperation creates a new fetch operation
func NewFetchOperation(opts Options) (Operation, error) {
	if err := opts.validate(); err != nil {
		return nil, errors.Errorf("validating options: %w", err)
	}
	if opts.Provider == nil {
		return nil, errors.Errorf("provider is required")
	}
	if globMeta(opts.Patch.File) {
		return nil, errors.Errorf("patch %s: cannot fetch a glob target %q", opts.Patch.Name, opts.Patch.File)
	}
	return &fetchOperation{
		BaseOperation: NewBaseOperation(opts),
	}, nil
}

// 📦 fetchOperation restores a pristine upstream copy of the patch target
type fetchOperation struct {
	BaseOperation
}

// 🏃 Execute runs the fetch operation
func (op *fetchOperation) Execute(ctx context.Context) error {
	target := op.Patch.File

	reader, err := op.Provider.FetchFile(ctx, target)
	if err != nil {
		return errors.Errorf("fetching %s: %w", target, err)
	}
	defer reader.Close()

	content, err := io.ReadAll(reader)
	if err != nil {
		return errors.Errorf("reading fetched content: %w", err)
	}

	// Keep the mangled local copy recoverable
	if err := op.StatusMgr.BackupFile(ctx, target); err != nil {
		return errors.Errorf("backing up target: %w", err)
	}

	if err := op.StatusMgr.WriteFileAtomic(ctx, target, content); err != nil {
		return errors.Errorf("writing target: %w", err)
	}

	op.StatusMgr.Track(ctx, status.TargetInfo{
		Path:     target,
		Patch:    op.Patch.Name,
		Status:   status.StatusFetched,
		Checksum: status.Checksum(content),
	})
	op.UserLogger.LogPatchEvent(log.PatchEvent{
		Type:        log.TargetFetched,
		Target:      target,
		Patch:       op.Patch.Name,
		Description: op.describeSource(ctx, target),
	})
	return nil
}

// describeSource prefers a commit-pinned permalink over the plain repo@ref
// string. Ref resolution needs an extra API call, so failure falls back
// rather than failing the fetch.
func (op *fetchOperation) describeSource(ctx context.Context, target string) string {
	commit, err := op.Provider.ResolveRef(ctx)
	if err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Msg("resolving source ref")
		return op.Provider.SourceInfo()
	}
	return op.Provider.Permalink(commit, target)
}
