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

// Package operation provides core functionality for applying and checking
// guarded literal patches against a working tree.
package operation

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/patchrc/pkg/config"
	"github.com/walteh/patchrc/pkg/log"
	"github.com/walteh/patchrc/pkg/patch"
	"github.com/walteh/patchrc/pkg/remote"
	"github.com/walteh/patchrc/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Operation is a unit of work over one patch
type Operation interface {
	// Execute runs the operation
	Execute(ctx context.Context) error
}

// 🔧 Options contains configuration for an operation
type Options struct {
	// Config is the patchrc configuration
	Config *config.Config
	// Patch is the patch this operation works on
	Patch patch.Patch
	// StatusMgr handles file access and outcome tracking
	StatusMgr *status.Manager
	// Patcher applies the patch to content. Defaults to the literal patcher.
	Patcher patch.Patcher
	// Formatter renders console outcome blocks. Defaults to the default formatter.
	Formatter status.Formatter
	// UserLogger emits user-facing outcome messages
	UserLogger *log.UserLogger
	// Provider supplies pristine upstream copies of targets (fetch only)
	Provider remote.Provider
	// DryRun reports what would change without writing
	DryRun bool
}

// 🔍 validate checks required options and fills in defaults
func (o *Options) validate() error {
	if o.Config == nil {
		return errors.Errorf("config is required")
	}
	if o.StatusMgr == nil {
		return errors.Errorf("status manager is required")
	}
	if o.UserLogger == nil {
		return errors.Errorf("user logger is required")
	}
	if err := patch.Validate(o.Patch); err != nil {
		return errors.Errorf("validating patch: %w", err)
	}
	if o.Patcher == nil {
		o.Patcher = patch.NewLiteralPatcher()
	}
	if o.Formatter == nil {
		o.Formatter = status.NewDefaultFormatter()
	}
	return nil
}

// 📦 BaseOperation provides target resolution shared by all operations
type BaseOperation struct {
	Options
}

// 🏗️ NewBaseOperation creates a new base operation
func NewBaseOperation(opts Options) BaseOperation {
	return BaseOperation{Options: opts}
}

// globMeta reports whether the patch's file reference is a glob pattern
func globMeta(file string) bool {
	return strings.ContainsAny(file, "*?[{")
}

// 🔍 resolveTargets expands the patch's file reference into concrete paths
// relative to the working dir. A literal path is returned as-is; a glob must
// match at least one existing file.
func (op *BaseOperation) resolveTargets(ctx context.Context) ([]string, error) {
	file := op.Patch.File
	if !globMeta(file) {
		return []string{file}, nil
	}

	matches, err := doublestar.FilepathGlob(filepath.Join(op.Config.Dir, file))
	if err != nil {
		return nil, errors.Errorf("expanding glob %q: %w", file, err)
	}
	if len(matches) == 0 {
		return nil, errors.Errorf("no files match %q", file)
	}

	targets := make([]string, 0, len(matches))
	for _, match := range matches {
		rel, err := filepath.Rel(op.Config.Dir, match)
		if err != nil {
			return nil, errors.Errorf("relativizing %s: %w", match, err)
		}
		targets = append(targets, rel)
	}
	return targets, nil
}

// 🔍 shouldIgnore checks if a target should be ignored
func (op *BaseOperation) shouldIgnore(ctx context.Context, path string) bool {
	logger := zerolog.Ctx(ctx)
	for _, pattern := range op.Config.IgnorePatterns {
		matched, err := doublestar.Match(pattern, path)
		if err != nil {
			logger.Debug().Str("pattern", pattern).Str("path", path).Err(err).Msg("error matching pattern")
			continue
		}
		if matched {
			logger.Debug().Str("file", path).Str("pattern", pattern).Msg("target ignored by pattern")
			return true
		}
	}
	return false
}
