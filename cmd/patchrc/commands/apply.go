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

// 📦 Package commands defines the patchrc subcommands.
package commands

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/patchrc/cmd/patchrc/opts"
	"github.com/walteh/patchrc/pkg/log"
	"github.com/walteh/patchrc/pkg/operation"
	"github.com/walteh/patchrc/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 🎯 NewApplyCmd creates the apply command
func NewApplyCmd(ro *opts.RootOpts) *cobra.Command {
	var (
		dryRun bool
		async  bool
	)

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "apply the configured patches to their target files",
		Long: `Apply reads each target file, looks for the patch's exact text block,
and rewrites the file with the replacement. Targets where the block is
missing are reported and left byte-for-byte unchanged.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := zerolog.Ctx(ctx)
			console := log.FromContext(ctx)

			patches := ro.Config.Patches()
			ro.StatusMgr.StartOperation(ctx, len(patches))
			defer ro.StatusMgr.FinishOperation(ctx)

			console.Header("applying patches")
			console.StartPatchRun(ctx, log.RunOperation{
				Dir:     ro.Config.Dir,
				Patches: len(patches),
			})

			ops := make([]operation.Operation, 0, len(patches))
			for _, p := range patches {
				op, err := operation.NewApplyOperation(operation.Options{
					Config:     ro.Config,
					Patch:      p,
					StatusMgr:  ro.StatusMgr,
					UserLogger: ro.UserLogger,
					DryRun:     dryRun,
				})
				if err != nil {
					return errors.Errorf("creating apply operation for %s: %w", p.Name, err)
				}
				ops = append(ops, op)
			}

			runner := operation.NewRunner(logger, async || ro.Config.Async)
			if err := runner.Run(ctx, ops...); err != nil {
				return errors.Errorf("applying patches: %w", err)
			}

			applied, notFound, failed, err := logResults(ctx, console, ro.StatusMgr)
			if err != nil {
				return errors.Errorf("collecting results: %w", err)
			}
			console.EndPatchRun(ctx)
			ro.UserLogger.LogRunSummary(applied, notFound, failed)

			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report what would change without writing")
	cmd.Flags().BoolVar(&async, "async", false, "process patches concurrently")

	return cmd
}

// logResults prints the per-target table and tallies the run summary counts
func logResults(ctx context.Context, console *log.Logger, mgr *status.Manager) (applied, notFound, failed int, err error) {
	targets, err := mgr.ListTargets(ctx)
	if err != nil {
		return 0, 0, 0, err
	}

	for _, info := range targets {
		console.LogPatchOperation(ctx, log.PatchOperation{
			Path:        info.Path,
			Patch:       info.Patch,
			Status:      info.Status.String(),
			WasApplied:  info.Status == status.StatusPatched,
			NotFound:    info.Status == status.StatusNotFound,
			IsSkipped:   info.Status == status.StatusSkipped,
			IsError:     info.Status == status.StatusError,
			Occurrences: info.Occurrences,
		})

		switch info.Status {
		case status.StatusPatched, status.StatusPending:
			applied++
		case status.StatusNotFound:
			notFound++
		case status.StatusError:
			failed++
		}
	}
	return applied, notFound, failed, nil
}
