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

package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/patchrc/cmd/patchrc/opts"
	"github.com/walteh/patchrc/pkg/log"
	"github.com/walteh/patchrc/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// 🎯 NewStatusCmd creates the status command
func NewStatusCmd(ro *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "show whether each patch is pending, applied, or unmatched",
		Long: `Status inspects every target without writing anything. A target that
still contains the pattern is pending, one that already contains the
replacement is applied, and one with neither needs manual inspection.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := zerolog.Ctx(ctx)

			log.FromContext(ctx).Header("checking patch status")

			patches := ro.Config.Patches()
			ro.StatusMgr.StartOperation(ctx, len(patches))
			defer ro.StatusMgr.FinishOperation(ctx)

			ops := make([]operation.Operation, 0, len(patches))
			for _, p := range patches {
				op, err := operation.NewCheckOperation(operation.Options{
					Config:     ro.Config,
					Patch:      p,
					StatusMgr:  ro.StatusMgr,
					UserLogger: ro.UserLogger,
				})
				if err != nil {
					return errors.Errorf("creating check operation for %s: %w", p.Name, err)
				}
				ops = append(ops, op)
			}

			// Checks never mutate targets, run them concurrently when asked
			runner := operation.NewRunner(logger, ro.Config.Async)
			if err := runner.Run(ctx, ops...); err != nil {
				return errors.Errorf("checking patches: %w", err)
			}

			return nil
		},
	}
}
