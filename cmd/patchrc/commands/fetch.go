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
	"github.com/walteh/patchrc/pkg/remote/github"
	"gitlab.com/tozd/go/errors"
)

// 🎯 NewFetchCmd creates the fetch command
func NewFetchCmd(ro *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "restore pristine copies of patch targets from the configured source",
		Long: `Fetch downloads each target file from the configured upstream repository
and writes it locally, keeping the previous local copy as a .bak file.
Useful when a target was hand-edited past the point of patching.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := zerolog.Ctx(ctx)

			log.FromContext(ctx).Header("fetching pristine targets")

			if ro.Config.Source == nil {
				return errors.New("no source configured, add a source block to fetch upstream files")
			}

			provider, err := github.New(ctx, *ro.Config.Source)
			if err != nil {
				return errors.Errorf("creating github client: %w", err)
			}

			patches := ro.Config.Patches()
			ro.StatusMgr.StartOperation(ctx, len(patches))
			defer ro.StatusMgr.FinishOperation(ctx)

			ops := make([]operation.Operation, 0, len(patches))
			for _, p := range patches {
				op, err := operation.NewFetchOperation(operation.Options{
					Config:     ro.Config,
					Patch:      p,
					StatusMgr:  ro.StatusMgr,
					UserLogger: ro.UserLogger,
					Provider:   provider,
				})
				if err != nil {
					return errors.Errorf("creating fetch operation for %s: %w", p.Name, err)
				}
				ops = append(ops, op)
			}

			runner := operation.NewRunner(logger, ro.Config.Async)
			if err := runner.Run(ctx, ops...); err != nil {
				return errors.Errorf("fetching targets: %w", err)
			}

			return nil
		},
	}
}
