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

package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/patchrc/cmd/patchrc/opts"
	"github.com/walteh/patchrc/pkg/config"
	"github.com/walteh/patchrc/pkg/log"
	"github.com/walteh/patchrc/pkg/status"
	"gitlab.com/tozd/go/errors"
)

const defaultConfigFile = ".patchrc.yaml"

var (
	configFile string
	workDir    string
	debug      bool
)

// 🔧 addRootFlags wires the persistent flags shared by every subcommand
func addRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", defaultConfigFile, "path to config file")
	cmd.PersistentFlags().StringVar(&workDir, "dir", "", "working directory for patch targets (overrides config)")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
}

// 🏭 initRootOpts resolves the config and builds the shared managers.
// When the default config file is absent the built-in patch set is used,
// so `patchrc apply` works out of the box next to its target.
func initRootOpts(ctx context.Context, ro *opts.RootOpts) error {
	logger := zerolog.Ctx(ctx)

	cfg, err := resolveConfig(ctx)
	if err != nil {
		return err
	}

	if workDir != "" {
		cfg.Dir = workDir
	}

	absDir, err := filepath.Abs(cfg.Dir)
	if err != nil {
		return errors.Errorf("resolving working directory: %w", err)
	}
	cfg.Dir = absDir

	ro.Config = cfg
	ro.StatusMgr = status.New(cfg.Dir, logger)
	ro.UserLogger = log.NewUserLogger(ctx)

	logger.Debug().
		Str("config", cfg.String()).
		Str("dir", cfg.Dir).
		Msg("resolved options")

	return nil
}

func resolveConfig(ctx context.Context) (*config.Config, error) {
	if _, err := os.Stat(configFile); err != nil {
		if os.IsNotExist(err) && configFile == defaultConfigFile {
			zerolog.Ctx(ctx).Debug().Msg("no config file found, using built-in patch set")
			return config.Default(), nil
		}
		return nil, errors.Errorf("reading config file %s: %w", configFile, err)
	}

	cfg, err := config.Load(ctx, configFile)
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func logLevel() zerolog.Level {
	if debug {
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}

// setupLogging configures the global zerolog state. Called twice: once
// before cobra runs so early logs have a sink, and again after flag
// parsing so --debug takes effect.
func setupLogging() zerolog.Logger {
	zerolog.SetGlobalLevel(logLevel())

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().
		Timestamp().
		Logger()
	zerolog.DefaultContextLogger = &logger

	return logger
}
