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

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/patchrc/pkg/patch"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📦 SourceArgs identifies the upstream copy of the patch targets
type SourceArgs struct {
	Repo string `json:"repo" yaml:"repo" hcl:"repo"`                               // Full repo URL (e.g. github.com/org/repo)
	Ref  string `json:"ref,omitempty" yaml:"ref,omitempty" hcl:"ref,optional"`     // Branch or tag
	Path string `json:"path,omitempty" yaml:"path,omitempty" hcl:"path,optional"`  // Path within repo
}

// 🩹 PatchDefinition represents a single patch block in the config
type PatchDefinition struct {
	Name        string   `json:"name" yaml:"name" hcl:"name,label"`
	Summary     string   `json:"summary,omitempty" yaml:"summary,omitempty" hcl:"summary,optional"`
	File        string   `json:"file" yaml:"file" hcl:"file"`
	Pattern     string   `json:"pattern" yaml:"pattern" hcl:"pattern"`
	Replacement string   `json:"replacement" yaml:"replacement" hcl:"replacement"`
	Mode        string   `json:"mode,omitempty" yaml:"mode,omitempty" hcl:"mode,optional"`
	Notes       []string `json:"notes,omitempty" yaml:"notes,omitempty" hcl:"notes,optional"`
}

// 🔄 Patch converts the definition to a patch.Patch
func (d PatchDefinition) Patch() patch.Patch {
	return patch.Patch{
		Name:        d.Name,
		Summary:     d.Summary,
		File:        d.File,
		Pattern:     d.Pattern,
		Replacement: d.Replacement,
		Mode:        patch.Mode(d.Mode),
		Notes:       d.Notes,
	}
}

// 📚 Config represents the complete configuration
type Config struct {
	Dir            string            `json:"dir,omitempty" yaml:"dir,omitempty" hcl:"dir,optional"`
	IgnorePatterns []string          `json:"ignore_patterns,omitempty" yaml:"ignore_patterns,omitempty" hcl:"ignore_patterns,optional"`
	Async          bool              `json:"async,omitempty" yaml:"async,omitempty" hcl:"async,optional"`
	Source         *SourceArgs       `json:"source,omitempty" yaml:"source,omitempty" hcl:"source,block"`
	PatchDefs      []PatchDefinition `json:"patches" yaml:"patches" hcl:"patch,block"`
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	// Read config file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	// Get parser
	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	// Parse config
	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	if len(cfg.PatchDefs) == 0 {
		return errors.Errorf("at least one patch is required")
	}

	for i, def := range cfg.PatchDefs {
		if err := patch.Validate(def.Patch()); err != nil {
			return errors.Errorf("patch %d: %w", i, err)
		}
	}

	if cfg.Source != nil && cfg.Source.Repo == "" {
		return errors.Errorf("source.repo is required when a source block is present")
	}

	// Set defaults and clean up paths
	if cfg.Dir == "" {
		cfg.Dir = "."
	}
	cfg.Dir = filepath.Clean(cfg.Dir)
	if cfg.Source != nil && cfg.Source.Ref == "" {
		cfg.Source.Ref = "main"
	}

	return nil
}

// 🩹 Patches returns the configured patches
func (cfg *Config) Patches() []patch.Patch {
	patches := make([]patch.Patch, 0, len(cfg.PatchDefs))
	for _, def := range cfg.PatchDefs {
		patches = append(patches, def.Patch())
	}
	return patches
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	if cfg.Source != nil {
		return fmt.Sprintf("%d patches in %s (source %s@%s)", len(cfg.PatchDefs), cfg.Dir, cfg.Source.Repo, cfg.Source.Ref)
	}
	return fmt.Sprintf("%d patches in %s", len(cfg.PatchDefs), cfg.Dir)
}
