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

package status

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📊 PatchStatus represents the outcome of a patch against one target
type PatchStatus int

const (
	StatusUnknown  PatchStatus = iota
	StatusPatched              // Pattern found and replaced, file rewritten
	StatusNotFound             // Pattern absent, nothing written
	StatusApplied              // Replacement already present (check only)
	StatusPending              // Pattern present but not written (check/dry-run)
	StatusSkipped              // Target excluded by an ignore pattern
	StatusFetched              // Pristine copy restored from the source
	StatusError                // Read or write failed
)

// String returns a string representation of PatchStatus
func (s PatchStatus) String() string {
	switch s {
	case StatusPatched:
		return "patched"
	case StatusNotFound:
		return "not-found"
	case StatusApplied:
		return "applied"
	case StatusPending:
		return "pending"
	case StatusSkipped:
		return "skipped"
	case StatusFetched:
		return "fetched"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// 📄 TargetInfo contains the recorded outcome for one patch target
type TargetInfo struct {
	Path        string      // Path relative to the working dir
	Patch       string      // Name of the patch that touched this target
	Status      PatchStatus // Outcome
	Occurrences int         // Number of occurrences replaced
	Checksum    string      // Content hash after the operation
	Error       error       // Any error associated with this target
}

// 💾 FileManager handles all file system operations
type FileManager interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	WriteFileAtomic(ctx context.Context, path string, content []byte) error
	FileExists(ctx context.Context, path string) (bool, error)

	// Backup operations
	BackupFile(ctx context.Context, path string) error
	RestoreFile(ctx context.Context, path string) error
}

// 📈 Reporter tracks patch outcomes and reports progress
type Reporter interface {
	Track(ctx context.Context, info TargetInfo)
	GetTargetInfo(ctx context.Context, path string) (TargetInfo, error)
	ListTargets(ctx context.Context) ([]TargetInfo, error)

	StartOperation(ctx context.Context, total int)
	UpdateProgress(ctx context.Context, processed int)
	FinishOperation(ctx context.Context)
}

// 🔧 Manager implements both FileManager and Reporter
type Manager struct {
	baseDir string          // Working dir all target paths are relative to
	logger  *zerolog.Logger // Logger for status updates

	// Outcome tracking
	mu      sync.RWMutex
	targets map[string]TargetInfo

	// Progress tracking
	total     int
	processed int
}

// 🏭 New creates a new status manager
func New(baseDir string, logger *zerolog.Logger) *Manager {
	return &Manager{
		baseDir: filepath.Clean(baseDir),
		logger:  logger,
		targets: make(map[string]TargetInfo),
	}
}

// 🔒 getAbsPath returns the absolute path for a given relative path
func (m *Manager) getAbsPath(path string) string {
	return filepath.Join(m.baseDir, path)
}

// 🔍 calculateChecksum generates a SHA-256 hash of the content
func calculateChecksum(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// Checksum exposes the content hash used for target tracking
func Checksum(content []byte) string {
	return calculateChecksum(content)
}

// FileManager interface implementation

func (m *Manager) ReadFile(ctx context.Context, path string) ([]byte, error) {
	content, err := os.ReadFile(m.getAbsPath(path))
	if err != nil {
		return nil, errors.Errorf("reading file: %w", err)
	}
	return content, nil
}

func (m *Manager) WriteFileAtomic(ctx context.Context, path string, content []byte) error {
	absPath := m.getAbsPath(path)
	tempPath := absPath + ".tmp"

	// Write to temp file
	if err := os.WriteFile(tempPath, content, 0644); err != nil {
		return errors.Errorf("writing temp file: %w", err)
	}

	// Rename temp file to target (atomic operation)
	if err := os.Rename(tempPath, absPath); err != nil {
		os.Remove(tempPath) // Clean up temp file
		return errors.Errorf("renaming temp file: %w", err)
	}

	return nil
}

func (m *Manager) FileExists(ctx context.Context, path string) (bool, error) {
	_, err := os.Stat(m.getAbsPath(path))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, errors.Errorf("checking file existence: %w", err)
}

func (m *Manager) BackupFile(ctx context.Context, path string) error {
	absPath := m.getAbsPath(path)
	backupPath := absPath + ".bak"

	// Only backup if file exists
	if _, err := os.Stat(absPath); os.IsNotExist(err) {
		return nil
	} else if err != nil {
		return errors.Errorf("checking file existence: %w", err)
	}

	if err := copyFile(absPath, backupPath); err != nil {
		return errors.Errorf("creating backup: %w", err)
	}

	return nil
}

func (m *Manager) RestoreFile(ctx context.Context, path string) error {
	absPath := m.getAbsPath(path)
	backupPath := absPath + ".bak"

	// Check if backup exists
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return errors.Errorf("backup file does not exist")
	} else if err != nil {
		return errors.Errorf("checking backup existence: %w", err)
	}

	if err := copyFile(backupPath, absPath); err != nil {
		return errors.Errorf("restoring from backup: %w", err)
	}

	if err := os.Remove(backupPath); err != nil {
		return errors.Errorf("removing backup: %w", err)
	}

	return nil
}

// Reporter interface implementation

func (m *Manager) Track(ctx context.Context, info TargetInfo) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.targets[info.Path] = info

	evt := m.logger.Info().
		Str("path", info.Path).
		Str("patch", info.Patch).
		Str("status", info.Status.String()).
		Int("occurrences", info.Occurrences)
	if info.Error != nil {
		evt = evt.Err(info.Error)
	}
	evt.Msg("patch target")
}

func (m *Manager) GetTargetInfo(ctx context.Context, path string) (TargetInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	info, ok := m.targets[path]
	if !ok {
		return TargetInfo{}, errors.Errorf("target not tracked: %s", path)
	}
	return info, nil
}

func (m *Manager) ListTargets(ctx context.Context) ([]TargetInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	targets := make([]TargetInfo, 0, len(m.targets))
	for _, info := range m.targets {
		targets = append(targets, info)
	}
	return targets, nil
}

func (m *Manager) StartOperation(ctx context.Context, total int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.total = total
	m.processed = 0
	m.logger.Debug().Int("total", total).Msg("starting patch run")
}

func (m *Manager) UpdateProgress(ctx context.Context, processed int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.processed = processed
	m.logger.Debug().
		Int("processed", processed).
		Int("total", m.total).
		Msg("patch run progress")
}

func (m *Manager) FinishOperation(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.logger.Debug().
		Int("processed", m.total).
		Int("total", m.total).
		Msg("patch run complete")
}

// Helper functions

func copyFile(src, dst string) error {
	source, err := os.Open(src)
	if err != nil {
		return errors.Errorf("opening source file: %w", err)
	}
	defer source.Close()

	destination, err := os.Create(dst)
	if err != nil {
		return errors.Errorf("creating destination file: %w", err)
	}
	defer destination.Close()

	if _, err := io.Copy(destination, source); err != nil {
		return errors.Errorf("copying file: %w", err)
	}

	return nil
}
