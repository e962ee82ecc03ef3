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
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) (*Manager, string) {
	t.Helper()
	tmpDir := t.TempDir()
	logger := zerolog.New(io.Discard)
	return New(tmpDir, &logger), tmpDir
}

func TestManager_ReadWriteFile(t *testing.T) {
	mgr, tmpDir := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, mgr.WriteFileAtomic(ctx, "code.js", []byte("const x = 1;\n")))

	content, err := mgr.ReadFile(ctx, "code.js")
	require.NoError(t, err)
	assert.Equal(t, "const x = 1;\n", string(content))

	// No temp file may survive the atomic write
	_, err = os.Stat(filepath.Join(tmpDir, "code.js.tmp"))
	assert.True(t, os.IsNotExist(err), "temp file should be gone after rename")
}

func TestManager_ReadFile_Missing(t *testing.T) {
	mgr, _ := newTestManager(t)

	_, err := mgr.ReadFile(context.Background(), "missing.js")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading file")
}

func TestManager_FileExists(t *testing.T) {
	mgr, _ := newTestManager(t)
	ctx := context.Background()

	exists, err := mgr.FileExists(ctx, "code.js")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, mgr.WriteFileAtomic(ctx, "code.js", []byte("x")))

	exists, err = mgr.FileExists(ctx, "code.js")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestManager_BackupRestore(t *testing.T) {
	mgr, tmpDir := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, mgr.WriteFileAtomic(ctx, "code.js", []byte("original")))
	require.NoError(t, mgr.BackupFile(ctx, "code.js"))
	require.NoError(t, mgr.WriteFileAtomic(ctx, "code.js", []byte("mangled")))

	require.NoError(t, mgr.RestoreFile(ctx, "code.js"))

	content, err := mgr.ReadFile(ctx, "code.js")
	require.NoError(t, err)
	assert.Equal(t, "original", string(content))

	// Backup is consumed by the restore
	_, err = os.Stat(filepath.Join(tmpDir, "code.js.bak"))
	assert.True(t, os.IsNotExist(err), "backup should be removed after restore")
}

func TestManager_BackupMissingFileIsNoop(t *testing.T) {
	mgr, _ := newTestManager(t)
	require.NoError(t, mgr.BackupFile(context.Background(), "missing.js"))
}

func TestManager_RestoreWithoutBackup(t *testing.T) {
	mgr, _ := newTestManager(t)

	err := mgr.RestoreFile(context.Background(), "code.js")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backup file does not exist")
}

func TestManager_Tracking(t *testing.T) {
	mgr, _ := newTestManager(t)
	ctx := context.Background()

	mgr.Track(ctx, TargetInfo{
		Path:        "code.js",
		Patch:       "guard",
		Status:      StatusPatched,
		Occurrences: 1,
		Checksum:    Checksum([]byte("patched")),
	})

	info, err := mgr.GetTargetInfo(ctx, "code.js")
	require.NoError(t, err)
	assert.Equal(t, "guard", info.Patch)
	assert.Equal(t, StatusPatched, info.Status)
	assert.Equal(t, 1, info.Occurrences)

	targets, err := mgr.ListTargets(ctx)
	require.NoError(t, err)
	assert.Len(t, targets, 1)

	_, err = mgr.GetTargetInfo(ctx, "other.js")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not tracked")
}

func TestPatchStatus_String(t *testing.T) {
	tests := []struct {
		status PatchStatus
		want   string
	}{
		{StatusUnknown, "unknown"},
		{StatusPatched, "patched"},
		{StatusNotFound, "not-found"},
		{StatusApplied, "applied"},
		{StatusPending, "pending"},
		{StatusSkipped, "skipped"},
		{StatusFetched, "fetched"},
		{StatusError, "error"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.status.String())
	}
}
