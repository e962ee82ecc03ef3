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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/patchrc/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 🔧 fakeProvider is a stub remote.Provider serving fixed content
type fakeProvider struct {
	content string
	err     error
	fetched []string
}

func (p *fakeProvider) FetchFile(ctx context.Context, path string) (io.ReadCloser, error) {
	if p.err != nil {
		return nil, p.err
	}
	p.fetched = append(p.fetched, path)
	return io.NopCloser(strings.NewReader(p.content)), nil
}

func (p *fakeProvider) ResolveRef(ctx context.Context) (string, error) {
	return "abc123", nil
}

func (p *fakeProvider) Permalink(commitHash, path string) string {
	return "https://example.com/" + commitHash + "/" + path
}

func (p *fakeProvider) SourceInfo() string {
	return "github.com/test/repo@main"
}

func TestFetchOperation_RestoresPristineTarget(t *testing.T) {
	env := newTestEnv(t)
	env.write(t, "code.js", "mangled local copy\n")

	provider := &fakeProvider{content: "const x = 1;\n"}
	opts := env.options(guardPatch())
	opts.Provider = provider

	op, err := NewFetchOperation(opts)
	require.NoError(t, err)
	require.NoError(t, op.Execute(env.ctx))

	assert.Equal(t, []string{"code.js"}, provider.fetched)
	assert.Equal(t, "const x = 1;\n", env.read(t, "code.js"))

	// The mangled copy is preserved as a backup
	backup, err := os.ReadFile(filepath.Join(env.dir, "code.js.bak"))
	require.NoError(t, err)
	assert.Equal(t, "mangled local copy\n", string(backup))

	info, err := env.mgr.GetTargetInfo(env.ctx, "code.js")
	require.NoError(t, err)
	assert.Equal(t, status.StatusFetched, info.Status)
}

func TestFetchOperation_MissingLocalTarget(t *testing.T) {
	env := newTestEnv(t)

	provider := &fakeProvider{content: "const x = 1;\n"}
	opts := env.options(guardPatch())
	opts.Provider = provider

	op, err := NewFetchOperation(opts)
	require.NoError(t, err)

	// Nothing to back up, the pristine copy is simply written
	require.NoError(t, op.Execute(env.ctx))
	assert.Equal(t, "const x = 1;\n", env.read(t, "code.js"))
}

func TestFetchOperation_ProviderFailure(t *testing.T) {
	env := newTestEnv(t)

	opts := env.options(guardPatch())
	opts.Provider = &fakeProvider{err: errors.New("boom")}

	op, err := NewFetchOperation(opts)
	require.NoError(t, err)

	err = op.Execute(env.ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetching code.js")
}

func TestNewFetchOperation_RequiresProvider(t *testing.T) {
	env := newTestEnv(t)

	_, err := NewFetchOperation(env.options(guardPatch()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "provider is required")
}

func TestNewFetchOperation_RejectsGlobTargets(t *testing.T) {
	env := newTestEnv(t)

	p := guardPatch()
	p.File = "*.js"
	opts := env.options(p)
	opts.Provider = &fakeProvider{}

	_, err := NewFetchOperation(opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot fetch a glob target")
}
