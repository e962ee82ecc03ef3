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

package github

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/google/go-github/v60/github"
	"github.com/rs/zerolog"
	"github.com/walteh/patchrc/pkg/config"
	"github.com/walteh/patchrc/pkg/remote"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Client implements the remote.Provider interface for GitHub
type Client struct {
	gh    *github.Client
	args  config.SourceArgs
	owner string
	name  string
}

var _ remote.Provider = (*Client)(nil)

// 🏭 New creates a new GitHub client. A GITHUB_TOKEN in the environment is
// used when present; public repositories work without one.
func New(ctx context.Context, args config.SourceArgs) (*Client, error) {
	gh := github.NewClient(nil)
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		gh = gh.WithAuthToken(token)
	}
	return NewWithClient(ctx, gh, args)
}

// 🏭 NewWithClient creates a client around an existing go-github client
func NewWithClient(ctx context.Context, gh *github.Client, args config.SourceArgs) (*Client, error) {
	owner, name, err := parseRepo(args.Repo)
	if err != nil {
		return nil, errors.Errorf("parsing repo: %w", err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("repo", args.Repo).
		Str("ref", args.Ref).
		Msg("creating github provider")

	return &Client{
		gh:    gh,
		args:  args,
		owner: owner,
		name:  name,
	}, nil
}

// 🔍 parseRepo parses a GitHub repository URL
func parseRepo(repo string) (owner, name string, err error) {
	parts := strings.Split(repo, "/")
	if len(parts) < 2 || parts[len(parts)-2] == "" || parts[len(parts)-1] == "" {
		return "", "", errors.Errorf("invalid repository format: %s", repo)
	}

	return parts[len(parts)-2], parts[len(parts)-1], nil
}

// 📥 FetchFile retrieves a single file's upstream contents
func (c *Client) FetchFile(ctx context.Context, file string) (io.ReadCloser, error) {
	content, _, _, err := c.gh.Repositories.GetContents(ctx, c.owner, c.name, path.Join(c.args.Path, file), &github.RepositoryContentGetOptions{
		Ref: c.args.Ref,
	})
	if err != nil {
		return nil, errors.Errorf("getting file content: %w", err)
	}
	if content == nil {
		return nil, errors.Errorf("%s is a directory, not a file", file)
	}

	// Decode content
	data, err := content.GetContent()
	if err != nil {
		return nil, errors.Errorf("decoding content: %w", err)
	}

	return io.NopCloser(strings.NewReader(data)), nil
}

// 🎯 ResolveRef resolves the configured ref to a commit hash
func (c *Client) ResolveRef(ctx context.Context) (string, error) {
	ref, _, err := c.gh.Git.GetRef(ctx, c.owner, c.name, "refs/heads/"+c.args.Ref)
	if err != nil {
		return "", errors.Errorf("getting reference: %w", err)
	}

	return ref.Object.GetSHA(), nil
}

// 🔗 Permalink returns a permanent link to the file
func (c *Client) Permalink(commitHash, file string) string {
	return fmt.Sprintf("https://github.com/%s/%s/blob/%s/%s", c.owner, c.name, commitHash, path.Join(c.args.Path, file))
}

// 📝 SourceInfo returns a short string describing the source
func (c *Client) SourceInfo() string {
	return fmt.Sprintf("%s@%s", c.args.Repo, c.args.Ref)
}
