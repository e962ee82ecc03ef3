// Package remote defines how pristine upstream copies of patch targets are
// retrieved. A provider is only consulted by the fetch operation; apply and
// check never touch the network.
package remote

import (
	"context"
	"io"
)

// Provider supplies pristine upstream copies of patch targets
type Provider interface {
	// FetchFile retrieves the upstream content of a single target file
	FetchFile(ctx context.Context, path string) (io.ReadCloser, error)

	// ResolveRef resolves the configured ref to a commit hash
	ResolveRef(ctx context.Context) (string, error)

	// Permalink returns a permanent link to the file at a commit
	Permalink(commitHash, path string) string

	// SourceInfo returns a short string describing the source
	SourceInfo() string
}
