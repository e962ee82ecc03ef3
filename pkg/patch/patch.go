package patch

import (
	"context"
	"io"

	"gitlab.com/tozd/go/errors"
)

// Mode selects how many occurrences of a Pattern are replaced.
type Mode string

const (
	// ModeFirst replaces only the first occurrence. This is the default:
	// a guarded patch assumes its pattern appears at most once.
	ModeFirst Mode = "first"

	// ModeAll replaces every occurrence.
	ModeAll Mode = "all"
)

// Patch defines a single guarded literal replacement operation
type Patch struct {
	// Name identifies the patch in logs and status output
	Name string

	// Summary is the human-readable headline printed on success
	// (e.g. "Sensor key parser now handles")
	Summary string

	// File is the target path or doublestar glob, relative to the working dir
	File string

	// Pattern is the exact text block to search for
	Pattern string

	// Replacement is the exact text block substituted in place of Pattern
	Replacement string

	// Mode selects first-occurrence or all-occurrence replacement.
	// Empty means ModeFirst.
	Mode Mode

	// Notes are printed as a numbered list under the success headline
	Notes []string
}

// ResolveMode returns the effective replacement mode
func (p Patch) ResolveMode() Mode {
	if p.Mode == "" {
		return ModeFirst
	}
	return p.Mode
}

// Headline returns the summary line used in success output
func (p Patch) Headline() string {
	if p.Summary != "" {
		return p.Summary
	}
	return p.Name
}

// Result contains the outcome of applying a patch to some content
type Result struct {
	// WasApplied indicates if the pattern was found and replaced
	WasApplied bool

	// Occurrences is the number of occurrences replaced
	Occurrences int

	// OriginalContent is the content before the patch
	OriginalContent []byte

	// PatchedContent is the content after the patch. Equal to
	// OriginalContent byte-for-byte when WasApplied is false.
	PatchedContent []byte
}

// Patcher defines the interface for patch application
type Patcher interface {
	// Apply runs the patch against the content.
	// A missing pattern is not an error: the result reports WasApplied=false
	// and the content is returned unmodified.
	Apply(ctx context.Context, content io.Reader, p Patch) (*Result, error)

	// Validate checks that a patch is well-formed
	Validate(p Patch) error
}

// Validate checks that a patch is well-formed
func Validate(p Patch) error {
	if p.Name == "" {
		return errors.Errorf("patch name is required")
	}
	if p.File == "" {
		return errors.Errorf("patch %s: file is required", p.Name)
	}
	if p.Pattern == "" {
		return errors.Errorf("patch %s: pattern is required", p.Name)
	}
	if p.Pattern == p.Replacement {
		return errors.Errorf("patch %s: pattern and replacement are identical", p.Name)
	}
	switch p.Mode {
	case "", ModeFirst, ModeAll:
	default:
		return errors.Errorf("patch %s: unknown mode %q", p.Name, p.Mode)
	}
	return nil
}
