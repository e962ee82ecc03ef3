package patch

import (
	"context"
	"io"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// LiteralPatcher implements Patcher using exact substring matching.
// There is no regex, fuzzy, or whitespace-normalizing logic: the pattern
// must occur as an exact contiguous substring of the content.
type LiteralPatcher struct{}

// NewLiteralPatcher creates a new LiteralPatcher
func NewLiteralPatcher() *LiteralPatcher {
	return &LiteralPatcher{}
}

// Apply implements Patcher.Apply
func (r *LiteralPatcher) Apply(ctx context.Context, content io.Reader, p Patch) (*Result, error) {
	if err := Validate(p); err != nil {
		return nil, errors.Errorf("validating patch: %w", err)
	}

	original, err := io.ReadAll(content)
	if err != nil {
		return nil, errors.Errorf("reading content: %w", err)
	}

	// Untouched content is the default outcome
	result := &Result{
		OriginalContent: original,
		PatchedContent:  original,
	}

	src := string(original)
	if !strings.Contains(src, p.Pattern) {
		return result, nil
	}

	var patched string
	switch p.ResolveMode() {
	case ModeAll:
		result.Occurrences = strings.Count(src, p.Pattern)
		patched = strings.ReplaceAll(src, p.Pattern, p.Replacement)
	default:
		result.Occurrences = 1
		patched = strings.Replace(src, p.Pattern, p.Replacement, 1)
	}

	result.WasApplied = true
	result.PatchedContent = []byte(patched)
	return result, nil
}

// Validate implements Patcher.Validate
func (r *LiteralPatcher) Validate(p Patch) error {
	return Validate(p)
}
