package patch

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiteralPatcher_Apply(t *testing.T) {
	tests := []struct {
		name            string
		content         string
		patch           Patch
		want            string
		wantOccurrences int
		wantError       string
		wantApplied     bool
	}{
		{
			name:    "simple_replacement",
			content: "Hello World",
			patch: Patch{
				Name:        "greeting",
				File:        "hello.txt",
				Pattern:     "World",
				Replacement: "Universe",
			},
			want:            "Hello Universe",
			wantOccurrences: 1,
			wantApplied:     true,
		},
		{
			name:    "default_mode_replaces_first_occurrence_only",
			content: "Hello World World",
			patch: Patch{
				Name:        "greeting",
				File:        "hello.txt",
				Pattern:     "World",
				Replacement: "Universe",
			},
			want:            "Hello Universe World",
			wantOccurrences: 1,
			wantApplied:     true,
		},
		{
			name:    "mode_all_replaces_every_occurrence",
			content: "Hello World World",
			patch: Patch{
				Name:        "greeting",
				File:        "hello.txt",
				Pattern:     "World",
				Replacement: "Universe",
				Mode:        ModeAll,
			},
			want:            "Hello Universe Universe",
			wantOccurrences: 2,
			wantApplied:     true,
		},
		{
			name:    "no_match_leaves_content_untouched",
			content: "Hello World",
			patch: Patch{
				Name:        "greeting",
				File:        "hello.txt",
				Pattern:     "Goodbye",
				Replacement: "Hi",
			},
			want:            "Hello World",
			wantOccurrences: 0,
			wantApplied:     false,
		},
		{
			name:    "empty_content",
			content: "",
			patch: Patch{
				Name:        "greeting",
				File:        "hello.txt",
				Pattern:     "World",
				Replacement: "Universe",
			},
			want:            "",
			wantOccurrences: 0,
			wantApplied:     false,
		},
		{
			name:    "multi_line_block",
			content: "before\n  if (x) {\n    return null;\n  }\nafter\n",
			patch: Patch{
				Name:        "guard",
				File:        "code.js",
				Pattern:     "  if (x) {\n    return null;\n  }",
				Replacement: "  if (x || y) {\n    return null;\n  }",
			},
			want:            "before\n  if (x || y) {\n    return null;\n  }\nafter\n",
			wantOccurrences: 1,
			wantApplied:     true,
		},
		{
			name:    "invalid_patch",
			content: "Hello World",
			patch: Patch{
				Name:        "broken",
				File:        "hello.txt",
				Pattern:     "",
				Replacement: "x",
			},
			wantError: "pattern is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			patcher := NewLiteralPatcher()
			result, err := patcher.Apply(
				context.Background(),
				strings.NewReader(tt.content),
				tt.patch,
			)

			if tt.wantError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantError)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Equal(t, tt.content, string(result.OriginalContent))
			assert.Equal(t, tt.want, string(result.PatchedContent))
			assert.Equal(t, tt.wantOccurrences, result.Occurrences)
			assert.Equal(t, tt.wantApplied, result.WasApplied)
		})
	}
}

func TestLiteralPatcher_Idempotence(t *testing.T) {
	// Applying a patch to its own successful output must report not-found
	// and leave the content byte-for-byte unchanged.
	p := Patch{
		Name:        "guard",
		File:        "code.js",
		Pattern:     "const x = 1;",
		Replacement: "const x = 2;",
	}
	patcher := NewLiteralPatcher()

	first, err := patcher.Apply(context.Background(), strings.NewReader("const x = 1;\n"), p)
	require.NoError(t, err)
	require.True(t, first.WasApplied)

	second, err := patcher.Apply(context.Background(), strings.NewReader(string(first.PatchedContent)), p)
	require.NoError(t, err)
	assert.False(t, second.WasApplied)
	assert.Zero(t, second.Occurrences)
	assert.Equal(t, first.PatchedContent, second.PatchedContent)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		patch     Patch
		wantError string
	}{
		{
			name: "valid_patch",
			patch: Patch{
				Name:        "guard",
				File:        "code.js",
				Pattern:     "foo",
				Replacement: "bar",
			},
		},
		{
			name: "valid_patch_with_explicit_mode",
			patch: Patch{
				Name:        "guard",
				File:        "code.js",
				Pattern:     "foo",
				Replacement: "bar",
				Mode:        ModeAll,
			},
		},
		{
			name: "missing_name",
			patch: Patch{
				File:        "code.js",
				Pattern:     "foo",
				Replacement: "bar",
			},
			wantError: "name is required",
		},
		{
			name: "missing_file",
			patch: Patch{
				Name:        "guard",
				Pattern:     "foo",
				Replacement: "bar",
			},
			wantError: "file is required",
		},
		{
			name: "missing_pattern",
			patch: Patch{
				Name:        "guard",
				File:        "code.js",
				Replacement: "bar",
			},
			wantError: "pattern is required",
		},
		{
			name: "identical_pattern_and_replacement",
			patch: Patch{
				Name:        "guard",
				File:        "code.js",
				Pattern:     "foo",
				Replacement: "foo",
			},
			wantError: "identical",
		},
		{
			name: "unknown_mode",
			patch: Patch{
				Name:        "guard",
				File:        "code.js",
				Pattern:     "foo",
				Replacement: "bar",
				Mode:        Mode("twice"),
			},
			wantError: "unknown mode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.patch)

			if tt.wantError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantError)
				return
			}

			require.NoError(t, err)
		})
	}
}

func TestPatch_ResolveMode(t *testing.T) {
	assert.Equal(t, ModeFirst, Patch{}.ResolveMode())
	assert.Equal(t, ModeAll, Patch{Mode: ModeAll}.ResolveMode())
}

func TestPatch_Headline(t *testing.T) {
	assert.Equal(t, "Sensor key parser now handles", Patch{Name: "sensor", Summary: "Sensor key parser now handles"}.Headline())
	assert.Equal(t, "sensor", Patch{Name: "sensor"}.Headline())
}
