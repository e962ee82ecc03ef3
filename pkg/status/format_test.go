package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gitlab.com/tozd/go/errors"
)

func TestFormatPatched(t *testing.T) {
	f := NewDefaultFormatter()

	t.Run("with_notes", func(t *testing.T) {
		got := f.FormatPatched("Sensor key parser now handles", []string{
			"Empty objects at the start of array",
			"Dynamic suffixes (slabwgt_1, slabwgt_2, etc.)",
			"Both slabwgt and calslabvwc keys",
		})
		want := "✅ FIXED: Sensor key parser now handles:\n" +
			"   1. Empty objects at the start of array\n" +
			"   2. Dynamic suffixes (slabwgt_1, slabwgt_2, etc.)\n" +
			"   3. Both slabwgt and calslabvwc keys"
		assert.Equal(t, want, got)
	})

	t.Run("without_notes", func(t *testing.T) {
		assert.Equal(t, "✅ FIXED: guard", f.FormatPatched("guard", nil))
	})
}

func TestFormatNotFound(t *testing.T) {
	f := NewDefaultFormatter()
	assert.Equal(t, "❌ Could not find target section\n   Will need manual inspection", f.FormatNotFound())
}

func TestFormatStatusLine(t *testing.T) {
	f := NewDefaultFormatter()

	tests := []struct {
		status PatchStatus
		want   string
	}{
		{StatusPatched, "✨ Patched code.js"},
		{StatusPending, "📝 Pending code.js"},
		{StatusApplied, "👍 Applied code.js"},
		{StatusNotFound, "❓ No match in code.js"},
		{StatusSkipped, "⏭️  Skipped code.js"},
		{StatusFetched, "📥 Fetched code.js"},
		{StatusError, "❌ Failed code.js"},
		{StatusUnknown, "❔ Unknown code.js"},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, f.FormatStatusLine("code.js", tt.status))
		})
	}
}

func TestFormatProgress(t *testing.T) {
	f := NewDefaultFormatter()

	assert.Equal(t, "⏳ Progress: 1/2 (50%)", f.FormatProgress(1, 2))
	assert.Equal(t, "✅ Progress: 2/2 (100%)", f.FormatProgress(2, 2))
	assert.Equal(t, "✅ Progress: 0/0 (0%)", f.FormatProgress(0, 0))
}

func TestFormatError(t *testing.T) {
	f := NewDefaultFormatter()

	assert.Equal(t, "", f.FormatError(nil))
	assert.Equal(t, "❌ Error: boom", f.FormatError(errors.New("boom")))
}
