package status

import (
	"fmt"
	"strings"
)

// Formatter defines how patch outcomes should be rendered for the console
type Formatter interface {
	// FormatPatched formats the multi-line success block for an applied patch
	FormatPatched(headline string, notes []string) string

	// FormatNotFound formats the warning block for a missing pattern
	FormatNotFound() string

	// FormatStatusLine formats a single target line for the status command
	FormatStatusLine(path string, st PatchStatus) string

	// FormatProgress formats a progress message
	FormatProgress(current, total int) string

	// FormatError formats an error message
	FormatError(err error) string
}

// DefaultFormatter provides a default implementation of Formatter
type DefaultFormatter struct{}

// NewDefaultFormatter creates a new DefaultFormatter
func NewDefaultFormatter() *DefaultFormatter {
	return &DefaultFormatter{}
}

// FormatPatched renders the success block with its numbered note list
func (f *DefaultFormatter) FormatPatched(headline string, notes []string) string {
	if len(notes) == 0 {
		return fmt.Sprintf("✅ FIXED: %s", headline)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "✅ FIXED: %s:", headline)
	for i, note := range notes {
		fmt.Fprintf(&b, "\n   %d. %s", i+1, note)
	}
	return b.String()
}

// FormatNotFound renders the fixed two-line warning block
func (f *DefaultFormatter) FormatNotFound() string {
	return "❌ Could not find target section\n   Will need manual inspection"
}

// FormatStatusLine renders a single target line with an outcome emoji
func (f *DefaultFormatter) FormatStatusLine(path string, st PatchStatus) string {
	switch st {
	case StatusPatched:
		return fmt.Sprintf("✨ Patched %s", path)
	case StatusPending:
		return fmt.Sprintf("📝 Pending %s", path)
	case StatusApplied:
		return fmt.Sprintf("👍 Applied %s", path)
	case StatusNotFound:
		return fmt.Sprintf("❓ No match in %s", path)
	case StatusSkipped:
		return fmt.Sprintf("⏭️  Skipped %s", path)
	case StatusFetched:
		return fmt.Sprintf("📥 Fetched %s", path)
	case StatusError:
		return fmt.Sprintf("❌ Failed %s", path)
	default:
		return fmt.Sprintf("❔ Unknown %s", path)
	}
}

// FormatProgress formats a progress message with percentage
func (f *DefaultFormatter) FormatProgress(current, total int) string {
	var percentage float64
	if total == 0 {
		percentage = 0
		if current > 0 {
			percentage = 100
		}
	} else {
		percentage = float64(current) / float64(total) * 100
	}

	if current >= total {
		return fmt.Sprintf("✅ Progress: %d/%d (%.0f%%)", current, total, percentage)
	}
	return fmt.Sprintf("⏳ Progress: %d/%d (%.0f%%)", current, total, percentage)
}

// FormatError formats an error message with emoji
func (f *DefaultFormatter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("❌ Error: %v", err)
}
