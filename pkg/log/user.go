package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 📢 UserLogger provides user-friendly feedback about patch outcomes
type UserLogger struct {
	log zerolog.Logger // for debug/error logging
	out io.Writer      // destination for verbatim outcome blocks
}

// 🎨 PatchEventType represents the kind of patch outcome being reported
type PatchEventType int

const (
	PatchApplied PatchEventType = iota
	PatchNotFound
	PatchSkipped
	TargetFetched
	PatchFailed
)

// 🖼️ PatchEvent represents a patch outcome on one target
type PatchEvent struct {
	Type        PatchEventType
	Target      string
	Patch       string
	Description string
	Error       error
}

// 🎯 NewUserLogger creates a new user logger
func NewUserLogger(ctx context.Context) *UserLogger {
	return &UserLogger{
		log: *zerolog.Ctx(ctx),
		out: os.Stdout,
	}
}

// NewUserLoggerTo creates a user logger writing outcome blocks to w
func NewUserLoggerTo(ctx context.Context, w io.Writer) *UserLogger {
	return &UserLogger{
		log: *zerolog.Ctx(ctx),
		out: w,
	}
}

// 📝 LogPatchEvent logs a patch outcome with appropriate emoji and formatting
func (u *UserLogger) LogPatchEvent(event PatchEvent) {
	// Get relative path for cleaner output
	relPath := filepath.Base(event.Target)

	var prefix, action string
	var printer *pterm.PrefixPrinter
	switch event.Type {
	case PatchApplied:
		prefix = "✨"
		action = "Patched"
		printer = pterm.Success.WithPrefix(pterm.Prefix{Text: prefix})
	case PatchNotFound:
		prefix = "❓"
		action = "No match in"
		printer = pterm.Warning.WithPrefix(pterm.Prefix{Text: prefix})
	case PatchSkipped:
		prefix = "⏭️"
		action = "Skipped"
		printer = pterm.Debug.WithPrefix(pterm.Prefix{Text: prefix})
	case TargetFetched:
		prefix = "📥"
		action = "Fetched"
		printer = pterm.Info.WithPrefix(pterm.Prefix{Text: prefix})
	case PatchFailed:
		prefix = "❌"
		action = "Error"
		printer = pterm.Error.WithPrefix(pterm.Prefix{Text: prefix})
	}

	msg := fmt.Sprintf("%s %s", action, relPath)
	if event.Description != "" {
		msg += fmt.Sprintf(" (%s)", event.Description)
	}

	if event.Error != nil {
		printer.Println(msg)
		pterm.Error.Println(event.Error)
		u.log.Error().Err(event.Error).Str("patch", event.Patch).Msg(msg)
	} else {
		printer.Println(msg)
		u.log.Info().Str("patch", event.Patch).Msg(msg)
	}
}

// 📄 Block prints a preformatted multi-line outcome block verbatim.
// The success and not-found blocks are a fixed console contract, so they
// bypass the prefix printers.
func (u *UserLogger) Block(text string) {
	fmt.Fprintln(u.out, text)
	u.log.Debug().Msg(text)
}

// 📊 LogRunSummary logs the overall result of a patch run
func (u *UserLogger) LogRunSummary(applied, notFound, failed int) {
	description := fmt.Sprintf("%d patched, %d without a match, %d failed", applied, notFound, failed)
	if failed > 0 {
		pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}).Println(description)
		u.log.Error().Msg(description)
	} else if notFound > 0 {
		pterm.Warning.WithPrefix(pterm.Prefix{Text: "⚠️"}).Println(description)
		u.log.Warn().Msg(description)
	} else {
		pterm.Success.WithPrefix(pterm.Prefix{Text: "✅"}).Println(description)
		u.log.Info().Msg(description)
	}
}
