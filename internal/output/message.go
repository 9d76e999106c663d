package output

import (
	"fmt"
	"io"
	"os"
)

// Status messages go to stderr so stdout stays reserved for command
// payloads (tables, JSON); piping stdout to a consumer never picks them up.
//
//nolint:gochecknoglobals // Swapped in tests to capture output
var statusWriter io.Writer = os.Stderr

// Info prints an informational status message with an info prefix.
func Info(msg string) {
	_, _ = fmt.Fprintln(statusWriter, "ℹ️  "+msg)
}

// Infof prints a formatted informational status message.
func Infof(format string, args ...any) {
	Info(fmt.Sprintf(format, args...))
}

// Warn prints a warning message with a warning prefix.
func Warn(msg string) {
	_, _ = fmt.Fprintln(statusWriter, "⚠️  "+msg)
}

// Warnf prints a formatted warning message.
func Warnf(format string, args ...any) {
	Warn(fmt.Sprintf(format, args...))
}

// Success prints a success message with a success prefix.
func Success(msg string) {
	_, _ = fmt.Fprintln(statusWriter, "✅ "+msg)
}

// Successf prints a formatted success message.
func Successf(format string, args ...any) {
	Success(fmt.Sprintf(format, args...))
}
