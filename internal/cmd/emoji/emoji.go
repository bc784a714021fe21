// Package emoji provides symbol constants for CLI output.
// These symbols keep status lines consistent across commands.
package emoji

// Status symbols printed at the start of alert lines.
const (
	// Success marks a completed operation (saved, removed, imported).
	Success = "✓"

	// Error marks a failed operation.
	Error = "✗"

	// Stop marks a shutdown in progress.
	Stop = "■"

	// Warning marks a non-fatal problem, such as a skipped seed record.
	Warning = "!"

	// Info marks informational messages.
	Info = "i"

	// Unknown marks an unrecognized level.
	Unknown = "?"

	// Rocket marks the server start banner.
	Rocket = "🚀"
)
