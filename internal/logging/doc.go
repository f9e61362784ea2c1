// Package logging builds the slog loggers used across biblefetch.
//
// Two output formats are supported: a compact console format for
// interactive use and JSON for machine consumption. Attr helpers keep
// field naming consistent between packages, and CleanupOldLogs prunes
// aged log files according to the configured retention.
package logging
