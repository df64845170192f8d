// Package phishlog wraps the category-tagged logging convention used
// throughout the teacher codebase, backed by the same library, so the
// remediation engine and CLI log the same way the EWS app does.
package phishlog

import "github.com/eliona-smart-building-assistant/go-utils/log"

// Info logs an informational line under category.
func Info(category, format string, args ...interface{}) {
	log.Info(category, format, args...)
}

// Debug logs a debug line under category, only surfaced with -v.
func Debug(category, format string, args ...interface{}) {
	log.Debug(category, format, args...)
}

// Error logs a non-fatal error under category.
func Error(category, format string, args ...interface{}) {
	log.Error(category, format, args...)
}

// Fatal logs category and terminates the process, for configuration errors
// discovered at startup.
func Fatal(category, format string, args ...interface{}) {
	log.Fatal(category, format, args...)
}
