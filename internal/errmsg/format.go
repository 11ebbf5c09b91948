// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Playback operations
	OpLoad   Op = "load track"
	OpPlay   Op = "start playback"
	OpSeek   Op = "seek"
	OpResume Op = "resume last session"

	// Session state operations
	OpStateOpen    Op = "open state database"
	OpSessionLoad  Op = "restore session"
	OpVolumeSave   Op = "save volume"
	OpPositionSave Op = "save playback position"

	// Configuration
	OpConfigLoad Op = "load configuration"

	// Integration
	OpMPRISStart  Op = "start MPRIS service"
	OpNotifySend  Op = "send desktop notification"
	OpStderrSetup Op = "capture audio backend errors"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
