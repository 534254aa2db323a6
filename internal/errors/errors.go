package errors

import (
	"fmt"
)

// ErrorCode represents stable error codes for all fatal failure modes
type ErrorCode string

const (
	// ConfigInvalid indicates the configuration could not be loaded or validated
	ConfigInvalid ErrorCode = "CONFIG_INVALID"
	// SourceUnavailable indicates the measurement database could not be opened
	SourceUnavailable ErrorCode = "SOURCE_UNAVAILABLE"
	// QueryFailed indicates loading measurement records failed
	QueryFailed ErrorCode = "QUERY_FAILED"
	// PersistFailed indicates writing a generated identifier back failed
	PersistFailed ErrorCode = "PERSIST_FAILED"
	// OutputFailed indicates the row file could not be written
	OutputFailed ErrorCode = "OUTPUT_FAILED"
	// ImportFailed indicates a metadata file could not be imported
	ImportFailed ErrorCode = "IMPORT_FAILED"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// FixActionType represents the type of fix action
type FixActionType string

const (
	// RunCommand suggests running a command
	RunCommand FixActionType = "run-command"
	// EditConfig suggests changing a configuration key
	EditConfig FixActionType = "edit-config"
)

// FixAction represents a suggested fix for an error
type FixAction struct {
	Type        FixActionType `json:"type"`
	Command     string        `json:"command,omitempty"`
	Key         string        `json:"key,omitempty"`
	Safe        bool          `json:"safe,omitempty"`
	Description string        `json:"description,omitempty"`
}

// MpxError carries a stable code, a message and an optional cause.
type MpxError struct {
	Code           ErrorCode   `json:"code"`
	Message        string      `json:"message"`
	Details        interface{} `json:"details,omitempty"`
	SuggestedFixes []FixAction `json:"suggestedFixes,omitempty"`
	cause          error       // Underlying error (not exported to JSON)
}

// New creates an MpxError with the default suggested fixes for its code.
func New(code ErrorCode, message string, cause error) *MpxError {
	return &MpxError{
		Code:           code,
		Message:        message,
		cause:          cause,
		SuggestedFixes: GetSuggestedFixes(code),
	}
}

// Error implements the error interface
func (e *MpxError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *MpxError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *MpxError) WithDetails(details interface{}) *MpxError {
	e.Details = details
	return e
}

// ErrorActions maps error codes to suggested fix actions
var ErrorActions = map[ErrorCode][]FixAction{
	ConfigInvalid: {
		{
			Type:        RunCommand,
			Command:     "mpx config show",
			Safe:        true,
			Description: "Inspect the effective configuration",
		},
	},
	SourceUnavailable: {
		{
			Type:        EditConfig,
			Key:         "database.path",
			Description: "Point database.path at the measurement metadata database",
		},
		{
			Type:        RunCommand,
			Command:     "mpx import <measurements.csv>",
			Description: "Create the database from a metadata export",
		},
	},
	PersistFailed: {
		{
			Type:        RunCommand,
			Command:     "mpx export --persist",
			Safe:        true,
			Description: "Re-run the export; identifiers are only written to empty fields",
		},
	},
	OutputFailed: {
		{
			Type:        EditConfig,
			Key:         "export.output",
			Description: "Choose a writable output path",
		},
	},
}

// GetSuggestedFixes returns suggested fixes for an error code
func GetSuggestedFixes(code ErrorCode) []FixAction {
	if fixes, ok := ErrorActions[code]; ok {
		return fixes
	}
	return nil
}

// CodeOf returns the code of the first MpxError in err's chain, or
// InternalError when there is none.
func CodeOf(err error) ErrorCode {
	for err != nil {
		if e, ok := err.(*MpxError); ok {
			return e.Code
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return InternalError
}
