// Package errors defines the structured error type used across pipeline
// stages, plus the common error values stages return.
package errors

import (
	"errors"
	"fmt"
)

// StageError is a structured error produced by a pipeline stage.
type StageError struct {
	Stage   string
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *StageError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s [%s]: %s: %v", e.Stage, e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %s", e.Stage, e.Code, e.Message)
}

// Unwrap returns the wrapped cause, if any.
func (e *StageError) Unwrap() error { return e.Err }

// NewStageError creates a StageError without a cause.
func NewStageError(stage, code, message string) *StageError {
	return &StageError{Stage: stage, Code: code, Message: message}
}

// WrapStageError creates a StageError wrapping an underlying cause.
func WrapStageError(stage, code, message string, err error) *StageError {
	return &StageError{Stage: stage, Code: code, Message: message, Err: err}
}

// Error codes shared by the stages.
const (
	CodeDownloadFailed   = "DOWNLOAD_FAILED"
	CodeMissingInput     = "MISSING_INPUT"
	CodeParseFailed      = "PARSE_FAILED"
	CodeMergeFailed      = "MERGE_FAILED"
	CodeExportFailed     = "EXPORT_FAILED"
	CodeValidationFailed = "VALIDATION_FAILED"
)

// Sentinel errors for conditions callers branch on.
var (
	// ErrNoSQLiteFile is returned when the countries source bundle does not
	// contain a sqlite database.
	ErrNoSQLiteFile = errors.New("no sqlite file found")
	// ErrNoCSVFile is returned when a source bundle does not contain a CSV.
	ErrNoCSVFile = errors.New("no csv file found")
	// ErrEmptyDataset is returned when a loaded table has no rows.
	ErrEmptyDataset = errors.New("dataset is empty")
)

// IsStageError reports whether err is (or wraps) a StageError, returning it.
func IsStageError(err error) (*StageError, bool) {
	var stageErr *StageError
	if errors.As(err, &stageErr) {
		return stageErr, true
	}
	return nil, false
}
