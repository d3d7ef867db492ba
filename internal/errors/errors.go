package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorType classifies failures across the tool's subsystems.
type ErrorType string

const (
	// Workspace scanning errors
	ErrorTypeScan         ErrorType = "scan"
	ErrorTypeFileNotFound ErrorType = "file_not_found"
	ErrorTypeFileTooLarge ErrorType = "file_too_large"
	ErrorTypePermission   ErrorType = "permission"

	// Source extraction errors
	ErrorTypeExtract ErrorType = "extract"

	// Candidate provider errors
	ErrorTypeProvider ErrorType = "provider"

	// Configuration errors
	ErrorTypeConfig ErrorType = "config"

	// Internal errors
	ErrorTypeInternal ErrorType = "internal"
)

// ErrUnsupportedLanguage is returned when a file's language has no
// registered extractor. Callers test for it with errors.Is and skip the
// file.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// ScanError is a failure while walking or reading the workspace.
type ScanError struct {
	Type        ErrorType
	Path        string
	Operation   string
	Underlying  error
	Timestamp   time.Time
	Recoverable bool
}

// NewScanError creates a scan error for the given operation.
func NewScanError(op string, err error) *ScanError {
	return &ScanError{
		Type:       ErrorTypeScan,
		Operation:  op,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// WithPath adds the affected path to the error.
func (e *ScanError) WithPath(path string) *ScanError {
	e.Path = path
	return e
}

// WithRecoverable marks the error as retryable.
func (e *ScanError) WithRecoverable(recoverable bool) *ScanError {
	e.Recoverable = recoverable
	return e
}

// Error implements the error interface.
func (e *ScanError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s %s failed for %s: %v", e.Type, e.Operation, e.Path, e.Underlying)
	}
	return fmt.Sprintf("%s %s failed: %v", e.Type, e.Operation, e.Underlying)
}

// Unwrap returns the underlying error for errors.Is/As.
func (e *ScanError) Unwrap() error {
	return e.Underlying
}

// IsRecoverable checks if the operation can be retried.
func (e *ScanError) IsRecoverable() bool {
	return e.Recoverable
}

// ExtractError is a failure while parsing a source file for identifiers.
type ExtractError struct {
	Type       ErrorType
	Path       string
	Language   string
	Underlying error
	Timestamp  time.Time
}

// NewExtractError creates an extract error for one file.
func NewExtractError(path, language string, err error) *ExtractError {
	return &ExtractError{
		Type:       ErrorTypeExtract,
		Path:       path,
		Language:   language,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// Error implements the error interface.
func (e *ExtractError) Error() string {
	return fmt.Sprintf("extract failed for %s (%s): %v", e.Path, e.Language, e.Underlying)
}

// Unwrap returns the underlying error.
func (e *ExtractError) Unwrap() error {
	return e.Underlying
}

// ProviderError is a failure while gathering candidate names. The checker
// downgrades these to an empty candidate list so no diagnostic is produced
// from incomplete information.
type ProviderError struct {
	Type       ErrorType
	Provider   string
	Context    string
	Underlying error
	Timestamp  time.Time
}

// NewProviderError creates a provider error; context describes the lookup
// (the container name, import specifier, or directory involved).
func NewProviderError(provider, context string, err error) *ProviderError {
	return &ProviderError{
		Type:       ErrorTypeProvider,
		Provider:   provider,
		Context:    context,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s provider failed for %q: %v", e.Provider, e.Context, e.Underlying)
}

// Unwrap returns the underlying error.
func (e *ProviderError) Unwrap() error {
	return e.Underlying
}

// ConfigError is an invalid or unreadable configuration value.
type ConfigError struct {
	File       string
	Field      string
	Value      string
	Underlying error
	Timestamp  time.Time
}

// NewConfigError creates a config error for one field.
func NewConfigError(field, value string, err error) *ConfigError {
	return &ConfigError{
		Field:      field,
		Value:      value,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// WithFile adds the originating config file to the error.
func (e *ConfigError) WithFile(file string) *ConfigError {
	e.File = file
	return e
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	switch {
	case e.File != "" && e.Field != "":
		return fmt.Sprintf("config error in %s for field %s (value %s): %v", e.File, e.Field, e.Value, e.Underlying)
	case e.File != "":
		return fmt.Sprintf("config error in %s: %v", e.File, e.Underlying)
	case e.Field != "":
		return fmt.Sprintf("config error for field %s (value %s): %v", e.Field, e.Value, e.Underlying)
	default:
		return fmt.Sprintf("config error: %v", e.Underlying)
	}
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error {
	return e.Underlying
}

// MultiError collects independent failures from a batch operation.
type MultiError struct {
	Errors []error
}

// NewMultiError creates a multi-error, dropping nil entries.
func NewMultiError(errs []error) *MultiError {
	filtered := make([]error, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			filtered = append(filtered, err)
		}
	}
	return &MultiError{Errors: filtered}
}

// Error implements the error interface.
func (e *MultiError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d errors: %v", len(e.Errors), e.Errors)
}

// Unwrap returns all errors for errors.Is/As traversal.
func (e *MultiError) Unwrap() []error {
	return e.Errors
}
