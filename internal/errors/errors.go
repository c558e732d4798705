// Package errors provides standardized error handling for arbor. It defines
// kinded error types and helpers for consistent creation, wrapping, and
// inspection across the application.
package errors

import (
	"errors"
	"fmt"
)

// Re-exported stdlib helpers so callers need only one errors import.
var (
	Unwrap = errors.Unwrap
	Is     = errors.Is
	As     = errors.As
)

// ErrorKind represents the kind of error.
type ErrorKind int

const (
	Unknown ErrorKind = iota
	// File error kinds
	FileNotFound
	FileAccessDenied
	InvalidPath
	// Config error kinds
	InvalidConfig
	// Router error kinds
	UnknownContext
	UnknownSurface
)

// ApplicationError is the base type for all arbor errors.
type ApplicationError struct {
	msg  string
	err  error
	kind ErrorKind
}

// Error returns the error message.
func (e *ApplicationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap returns the wrapped error.
func (e *ApplicationError) Unwrap() error {
	return e.err
}

// Kind returns the kind of error.
func (e *ApplicationError) Kind() ErrorKind {
	return e.kind
}

// FileError represents errors related to filesystem operations.
type FileError struct {
	ApplicationError
	path string
}

// NewFileError creates a new file error.
func NewFileError(msg, path string, kind ErrorKind, err error) *FileError {
	return &FileError{
		ApplicationError: ApplicationError{msg: msg, err: err, kind: kind},
		path:             path,
	}
}

// Error returns the file error message.
func (e *FileError) Error() string {
	if e.path != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.path, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.path)
	}
	return e.ApplicationError.Error()
}

// Path returns the file path associated with the error.
func (e *FileError) Path() string {
	return e.path
}

// ConfigError represents errors related to configuration.
type ConfigError struct {
	ApplicationError
	param string
}

// NewConfigError creates a new configuration error.
func NewConfigError(msg, param string, kind ErrorKind, err error) *ConfigError {
	return &ConfigError{
		ApplicationError: ApplicationError{msg: msg, err: err, kind: kind},
		param:            param,
	}
}

// Error returns the config error message.
func (e *ConfigError) Error() string {
	if e.param != "" {
		return fmt.Sprintf("%s: %s", e.msg, e.param)
	}
	return e.ApplicationError.Error()
}

// Param returns the configuration parameter associated with the error.
func (e *ConfigError) Param() string {
	return e.param
}

// RouterError represents wiring errors in input routing and focus
// coordination: referencing a context or surface that was never registered.
// These indicate a programming bug and are never swallowed.
type RouterError struct {
	ApplicationError
	ref string
}

// NewRouterError creates a new router error. ref names the offending context
// or surface.
func NewRouterError(msg, ref string, kind ErrorKind) *RouterError {
	return &RouterError{
		ApplicationError: ApplicationError{msg: msg, kind: kind},
		ref:              ref,
	}
}

// Error returns the router error message.
func (e *RouterError) Error() string {
	if e.ref != "" {
		return fmt.Sprintf("%s: %q", e.msg, e.ref)
	}
	return e.ApplicationError.Error()
}

// Ref returns the context or surface name associated with the error.
func (e *RouterError) Ref() string {
	return e.ref
}

// New creates a new error with a message.
func New(msg string) error {
	return &ApplicationError{msg: msg, kind: Unknown}
}

// Newf creates a new error with a formatted message.
func Newf(format string, args ...interface{}) error {
	return &ApplicationError{msg: fmt.Sprintf(format, args...), kind: Unknown}
}

// Wrap wraps an existing error with additional context.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{msg: msg, err: err, kind: Unknown}
}

// Wrapf wraps an existing error with additional formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{msg: fmt.Sprintf(format, args...), err: err, kind: Unknown}
}

// IsUnknownContext checks if the error is an unknown-input-context error.
func IsUnknownContext(err error) bool {
	var rerr *RouterError
	if errors.As(err, &rerr) {
		return rerr.Kind() == UnknownContext
	}
	return false
}

// IsUnknownSurface checks if the error is an unknown-surface error.
func IsUnknownSurface(err error) bool {
	var rerr *RouterError
	if errors.As(err, &rerr) {
		return rerr.Kind() == UnknownSurface
	}
	return false
}

// IsInvalidConfig checks if the error is an invalid configuration error.
func IsInvalidConfig(err error) bool {
	var cerr *ConfigError
	if errors.As(err, &cerr) {
		return cerr.Kind() == InvalidConfig
	}
	return false
}
