// Package errors defines the error types of the model manager.
//
// Reconciliation and pin editing never fail. Errors come from the shell
// around them: catalog, locale, account and settings files, the CLI, and
// the Gemini API. Each typed error matches one sentinel through errors.Is so
// callers can branch on the kind without knowing the concrete type.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Aliases of the standard library helpers, so one import covers both.
var (
	New = errors.New
	Is  = errors.Is
	As  = errors.As
)

var (
	// ErrNotFound matches *NotFoundError.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput matches *ValidationError.
	ErrInvalidInput = errors.New("invalid input")

	// ErrAPIKeyRequired matches a missing key and an upstream 401 or 403.
	ErrAPIKeyRequired = errors.New("API key required")

	// ErrProviderUnavailable matches an upstream 5xx.
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrRateLimited matches an upstream 429.
	ErrRateLimited = errors.New("rate limited")
)

// NotFoundError reports an id that names nothing, such as an unknown account.
type NotFoundError struct {
	Kind string // "account"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

// Is matches ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a NotFoundError.
func NewNotFoundError(kind, id string) *NotFoundError {
	return &NotFoundError{Kind: kind, ID: id}
}

// ValidationError reports a bad value in a catalog document, locale
// document, flag or setting.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "invalid input: " + e.Message
	}
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Message)
}

// Is matches ErrInvalidInput.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a ValidationError.
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// APIError is a failed call to an upstream model API. Its status code
// decides which sentinel it matches.
type APIError struct {
	Provider   string
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s API: %s", e.Provider, e.Message)
	}
	return fmt.Sprintf("%s API returned %d: %s", e.Provider, e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Is classifies the status code.
func (e *APIError) Is(target error) bool {
	switch {
	case e.StatusCode == http.StatusTooManyRequests:
		return target == ErrRateLimited
	case e.StatusCode == http.StatusUnauthorized, e.StatusCode == http.StatusForbidden:
		return target == ErrAPIKeyRequired
	case e.StatusCode >= http.StatusInternalServerError:
		return target == ErrProviderUnavailable
	}
	return false
}

// AuthenticationError reports a credential that is missing before any call
// is made.
type AuthenticationError struct {
	Provider string
	Method   string // "api_key"
	Message  string
	Err      error
}

func (e *AuthenticationError) Error() string {
	if e.Provider == "" {
		return fmt.Sprintf("%s: %s", e.Method, e.Message)
	}
	return fmt.Sprintf("%s %s: %s", e.Provider, e.Method, e.Message)
}

func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

// Is matches ErrAPIKeyRequired.
func (e *AuthenticationError) Is(target error) bool {
	return target == ErrAPIKeyRequired
}

// ConfigError reports a configuration value or client setup that cannot work.
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

func (e *ConfigError) Error() string {
	if e.Component == "" {
		return "config: " + e.Message
	}
	return fmt.Sprintf("config %s: %s", e.Component, e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a ConfigError.
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{Component: component, Message: message, Err: err}
}

// ParseError reports a JSON or YAML document that could not be decoded.
type ParseError struct {
	Format  string // "json", "yaml"
	File    string
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("decode %s: %s", e.Format, e.Message)
	}
	return fmt.Sprintf("decode %s %s: %s", e.Format, e.File, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a ParseError.
func NewParseError(format, file, message string, err error) *ParseError {
	return &ParseError{Format: format, File: file, Message: message, Err: err}
}

// IOError reports a failed filesystem operation on a data file or directory.
type IOError struct {
	Operation string // "read", "write", "create", "watch"
	Path      string
	Err       error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Operation, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates an IOError.
func NewIOError(operation, path string, err error) *IOError {
	return &IOError{Operation: operation, Path: path, Err: err}
}

// ResourceError names the catalog, locale, account or settings document an
// operation failed on.
type ResourceError struct {
	Operation string // "load", "fetch", "open"
	Resource  string // "catalog", "account", "settings", "locale"
	ID        string
	Err       error
}

func (e *ResourceError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s %s: %v", e.Operation, e.Resource, e.Err)
	}
	return fmt.Sprintf("%s %s %s: %v", e.Operation, e.Resource, e.ID, e.Err)
}

func (e *ResourceError) Unwrap() error {
	return e.Err
}

// NewResourceError creates a ResourceError.
func NewResourceError(operation, resource, id string, err error) *ResourceError {
	return &ResourceError{Operation: operation, Resource: resource, ID: id, Err: err}
}

// IsNotFound reports whether err names something that does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError reports whether err is a bad input value.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsAPIKeyError reports whether err is a missing or rejected API key.
func IsAPIKeyError(err error) bool {
	return errors.Is(err, ErrAPIKeyRequired)
}

// IsRateLimited reports whether an upstream API throttled the call.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// IsProviderUnavailable reports whether an upstream API failed on its side.
func IsProviderUnavailable(err error) bool {
	return errors.Is(err, ErrProviderUnavailable)
}

// IsUpstreamExhausted reports whether further calls to the same API in this
// run are pointless because the key was rejected or the API cannot serve.
func IsUpstreamExhausted(err error) bool {
	return IsAPIKeyError(err) || IsRateLimited(err) || IsProviderUnavailable(err)
}

// WrapIO returns nil for a nil err, else an IOError.
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapResource returns nil for a nil err, else a ResourceError.
func WrapResource(operation, resource, id string, err error) error {
	if err == nil {
		return nil
	}
	return NewResourceError(operation, resource, id, err)
}

// WrapParse returns nil for a nil err, else a ParseError.
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}

// WrapAPI returns nil for a nil err, else an APIError with statusCode.
func WrapAPI(provider string, statusCode int, err error) error {
	if err == nil {
		return nil
	}
	return &APIError{Provider: provider, StatusCode: statusCode, Message: err.Error(), Err: err}
}
