// Package apperrors defines the error taxonomy shared by services and
// handlers. Services return these types wrapped with context; handlers map
// them to HTTP status codes without inspecting message strings.
package apperrors

import "fmt"

// ValidationError indicates bad or missing input the caller can correct.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// AuthorizationError indicates a missing, invalid or insufficient-role
// credential.
type AuthorizationError struct {
	Msg string
}

func (e *AuthorizationError) Error() string { return e.Msg }

// NotFoundError indicates a referenced entity does not exist.
type NotFoundError struct {
	Entity string
	Key    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.Key)
}

// ConfigurationError indicates mandatory configuration is absent. Fatal to
// the whole operation that needed it.
type ConfigurationError struct {
	Msg string
}

func (e *ConfigurationError) Error() string { return e.Msg }

// DependencyError indicates a persistence or downstream call failed.
// Retryable.
type DependencyError struct {
	Op  string
	Err error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *DependencyError) Unwrap() error { return e.Err }

// Validation builds a ValidationError.
func Validation(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// Authorization builds an AuthorizationError.
func Authorization(format string, args ...interface{}) error {
	return &AuthorizationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFound builds a NotFoundError.
func NotFound(entity, key string) error {
	return &NotFoundError{Entity: entity, Key: key}
}

// Configuration builds a ConfigurationError.
func Configuration(format string, args ...interface{}) error {
	return &ConfigurationError{Msg: fmt.Sprintf(format, args...)}
}

// Dependency wraps a persistence or downstream failure.
func Dependency(op string, err error) error {
	return &DependencyError{Op: op, Err: err}
}
