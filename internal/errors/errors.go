// Package errors provides standardized error handling for the kassa client.
// It defines the error kinds surfaced by the mode switcher, the server API
// client and the configuration layer, plus helpers for creating, wrapping
// and classifying them.
package errors

import (
	"errors"
	"fmt"
)

// Standard errors package errors that we re-export for convenience
var (
	// Unwrap unwraps an error to access the underlying error
	Unwrap = errors.Unwrap
	// Is reports whether any error in err's chain matches target
	Is = errors.Is
	// As finds the first error in err's chain that matches target
	As = errors.As
)

// ErrorKind represents the kind of error
type ErrorKind int

// Error kinds
const (
	Unknown ErrorKind = iota
	// Mode error kinds
	UnknownMode
	DuplicateMode
	TransitionInProgress
	LifecycleHookFailed
	// Request error kinds
	RequestFailed
	InvalidResponse
	// Config error kinds
	InvalidConfig
	ConfigNotFound
	// Input error kinds
	InvalidInputData
)

// Common error constants for frequently occurring errors
var (
	ErrDuplicateMode        = &ApplicationError{msg: "mode already registered", kind: DuplicateMode}
	ErrTransitionInProgress = &ApplicationError{msg: "mode transition already in progress", kind: TransitionInProgress}
	ErrInvalidConfig        = NewConfigError("invalid configuration", "", InvalidConfig, nil)
	ErrInvalidInput         = NewInvalidInputError("invalid input data", nil)
)

// ApplicationError is the base error type for all application errors
type ApplicationError struct {
	msg  string
	err  error
	kind ErrorKind
}

// Error returns the error message
func (e *ApplicationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap returns the wrapped error
func (e *ApplicationError) Unwrap() error {
	return e.err
}

// Kind returns the kind of error
func (e *ApplicationError) Kind() ErrorKind {
	return e.kind
}

// UnknownModeError is returned when a mode name is not in the registry.
type UnknownModeError struct {
	ApplicationError
	name string
}

// NewUnknownModeError creates a new unknown mode error
func NewUnknownModeError(name string) *UnknownModeError {
	return &UnknownModeError{
		ApplicationError: ApplicationError{
			msg:  "unknown mode",
			kind: UnknownMode,
		},
		name: name,
	}
}

// Error returns the unknown mode error message
func (e *UnknownModeError) Error() string {
	return fmt.Sprintf("%s: %q", e.msg, e.name)
}

// Name returns the mode name that failed to resolve
func (e *UnknownModeError) Name() string {
	return e.name
}

// RequestError carries a failed server call: the HTTP status and the raw
// response body. Transport failures use status 0.
type RequestError struct {
	ApplicationError
	op     string
	status int
	body   string
}

// NewRequestError creates a new request error
func NewRequestError(op string, status int, body string, err error) *RequestError {
	return &RequestError{
		ApplicationError: ApplicationError{
			msg:  "request failed",
			err:  err,
			kind: RequestFailed,
		},
		op:     op,
		status: status,
		body:   body,
	}
}

// Error returns the request error message
func (e *RequestError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %d: %v", e.msg, e.op, e.status, e.err)
	}
	return fmt.Sprintf("%s: %s: %d %s", e.msg, e.op, e.status, e.body)
}

// UserMessage is the text shown to staff: status code and raw body.
func (e *RequestError) UserMessage() string {
	return fmt.Sprintf("%d: %s", e.status, e.body)
}

// Op returns the API operation that failed
func (e *RequestError) Op() string {
	return e.op
}

// Status returns the HTTP status code, 0 for transport failures
func (e *RequestError) Status() int {
	return e.status
}

// Body returns the raw response body
func (e *RequestError) Body() string {
	return e.body
}

// LifecycleError wraps a failure raised by a mode's enter or exit hook.
type LifecycleError struct {
	ApplicationError
	mode string
	hook string
}

// NewLifecycleError creates a new lifecycle hook error
func NewLifecycleError(mode, hook string, err error) *LifecycleError {
	return &LifecycleError{
		ApplicationError: ApplicationError{
			msg:  "lifecycle hook failed",
			err:  err,
			kind: LifecycleHookFailed,
		},
		mode: mode,
		hook: hook,
	}
}

// Error returns the lifecycle error message
func (e *LifecycleError) Error() string {
	return fmt.Sprintf("%s: %s.%s: %v", e.msg, e.mode, e.hook, e.err)
}

// Mode returns the name of the mode whose hook failed
func (e *LifecycleError) Mode() string {
	return e.mode
}

// Hook returns "enter" or "exit"
func (e *LifecycleError) Hook() string {
	return e.hook
}

// ConfigError represents errors related to configuration
type ConfigError struct {
	ApplicationError
	param string
}

// NewConfigError creates a new configuration error
func NewConfigError(msg string, param string, kind ErrorKind, err error) *ConfigError {
	return &ConfigError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		param: param,
	}
}

// Error returns the config error message
func (e *ConfigError) Error() string {
	if e.param != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.param, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.param)
	}
	return e.ApplicationError.Error()
}

// Param returns the configuration parameter associated with the error
func (e *ConfigError) Param() string {
	return e.param
}

// InvalidInputError represents errors related to invalid input data
type InvalidInputError struct {
	ApplicationError
	context map[string]interface{}
}

// NewInvalidInputError creates a new invalid input error
func NewInvalidInputError(msg string, err error) *InvalidInputError {
	return &InvalidInputError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: InvalidInputData,
		},
		context: make(map[string]interface{}),
	}
}

// WithContext adds context information to the invalid input error
func (e *InvalidInputError) WithContext(key string, value interface{}) *InvalidInputError {
	e.context[key] = value
	return e
}

// Context returns the context information associated with the error
func (e *InvalidInputError) Context() map[string]interface{} {
	return e.context
}

// New creates a new error with a message
func New(msg string) error {
	return &ApplicationError{
		msg:  msg,
		kind: Unknown,
	}
}

// Newf creates a new error with a formatted message
func Newf(format string, args ...interface{}) error {
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		kind: Unknown,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  msg,
		err:  err,
		kind: Unknown,
	}
}

// Wrapf wraps an existing error with additional formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		err:  err,
		kind: Unknown,
	}
}

// KindOf returns the kind of the first ApplicationError-like error in the
// chain, or Unknown.
func KindOf(err error) ErrorKind {
	var k interface{ Kind() ErrorKind }
	if errors.As(err, &k) {
		return k.Kind()
	}
	return Unknown
}

// IsUnknownMode checks if the error is an unknown mode error
func IsUnknownMode(err error) bool {
	var modeErr *UnknownModeError
	return errors.As(err, &modeErr)
}

// IsRequestFailure checks if the error is a failed server request
func IsRequestFailure(err error) bool {
	var reqErr *RequestError
	return errors.As(err, &reqErr)
}

// IsLifecycleFailure checks if the error came from a mode hook
func IsLifecycleFailure(err error) bool {
	var hookErr *LifecycleError
	return errors.As(err, &hookErr)
}

// IsInvalidConfig checks if the error is an invalid configuration error
func IsInvalidConfig(err error) bool {
	var configErr *ConfigError
	if errors.As(err, &configErr) {
		return configErr.Kind() == InvalidConfig
	}
	return false
}

// IsInvalidInputError checks if the error is an invalid input error
func IsInvalidInputError(err error) bool {
	var inputErr *InvalidInputError
	return errors.As(err, &inputErr)
}

// UserMessage returns the text to show staff for err. Request failures are
// shown as status and raw body; anything else uses Error().
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.UserMessage()
	}
	return err.Error()
}
