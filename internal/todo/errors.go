package todo

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyText is wrapped by the ValidationError Add returns for blank input.
var ErrEmptyText = errors.New("task text is empty")

// ValidationError is returned when user input is rejected.
// The list is never modified when it is returned.
type ValidationError struct {
	Field string // input field that was rejected
	Err   error  // underlying error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// FieldError locates a single problem inside a stored value.
type FieldError struct {
	Path string // e.g. "[2].completed"; empty for the document root
	Err  error
}

func (e *FieldError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *FieldError) Unwrap() error {
	return e.Err
}

// CorruptDataError is returned when a stored value cannot be decoded into a List.
type CorruptDataError struct {
	Key    string
	Errors []error
}

func (e *CorruptDataError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, err := range e.Errors {
		msgs = append(msgs, err.Error())
	}
	detail := strings.Join(msgs, "; ")
	if detail == "" {
		detail = "invalid value"
	}
	if e.Key != "" {
		return fmt.Sprintf("corrupt data under %q: %s", e.Key, detail)
	}
	return "corrupt data: " + detail
}

// Unwrap returns every underlying problem.
func (e *CorruptDataError) Unwrap() []error {
	return e.Errors
}

// ReadError is returned when the underlying store cannot be read.
type ReadError struct {
	Key string
	Err error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %q: %s", e.Key, e.Err)
}

// Unwrap returns the underlying error.
func (e *ReadError) Unwrap() error {
	return e.Err
}

// WriteError is returned when the underlying store rejects a write.
type WriteError struct {
	Key string
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %q: %s", e.Key, e.Err)
}

// Unwrap returns the underlying error.
func (e *WriteError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsCorrupt reports whether err is (or wraps) a CorruptDataError.
func IsCorrupt(err error) bool {
	var ce *CorruptDataError
	return errors.As(err, &ce)
}
