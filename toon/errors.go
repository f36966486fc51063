package toon

import (
	"errors"
	"fmt"
)

// EncodeError is returned when a value tree cannot be rendered as TOON.
type EncodeError struct {
	Message string
	Cause   error
}

func (e *EncodeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("toon: encode: %s: %v", e.Message, e.Cause)
	}
	return "toon: encode: " + e.Message
}

func (e *EncodeError) Unwrap() error { return e.Cause }

// DecodeError is returned when TOON text cannot be parsed back into a
// value tree.
type DecodeError struct {
	Message string
	Cause   error
}

func (e *DecodeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("toon: decode: %s: %v", e.Message, e.Cause)
	}
	return "toon: decode: " + e.Message
}

func (e *DecodeError) Unwrap() error { return e.Cause }

// ValidationError reports a structural check failure layered on top of a
// successful parse, such as a non-uniform tabular block in strict mode.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return "toon: validation: " + e.Message
}

func encodeErrorf(format string, args ...interface{}) *EncodeError {
	return &EncodeError{Message: fmt.Sprintf(format, args...)}
}

func decodeErrorf(format string, args ...interface{}) *DecodeError {
	return &DecodeError{Message: fmt.Sprintf(format, args...)}
}

// isTaxonomy reports whether err already belongs to the error taxonomy,
// so wrappers can pass it through unchanged.
func isTaxonomy(err error) bool {
	var ee *EncodeError
	var de *DecodeError
	var ve *ValidationError
	return errors.As(err, &ee) || errors.As(err, &de) || errors.As(err, &ve)
}

// wrapDecode wraps an arbitrary error into a DecodeError unless it is
// already one of the three taxonomy kinds.
func wrapDecode(err error) error {
	if err == nil || isTaxonomy(err) {
		return err
	}
	return &DecodeError{Message: "failed to decode TOON", Cause: err}
}

// wrapEncode wraps an arbitrary error into an EncodeError unless it is
// already one of the three taxonomy kinds.
func wrapEncode(err error) error {
	if err == nil || isTaxonomy(err) {
		return err
	}
	return &EncodeError{Message: "failed to encode value", Cause: err}
}
