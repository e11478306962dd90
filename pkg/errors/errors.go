package errors

import (
	stdErrors "errors"
	"fmt"
)

type AppError struct {
	Code    Code              `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
	Cause   error             `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Cause }

// Is matches on code and message so that copies carrying details still
// compare equal to the sentinel they were derived from.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// WithDetail returns a copy of e annotated with a field-level message.
func (e *AppError) WithDetail(field, msg string) *AppError {
	details := make(map[string]string, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[field] = msg
	return &AppError{Code: e.Code, Message: e.Message, Details: details, Cause: e.Cause}
}

// Constructors
func New(code Code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func Wrap(code Code, message string, cause error) error {
	return &AppError{Code: code, Message: message, Cause: cause}
}

func InvalidArg(msg string) *AppError {
	return New(CodeInvalidArgument, msg)
}

// InvalidField reports a validation failure on a single request field.
func InvalidField(field, msg string) error {
	return InvalidArg("invalid " + field).WithDetail(field, msg)
}

func NotFound(msg string) *AppError {
	return New(CodeNotFound, msg)
}

func AlreadyExists(msg string) *AppError {
	return New(CodeAlreadyExists, msg)
}

func Unauthorized(msg string) *AppError {
	return New(CodeUnauthenticated, msg)
}

func Forbidden(msg string) *AppError {
	return New(CodePermissionDenied, msg)
}

func Internal(msg string) *AppError {
	return New(CodeInternal, msg)
}

func FailedPrecondition(msg string) *AppError {
	return New(CodeFailedPrecondition, msg)
}

func Unprocessable(msg string) *AppError {
	return New(CodeUnprocessable, msg)
}

// CodeOf returns the code of the first AppError in err's chain.
func CodeOf(err error) Code {
	var appErr *AppError
	if stdErrors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeUnknown
}
