// Package domainerrors provides coded errors that services return and the
// transport layer translates into HTTP responses. Codes are stable API;
// messages are safe to show to callers except for CodeInternal, whose
// description is always suppressed at the boundary.
package domainerrors

import (
	"errors"
	"net/http"
)

// Code classifies a domain error for transport translation.
type Code string

const (
	CodeBadRequest   Code = "bad_request"
	CodeValidation   Code = "validation_failed"
	CodeInvalidInput Code = "invalid_input"
	CodeUnauthorized Code = "unauthorized"
	CodeTooManyReqs  Code = "rate_limited"
	CodeUpstream     Code = "upstream_failure"
	CodeInternal     Code = "internal_error"
)

// Error carries a code and a caller-safe description.
type Error struct {
	Code        Code
	Description string
}

func (e *Error) Error() string {
	return string(e.Code) + ": " + e.Description
}

// New builds a coded domain error.
func New(code Code, description string) *Error {
	return &Error{Code: code, Description: description}
}

// From extracts a coded error from err, unwrapping as needed. Unrecognized
// errors map to CodeInternal so nothing leaks by default.
func From(err error) *Error {
	var de *Error
	if errors.As(err, &de) {
		return de
	}
	return &Error{Code: CodeInternal, Description: "internal error"}
}

// ToHTTPStatus maps a code to its HTTP status.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeBadRequest, CodeInvalidInput:
		return http.StatusBadRequest
	case CodeValidation:
		return http.StatusUnprocessableEntity
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeTooManyReqs:
		return http.StatusTooManyRequests
	case CodeUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
