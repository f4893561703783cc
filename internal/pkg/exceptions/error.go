package exceptions

import (
	"doctor-appointment-service/internal/pkg/constvars"
	"errors"
	"fmt"
	"runtime"
)

// ErrorKind is the stable, client-visible category of a failure.
type ErrorKind string

const (
	KindNotFound          ErrorKind = "NOT_FOUND"
	KindForbidden         ErrorKind = "FORBIDDEN"
	KindUnauthenticated   ErrorKind = "UNAUTHENTICATED"
	KindInvalidInput      ErrorKind = "INVALID_INPUT"
	KindSlotConflict      ErrorKind = "SLOT_CONFLICT"
	KindAlreadyCancelled  ErrorKind = "ALREADY_CANCELLED"
	KindInvalidState      ErrorKind = "INVALID_STATE"
	KindUnavailable       ErrorKind = "UNAVAILABLE"
	KindDependencyFailure ErrorKind = "DEPENDENCY_FAILURE"
	KindInternal          ErrorKind = "INTERNAL"
)

var kindStatusCodes = map[ErrorKind]int{
	KindNotFound:          constvars.StatusNotFound,
	KindForbidden:         constvars.StatusForbidden,
	KindUnauthenticated:   constvars.StatusUnauthorized,
	KindInvalidInput:      constvars.StatusBadRequest,
	KindSlotConflict:      constvars.StatusConflict,
	KindAlreadyCancelled:  constvars.StatusConflict,
	KindInvalidState:      constvars.StatusUnprocessableEntity,
	KindUnavailable:       constvars.StatusLocked,
	KindDependencyFailure: constvars.StatusServiceUnavailable,
	KindInternal:          constvars.StatusInternalServerError,
}

// StatusCode returns the HTTP status a kind is reported with.
func (k ErrorKind) StatusCode() int {
	if code, ok := kindStatusCodes[k]; ok {
		return code
	}
	return constvars.StatusInternalServerError
}

// Retryable reports whether a caller may retry the same request unchanged.
func (k ErrorKind) Retryable() bool {
	return k == KindDependencyFailure
}

type CustomError struct {
	StatusCode    int        `json:"status_code"`
	Success       bool       `json:"success"`
	Kind          ErrorKind  `json:"kind,omitempty"`
	Retryable     bool       `json:"retryable"`
	ClientMessage string     `json:"message"`
	DevMessage    string     `json:"dev_message,omitempty"`
	Locations     []Location `json:"locations,omitempty"`
	Err           error      `json:"-"`
}

type Location struct {
	File         string `json:"file"`
	Line         int    `json:"line"`
	FunctionName string `json:"function_name"`
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.DevMessage, e.Err.Error())
	}
	return e.DevMessage
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// BuildNewCustomError wraps err with a kind derived from the status code.
func BuildNewCustomError(err error, statusCode int, clientMessage, devMessage string) *CustomError {
	return newCustomError(err, kindFromStatus(statusCode), statusCode, clientMessage, devMessage)
}

// BuildKindError wraps err with an explicit kind.
func BuildKindError(err error, kind ErrorKind, clientMessage, devMessage string) *CustomError {
	return newCustomError(err, kind, kind.StatusCode(), clientMessage, devMessage)
}

func newCustomError(err error, kind ErrorKind, statusCode int, clientMessage, devMessage string) *CustomError {
	customErr := &CustomError{
		StatusCode:    statusCode,
		Kind:          kind,
		Retryable:     kind.Retryable(),
		ClientMessage: clientMessage,
		DevMessage:    devMessage,
		Err:           err,
		Locations:     []Location{getLocation(4)},
	}

	var inner *CustomError
	if errors.As(err, &inner) {
		customErr.Locations = append(customErr.Locations, inner.Locations...)
	}
	return customErr
}

// KindOf returns the kind carried by err, or KindInternal for foreign errors.
func KindOf(err error) ErrorKind {
	var customErr *CustomError
	if errors.As(err, &customErr) && customErr.Kind != "" {
		return customErr.Kind
	}
	return KindInternal
}

func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}

func kindFromStatus(statusCode int) ErrorKind {
	switch statusCode {
	case constvars.StatusNotFound:
		return KindNotFound
	case constvars.StatusForbidden:
		return KindForbidden
	case constvars.StatusUnauthorized:
		return KindUnauthenticated
	case constvars.StatusBadRequest, constvars.StatusRequestEntityTooBig:
		return KindInvalidInput
	case constvars.StatusServiceUnavailable, constvars.StatusGatewayTimeout:
		return KindDependencyFailure
	default:
		return KindInternal
	}
}

func getLocation(skip int) Location {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return Location{
			File:         constvars.ResponseUnknown,
			Line:         0,
			FunctionName: constvars.ResponseUnknown,
		}
	}
	function := runtime.FuncForPC(pc).Name()
	return Location{
		File:         file,
		Line:         line,
		FunctionName: function,
	}
}
