package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Error is an application error that knows how it should be rendered over HTTP.
type Error struct {
	HTTPStatus int
	Code       string
	Message    string
	Internal   error
	Details    map[string]any
}

func (e *Error) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Internal)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Internal
}

// Is matches on Code so that copies made by the With* helpers still compare
// equal to the sentinel they came from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithInternal returns a copy of the error with an internal cause attached.
func (e *Error) WithInternal(err error) *Error {
	cp := *e
	cp.Internal = err
	return &cp
}

// WithMessage returns a copy of the error with a custom message.
func (e *Error) WithMessage(message string) *Error {
	cp := *e
	cp.Message = message
	return &cp
}

// WithDetails returns a copy of the error with details attached.
func (e *Error) WithDetails(details map[string]any) *Error {
	cp := *e
	cp.Details = details
	return &cp
}

// New creates a new application error.
func New(status int, code, message string) *Error {
	return &Error{
		HTTPStatus: status,
		Code:       code,
		Message:    message,
	}
}

var (
	ErrBadRequest  = New(http.StatusBadRequest, "bad_request", "Invalid request")
	ErrValidation  = New(http.StatusUnprocessableEntity, "validation_error", "Validation failed")
	ErrNotFound    = New(http.StatusNotFound, "not_found", "Resource not found")
	ErrRateLimited = New(http.StatusTooManyRequests, "rate_limited", "Too many requests, slow down")

	ErrInternal    = New(http.StatusInternalServerError, "internal_error", "An internal error occurred")
	ErrUpstream    = New(http.StatusBadGateway, "upstream_error", "The upstream service failed")
	ErrUnavailable = New(http.StatusServiceUnavailable, "ai_unavailable", "AI features are not configured")
)

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Body renders the JSON body for err. Unknown errors collapse to internal_error.
func Body(err error) (int, map[string]any) {
	appErr, ok := As(err)
	if !ok {
		return http.StatusInternalServerError, map[string]any{
			"error": map[string]any{
				"code":    ErrInternal.Code,
				"message": ErrInternal.Message,
			},
		}
	}

	errBody := map[string]any{
		"code":    appErr.Code,
		"message": appErr.Message,
	}
	if len(appErr.Details) > 0 {
		errBody["details"] = appErr.Details
	}
	return appErr.HTTPStatus, map[string]any{"error": errBody}
}

// NewBadRequest creates a bad request error with a custom message.
func NewBadRequest(message string) *Error {
	return ErrBadRequest.WithMessage(message)
}

// NewValidation reports invalid fields. fields maps field name to problem.
func NewValidation(fields map[string]string) *Error {
	names := make([]string, 0, len(fields))
	details := make(map[string]any, len(fields))
	for name, problem := range fields {
		names = append(names, name)
		details[name] = problem
	}
	sort.Strings(names)
	return ErrValidation.
		WithMessage("Please check: " + strings.Join(names, ", ")).
		WithDetails(details)
}

// NewInternal creates an internal error with a message and optional wrapped error.
func NewInternal(message string, err error) *Error {
	return ErrInternal.WithMessage(message).WithInternal(err)
}

// NewUpstream creates a bad gateway error wrapping the upstream failure.
func NewUpstream(message string, err error) *Error {
	return ErrUpstream.WithMessage(message).WithInternal(err)
}
