package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dimitrije/taskapp-api/internal/i18n"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuthentication
	KindAuthorization
	KindNotFound
	KindConflict
	KindTooManyRequests
)

var kindStatus = map[Kind]int{
	KindInternal:        http.StatusInternalServerError,
	KindValidation:      http.StatusBadRequest,
	KindAuthentication:  http.StatusUnauthorized,
	KindAuthorization:   http.StatusForbidden,
	KindNotFound:        http.StatusNotFound,
	KindConflict:        http.StatusConflict,
	KindTooManyRequests: http.StatusTooManyRequests,
}

var kindNames = map[Kind]string{
	KindInternal:        "internal",
	KindValidation:      "validation",
	KindAuthentication:  "authentication",
	KindAuthorization:   "authorization",
	KindNotFound:        "not_found",
	KindConflict:        "conflict",
	KindTooManyRequests: "too_many_requests",
}

func (k Kind) String() string {
	return kindNames[k]
}

// Error is the error type surfaced to the HTTP layer. Only Codes are shown
// to callers; Cause is for logs.
type Error struct {
	Kind  Kind
	Codes []i18n.Code
	Cause error
}

func (e *Error) Error() string {
	codes := make([]string, len(e.Codes))
	for i, c := range e.Codes {
		codes[i] = string(c)
	}
	msg := fmt.Sprintf("%s: %s", e.Kind, strings.Join(codes, ","))
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func (e *Error) Status() int {
	if status, ok := kindStatus[e.Kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// Is matches another *Error of the same kind, and the same first code when
// the target names one.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	if len(t.Codes) == 0 {
		return true
	}
	return len(e.Codes) > 0 && e.Codes[0] == t.Codes[0]
}

func New(kind Kind, codes ...i18n.Code) *Error {
	return &Error{Kind: kind, Codes: codes}
}

func Validation(codes ...i18n.Code) *Error {
	return New(KindValidation, codes...)
}

func Unauthenticated(code i18n.Code) *Error {
	return New(KindAuthentication, code)
}

func Forbidden(code i18n.Code) *Error {
	return New(KindAuthorization, code)
}

func NotFound(code i18n.Code) *Error {
	return New(KindNotFound, code)
}

func Conflict(code i18n.Code) *Error {
	return New(KindConflict, code)
}

func TooManyRequests() *Error {
	return New(KindTooManyRequests, i18n.ErrTooManyRequests)
}

func Internal(cause error) *Error {
	return &Error{Kind: KindInternal, Codes: []i18n.Code{i18n.ErrInternal}, Cause: cause}
}

// Wrap attaches cause to a copy of e.
func (e *Error) Wrap(cause error) *Error {
	return &Error{Kind: e.Kind, Codes: e.Codes, Cause: cause}
}

// From normalizes err. Errors that are not *Error become Internal.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}
