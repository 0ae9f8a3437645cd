package failure

import (
	"errors"
	"net/http"
)

// Kind classifies a Failure independently of its transport status code.
type Kind string

const (
	KindInvalidDateRange Kind = "invalid_date_range"
	KindInvalidInput     Kind = "invalid_input"
	KindDuplicateGuest   Kind = "duplicate_guest"
	KindNoRoomAvailable  Kind = "no_room_available"
	KindInvalidState     Kind = "invalid_state"
	KindTerminalState    Kind = "terminal_state"
	KindNotFound         Kind = "not_found"
	KindConflictRetry    Kind = "conflict_retry"
	KindConflict         Kind = "conflict"
	KindUnauthorized     Kind = "unauthorized"
	KindForbidden        Kind = "forbidden"
	KindUnimplemented    Kind = "unimplemented"
	KindInternal         Kind = "internal"
)

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
type Failure struct {
	Code    int    `json:"code"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

var InvalidPageParam = &Failure{Code: http.StatusBadRequest, Kind: KindInvalidInput, Message: "invalid page parameter"}
var InvalidLimitParam = &Failure{Code: http.StatusBadRequest, Kind: KindInvalidInput, Message: "invalid limit parameter"}
var ForbiddenError = &Failure{Code: http.StatusForbidden, Kind: KindForbidden, Message: "You don't have the required permissions"}
var ResourceRestrictedError = &Failure{Code: http.StatusForbidden, Kind: KindForbidden, Message: "You don't have permission to access this resource"}

// Error returns the error code and message in a formatted string.
func (e *Failure) Error() string {
	return e.Message
}

func newFailure(code int, kind Kind, msg string) error {
	return &Failure{
		Code:    code,
		Kind:    kind,
		Message: msg,
	}
}

// BadRequest returns a new Failure with code for bad requests.
func BadRequest(err error) error {
	if err != nil {
		return newFailure(http.StatusBadRequest, KindInvalidInput, err.Error())
	}

	return nil
}

// BadRequestFromString returns a new Failure with code for bad requests with message set from string.
func BadRequestFromString(msg string) error {
	return newFailure(http.StatusBadRequest, KindInvalidInput, msg)
}

// InvalidInput is the domain name for BadRequestFromString.
func InvalidInput(msg string) error {
	return BadRequestFromString(msg)
}

// InvalidDateRange is returned when a checkout date is not after its check-in date.
func InvalidDateRange(msg string) error {
	return newFailure(http.StatusBadRequest, KindInvalidDateRange, msg)
}

func DuplicateGuest(msg string) error {
	return newFailure(http.StatusConflict, KindDuplicateGuest, msg)
}

func NoRoomAvailable(msg string) error {
	return newFailure(http.StatusConflict, KindNoRoomAvailable, msg)
}

// InvalidState is returned when a transition is not allowed from the current status.
func InvalidState(msg string) error {
	return newFailure(http.StatusConflict, KindInvalidState, msg)
}

// TerminalState is returned when a transition is attempted on a finalized or cancelled booking.
func TerminalState(msg string) error {
	return newFailure(http.StatusConflict, KindTerminalState, msg)
}

// ConflictRetry signals a transaction-level race; the whole operation may be retried.
func ConflictRetry(msg string) error {
	return newFailure(http.StatusConflict, KindConflictRetry, msg)
}

// Unauthorized returns a new Failure with code for unauthorized requests.
func Unauthorized(msg string) error {
	return newFailure(http.StatusUnauthorized, KindUnauthorized, msg)
}

// InternalError returns a new Failure with code for internal error and message derived from an error interface.
func InternalError(err error) error {
	if err != nil {
		return newFailure(http.StatusInternalServerError, KindInternal, err.Error())
	}

	return nil
}

// Unimplemented returns a new Failure with code for unimplemented method.
func Unimplemented(methodName string) error {
	return newFailure(http.StatusNotImplemented, KindUnimplemented, methodName)
}

// NotFound returns a new Failure with code for entity not found.
func NotFound(entityName string) error {
	return newFailure(http.StatusNotFound, KindNotFound, entityName)
}

// Conflict returns a new Failure with code for conflict situations.
func Conflict(message string) error {
	return newFailure(http.StatusConflict, KindConflict, message)
}

func Forbidden(msg string) error {
	return newFailure(http.StatusForbidden, KindForbidden, msg)
}

// GetCode returns the error code of an error interface.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// GetKind returns the kind of an error interface, KindInternal for untyped errors.
func GetKind(err error) Kind {
	var fail *Failure
	if errors.As(err, &fail) && fail.Kind != "" {
		return fail.Kind
	}

	return KindInternal
}

// IsKind reports whether err carries the given kind. A terminal state is also an invalid state.
func IsKind(err error, kind Kind) bool {
	if err == nil {
		return false
	}

	got := GetKind(err)
	if got == kind {
		return true
	}

	return kind == KindInvalidState && got == KindTerminalState
}
