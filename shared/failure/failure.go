package failure

import (
	"errors"
	"net/http"
)

// Reasons let callers tell failures apart without parsing messages.
const (
	ReasonInvalidInput      = "INVALID_INPUT"
	ReasonUnauthorized      = "UNAUTHORIZED"
	ReasonForbidden         = "FORBIDDEN"
	ReasonNotFound          = "NOT_FOUND"
	ReasonConflict          = "CONFLICT"
	ReasonRoomUnavailable   = "ROOM_UNAVAILABLE"
	ReasonInvalidDateRange  = "INVALID_DATE_RANGE"
	ReasonOccupancyExceeded = "OCCUPANCY_EXCEEDED"
	ReasonInternal          = "INTERNAL"
	ReasonUnimplemented     = "UNIMPLEMENTED"
)

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
type Failure struct {
	Code    int    `json:"code"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

var ForbiddenError = &Failure{Code: http.StatusForbidden, Reason: ReasonForbidden, Message: "Insufficient permissions"}

// Error returns the failure message.
func (e *Failure) Error() string {
	return e.Message
}

// BadRequest returns a new Failure with code for bad requests.
func BadRequest(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusBadRequest,
			Reason:  ReasonInvalidInput,
			Message: err.Error(),
		}
	}

	return nil
}

// BadRequestFromString returns a new Failure with code for bad requests with message set from string.
func BadRequestFromString(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Reason:  ReasonInvalidInput,
		Message: msg,
	}
}

// Unauthorized returns a new Failure with code for unauthorized requests.
func Unauthorized(msg string) error {
	return &Failure{
		Code:    http.StatusUnauthorized,
		Reason:  ReasonUnauthorized,
		Message: msg,
	}
}

// InternalError returns a new Failure with code for internal error and message derived from an error interface.
func InternalError(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusInternalServerError,
			Reason:  ReasonInternal,
			Message: err.Error(),
		}
	}

	return nil
}

// Unimplemented returns a new Failure with code for unimplemented method.
func Unimplemented(methodName string) error {
	return &Failure{
		Code:    http.StatusNotImplemented,
		Reason:  ReasonUnimplemented,
		Message: methodName,
	}
}

// NotFound returns a new Failure with code for entity not found.
func NotFound(msg string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Reason:  ReasonNotFound,
		Message: msg,
	}
}

// Conflict returns a new Failure with code for conflict situations.
func Conflict(msg string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Reason:  ReasonConflict,
		Message: msg,
	}
}

func Forbidden(msg string) error {
	return &Failure{
		Code:    http.StatusForbidden,
		Reason:  ReasonForbidden,
		Message: msg,
	}
}

// RoomUnavailable is returned when a booking targets a room whose availability flag is off.
func RoomUnavailable(msg string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Reason:  ReasonRoomUnavailable,
		Message: msg,
	}
}

func InvalidDateRange(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Reason:  ReasonInvalidDateRange,
		Message: msg,
	}
}

func OccupancyExceeded(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Reason:  ReasonOccupancyExceeded,
		Message: msg,
	}
}

// GetCode returns the error code of an error interface.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// GetReason returns the reason of an error interface.
func GetReason(err error) string {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Reason
	}

	return ReasonInternal
}

// Is reports whether err is a Failure with the given reason.
func Is(err error, reason string) bool {
	return GetReason(err) == reason
}
