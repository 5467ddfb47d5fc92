package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"hotel/shared/failure"

	"github.com/stretchr/testify/assert"
)

func TestFailure_Error(t *testing.T) {
	f := &failure.Failure{
		Code:    http.StatusBadRequest,
		Message: "test error message",
	}

	if f.Error() != "test error message" {
		t.Errorf("expected error message to be 'test error message', got %s", f.Error())
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   int
		reason string
	}{
		{name: "BadRequestFromString", err: failure.BadRequestFromString("bad"), code: http.StatusBadRequest, reason: failure.ReasonInvalidInput},
		{name: "Unauthorized", err: failure.Unauthorized("Invalid credentials"), code: http.StatusUnauthorized, reason: failure.ReasonUnauthorized},
		{name: "Forbidden", err: failure.Forbidden("nope"), code: http.StatusForbidden, reason: failure.ReasonForbidden},
		{name: "NotFound", err: failure.NotFound("Room not found"), code: http.StatusNotFound, reason: failure.ReasonNotFound},
		{name: "Conflict", err: failure.Conflict("User already exists"), code: http.StatusConflict, reason: failure.ReasonConflict},
		{name: "RoomUnavailable", err: failure.RoomUnavailable("Room is not available"), code: http.StatusConflict, reason: failure.ReasonRoomUnavailable},
		{name: "InvalidDateRange", err: failure.InvalidDateRange("bad dates"), code: http.StatusBadRequest, reason: failure.ReasonInvalidDateRange},
		{name: "OccupancyExceeded", err: failure.OccupancyExceeded("too many"), code: http.StatusBadRequest, reason: failure.ReasonOccupancyExceeded},
		{name: "Unimplemented", err: failure.Unimplemented("Cancel"), code: http.StatusNotImplemented, reason: failure.ReasonUnimplemented},
		{name: "ForbiddenError", err: failure.ForbiddenError, code: http.StatusForbidden, reason: failure.ReasonForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, failure.GetCode(tt.err))
			assert.Equal(t, tt.reason, failure.GetReason(tt.err))
			assert.True(t, failure.Is(tt.err, tt.reason))
		})
	}
}

func TestBadRequest(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))

	err := failure.BadRequest(errors.New("validation failed"))
	assert.Equal(t, &failure.Failure{Code: http.StatusBadRequest, Reason: failure.ReasonInvalidInput, Message: "validation failed"}, err)
}

func TestInternalError(t *testing.T) {
	assert.NoError(t, failure.InternalError(nil))

	err := failure.InternalError(errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	assert.Equal(t, "boom", err.Error())
}

func TestGetCode_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", failure.NotFound("Booking not found"))

	assert.Equal(t, http.StatusNotFound, failure.GetCode(wrapped))
	assert.Equal(t, failure.ReasonNotFound, failure.GetReason(wrapped))
}

func TestGetCode_PlainError(t *testing.T) {
	err := errors.New("plain")

	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	assert.Equal(t, failure.ReasonInternal, failure.GetReason(err))
	assert.False(t, failure.Is(err, failure.ReasonNotFound))
}
