package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"innkeep/shared/failure"
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

func TestBusinessFailures(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		kind string
	}{
		{
			name: "InvalidDateRange",
			err:  failure.InvalidDateRange("check-out must be after check-in"),
			code: http.StatusBadRequest,
			kind: failure.KindInvalidDateRange,
		},
		{
			name: "RoomUnavailable",
			err:  failure.RoomUnavailable("101"),
			code: http.StatusConflict,
			kind: failure.KindRoomUnavailable,
		},
		{
			name: "NotFound",
			err:  failure.NotFound("booking"),
			code: http.StatusNotFound,
			kind: failure.KindNotFound,
		},
		{
			name: "InvalidTransition",
			err:  failure.InvalidTransition("checked_out", "check in"),
			code: http.StatusConflict,
			kind: failure.KindInvalidTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ok := tt.err.(*failure.Failure)
			if !ok {
				t.Fatalf("expected *failure.Failure, got %T", tt.err)
			}

			if f.Code != tt.code {
				t.Errorf("expected code to be %d, got %d", tt.code, f.Code)
			}

			if f.Kind != tt.kind {
				t.Errorf("expected kind to be %s, got %s", tt.kind, f.Kind)
			}

			if !failure.IsKind(tt.err, tt.kind) {
				t.Errorf("IsKind(%s) should be true", tt.kind)
			}
		})
	}
}

func TestIsKind_WrappedFailure(t *testing.T) {
	err := fmt.Errorf("create booking: %w", failure.RoomUnavailable("204"))

	if !failure.IsKind(err, failure.KindRoomUnavailable) {
		t.Error("expected wrapped failure to match its kind")
	}

	if failure.IsKind(err, failure.KindNotFound) {
		t.Error("wrapped failure should not match a different kind")
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{
			name: "failure error",
			err:  failure.Unauthorized("token expired"),
			code: http.StatusUnauthorized,
		},
		{
			name: "plain error",
			err:  errors.New("database connection failed"),
			code: http.StatusInternalServerError,
		},
		{
			name: "wrapped failure",
			err:  fmt.Errorf("outer: %w", failure.NotFound("room")),
			code: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := failure.GetCode(tt.err); got != tt.code {
				t.Errorf("expected code %d, got %d", tt.code, got)
			}
		})
	}
}

func TestBadRequest_NilError(t *testing.T) {
	if failure.BadRequest(nil) != nil {
		t.Error("expected nil for nil input")
	}

	if failure.InternalError(nil) != nil {
		t.Error("expected nil for nil input")
	}
}
