package platformerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestNewError(t *testing.T) {
	cause := errors.New("underlying")
	err := NewError(LayerDomain, ErrorTypeNotFound, "session missing", cause)

	if err.Type != ErrorTypeNotFound {
		t.Errorf("Type = %v, want %v", err.Type, ErrorTypeNotFound)
	}
	if err.Layer != LayerDomain {
		t.Errorf("Layer = %v, want %v", err.Layer, LayerDomain)
	}
	if !errors.Is(err, cause) {
		t.Errorf("errors.Is(err, cause) = false, want unwrap to cause")
	}
	if err.Timestamp.IsZero() {
		t.Errorf("Timestamp is zero, want set")
	}
}

func TestIsErrorType(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		errorType ErrorType
		want      bool
	}{
		{
			name:      "matching type",
			err:       NewError(LayerDomain, ErrorTypeExpired, "expired", nil),
			errorType: ErrorTypeExpired,
			want:      true,
		},
		{
			name:      "different type",
			err:       NewError(LayerDomain, ErrorTypeExpired, "expired", nil),
			errorType: ErrorTypeNotFound,
			want:      false,
		},
		{
			name:      "wrapped platform error",
			err:       fmt.Errorf("handler: %w", NewError(LayerStore, ErrorTypeInternal, "redis down", nil)),
			errorType: ErrorTypeInternal,
			want:      true,
		},
		{
			name:      "plain error",
			err:       errors.New("plain"),
			errorType: ErrorTypeInternal,
			want:      false,
		},
		{
			name:      "nil error",
			err:       nil,
			errorType: ErrorTypeInternal,
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsErrorType(tt.err, tt.errorType); got != tt.want {
				t.Errorf("IsErrorType() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAsError_PreservesType(t *testing.T) {
	inner := NewError(LayerStore, ErrorTypeNotFound, "participant missing", nil)
	outer := AsError(LayerHandler, inner, "get session")

	if outer.Type != ErrorTypeNotFound {
		t.Errorf("Type = %v, want preserved %v", outer.Type, ErrorTypeNotFound)
	}
	if outer.Layer != LayerHandler {
		t.Errorf("Layer = %v, want %v", outer.Layer, LayerHandler)
	}
}

func TestAsError_UntypedBecomesInternal(t *testing.T) {
	outer := AsError(LayerHandler, errors.New("plain"), "get session")
	if outer.Type != ErrorTypeInternal {
		t.Errorf("Type = %v, want %v", outer.Type, ErrorTypeInternal)
	}
}

func TestAsError_NilError(t *testing.T) {
	if got := AsError(LayerHandler, nil, "noop"); got != nil {
		t.Errorf("AsError(nil) = %v, want nil", got)
	}
}

func TestErrorTypeToHTTPStatus(t *testing.T) {
	tests := []struct {
		errorType ErrorType
		want      int
	}{
		{ErrorTypeNotFound, http.StatusNotFound},
		{ErrorTypeValidation, http.StatusBadRequest},
		{ErrorTypeConflict, http.StatusConflict},
		{ErrorTypeExpired, http.StatusGone},
		{ErrorTypeUnauthorized, http.StatusUnauthorized},
		{ErrorTypeForbidden, http.StatusForbidden},
		{ErrorTypeExternal, http.StatusBadGateway},
		{ErrorTypeInternal, http.StatusInternalServerError},
		{ErrorType("UNKNOWN"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.errorType), func(t *testing.T) {
			if got := ErrorTypeToHTTPStatus(tt.errorType); got != tt.want {
				t.Errorf("ErrorTypeToHTTPStatus(%v) = %d, want %d", tt.errorType, got, tt.want)
			}
		})
	}
}
