package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name:     "without underlying error",
			appErr:   &AppError{Code: CodeNotFound, Message: "Service not found"},
			expected: "NOT_FOUND: Service not found",
		},
		{
			name: "with underlying error",
			appErr: &AppError{
				Code:    CodeUnavailable,
				Message: "availability API is temporarily unavailable",
				Err:     errors.New("dial tcp: connection refused"),
			},
			expected: "SERVICE_UNAVAILABLE: availability API is temporarily unavailable (caused by: dial tcp: connection refused)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.appErr.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestUpgradeRequired(t *testing.T) {
	err := UpgradeRequired("limit reached", map[string]any{"suggested_tier": "premium"})

	if err.Code != CodeUpgradeRequired {
		t.Errorf("expected code %s, got %s", CodeUpgradeRequired, err.Code)
	}
	if err.StatusCode() != http.StatusPaymentRequired {
		t.Errorf("expected status %d, got %d", http.StatusPaymentRequired, err.StatusCode())
	}
	if err.Details["suggested_tier"] != "premium" {
		t.Errorf("expected suggested tier in details, got %v", err.Details)
	}
}

func TestMalformed(t *testing.T) {
	cause := errors.New("unexpected end of JSON input")
	err := Malformed("could not decode services response", cause)

	if err.Code != CodeMalformed {
		t.Errorf("expected code %s, got %s", CodeMalformed, err.Code)
	}
	if !errors.Is(err, cause) {
		t.Errorf("Malformed() should wrap the decode error")
	}
}

func TestFromStatus(t *testing.T) {
	tests := []struct {
		status int
		code   string
	}{
		{http.StatusNotFound, CodeNotFound},
		{http.StatusBadRequest, CodeBadRequest},
		{http.StatusUnauthorized, CodeUnauthorized},
		{http.StatusForbidden, CodeForbidden},
		{http.StatusConflict, CodeConflict},
		{http.StatusUnprocessableEntity, CodeValidation},
		{http.StatusPaymentRequired, CodeUpgradeRequired},
		{http.StatusGatewayTimeout, CodeTimeout},
		{http.StatusServiceUnavailable, CodeUnavailable},
		{http.StatusBadGateway, CodeUnavailable},
		{http.StatusInternalServerError, CodeInternal},
		{http.StatusTeapot, CodeInternal},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			err := FromStatus(tt.status, "")
			if err.Code != tt.code {
				t.Errorf("FromStatus(%d) code = %s, want %s", tt.status, err.Code, tt.code)
			}
			if err.StatusCode() != tt.status {
				t.Errorf("FromStatus(%d) status = %d", tt.status, err.StatusCode())
			}
			if err.Message != http.StatusText(tt.status) {
				t.Errorf("expected default message %q, got %q", http.StatusText(tt.status), err.Message)
			}
		})
	}
}

func TestAsAppError_Wrapped(t *testing.T) {
	appErr := NotFoundWithID("Service", "svc-1")
	wrapped := fmt.Errorf("create_service step failed: %w", appErr)

	if got := AsAppError(wrapped); got != appErr {
		t.Errorf("AsAppError() should find the AppError through wrapping")
	}
	if !IsAppError(wrapped) {
		t.Errorf("IsAppError() should see through wrapping")
	}
	if !HasCode(wrapped, CodeNotFound) {
		t.Errorf("HasCode() should match NOT_FOUND")
	}
	if HasCode(errors.New("plain"), CodeNotFound) {
		t.Errorf("HasCode() should be false for plain errors")
	}

	plain := errors.New("boom")
	internal := AsAppError(plain)
	if internal.Code != CodeInternal || internal.Err != plain {
		t.Errorf("AsAppError() should wrap plain errors as internal, got %+v", internal)
	}
}

func TestAppError_ToJSON(t *testing.T) {
	err := NotFoundWithID("Vendor profile", "vp-42")
	body := string(err.ToJSON())

	for _, want := range []string{`"code":"NOT_FOUND"`, `"message":"Vendor profile not found"`, `"id":"vp-42"`} {
		if !strings.Contains(body, want) {
			t.Errorf("ToJSON() = %s, missing %s", body, want)
		}
	}
}

func TestStatusCode_DefaultsToInternal(t *testing.T) {
	err := &AppError{Code: CodeInternal, Message: "no status"}
	if err.StatusCode() != http.StatusInternalServerError {
		t.Errorf("expected default status 500, got %d", err.StatusCode())
	}
}
