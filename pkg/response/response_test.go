package response

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestSuccess(t *testing.T) {
	data := map[string]string{"name": "test"}
	resp := Success(data)

	if !resp.Success {
		t.Error("Expected success to be true")
	}
	if resp.Data == nil {
		t.Error("Expected data to be set")
	}
	if resp.Error != nil {
		t.Error("Expected error to be nil")
	}
	if resp.Meta != nil {
		t.Error("Expected meta to be nil")
	}
}

func TestSuccess_JSONFormat(t *testing.T) {
	data := map[string]string{"id": "123"}
	resp := Success(data)

	jsonBytes, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("Failed to marshal response: %v", err)
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal(jsonBytes, &parsed); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if parsed["success"] != true {
		t.Errorf("Expected success=true, got %v", parsed["success"])
	}
	if _, ok := parsed["error"]; ok {
		t.Error("Expected error field to be omitted")
	}
	if _, ok := parsed["meta"]; ok {
		t.Error("Expected meta field to be omitted")
	}
}

func TestError(t *testing.T) {
	resp := Error(ErrCodeNotFound, "Payment not found")

	if resp.Success {
		t.Error("Expected success to be false")
	}
	if resp.Data != nil {
		t.Error("Expected data to be nil")
	}
	if resp.Error == nil {
		t.Fatal("Expected error to be set")
	}
	if resp.Error.Code != ErrCodeNotFound {
		t.Errorf("Expected code %s, got %s", ErrCodeNotFound, resp.Error.Code)
	}
	if resp.Error.Message != "Payment not found" {
		t.Errorf("Expected message 'Payment not found', got '%s'", resp.Error.Message)
	}
}

func TestErrorWithRequestID(t *testing.T) {
	resp := ErrorWithRequestID(ErrCodeInternalError, "Something went wrong", "req-123")

	if resp.Success {
		t.Error("Expected success to be false")
	}
	if resp.Error == nil {
		t.Fatal("Expected error to be set")
	}
	if resp.Error.RequestID != "req-123" {
		t.Errorf("Expected request id 'req-123', got '%s'", resp.Error.RequestID)
	}
}

func TestGetHTTPStatus(t *testing.T) {
	cases := map[string]int{
		ErrCodeBadRequest:       http.StatusBadRequest,
		ErrCodeUnauthorized:     http.StatusUnauthorized,
		ErrCodeForbidden:        http.StatusForbidden,
		ErrCodeNotFound:         http.StatusNotFound,
		ErrCodeConflict:         http.StatusConflict,
		ErrCodeValidationFailed: http.StatusBadRequest,
		ErrCodeInternalError:    http.StatusInternalServerError,
		"SOMETHING_UNKNOWN":     http.StatusInternalServerError,
	}

	for code, want := range cases {
		if got := GetHTTPStatus(code); got != want {
			t.Errorf("GetHTTPStatus(%s) = %d, want %d", code, got, want)
		}
	}
}

func TestCommonErrorResponses_DefaultMessages(t *testing.T) {
	if Unauthorized("").Error.Message != "Authentication required" {
		t.Error("Expected default unauthorized message")
	}
	if Forbidden("").Error.Message != "Access denied" {
		t.Error("Expected default forbidden message")
	}
	if NotFound("").Error.Message != "Resource not found" {
		t.Error("Expected default not found message")
	}
	if InternalError("").Error.Message != "Something went wrong" {
		t.Error("Expected default internal error message")
	}
}
