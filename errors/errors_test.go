package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestAppError_New_Success(t *testing.T) {
	err := New(ErrCodeWrongFormat, "wrong format")
	if err.Code != ErrCodeWrongFormat {
		t.Errorf("expected code %s, got %s", ErrCodeWrongFormat, err.Code)
	}
	if err.Message != "wrong format" {
		t.Errorf("expected message 'wrong format', got %q", err.Message)
	}
	if err.Retryable {
		t.Error("WRONG_FORMAT should not be retryable")
	}
}

func TestAppError_New_Retryable(t *testing.T) {
	err := New(ErrCodeTimeout, "timed out")
	if !err.Retryable {
		t.Error("TIMEOUT should be retryable")
	}
}

func TestAppError_FileNotFound_Success(t *testing.T) {
	err := FileNotFound("shot.png")
	if err.Code != ErrCodeFileNotFound {
		t.Errorf("expected FILE_NOT_FOUND, got %s", err.Code)
	}
	if err.Details["path"] != "shot.png" {
		t.Errorf("expected path=shot.png, got %v", err.Details["path"])
	}
	if !strings.Contains(err.Message, "shot.png") {
		t.Errorf("expected message to name the path, got %q", err.Message)
	}
}

func TestAppError_MediaFetch_Retryable(t *testing.T) {
	cause := fmt.Errorf("connection reset")
	err := MediaFetch("https://cdn.example/x.png", cause)
	if err.Code != ErrCodeMediaFetch {
		t.Errorf("expected MEDIA_FETCH_FAILED, got %s", err.Code)
	}
	if !err.Retryable {
		t.Error("media fetch failures should be retryable")
	}
	if err.Cause != cause {
		t.Error("expected cause to be set")
	}
}

func TestAppError_Error_IncludesCause(t *testing.T) {
	err := Caption(fmt.Errorf("model overloaded"))
	msg := err.Error()
	if !strings.Contains(msg, string(ErrCodeCaption)) {
		t.Errorf("expected code in message, got %q", msg)
	}
	if !strings.Contains(msg, "model overloaded") {
		t.Errorf("expected cause in message, got %q", msg)
	}
}

func TestAppError_Unwrap_Success(t *testing.T) {
	cause := stderrors.New("boom")
	err := Transcription(cause)
	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
}

func TestAppError_WithDetail_Success(t *testing.T) {
	err := New(ErrCodeInvalidInput, "bad").WithDetail("field", "count")
	if err.Details["field"] != "count" {
		t.Errorf("expected field detail, got %v", err.Details)
	}
}

func TestHasCode_Success(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", WrongFormat("gif", []string{"png", "jpg"}))
	if !HasCode(err, ErrCodeWrongFormat) {
		t.Error("expected HasCode to match through wrapping")
	}
	if HasCode(err, ErrCodeFileNotFound) {
		t.Error("expected HasCode to reject a different code")
	}
}

func TestAsAppError_PlainError(t *testing.T) {
	if _, ok := AsAppError(stderrors.New("plain")); ok {
		t.Error("expected plain error to not be an AppError")
	}
}
