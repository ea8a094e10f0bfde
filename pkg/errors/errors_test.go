package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidCoord, "test message: %s", "value")

	if err.Code != ErrCodeInvalidCoord {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidCoord)
	}

	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}

	expected := "INVALID_COORD: test message: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeStorage, cause, "load session")

	if err.Code != ErrCodeStorage {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeStorage)
	}

	if !errors.Is(err, cause) {
		t.Error("wrapped error should match cause via errors.Is")
	}

	expected := "STORAGE_ERROR: load session: underlying error"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeSessionNotFound, "no such session")

	if !Is(err, ErrCodeSessionNotFound) {
		t.Error("Is should match the error's own code")
	}
	if Is(err, ErrCodeInternal) {
		t.Error("Is should not match a different code")
	}
	if Is(errors.New("plain"), ErrCodeInternal) {
		t.Error("Is should not match a plain error")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeInvalidOp, "bad op")); got != ErrCodeInvalidOp {
		t.Errorf("GetCode = %v, want %v", got, ErrCodeInvalidOp)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode = %v, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidCoord, "bad coordinate")); got != "bad coordinate" {
		t.Errorf("UserMessage = %v, want %v", got, "bad coordinate")
	}
	if got := UserMessage(errors.New("plain")); got != "plain" {
		t.Errorf("UserMessage = %v, want %v", got, "plain")
	}
}
