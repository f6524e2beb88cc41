package errors

import (
	stderrors "errors"
	"testing"
)

func TestError_Message(t *testing.T) {
	err := New(ErrCodeUnknownClass, "class not in hierarchy: %s", "Apple")

	want := "UNKNOWN_CLASS: class not in hierarchy: Apple"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrap_PreservesCause(t *testing.T) {
	cause := stderrors.New("file missing")
	err := Wrap(ErrCodeSourceLoad, cause, "load %s", "onto.json")

	if !stderrors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
	if GetCode(err) != ErrCodeSourceLoad {
		t.Errorf("GetCode() = %q, want %q", GetCode(err), ErrCodeSourceLoad)
	}
}

func TestIs_MatchesCode(t *testing.T) {
	err := New(ErrCodeResourceExhausted, "visit budget exceeded")

	if !Is(err, ErrCodeResourceExhausted) {
		t.Error("Is(err, RESOURCE_EXHAUSTED) = false, want true")
	}
	if Is(err, ErrCodeNotFound) {
		t.Error("Is(err, NOT_FOUND) = true, want false")
	}
	if Is(stderrors.New("plain"), ErrCodeNotFound) {
		t.Error("Is(plain error, code) = true, want false")
	}
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(New(ErrCodeNotFound, "no path")) {
		t.Error("IsNotFound(NOT_FOUND) = false, want true")
	}
	if !IsNotFound(New(ErrCodeUnknownClass, "nope")) {
		t.Error("IsNotFound(UNKNOWN_CLASS) = false, want true")
	}
	if IsNotFound(New(ErrCodeInternal, "boom")) {
		t.Error("IsNotFound(INTERNAL_ERROR) = true, want false")
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidMode, "bad mode")); got != "bad mode" {
		t.Errorf("UserMessage() = %q, want %q", got, "bad mode")
	}
	if got := UserMessage(stderrors.New("plain")); got != "plain" {
		t.Errorf("UserMessage() = %q, want %q", got, "plain")
	}
}
