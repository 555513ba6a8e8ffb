package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeBadFieldType, "skill entry %d is %s, want string", 2, "int64")

	if err.Code != ErrCodeBadFieldType {
		t.Errorf("Code = %s, want %s", err.Code, ErrCodeBadFieldType)
	}
	want := "BAD_FIELD_TYPE: skill entry 2 is int64, want string"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("unexpected token")
	err := Wrap(ErrCodeInvalidConfig, cause, "decode config")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error lost its cause")
	}
	want := "INVALID_CONFIG: decode config: unexpected token"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeNotFound, "report abc")

	if !Is(err, ErrCodeNotFound) {
		t.Error("Is should match the code")
	}
	if Is(err, ErrCodeInternal) {
		t.Error("Is matched the wrong code")
	}
	if Is(stderrors.New("plain"), ErrCodeNotFound) {
		t.Error("Is matched a plain error")
	}
	if Is(nil, ErrCodeNotFound) {
		t.Error("Is matched nil")
	}
}

func TestIsThroughWrapping(t *testing.T) {
	inner := New(ErrCodeMissingSection, "missing [game]")
	outer := fmt.Errorf("load levels.toml: %w", inner)

	if !Is(outer, ErrCodeMissingSection) {
		t.Error("Is should unwrap fmt-wrapped errors")
	}
	if GetCode(outer) != ErrCodeMissingSection {
		t.Errorf("GetCode = %s, want %s", GetCode(outer), ErrCodeMissingSection)
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %q, want empty", got)
	}
	if got := GetCode(New(ErrCodeInternal, "boom")); got != ErrCodeInternal {
		t.Errorf("GetCode = %s, want %s", got, ErrCodeInternal)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeDuplicateStageID, "stage %q defined twice", "1-1")
	if got := UserMessage(err); got != `stage "1-1" defined twice` {
		t.Errorf("UserMessage = %q", got)
	}

	plain := stderrors.New("plain failure")
	if got := UserMessage(plain); got != "plain failure" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}
