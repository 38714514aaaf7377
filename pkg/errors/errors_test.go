package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeConfigInvalid, "missing field %q", "name")

	if err.Code != ErrCodeConfigInvalid {
		t.Errorf("Code = %q, want %q", err.Code, ErrCodeConfigInvalid)
	}
	if err.Message != `missing field "name"` {
		t.Errorf("Message = %q", err.Message)
	}
	if !strings.Contains(err.Error(), "CONFIG_INVALID") {
		t.Errorf("Error() = %q, want code prefix", err.Error())
	}
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrap(ErrCodeNetwork, cause, "fetch %s", "http://example.com")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match cause via errors.Is")
	}
	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("Error() = %q, want cause included", err.Error())
	}
}

func TestNewLine(t *testing.T) {
	err := NewLine(ErrCodeMalformedLine, 3, "foo", "missing colon")

	if err.Line != 3 {
		t.Errorf("Line = %d, want 3", err.Line)
	}
	if err.Content != "foo" {
		t.Errorf("Content = %q, want %q", err.Content, "foo")
	}
	if !strings.Contains(err.Error(), "line 3") {
		t.Errorf("Error() = %q, want line number", err.Error())
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeGraphNotFound, "no such file")

	if !Is(err, ErrCodeGraphNotFound) {
		t.Error("Is() should match the error's own code")
	}
	if Is(err, ErrCodeNetwork) {
		t.Error("Is() should not match a different code")
	}
	if Is(stderrors.New("plain"), ErrCodeGraphNotFound) {
		t.Error("Is() should not match plain errors")
	}
}

func TestIsWrapped(t *testing.T) {
	inner := New(ErrCodePackageNotFound, "no such package")
	outer := Wrap(ErrCodeInternal, inner, "resolve failed")

	// errors.As finds the outermost *Error first.
	if !Is(outer, ErrCodeInternal) {
		t.Error("Is() should match the outermost code")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeGraphIO, "read failed")); got != ErrCodeGraphIO {
		t.Errorf("GetCode() = %q, want %q", got, ErrCodeGraphIO)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode() = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeConfigInvalid, "empty value")
	if got := UserMessage(err); got != "empty value" {
		t.Errorf("UserMessage() = %q", got)
	}

	lineErr := NewLine(ErrCodeInvalidIdentifier, 7, "a1: B", "invalid identifier %q", "a1")
	if got := UserMessage(lineErr); !strings.Contains(got, "line 7") {
		t.Errorf("UserMessage() = %q, want line number", got)
	}

	plain := stderrors.New("boom")
	if got := UserMessage(plain); got != "boom" {
		t.Errorf("UserMessage() = %q", got)
	}
}

func TestIsFormat(t *testing.T) {
	cases := []struct {
		code Code
		want bool
	}{
		{ErrCodeMalformedLine, true},
		{ErrCodeInvalidIdentifier, true},
		{ErrCodeGraphNotFound, false},
		{ErrCodeNetwork, false},
	}
	for _, tc := range cases {
		if got := IsFormat(New(tc.code, "x")); got != tc.want {
			t.Errorf("IsFormat(%s) = %v, want %v", tc.code, got, tc.want)
		}
	}
}
