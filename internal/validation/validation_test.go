package validation

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

type form struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"omitempty,oneof=admin editor"`
	Count int    `json:"count" validate:"gte=0"`
}

func TestStructValid(t *testing.T) {
	if err := Struct(form{Email: "agent@example.com", Role: "admin"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStructFieldMessages(t *testing.T) {
	err := Struct(form{Email: "not-an-email", Role: "owner", Count: -1})
	if err == nil {
		t.Fatal("expected error")
	}

	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("err = %T, want *Error", err)
	}

	tests := []struct {
		field string
		want  string
	}{
		{"email", "must be a valid email address"},
		{"role", "must be one of: admin editor"},
		{"count", "must be at least 0"},
	}
	for _, tt := range tests {
		if got := verr.Fields[tt.field]; got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.field, got, tt.want)
		}
	}
}

func TestStructRequired(t *testing.T) {
	err := Struct(form{})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "email is required") {
		t.Errorf("error = %q", err.Error())
	}
}

func TestIsValidation(t *testing.T) {
	err := Struct(form{})
	if !IsValidation(err) {
		t.Error("expected validation error")
	}
	if !IsValidation(fmt.Errorf("wrapped: %w", err)) {
		t.Error("expected wrapped validation error")
	}
	if IsValidation(errors.New("boom")) {
		t.Error("plain error reported as validation")
	}
}

func TestErrorMessageSorted(t *testing.T) {
	e := &Error{Fields: map[string]string{"title": "is required", "location": "is required"}}
	want := "invalid input: location is required; title is required"
	if e.Error() != want {
		t.Errorf("error = %q, want %q", e.Error(), want)
	}
}
