package apperr

import (
	"errors"
	"testing"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want Kind
	}{
		{"unauthenticated", Unauthenticated("no token"), KindUnauthenticated},
		{"forbidden", Forbidden("denied"), KindForbidden},
		{"not found", NotFound("User"), KindNotFound},
		{"validation", Validation("bad input"), KindValidation},
		{"conflict", Conflict("duplicate"), KindConflict},
		{"internal", Internal("boom", errors.New("cause")), KindInternal},
		{"plain error", errors.New("anything"), KindInternal},
		{"nil-wrapped", Internal("boom", nil), KindInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := KindOf(tc.err); got != tc.want {
				t.Errorf("KindOf(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}

func TestNotFoundMessage(t *testing.T) {
	err := NotFound("Patient")
	if err.Error() != "Patient not found" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestFieldErrors(t *testing.T) {
	err := FieldErrors(map[string]string{"email": "Enter a valid email address."})
	if KindOf(err) != KindValidation {
		t.Fatalf("expected validation kind, got %v", KindOf(err))
	}
	fields := FieldsOf(err)
	if fields == nil {
		t.Fatal("expected field detail")
	}
	if fields["email"] != "Enter a valid email address." {
		t.Errorf("unexpected field message: %q", fields["email"])
	}
}

func TestFieldsOfPlainError(t *testing.T) {
	if FieldsOf(errors.New("plain")) != nil {
		t.Error("plain errors should carry no field detail")
	}
}

func TestInternalUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal("query failed", cause)
	if !errors.Is(err, cause) {
		t.Error("Internal should wrap its cause")
	}
}
