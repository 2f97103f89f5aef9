package service

import (
	"context"
	"errors"
	"testing"
)

// Validation runs before any repository access, so a nil repository is fine
// for these cases.
func TestRegisterValidation(t *testing.T) {
	s := NewAuthService(nil)
	ctx := context.Background()

	cases := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{"short password", "trainer", "12345", ErrPasswordTooShort},
		{"short username", "abc", "secret123", ErrUsernameTooShort},
		{"invalid username", "bad name!", "secret123", ErrUsernameInvalid},
		{"invalid username dash", "bad-name", "secret123", ErrUsernameInvalid},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Register(ctx, tc.username, "t@example.com", tc.password)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("Register(%q, %q) error = %v, want %v", tc.username, tc.password, err, tc.wantErr)
			}
		})
	}
}

func TestUsernamePattern(t *testing.T) {
	valid := []string{"trainer", "red_blue", "misty99", "Тренер_007"}
	invalid := []string{"bad name", "no-dash", "semi;colon", "dot.name", ""}

	for _, u := range valid {
		if !usernameRe.MatchString(u) {
			t.Errorf("expected %q to be a valid username", u)
		}
	}
	for _, u := range invalid {
		if usernameRe.MatchString(u) {
			t.Errorf("expected %q to be rejected", u)
		}
	}
}

func TestJWTRoundTrip(t *testing.T) {
	InitJWT("test-secret")

	token, err := GenerateJWT(42)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	userID, err := ParseJWT(token)
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if userID != 42 {
		t.Fatalf("user id = %d, want 42", userID)
	}
}

func TestJWTRejectsTampered(t *testing.T) {
	InitJWT("test-secret")

	token, err := GenerateJWT(42)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	if _, err := ParseJWT(token + "x"); err == nil {
		t.Fatal("expected tampered token to be rejected")
	}
	if _, err := ParseJWT("not.a.token"); err == nil {
		t.Fatal("expected garbage token to be rejected")
	}
}
