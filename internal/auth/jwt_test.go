package auth

import (
	"errors"
	"testing"
	"time"
)

func TestIssueAndVerify(t *testing.T) {
	m, err := NewJWTManager("test-secret", time.Hour, "sharedink")
	if err != nil {
		t.Fatal(err)
	}

	token, err := m.Issue("user-1", "a@b.co")
	if err != nil {
		t.Fatal(err)
	}

	userID, err := m.Verify(token)
	if err != nil {
		t.Fatal(err)
	}
	if userID != "user-1" {
		t.Errorf("Verify() userID = %q, want %q", userID, "user-1")
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	m, _ := NewJWTManager("test-secret", time.Hour, "sharedink")

	if _, err := m.Verify("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify(garbage) err = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer, _ := NewJWTManager("secret-a", time.Hour, "sharedink")
	verifier, _ := NewJWTManager("secret-b", time.Hour, "sharedink")

	token, err := issuer.Issue("user-1", "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := verifier.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify(wrong secret) err = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	m, _ := NewJWTManager("test-secret", -time.Minute, "sharedink")

	token, err := m.Issue("user-1", "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.Verify(token); !errors.Is(err, ErrExpiredToken) {
		t.Errorf("Verify(expired) err = %v, want ErrExpiredToken", err)
	}
}

func TestNewManagerRequiresSecret(t *testing.T) {
	if _, err := NewJWTManager("", time.Hour, "sharedink"); err == nil {
		t.Fatal("expected an error for empty secret")
	}
}
