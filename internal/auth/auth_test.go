package auth

import (
	"errors"
	"testing"
	"time"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "s3cret" {
		t.Fatal("hash must not equal plaintext")
	}
	if !VerifyPassword("s3cret", hash) {
		t.Fatal("correct password rejected")
	}
	if VerifyPassword("wrong", hash) {
		t.Fatal("wrong password accepted")
	}
}

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer, err := NewTokenIssuer("test-secret", time.Minute)
	if err != nil {
		t.Fatalf("NewTokenIssuer: %v", err)
	}

	token, err := issuer.Issue("alice@example.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	subject, err := issuer.Validate(token)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if subject != "alice@example.com" {
		t.Fatalf("subject=%q, want %q", subject, "alice@example.com")
	}
}

func TestTokenIssuer_RejectsBadTokens(t *testing.T) {
	issuer, _ := NewTokenIssuer("test-secret", time.Minute)

	if _, err := issuer.Validate("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("malformed token err=%v, want ErrInvalidToken", err)
	}

	other, _ := NewTokenIssuer("different-secret", time.Minute)
	forged, _ := other.Issue("alice@example.com")
	if _, err := issuer.Validate(forged); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("wrong-secret token err=%v, want ErrInvalidToken", err)
	}
}

func TestTokenIssuer_RejectsExpired(t *testing.T) {
	issuer, _ := NewTokenIssuer("test-secret", time.Minute)
	// Negative ttl makes every issued token already expired.
	issuer.ttl = -time.Minute

	token, err := issuer.Issue("alice@example.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := issuer.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expired token err=%v, want ErrInvalidToken", err)
	}
}

func TestNewTokenIssuer_EmptySecret(t *testing.T) {
	if _, err := NewTokenIssuer("  ", time.Minute); err == nil {
		t.Fatal("expected error for empty secret")
	}
}
