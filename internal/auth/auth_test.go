package auth

import (
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"price-resolution-api/internal/config"
)

func testService(t *testing.T) *Service {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	svc, err := NewService(config.AuthConfig{
		JWTSecret: "unit-test-signing-key",
		TokenTTL:  time.Hour,
		Users: []config.UserCredential{
			{Username: "admin", PasswordHash: string(hash)},
		},
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestLoginAndVerifyRoundTrip(t *testing.T) {
	svc := testService(t)

	token, err := svc.Login("admin", "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	username, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if username != "admin" {
		t.Fatalf("subject: %q", username)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	svc := testService(t)

	if _, err := svc.Login("admin", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginRejectsUnknownUser(t *testing.T) {
	svc := testService(t)

	if _, err := svc.Login("ghost", "s3cret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	svc := testService(t)

	if _, err := svc.Verify("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyRejectsForeignSignature(t *testing.T) {
	svc := testService(t)
	other := testService(t)
	other.secret = []byte("some-other-signing-key")

	token, err := other.Login("admin", "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if _, err := svc.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	svc := testService(t)

	issued := time.Now()
	svc.now = func() time.Time { return issued }
	token, err := svc.Login("admin", "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	svc.now = func() time.Time { return issued.Add(2 * time.Hour) }
	if _, err := svc.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestNewServiceRequiresSecret(t *testing.T) {
	_, err := NewService(config.AuthConfig{TokenTTL: time.Hour})
	if err == nil {
		t.Fatal("missing secret should fail")
	}
}
