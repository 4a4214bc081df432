package auth

import (
	"strings"
	"testing"
	"time"
)

func TestSignAndVerifyRoundTrip(t *testing.T) {
	signer := NewJWTSigner("test-secret", time.Hour)

	token, err := signer.Sign(Identity{UserID: "user-1", Role: RoleStandard})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	identity, err := signer.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if identity.UserID != "user-1" {
		t.Fatalf("expected user-1, got %s", identity.UserID)
	}
	if identity.Role != RoleStandard {
		t.Fatalf("expected standard role, got %v", identity.Role)
	}
}

func TestSignRejectsInvalidIdentity(t *testing.T) {
	signer := NewJWTSigner("test-secret", time.Hour)

	if _, err := signer.Sign(Identity{Role: RoleStandard}); err == nil {
		t.Fatal("expected error for empty user id")
	}
	if _, err := signer.Sign(Identity{UserID: "user-1", Role: Role(7)}); err == nil {
		t.Fatal("expected error for invalid role")
	}
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	signer := NewJWTSigner("test-secret", time.Hour)

	token, err := signer.Sign(Identity{UserID: "user-1", Role: RoleAdministrator})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	parts := strings.Split(token, ".")
	parts[2] = "tampered" + parts[2]
	if _, err := signer.Verify(strings.Join(parts, ".")); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := NewJWTSigner("secret-a", time.Hour).Sign(Identity{UserID: "user-1", Role: RoleStandard})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := NewJWTSigner("secret-b", time.Hour).Verify(token); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	signer := &JWTSigner{secret: []byte("test-secret"), ttl: -time.Minute}

	token, err := signer.Sign(Identity{UserID: "user-1", Role: RoleStandard})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := signer.Verify(token); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	signer := NewJWTSigner("test-secret", time.Hour)
	if _, err := signer.Verify("not.a.token"); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
