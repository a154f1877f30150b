package jwtauth

import (
	"context"
	"testing"
	"time"

	"pet-care-api/internal/ports/auth"
)

func TestIssueAndVerify_UserToken(t *testing.T) {
	tk, err := New("test-secret")
	if err != nil {
		t.Fatalf("new tokens: %v", err)
	}

	signed, err := tk.Issue(auth.Claims{
		UserID: "user-1",
		Email:  "ana@example.com",
		Role:   auth.RoleUser,
	}, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := tk.Verify(context.Background(), signed)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != "user-1" || claims.Email != "ana@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.Role != auth.RoleUser {
		t.Fatalf("expected role user, got %q", claims.Role)
	}
	if claims.AdminID != "" {
		t.Fatalf("user token must not carry admin_id, got %q", claims.AdminID)
	}
}

func TestIssueAndVerify_AdminToken(t *testing.T) {
	tk, err := New("test-secret")
	if err != nil {
		t.Fatalf("new tokens: %v", err)
	}

	signed, err := tk.Issue(auth.Claims{
		AdminID:  "admin-1",
		Username: "root",
		Role:     auth.RoleAdmin,
	}, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := tk.Verify(context.Background(), signed)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.AdminID != "admin-1" || claims.Username != "root" || claims.Role != auth.RoleAdmin {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestVerify_ExpiredToken(t *testing.T) {
	tk, err := New("test-secret")
	if err != nil {
		t.Fatalf("new tokens: %v", err)
	}

	// Emitimos en el pasado moviendo el reloj del issuer.
	past := time.Now().Add(-48 * time.Hour)
	tk.now = func() time.Time { return past }

	signed, err := tk.Issue(auth.Claims{UserID: "user-1", Role: auth.RoleUser}, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	tk.now = time.Now
	if _, err := tk.Verify(context.Background(), signed); err != ErrTokenExpired {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	issuer, _ := New("secret-a")
	verifier, _ := New("secret-b")

	signed, err := issuer.Issue(auth.Claims{UserID: "user-1", Role: auth.RoleUser}, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := verifier.Verify(context.Background(), signed); err != ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestVerify_GarbageAndEmpty(t *testing.T) {
	tk, _ := New("test-secret")

	if _, err := tk.Verify(context.Background(), ""); err != ErrTokenEmpty {
		t.Fatalf("expected ErrTokenEmpty, got %v", err)
	}
	if _, err := tk.Verify(context.Background(), "not.a.jwt"); err != ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestVerify_RoleWithoutIdentity(t *testing.T) {
	tk, _ := New("test-secret")

	// role=user sin user_id no debe pasar.
	signed, err := tk.Issue(auth.Claims{Role: auth.RoleUser}, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := tk.Verify(context.Background(), signed); err != ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
