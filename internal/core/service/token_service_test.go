package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/eventhub/event-server/internal/core/domain"
	"github.com/eventhub/event-server/internal/core/ports"
)

func TestTokenService_RoundTrip(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	claims := ports.Claims{UserID: "u1", Email: "alice@example.com", Role: domain.RoleAdmin}
	token, err := svc.Sign(claims)
	if err != nil {
		t.Fatalf("Sign returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}

	got, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if *got != claims {
		t.Fatalf("claims changed in round trip: %+v != %+v", *got, claims)
	}
}

func TestTokenService_Verify_Empty(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	if _, err := svc.Verify(""); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestTokenService_Verify_Malformed(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	if _, err := svc.Verify("not-a-token"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestTokenService_Verify_TamperedSignature(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	token, err := svc.Sign(ports.Claims{UserID: "u1", Email: "a@example.com", Role: domain.RoleAttendee})
	if err != nil {
		t.Fatalf("Sign returned error: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %s", token)
	}
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	if _, err := svc.Verify(tampered); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for tampered signature, got %v", err)
	}
}

func TestTokenService_Verify_WrongSecret(t *testing.T) {
	signer := NewTokenService("secret-a", time.Hour)
	verifier := NewTokenService("secret-b", time.Hour)

	token, err := signer.Sign(ports.Claims{UserID: "u1", Email: "a@example.com", Role: domain.RoleAttendee})
	if err != nil {
		t.Fatalf("Sign returned error: %v", err)
	}

	if _, err := verifier.Verify(token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for wrong secret, got %v", err)
	}
}

func TestTokenService_Verify_Expired(t *testing.T) {
	svc := NewTokenService("secret", -time.Minute)
	// constructor clamps non-positive TTLs, so build one expired by hand
	svc.tokenTTL = -time.Minute

	token, err := svc.Sign(ports.Claims{UserID: "u1", Email: "a@example.com", Role: domain.RoleAttendee})
	if err != nil {
		t.Fatalf("Sign returned error: %v", err)
	}

	if _, err := svc.Verify(token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for expired token, got %v", err)
	}
}
