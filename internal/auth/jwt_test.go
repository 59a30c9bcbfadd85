package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ditservices/asset-tracker/internal/models"
	"github.com/ditservices/asset-tracker/internal/repo"
)

func newTestService() *Service {
	return NewService("test-secret", repo.NewInMemoryTokenRepository())
}

func TestIssueThenValidate(t *testing.T) {
	svc := newTestService()
	user := models.User{ID: 42, Email: "admin@example.com", Role: models.RoleAdmin}

	token, err := svc.Issue(user)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("expected user id 42, got %d", claims.UserID)
	}
	if claims.Role != models.RoleAdmin {
		t.Errorf("expected admin role, got %s", claims.Role)
	}
	if claims.TokenID == "" {
		t.Error("expected a token identifier")
	}
	if remaining := time.Until(claims.ExpiresAt); remaining < 23*time.Hour {
		t.Errorf("expected ~24h expiry, %v remaining", remaining)
	}
}

func TestValidate_MissingToken(t *testing.T) {
	svc := newTestService()
	if _, err := svc.Validate(""); !errors.Is(err, ErrMissingToken) {
		t.Fatalf("expected ErrMissingToken, got %v", err)
	}
}

func TestValidate_Malformed(t *testing.T) {
	svc := newTestService()
	if _, err := svc.Validate("not-a-jwt"); !errors.Is(err, ErrMalformedToken) {
		t.Fatalf("expected ErrMalformedToken, got %v", err)
	}
}

func TestValidate_WrongSignature(t *testing.T) {
	other := NewService("other-secret", repo.NewInMemoryTokenRepository())
	token, err := other.Issue(models.User{ID: 1})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	svc := newTestService()
	if _, err := svc.Validate(token); !errors.Is(err, ErrMalformedToken) {
		t.Fatalf("expected ErrMalformedToken, got %v", err)
	}
}

func TestValidate_Expired(t *testing.T) {
	svc := newTestService()
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": 7,
		"exp": time.Now().Add(-time.Minute).Unix(),
		"jti": "stale",
	})
	tokenStr, err := expired.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := svc.Validate(tokenStr); !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestRevoke(t *testing.T) {
	svc := newTestService()
	token, err := svc.Issue(models.User{ID: 9, Email: "e@example.com"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if err := svc.Revoke(token); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	if _, err := svc.Validate(token); !errors.Is(err, ErrRevokedToken) {
		t.Fatalf("expected ErrRevokedToken after logout, got %v", err)
	}

	// Revoking again stays a no-op.
	if err := svc.Revoke(token); err != nil {
		t.Fatalf("second Revoke: %v", err)
	}
}

func TestRevoke_EmptyTokenIsNoOp(t *testing.T) {
	svc := newTestService()
	if err := svc.Revoke(""); err != nil {
		t.Fatalf("expected no-op, got %v", err)
	}
}

func TestPurgeExpiredBlacklistEntries(t *testing.T) {
	tokens := repo.NewInMemoryTokenRepository()
	if err := tokens.Blacklist("stale", time.Now().Add(-time.Hour)); err != nil {
		t.Fatalf("Blacklist: %v", err)
	}
	if err := tokens.Blacklist("fresh", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("Blacklist: %v", err)
	}

	purged, err := tokens.PurgeExpired(time.Now())
	if err != nil {
		t.Fatalf("PurgeExpired: %v", err)
	}
	if purged != 1 {
		t.Errorf("expected 1 purged entry, got %d", purged)
	}

	revoked, _ := tokens.IsBlacklisted("fresh")
	if !revoked {
		t.Error("unexpired entry should survive the purge")
	}
}
