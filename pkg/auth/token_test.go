package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/menna-app/menna-backend/pkg/config"
	pkgerrors "github.com/menna-app/menna-backend/pkg/errors"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:           "secret",
		Issuer:           "menna",
		AccessTTLMinutes: 30,
		RefreshTTLDays:   30,
	}
}

func TestMintAndParseAccessToken(t *testing.T) {
	cfg := testJWTConfig()
	now := time.Now().UTC()
	userID := uuid.New()

	token, err := MintAccessToken(cfg, now, userID)
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	claims, err := ParseToken(cfg, token)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("expected user_id %s, got %s", userID, claims.UserID)
	}
	if claims.Kind != TokenKindAccess {
		t.Fatalf("expected access kind, got %s", claims.Kind)
	}
	if claims.Issuer != cfg.Issuer {
		t.Fatalf("expected issuer %q, got %q", cfg.Issuer, claims.Issuer)
	}
}

func TestRefreshTokenOutlivesAccessToken(t *testing.T) {
	cfg := testJWTConfig()
	now := time.Now().UTC()
	userID := uuid.New()

	refresh, err := MintRefreshToken(cfg, now, userID)
	if err != nil {
		t.Fatalf("mint refresh token: %v", err)
	}
	claims, err := ParseToken(cfg, refresh)
	if err != nil {
		t.Fatalf("parse refresh token: %v", err)
	}
	if claims.Kind != TokenKindRefresh {
		t.Fatalf("expected refresh kind, got %s", claims.Kind)
	}
	wantExpiry := now.Add(cfg.RefreshTTL())
	if got := claims.ExpiresAt.Time; got.Unix() != wantExpiry.Unix() {
		t.Fatalf("expected expiry %v, got %v", wantExpiry, got)
	}
}

func TestParseTokenRejectsExpired(t *testing.T) {
	cfg := testJWTConfig()
	past := time.Now().UTC().Add(-48 * time.Hour)

	token, err := MintAccessToken(cfg, past, uuid.New())
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	_, err = ParseToken(cfg, token)
	if err == nil {
		t.Fatal("expected expired token to fail")
	}
	if pkgerrors.CodeOf(err) != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized code, got %s", pkgerrors.CodeOf(err))
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	cfg := testJWTConfig()
	token, err := MintAccessToken(cfg, time.Now().UTC(), uuid.New())
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	other := cfg
	other.Secret = "other-secret"
	if _, err := ParseToken(other, token); err == nil {
		t.Fatal("expected signature mismatch to fail")
	}
}

func TestMintRequiresUserID(t *testing.T) {
	if _, err := MintAccessToken(testJWTConfig(), time.Now().UTC(), uuid.Nil); err == nil {
		t.Fatal("expected error for nil user id")
	}
}
