package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/cmbeauty/storefront-backend/pkg/config"
	"github.com/google/uuid"
)

func jwtConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "cmbeauty-test",
		ExpirationMinutes: 15,
	}
}

func TestMintAndParseAccessToken(t *testing.T) {
	userID := uuid.New()
	token, err := MintAccessToken(jwtConfig(), time.Now(), AccessTokenPayload{
		UserID:   userID,
		Username: "kbyeon",
	})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	claims, err := ParseAccessToken(jwtConfig(), token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("unexpected user id: %s", claims.UserID)
	}
	if claims.Username != "kbyeon" {
		t.Fatalf("unexpected username: %s", claims.Username)
	}
	if claims.ID == "" {
		t.Fatal("expected jti to be set")
	}
}

func TestMintRequiresConfig(t *testing.T) {
	cfg := jwtConfig()
	cfg.Secret = ""
	if _, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{UserID: uuid.New()}); err == nil {
		t.Fatal("expected error without secret")
	}

	cfg = jwtConfig()
	cfg.ExpirationMinutes = 0
	if _, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{UserID: uuid.New()}); err == nil {
		t.Fatal("expected error without expiration")
	}

	if _, err := MintAccessToken(jwtConfig(), time.Now(), AccessTokenPayload{}); err == nil {
		t.Fatal("expected error without user id")
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	token, err := MintAccessToken(jwtConfig(), time.Now().Add(-time.Hour), AccessTokenPayload{UserID: uuid.New()})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if _, err := ParseAccessToken(jwtConfig(), token); err == nil || !strings.Contains(err.Error(), "expired") {
		t.Fatalf("expected expiry error, got %v", err)
	}
}

func TestParseRejectsWrongIssuer(t *testing.T) {
	token, err := MintAccessToken(jwtConfig(), time.Now(), AccessTokenPayload{UserID: uuid.New()})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	cfg := jwtConfig()
	cfg.Issuer = "someone-else"
	if _, err := ParseAccessToken(cfg, token); err == nil {
		t.Fatal("expected issuer mismatch error")
	}
}
