package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/synapsehq/synapse-backend/pkg/config"
)

func TestMintAndParseAccessToken(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "synapse",
		ExpirationMinutes: 30,
	}
	now := time.Now().UTC()
	userID := uuid.New()

	payload := AccessTokenPayload{
		UserID: userID,
		Email:  "ada@example.edu",
	}

	token, err := MintAccessToken(cfg, now, payload)
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	claims, err := ParseAccessToken(cfg, token)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}

	if claims.UserID != userID {
		t.Fatalf("expected user_id %s, got %s", userID, claims.UserID)
	}
	if claims.Email != "ada@example.edu" {
		t.Fatalf("unexpected email %q", claims.Email)
	}
	if claims.Issuer != cfg.Issuer {
		t.Fatalf("expected issuer %s, got %s", cfg.Issuer, claims.Issuer)
	}
	if claims.ID == "" {
		t.Fatalf("expected generated jti")
	}

	exp := now.Add(time.Duration(cfg.ExpirationMinutes) * time.Minute)
	diff := claims.ExpiresAt.Sub(exp)
	if diff < 0 {
		diff = -diff
	}
	if diff > time.Second {
		t.Fatalf("expiry drifted by %s", diff)
	}
}

func TestMintAccessTokenPreservesJTI(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "synapse",
		ExpirationMinutes: 30,
	}
	jti := uuid.NewString()
	token, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{UserID: uuid.New(), JTI: jti})
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}
	claims, err := ParseAccessToken(cfg, token)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.ID != jti {
		t.Fatalf("expected jti %s, got %s", jti, claims.ID)
	}
}

func TestMintAccessTokenValidation(t *testing.T) {
	base := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "synapse",
		ExpirationMinutes: 30,
	}
	payload := AccessTokenPayload{UserID: uuid.New()}

	cfg := base
	cfg.Secret = ""
	if _, err := MintAccessToken(cfg, time.Now(), payload); err == nil {
		t.Fatalf("expected error for missing secret")
	}

	cfg = base
	cfg.Issuer = ""
	if _, err := MintAccessToken(cfg, time.Now(), payload); err == nil {
		t.Fatalf("expected error for missing issuer")
	}

	cfg = base
	cfg.ExpirationMinutes = 0
	if _, err := MintAccessToken(cfg, time.Now(), payload); err == nil {
		t.Fatalf("expected error for non-positive ttl")
	}

	if _, err := MintAccessToken(base, time.Now(), AccessTokenPayload{}); err == nil {
		t.Fatalf("expected error for missing user id")
	}
}

func TestParseAccessTokenRejectsWrongIssuer(t *testing.T) {
	mintCfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "someone-else",
		ExpirationMinutes: 30,
	}
	token, err := MintAccessToken(mintCfg, time.Now(), AccessTokenPayload{UserID: uuid.New()})
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	parseCfg := mintCfg
	parseCfg.Issuer = "synapse"
	if _, err := ParseAccessToken(parseCfg, token); err == nil {
		t.Fatalf("expected issuer mismatch error")
	}
}

func TestParseAccessTokenRejectsTampering(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "synapse",
		ExpirationMinutes: 30,
	}
	token, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{UserID: uuid.New()})
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	tampered := token[:len(token)-2] + strings.Repeat("x", 2)
	if _, err := ParseAccessToken(cfg, tampered); err == nil {
		t.Fatalf("expected signature validation failure")
	}
}
