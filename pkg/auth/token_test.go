package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/surveyops/surveyops-backend/pkg/config"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "surveyops",
		ExpirationMinutes: 30,
	}
}

func TestMintAndParseAccessToken(t *testing.T) {
	cfg := testJWTConfig()
	payload := AccessTokenPayload{
		UserID: uuid.New(),
		Email:  "tech@example.com",
		RoleID: uuid.New(),
	}

	signed, err := MintAccessToken(cfg, time.Now().UTC(), payload)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	claims, err := ParseAccessToken(cfg, signed)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != payload.UserID {
		t.Fatalf("user id mismatch: %s != %s", claims.UserID, payload.UserID)
	}
	if claims.Email != payload.Email {
		t.Fatalf("email mismatch: %s != %s", claims.Email, payload.Email)
	}
	if claims.RoleID != payload.RoleID {
		t.Fatalf("role id mismatch: %s != %s", claims.RoleID, payload.RoleID)
	}
	if claims.ID == "" {
		t.Fatal("expected jti to be set")
	}
}

func TestMintAccessTokenRequiresRole(t *testing.T) {
	_, err := MintAccessToken(testJWTConfig(), time.Now().UTC(), AccessTokenPayload{
		UserID: uuid.New(),
		Email:  "tech@example.com",
	})
	if err == nil {
		t.Fatal("expected error for missing role id")
	}
}

func TestParseAccessTokenRejectsExpired(t *testing.T) {
	cfg := testJWTConfig()
	payload := AccessTokenPayload{
		UserID: uuid.New(),
		Email:  "tech@example.com",
		RoleID: uuid.New(),
	}

	signed, err := MintAccessToken(cfg, time.Now().UTC().Add(-2*time.Hour), payload)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if _, err := ParseAccessToken(cfg, signed); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestParseAccessTokenRejectsWrongSecret(t *testing.T) {
	cfg := testJWTConfig()
	signed, err := MintAccessToken(cfg, time.Now().UTC(), AccessTokenPayload{
		UserID: uuid.New(),
		Email:  "tech@example.com",
		RoleID: uuid.New(),
	})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	other := cfg
	other.Secret = "other-secret"
	if _, err := ParseAccessToken(other, signed); err == nil {
		t.Fatal("expected signature mismatch to be rejected")
	}
}
