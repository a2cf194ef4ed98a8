package utils

import (
	"errors"
	"testing"
	"time"
)

func init() {
	SetJWTSecret("test-secret-key-for-testing")
}

func TestGenerateToken(t *testing.T) {
	token, err := GenerateToken("u-1", "Ana", "García", "ana@example.com", "CUSTOMER", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	if token == "" {
		t.Error("GenerateToken() returned empty token")
	}

	if len(token) < 50 {
		t.Errorf("token seems too short: %d chars", len(token))
	}
}

func TestGenerateToken_DifferentTokens(t *testing.T) {
	token1, _ := GenerateToken("u-1", "Ana", "García", "ana@example.com", "CUSTOMER", time.Hour)
	token2, _ := GenerateToken("u-2", "Luis", "Pérez", "luis@example.com", "WORKSHOP", time.Hour)

	if token1 == token2 {
		t.Error("different users should produce different tokens")
	}
}

func TestParseToken(t *testing.T) {
	token, _ := GenerateToken("u-42", "Ana", "García", "ana@example.com", "ADMIN", time.Hour)

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}

	if claims.UserID != "u-42" {
		t.Errorf("UserID = %q, expected %q", claims.UserID, "u-42")
	}
	if claims.FirstName != "Ana" {
		t.Errorf("FirstName = %q, expected %q", claims.FirstName, "Ana")
	}
	if claims.LastName != "García" {
		t.Errorf("LastName = %q, expected %q", claims.LastName, "García")
	}
	if claims.Email != "ana@example.com" {
		t.Errorf("Email = %q, expected %q", claims.Email, "ana@example.com")
	}
	if claims.Role != "ADMIN" {
		t.Errorf("Role = %q, expected %q", claims.Role, "ADMIN")
	}
}

func TestParseToken_InvalidToken(t *testing.T) {
	invalidTokens := []string{
		"",
		"invalid",
		"not.a.token",
		"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.invalid.signature",
	}

	for _, token := range invalidTokens {
		_, err := ParseToken(token)
		if !errors.Is(err, ErrTokenInvalid) {
			t.Errorf("ParseToken(%q) error = %v, expected ErrTokenInvalid", token, err)
		}
	}
}

func TestParseToken_Expired(t *testing.T) {
	token, _ := GenerateToken("u-1", "Ana", "García", "ana@example.com", "CUSTOMER", -time.Minute)

	_, err := ParseToken(token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("ParseToken() error = %v, expected ErrTokenExpired", err)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	SetJWTSecret("original-secret")
	token, _ := GenerateToken("u-1", "Ana", "García", "ana@example.com", "CUSTOMER", time.Hour)

	SetJWTSecret("different-secret")
	_, err := ParseToken(token)

	SetJWTSecret("test-secret-key-for-testing")

	if !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("ParseToken with wrong secret error = %v, expected ErrTokenInvalid", err)
	}
}

func TestGenerateToken_Expiration(t *testing.T) {
	token, _ := GenerateToken("u-1", "Ana", "García", "ana@example.com", "CUSTOMER", time.Hour)
	claims, _ := ParseToken(token)

	expiresAt := claims.ExpiresAt.Time
	now := time.Now()

	if expiresAt.Before(now) {
		t.Error("token should not be expired immediately")
	}

	expectedExpiry := now.Add(1 * time.Hour)
	diff := expiresAt.Sub(expectedExpiry)
	if diff < -time.Minute || diff > time.Minute {
		t.Errorf("expiration time is off by more than 1 minute: %v", diff)
	}
}
