package utils

import "testing"

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken("user-123", "ana@example.com", "manager")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("failed to validate token: %v", err)
	}

	if claims.UserID != "user-123" {
		t.Errorf("expected user id user-123, got %s", claims.UserID)
	}
	if claims.Email != "ana@example.com" {
		t.Errorf("expected email ana@example.com, got %s", claims.Email)
	}
	if claims.Role != "manager" {
		t.Errorf("expected role manager, got %s", claims.Role)
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	if _, err := ValidateToken("not-a-token"); err == nil {
		t.Fatal("expected malformed token to be rejected")
	}
	if _, err := ValidateToken(""); err == nil {
		t.Fatal("expected empty token to be rejected")
	}
}
