package auth

import (
	"testing"

	"github.com/google/uuid"

	"painel-conto/internal/config"
	"painel-conto/internal/models"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpirationHours = 1
	cfg.JWT.Issuer = "painel-conto"
	return cfg
}

func TestGenerateAndValidateToken(t *testing.T) {
	manager := NewJWTManager(testConfig())
	user := &models.User{ID: uuid.New(), Email: "ana@conto.com.br"}

	token, err := manager.GenerateToken(user, models.RoleGestor)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	claims, err := manager.ValidateToken(token)
	if err != nil {
		t.Fatalf("failed to validate token: %v", err)
	}
	if claims.UserID != user.ID {
		t.Errorf("expected user id %s, got %s", user.ID, claims.UserID)
	}
	if claims.Email != user.Email {
		t.Errorf("expected email %s, got %s", user.Email, claims.Email)
	}
	if claims.Role != models.RoleGestor {
		t.Errorf("expected role %s, got %s", models.RoleGestor, claims.Role)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	manager := NewJWTManager(testConfig())
	user := &models.User{ID: uuid.New(), Email: "ana@conto.com.br"}

	token, err := manager.GenerateToken(user, models.RoleAdmin)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	other := testConfig()
	other.JWT.Secret = "another-secret"
	if _, err := NewJWTManager(other).ValidateToken(token); err == nil {
		t.Error("expected validation to fail with a different secret")
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3nha-forte")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	if !VerifyPassword(hash, "s3nha-forte") {
		t.Error("expected password to verify against its hash")
	}
	if VerifyPassword(hash, "outra-senha") {
		t.Error("expected wrong password to fail verification")
	}
}
