package config

import (
	"testing"

	"github.com/spf13/viper"
)

func TestLoadConfigDefaults(t *testing.T) {
	viper.Reset()
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.StoreType != "mongo" {
		t.Errorf("expected default store type mongo, got %q", cfg.StoreType)
	}
	if cfg.Port != 5000 {
		t.Errorf("expected default port 5000, got %d", cfg.Port)
	}
	if cfg.BcryptCost != 10 {
		t.Errorf("expected default bcrypt cost 10, got %d", cfg.BcryptCost)
	}
	if cfg.JWTSecret != "test-secret" {
		t.Errorf("expected secret from environment, got %q", cfg.JWTSecret)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	viper.Reset()
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("STORE_TYPE", "sqlite")
	t.Setenv("DSN", "taskdeck.db")
	t.Setenv("PORT", "8080")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.StoreType != "sqlite" || cfg.DSN != "taskdeck.db" || cfg.Port != 8080 {
		t.Errorf("environment overrides not applied: %+v", cfg)
	}
}

func TestLoadConfigRequiresSecret(t *testing.T) {
	viper.Reset()
	t.Setenv("JWT_SECRET", "")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error when JWT_SECRET is absent")
	}
}
