package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_RequiresMongoURI(t *testing.T) {
	os.Unsetenv("MONGO_URI")
	_, err := Load()
	if err == nil {
		t.Fatal("expected error when MONGO_URI is missing")
	}
}

func TestLoad_WithMongoURI(t *testing.T) {
	os.Setenv("MONGO_URI", "mongodb://localhost:27017")
	defer os.Unsetenv("MONGO_URI")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.MongoURI != "mongodb://localhost:27017" {
		t.Errorf("expected MONGO_URI to be set, got %s", cfg.MongoURI)
	}

	if cfg.Port != "8000" {
		t.Errorf("expected default port 8000, got %s", cfg.Port)
	}

	if cfg.MongoDB != "ncd_database" {
		t.Errorf("expected default database 'ncd_database', got %s", cfg.MongoDB)
	}

	if cfg.MongoConnectTimeout != 5*time.Second {
		t.Errorf("expected default connect timeout 5s, got %s", cfg.MongoConnectTimeout)
	}

	if cfg.SessionTTL != 8760*time.Hour {
		t.Errorf("expected default session TTL 8760h, got %s", cfg.SessionTTL)
	}

	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("expected default request timeout 30s, got %s", cfg.RequestTimeout)
	}

	if cfg.BodyLimit != "1M" {
		t.Errorf("expected default body limit 1M, got %s", cfg.BodyLimit)
	}
}

func TestLoad_SessionSecretRequiredOutsideDev(t *testing.T) {
	os.Setenv("MONGO_URI", "mongodb://localhost:27017")
	os.Setenv("ENV", "production")
	os.Unsetenv("SESSION_SECRET")
	defer func() {
		os.Unsetenv("MONGO_URI")
		os.Unsetenv("ENV")
	}()

	_, err := Load()
	if err == nil {
		t.Fatal("expected error when SESSION_SECRET is missing in production")
	}
}

func TestLoad_DevSessionSecretDefault(t *testing.T) {
	os.Setenv("MONGO_URI", "mongodb://localhost:27017")
	os.Unsetenv("SESSION_SECRET")
	defer os.Unsetenv("MONGO_URI")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.SessionSecret == "" {
		t.Error("expected a development fallback session secret")
	}
}

func TestConfig_IsDev(t *testing.T) {
	c := &Config{Env: "development"}
	if !c.IsDev() {
		t.Error("expected IsDev() to return true for development")
	}

	c.Env = "production"
	if c.IsDev() {
		t.Error("expected IsDev() to return false for production")
	}
}
