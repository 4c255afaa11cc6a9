package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("DATA_FILE", "")
	t.Setenv("DATABASE_DSN", "")
	t.Setenv("MEASUREMENT_FIELD_POLICY", "")

	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Fatalf("expected development got %s", cfg.Env)
	}
	if cfg.DataFile != "data/tailor.json" {
		t.Fatalf("expected default data file got %s", cfg.DataFile)
	}
	if cfg.DatabaseDSN != "" {
		t.Fatalf("expected empty dsn got %s", cfg.DatabaseDSN)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATA_FILE", "/tmp/records.json")
	t.Setenv("DATABASE_DSN", "postgres://app@localhost/darzi")
	t.Setenv("MEASUREMENT_FIELD_POLICY", "fixed-templates")

	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("expected 9090 got %s", cfg.Port)
	}
	if cfg.DataFile != "/tmp/records.json" {
		t.Fatalf("expected override got %s", cfg.DataFile)
	}
	if cfg.DatabaseDSN != "postgres://app@localhost/darzi" {
		t.Fatalf("expected dsn got %s", cfg.DatabaseDSN)
	}
	if cfg.FieldPolicy != "fixed-templates" {
		t.Fatalf("expected policy got %s", cfg.FieldPolicy)
	}
}
