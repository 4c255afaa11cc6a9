package config

import "os"

type Config struct {
	Port        string
	Env         string
	DataFile    string
	DatabaseDSN string
	FieldPolicy string
}

// Load loads configuration from environment with sensible defaults.
// Precedence: explicit env var > .env file (if loaded by user) > default.
// When DATABASE_DSN is set the record blob lives in SQL; otherwise it lives
// in the JSON file at DataFile.
//
// MEASUREMENT_FIELD_POLICY, when set, wins over the persisted setting on
// every boot: the server rewrites the stored policy at startup, so a policy
// changed through the settings API reverts on restart while the variable
// remains set. Leave it unset to let the persisted setting stand.
func Load() Config {
	cfg := Config{}
	cfg.Port = getEnv("PORT", "8080")
	cfg.Env = getEnv("APP_ENV", "development")
	cfg.DataFile = getEnv("DATA_FILE", "data/tailor.json")
	cfg.DatabaseDSN = os.Getenv("DATABASE_DSN")
	cfg.FieldPolicy = getEnv("MEASUREMENT_FIELD_POLICY", "")
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
