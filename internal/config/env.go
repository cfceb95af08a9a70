package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from the process environment. A .env
// file in the working directory is merged in first, without overriding
// variables already exported.
//
// Recognized variables:
//
//	INBOX_PATH       - inbox database path
//	PREFS_PATH       - settings database path
//	REQUEST_TIMEOUT  - HTTP deadline, e.g. "30s"
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := getEnvString("INBOX_PATH"); v != "" {
		cfg.InboxPath = v
	}
	if v := getEnvString("PREFS_PATH"); v != "" {
		cfg.PrefsPath = v
	}
	if v := getEnvString("REQUEST_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = parsed
		}
	}
}

func getEnvString(key string) string {
	if value, ok := os.LookupEnv(key); ok {
		return strings.TrimSpace(value)
	}
	return ""
}
