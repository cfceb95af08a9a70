package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseEnv_Overrides(t *testing.T) {
	t.Setenv("INBOX_PATH", "/env/inbox.db")
	t.Setenv("PREFS_PATH", "/env/settings.db")
	t.Setenv("REQUEST_TIMEOUT", "15s")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, "/env/inbox.db", cfg.InboxPath)
	assert.Equal(t, "/env/settings.db", cfg.PrefsPath)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
}

func TestParseEnv_InvalidTimeoutKeepsDefault(t *testing.T) {
	t.Setenv("REQUEST_TIMEOUT", "soon")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
}

func TestParseEnv_UnsetKeepsDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, "inbox.db", cfg.InboxPath)
	assert.Equal(t, "settings.db", cfg.PrefsPath)
}
