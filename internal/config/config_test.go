package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Equal(t, "inbox.db", cfg.InboxPath)
	assert.Equal(t, "settings.db", cfg.PrefsPath)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
}
