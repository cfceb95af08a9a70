package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/kc31/smsrelay/internal/flagx"
	"github.com/kc31/smsrelay/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify the timeout either as a string like
// "30s" or as integer nanoseconds.
type JsonConfig struct {
	InboxPath      string         `json:"inbox_path"`
	PrefsPath      string         `json:"prefs_path"`
	RequestTimeout timex.Duration `json:"request_timeout"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// the -c or -config flag. When no flag is given, nothing is loaded. Only
// fields present in the file override the current values.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.InboxPath != "" {
		cfg.InboxPath = jc.InboxPath
	}
	if jc.PrefsPath != "" {
		cfg.PrefsPath = jc.PrefsPath
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
}
