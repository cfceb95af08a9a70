package config

import (
	"flag"
	"os"
	"time"

	"github.com/kc31/smsrelay/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-inbox string   path of the inbox database (default from Config)
//	-prefs string   path of the settings database (default from Config)
//	-t int          request timeout in seconds (default from Config)
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-inbox", "-prefs", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.InboxPath, "inbox", cfg.InboxPath, "path of the inbox database")
	fs.StringVar(&cfg.PrefsPath, "prefs", cfg.PrefsPath, "path of the settings database")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
