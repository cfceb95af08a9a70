// Package cli wires the session to an interactive terminal: a small REPL for
// editing settings, logging in, browsing senders and forwarding messages.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"os"

	"github.com/kc31/smsrelay/internal/api"
	"github.com/kc31/smsrelay/internal/config"
	"github.com/kc31/smsrelay/internal/filex"
	"github.com/kc31/smsrelay/internal/inbox"
	"github.com/kc31/smsrelay/internal/logging"
	"github.com/kc31/smsrelay/internal/prefs"
	"github.com/kc31/smsrelay/internal/services"

	_ "modernc.org/sqlite"
)

type App struct {
	config  *config.Config
	session *services.Session
	store   *inbox.Store
	db      *sql.DB
	log     logging.Logger
	reader  *bufio.Reader
}

func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	if err := filex.EnsureParentDir(c.PrefsPath); err != nil {
		log.Error(ctx, "error preparing settings directory", "error", err)
		return nil, err
	}

	db, err := prefs.InitDatabase(ctx, c.PrefsPath)
	if err != nil {
		log.Error(ctx, "error initializing settings database", "error", err)
		return nil, err
	}

	store, err := inbox.Open(ctx, c.InboxPath)
	if err != nil {
		_ = db.Close()
		log.Error(ctx, "error opening inbox", "error", err)
		return nil, err
	}

	factory := func(baseURL string) api.Client {
		return api.NewHTTPClient(baseURL, c.RequestTimeout)
	}

	session := services.NewSession(prefs.New(db), store, factory, log)

	return &App{
		config:  c,
		session: session,
		store:   store,
		db:      db,
		log:     log,
		reader:  bufio.NewReader(os.Stdin),
	}, nil
}

// Run loads persisted settings, performs the startup message fetch, and
// hands control to the REPL until EOF or exit.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	if err := a.session.Initialize(ctx); err != nil {
		a.log.Error(ctx, "failed to load settings", "error", err)
	}

	// the original client fetches on startup as well; an empty sender list
	// simply reports an error result
	res := a.session.FetchMessages(ctx)
	printlnFn(res.Message)

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}

func (a *App) Close() {
	if a.store != nil {
		_ = a.store.Close()
	}
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) status() string {
	return a.session.Result().Kind.String()
}
