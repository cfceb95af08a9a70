package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kc31/smsrelay/internal/api"
	"github.com/kc31/smsrelay/internal/inbox"
	"github.com/kc31/smsrelay/internal/logging"
	"github.com/kc31/smsrelay/internal/models"
	"github.com/kc31/smsrelay/internal/prefs"
	"github.com/kc31/smsrelay/internal/services"

	_ "modernc.org/sqlite"
)

type noopClient struct{}

func (noopClient) Authenticate(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	return &models.AuthResponse{}, nil
}

func (noopClient) SendMessage(ctx context.Context, token, body string) error { return nil }

// newTestApp builds an App over in-memory stores with the given terminal input.
func newTestApp(t *testing.T, input string) *App {
	t.Helper()
	ctx := context.Background()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(`CREATE TABLE settings (key TEXT PRIMARY KEY, value TEXT NOT NULL);`)
	require.NoError(t, err)

	store, err := inbox.Open(ctx, "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	factory := func(baseURL string) api.Client { return noopClient{} }
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	session := services.NewSession(prefs.New(db), store, factory, log)

	return &App{
		session: session,
		store:   store,
		db:      db,
		log:     log,
		reader:  bufio.NewReader(strings.NewReader(input)),
	}
}

func TestSet_InlineValue(t *testing.T) {
	silencePrintln(t)
	a := newTestApp(t, "")

	require.NoError(t, a.Set(context.Background(), []string{"email", "user@example.com"}))

	_, email, _, _ := a.session.Settings()
	assert.Equal(t, "user@example.com", email)
}

func TestSet_PromptsWhenValueMissing(t *testing.T) {
	silencePrintln(t)
	a := newTestApp(t, "https://api.example.com\n")

	require.NoError(t, a.Set(context.Background(), []string{"url"}))

	url, _, _, _ := a.session.Settings()
	assert.Equal(t, "https://api.example.com", url)
}

func TestSet_PromptsForSenders(t *testing.T) {
	silencePrintln(t)
	a := newTestApp(t, "BANK,SHOP\n")

	require.NoError(t, a.Set(context.Background(), []string{"senders"}))

	_, _, _, senders := a.session.Settings()
	assert.Equal(t, "BANK,SHOP", senders)
}

func TestSeed_InsertsMessage(t *testing.T) {
	silencePrintln(t)
	a := newTestApp(t, "")
	ctx := context.Background()

	require.NoError(t, a.Seed(ctx, []string{"BANK-XYZ", "spent", "100", "1700000000000"}))

	senders, err := a.store.DistinctSenders(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"BANK-XYZ"}, senders)

	got, err := a.store.Query(ctx, []string{"BANK"}, 0, nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "spent 100", got[0].Body)
	assert.Equal(t, int64(1700000000000), got[0].Timestamp)
}
