// Package inbox reads the message inbox database: a SQLite file standing in
// for the device message store. The store is written by whatever delivers
// messages (or by the seed/ingest path for local use) and read by the session
// layer with sender and time filters.
package inbox

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/kc31/smsrelay/internal/common"
	"github.com/kc31/smsrelay/internal/models"

	_ "modernc.org/sqlite"
)

// Store provides read access to the inbox plus an ingest path used to
// populate local inboxes.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens the inbox database at path and brings the schema up to date, so
// a brand-new inbox reads as empty rather than failing. An empty path opens
// an in-memory inbox. A path that exists but cannot be read surfaces
// common.ErrPermissionDenied.
func Open(ctx context.Context, path string) (*Store, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		trimmed = ":memory:"
	}

	if err := checkAccess(trimmed); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", trimmed)
	if err != nil {
		return nil, fmt.Errorf("failed to open inbox db: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s := &Store{db: db, path: trimmed}
	if err := s.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// checkAccess maps a file-level read failure to the permission-denied kind.
// The inbox belongs to the platform, not to this app, so access can be
// revoked between calls.
func checkAccess(path string) error {
	if path == ":memory:" || strings.Contains(path, "mode=memory") {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return fmt.Errorf("inbox %s: %w", path, common.ErrPermissionDenied)
		}
		if errors.Is(err, fs.ErrNotExist) {
			// A missing inbox is created on first write by the ingest path.
			return nil
		}
		return fmt.Errorf("failed to access inbox %s: %w", path, err)
	}
	return f.Close()
}

// EnsureSchema creates the messages table if it is not present yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS messages (
            id TEXT PRIMARY KEY,
            address TEXT NOT NULL,
            body TEXT NOT NULL,
            date INTEGER NOT NULL
        );`,
		`CREATE INDEX IF NOT EXISTS idx_messages_address ON messages(address);`,
		`CREATE INDEX IF NOT EXISTS idx_messages_date ON messages(date);`,
	}

	for _, statement := range statements {
		if _, err := s.db.ExecContext(ctx, statement); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

// Insert stores one message. A blank ID is replaced with a fresh uuid.
func (s *Store) Insert(ctx context.Context, m models.Message) (string, error) {
	if strings.TrimSpace(m.ID) == "" {
		m.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (id, address, body, date) VALUES (?, ?, ?, ?)`,
		m.ID, m.Sender, m.Body, m.Timestamp)
	if err != nil {
		return "", fmt.Errorf("failed to insert message: %w", err)
	}
	return m.ID, nil
}

// Query returns the messages whose address contains any of the sender tokens
// (substring match) and whose timestamp is strictly greater than startTime,
// most recent first. Messages whose ID appears in excluded are dropped from
// the result after the query, matching the persisted exclusion set rather
// than a store-level predicate.
//
// An empty sender slice is not an error: it short-circuits to an empty result
// without touching the store.
func (s *Store) Query(ctx context.Context, senders []string, startTime int64, excluded map[string]struct{}) ([]models.Message, error) {
	result := []models.Message{}

	if len(senders) == 0 {
		return result, nil
	}

	if err := checkAccess(s.path); err != nil {
		return nil, err
	}

	conditions := make([]string, 0, len(senders))
	args := make([]any, 0, len(senders)+1)
	for _, sender := range senders {
		conditions = append(conditions, "address LIKE ?")
		args = append(args, "%"+sender+"%")
	}
	args = append(args, startTime)

	query := `SELECT id, address, body, date FROM messages
        WHERE (` + strings.Join(conditions, " OR ") + `) AND date > ?
        ORDER BY date DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query inbox: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.Sender, &m.Body, &m.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan inbox row: %w", err)
		}
		if _, skip := excluded[m.ID]; skip {
			continue
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate inbox rows: %w", err)
	}

	return result, nil
}

// DistinctSenders returns the sorted, deduplicated list of all non-blank
// sender addresses present in the inbox, with no time or content filtering.
func (s *Store) DistinctSenders(ctx context.Context) ([]string, error) {
	if err := checkAccess(s.path); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT address FROM messages WHERE TRIM(address) <> '' ORDER BY address`)
	if err != nil {
		return nil, fmt.Errorf("failed to query senders: %w", err)
	}
	defer rows.Close()

	senders := []string{}
	for rows.Next() {
		var address string
		if err := rows.Scan(&address); err != nil {
			return nil, fmt.Errorf("failed to scan sender row: %w", err)
		}
		senders = append(senders, address)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sender rows: %w", err)
	}

	return senders, nil
}
