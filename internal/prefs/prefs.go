package prefs

import (
	"context"
	"database/sql"
	"sort"
	"strconv"
	"strings"

	"github.com/kc31/smsrelay/internal/dbx"
)

// Setting keys. Names are kept stable because the same store may have been
// written by earlier versions of the app.
const (
	KeyServerURL          = "server_url"
	KeyEmail              = "email"
	KeyPassword           = "password"
	KeySenderList         = "sender_list"
	KeyAccessToken        = "access_token"
	KeyLastFetchTimestamp = "last_fetch_timestamp"
	KeySentSMSIDs         = "sent_sms_ids"
)

// Preferences provides typed access to the persisted settings. All reads
// default to empty string / zero / empty set when the key is absent.
type Preferences struct {
	db *sql.DB
}

// New returns Preferences backed by the given settings database.
func New(db *sql.DB) *Preferences {
	return &Preferences{db: db}
}

func (p *Preferences) repo() *SQLiteRepository {
	return NewSQLiteRepository(p.db)
}

func (p *Preferences) ServerURL(ctx context.Context) (string, error) {
	return p.repo().Get(ctx, KeyServerURL)
}

func (p *Preferences) SaveServerURL(ctx context.Context, url string) error {
	return p.repo().Set(ctx, KeyServerURL, url)
}

func (p *Preferences) Email(ctx context.Context) (string, error) {
	return p.repo().Get(ctx, KeyEmail)
}

func (p *Preferences) SaveEmail(ctx context.Context, email string) error {
	return p.repo().Set(ctx, KeyEmail, email)
}

func (p *Preferences) Password(ctx context.Context) (string, error) {
	return p.repo().Get(ctx, KeyPassword)
}

func (p *Preferences) SavePassword(ctx context.Context, password string) error {
	return p.repo().Set(ctx, KeyPassword, password)
}

// SenderList is the legacy comma-joined sender string, kept alongside the
// in-memory selection set for backward compatibility.
func (p *Preferences) SenderList(ctx context.Context) (string, error) {
	return p.repo().Get(ctx, KeySenderList)
}

func (p *Preferences) SaveSenderList(ctx context.Context, senderList string) error {
	return p.repo().Set(ctx, KeySenderList, senderList)
}

func (p *Preferences) AccessToken(ctx context.Context) (string, error) {
	return p.repo().Get(ctx, KeyAccessToken)
}

func (p *Preferences) SaveAccessToken(ctx context.Context, token string) error {
	return p.repo().Set(ctx, KeyAccessToken, token)
}

func (p *Preferences) LastFetchTimestamp(ctx context.Context) (int64, error) {
	raw, err := p.repo().Get(ctx, KeyLastFetchTimestamp)
	if err != nil {
		return 0, err
	}
	if raw == "" {
		return 0, nil
	}
	ts, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, nil
	}
	return ts, nil
}

func (p *Preferences) SaveLastFetchTimestamp(ctx context.Context, ts int64) error {
	return p.repo().Set(ctx, KeyLastFetchTimestamp, strconv.FormatInt(ts, 10))
}

// SentIDs returns the persisted set of message identifiers that were sent or
// hidden. The empty string maps to an empty set.
func (p *Preferences) SentIDs(ctx context.Context) (map[string]struct{}, error) {
	raw, err := p.repo().Get(ctx, KeySentSMSIDs)
	if err != nil {
		return nil, err
	}
	return ParseIDSet(raw), nil
}

// AddSentID appends id to the persisted excluded-ID set. The set is
// append-only and the operation is idempotent: adding an already-present ID
// leaves the persisted value unchanged in effect. Read-union-write runs in a
// single transaction.
func (p *Preferences) AddSentID(ctx context.Context, id string) error {
	return dbx.WithTx(ctx, p.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := NewSQLiteRepository(tx)
		raw, err := repo.Get(ctx, KeySentSMSIDs)
		if err != nil {
			return err
		}
		set := ParseIDSet(raw)
		set[id] = struct{}{}
		return repo.Set(ctx, KeySentSMSIDs, JoinIDSet(set))
	})
}

// ParseIDSet splits a comma-joined ID string into a set.
func ParseIDSet(raw string) map[string]struct{} {
	set := make(map[string]struct{})
	if raw == "" {
		return set
	}
	for _, id := range strings.Split(raw, ",") {
		id = strings.TrimSpace(id)
		if id != "" {
			set[id] = struct{}{}
		}
	}
	return set
}

// JoinIDSet renders a set as a sorted comma-joined string so the persisted
// form is deterministic.
func JoinIDSet(set map[string]struct{}) string {
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return strings.Join(ids, ",")
}
