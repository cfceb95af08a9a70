// Package prefs implements the persisted settings store: a small key/value
// repository over SQLite plus typed accessors for the handful of settings this
// client keeps (server URL, credentials, sender list, access token,
// last-fetch timestamp and the sent/hidden message-ID set).
package prefs

import "context"

// Repository describes raw key/value access to the settings table.
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string]string, error)
}
