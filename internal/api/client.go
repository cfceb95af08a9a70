// Package api implements the HTTP client for the remote service. Two calls
// exist: authenticate (email/password for an access token) and send-message
// (raw text body with a bearer token). Nothing is retried here; failures are
// surfaced to the session layer verbatim.
package api

import (
	"context"

	"github.com/kc31/smsrelay/internal/models"
)

// Client is the remote-service surface the session layer depends on.
type Client interface {
	// Authenticate exchanges credentials for tokens.
	Authenticate(ctx context.Context, email, password string) (*models.AuthResponse, error)

	// SendMessage posts the raw message body using the given access token.
	SendMessage(ctx context.Context, token, body string) error
}
