package inbox

import (
	"context"

	"github.com/kc31/smsrelay/internal/models"
)

// Reader is the read-only surface the session layer depends on.
// *Store satisfies it; tests can provide stubs.
type Reader interface {
	// Query returns qualifying, non-excluded messages, most recent first.
	Query(ctx context.Context, senders []string, startTime int64, excluded map[string]struct{}) ([]models.Message, error)

	// DistinctSenders enumerates every sender address present in the inbox.
	DistinctSenders(ctx context.Context) ([]string, error)
}
