package ports

import (
	"context"

	"shiplabel/internal/core/domain/model/checkout"
	"shiplabel/internal/core/domain/model/kernel"
)

// SessionStore holds live checkout sessions for the duration of a purchase.
//
// Sessions are working state, not records: they live in memory and are
// reconstructed from a draft after an external redirect. Implementations
// return the same *checkout.Session instance for a given id so that the
// session's internal latches act across concurrent requests.
type SessionStore interface {
	// Add stores a new session. A session with the same id must not
	// already exist.
	Add(ctx context.Context, session *checkout.Session) error

	// Get retrieves a live session by its identifier.
	// Returns errs.ErrObjectNotFound if the session is unknown or expired.
	Get(ctx context.Context, id kernel.UUID) (*checkout.Session, error)

	// Remove drops a session, typically after checkout completes.
	Remove(ctx context.Context, id kernel.UUID) error
}
