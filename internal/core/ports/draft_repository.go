package ports

import (
	"context"
	"time"

	"shiplabel/internal/core/domain/model/checkout"
)

// DraftRepository defines the persistence contract for checkout drafts,
// the durable resumption payloads written before a payment redirect.
//
// Drafts are keyed by payment intent id and are single-use: Consume returns
// a draft at most once across all callers, making the intent id the durable
// exactly-once key for label issuance, whichever purchase path reaches it
// first. A settled purchase deletes its draft in the same transaction as the
// shipment row.
type DraftRepository interface {
	// Add persists a new draft. A draft for the same intent id must not
	// already exist.
	Add(ctx context.Context, draft *checkout.Draft) error

	// Consume atomically claims and returns the draft for the given intent
	// id. Subsequent calls for the same id return errs.ErrObjectNotFound.
	Consume(ctx context.Context, intentID string) (*checkout.Draft, error)

	// Delete removes the draft for the given intent id, if present.
	// Used when an intent is replaced before any redirect happens and when
	// a finished purchase retires its claimed draft.
	Delete(ctx context.Context, intentID string) error

	// DeleteExpired removes drafts created before the cutoff, consumed or
	// not. Returns the number of drafts removed.
	DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error)
}
