package commands

import (
	"errors"
	"time"

	"shiplabel/internal/pkg/errs"
	"shiplabel/internal/pkg/guard"
)

// ErrCleanupExpiredDraftsCommandIsNotConstructed is returned when the command
// was not created through its constructor.
var ErrCleanupExpiredDraftsCommandIsNotConstructed = errors.New(
	"CleanupExpiredDraftsCommand must be created via NewCleanupExpiredDraftsCommand constructor",
)

// CleanupExpiredDraftsCommand removes resumption drafts older than the
// retention window. Drafts exist only to survive a payment redirect; one that
// nobody came back for within the window belongs to an abandoned checkout.
type CleanupExpiredDraftsCommand struct { //nolint:recvcheck //using for validation
	retention time.Duration

	guard guard.ConstructorGuard
}

// NewCleanupExpiredDraftsCommand creates a cleanup command with the given
// retention window.
func NewCleanupExpiredDraftsCommand(retention time.Duration) (CleanupExpiredDraftsCommand, error) {
	cmd := CleanupExpiredDraftsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setRetention(retention); err != nil {
		return CleanupExpiredDraftsCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CleanupExpiredDraftsCommand) Validate() error {
	return c.guard.Validate(ErrCleanupExpiredDraftsCommandIsNotConstructed)
}

// Retention returns how long a draft is kept before it is eligible for removal.
func (c CleanupExpiredDraftsCommand) Retention() time.Duration {
	return c.retention
}

func (c *CleanupExpiredDraftsCommand) setRetention(retention time.Duration) error {
	if retention <= 0 {
		return errs.NewValueIsOutOfRangeError("retention", retention, time.Nanosecond, nil)
	}

	c.retention = retention
	return nil
}
