package ports

import (
	"context"

	"shiplabel/internal/core/domain/model/address"
	"shiplabel/internal/core/domain/model/kernel"
)

// AddressBookRepository defines the persistence contract for a buyer's saved
// addresses. The book is append-only from the checkout's point of view:
// entries are offered for reuse, never edited in place.
type AddressBookRepository interface {
	// Add stores an address in the buyer's book. Storing an address equal
	// to an already saved one is a no-op.
	Add(ctx context.Context, buyerID kernel.UUID, addr address.Address) error

	// GetAllForBuyer retrieves the buyer's saved addresses, most recently
	// saved first.
	GetAllForBuyer(ctx context.Context, buyerID kernel.UUID) ([]address.Address, error)
}
