package queries

import (
	"errors"

	"shiplabel/internal/core/domain/model/kernel"
	"shiplabel/internal/pkg/guard"
)

var ErrGetSavedAddressesQueryIsNotConstructed = errors.New(
	"GetSavedAddressesQuery must be created via NewGetSavedAddressesQuery constructor",
)

// GetSavedAddressesQuery retrieves a buyer's address book for the address
// step's reuse picker, most recently saved first.
type GetSavedAddressesQuery struct {
	buyerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetSavedAddressesQuery creates an address-book query.
func NewGetSavedAddressesQuery(buyerID kernel.UUID) (GetSavedAddressesQuery, error) {
	if err := buyerID.Validate(); err != nil {
		return GetSavedAddressesQuery{}, err
	}

	return GetSavedAddressesQuery{
		buyerID: buyerID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetSavedAddressesQuery) Validate() error {
	return q.guard.Validate(ErrGetSavedAddressesQueryIsNotConstructed)
}

// BuyerID returns the owner of the requested address book.
func (q GetSavedAddressesQuery) BuyerID() kernel.UUID {
	return q.buyerID
}

// GetSavedAddressesQueryResponse is one saved address, ready to prefill the
// address form.
type GetSavedAddressesQueryResponse struct {
	Name    string
	Company string
	Street1 string
	Street2 string
	City    string
	State   string
	Zip     string
	Country string
	Phone   string
	Email   string
}
