package queries

import (
	"errors"

	"shiplabel/internal/core/domain/model/kernel"
	"shiplabel/internal/pkg/guard"
)

var ErrGetShipmentsForBuyerQueryIsNotConstructed = errors.New(
	"GetShipmentsForBuyerQuery must be created via NewGetShipmentsForBuyerQuery constructor",
)

// GetShipmentsForBuyerQuery retrieves a buyer's purchase history,
// most recent first.
type GetShipmentsForBuyerQuery struct {
	buyerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetShipmentsForBuyerQuery creates a purchase-history query.
func NewGetShipmentsForBuyerQuery(buyerID kernel.UUID) (GetShipmentsForBuyerQuery, error) {
	if err := buyerID.Validate(); err != nil {
		return GetShipmentsForBuyerQuery{}, err
	}

	return GetShipmentsForBuyerQuery{
		buyerID: buyerID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetShipmentsForBuyerQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentsForBuyerQueryIsNotConstructed)
}

// BuyerID returns the buyer whose history is requested.
func (q GetShipmentsForBuyerQuery) BuyerID() kernel.UUID {
	return q.buyerID
}

// GetShipmentsForBuyerQueryResponse is one row of the purchase-history list.
type GetShipmentsForBuyerQueryResponse struct {
	ID             kernel.UUID
	Status         string
	ToName         string
	ToCity         string
	ToState        string
	Carrier        string
	ServiceName    string
	Amount         float64
	Currency       string
	TrackingNumber string
}
