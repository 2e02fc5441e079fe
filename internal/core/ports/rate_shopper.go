package ports

import (
	"context"

	"shiplabel/internal/core/domain/model/address"
	"shiplabel/internal/core/domain/model/parcel"
	"shiplabel/internal/core/domain/model/rate"
)

// RateShopper requests carrier service offers for a shipment.
//
// The returned list carries no ordering guarantee; ranking is the domain's
// job. An empty list is a successful response meaning no service is
// available, distinct from ErrNetworkOrTimeout. Unit conversion to whatever
// the provider expects is the adapter's responsibility; the core passes
// package details as entered.
type RateShopper interface {
	FetchRates(ctx context.Context, from, to address.Address, pkg parcel.Parcel) ([]rate.Rate, error)
}
