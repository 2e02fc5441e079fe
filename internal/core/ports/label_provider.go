package ports

import (
	"context"

	"shiplabel/internal/core/domain/model/address"
	"shiplabel/internal/core/domain/model/kernel"
	"shiplabel/internal/core/domain/model/parcel"
	"shiplabel/internal/core/domain/model/rate"
)

// Label is the purchased shipping document returned by the carrier network.
type Label struct {
	TrackingNumber string
	LabelURL       string
}

// LabelProvider purchases and voids labels with the carrier network.
//
// IssueLabel is not idempotent on the provider side, so callers must hold the
// per-payment issuance latch before invoking it. The buyer identity travels
// with the purchase as the carrier-side reference. Transport faults surface
// as ErrNetworkOrTimeout; a carrier-side rejection is returned as a plain
// error.
type LabelProvider interface {
	IssueLabel(ctx context.Context, from address.Address, to address.Address, pkg parcel.Parcel, selected rate.Rate, buyerID kernel.UUID) (Label, error)
	VoidLabel(ctx context.Context, trackingNumber string) error
}
