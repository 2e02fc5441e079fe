package checkout

import (
	"errors"
	"time"

	"shiplabel/internal/core/domain/model/address"
	"shiplabel/internal/core/domain/model/kernel"
	"shiplabel/internal/core/domain/model/parcel"
	"shiplabel/internal/core/domain/model/rate"
)

// ErrDraftIsNotConstructed is returned when a Draft instance was not created
// through the NewDraft factory function.
var ErrDraftIsNotConstructed = errors.New("Draft must be created via NewDraft constructor")

// Draft is the minimal resumption payload written to durable storage before
// the user leaves for an external payment redirect: the frozen pre-redirect
// inputs keyed by the payment intent they were priced into.
//
// A draft is single-use. It is consumed exactly once after the payment is
// verified server-side, and deleted afterwards, so the stored inputs can never
// be replayed into a second label issuance.
type Draft struct {
	intentID  string
	sessionID kernel.UUID
	buyerID   kernel.UUID
	from      address.Address
	to        address.Address
	pkg       parcel.Parcel
	selected  rate.Rate
	createdAt time.Time

	isConstructed bool
}

// NewDraft freezes a session's pre-redirect inputs under its payment intent.
func NewDraft(
	intentID string,
	sessionID, buyerID kernel.UUID,
	from, to address.Address,
	pkg parcel.Parcel,
	selected rate.Rate,
	createdAt time.Time,
) (*Draft, error) {
	if intentID == "" {
		return nil, errors.New("intent id is required")
	}

	if err := errors.Join(
		sessionID.Validate(),
		buyerID.Validate(),
		from.Validate(),
		to.Validate(),
		pkg.Validate(),
		selected.Validate(),
	); err != nil {
		return nil, err
	}

	return &Draft{
		intentID:      intentID,
		sessionID:     sessionID,
		buyerID:       buyerID,
		from:          from,
		to:            to,
		pkg:           pkg,
		selected:      selected,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Draft was created through NewDraft.
func (d *Draft) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDraftIsNotConstructed
	}
	return nil
}

// IntentID returns the payment intent the draft is keyed by.
func (d *Draft) IntentID() string { return d.intentID }

// SessionID returns the originating checkout session identifier.
func (d *Draft) SessionID() kernel.UUID { return d.sessionID }

// BuyerID returns the purchasing user's identifier.
func (d *Draft) BuyerID() kernel.UUID { return d.buyerID }

// From returns the frozen origin address.
func (d *Draft) From() address.Address { return d.from }

// To returns the frozen destination address.
func (d *Draft) To() address.Address { return d.to }

// Parcel returns the frozen package details.
func (d *Draft) Parcel() parcel.Parcel { return d.pkg }

// SelectedRate returns the frozen rate the intent was created for.
func (d *Draft) SelectedRate() rate.Rate { return d.selected }

// CreatedAt returns when the draft was written.
func (d *Draft) CreatedAt() time.Time { return d.createdAt }
