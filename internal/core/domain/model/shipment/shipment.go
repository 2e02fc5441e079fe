package shipment

import (
	"errors"
	"strings"
	"time"

	"shiplabel/internal/core/domain/model/address"
	"shiplabel/internal/core/domain/model/kernel"
	"shiplabel/internal/core/domain/model/parcel"
	"shiplabel/internal/core/domain/model/rate"
	"shiplabel/internal/pkg/errs"
)

// ErrShipmentIsNotConstructed is returned when a Shipment instance was not
// created through NewShipment or RestoreShipment.
var ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment constructor")

// Shipment is the terminal artifact of a successful checkout run: a purchased
// label with its tracking number and the exact inputs it was bought with.
//
// Shipment follows these invariants:
//   - Exists only when payment succeeded AND label issuance succeeded;
//     it is never created speculatively
//   - Carries frozen copies of both addresses, the parcel, and the selected
//     rate exactly as quoted, with no recomputation of price
//   - Tracking number and label URL are required
//   - After creation the only core-driven transition is Cancel()
type Shipment struct {
	id             kernel.UUID
	buyerID        kernel.UUID
	createdAt      time.Time
	from           address.Address
	to             address.Address
	pkg            parcel.Parcel
	selectedRate   rate.Rate
	trackingNumber string
	labelURL       string
	status         Status

	isConstructed bool
}

// NewShipment creates a Shipment in Created status from the frozen checkout
// inputs and the label purchase result.
func NewShipment(
	id, buyerID kernel.UUID,
	from, to address.Address,
	pkg parcel.Parcel,
	selectedRate rate.Rate,
	trackingNumber, labelURL string,
	createdAt time.Time,
) (*Shipment, error) {
	s := &Shipment{
		status:        Created,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		s.setID(id),
		s.setBuyerID(buyerID),
		s.setAddresses(from, to),
		s.setParcel(pkg),
		s.setSelectedRate(selectedRate),
		s.setTrackingNumber(trackingNumber),
		s.setLabelURL(labelURL),
		s.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// RestoreShipment reconstructs a Shipment from persistence with its stored status.
func RestoreShipment(
	id, buyerID kernel.UUID,
	from, to address.Address,
	pkg parcel.Parcel,
	selectedRate rate.Rate,
	trackingNumber, labelURL string,
	status Status,
	createdAt time.Time,
) (*Shipment, error) {
	s, err := NewShipment(id, buyerID, from, to, pkg, selectedRate, trackingNumber, labelURL, createdAt)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}
	s.status = status

	return s, nil
}

// Validate ensures the Shipment was properly constructed.
func (s *Shipment) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrShipmentIsNotConstructed
	}
	return nil
}

// IsEqual compares two shipments by their unique identifiers.
func (s *Shipment) IsEqual(other *Shipment) bool {
	return other != nil && s.id.IsEqual(other.id)
}

// Cancel voids the shipment. Allowed only from Created status; the carrier
// void call is the caller's responsibility and must succeed first.
func (s *Shipment) Cancel() error {
	newStatus, err := s.status.Cancel()
	if err != nil {
		return err
	}

	s.status = newStatus
	return nil
}

// ID returns the shipment's unique identifier.
func (s *Shipment) ID() kernel.UUID { return s.id }

// BuyerID returns the identifier of the purchasing user.
func (s *Shipment) BuyerID() kernel.UUID { return s.buyerID }

// CreatedAt returns the creation timestamp.
func (s *Shipment) CreatedAt() time.Time { return s.createdAt }

// From returns the frozen origin address.
func (s *Shipment) From() address.Address { return s.from }

// To returns the frozen destination address.
func (s *Shipment) To() address.Address { return s.to }

// Parcel returns the frozen package details.
func (s *Shipment) Parcel() parcel.Parcel { return s.pkg }

// SelectedRate returns the frozen rate the label was purchased at.
func (s *Shipment) SelectedRate() rate.Rate { return s.selectedRate }

// TrackingNumber returns the carrier tracking number.
func (s *Shipment) TrackingNumber() string { return s.trackingNumber }

// LabelURL returns the printable label artifact location.
func (s *Shipment) LabelURL() string { return s.labelURL }

// Status returns the current lifecycle status.
func (s *Shipment) Status() Status { return s.status }

func (s *Shipment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Shipment) setBuyerID(buyerID kernel.UUID) error {
	if err := buyerID.Validate(); err != nil {
		return err
	}
	s.buyerID = buyerID
	return nil
}

func (s *Shipment) setAddresses(from, to address.Address) error {
	if err := from.Validate(); err != nil {
		return err
	}
	if err := to.Validate(); err != nil {
		return err
	}
	s.from = from
	s.to = to
	return nil
}

func (s *Shipment) setParcel(pkg parcel.Parcel) error {
	if err := pkg.Validate(); err != nil {
		return err
	}
	s.pkg = pkg
	return nil
}

func (s *Shipment) setSelectedRate(selectedRate rate.Rate) error {
	if err := selectedRate.Validate(); err != nil {
		return err
	}
	s.selectedRate = selectedRate
	return nil
}

func (s *Shipment) setTrackingNumber(trackingNumber string) error {
	if strings.TrimSpace(trackingNumber) == "" {
		return errs.NewValueIsRequiredError("tracking number")
	}
	s.trackingNumber = trackingNumber
	return nil
}

func (s *Shipment) setLabelURL(labelURL string) error {
	if strings.TrimSpace(labelURL) == "" {
		return errs.NewValueIsRequiredError("label url")
	}
	s.labelURL = labelURL
	return nil
}

func (s *Shipment) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("created at")
	}
	s.createdAt = createdAt
	return nil
}
