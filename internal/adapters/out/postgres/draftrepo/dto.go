// Package draftrepo provides persistence for checkout resumption drafts.
// A draft row is written before an external payment redirect and claimed at
// most once on the way back; the consume-once guarantee lives in the UPDATE
// guard of the repository, not in application code.
package draftrepo

import (
	"time"

	"shiplabel/internal/core/domain/model/address"
	"shiplabel/internal/core/domain/model/checkout"
	"shiplabel/internal/core/domain/model/kernel"
	"shiplabel/internal/core/domain/model/parcel"
	"shiplabel/internal/core/domain/model/rate"

	"github.com/google/uuid"
)

// DraftDTO represents the database structure for resumption drafts, keyed by
// the payment intent the frozen inputs were priced into.
type DraftDTO struct {
	IntentID     string    `gorm:"primaryKey"`
	SessionID    uuid.UUID `gorm:"type:uuid"`
	BuyerID      uuid.UUID `gorm:"type:uuid;index"`
	FromName     string
	FromCompany  string
	FromStreet1  string
	FromStreet2  string
	FromCity     string
	FromState    string
	FromZip      string
	FromCountry  string
	FromPhone    string
	FromEmail    string
	ToName       string
	ToCompany    string
	ToStreet1    string
	ToStreet2    string
	ToCity       string
	ToState      string
	ToZip        string
	ToCountry    string
	ToPhone      string
	ToEmail      string
	PkgLength    float64
	PkgWidth     float64
	PkgHeight    float64
	PkgWeight    float64
	PkgDimUnit   string
	PkgWtUnit    string
	RateID       string
	RateCarrier  string
	RateService  string
	RateAmount   float64
	RateCurrency string
	RateDays     int
	RateDate     string
	Consumed     bool `gorm:"index"`
	CreatedAt    time.Time
}

// TableName specifies the database table name for resumption drafts.
func (DraftDTO) TableName() string {
	return "checkout_drafts"
}

// fromDomain converts a draft to its database representation.
func fromDomain(draft *checkout.Draft) DraftDTO {
	from := draft.From()
	to := draft.To()
	pkg := draft.Parcel()
	selected := draft.SelectedRate()

	return DraftDTO{
		IntentID:     draft.IntentID(),
		SessionID:    draft.SessionID().Bytes(),
		BuyerID:      draft.BuyerID().Bytes(),
		FromName:     from.Name(),
		FromCompany:  from.Company(),
		FromStreet1:  from.Street1(),
		FromStreet2:  from.Street2(),
		FromCity:     from.City(),
		FromState:    from.State(),
		FromZip:      from.Zip(),
		FromCountry:  from.Country(),
		FromPhone:    from.Phone(),
		FromEmail:    from.Email(),
		ToName:       to.Name(),
		ToCompany:    to.Company(),
		ToStreet1:    to.Street1(),
		ToStreet2:    to.Street2(),
		ToCity:       to.City(),
		ToState:      to.State(),
		ToZip:        to.Zip(),
		ToCountry:    to.Country(),
		ToPhone:      to.Phone(),
		ToEmail:      to.Email(),
		PkgLength:    pkg.Length(),
		PkgWidth:     pkg.Width(),
		PkgHeight:    pkg.Height(),
		PkgWeight:    pkg.Weight(),
		PkgDimUnit:   string(pkg.DimensionUnit()),
		PkgWtUnit:    string(pkg.WeightUnit()),
		RateID:       selected.ID(),
		RateCarrier:  selected.Carrier(),
		RateService:  selected.ServiceName(),
		RateAmount:   selected.Amount(),
		RateCurrency: selected.Currency(),
		RateDays:     selected.DeliveryDays(),
		RateDate:     selected.EstimatedDeliveryDate(),
		CreatedAt:    draft.CreatedAt(),
	}
}

// toDomain converts a database DTO back to a draft.
func toDomain(dto DraftDTO) (*checkout.Draft, error) {
	sessionID, err := kernel.UUIDFromBytes(dto.SessionID[:])
	if err != nil {
		return nil, err
	}

	buyerID, err := kernel.UUIDFromBytes(dto.BuyerID[:])
	if err != nil {
		return nil, err
	}

	from, err := address.RestoreAddress(
		dto.FromName, dto.FromCompany,
		dto.FromStreet1, dto.FromStreet2,
		dto.FromCity, dto.FromState, dto.FromZip, dto.FromCountry,
		dto.FromPhone, dto.FromEmail,
	)
	if err != nil {
		return nil, err
	}

	to, err := address.RestoreAddress(
		dto.ToName, dto.ToCompany,
		dto.ToStreet1, dto.ToStreet2,
		dto.ToCity, dto.ToState, dto.ToZip, dto.ToCountry,
		dto.ToPhone, dto.ToEmail,
	)
	if err != nil {
		return nil, err
	}

	pkg, err := parcel.NewParcel(
		dto.PkgLength, dto.PkgWidth, dto.PkgHeight, dto.PkgWeight,
		parcel.DimensionUnit(dto.PkgDimUnit),
		parcel.WeightUnit(dto.PkgWtUnit),
	)
	if err != nil {
		return nil, err
	}

	selected, err := rate.NewRate(
		dto.RateID, dto.RateCarrier, dto.RateService,
		dto.RateAmount, dto.RateCurrency,
		dto.RateDays, dto.RateDate,
	)
	if err != nil {
		return nil, err
	}

	return checkout.NewDraft(
		dto.IntentID,
		sessionID, buyerID,
		from, to, pkg, selected,
		dto.CreatedAt,
	)
}
