// Package shipmentrepo provides data transfer objects and mapping functions
// for shipment persistence. Implements the repository pattern for the
// shipment aggregate, converting between domain entities and database rows.
package shipmentrepo

import (
	"time"

	"shiplabel/internal/core/domain/model/address"
	"shiplabel/internal/core/domain/model/kernel"
	"shiplabel/internal/core/domain/model/parcel"
	"shiplabel/internal/core/domain/model/rate"
	"shiplabel/internal/core/domain/model/shipment"

	"github.com/google/uuid"
)

// ShipmentDTO represents the database structure for persisting shipment
// aggregates. The origin and destination addresses, the package details, and
// the purchased rate are frozen copies and embed into the same row: a
// shipment is a historical record, not a join target.
type ShipmentDTO struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	BuyerID        uuid.UUID  `gorm:"type:uuid;index"`
	Status         int        `gorm:"index"`
	From           AddressDTO `gorm:"embedded;embeddedPrefix:from_"`
	To             AddressDTO `gorm:"embedded;embeddedPrefix:to_"`
	Parcel         ParcelDTO  `gorm:"embedded;embeddedPrefix:pkg_"`
	Rate           RateDTO    `gorm:"embedded;embeddedPrefix:rate_"`
	TrackingNumber string
	LabelURL       string
	CreatedAt      time.Time
}

// TableName specifies the database table name for shipment entities.
func (ShipmentDTO) TableName() string {
	return "shipments"
}

// AddressDTO represents an embedded postal address.
type AddressDTO struct {
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

// ParcelDTO represents the embedded package details.
type ParcelDTO struct {
	Length        float64
	Width         float64
	Height        float64
	Weight        float64
	DimensionUnit string
	WeightUnit    string
}

// RateDTO represents the embedded purchased rate snapshot.
type RateDTO struct {
	RateID       string `gorm:"column:id"`
	Carrier      string
	Service      string
	Amount       float64
	Currency     string
	DeliveryDays int
	DeliveryDate string
}

func addressFromDomain(addr address.Address) AddressDTO {
	return AddressDTO{
		Name:    addr.Name(),
		Company: addr.Company(),
		Street1: addr.Street1(),
		Street2: addr.Street2(),
		City:    addr.City(),
		State:   addr.State(),
		Zip:     addr.Zip(),
		Country: addr.Country(),
		Phone:   addr.Phone(),
		Email:   addr.Email(),
	}
}

func addressToDomain(dto AddressDTO) (address.Address, error) {
	return address.RestoreAddress(
		dto.Name, dto.Company,
		dto.Street1, dto.Street2,
		dto.City, dto.State, dto.Zip, dto.Country,
		dto.Phone, dto.Email,
	)
}

func parcelFromDomain(pkg parcel.Parcel) ParcelDTO {
	return ParcelDTO{
		Length:        pkg.Length(),
		Width:         pkg.Width(),
		Height:        pkg.Height(),
		Weight:        pkg.Weight(),
		DimensionUnit: string(pkg.DimensionUnit()),
		WeightUnit:    string(pkg.WeightUnit()),
	}
}

func parcelToDomain(dto ParcelDTO) (parcel.Parcel, error) {
	return parcel.NewParcel(
		dto.Length, dto.Width, dto.Height, dto.Weight,
		parcel.DimensionUnit(dto.DimensionUnit),
		parcel.WeightUnit(dto.WeightUnit),
	)
}

func rateFromDomain(r rate.Rate) RateDTO {
	return RateDTO{
		RateID:       r.ID(),
		Carrier:      r.Carrier(),
		Service:      r.ServiceName(),
		Amount:       r.Amount(),
		Currency:     r.Currency(),
		DeliveryDays: r.DeliveryDays(),
		DeliveryDate: r.EstimatedDeliveryDate(),
	}
}

func rateToDomain(dto RateDTO) (rate.Rate, error) {
	return rate.NewRate(
		dto.RateID, dto.Carrier, dto.Service,
		dto.Amount, dto.Currency,
		dto.DeliveryDays, dto.DeliveryDate,
	)
}

// fromDomain converts a shipment aggregate to its database representation.
func fromDomain(aggregate *shipment.Shipment) ShipmentDTO {
	return ShipmentDTO{
		ID:             aggregate.ID().Bytes(),
		BuyerID:        aggregate.BuyerID().Bytes(),
		Status:         int(aggregate.Status()),
		From:           addressFromDomain(aggregate.From()),
		To:             addressFromDomain(aggregate.To()),
		Parcel:         parcelFromDomain(aggregate.Parcel()),
		Rate:           rateFromDomain(aggregate.SelectedRate()),
		TrackingNumber: aggregate.TrackingNumber(),
		LabelURL:       aggregate.LabelURL(),
		CreatedAt:      aggregate.CreatedAt(),
	}
}

// toDomain converts a database DTO back to a shipment aggregate.
func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	buyerID, err := kernel.UUIDFromBytes(dto.BuyerID[:])
	if err != nil {
		return nil, err
	}

	from, err := addressToDomain(dto.From)
	if err != nil {
		return nil, err
	}

	to, err := addressToDomain(dto.To)
	if err != nil {
		return nil, err
	}

	pkg, err := parcelToDomain(dto.Parcel)
	if err != nil {
		return nil, err
	}

	selectedRate, err := rateToDomain(dto.Rate)
	if err != nil {
		return nil, err
	}

	return shipment.RestoreShipment(
		id, buyerID,
		from, to, pkg, selectedRate,
		dto.TrackingNumber, dto.LabelURL,
		shipment.Status(dto.Status),
		dto.CreatedAt,
	)
}
