// Package addressbookrepo provides persistence for buyers' saved addresses.
package addressbookrepo

import (
	"time"

	"shiplabel/internal/core/domain/model/address"
	"shiplabel/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AddressBookEntryDTO represents one saved address row.
type AddressBookEntryDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	BuyerID   uuid.UUID `gorm:"type:uuid;index"`
	Name      string
	Company   string
	Street1   string
	Street2   string
	City      string
	State     string
	Zip       string
	Country   string
	Phone     string
	Email     string
	CreatedAt time.Time
}

// TableName specifies the database table name for saved addresses.
func (AddressBookEntryDTO) TableName() string {
	return "address_book"
}

// fromDomain converts a saved address to its database representation.
func fromDomain(buyerID kernel.UUID, addr address.Address) AddressBookEntryDTO {
	return AddressBookEntryDTO{
		ID:        uuid.New(),
		BuyerID:   buyerID.Bytes(),
		Name:      addr.Name(),
		Company:   addr.Company(),
		Street1:   addr.Street1(),
		Street2:   addr.Street2(),
		City:      addr.City(),
		State:     addr.State(),
		Zip:       addr.Zip(),
		Country:   addr.Country(),
		Phone:     addr.Phone(),
		Email:     addr.Email(),
		CreatedAt: time.Now().UTC(),
	}
}

// toDomain converts a database DTO back to an address value object.
func toDomain(dto AddressBookEntryDTO) (address.Address, error) {
	return address.RestoreAddress(
		dto.Name, dto.Company,
		dto.Street1, dto.Street2,
		dto.City, dto.State, dto.Zip, dto.Country,
		dto.Phone, dto.Email,
	)
}
