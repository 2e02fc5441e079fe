package addressbookrepo

import (
	"context"

	"shiplabel/internal/core/domain/model/address"
	"shiplabel/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GormAddressBookRepository implements AddressBookRepository using GORM.
type GormAddressBookRepository struct {
	db *gorm.DB
}

// NewGormAddressBookRepository creates a new GORM address-book repository.
func NewGormAddressBookRepository(db *gorm.DB) *GormAddressBookRepository {
	return &GormAddressBookRepository{db: db}
}

// Add stores an address in the buyer's book. An address equal to one already
// saved is skipped, comparison is done on the restored domain values.
func (r *GormAddressBookRepository) Add(ctx context.Context, buyerID kernel.UUID, addr address.Address) error {
	if err := buyerID.Validate(); err != nil {
		return err
	}
	if err := addr.Validate(); err != nil {
		return err
	}

	existing, err := r.GetAllForBuyer(ctx, buyerID)
	if err != nil {
		return err
	}
	for _, saved := range existing {
		if saved.IsEqual(addr) {
			return nil
		}
	}

	dto := fromDomain(buyerID, addr)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetAllForBuyer retrieves the buyer's saved addresses, newest first.
func (r *GormAddressBookRepository) GetAllForBuyer(
	ctx context.Context,
	buyerID kernel.UUID,
) ([]address.Address, error) {
	if err := buyerID.Validate(); err != nil {
		return nil, err
	}

	var dtos []AddressBookEntryDTO
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&dtos, "buyer_id = ?", buyerID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	addresses := make([]address.Address, 0, len(dtos))
	for _, dto := range dtos {
		addr, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		addresses = append(addresses, addr)
	}

	return addresses, nil
}
