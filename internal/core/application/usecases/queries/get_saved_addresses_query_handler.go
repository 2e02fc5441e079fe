package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetSavedAddressesQueryHandler retrieves a buyer's saved addresses.
type GetSavedAddressesQueryHandler struct {
	db *gorm.DB
}

// NewGetSavedAddressesQueryHandler creates a handler for address-book queries.
func NewGetSavedAddressesQueryHandler(db *gorm.DB) GetSavedAddressesQueryHandler {
	return GetSavedAddressesQueryHandler{db: db}
}

// Handle executes the query.
func (h GetSavedAddressesQueryHandler) Handle(
	ctx context.Context,
	query GetSavedAddressesQuery,
) ([]GetSavedAddressesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	addresses := make([]GetSavedAddressesQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			name,
			company,
			street1,
			street2,
			city,
			state,
			zip,
			country,
			phone,
			email
		FROM address_book
		WHERE buyer_id = ?
		ORDER BY created_at DESC
	`, query.BuyerID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var row GetSavedAddressesQueryResponse
		err = rows.Scan(
			&row.Name,
			&row.Company,
			&row.Street1,
			&row.Street2,
			&row.City,
			&row.State,
			&row.Zip,
			&row.Country,
			&row.Phone,
			&row.Email,
		)
		if err != nil {
			return nil, err
		}
		addresses = append(addresses, row)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return addresses, nil
}
