package queries

import (
	"context"

	"shiplabel/internal/core/domain/model/kernel"
	"shiplabel/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetShipmentsForBuyerQueryHandler retrieves a buyer's purchase history.
type GetShipmentsForBuyerQueryHandler struct {
	db *gorm.DB
}

// NewGetShipmentsForBuyerQueryHandler creates a handler for history queries.
func NewGetShipmentsForBuyerQueryHandler(db *gorm.DB) GetShipmentsForBuyerQueryHandler {
	return GetShipmentsForBuyerQueryHandler{db: db}
}

// Handle executes the query. An empty history returns an empty slice.
func (h GetShipmentsForBuyerQueryHandler) Handle(
	ctx context.Context,
	query GetShipmentsForBuyerQuery,
) ([]GetShipmentsForBuyerQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	shipments := make([]GetShipmentsForBuyerQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			to_name,
			to_city,
			to_state,
			rate_carrier,
			rate_service,
			rate_amount,
			rate_currency,
			tracking_number
		FROM shipments
		WHERE buyer_id = ?
		ORDER BY created_at DESC
	`, query.BuyerID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var row GetShipmentsForBuyerQueryResponse
		var id uuid.UUID
		var status int

		err = rows.Scan(
			&id,
			&status,
			&row.ToName,
			&row.ToCity,
			&row.ToState,
			&row.Carrier,
			&row.ServiceName,
			&row.Amount,
			&row.Currency,
			&row.TrackingNumber,
		)
		if err != nil {
			return nil, err
		}

		shipmentID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		row.ID = shipmentID
		row.Status = shipment.Status(status).String()
		shipments = append(shipments, row)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return shipments, nil
}
