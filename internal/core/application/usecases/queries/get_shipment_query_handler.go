package queries

import (
	"context"

	"shiplabel/internal/core/domain/model/kernel"
	"shiplabel/internal/core/domain/model/shipment"
	"shiplabel/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetShipmentQueryHandler retrieves one shipment read model from the database.
// Uses direct SQL for optimal read performance in the CQRS pattern.
type GetShipmentQueryHandler struct {
	db *gorm.DB
}

// NewGetShipmentQueryHandler creates a handler for shipment detail queries.
// Requires a GORM database connection for query execution.
func NewGetShipmentQueryHandler(db *gorm.DB) GetShipmentQueryHandler {
	return GetShipmentQueryHandler{db: db}
}

// Handle executes the query. Returns errs.ErrObjectNotFound when no shipment
// with the given identifier exists.
func (h GetShipmentQueryHandler) Handle(
	ctx context.Context,
	query GetShipmentQuery,
) (GetShipmentQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetShipmentQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			buyer_id,
			status,
			from_name,
			from_city,
			from_state,
			to_name,
			to_city,
			to_state,
			rate_carrier,
			rate_service,
			rate_amount,
			rate_currency,
			tracking_number,
			label_url
		FROM shipments
		WHERE id = ?
	`, query.ShipmentID().Bytes()).Row()

	var response GetShipmentQueryResponse
	var id, buyerID uuid.UUID
	var status int

	err := row.Scan(
		&id,
		&buyerID,
		&status,
		&response.FromName,
		&response.FromCity,
		&response.FromState,
		&response.ToName,
		&response.ToCity,
		&response.ToState,
		&response.Carrier,
		&response.ServiceName,
		&response.Amount,
		&response.Currency,
		&response.TrackingNumber,
		&response.LabelURL,
	)
	if err != nil {
		return GetShipmentQueryResponse{}, errs.NewObjectNotFoundErrorWithCause(
			"shipment", query.ShipmentID().String(), err)
	}

	if response.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetShipmentQueryResponse{}, err
	}
	if response.BuyerID, err = kernel.UUIDFromBytes(buyerID[:]); err != nil {
		return GetShipmentQueryResponse{}, err
	}
	response.Status = shipment.Status(status).String()

	return response, nil
}
