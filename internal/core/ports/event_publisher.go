package ports

import (
	"context"

	"shiplabel/internal/core/domain/model/shipment"
)

// EventPublisher emits integration events for downstream consumers
// (notifications, analytics, tracking ingestion).
//
// Publishing is best-effort from the checkout's point of view: a failed
// publish is logged and must never fail the purchase that triggered it.
type EventPublisher interface {
	// PublishShipmentPurchased announces a newly purchased shipment.
	PublishShipmentPurchased(ctx context.Context, aggregate *shipment.Shipment) error

	// PublishShipmentCancelled announces a voided shipment.
	PublishShipmentCancelled(ctx context.Context, aggregate *shipment.Shipment) error

	// Close flushes and releases the underlying transport.
	Close() error
}
