package commands

import (
	"context"
	"log/slog"

	"shiplabel/internal/core/ports"
)

// VoidShipmentCommandHandler voids an unused label with the carrier network
// and cancels the shipment record.
type VoidShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
	labels     ports.LabelProvider
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewVoidShipmentCommandHandler creates the void handler.
func NewVoidShipmentCommandHandler(
	uowFactory ShipmentUoWFactory,
	labels ports.LabelProvider,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) VoidShipmentCommandHandler {
	return VoidShipmentCommandHandler{
		uowFactory: uowFactory,
		labels:     labels,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle voids the label and marks the shipment cancelled.
// Only shipments still in Created status can be voided; the carrier void
// happens before the status change so a carrier rejection leaves the
// shipment untouched.
func (h *VoidShipmentCommandHandler) Handle(ctx context.Context, cmd VoidShipmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shipmentRepo := uow.ShipmentRepository()
	aggregate, err := shipmentRepo.Get(ctx, cmd.ShipmentID())
	if err != nil {
		return err
	}

	if err = h.labels.VoidLabel(ctx, aggregate.TrackingNumber()); err != nil {
		return err
	}

	if err = aggregate.Cancel(); err != nil {
		return err
	}

	if err = shipmentRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if err = h.publisher.PublishShipmentCancelled(ctx, aggregate); err != nil {
		h.logger.Warn("shipment cancelled event not published",
			"shipment_id", aggregate.ID().String(), "error", err)
	}

	return nil
}
