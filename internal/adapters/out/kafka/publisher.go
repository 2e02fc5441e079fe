// Package kafka publishes shipment lifecycle events for downstream consumers.
// Messages are keyed by shipment id so per-shipment ordering survives
// partitioning.
package kafka

import (
	"context"
	"log/slog"
	"time"

	"shiplabel/internal/core/domain/model/shipment"
	"shiplabel/internal/core/ports"

	gojson "github.com/goccy/go-json"
	skafka "github.com/segmentio/kafka-go"
)

const (
	eventShipmentPurchased = "shipment.purchased"
	eventShipmentCancelled = "shipment.cancelled"
)

// Writer is the subset of segmentio's kafka.Writer the publisher needs,
// kept narrow so tests can inject a recorder.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...skafka.Message) error
	Close() error
}

type Publisher struct {
	writer Writer
	logger *slog.Logger
}

var _ ports.EventPublisher = (*Publisher)(nil)

// NewPublisher creates a publisher writing to the given broker and topic.
func NewPublisher(brokerURL, topic string, logger *slog.Logger) *Publisher {
	w := &skafka.Writer{
		Addr:     skafka.TCP(brokerURL),
		Topic:    topic,
		Balancer: &skafka.LeastBytes{},
	}
	return NewPublisherWithWriter(w, logger)
}

// NewPublisherWithWriter allows injecting a test writer.
func NewPublisherWithWriter(w Writer, logger *slog.Logger) *Publisher {
	return &Publisher{writer: w, logger: logger.With(slog.String("infra", "kafka"))}
}

// shipmentEvent is the wire shape of both lifecycle events.
type shipmentEvent struct {
	Event          string    `json:"event"`
	ShipmentID     string    `json:"shipment_id"`
	BuyerID        string    `json:"buyer_id"`
	Carrier        string    `json:"carrier"`
	Service        string    `json:"service"`
	Amount         float64   `json:"amount"`
	Currency       string    `json:"currency"`
	TrackingNumber string    `json:"tracking_number"`
	Status         string    `json:"status"`
	OccurredAt     time.Time `json:"occurred_at"`
}

func (p *Publisher) PublishShipmentPurchased(ctx context.Context, aggregate *shipment.Shipment) error {
	return p.publish(ctx, eventShipmentPurchased, aggregate)
}

func (p *Publisher) PublishShipmentCancelled(ctx context.Context, aggregate *shipment.Shipment) error {
	return p.publish(ctx, eventShipmentCancelled, aggregate)
}

func (p *Publisher) publish(ctx context.Context, event string, aggregate *shipment.Shipment) error {
	payload := shipmentEvent{
		Event:          event,
		ShipmentID:     aggregate.ID().String(),
		BuyerID:        aggregate.BuyerID().String(),
		Carrier:        aggregate.SelectedRate().Carrier(),
		Service:        aggregate.SelectedRate().ServiceName(),
		Amount:         aggregate.SelectedRate().Amount(),
		Currency:       aggregate.SelectedRate().Currency(),
		TrackingNumber: aggregate.TrackingNumber(),
		Status:         aggregate.Status().String(),
		OccurredAt:     time.Now().UTC(),
	}

	value, err := gojson.Marshal(payload)
	if err != nil {
		return err
	}

	msg := skafka.Message{
		Key:   []byte(payload.ShipmentID),
		Value: value,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("failed to publish shipment event",
			slog.String("event", event),
			slog.String("shipment_id", payload.ShipmentID),
			slog.Any("error", err))
		return err
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
